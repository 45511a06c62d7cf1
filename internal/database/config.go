package database

import (
	"fmt"
	"net/url"

	"goldbook/internal/config"
)

// Supported drivers.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Config holds database configuration
type Config struct {
	Driver   string
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
	// Path is the SQLite database file.
	Path string
}

// NewConfig builds the server database configuration from the app config
func NewConfig(cfg *config.Config) *Config {
	c := &Config{
		Driver:   cfg.DBDriver,
		Host:     cfg.DBHost,
		Port:     cfg.DBPort,
		User:     cfg.DBUser,
		Password: cfg.DBPassword,
		DBName:   cfg.DBName,
		SSLMode:  cfg.DBSSLMode,
	}
	if c.Driver == DriverSQLite {
		c.Path = cfg.LocalDBPath
	}
	return c
}

// LocalConfig describes a single-file SQLite ledger
func LocalConfig(path string) *Config {
	return &Config{Driver: DriverSQLite, Path: path}
}

// DSN returns the connection string understood by the GORM driver
func (c *Config) DSN() string {
	if c.Driver == DriverSQLite {
		return c.Path + "?_busy_timeout=5000&_journal_mode=WAL"
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// MigrateURL returns the database URL used by golang-migrate
func (c *Config) MigrateURL() string {
	if c.Driver == DriverSQLite {
		return "sqlite3://" + c.Path
	}
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     c.Host + ":" + c.Port,
		Path:     "/" + c.DBName,
		RawQuery: "sslmode=" + url.QueryEscape(c.SSLMode),
	}
	return u.String()
}
