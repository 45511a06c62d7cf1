package identity

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"
)

// SavedSession is a sign-in persisted between CLI runs.
type SavedSession struct {
	UserID  string    `json:"user_id"`
	Email   string    `json:"email"`
	Token   string    `json:"token"`
	SavedAt time.Time `json:"saved_at"`
}

// Session returns the session the saved sign-in acts as.
func (s SavedSession) Session() Session {
	return Session{UserID: s.UserID, Token: s.Token}
}

// SaveSession writes s to path, readable only by the owner.
func SaveSession(path string, s SavedSession) error {
	if s.UserID == "" || s.Token == "" {
		return ErrNoSession
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return fmt.Errorf("creating token directory: %w", err)
		}
	}
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing token file: %w", err)
	}
	return nil
}

// LoadSession reads a sign-in saved by SaveSession. A missing file yields
// ErrNoSession.
func LoadSession(path string) (SavedSession, error) {
	var s SavedSession
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return s, ErrNoSession
	}
	if err != nil {
		return s, fmt.Errorf("reading token file: %w", err)
	}
	if err := json.Unmarshal(data, &s); err != nil {
		return s, fmt.Errorf("token file %s is corrupt: %w", path, err)
	}
	if s.UserID == "" || s.Token == "" {
		return s, ErrNoSession
	}
	return s, nil
}

// ClearSession removes a saved sign-in. Removing a missing file is not an error.
func ClearSession(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}
