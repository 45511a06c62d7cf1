package services

import (
	"context"
	"time"

	"goldbook/internal/identity"
	"goldbook/internal/ledger"
	"goldbook/internal/models"
	"goldbook/internal/pagination"
	"goldbook/internal/portfolio"
	"goldbook/internal/pricefeed"
)

// UserServicer defines the contract for user-related business logic.
type UserServicer interface {
	CreateUser(email, password, fullName string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	GetUserByID(id string) (*models.User, error)
	VerifyPassword(user *models.User, password string) bool
	AttemptLogin(email, password string) (*models.User, error)
}

// RecordInput is a buy or sell as entered by a user, before it is stored.
type RecordInput struct {
	Type              models.TransactionType
	AssetType         string
	Weight            float64
	PricePerUnit      int64
	Date              time.Time
	Purity            *float64
	Notes             string
	Description       string
	StorageLocation   string
	CertificateNumber string
}

// RecordResult is a stored transaction and the store that accepted it.
type RecordResult struct {
	Transaction models.Transaction `json:"transaction"`
	Source      ledger.Source      `json:"source"`
	Fallback    bool               `json:"fallback"`
}

// HistoryFilter holds optional filter parameters for listing transactions.
type HistoryFilter struct {
	AssetType string
	Type      *models.TransactionType
	FromDate  *time.Time
	ToDate    *time.Time
}

// History is one page of a user's transactions, most recent first.
type History struct {
	pagination.PageResponse[models.Transaction]
	Source         ledger.Source `json:"source"`
	Fallback       bool          `json:"fallback"`
	CorruptRecords int           `json:"corrupt_records"`
}

// PortfolioReport is a valued portfolio plus the conditions it was built under.
type PortfolioReport struct {
	portfolio.Summary
	Currency       string        `json:"currency"`
	PriceSource    string        `json:"price_source,omitempty"`
	Source         ledger.Source `json:"source"`
	Fallback       bool          `json:"fallback"`
	CorruptRecords int           `json:"corrupt_records"`
	Warnings       []string      `json:"warnings"`
}

// LedgerServicer defines the contract for recording and reporting gold holdings.
type LedgerServicer interface {
	RecordTransaction(ctx context.Context, sess identity.Session, in RecordInput) (*RecordResult, error)
	GetPortfolio(ctx context.Context, sess identity.Session) (*PortfolioReport, error)
	GetTransactionHistory(ctx context.Context, sess identity.Session, filter HistoryFilter, page pagination.PageRequest) (*History, error)
	AppendRecord(ctx context.Context, sess identity.Session, tx models.Transaction) (*models.Transaction, error)
	ListRecords(ctx context.Context, sess identity.Session) (*ledger.Listing, error)
}

// PriceEntry is one spot price observation submitted by the pipeline.
type PriceEntry struct {
	PricePerGram int64
	Source       string
	RecordedAt   time.Time
}

// PriceServicer defines the contract for gold price storage.
type PriceServicer interface {
	RecordPrices(ctx context.Context, prices []PriceEntry) (int, error)
	GetLatestPrice(ctx context.Context) (*models.GoldPrice, error)
	ListPrices(ctx context.Context, page pagination.PageRequest) (*pagination.PageResponse[models.GoldPrice], error)
	pricefeed.Feed
}

// AuditServicer defines the contract for audit logging.
type AuditServicer interface {
	Log(userID, action, resourceType, resourceID, ipAddress string, changes map[string]interface{})
}
