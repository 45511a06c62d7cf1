package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType represents the direction of a gold trade
type TransactionType string

const (
	TransactionTypeBuy  TransactionType = "buy"
	TransactionTypeSell TransactionType = "sell"
)

// Valid reports whether t is a known transaction type.
func (t TransactionType) Valid() bool {
	return t == TransactionTypeBuy || t == TransactionTypeSell
}

// ParseTransactionType accepts "buy"/"sell" in any case.
func ParseTransactionType(s string) (TransactionType, bool) {
	t := TransactionType(strings.ToLower(strings.TrimSpace(s)))
	return t, t.Valid()
}

// WeightPrecision is the number of decimal places kept for gram weights.
const WeightPrecision = 3

// DefaultPurity is assumed for buys that do not state a fineness.
const DefaultPurity = 0.999

// Transaction is one immutable buy or sell of gold. Weight is in grams,
// prices and totals are minor currency units (cents). Records are append-only:
// nothing in the system updates or deletes them.
type Transaction struct {
	ID                string          `gorm:"primaryKey;size:64" json:"id"`
	UserID            string          `gorm:"size:64;not null;index:idx_transactions_user_date" json:"user_id"`
	Type              TransactionType `gorm:"size:8;not null" json:"type"`
	AssetType         string          `gorm:"size:100;not null" json:"asset_type"`
	Weight            float64         `gorm:"not null" json:"weight"`
	PricePerUnit      int64           `gorm:"type:bigint;not null" json:"price_per_unit"`
	TotalValue        int64           `gorm:"type:bigint;not null" json:"total_value"`
	Date              time.Time       `gorm:"not null;index:idx_transactions_user_date" json:"date"`
	Purity            float64         `json:"purity,omitempty"`
	Notes             string          `json:"notes,omitempty"`
	Description       string          `json:"description,omitempty"`
	StorageLocation   string          `json:"storage_location,omitempty"`
	CertificateNumber string          `json:"certificate_number,omitempty"`
	CreatedAt         time.Time       `json:"created_at"`
}

// NewTransaction builds a record with normalized weight, calendar date and
// the derived total. The ID is left empty for the store to assign.
func NewTransaction(userID string, txType TransactionType, assetType string, weight float64, pricePerUnit int64, date time.Time) Transaction {
	w := NormalizeWeight(weight)
	return Transaction{
		UserID:       userID,
		Type:         txType,
		AssetType:    strings.TrimSpace(assetType),
		Weight:       w,
		PricePerUnit: pricePerUnit,
		TotalValue:   TotalFor(w, pricePerUnit),
		Date:         CalendarDate(date),
	}
}

// NormalizeWeight rounds a gram weight to WeightPrecision decimals.
func NormalizeWeight(w float64) float64 {
	return decimal.NewFromFloat(w).Round(WeightPrecision).InexactFloat64()
}

// TotalFor returns weight × price rounded half away from zero to whole cents.
func TotalFor(weight float64, pricePerUnit int64) int64 {
	return decimal.NewFromFloat(weight).Mul(decimal.NewFromInt(pricePerUnit)).Round(0).IntPart()
}

// CalendarDate strips the time of day, keeping the calendar day of t.
func CalendarDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Check verifies the invariants every stored record must satisfy.
// A failing record cannot take part in aggregation.
func (t *Transaction) Check() error {
	switch {
	case t.ID == "":
		return fmt.Errorf("missing id")
	case t.UserID == "":
		return fmt.Errorf("transaction %s: missing user_id", t.ID)
	case !t.Type.Valid():
		return fmt.Errorf("transaction %s: unknown type %q", t.ID, t.Type)
	case strings.TrimSpace(t.AssetType) == "":
		return fmt.Errorf("transaction %s: missing asset_type", t.ID)
	case !(t.Weight > 0):
		return fmt.Errorf("transaction %s: weight %v is not positive", t.ID, t.Weight)
	case t.PricePerUnit < 0:
		return fmt.Errorf("transaction %s: negative price_per_unit %d", t.ID, t.PricePerUnit)
	case t.Date.IsZero():
		return fmt.Errorf("transaction %s: missing date", t.ID)
	}
	if want := TotalFor(t.Weight, t.PricePerUnit); t.TotalValue != want {
		return fmt.Errorf("transaction %s: total_value %d does not equal weight × price (%d)", t.ID, t.TotalValue, want)
	}
	return nil
}

// Before orders records by date, then by ID for same-day records.
func (t *Transaction) Before(o *Transaction) bool {
	if !t.Date.Equal(o.Date) {
		return t.Date.Before(o.Date)
	}
	return t.ID < o.ID
}
