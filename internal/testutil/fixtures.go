package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"goldbook/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestUser creates a user with a hashed password and unique email.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	email := fmt.Sprintf("user%d@test.com", nextID())
	return CreateTestUserWithEmail(t, db, email)
}

// CreateTestUserWithEmail creates a user with the given email.
func CreateTestUserWithEmail(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		Email:    email,
		Password: string(hash),
		FullName: "Test User",
		IsActive: true,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// Date parses a YYYY-MM-DD calendar date, failing the test on bad input.
func Date(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse(time.DateOnly, s)
	if err != nil {
		t.Fatalf("bad fixture date %q: %v", s, err)
	}
	return d
}

// NewGoldTransaction builds an unsaved, well-formed record with a unique ID.
func NewGoldTransaction(userID string, txType models.TransactionType, weight float64, pricePerUnit int64, date time.Time) models.Transaction {
	tx := models.NewTransaction(userID, txType, "Gold Bar", weight, pricePerUnit, date)
	tx.ID = fmt.Sprintf("fixture-%020d", nextID())
	tx.Purity = models.DefaultPurity
	return tx
}

// CreateTestGoldTransaction inserts a well-formed record for userID.
func CreateTestGoldTransaction(t *testing.T, db *gorm.DB, userID string, txType models.TransactionType, weight float64, pricePerUnit int64, date time.Time) *models.Transaction {
	t.Helper()

	tx := NewGoldTransaction(userID, txType, weight, pricePerUnit, date)
	if err := db.Create(&tx).Error; err != nil {
		t.Fatalf("failed to create test transaction: %v", err)
	}
	return &tx
}

// CreateTestGoldPrice records a spot price observation.
func CreateTestGoldPrice(t *testing.T, db *gorm.DB, pricePerGram int64, recordedAt time.Time) *models.GoldPrice {
	t.Helper()

	price := &models.GoldPrice{
		PricePerGram: pricePerGram,
		Source:       "test",
		RecordedAt:   recordedAt,
	}
	if err := db.Create(price).Error; err != nil {
		t.Fatalf("failed to create test gold price: %v", err)
	}
	return price
}
