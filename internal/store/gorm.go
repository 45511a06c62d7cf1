// Package store holds the ledger.Store implementations: a gorm-backed
// database store and an HTTP store that talks to a goldbook API server.
package store

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	apperrors "goldbook/internal/errors"
	"goldbook/internal/identity"
	"goldbook/internal/ledger"
	"goldbook/internal/models"
	"goldbook/internal/uuid"
)

// GormStore keeps transactions in a SQL database through gorm.
type GormStore struct {
	db     *gorm.DB
	ids    uuid.Source
	source ledger.Source
}

// NewGormStore creates a store over db. IDs come from ids; source tags the
// results so callers can tell which database answered.
func NewGormStore(db *gorm.DB, ids uuid.Source, source ledger.Source) *GormStore {
	if ids == nil {
		ids = uuid.V7{}
	}
	return &GormStore{db: db, ids: ids, source: source}
}

// Source implements ledger.Store.
func (s *GormStore) Source() ledger.Source {
	return s.source
}

// Append inserts tx for the session user with a fresh ID in one statement.
func (s *GormStore) Append(ctx context.Context, sess identity.Session, tx models.Transaction) (string, error) {
	if !sess.Valid() {
		return "", apperrors.ErrUnauthorized
	}

	tx.ID = s.ids.NewID()
	tx.UserID = sess.UserID
	if err := tx.Check(); err != nil {
		return "", apperrors.WithMessage(apperrors.ErrValidation, err.Error())
	}

	if err := s.db.WithContext(ctx).Create(&tx).Error; err != nil {
		return "", fmt.Errorf("inserting transaction: %w", err)
	}
	return tx.ID, nil
}

// ListByUser returns the session user's records ordered by date, then ID.
// Rows that fail Transaction.Check are counted and left out.
func (s *GormStore) ListByUser(ctx context.Context, sess identity.Session) (*ledger.Batch, error) {
	if !sess.Valid() {
		return nil, apperrors.ErrUnauthorized
	}

	var rows []models.Transaction
	err := s.db.WithContext(ctx).
		Where("user_id = ?", sess.UserID).
		Order("date ASC, id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("listing transactions: %w", err)
	}

	batch := &ledger.Batch{Transactions: make([]models.Transaction, 0, len(rows))}
	for i := range rows {
		if err := rows[i].Check(); err != nil {
			batch.Corrupt++
			continue
		}
		batch.Transactions = append(batch.Transactions, rows[i])
	}
	return batch, nil
}
