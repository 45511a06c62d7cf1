package store

import (
	"context"
	"encoding/json"

	"goldbook/internal/client"
	apperrors "goldbook/internal/errors"
	"goldbook/internal/identity"
	"goldbook/internal/ledger"
	"goldbook/internal/models"
)

// RemoteStore keeps transactions on a goldbook API server.
type RemoteStore struct {
	api *client.Client
}

// NewRemoteStore creates a store backed by api.
func NewRemoteStore(api *client.Client) *RemoteStore {
	return &RemoteStore{api: api}
}

// Source implements ledger.Store.
func (s *RemoteStore) Source() ledger.Source {
	return ledger.SourceRemote
}

// Append sends tx to the server, which assigns the ID.
func (s *RemoteStore) Append(ctx context.Context, sess identity.Session, tx models.Transaction) (string, error) {
	if sess.Token == "" {
		return "", apperrors.ErrUnauthorized
	}
	tx.ID = ""
	tx.UserID = sess.UserID
	return s.api.AppendTransaction(ctx, sess.Token, tx)
}

// ListByUser fetches the session user's records. Records that do not decode
// or fail Transaction.Check are counted as corrupt, on top of those the
// server already skipped.
func (s *RemoteStore) ListByUser(ctx context.Context, sess identity.Session) (*ledger.Batch, error) {
	if sess.Token == "" {
		return nil, apperrors.ErrUnauthorized
	}

	list, err := s.api.ListTransactions(ctx, sess.Token)
	if err != nil {
		return nil, err
	}

	batch := &ledger.Batch{
		Transactions: make([]models.Transaction, 0, len(list.Transactions)),
		Corrupt:      list.CorruptRecords,
	}
	for _, r := range list.Transactions {
		var tx models.Transaction
		if err := json.Unmarshal(r, &tx); err != nil {
			batch.Corrupt++
			continue
		}
		if err := tx.Check(); err != nil {
			batch.Corrupt++
			continue
		}
		batch.Transactions = append(batch.Transactions, tx)
	}
	return batch, nil
}
