// Package ledger routes transaction reads and writes to the configured
// stores: a local store, an authoritative remote store, or the remote store
// with the local one standing in when the remote cannot be reached.
package ledger

import (
	"context"
	"fmt"
	"strings"

	"goldbook/internal/identity"
	"goldbook/internal/models"
)

// Source names the store an answer came from.
type Source string

const (
	SourceLocal  Source = "local"
	SourceRemote Source = "remote"
)

// Mode selects which stores a Gateway talks to. It is fixed for the life
// of the Gateway.
type Mode int

const (
	// ModeLocal uses only the local store. No credential is needed.
	ModeLocal Mode = iota
	// ModeRemote uses only the remote store.
	ModeRemote
	// ModeRemoteWithFallback tries the remote store and, on any failure,
	// repeats the same operation against the local store.
	ModeRemoteWithFallback
)

// String returns the configuration spelling of the mode.
func (m Mode) String() string {
	switch m {
	case ModeRemote:
		return "remote"
	case ModeRemoteWithFallback:
		return "hybrid"
	default:
		return "local"
	}
}

// ParseMode parses "local", "remote" or "hybrid".
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "local":
		return ModeLocal, nil
	case "remote":
		return ModeRemote, nil
	case "hybrid", "remote_with_fallback":
		return ModeRemoteWithFallback, nil
	}
	return ModeLocal, fmt.Errorf("unknown storage mode %q: must be local, remote or hybrid", s)
}

// Batch is one store's answer to a listing. Corrupt counts stored records
// that could not be decoded or failed Transaction.Check and were skipped.
type Batch struct {
	Transactions []models.Transaction
	Corrupt      int
}

// Store is a place transactions live. Implementations assign the record ID
// on Append and must not partially write a record.
type Store interface {
	Source() Source
	Append(ctx context.Context, sess identity.Session, tx models.Transaction) (string, error)
	ListByUser(ctx context.Context, sess identity.Session) (*Batch, error)
}

// Result is the outcome of one store call: either a Value from Source, or Err.
type Result[T any] struct {
	Source Source
	Value  T
	Err    error
}

// OK reports whether the call succeeded.
func (r Result[T]) OK() bool {
	return r.Err == nil
}

// Receipt confirms an append.
type Receipt struct {
	ID       string
	Source   Source
	Fallback bool
}

// Listing is a user's transactions, ordered by date then ID, along with
// where they were read from.
type Listing struct {
	Source         Source
	Transactions   []models.Transaction
	Corrupt        int
	Fallback       bool
	FallbackReason string
}
