// Package uuid provides the identifier sources used to key ledger records.
package uuid

import (
	"fmt"
	"sync/atomic"

	googleuuid "github.com/google/uuid"
)

// Source hands out record identifiers. Identifiers from one Source sort
// lexically in the order they were issued.
type Source interface {
	NewID() string
}

// V7 issues time-ordered UUIDv7 identifiers.
//
// Format (RFC 9562):
// - 48 bits: Unix timestamp in milliseconds
// - 4 bits: version (0111 = 7)
// - 12 bits: sub-millisecond sequence, monotonic within the process
// - 2 bits: variant (10)
// - 62 bits: random data
type V7 struct{}

// NewID returns a new UUIDv7 string.
func (V7) NewID() string {
	id, err := googleuuid.NewV7()
	if err != nil {
		// Fallback to standard UUIDv4 if random generation fails
		return googleuuid.New().String()
	}
	return id.String()
}

// New generates a new UUIDv7 based on the current timestamp.
func New() string {
	return V7{}.NewID()
}

// Sequence issues zero-padded decimal identifiers from a counter.
// Useful where identifiers must be predictable, such as tests and fixtures.
type Sequence struct {
	prefix string
	n      atomic.Uint64
}

// NewSequence creates a Sequence whose identifiers carry the given prefix.
func NewSequence(prefix string) *Sequence {
	return &Sequence{prefix: prefix}
}

// NewID returns the next identifier in the sequence.
func (s *Sequence) NewID() string {
	return fmt.Sprintf("%s%020d", s.prefix, s.n.Add(1))
}
