package store

import (
	"errors"
	"sync"

	"github.com/google/uuid"
)

// IDGenerator assigns IDs to newly saved statements.
type IDGenerator interface {
	Generate() (string, error)
}

// UUIDv7Generator generates time-sortable UUIDv7 IDs. It is the default.
//
// Thread-safety: UUIDv7Generator is stateless and safe for concurrent use.
type UUIDv7Generator struct{}

// Generate creates a new UUIDv7 and returns it as a hyphenated string.
func (UUIDv7Generator) Generate() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

var errIDsExhausted = errors.New("fixed generator: all IDs consumed")

// FixedGenerator returns predetermined IDs in order, for tests that
// compare exact catalog contents.
//
// Thread-safety: FixedGenerator is safe for concurrent use via internal mutex.
type FixedGenerator struct {
	mu  sync.Mutex
	ids []string
	idx int
}

// NewFixedGenerator creates a generator that returns ids in order.
func NewFixedGenerator(ids ...string) *FixedGenerator {
	return &FixedGenerator{ids: ids}
}

// Generate returns the next predetermined ID, or an error once all IDs
// are consumed.
func (g *FixedGenerator) Generate() (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.idx >= len(g.ids) {
		return "", errIDsExhausted
	}
	id := g.ids[g.idx]
	g.idx++
	return id, nil
}

// Option configures a Store.
type Option func(*Store)

// WithIDGenerator overrides the default UUIDv7 ID generator.
func WithIDGenerator(gen IDGenerator) Option {
	return func(s *Store) { s.ids = gen }
}
