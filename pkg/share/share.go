// Package share provides storage for published circuit documents.
//
// The HTTP server lets a client publish a circuit once and fetch rendered
// artifacts by ID afterwards. This package defines the storage interface
// and implementations for different backends:
//   - memory: in-process storage for development and tests
//   - file: JSON files in a config directory for single-machine use
//   - redis: TTL-native storage for multi-instance deployments
//   - mongo: document storage when published circuits should survive
//     beyond a TTL window and be queryable
//
// # Usage
//
//	store := share.NewMemoryStore()
//	rec, err := share.New(doc, share.DefaultTTL)
//	if err != nil {
//	    return err
//	}
//	if err := store.Set(ctx, rec); err != nil {
//	    return err
//	}
//
//	rec, err = store.Get(ctx, rec.ID)
package share

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/gatestack/pkg/circuitfile"
)

// DefaultTTL is how long a published circuit stays retrievable by default.
const DefaultTTL = 30 * 24 * time.Hour

// Sentinel errors for share-store operations.
var (
	// ErrNotFound is returned when no record exists for an ID.
	ErrNotFound = errors.New("not found")

	// ErrExpired is returned when a record exists but has expired.
	ErrExpired = errors.New("expired")
)

// Record is one published circuit document.
type Record struct {
	ID        string                `json:"id" bson:"_id"`
	Document  *circuitfile.Document `json:"document" bson:"document"`
	CreatedAt time.Time             `json:"created_at" bson:"created_at"`
	ExpiresAt time.Time             `json:"expires_at" bson:"expires_at"`
}

// IsExpired reports whether the record has passed its expiration time.
// Records without an expiration never expire.
func (r *Record) IsExpired() bool {
	return !r.ExpiresAt.IsZero() && time.Now().After(r.ExpiresAt)
}

// New creates a Record for the given document with a fresh UUID.
// A zero ttl publishes without expiration.
func New(doc *circuitfile.Document, ttl time.Duration) (*Record, error) {
	if doc == nil {
		return nil, errors.New("nil document")
	}
	rec := &Record{
		ID:        uuid.NewString(),
		Document:  doc,
		CreatedAt: time.Now().UTC(),
	}
	if ttl > 0 {
		rec.ExpiresAt = rec.CreatedAt.Add(ttl)
	}
	return rec, nil
}

// Store is the interface for published-circuit storage backends.
type Store interface {
	// Get retrieves a record by ID. Returns ErrNotFound if no record
	// exists and ErrExpired if it exists but has expired.
	Get(ctx context.Context, id string) (*Record, error)

	// Set stores a record.
	Set(ctx context.Context, rec *Record) error

	// Delete removes a record. Deleting a missing ID is not an error.
	Delete(ctx context.Context, id string) error

	// Close releases backend resources.
	Close() error
}
