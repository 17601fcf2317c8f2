// Package store persists saved designs.
//
// A design is a named layout together with the prompt it was generated from.
// Backends:
//   - memstore: in-process map for tests and ephemeral servers
//   - sqlstore: database/sql over SQLite (default) or Postgres
//   - mongostore: MongoDB collection
//
// Every backend returns an error with code DESIGN_NOT_FOUND for unknown ids
// and lists designs newest first.
package store

import (
	"context"
	"time"

	"github.com/matzehuels/dreamhouse/pkg/errors"
	"github.com/matzehuels/dreamhouse/pkg/plan"
)

// Backend names.
const (
	BackendMemory   = "memory"
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
	BackendMongo    = "mongo"
)

// DefaultListLimit bounds List when the caller passes zero.
const DefaultListLimit = 100

// Design is a saved layout.
type Design struct {
	ID        string      `json:"id" bson:"_id"`
	Name      string      `json:"name" bson:"name"`
	Prompt    string      `json:"prompt" bson:"prompt"`
	Layout    plan.Layout `json:"data" bson:"data"`
	CreatedAt time.Time   `json:"created_at" bson:"created_at"`
}

// Summary is a design without its layout, as returned by List.
type Summary struct {
	ID        string    `json:"id" bson:"_id"`
	Name      string    `json:"name" bson:"name"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}

// Summary returns d without its layout.
func (d Design) Summary() Summary {
	return Summary{ID: d.ID, Name: d.Name, CreatedAt: d.CreatedAt}
}

// Store is implemented by every backend.
type Store interface {
	// Save stores a new design and returns its id. ID and CreatedAt of d
	// are assigned by the store.
	Save(ctx context.Context, d Design) (string, error)

	// List returns up to limit summaries, newest first. A limit <= 0 means
	// DefaultListLimit.
	List(ctx context.Context, limit int) ([]Summary, error)

	// Get returns the design with id, or a DESIGN_NOT_FOUND error.
	Get(ctx context.Context, id string) (Design, error)

	// Delete removes the design with id, or returns DESIGN_NOT_FOUND.
	Delete(ctx context.Context, id string) error

	// Close releases backend resources.
	Close() error
}

// ErrNotFound returns the coded error for an unknown design id.
func ErrNotFound(id string) error {
	return errors.New(errors.ErrCodeDesignNotFound, "design %q not found", id)
}

// IsNotFound reports whether err is a missing-design error.
func IsNotFound(err error) bool {
	return errors.Is(err, errors.ErrCodeDesignNotFound)
}

// Prepare validates d before it is written and fills defaults. Backends
// call it first in Save.
func Prepare(d Design) (Design, error) {
	if d.Name == "" {
		d.Name = d.Layout.Name
	}
	if d.Name == "" {
		d.Name = plan.DefaultName
	}
	if err := errors.ValidateDesignName(d.Name); err != nil {
		return Design{}, err
	}
	if err := errors.ValidatePrompt(d.Prompt); err != nil {
		return Design{}, err
	}
	if err := d.Layout.Validate(); err != nil {
		return Design{}, err
	}
	d.Layout = d.Layout.Clone()
	d.CreatedAt = time.Now().UTC()
	return d, nil
}

// Limit normalizes a list limit.
func Limit(limit int) int {
	if limit <= 0 {
		return DefaultListLimit
	}
	return limit
}
