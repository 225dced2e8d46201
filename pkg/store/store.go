// Package store persists analysed lattices.
//
// A [Record] pairs a graph document with its analysis and content hash.
// Records are keyed by a random UUID assigned on [Store.Save]. Two backends
// implement [Store]:
//   - [MemoryStore]: in-process, for the CLI and tests
//   - [MongoStore]: MongoDB, for the server
package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	errs "github.com/matzehuels/latticekit/pkg/errors"
	lio "github.com/matzehuels/latticekit/pkg/io"
	"github.com/matzehuels/latticekit/pkg/lattice"
)

// DefaultListLimit caps List when the caller passes a non-positive limit.
const DefaultListLimit = 50

// Record is a stored lattice.
type Record struct {
	ID        string           `json:"id" bson:"_id"`
	Name      string           `json:"name,omitempty" bson:"name,omitempty"`
	Hash      string           `json:"hash" bson:"hash"`
	Graph     lio.Document     `json:"graph" bson:"graph"`
	Analysis  lattice.Analysis `json:"analysis" bson:"analysis"`
	CreatedAt time.Time        `json:"created_at" bson:"created_at"`
}

// NewRecord builds an unsaved record for g.
func NewRecord(name, hash string, g *lattice.Graph, a lattice.Analysis) *Record {
	return &Record{
		Name:     name,
		Hash:     hash,
		Graph:    lio.FromGraph(g),
		Analysis: a,
	}
}

// Store is the interface for record storage backends.
type Store interface {
	// Save assigns the record an ID and creation time when unset and
	// stores it.
	Save(ctx context.Context, rec *Record) error

	// Get returns the record with the given ID, or a NOT_FOUND error.
	Get(ctx context.Context, id string) (*Record, error)

	// List returns up to limit records, newest first.
	List(ctx context.Context, limit int) ([]*Record, error)

	Close(ctx context.Context) error
}

// prepare fills in the ID and timestamp of a record about to be saved.
func prepare(rec *Record) error {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	} else if err := ValidateID(rec.ID); err != nil {
		return err
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)
	}
	return nil
}

// ValidateID checks that id is a UUID.
func ValidateID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return errs.Wrap(errs.ErrCodeInvalidInput, err, "invalid record id %q", id)
	}
	return nil
}

func notFound(id string) error {
	return errs.New(errs.ErrCodeNotFound, "record %s not found", id)
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return DefaultListLimit
	}
	return limit
}
