// Package store
package store

import (
	"context"

	"github.com/agentlogco/spool/pkg/ontology"
)

// Driver defines the interface for persisting and retrieving converted runs
// in a storage backend. Runs are stored whole, keyed by run id; the step tree
// travels inside the run document.
type Driver interface {
	// Put stores a run, replacing any stored run with the same id. Returns
	// true if the run was newly inserted, false if it replaced an existing
	// one.
	Put(ctx context.Context, run *ontology.Run) (bool, error)

	// Get retrieves a run by its id.
	Get(ctx context.Context, id string) (*ontology.Run, error)

	// Has checks if a run exists by its id.
	Has(ctx context.Context, id string) (bool, error)

	// List returns all runs in the store, ordered by start time.
	List(ctx context.Context) ([]*ontology.Run, error)

	// Delete removes a run by its id.
	Delete(ctx context.Context, id string) error

	// Close closes the store and releases any resources.
	Close() error
}
