// iface.go defines the Snapshot interface for dependency injection and
// testing.
//
// The concrete *Store type satisfies this interface. Code that depends on
// persistence (the cmd layer, the watch loop) accepts Snapshot instead of
// *Store, enabling mock injection in tests.
package store

import "github.com/lpmorais/dosewatch/pkg/model"

// Snapshot is the whole-state persistence contract: read the full record
// list, rewrite it in full, nothing incremental.
type Snapshot interface {
	// Load reads the full medication snapshot.
	Load() ([]model.Medication, error)

	// Replace rewrites the full snapshot atomically.
	Replace(meds []model.Medication) error

	// Close releases the underlying database.
	Close() error
}

// Compile-time check that *Store implements Snapshot.
var _ Snapshot = (*Store)(nil)
