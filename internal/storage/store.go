// Package storage persists the application collection to a key-value store.
package storage

import (
	"context"
	"time"

	"college-tracker/internal/models"
)

// SnapshotVersion is stamped into every exported snapshot.
const SnapshotVersion = "1.0"

// Snapshot is the serialized form of the collection. Dates ride through
// encoding/json's RFC3339 text form, so a round-trip restores them exactly.
type Snapshot struct {
	Applications []models.Application `json:"applications"`
	Timestamp    time.Time            `json:"timestamp"`
	Version      string               `json:"version"`
}

// Store is the persistence contract the tracker core depends on. Failures
// come back as typed errors alongside a safe fallback value, so callers
// decide whether to surface a warning.
type Store interface {
	// Load reads the collection. An unreadable or corrupt store yields an
	// empty collection plus a STORAGE_UNAVAILABLE or CORRUPT_DATA error.
	Load(ctx context.Context) ([]models.Application, error)

	// Save writes the collection and refreshes the backup copy.
	Save(ctx context.Context, apps []models.Application) error

	// Backup writes a timestamped backup copy without touching the primary.
	Backup(ctx context.Context, apps []models.Application) error

	// Restore reads the last backup. A missing backup yields nil, nil.
	Restore(ctx context.Context) ([]models.Application, error)

	// Export serializes the stored collection into a snapshot string.
	Export(ctx context.Context) (string, error)

	// Import validates a snapshot string, persists its applications and
	// returns them. Invalid data yields IMPORT_INVALID or VALIDATION_FAILED.
	Import(ctx context.Context, data string) ([]models.Application, error)
}
