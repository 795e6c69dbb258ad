package driven

import (
	"context"

	"github.com/custodia-labs/walkthrough/internal/core/domain"
)

// ReportStore persists saved reports under a primary key and a short key.
// Implementations include the local fallback file, SQLite and Firestore.
//
// Remote implementations classify backend failures onto domain errors:
// domain.ErrPermissionDenied and domain.ErrSchemaMissing are recoverable,
// anything else is a hard failure.
type ReportStore interface {
	// Name identifies the backend in logs and warnings.
	Name() string

	// Save inserts or updates a record keyed by its ID.
	// It returns the record as the backend confirmed it.
	Save(ctx context.Context, record *domain.ReportRecord) (*domain.ReportRecord, error)

	// Get retrieves a record by primary key.
	// Returns domain.ErrNotFound if absent.
	Get(ctx context.Context, id string) (*domain.ReportRecord, error)

	// GetByShortID retrieves a record by its shareable key.
	// Returns domain.ErrNotFound if absent.
	GetByShortID(ctx context.Context, shortID string) (*domain.ReportRecord, error)

	// List returns records, newest first. An empty userID lists every record.
	List(ctx context.Context, userID string) ([]domain.ReportRecord, error)

	// Delete removes a record by primary key. Deleting a missing record is not an error.
	Delete(ctx context.Context, id string) error
}
