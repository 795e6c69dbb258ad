package driving

import (
	"context"

	"github.com/custodia-labs/walkthrough/internal/core/domain"
)

// ReportService saves and loads inspections across the local fallback store
// and any configured remote stores.
type ReportService interface {
	// Save stores the profile. Recoverable remote failures are reported as
	// warnings in the result; any other remote failure is returned as an error.
	Save(ctx context.Context, profile domain.InspectionProfile) (*domain.SaveResult, error)

	// Load retrieves a report by primary key or short key. A report that exists
	// in no backend yields found == false and a nil error.
	Load(ctx context.Context, key string) (profile *domain.InspectionProfile, found bool, err error)

	// List returns reports from the local store, newest first.
	List(ctx context.Context) ([]domain.ReportSummary, error)

	// HasRemote reports whether a remote store is configured.
	HasRemote() bool
}
