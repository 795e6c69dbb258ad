package domain

import "time"

// ReportRecord is a saved report as a storage backend sees it: two keys,
// an optional owner and an opaque document payload.
type ReportRecord struct {
	// ID is the primary key.
	ID string

	// ShortID is the secondary shareable key.
	ShortID string

	// UserID is the owner, empty for anonymous saves.
	UserID string

	// Data is the serialised InspectionProfile.
	Data []byte

	// CreatedAt is when the record was first written.
	CreatedAt time.Time
}

// SaveResult reports where a save landed.
type SaveResult struct {
	// ID is the primary key of the saved report.
	ID string

	// ShortID is the shareable key of the saved report.
	ShortID string

	// Remote is true when at least one remote backend confirmed the write.
	Remote bool

	// Warnings lists recoverable remote failures. The report is still stored locally.
	Warnings []string
}

// ReportSummary is a listing entry for a saved report.
type ReportSummary struct {
	ID        string
	ShortID   string
	Address   string
	Progress  int
	CreatedAt time.Time
}
