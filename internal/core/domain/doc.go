// Package domain defines the core business entities for walkthrough.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - InspectionProfile: the root document for one property visit
//   - ChecklistSection: a named inspection area grouping items
//   - ChecklistItem: a checklist line with status, notes and photos
//   - ReportRecord: a saved report as storage backends see it
//
// The checklist operations (SetItemStatus, AddPhoto, Progress, ...) are pure:
// they return a new profile and never perform I/O.
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
