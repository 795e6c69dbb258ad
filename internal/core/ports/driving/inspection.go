package driving

import "github.com/custodia-labs/walkthrough/internal/core/domain"

// InspectionService owns the inspection currently being walked.
// Every mutation replaces the held profile with the snapshot returned by the
// corresponding domain operation. Mutations that name an unknown section or
// item return an error wrapping domain.ErrNotFound and leave the profile as is.
type InspectionService interface {
	// Start begins a new inspection. ID and CreatedAt are assigned here;
	// sections without identifiers are given fresh ones.
	Start(profile domain.InspectionProfile) (*domain.InspectionProfile, error)

	// Hydrate replaces the current inspection with a loaded one.
	Hydrate(profile domain.InspectionProfile)

	// Current returns a copy of the current inspection.
	// Returns domain.ErrNoInspection before Start or Hydrate.
	Current() (*domain.InspectionProfile, error)

	// SetItemStatus sets an item's status.
	SetItemStatus(sectionID, itemID string, status domain.ItemStatus) error

	// SetItemOption sets an item's selected option.
	SetItemOption(sectionID, itemID, option string) error

	// SetItemNotes replaces an item's notes with user input.
	SetItemNotes(sectionID, itemID, text string) error

	// AppendAnalysis appends a machine-generated note to an item.
	AppendAnalysis(sectionID, itemID, text string) error

	// SetItemVisibility hides or restores an item.
	SetItemVisibility(sectionID, itemID string, hidden bool) error

	// ShowAllHidden restores every hidden item in a section.
	ShowAllHidden(sectionID string) error

	// AddPhoto appends an item photo, or sets the section cover when itemID is empty.
	AddPhoto(sectionID, itemID, image string) error

	// RemovePhoto removes an item photo by position.
	RemovePhoto(sectionID, itemID string, index int) error

	// AppendSection adds a section, assigning fresh identifiers to it and its items.
	AppendSection(section domain.ChecklistSection) (*domain.ChecklistSection, error)

	// AddItems appends items with the given labels to a section.
	AddItems(sectionID string, labels []string) ([]domain.ChecklistItem, error)

	// Progress returns the completion percentage over visible items.
	Progress() (int, error)

	// Summary returns statistics over visible items.
	Summary() (domain.SummaryCounts, error)
}
