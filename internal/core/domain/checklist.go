package domain

import "time"

// ItemStatus is the inspector's verdict on a single checklist item.
type ItemStatus string

// Available item statuses.
const (
	// ItemStatusUntouched is the initial status of every item.
	ItemStatusUntouched ItemStatus = "untouched"

	// ItemStatusPass means the item was inspected and found acceptable.
	ItemStatusPass ItemStatus = "pass"

	// ItemStatusInfo records an observation that is neither a pass nor an issue.
	ItemStatusInfo ItemStatus = "info"

	// ItemStatusAttention flags a minor issue.
	ItemStatusAttention ItemStatus = "attention"

	// ItemStatusModerate flags an issue that needs repair.
	ItemStatusModerate ItemStatus = "moderate"

	// ItemStatusDangerous flags a safety hazard.
	ItemStatusDangerous ItemStatus = "dangerous"
)

// IsValid returns true if the status is recognised.
func (s ItemStatus) IsValid() bool {
	switch s {
	case ItemStatusUntouched, ItemStatusPass, ItemStatusInfo,
		ItemStatusAttention, ItemStatusModerate, ItemStatusDangerous:
		return true
	default:
		return false
	}
}

// IsAnswered returns true once the inspector has given the item any verdict.
func (s ItemStatus) IsAnswered() bool {
	return s != ItemStatusUntouched && s != ""
}

// IsIssue returns true for attention, moderate and dangerous.
func (s ItemStatus) IsIssue() bool {
	return s == ItemStatusAttention || s == ItemStatusModerate || s == ItemStatusDangerous
}

// String returns the string representation.
func (s ItemStatus) String() string {
	return string(s)
}

// Description returns a human-readable label for the status.
func (s ItemStatus) Description() string {
	switch s {
	case ItemStatusUntouched:
		return "Not inspected"
	case ItemStatusPass:
		return "Pass"
	case ItemStatusInfo:
		return "Info"
	case ItemStatusAttention:
		return "Needs attention"
	case ItemStatusModerate:
		return "Moderate issue"
	case ItemStatusDangerous:
		return "Dangerous"
	default:
		return unknownDescription
	}
}

// AllItemStatuses returns every item status in severity order.
func AllItemStatuses() []ItemStatus {
	return []ItemStatus{
		ItemStatusUntouched,
		ItemStatusPass,
		ItemStatusInfo,
		ItemStatusAttention,
		ItemStatusModerate,
		ItemStatusDangerous,
	}
}

// SectionStatus is the rollup of a section's item statuses.
type SectionStatus string

// Available section statuses.
const (
	SectionStatusPending    SectionStatus = "pending"
	SectionStatusInProgress SectionStatus = "in-progress"
	SectionStatusCompleted  SectionStatus = "completed"
)

// String returns the string representation.
func (s SectionStatus) String() string {
	return string(s)
}

// ChecklistItem is a single checklist line.
type ChecklistItem struct {
	// ID is unique within the parent section.
	ID string `json:"id"`

	// Label is the text shown to the inspector.
	Label string `json:"label"`

	// Status is the current verdict. Untouched until the inspector answers.
	Status ItemStatus `json:"status"`

	// Notes is free text. Machine-generated analysis is appended, user edits replace.
	Notes string `json:"notes,omitempty"`

	// Photos is an ordered list of image references.
	Photos []string `json:"photos,omitempty"`

	// Options is an optional fixed set of suggested values.
	Options []string `json:"options,omitempty"`

	// SelectedOption is expected to be one of Options but is not enforced.
	SelectedOption string `json:"selectedOption,omitempty"`

	// IsHidden excludes the item from progress, statistics and default listings.
	IsHidden bool `json:"isHidden,omitempty"`
}

// ChecklistSection is a named inspection area grouping items.
type ChecklistSection struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`

	// IconName is a symbolic reference into an external icon set.
	IconName string `json:"iconName,omitempty"`

	// Items are kept in insertion order.
	Items []ChecklistItem `json:"items"`

	// PhotoURL is the single cover image. Last write wins.
	PhotoURL string `json:"photoUrl,omitempty"`

	// Status is derived from Items; see DeriveSectionStatus.
	Status SectionStatus `json:"status"`
}

// InspectionProfile is the root document for one property visit.
type InspectionProfile struct {
	// ID is the local identifier assigned when the inspection starts.
	ID string `json:"id"`

	// SavedReportID is the primary key of the saved report.
	SavedReportID string `json:"savedReportId,omitempty"`

	// ShortID is the human-shareable key of the saved report.
	ShortID string `json:"shortId,omitempty"`

	// UserID is the owner, set when the report was saved by a signed-in user.
	UserID string `json:"userId,omitempty"`

	// Property description.
	Address      string `json:"address"`
	PropertyType string `json:"propertyType,omitempty"`
	Floors       int    `json:"floors,omitempty"`
	Baths        int    `json:"baths,omitempty"`
	Bedrooms     int    `json:"bedrooms,omitempty"`
	SquareFeet   int    `json:"sqft,omitempty"`
	YearBuilt    int    `json:"yearBuilt,omitempty"`

	// Conditions on the day.
	Weather     string `json:"weather,omitempty"`
	OutsideTemp string `json:"outsideTemp,omitempty"`
	InsideTemp  string `json:"insideTemp,omitempty"`

	// Utilities.
	GasType       string `json:"gasType,omitempty"`
	SewerType     string `json:"sewerType,omitempty"`
	WaterType     string `json:"waterType,omitempty"`
	ElectricPanel string `json:"electricPanel,omitempty"`
	Generator     string `json:"generator,omitempty"`

	InspectorName string `json:"inspectorName,omitempty"`

	// CreatedAt is set once when the inspection starts.
	CreatedAt time.Time `json:"createdAt"`

	Sections []ChecklistSection `json:"sections"`
}

// DeriveSectionStatus rolls item statuses up into a section status.
// The rollup covers every item, hidden or not.
func DeriveSectionStatus(items []ChecklistItem) SectionStatus {
	answered := 0
	for i := range items {
		if items[i].Status.IsAnswered() {
			answered++
		}
	}
	switch {
	case len(items) > 0 && answered == len(items):
		return SectionStatusCompleted
	case answered > 0:
		return SectionStatusInProgress
	default:
		return SectionStatusPending
	}
}

// VisibleItems returns the items that are not hidden, in order.
func (s *ChecklistSection) VisibleItems() []ChecklistItem {
	visible := make([]ChecklistItem, 0, len(s.Items))
	for i := range s.Items {
		if !s.Items[i].IsHidden {
			visible = append(visible, s.Items[i])
		}
	}
	return visible
}

// HiddenCount returns the number of hidden items in the section.
func (s *ChecklistSection) HiddenCount() int {
	n := 0
	for i := range s.Items {
		if s.Items[i].IsHidden {
			n++
		}
	}
	return n
}

// Section returns the section with the given ID.
func (p *InspectionProfile) Section(sectionID string) (*ChecklistSection, bool) {
	for i := range p.Sections {
		if p.Sections[i].ID == sectionID {
			return &p.Sections[i], true
		}
	}
	return nil, false
}

// Item returns the item with the given ID within a section.
func (p *InspectionProfile) Item(sectionID, itemID string) (*ChecklistItem, bool) {
	section, ok := p.Section(sectionID)
	if !ok {
		return nil, false
	}
	for i := range section.Items {
		if section.Items[i].ID == itemID {
			return &section.Items[i], true
		}
	}
	return nil, false
}

// Clone returns a deep copy of the profile.
func (p InspectionProfile) Clone() InspectionProfile {
	out := p
	if p.Sections != nil {
		out.Sections = make([]ChecklistSection, len(p.Sections))
		for i := range p.Sections {
			out.Sections[i] = p.Sections[i].clone()
		}
	}
	return out
}

func (s ChecklistSection) clone() ChecklistSection {
	out := s
	if s.Items != nil {
		out.Items = make([]ChecklistItem, len(s.Items))
		for i := range s.Items {
			out.Items[i] = s.Items[i].clone()
		}
	}
	return out
}

func (it ChecklistItem) clone() ChecklistItem {
	out := it
	if it.Photos != nil {
		out.Photos = append([]string(nil), it.Photos...)
	}
	if it.Options != nil {
		out.Options = append([]string(nil), it.Options...)
	}
	return out
}
