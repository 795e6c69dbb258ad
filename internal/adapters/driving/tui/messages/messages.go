// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/custodia-labs/walkthrough/internal/core/domain"
)

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewMenu is the main navigation menu.
	ViewMenu ViewType = iota
	// ViewReports lists saved reports.
	ViewReports
	// ViewNewInspection is the property details form.
	ViewNewInspection
	// ViewChecklist walks the current inspection.
	ViewChecklist
	// ViewHelp is the help/keybindings view.
	ViewHelp
	// ViewSettings is the settings configuration view.
	ViewSettings
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewMenu:
		return "menu"
	case ViewReports:
		return "reports"
	case ViewNewInspection:
		return "new_inspection"
	case ViewChecklist:
		return "checklist"
	case ViewHelp:
		return "help"
	case ViewSettings:
		return "settings"
	default:
		return "unknown"
	}
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}

// ReportsLoaded carries the saved report listing.
type ReportsLoaded struct {
	Reports []domain.ReportSummary
	Err     error
}

// ReportSelected asks for a saved report to be opened.
type ReportSelected struct {
	Key string
}

// ReportOpened carries a loaded report. Found is false when no backend has it.
type ReportOpened struct {
	Key     string
	Profile *domain.InspectionProfile
	Found   bool
	Err     error
}

// InspectionRequested carries the property details entered in the form.
type InspectionRequested struct {
	Profile domain.InspectionProfile
}

// ChecklistGenerated carries drafted sections for a new inspection.
type ChecklistGenerated struct {
	Profile  domain.InspectionProfile
	Sections []domain.ChecklistSection
	Err      error
}

// InspectionStarted signals the inspection service holds a new inspection.
type InspectionStarted struct {
	Profile *domain.InspectionProfile
	Err     error
}

// ReportSaved carries the outcome of a save.
type ReportSaved struct {
	Result *domain.SaveResult
	Err    error
}

// SectionGenerated carries a section drafted from a topic. Section is nil
// when the response could not be used.
type SectionGenerated struct {
	Section *domain.ChecklistSection
	Err     error
}

// SettingsLoaded carries the application settings.
type SettingsLoaded struct {
	Settings *domain.AppSettings
	Err      error
}

// SettingsSaved signals settings were saved.
type SettingsSaved struct {
	Key string
	Err error
}
