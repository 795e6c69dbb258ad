// Package tui provides an interactive terminal user interface for walking
// an inspection checklist. It implements a driving adapter following
// hexagonal architecture principles.
package tui

import (
	"github.com/custodia-labs/walkthrough/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the TUI.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Report saves and loads reports.
	Report driving.ReportService

	// Inspection holds the inspection being walked.
	Inspection driving.InspectionService

	// Generation drafts checklists. Optional.
	Generation driving.GenerationService

	// Settings manages application settings. Optional.
	Settings driving.SettingsService
}

// NewPorts creates a new Ports aggregate with the required services.
func NewPorts(report driving.ReportService, inspection driving.InspectionService) *Ports {
	return &Ports{
		Report:     report,
		Inspection: inspection,
	}
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p == nil {
		return ErrInvalidPorts
	}
	if p.Report == nil {
		return ErrMissingReportService
	}
	if p.Inspection == nil {
		return ErrMissingInspectionService
	}
	return nil
}

// generationAvailable reports whether an LLM can draft content.
func (p *Ports) generationAvailable() bool {
	return p.Generation != nil && p.Generation.Available()
}
