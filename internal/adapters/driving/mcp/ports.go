package mcp

import (
	"github.com/custodia-labs/walkthrough/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Report loads and saves reports.
	Report driving.ReportService

	// Inspection applies edits to a loaded report.
	Inspection driving.InspectionService
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Report == nil {
		return ErrMissingReportService
	}
	if p.Inspection == nil {
		return ErrMissingInspectionService
	}
	return nil
}
