// Package mcp provides an MCP (Model Context Protocol) server adapter for walkthrough.
// It lets AI assistants read saved inspection reports and record findings on them.
package mcp

import "errors"

// ErrMissingReportService is returned when the report service is not provided.
var ErrMissingReportService = errors.New("mcp: report service is required")

// ErrMissingInspectionService is returned when the inspection service is not provided.
var ErrMissingInspectionService = errors.New("mcp: inspection service is required")
