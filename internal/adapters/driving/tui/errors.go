package tui

import "errors"

// ErrMissingReportService is returned when the report service is not provided.
var ErrMissingReportService = errors.New("tui: report service is required")

// ErrMissingInspectionService is returned when the inspection service is not provided.
var ErrMissingInspectionService = errors.New("tui: inspection service is required")

// ErrInvalidPorts is returned when ports validation fails.
var ErrInvalidPorts = errors.New("tui: invalid ports configuration")
