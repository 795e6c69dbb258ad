package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrors_AreDistinct(t *testing.T) {
	errors := []error{
		ErrMissingReportService,
		ErrMissingInspectionService,
		ErrInvalidPorts,
	}

	// Ensure all errors are unique
	seen := make(map[string]bool)
	for _, err := range errors {
		msg := err.Error()
		assert.False(t, seen[msg], "duplicate error message: %s", msg)
		seen[msg] = true
	}
}

func TestErrMissingReportService_Message(t *testing.T) {
	assert.Contains(t, ErrMissingReportService.Error(), "report service")
}

func TestErrMissingInspectionService_Message(t *testing.T) {
	assert.Contains(t, ErrMissingInspectionService.Error(), "inspection service")
}
