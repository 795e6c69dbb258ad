package mcp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/walkthrough/internal/adapters/driven/idgen"
	"github.com/custodia-labs/walkthrough/internal/core/services"
)

func TestNewServer(t *testing.T) {
	t.Run("missing report service returns error", func(t *testing.T) {
		ports := &Ports{}
		server, err := NewServer(ports)
		require.Error(t, err)
		assert.Nil(t, server)
		assert.ErrorIs(t, err, ErrMissingReportService)
	})

	t.Run("valid ports creates server", func(t *testing.T) {
		f := newFixture(t)
		assert.NotNil(t, f.server)
	})
}

func TestPorts_Validate(t *testing.T) {
	t.Run("missing report service", func(t *testing.T) {
		ports := &Ports{}
		assert.ErrorIs(t, ports.Validate(), ErrMissingReportService)
	})

	t.Run("missing inspection service", func(t *testing.T) {
		ports := &Ports{Report: &mockReportService{}}
		assert.ErrorIs(t, ports.Validate(), ErrMissingInspectionService)
	})

	t.Run("all ports is valid", func(t *testing.T) {
		ports := &Ports{
			Report:     &mockReportService{},
			Inspection: services.NewInspectionService(idgen.New()),
		}
		assert.NoError(t, ports.Validate())
	})
}
