package cli

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/walkthrough/internal/core/domain"
)

func TestNewCmd_BuiltinChecklist(t *testing.T) {
	env := setupTestServices(t)
	require.NoError(t, env.settings.Set("inspector.name", "Dana"))

	out, err := execute(t, "new", "--address", "12 Elm St", "--floors", "2")

	require.NoError(t, err)
	assert.Contains(t, out, "Saved to this device.")
	assert.Contains(t, out, "Report: ")
	assert.Equal(t, 1, env.local.SaveCount())

	reports, err := env.report.List(t.Context())
	require.NoError(t, err)
	require.Len(t, reports, 1)
	saved := env.load(t, reports[0].ID)
	assert.Equal(t, "12 Elm St", saved.Address)
	assert.Equal(t, 2, saved.Floors)
	assert.Equal(t, "Dana", saved.InspectorName)
	assert.Len(t, saved.Sections, len(domain.DefaultChecklist(func() string { return "" })))
	for _, s := range saved.Sections {
		assert.NotEmpty(t, s.ID)
	}
}

func TestNewCmd_Generated(t *testing.T) {
	env := setupTestServices(t)
	env.generation.AvailableValue = true

	_, err := execute(t, "new", "--address", "1 Oak Ave")

	require.NoError(t, err)
	reports, err := env.report.List(t.Context())
	require.NoError(t, err)
	saved := env.load(t, reports[0].ShortID)
	require.Len(t, saved.Sections, 1)
	assert.Equal(t, "Drafted", saved.Sections[0].Title)
}

func TestNewCmd_NoGenerate(t *testing.T) {
	env := setupTestServices(t)
	env.generation.AvailableValue = true

	_, err := execute(t, "new", "--address", "1 Oak Ave", "--no-generate")

	require.NoError(t, err)
	reports, err := env.report.List(t.Context())
	require.NoError(t, err)
	saved := env.load(t, reports[0].ID)
	assert.Equal(t, "Roof", saved.Sections[0].Title)
}

func TestNewCmd_BlankAddress(t *testing.T) {
	setupTestServices(t)

	_, err := execute(t, "new", "--address", "   ")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "--address must not be empty")
}

func TestShowCmd(t *testing.T) {
	env := setupTestServices(t)
	result := env.seedReport(t, "9 Pine Rd")

	out, err := execute(t, "show", result.ShortID)

	require.NoError(t, err)
	assert.Contains(t, out, "9 Pine Rd")
	assert.Contains(t, out, "("+result.ShortID+")")
	assert.Contains(t, out, "Progress: 0%")
	assert.Contains(t, out, "[1] Roof  (pending)")
	assert.Contains(t, out, "[untouched]")
}

func TestShowCmd_JSON(t *testing.T) {
	env := setupTestServices(t)
	result := env.seedReport(t, "9 Pine Rd")

	out, err := execute(t, "show", result.ID, "--json")

	require.NoError(t, err)
	var profile domain.InspectionProfile
	require.NoError(t, json.Unmarshal([]byte(out), &profile))
	assert.Equal(t, "9 Pine Rd", profile.Address)
	assert.Equal(t, result.ShortID, profile.ShortID)
}

func TestShowCmd_NotFound(t *testing.T) {
	setupTestServices(t)

	_, err := execute(t, "show", "NOPE42")

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestOpenCmd_ShareLink(t *testing.T) {
	env := setupTestServices(t)
	result := env.seedReport(t, "9 Pine Rd")

	out, err := execute(t, "open", "https://walkthrough.app/?report="+result.ShortID)

	require.NoError(t, err)
	assert.Contains(t, out, "9 Pine Rd")
	current, err := env.inspection.Current()
	require.NoError(t, err)
	assert.Equal(t, result.ShortID, current.ShortID)
}

func TestOpenCmd_MissingParam(t *testing.T) {
	setupTestServices(t)

	_, err := execute(t, "open", "https://walkthrough.app/?other=1")

	require.Error(t, err)
	assert.Contains(t, err.Error(), `no "report" parameter`)
}

func TestShareCmd(t *testing.T) {
	env := setupTestServices(t)
	result := env.seedReport(t, "9 Pine Rd")

	out, err := execute(t, "share", result.ID)

	require.NoError(t, err)
	assert.Contains(t, out, "https://walkthrough.app/?report="+result.ShortID)
}

func TestReportsListCmd(t *testing.T) {
	env := setupTestServices(t)

	out, err := execute(t, "reports", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No saved reports.")

	result := env.seedReport(t, "3 Birch Ln")
	out, err = execute(t, "reports", "list")

	require.NoError(t, err)
	assert.Contains(t, out, result.ShortID)
	assert.Contains(t, out, "3 Birch Ln")
}

func TestResolveSection(t *testing.T) {
	p := &domain.InspectionProfile{Sections: []domain.ChecklistSection{
		{ID: "s1", Title: "Roof"},
		{ID: "s2", Title: "Exterior"},
	}}

	tests := []struct {
		ref    string
		wantID string
	}{
		{"s2", "s2"},
		{"1", "s1"},
		{"exterior", "s2"},
	}
	for _, tt := range tests {
		s, err := resolveSection(p, tt.ref)
		require.NoError(t, err, tt.ref)
		assert.Equal(t, tt.wantID, s.ID)
	}

	_, err := resolveSection(p, "3")
	assert.ErrorIs(t, err, domain.ErrSectionNotFound)
}

func TestResolveItem(t *testing.T) {
	s := &domain.ChecklistSection{Items: []domain.ChecklistItem{
		{ID: "i1", Label: "Chimney"},
		{ID: "i2", Label: "Gutters"},
	}}

	item, err := resolveItem(s, "2")
	require.NoError(t, err)
	assert.Equal(t, "i2", item.ID)

	item, err = resolveItem(s, "CHIMNEY")
	require.NoError(t, err)
	assert.Equal(t, "i1", item.ID)

	_, err = resolveItem(s, "0")
	assert.ErrorIs(t, err, domain.ErrItemNotFound)
}
