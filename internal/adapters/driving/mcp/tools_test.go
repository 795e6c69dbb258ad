package mcp

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/walkthrough/internal/adapters/driven/idgen"
	"github.com/custodia-labs/walkthrough/internal/core/domain"
	"github.com/custodia-labs/walkthrough/internal/core/services"
)

func TestServer_handleGetReport(t *testing.T) {
	ctx := context.Background()

	t.Run("returns visible items", func(t *testing.T) {
		f := newFixture(t)
		result := f.seed(t)

		_, output, err := f.server.handleGetReport(ctx, nil, ReportInput{Key: result.ShortID})

		require.NoError(t, err)
		assert.Equal(t, result.ID, output.ID)
		assert.Equal(t, result.ShortID, output.ShortID)
		assert.Equal(t, "9 Pine Rd", output.Address)
		assert.Equal(t, 0, output.Progress)
		assert.Equal(t, 3, output.Summary.Total)
		require.Len(t, output.Sections, 2)
		assert.Equal(t, "Roof", output.Sections[0].Title)
		assert.Equal(t, []string{"Asphalt", "Metal"}, output.Sections[0].Items[0].Options)
		require.Len(t, output.Sections[1].Items, 1)
		assert.Equal(t, 1, output.Sections[1].Hidden)
	})

	t.Run("include hidden", func(t *testing.T) {
		f := newFixture(t)
		result := f.seed(t)

		_, output, err := f.server.handleGetReport(ctx, nil, ReportInput{Key: result.ID, IncludeHidden: true})

		require.NoError(t, err)
		require.Len(t, output.Sections[1].Items, 2)
		assert.True(t, output.Sections[1].Items[1].Hidden)
		assert.Zero(t, output.Sections[1].Hidden)
	})

	t.Run("unknown key", func(t *testing.T) {
		f := newFixture(t)

		_, _, err := f.server.handleGetReport(ctx, nil, ReportInput{Key: "NOPE42"})

		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("load failure", func(t *testing.T) {
		server, err := NewServer(&Ports{
			Report:     &mockReportService{err: errors.New("disk on fire")},
			Inspection: services.NewInspectionService(idgen.New()),
		})
		require.NoError(t, err)

		_, _, err = server.handleGetReport(ctx, nil, ReportInput{Key: "k"})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "disk on fire")
	})
}

func TestServer_handleSetItemStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("sets status and saves", func(t *testing.T) {
		f := newFixture(t)
		result := f.seed(t)

		_, output, err := f.server.handleSetItemStatus(ctx, nil, ItemStatusInput{
			Key: result.ShortID, Section: "roof", Item: "Chimney", Status: "Dangerous",
		})

		require.NoError(t, err)
		assert.Equal(t, result.ShortID, output.Key)
		assert.Equal(t, 33, output.Progress)
		assert.Equal(t, 1, output.Summary.Issues)
		assert.True(t, output.Remote)

		saved := f.load(t, result.ID)
		assert.Equal(t, domain.ItemStatusDangerous, saved.Sections[0].Items[1].Status)
		assert.Equal(t, domain.SectionStatusInProgress, saved.Sections[0].Status)
		assert.Equal(t, 2, f.remote.SaveCount())
	})

	t.Run("invalid status", func(t *testing.T) {
		f := newFixture(t)
		result := f.seed(t)

		_, _, err := f.server.handleSetItemStatus(ctx, nil, ItemStatusInput{
			Key: result.ShortID, Section: "roof", Item: "Chimney", Status: "fine",
		})

		assert.ErrorIs(t, err, domain.ErrInvalidInput)
		assert.Equal(t, 1, f.remote.SaveCount())
	})

	t.Run("unknown section", func(t *testing.T) {
		f := newFixture(t)
		result := f.seed(t)

		_, _, err := f.server.handleSetItemStatus(ctx, nil, ItemStatusInput{
			Key: result.ShortID, Section: "Garage", Item: "Door", Status: "pass",
		})

		assert.ErrorIs(t, err, domain.ErrSectionNotFound)
	})

	t.Run("unknown item", func(t *testing.T) {
		f := newFixture(t)
		result := f.seed(t)

		_, _, err := f.server.handleSetItemStatus(ctx, nil, ItemStatusInput{
			Key: result.ShortID, Section: "Roof", Item: "Skylight", Status: "pass",
		})

		assert.ErrorIs(t, err, domain.ErrItemNotFound)
	})

	t.Run("recoverable remote failure is a warning", func(t *testing.T) {
		f := newFixture(t)
		result := f.seed(t)
		f.remote.SaveErr = domain.ErrPermissionDenied

		_, output, err := f.server.handleSetItemStatus(ctx, nil, ItemStatusInput{
			Key: result.ShortID, Section: "Roof", Item: "Shingles", Status: "pass",
		})

		require.NoError(t, err)
		assert.False(t, output.Remote)
		require.Len(t, output.Warnings, 1)
		assert.Contains(t, output.Warnings[0], "remote")
	})

	t.Run("save failure", func(t *testing.T) {
		profile := domain.InspectionProfile{
			SavedReportID: "r1",
			Sections: []domain.ChecklistSection{{
				ID: "s1", Title: "Roof",
				Items: []domain.ChecklistItem{{ID: "i1", Label: "Shingles"}},
			}},
		}
		server, err := NewServer(&Ports{
			Report:     &mockReportService{profile: &profile, found: true, saveErr: errors.New("offline")},
			Inspection: services.NewInspectionService(idgen.New()),
		})
		require.NoError(t, err)

		_, _, err = server.handleSetItemStatus(ctx, nil, ItemStatusInput{
			Key: "r1", Section: "s1", Item: "i1", Status: "pass",
		})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "saving report: offline")
	})
}

func TestServer_handleSetItemNotes(t *testing.T) {
	f := newFixture(t)
	result := f.seed(t)

	_, output, err := f.server.handleSetItemNotes(context.Background(), nil, ItemNotesInput{
		Key: result.ID, Section: "Kitchen", Item: "sink", Notes: "slow drain",
	})

	require.NoError(t, err)
	assert.Equal(t, 0, output.Progress)
	assert.Equal(t, "slow drain", f.load(t, result.ID).Sections[1].Items[0].Notes)
}

func TestServer_handleReportProgress(t *testing.T) {
	f := newFixture(t)
	result := f.seed(t)
	ctx := context.Background()
	_, _, err := f.server.handleSetItemStatus(ctx, nil, ItemStatusInput{
		Key: result.ShortID, Section: "Roof", Item: "Shingles", Status: "pass",
	})
	require.NoError(t, err)
	_, _, err = f.server.handleSetItemStatus(ctx, nil, ItemStatusInput{
		Key: result.ShortID, Section: "Kitchen", Item: "Sink", Status: "info",
	})
	require.NoError(t, err)

	_, output, err := f.server.handleReportProgress(ctx, nil, ReportInput{Key: result.ShortID})

	require.NoError(t, err)
	assert.Equal(t, result.ShortID, output.Key)
	assert.Equal(t, 67, output.Progress)
	assert.Equal(t, domain.SummaryCounts{Total: 3, Passed: 1, Info: 1, Remaining: 1}, output.Summary)
}

func TestResolveItem(t *testing.T) {
	p := &domain.InspectionProfile{Sections: []domain.ChecklistSection{
		{ID: "s1", Title: "Roof", Items: []domain.ChecklistItem{{ID: "i1", Label: "Chimney"}}},
	}}

	sectionID, itemID, err := resolveItem(p, "s1", "i1")
	require.NoError(t, err)
	assert.Equal(t, "s1", sectionID)
	assert.Equal(t, "i1", itemID)

	sectionID, itemID, err = resolveItem(p, "ROOF", "chimney")
	require.NoError(t, err)
	assert.Equal(t, "s1", sectionID)
	assert.Equal(t, "i1", itemID)
}
