package services

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/walkthrough/internal/core/domain"
)

func startedInspection(t *testing.T) (*InspectionService, *domain.InspectionProfile) {
	t.Helper()
	service := NewInspectionService(&sequentialIDs{})
	p, err := service.Start(domain.InspectionProfile{
		Address: "12 Elm St",
		Sections: []domain.ChecklistSection{
			{Title: "Roof", Items: []domain.ChecklistItem{{Label: "Shingles"}, {Label: "Gutters"}}},
			{ID: "plumbing", Title: "Plumbing", Items: []domain.ChecklistItem{{ID: "heater", Label: "Water heater"}}},
		},
	})
	require.NoError(t, err)
	return service, p
}

func TestInspectionService_NoInspection(t *testing.T) {
	service := NewInspectionService(&sequentialIDs{})

	_, err := service.Current()
	assert.ErrorIs(t, err, domain.ErrNoInspection)
	assert.ErrorIs(t, service.SetItemStatus("s", "i", domain.ItemStatusPass), domain.ErrNoInspection)
	_, err = service.Progress()
	assert.ErrorIs(t, err, domain.ErrNoInspection)
	_, err = service.Summary()
	assert.ErrorIs(t, err, domain.ErrNoInspection)
}

func TestInspectionService_Start_AssignsIdentifiers(t *testing.T) {
	_, p := startedInspection(t)

	assert.NotEmpty(t, p.ID)
	assert.False(t, p.CreatedAt.IsZero())
	assert.NotEmpty(t, p.Sections[0].ID)
	assert.NotEmpty(t, p.Sections[0].Items[0].ID)
	assert.NotEqual(t, p.Sections[0].Items[0].ID, p.Sections[0].Items[1].ID)
	assert.Equal(t, domain.ItemStatusUntouched, p.Sections[0].Items[0].Status)
	assert.Equal(t, domain.SectionStatusPending, p.Sections[0].Status)

	// Existing identifiers are kept.
	assert.Equal(t, "plumbing", p.Sections[1].ID)
	assert.Equal(t, "heater", p.Sections[1].Items[0].ID)
}

func TestInspectionService_Start_ClearsSavedKeys(t *testing.T) {
	service := NewInspectionService(&sequentialIDs{})
	p, err := service.Start(domain.InspectionProfile{SavedReportID: "old", ShortID: "OLDKEY123"})
	require.NoError(t, err)
	assert.Empty(t, p.SavedReportID)
	assert.Empty(t, p.ShortID)
}

func TestInspectionService_Mutations(t *testing.T) {
	service, _ := startedInspection(t)

	require.NoError(t, service.SetItemStatus("plumbing", "heater", domain.ItemStatusModerate))
	require.NoError(t, service.SetItemOption("plumbing", "heater", "Gas"))
	require.NoError(t, service.SetItemNotes("plumbing", "heater", "leaking"))
	require.NoError(t, service.AppendAnalysis("plumbing", "heater", "rust at base"))
	require.NoError(t, service.AddPhoto("plumbing", "heater", "heater.jpg"))
	require.NoError(t, service.AddPhoto("plumbing", "", "cover.jpg"))

	current, err := service.Current()
	require.NoError(t, err)
	item := current.Sections[1].Items[0]
	assert.Equal(t, domain.ItemStatusModerate, item.Status)
	assert.Equal(t, "Gas", item.SelectedOption)
	assert.Equal(t, "leaking\nAI Note: rust at base", item.Notes)
	assert.Equal(t, []string{"heater.jpg"}, item.Photos)
	assert.Equal(t, "cover.jpg", current.Sections[1].PhotoURL)
	assert.Equal(t, domain.SectionStatusCompleted, current.Sections[1].Status)

	require.NoError(t, service.RemovePhoto("plumbing", "heater", 0))
	current, err = service.Current()
	require.NoError(t, err)
	assert.Empty(t, current.Sections[1].Items[0].Photos)
}

func TestInspectionService_AppendAnalysis_BlankIsNoOp(t *testing.T) {
	service, _ := startedInspection(t)
	require.NoError(t, service.SetItemNotes("plumbing", "heater", "leaking"))
	require.NoError(t, service.AppendAnalysis("plumbing", "heater", "   "))

	current, err := service.Current()
	require.NoError(t, err)
	assert.Equal(t, "leaking", current.Sections[1].Items[0].Notes)
}

func TestInspectionService_UnknownTargetsLeaveProfile(t *testing.T) {
	service, _ := startedInspection(t)
	before, err := service.Current()
	require.NoError(t, err)

	assert.ErrorIs(t, service.SetItemStatus("nope", "heater", domain.ItemStatusPass), domain.ErrNotFound)
	assert.ErrorIs(t, service.SetItemNotes("plumbing", "nope", "x"), domain.ErrItemNotFound)
	_, err = service.AddItems("nope", []string{"x"})
	assert.ErrorIs(t, err, domain.ErrSectionNotFound)

	after, err := service.Current()
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestInspectionService_CurrentIsACopy(t *testing.T) {
	service, _ := startedInspection(t)

	current, err := service.Current()
	require.NoError(t, err)
	current.Sections[1].Items[0].Label = "changed"

	again, err := service.Current()
	require.NoError(t, err)
	assert.Equal(t, "Water heater", again.Sections[1].Items[0].Label)
}

func TestInspectionService_Visibility(t *testing.T) {
	service, _ := startedInspection(t)
	require.NoError(t, service.SetItemStatus("plumbing", "heater", domain.ItemStatusPass))

	progress, err := service.Progress()
	require.NoError(t, err)
	assert.Equal(t, 33, progress)

	require.NoError(t, service.SetItemVisibility("plumbing", "heater", true))
	progress, err = service.Progress()
	require.NoError(t, err)
	assert.Equal(t, 0, progress)

	require.NoError(t, service.ShowAllHidden("plumbing"))
	summary, err := service.Summary()
	require.NoError(t, err)
	assert.Equal(t, domain.SummaryCounts{Total: 3, Passed: 1, Remaining: 2}, summary)
}

func TestInspectionService_AppendSection(t *testing.T) {
	service, _ := startedInspection(t)

	input := domain.ChecklistSection{
		ID:    "caller-id",
		Title: "Attic",
		Items: []domain.ChecklistItem{{ID: "dup", Label: "Insulation"}, {ID: "dup", Label: "Ventilation"}},
	}
	added, err := service.AppendSection(input)
	require.NoError(t, err)

	assert.NotEqual(t, "caller-id", added.ID)
	assert.NotEqual(t, added.Items[0].ID, added.Items[1].ID)
	assert.Equal(t, domain.SectionStatusPending, added.Status)
	assert.Equal(t, "dup", input.Items[0].ID)

	current, err := service.Current()
	require.NoError(t, err)
	require.Len(t, current.Sections, 3)
	assert.Equal(t, added.ID, current.Sections[2].ID)
}

func TestInspectionService_AddItems(t *testing.T) {
	service, _ := startedInspection(t)
	require.NoError(t, service.SetItemStatus("plumbing", "heater", domain.ItemStatusPass))

	items, err := service.AddItems("plumbing", []string{"Shutoff valve", " ", "Sump pump"})
	require.NoError(t, err)
	require.Len(t, items, 2)

	current, err := service.Current()
	require.NoError(t, err)
	section := current.Sections[1]
	require.Len(t, section.Items, 3)
	assert.Equal(t, "Sump pump", section.Items[2].Label)
	assert.Equal(t, domain.SectionStatusInProgress, section.Status)
}

func TestInspectionService_Hydrate(t *testing.T) {
	service := NewInspectionService(&sequentialIDs{})
	loaded := sampleProfile()
	loaded.SavedReportID = "00000000-0000-4000-8000-000000000099"
	service.Hydrate(loaded)

	current, err := service.Current()
	require.NoError(t, err)
	assert.Equal(t, loaded.SavedReportID, current.SavedReportID)
	assert.Equal(t, "local-1", current.ID)
}

func TestInspectionService_ConcurrentMutations(t *testing.T) {
	service, p := startedInspection(t)
	roof := p.Sections[0]

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_ = service.SetItemStatus(roof.ID, roof.Items[0].ID, domain.ItemStatusPass)
		}()
		go func() {
			defer wg.Done()
			_ = service.SetItemNotes(roof.ID, roof.Items[1].ID, "checked")
		}()
	}
	wg.Wait()

	current, err := service.Current()
	require.NoError(t, err)
	assert.Equal(t, domain.ItemStatusPass, current.Sections[0].Items[0].Status)
	assert.Equal(t, "checked", current.Sections[0].Items[1].Notes)
}
