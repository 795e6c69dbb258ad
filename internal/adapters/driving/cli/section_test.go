package cli

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/walkthrough/internal/core/domain"
)

func TestSectionAddCmd_Items(t *testing.T) {
	env := setupTestServices(t)
	result := env.seedReport(t, "9 Pine Rd")
	before := len(env.load(t, result.ID).Sections)

	out, err := execute(t, "section", "add", result.ShortID, "Pool",
		"--item", "Pump", "--item", " ", "--item", "Fence", "-d", "Pool and spa")

	require.NoError(t, err)
	assert.Contains(t, out, `Added section "Pool" with 2 items.`)
	saved := env.load(t, result.ID)
	require.Len(t, saved.Sections, before+1)
	added := saved.Sections[before]
	assert.Equal(t, "Pool", added.Title)
	assert.Equal(t, "Pool and spa", added.Description)
	require.Len(t, added.Items, 2)
	assert.NotEmpty(t, added.ID)
	assert.NotEmpty(t, added.Items[0].ID)
}

func TestSectionAddCmd_Generate(t *testing.T) {
	env := setupTestServices(t)
	result := env.seedReport(t, "9 Pine Rd")
	env.generation.AvailableValue = true
	env.generation.GenerateSectionFunc = func(
		_ context.Context, p domain.InspectionProfile, topic string,
	) (*domain.ChecklistSection, error) {
		assert.Equal(t, "9 Pine Rd", p.Address)
		return &domain.ChecklistSection{
			Title: topic,
			Items: []domain.ChecklistItem{{Label: "Heater"}},
		}, nil
	}

	_, err := execute(t, "section", "add", result.ShortID, "Spa", "--generate")

	require.NoError(t, err)
	saved := env.load(t, result.ID)
	last := saved.Sections[len(saved.Sections)-1]
	assert.Equal(t, "Spa", last.Title)
	require.Len(t, last.Items, 1)
	assert.Equal(t, "Heater", last.Items[0].Label)
}

func TestSectionAddCmd_GenerateUnusable(t *testing.T) {
	env := setupTestServices(t)
	result := env.seedReport(t, "9 Pine Rd")
	env.generation.AvailableValue = true

	_, err := execute(t, "section", "add", result.ShortID, "Spa", "--generate")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "could not be used")
}

func TestSectionAddCmd_GenerateNoLLM(t *testing.T) {
	env := setupTestServices(t)
	result := env.seedReport(t, "9 Pine Rd")

	_, err := execute(t, "section", "add", result.ShortID, "Spa", "--generate")

	require.ErrorIs(t, err, domain.ErrLLMUnavailable)
}

func TestSectionCoverCmd(t *testing.T) {
	env := setupTestServices(t)
	result := env.seedReport(t, "9 Pine Rd")

	_, err := execute(t, "section", "cover", result.ShortID, "roof", "front.jpg")

	require.NoError(t, err)
	assert.Equal(t, "front.jpg", env.load(t, result.ID).Sections[0].PhotoURL)
}

func TestSectionShowHiddenCmd(t *testing.T) {
	env := setupTestServices(t)
	result := env.seedReport(t, "9 Pine Rd")
	_, err := execute(t, "item", "hide", result.ShortID, "1", "1")
	require.NoError(t, err)
	_, err = execute(t, "item", "hide", result.ShortID, "1", "2")
	require.NoError(t, err)
	require.Equal(t, 2, env.load(t, result.ID).Sections[0].HiddenCount())

	_, err = execute(t, "section", "show-hidden", result.ShortID, "1")

	require.NoError(t, err)
	assert.Zero(t, env.load(t, result.ID).Sections[0].HiddenCount())
}

func TestSectionSuggestCmd(t *testing.T) {
	env := setupTestServices(t)
	result := env.seedReport(t, "9 Pine Rd")
	env.generation.AvailableValue = true
	env.generation.SuggestItemsFunc = func(_ context.Context, s domain.ChecklistSection) ([]domain.ChecklistItem, error) {
		assert.Equal(t, "Roof", s.Title)
		return []domain.ChecklistItem{{Label: "Skylights"}, {Label: "Attic vents"}}, nil
	}
	before := len(env.load(t, result.ID).Sections[0].Items)

	out, err := execute(t, "section", "suggest", result.ShortID, "roof")
	require.NoError(t, err)
	assert.Contains(t, out, "- Skylights")
	assert.Len(t, env.load(t, result.ID).Sections[0].Items, before)

	_, err = execute(t, "section", "suggest", result.ShortID, "roof", "--add")
	require.NoError(t, err)
	items := env.load(t, result.ID).Sections[0].Items
	require.Len(t, items, before+2)
	assert.Equal(t, "Attic vents", items[before+1].Label)
}

func TestSectionSuggestCmd_None(t *testing.T) {
	env := setupTestServices(t)
	result := env.seedReport(t, "9 Pine Rd")
	env.generation.AvailableValue = true

	out, err := execute(t, "section", "suggest", result.ShortID, "1")

	require.NoError(t, err)
	assert.Contains(t, out, "No suggestions.")
}
