package list

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/walkthrough/internal/core/domain"
)

func sampleItems() []domain.ChecklistItem {
	return []domain.ChecklistItem{
		{ID: "i1", Label: "Roof covering", Status: domain.ItemStatusPass},
		{ID: "i2", Label: "Gutters", Status: domain.ItemStatusUntouched, IsHidden: true},
		{ID: "i3", Label: "Chimney", Status: domain.ItemStatusDangerous, Notes: "Loose bricks", Photos: []string{"a.jpg"}},
	}
}

func TestNewItemList(t *testing.T) {
	l := NewItemList(nil)

	require.NotNil(t, l)
	assert.NotNil(t, l.styles)
	assert.True(t, l.IsEmpty())
	assert.Nil(t, l.SelectedItem())
}

func TestItemList_SetItems_SkipsHidden(t *testing.T) {
	l := NewItemList(nil)

	l.SetItems(sampleItems())

	assert.Equal(t, 2, l.Count())
	l.MoveDown()
	require.NotNil(t, l.SelectedItem())
	assert.Equal(t, "i3", l.SelectedItem().ID)
}

func TestItemList_ShowHidden(t *testing.T) {
	l := NewItemList(nil)
	l.SetItems(sampleItems())

	l.SetShowHidden(true)

	assert.True(t, l.ShowHidden())
	assert.Equal(t, 3, l.Count())
	l.MoveDown()
	assert.Equal(t, "i2", l.SelectedItem().ID)
	assert.Contains(t, l.View(), "(hidden)")
}

func TestItemList_SelectionClampsWhenRowsShrink(t *testing.T) {
	l := NewItemList(nil)
	l.SetItems(sampleItems())
	l.SetShowHidden(true)
	l.SetSelected(2)

	l.SetShowHidden(false)

	assert.Equal(t, 1, l.Selected())
	assert.Equal(t, "i3", l.SelectedItem().ID)
}

func TestItemList_Navigation(t *testing.T) {
	l := NewItemList(nil)
	l.SetItems(sampleItems())

	l.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 1, l.Selected())

	// Bottom boundary
	l.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}})
	assert.Equal(t, 1, l.Selected())

	l.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'k'}})
	assert.Equal(t, 0, l.Selected())

	// Top boundary
	l.Update(tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, 0, l.Selected())
}

func TestItemList_View(t *testing.T) {
	l := NewItemList(nil)
	l.SetDimensions(100, 20)
	l.SetItems(sampleItems())

	view := l.View()

	assert.Contains(t, view, "Roof covering")
	assert.Contains(t, view, "[PASS]")
	assert.Contains(t, view, "[DANG]")
	assert.Contains(t, view, "Loose bricks")
	assert.Contains(t, view, "1 photo(s)")
	assert.NotContains(t, view, "Gutters")
}

func TestItemList_View_Empty(t *testing.T) {
	l := NewItemList(nil)

	assert.Contains(t, l.View(), "No items")

	l.SetItems([]domain.ChecklistItem{{ID: "x", Label: "Hidden", IsHidden: true}})
	assert.Contains(t, l.View(), "All items are hidden")
}

func TestItemList_View_TruncatesLongLabels(t *testing.T) {
	l := NewItemList(nil)
	l.SetDimensions(30, 10)
	l.SetItems([]domain.ChecklistItem{
		{ID: "i1", Label: "A very long checklist item label that will not fit"},
	})

	assert.Contains(t, l.View(), "...")
}

func TestItemList_View_Options(t *testing.T) {
	l := NewItemList(nil)
	l.SetDimensions(100, 10)
	l.SetItems([]domain.ChecklistItem{
		{ID: "i1", Label: "Panel brand", Options: []string{"Square D", "Siemens"}},
		{ID: "i2", Label: "Water heater", Options: []string{"Gas", "Electric"}, SelectedOption: "Gas"},
	})

	view := l.View()

	assert.Contains(t, view, "Square D/Siemens")
	assert.Contains(t, view, "Gas")
	assert.NotContains(t, view, "Gas/Electric")
}

func TestItemList_Reset(t *testing.T) {
	l := NewItemList(nil)
	l.SetItems(sampleItems())
	l.MoveDown()

	l.Reset()

	assert.Equal(t, 0, l.Selected())
}
