package keymap

import (
	"testing"

	"github.com/charmbracelet/bubbles/key"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/walkthrough/internal/core/domain"
)

func TestDefaultKeyMap(t *testing.T) {
	km := DefaultKeyMap()

	require.NotNil(t, km)
}

func TestDefaultKeyMap_QuitBinding(t *testing.T) {
	km := DefaultKeyMap()

	keys := km.Quit.Keys()
	assert.Contains(t, keys, "q")
	assert.Contains(t, keys, "ctrl+c")
}

func TestDefaultKeyMap_NavigationBindings(t *testing.T) {
	km := DefaultKeyMap()

	assert.Contains(t, km.Up.Keys(), "k")
	assert.Contains(t, km.Down.Keys(), "j")
	assert.Contains(t, km.NextSection.Keys(), "tab")
	assert.Contains(t, km.PrevSection.Keys(), "shift+tab")
}

func TestDefaultKeyMap_SaveBinding(t *testing.T) {
	km := DefaultKeyMap()

	keys := km.Save.Keys()
	assert.Contains(t, keys, "s")
	assert.Contains(t, keys, "ctrl+s")
}

func TestShortHelp(t *testing.T) {
	km := DefaultKeyMap()

	bindings := km.ShortHelp()

	assert.Len(t, bindings, 2)
	assert.Equal(t, km.Quit, bindings[0])
	assert.Equal(t, km.Help, bindings[1])
}

func TestFullHelp(t *testing.T) {
	km := DefaultKeyMap()

	bindings := km.FullHelp()

	assert.Len(t, bindings, 4)
	assert.Len(t, bindings[1], 6) // every status
}

func TestStatusFor(t *testing.T) {
	km := DefaultKeyMap()

	tests := []struct {
		key      string
		expected domain.ItemStatus
	}{
		{"p", domain.ItemStatusPass},
		{"i", domain.ItemStatusInfo},
		{"a", domain.ItemStatusAttention},
		{"m", domain.ItemStatusModerate},
		{"d", domain.ItemStatusDangerous},
		{"u", domain.ItemStatusUntouched},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			status, ok := km.StatusFor(tt.key)
			require.True(t, ok)
			assert.Equal(t, tt.expected, status)
		})
	}

	_, ok := km.StatusFor("z")
	assert.False(t, ok)
}

func TestMatches_True(t *testing.T) {
	km := DefaultKeyMap()

	assert.True(t, Matches("q", km.Quit))
	assert.True(t, Matches("ctrl+c", km.Quit))
	assert.True(t, Matches("?", km.Help))
	assert.True(t, Matches("up", km.Up))
	assert.True(t, Matches("k", km.Up))
}

func TestMatches_False(t *testing.T) {
	km := DefaultKeyMap()

	assert.False(t, Matches("x", km.Quit))
	assert.False(t, Matches("a", km.Help))
	assert.False(t, Matches("down", km.Up))
}

func TestBindings_DoNotOverlap(t *testing.T) {
	km := DefaultKeyMap()

	checklist := []key.Binding{
		km.Up, km.Down, km.NextSection, km.PrevSection,
		km.Pass, km.Info, km.Attention, km.Moderate, km.Dangerous, km.Reset,
		km.Notes, km.Hide, km.ToggleHidden, km.ShowAllHidden, km.CycleOption,
		km.AddSection, km.Save, km.Quit, km.Help,
	}

	seen := make(map[string]bool)
	for _, b := range checklist {
		for _, k := range b.Keys() {
			assert.False(t, seen[k], "key %q bound twice", k)
			seen[k] = true
		}
	}
}

func TestBindings_HaveHelp(t *testing.T) {
	km := DefaultKeyMap()

	testCases := []struct {
		name    string
		binding key.Binding
	}{
		{"Quit", km.Quit},
		{"Help", km.Help},
		{"Back", km.Back},
		{"Up", km.Up},
		{"Down", km.Down},
		{"Select", km.Select},
		{"Cancel", km.Cancel},
		{"Pass", km.Pass},
		{"Notes", km.Notes},
		{"Save", km.Save},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			help := tc.binding.Help()
			assert.NotEmpty(t, help.Key, "binding should have help key")
		})
	}
}
