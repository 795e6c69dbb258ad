// Package keymap defines keybindings for the TUI.
package keymap

import (
	"github.com/charmbracelet/bubbles/key"

	"github.com/custodia-labs/walkthrough/internal/core/domain"
)

// KeyMap defines all keybindings for the TUI.
type KeyMap struct {
	// Quit exits the application.
	Quit key.Binding

	// Help shows the help view.
	Help key.Binding

	// Back returns to the previous view.
	Back key.Binding

	// Up navigates up in a list.
	Up key.Binding

	// Down navigates down in a list.
	Down key.Binding

	// NextSection moves to the next checklist section.
	NextSection key.Binding

	// PrevSection moves to the previous checklist section.
	PrevSection key.Binding

	// Select confirms a selection.
	Select key.Binding

	// Cancel cancels the current operation.
	Cancel key.Binding

	// Status bindings set the selected item's verdict.
	Pass      key.Binding
	Info      key.Binding
	Attention key.Binding
	Moderate  key.Binding
	Dangerous key.Binding
	Reset     key.Binding

	// Notes edits the selected item's notes.
	Notes key.Binding

	// Hide hides the selected item, or restores it when hidden items are shown.
	Hide key.Binding

	// ToggleHidden shows or hides hidden items in the list.
	ToggleHidden key.Binding

	// ShowAllHidden restores every hidden item in the section.
	ShowAllHidden key.Binding

	// CycleOption selects the next of the item's suggested options.
	CycleOption key.Binding

	// AddSection drafts a new section from a topic.
	AddSection key.Binding

	// Save writes the inspection to the report stores.
	Save key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() *KeyMap {
	return &KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		NextSection: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab", "next section"),
		),
		PrevSection: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("shift+tab", "prev section"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "select"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),
		Pass: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "pass"),
		),
		Info: key.NewBinding(
			key.WithKeys("i"),
			key.WithHelp("i", "info"),
		),
		Attention: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "attention"),
		),
		Moderate: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "moderate"),
		),
		Dangerous: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "dangerous"),
		),
		Reset: key.NewBinding(
			key.WithKeys("u"),
			key.WithHelp("u", "untouched"),
		),
		Notes: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "notes"),
		),
		Hide: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "hide/unhide"),
		),
		ToggleHidden: key.NewBinding(
			key.WithKeys("H"),
			key.WithHelp("H", "show hidden"),
		),
		ShowAllHidden: key.NewBinding(
			key.WithKeys("R"),
			key.WithHelp("R", "restore hidden"),
		),
		CycleOption: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "option"),
		),
		AddSection: key.NewBinding(
			key.WithKeys("+"),
			key.WithHelp("+", "add section"),
		),
		Save: key.NewBinding(
			key.WithKeys("s", "ctrl+s"),
			key.WithHelp("s", "save"),
		),
	}
}

// ShortHelp returns a short list of keybindings for the help view.
func (k *KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Quit, k.Help}
}

// ChecklistHelp returns keybindings for the checklist view.
func (k *KeyMap) ChecklistHelp() []key.Binding {
	return []key.Binding{k.Pass, k.Info, k.Attention, k.Notes, k.Save, k.Back}
}

// FullHelp returns the full list of keybindings for the help view.
func (k *KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextSection, k.PrevSection, k.Select},
		{k.Pass, k.Info, k.Attention, k.Moderate, k.Dangerous, k.Reset},
		{k.Notes, k.CycleOption, k.Hide, k.ToggleHidden, k.ShowAllHidden, k.AddSection},
		{k.Save, k.Back, k.Help, k.Quit},
	}
}

// StatusFor returns the item status bound to a key, if any.
func (k *KeyMap) StatusFor(keyStr string) (domain.ItemStatus, bool) {
	switch {
	case Matches(keyStr, k.Pass):
		return domain.ItemStatusPass, true
	case Matches(keyStr, k.Info):
		return domain.ItemStatusInfo, true
	case Matches(keyStr, k.Attention):
		return domain.ItemStatusAttention, true
	case Matches(keyStr, k.Moderate):
		return domain.ItemStatusModerate, true
	case Matches(keyStr, k.Dangerous):
		return domain.ItemStatusDangerous, true
	case Matches(keyStr, k.Reset):
		return domain.ItemStatusUntouched, true
	}
	return "", false
}

// Matches checks if a key string matches a binding.
func Matches(keyStr string, binding key.Binding) bool {
	for _, k := range binding.Keys() {
		if k == keyStr {
			return true
		}
	}
	return false
}
