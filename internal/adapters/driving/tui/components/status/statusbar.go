// Package status provides status bar components for the TUI.
package status

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/walkthrough/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/walkthrough/internal/adapters/driving/tui/styles"
)

// State represents the current application state for display.
type State string

const (
	StateReady      State = "ready"
	StateGenerating State = "generating"
	StateSaving     State = "saving"
	StateSaved      State = "saved"
	StateWarning    State = "warning"
	StateError      State = "error"
	StateEditing    State = "editing"
)

// Bar displays application status, inspection progress and keybinding hints.
type Bar struct {
	styles   *styles.Styles
	keymap   *keymap.KeyMap
	state    State
	message  string
	progress int
	tracking bool
	width    int
}

// NewBar creates a new status bar component.
func NewBar(s *styles.Styles, km *keymap.KeyMap) *Bar {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &Bar{
		styles: s,
		keymap: km,
		state:  StateReady,
		width:  80,
	}
}

// Init initialises the status bar.
func (s *Bar) Init() tea.Cmd {
	return nil
}

// Update handles status bar messages.
func (s *Bar) Update(_ tea.Msg) (*Bar, tea.Cmd) {
	// Bar is passive, updated via Set methods
	return s, nil
}

// View renders the status bar.
func (s *Bar) View() string {
	left := s.renderLeft()
	right := s.renderRight()

	leftLen := lipgloss.Width(left)
	rightLen := lipgloss.Width(right)
	padding := s.width - leftLen - rightLen
	if padding < 1 {
		padding = 1
	}

	return s.styles.StatusBar.Width(s.width).Render(
		left + strings.Repeat(" ", padding) + right,
	)
}

// renderLeft renders the state, message and progress.
func (s *Bar) renderLeft() string {
	var text string
	switch s.state {
	case StateGenerating:
		text = s.styles.Muted.Render("Drafting checklist...")
	case StateSaving:
		text = s.styles.Muted.Render("Saving...")
	case StateSaved:
		text = s.styles.Success.Render(s.messageOr("Saved"))
	case StateWarning:
		text = s.styles.Warning.Render(s.messageOr("Warning"))
	case StateError:
		if s.message != "" {
			text = s.styles.Error.Render(fmt.Sprintf("Error: %s", s.message))
		} else {
			text = s.styles.Error.Render("Error")
		}
	case StateEditing:
		text = s.styles.Normal.Render(s.messageOr("Editing"))
	default:
		text = s.styles.Muted.Render(s.messageOr("Ready"))
	}

	if s.tracking {
		text += s.styles.Normal.Render(fmt.Sprintf("  %d%% complete", s.progress))
	}
	return text
}

func (s *Bar) messageOr(fallback string) string {
	if s.message != "" {
		return s.message
	}
	return fallback
}

// renderRight renders keybinding hints.
func (s *Bar) renderRight() string {
	var bindings []key.Binding
	if s.tracking && s.state != StateEditing {
		bindings = s.keymap.ChecklistHelp()
	} else {
		bindings = s.keymap.ShortHelp()
	}

	hints := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		hints = append(hints, fmt.Sprintf("%s: %s", h.Key, h.Desc))
	}
	return s.styles.Muted.Render(strings.Join(hints, " | "))
}

// SetState sets the current state.
func (s *Bar) SetState(state State) {
	s.state = state
}

// State returns the current state.
func (s *Bar) State() State {
	return s.state
}

// SetMessage sets a custom message.
func (s *Bar) SetMessage(message string) {
	s.message = message
}

// Message returns the current message.
func (s *Bar) Message() string {
	return s.message
}

// SetProgress shows the completion percentage of the current inspection.
func (s *Bar) SetProgress(percent int) {
	s.progress = percent
	s.tracking = true
}

// Progress returns the displayed completion percentage.
func (s *Bar) Progress() int {
	return s.progress
}

// SetWidth sets the status bar width.
func (s *Bar) SetWidth(width int) {
	s.width = width
}

// Width returns the current width.
func (s *Bar) Width() int {
	return s.width
}

// Clear resets the status bar to default state.
func (s *Bar) Clear() {
	s.state = StateReady
	s.message = ""
	s.progress = 0
	s.tracking = false
}
