// Package settings provides the settings configuration view for the TUI.
package settings

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/walkthrough/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/walkthrough/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/walkthrough/internal/core/domain"
	"github.com/custodia-labs/walkthrough/internal/core/ports/driving"
)

// Section tracks which settings section is active.
type Section int

const (
	SectionOverview Section = iota
	SectionLLM
	SectionRemote
	SectionEditKey
)

// Key constants for key handling.
const (
	keyDown  = "down"
	keyEnter = "enter"
	keyTab   = "tab"
)

// Keys with a dedicated picker instead of free text.
const (
	keyLLMProvider   = "llm.provider"
	keyLLMAPIKey     = "llm.api_key"
	keyRemoteBackend = "remote.backend"
)

// remoteBackends lists the pickable remote stores.
var remoteBackends = []domain.RemoteBackend{
	domain.RemoteBackendNone,
	domain.RemoteBackendSQLite,
	domain.RemoteBackendFirestore,
}

// View is the settings configuration view.
type View struct {
	styles          *styles.Styles
	settingsService driving.SettingsService

	// Current settings
	settings *domain.AppSettings
	err      error
	saved    string

	// Navigation state
	section      Section
	selected     int // selection within current section
	focusedField int // for text input focus
	editingKey   string

	llmAPIKeyInput textinput.Model
	valueInput     textinput.Model

	// Dimensions
	width  int
	height int
	ready  bool
}

// NewView creates a new settings view.
func NewView(s *styles.Styles, settingsService driving.SettingsService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}

	llmAPIKeyInput := textinput.New()
	llmAPIKeyInput.Placeholder = "Enter API key"
	llmAPIKeyInput.EchoMode = textinput.EchoPassword
	llmAPIKeyInput.CharLimit = 256

	valueInput := textinput.New()
	valueInput.CharLimit = 512

	return &View{
		styles:          s,
		settingsService: settingsService,
		section:         SectionOverview,
		llmAPIKeyInput:  llmAPIKeyInput,
		valueInput:      valueInput,
	}
}

// Init initialises the view and loads settings.
func (v *View) Init() tea.Cmd {
	return v.loadSettings()
}

// loadSettings returns a command that loads current settings.
func (v *View) loadSettings() tea.Cmd {
	return func() tea.Msg {
		if v.settingsService == nil {
			return messages.SettingsLoaded{Err: fmt.Errorf("settings service not available")}
		}
		settings, err := v.settingsService.Get()
		return messages.SettingsLoaded{Settings: settings, Err: err}
	}
}

// Update handles messages for the settings view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case messages.SettingsLoaded:
		if msg.Err != nil {
			v.err = msg.Err
		} else {
			v.settings = msg.Settings
			v.err = nil
		}
		return v, nil

	case messages.SettingsSaved:
		if msg.Err != nil {
			v.err = msg.Err
			v.saved = ""
			return v, nil
		}
		v.err = nil
		v.saved = msg.Key
		v.section = SectionOverview
		v.focusedField = 0
		return v, v.loadSettings()

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)
	}

	return v, nil
}

// handleKeyMsg handles key presses based on current section.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	// Global escape to go back
	if msg.String() == "esc" {
		switch v.section {
		case SectionOverview:
			return v, func() tea.Msg {
				return messages.ViewChanged{View: messages.ViewMenu}
			}
		default:
			v.section = SectionOverview
			v.selected = 0
			v.focusedField = 0
			v.llmAPIKeyInput.Blur()
			v.valueInput.Blur()
			return v, nil
		}
	}

	switch v.section {
	case SectionOverview:
		return v.handleOverviewKeys(msg)
	case SectionLLM:
		return v.handleLLMKeys(msg)
	case SectionRemote:
		return v.handleRemoteKeys(msg)
	case SectionEditKey:
		return v.handleEditKeys(msg)
	}

	return v, nil
}

// overviewEntries are the LLM picker, the remote picker and then every
// remaining settable key.
func (v *View) overviewEntries() []string {
	entries := []string{keyLLMProvider, keyRemoteBackend}
	if v.settingsService == nil {
		return entries
	}
	for _, k := range v.settingsService.Keys() {
		if k == keyLLMProvider || k == keyLLMAPIKey || k == keyRemoteBackend {
			continue
		}
		entries = append(entries, k)
	}
	return entries
}

func (v *View) handleOverviewKeys(msg tea.KeyMsg) (*View, tea.Cmd) {
	entries := v.overviewEntries()

	switch msg.String() {
	case "up", "k":
		if v.selected > 0 {
			v.selected--
		}
	case keyDown, "j":
		if v.selected < len(entries)-1 {
			v.selected++
		}
	case keyEnter:
		if v.selected < 0 || v.selected >= len(entries) {
			return v, nil
		}
		v.saved = ""
		switch entry := entries[v.selected]; entry {
		case keyLLMProvider:
			v.section = SectionLLM
			v.selected = v.getLLMProviderIndex()
		case keyRemoteBackend:
			v.section = SectionRemote
			v.selected = v.getRemoteBackendIndex()
		default:
			v.section = SectionEditKey
			v.editingKey = entry
			v.valueInput.SetValue(settingValue(v.settings, entry))
			v.valueInput.CursorEnd()
			return v, v.valueInput.Focus()
		}
	}
	return v, nil
}

func (v *View) handleEditKeys(msg tea.KeyMsg) (*View, tea.Cmd) {
	if msg.String() == keyEnter {
		return v, v.setValue(v.editingKey, strings.TrimSpace(v.valueInput.Value()))
	}
	var cmd tea.Cmd
	v.valueInput, cmd = v.valueInput.Update(msg)
	return v, cmd
}

func (v *View) handleRemoteKeys(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if v.selected > 0 {
			v.selected--
		}
	case keyDown, "j":
		if v.selected < len(remoteBackends)-1 {
			v.selected++
		}
	case keyEnter:
		if v.selected >= 0 && v.selected < len(remoteBackends) {
			return v, v.setRemoteBackend(remoteBackends[v.selected])
		}
	}
	return v, nil
}

//nolint:gocognit,gocyclo // TUI input complexity
func (v *View) handleLLMKeys(msg tea.KeyMsg) (*View, tea.Cmd) {
	providers := domain.AllLLMProviders()

	// If we're focused on the API key input
	if v.focusedField == 1 {
		switch msg.String() {
		case keyTab, "shift+tab":
			v.focusedField = 0
			v.llmAPIKeyInput.Blur()
			return v, nil
		case keyEnter:
			if v.selected >= 0 && v.selected < len(providers) {
				cmd := v.setLLMProvider(providers[v.selected], v.llmAPIKeyInput.Value())
				return v, cmd
			}
		default:
			var cmd tea.Cmd
			v.llmAPIKeyInput, cmd = v.llmAPIKeyInput.Update(msg)
			return v, cmd
		}
		return v, nil
	}

	switch msg.String() {
	case "up", "k":
		if v.selected > 0 {
			v.selected--
		}
	case keyDown, "j":
		if v.selected < len(providers)-1 {
			v.selected++
		}
	case keyTab:
		// Tab to API key input if provider requires it
		if v.selected >= 0 && v.selected < len(providers) && providers[v.selected].RequiresAPIKey() {
			v.focusedField = 1
			cmd := v.llmAPIKeyInput.Focus()
			return v, cmd
		}
	case keyEnter:
		if v.selected >= 0 && v.selected < len(providers) {
			provider := providers[v.selected]
			if provider.RequiresAPIKey() {
				// Need API key - focus on input
				v.focusedField = 1
				cmd := v.llmAPIKeyInput.Focus()
				return v, cmd
			}
			// No API key needed - save directly
			cmd := v.setLLMProvider(provider, "")
			return v, cmd
		}
	}
	return v, nil
}

// Commands to update settings.

func (v *View) setLLMProvider(provider domain.AIProvider, apiKey string) tea.Cmd {
	svc := v.settingsService
	v.llmAPIKeyInput.SetValue("")
	v.llmAPIKeyInput.Blur()
	return func() tea.Msg {
		if svc == nil {
			return messages.SettingsSaved{Err: fmt.Errorf("settings service not available")}
		}
		// Use default model
		model := domain.DefaultLLMModels()[provider]
		err := svc.SetLLMProvider(provider, model, apiKey)
		return messages.SettingsSaved{Key: keyLLMProvider, Err: err}
	}
}

func (v *View) setRemoteBackend(backend domain.RemoteBackend) tea.Cmd {
	svc := v.settingsService
	return func() tea.Msg {
		if svc == nil {
			return messages.SettingsSaved{Err: fmt.Errorf("settings service not available")}
		}
		return messages.SettingsSaved{Key: keyRemoteBackend, Err: svc.SetRemoteBackend(backend)}
	}
}

func (v *View) setValue(key, value string) tea.Cmd {
	svc := v.settingsService
	v.valueInput.Blur()
	return func() tea.Msg {
		if svc == nil {
			return messages.SettingsSaved{Err: fmt.Errorf("settings service not available")}
		}
		return messages.SettingsSaved{Key: key, Err: svc.Set(key, value)}
	}
}

// Helper methods to get current selection indices.

func (v *View) getLLMProviderIndex() int {
	if v.settings == nil {
		return 0
	}
	for i, p := range domain.AllLLMProviders() {
		if p == v.settings.LLM.Provider {
			return i
		}
	}
	return 0
}

func (v *View) getRemoteBackendIndex() int {
	if v.settings == nil {
		return 0
	}
	for i, b := range remoteBackends {
		if b == v.settings.Remote.Backend {
			return i
		}
	}
	return 0
}

// settingValue returns the displayed value of a settable key.
func settingValue(s *domain.AppSettings, key string) string {
	if s == nil {
		return ""
	}
	switch key {
	case keyLLMProvider:
		return s.LLM.Provider.String()
	case "llm.model":
		return s.LLM.Model
	case "llm.base_url":
		return s.LLM.BaseURL
	case keyRemoteBackend:
		return s.Remote.Backend.String()
	case "remote.sqlite_dir":
		return s.Remote.SQLiteDir
	case "remote.firestore_project":
		return s.Remote.FirestoreProject
	case "remote.firestore_credentials":
		return s.Remote.FirestoreCredentials
	case "remote.firestore_collection":
		return s.Remote.FirestoreCollection
	case "local.dir":
		return s.LocalDir
	case "share.base_url":
		return s.Share.BaseURL
	case "share.param":
		return s.Share.Param
	case "inspector.name":
		return s.InspectorName
	default:
		return ""
	}
}

// View renders the settings view.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Settings"))
	b.WriteString("\n\n")

	if v.err != nil {
		b.WriteString(v.styles.Error.Render(fmt.Sprintf("Error: %s", v.err.Error())))
		b.WriteString("\n\n")
	} else if v.saved != "" {
		b.WriteString(v.styles.Success.Render("Saved " + v.saved))
		b.WriteString("\n\n")
	}

	if v.settings == nil {
		b.WriteString(v.styles.Muted.Render("Loading settings..."))
		return b.String()
	}

	switch v.section {
	case SectionOverview:
		b.WriteString(v.renderOverview())
	case SectionLLM:
		b.WriteString(v.renderLLMSelect())
	case SectionRemote:
		b.WriteString(v.renderRemoteSelect())
	case SectionEditKey:
		b.WriteString(v.renderEdit())
	}

	b.WriteString("\n")
	b.WriteString(v.renderHelp())

	return b.String()
}

func (v *View) renderOverview() string {
	var b strings.Builder

	llmValue := "Not Set"
	if v.settings.LLM.Provider != "" {
		llmValue = fmt.Sprintf("%s (%s)", v.settings.LLM.Provider.Description(), v.settings.LLM.Model)
	}

	for i, entry := range v.overviewEntries() {
		var label, value, status string
		switch entry {
		case keyLLMProvider:
			label, value, status = "LLM Provider", llmValue, v.getLLMStatus()
		case keyRemoteBackend:
			label, value, status = "Remote Store", v.settings.Remote.Backend.String(), v.getRemoteStatus()
		default:
			label, value = entry, settingValue(v.settings, entry)
			if value == "" {
				value = "(not set)"
			}
		}

		indicator := "  "
		if i == v.selected {
			indicator = "> "
		}
		line := fmt.Sprintf("%s%s: %s", indicator, label, value)
		if status != "" {
			line += " " + status
		}

		if i == v.selected {
			b.WriteString(v.styles.Selected.Render(line))
		} else {
			b.WriteString(v.styles.Normal.Render(line))
		}
		b.WriteString("\n")
	}

	// Validation status
	b.WriteString("\n")
	if v.settingsService != nil {
		if err := v.settingsService.Validate(); err != nil {
			b.WriteString(v.styles.Warning.Render(fmt.Sprintf("Warning: %s", err.Error())))
		} else {
			b.WriteString(v.styles.Success.Render("Configuration is valid"))
		}
	}

	return b.String()
}

func (v *View) getLLMStatus() string {
	if v.settings.LLM.IsConfigured() {
		return v.styles.Success.Render("[configured]")
	}
	return v.styles.Warning.Render("[built-in checklist only]")
}

func (v *View) getRemoteStatus() string {
	switch {
	case v.settings.Remote.Backend == domain.RemoteBackendNone:
		return v.styles.Muted.Render("[this device only]")
	case v.settings.Remote.IsConfigured():
		return v.styles.Success.Render("[configured]")
	default:
		return v.styles.Warning.Render("[incomplete]")
	}
}

func (v *View) renderLLMSelect() string {
	var b strings.Builder

	b.WriteString(v.styles.Subtitle.Render("Select LLM Provider"))
	b.WriteString("\n\n")

	providers := domain.AllLLMProviders()
	defaults := domain.DefaultLLMModels()
	for i, provider := range providers {
		indicator := "  "
		if i == v.selected && v.focusedField == 0 {
			indicator = "> "
		}

		current := ""
		if provider == v.settings.LLM.Provider {
			current = v.styles.Success.Render(" (current)")
		}

		line := fmt.Sprintf("%s%s%s", indicator, provider.Description(), current)
		if i == v.selected && v.focusedField == 0 {
			b.WriteString(v.styles.Selected.Render(line))
		} else {
			b.WriteString(v.styles.Normal.Render(line))
		}
		b.WriteString("\n")

		if model, ok := defaults[provider]; ok {
			b.WriteString(v.styles.Muted.Render(fmt.Sprintf("    Model: %s", model)))
			b.WriteString("\n")
		}
	}

	// API key input (if selected provider requires it)
	if v.selected >= 0 && v.selected < len(providers) && providers[v.selected].RequiresAPIKey() {
		b.WriteString("\n")
		b.WriteString(v.styles.Normal.Render("API Key:"))
		b.WriteString("\n")
		b.WriteString(v.llmAPIKeyInput.View())
		b.WriteString("\n")
	}

	return b.String()
}

func (v *View) renderRemoteSelect() string {
	var b strings.Builder

	b.WriteString(v.styles.Subtitle.Render("Select Remote Store"))
	b.WriteString("\n\n")

	for i, backend := range remoteBackends {
		indicator := "  "
		if i == v.selected {
			indicator = "> "
		}
		current := ""
		if backend == v.settings.Remote.Backend {
			current = v.styles.Success.Render(" (current)")
		}
		line := indicator + backend.String() + current
		if i == v.selected {
			b.WriteString(v.styles.Selected.Render(line))
		} else {
			b.WriteString(v.styles.Normal.Render(line))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(v.styles.Muted.Render("Restart walkthrough for a new remote store to take effect."))
	b.WriteString("\n")
	return b.String()
}

func (v *View) renderEdit() string {
	var b strings.Builder
	b.WriteString(v.styles.Subtitle.Render("Edit " + strconv.Quote(v.editingKey)))
	b.WriteString("\n\n")
	b.WriteString(v.styles.InputField.Render(v.valueInput.View()))
	b.WriteString("\n")
	return b.String()
}

func (v *View) renderHelp() string {
	switch v.section {
	case SectionOverview:
		return v.styles.Help.Render("[j/k] navigate  [enter] edit  [esc] back")
	case SectionRemote:
		return v.styles.Help.Render("[j/k] navigate  [enter] select  [esc] back")
	case SectionEditKey:
		return v.styles.Help.Render("[enter] save  [esc] cancel")
	case SectionLLM:
		if v.focusedField == 1 {
			return v.styles.Help.Render("[tab] back to list  [enter] save  [esc] back")
		}
		return v.styles.Help.Render("[j/k] navigate  [tab] API key  [enter] select  [esc] back")
	default:
		return ""
	}
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
	v.valueInput.Width = width - 8
}

// Reset resets the view to initial state.
func (v *View) Reset() {
	v.section = SectionOverview
	v.selected = 0
	v.focusedField = 0
	v.editingKey = ""
	v.err = nil
	v.saved = ""
	v.llmAPIKeyInput.SetValue("")
	v.llmAPIKeyInput.Blur()
	v.valueInput.SetValue("")
	v.valueInput.Blur()
}

// Settings returns the loaded settings.
func (v *View) Settings() *domain.AppSettings {
	return v.settings
}
