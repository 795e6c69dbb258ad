package settings

import (
	"fmt"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/walkthrough/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/walkthrough/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/walkthrough/internal/core/domain"
)

// MockSettingsService is a mock implementation of driving.SettingsService.
type MockSettingsService struct {
	mock.Mock
}

func (m *MockSettingsService) Get() (*domain.AppSettings, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AppSettings), args.Error(1)
}

func (m *MockSettingsService) Save(settings *domain.AppSettings) error {
	args := m.Called(settings)
	return args.Error(0)
}

func (m *MockSettingsService) Set(key, value string) error {
	args := m.Called(key, value)
	return args.Error(0)
}

func (m *MockSettingsService) Keys() []string {
	args := m.Called()
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]string)
}

func (m *MockSettingsService) SetLLMProvider(provider domain.AIProvider, model, apiKey string) error {
	args := m.Called(provider, model, apiKey)
	return args.Error(0)
}

func (m *MockSettingsService) SetRemoteBackend(backend domain.RemoteBackend) error {
	args := m.Called(backend)
	return args.Error(0)
}

func (m *MockSettingsService) Validate() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockSettingsService) GetDefaults() domain.AppSettings {
	args := m.Called()
	return args.Get(0).(domain.AppSettings)
}

func (m *MockSettingsService) ValidateLLMConfig() error {
	args := m.Called()
	return args.Error(0)
}

var testKeys = []string{
	"llm.provider",
	"llm.model",
	"llm.api_key",
	"remote.backend",
	"remote.sqlite_dir",
	"inspector.name",
}

// Helper function to create test settings.
func testSettings() *domain.AppSettings {
	return &domain.AppSettings{
		LLM: domain.LLMSettings{
			Provider: domain.AIProviderOllama,
			Model:    "llama3.2-vision",
			BaseURL:  "http://localhost:11434",
		},
		Remote: domain.RemoteSettings{
			Backend:   domain.RemoteBackendSQLite,
			SQLiteDir: "/tmp/reports",
		},
		InspectorName: "Dana",
	}
}

func newMockService() *MockSettingsService {
	m := new(MockSettingsService)
	m.On("Keys").Return(testKeys).Maybe()
	return m
}

func TestNewView(t *testing.T) {
	s := styles.DefaultStyles()
	mockService := newMockService()

	view := NewView(s, mockService)

	require.NotNil(t, view)
	assert.NotNil(t, view.styles)
	assert.Equal(t, mockService, view.settingsService)
	assert.Equal(t, SectionOverview, view.section)
	assert.Equal(t, 0, view.selected)
	assert.Equal(t, 0, view.focusedField)
}

func TestNewView_NilStyles(t *testing.T) {
	view := NewView(nil, newMockService())

	require.NotNil(t, view)
	assert.NotNil(t, view.styles)
}

func TestView_Init_LoadSettings_Success(t *testing.T) {
	mockService := newMockService()
	settings := testSettings()
	mockService.On("Get").Return(settings, nil)

	view := NewView(nil, mockService)
	cmd := view.Init()

	require.NotNil(t, cmd)
	loaded, ok := cmd().(messages.SettingsLoaded)
	require.True(t, ok)
	assert.NoError(t, loaded.Err)
	assert.Equal(t, settings, loaded.Settings)
	mockService.AssertExpectations(t)
}

func TestView_Init_LoadSettings_Error(t *testing.T) {
	mockService := newMockService()
	expectedErr := fmt.Errorf("failed to load settings")
	mockService.On("Get").Return((*domain.AppSettings)(nil), expectedErr)

	view := NewView(nil, mockService)
	loaded, ok := view.Init()().(messages.SettingsLoaded)

	require.True(t, ok)
	assert.Equal(t, expectedErr, loaded.Err)
	assert.Nil(t, loaded.Settings)
}

func TestView_Init_NoService(t *testing.T) {
	view := NewView(nil, nil)

	loaded, ok := view.Init()().(messages.SettingsLoaded)

	require.True(t, ok)
	require.Error(t, loaded.Err)
	assert.Contains(t, loaded.Err.Error(), "settings service not available")
}

func TestView_Update_WindowSize(t *testing.T) {
	view := NewView(nil, newMockService())

	updated, cmd := view.Update(tea.WindowSizeMsg{Width: 120, Height: 60})

	assert.Equal(t, view, updated)
	assert.Nil(t, cmd)
	assert.True(t, view.ready)
	assert.Equal(t, 120, view.width)
	assert.Equal(t, 60, view.height)
}

func TestView_Update_SettingsLoaded(t *testing.T) {
	view := NewView(nil, newMockService())
	settings := testSettings()

	_, cmd := view.Update(messages.SettingsLoaded{Settings: settings})

	assert.Nil(t, cmd)
	assert.Equal(t, settings, view.settings)
	assert.NoError(t, view.err)

	expectedErr := fmt.Errorf("load failed")
	view.Update(messages.SettingsLoaded{Err: expectedErr})
	assert.Equal(t, expectedErr, view.err)
}

func TestView_Update_SettingsSaved_Success(t *testing.T) {
	mockService := newMockService()
	mockService.On("Get").Return(testSettings(), nil)
	view := NewView(nil, mockService)
	view.section = SectionEditKey

	_, cmd := view.Update(messages.SettingsSaved{Key: "inspector.name"})

	require.NotNil(t, cmd)
	assert.NoError(t, view.err)
	assert.Equal(t, SectionOverview, view.section)
	assert.Equal(t, "inspector.name", view.saved)

	// Reloads settings
	loaded, ok := cmd().(messages.SettingsLoaded)
	require.True(t, ok)
	assert.NoError(t, loaded.Err)
	mockService.AssertExpectations(t)
}

func TestView_Update_SettingsSaved_Error(t *testing.T) {
	view := NewView(nil, newMockService())
	expectedErr := fmt.Errorf("save failed")

	_, cmd := view.Update(messages.SettingsSaved{Err: expectedErr})

	assert.Nil(t, cmd)
	assert.Equal(t, expectedErr, view.err)
}

func TestView_Escape(t *testing.T) {
	view := NewView(nil, newMockService())

	_, cmd := view.Update(tea.KeyMsg{Type: tea.KeyEsc})

	require.NotNil(t, cmd)
	assert.Equal(t, messages.ViewChanged{View: messages.ViewMenu}, cmd())

	view.section = SectionRemote
	view.selected = 2
	_, cmd = view.Update(tea.KeyMsg{Type: tea.KeyEsc})

	assert.Nil(t, cmd)
	assert.Equal(t, SectionOverview, view.section)
	assert.Equal(t, 0, view.selected)
}

func TestView_OverviewEntries(t *testing.T) {
	view := NewView(nil, newMockService())

	entries := view.overviewEntries()

	assert.Equal(t, []string{
		"llm.provider",
		"remote.backend",
		"llm.model",
		"remote.sqlite_dir",
		"inspector.name",
	}, entries)
}

func TestView_Overview_Navigate(t *testing.T) {
	view := NewView(nil, newMockService())

	view.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 1, view.selected)

	for i := 0; i < 10; i++ {
		view.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}})
	}
	assert.Equal(t, 4, view.selected)

	for i := 0; i < 10; i++ {
		view.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'k'}})
	}
	assert.Equal(t, 0, view.selected)
}

func TestView_Overview_Enter_LLM(t *testing.T) {
	view := NewView(nil, newMockService())
	view.settings = testSettings()
	view.settings.LLM.Provider = domain.AIProviderAnthropic

	view.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.Equal(t, SectionLLM, view.section)
	assert.Equal(t, 2, view.selected)
}

func TestView_Overview_Enter_Remote(t *testing.T) {
	view := NewView(nil, newMockService())
	view.settings = testSettings()
	view.selected = 1

	view.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.Equal(t, SectionRemote, view.section)
	assert.Equal(t, 1, view.selected)
}

func TestView_EditKey(t *testing.T) {
	mockService := newMockService()
	mockService.On("Set", "inspector.name", "Robin").Return(nil)
	view := NewView(nil, mockService)
	view.settings = testSettings()
	view.selected = 4

	view.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, SectionEditKey, view.section)
	assert.Equal(t, "inspector.name", view.editingKey)
	assert.Equal(t, "Dana", view.valueInput.Value())

	view.valueInput.SetValue(" Robin ")
	_, cmd := view.Update(tea.KeyMsg{Type: tea.KeyEnter})

	require.NotNil(t, cmd)
	saved, ok := cmd().(messages.SettingsSaved)
	require.True(t, ok)
	assert.NoError(t, saved.Err)
	assert.Equal(t, "inspector.name", saved.Key)
	mockService.AssertExpectations(t)
}

func TestView_EditKey_Rejected(t *testing.T) {
	mockService := newMockService()
	mockService.On("Set", "remote.sqlite_dir", "").Return(domain.ErrInvalidInput)
	view := NewView(nil, mockService)
	view.settings = testSettings()
	view.section = SectionEditKey
	view.editingKey = "remote.sqlite_dir"

	_, cmd := view.Update(tea.KeyMsg{Type: tea.KeyEnter})
	view.Update(cmd())

	assert.ErrorIs(t, view.err, domain.ErrInvalidInput)
	assert.Contains(t, view.View(), "Error:")
}

func TestView_Remote_Select(t *testing.T) {
	mockService := newMockService()
	mockService.On("SetRemoteBackend", domain.RemoteBackendFirestore).Return(nil)
	view := NewView(nil, mockService)
	view.section = SectionRemote

	view.Update(tea.KeyMsg{Type: tea.KeyDown})
	view.Update(tea.KeyMsg{Type: tea.KeyDown})
	view.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 2, view.selected)

	_, cmd := view.Update(tea.KeyMsg{Type: tea.KeyEnter})

	require.NotNil(t, cmd)
	saved, ok := cmd().(messages.SettingsSaved)
	require.True(t, ok)
	assert.Equal(t, "remote.backend", saved.Key)
	mockService.AssertExpectations(t)
}

func TestView_LLM_Enter_NoAPIKey(t *testing.T) {
	mockService := newMockService()
	mockService.On("SetLLMProvider", domain.AIProviderOllama, "llama3.2-vision", "").Return(nil)
	view := NewView(nil, mockService)
	view.section = SectionLLM

	_, cmd := view.Update(tea.KeyMsg{Type: tea.KeyEnter})

	require.NotNil(t, cmd)
	saved, ok := cmd().(messages.SettingsSaved)
	require.True(t, ok)
	assert.NoError(t, saved.Err)
	mockService.AssertExpectations(t)
}

func TestView_LLM_Enter_RequiresAPIKey(t *testing.T) {
	mockService := newMockService()
	mockService.On("SetLLMProvider", domain.AIProviderOpenAI, "gpt-4o-mini", "sk-test").Return(nil)
	view := NewView(nil, mockService)
	view.section = SectionLLM
	view.selected = 1

	// Enter focuses the API key input first
	view.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, 1, view.focusedField)
	assert.True(t, view.llmAPIKeyInput.Focused())

	view.llmAPIKeyInput.SetValue("sk-test")
	_, cmd := view.Update(tea.KeyMsg{Type: tea.KeyEnter})

	require.NotNil(t, cmd)
	cmd()
	assert.Empty(t, view.llmAPIKeyInput.Value())
	mockService.AssertExpectations(t)
}

func TestView_LLM_Tab(t *testing.T) {
	view := NewView(nil, newMockService())
	view.section = SectionLLM

	// Ollama needs no key
	view.Update(tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, 0, view.focusedField)

	view.selected = 2
	view.Update(tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, 1, view.focusedField)

	view.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	assert.Equal(t, 0, view.focusedField)
	assert.False(t, view.llmAPIKeyInput.Focused())
}

func TestView_LLM_NoService(t *testing.T) {
	view := NewView(nil, nil)
	view.section = SectionLLM

	_, cmd := view.Update(tea.KeyMsg{Type: tea.KeyEnter})

	require.NotNil(t, cmd)
	saved, ok := cmd().(messages.SettingsSaved)
	require.True(t, ok)
	assert.Error(t, saved.Err)
}

func TestView_View_Loading(t *testing.T) {
	view := NewView(nil, newMockService())

	assert.Contains(t, view.View(), "Loading settings...")
}

func TestView_View_Overview(t *testing.T) {
	mockService := newMockService()
	mockService.On("Validate").Return(nil)
	view := NewView(nil, mockService)
	view.settings = testSettings()

	out := view.View()

	assert.Contains(t, out, "LLM Provider")
	assert.Contains(t, out, "Ollama (local)")
	assert.Contains(t, out, "Remote Store: sqlite")
	assert.Contains(t, out, "inspector.name: Dana")
	assert.Contains(t, out, "llm.model: llama3.2-vision")
	assert.Contains(t, out, "Configuration is valid")
	assert.NotContains(t, out, "llm.api_key")
}

func TestView_View_Overview_ValidationWarning(t *testing.T) {
	mockService := newMockService()
	mockService.On("Validate").Return(fmt.Errorf("firestore project is required"))
	view := NewView(nil, mockService)
	view.settings = testSettings()

	assert.Contains(t, view.View(), "Warning: firestore project is required")
}

func TestView_View_Subsections(t *testing.T) {
	view := NewView(nil, newMockService())
	view.settings = testSettings()

	view.section = SectionLLM
	view.selected = 1
	out := view.View()
	assert.Contains(t, out, "Select LLM Provider")
	assert.Contains(t, out, "(current)")
	assert.Contains(t, out, "API Key:")

	view.section = SectionRemote
	out = view.View()
	assert.Contains(t, out, "Select Remote Store")
	assert.Contains(t, out, "firestore")
}

func TestView_RemoteStatus(t *testing.T) {
	view := NewView(nil, newMockService())
	view.settings = testSettings()
	assert.Contains(t, view.getRemoteStatus(), "configured")

	view.settings.Remote.Backend = domain.RemoteBackendFirestore
	assert.Contains(t, view.getRemoteStatus(), "incomplete")

	view.settings.Remote.Backend = domain.RemoteBackendNone
	assert.Contains(t, view.getRemoteStatus(), "this device only")
}

func TestSettingValue(t *testing.T) {
	s := testSettings()

	assert.Equal(t, "ollama", settingValue(s, "llm.provider"))
	assert.Equal(t, "/tmp/reports", settingValue(s, "remote.sqlite_dir"))
	assert.Equal(t, "Dana", settingValue(s, "inspector.name"))
	assert.Equal(t, "", settingValue(s, "nope"))
	assert.Equal(t, "", settingValue(nil, "inspector.name"))
}

func TestView_Reset(t *testing.T) {
	view := NewView(nil, newMockService())
	view.section = SectionEditKey
	view.selected = 3
	view.editingKey = "inspector.name"
	view.err = fmt.Errorf("x")

	view.Reset()

	assert.Equal(t, SectionOverview, view.section)
	assert.Equal(t, 0, view.selected)
	assert.Empty(t, view.editingKey)
	assert.NoError(t, view.err)
}
