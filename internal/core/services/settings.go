package services

import (
	"fmt"

	"github.com/custodia-labs/walkthrough/internal/core/domain"
	"github.com/custodia-labs/walkthrough/internal/core/ports/driven"
	"github.com/custodia-labs/walkthrough/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
//
//nolint:gosec // G101: These are config key names, not actual credentials.
const (
	keyLLMProvider          = "llm.provider"
	keyLLMModel             = "llm.model"
	keyLLMBaseURL           = "llm.base_url"
	keyLLMAPIKey            = "llm.api_key"
	keyRemoteBackend        = "remote.backend"
	keyRemoteSQLiteDir      = "remote.sqlite_dir"
	keyFirestoreProject     = "remote.firestore_project"
	keyFirestoreCredentials = "remote.firestore_credentials"
	keyFirestoreCollection  = "remote.firestore_collection"
	keyLocalDir             = "local.dir"
	keyShareBaseURL         = "share.base_url"
	keyShareParam           = "share.param"
	keyInspectorName        = "inspector.name"
)

// settableKeys is the display order for 'settings show'.
var settableKeys = []string{
	keyLLMProvider,
	keyLLMModel,
	keyLLMBaseURL,
	keyLLMAPIKey,
	keyRemoteBackend,
	keyRemoteSQLiteDir,
	keyFirestoreProject,
	keyFirestoreCredentials,
	keyFirestoreCollection,
	keyLocalDir,
	keyShareBaseURL,
	keyShareParam,
	keyInspectorName,
}

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
	aiValidator driven.AIConfigValidator
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore, aiValidator driven.AIConfigValidator) *SettingsService {
	return &SettingsService{
		configStore: configStore,
		aiValidator: aiValidator,
	}
}

// Get retrieves current application settings.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		LLM: domain.LLMSettings{
			Provider: s.getProvider(keyLLMProvider, defaults.LLM.Provider),
			Model:    s.getString(keyLLMModel, defaults.LLM.Model),
			BaseURL:  s.configStore.GetString(keyLLMBaseURL), // No default - empty is valid for cloud providers
			APIKey:   s.configStore.GetString(keyLLMAPIKey),
		},
		Remote: domain.RemoteSettings{
			Backend:              s.getBackend(defaults.Remote.Backend),
			SQLiteDir:            s.configStore.GetString(keyRemoteSQLiteDir),
			FirestoreProject:     s.configStore.GetString(keyFirestoreProject),
			FirestoreCredentials: s.configStore.GetString(keyFirestoreCredentials),
			FirestoreCollection:  s.getString(keyFirestoreCollection, defaults.Remote.FirestoreCollection),
		},
		LocalDir: s.configStore.GetString(keyLocalDir),
		Share: domain.ShareSettings{
			BaseURL: s.getString(keyShareBaseURL, defaults.Share.BaseURL),
			Param:   s.getString(keyShareParam, defaults.Share.Param),
		},
		InspectorName: s.configStore.GetString(keyInspectorName),
	}

	return settings, nil
}

// Save persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	values := []struct {
		key   string
		value string
	}{
		{keyLLMProvider, settings.LLM.Provider.String()},
		{keyLLMModel, settings.LLM.Model},
		{keyLLMBaseURL, settings.LLM.BaseURL},
		{keyRemoteBackend, settings.Remote.Backend.String()},
		{keyRemoteSQLiteDir, settings.Remote.SQLiteDir},
		{keyFirestoreProject, settings.Remote.FirestoreProject},
		{keyFirestoreCredentials, settings.Remote.FirestoreCredentials},
		{keyFirestoreCollection, settings.Remote.FirestoreCollection},
		{keyLocalDir, settings.LocalDir},
		{keyShareBaseURL, settings.Share.BaseURL},
		{keyShareParam, settings.Share.Param},
		{keyInspectorName, settings.InspectorName},
	}
	for _, v := range values {
		if err := s.configStore.Set(v.key, v.value); err != nil {
			return fmt.Errorf("save %s: %w", v.key, err)
		}
	}

	// API keys are never cleared by a save with an empty value.
	if settings.LLM.APIKey != "" {
		if err := s.configStore.Set(keyLLMAPIKey, settings.LLM.APIKey); err != nil {
			return fmt.Errorf("save llm api_key: %w", err)
		}
	}

	return nil
}

// Set updates one setting by key.
func (s *SettingsService) Set(key, value string) error {
	switch key {
	case keyLLMProvider:
		if value != "" && !domain.AIProvider(value).IsValid() {
			return fmt.Errorf("%w: invalid LLM provider: %s", domain.ErrInvalidInput, value)
		}
	case keyRemoteBackend:
		if !domain.RemoteBackend(value).IsValid() {
			return fmt.Errorf("%w: invalid remote backend: %s", domain.ErrInvalidInput, value)
		}
	case keyShareParam:
		if value == "" {
			return fmt.Errorf("%w: share.param cannot be empty", domain.ErrInvalidInput)
		}
	default:
		if !isSettableKey(key) {
			return fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
		}
	}

	if err := s.configStore.Set(key, value); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

// Keys lists the settable keys in display order.
func (s *SettingsService) Keys() []string {
	out := make([]string, len(settableKeys))
	copy(out, settableKeys)
	return out
}

// SetLLMProvider configures the LLM provider.
func (s *SettingsService) SetLLMProvider(provider domain.AIProvider, model, apiKey string) error {
	if !provider.IsValid() {
		return fmt.Errorf("invalid LLM provider: %s", provider)
	}

	// Validate API key if required
	if provider.RequiresAPIKey() && apiKey == "" {
		return fmt.Errorf("API key required for %s", provider)
	}

	settings, err := s.Get()
	if err != nil {
		return err
	}

	settings.LLM.Provider = provider

	// Set model - use provided or default
	if model != "" {
		settings.LLM.Model = model
	} else {
		defaults := domain.DefaultLLMModels()
		if defaultModel, ok := defaults[provider]; ok {
			settings.LLM.Model = defaultModel
		}
	}

	// Only the local provider needs a base URL
	if provider == domain.AIProviderOllama {
		if settings.LLM.BaseURL == "" {
			settings.LLM.BaseURL = "http://localhost:11434"
		}
	} else {
		settings.LLM.BaseURL = ""
	}

	settings.LLM.APIKey = apiKey

	return s.Save(settings)
}

// SetRemoteBackend selects the remote report store.
func (s *SettingsService) SetRemoteBackend(backend domain.RemoteBackend) error {
	if !backend.IsValid() {
		return fmt.Errorf("invalid remote backend: %s", backend)
	}

	settings, err := s.Get()
	if err != nil {
		return err
	}
	settings.Remote.Backend = backend
	return s.Save(settings)
}

// Validate checks if current settings are usable.
func (s *SettingsService) Validate() error {
	settings, err := s.Get()
	if err != nil {
		return err
	}

	if raw := s.configStore.GetString(keyLLMProvider); raw != "" && !domain.AIProvider(raw).IsValid() {
		return fmt.Errorf("invalid LLM provider: %s", raw)
	}
	if settings.LLM.Provider.IsValid() && !settings.LLM.IsConfigured() {
		return fmt.Errorf("LLM provider %q requires an API key", settings.LLM.Provider.Description())
	}

	if raw := s.configStore.GetString(keyRemoteBackend); raw != "" && !domain.RemoteBackend(raw).IsValid() {
		return fmt.Errorf("invalid remote backend: %s", raw)
	}
	if settings.Remote.Backend == domain.RemoteBackendFirestore && !settings.Remote.IsConfigured() {
		return fmt.Errorf("remote backend %q requires %s", settings.Remote.Backend, keyFirestoreProject)
	}

	if settings.Share.Param == "" {
		return fmt.Errorf("share.param cannot be empty")
	}

	return nil
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// ValidateLLMConfig validates the current LLM configuration by pinging the provider.
func (s *SettingsService) ValidateLLMConfig() error {
	if s.aiValidator == nil {
		return nil
	}
	settings, err := s.Get()
	if err != nil {
		return err
	}
	return s.aiValidator.ValidateLLM(&settings.LLM)
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getProvider(key string, defaultVal domain.AIProvider) domain.AIProvider {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	provider := domain.AIProvider(val)
	if !provider.IsValid() {
		return defaultVal
	}
	return provider
}

func (s *SettingsService) getBackend(defaultVal domain.RemoteBackend) domain.RemoteBackend {
	val := s.configStore.GetString(keyRemoteBackend)
	if val == "" {
		return defaultVal
	}
	backend := domain.RemoteBackend(val)
	if !backend.IsValid() {
		return defaultVal
	}
	return backend
}

func isSettableKey(key string) bool {
	for _, k := range settableKeys {
		if k == key {
			return true
		}
	}
	return false
}
