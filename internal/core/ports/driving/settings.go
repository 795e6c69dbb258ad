package driving

import "github.com/custodia-labs/walkthrough/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get retrieves current application settings.
	Get() (*domain.AppSettings, error)

	// Save persists application settings.
	Save(settings *domain.AppSettings) error

	// Set updates one setting by its dot-notation key, e.g. "remote.backend".
	// Unknown keys and invalid values are rejected with domain.ErrInvalidInput.
	Set(key, value string) error

	// Keys lists the settable keys in display order.
	Keys() []string

	// SetLLMProvider configures the LLM provider.
	SetLLMProvider(provider domain.AIProvider, model, apiKey string) error

	// SetRemoteBackend selects the remote report store.
	SetRemoteBackend(backend domain.RemoteBackend) error

	// Validate checks if current settings are usable.
	Validate() error

	// GetDefaults returns default settings.
	GetDefaults() domain.AppSettings

	// ValidateLLMConfig validates the current LLM configuration by pinging the provider.
	ValidateLLMConfig() error
}
