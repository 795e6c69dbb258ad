package domain

const unknownDescription = "Unknown"

// AIProvider identifies a generative AI service provider.
type AIProvider string

// Available AI providers.
const (
	// AIProviderOllama is local Ollama instance.
	AIProviderOllama AIProvider = "ollama"

	// AIProviderOpenAI is OpenAI cloud API.
	AIProviderOpenAI AIProvider = "openai"

	// AIProviderAnthropic is Anthropic cloud API.
	AIProviderAnthropic AIProvider = "anthropic"
)

// IsValid returns true if the AI provider is recognised.
func (p AIProvider) IsValid() bool {
	switch p {
	case AIProviderOllama, AIProviderOpenAI, AIProviderAnthropic:
		return true
	default:
		return false
	}
}

// RequiresAPIKey returns true if this provider needs an API key.
func (p AIProvider) RequiresAPIKey() bool {
	return p == AIProviderOpenAI || p == AIProviderAnthropic
}

// String returns the string representation.
func (p AIProvider) String() string {
	return string(p)
}

// Description returns a human-readable description of the provider.
func (p AIProvider) Description() string {
	switch p {
	case AIProviderOllama:
		return "Ollama (local)"
	case AIProviderOpenAI:
		return "OpenAI (cloud)"
	case AIProviderAnthropic:
		return "Anthropic (cloud)"
	default:
		return unknownDescription
	}
}

// LLMSettings holds LLM provider configuration.
type LLMSettings struct {
	// Provider is the LLM service provider.
	Provider AIProvider

	// Model is the LLM model name.
	Model string

	// BaseURL is the API endpoint (for Ollama).
	BaseURL string

	// APIKey is the API key (for OpenAI/Anthropic).
	APIKey string
}

// IsConfigured returns true if the LLM provider is set up.
func (l LLMSettings) IsConfigured() bool {
	if !l.Provider.IsValid() {
		return false
	}
	if l.Provider.RequiresAPIKey() && l.APIKey == "" {
		return false
	}
	return true
}

// RemoteBackend identifies the remote report store.
type RemoteBackend string

// Available remote backends.
const (
	// RemoteBackendNone keeps reports in the local fallback store only.
	RemoteBackendNone RemoteBackend = "none"

	// RemoteBackendSQLite stores reports in a SQLite database, typically on a shared volume.
	RemoteBackendSQLite RemoteBackend = "sqlite"

	// RemoteBackendFirestore stores reports in a Cloud Firestore collection.
	RemoteBackendFirestore RemoteBackend = "firestore"
)

// IsValid returns true if the backend is recognised.
func (b RemoteBackend) IsValid() bool {
	switch b {
	case RemoteBackendNone, RemoteBackendSQLite, RemoteBackendFirestore:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (b RemoteBackend) String() string {
	return string(b)
}

// RemoteSettings holds remote report store configuration.
type RemoteSettings struct {
	// Backend selects the remote store.
	Backend RemoteBackend

	// SQLiteDir is the directory holding the SQLite database.
	SQLiteDir string

	// FirestoreProject is the Google Cloud project ID.
	FirestoreProject string

	// FirestoreCredentials is the path to a service account key file.
	FirestoreCredentials string

	// FirestoreCollection is the collection holding reports.
	FirestoreCollection string
}

// IsConfigured returns true if a remote backend is selected and usable.
func (r RemoteSettings) IsConfigured() bool {
	switch r.Backend {
	case RemoteBackendSQLite:
		return true
	case RemoteBackendFirestore:
		return r.FirestoreProject != ""
	default:
		return false
	}
}

// ShareSettings controls shareable links.
type ShareSettings struct {
	// BaseURL is the page the link points at.
	BaseURL string

	// Param is the query parameter carrying the report key.
	Param string
}

// AppSettings holds all application settings.
type AppSettings struct {
	// LLM holds LLM provider settings.
	LLM LLMSettings

	// Remote holds remote store settings.
	Remote RemoteSettings

	// LocalDir is the directory of the local fallback store.
	LocalDir string

	// Share holds shareable link settings.
	Share ShareSettings

	// InspectorName is used as the default inspector on new inspections.
	InspectorName string
}

// DefaultAppSettings returns settings with sensible defaults.
// LLM and remote backends are left unconfigured.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		LLM: LLMSettings{},
		Remote: RemoteSettings{
			Backend:             RemoteBackendNone,
			FirestoreCollection: "inspection_reports",
		},
		Share: ShareSettings{
			BaseURL: "https://walkthrough.app/",
			Param:   DefaultShareParam,
		},
	}
}

// AllLLMProviders returns providers that support LLM operations.
func AllLLMProviders() []AIProvider {
	return []AIProvider{
		AIProviderOllama,
		AIProviderOpenAI,
		AIProviderAnthropic,
	}
}

// DefaultLLMModels returns default models for each LLM provider.
func DefaultLLMModels() map[AIProvider]string {
	return map[AIProvider]string{
		AIProviderOllama:    "llama3.2-vision",
		AIProviderOpenAI:    "gpt-4o-mini",
		AIProviderAnthropic: "claude-3-5-sonnet-latest",
	}
}
