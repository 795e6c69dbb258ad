package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAIProvider_IsValid(t *testing.T) {
	for _, p := range AllLLMProviders() {
		assert.True(t, p.IsValid(), p)
		assert.NotEqual(t, unknownDescription, p.Description())
	}
	assert.False(t, AIProvider("").IsValid())
	assert.False(t, AIProvider("gemini").IsValid())
	assert.Equal(t, unknownDescription, AIProvider("gemini").Description())
}

func TestLLMSettings_IsConfigured(t *testing.T) {
	tests := []struct {
		name     string
		settings LLMSettings
		expected bool
	}{
		{"empty", LLMSettings{}, false},
		{"ollama without key", LLMSettings{Provider: AIProviderOllama}, true},
		{"openai without key", LLMSettings{Provider: AIProviderOpenAI}, false},
		{"anthropic with key", LLMSettings{Provider: AIProviderAnthropic, APIKey: "k"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.settings.IsConfigured())
		})
	}
}

func TestRemoteSettings_IsConfigured(t *testing.T) {
	tests := []struct {
		name     string
		settings RemoteSettings
		expected bool
	}{
		{"none", RemoteSettings{Backend: RemoteBackendNone}, false},
		{"empty", RemoteSettings{}, false},
		{"sqlite", RemoteSettings{Backend: RemoteBackendSQLite}, true},
		{"firestore without project", RemoteSettings{Backend: RemoteBackendFirestore}, false},
		{"firestore with project", RemoteSettings{Backend: RemoteBackendFirestore, FirestoreProject: "p"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.settings.IsConfigured())
		})
	}
}

func TestRemoteBackend_IsValid(t *testing.T) {
	assert.True(t, RemoteBackendNone.IsValid())
	assert.True(t, RemoteBackendSQLite.IsValid())
	assert.True(t, RemoteBackendFirestore.IsValid())
	assert.False(t, RemoteBackend("supabase").IsValid())
}

func TestDefaultAppSettings(t *testing.T) {
	s := DefaultAppSettings()

	assert.False(t, s.LLM.IsConfigured())
	assert.False(t, s.Remote.IsConfigured())
	assert.Equal(t, RemoteBackendNone, s.Remote.Backend)
	assert.Equal(t, DefaultShareParam, s.Share.Param)
	assert.NotEmpty(t, s.Share.BaseURL)
}
