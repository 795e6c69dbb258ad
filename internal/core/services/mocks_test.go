package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/custodia-labs/walkthrough/internal/core/domain"
	"github.com/custodia-labs/walkthrough/internal/core/ports/driven"
)

// sequentialIDs hands out predictable identifiers.
type sequentialIDs struct {
	mu    sync.Mutex
	n     int
	short int
}

var _ driven.IDGenerator = (*sequentialIDs)(nil)

func (g *sequentialIDs) NewID() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.n++
	return fmt.Sprintf("00000000-0000-4000-8000-%012d", g.n)
}

func (g *sequentialIDs) NewShortID() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.short++
	return fmt.Sprintf("SHORT%04d", g.short)
}

// stubUsers reports a fixed signed-in user.
type stubUsers struct {
	user *domain.User
	err  error
}

func (s *stubUsers) CurrentUser(context.Context) (*domain.User, error) {
	return s.user, s.err
}

// mockLLM returns canned responses and records the last request.
type mockLLM struct {
	mu        sync.Mutex
	responses []string
	err       error
	prompts   []string
	opts      []driven.GenerateOptions
}

var _ driven.LLMService = (*mockLLM)(nil)

func (m *mockLLM) Generate(_ context.Context, prompt string, opts driven.GenerateOptions) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.prompts = append(m.prompts, prompt)
	m.opts = append(m.opts, opts)
	if m.err != nil {
		return "", m.err
	}
	if len(m.responses) == 0 {
		return "", nil
	}
	resp := m.responses[0]
	if len(m.responses) > 1 {
		m.responses = m.responses[1:]
	}
	return resp, nil
}

func (m *mockLLM) Chat(ctx context.Context, messages []driven.ChatMessage, opts driven.ChatOptions) (string, error) {
	var prompt string
	if len(messages) > 0 {
		prompt = messages[len(messages)-1].Content
	}
	return m.Generate(ctx, prompt, driven.GenerateOptions{MaxTokens: opts.MaxTokens, JSON: opts.JSON})
}

func (m *mockLLM) ModelName() string { return "mock" }

func (m *mockLLM) Ping(context.Context) error { return nil }

func (m *mockLLM) Close() error { return nil }

func (m *mockLLM) lastPrompt() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.prompts) == 0 {
		return ""
	}
	return m.prompts[len(m.prompts)-1]
}

func (m *mockLLM) lastOptions() driven.GenerateOptions {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.opts) == 0 {
		return driven.GenerateOptions{}
	}
	return m.opts[len(m.opts)-1]
}

// mapPrompts serves fixed templates.
type mapPrompts map[string]string

func (p mapPrompts) Load(name string) (string, error) {
	if tmpl, ok := p[name]; ok {
		return tmpl, nil
	}
	return "", fmt.Errorf("prompt %q: %w", name, domain.ErrNotFound)
}

func (p mapPrompts) Reload() {}
