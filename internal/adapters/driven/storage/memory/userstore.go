package memory

import (
	"context"
	"strings"
	"sync"

	"github.com/custodia-labs/walkthrough/internal/core/domain"
	"github.com/custodia-labs/walkthrough/internal/core/ports/driven"
)

// Ensure UserStore implements the interface.
var _ driven.UserStore = (*UserStore)(nil)

// UserStore is an in-memory implementation of driven.UserStore.
type UserStore struct {
	mu      sync.RWMutex
	byID    map[string]domain.UserCredentials
	byEmail map[string]string
}

// NewUserStore creates a new in-memory user store.
func NewUserStore() *UserStore {
	return &UserStore{
		byID:    make(map[string]domain.UserCredentials),
		byEmail: make(map[string]string),
	}
}

// Create stores a new user. Emails are compared case-insensitively.
func (s *UserStore) Create(_ context.Context, user domain.UserCredentials) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	email := strings.ToLower(user.Email)
	if _, ok := s.byEmail[email]; ok {
		return domain.ErrAlreadyExists
	}
	s.byID[user.ID] = user
	s.byEmail[email] = user.ID
	return nil
}

// GetByEmail retrieves a user by email.
func (s *UserStore) GetByEmail(_ context.Context, email string) (*domain.UserCredentials, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.byEmail[strings.ToLower(email)]
	if !ok {
		return nil, domain.ErrNotFound
	}
	creds := s.byID[id]
	return &creds, nil
}

// Get retrieves a user by ID.
func (s *UserStore) Get(_ context.Context, id string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	creds, ok := s.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	user := creds.User
	return &user, nil
}
