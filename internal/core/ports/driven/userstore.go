package driven

import (
	"context"

	"github.com/custodia-labs/walkthrough/internal/core/domain"
)

// UserStore persists accounts and their password hashes.
type UserStore interface {
	// Create stores a new user.
	// Returns domain.ErrAlreadyExists if the email is taken.
	Create(ctx context.Context, user domain.UserCredentials) error

	// GetByEmail retrieves a user by email.
	// Returns domain.ErrNotFound if absent.
	GetByEmail(ctx context.Context, email string) (*domain.UserCredentials, error)

	// Get retrieves a user by ID.
	// Returns domain.ErrNotFound if absent.
	Get(ctx context.Context, id string) (*domain.User, error)
}

// CurrentUserProvider reports the signed-in user, if any.
// A nil user with a nil error means nobody is signed in.
type CurrentUserProvider interface {
	CurrentUser(ctx context.Context) (*domain.User, error)
}
