package driving

import (
	"context"

	"github.com/custodia-labs/walkthrough/internal/core/domain"
)

// AuthService manages the signed-in account that owns saved reports.
type AuthService interface {
	// SignUp creates an account. It does not sign in.
	SignUp(ctx context.Context, email, password string) (*domain.User, error)

	// SignIn verifies credentials and persists a session.
	SignIn(ctx context.Context, email, password string) (*domain.Session, error)

	// SignOut clears the persisted session.
	SignOut(ctx context.Context) error

	// CurrentUser returns the signed-in user, or nil when signed out.
	CurrentUser(ctx context.Context) (*domain.User, error)
}
