package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/custodia-labs/walkthrough/internal/core/domain"
	"github.com/custodia-labs/walkthrough/internal/core/ports/driven"
	"github.com/custodia-labs/walkthrough/internal/core/ports/driving"
	"github.com/custodia-labs/walkthrough/internal/logger"
)

// Ensure AuthService implements the interfaces.
var (
	_ driving.AuthService        = (*AuthService)(nil)
	_ driven.CurrentUserProvider = (*AuthService)(nil)
)

// Config keys holding the session.
const (
	ConfigKeyAuthSecret = "auth.secret"
	ConfigKeyAuthToken  = "auth.token"
)

const (
	// MinPasswordLength is the minimum accepted password length.
	MinPasswordLength = 8

	// DefaultSessionTTL is how long a sign-in lasts.
	DefaultSessionTTL = 30 * 24 * time.Hour

	tokenIssuer = "walkthrough"
)

// sessionClaims are the claims of a session token.
type sessionClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// AuthService signs users in with email and password. Password hashes live in
// the user store; the signed session token lives in the config store.
type AuthService struct {
	users  driven.UserStore
	config driven.ConfigStore
	ids    driven.IDGenerator
	cost   int
	ttl    time.Duration
	now    func() time.Time
}

// NewAuthService creates a new auth service.
// users may be nil when no remote store is configured; sign-up and sign-in
// then return domain.ErrRemoteUnavailable.
func NewAuthService(users driven.UserStore, config driven.ConfigStore, ids driven.IDGenerator) *AuthService {
	return &AuthService{
		users:  users,
		config: config,
		ids:    ids,
		cost:   bcrypt.DefaultCost,
		ttl:    DefaultSessionTTL,
		now:    time.Now,
	}
}

// SetHashCost sets the bcrypt cost for new password hashes.
func (s *AuthService) SetHashCost(cost int) {
	s.cost = cost
}

// SetSessionTTL sets how long new sessions last.
func (s *AuthService) SetSessionTTL(ttl time.Duration) {
	s.ttl = ttl
}

// SignUp creates an account.
func (s *AuthService) SignUp(ctx context.Context, email, password string) (*domain.User, error) {
	if s.users == nil {
		return nil, domain.ErrRemoteUnavailable
	}
	email = strings.TrimSpace(email)
	if err := validateCredentials(email, password); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	user := domain.User{
		ID:        s.ids.NewID(),
		Email:     email,
		CreatedAt: s.now().UTC(),
	}
	if err := s.users.Create(ctx, domain.UserCredentials{User: user, PasswordHash: string(hash)}); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	logger.Info("created account %s", user.Email)
	return &user, nil
}

// SignIn verifies credentials and persists a session token.
func (s *AuthService) SignIn(ctx context.Context, email, password string) (*domain.Session, error) {
	if s.users == nil {
		return nil, domain.ErrRemoteUnavailable
	}
	creds, err := s.users.GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrAuthInvalid
		}
		return nil, fmt.Errorf("look up user: %w", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(creds.PasswordHash), []byte(password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return nil, domain.ErrAuthInvalid
		}
		return nil, fmt.Errorf("check password: %w", err)
	}

	secret, err := s.secret()
	if err != nil {
		return nil, err
	}
	now := s.now()
	expires := now.Add(s.ttl)
	claims := sessionClaims{
		Email: creds.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   creds.ID,
			Issuer:    tokenIssuer,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expires),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	if err != nil {
		return nil, fmt.Errorf("sign session token: %w", err)
	}
	if err := s.config.Set(ConfigKeyAuthToken, token); err != nil {
		return nil, fmt.Errorf("store session: %w", err)
	}

	return &domain.Session{User: creds.User, Token: token, ExpiresAt: expires}, nil
}

// SignOut clears the persisted session.
func (s *AuthService) SignOut(_ context.Context) error {
	if err := s.config.Delete(ConfigKeyAuthToken); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

// CurrentUser returns the user named by the stored session token.
// An absent, expired or tampered token means nobody is signed in.
func (s *AuthService) CurrentUser(_ context.Context) (*domain.User, error) {
	token := s.config.GetString(ConfigKeyAuthToken)
	if token == "" {
		return nil, nil
	}
	secret := s.config.GetString(ConfigKeyAuthSecret)
	if secret == "" {
		return nil, nil
	}

	claims := &sessionClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	},
		jwt.WithIssuer(tokenIssuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !parsed.Valid {
		logger.Debug("ignoring session token: %v", err)
		return nil, nil
	}
	return &domain.User{ID: claims.Subject, Email: claims.Email}, nil
}

// secret returns the token signing key, generating one on first use.
func (s *AuthService) secret() ([]byte, error) {
	if existing := s.config.GetString(ConfigKeyAuthSecret); existing != "" {
		return []byte(existing), nil
	}
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return nil, fmt.Errorf("generate session secret: %w", err)
	}
	secret := hex.EncodeToString(buf)
	if err := s.config.Set(ConfigKeyAuthSecret, secret); err != nil {
		return nil, fmt.Errorf("store session secret: %w", err)
	}
	return []byte(secret), nil
}

func validateCredentials(email, password string) error {
	if !strings.Contains(email, "@") {
		return fmt.Errorf("%w: email must contain @", domain.ErrInvalidInput)
	}
	if len(password) < MinPasswordLength {
		return fmt.Errorf("%w: password must be at least %d characters", domain.ErrInvalidInput, MinPasswordLength)
	}
	return nil
}
