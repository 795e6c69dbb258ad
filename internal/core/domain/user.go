package domain

import "time"

// User is an account that can own saved reports.
type User struct {
	ID        string
	Email     string
	CreatedAt time.Time
}

// UserCredentials is a user together with the stored password hash.
type UserCredentials struct {
	User
	PasswordHash string
}

// Session is a signed-in user and the token that proves it.
type Session struct {
	User      User
	Token     string
	ExpiresAt time.Time
}
