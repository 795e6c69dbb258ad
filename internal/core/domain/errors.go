package domain

import (
	"errors"
	"fmt"
)

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates an entity already exists.
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrSectionNotFound indicates a section ID is not in the profile.
	ErrSectionNotFound = fmt.Errorf("section %w", ErrNotFound)

	// ErrItemNotFound indicates an item ID is not in the section.
	ErrItemNotFound = fmt.Errorf("item %w", ErrNotFound)

	// ErrNoInspection indicates no inspection has been started or loaded.
	ErrNoInspection = errors.New("no inspection in progress")

	// Remote Store Errors.

	// ErrPermissionDenied indicates the remote backend refused the operation.
	// Saves treat it as recoverable: the report stays in the local store.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrSchemaMissing indicates the remote table, collection or column does not exist.
	// Saves treat it as recoverable: the report stays in the local store.
	ErrSchemaMissing = errors.New("remote schema missing")

	// ErrRemoteUnavailable indicates the remote backend is not configured.
	ErrRemoteUnavailable = errors.New("remote store unavailable")

	// ErrLLMUnavailable indicates the LLM service is not configured.
	// Generation features fall back to the built-in checklist.
	ErrLLMUnavailable = errors.New("LLM service unavailable")

	// Authentication Errors.

	// ErrAuthRequired indicates the operation needs a signed-in user.
	ErrAuthRequired = errors.New("authentication required")

	// ErrAuthInvalid indicates the credentials or token are invalid.
	ErrAuthInvalid = errors.New("authentication invalid")
)

// IsRecoverableRemote reports whether a remote failure should degrade to the
// local store instead of failing the save.
func IsRecoverableRemote(err error) bool {
	return errors.Is(err, ErrPermissionDenied) || errors.Is(err, ErrSchemaMissing)
}
