// Package apperror defines the error taxonomy surfaced to GraphQL clients.
// Every failure path returns one of these sentinels (wrapped with context);
// failures are never handed back as success values.
package apperror

import "errors"

var (
	// ErrAuthentication covers missing, invalid or expired tokens and sessions.
	ErrAuthentication = errors.New("authentication error")

	// ErrAuthorization covers live sessions whose role is insufficient.
	ErrAuthorization = errors.New("unauthorized")

	// ErrValidation covers missing required input fields and malformed ids.
	ErrValidation = errors.New("bad request")

	// ErrNotFound covers explicit primary-id lookups that match nothing.
	// Relational id lists tolerate missing references and resolve them to null
	// instead.
	ErrNotFound = errors.New("not found")

	// ErrUnexpected covers provider and store failures.
	ErrUnexpected = errors.New("unexpected error")
)
