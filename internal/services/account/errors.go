// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package account

import "errors"

// Named error kinds surfaced to the handlers. These are validation and
// authorization outcomes, not transient faults; callers do not retry.
var (
	ErrInvalidEmail = errors.New("invalid email format")

	// ErrInvalidCredentials covers both "no such account" and "wrong
	// password" so callers cannot enumerate accounts.
	ErrInvalidCredentials = errors.New("invalid credentials")

	ErrEmailUnavailable     = errors.New("email is already in use")
	ErrWeakPassword         = errors.New("password does not meet requirements")
	ErrEmailVerifiedAlready = errors.New("email is already verified")

	// ErrInvalidToken covers missing, mismatched and expired tokens alike;
	// the distinction is deliberately not exposed.
	ErrInvalidToken = errors.New("invalid or expired token")

	// ErrInvalidMagicLink is the magic link flavor of ErrInvalidToken.
	ErrInvalidMagicLink = errors.New("invalid or expired magic link")

	ErrNotFound                   = errors.New("account not found")
	ErrDirectoryLookupFailed      = errors.New("directory lookup failed")
	ErrVerificationNotNeeded      = errors.New("no contact verification pending")
	ErrInvalidPersonalInformation = errors.New("invalid personal informations")
)
