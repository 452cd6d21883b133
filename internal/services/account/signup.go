// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package account

import (
	"context"
	"fmt"
	"log/slog"

	"codeberg.org/oliverandrich/accounts/internal/models"
	"codeberg.org/oliverandrich/accounts/internal/services/security"
)

// Signup creates a new account and sends the verification email. An email
// already in use wins over a weak password.
func (s *Service) Signup(ctx context.Context, email, password string) (*models.Account, error) {
	if !security.IsEmail(email) {
		return nil, ErrInvalidEmail
	}

	exists, err := s.repo.EmailExists(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing account: %w", err)
	}
	if exists {
		return nil, ErrEmailUnavailable
	}

	if !s.validator.Validate(password, email) {
		return nil, ErrWeakPassword
	}

	passwordHash, err := security.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	acct, err := s.repo.CreateAccount(ctx, email, passwordHash)
	if err != nil {
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	slog.Info("signup_success", "account_id", acct.ID, "email", email)

	// Delivery failures are recoverable through the resend endpoint.
	if _, err := s.SendVerificationEmail(ctx, email, false); err != nil {
		slog.Warn("signup_verification_email_failed", "account_id", acct.ID, "error", err)
	}

	return acct, nil
}
