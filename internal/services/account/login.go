// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package account

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"codeberg.org/oliverandrich/accounts/internal/models"
	"codeberg.org/oliverandrich/accounts/internal/repository"
	"golang.org/x/crypto/bcrypt"
)

// dummyHash is used for constant-time login to prevent timing attacks
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("dummy-password-for-timing"), bcrypt.DefaultCost)

// Login authenticates an account by email and password. Unknown email and
// wrong password both surface ErrInvalidCredentials.
func (s *Service) Login(ctx context.Context, email, password string) (*models.Account, error) {
	acct, err := s.repo.GetAccountByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			// Constant-time: always perform bcrypt comparison to prevent timing attacks
			_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
			slog.Warn("login_failed", "email", email, "reason", "account_not_found")
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to get account: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(acct.PasswordHash), []byte(password)); err != nil {
		slog.Warn("login_failed", "email", email, "reason", "invalid_password")
		return nil, ErrInvalidCredentials
	}

	if err := s.repo.RecordSignIn(ctx, acct.ID); err != nil {
		return nil, fmt.Errorf("failed to record sign-in: %w", err)
	}

	slog.Info("login_success", "account_id", acct.ID, "email", email)
	return s.repo.GetAccountByID(ctx, acct.ID)
}
