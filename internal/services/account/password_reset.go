// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package account

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"codeberg.org/oliverandrich/accounts/internal/repository"
	"codeberg.org/oliverandrich/accounts/internal/services/security"
)

// RequestPasswordReset issues (or, with checkBeforeSend, reuses) a password
// reset token and emails it. An unknown email is swallowed on purpose: the
// caller gets a success-shaped result so account existence never leaks.
func (s *Service) RequestPasswordReset(ctx context.Context, email string, checkBeforeSend bool) (*SendResult, error) {
	acct, err := s.repo.GetAccountByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			slog.Info("password_reset_unknown_email", "email", email)
			return &SendResult{EmailSent: false}, nil
		}
		return nil, fmt.Errorf("failed to get account: %w", err)
	}

	if checkBeforeSend && !TokenExpired(acct.ResetPasswordSentAt, s.cfg.ResetPasswordWindow()) {
		return &SendResult{EmailSent: false}, nil
	}

	plaintext, hash, err := security.GenerateToken()
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	if err := s.repo.SetResetPasswordToken(ctx, acct.ID, hash, time.Now()); err != nil {
		return nil, fmt.Errorf("failed to store token: %w", err)
	}

	err = s.mailer.Send(ctx, []string{acct.Email}, "reset_password", map[string]any{
		"Link": fmt.Sprintf("%s/auth/reset-password?token=%s", s.baseURL, plaintext),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to send reset email: %w", err)
	}

	slog.Info("password_reset_sent", "account_id", acct.ID)
	return &SendResult{EmailSent: true}, nil
}

// ResetPassword consumes a reset token and rotates the password hash.
// Missing, mismatched and expired tokens all surface ErrInvalidToken.
func (s *Service) ResetPassword(ctx context.Context, token, newPassword string) error {
	if token == "" {
		return ErrInvalidToken
	}

	acct, err := s.repo.GetAccountByResetPasswordToken(ctx, security.HashToken(token))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrInvalidToken
		}
		return fmt.Errorf("failed to look up token: %w", err)
	}

	if TokenExpired(acct.ResetPasswordSentAt, s.cfg.ResetPasswordWindow()) {
		return ErrInvalidToken
	}

	if !s.validator.Validate(newPassword, acct.Email) {
		return ErrWeakPassword
	}

	passwordHash, err := security.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.repo.RotatePassword(ctx, acct.ID, passwordHash); err != nil {
		return fmt.Errorf("failed to rotate password: %w", err)
	}

	slog.Info("password_reset_done", "account_id", acct.ID)
	return nil
}
