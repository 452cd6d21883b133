// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package account

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"codeberg.org/oliverandrich/accounts/internal/models"
	"codeberg.org/oliverandrich/accounts/internal/repository"
	"codeberg.org/oliverandrich/accounts/internal/services/security"
)

// SendVerificationEmail issues (or, with checkBeforeSend, reuses) an email
// verification token and emails it to the account.
func (s *Service) SendVerificationEmail(ctx context.Context, email string, checkBeforeSend bool) (*SendResult, error) {
	acct, err := s.repo.GetAccountByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get account: %w", err)
	}

	if acct.EmailVerified {
		return nil, ErrEmailVerifiedAlready
	}

	if checkBeforeSend && !TokenExpired(acct.VerifyEmailSentAt, s.cfg.VerifyEmailWindow()) {
		return &SendResult{EmailSent: false}, nil
	}

	plaintext, hash, err := security.GenerateToken()
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	if err := s.repo.SetVerifyEmailToken(ctx, acct.ID, hash, time.Now()); err != nil {
		return nil, fmt.Errorf("failed to store token: %w", err)
	}

	err = s.mailer.Send(ctx, []string{acct.Email}, "verify_email", map[string]any{
		"Link": fmt.Sprintf("%s/auth/verify-email?token=%s", s.baseURL, plaintext),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to send verification email: %w", err)
	}

	slog.Info("verification_email_sent", "account_id", acct.ID)
	return &SendResult{EmailSent: true}, nil
}

// VerifyEmail consumes a verification token and marks the account's email
// as verified. Missing, mismatched and expired tokens all surface
// ErrInvalidToken.
func (s *Service) VerifyEmail(ctx context.Context, token string) (*models.Account, error) {
	// An empty token must never reach the lookup; it would match nothing
	// but guards against wildcard behavior in the storage layer.
	if token == "" {
		return nil, ErrInvalidToken
	}

	acct, err := s.repo.GetAccountByVerifyEmailToken(ctx, security.HashToken(token))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, fmt.Errorf("failed to look up token: %w", err)
	}

	if TokenExpired(acct.VerifyEmailSentAt, s.cfg.VerifyEmailWindow()) {
		return nil, ErrInvalidToken
	}

	if err := s.repo.MarkEmailVerified(ctx, acct.ID); err != nil {
		return nil, fmt.Errorf("failed to mark email verified: %w", err)
	}

	slog.Info("email_verified", "account_id", acct.ID)
	return s.repo.GetAccountByID(ctx, acct.ID)
}
