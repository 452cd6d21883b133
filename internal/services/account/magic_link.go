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

// SendMagicLink issues (or, with checkBeforeSend, reuses) a magic link token
// and emails the sign-in link to the account.
func (s *Service) SendMagicLink(ctx context.Context, email string, checkBeforeSend bool) (*SendResult, error) {
	acct, err := s.repo.GetAccountByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get account: %w", err)
	}

	if checkBeforeSend && !TokenExpired(acct.MagicLinkSentAt, s.cfg.MagicLinkWindow()) {
		return &SendResult{EmailSent: false}, nil
	}

	plaintext, hash, err := security.GenerateToken()
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	if err := s.repo.SetMagicLinkToken(ctx, acct.ID, hash, time.Now()); err != nil {
		return nil, fmt.Errorf("failed to store token: %w", err)
	}

	err = s.mailer.Send(ctx, []string{acct.Email}, "magic_link", map[string]any{
		"Link": fmt.Sprintf("%s/auth/magic-link?token=%s", s.baseURL, plaintext),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to send magic link email: %w", err)
	}

	slog.Info("magic_link_sent", "account_id", acct.ID)
	return &SendResult{EmailSent: true}, nil
}

// LoginWithMagicLink consumes a magic link token and signs the account in.
// Missing, mismatched and expired tokens all surface ErrInvalidMagicLink.
func (s *Service) LoginWithMagicLink(ctx context.Context, token string) (*models.Account, error) {
	if token == "" {
		return nil, ErrInvalidMagicLink
	}

	acct, err := s.repo.GetAccountByMagicLinkToken(ctx, security.HashToken(token))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidMagicLink
		}
		return nil, fmt.Errorf("failed to look up token: %w", err)
	}

	if TokenExpired(acct.MagicLinkSentAt, s.cfg.MagicLinkWindow()) {
		return nil, ErrInvalidMagicLink
	}

	if err := s.repo.ConsumeMagicLink(ctx, acct.ID); err != nil {
		return nil, fmt.Errorf("failed to consume magic link: %w", err)
	}

	slog.Info("magic_link_login", "account_id", acct.ID)
	return s.repo.GetAccountByID(ctx, acct.ID)
}
