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

// SendContactEmailVerification resolves the organization's official contact
// email through the directory and sends it a verification token. The token
// confirms the account's affiliation, so the mail goes to the official
// contact, not to the account itself.
func (s *Service) SendContactEmailVerification(ctx context.Context, accountID int64, organizationCode string, checkBeforeSend bool) (*SendResult, error) {
	acct, err := s.repo.GetAccountByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get account: %w", err)
	}

	org, err := s.repo.GetOrganizationByCode(ctx, organizationCode)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get organization: %w", err)
	}

	membership, err := s.repo.GetMembership(ctx, acct.ID, org.ID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get membership: %w", err)
	}
	if !membership.NeedsContactVerification {
		return nil, ErrVerificationNotNeeded
	}

	contactEmail, err := s.directory.ContactEmail(ctx, organizationCode)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDirectoryLookupFailed, err)
	}

	if checkBeforeSend && !TokenExpired(acct.ContactEmailSentAt, s.cfg.ContactEmailWindow()) {
		return &SendResult{EmailSent: false}, nil
	}

	plaintext, hash, err := security.GenerateToken()
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	if err := s.repo.SetContactEmailToken(ctx, acct.ID, hash, time.Now()); err != nil {
		return nil, fmt.Errorf("failed to store token: %w", err)
	}

	err = s.mailer.Send(ctx, []string{contactEmail}, "contact_email_verification", map[string]any{
		"AccountEmail":     acct.Email,
		"OrganizationName": org.Name,
		"Link":             fmt.Sprintf("%s/account/contact-email/confirm?token=%s", s.baseURL, plaintext),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to send contact verification email: %w", err)
	}

	slog.Info("contact_verification_sent", "account_id", acct.ID, "organization", organizationCode)
	return &SendResult{EmailSent: true}, nil
}

// ConfirmContactEmail consumes a contact verification token and clears the
// membership's pending flag. Missing, mismatched and expired tokens all
// surface ErrInvalidToken.
func (s *Service) ConfirmContactEmail(ctx context.Context, token string) error {
	if token == "" {
		return ErrInvalidToken
	}

	acct, err := s.repo.GetAccountByContactEmailToken(ctx, security.HashToken(token))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrInvalidToken
		}
		return fmt.Errorf("failed to look up token: %w", err)
	}

	if TokenExpired(acct.ContactEmailSentAt, s.cfg.ContactEmailWindow()) {
		return ErrInvalidToken
	}

	membership, err := s.repo.GetPendingMembership(ctx, acct.ID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrVerificationNotNeeded
		}
		return fmt.Errorf("failed to get membership: %w", err)
	}

	if err := s.repo.ConfirmMembershipContact(ctx, membership.ID, acct.ID); err != nil {
		return fmt.Errorf("failed to confirm membership: %w", err)
	}

	slog.Info("contact_email_confirmed", "account_id", acct.ID, "membership_id", membership.ID)
	return nil
}
