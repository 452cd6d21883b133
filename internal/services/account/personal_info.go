// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package account

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"codeberg.org/oliverandrich/accounts/internal/repository"
	"codeberg.org/oliverandrich/accounts/internal/services/security"
)

// UpdatePersonalInformation validates and persists the account's personal
// information. The payload comes straight from the request body, so field
// types are checked before anything touches the repository.
func (s *Service) UpdatePersonalInformation(ctx context.Context, accountID int64, payload map[string]any) error {
	givenName, ok := nonEmptyString(payload, "given_name")
	if !ok {
		return ErrInvalidPersonalInformation
	}
	familyName, ok := nonEmptyString(payload, "family_name")
	if !ok {
		return ErrInvalidPersonalInformation
	}
	jobTitle, ok := nonEmptyString(payload, "job_title")
	if !ok {
		return ErrInvalidPersonalInformation
	}
	phone, ok := nonEmptyString(payload, "phone")
	if !ok || !security.IsE164(phone) {
		return ErrInvalidPersonalInformation
	}

	if _, err := s.repo.GetAccountByID(ctx, accountID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to get account: %w", err)
	}

	if err := s.repo.UpdatePersonalInformation(ctx, accountID, givenName, familyName, jobTitle, phone); err != nil {
		return fmt.Errorf("failed to update personal information: %w", err)
	}

	slog.Info("personal_information_updated", "account_id", accountID)
	return nil
}

func nonEmptyString(payload map[string]any, key string) (string, bool) {
	value, ok := payload[key].(string)
	if !ok || value == "" {
		return "", false
	}
	return value, true
}
