// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

// Package account implements the authentication and verification flows:
// password login, signup, email verification, magic link login, password
// reset and official contact email verification.
package account

import (
	"context"

	"codeberg.org/oliverandrich/accounts/internal/config"
	"codeberg.org/oliverandrich/accounts/internal/repository"
	"codeberg.org/oliverandrich/accounts/internal/services/security"
)

// Mailer sends a templated transactional email.
type Mailer interface {
	Send(ctx context.Context, to []string, template string, data map[string]any) error
}

// Directory resolves an organization code to its official contact email.
type Directory interface {
	ContactEmail(ctx context.Context, code string) (string, error)
}

// SendResult reports whether an issue-or-resend flow actually sent an email.
// EmailSent is false when checkBeforeSend found a still-valid token.
type SendResult struct {
	EmailSent bool `json:"email_sent"`
}

// Service implements the account flows on top of the repository, the mailer
// and the directory service.
type Service struct {
	repo      *repository.Repository
	mailer    Mailer
	directory Directory
	cfg       *config.AuthConfig
	baseURL   string
	validator *security.PasswordValidator
}

// NewService creates a new account service. baseURL is used to build the
// links embedded in emails.
func NewService(repo *repository.Repository, mailer Mailer, directory Directory, cfg *config.AuthConfig, baseURL string) *Service {
	return &Service{
		repo:      repo,
		mailer:    mailer,
		directory: directory,
		cfg:       cfg,
		baseURL:   baseURL,
		validator: security.DefaultPasswordValidator(),
	}
}

// PasswordValidator returns the password validator for use in handlers.
func (s *Service) PasswordValidator() *security.PasswordValidator {
	return s.validator
}
