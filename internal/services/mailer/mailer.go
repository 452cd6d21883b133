// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

// Package mailer sends templated transactional email over SMTP.
package mailer

import (
	"context"
	"fmt"

	"codeberg.org/oliverandrich/accounts/internal/config"
	"codeberg.org/oliverandrich/accounts/internal/i18n"
	"github.com/wneessen/go-mail"
)

// Service sends transactional email. Templates are i18n message IDs; a
// template "x" uses the messages "x_subject" and "x_body".
type Service struct {
	cfg *config.SMTPConfig
}

// NewService creates a new mailer service.
func NewService(cfg *config.SMTPConfig) (*Service, error) {
	if cfg.Host == "" {
		return nil, fmt.Errorf("SMTP host is required")
	}
	if cfg.From == "" {
		return nil, fmt.Errorf("SMTP from address is required")
	}

	return &Service{cfg: cfg}, nil
}

// Send renders the named template with the given data in the context locale
// and sends it to the recipients.
func (s *Service) Send(ctx context.Context, to []string, template string, data map[string]any) error {
	if len(to) == 0 {
		return fmt.Errorf("at least one recipient is required")
	}

	subject := i18n.T(ctx, template+"_subject")
	body := i18n.TData(ctx, template+"_body", data)

	return s.send(to, subject, body)
}

// send sends an email via SMTP using go-mail.
func (s *Service) send(to []string, subject, body string) error {
	msg := mail.NewMsg()

	if s.cfg.FromName != "" {
		if err := msg.FromFormat(s.cfg.FromName, s.cfg.From); err != nil {
			return fmt.Errorf("setting from address: %w", err)
		}
	} else {
		if err := msg.From(s.cfg.From); err != nil {
			return fmt.Errorf("setting from address: %w", err)
		}
	}

	if err := msg.To(to...); err != nil {
		return fmt.Errorf("setting to addresses: %w", err)
	}

	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextPlain, body)

	opts := []mail.Option{
		mail.WithPort(s.cfg.Port),
	}

	// Configure TLS based on config and port
	if s.cfg.TLS {
		opts = append(opts, mail.WithTLSPolicy(mail.TLSMandatory))
		// Use implicit TLS (SSL) for port 465, STARTTLS for others
		if s.cfg.Port == 465 {
			opts = append(opts, mail.WithSSL())
		}
	} else {
		opts = append(opts, mail.WithTLSPolicy(mail.NoTLS))
	}

	if s.cfg.Username != "" && s.cfg.Password != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(s.cfg.Username),
			mail.WithPassword(s.cfg.Password),
		)
	}

	client, err := mail.NewClient(s.cfg.Host, opts...)
	if err != nil {
		return fmt.Errorf("creating mail client: %w", err)
	}

	if err := client.DialAndSend(msg); err != nil {
		return fmt.Errorf("sending email: %w", err)
	}

	return nil
}
