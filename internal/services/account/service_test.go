// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package account_test

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"codeberg.org/oliverandrich/accounts/internal/config"
	"codeberg.org/oliverandrich/accounts/internal/repository"
	"codeberg.org/oliverandrich/accounts/internal/services/account"
	"codeberg.org/oliverandrich/accounts/internal/testutil"
)

// sentMail records one call to the fake mailer.
type sentMail struct {
	To       []string
	Template string
	Data     map[string]any
}

// fakeMailer records sends instead of talking to an SMTP server.
type fakeMailer struct {
	sent []sentMail
	err  error
}

func (m *fakeMailer) Send(_ context.Context, to []string, template string, data map[string]any) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, sentMail{To: to, Template: template, Data: data})
	return nil
}

// fakeDirectory resolves organization codes from a fixed map.
type fakeDirectory struct {
	contacts map[string]string
	err      error
}

func (d *fakeDirectory) ContactEmail(_ context.Context, code string) (string, error) {
	if d.err != nil {
		return "", d.err
	}
	email, ok := d.contacts[code]
	if !ok {
		return "", fmt.Errorf("unknown organization %q", code)
	}
	return email, nil
}

func testAuthConfig() *config.AuthConfig {
	return &config.AuthConfig{
		VerifyEmailTokenMinutes:   2880,
		MagicLinkTokenMinutes:     30,
		ResetPasswordTokenMinutes: 60,
		ContactEmailTokenMinutes:  4320,
	}
}

// newTestService builds an account service on an in-memory database with a
// recording mailer and a fixed directory.
func newTestService(t *testing.T) (*account.Service, *repository.Repository, *fakeMailer, *fakeDirectory) {
	t.Helper()
	_, repo := testutil.NewTestDB(t)
	mailer := &fakeMailer{}
	dir := &fakeDirectory{contacts: map[string]string{
		"ACME-001": "contact@acme.example",
	}}
	svc := account.NewService(repo, mailer, dir, testAuthConfig(), "https://accounts.example.com")
	return svc, repo, mailer, dir
}

// tokenFromMail extracts the plaintext token from the link in the most
// recently recorded mail.
func tokenFromMail(t *testing.T, mailer *fakeMailer) string {
	t.Helper()
	if len(mailer.sent) == 0 {
		t.Fatal("no mail recorded")
	}
	link, ok := mailer.sent[len(mailer.sent)-1].Data["Link"].(string)
	if !ok {
		t.Fatal("mail has no link")
	}
	_, token, found := strings.Cut(link, "?token=")
	if !found {
		t.Fatalf("link has no token: %s", link)
	}
	return token
}
