// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package handlers_test

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"codeberg.org/oliverandrich/accounts/internal/config"
	"codeberg.org/oliverandrich/accounts/internal/handlers"
	"codeberg.org/oliverandrich/accounts/internal/repository"
	"codeberg.org/oliverandrich/accounts/internal/services/account"
	"codeberg.org/oliverandrich/accounts/internal/services/session"
	"codeberg.org/oliverandrich/accounts/internal/testutil"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sentMail struct {
	To       []string
	Template string
	Data     map[string]any
}

type fakeMailer struct {
	sent []sentMail
}

func (m *fakeMailer) Send(_ context.Context, to []string, template string, data map[string]any) error {
	m.sent = append(m.sent, sentMail{To: to, Template: template, Data: data})
	return nil
}

type fakeDirectory struct {
	contacts map[string]string
}

func (d *fakeDirectory) ContactEmail(_ context.Context, code string) (string, error) {
	email, ok := d.contacts[code]
	if !ok {
		return "", fmt.Errorf("unknown organization %q", code)
	}
	return email, nil
}

type testEnv struct {
	echo     *echo.Echo
	repo     *repository.Repository
	accounts *account.Service
	sessions *session.Manager
	auth     *handlers.AuthHandlers
	account  *handlers.AccountHandlers
	mailer   *fakeMailer
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	_, repo := testutil.NewTestDB(t)
	mailer := &fakeMailer{}
	dir := &fakeDirectory{contacts: map[string]string{"ACME-001": "contact@acme.example"}}
	authCfg := &config.AuthConfig{
		VerifyEmailTokenMinutes:   2880,
		MagicLinkTokenMinutes:     30,
		ResetPasswordTokenMinutes: 60,
		ContactEmailTokenMinutes:  4320,
	}
	accounts := account.NewService(repo, mailer, dir, authCfg, "https://accounts.example.com")

	sessions, err := session.NewManager(&config.SessionConfig{
		CookieName: "_session",
		MaxAge:     3600,
	}, true)
	require.NoError(t, err)

	return &testEnv{
		echo:     echo.New(),
		repo:     repo,
		accounts: accounts,
		sessions: sessions,
		auth:     handlers.NewAuth(accounts, sessions),
		account:  handlers.NewAccount(accounts),
		mailer:   mailer,
	}
}

func TestHealth(t *testing.T) {
	env := newTestEnv(t)
	h := handlers.New(env.repo)

	c, rec := testutil.NewEchoContext(env.echo, http.MethodGet, "/health", nil)

	require.NoError(t, h.Health(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status": "ok"}`, rec.Body.String())
}
