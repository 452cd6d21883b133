// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package session_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"codeberg.org/oliverandrich/accounts/internal/config"
	"codeberg.org/oliverandrich/accounts/internal/services/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSessionConfig() *config.SessionConfig {
	return &config.SessionConfig{
		CookieName: "accounts_session",
		HashKey:    session.GenerateKey(),
		MaxAge:     3600,
		Secure:     false,
	}
}

func TestSessionRoundtrip(t *testing.T) {
	mgr, err := session.NewManager(testSessionConfig(), false)
	require.NoError(t, err)

	cookie, err := mgr.Create(42, "user@example.com")
	require.NoError(t, err)
	assert.Equal(t, "accounts_session", cookie.Name)
	assert.True(t, cookie.HttpOnly)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookie)

	acct := mgr.Parse(req)
	require.NotNil(t, acct)
	assert.Equal(t, int64(42), acct.ID)
	assert.Equal(t, "user@example.com", acct.Email)
}

func TestParse_NoCookie(t *testing.T) {
	mgr, err := session.NewManager(testSessionConfig(), false)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/", nil)

	assert.Nil(t, mgr.Parse(req))
}

func TestParse_TamperedCookie(t *testing.T) {
	mgr, err := session.NewManager(testSessionConfig(), false)
	require.NoError(t, err)

	cookie, err := mgr.Create(42, "user@example.com")
	require.NoError(t, err)
	cookie.Value += "tampered"

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookie)

	assert.Nil(t, mgr.Parse(req))
}

func TestParse_DifferentKey(t *testing.T) {
	mgrA, err := session.NewManager(testSessionConfig(), false)
	require.NoError(t, err)
	mgrB, err := session.NewManager(testSessionConfig(), false)
	require.NoError(t, err)

	cookie, err := mgrA.Create(42, "user@example.com")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookie)

	assert.Nil(t, mgrB.Parse(req))
}

func TestNewManager_MissingKey(t *testing.T) {
	cfg := testSessionConfig()
	cfg.HashKey = ""

	_, err := session.NewManager(cfg, false)
	assert.Error(t, err)

	mgr, err := session.NewManager(cfg, true)
	require.NoError(t, err)
	assert.NotNil(t, mgr)
}

func TestNewManager_BadKey(t *testing.T) {
	cfg := testSessionConfig()
	cfg.HashKey = "not-hex"

	_, err := session.NewManager(cfg, false)
	assert.Error(t, err)

	cfg.HashKey = "abcd"
	_, err = session.NewManager(cfg, false)
	assert.Error(t, err)
}

func TestClear(t *testing.T) {
	mgr, err := session.NewManager(testSessionConfig(), false)
	require.NoError(t, err)

	cookie := mgr.Clear()
	assert.Equal(t, "accounts_session", cookie.Name)
	assert.Empty(t, cookie.Value)
	assert.Equal(t, -1, cookie.MaxAge)
}
