// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package account_test

import (
	"context"
	"testing"
	"time"

	"codeberg.org/oliverandrich/accounts/internal/services/account"
	"codeberg.org/oliverandrich/accounts/internal/services/security"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoginWithMagicLink(t *testing.T) {
	svc, repo, mailer, _ := newTestService(t)
	ctx := context.Background()

	created, err := svc.Signup(ctx, "user@example.com", strongPassword)
	require.NoError(t, err)

	result, err := svc.SendMagicLink(ctx, "user@example.com", false)
	require.NoError(t, err)
	assert.True(t, result.EmailSent)
	assert.Equal(t, "magic_link", mailer.sent[len(mailer.sent)-1].Template)
	token := tokenFromMail(t, mailer)

	acct, err := svc.LoginWithMagicLink(ctx, token)

	require.NoError(t, err)
	assert.Equal(t, created.ID, acct.ID)
	assert.Equal(t, int64(1), acct.SignInCount)
	assert.NotNil(t, acct.LastSignInAt)

	// Consuming the link clears the token pair
	stored, err := repo.GetAccountByID(ctx, acct.ID)
	require.NoError(t, err)
	assert.Nil(t, stored.MagicLinkTokenHash)
	assert.Nil(t, stored.MagicLinkSentAt)
}

func TestLoginWithMagicLink_EmptyToken(t *testing.T) {
	svc, _, _, _ := newTestService(t)

	_, err := svc.LoginWithMagicLink(context.Background(), "")

	assert.ErrorIs(t, err, account.ErrInvalidMagicLink)
}

func TestLoginWithMagicLink_UnknownToken(t *testing.T) {
	svc, _, _, _ := newTestService(t)

	_, err := svc.LoginWithMagicLink(context.Background(), "deadbeefdeadbeef")

	assert.ErrorIs(t, err, account.ErrInvalidMagicLink)
}

func TestLoginWithMagicLink_ExpiredToken(t *testing.T) {
	svc, repo, mailer, _ := newTestService(t)
	ctx := context.Background()

	created, err := svc.Signup(ctx, "user@example.com", strongPassword)
	require.NoError(t, err)
	_, err = svc.SendMagicLink(ctx, "user@example.com", false)
	require.NoError(t, err)
	token := tokenFromMail(t, mailer)

	// Push the issuance timestamp past the 30 minute window
	err = repo.SetMagicLinkToken(ctx, created.ID, security.HashToken(token), time.Now().Add(-31*time.Minute))
	require.NoError(t, err)

	_, err = svc.LoginWithMagicLink(ctx, token)
	assert.ErrorIs(t, err, account.ErrInvalidMagicLink)
}

func TestLoginWithMagicLink_TokenCannotBeReused(t *testing.T) {
	svc, _, mailer, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Signup(ctx, "user@example.com", strongPassword)
	require.NoError(t, err)
	_, err = svc.SendMagicLink(ctx, "user@example.com", false)
	require.NoError(t, err)
	token := tokenFromMail(t, mailer)

	_, err = svc.LoginWithMagicLink(ctx, token)
	require.NoError(t, err)

	_, err = svc.LoginWithMagicLink(ctx, token)
	assert.ErrorIs(t, err, account.ErrInvalidMagicLink)
}

func TestSendMagicLink_UnknownEmail(t *testing.T) {
	svc, _, _, _ := newTestService(t)

	_, err := svc.SendMagicLink(context.Background(), "nobody@example.com", false)

	assert.ErrorIs(t, err, account.ErrNotFound)
}

func TestSendMagicLink_CheckBeforeSend(t *testing.T) {
	svc, _, mailer, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Signup(ctx, "user@example.com", strongPassword)
	require.NoError(t, err)
	mails := len(mailer.sent)

	_, err = svc.SendMagicLink(ctx, "user@example.com", true)
	require.NoError(t, err)
	assert.Len(t, mailer.sent, mails+1)

	// Second request within the window sends nothing
	result, err := svc.SendMagicLink(ctx, "user@example.com", true)
	require.NoError(t, err)
	assert.False(t, result.EmailSent)
	assert.Len(t, mailer.sent, mails+1)
}
