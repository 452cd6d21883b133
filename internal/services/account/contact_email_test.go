// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package account_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"codeberg.org/oliverandrich/accounts/internal/models"
	"codeberg.org/oliverandrich/accounts/internal/repository"
	"codeberg.org/oliverandrich/accounts/internal/services/account"
	"codeberg.org/oliverandrich/accounts/internal/services/security"
	"codeberg.org/oliverandrich/accounts/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newContactFixture creates an account with a membership in ACME-001 that
// still needs contact verification.
func newContactFixture(t *testing.T, svc *account.Service, repo *repository.Repository) (*models.Account, *models.Membership) {
	t.Helper()
	ctx := context.Background()

	acct, err := svc.Signup(ctx, "member@example.com", strongPassword)
	require.NoError(t, err)
	org := testutil.NewTestOrganization(t, repo, "ACME-001", "ACME Corporation")
	membership := testutil.NewTestMembership(t, repo, acct.ID, org.ID, true)
	return acct, membership
}

func TestSendContactEmailVerification(t *testing.T) {
	svc, repo, mailer, _ := newTestService(t)
	ctx := context.Background()

	acct, _ := newContactFixture(t, svc, repo)
	mails := len(mailer.sent)

	result, err := svc.SendContactEmailVerification(ctx, acct.ID, "ACME-001", false)

	require.NoError(t, err)
	assert.True(t, result.EmailSent)
	require.Len(t, mailer.sent, mails+1)

	// The mail goes to the organization's official contact, not the account
	sent := mailer.sent[len(mailer.sent)-1]
	assert.Equal(t, []string{"contact@acme.example"}, sent.To)
	assert.Equal(t, "contact_email_verification", sent.Template)
	assert.Equal(t, "member@example.com", sent.Data["AccountEmail"])
	assert.Equal(t, "ACME Corporation", sent.Data["OrganizationName"])
}

func TestSendContactEmailVerification_UnknownOrganization(t *testing.T) {
	svc, repo, _, _ := newTestService(t)
	ctx := context.Background()

	acct, _ := newContactFixture(t, svc, repo)

	_, err := svc.SendContactEmailVerification(ctx, acct.ID, "NOPE-999", false)

	assert.ErrorIs(t, err, account.ErrNotFound)
}

func TestSendContactEmailVerification_NoMembership(t *testing.T) {
	svc, repo, _, _ := newTestService(t)
	ctx := context.Background()

	acct, err := svc.Signup(ctx, "loner@example.com", strongPassword)
	require.NoError(t, err)
	testutil.NewTestOrganization(t, repo, "ACME-001", "ACME Corporation")

	_, err = svc.SendContactEmailVerification(ctx, acct.ID, "ACME-001", false)

	assert.ErrorIs(t, err, account.ErrNotFound)
}

func TestSendContactEmailVerification_AlreadyVerified(t *testing.T) {
	svc, repo, _, _ := newTestService(t)
	ctx := context.Background()

	acct, err := svc.Signup(ctx, "member@example.com", strongPassword)
	require.NoError(t, err)
	org := testutil.NewTestOrganization(t, repo, "ACME-001", "ACME Corporation")
	testutil.NewTestMembership(t, repo, acct.ID, org.ID, false)

	_, err = svc.SendContactEmailVerification(ctx, acct.ID, "ACME-001", false)

	assert.ErrorIs(t, err, account.ErrVerificationNotNeeded)
}

func TestSendContactEmailVerification_DirectoryFailure(t *testing.T) {
	svc, repo, _, dir := newTestService(t)
	ctx := context.Background()

	acct, _ := newContactFixture(t, svc, repo)
	dir.err = errors.New("directory unreachable")

	_, err := svc.SendContactEmailVerification(ctx, acct.ID, "ACME-001", false)

	assert.ErrorIs(t, err, account.ErrDirectoryLookupFailed)
}

func TestSendContactEmailVerification_CheckBeforeSend(t *testing.T) {
	svc, repo, mailer, _ := newTestService(t)
	ctx := context.Background()

	acct, _ := newContactFixture(t, svc, repo)

	_, err := svc.SendContactEmailVerification(ctx, acct.ID, "ACME-001", true)
	require.NoError(t, err)
	mails := len(mailer.sent)

	result, err := svc.SendContactEmailVerification(ctx, acct.ID, "ACME-001", true)
	require.NoError(t, err)
	assert.False(t, result.EmailSent)
	assert.Len(t, mailer.sent, mails)
}

func TestConfirmContactEmail(t *testing.T) {
	svc, repo, mailer, _ := newTestService(t)
	ctx := context.Background()

	acct, membership := newContactFixture(t, svc, repo)
	_, err := svc.SendContactEmailVerification(ctx, acct.ID, "ACME-001", false)
	require.NoError(t, err)
	token := tokenFromMail(t, mailer)

	err = svc.ConfirmContactEmail(ctx, token)
	require.NoError(t, err)

	// Membership flag and token pair are cleared together
	stored, err := repo.GetMembership(ctx, membership.AccountID, membership.OrganizationID)
	require.NoError(t, err)
	assert.False(t, stored.NeedsContactVerification)

	storedAcct, err := repo.GetAccountByID(ctx, acct.ID)
	require.NoError(t, err)
	assert.Nil(t, storedAcct.ContactEmailTokenHash)
	assert.Nil(t, storedAcct.ContactEmailSentAt)
}

func TestConfirmContactEmail_EmptyToken(t *testing.T) {
	svc, _, _, _ := newTestService(t)

	err := svc.ConfirmContactEmail(context.Background(), "")

	assert.ErrorIs(t, err, account.ErrInvalidToken)
}

func TestConfirmContactEmail_UnknownToken(t *testing.T) {
	svc, _, _, _ := newTestService(t)

	err := svc.ConfirmContactEmail(context.Background(), "deadbeefdeadbeef")

	assert.ErrorIs(t, err, account.ErrInvalidToken)
}

func TestConfirmContactEmail_ExpiredToken(t *testing.T) {
	svc, repo, mailer, _ := newTestService(t)
	ctx := context.Background()

	acct, _ := newContactFixture(t, svc, repo)
	_, err := svc.SendContactEmailVerification(ctx, acct.ID, "ACME-001", false)
	require.NoError(t, err)
	token := tokenFromMail(t, mailer)

	// Push the issuance timestamp past the 72h window
	err = repo.SetContactEmailToken(ctx, acct.ID, security.HashToken(token), time.Now().Add(-73*time.Hour))
	require.NoError(t, err)

	err = svc.ConfirmContactEmail(ctx, token)
	assert.ErrorIs(t, err, account.ErrInvalidToken)
}

func TestConfirmContactEmail_TokenCannotBeReused(t *testing.T) {
	svc, repo, mailer, _ := newTestService(t)
	ctx := context.Background()

	acct, _ := newContactFixture(t, svc, repo)
	_, err := svc.SendContactEmailVerification(ctx, acct.ID, "ACME-001", false)
	require.NoError(t, err)
	token := tokenFromMail(t, mailer)

	err = svc.ConfirmContactEmail(ctx, token)
	require.NoError(t, err)

	err = svc.ConfirmContactEmail(ctx, token)
	assert.ErrorIs(t, err, account.ErrInvalidToken)
}
