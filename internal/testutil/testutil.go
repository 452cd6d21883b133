// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

// Package testutil provides test helpers and fixtures.
package testutil

import (
	"context"
	"io"
	"net/http/httptest"
	"testing"

	"codeberg.org/oliverandrich/accounts/internal/database"
	"codeberg.org/oliverandrich/accounts/internal/models"
	"codeberg.org/oliverandrich/accounts/internal/repository"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"github.com/vinovest/sqlx"
)

// NewTestDB creates an in-memory SQLite database for tests.
// Returns both the database connection and the repository for convenience.
func NewTestDB(t *testing.T) (*sqlx.DB, *repository.Repository) {
	t.Helper()
	db, err := database.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = db.Close()
	})
	repo := repository.New(db)
	return db, repo
}

// NewTestAccount creates a test account in the database.
func NewTestAccount(t *testing.T, repo *repository.Repository, email string) *models.Account {
	t.Helper()
	ctx := context.Background()
	acct, err := repo.CreateAccount(ctx, email, "$2a$10$test-hash-not-a-real-one")
	require.NoError(t, err)
	return acct
}

// NewTestOrganization creates a test organization in the database.
func NewTestOrganization(t *testing.T, repo *repository.Repository, code, name string) *models.Organization {
	t.Helper()
	ctx := context.Background()
	org, err := repo.CreateOrganization(ctx, code, name)
	require.NoError(t, err)
	return org
}

// NewTestMembership links an account to an organization.
func NewTestMembership(t *testing.T, repo *repository.Repository, accountID, organizationID int64, needsContactVerification bool) *models.Membership {
	t.Helper()
	ctx := context.Background()
	membership, err := repo.CreateMembership(ctx, accountID, organizationID, "member", needsContactVerification)
	require.NoError(t, err)
	return membership
}

// NewEchoContext creates an Echo context for handler tests.
func NewEchoContext(e *echo.Echo, method, path string, body io.Reader) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, path, body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	return c, rec
}
