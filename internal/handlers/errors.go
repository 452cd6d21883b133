// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"codeberg.org/oliverandrich/accounts/internal/services/account"
	"github.com/labstack/echo/v4"
)

// errorStatus maps the named service errors to HTTP status codes. Anything
// unmapped is an internal error.
var errorStatus = map[error]int{
	account.ErrInvalidEmail:               http.StatusBadRequest,
	account.ErrInvalidCredentials:         http.StatusUnauthorized,
	account.ErrEmailUnavailable:           http.StatusConflict,
	account.ErrWeakPassword:               http.StatusBadRequest,
	account.ErrEmailVerifiedAlready:       http.StatusConflict,
	account.ErrInvalidToken:               http.StatusUnauthorized,
	account.ErrInvalidMagicLink:           http.StatusUnauthorized,
	account.ErrNotFound:                   http.StatusNotFound,
	account.ErrDirectoryLookupFailed:      http.StatusBadGateway,
	account.ErrVerificationNotNeeded:      http.StatusConflict,
	account.ErrInvalidPersonalInformation: http.StatusBadRequest,
}

// serviceError renders a named service error as JSON, falling back to a
// logged 500 for unexpected failures.
func serviceError(c echo.Context, err error) error {
	for kind, status := range errorStatus {
		if errors.Is(err, kind) {
			return c.JSON(status, map[string]string{"error": kind.Error()})
		}
	}

	slog.Error("handler_error", "path", c.Request().URL.Path, "error", err)
	return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal error"})
}
