// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package handlers

import (
	"net/http"

	"codeberg.org/oliverandrich/accounts/internal/auth"
	"codeberg.org/oliverandrich/accounts/internal/services/account"
	"github.com/labstack/echo/v4"
)

// AccountHandlers contains handlers for the authenticated account surface.
type AccountHandlers struct {
	accounts *account.Service
}

// NewAccount creates a new AccountHandlers instance.
func NewAccount(accounts *account.Service) *AccountHandlers {
	return &AccountHandlers{accounts: accounts}
}

// Me returns the authenticated account.
func (h *AccountHandlers) Me(c echo.Context) error {
	acct := auth.GetAccount(c.Request().Context())
	if acct == nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "not authenticated"})
	}
	return c.JSON(http.StatusOK, acct)
}

// UpdatePersonalInformation validates and persists the personal information
// payload. The raw map keeps type errors (e.g. a numeric given_name)
// detectable before persistence.
func (h *AccountHandlers) UpdatePersonalInformation(c echo.Context) error {
	acct := auth.GetAccount(c.Request().Context())
	if acct == nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "not authenticated"})
	}

	var payload map[string]any
	if err := c.Bind(&payload); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request"})
	}

	if err := h.accounts.UpdatePersonalInformation(c.Request().Context(), acct.ID, payload); err != nil {
		return serviceError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// ContactVerificationRequest is the request body for requesting an official
// contact email verification.
type ContactVerificationRequest struct {
	OrganizationCode string `json:"organization_code"`
	CheckBeforeSend  bool   `json:"check_before_send"`
}

// SendContactEmailVerification asks the directory for the organization's
// official contact address and sends the verification token there.
func (h *AccountHandlers) SendContactEmailVerification(c echo.Context) error {
	acct := auth.GetAccount(c.Request().Context())
	if acct == nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "not authenticated"})
	}

	var req ContactVerificationRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request"})
	}

	result, err := h.accounts.SendContactEmailVerification(c.Request().Context(), acct.ID, req.OrganizationCode, req.CheckBeforeSend)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(http.StatusOK, result)
}

// ConfirmContactEmail consumes a contact verification token. The link lands
// in the official contact's inbox, so no session is required here.
func (h *AccountHandlers) ConfirmContactEmail(c echo.Context) error {
	if err := h.accounts.ConfirmContactEmail(c.Request().Context(), c.QueryParam("token")); err != nil {
		return serviceError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
