// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package handlers

import (
	"net/http"

	"codeberg.org/oliverandrich/accounts/internal/services/account"
	"codeberg.org/oliverandrich/accounts/internal/services/security"
	"codeberg.org/oliverandrich/accounts/internal/services/session"
	"github.com/labstack/echo/v4"
)

// AuthHandlers contains handlers for authentication.
type AuthHandlers struct {
	accounts *account.Service
	sessions *session.Manager
}

// NewAuth creates a new AuthHandlers instance.
func NewAuth(accounts *account.Service, sessions *session.Manager) *AuthHandlers {
	return &AuthHandlers{
		accounts: accounts,
		sessions: sessions,
	}
}

// SignupRequest is the request body for account creation.
type SignupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Signup creates a new account and sends the verification email.
func (h *AuthHandlers) Signup(c echo.Context) error {
	var req SignupRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request"})
	}

	acct, err := h.accounts.Signup(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(http.StatusCreated, acct)
}

// LoginRequest is the request body for password login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login authenticates with email and password and issues a session cookie.
func (h *AuthHandlers) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request"})
	}

	acct, err := h.accounts.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return serviceError(c, err)
	}

	cookie, err := h.sessions.Create(acct.ID, acct.Email)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to create session"})
	}
	c.SetCookie(cookie)

	return c.JSON(http.StatusOK, acct)
}

// Logout clears the session cookie.
func (h *AuthHandlers) Logout(c echo.Context) error {
	c.SetCookie(h.sessions.Clear())
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// SendEmailRequest is the request body shared by the issue-or-resend flows.
type SendEmailRequest struct {
	Email           string `json:"email"`
	CheckBeforeSend bool   `json:"check_before_send"`
}

// SendVerificationEmail sends (or re-sends) the email verification token.
func (h *AuthHandlers) SendVerificationEmail(c echo.Context) error {
	var req SendEmailRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request"})
	}

	result, err := h.accounts.SendVerificationEmail(c.Request().Context(), req.Email, req.CheckBeforeSend)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(http.StatusOK, result)
}

// VerifyEmail consumes an email verification token.
func (h *AuthHandlers) VerifyEmail(c echo.Context) error {
	acct, err := h.accounts.VerifyEmail(c.Request().Context(), c.QueryParam("token"))
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(http.StatusOK, acct)
}

// SendMagicLink sends (or re-sends) a magic sign-in link.
func (h *AuthHandlers) SendMagicLink(c echo.Context) error {
	var req SendEmailRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request"})
	}

	result, err := h.accounts.SendMagicLink(c.Request().Context(), req.Email, req.CheckBeforeSend)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(http.StatusOK, result)
}

// LoginWithMagicLink consumes a magic link token and issues a session cookie.
func (h *AuthHandlers) LoginWithMagicLink(c echo.Context) error {
	acct, err := h.accounts.LoginWithMagicLink(c.Request().Context(), c.QueryParam("token"))
	if err != nil {
		return serviceError(c, err)
	}

	cookie, err := h.sessions.Create(acct.ID, acct.Email)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to create session"})
	}
	c.SetCookie(cookie)

	return c.JSON(http.StatusOK, acct)
}

// RequestPasswordReset sends a password reset email. Unknown addresses get
// the same success-shaped answer as known ones.
func (h *AuthHandlers) RequestPasswordReset(c echo.Context) error {
	var req SendEmailRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request"})
	}

	result, err := h.accounts.RequestPasswordReset(c.Request().Context(), req.Email, req.CheckBeforeSend)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(http.StatusOK, result)
}

// ResetPasswordRequest is the request body for the reset confirmation.
type ResetPasswordRequest struct {
	Token    string `json:"token"`
	Password string `json:"password"`
}

// ResetPassword consumes a reset token and sets the new password.
func (h *AuthHandlers) ResetPassword(c echo.Context) error {
	var req ResetPasswordRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request"})
	}

	if err := h.accounts.ResetPassword(c.Request().Context(), req.Token, req.Password); err != nil {
		return serviceError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// SuggestPassword returns a generated passphrase the client may offer as a
// password suggestion.
func (h *AuthHandlers) SuggestPassword(c echo.Context) error {
	passphrase, err := security.GeneratePassphrase()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to generate passphrase"})
	}

	return c.JSON(http.StatusOK, map[string]string{"password": passphrase})
}
