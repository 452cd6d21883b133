// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package server

import (
	"codeberg.org/oliverandrich/accounts/internal/handlers"
	"codeberg.org/oliverandrich/accounts/internal/middleware"
	"codeberg.org/oliverandrich/accounts/internal/repository"
	"codeberg.org/oliverandrich/accounts/internal/services/account"
	"codeberg.org/oliverandrich/accounts/internal/services/session"
	"github.com/labstack/echo/v4"
)

// setupRoutes wires the HTTP routes.
func setupRoutes(e *echo.Echo, repo *repository.Repository, accounts *account.Service, sessions *session.Manager) {
	h := handlers.New(repo)
	authHandlers := handlers.NewAuth(accounts, sessions)
	accountHandlers := handlers.NewAccount(accounts)

	e.GET("/health", h.Health)

	authGroup := e.Group("/auth")
	authGroup.POST("/signup", authHandlers.Signup)
	authGroup.POST("/login", authHandlers.Login)
	authGroup.POST("/logout", authHandlers.Logout)
	authGroup.GET("/password-suggestion", authHandlers.SuggestPassword)

	authGroup.POST("/verify-email/send", authHandlers.SendVerificationEmail)
	authGroup.GET("/verify-email", authHandlers.VerifyEmail)

	authGroup.POST("/magic-link/send", authHandlers.SendMagicLink)
	authGroup.GET("/magic-link", authHandlers.LoginWithMagicLink)

	authGroup.POST("/reset-password/send", authHandlers.RequestPasswordReset)
	authGroup.POST("/reset-password", authHandlers.ResetPassword)

	accountGroup := e.Group("/account")
	accountGroup.GET("/me", accountHandlers.Me, middleware.RequireAuth)
	accountGroup.PUT("/personal-information", accountHandlers.UpdatePersonalInformation, middleware.RequireAuth)
	accountGroup.POST("/contact-email/send", accountHandlers.SendContactEmailVerification, middleware.RequireAuth)
	accountGroup.GET("/contact-email/confirm", accountHandlers.ConfirmContactEmail)
}
