// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

// Package middleware provides echo middleware for logging, locale detection
// and session-based authentication.
package middleware

import (
	"log/slog"
	"net/http"
	"time"

	"codeberg.org/oliverandrich/accounts/internal/auth"
	"codeberg.org/oliverandrich/accounts/internal/i18n"
	"codeberg.org/oliverandrich/accounts/internal/repository"
	"codeberg.org/oliverandrich/accounts/internal/services/session"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// RequestLogger logs every request with a generated request ID.
func RequestLogger(logger *slog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			requestID := uuid.New().String()
			c.Response().Header().Set(echo.HeaderXRequestID, requestID)

			err := next(c)

			if c.Path() == "/health" {
				return err
			}

			status := c.Response().Status
			if err != nil {
				if he, ok := err.(*echo.HTTPError); ok {
					status = he.Code
				} else {
					status = http.StatusInternalServerError
				}
			}

			logger.Info("request",
				"request_id", requestID,
				"method", c.Request().Method,
				"path", c.Request().URL.Path,
				"status", status,
				"duration_ms", time.Since(start).Milliseconds(),
				"ip", c.RealIP(),
			)
			return err
		}
	}
}

// Locale detects the preferred language from the Accept-Language header and
// stores it in the request context, so emails go out in the caller's locale.
func Locale(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		lang := i18n.MatchLanguage(c.Request().Header.Get("Accept-Language"))
		ctx := i18n.WithLocale(c.Request().Context(), lang)
		c.SetRequest(c.Request().WithContext(ctx))
		return next(c)
	}
}

// LoadAccount loads the session account into the request context. Missing or
// invalid sessions pass through unauthenticated.
func LoadAccount(sessions *session.Manager, repo *repository.Repository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sess := sessions.Parse(c.Request())
			if sess != nil {
				acct, err := repo.GetAccountByID(c.Request().Context(), sess.ID)
				if err == nil && acct != nil {
					ctx := auth.SetAccount(c.Request().Context(), acct)
					c.SetRequest(c.Request().WithContext(ctx))
				}
			}
			return next(c)
		}
	}
}

// RequireAuth rejects unauthenticated requests.
func RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if !auth.IsAuthenticated(c.Request().Context()) {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "not authenticated"})
		}
		return next(c)
	}
}
