// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

// Package server assembles and runs the HTTP server.
package server

import (
	"context"
	"fmt"

	"codeberg.org/oliverandrich/accounts/internal/config"
	"codeberg.org/oliverandrich/accounts/internal/database"
	"codeberg.org/oliverandrich/accounts/internal/i18n"
	"codeberg.org/oliverandrich/accounts/internal/middleware"
	"codeberg.org/oliverandrich/accounts/internal/repository"
	"codeberg.org/oliverandrich/accounts/internal/services/account"
	"codeberg.org/oliverandrich/accounts/internal/services/directory"
	"codeberg.org/oliverandrich/accounts/internal/services/mailer"
	"codeberg.org/oliverandrich/accounts/internal/services/session"
	"github.com/labstack/echo/v4"
	"github.com/urfave/cli/v3"
)

// Run builds the application from configuration and starts the HTTP server.
func Run(ctx context.Context, cmd *cli.Command) error {
	cfg := config.NewFromCLI(cmd)

	logger := setupLogger(cfg.Log.Level, cfg.Log.Format)

	db, err := database.Open(cfg.Database.DSN)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	if err := i18n.Init(); err != nil {
		return fmt.Errorf("failed to initialize i18n: %w", err)
	}

	repo := repository.New(db)

	mailService, err := mailer.NewService(&cfg.SMTP)
	if err != nil {
		return fmt.Errorf("failed to create mailer: %w", err)
	}

	directoryClient, err := directory.NewClient(&cfg.Directory)
	if err != nil {
		return fmt.Errorf("failed to create directory client: %w", err)
	}

	sessions, err := session.NewManager(&cfg.Session, config.IsLocalhost(cfg.Server.Host))
	if err != nil {
		return fmt.Errorf("failed to create session manager: %w", err)
	}

	accounts := account.NewService(repo, mailService, directoryClient, &cfg.Auth, cfg.Server.BaseURL)

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.RequestLogger(logger))
	e.Use(middleware.Locale)
	e.Use(middleware.LoadAccount(sessions, repo))

	setupRoutes(e, repo, accounts, sessions)

	logger.Info("server_config",
		"base_url", cfg.Server.BaseURL,
		"database", cfg.Database.DSN,
		"log_level", cfg.Log.Level,
	)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info("server_start", "addr", addr)
	return e.Start(addr)
}
