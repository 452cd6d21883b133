// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package config

import (
	"fmt"
	"strings"
	"time"

	altsrc "github.com/urfave/cli-altsrc/v3"
	"github.com/urfave/cli-altsrc/v3/toml"
	"github.com/urfave/cli/v3"
)

var configFile = altsrc.StringSourcer("config.toml")

type Config struct { //nolint:govet // fieldalignment not critical for config structs
	Server    ServerConfig
	Log       LogConfig
	Database  DatabaseConfig
	SMTP      SMTPConfig
	Session   SessionConfig
	Auth      AuthConfig
	Directory DirectoryConfig
}

type ServerConfig struct { //nolint:govet // fieldalignment not critical for config structs
	Host    string
	Port    int
	BaseURL string
}

type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // text, json
}

type DatabaseConfig struct {
	DSN string
}

type SMTPConfig struct { //nolint:govet // fieldalignment not critical for config structs
	Host     string
	Port     int
	Username string
	Password string
	From     string
	FromName string
	TLS      bool
}

type SessionConfig struct { //nolint:govet // fieldalignment not critical
	CookieName string // Session cookie name
	MaxAge     int    // Session max age in seconds
	HashKey    string // 32-byte hex string for HMAC signing
	BlockKey   string // 32-byte hex string for AES encryption (optional)
	Secure     bool   // HTTPS-only cookie
}

// AuthConfig holds the per-flow token windows in minutes.
type AuthConfig struct {
	VerifyEmailTokenMinutes   int
	MagicLinkTokenMinutes     int
	ResetPasswordTokenMinutes int
	ContactEmailTokenMinutes  int
}

type DirectoryConfig struct {
	BaseURL        string
	TimeoutSeconds int
}

// VerifyEmailWindow returns the validity window for email verification tokens.
func (c *AuthConfig) VerifyEmailWindow() time.Duration {
	return time.Duration(c.VerifyEmailTokenMinutes) * time.Minute
}

// MagicLinkWindow returns the validity window for magic link tokens.
func (c *AuthConfig) MagicLinkWindow() time.Duration {
	return time.Duration(c.MagicLinkTokenMinutes) * time.Minute
}

// ResetPasswordWindow returns the validity window for password reset tokens.
func (c *AuthConfig) ResetPasswordWindow() time.Duration {
	return time.Duration(c.ResetPasswordTokenMinutes) * time.Minute
}

// ContactEmailWindow returns the validity window for contact email
// verification tokens.
func (c *AuthConfig) ContactEmailWindow() time.Duration {
	return time.Duration(c.ContactEmailTokenMinutes) * time.Minute
}

// Timeout returns the directory lookup timeout.
func (c *DirectoryConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

func NewFromCLI(cmd *cli.Command) *Config {
	cfg := &Config{
		Server: ServerConfig{
			Host:    cmd.String("host"),
			Port:    int(cmd.Int("port")),
			BaseURL: cmd.String("base-url"),
		},
		Log: LogConfig{
			Level:  cmd.String("log-level"),
			Format: cmd.String("log-format"),
		},
		Database: DatabaseConfig{
			DSN: cmd.String("database-dsn"),
		},
		SMTP: SMTPConfig{
			Host:     cmd.String("smtp-host"),
			Port:     int(cmd.Int("smtp-port")),
			Username: cmd.String("smtp-username"),
			Password: cmd.String("smtp-password"),
			From:     cmd.String("smtp-from"),
			FromName: cmd.String("smtp-from-name"),
			TLS:      cmd.Bool("smtp-tls"),
		},
		Session: SessionConfig{
			CookieName: cmd.String("session-cookie-name"),
			MaxAge:     int(cmd.Int("session-max-age")),
			HashKey:    cmd.String("session-hash-key"),
			BlockKey:   cmd.String("session-block-key"),
			Secure:     cmd.Bool("session-secure"),
		},
		Auth: AuthConfig{
			VerifyEmailTokenMinutes:   int(cmd.Int("verify-email-token-minutes")),
			MagicLinkTokenMinutes:     int(cmd.Int("magic-link-token-minutes")),
			ResetPasswordTokenMinutes: int(cmd.Int("reset-password-token-minutes")),
			ContactEmailTokenMinutes:  int(cmd.Int("contact-email-token-minutes")),
		},
		Directory: DirectoryConfig{
			BaseURL:        cmd.String("directory-base-url"),
			TimeoutSeconds: int(cmd.Int("directory-timeout-seconds")),
		},
	}

	if cfg.Server.BaseURL == "" {
		cfg.Server.BaseURL = buildBaseURL(cfg)
	}
	cfg.Server.BaseURL = strings.TrimSuffix(cfg.Server.BaseURL, "/")

	return cfg
}

func buildBaseURL(cfg *Config) string {
	host := cfg.Server.Host
	port := cfg.Server.Port

	scheme := "http"
	if !IsLocalhost(host) {
		scheme = "https"
	}

	// Hide default ports in URL
	if (scheme == "http" && port == 80) || (scheme == "https" && port == 443) {
		return fmt.Sprintf("%s://%s", scheme, host)
	}
	return fmt.Sprintf("%s://%s:%d", scheme, host, port)
}

// IsLocalhost checks if the host is a localhost address.
func IsLocalhost(host string) bool {
	switch host {
	case "", "localhost", "127.0.0.1", "::1":
		return true
	}
	// Check for *.localhost subdomains (e.g., app.localhost)
	return strings.HasSuffix(host, ".localhost")
}

func Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "host",
			Value:   "localhost",
			Usage:   "Host to bind to",
			Sources: cli.NewValueSourceChain(cli.EnvVar("HOST"), toml.TOML("server.host", configFile)),
		},
		&cli.IntFlag{
			Name:    "port",
			Value:   8080,
			Usage:   "Port to listen on",
			Sources: cli.NewValueSourceChain(cli.EnvVar("PORT"), toml.TOML("server.port", configFile)),
		},
		&cli.StringFlag{
			Name:    "base-url",
			Usage:   "Base URL used in emailed links",
			Sources: cli.NewValueSourceChain(cli.EnvVar("BASE_URL"), toml.TOML("server.base_url", configFile)),
		},
		&cli.StringFlag{
			Name:    "log-level",
			Value:   "info",
			Usage:   "Log level (debug, info, warn, error)",
			Sources: cli.NewValueSourceChain(cli.EnvVar("LOG_LEVEL"), toml.TOML("log.level", configFile)),
		},
		&cli.StringFlag{
			Name:    "log-format",
			Value:   "text",
			Usage:   "Log format (text, json)",
			Sources: cli.NewValueSourceChain(cli.EnvVar("LOG_FORMAT"), toml.TOML("log.format", configFile)),
		},
		&cli.StringFlag{
			Name:    "database-dsn",
			Value:   "./data/accounts.db",
			Usage:   "Database DSN",
			Sources: cli.NewValueSourceChain(cli.EnvVar("DATABASE_DSN"), toml.TOML("database.dsn", configFile)),
		},
		&cli.StringFlag{
			Name:    "smtp-host",
			Usage:   "SMTP server host",
			Sources: cli.NewValueSourceChain(cli.EnvVar("SMTP_HOST"), toml.TOML("smtp.host", configFile)),
		},
		&cli.IntFlag{
			Name:    "smtp-port",
			Value:   587,
			Usage:   "SMTP server port",
			Sources: cli.NewValueSourceChain(cli.EnvVar("SMTP_PORT"), toml.TOML("smtp.port", configFile)),
		},
		&cli.StringFlag{
			Name:    "smtp-username",
			Usage:   "SMTP username",
			Sources: cli.NewValueSourceChain(cli.EnvVar("SMTP_USERNAME"), toml.TOML("smtp.username", configFile)),
		},
		&cli.StringFlag{
			Name:    "smtp-password",
			Usage:   "SMTP password",
			Sources: cli.NewValueSourceChain(cli.EnvVar("SMTP_PASSWORD"), toml.TOML("smtp.password", configFile)),
		},
		&cli.StringFlag{
			Name:    "smtp-from",
			Usage:   "From address for transactional mail",
			Sources: cli.NewValueSourceChain(cli.EnvVar("SMTP_FROM"), toml.TOML("smtp.from", configFile)),
		},
		&cli.StringFlag{
			Name:    "smtp-from-name",
			Usage:   "Display name for the From address",
			Sources: cli.NewValueSourceChain(cli.EnvVar("SMTP_FROM_NAME"), toml.TOML("smtp.from_name", configFile)),
		},
		&cli.BoolFlag{
			Name:    "smtp-tls",
			Value:   true,
			Usage:   "Use TLS for SMTP",
			Sources: cli.NewValueSourceChain(cli.EnvVar("SMTP_TLS"), toml.TOML("smtp.tls", configFile)),
		},
		// Session flags
		&cli.StringFlag{
			Name:    "session-cookie-name",
			Value:   "_session",
			Usage:   "Session cookie name",
			Sources: cli.NewValueSourceChain(cli.EnvVar("SESSION_COOKIE_NAME"), toml.TOML("session.cookie_name", configFile)),
		},
		&cli.IntFlag{
			Name:    "session-max-age",
			Value:   604800, // 7 days in seconds
			Usage:   "Session max age in seconds",
			Sources: cli.NewValueSourceChain(cli.EnvVar("SESSION_MAX_AGE"), toml.TOML("session.max_age", configFile)),
		},
		&cli.StringFlag{
			Name:    "session-hash-key",
			Usage:   "Session hash key (32-byte hex, auto-generated if empty in dev)",
			Sources: cli.NewValueSourceChain(cli.EnvVar("SESSION_HASH_KEY"), toml.TOML("session.hash_key", configFile)),
		},
		&cli.StringFlag{
			Name:    "session-block-key",
			Usage:   "Session block key for encryption (32-byte hex, optional)",
			Sources: cli.NewValueSourceChain(cli.EnvVar("SESSION_BLOCK_KEY"), toml.TOML("session.block_key", configFile)),
		},
		&cli.BoolFlag{
			Name:    "session-secure",
			Usage:   "HTTPS-only session cookie",
			Sources: cli.NewValueSourceChain(cli.EnvVar("SESSION_SECURE"), toml.TOML("session.secure", configFile)),
		},
		// Token windows
		&cli.IntFlag{
			Name:    "verify-email-token-minutes",
			Value:   2880,
			Usage:   "Validity window for email verification tokens (minutes)",
			Sources: cli.NewValueSourceChain(cli.EnvVar("VERIFY_EMAIL_TOKEN_MINUTES"), toml.TOML("auth.verify_email_token_minutes", configFile)),
		},
		&cli.IntFlag{
			Name:    "magic-link-token-minutes",
			Value:   30,
			Usage:   "Validity window for magic link tokens (minutes)",
			Sources: cli.NewValueSourceChain(cli.EnvVar("MAGIC_LINK_TOKEN_MINUTES"), toml.TOML("auth.magic_link_token_minutes", configFile)),
		},
		&cli.IntFlag{
			Name:    "reset-password-token-minutes",
			Value:   60,
			Usage:   "Validity window for password reset tokens (minutes)",
			Sources: cli.NewValueSourceChain(cli.EnvVar("RESET_PASSWORD_TOKEN_MINUTES"), toml.TOML("auth.reset_password_token_minutes", configFile)),
		},
		&cli.IntFlag{
			Name:    "contact-email-token-minutes",
			Value:   4320,
			Usage:   "Validity window for contact email verification tokens (minutes)",
			Sources: cli.NewValueSourceChain(cli.EnvVar("CONTACT_EMAIL_TOKEN_MINUTES"), toml.TOML("auth.contact_email_token_minutes", configFile)),
		},
		// Directory service
		&cli.StringFlag{
			Name:    "directory-base-url",
			Usage:   "Base URL of the organization directory service",
			Sources: cli.NewValueSourceChain(cli.EnvVar("DIRECTORY_BASE_URL"), toml.TOML("directory.base_url", configFile)),
		},
		&cli.IntFlag{
			Name:    "directory-timeout-seconds",
			Value:   10,
			Usage:   "Timeout for directory lookups (seconds)",
			Sources: cli.NewValueSourceChain(cli.EnvVar("DIRECTORY_TIMEOUT_SECONDS"), toml.TOML("directory.timeout_seconds", configFile)),
		},
	}
}
