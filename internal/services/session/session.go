// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

// Package session issues and verifies signed session cookies.
package session

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"net/http"
	"time"

	"codeberg.org/oliverandrich/accounts/internal/config"
	"github.com/gorilla/securecookie"
)

// Account is the session payload.
type Account struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
}

// Manager creates, parses and clears session cookies backed by
// gorilla/securecookie.
type Manager struct {
	codec      *securecookie.SecureCookie
	cookieName string
	maxAge     int
	secure     bool
}

// NewManager creates a session manager. The hash key is required in
// production; when empty and allowEphemeral is true a random key is
// generated, invalidating sessions on restart.
func NewManager(cfg *config.SessionConfig, allowEphemeral bool) (*Manager, error) {
	hashKey, err := decodeKey(cfg.HashKey)
	if err != nil {
		return nil, fmt.Errorf("invalid session hash key: %w", err)
	}
	if hashKey == nil {
		if !allowEphemeral {
			return nil, fmt.Errorf("session hash key is required")
		}
		hashKey = securecookie.GenerateRandomKey(32)
	}

	var blockKey []byte
	if cfg.BlockKey != "" {
		blockKey, err = decodeKey(cfg.BlockKey)
		if err != nil {
			return nil, fmt.Errorf("invalid session block key: %w", err)
		}
	}

	codec := securecookie.New(hashKey, blockKey)
	codec.MaxAge(cfg.MaxAge)

	return &Manager{
		codec:      codec,
		cookieName: cfg.CookieName,
		maxAge:     cfg.MaxAge,
		secure:     cfg.Secure,
	}, nil
}

func decodeKey(key string) ([]byte, error) {
	if key == "" {
		return nil, nil
	}
	raw, err := hex.DecodeString(key)
	if err != nil {
		return nil, err
	}
	if len(raw) != 32 {
		return nil, fmt.Errorf("key must be 32 bytes, got %d", len(raw))
	}
	return raw, nil
}

// Create issues a session cookie for the account.
func (m *Manager) Create(accountID int64, email string) (*http.Cookie, error) {
	value, err := m.codec.Encode(m.cookieName, &Account{ID: accountID, Email: email})
	if err != nil {
		return nil, fmt.Errorf("encoding session: %w", err)
	}

	return &http.Cookie{
		Name:     m.cookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   m.maxAge,
		Expires:  time.Now().Add(time.Duration(m.maxAge) * time.Second),
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	}, nil
}

// Parse extracts the session account from the request, or nil when no valid
// session cookie is present.
func (m *Manager) Parse(r *http.Request) *Account {
	cookie, err := r.Cookie(m.cookieName)
	if err != nil {
		return nil
	}

	var account Account
	if err := m.codec.Decode(m.cookieName, cookie.Value, &account); err != nil {
		return nil
	}
	return &account
}

// Clear returns an expired cookie that removes the session.
func (m *Manager) Clear() *http.Cookie {
	return &http.Cookie{
		Name:     m.cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	}
}

// GenerateKey returns a fresh 32-byte key as hex, for provisioning.
func GenerateKey() string {
	key := make([]byte, 32)
	_, _ = rand.Read(key)
	return hex.EncodeToString(key)
}
