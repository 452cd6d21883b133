// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

// Package security provides token generation, password hashing and
// input-shape validation for the account flows.
package security

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
)

// TokenLength is the number of random bytes for verification tokens.
const TokenLength = 32

// GenerateToken generates a new verification token.
// Returns (plaintext token, SHA256 hash for storage, error).
func GenerateToken() (string, string, error) {
	bytes := make([]byte, TokenLength)
	if _, err := rand.Read(bytes); err != nil {
		return "", "", fmt.Errorf("failed to generate random bytes: %w", err)
	}

	plaintext := hex.EncodeToString(bytes)
	return plaintext, HashToken(plaintext), nil
}

// HashToken computes the SHA256 hash of a token.
func HashToken(token string) string {
	hash := sha256.Sum256([]byte(token))
	return hex.EncodeToString(hash[:])
}

const (
	// passphraseGroupLength is the length of each passphrase group.
	passphraseGroupLength = 4
	// passphraseGroups is the number of dash-separated groups.
	passphraseGroups = 3
)

// alphabet for passphrases (lowercase + digits, excluding confusing chars: 0, o, l, 1).
const alphabet = "23456789abcdefghjkmnpqrstuvwxyz"

// GeneratePassphrase generates a memorable random password of the form
// "a1b2-c3d4-e5f6".
func GeneratePassphrase() (string, error) {
	bytes := make([]byte, passphraseGroupLength*passphraseGroups)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}

	for i := range bytes {
		bytes[i] = alphabet[int(bytes[i])%len(alphabet)]
	}

	var parts []string
	for i := 0; i < len(bytes); i += passphraseGroupLength {
		parts = append(parts, string(bytes[i:i+passphraseGroupLength]))
	}
	return strings.Join(parts, "-"), nil
}
