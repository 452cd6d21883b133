// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

// Package ctxkeys defines shared context keys.
package ctxkeys

// Account is the context key for the authenticated account.
type Account struct{}
