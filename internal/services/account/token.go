// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package account

import "time"

// TokenExpired reports whether a token issued at sentAt has outlived its
// window. A missing or zero timestamp counts as expired.
func TokenExpired(sentAt *time.Time, window time.Duration) bool {
	if sentAt == nil || sentAt.IsZero() {
		return true
	}
	return time.Since(*sentAt) > window
}
