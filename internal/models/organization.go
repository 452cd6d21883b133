// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package models

import "time"

// Organization is looked up in the external directory by its code.
type Organization struct { //nolint:govet // fieldalignment: readability over optimization
	ID        int64     `db:"id" json:"id"`
	Code      string    `db:"code" json:"code"`
	Name      string    `db:"name" json:"name"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// Membership links an account to an organization. The
// NeedsContactVerification flag is cleared when the official contact
// email confirms the affiliation.
type Membership struct { //nolint:govet // fieldalignment: readability over optimization
	ID                       int64     `db:"id" json:"id"`
	AccountID                int64     `db:"account_id" json:"account_id"`
	OrganizationID           int64     `db:"organization_id" json:"organization_id"`
	Role                     string    `db:"role" json:"role"`
	NeedsContactVerification bool      `db:"needs_contact_verification" json:"needs_contact_verification"`
	CreatedAt                time.Time `db:"created_at" json:"created_at"`
}
