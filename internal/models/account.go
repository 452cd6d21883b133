// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package models

import "time"

// Account is the single mutable entity of the service. Each verification
// flow owns an independent token/sent-at pair; a pair is always NULL
// together or set together and is cleared exactly once, on successful
// consumption.
type Account struct { //nolint:govet // fieldalignment: readability over optimization
	ID           int64     `db:"id" json:"id"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`

	EmailVerified   bool       `db:"email_verified" json:"email_verified"`
	EmailVerifiedAt *time.Time `db:"email_verified_at" json:"email_verified_at,omitempty"`

	SignInCount  int64      `db:"sign_in_count" json:"sign_in_count"`
	LastSignInAt *time.Time `db:"last_sign_in_at" json:"last_sign_in_at,omitempty"`

	GivenName  *string `db:"given_name" json:"given_name,omitempty"`
	FamilyName *string `db:"family_name" json:"family_name,omitempty"`
	JobTitle   *string `db:"job_title" json:"job_title,omitempty"`
	Phone      *string `db:"phone" json:"phone,omitempty"`

	VerifyEmailTokenHash *string    `db:"verify_email_token_hash" json:"-"`
	VerifyEmailSentAt    *time.Time `db:"verify_email_sent_at" json:"-"`

	MagicLinkTokenHash *string    `db:"magic_link_token_hash" json:"-"`
	MagicLinkSentAt    *time.Time `db:"magic_link_sent_at" json:"-"`

	ResetPasswordTokenHash *string    `db:"reset_password_token_hash" json:"-"`
	ResetPasswordSentAt    *time.Time `db:"reset_password_sent_at" json:"-"`

	ContactEmailTokenHash *string    `db:"contact_email_token_hash" json:"-"`
	ContactEmailSentAt    *time.Time `db:"contact_email_sent_at" json:"-"`
}
