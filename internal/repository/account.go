// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package repository

import (
	"context"
	"time"

	"codeberg.org/oliverandrich/accounts/internal/models"
)

// CreateAccount creates a new account with the given email and password hash.
func (r *Repository) CreateAccount(ctx context.Context, email, passwordHash string) (*models.Account, error) {
	now := time.Now()
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO accounts (email, password_hash, created_at, updated_at) VALUES (?, ?, ?, ?)`,
		email, passwordHash, now, now)
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return r.GetAccountByID(ctx, id)
}

// GetAccountByID retrieves an account by its ID.
func (r *Repository) GetAccountByID(ctx context.Context, id int64) (*models.Account, error) {
	var account models.Account
	if err := r.db.GetContext(ctx, &account, `SELECT * FROM accounts WHERE id = ?`, id); err != nil {
		return nil, wrapError(err)
	}
	return &account, nil
}

// GetAccountByEmail retrieves an account by its email address.
func (r *Repository) GetAccountByEmail(ctx context.Context, email string) (*models.Account, error) {
	var account models.Account
	if err := r.db.GetContext(ctx, &account, `SELECT * FROM accounts WHERE email = ?`, email); err != nil {
		return nil, wrapError(err)
	}
	return &account, nil
}

// EmailExists checks if an account with the given email exists.
func (r *Repository) EmailExists(ctx context.Context, email string) (bool, error) {
	var count int64
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM accounts WHERE email = ?`, email); err != nil {
		return false, err
	}
	return count > 0, nil
}

// GetAccountByVerifyEmailToken retrieves an account by its email
// verification token hash.
func (r *Repository) GetAccountByVerifyEmailToken(ctx context.Context, tokenHash string) (*models.Account, error) {
	var account models.Account
	err := r.db.GetContext(ctx, &account,
		`SELECT * FROM accounts WHERE verify_email_token_hash = ?`, tokenHash)
	if err != nil {
		return nil, wrapError(err)
	}
	return &account, nil
}

// GetAccountByMagicLinkToken retrieves an account by its magic link token hash.
func (r *Repository) GetAccountByMagicLinkToken(ctx context.Context, tokenHash string) (*models.Account, error) {
	var account models.Account
	err := r.db.GetContext(ctx, &account,
		`SELECT * FROM accounts WHERE magic_link_token_hash = ?`, tokenHash)
	if err != nil {
		return nil, wrapError(err)
	}
	return &account, nil
}

// GetAccountByResetPasswordToken retrieves an account by its password reset
// token hash.
func (r *Repository) GetAccountByResetPasswordToken(ctx context.Context, tokenHash string) (*models.Account, error) {
	var account models.Account
	err := r.db.GetContext(ctx, &account,
		`SELECT * FROM accounts WHERE reset_password_token_hash = ?`, tokenHash)
	if err != nil {
		return nil, wrapError(err)
	}
	return &account, nil
}

// GetAccountByContactEmailToken retrieves an account by its contact email
// verification token hash.
func (r *Repository) GetAccountByContactEmailToken(ctx context.Context, tokenHash string) (*models.Account, error) {
	var account models.Account
	err := r.db.GetContext(ctx, &account,
		`SELECT * FROM accounts WHERE contact_email_token_hash = ?`, tokenHash)
	if err != nil {
		return nil, wrapError(err)
	}
	return &account, nil
}

// SetVerifyEmailToken stores a fresh email verification token hash with its
// issuance timestamp.
func (r *Repository) SetVerifyEmailToken(ctx context.Context, id int64, tokenHash string, sentAt time.Time) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE accounts SET verify_email_token_hash = ?, verify_email_sent_at = ?, updated_at = ? WHERE id = ?`,
		tokenHash, sentAt, time.Now(), id)
	return err
}

// SetMagicLinkToken stores a fresh magic link token hash with its issuance
// timestamp.
func (r *Repository) SetMagicLinkToken(ctx context.Context, id int64, tokenHash string, sentAt time.Time) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE accounts SET magic_link_token_hash = ?, magic_link_sent_at = ?, updated_at = ? WHERE id = ?`,
		tokenHash, sentAt, time.Now(), id)
	return err
}

// SetResetPasswordToken stores a fresh password reset token hash with its
// issuance timestamp.
func (r *Repository) SetResetPasswordToken(ctx context.Context, id int64, tokenHash string, sentAt time.Time) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE accounts SET reset_password_token_hash = ?, reset_password_sent_at = ?, updated_at = ? WHERE id = ?`,
		tokenHash, sentAt, time.Now(), id)
	return err
}

// SetContactEmailToken stores a fresh contact email verification token hash
// with its issuance timestamp.
func (r *Repository) SetContactEmailToken(ctx context.Context, id int64, tokenHash string, sentAt time.Time) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE accounts SET contact_email_token_hash = ?, contact_email_sent_at = ?, updated_at = ? WHERE id = ?`,
		tokenHash, sentAt, time.Now(), id)
	return err
}

// MarkEmailVerified marks the account's email as verified and clears the
// verification token pair in the same statement.
func (r *Repository) MarkEmailVerified(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE accounts
		 SET email_verified = 1, email_verified_at = ?,
		     verify_email_token_hash = NULL, verify_email_sent_at = NULL,
		     updated_at = ?
		 WHERE id = ?`,
		time.Now(), time.Now(), id)
	return err
}

// ConsumeMagicLink records a magic link sign-in and clears the token pair in
// the same statement.
func (r *Repository) ConsumeMagicLink(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE accounts
		 SET sign_in_count = sign_in_count + 1, last_sign_in_at = ?,
		     magic_link_token_hash = NULL, magic_link_sent_at = NULL,
		     updated_at = ?
		 WHERE id = ?`,
		time.Now(), time.Now(), id)
	return err
}

// RotatePassword replaces the account's password hash and clears the reset
// token pair in the same statement.
func (r *Repository) RotatePassword(ctx context.Context, id int64, passwordHash string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE accounts
		 SET password_hash = ?,
		     reset_password_token_hash = NULL, reset_password_sent_at = NULL,
		     updated_at = ?
		 WHERE id = ?`,
		passwordHash, time.Now(), id)
	return err
}

// RecordSignIn increments the sign-in counter and stamps the sign-in time.
func (r *Repository) RecordSignIn(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE accounts SET sign_in_count = sign_in_count + 1, last_sign_in_at = ?, updated_at = ? WHERE id = ?`,
		time.Now(), time.Now(), id)
	return err
}

// UpdatePersonalInformation persists the account's personal information fields.
func (r *Repository) UpdatePersonalInformation(ctx context.Context, id int64, givenName, familyName, jobTitle, phone string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE accounts SET given_name = ?, family_name = ?, job_title = ?, phone = ?, updated_at = ? WHERE id = ?`,
		givenName, familyName, jobTitle, phone, time.Now(), id)
	return err
}
