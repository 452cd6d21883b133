// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package repository

import (
	"context"
	"time"

	"codeberg.org/oliverandrich/accounts/internal/models"
)

// CreateOrganization creates a new organization.
func (r *Repository) CreateOrganization(ctx context.Context, code, name string) (*models.Organization, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO organizations (code, name, created_at) VALUES (?, ?, ?)`,
		code, name, time.Now())
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return r.GetOrganizationByID(ctx, id)
}

// GetOrganizationByID retrieves an organization by its ID.
func (r *Repository) GetOrganizationByID(ctx context.Context, id int64) (*models.Organization, error) {
	var org models.Organization
	if err := r.db.GetContext(ctx, &org, `SELECT * FROM organizations WHERE id = ?`, id); err != nil {
		return nil, wrapError(err)
	}
	return &org, nil
}

// GetOrganizationByCode retrieves an organization by its directory code.
func (r *Repository) GetOrganizationByCode(ctx context.Context, code string) (*models.Organization, error) {
	var org models.Organization
	if err := r.db.GetContext(ctx, &org, `SELECT * FROM organizations WHERE code = ?`, code); err != nil {
		return nil, wrapError(err)
	}
	return &org, nil
}

// CreateMembership links an account to an organization.
func (r *Repository) CreateMembership(ctx context.Context, accountID, organizationID int64, role string, needsContactVerification bool) (*models.Membership, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO memberships (account_id, organization_id, role, needs_contact_verification, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		accountID, organizationID, role, needsContactVerification, time.Now())
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	var membership models.Membership
	if err := r.db.GetContext(ctx, &membership, `SELECT * FROM memberships WHERE id = ?`, id); err != nil {
		return nil, wrapError(err)
	}
	return &membership, nil
}

// GetMembership retrieves the membership of an account in an organization.
func (r *Repository) GetMembership(ctx context.Context, accountID, organizationID int64) (*models.Membership, error) {
	var membership models.Membership
	err := r.db.GetContext(ctx, &membership,
		`SELECT * FROM memberships WHERE account_id = ? AND organization_id = ?`,
		accountID, organizationID)
	if err != nil {
		return nil, wrapError(err)
	}
	return &membership, nil
}

// GetPendingMembership retrieves the oldest membership of an account that
// still awaits contact email verification.
func (r *Repository) GetPendingMembership(ctx context.Context, accountID int64) (*models.Membership, error) {
	var membership models.Membership
	err := r.db.GetContext(ctx, &membership,
		`SELECT * FROM memberships
		 WHERE account_id = ? AND needs_contact_verification = 1
		 ORDER BY created_at ASC LIMIT 1`,
		accountID)
	if err != nil {
		return nil, wrapError(err)
	}
	return &membership, nil
}

// ConfirmMembershipContact clears the membership's contact verification flag
// and the account's contact email token pair in a single transaction.
func (r *Repository) ConfirmMembershipContact(ctx context.Context, membershipID, accountID int64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback() //nolint:errcheck // rollback after commit is a no-op

	if _, err := tx.ExecContext(ctx,
		`UPDATE memberships SET needs_contact_verification = 0 WHERE id = ?`,
		membershipID); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx,
		`UPDATE accounts
		 SET contact_email_token_hash = NULL, contact_email_sent_at = NULL, updated_at = ?
		 WHERE id = ?`,
		time.Now(), accountID); err != nil {
		return err
	}

	return tx.Commit()
}
