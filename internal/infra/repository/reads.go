package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"homestay/internal/domain/user"
	"homestay/internal/infra"
	"homestay/internal/infra/db"
	"homestay/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// CommandReads serves the write side's validation reads. It returns
// snapshots, not read models, so commands stay off the query layer.
type CommandReads struct {
	db db.DBTX
}

func NewCommandReads(dbtx db.DBTX) *CommandReads {
	return &CommandReads{db: dbtx}
}

func (r *CommandReads) ListingByID(ctx context.Context, id uuid.UUID) (*shared.ListingSnapshot, error) {
	const query = `
		SELECT id, title, price_cents, host_id, bookings_index, index_version
		FROM listings
		WHERE id = $1`

	var (
		snap      shared.ListingSnapshot
		indexJSON []byte
	)
	err := r.db.QueryRow(ctx, query, id).Scan(
		&snap.ID, &snap.Title, &snap.PriceCents, &snap.HostID, &indexJSON, &snap.IndexVersion,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("listing not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to load listing snapshot", err)
	}

	if err := json.Unmarshal(indexJSON, &snap.Index); err != nil {
		return nil, infra.WrapRepoErr("failed to parse availability index", err)
	}

	return &snap, nil
}

func (r *CommandReads) UserByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	const query = `
		SELECT id, name, email, avatar_url, wallet_id, income_cents, created_at, updated_at
		FROM users
		WHERE id = $1`

	var (
		userID      uuid.UUID
		name        string
		email       string
		avatarURL   string
		walletID    *string
		incomeCents int64
		createdAt   time.Time
		updatedAt   time.Time
	)
	err := r.db.QueryRow(ctx, query, id).Scan(
		&userID, &name, &email, &avatarURL, &walletID, &incomeCents, &createdAt, &updatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("user not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to load user", err)
	}

	return user.ReconstructUser(userID, name, email, avatarURL, walletID, incomeCents, createdAt, updatedAt), nil
}

func (r *CommandReads) UserByEmail(ctx context.Context, email string) (*shared.UserSnapshot, error) {
	return r.userBy(ctx, "email = $1", email)
}

func (r *CommandReads) userBy(ctx context.Context, where string, arg any) (*shared.UserSnapshot, error) {
	query := `
		SELECT id, name, email, password_hash, wallet_id, income_cents, created_at
		FROM users
		WHERE ` + where

	var snap shared.UserSnapshot
	err := r.db.QueryRow(ctx, query, arg).Scan(
		&snap.ID, &snap.Name, &snap.Email, &snap.PasswordHash,
		&snap.WalletID, &snap.IncomeCents, &snap.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("user not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to load user snapshot", err)
	}

	return &snap, nil
}

var _ shared.CommandReads = (*CommandReads)(nil)
