package readstore

import (
	"context"
	"errors"

	"homestay/internal/infra"
	"homestay/internal/infra/db"
	"homestay/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type UserReadStore struct {
	db db.DBTX
}

func NewUserReadStore(dbtx db.DBTX) *UserReadStore {
	return &UserReadStore{db: dbtx}
}

func (r *UserReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.UserView, error) {
	const query = `
		SELECT id, name, email, avatar_url,
		       wallet_id IS NOT NULL AND wallet_id <> '' AS has_wallet,
		       income_cents, created_at
		FROM users
		WHERE id = $1`

	var view queries.UserView
	err := r.db.QueryRow(ctx, query, id).Scan(
		&view.ID, &view.Name, &view.Email, &view.AvatarURL,
		&view.HasWallet, &view.IncomeCents, &view.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("user not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find user by ID", err)
	}

	return &view, nil
}

func (r *UserReadStore) FindBookings(ctx context.Context, tenantID uuid.UUID, limit, offset int32) ([]queries.BookingView, int64, error) {
	return findBookingsBy(ctx, r.db, "tenant_id", tenantID, limit, offset)
}

func (r *UserReadStore) FindListings(ctx context.Context, hostID uuid.UUID, limit, offset int32) ([]queries.ListingListItem, int64, error) {
	var total int64
	if err := r.db.QueryRow(ctx, "SELECT count(*) FROM listings WHERE host_id = $1", hostID).Scan(&total); err != nil {
		return nil, 0, infra.WrapRepoErr("failed to count user listings", err)
	}

	const pageQuery = `
		SELECT id, title, type, price_cents, max_guests, city, country
		FROM listings
		WHERE host_id = $1
		ORDER BY created_at, id
		LIMIT $2 OFFSET $3`

	rows, err := r.db.Query(ctx, pageQuery, hostID, limit, offset)
	if err != nil {
		return nil, 0, infra.WrapRepoErr("failed to query user listings", err)
	}
	defer rows.Close()

	items := []queries.ListingListItem{}
	for rows.Next() {
		var item queries.ListingListItem
		if err := rows.Scan(
			&item.ID, &item.Title, &item.Type, &item.PriceCents,
			&item.MaxGuests, &item.City, &item.Country,
		); err != nil {
			return nil, 0, infra.WrapRepoErr("failed to scan user listing row", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, infra.WrapRepoErr("failed to iterate user listing rows", err)
	}

	return items, total, nil
}
