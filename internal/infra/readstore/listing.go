package readstore

import (
	"context"
	"errors"
	"fmt"

	"homestay/internal/infra"
	"homestay/internal/infra/db"
	"homestay/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type ListingReadStore struct {
	db db.DBTX
}

func NewListingReadStore(dbtx db.DBTX) *ListingReadStore {
	return &ListingReadStore{db: dbtx}
}

func (r *ListingReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.ListingView, error) {
	const query = `
		SELECT id, title, description, type, price_cents, max_guests,
		       address, country, admin_area, city, host_id, bookings_index, created_at
		FROM listings
		WHERE id = $1`

	var view queries.ListingView
	err := r.db.QueryRow(ctx, query, id).Scan(
		&view.ID, &view.Title, &view.Description, &view.Type,
		&view.PriceCents, &view.MaxGuests, &view.Address,
		&view.Country, &view.AdminArea, &view.City,
		&view.HostID, &view.BookingsIndex, &view.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("listing not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find listing by ID", err)
	}

	return &view, nil
}

func (r *ListingReadStore) Search(ctx context.Context, filter queries.SearchFilter) ([]queries.ListingListItem, int64, error) {
	where, args := buildSearchWhere(filter)

	var total int64
	countQuery := "SELECT count(*) FROM listings" + where
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, infra.WrapRepoErr("failed to count listings", err)
	}

	orderBy := " ORDER BY created_at DESC, id"
	switch filter.Filter {
	case queries.FilterPriceLowToHigh:
		orderBy = " ORDER BY price_cents ASC, id"
	case queries.FilterPriceHighToLow:
		orderBy = " ORDER BY price_cents DESC, id"
	}

	pageQuery := fmt.Sprintf(
		"SELECT id, title, type, price_cents, max_guests, city, country FROM listings%s%s LIMIT $%d OFFSET $%d",
		where, orderBy, len(args)+1, len(args)+2,
	)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.db.Query(ctx, pageQuery, args...)
	if err != nil {
		return nil, 0, infra.WrapRepoErr("failed to query listings", err)
	}
	defer rows.Close()

	items := []queries.ListingListItem{}
	for rows.Next() {
		var item queries.ListingListItem
		if err := rows.Scan(
			&item.ID, &item.Title, &item.Type, &item.PriceCents,
			&item.MaxGuests, &item.City, &item.Country,
		); err != nil {
			return nil, 0, infra.WrapRepoErr("failed to scan listing row", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, infra.WrapRepoErr("failed to iterate listing rows", err)
	}

	return items, total, nil
}

func (r *ListingReadStore) FindBookings(ctx context.Context, listingID uuid.UUID, limit, offset int32) ([]queries.BookingView, int64, error) {
	return findBookingsBy(ctx, r.db, "listing_id", listingID, limit, offset)
}

func buildSearchWhere(filter queries.SearchFilter) (string, []any) {
	where := ""
	args := []any{}

	appendClause := func(column, value string) {
		if value == "" {
			return
		}
		if where == "" {
			where = " WHERE "
		} else {
			where += " AND "
		}
		args = append(args, value)
		where += fmt.Sprintf("%s = $%d", column, len(args))
	}

	appendClause("country", filter.Country)
	appendClause("admin_area", filter.AdminArea)
	appendClause("city", filter.City)

	return where, args
}
