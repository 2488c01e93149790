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

type BookingReadStore struct {
	db db.DBTX
}

func NewBookingReadStore(dbtx db.DBTX) *BookingReadStore {
	return &BookingReadStore{db: dbtx}
}

func (r *BookingReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.BookingView, error) {
	const query = `
		SELECT id, listing_id, tenant_id, check_in, check_out, total_cents, created_at
		FROM bookings
		WHERE id = $1`

	var view queries.BookingView
	err := r.db.QueryRow(ctx, query, id).Scan(
		&view.ID, &view.ListingID, &view.TenantID,
		&view.CheckIn, &view.CheckOut, &view.TotalCents, &view.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find booking by ID", err)
	}

	return &view, nil
}

// findBookingsBy pages through one listing's or one tenant's bookings in
// creation order with the shared skip/limit semantics.
func findBookingsBy(ctx context.Context, dbtx db.DBTX, column string, id uuid.UUID, limit, offset int32) ([]queries.BookingView, int64, error) {
	var total int64
	countQuery := "SELECT count(*) FROM bookings WHERE " + column + " = $1"
	if err := dbtx.QueryRow(ctx, countQuery, id).Scan(&total); err != nil {
		return nil, 0, infra.WrapRepoErr("failed to count bookings", err)
	}

	pageQuery := `
		SELECT id, listing_id, tenant_id, check_in, check_out, total_cents, created_at
		FROM bookings
		WHERE ` + column + ` = $1
		ORDER BY created_at, id
		LIMIT $2 OFFSET $3`

	rows, err := dbtx.Query(ctx, pageQuery, id, limit, offset)
	if err != nil {
		return nil, 0, infra.WrapRepoErr("failed to query bookings", err)
	}
	defer rows.Close()

	bookings := []queries.BookingView{}
	for rows.Next() {
		var view queries.BookingView
		if err := rows.Scan(
			&view.ID, &view.ListingID, &view.TenantID,
			&view.CheckIn, &view.CheckOut, &view.TotalCents, &view.CreatedAt,
		); err != nil {
			return nil, 0, infra.WrapRepoErr("failed to scan booking row", err)
		}
		bookings = append(bookings, view)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, infra.WrapRepoErr("failed to iterate booking rows", err)
	}

	return bookings, total, nil
}
