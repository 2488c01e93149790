package repository

import (
	"context"
	"errors"

	"homestay/internal/domain/booking"
	"homestay/internal/infra"
	"homestay/internal/infra/db"

	"github.com/jackc/pgx/v5/pgconn"
)

const (
	pgErrCodeForeignKeyViolation = "23503"
	pgErrCodeUniqueViolation     = "23505"
)

type BookingRepository struct {
	db db.DBTX
}

func NewBookingRepository(dbtx db.DBTX) *BookingRepository {
	return &BookingRepository{db: dbtx}
}

func (r *BookingRepository) Create(ctx context.Context, b *booking.Booking) error {
	const query = `
		INSERT INTO bookings (id, listing_id, tenant_id, check_in, check_out, total_cents)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.db.Exec(ctx, query,
		b.ID(), b.ListingID(), b.TenantID(),
		b.Stay().CheckIn(), b.Stay().CheckOut(), b.TotalCents(),
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return infra.WrapRepoErr("booking references a missing listing or tenant", err, infra.KindForeignKeyViolated)
		}
		return infra.WrapRepoErr("failed to create booking", err)
	}

	return nil
}

func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgErrCodeForeignKeyViolation
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgErrCodeUniqueViolation
}
