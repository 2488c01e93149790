package repository

import (
	"context"
	"encoding/json"

	"homestay/internal/domain/listing"
	"homestay/internal/infra"
	"homestay/internal/infra/db"

	"github.com/google/uuid"
)

type ListingRepository struct {
	db db.DBTX
}

func NewListingRepository(dbtx db.DBTX) *ListingRepository {
	return &ListingRepository{db: dbtx}
}

func (r *ListingRepository) Create(ctx context.Context, l *listing.Listing) error {
	indexJSON, err := json.Marshal(l.Index())
	if err != nil {
		return infra.WrapRepoErr("failed to serialize availability index", err)
	}

	const query = `
		INSERT INTO listings (
			id, title, description, type, price_cents, max_guests,
			address, country, admin_area, city, host_id, bookings_index
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	_, err = r.db.Exec(ctx, query,
		l.ID(), l.Title(), l.Description(), l.ListingType().String(),
		l.PriceCents(), l.MaxGuests(), l.Address(),
		l.Region().Country, l.Region().AdminArea, l.Region().City,
		l.HostID(), indexJSON,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return infra.WrapRepoErr("listing host does not exist", err, infra.KindForeignKeyViolated)
		}
		return infra.WrapRepoErr("failed to create listing", err)
	}

	return nil
}

// ReplaceIndex is the conditional write that serializes concurrent
// bookings on one listing: it succeeds only if index_version is still the
// value observed when the range was validated.
func (r *ListingRepository) ReplaceIndex(ctx context.Context, listingID uuid.UUID, idx listing.AvailabilityIndex, expectedVersion int64) error {
	indexJSON, err := json.Marshal(idx)
	if err != nil {
		return infra.WrapRepoErr("failed to serialize availability index", err)
	}

	const query = `
		UPDATE listings
		SET bookings_index = $1, index_version = index_version + 1, updated_at = now()
		WHERE id = $2 AND index_version = $3`

	tag, err := r.db.Exec(ctx, query, indexJSON, listingID, expectedVersion)
	if err != nil {
		return infra.WrapRepoErr("failed to update availability index", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("availability index version is stale", nil, infra.KindConflict)
	}

	return nil
}
