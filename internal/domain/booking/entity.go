package booking

import (
	"time"

	"github.com/google/uuid"
)

// Booking is immutable once created; there is no update or cancel path.
type Booking struct {
	id         uuid.UUID
	listingID  uuid.UUID
	tenantID   uuid.UUID
	stay       DateRange
	totalCents int64
	createdAt  time.Time
}

func NewBooking(listingID, tenantID uuid.UUID, stay DateRange, totalCents int64) (*Booking, error) {
	if totalCents <= 0 {
		return nil, ErrInvalidTotal
	}

	return &Booking{
		id:         uuid.New(),
		listingID:  listingID,
		tenantID:   tenantID,
		stay:       stay,
		totalCents: totalCents,
	}, nil
}

func ReconstructBooking(
	id, listingID, tenantID uuid.UUID,
	stay DateRange,
	totalCents int64,
	createdAt time.Time,
) *Booking {
	return &Booking{
		id:         id,
		listingID:  listingID,
		tenantID:   tenantID,
		stay:       stay,
		totalCents: totalCents,
		createdAt:  createdAt,
	}
}

func (b *Booking) ID() uuid.UUID        { return b.id }
func (b *Booking) ListingID() uuid.UUID { return b.listingID }
func (b *Booking) TenantID() uuid.UUID  { return b.tenantID }
func (b *Booking) Stay() DateRange      { return b.stay }
func (b *Booking) TotalCents() int64    { return b.totalCents }
func (b *Booking) CreatedAt() time.Time { return b.createdAt }
