package shared

import (
	"context"
	"time"

	"homestay/internal/domain/booking"
	"homestay/internal/domain/listing"
	"homestay/internal/domain/user"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within: full transaction for write operations with retry on
	// serialization failures
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// CommandReads: validation reads outside transactions
	CommandReads() CommandReads
}

type Tx interface {
	Bookings() BookingRepository
	Listings() ListingRepository
	Users() UserRepository
	Reads() CommandReads
}

type CommandReads interface {
	ListingByID(ctx context.Context, id uuid.UUID) (*ListingSnapshot, error)
	// UserByID reconstructs the domain entity so commands gate on its
	// behavior (payout eligibility) rather than raw columns.
	UserByID(ctx context.Context, id uuid.UUID) (*user.User, error)
	UserByEmail(ctx context.Context, email string) (*UserSnapshot, error)
}

// Write-side snapshots keep commands off the read-side view types.
type ListingSnapshot struct {
	ID           uuid.UUID
	Title        string
	PriceCents   int64
	HostID       uuid.UUID
	Index        listing.AvailabilityIndex
	IndexVersion int64
}

// UserSnapshot is the credentials read used by login; it carries the
// password hash, which the domain entity deliberately does not.
type UserSnapshot struct {
	ID           uuid.UUID
	Name         string
	Email        string
	PasswordHash string
	WalletID     *string
	IncomeCents  int64
	CreatedAt    time.Time
}

type BookingRepository interface {
	Create(ctx context.Context, b *booking.Booking) error
}

type ListingRepository interface {
	Create(ctx context.Context, l *listing.Listing) error
	// ReplaceIndex writes the extended availability index conditioned on
	// the version read during validation. A stale version yields a
	// KindConflict repository error and no write.
	ReplaceIndex(ctx context.Context, listingID uuid.UUID, idx listing.AvailabilityIndex, expectedVersion int64) error
}

type UserRepository interface {
	AddIncome(ctx context.Context, userID uuid.UUID, amountCents int64) error
}
