package queries

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Read models (DTOs for the read side)

type ListingView struct {
	ID            uuid.UUID       `json:"id"`
	Title         string          `json:"title"`
	Description   string          `json:"description"`
	Type          string          `json:"type"`
	PriceCents    int64           `json:"price_cents"`
	MaxGuests     int32           `json:"max_guests"`
	Address       string          `json:"address"`
	Country       string          `json:"country"`
	AdminArea     string          `json:"admin_area"`
	City          string          `json:"city"`
	HostID        uuid.UUID       `json:"host_id"`
	BookingsIndex json.RawMessage `json:"bookings_index"`
	CreatedAt     time.Time       `json:"created_at"`
}

// ListingDetail carries the per-request owner flag alongside the view so
// nested accessors can gate on it without re-resolving the viewer.
type ListingDetail struct {
	ListingView
	ViewerIsHost bool `json:"-"`
}

type ListingListItem struct {
	ID         uuid.UUID `json:"id"`
	Title      string    `json:"title"`
	Type       string    `json:"type"`
	PriceCents int64     `json:"price_cents"`
	MaxGuests  int32     `json:"max_guests"`
	City       string    `json:"city"`
	Country    string    `json:"country"`
}

type ListingsResult struct {
	Region *string `json:"region,omitempty"`
	Page[ListingListItem]
}

type BookingView struct {
	ID         uuid.UUID `json:"id"`
	ListingID  uuid.UUID `json:"listing_id"`
	TenantID   uuid.UUID `json:"tenant_id"`
	CheckIn    time.Time `json:"check_in"`
	CheckOut   time.Time `json:"check_out"`
	TotalCents int64     `json:"total_cents"`
	CreatedAt  time.Time `json:"created_at"`
}

type UserView struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	AvatarURL   string    `json:"avatar_url"`
	HasWallet   bool      `json:"has_wallet"`
	IncomeCents int64     `json:"-"`
	CreatedAt   time.Time `json:"created_at"`
}

// UserDetail mirrors ListingDetail: the owner flag is computed once per
// request and never mutated afterwards.
type UserDetail struct {
	UserView
	ViewerIsOwner bool `json:"-"`
}
