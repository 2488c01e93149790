package commands

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// CaptureParams describes one charge against a tenant's payment source,
// routed to the host's connected account minus the platform fee.
type CaptureParams struct {
	AmountCents        int64
	FeeCents           int64
	Source             string
	DestinationAccount string
	// IdempotencyKey makes the capture safe to submit exactly once per
	// logical booking attempt, including after ambiguous timeouts.
	IdempotencyKey string
}

type CaptureResult struct {
	ChargeID string
}

type PaymentGateway interface {
	Capture(ctx context.Context, params CaptureParams) (*CaptureResult, error)
	Refund(ctx context.Context, chargeID, idempotencyKey string) error
}

type BookingCreatedEvent struct {
	BookingID  uuid.UUID `json:"booking_id"`
	ListingID  uuid.UUID `json:"listing_id"`
	TenantID   uuid.UUID `json:"tenant_id"`
	HostID     uuid.UUID `json:"host_id"`
	CheckIn    time.Time `json:"check_in"`
	CheckOut   time.Time `json:"check_out"`
	TotalCents int64     `json:"total_cents"`
}

type EventPublisher interface {
	PublishBookingCreated(ctx context.Context, event BookingCreatedEvent) error
}
