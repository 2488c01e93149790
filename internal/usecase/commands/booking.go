package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"homestay/internal/domain/booking"
	"homestay/internal/domain/listing"
	"homestay/internal/domain/user"
	"homestay/internal/infra"
	"homestay/internal/pkg/clock"
	"homestay/internal/pkg/errs"
	"homestay/internal/usecase/queries"
	"homestay/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrNotAuthenticated        = errs.New("viewer is not authenticated")
	ErrListingNotFound         = errs.New("listing not found")
	ErrSelfBooking             = errs.New("hosts cannot book their own listing")
	ErrInvalidDateRange        = errs.New("invalid date range")
	ErrHostNotPayable          = errs.New("host has no connected payment account")
	ErrDatesConflict           = errs.New("requested dates overlap an existing booking")
	ErrPaymentFailed           = errs.New("payment capture failed")
	ErrPartialFailure          = errs.New("payment captured but booking could not be reconciled")
	ErrDatabaseOperationFailed = errs.New("database operation failed")
)

// indexRetries bounds the optimistic write loop on the availability
// index version. Each retry revalidates against the freshest index.
const indexRetries = 3

type CreateBookingParams struct {
	ListingID uuid.UUID
	Source    string
	CheckIn   time.Time
	CheckOut  time.Time
}

type BookingCommands interface {
	CreateBooking(ctx context.Context, params CreateBookingParams, tenantID uuid.UUID, idempotencyKey string) (*queries.BookingView, error)
}

type bookingCommandsImpl struct {
	uow            shared.UnitOfWork
	gateway        PaymentGateway
	publisher      EventPublisher
	calculator     booking.PriceCalculator
	bookingQueries queries.BookingQueries
	clock          clock.Clock
}

func NewBookingCommands(
	uow shared.UnitOfWork,
	gateway PaymentGateway,
	publisher EventPublisher,
	calculator booking.PriceCalculator,
	bookingQueries queries.BookingQueries,
	clk clock.Clock,
) BookingCommands {
	return &bookingCommandsImpl{
		uow:            uow,
		gateway:        gateway,
		publisher:      publisher,
		calculator:     calculator,
		bookingQueries: bookingQueries,
		clock:          clk,
	}
}

// CreateBooking runs the full booking transaction: validate, price,
// capture, persist. Validation happens before any money moves, the
// capture happens exactly once, and the persistence step compensates the
// capture (refund) when it cannot complete.
func (c *bookingCommandsImpl) CreateBooking(
	ctx context.Context,
	params CreateBookingParams,
	tenantID uuid.UUID,
	idempotencyKey string,
) (*queries.BookingView, error) {
	if tenantID == uuid.Nil {
		return nil, ErrNotAuthenticated
	}

	listingSnap, stay, host, err := c.validate(ctx, params, tenantID)
	if err != nil {
		return nil, err
	}

	totalCents, err := c.calculator.TotalCents(listingSnap.PriceCents, stay)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidDateRange)
	}

	capture, err := c.gateway.Capture(ctx, CaptureParams{
		AmountCents:        totalCents,
		FeeCents:           booking.ApplicationFeeCents(totalCents),
		Source:             params.Source,
		DestinationAccount: *host.WalletID(),
		IdempotencyKey:     idempotencyKey,
	})
	if err != nil {
		return nil, errs.Mark(err, ErrPaymentFailed)
	}

	// Money has moved. From here on the operation is not cancellable:
	// persistence proceeds even if the caller disconnects.
	persistCtx := context.WithoutCancel(ctx)

	bookingID, err := c.persist(persistCtx, listingSnap.ID, tenantID, host.ID(), stay, totalCents)
	if err != nil {
		return nil, c.compensate(persistCtx, capture.ChargeID, idempotencyKey, err)
	}

	c.publishCreated(persistCtx, BookingCreatedEvent{
		BookingID:  bookingID,
		ListingID:  listingSnap.ID,
		TenantID:   tenantID,
		HostID:     host.ID(),
		CheckIn:    stay.CheckIn(),
		CheckOut:   stay.CheckOut(),
		TotalCents: totalCents,
	})

	return c.bookingQueries.GetByID(persistCtx, bookingID)
}

// validate performs the side-effect-free precondition checks; each
// failure maps to its own sentinel so callers can tell the tenant what
// to fix.
func (c *bookingCommandsImpl) validate(
	ctx context.Context,
	params CreateBookingParams,
	tenantID uuid.UUID,
) (*shared.ListingSnapshot, booking.DateRange, *user.User, error) {
	reads := c.uow.CommandReads()

	listingSnap, err := reads.ListingByID(ctx, params.ListingID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, booking.DateRange{}, nil, ErrListingNotFound
		}
		return nil, booking.DateRange{}, nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	if listingSnap.HostID == tenantID {
		return nil, booking.DateRange{}, nil, ErrSelfBooking
	}

	stay, err := booking.NewDateRange(params.CheckIn, params.CheckOut)
	if err != nil {
		return nil, booking.DateRange{}, nil, errs.Mark(err, ErrInvalidDateRange)
	}
	if stay.CheckIn().Before(clock.Today(c.clock)) {
		return nil, booking.DateRange{}, nil, ErrInvalidDateRange
	}

	host, err := reads.UserByID(ctx, listingSnap.HostID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, booking.DateRange{}, nil, ErrHostNotPayable
		}
		return nil, booking.DateRange{}, nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	if !host.CanReceivePayouts() {
		return nil, booking.DateRange{}, nil, ErrHostNotPayable
	}

	// Reject conflicting ranges before touching the gateway; the
	// authoritative check happens again inside the transaction.
	if _, err := listingSnap.Index.WithRange(stay.CheckIn(), stay.CheckOut()); err != nil {
		return nil, booking.DateRange{}, nil, errs.Mark(err, ErrDatesConflict)
	}

	return listingSnap, stay, host, nil
}

// persist commits the booking record, the host income increment and the
// extended availability index as one transaction. The index write is
// conditioned on the version observed in the same transaction, so two
// concurrent bookings for overlapping dates can never both commit; the
// loser revalidates against the fresh index and either retries or
// reports the conflict.
func (c *bookingCommandsImpl) persist(
	ctx context.Context,
	listingID, tenantID, hostID uuid.UUID,
	stay booking.DateRange,
	totalCents int64,
) (uuid.UUID, error) {
	var bookingID uuid.UUID

	for attempt := 0; attempt < indexRetries; attempt++ {
		err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
			current, err := tx.Reads().ListingByID(ctx, listingID)
			if err != nil {
				return errs.Mark(err, ErrDatabaseOperationFailed)
			}

			extended, err := current.Index.WithRange(stay.CheckIn(), stay.CheckOut())
			if err != nil {
				if errors.Is(err, listing.ErrDateUnavailable) {
					return ErrDatesConflict
				}
				return errs.Mark(err, ErrInvalidDateRange)
			}

			newBooking, err := booking.NewBooking(listingID, tenantID, stay, totalCents)
			if err != nil {
				return errs.Mark(err, ErrDatabaseOperationFailed)
			}

			if err := tx.Bookings().Create(ctx, newBooking); err != nil {
				return errs.Mark(err, ErrDatabaseOperationFailed)
			}
			if err := tx.Users().AddIncome(ctx, hostID, totalCents); err != nil {
				return errs.Mark(err, ErrDatabaseOperationFailed)
			}
			if err := tx.Listings().ReplaceIndex(ctx, listingID, extended, current.IndexVersion); err != nil {
				return err
			}

			bookingID = newBooking.ID()
			return nil
		})

		if err == nil {
			return bookingID, nil
		}
		if infra.IsKind(err, infra.KindConflict) {
			slog.Warn("availability index version changed, revalidating",
				"listing_id", listingID, "attempt", attempt+1)
			continue
		}
		return uuid.Nil, err
	}

	return uuid.Nil, errs.Mark(errs.New("availability index contention not resolved"), ErrDatabaseOperationFailed)
}

// compensate refunds a capture whose booking could not be persisted. A
// failed refund means money moved with no record: that is surfaced as
// ErrPartialFailure and logged for manual reconciliation, never
// swallowed.
func (c *bookingCommandsImpl) compensate(ctx context.Context, chargeID, idempotencyKey string, cause error) error {
	if err := c.gateway.Refund(ctx, chargeID, idempotencyKey+":refund"); err != nil {
		slog.Error("payment captured but neither booked nor refunded; manual reconciliation required",
			"charge_id", chargeID,
			"persist_error", cause.Error(),
			"refund_error", err.Error())
		return errs.Mark(cause, ErrPartialFailure)
	}

	slog.Warn("booking persistence failed, capture refunded",
		"charge_id", chargeID, "error", cause.Error())
	return cause
}

func (c *bookingCommandsImpl) publishCreated(ctx context.Context, event BookingCreatedEvent) {
	if c.publisher == nil {
		return
	}
	if err := c.publisher.PublishBookingCreated(ctx, event); err != nil {
		slog.Warn("failed to publish booking created event",
			"booking_id", event.BookingID, "error", err.Error())
	}
}
