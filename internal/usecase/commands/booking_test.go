//go:build unit

package commands_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"homestay/internal/domain/booking"
	"homestay/internal/domain/listing"
	"homestay/internal/domain/user"
	"homestay/internal/infra"
	"homestay/internal/pkg/clock"
	"homestay/internal/usecase/commands"
	"homestay/internal/usecase/queries"
	"homestay/internal/usecase/shared"
	commandsmock "homestay/tests/mock/commands"
	queriesmock "homestay/tests/mock/queries"
	sharedmock "homestay/tests/mock/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type BookingCommandsTestSuite struct {
	suite.Suite
	mockCtrl      *gomock.Controller
	mockUoW       *sharedmock.MockUnitOfWork
	mockTx        *sharedmock.MockTx
	mockReads     *sharedmock.MockCommandReads
	mockTxReads   *sharedmock.MockCommandReads
	mockBookings  *sharedmock.MockBookingRepository
	mockListings  *sharedmock.MockListingRepository
	mockUsers     *sharedmock.MockUserRepository
	mockGateway   *commandsmock.MockPaymentGateway
	mockPublisher *commandsmock.MockEventPublisher
	mockQueries   *queriesmock.MockBookingQueries
	clk           *clock.MockClock

	sut commands.BookingCommands

	listingID uuid.UUID
	hostID    uuid.UUID
	tenantID  uuid.UUID
	walletID  string
}

func TestBookingCommandsSuite(t *testing.T) {
	suite.Run(t, new(BookingCommandsTestSuite))
}

func (s *BookingCommandsTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockUoW = sharedmock.NewMockUnitOfWork(s.mockCtrl)
	s.mockTx = sharedmock.NewMockTx(s.mockCtrl)
	s.mockReads = sharedmock.NewMockCommandReads(s.mockCtrl)
	s.mockTxReads = sharedmock.NewMockCommandReads(s.mockCtrl)
	s.mockBookings = sharedmock.NewMockBookingRepository(s.mockCtrl)
	s.mockListings = sharedmock.NewMockListingRepository(s.mockCtrl)
	s.mockUsers = sharedmock.NewMockUserRepository(s.mockCtrl)
	s.mockGateway = commandsmock.NewMockPaymentGateway(s.mockCtrl)
	s.mockPublisher = commandsmock.NewMockEventPublisher(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockBookingQueries(s.mockCtrl)
	s.clk = clock.NewMockClock(time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC))

	s.sut = commands.NewBookingCommands(
		s.mockUoW,
		s.mockGateway,
		s.mockPublisher,
		booking.NewNightlyPriceCalculator(),
		s.mockQueries,
		s.clk,
	)

	s.listingID = uuid.New()
	s.hostID = uuid.New()
	s.tenantID = uuid.New()
	s.walletID = "acct_test_host"
}

func (s *BookingCommandsTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func (s *BookingCommandsTestSuite) params() commands.CreateBookingParams {
	return commands.CreateBookingParams{
		ListingID: s.listingID,
		Source:    "tok_visa",
		CheckIn:   time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC),
		CheckOut:  time.Date(2026, time.March, 12, 0, 0, 0, 0, time.UTC),
	}
}

func (s *BookingCommandsTestSuite) listingSnapshot(version int64) *shared.ListingSnapshot {
	return &shared.ListingSnapshot{
		ID:           s.listingID,
		Title:        "Clean and fully furnished apartment",
		PriceCents:   10000,
		HostID:       s.hostID,
		Index:        listing.NewAvailabilityIndex(),
		IndexVersion: version,
	}
}

func (s *BookingCommandsTestSuite) host(walletID *string) *user.User {
	now := time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)
	return user.ReconstructUser(s.hostID, "Sara", "sara@example.com", "", walletID, 0, now, now)
}

func (s *BookingCommandsTestSuite) payableHost() *user.User {
	wallet := s.walletID
	return s.host(&wallet)
}

func (s *BookingCommandsTestSuite) expectValidationReads(listingSnap *shared.ListingSnapshot) {
	s.mockUoW.EXPECT().CommandReads().Return(s.mockReads)
	s.mockReads.EXPECT().ListingByID(gomock.Any(), s.listingID).Return(listingSnap, nil)
	s.mockReads.EXPECT().UserByID(gomock.Any(), s.hostID).Return(s.payableHost(), nil)
}

func (s *BookingCommandsTestSuite) expectTxSuccess(version int64) {
	s.mockUoW.EXPECT().Within(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, fn func(context.Context, shared.Tx) error) error {
			return fn(ctx, s.mockTx)
		})
	s.mockTx.EXPECT().Reads().Return(s.mockTxReads)
	s.mockTxReads.EXPECT().ListingByID(gomock.Any(), s.listingID).Return(s.listingSnapshot(version), nil)
	s.mockTx.EXPECT().Bookings().Return(s.mockBookings)
	s.mockBookings.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
	s.mockTx.EXPECT().Users().Return(s.mockUsers)
	s.mockUsers.EXPECT().AddIncome(gomock.Any(), s.hostID, int64(30000)).Return(nil)
	s.mockTx.EXPECT().Listings().Return(s.mockListings)
	s.mockListings.EXPECT().ReplaceIndex(gomock.Any(), s.listingID, gomock.Any(), version).Return(nil)
}

func (s *BookingCommandsTestSuite) TestCreateBookingSuccess() {
	s.expectValidationReads(s.listingSnapshot(7))

	s.mockGateway.EXPECT().Capture(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, p commands.CaptureParams) (*commands.CaptureResult, error) {
			s.Equal(int64(30000), p.AmountCents)
			s.Equal(int64(1500), p.FeeCents)
			s.Equal("tok_visa", p.Source)
			s.Equal(s.walletID, p.DestinationAccount)
			s.Equal("idem-key", p.IdempotencyKey)
			return &commands.CaptureResult{ChargeID: "ch_1"}, nil
		})

	s.expectTxSuccess(7)
	s.mockPublisher.EXPECT().PublishBookingCreated(gomock.Any(), gomock.Any()).Return(nil)

	expected := &queries.BookingView{TotalCents: 30000}
	s.mockQueries.EXPECT().GetByID(gomock.Any(), gomock.Any()).Return(expected, nil)

	view, err := s.sut.CreateBooking(context.Background(), s.params(), s.tenantID, "idem-key")
	s.Require().NoError(err)
	s.Equal(expected, view)
}

func (s *BookingCommandsTestSuite) TestCreateBookingRequiresAuthentication() {
	_, err := s.sut.CreateBooking(context.Background(), s.params(), uuid.Nil, "idem-key")
	s.ErrorIs(err, commands.ErrNotAuthenticated)
}

func (s *BookingCommandsTestSuite) TestCreateBookingListingNotFound() {
	s.mockUoW.EXPECT().CommandReads().Return(s.mockReads)
	s.mockReads.EXPECT().ListingByID(gomock.Any(), s.listingID).
		Return(nil, infra.WrapRepoErr("not found", nil, infra.KindNotFound))

	_, err := s.sut.CreateBooking(context.Background(), s.params(), s.tenantID, "idem-key")
	s.ErrorIs(err, commands.ErrListingNotFound)
}

func (s *BookingCommandsTestSuite) TestCreateBookingRejectsSelfBooking() {
	s.mockUoW.EXPECT().CommandReads().Return(s.mockReads)
	s.mockReads.EXPECT().ListingByID(gomock.Any(), s.listingID).Return(s.listingSnapshot(1), nil)

	_, err := s.sut.CreateBooking(context.Background(), s.params(), s.hostID, "idem-key")
	s.ErrorIs(err, commands.ErrSelfBooking)
}

func (s *BookingCommandsTestSuite) TestCreateBookingRejectsReversedDates() {
	s.mockUoW.EXPECT().CommandReads().Return(s.mockReads)
	s.mockReads.EXPECT().ListingByID(gomock.Any(), s.listingID).Return(s.listingSnapshot(1), nil)

	params := s.params()
	params.CheckIn, params.CheckOut = params.CheckOut.AddDate(0, 0, 5), params.CheckIn

	_, err := s.sut.CreateBooking(context.Background(), params, s.tenantID, "idem-key")
	s.ErrorIs(err, commands.ErrInvalidDateRange)
}

func (s *BookingCommandsTestSuite) TestCreateBookingRejectsPastCheckIn() {
	s.mockUoW.EXPECT().CommandReads().Return(s.mockReads)
	s.mockReads.EXPECT().ListingByID(gomock.Any(), s.listingID).Return(s.listingSnapshot(1), nil)

	params := s.params()
	params.CheckIn = time.Date(2026, time.February, 20, 0, 0, 0, 0, time.UTC)

	_, err := s.sut.CreateBooking(context.Background(), params, s.tenantID, "idem-key")
	s.ErrorIs(err, commands.ErrInvalidDateRange)
}

func (s *BookingCommandsTestSuite) TestCreateBookingHostWithoutWallet() {
	s.mockUoW.EXPECT().CommandReads().Return(s.mockReads)
	s.mockReads.EXPECT().ListingByID(gomock.Any(), s.listingID).Return(s.listingSnapshot(1), nil)
	s.mockReads.EXPECT().UserByID(gomock.Any(), s.hostID).Return(s.host(nil), nil)

	_, err := s.sut.CreateBooking(context.Background(), s.params(), s.tenantID, "idem-key")
	s.ErrorIs(err, commands.ErrHostNotPayable)
}

func (s *BookingCommandsTestSuite) TestCreateBookingHostRowMissing() {
	s.mockUoW.EXPECT().CommandReads().Return(s.mockReads)
	s.mockReads.EXPECT().ListingByID(gomock.Any(), s.listingID).Return(s.listingSnapshot(1), nil)
	s.mockReads.EXPECT().UserByID(gomock.Any(), s.hostID).
		Return(nil, infra.WrapRepoErr("user not found", nil, infra.KindNotFound))

	_, err := s.sut.CreateBooking(context.Background(), s.params(), s.tenantID, "idem-key")
	s.ErrorIs(err, commands.ErrHostNotPayable)
}

func (s *BookingCommandsTestSuite) TestCreateBookingHostReadFailureSurfacesDBError() {
	s.mockUoW.EXPECT().CommandReads().Return(s.mockReads)
	s.mockReads.EXPECT().ListingByID(gomock.Any(), s.listingID).Return(s.listingSnapshot(1), nil)
	s.mockReads.EXPECT().UserByID(gomock.Any(), s.hostID).
		Return(nil, infra.WrapRepoErr("connection reset", nil))

	_, err := s.sut.CreateBooking(context.Background(), s.params(), s.tenantID, "idem-key")
	s.ErrorIs(err, commands.ErrDatabaseOperationFailed)
	s.NotErrorIs(err, commands.ErrHostNotPayable)
}

func (s *BookingCommandsTestSuite) TestCreateBookingConflictBeforeCapture() {
	snap := s.listingSnapshot(1)
	occupied, err := snap.Index.WithRange(
		time.Date(2026, time.March, 11, 0, 0, 0, 0, time.UTC),
		time.Date(2026, time.March, 11, 0, 0, 0, 0, time.UTC),
	)
	s.Require().NoError(err)
	snap.Index = occupied

	s.expectValidationReads(snap)

	// No capture, no transaction: the conflict is detected up front.
	_, err = s.sut.CreateBooking(context.Background(), s.params(), s.tenantID, "idem-key")
	s.ErrorIs(err, commands.ErrDatesConflict)
}

func (s *BookingCommandsTestSuite) TestCreateBookingPaymentFailure() {
	s.expectValidationReads(s.listingSnapshot(1))

	s.mockGateway.EXPECT().Capture(gomock.Any(), gomock.Any()).
		Return(nil, errors.New("card declined"))

	_, err := s.sut.CreateBooking(context.Background(), s.params(), s.tenantID, "idem-key")
	s.ErrorIs(err, commands.ErrPaymentFailed)
}

func (s *BookingCommandsTestSuite) TestCreateBookingPersistFailureRefunds() {
	s.expectValidationReads(s.listingSnapshot(1))

	s.mockGateway.EXPECT().Capture(gomock.Any(), gomock.Any()).
		Return(&commands.CaptureResult{ChargeID: "ch_1"}, nil)

	s.mockUoW.EXPECT().Within(gomock.Any(), gomock.Any()).
		Return(infra.WrapRepoErr("write failed", nil)).
		Times(1)

	s.mockGateway.EXPECT().Refund(gomock.Any(), "ch_1", "idem-key:refund").Return(nil)

	_, err := s.sut.CreateBooking(context.Background(), s.params(), s.tenantID, "idem-key")
	s.Require().Error(err)
	s.NotErrorIs(err, commands.ErrPartialFailure)
}

func (s *BookingCommandsTestSuite) TestCreateBookingRefundFailureIsPartial() {
	s.expectValidationReads(s.listingSnapshot(1))

	s.mockGateway.EXPECT().Capture(gomock.Any(), gomock.Any()).
		Return(&commands.CaptureResult{ChargeID: "ch_1"}, nil)

	s.mockUoW.EXPECT().Within(gomock.Any(), gomock.Any()).
		Return(infra.WrapRepoErr("write failed", nil)).
		Times(1)

	s.mockGateway.EXPECT().Refund(gomock.Any(), "ch_1", "idem-key:refund").
		Return(errors.New("refund rejected"))

	_, err := s.sut.CreateBooking(context.Background(), s.params(), s.tenantID, "idem-key")
	s.ErrorIs(err, commands.ErrPartialFailure)
}

func (s *BookingCommandsTestSuite) TestCreateBookingRetriesOnVersionConflict() {
	s.expectValidationReads(s.listingSnapshot(1))

	s.mockGateway.EXPECT().Capture(gomock.Any(), gomock.Any()).
		Return(&commands.CaptureResult{ChargeID: "ch_1"}, nil)

	// First attempt loses the version race, second one commits.
	s.mockUoW.EXPECT().Within(gomock.Any(), gomock.Any()).
		Return(infra.WrapRepoErr("index version changed", nil, infra.KindConflict)).
		Times(1)
	s.expectTxSuccess(2)

	s.mockPublisher.EXPECT().PublishBookingCreated(gomock.Any(), gomock.Any()).Return(nil)
	s.mockQueries.EXPECT().GetByID(gomock.Any(), gomock.Any()).
		Return(&queries.BookingView{TotalCents: 30000}, nil)

	view, err := s.sut.CreateBooking(context.Background(), s.params(), s.tenantID, "idem-key")
	s.Require().NoError(err)
	s.Equal(int64(30000), view.TotalCents)
}

func (s *BookingCommandsTestSuite) TestCreateBookingConflictInsideTransactionRefunds() {
	s.expectValidationReads(s.listingSnapshot(1))

	s.mockGateway.EXPECT().Capture(gomock.Any(), gomock.Any()).
		Return(&commands.CaptureResult{ChargeID: "ch_1"}, nil)

	// The reloaded index now holds the requested days: every retry would
	// see the same conflict, so the tenant is refunded.
	snap := s.listingSnapshot(2)
	occupied, err := snap.Index.WithRange(
		time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC),
		time.Date(2026, time.March, 12, 0, 0, 0, 0, time.UTC),
	)
	s.Require().NoError(err)
	snap.Index = occupied

	s.mockUoW.EXPECT().Within(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, fn func(context.Context, shared.Tx) error) error {
			return fn(ctx, s.mockTx)
		})
	s.mockTx.EXPECT().Reads().Return(s.mockTxReads)
	s.mockTxReads.EXPECT().ListingByID(gomock.Any(), s.listingID).Return(snap, nil)

	s.mockGateway.EXPECT().Refund(gomock.Any(), "ch_1", "idem-key:refund").Return(nil)

	_, err = s.sut.CreateBooking(context.Background(), s.params(), s.tenantID, "idem-key")
	s.ErrorIs(err, commands.ErrDatesConflict)
}
