//go:build unit

package api_test

import (
	"net/http"
	"testing"
	"time"

	"homestay/internal/handler/api"
	resdto "homestay/internal/handler/dto/response"
	"homestay/internal/usecase/commands"
	"homestay/internal/usecase/queries"
	"homestay/tests/common/httptest"
	"homestay/tests/common/testutil"
	commandsmock "homestay/tests/mock/commands"
	queriesmock "homestay/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type BookingHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockBookingCommands
	mockQueries  *queriesmock.MockBookingQueries
	handler      *api.BookingHandler
	userID       uuid.UUID
}

func TestBookingHandlerSuite(t *testing.T) {
	suite.Run(t, new(BookingHandlerTestSuite))
}

func (s *BookingHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockBookingCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockBookingQueries(s.mockCtrl)
	s.handler = api.NewBookingHandler(s.mockCommands, s.mockQueries)
	s.userID = uuid.New()

	// Mock authentication middleware for testing
	authMiddleware := func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		c.Set("user_id", s.userID)
		c.Next()
	}

	s.router.POST("/bookings", authMiddleware, s.handler.CreateBooking)
	s.router.GET("/bookings/:id", authMiddleware, s.handler.GetBooking)
}

func (s *BookingHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func (s *BookingHandlerTestSuite) requestBody() map[string]any {
	return testutil.DtoMap(s.T(), map[string]any{
		"listing_id": uuid.New().String(),
		"source":     "tok_visa",
		"check_in":   "2026-03-10T00:00:00Z",
		"check_out":  "2026-03-12T00:00:00Z",
	})
}

func (s *BookingHandlerTestSuite) perform(body map[string]any, headers map[string]string) *resultRecorder {
	rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPost, "/bookings", body, "bearer-token", headers)
	return &resultRecorder{rec.Code, rec.Body.String()}
}

type resultRecorder struct {
	Code int
	Body string
}

func (s *BookingHandlerTestSuite) TestCreateBooking() {
	idemHeader := map[string]string{"Idempotency-Key": "idem-key"}

	s.Run("success: returns 201 with booking body", func() {
		view := &queries.BookingView{
			ID:         uuid.New(),
			ListingID:  uuid.New(),
			TenantID:   s.userID,
			CheckIn:    time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC),
			CheckOut:   time.Date(2026, time.March, 12, 0, 0, 0, 0, time.UTC),
			TotalCents: 30000,
		}
		s.mockCommands.EXPECT().
			CreateBooking(gomock.Any(), gomock.Any(), s.userID, "idem-key").
			Return(view, nil)

		rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPost, "/bookings", s.requestBody(), "bearer-token", idemHeader)
		s.Equal(http.StatusCreated, rec.Code)

		var resp resdto.BookingResponse
		_ = httptest.DecodeResponseBody(s.T(), rec.Body, &resp)
		s.Equal(view.ID, resp.ID)
		s.Equal(int64(30000), resp.TotalCents)
	})

	s.Run("missing Idempotency-Key returns 400", func() {
		res := s.perform(s.requestBody(), nil)
		s.Equal(http.StatusBadRequest, res.Code)
	})

	s.Run("missing auth returns 401", func() {
		rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPost, "/bookings", s.requestBody(), "", idemHeader)
		s.Equal(http.StatusUnauthorized, rec.Code)
	})

	s.Run("malformed body returns 400", func() {
		res := s.perform(testutil.DtoMap(s.T(), s.requestBody(), testutil.Field("listing_id", "not-a-uuid")), idemHeader)
		s.Equal(http.StatusBadRequest, res.Code)
	})

	errorCases := []struct {
		name       string
		err        error
		expectCode int
	}{
		{name: "listing not found maps to 404", err: commands.ErrListingNotFound, expectCode: http.StatusNotFound},
		{name: "self booking maps to 403", err: commands.ErrSelfBooking, expectCode: http.StatusForbidden},
		{name: "invalid dates map to 400", err: commands.ErrInvalidDateRange, expectCode: http.StatusBadRequest},
		{name: "unpayable host maps to 400", err: commands.ErrHostNotPayable, expectCode: http.StatusBadRequest},
		{name: "date conflict maps to 409", err: commands.ErrDatesConflict, expectCode: http.StatusConflict},
		{name: "payment failure maps to 402", err: commands.ErrPaymentFailed, expectCode: http.StatusPaymentRequired},
		{name: "partial failure maps to 500", err: commands.ErrPartialFailure, expectCode: http.StatusInternalServerError},
	}

	for _, tc := range errorCases {
		s.Run(tc.name, func() {
			s.mockCommands.EXPECT().
				CreateBooking(gomock.Any(), gomock.Any(), s.userID, "idem-key").
				Return(nil, tc.err)

			res := s.perform(s.requestBody(), idemHeader)
			s.Equal(tc.expectCode, res.Code)
		})
	}
}

func (s *BookingHandlerTestSuite) TestGetBooking() {
	s.Run("success: returns 200", func() {
		id := uuid.New()
		s.mockQueries.EXPECT().GetByID(gomock.Any(), id).
			Return(&queries.BookingView{ID: id, TotalCents: 12424}, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/bookings/"+id.String(), nil, "bearer-token")
		s.Equal(http.StatusOK, rec.Code)
	})

	s.Run("unknown booking returns 404", func() {
		id := uuid.New()
		s.mockQueries.EXPECT().GetByID(gomock.Any(), id).
			Return(nil, queries.ErrBookingNotFound)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/bookings/"+id.String(), nil, "bearer-token")
		s.Equal(http.StatusNotFound, rec.Code)
	})

	s.Run("invalid id returns 400", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/bookings/not-a-uuid", nil, "bearer-token")
		s.Equal(http.StatusBadRequest, rec.Code)
	})
}
