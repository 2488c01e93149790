//go:build e2e

package booking_test

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"sync"
	"testing"
	"time"

	"homestay/internal/handler/dto/request"
	"homestay/internal/handler/dto/response"
	"homestay/tests/common/dbtest"
	"homestay/tests/common/httptest"
	"homestay/tests/e2e"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const (
	loginURL    = "/api/auth/login"
	bookingsURL = "/api/bookings"
)

type bookingSuite struct {
	e2e.SharedSuite

	hostID     uuid.UUID
	tenantID   uuid.UUID
	poorHostID uuid.UUID
	listingID  uuid.UUID
	unpayable  uuid.UUID
}

func TestBookingSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(bookingSuite))
}

func (s *bookingSuite) SetupSubTest() {
	s.SharedSuite.SetupSubTest()

	wallet := "acct_test_host"
	s.hostID = dbtest.CreateTestUser(s.T(), s.DB, "Host", "host@example.com", &wallet)
	s.tenantID = dbtest.CreateTestUser(s.T(), s.DB, "Tenant", "tenant@example.com", nil)
	s.poorHostID = dbtest.CreateTestUser(s.T(), s.DB, "Walletless", "walletless@example.com", nil)

	s.listingID = dbtest.CreateTestListing(s.T(), s.DB, s.hostID, dbtest.TestListing{
		Title:      "Lakefront cabin",
		PriceCents: 10000,
		Country:    "Canada",
		AdminArea:  "Ontario",
		City:       "Toronto",
	})
	s.unpayable = dbtest.CreateTestListing(s.T(), s.DB, s.poorHostID, dbtest.TestListing{
		Title:      "No payout cabin",
		PriceCents: 5000,
		Country:    "Canada",
		AdminArea:  "Ontario",
		City:       "Toronto",
	})
}

func (s *bookingSuite) login(email string) string {
	t := s.T()
	w := httptest.PerformRequest(t, s.Router, http.MethodPost, loginURL, request.LoginRequest{
		Email:    email,
		Password: dbtest.TestPassword,
	}, "")
	require.Equal(t, http.StatusOK, w.Code, "login failed for %s", email)

	var resp response.LoginResponse
	_ = httptest.DecodeResponseBody(t, w.Body, &resp)
	require.NotEmpty(t, resp.AccessToken)
	return resp.AccessToken
}

// stayDates returns a three-day stay far enough in the future to pass the
// past-check-in validation regardless of when the suite runs.
func stayDates() (time.Time, time.Time) {
	base := time.Now().UTC().AddDate(0, 2, 0)
	checkIn := time.Date(base.Year(), base.Month(), 10, 0, 0, 0, 0, time.UTC)
	return checkIn, checkIn.AddDate(0, 0, 2)
}

func (s *bookingSuite) createBooking(token string, listingID uuid.UUID, checkIn, checkOut time.Time, idemKey string) *response.BookingResponse {
	t := s.T()
	w := httptest.PerformRequestWithHeaders(t, s.Router, http.MethodPost, bookingsURL,
		request.CreateBookingRequest{
			ListingID: listingID,
			Source:    "tok_visa",
			CheckIn:   checkIn,
			CheckOut:  checkOut,
		}, token, map[string]string{"Idempotency-Key": idemKey})
	require.Equal(t, http.StatusCreated, w.Code, "booking creation failed: %s", w.Body.String())

	var resp response.BookingResponse
	_ = httptest.DecodeResponseBody(t, w.Body, &resp)
	return &resp
}

func (s *bookingSuite) postBooking(token string, body any, idemKey string) int {
	headers := map[string]string{}
	if idemKey != "" {
		headers["Idempotency-Key"] = idemKey
	}
	w := httptest.PerformRequestWithHeaders(s.T(), s.Router, http.MethodPost, bookingsURL, body, token, headers)
	return w.Code
}

func (s *bookingSuite) TestCreateBooking() {
	s.Run("booking persists, charges the card, and accrues host income", func() {
		t := s.T()
		token := s.login("tenant@example.com")
		checkIn, checkOut := stayDates()

		resp := s.createBooking(token, s.listingID, checkIn, checkOut, "e2e-key-1")

		require.Equal(t, s.listingID, resp.ListingID)
		require.Equal(t, s.tenantID, resp.TenantID)
		require.Equal(t, int64(30000), resp.TotalCents)

		ctx := context.Background()

		var count int
		err := s.DB.QueryRow(ctx, "SELECT count(*) FROM bookings WHERE listing_id = $1", s.listingID).Scan(&count)
		require.NoError(t, err)
		require.Equal(t, 1, count)

		var income int64
		err = s.DB.QueryRow(ctx, "SELECT income_cents FROM users WHERE id = $1", s.hostID).Scan(&income)
		require.NoError(t, err)
		require.Equal(t, int64(30000), income)

		var rawIndex []byte
		var version int64
		err = s.DB.QueryRow(ctx,
			"SELECT bookings_index, index_version FROM listings WHERE id = $1", s.listingID).
			Scan(&rawIndex, &version)
		require.NoError(t, err)
		require.Equal(t, int64(1), version)

		var index map[string]map[string]map[string]bool
		require.NoError(t, json.Unmarshal(rawIndex, &index))
		booked := 0
		for _, months := range index {
			for _, days := range months {
				booked += len(days)
			}
		}
		require.Equal(t, 3, booked, "three calendar days should be marked")

		captures := s.Payments.Captures()
		require.Len(t, captures, 1)
		require.Equal(t, int64(30000), captures[0].AmountCents)
		require.Equal(t, int64(1500), captures[0].FeeCents)
		require.Equal(t, "acct_test_host", captures[0].DestinationAccount)
		require.Equal(t, "e2e-key-1", captures[0].IdempotencyKey)
	})

	s.Run("overlapping stay is rejected before charging", func() {
		t := s.T()
		token := s.login("tenant@example.com")
		checkIn, checkOut := stayDates()
		s.createBooking(token, s.listingID, checkIn, checkOut, "e2e-key-1")

		code := s.postBooking(token, request.CreateBookingRequest{
			ListingID: s.listingID,
			Source:    "tok_visa",
			CheckIn:   checkIn.AddDate(0, 0, 1),
			CheckOut:  checkOut.AddDate(0, 0, 3),
		}, "e2e-key-2")

		require.Equal(t, http.StatusConflict, code)
		require.Len(t, s.Payments.Captures(), 1, "conflicting booking must not reach the gateway")
		require.Empty(t, s.Payments.Refunds())
	})

	s.Run("simultaneous overlapping stays admit exactly one booking", func() {
		t := s.T()
		token := s.login("tenant@example.com")
		checkIn, checkOut := stayDates()

		requests := []request.CreateBookingRequest{
			{ListingID: s.listingID, Source: "tok_visa", CheckIn: checkIn, CheckOut: checkOut},
			{ListingID: s.listingID, Source: "tok_visa", CheckIn: checkIn.AddDate(0, 0, 1), CheckOut: checkOut.AddDate(0, 0, 2)},
		}

		codes := make(chan int, len(requests))
		var wg sync.WaitGroup
		for i, req := range requests {
			wg.Add(1)
			go func(req request.CreateBookingRequest, key string) {
				defer wg.Done()
				w := httptest.PerformRequestWithHeaders(t, s.Router, http.MethodPost, bookingsURL,
					req, token, map[string]string{"Idempotency-Key": key})
				codes <- w.Code
			}(req, "e2e-race-"+strconv.Itoa(i+1))
		}
		wg.Wait()
		close(codes)

		created, conflicted := 0, 0
		for code := range codes {
			switch code {
			case http.StatusCreated:
				created++
			case http.StatusConflict:
				conflicted++
			default:
				t.Fatalf("unexpected status %d", code)
			}
		}
		require.Equal(t, 1, created, "exactly one of the racing stays may win")
		require.Equal(t, 1, conflicted)

		var count int
		err := s.DB.QueryRow(context.Background(),
			"SELECT count(*) FROM bookings WHERE listing_id = $1", s.listingID).Scan(&count)
		require.NoError(t, err)
		require.Equal(t, 1, count)

		// The loser is rejected before charging or is refunded after the
		// calendar re-check, so exactly one capture settles either way.
		settled := len(s.Payments.Captures()) - len(s.Payments.Refunds())
		require.Equal(t, 1, settled)
	})

	s.Run("adjacent stay on the next day succeeds", func() {
		token := s.login("tenant@example.com")
		checkIn, checkOut := stayDates()
		s.createBooking(token, s.listingID, checkIn, checkOut, "e2e-key-1")
		s.createBooking(token, s.listingID, checkOut.AddDate(0, 0, 1), checkOut.AddDate(0, 0, 2), "e2e-key-2")

		var version int64
		err := s.DB.QueryRow(context.Background(),
			"SELECT index_version FROM listings WHERE id = $1", s.listingID).Scan(&version)
		require.NoError(s.T(), err)
		require.Equal(s.T(), int64(2), version)
	})

	s.Run("host cannot book own listing", func() {
		token := s.login("host@example.com")
		checkIn, checkOut := stayDates()

		code := s.postBooking(token, request.CreateBookingRequest{
			ListingID: s.listingID,
			Source:    "tok_visa",
			CheckIn:   checkIn,
			CheckOut:  checkOut,
		}, "e2e-key-1")

		require.Equal(s.T(), http.StatusForbidden, code)
	})

	s.Run("host without a wallet cannot be paid", func() {
		token := s.login("tenant@example.com")
		checkIn, checkOut := stayDates()

		code := s.postBooking(token, request.CreateBookingRequest{
			ListingID: s.unpayable,
			Source:    "tok_visa",
			CheckIn:   checkIn,
			CheckOut:  checkOut,
		}, "e2e-key-1")

		require.Equal(s.T(), http.StatusBadRequest, code)
		require.Empty(s.T(), s.Payments.Captures())
	})

	s.Run("declined card leaves no booking behind", func() {
		t := s.T()
		token := s.login("tenant@example.com")
		checkIn, checkOut := stayDates()
		s.Payments.FailNextCapture()

		code := s.postBooking(token, request.CreateBookingRequest{
			ListingID: s.listingID,
			Source:    "tok_visa",
			CheckIn:   checkIn,
			CheckOut:  checkOut,
		}, "e2e-key-1")

		require.Equal(t, http.StatusPaymentRequired, code)

		var count int
		err := s.DB.QueryRow(context.Background(),
			"SELECT count(*) FROM bookings WHERE listing_id = $1", s.listingID).Scan(&count)
		require.NoError(t, err)
		require.Zero(t, count)
	})

	s.Run("unknown listing returns not found", func() {
		token := s.login("tenant@example.com")
		checkIn, checkOut := stayDates()

		code := s.postBooking(token, request.CreateBookingRequest{
			ListingID: uuid.New(),
			Source:    "tok_visa",
			CheckIn:   checkIn,
			CheckOut:  checkOut,
		}, "e2e-key-1")

		require.Equal(s.T(), http.StatusNotFound, code)
	})

	s.Run("missing idempotency key is rejected", func() {
		token := s.login("tenant@example.com")
		checkIn, checkOut := stayDates()

		code := s.postBooking(token, request.CreateBookingRequest{
			ListingID: s.listingID,
			Source:    "tok_visa",
			CheckIn:   checkIn,
			CheckOut:  checkOut,
		}, "")

		require.Equal(s.T(), http.StatusBadRequest, code)
	})

	s.Run("unauthenticated request is rejected", func() {
		checkIn, checkOut := stayDates()

		code := s.postBooking("", request.CreateBookingRequest{
			ListingID: s.listingID,
			Source:    "tok_visa",
			CheckIn:   checkIn,
			CheckOut:  checkOut,
		}, "e2e-key-1")

		require.Equal(s.T(), http.StatusUnauthorized, code)
	})
}

func (s *bookingSuite) TestGetBooking() {
	s.Run("created booking is readable by id", func() {
		t := s.T()
		token := s.login("tenant@example.com")
		checkIn, checkOut := stayDates()
		created := s.createBooking(token, s.listingID, checkIn, checkOut, "e2e-key-1")

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, bookingsURL+"/"+created.ID.String(), nil, token)
		require.Equal(t, http.StatusOK, w.Code)

		var resp response.BookingResponse
		_ = httptest.DecodeResponseBody(t, w.Body, &resp)
		require.Equal(t, created.ID, resp.ID)
		require.Equal(t, int64(30000), resp.TotalCents)
	})

	s.Run("unknown booking returns not found", func() {
		token := s.login("tenant@example.com")
		w := httptest.PerformRequest(s.T(), s.Router, http.MethodGet, bookingsURL+"/"+uuid.NewString(), nil, token)
		require.Equal(s.T(), http.StatusNotFound, w.Code)
	})
}
