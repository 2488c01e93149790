//go:build e2e

package listing_test

import (
	"net/http"
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
	listingsURL = "/api/listings"
	bookingsURL = "/api/bookings"
)

type listingSuite struct {
	e2e.SharedSuite

	hostID   uuid.UUID
	tenantID uuid.UUID
}

func TestListingSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(listingSuite))
}

func (s *listingSuite) SetupSubTest() {
	s.SharedSuite.SetupSubTest()

	wallet := "acct_test_host"
	s.hostID = dbtest.CreateTestUser(s.T(), s.DB, "Host", "host@example.com", &wallet)
	s.tenantID = dbtest.CreateTestUser(s.T(), s.DB, "Tenant", "tenant@example.com", nil)
}

func (s *listingSuite) login(email string) string {
	t := s.T()
	w := httptest.PerformRequest(t, s.Router, http.MethodPost, loginURL, request.LoginRequest{
		Email:    email,
		Password: dbtest.TestPassword,
	}, "")
	require.Equal(t, http.StatusOK, w.Code, "login failed for %s", email)

	var resp response.LoginResponse
	_ = httptest.DecodeResponseBody(t, w.Body, &resp)
	return resp.AccessToken
}

func (s *listingSuite) seedTorontoListings() (uuid.UUID, uuid.UUID) {
	cheap := dbtest.CreateTestListing(s.T(), s.DB, s.hostID, dbtest.TestListing{
		Title:      "Budget studio",
		PriceCents: 5000,
		Country:    "Canada",
		AdminArea:  "Ontario",
		City:       "Toronto",
	})
	pricey := dbtest.CreateTestListing(s.T(), s.DB, s.hostID, dbtest.TestListing{
		Title:      "Penthouse suite",
		PriceCents: 90000,
		Country:    "Canada",
		AdminArea:  "Ontario",
		City:       "Toronto",
	})
	return cheap, pricey
}

func (s *listingSuite) TestHostListing() {
	s.Run("host publishes a new listing", func() {
		t := s.T()
		token := s.login("host@example.com")

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, listingsURL, request.HostListingRequest{
			Title:       "Garden flat",
			Description: "Ground floor flat with a shared garden.",
			Type:        "Apartment",
			PriceCents:  12000,
			MaxGuests:   2,
			Address:     "55 Queen Street, Toronto, ON",
		}, token)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		var created response.HostListingResponse
		_ = httptest.DecodeResponseBody(t, w.Body, &created)
		require.NotEqual(t, uuid.Nil, created.ID)

		get := httptest.PerformRequest(t, s.Router, http.MethodGet, listingsURL+"/"+created.ID.String(), nil, token)
		require.Equal(t, http.StatusOK, get.Code)

		var detail response.ListingResponse
		_ = httptest.DecodeResponseBody(t, get.Body, &detail)
		require.Equal(t, "Garden flat", detail.Title)
		require.Equal(t, "apartment", detail.Type)
		require.Equal(t, "Toronto", detail.City)
		require.Equal(t, s.hostID, detail.HostID)
	})

	s.Run("unresolvable address is rejected", func() {
		token := s.login("host@example.com")

		w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, listingsURL, request.HostListingRequest{
			Title:       "Mystery cabin",
			Description: "Somewhere off the map.",
			Type:        "house",
			PriceCents:  8000,
			MaxGuests:   4,
			Address:     "1 Nowhere Lane",
		}, token)
		require.Equal(s.T(), http.StatusBadRequest, w.Code)
	})

	s.Run("anonymous host attempt is rejected", func() {
		w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, listingsURL, request.HostListingRequest{
			Title:       "Garden flat",
			Description: "Ground floor flat.",
			Type:        "apartment",
			PriceCents:  12000,
			MaxGuests:   2,
			Address:     "55 Queen Street, Toronto, ON",
		}, "")
		require.Equal(s.T(), http.StatusUnauthorized, w.Code)
	})
}

func (s *listingSuite) TestSearchListings() {
	s.Run("location search resolves the region", func() {
		t := s.T()
		s.seedTorontoListings()

		w := httptest.PerformRequest(t, s.Router, http.MethodGet,
			listingsURL+"?location=toronto&filter=price_low_to_high", nil, "")
		require.Equal(t, http.StatusOK, w.Code)

		var resp response.SearchListingsResponse
		_ = httptest.DecodeResponseBody(t, w.Body, &resp)
		require.NotNil(t, resp.Region)
		require.Equal(t, "Toronto, Ontario, Canada", *resp.Region)
		require.Equal(t, int64(2), resp.Total)
		require.Len(t, resp.Result, 2)
		require.Equal(t, "Budget studio", resp.Result[0].Title, "cheapest listing should sort first")
	})

	s.Run("high to low reverses the ordering", func() {
		t := s.T()
		s.seedTorontoListings()

		w := httptest.PerformRequest(t, s.Router, http.MethodGet,
			listingsURL+"?filter=price_high_to_low", nil, "")
		require.Equal(t, http.StatusOK, w.Code)

		var resp response.SearchListingsResponse
		_ = httptest.DecodeResponseBody(t, w.Body, &resp)
		require.Nil(t, resp.Region)
		require.Equal(t, "Penthouse suite", resp.Result[0].Title)
	})

	s.Run("unknown location returns not found", func() {
		w := httptest.PerformRequest(s.T(), s.Router, http.MethodGet,
			listingsURL+"?location=atlantis", nil, "")
		require.Equal(s.T(), http.StatusNotFound, w.Code)
	})
}

func (s *listingSuite) TestListingVisibility() {
	s.Run("availability index is disclosed to the host only", func() {
		t := s.T()
		listingID, _ := s.seedTorontoListings()

		tenantToken := s.login("tenant@example.com")
		checkIn := time.Now().UTC().AddDate(0, 2, 0).Truncate(24 * time.Hour)
		w := httptest.PerformRequestWithHeaders(t, s.Router, http.MethodPost, bookingsURL,
			request.CreateBookingRequest{
				ListingID: listingID,
				Source:    "tok_visa",
				CheckIn:   checkIn,
				CheckOut:  checkIn.AddDate(0, 0, 1),
			}, tenantToken, map[string]string{"Idempotency-Key": "e2e-vis-1"})
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		hostToken := s.login("host@example.com")
		hostView := httptest.PerformRequest(t, s.Router, http.MethodGet, listingsURL+"/"+listingID.String(), nil, hostToken)
		require.Equal(t, http.StatusOK, hostView.Code)

		var asHost response.ListingResponse
		_ = httptest.DecodeResponseBody(t, hostView.Body, &asHost)
		require.NotEmpty(t, asHost.BookingsIndex, "host should see the booked calendar")

		publicView := httptest.PerformRequest(t, s.Router, http.MethodGet, listingsURL+"/"+listingID.String(), nil, "")
		require.Equal(t, http.StatusOK, publicView.Code)

		var asGuest response.ListingResponse
		_ = httptest.DecodeResponseBody(t, publicView.Body, &asGuest)
		require.Empty(t, asGuest.BookingsIndex)
	})

	s.Run("booking list is restricted to the host", func() {
		t := s.T()
		listingID, _ := s.seedTorontoListings()

		hostToken := s.login("host@example.com")
		w := httptest.PerformRequest(t, s.Router, http.MethodGet, listingsURL+"/"+listingID.String()+"/bookings", nil, hostToken)
		require.Equal(t, http.StatusOK, w.Code)

		tenantToken := s.login("tenant@example.com")
		forbidden := httptest.PerformRequest(t, s.Router, http.MethodGet, listingsURL+"/"+listingID.String()+"/bookings", nil, tenantToken)
		require.Equal(t, http.StatusForbidden, forbidden.Code)
	})
}
