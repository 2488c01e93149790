package api

import (
	"errors"
	"net/http"

	reqdto "homestay/internal/handler/dto/request"
	resdto "homestay/internal/handler/dto/response"
	"homestay/internal/handler/middleware"
	"homestay/internal/usecase/commands"
	"homestay/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type BookingHandler struct {
	bookingCommands commands.BookingCommands
	bookingQueries  queries.BookingQueries
}

func NewBookingHandler(bookingCommands commands.BookingCommands, bookingQueries queries.BookingQueries) *BookingHandler {
	return &BookingHandler{
		bookingCommands: bookingCommands,
		bookingQueries:  bookingQueries,
	}
}

// @Summary Create booking
// @Description Book a listing for an inclusive date range, charging the tenant's payment source
// @Tags bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param Idempotency-Key header string true "Idempotency key for duplicate prevention"
// @Param request body reqdto.CreateBookingRequest true "Booking request"
// @Success 201 {object} resdto.BookingResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 402 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /bookings [post]
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	tenantID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "User not authenticated",
		})
		return
	}

	idempotencyKey := c.GetHeader("Idempotency-Key")
	if idempotencyKey == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Idempotency-Key header is required",
		})
		return
	}

	var req reqdto.CreateBookingRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	bookingView, err := h.bookingCommands.CreateBooking(c.Request.Context(), req.ToParams(), tenantID, idempotencyKey)
	if err != nil {
		h.mapCreateBookingError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resdto.FromBookingView(bookingView))
}

func (h *BookingHandler) mapCreateBookingError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, commands.ErrNotAuthenticated):
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "User not authenticated",
		})
	case errors.Is(err, commands.ErrListingNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Listing not found",
		})
	case errors.Is(err, commands.ErrSelfBooking):
		c.JSON(http.StatusForbidden, gin.H{
			"error": "Hosts cannot book their own listing",
		})
	case errors.Is(err, commands.ErrInvalidDateRange):
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid date range",
		})
	case errors.Is(err, commands.ErrHostNotPayable):
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Host has not connected a payout account",
		})
	case errors.Is(err, commands.ErrDatesConflict):
		c.JSON(http.StatusConflict, gin.H{
			"error": "Requested dates are no longer available",
		})
	case errors.Is(err, commands.ErrPaymentFailed):
		c.JSON(http.StatusPaymentRequired, gin.H{
			"error": "Payment could not be processed",
		})
	case errors.Is(err, commands.ErrPartialFailure):
		// The charge went through but the booking did not; the client must
		// not blindly retry.
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Booking could not be completed; contact support before retrying",
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
	}
}

// @Summary Get booking
// @Description Get booking by ID
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 200 {object} resdto.BookingResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /bookings/{id} [get]
func (h *BookingHandler) GetBooking(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid booking ID format",
		})
		return
	}

	bookingView, err := h.bookingQueries.GetByID(c.Request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, queries.ErrBookingNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Booking not found",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromBookingView(bookingView))
}
