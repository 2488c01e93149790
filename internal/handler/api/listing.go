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

type ListingHandler struct {
	listingCommands commands.ListingCommands
	listingQueries  queries.ListingQueries
}

func NewListingHandler(listingCommands commands.ListingCommands, listingQueries queries.ListingQueries) *ListingHandler {
	return &ListingHandler{
		listingCommands: listingCommands,
		listingQueries:  listingQueries,
	}
}

// @Summary Host a listing
// @Description Publish a new listing owned by the current user
// @Tags listings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.HostListingRequest true "Listing request"
// @Success 201 {object} resdto.HostListingResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /listings [post]
func (h *ListingHandler) HostListing(c *gin.Context) {
	hostID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "User not authenticated",
		})
		return
	}

	var req reqdto.HostListingRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	id, err := h.listingCommands.HostListing(c.Request.Context(), req.ToParams(), hostID)
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrListingValidation):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Listing data is invalid",
			})
		case errors.Is(err, commands.ErrInvalidAddress):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Address could not be resolved",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusCreated, resdto.HostListingResponse{ID: id})
}

// @Summary Get listing
// @Description Get listing by ID; availability details are included for the listing's host
// @Tags listings
// @Produce json
// @Param id path string true "Listing ID"
// @Success 200 {object} resdto.ListingResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /listings/{id} [get]
func (h *ListingHandler) GetListing(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid listing ID format",
		})
		return
	}

	viewerID := uuid.Nil
	if viewer := middleware.ViewerID(c); viewer != nil {
		viewerID = *viewer
	}

	detail, err := h.listingQueries.GetByID(c.Request.Context(), id, viewerID)
	if err != nil {
		switch {
		case errors.Is(err, queries.ErrListingNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Listing not found",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromListingDetail(detail))
}

// @Summary Search listings
// @Description List listings, optionally narrowed to a free-text location and ordered by price
// @Tags listings
// @Produce json
// @Param location query string false "Free-text location"
// @Param filter query string false "PRICE_LOW_TO_HIGH or PRICE_HIGH_TO_LOW"
// @Param page query int false "1-based page number"
// @Param limit query int false "Page size"
// @Success 200 {object} resdto.SearchListingsResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /listings [get]
func (h *ListingHandler) SearchListings(c *gin.Context) {
	var req reqdto.SearchListingsRequest
	if bindErr := c.ShouldBindQuery(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid query parameters",
		})
		return
	}

	result, err := h.listingQueries.Search(c.Request.Context(), req.ToParams())
	if err != nil {
		switch {
		case errors.Is(err, queries.ErrRegionNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Location could not be resolved",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromListingsResult(result))
}

// @Summary Get listing bookings
// @Description List bookings against a listing; restricted to the listing's host
// @Tags listings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Listing ID"
// @Param page query int false "1-based page number"
// @Param limit query int false "Page size"
// @Success 200 {object} resdto.BookingPageResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /listings/{id}/bookings [get]
func (h *ListingHandler) GetListingBookings(c *gin.Context) {
	listingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid listing ID format",
		})
		return
	}

	viewerID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "User not authenticated",
		})
		return
	}

	var req reqdto.PageRequest
	if bindErr := c.ShouldBindQuery(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid query parameters",
		})
		return
	}

	page, err := h.listingQueries.ListBookings(c.Request.Context(), listingID, viewerID, req.Page, req.Limit)
	if err != nil {
		switch {
		case errors.Is(err, queries.ErrListingNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Listing not found",
			})
		case errors.Is(err, queries.ErrNotListingHost):
			c.JSON(http.StatusForbidden, gin.H{
				"error": "Only the listing's host can view its bookings",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromBookingPage(page))
}
