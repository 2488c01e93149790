package api

import (
	"errors"
	"net/http"

	reqdto "homestay/internal/handler/dto/request"
	resdto "homestay/internal/handler/dto/response"
	"homestay/internal/handler/middleware"
	"homestay/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type UserHandler struct {
	userQueries queries.UserQueries
}

func NewUserHandler(userQueries queries.UserQueries) *UserHandler {
	return &UserHandler{userQueries: userQueries}
}

// @Summary Get user profile
// @Description Get a user profile; income is included only for the profile's owner
// @Tags users
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} resdto.UserResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /users/{id} [get]
func (h *UserHandler) GetUser(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid user ID format",
		})
		return
	}

	viewerID := uuid.Nil
	if viewer := middleware.ViewerID(c); viewer != nil {
		viewerID = *viewer
	}

	detail, err := h.userQueries.GetByID(c.Request.Context(), id, viewerID)
	if err != nil {
		switch {
		case errors.Is(err, queries.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "User not found",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromUserDetail(detail))
}

// @Summary Get user bookings
// @Description List a user's bookings; restricted to the user themselves
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Param page query int false "1-based page number"
// @Param limit query int false "Page size"
// @Success 200 {object} resdto.BookingPageResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /users/{id}/bookings [get]
func (h *UserHandler) GetUserBookings(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid user ID format",
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

	page, err := h.userQueries.ListBookings(c.Request.Context(), userID, viewerID, req.Page, req.Limit)
	if err != nil {
		switch {
		case errors.Is(err, queries.ErrNotOwner):
			c.JSON(http.StatusForbidden, gin.H{
				"error": "Bookings are only visible to their owner",
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

// @Summary Get user listings
// @Description List a user's listings; public to any viewer
// @Tags users
// @Produce json
// @Param id path string true "User ID"
// @Param page query int false "1-based page number"
// @Param limit query int false "Page size"
// @Success 200 {object} resdto.SearchListingsResponse
// @Failure 400 {object} map[string]string
// @Router /users/{id}/listings [get]
func (h *UserHandler) GetUserListings(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid user ID format",
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

	page, err := h.userQueries.ListListings(c.Request.Context(), userID, req.Page, req.Limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, resdto.FromListingPage(page))
}
