package request

import (
	"time"

	"homestay/internal/usecase/commands"

	"github.com/google/uuid"
)

type CreateBookingRequest struct {
	ListingID uuid.UUID `json:"listing_id" binding:"required"`
	Source    string    `json:"source" binding:"required"`
	CheckIn   time.Time `json:"check_in" binding:"required"`
	CheckOut  time.Time `json:"check_out" binding:"required"`
}

func (r CreateBookingRequest) ToParams() commands.CreateBookingParams {
	return commands.CreateBookingParams{
		ListingID: r.ListingID,
		Source:    r.Source,
		CheckIn:   r.CheckIn,
		CheckOut:  r.CheckOut,
	}
}
