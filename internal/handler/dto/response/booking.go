package response

import (
	"time"

	"homestay/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type BookingResponse struct {
	ID         uuid.UUID `json:"id"`
	ListingID  uuid.UUID `json:"listingId"`
	TenantID   uuid.UUID `json:"tenantId"`
	CheckIn    time.Time `json:"checkIn"`
	CheckOut   time.Time `json:"checkOut"`
	TotalCents int64     `json:"totalCents"`
	CreatedAt  time.Time `json:"createdAt"`
}

type BookingPageResponse struct {
	Total  int64              `json:"total"`
	Result []*BookingResponse `json:"result"`
}

func FromBookingView(bm *queries.BookingView) *BookingResponse {
	resp := &BookingResponse{}
	_ = copier.Copy(resp, bm)
	return resp
}

func FromBookingPage(page *queries.Page[queries.BookingView]) *BookingPageResponse {
	result := make([]*BookingResponse, len(page.Result))
	for i := range page.Result {
		result[i] = FromBookingView(&page.Result[i])
	}
	return &BookingPageResponse{Total: page.Total, Result: result}
}
