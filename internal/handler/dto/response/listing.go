package response

import (
	"encoding/json"
	"time"

	"homestay/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type ListingResponse struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Type        string    `json:"type"`
	PriceCents  int64     `json:"priceCents"`
	MaxGuests   int32     `json:"maxGuests"`
	Address     string    `json:"address"`
	Country     string    `json:"country"`
	AdminArea   string    `json:"adminArea"`
	City        string    `json:"city"`
	HostID      uuid.UUID `json:"hostId"`
	// BookingsIndex is only disclosed to the listing's host.
	BookingsIndex json.RawMessage `json:"bookingsIndex,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
}

type ListingListResponse struct {
	ID         uuid.UUID `json:"id"`
	Title      string    `json:"title"`
	Type       string    `json:"type"`
	PriceCents int64     `json:"priceCents"`
	MaxGuests  int32     `json:"maxGuests"`
	City       string    `json:"city"`
	Country    string    `json:"country"`
}

type SearchListingsResponse struct {
	Region *string                `json:"region,omitempty"`
	Total  int64                  `json:"total"`
	Result []*ListingListResponse `json:"result"`
}

type HostListingResponse struct {
	ID uuid.UUID `json:"id"`
}

func FromListingDetail(lm *queries.ListingDetail) *ListingResponse {
	resp := &ListingResponse{}
	_ = copier.Copy(resp, &lm.ListingView)
	if !lm.ViewerIsHost {
		resp.BookingsIndex = nil
	}
	return resp
}

func FromListingListItem(lm *queries.ListingListItem) *ListingListResponse {
	resp := &ListingListResponse{}
	_ = copier.Copy(resp, lm)
	return resp
}

func FromListingsResult(rm *queries.ListingsResult) *SearchListingsResponse {
	result := make([]*ListingListResponse, len(rm.Result))
	for i := range rm.Result {
		result[i] = FromListingListItem(&rm.Result[i])
	}
	return &SearchListingsResponse{
		Region: rm.Region,
		Total:  rm.Total,
		Result: result,
	}
}

func FromListingPage(page *queries.Page[queries.ListingListItem]) *SearchListingsResponse {
	result := make([]*ListingListResponse, len(page.Result))
	for i := range page.Result {
		result[i] = FromListingListItem(&page.Result[i])
	}
	return &SearchListingsResponse{Total: page.Total, Result: result}
}
