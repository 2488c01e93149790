package request

import (
	"strings"

	"homestay/internal/usecase/commands"
	"homestay/internal/usecase/queries"
)

type HostListingRequest struct {
	Title       string `json:"title" binding:"required,max=100"`
	Description string `json:"description" binding:"required,max=5000"`
	Type        string `json:"type" binding:"required"`
	PriceCents  int64  `json:"price_cents" binding:"required,gt=0"`
	MaxGuests   int    `json:"max_guests" binding:"required,gt=0"`
	Address     string `json:"address" binding:"required"`
}

func (r HostListingRequest) ToParams() commands.HostListingParams {
	return commands.HostListingParams{
		Title:       strings.TrimSpace(r.Title),
		Description: strings.TrimSpace(r.Description),
		Type:        strings.ToLower(strings.TrimSpace(r.Type)),
		PriceCents:  r.PriceCents,
		MaxGuests:   r.MaxGuests,
		Address:     strings.TrimSpace(r.Address),
	}
}

type SearchListingsRequest struct {
	Location string `form:"location"`
	Filter   string `form:"filter"`
	Page     int    `form:"page,default=1"`
	Limit    int    `form:"limit,default=10"`
}

func (r SearchListingsRequest) ToParams() queries.SearchListingsParams {
	return queries.SearchListingsParams{
		Location: strings.TrimSpace(r.Location),
		Filter:   strings.ToUpper(strings.TrimSpace(r.Filter)),
		Page:     r.Page,
		Limit:    r.Limit,
	}
}

type PageRequest struct {
	Page  int `form:"page,default=1"`
	Limit int `form:"limit,default=10"`
}
