package queries

import (
	"context"
	"strings"

	"homestay/internal/infra"
	"homestay/internal/pkg/errs"
	"homestay/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrListingNotFound = errs.New("listing not found")
	ErrRegionNotFound  = errs.New("requested region not found")
	ErrNotListingHost  = errs.New("viewer is not the listing host")
)

const (
	FilterPriceLowToHigh = "PRICE_LOW_TO_HIGH"
	FilterPriceHighToLow = "PRICE_HIGH_TO_LOW"
)

type SearchListingsParams struct {
	Location string
	Filter   string
	Page     int
	Limit    int
}

// SearchFilter is the resolved, store-level form of SearchListingsParams.
type SearchFilter struct {
	Country   string
	AdminArea string
	City      string
	Filter    string
	Limit     int32
	Offset    int32
}

type ListingQueries interface {
	// GetByID resolves the viewer once and stamps ViewerIsHost on the
	// returned detail; viewerID may be uuid.Nil for anonymous requests.
	GetByID(ctx context.Context, id uuid.UUID, viewerID uuid.UUID) (*ListingDetail, error)
	Search(ctx context.Context, params SearchListingsParams) (*ListingsResult, error)
	// ListBookings exposes the private booking list; only the host may
	// read it.
	ListBookings(ctx context.Context, listingID, viewerID uuid.UUID, page, limit int) (*Page[BookingView], error)
}

type ListingReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*ListingView, error)
	Search(ctx context.Context, filter SearchFilter) ([]ListingListItem, int64, error)
	FindBookings(ctx context.Context, listingID uuid.UUID, limit, offset int32) ([]BookingView, int64, error)
}

type listingQueriesImpl struct {
	store    ListingReadStore
	geocoder shared.Geocoder
}

func NewListingQueries(store ListingReadStore, geocoder shared.Geocoder) ListingQueries {
	return &listingQueriesImpl{store: store, geocoder: geocoder}
}

func (q *listingQueriesImpl) GetByID(ctx context.Context, id uuid.UUID, viewerID uuid.UUID) (*ListingDetail, error) {
	view, err := q.store.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrListingNotFound
		}
		return nil, err
	}

	return &ListingDetail{
		ListingView:  *view,
		ViewerIsHost: viewerID != uuid.Nil && viewerID == view.HostID,
	}, nil
}

func (q *listingQueriesImpl) Search(ctx context.Context, params SearchListingsParams) (*ListingsResult, error) {
	offset, limit := NormalizePage(params.Page, params.Limit)
	filter := SearchFilter{Filter: params.Filter, Limit: limit, Offset: offset}

	result := &ListingsResult{}
	if params.Location != "" {
		region, err := q.resolveRegion(ctx, params.Location, &filter)
		if err != nil {
			return nil, err
		}
		result.Region = region
	}

	items, total, err := q.store.Search(ctx, filter)
	if err != nil {
		return nil, err
	}

	result.Total = total
	result.Result = items
	return result, nil
}

func (q *listingQueriesImpl) ListBookings(ctx context.Context, listingID, viewerID uuid.UUID, page, limit int) (*Page[BookingView], error) {
	view, err := q.store.FindByID(ctx, listingID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrListingNotFound
		}
		return nil, err
	}
	if viewerID == uuid.Nil || viewerID != view.HostID {
		return nil, ErrNotListingHost
	}

	offset, normalized := NormalizePage(page, limit)
	bookings, total, err := q.store.FindBookings(ctx, listingID, normalized, offset)
	if err != nil {
		return nil, err
	}

	return &Page[BookingView]{Total: total, Result: bookings}, nil
}

func (q *listingQueriesImpl) resolveRegion(ctx context.Context, location string, filter *SearchFilter) (*string, error) {
	geocoded, err := q.geocoder.Geocode(ctx, location)
	if err != nil {
		return nil, errs.Mark(err, ErrRegionNotFound)
	}
	if geocoded.Country == "" {
		return nil, ErrRegionNotFound
	}

	var parts []string
	if geocoded.City != "" {
		filter.City = geocoded.City
		parts = append(parts, geocoded.City)
	}
	if geocoded.AdminArea != "" {
		filter.AdminArea = geocoded.AdminArea
		parts = append(parts, geocoded.AdminArea)
	}
	filter.Country = geocoded.Country
	parts = append(parts, geocoded.Country)

	region := strings.Join(parts, ", ")
	return &region, nil
}
