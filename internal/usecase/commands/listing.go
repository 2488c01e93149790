package commands

import (
	"context"

	"homestay/internal/domain/listing"
	"homestay/internal/pkg/errs"
	"homestay/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrListingValidation = errs.New("listing validation failed")
	ErrInvalidAddress    = errs.New("address could not be resolved to a region")
)

type HostListingParams struct {
	Title       string
	Description string
	Type        string
	PriceCents  int64
	MaxGuests   int
	Address     string
}

type ListingCommands interface {
	HostListing(ctx context.Context, params HostListingParams, hostID uuid.UUID) (uuid.UUID, error)
}

type listingCommandsImpl struct {
	uow      shared.UnitOfWork
	geocoder shared.Geocoder
}

func NewListingCommands(uow shared.UnitOfWork, geocoder shared.Geocoder) ListingCommands {
	return &listingCommandsImpl{uow: uow, geocoder: geocoder}
}

func (c *listingCommandsImpl) HostListing(ctx context.Context, params HostListingParams, hostID uuid.UUID) (uuid.UUID, error) {
	if hostID == uuid.Nil {
		return uuid.Nil, ErrNotAuthenticated
	}

	listingType, err := listing.NewType(params.Type)
	if err != nil {
		return uuid.Nil, errs.Mark(err, ErrListingValidation)
	}

	geocoded, err := c.geocoder.Geocode(ctx, params.Address)
	if err != nil {
		return uuid.Nil, errs.Mark(err, ErrInvalidAddress)
	}
	if geocoded.Country == "" || geocoded.AdminArea == "" || geocoded.City == "" {
		return uuid.Nil, ErrInvalidAddress
	}

	entity, err := listing.NewListing(
		params.Title,
		params.Description,
		listingType,
		params.PriceCents,
		params.MaxGuests,
		params.Address,
		listing.Region{
			Country:   geocoded.Country,
			AdminArea: geocoded.AdminArea,
			City:      geocoded.City,
		},
		hostID,
	)
	if err != nil {
		return uuid.Nil, errs.Mark(err, ErrListingValidation)
	}

	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Listings().Create(ctx, entity)
	})
	if err != nil {
		return uuid.Nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	return entity.ID(), nil
}
