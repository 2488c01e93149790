package listing

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Region is the geocoded portion of a listing address.
type Region struct {
	Country   string
	AdminArea string
	City      string
}

type Listing struct {
	id          uuid.UUID
	title       string
	description string
	listingType Type
	priceCents  int64
	maxGuests   int
	address     string
	region      Region
	hostID      uuid.UUID
	index       AvailabilityIndex
	createdAt   time.Time
	updatedAt   time.Time
}

func NewListing(
	title, description string,
	listingType Type,
	priceCents int64,
	maxGuests int,
	address string,
	region Region,
	hostID uuid.UUID,
) (*Listing, error) {
	title = strings.TrimSpace(title)
	if title == "" || len(title) > MaxTitleLength {
		return nil, ErrInvalidTitle
	}
	if len(description) > MaxDescriptionLength {
		return nil, ErrInvalidDescription
	}
	if _, err := NewType(string(listingType)); err != nil {
		return nil, err
	}
	if priceCents <= 0 {
		return nil, ErrInvalidPrice
	}
	if maxGuests <= 0 {
		return nil, ErrInvalidMaxGuests
	}
	if strings.TrimSpace(address) == "" {
		return nil, ErrInvalidAddress
	}

	return &Listing{
		id:          uuid.New(),
		title:       title,
		description: description,
		listingType: listingType,
		priceCents:  priceCents,
		maxGuests:   maxGuests,
		address:     address,
		region:      region,
		hostID:      hostID,
		index:       NewAvailabilityIndex(),
	}, nil
}

func ReconstructListing(
	id uuid.UUID,
	title, description string,
	listingType Type,
	priceCents int64,
	maxGuests int,
	address string,
	region Region,
	hostID uuid.UUID,
	index AvailabilityIndex,
	createdAt, updatedAt time.Time,
) *Listing {
	return &Listing{
		id:          id,
		title:       title,
		description: description,
		listingType: listingType,
		priceCents:  priceCents,
		maxGuests:   maxGuests,
		address:     address,
		region:      region,
		hostID:      hostID,
		index:       index,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}
}

func (l *Listing) IsHostedBy(userID uuid.UUID) bool {
	return l.hostID == userID
}

func (l *Listing) ID() uuid.UUID            { return l.id }
func (l *Listing) Title() string            { return l.title }
func (l *Listing) Description() string      { return l.description }
func (l *Listing) ListingType() Type        { return l.listingType }
func (l *Listing) PriceCents() int64        { return l.priceCents }
func (l *Listing) MaxGuests() int           { return l.maxGuests }
func (l *Listing) Address() string          { return l.address }
func (l *Listing) Region() Region           { return l.region }
func (l *Listing) HostID() uuid.UUID        { return l.hostID }
func (l *Listing) Index() AvailabilityIndex { return l.index }
func (l *Listing) CreatedAt() time.Time     { return l.createdAt }
func (l *Listing) UpdatedAt() time.Time     { return l.updatedAt }
