package shared

import "context"

// GeocodedAddress is what the geocoding collaborator resolves a free-text
// address into.
type GeocodedAddress struct {
	Country   string
	AdminArea string
	City      string
}

type Geocoder interface {
	Geocode(ctx context.Context, address string) (*GeocodedAddress, error)
}
