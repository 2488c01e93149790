package gateway

import (
	"context"

	"homestay/internal/pkg/config"
	"homestay/internal/pkg/errs"
	"homestay/internal/usecase/shared"

	"googlemaps.github.io/maps"
)

var errNoGeocodeResult = errs.New("address did not resolve to any location")

type GoogleGeocoder struct {
	client *maps.Client
}

func NewGoogleGeocoder(cfg config.GeocodeConfig) (shared.Geocoder, error) {
	client, err := maps.NewClient(maps.WithAPIKey(cfg.GoogleAPIKey))
	if err != nil {
		return nil, errs.Wrap(err, "failed to create maps client")
	}
	return &GoogleGeocoder{client: client}, nil
}

func (g *GoogleGeocoder) Geocode(ctx context.Context, address string) (*shared.GeocodedAddress, error) {
	results, err := g.client.Geocode(ctx, &maps.GeocodingRequest{Address: address})
	if err != nil {
		return nil, errs.Wrap(err, "geocode request failed")
	}
	if len(results) == 0 {
		return nil, errNoGeocodeResult
	}

	geocoded := &shared.GeocodedAddress{}
	for _, component := range results[0].AddressComponents {
		for _, typ := range component.Types {
			switch typ {
			case "country":
				geocoded.Country = component.LongName
			case "administrative_area_level_1":
				geocoded.AdminArea = component.LongName
			case "locality", "postal_town":
				geocoded.City = component.LongName
			}
		}
	}

	return geocoded, nil
}
