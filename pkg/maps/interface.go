package maps

import "context"

// PlacesProvider is the geocoding/places collaborator. The price engine never
// talks to it; only the location picker does, with already-resolved
// coordinates flowing onward.
type PlacesProvider interface {
	SearchPlaces(ctx context.Context, request *PlaceSearchRequest) (*PlaceSearchResponse, error)
	Geocode(ctx context.Context, address string) (*GeocodeResponse, error)
	ReverseGeocode(ctx context.Context, lat, lng float64) (*GeocodeResponse, error)
}

type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type PlaceSearchRequest struct {
	Query   string `json:"query"`
	Country string `json:"country,omitempty"` // ISO 3166-1 alpha-2 hint, e.g. "lk"
	Limit   int    `json:"limit,omitempty"`
}

type PlaceSearchResponse struct {
	Results []PlaceResult `json:"results"`
}

type PlaceResult struct {
	PlaceID  string   `json:"place_id"`
	Name     string   `json:"name"`
	Address  string   `json:"formatted_address"`
	Location Location `json:"geometry"`
	Types    []string `json:"types"`
}

type GeocodeResponse struct {
	Results []GeocodeResult `json:"results"`
}

type GeocodeResult struct {
	PlaceID     string   `json:"place_id"`
	Address     string   `json:"formatted_address"`
	Coordinates Location `json:"geometry"`
	Types       []string `json:"types"`
}
