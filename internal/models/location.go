package models

type Location struct {
	Type        string    `json:"type" bson:"type" default:"Point"`
	Coordinates []float64 `json:"coordinates" bson:"coordinates"`
	Address     string    `json:"address" bson:"address" validate:"required"`
	Name        string    `json:"name" bson:"name"`
	PlaceID     string    `json:"place_id" bson:"place_id"`
}

func NewLocation(address string, lat, lng float64) *Location {
	return &Location{
		Type:        "Point",
		Coordinates: []float64{lng, lat},
		Address:     address,
	}
}

func (l Location) Latitude() float64 {
	if len(l.Coordinates) >= 2 {
		return l.Coordinates[1]
	}
	return 0
}

func (l Location) Longitude() float64 {
	if len(l.Coordinates) >= 1 {
		return l.Coordinates[0]
	}
	return 0
}

// HasCoordinates reports whether the location has been geocoded. Locations
// typed in by hand may carry only an address until place resolution completes.
func (l Location) HasCoordinates() bool {
	return len(l.Coordinates) >= 2 && (l.Coordinates[0] != 0 || l.Coordinates[1] != 0)
}
