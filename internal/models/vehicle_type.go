package models

type VehicleType string

const (
	VehicleTypeSedan  VehicleType = "sedan"
	VehicleTypeSUV    VehicleType = "suv"
	VehicleTypeVan    VehicleType = "van"
	VehicleTypeLuxury VehicleType = "luxury"
)

// VehicleClass describes a bookable vehicle category: capacity limits and the
// LKR rates the price engine works from. The catalog is static reference data.
type VehicleClass struct {
	Type              VehicleType `json:"type" bson:"type"`
	DisplayName       string      `json:"display_name" bson:"display_name"`
	Description       string      `json:"description" bson:"description"`
	PassengerCapacity int         `json:"passenger_capacity" bson:"passenger_capacity"`
	LuggageCapacity   int         `json:"luggage_capacity" bson:"luggage_capacity"`
	BasePrice         float64     `json:"base_price" bson:"base_price"`
	PricePerKM        float64     `json:"price_per_km" bson:"price_per_km"`
	Features          []string    `json:"features" bson:"features"`
	SortOrder         int         `json:"sort_order" bson:"sort_order"`
}

type VehicleCapacity struct {
	Passengers int `json:"passengers"`
	Luggage    int `json:"luggage"`
}

var vehicleCatalog = map[VehicleType]VehicleClass{
	VehicleTypeSedan: {
		Type:              VehicleTypeSedan,
		DisplayName:       "Sedan",
		Description:       "Comfortable car for up to 4 passengers",
		PassengerCapacity: 4,
		LuggageCapacity:   3,
		BasePrice:         2500,
		PricePerKM:        45,
		Features:          []string{"Air conditioning", "Bottled water", "Phone charger"},
		SortOrder:         1,
	},
	VehicleTypeSUV: {
		Type:              VehicleTypeSUV,
		DisplayName:       "SUV",
		Description:       "Spacious ride for families and small groups",
		PassengerCapacity: 6,
		LuggageCapacity:   5,
		BasePrice:         3500,
		PricePerKM:        55,
		Features:          []string{"Air conditioning", "Bottled water", "Phone charger", "Extra legroom"},
		SortOrder:         2,
	},
	VehicleTypeVan: {
		Type:              VehicleTypeVan,
		DisplayName:       "Van",
		Description:       "High-roof van for larger groups and luggage",
		PassengerCapacity: 8,
		LuggageCapacity:   10,
		BasePrice:         4500,
		PricePerKM:        65,
		Features:          []string{"Air conditioning", "Bottled water", "WiFi", "Luggage trailer available"},
		SortOrder:         3,
	},
	VehicleTypeLuxury: {
		Type:              VehicleTypeLuxury,
		DisplayName:       "Luxury",
		Description:       "Premium vehicle with chauffeur-grade service",
		PassengerCapacity: 3,
		LuggageCapacity:   3,
		BasePrice:         8000,
		PricePerKM:        120,
		Features:          []string{"Air conditioning", "Leather seats", "WiFi", "Refreshments", "Newspapers"},
		SortOrder:         4,
	},
}

// GetVehicleClass returns the catalog entry for the given type. Unknown types
// fall back to sedan so a stale client selection never breaks the form.
func GetVehicleClass(vehicleType VehicleType) VehicleClass {
	if class, ok := vehicleCatalog[vehicleType]; ok {
		return class
	}
	return vehicleCatalog[VehicleTypeSedan]
}

func GetVehicleCapacity(vehicleType VehicleType) VehicleCapacity {
	class := GetVehicleClass(vehicleType)
	return VehicleCapacity{
		Passengers: class.PassengerCapacity,
		Luggage:    class.LuggageCapacity,
	}
}

// ListVehicleClasses returns all catalog entries in display order.
func ListVehicleClasses() []VehicleClass {
	classes := make([]VehicleClass, 0, len(vehicleCatalog))
	for _, class := range vehicleCatalog {
		classes = append(classes, class)
	}
	for i := 0; i < len(classes); i++ {
		for j := i + 1; j < len(classes); j++ {
			if classes[j].SortOrder < classes[i].SortOrder {
				classes[i], classes[j] = classes[j], classes[i]
			}
		}
	}
	return classes
}

func IsValidVehicleType(vehicleType VehicleType) bool {
	_, ok := vehicleCatalog[vehicleType]
	return ok
}
