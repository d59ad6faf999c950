package models

// PriceBreakdown is the structured decomposition of a transfer's cost. It is
// recomputed on every relevant input change and embedded into the booking as a
// snapshot at submission time, never persisted standalone.
type PriceBreakdown struct {
	BasePrice             float64    `json:"base_price" bson:"base_price"`
	DistancePrice         float64    `json:"distance_price" bson:"distance_price"`
	VehicleTypeMultiplier float64    `json:"vehicle_type_multiplier" bson:"vehicle_type_multiplier"`
	Surcharges            Surcharges `json:"surcharges" bson:"surcharges"`
	Discounts             Discounts  `json:"discounts" bson:"discounts"`
	Subtotal              float64    `json:"subtotal" bson:"subtotal"`
	Taxes                 float64    `json:"taxes" bson:"taxes"`
	Total                 float64    `json:"total" bson:"total"`
	Currency              string     `json:"currency" bson:"currency"`
	Distance              float64    `json:"distance" bson:"distance"` // kilometers
	// DistanceEstimated marks breakdowns computed from the fallback distance
	// because one of the locations had no coordinates yet.
	DistanceEstimated bool `json:"distance_estimated" bson:"distance_estimated"`
}

type Surcharges struct {
	NightSurcharge float64 `json:"night_surcharge,omitempty" bson:"night_surcharge,omitempty"`
	AirportFee     float64 `json:"airport_fee,omitempty" bson:"airport_fee,omitempty"`
	WaitingTime    float64 `json:"waiting_time,omitempty" bson:"waiting_time,omitempty"`
}

type Discounts struct {
	PromoCode       float64 `json:"promo_code,omitempty" bson:"promo_code,omitempty"`
	LoyaltyDiscount float64 `json:"loyalty_discount,omitempty" bson:"loyalty_discount,omitempty"`
}

func (s Surcharges) Sum() float64 {
	return s.NightSurcharge + s.AirportFee + s.WaitingTime
}

func (d Discounts) Sum() float64 {
	return d.PromoCode + d.LoyaltyDiscount
}
