package utils

import (
	"math"
	"time"
)

type TrafficLevel string

const (
	TrafficLow    TrafficLevel = "low"
	TrafficMedium TrafficLevel = "medium"
	TrafficHigh   TrafficLevel = "high"
)

func CalculateDistance(lat1, lon1, lat2, lon2 float64) float64 {
	return haversineDistance(lat1, lon1, lat2, lon2)
}

func haversineDistance(lat1, lon1, lat2, lon2 float64) float64 {
	// Convert to radians
	lat1Rad := lat1 * math.Pi / 180
	lon1Rad := lon1 * math.Pi / 180
	lat2Rad := lat2 * math.Pi / 180
	lon2Rad := lon2 * math.Pi / 180

	// Differences
	dLat := lat2Rad - lat1Rad
	dLon := lon2Rad - lon1Rad

	// Haversine formula
	a := math.Sin(dLat/2)*math.Sin(dLat/2) + math.Cos(lat1Rad)*math.Cos(lat2Rad)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	// Distance in kilometers
	return EarthRadiusKM * c
}

func CalculateBearing(lat1, lon1, lat2, lon2 float64) float64 {
	lat1Rad := lat1 * math.Pi / 180
	lat2Rad := lat2 * math.Pi / 180
	dLon := (lon2 - lon1) * math.Pi / 180

	y := math.Sin(dLon) * math.Cos(lat2Rad)
	x := math.Cos(lat1Rad)*math.Sin(lat2Rad) - math.Sin(lat1Rad)*math.Cos(lat2Rad)*math.Cos(dLon)

	bearing := math.Atan2(y, x) * 180 / math.Pi
	return math.Mod(bearing+360, 360)
}

// GetTrafficLevel is a pure heuristic over hour-of-day and weekday; there is
// no live traffic input. Weekday rush hours are high, daytime medium.
func GetTrafficLevel(t time.Time) TrafficLevel {
	hour := t.Hour()
	weekday := t.Weekday()
	weekend := weekday == time.Saturday || weekday == time.Sunday

	if !weekend {
		if (hour >= 7 && hour < 9) || (hour >= 17 && hour < 19) {
			return TrafficHigh
		}
		if hour >= 10 && hour < 16 {
			return TrafficMedium
		}
		return TrafficLow
	}

	if hour >= 10 && hour < 20 {
		return TrafficMedium
	}
	return TrafficLow
}

func averageSpeed(level TrafficLevel) float64 {
	switch level {
	case TrafficHigh:
		return SpeedHighTraffic
	case TrafficMedium:
		return SpeedMediumTraffic
	default:
		return SpeedLowTraffic
	}
}

// EstimateDuration converts a distance into whole minutes, rounded up, using
// the assumed average speed for the traffic level.
func EstimateDuration(distanceKM float64, level TrafficLevel) int {
	speed := averageSpeed(level)
	return int(math.Ceil(distanceKM / speed * 60))
}
