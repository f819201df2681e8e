// internal/app/catalog/distance.go
package catalog

import (
	"math"
	"sort"

	"github.com/huddleup/huddle/internal/domain/models"
)

// earthRadiusKm is the mean Earth radius used by the haversine formula.
const earthRadiusKm = 6371

// distanceKm returns the great-circle distance between two coordinates in
// kilometers via the haversine formula.
func distanceKm(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := (lat2 - lat1) * math.Pi / 180
	dLon := (lon2 - lon1) * math.Pi / 180
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1*math.Pi/180)*math.Cos(lat2*math.Pi/180)*
			math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusKm * c
}

// sortByDistance orders activities by proximity to the caller, nearest
// first. Distance is a sort key only; it is never persisted or returned.
// The sort is stable so equidistant activities keep the store's ordering.
func sortByDistance(activities []models.Activity, lat, lon float64) {
	sort.SliceStable(activities, func(i, j int) bool {
		di := distanceKm(lat, lon, activities[i].Latitude, activities[i].Longitude)
		dj := distanceKm(lat, lon, activities[j].Latitude, activities[j].Longitude)
		return di < dj
	})
}
