package planner

import (
	"math"
	"time"

	"smart-waste/internal/bin"
	"smart-waste/internal/common"
	"smart-waste/internal/route"
)

const (
	// Minutes a crew spends servicing one stop.
	serviceMinutesPerStop = 30
	// Assumed truck travel speed.
	averageSpeedKMH = 30.0
)

type Metrics struct {
	TotalDistanceKM  float64 `json:"total_distance_km"`
	EstimatedMinutes int     `json:"estimated_minutes"`
}

// NearestNeighborOrder sequences bins greedily from the depot. Ties keep
// the earlier input bin.
func NearestNeighborOrder(bins []*bin.SmartBin, depot common.Location) []*bin.SmartBin {
	remaining := make([]*bin.SmartBin, len(bins))
	copy(remaining, bins)

	ordered := make([]*bin.SmartBin, 0, len(bins))
	current := depot

	for len(remaining) > 0 {
		best := 0
		bestDist := common.DistanceKm(current, remaining[0].Coordinates())
		for i := 1; i < len(remaining); i++ {
			d := common.DistanceKm(current, remaining[i].Coordinates())
			if d < bestDist {
				best = i
				bestDist = d
			}
		}
		next := remaining[best]
		ordered = append(ordered, next)
		current = next.Coordinates()
		remaining = append(remaining[:best], remaining[best+1:]...)
	}

	return ordered
}

// RouteMetrics sums depot-to-first plus consecutive stop legs. There is
// no return leg: crews end the shift at the last stop.
func RouteMetrics(stops []*route.Stop, depot common.Location) Metrics {
	if len(stops) == 0 {
		return Metrics{}
	}

	distance := common.DistanceKm(depot, stops[0].Coordinates())
	for i := 1; i < len(stops); i++ {
		distance += common.DistanceKm(stops[i-1].Coordinates(), stops[i].Coordinates())
	}

	travelMinutes := int(math.Round(distance / averageSpeedKMH * 60))

	return Metrics{
		TotalDistanceKM:  math.Round(distance*100) / 100,
		EstimatedMinutes: serviceMinutesPerStop*len(stops) + travelMinutes,
	}
}

// BuildRoute sequences the bins from the depot and materializes a
// PENDING route with its stops and metrics. Nothing is persisted.
func BuildRoute(bins []*bin.SmartBin, depot common.Location, date time.Time) (*route.CollectionRoute, []*route.Stop) {
	rt := route.NewRoute(date)

	ordered := NearestNeighborOrder(bins, depot)
	stops := make([]*route.Stop, 0, len(ordered))
	for i, b := range ordered {
		stops = append(stops, route.NewStop(rt.ID, b.ID, b.Location, b.Latitude, b.Longitude, i+1))
	}

	metrics := RouteMetrics(stops, depot)
	rt.TotalDistanceKM = metrics.TotalDistanceKM
	rt.EstimatedMinutes = metrics.EstimatedMinutes

	return rt, stops
}
