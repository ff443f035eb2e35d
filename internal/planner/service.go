package planner

import (
	"context"
	"sort"
	"time"

	"smart-waste/internal/bin"
	"smart-waste/internal/common"
	"smart-waste/internal/fleet"
	"smart-waste/internal/route"
)

// CandidateRoute is a preview of one plannable group. Stops and ids are
// throwaway until the group is dispatched.
type CandidateRoute struct {
	GroupIndex       int                   `json:"group_index"`
	BinIDs           []string              `json:"bin_ids"`
	Stops            []*route.Stop         `json:"stops"`
	TotalDistanceKM  float64               `json:"total_distance_km"`
	EstimatedMinutes int                   `json:"estimated_minutes"`
	RequiredCapacity float64               `json:"required_capacity"`
	SuggestedCrew    *fleet.CrewSuggestion `json:"suggested_crew"`
}

type Service interface {
	// Preview clusters bins needing collection and sequences each group,
	// with a non-binding crew suggestion per group.
	Preview(ctx context.Context) ([]CandidateRoute, error)
	// CollectionGroups returns the current plannable groups in the same
	// order Preview indexes them.
	CollectionGroups(ctx context.Context) ([][]*bin.SmartBin, error)
	Build(bins []*bin.SmartBin, date time.Time) (*route.CollectionRoute, []*route.Stop)
	Depot() common.Location
}

type service struct {
	bins          bin.Service
	fleet         fleet.Service
	depot         common.Location
	maxLinkKm     float64
	staffPerRoute int
}

func NewPlannerService(bins bin.Service, fleetSvc fleet.Service, depot common.Location, maxLinkKm float64, staffPerRoute int) Service {
	if maxLinkKm <= 0 {
		maxLinkKm = DefaultMaxLinkDistanceKM
	}
	return &service{
		bins:          bins,
		fleet:         fleetSvc,
		depot:         depot,
		maxLinkKm:     maxLinkKm,
		staffPerRoute: staffPerRoute,
	}
}

func (s *service) Depot() common.Location {
	return s.depot
}

func (s *service) CollectionGroups(ctx context.Context) ([][]*bin.SmartBin, error) {
	full, err := s.bins.ListByStatus(ctx, bin.StatusFull)
	if err != nil {
		return nil, err
	}
	if len(full) == 0 {
		return nil, nil
	}

	// Clustering is input-order dependent; a fixed sort keeps group
	// indexes stable between preview and dispatch.
	sort.Slice(full, func(i, j int) bool { return full[i].ID < full[j].ID })

	groups := Cluster(full, s.maxLinkKm)

	// Lone bins are not worth a dedicated truck roll; fold them away
	// unless nothing else remains.
	var multi [][]*bin.SmartBin
	for _, g := range groups {
		if len(g) >= 2 {
			multi = append(multi, g)
		}
	}
	if len(multi) == 0 {
		return [][]*bin.SmartBin{full}, nil
	}
	return multi, nil
}

func (s *service) Preview(ctx context.Context) ([]CandidateRoute, error) {
	groups, err := s.CollectionGroups(ctx)
	if err != nil {
		return nil, err
	}

	candidates := make([]CandidateRoute, 0, len(groups))
	for i, group := range groups {
		rt, stops := s.Build(group, time.Now())

		binIDs := make([]string, 0, len(group))
		var requiredCapacity float64
		for _, b := range group {
			binIDs = append(binIDs, b.ID)
			requiredCapacity += b.Capacity
		}

		crew, err := s.fleet.SuggestCrew(ctx, requiredCapacity, s.staffPerRoute)
		if err != nil {
			return nil, err
		}

		candidates = append(candidates, CandidateRoute{
			GroupIndex:       i,
			BinIDs:           binIDs,
			Stops:            stops,
			TotalDistanceKM:  rt.TotalDistanceKM,
			EstimatedMinutes: rt.EstimatedMinutes,
			RequiredCapacity: requiredCapacity,
			SuggestedCrew:    crew,
		})
	}

	return candidates, nil
}

func (s *service) Build(bins []*bin.SmartBin, date time.Time) (*route.CollectionRoute, []*route.Stop) {
	return BuildRoute(bins, s.depot, date)
}
