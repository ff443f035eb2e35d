package dispatch

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"smart-waste/internal/bin"
	domainerrors "smart-waste/internal/errors"
	"smart-waste/internal/planner"
	"smart-waste/internal/route"
)

type CreateRouteRequest struct {
	// GroupIndex selects a preview group; nil plans every full bin as
	// one route.
	GroupIndex *int
	Date       time.Time
	TruckID    *string
	DriverID   *string
	StaffIDs   []string
}

type Service interface {
	CreateRoute(ctx context.Context, req CreateRouteRequest) (*route.RouteWithStops, error)
	AssignResources(ctx context.Context, routeID string, truckID, driverID *string, staffIDs []string) (*route.CollectionRoute, error)
	UpdateRouteStatus(ctx context.Context, routeID string, next route.Status) (*route.CollectionRoute, error)
	CompleteStop(ctx context.Context, stopID string) (*route.Stop, error)
}

type service struct {
	repo    Repository
	planner planner.Service
	bins    bin.Service
	db      *sqlx.DB
}

func NewDispatchService(repo Repository, plannerSvc planner.Service, bins bin.Service, db *sqlx.DB) Service {
	return &service{
		repo:    repo,
		planner: plannerSvc,
		bins:    bins,
		db:      db,
	}
}

func (s *service) CreateRoute(ctx context.Context, req CreateRouteRequest) (*route.RouteWithStops, error) {
	var candidates []*bin.SmartBin

	if req.GroupIndex != nil {
		groups, err := s.planner.CollectionGroups(ctx)
		if err != nil {
			return nil, err
		}
		if *req.GroupIndex < 0 || *req.GroupIndex >= len(groups) {
			return nil, domainerrors.NewValidation("group index out of range")
		}
		candidates = groups[*req.GroupIndex]
	} else {
		full, err := s.bins.ListByStatus(ctx, bin.StatusFull)
		if err != nil {
			return nil, err
		}
		candidates = full
	}

	if len(candidates) == 0 {
		return nil, domainerrors.NewValidation("no bins currently require collection")
	}

	date := req.Date
	if date.IsZero() {
		date = time.Now()
	}

	rt, stops := s.planner.Build(candidates, date)
	if err := s.repo.CreateRouteWithStops(ctx, s.db, rt, stops); err != nil {
		return nil, err
	}

	if req.TruckID != nil || req.DriverID != nil || len(req.StaffIDs) > 0 {
		assigned, err := s.repo.AssignResources(ctx, s.db, rt.ID, req.TruckID, req.DriverID, req.StaffIDs)
		if err != nil {
			return nil, err
		}
		rt = assigned
	}

	return &route.RouteWithStops{CollectionRoute: rt, Stops: stops}, nil
}

func (s *service) AssignResources(ctx context.Context, routeID string, truckID, driverID *string, staffIDs []string) (*route.CollectionRoute, error) {
	return s.repo.AssignResources(ctx, s.db, routeID, truckID, driverID, staffIDs)
}

func (s *service) UpdateRouteStatus(ctx context.Context, routeID string, next route.Status) (*route.CollectionRoute, error) {
	return s.repo.UpdateRouteStatus(ctx, s.db, routeID, next)
}

func (s *service) CompleteStop(ctx context.Context, stopID string) (*route.Stop, error) {
	return s.repo.CompleteStop(ctx, s.db, stopID)
}
