package route

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	domainerrors "smart-waste/internal/errors"
)

// Service is the read side of routes. Mutations that touch fleet state
// live in the dispatch package.
type Service interface {
	GetByID(ctx context.Context, id string) (*RouteWithStops, error)
	ListAll(ctx context.Context) ([]*CollectionRoute, error)
	ListByStatus(ctx context.Context, status Status) ([]*CollectionRoute, error)
	ListByDriver(ctx context.Context, driverID string) ([]*CollectionRoute, error)
	ListByStaff(ctx context.Context, staffID string) ([]*CollectionRoute, error)
	ListByDateRange(ctx context.Context, from, to time.Time) ([]*CollectionRoute, error)
	GetStop(ctx context.Context, stopID string) (*Stop, error)
	ListStops(ctx context.Context, routeID string) ([]*Stop, error)
}

type service struct {
	routes RouteRepository
	stops  StopRepository
	db     *sqlx.DB
}

func NewRouteService(routes RouteRepository, stops StopRepository, db *sqlx.DB) Service {
	return &service{routes: routes, stops: stops, db: db}
}

func (s *service) GetByID(ctx context.Context, id string) (*RouteWithStops, error) {
	rt, err := s.routes.GetByID(ctx, s.db, id)
	if err != nil {
		return nil, domainerrors.RouteNotFound(id)
	}
	stops, err := s.stops.ListByRouteID(ctx, s.db, id)
	if err != nil {
		return nil, domainerrors.NewInternal("failed to load route stops", err)
	}
	return &RouteWithStops{CollectionRoute: rt, Stops: stops}, nil
}

func (s *service) ListAll(ctx context.Context) ([]*CollectionRoute, error) {
	return s.routes.ListAll(ctx, s.db)
}

func (s *service) ListByStatus(ctx context.Context, status Status) ([]*CollectionRoute, error) {
	return s.routes.ListByStatus(ctx, s.db, status)
}

func (s *service) ListByDriver(ctx context.Context, driverID string) ([]*CollectionRoute, error) {
	return s.routes.ListByDriver(ctx, s.db, driverID)
}

func (s *service) ListByStaff(ctx context.Context, staffID string) ([]*CollectionRoute, error) {
	return s.routes.ListByStaff(ctx, s.db, staffID)
}

func (s *service) ListByDateRange(ctx context.Context, from, to time.Time) ([]*CollectionRoute, error) {
	return s.routes.ListByDateRange(ctx, s.db, from, to)
}

func (s *service) GetStop(ctx context.Context, stopID string) (*Stop, error) {
	st, err := s.stops.GetByID(ctx, s.db, stopID)
	if err != nil {
		return nil, domainerrors.StopNotFound(stopID)
	}
	return st, nil
}

func (s *service) ListStops(ctx context.Context, routeID string) ([]*Stop, error) {
	if _, err := s.routes.GetByID(ctx, s.db, routeID); err != nil {
		return nil, domainerrors.RouteNotFound(routeID)
	}
	return s.stops.ListByRouteID(ctx, s.db, routeID)
}
