package route

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

const (
	routeColumns = `id, route_date, status, assigned_truck_id, assigned_driver_id, assigned_staff_ids, total_distance_km, estimated_minutes, created_at, updated_at`
	stopColumns  = `id, route_id, bin_id, bin_location, latitude, longitude, sequence_order, status, collected_at, created_at, updated_at`
)

type RouteRepository interface {
	Create(ctx context.Context, ext sqlx.ExtContext, r *CollectionRoute) error
	GetByID(ctx context.Context, ext sqlx.ExtContext, id string) (*CollectionRoute, error)
	GetByIDForUpdate(ctx context.Context, ext sqlx.ExtContext, id string) (*CollectionRoute, error)
	Update(ctx context.Context, ext sqlx.ExtContext, r *CollectionRoute) error
	ListAll(ctx context.Context, ext sqlx.ExtContext) ([]*CollectionRoute, error)
	ListByStatus(ctx context.Context, ext sqlx.ExtContext, status Status) ([]*CollectionRoute, error)
	ListByDriver(ctx context.Context, ext sqlx.ExtContext, driverID string) ([]*CollectionRoute, error)
	ListByStaff(ctx context.Context, ext sqlx.ExtContext, staffID string) ([]*CollectionRoute, error)
	ListByDateRange(ctx context.Context, ext sqlx.ExtContext, from, to time.Time) ([]*CollectionRoute, error)
}

type StopRepository interface {
	CreateAll(ctx context.Context, ext sqlx.ExtContext, stops []*Stop) error
	GetByID(ctx context.Context, ext sqlx.ExtContext, id string) (*Stop, error)
	GetByIDForUpdate(ctx context.Context, ext sqlx.ExtContext, id string) (*Stop, error)
	Update(ctx context.Context, ext sqlx.ExtContext, s *Stop) error
	ListByRouteID(ctx context.Context, ext sqlx.ExtContext, routeID string) ([]*Stop, error)
	CountPendingByRouteID(ctx context.Context, ext sqlx.ExtContext, routeID string) (int, error)
}

type routeRepository struct{}

func NewRouteRepository() RouteRepository {
	return &routeRepository{}
}

func (r *routeRepository) Create(ctx context.Context, ext sqlx.ExtContext, rt *CollectionRoute) error {
	const query = `INSERT INTO routes (id, route_date, status, assigned_truck_id, assigned_driver_id, assigned_staff_ids, total_distance_km, estimated_minutes, created_at, updated_at)
		VALUES (:id, :route_date, :status, :assigned_truck_id, :assigned_driver_id, :assigned_staff_ids, :total_distance_km, :estimated_minutes, :created_at, :updated_at)`
	_, err := sqlx.NamedExecContext(ctx, ext, query, rt)
	return err
}

func (r *routeRepository) GetByID(ctx context.Context, ext sqlx.ExtContext, id string) (*CollectionRoute, error) {
	var rt CollectionRoute
	query := fmt.Sprintf(`SELECT %s FROM routes WHERE id = $1`, routeColumns)
	if err := sqlx.GetContext(ctx, ext, &rt, query, id); err != nil {
		return nil, err
	}
	return &rt, nil
}

func (r *routeRepository) GetByIDForUpdate(ctx context.Context, ext sqlx.ExtContext, id string) (*CollectionRoute, error) {
	var rt CollectionRoute
	query := fmt.Sprintf(`SELECT %s FROM routes WHERE id = $1 FOR UPDATE`, routeColumns)
	if err := sqlx.GetContext(ctx, ext, &rt, query, id); err != nil {
		return nil, err
	}
	return &rt, nil
}

func (r *routeRepository) Update(ctx context.Context, ext sqlx.ExtContext, rt *CollectionRoute) error {
	const query = `UPDATE routes SET status = :status, assigned_truck_id = :assigned_truck_id,
		assigned_driver_id = :assigned_driver_id, assigned_staff_ids = :assigned_staff_ids,
		total_distance_km = :total_distance_km, estimated_minutes = :estimated_minutes,
		updated_at = :updated_at WHERE id = :id`
	_, err := sqlx.NamedExecContext(ctx, ext, query, rt)
	return err
}

func (r *routeRepository) ListAll(ctx context.Context, ext sqlx.ExtContext) ([]*CollectionRoute, error) {
	var routes []*CollectionRoute
	query := fmt.Sprintf(`SELECT %s FROM routes ORDER BY created_at DESC`, routeColumns)
	if err := sqlx.SelectContext(ctx, ext, &routes, query); err != nil {
		return nil, err
	}
	return routes, nil
}

func (r *routeRepository) ListByStatus(ctx context.Context, ext sqlx.ExtContext, status Status) ([]*CollectionRoute, error) {
	var routes []*CollectionRoute
	query := fmt.Sprintf(`SELECT %s FROM routes WHERE status = $1 ORDER BY created_at DESC`, routeColumns)
	if err := sqlx.SelectContext(ctx, ext, &routes, query, status); err != nil {
		return nil, err
	}
	return routes, nil
}

func (r *routeRepository) ListByDriver(ctx context.Context, ext sqlx.ExtContext, driverID string) ([]*CollectionRoute, error) {
	var routes []*CollectionRoute
	query := fmt.Sprintf(`SELECT %s FROM routes WHERE assigned_driver_id = $1 ORDER BY created_at DESC`, routeColumns)
	if err := sqlx.SelectContext(ctx, ext, &routes, query, driverID); err != nil {
		return nil, err
	}
	return routes, nil
}

func (r *routeRepository) ListByStaff(ctx context.Context, ext sqlx.ExtContext, staffID string) ([]*CollectionRoute, error) {
	var routes []*CollectionRoute
	query := fmt.Sprintf(`SELECT %s FROM routes WHERE $1 = ANY(assigned_staff_ids) ORDER BY created_at DESC`, routeColumns)
	if err := sqlx.SelectContext(ctx, ext, &routes, query, staffID); err != nil {
		return nil, err
	}
	return routes, nil
}

func (r *routeRepository) ListByDateRange(ctx context.Context, ext sqlx.ExtContext, from, to time.Time) ([]*CollectionRoute, error) {
	var routes []*CollectionRoute
	query := fmt.Sprintf(`SELECT %s FROM routes WHERE route_date >= $1 AND route_date <= $2 ORDER BY route_date ASC`, routeColumns)
	if err := sqlx.SelectContext(ctx, ext, &routes, query, from, to); err != nil {
		return nil, err
	}
	return routes, nil
}

type stopRepository struct{}

func NewStopRepository() StopRepository {
	return &stopRepository{}
}

func (r *stopRepository) CreateAll(ctx context.Context, ext sqlx.ExtContext, stops []*Stop) error {
	if len(stops) == 0 {
		return nil
	}
	const query = `INSERT INTO route_stops (id, route_id, bin_id, bin_location, latitude, longitude, sequence_order, status, collected_at, created_at, updated_at)
		VALUES (:id, :route_id, :bin_id, :bin_location, :latitude, :longitude, :sequence_order, :status, :collected_at, :created_at, :updated_at)`
	for _, s := range stops {
		if _, err := sqlx.NamedExecContext(ctx, ext, query, s); err != nil {
			return err
		}
	}
	return nil
}

func (r *stopRepository) GetByID(ctx context.Context, ext sqlx.ExtContext, id string) (*Stop, error) {
	var s Stop
	query := fmt.Sprintf(`SELECT %s FROM route_stops WHERE id = $1`, stopColumns)
	if err := sqlx.GetContext(ctx, ext, &s, query, id); err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *stopRepository) GetByIDForUpdate(ctx context.Context, ext sqlx.ExtContext, id string) (*Stop, error) {
	var s Stop
	query := fmt.Sprintf(`SELECT %s FROM route_stops WHERE id = $1 FOR UPDATE`, stopColumns)
	if err := sqlx.GetContext(ctx, ext, &s, query, id); err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *stopRepository) Update(ctx context.Context, ext sqlx.ExtContext, s *Stop) error {
	const query = `UPDATE route_stops SET status = :status, collected_at = :collected_at, updated_at = :updated_at WHERE id = :id`
	_, err := sqlx.NamedExecContext(ctx, ext, query, s)
	return err
}

func (r *stopRepository) ListByRouteID(ctx context.Context, ext sqlx.ExtContext, routeID string) ([]*Stop, error) {
	var stops []*Stop
	query := fmt.Sprintf(`SELECT %s FROM route_stops WHERE route_id = $1 ORDER BY sequence_order ASC`, stopColumns)
	if err := sqlx.SelectContext(ctx, ext, &stops, query, routeID); err != nil {
		return nil, err
	}
	return stops, nil
}

func (r *stopRepository) CountPendingByRouteID(ctx context.Context, ext sqlx.ExtContext, routeID string) (int, error) {
	var count int
	const query = `SELECT COUNT(*) FROM route_stops WHERE route_id = $1 AND status = 'PENDING'`
	if err := sqlx.GetContext(ctx, ext, &count, query, routeID); err != nil {
		return 0, err
	}
	return count, nil
}
