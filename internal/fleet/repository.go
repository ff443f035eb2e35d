package fleet

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

const (
	truckColumns  = `id, license_plate, capacity, current_status, assigned_driver_id, created_at, updated_at`
	driverColumns = `id, name, license_number, available, current_route_id, created_at, updated_at`
	staffColumns  = `id, name, role, available, current_route_id, created_at, updated_at`
)

type TruckRepository interface {
	Create(ctx context.Context, ext sqlx.ExtContext, t *Truck) error
	GetByID(ctx context.Context, ext sqlx.ExtContext, id string) (*Truck, error)
	GetByIDForUpdate(ctx context.Context, ext sqlx.ExtContext, id string) (*Truck, error)
	Update(ctx context.Context, ext sqlx.ExtContext, t *Truck) error
	ListAll(ctx context.Context, ext sqlx.ExtContext) ([]*Truck, error)
	ListFree(ctx context.Context, ext sqlx.ExtContext) ([]*Truck, error)
}

type DriverRepository interface {
	Create(ctx context.Context, ext sqlx.ExtContext, d *Driver) error
	GetByID(ctx context.Context, ext sqlx.ExtContext, id string) (*Driver, error)
	GetByIDForUpdate(ctx context.Context, ext sqlx.ExtContext, id string) (*Driver, error)
	Update(ctx context.Context, ext sqlx.ExtContext, d *Driver) error
	ListAll(ctx context.Context, ext sqlx.ExtContext) ([]*Driver, error)
	ListAvailable(ctx context.Context, ext sqlx.ExtContext) ([]*Driver, error)
}

type StaffRepository interface {
	Create(ctx context.Context, ext sqlx.ExtContext, m *StaffMember) error
	GetByID(ctx context.Context, ext sqlx.ExtContext, id string) (*StaffMember, error)
	GetByIDForUpdate(ctx context.Context, ext sqlx.ExtContext, id string) (*StaffMember, error)
	Update(ctx context.Context, ext sqlx.ExtContext, m *StaffMember) error
	ListAll(ctx context.Context, ext sqlx.ExtContext) ([]*StaffMember, error)
	ListAvailable(ctx context.Context, ext sqlx.ExtContext) ([]*StaffMember, error)
}

type truckRepository struct{}

func NewTruckRepository() TruckRepository {
	return &truckRepository{}
}

func (r *truckRepository) Create(ctx context.Context, ext sqlx.ExtContext, t *Truck) error {
	const query = `INSERT INTO trucks (id, license_plate, capacity, current_status, assigned_driver_id, created_at, updated_at)
		VALUES (:id, :license_plate, :capacity, :current_status, :assigned_driver_id, :created_at, :updated_at)`
	_, err := sqlx.NamedExecContext(ctx, ext, query, t)
	return err
}

func (r *truckRepository) GetByID(ctx context.Context, ext sqlx.ExtContext, id string) (*Truck, error) {
	var t Truck
	query := fmt.Sprintf(`SELECT %s FROM trucks WHERE id = $1`, truckColumns)
	if err := sqlx.GetContext(ctx, ext, &t, query, id); err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *truckRepository) GetByIDForUpdate(ctx context.Context, ext sqlx.ExtContext, id string) (*Truck, error) {
	var t Truck
	query := fmt.Sprintf(`SELECT %s FROM trucks WHERE id = $1 FOR UPDATE`, truckColumns)
	if err := sqlx.GetContext(ctx, ext, &t, query, id); err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *truckRepository) Update(ctx context.Context, ext sqlx.ExtContext, t *Truck) error {
	const query = `UPDATE trucks SET license_plate = :license_plate, capacity = :capacity,
		current_status = :current_status, assigned_driver_id = :assigned_driver_id, updated_at = :updated_at
		WHERE id = :id`
	_, err := sqlx.NamedExecContext(ctx, ext, query, t)
	return err
}

func (r *truckRepository) ListAll(ctx context.Context, ext sqlx.ExtContext) ([]*Truck, error) {
	var trucks []*Truck
	query := fmt.Sprintf(`SELECT %s FROM trucks ORDER BY id ASC`, truckColumns)
	if err := sqlx.SelectContext(ctx, ext, &trucks, query); err != nil {
		return nil, err
	}
	return trucks, nil
}

func (r *truckRepository) ListFree(ctx context.Context, ext sqlx.ExtContext) ([]*Truck, error) {
	var trucks []*Truck
	query := fmt.Sprintf(`SELECT %s FROM trucks WHERE current_status != 'IN_USE' AND assigned_driver_id IS NULL ORDER BY id ASC`, truckColumns)
	if err := sqlx.SelectContext(ctx, ext, &trucks, query); err != nil {
		return nil, err
	}
	return trucks, nil
}

type driverRepository struct{}

func NewDriverRepository() DriverRepository {
	return &driverRepository{}
}

func (r *driverRepository) Create(ctx context.Context, ext sqlx.ExtContext, d *Driver) error {
	const query = `INSERT INTO drivers (id, name, license_number, available, current_route_id, created_at, updated_at)
		VALUES (:id, :name, :license_number, :available, :current_route_id, :created_at, :updated_at)`
	_, err := sqlx.NamedExecContext(ctx, ext, query, d)
	return err
}

func (r *driverRepository) GetByID(ctx context.Context, ext sqlx.ExtContext, id string) (*Driver, error) {
	var d Driver
	query := fmt.Sprintf(`SELECT %s FROM drivers WHERE id = $1`, driverColumns)
	if err := sqlx.GetContext(ctx, ext, &d, query, id); err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *driverRepository) GetByIDForUpdate(ctx context.Context, ext sqlx.ExtContext, id string) (*Driver, error) {
	var d Driver
	query := fmt.Sprintf(`SELECT %s FROM drivers WHERE id = $1 FOR UPDATE`, driverColumns)
	if err := sqlx.GetContext(ctx, ext, &d, query, id); err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *driverRepository) Update(ctx context.Context, ext sqlx.ExtContext, d *Driver) error {
	const query = `UPDATE drivers SET name = :name, license_number = :license_number,
		available = :available, current_route_id = :current_route_id, updated_at = :updated_at
		WHERE id = :id`
	_, err := sqlx.NamedExecContext(ctx, ext, query, d)
	return err
}

func (r *driverRepository) ListAll(ctx context.Context, ext sqlx.ExtContext) ([]*Driver, error) {
	var drivers []*Driver
	query := fmt.Sprintf(`SELECT %s FROM drivers ORDER BY id ASC`, driverColumns)
	if err := sqlx.SelectContext(ctx, ext, &drivers, query); err != nil {
		return nil, err
	}
	return drivers, nil
}

func (r *driverRepository) ListAvailable(ctx context.Context, ext sqlx.ExtContext) ([]*Driver, error) {
	var drivers []*Driver
	query := fmt.Sprintf(`SELECT %s FROM drivers WHERE available = TRUE AND current_route_id IS NULL ORDER BY id ASC`, driverColumns)
	if err := sqlx.SelectContext(ctx, ext, &drivers, query); err != nil {
		return nil, err
	}
	return drivers, nil
}

type staffRepository struct{}

func NewStaffRepository() StaffRepository {
	return &staffRepository{}
}

func (r *staffRepository) Create(ctx context.Context, ext sqlx.ExtContext, m *StaffMember) error {
	const query = `INSERT INTO staff (id, name, role, available, current_route_id, created_at, updated_at)
		VALUES (:id, :name, :role, :available, :current_route_id, :created_at, :updated_at)`
	_, err := sqlx.NamedExecContext(ctx, ext, query, m)
	return err
}

func (r *staffRepository) GetByID(ctx context.Context, ext sqlx.ExtContext, id string) (*StaffMember, error) {
	var m StaffMember
	query := fmt.Sprintf(`SELECT %s FROM staff WHERE id = $1`, staffColumns)
	if err := sqlx.GetContext(ctx, ext, &m, query, id); err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *staffRepository) GetByIDForUpdate(ctx context.Context, ext sqlx.ExtContext, id string) (*StaffMember, error) {
	var m StaffMember
	query := fmt.Sprintf(`SELECT %s FROM staff WHERE id = $1 FOR UPDATE`, staffColumns)
	if err := sqlx.GetContext(ctx, ext, &m, query, id); err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *staffRepository) Update(ctx context.Context, ext sqlx.ExtContext, m *StaffMember) error {
	const query = `UPDATE staff SET name = :name, role = :role, available = :available,
		current_route_id = :current_route_id, updated_at = :updated_at WHERE id = :id`
	_, err := sqlx.NamedExecContext(ctx, ext, query, m)
	return err
}

func (r *staffRepository) ListAll(ctx context.Context, ext sqlx.ExtContext) ([]*StaffMember, error) {
	var staff []*StaffMember
	query := fmt.Sprintf(`SELECT %s FROM staff ORDER BY id ASC`, staffColumns)
	if err := sqlx.SelectContext(ctx, ext, &staff, query); err != nil {
		return nil, err
	}
	return staff, nil
}

func (r *staffRepository) ListAvailable(ctx context.Context, ext sqlx.ExtContext) ([]*StaffMember, error) {
	var staff []*StaffMember
	query := fmt.Sprintf(`SELECT %s FROM staff WHERE available = TRUE AND current_route_id IS NULL ORDER BY id ASC`, staffColumns)
	if err := sqlx.SelectContext(ctx, ext, &staff, query); err != nil {
		return nil, err
	}
	return staff, nil
}
