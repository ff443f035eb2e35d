package fleet

import (
	"context"

	"github.com/jmoiron/sqlx"

	domainerrors "smart-waste/internal/errors"
)

// CrewSuggestion is a non-binding pick of resources for a planned route.
// Nil fields mean nothing suitable is currently free.
type CrewSuggestion struct {
	TruckID  *string  `json:"truck_id,omitempty"`
	DriverID *string  `json:"driver_id,omitempty"`
	StaffIDs []string `json:"staff_ids"`
}

type Service interface {
	RegisterTruck(ctx context.Context, licensePlate string, capacity float64) (*Truck, error)
	RegisterDriver(ctx context.Context, name, licenseNumber string) (*Driver, error)
	RegisterStaff(ctx context.Context, name, role string) (*StaffMember, error)
	GetTruck(ctx context.Context, id string) (*Truck, error)
	GetDriver(ctx context.Context, id string) (*Driver, error)
	GetStaff(ctx context.Context, id string) (*StaffMember, error)
	ListTrucks(ctx context.Context, freeOnly bool) ([]*Truck, error)
	ListDrivers(ctx context.Context, availableOnly bool) ([]*Driver, error)
	ListStaff(ctx context.Context, availableOnly bool) ([]*StaffMember, error)
	SuitableTrucks(ctx context.Context, requiredCapacity float64) ([]*Truck, error)
	SuggestCrew(ctx context.Context, requiredCapacity float64, staffCount int) (*CrewSuggestion, error)
}

type service struct {
	trucks  TruckRepository
	drivers DriverRepository
	staff   StaffRepository
	db      *sqlx.DB
}

func NewFleetService(trucks TruckRepository, drivers DriverRepository, staff StaffRepository, db *sqlx.DB) Service {
	return &service{trucks: trucks, drivers: drivers, staff: staff, db: db}
}

func (s *service) RegisterTruck(ctx context.Context, licensePlate string, capacity float64) (*Truck, error) {
	t, err := NewTruck(licensePlate, capacity)
	if err != nil {
		return nil, err
	}
	if err := s.trucks.Create(ctx, s.db, t); err != nil {
		return nil, domainerrors.NewInternal("failed to register truck", err)
	}
	return t, nil
}

func (s *service) RegisterDriver(ctx context.Context, name, licenseNumber string) (*Driver, error) {
	d, err := NewDriver(name, licenseNumber)
	if err != nil {
		return nil, err
	}
	if err := s.drivers.Create(ctx, s.db, d); err != nil {
		return nil, domainerrors.NewInternal("failed to register driver", err)
	}
	return d, nil
}

func (s *service) RegisterStaff(ctx context.Context, name, role string) (*StaffMember, error) {
	m, err := NewStaffMember(name, role)
	if err != nil {
		return nil, err
	}
	if err := s.staff.Create(ctx, s.db, m); err != nil {
		return nil, domainerrors.NewInternal("failed to register staff member", err)
	}
	return m, nil
}

func (s *service) GetTruck(ctx context.Context, id string) (*Truck, error) {
	t, err := s.trucks.GetByID(ctx, s.db, id)
	if err != nil {
		return nil, domainerrors.TruckNotFound(id)
	}
	return t, nil
}

func (s *service) GetDriver(ctx context.Context, id string) (*Driver, error) {
	d, err := s.drivers.GetByID(ctx, s.db, id)
	if err != nil {
		return nil, domainerrors.DriverNotFound(id)
	}
	return d, nil
}

func (s *service) GetStaff(ctx context.Context, id string) (*StaffMember, error) {
	m, err := s.staff.GetByID(ctx, s.db, id)
	if err != nil {
		return nil, domainerrors.StaffNotFound(id)
	}
	return m, nil
}

func (s *service) ListTrucks(ctx context.Context, freeOnly bool) ([]*Truck, error) {
	if freeOnly {
		return s.trucks.ListFree(ctx, s.db)
	}
	return s.trucks.ListAll(ctx, s.db)
}

func (s *service) ListDrivers(ctx context.Context, availableOnly bool) ([]*Driver, error) {
	if availableOnly {
		return s.drivers.ListAvailable(ctx, s.db)
	}
	return s.drivers.ListAll(ctx, s.db)
}

func (s *service) ListStaff(ctx context.Context, availableOnly bool) ([]*StaffMember, error) {
	if availableOnly {
		return s.staff.ListAvailable(ctx, s.db)
	}
	return s.staff.ListAll(ctx, s.db)
}

func (s *service) SuitableTrucks(ctx context.Context, requiredCapacity float64) ([]*Truck, error) {
	free, err := s.trucks.ListFree(ctx, s.db)
	if err != nil {
		return nil, domainerrors.NewInternal("failed to list free trucks", err)
	}
	suitable := make([]*Truck, 0, len(free))
	for _, t := range free {
		if t.Capacity >= requiredCapacity {
			suitable = append(suitable, t)
		}
	}
	return suitable, nil
}

func (s *service) SuggestCrew(ctx context.Context, requiredCapacity float64, staffCount int) (*CrewSuggestion, error) {
	trucks, err := s.trucks.ListFree(ctx, s.db)
	if err != nil {
		return nil, domainerrors.NewInternal("failed to list free trucks", err)
	}
	drivers, err := s.drivers.ListAvailable(ctx, s.db)
	if err != nil {
		return nil, domainerrors.NewInternal("failed to list available drivers", err)
	}
	staff, err := s.staff.ListAvailable(ctx, s.db)
	if err != nil {
		return nil, domainerrors.NewInternal("failed to list available staff", err)
	}

	suggestion := &CrewSuggestion{StaffIDs: []string{}}
	if t := FindSuitableTruck(trucks, requiredCapacity); t != nil {
		suggestion.TruckID = &t.ID
	}
	if d := FindSuitableDriver(drivers); d != nil {
		suggestion.DriverID = &d.ID
	}
	for _, m := range FindSuitableStaff(staff, staffCount) {
		suggestion.StaffIDs = append(suggestion.StaffIDs, m.ID)
	}
	return suggestion, nil
}
