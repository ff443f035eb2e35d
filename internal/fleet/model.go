package fleet

import (
	"time"

	"smart-waste/internal/common"
	domainerrors "smart-waste/internal/errors"
)

func NewTruck(licensePlate string, capacity float64) (*Truck, error) {
	if capacity <= 0 {
		return nil, domainerrors.NewValidation("truck capacity must be positive")
	}
	now := time.Now()
	return &Truck{
		ID:            common.NewPrefixedID("TRUCK"),
		LicensePlate:  licensePlate,
		Capacity:      capacity,
		CurrentStatus: TruckAvailable,
		CreatedAt:     now,
		UpdatedAt:     now,
	}, nil
}

func NewDriver(name, licenseNumber string) (*Driver, error) {
	if name == "" {
		return nil, domainerrors.NewValidation("driver name is required")
	}
	now := time.Now()
	return &Driver{
		ID:            common.NewPrefixedID("DRV"),
		Name:          name,
		LicenseNumber: licenseNumber,
		Available:     true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}, nil
}

func NewStaffMember(name, role string) (*StaffMember, error) {
	if name == "" {
		return nil, domainerrors.NewValidation("staff name is required")
	}
	now := time.Now()
	return &StaffMember{
		ID:        common.NewPrefixedID("STAFF"),
		Name:      name,
		Role:      role,
		Available: true,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// IsFree reports whether the truck can be bound to a route.
func (t *Truck) IsFree() bool {
	return t.CurrentStatus != TruckInUse && t.AssignedDriverID == nil
}

func (t *Truck) Assign(driverID *string) error {
	if !t.IsFree() {
		return domainerrors.TruckAlreadyInUse(t.ID)
	}
	t.CurrentStatus = TruckInUse
	t.AssignedDriverID = driverID
	t.UpdatedAt = time.Now()
	return nil
}

func (t *Truck) Release() {
	t.CurrentStatus = TruckAvailable
	t.AssignedDriverID = nil
	t.UpdatedAt = time.Now()
}

func (d *Driver) IsAvailable() bool {
	return d.Available && d.CurrentRouteID == nil
}

func (d *Driver) Assign(routeID string) error {
	if !d.IsAvailable() {
		if d.CurrentRouteID != nil {
			return domainerrors.ResourceAlreadyAssigned("driver", d.ID, *d.CurrentRouteID)
		}
		return domainerrors.NewConflict("driver " + d.ID + " is not available")
	}
	d.Available = false
	d.CurrentRouteID = &routeID
	d.UpdatedAt = time.Now()
	return nil
}

func (d *Driver) Release() {
	d.Available = true
	d.CurrentRouteID = nil
	d.UpdatedAt = time.Now()
}

func (m *StaffMember) IsAvailable() bool {
	return m.Available && m.CurrentRouteID == nil
}

func (m *StaffMember) Assign(routeID string) error {
	if !m.IsAvailable() {
		if m.CurrentRouteID != nil {
			return domainerrors.ResourceAlreadyAssigned("staff member", m.ID, *m.CurrentRouteID)
		}
		return domainerrors.NewConflict("staff member " + m.ID + " is not available")
	}
	m.Available = false
	m.CurrentRouteID = &routeID
	m.UpdatedAt = time.Now()
	return nil
}

func (m *StaffMember) Release() {
	m.Available = true
	m.CurrentRouteID = nil
	m.UpdatedAt = time.Now()
}
