package fleet

import (
	"testing"

	domainerrors "smart-waste/internal/errors"
)

func newTestTruck(t *testing.T) *Truck {
	t.Helper()
	tr, err := NewTruck("WM-1234", 500)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return tr
}

func newTestDriver(t *testing.T) *Driver {
	t.Helper()
	d, err := NewDriver("Sam Carter", "D-99887")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return d
}

func newTestStaff(t *testing.T) *StaffMember {
	t.Helper()
	m, err := NewStaffMember("Lee Ward", "LOADER")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return m
}

func TestNewTruck_RejectsNonPositiveCapacity(t *testing.T) {
	_, err := NewTruck("WM-1234", 0)
	if err == nil {
		t.Fatal("expected error")
	}
	de, ok := err.(*domainerrors.DomainError)
	if !ok {
		t.Fatalf("expected DomainError, got %T", err)
	}
	if de.Code != domainerrors.ErrValidation {
		t.Fatalf("expected VALIDATION, got %s", de.Code)
	}
}

func TestNewDriver_RequiresName(t *testing.T) {
	if _, err := NewDriver("", "D-1"); err == nil {
		t.Fatal("expected error for empty name")
	}
}

// --- Truck lifecycle ---

func TestTruckAssignRelease(t *testing.T) {
	tr := newTestTruck(t)
	if !tr.IsFree() {
		t.Fatal("new truck should be free")
	}

	driverID := "DRV-1"
	if err := tr.Assign(&driverID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tr.CurrentStatus != TruckInUse {
		t.Fatalf("expected IN_USE, got %s", tr.CurrentStatus)
	}
	if tr.IsFree() {
		t.Fatal("assigned truck must not be free")
	}

	if err := tr.Assign(&driverID); err == nil {
		t.Fatal("expected conflict on double assignment")
	} else if de, ok := err.(*domainerrors.DomainError); !ok || de.Code != domainerrors.ErrConflict {
		t.Fatalf("expected CONFLICT, got %v", err)
	}

	tr.Release()
	if !tr.IsFree() {
		t.Fatal("released truck should be free")
	}
	if tr.AssignedDriverID != nil {
		t.Fatal("release must clear the bound driver")
	}
}

// --- Driver lifecycle ---

func TestDriverAssignRelease(t *testing.T) {
	d := newTestDriver(t)
	if !d.IsAvailable() {
		t.Fatal("new driver should be available")
	}

	if err := d.Assign("ROUTE-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.IsAvailable() {
		t.Fatal("assigned driver must not be available")
	}
	if d.CurrentRouteID == nil || *d.CurrentRouteID != "ROUTE-1" {
		t.Fatal("route not recorded")
	}

	err := d.Assign("ROUTE-2")
	if err == nil {
		t.Fatal("expected conflict")
	}
	de, ok := err.(*domainerrors.DomainError)
	if !ok || de.Code != domainerrors.ErrConflict {
		t.Fatalf("expected CONFLICT, got %v", err)
	}

	d.Release()
	if !d.IsAvailable() {
		t.Fatal("released driver should be available")
	}
}

func TestStaffAssignRelease(t *testing.T) {
	m := newTestStaff(t)

	if err := m.Assign("ROUTE-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := m.Assign("ROUTE-2"); err == nil {
		t.Fatal("expected conflict")
	}

	m.Release()
	if !m.IsAvailable() {
		t.Fatal("released staff member should be available")
	}
}
