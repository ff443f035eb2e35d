package fleet

import "testing"

func TestFindSuitableTruck(t *testing.T) {
	small := newTestTruck(t)
	small.Capacity = 100
	busy := newTestTruck(t)
	busy.Capacity = 1000
	busy.CurrentStatus = TruckInUse
	big := newTestTruck(t)
	big.Capacity = 800

	got := FindSuitableTruck([]*Truck{small, busy, big}, 500)
	if got == nil || got.ID != big.ID {
		t.Fatalf("expected %s, got %v", big.ID, got)
	}
}

func TestFindSuitableTruck_None(t *testing.T) {
	small := newTestTruck(t)
	small.Capacity = 100

	if got := FindSuitableTruck([]*Truck{small}, 500); got != nil {
		t.Fatalf("expected nil, got %s", got.ID)
	}
}

func TestFindSuitableDriver_FirstAvailable(t *testing.T) {
	routeID := "ROUTE-1"
	busy := newTestDriver(t)
	busy.CurrentRouteID = &routeID
	free := newTestDriver(t)

	got := FindSuitableDriver([]*Driver{busy, free})
	if got == nil || got.ID != free.ID {
		t.Fatalf("expected %s, got %v", free.ID, got)
	}
}

func TestFindSuitableStaff_CapsAtMax(t *testing.T) {
	a := newTestStaff(t)
	b := newTestStaff(t)
	c := newTestStaff(t)
	routeID := "ROUTE-1"
	b.CurrentRouteID = &routeID

	got := FindSuitableStaff([]*StaffMember{a, b, c}, 2)
	if len(got) != 2 {
		t.Fatalf("expected 2 staff, got %d", len(got))
	}
	if got[0].ID != a.ID || got[1].ID != c.ID {
		t.Fatal("unavailable staff must be skipped")
	}
}

func TestFindSuitableStaff_FewerThanMax(t *testing.T) {
	a := newTestStaff(t)

	got := FindSuitableStaff([]*StaffMember{a}, 2)
	if len(got) != 1 {
		t.Fatalf("expected 1 staff, got %d", len(got))
	}
}
