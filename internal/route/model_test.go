package route

import (
	"testing"
	"time"

	domainerrors "smart-waste/internal/errors"
)

func TestNewRoute_Defaults(t *testing.T) {
	rt := NewRoute(time.Now())

	if rt.Status != StatusPending {
		t.Fatalf("expected PENDING, got %s", rt.Status)
	}
	if rt.AssignedStaffIDs == nil {
		t.Fatal("staff ids must default to an empty slice")
	}
	if rt.AssignedTruckID != nil || rt.AssignedDriverID != nil {
		t.Fatal("new route must have no resources bound")
	}
}

// --- Transitions ---

func TestCanTransitionTo_AllowedMoves(t *testing.T) {
	allowed := []struct{ from, to Status }{
		{StatusPending, StatusAssigned},
		{StatusPending, StatusCancelled},
		{StatusAssigned, StatusInProgress},
		{StatusAssigned, StatusCompleted},
		{StatusAssigned, StatusCancelled},
		{StatusInProgress, StatusCompleted},
		{StatusInProgress, StatusCancelled},
	}
	for _, tc := range allowed {
		if !tc.from.CanTransitionTo(tc.to) {
			t.Fatalf("%s -> %s should be allowed", tc.from, tc.to)
		}
	}
}

func TestCanTransitionTo_DeniedMoves(t *testing.T) {
	denied := []struct{ from, to Status }{
		{StatusPending, StatusInProgress},
		{StatusPending, StatusCompleted},
		{StatusCompleted, StatusPending},
		{StatusCompleted, StatusCancelled},
		{StatusCancelled, StatusAssigned},
		{StatusAssigned, StatusPending},
	}
	for _, tc := range denied {
		if tc.from.CanTransitionTo(tc.to) {
			t.Fatalf("%s -> %s should be denied", tc.from, tc.to)
		}
	}
}

func TestIsTerminal(t *testing.T) {
	if !StatusCompleted.IsTerminal() || !StatusCancelled.IsTerminal() {
		t.Fatal("COMPLETED and CANCELLED are terminal")
	}
	if StatusPending.IsTerminal() || StatusAssigned.IsTerminal() || StatusInProgress.IsTerminal() {
		t.Fatal("non-terminal status reported terminal")
	}
}

func TestTransitionTo_RejectsInvalidMove(t *testing.T) {
	rt := NewRoute(time.Now())

	err := rt.TransitionTo(StatusCompleted)
	if err == nil {
		t.Fatal("expected error")
	}
	de, ok := err.(*domainerrors.DomainError)
	if !ok {
		t.Fatalf("expected DomainError, got %T", err)
	}
	if de.Code != domainerrors.ErrInvalidTransition {
		t.Fatalf("expected INVALID_TRANSITION, got %s", de.Code)
	}
	if rt.Status != StatusPending {
		t.Fatalf("status must not change on rejection, got %s", rt.Status)
	}
}

func TestTransitionTo_AppliesValidMove(t *testing.T) {
	rt := NewRoute(time.Now())

	if err := rt.TransitionTo(StatusAssigned); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rt.Status != StatusAssigned {
		t.Fatalf("expected ASSIGNED, got %s", rt.Status)
	}
}

func TestBind_NilStaffBecomesEmptySlice(t *testing.T) {
	rt := NewRoute(time.Now())
	truckID, driverID := "TRUCK-1", "DRV-1"

	rt.Bind(&truckID, &driverID, nil)

	if rt.AssignedTruckID == nil || *rt.AssignedTruckID != "TRUCK-1" {
		t.Fatal("truck not bound")
	}
	if rt.AssignedDriverID == nil || *rt.AssignedDriverID != "DRV-1" {
		t.Fatal("driver not bound")
	}
	if rt.AssignedStaffIDs == nil || len(rt.AssignedStaffIDs) != 0 {
		t.Fatal("nil staff must be stored as an empty slice")
	}
}

// --- Stops ---

func TestStopComplete_Idempotent(t *testing.T) {
	s := NewStop("ROUTE-1", "BIN-1", "Downtown", 40.7, -74.0, 1)

	if !s.Complete() {
		t.Fatal("first completion should report a change")
	}
	if s.Status != StopCompleted {
		t.Fatalf("expected COMPLETED, got %s", s.Status)
	}
	if s.CollectedAt == nil {
		t.Fatal("expected collected timestamp")
	}

	first := *s.CollectedAt
	if s.Complete() {
		t.Fatal("second completion should be a no-op")
	}
	if !s.CollectedAt.Equal(first) {
		t.Fatal("collected timestamp must not change on repeat")
	}
}

func TestParseStatus(t *testing.T) {
	if _, err := ParseStatus("IN_PROGRESS"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err := ParseStatus("SHIPPED")
	if err == nil {
		t.Fatal("expected error for unknown status")
	}
	de, ok := err.(*domainerrors.DomainError)
	if !ok {
		t.Fatalf("expected DomainError, got %T", err)
	}
	if de.Code != domainerrors.ErrValidation {
		t.Fatalf("expected VALIDATION, got %s", de.Code)
	}
}
