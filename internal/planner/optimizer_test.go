package planner

import (
	"math"
	"testing"
	"time"

	"smart-waste/internal/bin"
	"smart-waste/internal/common"
	"smart-waste/internal/route"
)

func TestNearestNeighborOrder_GreedyFromDepot(t *testing.T) {
	depot := common.NewLocation(40.00, -74.0)
	bins := []*bin.SmartBin{
		testBin("BIN-FAR", 40.03, -74.0),
		testBin("BIN-NEAR", 40.01, -74.0),
		testBin("BIN-MID", 40.02, -74.0),
	}

	ordered := NearestNeighborOrder(bins, depot)

	want := []string{"BIN-NEAR", "BIN-MID", "BIN-FAR"}
	for i, id := range want {
		if ordered[i].ID != id {
			t.Fatalf("position %d: expected %s, got %s", i, id, ordered[i].ID)
		}
	}
}

func TestNearestNeighborOrder_DoesNotMutateInput(t *testing.T) {
	depot := common.NewLocation(40.00, -74.0)
	bins := []*bin.SmartBin{
		testBin("BIN-FAR", 40.03, -74.0),
		testBin("BIN-NEAR", 40.01, -74.0),
	}

	_ = NearestNeighborOrder(bins, depot)

	if bins[0].ID != "BIN-FAR" || bins[1].ID != "BIN-NEAR" {
		t.Fatal("input slice was reordered")
	}
}

func TestNearestNeighborOrder_Empty(t *testing.T) {
	if got := NearestNeighborOrder(nil, common.NewLocation(40, -74)); len(got) != 0 {
		t.Fatalf("expected empty order, got %d", len(got))
	}
}

// --- RouteMetrics ---

func TestRouteMetrics_Empty(t *testing.T) {
	m := RouteMetrics(nil, common.NewLocation(40, -74))
	if m.TotalDistanceKM != 0 || m.EstimatedMinutes != 0 {
		t.Fatalf("expected zero metrics, got %+v", m)
	}
}

func TestRouteMetrics_NoReturnLeg(t *testing.T) {
	depot := common.NewLocation(40.00, -74.0)
	stop := route.NewStop("ROUTE-X", "BIN-A", "Test Zone", 40.05, -74.0, 1)

	m := RouteMetrics([]*route.Stop{stop}, depot)

	// Distance covers only the outbound leg.
	leg := common.DistanceKm(depot, stop.Coordinates())
	want := math.Round(leg*100) / 100
	if m.TotalDistanceKM != want {
		t.Fatalf("expected %f, got %f", want, m.TotalDistanceKM)
	}
}

func TestRouteMetrics_SumsConsecutiveLegs(t *testing.T) {
	depot := common.NewLocation(40.00, -74.0)
	s1 := route.NewStop("ROUTE-X", "BIN-A", "Test Zone", 40.02, -74.0, 1)
	s2 := route.NewStop("ROUTE-X", "BIN-B", "Test Zone", 40.05, -74.0, 2)

	m := RouteMetrics([]*route.Stop{s1, s2}, depot)

	raw := common.DistanceKm(depot, s1.Coordinates()) + common.DistanceKm(s1.Coordinates(), s2.Coordinates())
	wantDist := math.Round(raw*100) / 100
	wantMin := serviceMinutesPerStop*2 + int(math.Round(raw/averageSpeedKMH*60))

	if m.TotalDistanceKM != wantDist {
		t.Fatalf("expected distance %f, got %f", wantDist, m.TotalDistanceKM)
	}
	if m.EstimatedMinutes != wantMin {
		t.Fatalf("expected %d minutes, got %d", wantMin, m.EstimatedMinutes)
	}
}

// --- BuildRoute ---

func TestBuildRoute_SequencesAndMeasures(t *testing.T) {
	depot := common.NewLocation(40.00, -74.0)
	bins := []*bin.SmartBin{
		testBin("BIN-FAR", 40.04, -74.0),
		testBin("BIN-NEAR", 40.01, -74.0),
	}

	rt, stops := BuildRoute(bins, depot, time.Now())

	if rt.Status != route.StatusPending {
		t.Fatalf("expected PENDING, got %s", rt.Status)
	}
	if len(stops) != 2 {
		t.Fatalf("expected 2 stops, got %d", len(stops))
	}
	if stops[0].BinID != "BIN-NEAR" || stops[1].BinID != "BIN-FAR" {
		t.Fatalf("unexpected stop order: %s, %s", stops[0].BinID, stops[1].BinID)
	}
	if stops[0].SequenceOrder != 1 || stops[1].SequenceOrder != 2 {
		t.Fatal("sequence orders must start at 1 and increase")
	}
	for _, s := range stops {
		if s.RouteID != rt.ID {
			t.Fatalf("stop %s not linked to route %s", s.ID, rt.ID)
		}
		if s.Status != route.StopPending {
			t.Fatalf("expected PENDING stop, got %s", s.Status)
		}
	}
	if rt.TotalDistanceKM <= 0 {
		t.Fatalf("expected positive distance, got %f", rt.TotalDistanceKM)
	}
	if rt.EstimatedMinutes < serviceMinutesPerStop*2 {
		t.Fatalf("estimate must at least cover service time, got %d", rt.EstimatedMinutes)
	}
}
