package planner

import (
	"testing"

	"smart-waste/internal/bin"
)

func testBin(id string, lat, lng float64) *bin.SmartBin {
	return &bin.SmartBin{
		ID:        id,
		Location:  "Test Zone",
		Latitude:  lat,
		Longitude: lng,
		Capacity:  100,
		Status:    bin.StatusFull,
	}
}

func TestCluster_Empty(t *testing.T) {
	groups := Cluster(nil, DefaultMaxLinkDistanceKM)
	if len(groups) != 0 {
		t.Fatalf("expected no groups, got %d", len(groups))
	}
}

func TestCluster_SingleBin(t *testing.T) {
	groups := Cluster([]*bin.SmartBin{testBin("BIN-A", 40.0, -74.0)}, DefaultMaxLinkDistanceKM)
	if len(groups) != 1 || len(groups[0]) != 1 {
		t.Fatalf("expected one group of one bin, got %v", groups)
	}
}

func TestCluster_SplitsDistantBins(t *testing.T) {
	// 0.01 deg of latitude is roughly 1.1 km; 0.1 deg roughly 11 km.
	bins := []*bin.SmartBin{
		testBin("BIN-A", 40.00, -74.0),
		testBin("BIN-B", 40.01, -74.0), // near A
		testBin("BIN-C", 40.10, -74.0), // far from both
		testBin("BIN-D", 40.09, -74.0), // near C
	}

	groups := Cluster(bins, DefaultMaxLinkDistanceKM)

	if len(groups) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(groups))
	}
	if groups[0][0].ID != "BIN-A" || groups[0][1].ID != "BIN-B" {
		t.Fatalf("unexpected first group: %s, %s", groups[0][0].ID, groups[0][1].ID)
	}
	if groups[1][0].ID != "BIN-C" || groups[1][1].ID != "BIN-D" {
		t.Fatalf("unexpected second group: %s, %s", groups[1][0].ID, groups[1][1].ID)
	}
}

func TestCluster_SingleLinkChaining(t *testing.T) {
	// Each bin is within range of its neighbor but A and C are more than
	// the link distance apart; single-link still chains them together.
	bins := []*bin.SmartBin{
		testBin("BIN-A", 40.00, -74.0),
		testBin("BIN-B", 40.02, -74.0),
		testBin("BIN-C", 40.04, -74.0),
	}

	groups := Cluster(bins, DefaultMaxLinkDistanceKM)

	if len(groups) != 1 {
		t.Fatalf("expected 1 chained group, got %d", len(groups))
	}
	if len(groups[0]) != 3 {
		t.Fatalf("expected 3 bins in group, got %d", len(groups[0]))
	}
}

func TestCluster_JoinsFirstMatchingGroup(t *testing.T) {
	// The third bin is within range of both groups; it joins the first.
	bins := []*bin.SmartBin{
		testBin("BIN-A", 40.00, -74.0),
		testBin("BIN-B", 40.04, -74.0),
		testBin("BIN-C", 40.02, -74.0),
	}

	groups := Cluster(bins, DefaultMaxLinkDistanceKM)

	if len(groups) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(groups))
	}
	if len(groups[0]) != 2 || groups[0][1].ID != "BIN-C" {
		t.Fatal("expected BIN-C to join the first group")
	}
}
