package planner

import (
	"smart-waste/internal/bin"
	"smart-waste/internal/common"
)

const DefaultMaxLinkDistanceKM = 3.0

// Cluster groups bins by geographic proximity: a bin joins the first
// existing group containing any member within maxLinkKm, otherwise it
// starts a new group. Single-link and input-order dependent, so callers
// must hand in bins in a stable order.
func Cluster(bins []*bin.SmartBin, maxLinkKm float64) [][]*bin.SmartBin {
	var groups [][]*bin.SmartBin

	for _, b := range bins {
		placed := false
		for i, group := range groups {
			if withinLinkDistance(b, group, maxLinkKm) {
				groups[i] = append(group, b)
				placed = true
				break
			}
		}
		if !placed {
			groups = append(groups, []*bin.SmartBin{b})
		}
	}

	return groups
}

func withinLinkDistance(b *bin.SmartBin, group []*bin.SmartBin, maxLinkKm float64) bool {
	for _, member := range group {
		if common.DistanceKm(b.Coordinates(), member.Coordinates()) <= maxLinkKm {
			return true
		}
	}
	return false
}
