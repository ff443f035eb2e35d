package fleet

// Selection helpers are pure: they scan the given slice in order and
// never mutate. Callers control ordering.

// FindSuitableTruck returns the first free truck that can carry the
// required load, or nil.
func FindSuitableTruck(trucks []*Truck, requiredCapacity float64) *Truck {
	for _, t := range trucks {
		if t.IsFree() && t.Capacity >= requiredCapacity {
			return t
		}
	}
	return nil
}

// FindSuitableDriver returns the first available driver, or nil.
func FindSuitableDriver(drivers []*Driver) *Driver {
	for _, d := range drivers {
		if d.IsAvailable() {
			return d
		}
	}
	return nil
}

// FindSuitableStaff returns up to max available staff members.
func FindSuitableStaff(staff []*StaffMember, max int) []*StaffMember {
	var out []*StaffMember
	for _, m := range staff {
		if len(out) >= max {
			break
		}
		if m.IsAvailable() {
			out = append(out, m)
		}
	}
	return out
}
