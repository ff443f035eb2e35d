package bin

import (
	"time"

	"smart-waste/internal/common"
	domainerrors "smart-waste/internal/errors"
)

const (
	// Fill percentage thresholds, inclusive.
	HalfFullThreshold = 50.0
	FullThreshold     = 80.0
)

func GenerateID() string {
	return common.NewPrefixedID("BIN")
}

func New(location string, lat, lng, capacity float64) (*SmartBin, error) {
	if location == "" {
		return nil, domainerrors.NewValidation("bin location is required")
	}
	if err := common.ValidateLatLng(lat, lng); err != nil {
		return nil, domainerrors.NewValidation(err.Error())
	}
	if capacity <= 0 {
		return nil, domainerrors.BinInvalidCapacity(capacity)
	}
	now := time.Now()
	return &SmartBin{
		ID:              GenerateID(),
		Location:        location,
		Latitude:        lat,
		Longitude:       lng,
		CurrentLevel:    0,
		Capacity:        capacity,
		Status:          StatusEmpty,
		LastCollectedAt: &now,
		CreatedAt:       now,
		UpdatedAt:       now,
	}, nil
}

func (b *SmartBin) Coordinates() common.Location {
	return common.NewLocation(b.Latitude, b.Longitude)
}

// ClampMeasurement bounds a raw sensor reading to the meaningful [0, 100]
// fill range before classification.
func ClampMeasurement(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// Classify maps a fill level against capacity to a bin status.
// A non-positive capacity is a deployment mistake, not a reading problem.
func Classify(level, capacity float64) (Status, error) {
	if capacity <= 0 {
		return "", domainerrors.BinInvalidCapacity(capacity)
	}
	pct := level / capacity * 100
	switch {
	case pct >= FullThreshold:
		return StatusFull, nil
	case pct >= HalfFullThreshold:
		return StatusHalfFull, nil
	default:
		return StatusEmpty, nil
	}
}

// ApplyReading clamps and applies a sensor reading, reclassifies the bin,
// and reports whether the change crossed into FULL.
func (b *SmartBin) ApplyReading(raw float64) (AlertAction, error) {
	level := ClampMeasurement(raw)
	status, err := Classify(level, b.Capacity)
	if err != nil {
		return ActionNone, err
	}

	prev := b.Status
	b.CurrentLevel = level
	b.Status = status
	b.UpdatedAt = time.Now()

	if status == StatusFull && prev != StatusFull {
		return ActionRaiseAlert, nil
	}
	return ActionNone, nil
}

// MarkCollected resets the bin after a pickup.
func (b *SmartBin) MarkCollected() {
	now := time.Now()
	b.CurrentLevel = 0
	b.Status = StatusEmpty
	b.LastCollectedAt = &now
	b.UpdatedAt = now
}

// Color is the map-pin color used by dashboard clients.
func (b *SmartBin) Color() string {
	switch b.Status {
	case StatusFull:
		return "RED"
	case StatusHalfFull:
		return "BLUE"
	case StatusEmpty:
		return "GREEN"
	default:
		return "GRAY"
	}
}
