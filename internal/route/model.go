package route

import (
	"fmt"
	"time"

	"smart-waste/internal/common"
	domainerrors "smart-waste/internal/errors"
)

func GenerateID() string {
	return common.NewPrefixedID("ROUTE")
}

func GenerateStopID() string {
	return common.NewPrefixedID("STOP")
}

func NewRoute(date time.Time) *CollectionRoute {
	now := time.Now()
	return &CollectionRoute{
		ID:               GenerateID(),
		Date:             date,
		Status:           StatusPending,
		AssignedStaffIDs: []string{},
		CreatedAt:        now,
		UpdatedAt:        now,
	}
}

func NewStop(routeID, binID, binLocation string, lat, lng float64, sequenceOrder int) *Stop {
	now := time.Now()
	return &Stop{
		ID:            GenerateStopID(),
		RouteID:       routeID,
		BinID:         binID,
		BinLocation:   binLocation,
		Latitude:      lat,
		Longitude:     lng,
		SequenceOrder: sequenceOrder,
		Status:        StopPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// The lifecycle is a closed table; anything not listed is rejected.
// Cancellation is allowed from any non-terminal state, completion only
// once the route has actually been worked.
var transitions = map[Status]map[Status]bool{
	StatusPending:    {StatusAssigned: true, StatusCancelled: true},
	StatusAssigned:   {StatusInProgress: true, StatusCompleted: true, StatusCancelled: true},
	StatusInProgress: {StatusCompleted: true, StatusCancelled: true},
	StatusCompleted:  {},
	StatusCancelled:  {},
}

func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

func (s Status) CanTransitionTo(next Status) bool {
	allowed, ok := transitions[s]
	if !ok {
		return false
	}
	return allowed[next]
}

func (r *CollectionRoute) TransitionTo(next Status) error {
	if !r.Status.CanTransitionTo(next) {
		return domainerrors.RouteInvalidTransition(string(r.Status), string(next))
	}
	r.Status = next
	r.UpdatedAt = time.Now()
	return nil
}

// Bind records the resources attached during assignment. Status change
// is handled separately via TransitionTo.
func (r *CollectionRoute) Bind(truckID, driverID *string, staffIDs []string) {
	r.AssignedTruckID = truckID
	r.AssignedDriverID = driverID
	if staffIDs == nil {
		staffIDs = []string{}
	}
	r.AssignedStaffIDs = staffIDs
	r.UpdatedAt = time.Now()
}

// Complete marks the stop collected. Returns false when the stop was
// already completed (idempotent).
func (s *Stop) Complete() bool {
	if s.Status == StopCompleted {
		return false
	}
	now := time.Now()
	s.Status = StopCompleted
	s.CollectedAt = &now
	s.UpdatedAt = now
	return true
}

func (s *Stop) Coordinates() common.Location {
	return common.NewLocation(s.Latitude, s.Longitude)
}

func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusPending, StatusAssigned, StatusInProgress, StatusCompleted, StatusCancelled:
		return Status(s), nil
	default:
		return "", domainerrors.NewValidation(fmt.Sprintf("unknown route status %q", s))
	}
}
