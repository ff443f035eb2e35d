package route

import (
	"time"

	"github.com/lib/pq"
)

type Status string

const (
	StatusPending    Status = "PENDING"
	StatusAssigned   Status = "ASSIGNED"
	StatusInProgress Status = "IN_PROGRESS"
	StatusCompleted  Status = "COMPLETED"
	StatusCancelled  Status = "CANCELLED"
)

type StopStatus string

const (
	StopPending   StopStatus = "PENDING"
	StopCompleted StopStatus = "COMPLETED"
)

type CollectionRoute struct {
	ID               string         `db:"id" json:"id"`
	Date             time.Time      `db:"route_date" json:"date"`
	Status           Status         `db:"status" json:"status"`
	AssignedTruckID  *string        `db:"assigned_truck_id" json:"assigned_truck_id,omitempty"`
	AssignedDriverID *string        `db:"assigned_driver_id" json:"assigned_driver_id,omitempty"`
	AssignedStaffIDs pq.StringArray `db:"assigned_staff_ids" json:"assigned_staff_ids"`
	TotalDistanceKM  float64        `db:"total_distance_km" json:"total_distance_km"`
	EstimatedMinutes int            `db:"estimated_minutes" json:"estimated_minutes"`
	CreatedAt        time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time      `db:"updated_at" json:"updated_at"`
}

type Stop struct {
	ID            string     `db:"id" json:"id"`
	RouteID       string     `db:"route_id" json:"route_id"`
	BinID         string     `db:"bin_id" json:"bin_id"`
	BinLocation   string     `db:"bin_location" json:"bin_location"`
	Latitude      float64    `db:"latitude" json:"latitude"`
	Longitude     float64    `db:"longitude" json:"longitude"`
	SequenceOrder int        `db:"sequence_order" json:"sequence_order"`
	Status        StopStatus `db:"status" json:"status"`
	CollectedAt   *time.Time `db:"collected_at" json:"collected_at,omitempty"`
	CreatedAt     time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time  `db:"updated_at" json:"updated_at"`
}

type RouteWithStops struct {
	*CollectionRoute
	Stops []*Stop `json:"stops"`
}
