package fleet

import (
	"time"
)

type TruckStatus string

const (
	TruckAvailable TruckStatus = "AVAILABLE"
	TruckNotInUse  TruckStatus = "NOT_IN_USE"
	TruckInUse     TruckStatus = "IN_USE"
)

type Truck struct {
	ID               string      `db:"id" json:"id"`
	LicensePlate     string      `db:"license_plate" json:"license_plate"`
	Capacity         float64     `db:"capacity" json:"capacity"`
	CurrentStatus    TruckStatus `db:"current_status" json:"current_status"`
	AssignedDriverID *string     `db:"assigned_driver_id" json:"assigned_driver_id,omitempty"`
	CreatedAt        time.Time   `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time   `db:"updated_at" json:"updated_at"`
}

type Driver struct {
	ID             string     `db:"id" json:"id"`
	Name           string     `db:"name" json:"name"`
	LicenseNumber  string     `db:"license_number" json:"license_number"`
	Available      bool       `db:"available" json:"available"`
	CurrentRouteID *string    `db:"current_route_id" json:"current_route_id,omitempty"`
	CreatedAt      time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time  `db:"updated_at" json:"updated_at"`
}

type StaffMember struct {
	ID             string     `db:"id" json:"id"`
	Name           string     `db:"name" json:"name"`
	Role           string     `db:"role" json:"role"`
	Available      bool       `db:"available" json:"available"`
	CurrentRouteID *string    `db:"current_route_id" json:"current_route_id,omitempty"`
	CreatedAt      time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time  `db:"updated_at" json:"updated_at"`
}
