package bin

import (
	"time"
)

type Status string

const (
	StatusEmpty    Status = "EMPTY"
	StatusHalfFull Status = "HALF_FULL"
	StatusFull     Status = "FULL"
)

// AlertAction tells the caller what a level update requires of the
// alerting side. Alerts are edge-triggered: only the transition into
// FULL raises one.
type AlertAction int

const (
	ActionNone AlertAction = iota
	ActionRaiseAlert
)

type SmartBin struct {
	ID              string     `db:"id" json:"id"`
	Location        string     `db:"location" json:"location"`
	Latitude        float64    `db:"latitude" json:"latitude"`
	Longitude       float64    `db:"longitude" json:"longitude"`
	CurrentLevel    float64    `db:"current_level" json:"current_level"`
	Capacity        float64    `db:"capacity" json:"capacity"`
	Status          Status     `db:"status" json:"status"`
	LastCollectedAt *time.Time `db:"last_collected_at" json:"last_collected_at,omitempty"`
	CreatedAt       time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time  `db:"updated_at" json:"updated_at"`
}
