package sensor

import (
	"time"

	"smart-waste/internal/common"
)

type Type string

const (
	TypeWorking Type = "WORKING"
	TypeFaulty  Type = "FAULTY"
)

type Sensor struct {
	ID            string     `db:"id" json:"id"`
	BinID         string     `db:"bin_id" json:"bin_id"`
	Type          Type       `db:"type" json:"type"`
	Measurement   float64    `db:"measurement" json:"measurement"`
	Color         string     `db:"color" json:"color"`
	LastReadingAt *time.Time `db:"last_reading_at" json:"last_reading_at,omitempty"`
	CreatedAt     time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time  `db:"updated_at" json:"updated_at"`
}

func New(binID string) *Sensor {
	now := time.Now()
	return &Sensor{
		ID:        common.NewPrefixedID("SNSR"),
		BinID:     binID,
		Type:      TypeWorking,
		Color:     "GREEN",
		CreatedAt: now,
		UpdatedAt: now,
	}
}
