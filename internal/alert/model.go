package alert

import (
	"fmt"
	"time"

	"smart-waste/internal/common"
)

const defaultTitle = "Bin Full Alert"

type Alert struct {
	ID        string    `db:"id" json:"id"`
	BinID     string    `db:"bin_id" json:"bin_id"`
	Location  string    `db:"location" json:"location"`
	Title     string    `db:"title" json:"title"`
	Message   string    `db:"message" json:"message"`
	Reviewed  bool      `db:"reviewed" json:"reviewed"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

func GenerateID() string {
	return common.NewPrefixedID("ALERT")
}

// NewFullBin builds the alert raised when a bin crosses into FULL.
func NewFullBin(binID, location string) *Alert {
	now := time.Now()
	return &Alert{
		ID:        GenerateID(),
		BinID:     binID,
		Location:  location,
		Title:     defaultTitle,
		Message:   fmt.Sprintf("Bin %s at %s is full and needs collection", binID, location),
		Reviewed:  false,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (a *Alert) MarkReviewed() {
	a.Reviewed = true
	a.UpdatedAt = time.Now()
}
