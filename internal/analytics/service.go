package analytics

import (
	"context"

	"github.com/jmoiron/sqlx"

	domainerrors "smart-waste/internal/errors"
)

type TotalWaste struct {
	TotalLevel    float64 `db:"total_level" json:"total_level"`
	TotalCapacity float64 `db:"total_capacity" json:"total_capacity"`
	BinCount      int     `db:"bin_count" json:"bin_count"`
}

type LocationWaste struct {
	Location   string  `db:"location" json:"location"`
	TotalLevel float64 `db:"total_level" json:"total_level"`
	BinCount   int     `db:"bin_count" json:"bin_count"`
}

type StatusCount struct {
	Status string `db:"status" json:"status"`
	Count  int    `db:"count" json:"count"`
}

type Dashboard struct {
	TotalWaste      TotalWaste      `json:"total_waste"`
	WasteByLocation []LocationWaste `json:"waste_by_location"`
	BinStatus       []StatusCount   `json:"bin_status"`
	OpenAlerts      int             `json:"open_alerts"`
	ActiveRoutes    int             `json:"active_routes"`
}

type Service interface {
	Dashboard(ctx context.Context) (*Dashboard, error)
	WasteByLocation(ctx context.Context) ([]LocationWaste, error)
	BinStatusBreakdown(ctx context.Context) ([]StatusCount, error)
}

type service struct {
	db *sqlx.DB
}

func NewAnalyticsService(db *sqlx.DB) Service {
	return &service{db: db}
}

func (s *service) Dashboard(ctx context.Context) (*Dashboard, error) {
	var d Dashboard

	const totalQuery = `SELECT COALESCE(SUM(current_level), 0) AS total_level,
		COALESCE(SUM(capacity), 0) AS total_capacity, COUNT(*) AS bin_count FROM bins`
	if err := sqlx.GetContext(ctx, s.db, &d.TotalWaste, totalQuery); err != nil {
		return nil, domainerrors.NewInternal("failed to aggregate totals", err)
	}

	byLocation, err := s.WasteByLocation(ctx)
	if err != nil {
		return nil, err
	}
	d.WasteByLocation = byLocation

	byStatus, err := s.BinStatusBreakdown(ctx)
	if err != nil {
		return nil, err
	}
	d.BinStatus = byStatus

	if err := sqlx.GetContext(ctx, s.db, &d.OpenAlerts,
		`SELECT COUNT(*) FROM alerts WHERE reviewed = FALSE`); err != nil {
		return nil, domainerrors.NewInternal("failed to count open alerts", err)
	}

	if err := sqlx.GetContext(ctx, s.db, &d.ActiveRoutes,
		`SELECT COUNT(*) FROM routes WHERE status IN ('ASSIGNED', 'IN_PROGRESS')`); err != nil {
		return nil, domainerrors.NewInternal("failed to count active routes", err)
	}

	return &d, nil
}

func (s *service) WasteByLocation(ctx context.Context) ([]LocationWaste, error) {
	var out []LocationWaste
	const query = `SELECT location, COALESCE(SUM(current_level), 0) AS total_level, COUNT(*) AS bin_count
		FROM bins GROUP BY location ORDER BY total_level DESC`
	if err := sqlx.SelectContext(ctx, s.db, &out, query); err != nil {
		return nil, domainerrors.NewInternal("failed to aggregate waste by location", err)
	}
	return out, nil
}

func (s *service) BinStatusBreakdown(ctx context.Context) ([]StatusCount, error) {
	var out []StatusCount
	const query = `SELECT status, COUNT(*) AS count FROM bins GROUP BY status ORDER BY status ASC`
	if err := sqlx.SelectContext(ctx, s.db, &out, query); err != nil {
		return nil, domainerrors.NewInternal("failed to aggregate bin statuses", err)
	}
	return out, nil
}
