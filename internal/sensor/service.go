package sensor

import (
	"context"

	"github.com/jmoiron/sqlx"

	domainerrors "smart-waste/internal/errors"
)

type Service interface {
	// CreateForBin and RecordMeasurement satisfy bin.SensorRegistrar.
	CreateForBin(ctx context.Context, ext sqlx.ExtContext, binID string) error
	RecordMeasurement(ctx context.Context, ext sqlx.ExtContext, binID string, level float64, color string) error
	GetByBinID(ctx context.Context, binID string) (*Sensor, error)
	ListAll(ctx context.Context) ([]*Sensor, error)
	ListWorking(ctx context.Context) ([]*Sensor, error)
	SetType(ctx context.Context, sensorID string, t Type) error
}

type service struct {
	repo Repository
	db   *sqlx.DB
}

func NewSensorService(repo Repository, db *sqlx.DB) Service {
	return &service{repo: repo, db: db}
}

func (s *service) CreateForBin(ctx context.Context, ext sqlx.ExtContext, binID string) error {
	return s.repo.Create(ctx, ext, New(binID))
}

func (s *service) RecordMeasurement(ctx context.Context, ext sqlx.ExtContext, binID string, level float64, color string) error {
	return s.repo.UpdateMeasurement(ctx, ext, binID, level, color)
}

func (s *service) GetByBinID(ctx context.Context, binID string) (*Sensor, error) {
	sn, err := s.repo.GetByBinID(ctx, s.db, binID)
	if err != nil {
		return nil, domainerrors.NewNotFound("sensor for bin", binID)
	}
	return sn, nil
}

func (s *service) ListAll(ctx context.Context) ([]*Sensor, error) {
	return s.repo.ListAll(ctx, s.db)
}

func (s *service) ListWorking(ctx context.Context) ([]*Sensor, error) {
	return s.repo.ListWorking(ctx, s.db)
}

func (s *service) SetType(ctx context.Context, sensorID string, t Type) error {
	if t != TypeWorking && t != TypeFaulty {
		return domainerrors.NewValidation("sensor type must be WORKING or FAULTY")
	}
	n, err := s.repo.SetType(ctx, s.db, sensorID, t)
	if err != nil {
		return domainerrors.NewInternal("failed to update sensor type", err)
	}
	if n == 0 {
		return domainerrors.NewNotFound("sensor", sensorID)
	}
	return nil
}
