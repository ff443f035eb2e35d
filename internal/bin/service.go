package bin

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"smart-waste/internal/alert"
	domainerrors "smart-waste/internal/errors"
	"smart-waste/internal/redis"
)

// SensorRegistrar keeps the bin's sensor row in step with the bin
// lifecycle without this package importing the sensor package.
type SensorRegistrar interface {
	CreateForBin(ctx context.Context, ext sqlx.ExtContext, binID string) error
	RecordMeasurement(ctx context.Context, ext sqlx.ExtContext, binID string, level float64, color string) error
}

type Service interface {
	Create(ctx context.Context, location string, lat, lng, capacity float64) (*SmartBin, error)
	GetByID(ctx context.Context, id string) (*SmartBin, error)
	GetStatus(ctx context.Context, id string) (*redis.CachedBinStatus, error)
	ListAll(ctx context.Context) ([]*SmartBin, error)
	ListByStatus(ctx context.Context, status Status) ([]*SmartBin, error)
	ListByLocation(ctx context.Context, location string) ([]*SmartBin, error)
	UpdateLevel(ctx context.Context, id string, level float64) (*SmartBin, error)
	MarkCollected(ctx context.Context, id string) (*SmartBin, error)
	// MarkCollectedWithTx runs the collection reset inside the caller's
	// transaction (stop completion path).
	MarkCollectedWithTx(ctx context.Context, tx sqlx.ExtContext, id string) error
	Delete(ctx context.Context, id string) error
}

type service struct {
	repo    Repository
	alerts  alert.Service
	sensors SensorRegistrar
	db      *sqlx.DB
	cache   *redis.BinStatusCache
}

func NewBinService(repo Repository, alerts alert.Service, sensors SensorRegistrar, db *sqlx.DB, cache *redis.BinStatusCache) Service {
	return &service{
		repo:    repo,
		alerts:  alerts,
		sensors: sensors,
		db:      db,
		cache:   cache,
	}
}

// ParseStatus validates a status string from the query surface.
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusEmpty, StatusHalfFull, StatusFull:
		return Status(s), nil
	default:
		return "", domainerrors.NewValidation(fmt.Sprintf("unknown bin status %q", s))
	}
}

func (s *service) Create(ctx context.Context, location string, lat, lng, capacity float64) (*SmartBin, error) {
	b, err := New(location, lat, lng, capacity)
	if err != nil {
		return nil, err
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, domainerrors.NewInternal("failed to begin transaction", err)
	}
	defer tx.Rollback()

	if err := s.repo.Create(ctx, tx, b); err != nil {
		return nil, domainerrors.NewInternal("failed to create bin", err)
	}
	if err := s.sensors.CreateForBin(ctx, tx, b.ID); err != nil {
		return nil, domainerrors.NewInternal("failed to create bin sensor", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, domainerrors.NewInternal("failed to commit transaction", err)
	}

	_ = s.cache.Set(ctx, b.ID, b.CurrentLevel, string(b.Status))

	return b, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*SmartBin, error) {
	b, err := s.repo.GetByID(ctx, s.db, id)
	if err != nil {
		return nil, domainerrors.BinNotFound(id)
	}
	return b, nil
}

func (s *service) GetStatus(ctx context.Context, id string) (*redis.CachedBinStatus, error) {
	cached, err := s.cache.Get(ctx, id)
	if err == nil && cached != nil {
		return cached, nil
	}

	b, err := s.repo.GetByID(ctx, s.db, id)
	if err != nil {
		return nil, domainerrors.BinNotFound(id)
	}

	_ = s.cache.Set(ctx, b.ID, b.CurrentLevel, string(b.Status))

	return &redis.CachedBinStatus{
		CurrentLevel: b.CurrentLevel,
		Status:       string(b.Status),
		Timestamp:    b.UpdatedAt,
	}, nil
}

func (s *service) ListAll(ctx context.Context) ([]*SmartBin, error) {
	return s.repo.ListAll(ctx, s.db)
}

func (s *service) ListByStatus(ctx context.Context, status Status) ([]*SmartBin, error) {
	return s.repo.ListByStatus(ctx, s.db, status)
}

func (s *service) ListByLocation(ctx context.Context, location string) ([]*SmartBin, error) {
	return s.repo.ListByLocation(ctx, s.db, location)
}

func (s *service) UpdateLevel(ctx context.Context, id string, level float64) (*SmartBin, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, domainerrors.NewInternal("failed to begin transaction", err)
	}
	defer tx.Rollback()

	b, err := s.repo.GetByIDForUpdate(ctx, tx, id)
	if err != nil {
		return nil, domainerrors.BinNotFound(id)
	}

	action, err := b.ApplyReading(level)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, tx, b); err != nil {
		return nil, domainerrors.NewInternal("failed to update bin level", err)
	}
	if err := s.sensors.RecordMeasurement(ctx, tx, b.ID, b.CurrentLevel, b.Color()); err != nil {
		return nil, domainerrors.NewInternal("failed to record sensor measurement", err)
	}

	if action == ActionRaiseAlert {
		if _, err := s.alerts.RaiseWithTx(ctx, tx, b.ID, b.Location); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, domainerrors.NewInternal("failed to commit transaction", err)
	}

	_ = s.cache.Set(ctx, b.ID, b.CurrentLevel, string(b.Status))

	return b, nil
}

func (s *service) MarkCollected(ctx context.Context, id string) (*SmartBin, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, domainerrors.NewInternal("failed to begin transaction", err)
	}
	defer tx.Rollback()

	b, err := s.collectInTx(ctx, tx, id)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, domainerrors.NewInternal("failed to commit transaction", err)
	}

	_ = s.cache.Set(ctx, b.ID, b.CurrentLevel, string(b.Status))

	return b, nil
}

func (s *service) MarkCollectedWithTx(ctx context.Context, tx sqlx.ExtContext, id string) error {
	b, err := s.collectInTx(ctx, tx, id)
	if err != nil {
		return err
	}
	_ = s.cache.Set(ctx, b.ID, b.CurrentLevel, string(b.Status))
	return nil
}

func (s *service) collectInTx(ctx context.Context, tx sqlx.ExtContext, id string) (*SmartBin, error) {
	b, err := s.repo.GetByIDForUpdate(ctx, tx, id)
	if err != nil {
		return nil, domainerrors.BinNotFound(id)
	}

	b.MarkCollected()

	if err := s.repo.Update(ctx, tx, b); err != nil {
		return nil, domainerrors.NewInternal("failed to mark bin collected", err)
	}
	if err := s.sensors.RecordMeasurement(ctx, tx, b.ID, 0, b.Color()); err != nil {
		return nil, domainerrors.NewInternal("failed to reset sensor measurement", err)
	}
	if err := s.alerts.ResolveWithTx(ctx, tx, b.ID); err != nil {
		return nil, err
	}

	return b, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return domainerrors.NewInternal("failed to begin transaction", err)
	}
	defer tx.Rollback()

	if err := s.alerts.ResolveWithTx(ctx, tx, id); err != nil {
		return err
	}

	n, err := s.repo.Delete(ctx, tx, id)
	if err != nil {
		return domainerrors.NewInternal("failed to delete bin", err)
	}
	if n == 0 {
		return domainerrors.BinNotFound(id)
	}

	if err := tx.Commit(); err != nil {
		return domainerrors.NewInternal("failed to commit transaction", err)
	}

	_ = s.cache.Invalidate(ctx, id)

	return nil
}
