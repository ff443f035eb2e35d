package alert

import (
	"context"
	"log/slog"

	"github.com/jmoiron/sqlx"

	domainerrors "smart-waste/internal/errors"
	"smart-waste/internal/redis"
)

// Notifier fans raised alerts out to subscribers (redis pub/sub in
// production).
type Notifier interface {
	Publish(ctx context.Context, event redis.AlertEvent) error
}

type Service interface {
	// RaiseWithTx raises a full-bin alert inside the caller's transaction.
	// A bin carries at most one open alert; raising again returns the
	// existing one.
	RaiseWithTx(ctx context.Context, ext sqlx.ExtContext, binID, location string) (*Alert, error)
	// ResolveWithTx removes the bin's alert. Absence is not an error.
	ResolveWithTx(ctx context.Context, ext sqlx.ExtContext, binID string) error
	MarkReviewed(ctx context.Context, binID string) (*Alert, error)
	GetByBinID(ctx context.Context, binID string) (*Alert, error)
	ListUnreviewed(ctx context.Context) ([]*Alert, error)
	ListAll(ctx context.Context) ([]*Alert, error)
}

type service struct {
	repo     Repository
	db       *sqlx.DB
	notifier Notifier
}

func NewAlertService(repo Repository, db *sqlx.DB, notifier Notifier) Service {
	return &service{repo: repo, db: db, notifier: notifier}
}

func (s *service) RaiseWithTx(ctx context.Context, ext sqlx.ExtContext, binID, location string) (*Alert, error) {
	a := NewFullBin(binID, location)
	inserted, err := s.repo.Insert(ctx, ext, a)
	if err != nil {
		return nil, domainerrors.NewInternal("failed to raise alert", err)
	}
	if !inserted {
		existing, err := s.repo.GetByBinID(ctx, ext, binID)
		if err != nil {
			return nil, domainerrors.NewInternal("failed to load existing alert", err)
		}
		return existing, nil
	}

	// Best-effort: a dropped notification never fails the reading.
	if err := s.notifier.Publish(ctx, redis.AlertEvent{
		AlertID:   a.ID,
		BinID:     a.BinID,
		Location:  a.Location,
		Message:   a.Message,
		CreatedAt: a.CreatedAt,
	}); err != nil {
		slog.Warn("alert notification failed", "alert_id", a.ID, "error", err)
	}

	return a, nil
}

func (s *service) ResolveWithTx(ctx context.Context, ext sqlx.ExtContext, binID string) error {
	if _, err := s.repo.DeleteByBinID(ctx, ext, binID); err != nil {
		return domainerrors.NewInternal("failed to resolve alert", err)
	}
	return nil
}

func (s *service) MarkReviewed(ctx context.Context, binID string) (*Alert, error) {
	n, err := s.repo.SetReviewed(ctx, s.db, binID)
	if err != nil {
		return nil, domainerrors.NewInternal("failed to mark alert reviewed", err)
	}
	if n == 0 {
		return nil, domainerrors.AlertNotFoundForBin(binID)
	}
	a, err := s.repo.GetByBinID(ctx, s.db, binID)
	if err != nil {
		return nil, domainerrors.AlertNotFoundForBin(binID)
	}
	return a, nil
}

func (s *service) GetByBinID(ctx context.Context, binID string) (*Alert, error) {
	a, err := s.repo.GetByBinID(ctx, s.db, binID)
	if err != nil {
		return nil, domainerrors.AlertNotFoundForBin(binID)
	}
	return a, nil
}

func (s *service) ListUnreviewed(ctx context.Context) ([]*Alert, error) {
	return s.repo.ListUnreviewed(ctx, s.db)
}

func (s *service) ListAll(ctx context.Context) ([]*Alert, error) {
	return s.repo.ListAll(ctx, s.db)
}
