package sensor

import (
	"context"
	"errors"
	"log/slog"
	"math/rand"
	"time"

	"smart-waste/internal/bin"
	domainerrors "smart-waste/internal/errors"
)

// Simulator stands in for real bin hardware in demo environments: every
// interval it nudges each working sensor upward and pushes the reading
// through the normal level-update path, alerts and all.
type Simulator struct {
	bins     bin.Service
	sensors  Service
	interval time.Duration
	minInc   float64
	maxInc   float64
}

func NewSimulator(bins bin.Service, sensors Service, interval time.Duration, minInc, maxInc float64) *Simulator {
	return &Simulator{
		bins:     bins,
		sensors:  sensors,
		interval: interval,
		minInc:   minInc,
		maxInc:   maxInc,
	}
}

func (s *Simulator) Run(ctx context.Context) {
	slog.Info("sensor simulator started", "interval", s.interval)
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("sensor simulator stopped")
			return
		case <-ticker.C:
			s.tick(ctx)
		}
	}
}

func (s *Simulator) tick(ctx context.Context) {
	sensors, err := s.sensors.ListWorking(ctx)
	if err != nil {
		slog.Error("sensor simulator: list sensors", "error", err)
		return
	}

	for _, sn := range sensors {
		next := sn.Measurement + s.increment()
		if next > 100 {
			next = 100
		}

		if _, err := s.bins.UpdateLevel(ctx, sn.BinID, next); err != nil {
			var domainErr *domainerrors.DomainError
			if errors.As(err, &domainErr) && domainErr.Code == domainerrors.ErrNotFound {
				continue // bin removed under the sensor
			}
			slog.Error("sensor simulator: update level", "bin_id", sn.BinID, "error", err)
		}
	}
}

func (s *Simulator) increment() float64 {
	return s.minInc + rand.Float64()*(s.maxInc-s.minInc)
}
