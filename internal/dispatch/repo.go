package dispatch

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"smart-waste/internal/bin"
	domainerrors "smart-waste/internal/errors"
	"smart-waste/internal/fleet"
	"smart-waste/internal/route"
)

type Repository interface {
	CreateRouteWithStops(ctx context.Context, db *sqlx.DB, rt *route.CollectionRoute, stops []*route.Stop) error
	AssignResources(ctx context.Context, db *sqlx.DB, routeID string, truckID, driverID *string, staffIDs []string) (*route.CollectionRoute, error)
	UpdateRouteStatus(ctx context.Context, db *sqlx.DB, routeID string, next route.Status) (*route.CollectionRoute, error)
	CompleteStop(ctx context.Context, db *sqlx.DB, stopID string) (*route.Stop, error)
}

type repo struct {
	routeRepo  route.RouteRepository
	stopRepo   route.StopRepository
	truckRepo  fleet.TruckRepository
	driverRepo fleet.DriverRepository
	staffRepo  fleet.StaffRepository
	bins       bin.Service
}

func NewRepository(routeRepo route.RouteRepository, stopRepo route.StopRepository,
	truckRepo fleet.TruckRepository, driverRepo fleet.DriverRepository,
	staffRepo fleet.StaffRepository, bins bin.Service) Repository {
	return &repo{
		routeRepo:  routeRepo,
		stopRepo:   stopRepo,
		truckRepo:  truckRepo,
		driverRepo: driverRepo,
		staffRepo:  staffRepo,
		bins:       bins,
	}
}

// --------------------------------------------------------------
// CreateRouteWithStops persists the route and its stops in one transaction.
func (r *repo) CreateRouteWithStops(ctx context.Context, db *sqlx.DB, rt *route.CollectionRoute, stops []*route.Stop) error {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return domainerrors.NewInternal("failed to begin transaction", err)
	}
	defer tx.Rollback()

	if err := r.routeRepo.Create(ctx, tx, rt); err != nil {
		return domainerrors.NewInternal("failed to create route", err)
	}
	if err := r.stopRepo.CreateAll(ctx, tx, stops); err != nil {
		return domainerrors.NewInternal("failed to create route stops", err)
	}

	return tx.Commit()
}

// --------------------------------------------------------------
// AssignResources binds the requested truck, driver and staff to the
// route under row locks. Unknown ids are skipped; a resource that exists
// but is already bound elsewhere aborts the whole assignment.
func (r *repo) AssignResources(ctx context.Context, db *sqlx.DB, routeID string, truckID, driverID *string, staffIDs []string) (*route.CollectionRoute, error) {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, domainerrors.NewInternal("failed to begin transaction", err)
	}
	defer tx.Rollback()

	rt, err := r.routeRepo.GetByIDForUpdate(ctx, tx, routeID)
	if err != nil {
		return nil, domainerrors.RouteNotFound(routeID)
	}

	// 1. Driver
	var boundDriver *string
	if driverID != nil {
		d, err := r.driverRepo.GetByIDForUpdate(ctx, tx, *driverID)
		switch {
		case err == nil:
			if err := d.Assign(rt.ID); err != nil {
				return nil, err
			}
			if err := r.driverRepo.Update(ctx, tx, d); err != nil {
				return nil, domainerrors.NewInternal("failed to bind driver", err)
			}
			boundDriver = &d.ID
		case errors.Is(err, sql.ErrNoRows):
			// unknown driver id, route goes out without one
		default:
			return nil, domainerrors.NewInternal("failed to load driver", err)
		}
	}

	// 2. Truck
	var boundTruck *string
	if truckID != nil {
		t, err := r.truckRepo.GetByIDForUpdate(ctx, tx, *truckID)
		switch {
		case err == nil:
			if err := t.Assign(boundDriver); err != nil {
				return nil, err
			}
			if err := r.truckRepo.Update(ctx, tx, t); err != nil {
				return nil, domainerrors.NewInternal("failed to bind truck", err)
			}
			boundTruck = &t.ID
		case errors.Is(err, sql.ErrNoRows):
		default:
			return nil, domainerrors.NewInternal("failed to load truck", err)
		}
	}

	// 3. Staff
	boundStaff := []string{}
	for _, staffID := range staffIDs {
		m, err := r.staffRepo.GetByIDForUpdate(ctx, tx, staffID)
		switch {
		case err == nil:
			if err := m.Assign(rt.ID); err != nil {
				return nil, err
			}
			if err := r.staffRepo.Update(ctx, tx, m); err != nil {
				return nil, domainerrors.NewInternal("failed to bind staff member", err)
			}
			boundStaff = append(boundStaff, m.ID)
		case errors.Is(err, sql.ErrNoRows):
		default:
			return nil, domainerrors.NewInternal("failed to load staff member", err)
		}
	}

	rt.Bind(boundTruck, boundDriver, boundStaff)
	if err := rt.TransitionTo(route.StatusAssigned); err != nil {
		return nil, err
	}
	if err := r.routeRepo.Update(ctx, tx, rt); err != nil {
		return nil, domainerrors.NewInternal("failed to update route", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, domainerrors.NewInternal("failed to commit transaction", err)
	}
	return rt, nil
}

// --------------------------------------------------------------
// UpdateRouteStatus applies an operator-driven transition. Entering a
// terminal state releases every bound resource, exactly once.
func (r *repo) UpdateRouteStatus(ctx context.Context, db *sqlx.DB, routeID string, next route.Status) (*route.CollectionRoute, error) {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, domainerrors.NewInternal("failed to begin transaction", err)
	}
	defer tx.Rollback()

	rt, err := r.routeRepo.GetByIDForUpdate(ctx, tx, routeID)
	if err != nil {
		return nil, domainerrors.RouteNotFound(routeID)
	}

	if next == route.StatusCompleted {
		pending, err := r.stopRepo.CountPendingByRouteID(ctx, tx, rt.ID)
		if err != nil {
			return nil, domainerrors.NewInternal("failed to count pending stops", err)
		}
		if pending > 0 {
			return nil, domainerrors.NewConflict("route still has pending stops")
		}
	}

	if err := rt.TransitionTo(next); err != nil {
		return nil, err
	}
	if err := r.routeRepo.Update(ctx, tx, rt); err != nil {
		return nil, domainerrors.NewInternal("failed to update route", err)
	}

	if next.IsTerminal() {
		if err := r.releaseResources(ctx, tx, rt); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, domainerrors.NewInternal("failed to commit transaction", err)
	}
	return rt, nil
}

// --------------------------------------------------------------
// CompleteStop marks the stop collected, resets its bin, and when it was
// the last pending stop completes the route and releases the crew — all
// in one transaction.
func (r *repo) CompleteStop(ctx context.Context, db *sqlx.DB, stopID string) (*route.Stop, error) {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, domainerrors.NewInternal("failed to begin transaction", err)
	}
	defer tx.Rollback()

	st, err := r.stopRepo.GetByIDForUpdate(ctx, tx, stopID)
	if err != nil {
		return nil, domainerrors.StopNotFound(stopID)
	}

	if !st.Complete() {
		// already collected, nothing to cascade
		return st, nil
	}
	if err := r.stopRepo.Update(ctx, tx, st); err != nil {
		return nil, domainerrors.NewInternal("failed to update stop", err)
	}

	// Bin may have been retired since the route was planned.
	if err := r.bins.MarkCollectedWithTx(ctx, tx, st.BinID); err != nil {
		var domainErr *domainerrors.DomainError
		if !errors.As(err, &domainErr) || domainErr.Code != domainerrors.ErrNotFound {
			return nil, err
		}
	}

	rt, err := r.routeRepo.GetByIDForUpdate(ctx, tx, st.RouteID)
	if err != nil {
		return nil, domainerrors.RouteNotFound(st.RouteID)
	}

	pending, err := r.stopRepo.CountPendingByRouteID(ctx, tx, rt.ID)
	if err != nil {
		return nil, domainerrors.NewInternal("failed to count pending stops", err)
	}

	if pending == 0 && rt.Status.CanTransitionTo(route.StatusCompleted) {
		if err := rt.TransitionTo(route.StatusCompleted); err != nil {
			return nil, err
		}
		if err := r.routeRepo.Update(ctx, tx, rt); err != nil {
			return nil, domainerrors.NewInternal("failed to complete route", err)
		}
		if err := r.releaseResources(ctx, tx, rt); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, domainerrors.NewInternal("failed to commit transaction", err)
	}
	return st, nil
}

func (r *repo) releaseResources(ctx context.Context, tx sqlx.ExtContext, rt *route.CollectionRoute) error {
	if rt.AssignedTruckID != nil {
		t, err := r.truckRepo.GetByIDForUpdate(ctx, tx, *rt.AssignedTruckID)
		if err == nil {
			t.Release()
			if err := r.truckRepo.Update(ctx, tx, t); err != nil {
				return domainerrors.NewInternal("failed to release truck", err)
			}
		} else if !errors.Is(err, sql.ErrNoRows) {
			return domainerrors.NewInternal("failed to load truck", err)
		}
	}

	if rt.AssignedDriverID != nil {
		d, err := r.driverRepo.GetByIDForUpdate(ctx, tx, *rt.AssignedDriverID)
		if err == nil {
			d.Release()
			if err := r.driverRepo.Update(ctx, tx, d); err != nil {
				return domainerrors.NewInternal("failed to release driver", err)
			}
		} else if !errors.Is(err, sql.ErrNoRows) {
			return domainerrors.NewInternal("failed to load driver", err)
		}
	}

	for _, staffID := range rt.AssignedStaffIDs {
		m, err := r.staffRepo.GetByIDForUpdate(ctx, tx, staffID)
		if err == nil {
			m.Release()
			if err := r.staffRepo.Update(ctx, tx, m); err != nil {
				return domainerrors.NewInternal("failed to release staff member", err)
			}
		} else if !errors.Is(err, sql.ErrNoRows) {
			return domainerrors.NewInternal("failed to load staff member", err)
		}
	}

	return nil
}
