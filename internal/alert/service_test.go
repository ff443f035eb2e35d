package alert

import (
	"context"
	"errors"
	"testing"

	"github.com/jmoiron/sqlx"

	domainerrors "smart-waste/internal/errors"
	"smart-waste/internal/redis"
)

type fakeRepo struct {
	byBin map[string]*Alert
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{byBin: make(map[string]*Alert)}
}

func (r *fakeRepo) Insert(ctx context.Context, ext sqlx.ExtContext, a *Alert) (bool, error) {
	if _, ok := r.byBin[a.BinID]; ok {
		return false, nil
	}
	r.byBin[a.BinID] = a
	return true, nil
}

func (r *fakeRepo) GetByBinID(ctx context.Context, ext sqlx.ExtContext, binID string) (*Alert, error) {
	a, ok := r.byBin[binID]
	if !ok {
		return nil, errors.New("no rows")
	}
	return a, nil
}

func (r *fakeRepo) SetReviewed(ctx context.Context, ext sqlx.ExtContext, binID string) (int64, error) {
	a, ok := r.byBin[binID]
	if !ok {
		return 0, nil
	}
	a.Reviewed = true
	return 1, nil
}

func (r *fakeRepo) DeleteByBinID(ctx context.Context, ext sqlx.ExtContext, binID string) (int64, error) {
	if _, ok := r.byBin[binID]; !ok {
		return 0, nil
	}
	delete(r.byBin, binID)
	return 1, nil
}

func (r *fakeRepo) ListUnreviewed(ctx context.Context, ext sqlx.ExtContext) ([]*Alert, error) {
	var out []*Alert
	for _, a := range r.byBin {
		if !a.Reviewed {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *fakeRepo) ListAll(ctx context.Context, ext sqlx.ExtContext) ([]*Alert, error) {
	var out []*Alert
	for _, a := range r.byBin {
		out = append(out, a)
	}
	return out, nil
}

type fakeNotifier struct {
	events []redis.AlertEvent
	err    error
}

func (n *fakeNotifier) Publish(ctx context.Context, event redis.AlertEvent) error {
	if n.err != nil {
		return n.err
	}
	n.events = append(n.events, event)
	return nil
}

func newTestService(repo Repository, notifier Notifier) Service {
	return NewAlertService(repo, nil, notifier)
}

// --- RaiseWithTx ---

func TestRaiseWithTx_CreatesAndPublishes(t *testing.T) {
	repo := newFakeRepo()
	notifier := &fakeNotifier{}
	svc := newTestService(repo, notifier)

	a, err := svc.RaiseWithTx(context.Background(), nil, "BIN-1", "Downtown")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.BinID != "BIN-1" {
		t.Fatalf("expected BIN-1, got %s", a.BinID)
	}
	if a.Reviewed {
		t.Fatal("new alert must be unreviewed")
	}
	if len(notifier.events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(notifier.events))
	}
	if notifier.events[0].BinID != "BIN-1" {
		t.Fatalf("event carries wrong bin: %s", notifier.events[0].BinID)
	}
}

func TestRaiseWithTx_IdempotentPerBin(t *testing.T) {
	repo := newFakeRepo()
	notifier := &fakeNotifier{}
	svc := newTestService(repo, notifier)

	first, err := svc.RaiseWithTx(context.Background(), nil, "BIN-1", "Downtown")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := svc.RaiseWithTx(context.Background(), nil, "BIN-1", "Downtown")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if second.ID != first.ID {
		t.Fatal("raising twice must return the existing alert")
	}
	if len(notifier.events) != 1 {
		t.Fatalf("duplicate raise must not publish again, got %d events", len(notifier.events))
	}
}

func TestRaiseWithTx_NotifierFailureDoesNotFail(t *testing.T) {
	repo := newFakeRepo()
	notifier := &fakeNotifier{err: errors.New("redis down")}
	svc := newTestService(repo, notifier)

	a, err := svc.RaiseWithTx(context.Background(), nil, "BIN-1", "Downtown")
	if err != nil {
		t.Fatalf("publish failure must not fail the raise: %v", err)
	}
	if _, ok := repo.byBin["BIN-1"]; !ok || a == nil {
		t.Fatal("alert must still be recorded")
	}
}

// --- ResolveWithTx ---

func TestResolveWithTx_Removes(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, &fakeNotifier{})
	_, _ = svc.RaiseWithTx(context.Background(), nil, "BIN-1", "Downtown")

	if err := svc.ResolveWithTx(context.Background(), nil, "BIN-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := repo.byBin["BIN-1"]; ok {
		t.Fatal("alert must be removed")
	}
}

func TestResolveWithTx_AbsenceIsNotAnError(t *testing.T) {
	svc := newTestService(newFakeRepo(), &fakeNotifier{})

	if err := svc.ResolveWithTx(context.Background(), nil, "BIN-UNKNOWN"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// --- MarkReviewed ---

func TestMarkReviewed(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, &fakeNotifier{})
	_, _ = svc.RaiseWithTx(context.Background(), nil, "BIN-1", "Downtown")

	a, err := svc.MarkReviewed(context.Background(), "BIN-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !a.Reviewed {
		t.Fatal("alert must be reviewed")
	}
}

func TestMarkReviewed_NotFound(t *testing.T) {
	svc := newTestService(newFakeRepo(), &fakeNotifier{})

	_, err := svc.MarkReviewed(context.Background(), "BIN-UNKNOWN")
	if err == nil {
		t.Fatal("expected error")
	}
	de, ok := err.(*domainerrors.DomainError)
	if !ok {
		t.Fatalf("expected DomainError, got %T", err)
	}
	if de.Code != domainerrors.ErrNotFound {
		t.Fatalf("expected NOT_FOUND, got %s", de.Code)
	}
}
