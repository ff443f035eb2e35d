package alert

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

const columns = `id, bin_id, location, title, message, reviewed, created_at, updated_at`

type Repository interface {
	// Insert reports false when an alert for the bin already exists.
	Insert(ctx context.Context, ext sqlx.ExtContext, a *Alert) (bool, error)
	GetByBinID(ctx context.Context, ext sqlx.ExtContext, binID string) (*Alert, error)
	SetReviewed(ctx context.Context, ext sqlx.ExtContext, binID string) (int64, error)
	DeleteByBinID(ctx context.Context, ext sqlx.ExtContext, binID string) (int64, error)
	ListUnreviewed(ctx context.Context, ext sqlx.ExtContext) ([]*Alert, error)
	ListAll(ctx context.Context, ext sqlx.ExtContext) ([]*Alert, error)
}

type alertRepository struct{}

func NewAlertRepository() Repository {
	return &alertRepository{}
}

func (r *alertRepository) Insert(ctx context.Context, ext sqlx.ExtContext, a *Alert) (bool, error) {
	const query = `INSERT INTO alerts (id, bin_id, location, title, message, reviewed, created_at, updated_at)
		VALUES (:id, :bin_id, :location, :title, :message, :reviewed, :created_at, :updated_at)
		ON CONFLICT (bin_id) DO NOTHING`
	res, err := sqlx.NamedExecContext(ctx, ext, query, a)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *alertRepository) GetByBinID(ctx context.Context, ext sqlx.ExtContext, binID string) (*Alert, error) {
	var a Alert
	query := fmt.Sprintf(`SELECT %s FROM alerts WHERE bin_id = $1`, columns)
	if err := sqlx.GetContext(ctx, ext, &a, query, binID); err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *alertRepository) SetReviewed(ctx context.Context, ext sqlx.ExtContext, binID string) (int64, error) {
	const query = `UPDATE alerts SET reviewed = TRUE, updated_at = NOW() WHERE bin_id = $1`
	res, err := ext.ExecContext(ctx, query, binID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *alertRepository) DeleteByBinID(ctx context.Context, ext sqlx.ExtContext, binID string) (int64, error) {
	const query = `DELETE FROM alerts WHERE bin_id = $1`
	res, err := ext.ExecContext(ctx, query, binID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *alertRepository) ListUnreviewed(ctx context.Context, ext sqlx.ExtContext) ([]*Alert, error) {
	var alerts []*Alert
	query := fmt.Sprintf(`SELECT %s FROM alerts WHERE reviewed = FALSE ORDER BY created_at DESC`, columns)
	if err := sqlx.SelectContext(ctx, ext, &alerts, query); err != nil {
		return nil, err
	}
	return alerts, nil
}

func (r *alertRepository) ListAll(ctx context.Context, ext sqlx.ExtContext) ([]*Alert, error) {
	var alerts []*Alert
	query := fmt.Sprintf(`SELECT %s FROM alerts ORDER BY created_at DESC`, columns)
	if err := sqlx.SelectContext(ctx, ext, &alerts, query); err != nil {
		return nil, err
	}
	return alerts, nil
}
