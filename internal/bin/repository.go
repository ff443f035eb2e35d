package bin

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

const columns = `id, location, latitude, longitude, current_level, capacity, status, last_collected_at, created_at, updated_at`

type Repository interface {
	Create(ctx context.Context, ext sqlx.ExtContext, b *SmartBin) error
	GetByID(ctx context.Context, ext sqlx.ExtContext, id string) (*SmartBin, error)
	GetByIDForUpdate(ctx context.Context, ext sqlx.ExtContext, id string) (*SmartBin, error)
	Update(ctx context.Context, ext sqlx.ExtContext, b *SmartBin) error
	Delete(ctx context.Context, ext sqlx.ExtContext, id string) (int64, error)
	ListAll(ctx context.Context, ext sqlx.ExtContext) ([]*SmartBin, error)
	ListByStatus(ctx context.Context, ext sqlx.ExtContext, status Status) ([]*SmartBin, error)
	ListByLocation(ctx context.Context, ext sqlx.ExtContext, location string) ([]*SmartBin, error)
}

type binRepository struct{}

func NewBinRepository() Repository {
	return &binRepository{}
}

func (r *binRepository) Create(ctx context.Context, ext sqlx.ExtContext, b *SmartBin) error {
	const query = `INSERT INTO bins (id, location, latitude, longitude, current_level, capacity, status, last_collected_at, created_at, updated_at)
		VALUES (:id, :location, :latitude, :longitude, :current_level, :capacity, :status, :last_collected_at, :created_at, :updated_at)`
	_, err := sqlx.NamedExecContext(ctx, ext, query, b)
	return err
}

func (r *binRepository) GetByID(ctx context.Context, ext sqlx.ExtContext, id string) (*SmartBin, error) {
	var b SmartBin
	query := fmt.Sprintf(`SELECT %s FROM bins WHERE id = $1`, columns)
	if err := sqlx.GetContext(ctx, ext, &b, query, id); err != nil {
		return nil, err
	}
	return &b, nil
}

// GetByIDForUpdate takes a row lock; readings for the same bin serialize
// behind it so the FULL edge fires exactly once.
func (r *binRepository) GetByIDForUpdate(ctx context.Context, ext sqlx.ExtContext, id string) (*SmartBin, error) {
	var b SmartBin
	query := fmt.Sprintf(`SELECT %s FROM bins WHERE id = $1 FOR UPDATE`, columns)
	if err := sqlx.GetContext(ctx, ext, &b, query, id); err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *binRepository) Update(ctx context.Context, ext sqlx.ExtContext, b *SmartBin) error {
	const query = `UPDATE bins SET location = :location, latitude = :latitude, longitude = :longitude,
		current_level = :current_level, capacity = :capacity, status = :status,
		last_collected_at = :last_collected_at, updated_at = :updated_at WHERE id = :id`
	_, err := sqlx.NamedExecContext(ctx, ext, query, b)
	return err
}

func (r *binRepository) Delete(ctx context.Context, ext sqlx.ExtContext, id string) (int64, error) {
	res, err := ext.ExecContext(ctx, `DELETE FROM bins WHERE id = $1`, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *binRepository) ListAll(ctx context.Context, ext sqlx.ExtContext) ([]*SmartBin, error) {
	var bins []*SmartBin
	query := fmt.Sprintf(`SELECT %s FROM bins ORDER BY id ASC`, columns)
	if err := sqlx.SelectContext(ctx, ext, &bins, query); err != nil {
		return nil, err
	}
	return bins, nil
}

func (r *binRepository) ListByStatus(ctx context.Context, ext sqlx.ExtContext, status Status) ([]*SmartBin, error) {
	var bins []*SmartBin
	query := fmt.Sprintf(`SELECT %s FROM bins WHERE status = $1 ORDER BY id ASC`, columns)
	if err := sqlx.SelectContext(ctx, ext, &bins, query, status); err != nil {
		return nil, err
	}
	return bins, nil
}

func (r *binRepository) ListByLocation(ctx context.Context, ext sqlx.ExtContext, location string) ([]*SmartBin, error) {
	var bins []*SmartBin
	query := fmt.Sprintf(`SELECT %s FROM bins WHERE location ILIKE $1 ORDER BY id ASC`, columns)
	if err := sqlx.SelectContext(ctx, ext, &bins, query, "%"+location+"%"); err != nil {
		return nil, err
	}
	return bins, nil
}
