package sensor

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

const columns = `id, bin_id, type, measurement, color, last_reading_at, created_at, updated_at`

type Repository interface {
	Create(ctx context.Context, ext sqlx.ExtContext, s *Sensor) error
	GetByBinID(ctx context.Context, ext sqlx.ExtContext, binID string) (*Sensor, error)
	UpdateMeasurement(ctx context.Context, ext sqlx.ExtContext, binID string, measurement float64, color string) error
	SetType(ctx context.Context, ext sqlx.ExtContext, sensorID string, t Type) (int64, error)
	ListAll(ctx context.Context, ext sqlx.ExtContext) ([]*Sensor, error)
	ListWorking(ctx context.Context, ext sqlx.ExtContext) ([]*Sensor, error)
}

type sensorRepository struct{}

func NewSensorRepository() Repository {
	return &sensorRepository{}
}

func (r *sensorRepository) Create(ctx context.Context, ext sqlx.ExtContext, s *Sensor) error {
	const query = `INSERT INTO sensors (id, bin_id, type, measurement, color, last_reading_at, created_at, updated_at)
		VALUES (:id, :bin_id, :type, :measurement, :color, :last_reading_at, :created_at, :updated_at)`
	_, err := sqlx.NamedExecContext(ctx, ext, query, s)
	return err
}

func (r *sensorRepository) GetByBinID(ctx context.Context, ext sqlx.ExtContext, binID string) (*Sensor, error) {
	var s Sensor
	query := fmt.Sprintf(`SELECT %s FROM sensors WHERE bin_id = $1`, columns)
	if err := sqlx.GetContext(ctx, ext, &s, query, binID); err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *sensorRepository) UpdateMeasurement(ctx context.Context, ext sqlx.ExtContext, binID string, measurement float64, color string) error {
	const query = `UPDATE sensors SET measurement = $1, color = $2, last_reading_at = NOW(), updated_at = NOW() WHERE bin_id = $3`
	_, err := ext.ExecContext(ctx, query, measurement, color, binID)
	return err
}

func (r *sensorRepository) SetType(ctx context.Context, ext sqlx.ExtContext, sensorID string, t Type) (int64, error) {
	const query = `UPDATE sensors SET type = $1, updated_at = NOW() WHERE id = $2`
	res, err := ext.ExecContext(ctx, query, t, sensorID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *sensorRepository) ListAll(ctx context.Context, ext sqlx.ExtContext) ([]*Sensor, error) {
	var sensors []*Sensor
	query := fmt.Sprintf(`SELECT %s FROM sensors ORDER BY bin_id ASC`, columns)
	if err := sqlx.SelectContext(ctx, ext, &sensors, query); err != nil {
		return nil, err
	}
	return sensors, nil
}

func (r *sensorRepository) ListWorking(ctx context.Context, ext sqlx.ExtContext) ([]*Sensor, error) {
	var sensors []*Sensor
	query := fmt.Sprintf(`SELECT %s FROM sensors WHERE type = 'WORKING' ORDER BY bin_id ASC`, columns)
	if err := sqlx.SelectContext(ctx, ext, &sensors, query); err != nil {
		return nil, err
	}
	return sensors, nil
}
