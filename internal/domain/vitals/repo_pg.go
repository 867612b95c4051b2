package vitals

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type repoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository { return &repoPG{pool: pool} }

const readingCols = `id, child_id, vital_type, value, unit, source, status, recorded_at, created_at`

func scanReading(row pgx.Row) (*Reading, error) {
	var v Reading
	err := row.Scan(&v.ID, &v.ChildID, &v.VitalType, &v.Value, &v.Unit, &v.Source,
		&v.Status, &v.RecordedAt, &v.CreatedAt)
	return &v, err
}

func (r *repoPG) Create(ctx context.Context, v *Reading) error {
	v.ID = uuid.New()
	_, err := r.pool.Exec(ctx, `
		INSERT INTO vital_readings (id, child_id, vital_type, value, unit, source, status, recorded_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
		v.ID, v.ChildID, v.VitalType, v.Value, v.Unit, v.Source, v.Status, v.RecordedAt)
	return err
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Reading, error) {
	return scanReading(r.pool.QueryRow(ctx, `SELECT `+readingCols+` FROM vital_readings WHERE id = $1`, id))
}

func (r *repoPG) ListByChild(ctx context.Context, childID uuid.UUID, vitalType string, limit, offset int) ([]*Reading, int, error) {
	where := `WHERE child_id = $1`
	args := []interface{}{childID}
	if vitalType != "" {
		where += ` AND vital_type = $2`
		args = append(args, vitalType)
	}

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM vital_readings `+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	n := len(args)
	query := fmt.Sprintf(`SELECT %s FROM vital_readings %s ORDER BY recorded_at DESC LIMIT $%d OFFSET $%d`,
		readingCols, where, n+1, n+2)
	args = append(args, limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*Reading
	for rows.Next() {
		v, err := scanReading(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, v)
	}
	return items, total, rows.Err()
}

func (r *repoPG) Latest(ctx context.Context, childID uuid.UUID, vitalType string) (*Reading, error) {
	return scanReading(r.pool.QueryRow(ctx, `
		SELECT `+readingCols+` FROM vital_readings
		WHERE child_id = $1 AND vital_type = $2
		ORDER BY recorded_at DESC LIMIT 1`, childID, vitalType))
}
