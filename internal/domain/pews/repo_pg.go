package pews

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type repoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository { return &repoPG{pool: pool} }

const assessmentCols = `id, child_id, input, cardiovascular, respiratory, behavioral, total, created_at`

func scanAssessment(row pgx.Row) (*Assessment, error) {
	var a Assessment
	var input []byte
	if err := row.Scan(&a.ID, &a.ChildID, &input, &a.Cardiovascular, &a.Respiratory,
		&a.Behavioral, &a.Total, &a.CreatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(input, &a.Input); err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *repoPG) Create(ctx context.Context, a *Assessment) error {
	a.ID = uuid.New()
	input, err := json.Marshal(a.Input)
	if err != nil {
		return err
	}
	_, err = r.pool.Exec(ctx, `
		INSERT INTO pews_assessments (id, child_id, input, cardiovascular, respiratory, behavioral, total)
		VALUES ($1,$2,$3,$4,$5,$6,$7)`,
		a.ID, a.ChildID, input, a.Cardiovascular, a.Respiratory, a.Behavioral, a.Total)
	return err
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Assessment, error) {
	return scanAssessment(r.pool.QueryRow(ctx, `SELECT `+assessmentCols+` FROM pews_assessments WHERE id = $1`, id))
}

func (r *repoPG) ListByChild(ctx context.Context, childID uuid.UUID, limit, offset int) ([]*Assessment, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM pews_assessments WHERE child_id = $1`, childID).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.pool.Query(ctx, `
		SELECT `+assessmentCols+` FROM pews_assessments
		WHERE child_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`,
		childID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*Assessment
	for rows.Next() {
		a, err := scanAssessment(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, a)
	}
	return items, total, rows.Err()
}
