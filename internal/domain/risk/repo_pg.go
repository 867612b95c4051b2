package risk

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type repoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository { return &repoPG{pool: pool} }

func (r *repoPG) AppendPoint(ctx context.Context, p *TrendPoint) error {
	p.ID = uuid.New()
	_, err := r.pool.Exec(ctx, `
		INSERT INTO risk_trend_points (id, child_id, score, timestamp)
		VALUES ($1,$2,$3,$4)`,
		p.ID, p.ChildID, p.Score, p.Timestamp)
	return err
}

func (r *repoPG) ListPoints(ctx context.Context, childID uuid.UUID, limit int) ([]TrendPoint, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, child_id, score, timestamp, created_at FROM (
			SELECT id, child_id, score, timestamp, created_at
			FROM risk_trend_points WHERE child_id = $1
			ORDER BY timestamp DESC LIMIT $2
		) recent ORDER BY timestamp ASC`, childID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var points []TrendPoint
	for rows.Next() {
		var p TrendPoint
		if err := rows.Scan(&p.ID, &p.ChildID, &p.Score, &p.Timestamp, &p.CreatedAt); err != nil {
			return nil, err
		}
		points = append(points, p)
	}
	return points, rows.Err()
}

func (r *repoPG) LatestPoint(ctx context.Context, childID uuid.UUID) (*TrendPoint, error) {
	var p TrendPoint
	err := r.pool.QueryRow(ctx, `
		SELECT id, child_id, score, timestamp, created_at
		FROM risk_trend_points WHERE child_id = $1
		ORDER BY timestamp DESC LIMIT 1`, childID).
		Scan(&p.ID, &p.ChildID, &p.Score, &p.Timestamp, &p.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}
