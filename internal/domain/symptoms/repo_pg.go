package symptoms

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type repoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository { return &repoPG{pool: pool} }

const entryCols = `id, child_id, observations, notes, created_at`

func scanEntry(row pgx.Row) (*Entry, error) {
	var e Entry
	var obs []byte
	if err := row.Scan(&e.ID, &e.ChildID, &obs, &e.Notes, &e.CreatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(obs, &e.Observations); err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *repoPG) CreateEntry(ctx context.Context, e *Entry) error {
	e.ID = uuid.New()
	obs, err := json.Marshal(e.Observations)
	if err != nil {
		return err
	}
	_, err = r.pool.Exec(ctx, `
		INSERT INTO symptom_entries (id, child_id, observations, notes)
		VALUES ($1,$2,$3,$4)`,
		e.ID, e.ChildID, obs, e.Notes)
	return err
}

func (r *repoPG) GetEntry(ctx context.Context, id uuid.UUID) (*Entry, error) {
	return scanEntry(r.pool.QueryRow(ctx, `SELECT `+entryCols+` FROM symptom_entries WHERE id = $1`, id))
}

func (r *repoPG) ListEntriesByChild(ctx context.Context, childID uuid.UUID, limit, offset int) ([]*Entry, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM symptom_entries WHERE child_id = $1`, childID).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.pool.Query(ctx, `
		SELECT `+entryCols+` FROM symptom_entries
		WHERE child_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`,
		childID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, e)
	}
	return items, total, rows.Err()
}
