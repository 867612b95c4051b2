package child

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type repoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository { return &repoPG{pool: pool} }

const childCols = `id, family_id, name, date_of_birth, weight_lbs, gender,
	conditions, allergies, created_at, updated_at`

func scanChild(row pgx.Row) (*Child, error) {
	var c Child
	err := row.Scan(&c.ID, &c.FamilyID, &c.Name, &c.DateOfBirth, &c.WeightLbs, &c.Gender,
		&c.Conditions, &c.Allergies, &c.CreatedAt, &c.UpdatedAt)
	return &c, err
}

func (r *repoPG) Create(ctx context.Context, c *Child) error {
	c.ID = uuid.New()
	_, err := r.pool.Exec(ctx, `
		INSERT INTO children (id, family_id, name, date_of_birth, weight_lbs, gender, conditions, allergies)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
		c.ID, c.FamilyID, c.Name, c.DateOfBirth, c.WeightLbs, c.Gender, c.Conditions, c.Allergies)
	return err
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Child, error) {
	return scanChild(r.pool.QueryRow(ctx, `SELECT `+childCols+` FROM children WHERE id = $1`, id))
}

func (r *repoPG) Update(ctx context.Context, c *Child) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE children SET name=$2, date_of_birth=$3, weight_lbs=$4, gender=$5,
			conditions=$6, allergies=$7, updated_at=NOW()
		WHERE id = $1`,
		c.ID, c.Name, c.DateOfBirth, c.WeightLbs, c.Gender, c.Conditions, c.Allergies)
	return err
}

func (r *repoPG) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM children WHERE id = $1`, id)
	return err
}

func (r *repoPG) ListByFamily(ctx context.Context, familyID string, limit, offset int) ([]*Child, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM children WHERE family_id = $1`, familyID).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.pool.Query(ctx, `SELECT `+childCols+` FROM children WHERE family_id = $1 ORDER BY created_at LIMIT $2 OFFSET $3`,
		familyID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*Child
	for rows.Next() {
		c, err := scanChild(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, c)
	}
	return items, total, rows.Err()
}

func (r *repoPG) UpsertBaseline(ctx context.Context, b *VitalBaseline) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	_, err := r.pool.Exec(ctx, `
		INSERT INTO vital_baselines (id, child_id, vital_type, value, unit, learned)
		VALUES ($1,$2,$3,$4,$5,$6)
		ON CONFLICT (child_id, vital_type)
		DO UPDATE SET value=$4, unit=$5, learned=$6, updated_at=NOW()`,
		b.ID, b.ChildID, b.VitalType, b.Value, b.Unit, b.Learned)
	return err
}

func (r *repoPG) GetBaselines(ctx context.Context, childID uuid.UUID) ([]*VitalBaseline, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, child_id, vital_type, value, unit, learned, updated_at
		FROM vital_baselines WHERE child_id = $1 ORDER BY vital_type`, childID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*VitalBaseline
	for rows.Next() {
		var b VitalBaseline
		if err := rows.Scan(&b.ID, &b.ChildID, &b.VitalType, &b.Value, &b.Unit, &b.Learned, &b.UpdatedAt); err != nil {
			return nil, err
		}
		items = append(items, &b)
	}
	return items, rows.Err()
}
