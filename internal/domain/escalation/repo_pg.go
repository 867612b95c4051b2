package escalation

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type repoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository { return &repoPG{pool: pool} }

func (r *repoPG) ReplaceContacts(ctx context.Context, childID uuid.UUID, contacts []Contact) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM escalation_contacts WHERE child_id = $1`, childID); err != nil {
		return err
	}
	for i := range contacts {
		c := &contacts[i]
		c.ID = uuid.New()
		c.ChildID = childID
		if _, err := tx.Exec(ctx, `
			INSERT INTO escalation_contacts (id, child_id, member_id, name, priority, contact_method, address)
			VALUES ($1,$2,$3,$4,$5,$6,$7)`,
			c.ID, c.ChildID, c.MemberID, c.Name, c.Priority, c.ContactMethod, c.Address); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

func (r *repoPG) ListContacts(ctx context.Context, childID uuid.UUID) ([]Contact, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, child_id, member_id, name, priority, contact_method, address
		FROM escalation_contacts WHERE child_id = $1 ORDER BY priority`, childID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var contacts []Contact
	for rows.Next() {
		var c Contact
		if err := rows.Scan(&c.ID, &c.ChildID, &c.MemberID, &c.Name, &c.Priority, &c.ContactMethod, &c.Address); err != nil {
			return nil, err
		}
		contacts = append(contacts, c)
	}
	return contacts, rows.Err()
}

const escalationCols = `id, child_id, score, state, current_priority, timeout_seconds,
	acknowledged_by, started_at, ended_at, created_at, updated_at`

func (r *repoPG) CreateEscalation(ctx context.Context, e *Escalation) error {
	e.ID = uuid.New()
	_, err := r.pool.Exec(ctx, `
		INSERT INTO escalations (id, child_id, score, state, current_priority, timeout_seconds, started_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7)`,
		e.ID, e.ChildID, e.Score, e.State, e.CurrentPriority, e.TimeoutSeconds, e.StartedAt)
	return err
}

func (r *repoPG) GetEscalation(ctx context.Context, id uuid.UUID) (*Escalation, error) {
	var e Escalation
	err := r.pool.QueryRow(ctx, `SELECT `+escalationCols+` FROM escalations WHERE id = $1`, id).
		Scan(&e.ID, &e.ChildID, &e.Score, &e.State, &e.CurrentPriority, &e.TimeoutSeconds,
			&e.AcknowledgedBy, &e.StartedAt, &e.EndedAt, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *repoPG) UpdateEscalation(ctx context.Context, e *Escalation) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE escalations SET state=$2, current_priority=$3, acknowledged_by=$4, ended_at=$5, updated_at=NOW()
		WHERE id = $1`,
		e.ID, e.State, e.CurrentPriority, e.AcknowledgedBy, e.EndedAt)
	return err
}
