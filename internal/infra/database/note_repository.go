package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/xavierca1/quotedesk/internal/entity"
)

type NoteRepository struct {
	DB *sql.DB
}

func NewNoteRepository(db *sql.DB) *NoteRepository {
	return &NoteRepository{DB: db}
}

func (r *NoteRepository) Create(ctx context.Context, n *entity.Note) error {
	_, err := r.DB.ExecContext(ctx,
		`INSERT INTO notes (id, lead_id, agent_id, content, created_at) VALUES ($1, $2, $3, $4, $5)`,
		n.ID, n.LeadID, n.AgentID, n.Content, n.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert note: %w", mapError(err, entity.ErrLeadNotFound))
	}
	return nil
}

func (r *NoteRepository) FindByID(ctx context.Context, id string) (*entity.Note, error) {
	var n entity.Note
	err := r.DB.QueryRowContext(ctx,
		`SELECT id, lead_id, agent_id, content, created_at FROM notes WHERE id = $1`, id,
	).Scan(&n.ID, &n.LeadID, &n.AgentID, &n.Content, &n.CreatedAt)
	if err != nil {
		if noRow(err) {
			return nil, entity.ErrNoteNotFound
		}
		return nil, fmt.Errorf("find note: %w", err)
	}
	return &n, nil
}

func (r *NoteRepository) ListByLead(ctx context.Context, leadID string) ([]entity.Note, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT id, lead_id, agent_id, content, created_at FROM notes WHERE lead_id = $1 ORDER BY created_at DESC, id`,
		leadID,
	)
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	defer rows.Close()

	notes := []entity.Note{}
	for rows.Next() {
		var n entity.Note
		if err := rows.Scan(&n.ID, &n.LeadID, &n.AgentID, &n.Content, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan note: %w", err)
		}
		notes = append(notes, n)
	}
	return notes, rows.Err()
}

func (r *NoteRepository) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM notes WHERE id = $1`, id)
	if err != nil {
		if noRow(err) {
			return entity.ErrNoteNotFound
		}
		return fmt.Errorf("delete note: %w", err)
	}
	return expectRow(res, entity.ErrNoteNotFound)
}

func (r *NoteRepository) DeleteByLead(ctx context.Context, leadID string) (int64, error) {
	return r.deleteWhere(ctx, "lead_id", leadID)
}

func (r *NoteRepository) DeleteByAgent(ctx context.Context, agentID string) (int64, error) {
	return r.deleteWhere(ctx, "agent_id", agentID)
}

func (r *NoteRepository) deleteWhere(ctx context.Context, column, value string) (int64, error) {
	res, err := r.DB.ExecContext(ctx, fmt.Sprintf(`DELETE FROM notes WHERE %s = $1`, column), value)
	if err != nil {
		return 0, fmt.Errorf("delete notes by %s: %w", column, err)
	}
	return res.RowsAffected()
}
