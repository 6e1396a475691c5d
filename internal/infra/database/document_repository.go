package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/xavierca1/quotedesk/internal/entity"
)

const documentSelect = `SELECT id, lead_id, agent_id, file_name, storage_path, document_type, url, created_at FROM documents`

type DocumentRepository struct {
	DB *sql.DB
}

func NewDocumentRepository(db *sql.DB) *DocumentRepository {
	return &DocumentRepository{DB: db}
}

func (r *DocumentRepository) Create(ctx context.Context, d *entity.Document) error {
	query := `
		INSERT INTO documents (id, lead_id, agent_id, file_name, storage_path, document_type, url, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := r.DB.ExecContext(ctx, query,
		d.ID,
		d.LeadID,
		d.AgentID,
		d.FileName,
		d.StoragePath,
		string(d.DocumentType),
		d.URL,
		d.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert document: %w", mapError(err, entity.ErrLeadNotFound))
	}
	return nil
}

func (r *DocumentRepository) FindByID(ctx context.Context, id string) (*entity.Document, error) {
	doc, err := scanDocument(r.DB.QueryRowContext(ctx, documentSelect+` WHERE id = $1`, id))
	if err != nil {
		if noRow(err) {
			return nil, entity.ErrDocumentNotFound
		}
		return nil, fmt.Errorf("find document: %w", err)
	}
	return doc, nil
}

func (r *DocumentRepository) ListByLead(ctx context.Context, leadID string) ([]entity.Document, error) {
	return r.list(ctx, documentSelect+` WHERE lead_id = $1 ORDER BY created_at DESC, id`, leadID)
}

func (r *DocumentRepository) ListByAgent(ctx context.Context, agentID string) ([]entity.Document, error) {
	return r.list(ctx, documentSelect+` WHERE agent_id = $1 ORDER BY created_at DESC, id`, agentID)
}

func (r *DocumentRepository) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM documents WHERE id = $1`, id)
	if err != nil {
		if noRow(err) {
			return entity.ErrDocumentNotFound
		}
		return fmt.Errorf("delete document: %w", err)
	}
	return expectRow(res, entity.ErrDocumentNotFound)
}

func (r *DocumentRepository) DeleteByLead(ctx context.Context, leadID string) (int64, error) {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM documents WHERE lead_id = $1`, leadID)
	if err != nil {
		return 0, fmt.Errorf("delete documents by lead: %w", err)
	}
	return res.RowsAffected()
}

func (r *DocumentRepository) DeleteByAgent(ctx context.Context, agentID string) (int64, error) {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM documents WHERE agent_id = $1`, agentID)
	if err != nil {
		return 0, fmt.Errorf("delete documents by agent: %w", err)
	}
	return res.RowsAffected()
}

func (r *DocumentRepository) list(ctx context.Context, query string, args ...any) ([]entity.Document, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	defer rows.Close()

	docs := []entity.Document{}
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		docs = append(docs, *doc)
	}
	return docs, rows.Err()
}

func scanDocument(row scanner) (*entity.Document, error) {
	var (
		d       entity.Document
		docType string
	)
	if err := row.Scan(&d.ID, &d.LeadID, &d.AgentID, &d.FileName, &d.StoragePath, &docType, &d.URL, &d.CreatedAt); err != nil {
		return nil, err
	}
	d.DocumentType = entity.DocumentType(docType)
	return &d, nil
}
