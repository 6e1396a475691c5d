package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/xavierca1/quotedesk/internal/entity"
	"github.com/xavierca1/quotedesk/internal/infra/metrics"
)

type DocumentService struct {
	Leads     entity.LeadRepository
	Documents entity.DocumentRepository
	Blobs     BlobStore
	MaxBytes  int64
	Now       func() time.Time
}

func NewDocumentService(leads entity.LeadRepository, documents entity.DocumentRepository, blobs BlobStore, maxBytes int64) *DocumentService {
	return &DocumentService{
		Leads:     leads,
		Documents: documents,
		Blobs:     blobs,
		MaxBytes:  maxBytes,
		Now:       time.Now,
	}
}

// Upload stores the file and then writes the row. A failed row write removes
// the stored file again.
func (s *DocumentService) Upload(ctx context.Context, p entity.Principal, input UploadDocumentInput) (*entity.Document, error) {
	lead, err := s.Leads.FindByID(ctx, input.LeadID)
	if err != nil {
		return nil, storeError("get lead", err)
	}
	if !p.CanAccessLead(lead) {
		return nil, forbidden("lead is not assigned to you")
	}

	if len(input.Data) == 0 {
		return nil, invalidField("file", "is empty")
	}
	if s.MaxBytes > 0 && int64(len(input.Data)) > s.MaxBytes {
		return nil, invalidField("file", fmt.Sprintf("must not exceed %d bytes", s.MaxBytes))
	}

	doc, err := entity.NewDocument(lead.ID, p.UserID, input.FileName, input.DocumentType, s.Now())
	if err != nil {
		return nil, &DomainError{Code: CodeValidationFailed, Message: err.Error()}
	}

	contentType := input.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	tx := NewTransaction()
	tx.AddOperation("upload file", func(ctx context.Context) error {
		url, err := s.Blobs.Put(ctx, doc.StoragePath, contentType, input.Data)
		if err != nil {
			metrics.RecordIntegrationError("storage")
			return &TechnicalError{Code: CodeStorageFailed, Message: "upload file", Err: err}
		}
		doc.URL = url
		return nil
	})
	tx.AddCompensation("remove uploaded file", func(ctx context.Context) error {
		return s.Blobs.Delete(ctx, doc.StoragePath)
	})
	tx.AddOperation("insert document row", func(ctx context.Context) error {
		if err := s.Documents.Create(ctx, doc); err != nil {
			return storeError("create document", err)
		}
		return nil
	})

	if err := tx.Execute(ctx); err != nil {
		return nil, err
	}
	return doc, nil
}

func (s *DocumentService) ListByLead(ctx context.Context, p entity.Principal, leadID string) ([]entity.Document, error) {
	lead, err := s.Leads.FindByID(ctx, leadID)
	if err != nil {
		return nil, storeError("get lead", err)
	}
	if !p.CanAccessLead(lead) {
		return nil, forbidden("lead is not assigned to you")
	}

	docs, err := s.Documents.ListByLead(ctx, leadID)
	if err != nil {
		return nil, storeError("list documents", err)
	}
	return docs, nil
}

// Delete removes the file before the row. If the file cannot be removed the
// row is deleted anyway and the orphan is logged.
func (s *DocumentService) Delete(ctx context.Context, p entity.Principal, id string) error {
	doc, err := s.Documents.FindByID(ctx, id)
	if err != nil {
		return storeError("get document", err)
	}
	if !p.IsAdmin && doc.AgentID != p.UserID {
		return forbidden("only the uploader or an admin can delete a document")
	}

	if err := s.Blobs.Delete(ctx, doc.StoragePath); err != nil {
		metrics.RecordIntegrationError("storage")
		log.Error().Err(err).Str("document_id", id).Str("path", doc.StoragePath).Msg("document file not removed")
	}

	if err := s.Documents.Delete(ctx, id); err != nil {
		return storeError("delete document", err)
	}
	return nil
}
