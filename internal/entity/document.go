package entity

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

type DocumentType string

const (
	DocumentApplication    DocumentType = "Application"
	DocumentIDVerification DocumentType = "ID Verification"
	DocumentMedicalRecords DocumentType = "Medical Records"
	DocumentPolicyDocument DocumentType = "Policy Document"
	DocumentOther          DocumentType = "Other"
)

func (t DocumentType) Valid() bool {
	switch t {
	case DocumentApplication, DocumentIDVerification, DocumentMedicalRecords, DocumentPolicyDocument, DocumentOther:
		return true
	}
	return false
}

// Slug is the lowercase form used in storage paths, e.g. "id_verification".
func (t DocumentType) Slug() string {
	return strings.ReplaceAll(strings.ToLower(string(t)), " ", "_")
}

type Document struct {
	ID           string       `json:"id"`
	LeadID       string       `json:"lead_id"`
	AgentID      string       `json:"agent_id"`
	FileName     string       `json:"file_name"`
	StoragePath  string       `json:"storage_path"`
	DocumentType DocumentType `json:"document_type"`
	URL          string       `json:"url"`
	CreatedAt    time.Time    `json:"created_at"`
}

// NewDocument builds the row for an upload that has not been stored yet.
// StoragePath follows {agentId}/{leadId}/{type}_{unixMillis}{ext}.
func NewDocument(leadID, agentID, fileName string, docType DocumentType, at time.Time) (*Document, error) {
	if leadID == "" || agentID == "" || strings.TrimSpace(fileName) == "" {
		return nil, ErrDocumentIncomplete
	}
	if !docType.Valid() {
		return nil, ErrUnknownDocumentType
	}

	ext := strings.ToLower(filepath.Ext(fileName))
	return &Document{
		ID:           uuid.New().String(),
		LeadID:       leadID,
		AgentID:      agentID,
		FileName:     filepath.Base(fileName),
		StoragePath:  fmt.Sprintf("%s/%s/%s_%d%s", agentID, leadID, docType.Slug(), at.UnixMilli(), ext),
		DocumentType: docType,
		CreatedAt:    at.UTC(),
	}, nil
}

type DocumentRepository interface {
	Create(ctx context.Context, doc *Document) error
	FindByID(ctx context.Context, id string) (*Document, error)
	ListByLead(ctx context.Context, leadID string) ([]Document, error)
	ListByAgent(ctx context.Context, agentID string) ([]Document, error)
	Delete(ctx context.Context, id string) error
	DeleteByLead(ctx context.Context, leadID string) (int64, error)
	DeleteByAgent(ctx context.Context, agentID string) (int64, error)
}
