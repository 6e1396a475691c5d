package entity

import "errors"

var (
	ErrLeadNotFound     = errors.New("lead not found")
	ErrAgentNotFound    = errors.New("agent not found")
	ErrNoteNotFound     = errors.New("note not found")
	ErrDocumentNotFound = errors.New("document not found")
	ErrDuplicate        = errors.New("record already exists")

	ErrPrivacyConsentRequired = errors.New("privacy consent is required")
	ErrLeadIncomplete         = errors.New("full_name, email, phone and zip_code are required")
	ErrUnknownInsuranceType   = errors.New("unknown insurance type")
	ErrAgentIncomplete        = errors.New("agent id, name, email, licensed states and lines of insurance are required")
	ErrNoteIncomplete         = errors.New("note requires lead, agent and content")
	ErrDocumentIncomplete     = errors.New("document requires lead, agent and file name")
	ErrUnknownDocumentType    = errors.New("unknown document type")
)

func IsNotFound(err error) bool {
	return errors.Is(err, ErrLeadNotFound) ||
		errors.Is(err, ErrAgentNotFound) ||
		errors.Is(err, ErrNoteNotFound) ||
		errors.Is(err, ErrDocumentNotFound)
}
