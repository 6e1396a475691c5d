package usecase

import (
	"bytes"
	"encoding/json"

	"github.com/xavierca1/quotedesk/internal/entity"
)

type CreateLeadInput struct {
	FullName       string `json:"full_name"`
	Email          string `json:"email"`
	Phone          string `json:"phone"`
	ZipCode        string `json:"zip_code"`
	InsuranceType  string `json:"insurance_type"`
	PrivacyConsent bool   `json:"privacy_consent"`
}

// OptionalString distinguishes an absent JSON field from an explicit null.
type OptionalString struct {
	Set   bool
	Value *string
}

func (o *OptionalString) UnmarshalJSON(data []byte) error {
	o.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		o.Value = nil
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	o.Value = &s
	return nil
}

func SetTo(v string) OptionalString {
	return OptionalString{Set: true, Value: &v}
}

func SetNull() OptionalString {
	return OptionalString{Set: true}
}

type UpdateLeadInput struct {
	FullName      *string            `json:"full_name"`
	Email         *string            `json:"email"`
	Phone         *string            `json:"phone"`
	ZipCode       *string            `json:"zip_code"`
	InsuranceType *string            `json:"insurance_type"`
	Status        *entity.LeadStatus `json:"status"`
	Contacted     *bool              `json:"contacted"`
	AssignedTo    OptionalString     `json:"assigned_to"`
}

type CreateAgentInput struct {
	// ID is only honoured when no password is given: it links a profile to an
	// identity account created elsewhere.
	ID                   string                          `json:"id"`
	FullName             string                          `json:"full_name"`
	AgencyName           string                          `json:"agency_name"`
	Email                string                          `json:"email"`
	Phone                string                          `json:"phone"`
	Password             string                          `json:"password"`
	StatesLicensed       []string                        `json:"states_licensed"`
	LinesOfInsurance     []string                        `json:"lines_of_insurance"`
	CustomPackageRequest bool                            `json:"custom_package_request"`
	Notifications        *entity.NotificationPreferences `json:"notifications"`
}

type UpdateAgentInput struct {
	FullName             *string                         `json:"full_name"`
	AgencyName           *string                         `json:"agency_name"`
	Email                *string                         `json:"email"`
	Phone                *string                         `json:"phone"`
	StatesLicensed       *[]string                       `json:"states_licensed"`
	LinesOfInsurance     *[]string                       `json:"lines_of_insurance"`
	CustomPackageRequest *bool                           `json:"custom_package_request"`
	Notifications        *entity.NotificationPreferences `json:"notifications"`
}

type UploadDocumentInput struct {
	LeadID       string
	FileName     string
	ContentType  string
	DocumentType entity.DocumentType
	Data         []byte
}
