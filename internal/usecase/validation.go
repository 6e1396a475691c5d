package usecase

import (
	"fmt"
	"net/mail"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/xavierca1/quotedesk/internal/entity"
)

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

var stateCode = regexp.MustCompile(`^[A-Z]{2}$`)

func ValidateCreateLeadInput(input CreateLeadInput) []ValidationError {
	var errors []ValidationError

	if strings.TrimSpace(input.FullName) == "" {
		errors = append(errors, ValidationError{"full_name", "is required"})
	} else if len(input.FullName) > 200 {
		errors = append(errors, ValidationError{"full_name", "must not exceed 200 characters"})
	}

	if strings.TrimSpace(input.Email) == "" {
		errors = append(errors, ValidationError{"email", "is required"})
	} else if !isValidEmail(input.Email) {
		errors = append(errors, ValidationError{"email", "is invalid"})
	}

	if strings.TrimSpace(input.Phone) == "" {
		errors = append(errors, ValidationError{"phone", "is required"})
	}

	if strings.TrimSpace(input.ZipCode) == "" {
		errors = append(errors, ValidationError{"zip_code", "is required"})
	}

	if input.InsuranceType != "" && !entity.IsInsuranceType(input.InsuranceType) {
		errors = append(errors, ValidationError{"insurance_type", "must be one of " + strings.Join(entity.InsuranceTypes, ", ")})
	}

	if !input.PrivacyConsent {
		errors = append(errors, ValidationError{"privacy_consent", "must be accepted"})
	}

	return errors
}

func ValidateUpdateLeadInput(input UpdateLeadInput) []ValidationError {
	var errors []ValidationError

	required := []struct {
		field string
		value *string
	}{
		{"full_name", input.FullName},
		{"phone", input.Phone},
		{"zip_code", input.ZipCode},
	}
	for _, r := range required {
		if r.value != nil && strings.TrimSpace(*r.value) == "" {
			errors = append(errors, ValidationError{r.field, "must not be empty"})
		}
	}

	if input.Email != nil && !isValidEmail(*input.Email) {
		errors = append(errors, ValidationError{"email", "is invalid"})
	}
	if input.InsuranceType != nil && !entity.IsInsuranceType(*input.InsuranceType) {
		errors = append(errors, ValidationError{"insurance_type", "must be one of " + strings.Join(entity.InsuranceTypes, ", ")})
	}
	if input.Status != nil && !input.Status.Valid() {
		errors = append(errors, ValidationError{"status", "must be new, contacted, follow_up or closed"})
	}

	return errors
}

func ValidateAgentInput(input CreateAgentInput, requirePassword bool) []ValidationError {
	var errors []ValidationError

	if input.ID != "" {
		if _, err := uuid.Parse(input.ID); err != nil {
			errors = append(errors, ValidationError{"id", "must be a uuid"})
		}
	}

	if strings.TrimSpace(input.FullName) == "" {
		errors = append(errors, ValidationError{"full_name", "is required"})
	}

	if strings.TrimSpace(input.Email) == "" {
		errors = append(errors, ValidationError{"email", "is required"})
	} else if !isValidEmail(input.Email) {
		errors = append(errors, ValidationError{"email", "is invalid"})
	}

	if requirePassword && input.Password == "" {
		errors = append(errors, ValidationError{"password", "is required"})
	} else if input.Password != "" && len(input.Password) < 8 {
		errors = append(errors, ValidationError{"password", "must have at least 8 characters"})
	}

	errors = append(errors, validateStates(input.StatesLicensed)...)
	errors = append(errors, validateLines(input.LinesOfInsurance)...)

	return errors
}

func ValidateUpdateAgentInput(input UpdateAgentInput) []ValidationError {
	var errors []ValidationError

	if input.FullName != nil && strings.TrimSpace(*input.FullName) == "" {
		errors = append(errors, ValidationError{"full_name", "must not be empty"})
	}
	if input.Email != nil && !isValidEmail(*input.Email) {
		errors = append(errors, ValidationError{"email", "is invalid"})
	}
	if input.StatesLicensed != nil {
		errors = append(errors, validateStates(*input.StatesLicensed)...)
	}
	if input.LinesOfInsurance != nil {
		errors = append(errors, validateLines(*input.LinesOfInsurance)...)
	}

	return errors
}

func validateStates(states []string) []ValidationError {
	if len(states) == 0 {
		return []ValidationError{{"states_licensed", "must contain at least one state"}}
	}
	for _, s := range states {
		if !stateCode.MatchString(s) {
			return []ValidationError{{"states_licensed", fmt.Sprintf("%q is not a two-letter state code", s)}}
		}
	}
	return nil
}

func validateLines(lines []string) []ValidationError {
	if len(lines) == 0 {
		return []ValidationError{{"lines_of_insurance", "must contain at least one line"}}
	}
	for _, l := range lines {
		if !entity.IsInsuranceType(l) {
			return []ValidationError{{"lines_of_insurance", fmt.Sprintf("%q is not a known insurance type", l)}}
		}
	}
	return nil
}

func isValidEmail(email string) bool {
	addr, err := mail.ParseAddress(strings.TrimSpace(email))
	return err == nil && addr.Address == strings.TrimSpace(email)
}
