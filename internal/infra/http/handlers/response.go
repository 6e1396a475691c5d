package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/rs/zerolog/log"

	"github.com/xavierca1/quotedesk/internal/entity"
	"github.com/xavierca1/quotedesk/internal/infra/http/middleware"
	"github.com/xavierca1/quotedesk/internal/usecase"
)

type ErrorBody struct {
	Code    string                    `json:"code"`
	Message string                    `json:"message"`
	Fields  []usecase.ValidationError `json:"fields,omitempty"`
}

type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

type ListResponse[T any] struct {
	Data  []T `json:"data"`
	Total int `json:"total"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		json.NewEncoder(w).Encode(v)
	}
}

func writeErrorResponse(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, ErrorResponse{Error: ErrorBody{Code: code, Message: message}})
}

func statusFor(code string) int {
	switch code {
	case usecase.CodeValidationFailed:
		return http.StatusBadRequest
	case usecase.CodeNotFound:
		return http.StatusNotFound
	case usecase.CodeForbidden:
		return http.StatusForbidden
	case usecase.CodeConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// writeError maps a use case error onto the JSON error body. Technical
// details stay in the log.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := usecase.ErrorCode(err)
	status := statusFor(code)

	var de *usecase.DomainError
	if errors.As(err, &de) {
		writeJSON(w, status, ErrorResponse{Error: ErrorBody{Code: code, Message: de.Message, Fields: de.Fields}})
		return
	}

	log.Error().Err(err).Str("code", code).Str("path", r.URL.Path).Msg("request failed")

	message := "internal error"
	var te *usecase.TechnicalError
	if errors.As(err, &te) {
		message = te.Message
	}
	writeJSON(w, status, ErrorResponse{Error: ErrorBody{Code: code, Message: message}})
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "INVALID_JSON", "request body is not valid JSON")
		return false
	}
	return true
}

func principal(w http.ResponseWriter, r *http.Request) (entity.Principal, bool) {
	p, ok := middleware.PrincipalFrom(r.Context())
	if !ok {
		writeErrorResponse(w, http.StatusUnauthorized, "UNAUTHORIZED", "missing session")
	}
	return p, ok
}

func queryInt(r *http.Request, key string) int {
	n, _ := strconv.Atoi(r.URL.Query().Get(key))
	return n
}
