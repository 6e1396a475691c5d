package handlers

import (
	"net/http"

	"github.com/xavierca1/quotedesk/internal/usecase"
)

// QuoteHandler is the public quote form endpoint.
type QuoteHandler struct {
	CreateLead LeadCreator
}

func NewQuoteHandler(createLead LeadCreator) *QuoteHandler {
	return &QuoteHandler{CreateLead: createLead}
}

type QuoteResponse struct {
	Success bool   `json:"success"`
	LeadID  string `json:"lead_id"`
}

func (h *QuoteHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input usecase.CreateLeadInput
	if !decodeJSON(w, r, &input) {
		return
	}

	lead, err := h.CreateLead.Execute(r.Context(), input)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, QuoteResponse{Success: true, LeadID: lead.ID})
}
