package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/xavierca1/quotedesk/internal/entity"
	"github.com/xavierca1/quotedesk/internal/usecase"
)

type LeadHandler struct {
	Leads      LeadManager
	CreateLead LeadCreator
}

func NewLeadHandler(leads LeadManager, createLead LeadCreator) *LeadHandler {
	return &LeadHandler{Leads: leads, CreateLead: createLead}
}

type BatchAssignRequest struct {
	IDs     []string `json:"ids"`
	AgentID *string  `json:"agent_id"`
}

type BatchStatusRequest struct {
	IDs    []string          `json:"ids"`
	Status entity.LeadStatus `json:"status"`
}

func (h *LeadHandler) List(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	q := r.URL.Query()
	filter := entity.LeadFilter{
		Status:        entity.LeadStatus(q.Get("status")),
		AssignedTo:    q.Get("assigned_to"),
		AssignedState: q.Get("state"),
		Search:        q.Get("search"),
		Page:          queryInt(r, "page"),
		PageSize:      queryInt(r, "page_size"),
		SortKey:       q.Get("sort"),
		SortOrder:     q.Get("order"),
	}
	if raw := q.Get("contacted"); raw != "" {
		contacted, err := strconv.ParseBool(raw)
		if err != nil {
			writeErrorResponse(w, http.StatusBadRequest, usecase.CodeValidationFailed, "contacted must be true or false")
			return
		}
		filter.Contacted = &contacted
	}

	leads, total, err := h.Leads.List(r.Context(), p, filter)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ListResponse[entity.Lead]{Data: leads, Total: total})
}

// Create lets an admin enter a lead on a consumer's behalf. It runs the same
// flow as the public quote form.
func (h *LeadHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input usecase.CreateLeadInput
	if !decodeJSON(w, r, &input) {
		return
	}

	lead, err := h.CreateLead.Execute(r.Context(), input)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, lead)
}

func (h *LeadHandler) Get(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	lead, err := h.Leads.Get(r.Context(), p, chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, lead)
}

func (h *LeadHandler) Update(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	var input usecase.UpdateLeadInput
	if !decodeJSON(w, r, &input) {
		return
	}

	lead, err := h.Leads.Update(r.Context(), p, chi.URLParam(r, "id"), input)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, lead)
}

func (h *LeadHandler) Delete(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	if err := h.Leads.Delete(r.Context(), p, chi.URLParam(r, "id")); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *LeadHandler) BatchAssign(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	var req BatchAssignRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := h.Leads.BatchAssign(r.Context(), p, req.IDs, req.AgentID); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *LeadHandler) BatchStatus(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	var req BatchStatusRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := h.Leads.BatchUpdateStatus(r.Context(), p, req.IDs, req.Status); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
