package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/xavierca1/quotedesk/internal/entity"
	"github.com/xavierca1/quotedesk/internal/usecase"
)

type AgentHandler struct {
	Agents AgentManager
}

func NewAgentHandler(agents AgentManager) *AgentHandler {
	return &AgentHandler{Agents: agents}
}

type MeResponse struct {
	UserID  string        `json:"user_id"`
	IsAdmin bool          `json:"is_admin"`
	Profile *entity.Agent `json:"profile"`
}

// Me returns the caller and their agent profile. Admins may have no profile.
func (h *AgentHandler) Me(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	profile, err := h.Agents.Get(r.Context(), p, p.UserID)
	if err != nil && usecase.ErrorCode(err) != usecase.CodeNotFound {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, MeResponse{UserID: p.UserID, IsAdmin: p.IsAdmin, Profile: profile})
}

func (h *AgentHandler) Register(w http.ResponseWriter, r *http.Request) {
	var input usecase.CreateAgentInput
	if !decodeJSON(w, r, &input) {
		return
	}

	agent, err := h.Agents.Register(r.Context(), input)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, agent)
}

func (h *AgentHandler) Create(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	var input usecase.CreateAgentInput
	if !decodeJSON(w, r, &input) {
		return
	}

	agent, err := h.Agents.Create(r.Context(), p, input)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, agent)
}

// List supports ?line= to find the agents writing one line of insurance.
func (h *AgentHandler) List(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	q := r.URL.Query()
	if line := q.Get("line"); line != "" {
		agents, err := h.Agents.FindByLine(r.Context(), line)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, ListResponse[entity.Agent]{Data: agents, Total: len(agents)})
		return
	}

	filter := entity.AgentFilter{
		Search:    q.Get("search"),
		Page:      queryInt(r, "page"),
		PageSize:  queryInt(r, "page_size"),
		SortKey:   q.Get("sort"),
		SortOrder: q.Get("order"),
	}

	agents, total, err := h.Agents.List(r.Context(), p, filter, q.Get("include_stats") == "true")
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ListResponse[entity.Agent]{Data: agents, Total: total})
}

func (h *AgentHandler) Get(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	agent, err := h.Agents.Get(r.Context(), p, chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, agent)
}

func (h *AgentHandler) Update(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	var input usecase.UpdateAgentInput
	if !decodeJSON(w, r, &input) {
		return
	}

	agent, err := h.Agents.Update(r.Context(), p, chi.URLParam(r, "id"), input)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, agent)
}

// Delete hands the agent's leads to ?reassign_to= or leaves them unassigned.
func (h *AgentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	var reassignTo *string
	if v := r.URL.Query().Get("reassign_to"); v != "" {
		reassignTo = &v
	}

	if err := h.Agents.Delete(r.Context(), p, chi.URLParam(r, "id"), reassignTo); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
