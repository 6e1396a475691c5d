package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/xavierca1/quotedesk/internal/entity"
)

type NoteHandler struct {
	Notes NoteManager
}

func NewNoteHandler(notes NoteManager) *NoteHandler {
	return &NoteHandler{Notes: notes}
}

type CreateNoteRequest struct {
	Content string `json:"content"`
}

func (h *NoteHandler) List(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	notes, err := h.Notes.ListByLead(r.Context(), p, chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ListResponse[entity.Note]{Data: notes, Total: len(notes)})
}

func (h *NoteHandler) Create(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	var req CreateNoteRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	note, err := h.Notes.Create(r.Context(), p, chi.URLParam(r, "id"), req.Content)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, note)
}

func (h *NoteHandler) Delete(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	if err := h.Notes.Delete(r.Context(), p, chi.URLParam(r, "id")); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
