package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/xavierca1/quotedesk/internal/entity"
	"github.com/xavierca1/quotedesk/internal/usecase"
)

// multipartOverhead covers form fields and boundaries on top of the file.
const multipartOverhead = 1 << 20

type DocumentHandler struct {
	Documents DocumentManager
	MaxBytes  int64
}

func NewDocumentHandler(documents DocumentManager, maxBytes int64) *DocumentHandler {
	return &DocumentHandler{Documents: documents, MaxBytes: maxBytes}
}

func (h *DocumentHandler) List(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	docs, err := h.Documents.ListByLead(r.Context(), p, chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ListResponse[entity.Document]{Data: docs, Total: len(docs)})
}

// Upload expects multipart/form-data with a "file" part and a
// "document_type" field.
func (h *DocumentHandler) Upload(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.MaxBytes+multipartOverhead)
	if err := r.ParseMultipartForm(h.MaxBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.writeTooLarge(w)
			return
		}
		writeErrorResponse(w, http.StatusBadRequest, "INVALID_FORM", "expected multipart/form-data")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeErrorResponse(w, http.StatusBadRequest, usecase.CodeValidationFailed, "file is required")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, h.MaxBytes+1))
	if err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "INVALID_FORM", "could not read file")
		return
	}
	if int64(len(data)) > h.MaxBytes {
		h.writeTooLarge(w)
		return
	}

	contentType := header.Header.Get("Content-Type")
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = http.DetectContentType(data)
	}

	doc, err := h.Documents.Upload(r.Context(), p, usecase.UploadDocumentInput{
		LeadID:       chi.URLParam(r, "id"),
		FileName:     header.Filename,
		ContentType:  contentType,
		DocumentType: entity.DocumentType(r.FormValue("document_type")),
		Data:         data,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, doc)
}

func (h *DocumentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	if err := h.Documents.Delete(r.Context(), p, chi.URLParam(r, "id")); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *DocumentHandler) writeTooLarge(w http.ResponseWriter) {
	writeErrorResponse(w, http.StatusRequestEntityTooLarge, usecase.CodeValidationFailed,
		fmt.Sprintf("file must not exceed %d bytes", h.MaxBytes))
}
