package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/jotapp/jot/internal/jot/domain"
	"github.com/jotapp/jot/internal/jot/service"
	"github.com/jotapp/jot/internal/jot/store"
	"github.com/jotapp/jot/pkg/httpx"
	"github.com/jotapp/jot/pkg/slogx"
)

type createNoteRequest struct {
	Content    string   `json:"content"`
	Tags       []string `json:"tags"`
	TargetDate string   `json:"target_date"`
}

type deleteManyRequest struct {
	IDs []int64 `json:"ids"`
}

// NoteHandler serves the note endpoints. All of them sit behind the gate.
type NoteHandler struct {
	NoteService *service.NoteService
}

// HandleList serves GET /note.
func (h *NoteHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	notes, err := h.NoteService.ListAll(r.Context())
	if err != nil {
		h.internalError(w, r, "note list failed", err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, notes)
}

// HandleListOwn serves GET /user/note.
func (h *NoteHandler) HandleListOwn(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r.Context())
	if !ok {
		httpx.WriteError(w, http.StatusForbidden, msgTokenNotFound)
		return
	}

	notes, err := h.NoteService.ListByUser(r.Context(), user.ID)
	if err != nil {
		h.internalError(w, r, "user note list failed", err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, notes)
}

// HandleGet serves GET /note/{id}.
func (h *NoteHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "Invalid note id")
		return
	}

	note, err := h.NoteService.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			httpx.WriteError(w, http.StatusNotFound, "Resource not found")
			return
		}
		h.internalError(w, r, "note lookup failed", err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, note)
}

// HandleCreate serves POST /note.
func (h *NoteHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r.Context())
	if !ok {
		httpx.WriteError(w, http.StatusForbidden, msgTokenNotFound)
		return
	}

	var req createNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	note, err := h.NoteService.Create(r.Context(), user.ID, req.Content, req.Tags, req.TargetDate)
	if err != nil {
		if errors.Is(err, service.ErrInvalidRequest) {
			httpx.WriteError(w, http.StatusBadRequest, "Content is required")
			return
		}
		h.internalError(w, r, "note create failed", err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, note)
}

// HandleDelete serves DELETE /note/{id}.
func (h *NoteHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r.Context())
	if !ok {
		httpx.WriteError(w, http.StatusForbidden, msgTokenNotFound)
		return
	}

	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "Invalid note id")
		return
	}

	if err := h.NoteService.Delete(r.Context(), id, user.ID); err != nil {
		if errors.Is(err, service.ErrNoteNotFound) {
			httpx.WriteError(w, http.StatusNotFound, "Resource not found")
			return
		}
		h.internalError(w, r, "note delete failed", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleDeleteMany serves DELETE /note/delete.
func (h *NoteHandler) HandleDeleteMany(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r.Context())
	if !ok {
		httpx.WriteError(w, http.StatusForbidden, msgTokenNotFound)
		return
	}

	var req deleteManyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.NoteService.DeleteMany(r.Context(), req.IDs, user.ID); err != nil {
		h.internalError(w, r, "note bulk delete failed", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleSearch serves POST /note/search.
func (h *NoteHandler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	var query domain.NoteSearch
	if err := json.NewDecoder(r.Body).Decode(&query); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	notes, err := h.NoteService.Search(r.Context(), query)
	if err != nil {
		h.internalError(w, r, "note search failed", err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, notes)
}

func (h *NoteHandler) internalError(w http.ResponseWriter, r *http.Request, msg string, err error) {
	slogx.FromContext(r.Context()).Error(msg, "error", err)
	httpx.WriteError(w, http.StatusInternalServerError, msgInternalError)
}
