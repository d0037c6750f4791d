package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/jotapp/jot/internal/jot/service"
	"github.com/jotapp/jot/internal/jot/store"
	"github.com/jotapp/jot/pkg/httpx"
	"github.com/jotapp/jot/pkg/slogx"
)

// RepositoryHandler serves the read-only repository endpoints.
type RepositoryHandler struct {
	RepositoryService *service.RepositoryService
}

// HandleList serves GET /repository.
func (h *RepositoryHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	repos, err := h.RepositoryService.ListAll(r.Context())
	if err != nil {
		h.internalError(w, r, "repository list failed", err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, repos)
}

// HandleListOwn serves GET /user/repository.
func (h *RepositoryHandler) HandleListOwn(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r.Context())
	if !ok {
		httpx.WriteError(w, http.StatusForbidden, msgTokenNotFound)
		return
	}

	repos, err := h.RepositoryService.ListByUser(r.Context(), user.ID)
	if err != nil {
		h.internalError(w, r, "user repository list failed", err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, repos)
}

// HandleGet serves GET /repository/{id}.
func (h *RepositoryHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "Invalid repository id")
		return
	}

	repo, err := h.RepositoryService.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			httpx.WriteError(w, http.StatusNotFound, "Resource not found")
			return
		}
		h.internalError(w, r, "repository lookup failed", err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, repo)
}

func (h *RepositoryHandler) internalError(w http.ResponseWriter, r *http.Request, msg string, err error) {
	slogx.FromContext(r.Context()).Error(msg, "error", err)
	httpx.WriteError(w, http.StatusInternalServerError, msgInternalError)
}
