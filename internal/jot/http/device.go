package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/jotapp/jot/internal/jot/domain"
	"github.com/jotapp/jot/internal/jot/service"
	"github.com/jotapp/jot/pkg/httpx"
	"github.com/jotapp/jot/pkg/slogx"
)

type deviceCodeRequest struct {
	DeviceCode string `json:"device_code"`
}

type deviceStatusResponse struct {
	AccessToken string `json:"access_token"`
}

// DeviceHandler serves the device authorization endpoints.
type DeviceHandler struct {
	DeviceService *service.DeviceService
}

// HandleCreate serves POST /auth/device.
func (h *DeviceHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req deviceCodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.DeviceService.CreateChallenge(ctx, req.DeviceCode); err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidRequest):
			httpx.WriteError(w, http.StatusBadRequest, "Device code is required")
		case errors.Is(err, service.ErrChallengeExists):
			httpx.WriteError(w, http.StatusConflict, "Device code already in use")
		default:
			log.Error("device challenge create failed", "error", err)
			httpx.WriteError(w, http.StatusInternalServerError, msgInternalError)
		}
		return
	}

	w.WriteHeader(http.StatusCreated)
}

// HandleStatus serves GET /auth/status/{code}. Devices poll this until the
// challenge is fulfilled; the token travels in the 200 response exactly once
// the user has signed in.
func (h *DeviceHandler) HandleStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	status, token, err := h.DeviceService.Status(ctx, r.PathValue("code"))
	if err != nil {
		log.Error("device status lookup failed", "error", err)
		httpx.WriteError(w, http.StatusInternalServerError, msgInternalError)
		return
	}

	switch status {
	case domain.ChallengeFulfilled:
		httpx.NoCache(w)
		httpx.WriteJSON(w, http.StatusOK, deviceStatusResponse{AccessToken: token})
	case domain.ChallengePending:
		w.WriteHeader(http.StatusAccepted)
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

// HandleDelete serves DELETE /auth/device/{code}; routed behind the gate.
func (h *DeviceHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	if err := h.DeviceService.Delete(ctx, r.PathValue("code")); err != nil {
		if errors.Is(err, service.ErrChallengeNotFound) {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		log.Error("device challenge delete failed", "error", err)
		httpx.WriteError(w, http.StatusInternalServerError, msgInternalError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
