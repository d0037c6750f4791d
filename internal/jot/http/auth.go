package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/jotapp/jot/internal/jot/service"
	"github.com/jotapp/jot/pkg/httpx"
	"github.com/jotapp/jot/pkg/jwtx"
	"github.com/jotapp/jot/pkg/slogx"
)

const msgBadCredentials = "Username or password incorrect"

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
}

// LoginHandler serves POST /auth/login.
type LoginHandler struct {
	AuthService *service.AuthService
	TokenTTL    time.Duration
}

func (h *LoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	token, err := h.AuthService.Login(ctx, req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidRequest):
			httpx.WriteError(w, http.StatusBadRequest, "Username and password are required")
		case errors.Is(err, service.ErrInvalidCredentials):
			// Identical body for unknown users and wrong passwords.
			httpx.WriteError(w, http.StatusUnauthorized, msgBadCredentials)
		default:
			log.Error("login failed", "error", err)
			httpx.WriteError(w, http.StatusInternalServerError, msgInternalError)
		}
		return
	}

	setTokenCookie(w, token, h.TokenTTL)
	httpx.WriteJSON(w, http.StatusOK, loginResponse{Token: token})
}

// LogoutHandler serves POST /auth/logout. It only clears the cookie; tokens
// stay valid until they expire.
type LogoutHandler struct{}

func (h *LogoutHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	clearTokenCookie(w)
	w.WriteHeader(http.StatusOK)
}

func setTokenCookie(w http.ResponseWriter, token string, ttl time.Duration) {
	if ttl <= 0 {
		ttl = jwtx.DefaultTokenTTL
	}

	http.SetCookie(w, &http.Cookie{
		Name:     "token",
		Value:    token,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func clearTokenCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     "token",
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
