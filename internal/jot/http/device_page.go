package http

import (
	"embed"
	"errors"
	"fmt"
	"html/template"
	"net/http"

	"github.com/jotapp/jot/internal/jot/service"
	"github.com/jotapp/jot/pkg/slogx"
)

//go:embed templates/*.html
var pageFS embed.FS

var pageTemplates = template.Must(template.ParseFS(pageFS, "templates/*.html"))

// DevicePageHandler serves the browser side of the device flow: a small HTML
// form where the user signs in to approve the device code in the URL.
type DevicePageHandler struct {
	DeviceService *service.DeviceService
}

type devicePageData struct {
	Code  string
	Error string
	Email string
}

// HandleGet serves GET /auth/page/{code}.
func (h *DevicePageHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, "device_auth.html", devicePageData{Code: r.PathValue("code")})
}

// HandlePost serves POST /auth/page/{code}. Credentials arrive as form
// fields; every failure re-renders the error page with the submitted email
// so the user can retry. The token itself never appears in the page.
func (h *DevicePageHandler) HandlePost(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)
	code := r.PathValue("code")

	if err := r.ParseForm(); err != nil {
		h.renderError(w, r, code, "Invalid form submission", "")
		return
	}

	email := r.PostForm.Get("email")
	password := r.PostForm.Get("password")

	err := h.DeviceService.Fulfill(ctx, code, email, password)
	switch {
	case err == nil:
		h.render(w, r, "device_auth_success.html", devicePageData{})
	case errors.Is(err, service.ErrInvalidRequest), errors.Is(err, service.ErrInvalidCredentials):
		h.renderError(w, r, code, "Invalid username or password", email)
	case errors.Is(err, service.ErrChallengeNotFound):
		h.renderError(w, r, code, fmt.Sprintf("Device code '%s' is not valid", code), email)
	default:
		log.Error("device page fulfillment failed", "error", err)
		h.renderError(w, r, code, "Something went wrong, please try again", email)
	}
}

func (h *DevicePageHandler) render(w http.ResponseWriter, r *http.Request, name string, data devicePageData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pageTemplates.ExecuteTemplate(w, name, data); err != nil {
		slogx.FromContext(r.Context()).Error("device page render failed", "template", name, "error", err)
	}
}

func (h *DevicePageHandler) renderError(w http.ResponseWriter, r *http.Request, code, message, email string) {
	h.render(w, r, "device_auth_error.html", devicePageData{Code: code, Error: message, Email: email})
}
