package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/jotapp/jot/internal/jot/service"
	"github.com/jotapp/jot/internal/jot/store"
	"github.com/jotapp/jot/pkg/httpx"
	"github.com/jotapp/jot/pkg/slogx"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	buildVersion string
	startTime    time.Time
	logger       *slog.Logger
	tokenTTL     time.Duration

	store             store.Store
	AuthService       *service.AuthService
	DeviceService     *service.DeviceService
	NoteService       *service.NoteService
	RepositoryService *service.RepositoryService
}

func NewRouter(buildVersion string, tokenTTL time.Duration, st store.Store, logger *slog.Logger) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		buildVersion: buildVersion,
		startTime:    time.Now(),
		logger:       logger,
		tokenTTL:     tokenTTL,
		store:        st,
	}

	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerDevice()
	r.registerNotes()
	r.registerRepositories()
	r.registerHealth()
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerAuth() {
	loginHandler := &LoginHandler{AuthService: r.AuthService, TokenTTL: r.tokenTTL}

	// POST /auth/login - strict rate limit (authentication attempts)
	r.Mux.Handle("POST /auth/login",
		httpx.Chain(loginHandler,
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	r.Mux.Handle("POST /auth/logout",
		httpx.Chain(&LogoutHandler{},
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
}

func (r *Router) registerDevice() {
	h := &DeviceHandler{DeviceService: r.DeviceService}

	r.Mux.Handle("POST /auth/device",
		httpx.Chain(http.HandlerFunc(h.HandleCreate),
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)

	// Polled by devices waiting on the user, so the limit stays lenient.
	r.Mux.Handle("GET /auth/status/{code}",
		httpx.Chain(http.HandlerFunc(h.HandleStatus),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)

	// DELETE requires authentication; the device cleans up with its own token.
	r.Mux.Handle("DELETE /auth/device/{code}",
		httpx.Chain(http.HandlerFunc(h.HandleDelete),
			r.requireAuth,
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)

	page := &DevicePageHandler{DeviceService: r.DeviceService}
	r.Mux.Handle("GET /auth/page/{code}",
		httpx.Chain(http.HandlerFunc(page.HandleGet),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)

	// The page POST carries credentials, rate limit it like login.
	r.Mux.Handle("POST /auth/page/{code}",
		httpx.Chain(http.HandlerFunc(page.HandlePost),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
}

func (r *Router) registerNotes() {
	h := &NoteHandler{NoteService: r.NoteService}

	secured := func(handler http.HandlerFunc) http.Handler {
		return httpx.Chain(handler,
			r.requireAuth,
			httpx.RateLimitByUser(httpx.LenientLimit),
		)
	}

	r.Mux.Handle("GET /note", secured(h.HandleList))
	r.Mux.Handle("POST /note", secured(h.HandleCreate))
	r.Mux.Handle("POST /note/search", secured(h.HandleSearch))
	r.Mux.Handle("DELETE /note/delete", secured(h.HandleDeleteMany))
	r.Mux.Handle("GET /note/{id}", secured(h.HandleGet))
	r.Mux.Handle("DELETE /note/{id}", secured(h.HandleDelete))
	r.Mux.Handle("GET /user/note", secured(h.HandleListOwn))
}

func (r *Router) registerRepositories() {
	h := &RepositoryHandler{RepositoryService: r.RepositoryService}

	secured := func(handler http.HandlerFunc) http.Handler {
		return httpx.Chain(handler,
			r.requireAuth,
			httpx.RateLimitByUser(httpx.LenientLimit),
		)
	}

	r.Mux.Handle("GET /repository", secured(h.HandleList))
	r.Mux.Handle("GET /repository/{id}", secured(h.HandleGet))
	r.Mux.Handle("GET /user/repository", secured(h.HandleListOwn))
}

func (r *Router) registerHealth() {
	r.Mux.Handle("GET /health",
		httpx.Chain(HealthHandler(r.startTime, r.buildVersion, r.store),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)

	// Same probe behind the gate so clients can verify their token.
	r.Mux.Handle("GET /health/auth",
		httpx.Chain(HealthHandler(r.startTime, r.buildVersion, r.store),
			r.requireAuth,
			httpx.RateLimitByUser(httpx.LenientLimit),
		),
	)
}
