package httpx

import (
	"log/slog"
	"net/http"

	domainauth "github.com/pollbooth/pollbooth-ui/internal/domain/auth"
)

// RouterServices carries everything the router wires into handlers.
type RouterServices struct {
	Auth         AuthService
	Polls        PollService
	Renderer     *TemplateRenderer
	CookieDomain string
	Logger       *slog.Logger
}

// NewRouter builds the full route table.
//
// Role gating follows a redirect-not-forbid policy: a signed-in voter asking
// for an admin page lands on /user, an admin asking for /user lands on
// /admin, and anonymous requests to either go through /auth/login.
func NewRouter(s RouterServices) http.Handler {
	logger := s.Logger
	if logger == nil {
		logger = slog.Default()
	}

	authHandlers := &AuthHandlers{
		Svc:          s.Auth,
		Renderer:     s.Renderer,
		CookieDomain: s.CookieDomain,
		Logger:       logger,
	}
	ui := &UIHandlers{
		Auth:     s.Auth,
		Polls:    s.Polls,
		Renderer: s.Renderer,
		Logger:   logger,
	}
	authMW := &AuthMiddleware{Svc: s.Auth, Logger: logger}

	adminWrap := Chain(authMW.RequireSession, authMW.RequireRole(domainauth.RoleAdmin), CSRFProtection)
	voterWrap := Chain(authMW.RequireSession, authMW.RequireRole(domainauth.RoleVoter), CSRFProtection)

	mux := http.NewServeMux()

	// Auth flow
	mux.HandleFunc("GET /auth/login", authHandlers.Login)
	mux.HandleFunc("GET /auth/callback", authHandlers.Callback)
	mux.HandleFunc("POST /auth/logout", authHandlers.Logout)
	mux.HandleFunc("GET /auth/status", authHandlers.Status)

	// Health
	mux.HandleFunc("GET /healthz", healthHandler)
	mux.HandleFunc("HEAD /healthz", healthHandler)

	// Admin dashboard
	mux.Handle("GET /admin", adminWrap(http.HandlerFunc(ui.AdminDashboard)))
	mux.Handle("GET /admin/create-poll", adminWrap(http.HandlerFunc(ui.CreatePollForm)))
	mux.Handle("POST /admin/polls", adminWrap(http.HandlerFunc(ui.CreatePollSubmit)))
	mux.Handle("GET /admin/poll/{id}/live", adminWrap(http.HandlerFunc(ui.LivePoll)))
	mux.Handle("GET /admin/poll/{id}/live/results", adminWrap(http.HandlerFunc(ui.LivePollResults)))
	mux.Handle("POST /admin/poll/{id}/close", adminWrap(http.HandlerFunc(ui.ClosePoll)))

	// Voter dashboard
	mux.Handle("GET /user", voterWrap(http.HandlerFunc(ui.UserDashboard)))
	mux.Handle("POST /user/vote", voterWrap(http.HandlerFunc(ui.VoteSubmit)))

	// Root and everything unmatched
	mux.Handle("GET /{$}", CSRFProtection(http.HandlerFunc(ui.Landing)))
	mux.HandleFunc("/", ui.NotFound)

	return mux
}
