package httpx

import (
	"log/slog"
	"net/http"

	domainauth "github.com/pollbooth/pollbooth-ui/internal/domain/auth"
)

// UIHandlers serves the server-rendered dashboard pages.
type UIHandlers struct {
	Auth     AuthService
	Polls    PollService
	Renderer *TemplateRenderer
	Logger   *slog.Logger
}

func (h *UIHandlers) logger() *slog.Logger {
	if h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

// basePageData assembles the keys the layout expects on every page.
func (h *UIHandlers) basePageData(r *http.Request, title string) map[string]any {
	sess := SessionFromContext(r.Context())
	role := RoleFromContext(r.Context())
	data := map[string]any{
		"Title":         title,
		"Authenticated": sess != nil,
		"Role":          role,
		"IsAdmin":       role == domainauth.RoleAdmin,
		"CSRFToken":     GetCSRFToken(r.Context()),
	}
	if sess != nil {
		data["Status"] = sess.Status
	}
	return data
}

// bearer returns the identity token the poll API expects as credential.
func bearer(r *http.Request) string {
	sess := SessionFromContext(r.Context())
	if sess == nil {
		return ""
	}
	return sess.Tokens.IDToken
}
