package httpx

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	appErrors "github.com/pollbooth/pollbooth-ui/internal/errors"
)

// AuthHandlers serves the login flow endpoints.
type AuthHandlers struct {
	Svc          AuthService
	Renderer     *TemplateRenderer
	CookieDomain string
	Logger       *slog.Logger
}

// Login starts a new login round-trip: issue a single-use state and send the
// browser to the provider's authorize URL.
func (h *AuthHandlers) Login(w http.ResponseWriter, r *http.Request) {
	authURL, err := h.Svc.BeginLogin(r.Context())
	if err != nil {
		h.logger().Error("begin login", "error", err)
		h.renderLoginError(w, http.StatusInternalServerError, "Sign-in is unavailable right now.")
		return
	}
	http.Redirect(w, r, authURL, http.StatusFound)
}

// Callback finishes the login round-trip. The authorization code never
// reaches a rendered page: it is consumed here, server-side, and the browser
// leaves with only a session cookie.
//
// A rejected exchange restarts the flow through the authorize redirect, but
// only up to maxLoginAttempts consecutive failures; after that the error
// page is rendered so a persistently broken IdP cannot loop the browser
// forever.
func (h *AuthHandlers) Callback(w http.ResponseWriter, r *http.Request) {
	code := r.URL.Query().Get("code")
	state := r.URL.Query().Get("state")

	sess, err := h.Svc.CompleteLogin(r.Context(), code, state)
	if err != nil {
		h.handleLoginFailure(w, r, err)
		return
	}

	clearCookie(w, r, attemptsCookieName)
	h.setSessionCookie(w, r, sess.ID, sess.ExpiresAt)

	role := h.Svc.RoleFor(sess)
	http.Redirect(w, r, role.LandingPath(), http.StatusFound)
}

func (h *AuthHandlers) handleLoginFailure(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case appErrors.IsExchange(err), appErrors.IsNetwork(err):
		attempts := h.loginAttempts(r) + 1
		h.logger().Warn("code exchange failed", "attempt", attempts, "error", err)
		if attempts < maxLoginAttempts {
			h.setAttemptsCookie(w, r, attempts)
			http.Redirect(w, r, loginPath, http.StatusFound)
			return
		}
		clearCookie(w, r, attemptsCookieName)
		h.renderLoginError(w, http.StatusBadGateway, appErrors.UserMessage(err))
	case appErrors.IsValidation(err):
		// Stale, unknown or replayed state: start a clean flow
		h.logger().Warn("callback rejected", "error", err)
		http.Redirect(w, r, loginPath, http.StatusFound)
	default:
		h.logger().Error("complete login", "error", err)
		h.renderLoginError(w, http.StatusInternalServerError, "Sign-in failed. Please try again.")
	}
}

// Logout deletes the server session, drops the cookie and hands the browser
// to the provider's logout endpoint. Getting back in requires a full login
// round-trip.
func (h *AuthHandlers) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(sessionCookieName); err == nil && cookie.Value != "" {
		if logoutErr := h.Svc.Logout(r.Context(), cookie.Value); logoutErr != nil {
			h.logger().Warn("delete session on logout", "error", logoutErr)
		}
	}
	clearCookie(w, r, sessionCookieName)
	redirect(w, r, h.Svc.LogoutURL())
}

// Status reports the session state as JSON.
func (h *AuthHandlers) Status(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(sessionCookieName)
	if err != nil || cookie.Value == "" {
		WriteJSON(w, http.StatusOK, map[string]any{"authenticated": false})
		return
	}
	sess, err := h.Svc.GetSession(r.Context(), cookie.Value)
	if err != nil {
		WriteJSON(w, http.StatusOK, map[string]any{"authenticated": false})
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{
		"authenticated": true,
		"role":          h.Svc.RoleFor(sess),
		"status":        sess.Status,
		"expires_at":    sess.ExpiresAt,
	})
}

func (h *AuthHandlers) setSessionCookie(w http.ResponseWriter, r *http.Request, sessionID string, expiresAt time.Time) {
	maxAge := int(time.Until(expiresAt).Seconds())
	if maxAge < 0 {
		maxAge = 0
	}
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    sessionID,
		Path:     "/",
		Domain:   h.CookieDomain,
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   isSecure(r),
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *AuthHandlers) setAttemptsCookie(w http.ResponseWriter, r *http.Request, attempts int) {
	http.SetCookie(w, &http.Cookie{
		Name:     attemptsCookieName,
		Value:    strconv.Itoa(attempts),
		Path:     "/",
		MaxAge:   300,
		HttpOnly: true,
		Secure:   isSecure(r),
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *AuthHandlers) loginAttempts(r *http.Request) int {
	cookie, err := r.Cookie(attemptsCookieName)
	if err != nil {
		return 0
	}
	n, err := strconv.Atoi(cookie.Value)
	if err != nil || n < 0 {
		return 0
	}
	return n
}

func (h *AuthHandlers) renderLoginError(w http.ResponseWriter, status int, message string) {
	if h.Renderer == nil {
		http.Error(w, message, status)
		return
	}
	h.Renderer.RenderPage(w, status, "login-error", map[string]any{
		"Title":   "Sign-in failed",
		"Message": message,
	})
}

func (h *AuthHandlers) logger() *slog.Logger {
	if h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}
