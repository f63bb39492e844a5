package httpx

import (
	"net/http"
)

// Landing serves "/": authenticated sessions are sent straight to their
// role's dashboard, everyone else sees the sign-in page.
func (h *UIHandlers) Landing(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(sessionCookieName); err == nil && cookie.Value != "" {
		if sess, getErr := h.Auth.GetSession(r.Context(), cookie.Value); getErr == nil {
			http.Redirect(w, r, h.Auth.RoleFor(sess).LandingPath(), http.StatusFound)
			return
		}
		clearCookie(w, r, sessionCookieName)
	}
	data := h.basePageData(r, "Welcome")
	h.Renderer.RenderPage(w, http.StatusOK, "landing", data)
}

// NotFound funnels unknown paths back to the root, which resolves to the
// right dashboard for the session.
func (h *UIHandlers) NotFound(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/", http.StatusFound)
}
