package httpx

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"net/http"
)

type csrfTokenKey struct{}

const csrfTokenLength = 32

// CSRFProtection implements double-submit cookie CSRF protection. Safe
// methods ensure a token cookie exists and expose the token to templates via
// the request context; unsafe methods must echo the cookie value in the
// csrf_token form field or the X-Csrf-Token header.
func CSRFProtection(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			token := ensureCSRFCookie(w, r)
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), csrfTokenKey{}, token)))
		default:
			cookie, err := r.Cookie(csrfCookieName)
			if err != nil || cookie.Value == "" {
				http.Error(w, "missing CSRF token", http.StatusForbidden)
				return
			}
			submitted := r.Header.Get("X-Csrf-Token")
			if submitted == "" {
				submitted = r.PostFormValue("csrf_token")
			}
			if subtle.ConstantTimeCompare([]byte(cookie.Value), []byte(submitted)) != 1 {
				http.Error(w, "invalid CSRF token", http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), csrfTokenKey{}, cookie.Value)))
		}
	})
}

// GetCSRFToken returns the token for the current request, for embedding in forms.
func GetCSRFToken(ctx context.Context) string {
	token, _ := ctx.Value(csrfTokenKey{}).(string)
	return token
}

// ensureCSRFCookie returns the existing token or mints and sets a new one.
// The cookie is readable by the page so forms can echo it back.
func ensureCSRFCookie(w http.ResponseWriter, r *http.Request) string {
	if cookie, err := r.Cookie(csrfCookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	buf := make([]byte, csrfTokenLength)
	if _, err := rand.Read(buf); err != nil {
		return ""
	}
	token := base64.RawURLEncoding.EncodeToString(buf)
	http.SetCookie(w, &http.Cookie{
		Name:     csrfCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: false,
		Secure:   isSecure(r),
		SameSite: http.SameSiteStrictMode,
	})
	return token
}
