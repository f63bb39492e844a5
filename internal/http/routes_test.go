package httpx

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	domainauth "github.com/pollbooth/pollbooth-ui/internal/domain/auth"
)

func newTestRouter(t *testing.T, auth *mockAuthService, polls *mockPollService) http.Handler {
	t.Helper()
	return NewRouter(RouterServices{
		Auth:     auth,
		Polls:    polls,
		Renderer: newTestRenderer(t),
		Logger:   discardLogger(),
	})
}

func sessionedAuth(role domainauth.Role) *mockAuthService {
	return &mockAuthService{
		GetSessionFunc: func(_ context.Context, id string) (*domainauth.Session, error) {
			return testSession(id), nil
		},
		RoleForFunc: func(*domainauth.Session) domainauth.Role { return role },
	}
}

func TestRouter_UnknownPathRedirectsToRoot(t *testing.T) {
	router := newTestRouter(t, &mockAuthService{}, &mockPollService{})

	for _, target := range []string{"/no-such-page", "/admin/nope/deep", "/polls"} {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))

		assert.Equal(t, http.StatusFound, rec.Code, target)
		assert.Equal(t, "/", rec.Header().Get("Location"), target)
	}
}

func TestRouter_Landing(t *testing.T) {
	t.Run("anonymous gets the sign-in page", func(t *testing.T) {
		router := newTestRouter(t, &mockAuthService{}, &mockPollService{})
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "/auth/login")
	})

	t.Run("authenticated admin is sent to the admin dashboard", func(t *testing.T) {
		router := newTestRouter(t, sessionedAuth(domainauth.RoleAdmin), &mockPollService{})
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: sessionCookieName, Value: "sess-1"})
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusFound, rec.Code)
		assert.Equal(t, "/admin", rec.Header().Get("Location"))
	})

	t.Run("authenticated voter is sent to the voter dashboard", func(t *testing.T) {
		router := newTestRouter(t, sessionedAuth(domainauth.RoleVoter), &mockPollService{})
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: sessionCookieName, Value: "sess-1"})
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusFound, rec.Code)
		assert.Equal(t, "/user", rec.Header().Get("Location"))
	})
}

func TestRouter_RoleGating(t *testing.T) {
	tests := []struct {
		name         string
		role         domainauth.Role
		target       string
		wantStatus   int
		wantLocation string
	}{
		{"voter asking for admin lands on /user", domainauth.RoleVoter, "/admin", http.StatusFound, "/user"},
		{"voter asking for create-poll lands on /user", domainauth.RoleVoter, "/admin/create-poll", http.StatusFound, "/user"},
		{"admin asking for /user lands on /admin", domainauth.RoleAdmin, "/user", http.StatusFound, "/admin"},
		{"admin reaches the admin dashboard", domainauth.RoleAdmin, "/admin", http.StatusOK, ""},
		{"voter reaches the voter dashboard", domainauth.RoleVoter, "/user", http.StatusOK, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newTestRouter(t, sessionedAuth(tt.role), &mockPollService{})
			req := httptest.NewRequest(http.MethodGet, tt.target, nil)
			req.AddCookie(&http.Cookie{Name: sessionCookieName, Value: "sess-1"})
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantLocation != "" {
				assert.Equal(t, tt.wantLocation, rec.Header().Get("Location"))
			}
		})
	}
}

func TestRouter_AnonymousGatedRoutesGoToLogin(t *testing.T) {
	router := newTestRouter(t, &mockAuthService{}, &mockPollService{})

	for _, target := range []string{"/admin", "/admin/create-poll", "/admin/poll/p1/live", "/user"} {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))

		assert.Equal(t, http.StatusFound, rec.Code, target)
		assert.Equal(t, loginPath, rec.Header().Get("Location"), target)
	}
}

func TestRouter_Health(t *testing.T) {
	router := newTestRouter(t, &mockAuthService{}, &mockPollService{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodHead, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestRouter_LoginRedirectsToAuthorize(t *testing.T) {
	router := newTestRouter(t, &mockAuthService{}, &mockPollService{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/auth/login", nil))

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Contains(t, rec.Header().Get("Location"), "/oauth2/authorize")
}
