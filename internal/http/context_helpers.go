package httpx

import (
	"context"
	"net/http"

	domainauth "github.com/pollbooth/pollbooth-ui/internal/domain/auth"
)

type sessionKey struct{}
type roleKey struct{}

// SetSessionInContext returns a request carrying the session and its derived
// role. The role is computed once per request from the identity token and
// never persisted.
func SetSessionInContext(r *http.Request, sess *domainauth.Session, role domainauth.Role) *http.Request {
	ctx := context.WithValue(r.Context(), sessionKey{}, sess)
	ctx = context.WithValue(ctx, roleKey{}, role)
	return r.WithContext(ctx)
}

// SessionFromContext returns the authenticated session, or nil.
func SessionFromContext(ctx context.Context) *domainauth.Session {
	sess, _ := ctx.Value(sessionKey{}).(*domainauth.Session)
	return sess
}

// RoleFromContext returns the role derived for this request, or "" when the
// request is unauthenticated.
func RoleFromContext(ctx context.Context) domainauth.Role {
	role, _ := ctx.Value(roleKey{}).(domainauth.Role)
	return role
}
