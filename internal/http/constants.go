package httpx

// Cookie names.
const (
	sessionCookieName  = "session_id"
	csrfCookieName     = "csrf_token"
	attemptsCookieName = "login_attempts"
)

// Routes referenced across handlers.
const loginPath = "/auth/login"

// maxLoginAttempts bounds the exchange-failure redirect loop: after this many
// consecutive failed code exchanges the error page is rendered instead of
// another authorize redirect.
const maxLoginAttempts = 3
