package handler

import (
	"context"
	"net"
	"net/http"

	"github.com/msomdec/bazaar/internal/domain"
	"github.com/msomdec/bazaar/internal/service"
)

const sessionCookie = "bazaar_token"

type contextKey string

const sessionContextKey contextKey = "session"

// SessionFromContext extracts the authenticated session from the request
// context. Returns nil for anonymous requests.
func SessionFromContext(ctx context.Context) *domain.Session {
	session, _ := ctx.Value(sessionContextKey).(*domain.Session)
	return session
}

// RequireAuth protects routes that need a signed-in user. It validates the
// session cookie and checks it against the persisted session record, which
// stays authoritative: a cleared session invalidates outstanding tokens.
func RequireAuth(accounts *service.AccountService, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session, err := authenticateRequest(r, accounts)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "Sign in to do that.")
			return
		}

		ctx := context.WithValue(r.Context(), sessionContextKey, session)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// OptionalAuth injects the session when a valid cookie is present and lets
// anonymous requests through untouched.
func OptionalAuth(accounts *service.AccountService, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if session, err := authenticateRequest(r, accounts); err == nil && session != nil {
			r = r.WithContext(context.WithValue(r.Context(), sessionContextKey, session))
		}
		next.ServeHTTP(w, r)
	})
}

func authenticateRequest(r *http.Request, accounts *service.AccountService) (*domain.Session, error) {
	cookie, err := r.Cookie(sessionCookie)
	if err != nil {
		return nil, err
	}

	email, err := accounts.ValidateToken(cookie.Value)
	if err != nil {
		return nil, err
	}

	session, err := accounts.CurrentSession(r.Context())
	if err != nil {
		return nil, err
	}
	if session == nil || session.Email != email {
		return nil, domain.ErrAuthRequired
	}
	return session, nil
}

// RateLimit rejects requests with 429 once the per-IP bucket for this route
// group is drained.
func RateLimit(limiter *service.AttemptLimiter, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !limiter.Allow(clientIP(r)) {
			writeError(w, http.StatusTooManyRequests, "Too many attempts. Try again shortly.")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// SecurityHeaders sets baseline security headers on every response.
func SecurityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "same-origin")
		next.ServeHTTP(w, r)
	})
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
