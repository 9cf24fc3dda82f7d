package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/expotrack/expotrack/internal/api/apierr"
	"github.com/expotrack/expotrack/internal/model"
	"github.com/expotrack/expotrack/internal/services/session"
)

type contextKey string

const sessionContextKey contextKey = "session"

// Auth creates session authentication middleware. Requests without a
// valid session token are rejected.
func Auth(coordinator *session.Coordinator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := ExtractToken(r)
			if token == "" {
				apierr.WriteError(w, apierr.NewUnauthorizedError())
				return
			}

			sess, err := coordinator.Get(token)
			if err != nil {
				apierr.WriteError(w, err)
				return
			}

			ctx := context.WithValue(r.Context(), sessionContextKey, sess)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ExtractToken extracts the session token from the request
func ExtractToken(r *http.Request) model.SessionToken {
	// Check Authorization header first
	authHeader := r.Header.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return model.SessionToken(strings.TrimPrefix(authHeader, "Bearer "))
	}

	// Fall back to cookie
	cookie, err := r.Cookie("session")
	if err == nil {
		return model.SessionToken(cookie.Value)
	}

	return ""
}

// GetSession returns the session from the request context
func GetSession(ctx context.Context) *model.Session {
	sess, _ := ctx.Value(sessionContextKey).(*model.Session)
	return sess
}

// MustGetSession returns the session or panics
func MustGetSession(ctx context.Context) *model.Session {
	sess := GetSession(ctx)
	if sess == nil {
		panic("no session in context - auth middleware not applied?")
	}
	return sess
}
