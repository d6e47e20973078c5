package middleware

import (
	"context"
	"net/http"
)

// AccessTokenHeader carries the access token on every protected request.
const AccessTokenHeader = "X-Access-Token"

type contextKey int

const userIDKey contextKey = iota

// TokenVerifier resolves an access token to the user id it was issued for.
type TokenVerifier interface {
	VerifyAccess(token string) (int64, error)
}

// Auth gates protected routes: a missing, malformed or expired access
// token gets a uniform 401 before any store is touched; otherwise the
// resolved user id is injected into the request context.
func Auth(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := r.Header.Get(AccessTokenHeader)
			if token == "" {
				unauthorized(w)
				return
			}
			userID, err := verifier.VerifyAccess(token)
			if err != nil {
				unauthorized(w)
				return
			}
			ctx := context.WithValue(r.Context(), userIDKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserID returns the authenticated user id stored by Auth.
func UserID(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(userIDKey).(int64)
	return id, ok
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	w.Write([]byte(`{"msg":"Unauthorized"}`))
}
