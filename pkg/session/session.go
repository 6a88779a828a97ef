// Package session issues a cookie-scoped session ID per browser and exposes
// it via the request context. Cart state is keyed by this ID.
package session

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"net/http"
	"time"
)

const CookieName = "pos_session"

type ctxKey struct{}

// New generates a random 32-hex-char session ID.
func New() string {
	b := make([]byte, 16)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

// FromCtx returns the session ID stored in ctx, or "" when absent.
func FromCtx(ctx context.Context) string {
	if id, ok := ctx.Value(ctxKey{}).(string); ok {
		return id
	}
	return ""
}

// FromRequest returns the request's session ID.
func FromRequest(r *http.Request) string {
	return FromCtx(r.Context())
}

// Middleware reads the session cookie, creating one on first contact, and
// stores the session ID in the request context.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var id string
		if c, err := r.Cookie(CookieName); err == nil && c.Value != "" {
			id = c.Value
		} else {
			id = New()
			http.SetCookie(w, &http.Cookie{
				Name:     CookieName,
				Value:    id,
				Path:     "/",
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
				Expires:  time.Now().Add(24 * time.Hour),
			})
		}

		ctx := context.WithValue(r.Context(), ctxKey{}, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
