// Package auth provides JWT bearer-token authentication middleware.
// Chronicle does not issue tokens itself; it verifies tokens minted by the
// identity collaborator using a shared HMAC secret and resolves the
// authenticated user for downstream handlers.
package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// ErrNoIdentity is returned when no authenticated identity is present in the
// request context.
var ErrNoIdentity = errors.New("no authenticated identity in context")

// Identity is the authenticated caller resolved from a verified token.
type Identity struct {
	UserID uuid.UUID
	Email  string
}

type contextKey struct{}

var identityKey contextKey

// WithIdentity returns a context carrying the given identity.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

// FromContext extracts the authenticated identity from the context.
func FromContext(ctx context.Context) (Identity, error) {
	id, ok := ctx.Value(identityKey).(Identity)
	if !ok {
		return Identity{}, ErrNoIdentity
	}
	return id, nil
}

// Middleware verifies bearer tokens and injects the caller identity.
type Middleware struct {
	secret []byte
	logger zerolog.Logger
}

// NewMiddleware creates authentication middleware using the shared HMAC secret.
func NewMiddleware(secret string, logger zerolog.Logger) *Middleware {
	return &Middleware{
		secret: []byte(secret),
		logger: logger.With().Str("middleware", "auth").Logger(),
	}
}

// Authenticate is an http middleware that rejects requests without a valid
// bearer token. On success the identity is stored in the request context.
func (m *Middleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, err := m.verify(r)
		if err != nil {
			m.logger.Debug().Err(err).Str("path", r.URL.Path).Msg("authentication failed")
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"error":"invalid or missing token"}`))
			return
		}

		next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), identity)))
	})
}

func (m *Middleware) verify(r *http.Request) (Identity, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return Identity{}, errors.New("missing authorization header")
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return Identity{}, errors.New("malformed authorization header")
	}

	token, err := jwt.Parse(parts[1], func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return m.secret, nil
	})
	if err != nil || !token.Valid {
		return Identity{}, errors.New("invalid or expired token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Identity{}, errors.New("invalid token claims")
	}

	// The user ID travels in the "sub" claim per RFC 7519.
	sub, err := claims.GetSubject()
	if err != nil || sub == "" {
		return Identity{}, errors.New("token missing subject")
	}

	userID, err := uuid.Parse(sub)
	if err != nil {
		return Identity{}, errors.New("invalid user id in token")
	}

	email, _ := claims["email"].(string)

	return Identity{UserID: userID, Email: email}, nil
}
