package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/seedstage/mentorship-api/internal/api/shared"
)

// ActorMiddleware resolves the authenticated actor from a Bearer JWT and
// places the actor's UUID in the request context. Token issuance lives
// with the incubator's identity provider; this middleware only verifies
// the HMAC signature and reads the subject claim.
type ActorMiddleware struct {
	secret []byte
}

// NewActorMiddleware creates an ActorMiddleware verifying tokens with the
// given shared secret.
func NewActorMiddleware(jwtSecret string) *ActorMiddleware {
	return &ActorMiddleware{secret: []byte(jwtSecret)}
}

// Authenticate validates the Authorization header and adds the actor ID
// to the request context for authorized requests.
func (m *ActorMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			shared.RespondWithError(w, r, http.StatusUnauthorized, "Authorization header required")
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			shared.RespondWithError(w, r, http.StatusUnauthorized, "Invalid authorization format")
			return
		}

		actorID, err := m.parseActorID(parts[1])
		if err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				shared.RespondWithError(w, r, http.StatusUnauthorized, "Token expired")
			} else {
				shared.RespondWithError(w, r, http.StatusUnauthorized, "Invalid token")
			}
			return
		}

		ctx := context.WithValue(r.Context(), shared.ActorIDContextKey, actorID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// parseActorID verifies the token and extracts the subject as a UUID.
func (m *ActorMiddleware) parseActorID(tokenString string) (uuid.UUID, error) {
	token, err := jwt.ParseWithClaims(
		tokenString,
		&jwt.RegisteredClaims{},
		func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return m.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
	)
	if err != nil {
		return uuid.Nil, err
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject == "" {
		return uuid.Nil, jwt.ErrTokenInvalidClaims
	}

	actorID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return uuid.Nil, jwt.ErrTokenInvalidClaims
	}
	return actorID, nil
}

// GetActorID extracts the actor ID from the request context.
// Returns the ID and a boolean indicating whether it was found.
func GetActorID(r *http.Request) (uuid.UUID, bool) {
	actorID, ok := r.Context().Value(shared.ActorIDContextKey).(uuid.UUID)
	return actorID, ok
}
