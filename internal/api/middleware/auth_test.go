package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-for-middleware-only"

// signToken builds an HS256 token with the given subject and lifetime.
func signToken(t *testing.T, secret, subject string, lifetime time.Duration) string {
	t.Helper()

	now := time.Now().UTC()
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(lifetime)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func TestActorMiddleware_Authenticate(t *testing.T) {
	t.Parallel()

	actorID := uuid.New()
	m := NewActorMiddleware(testSecret)

	var capturedActor uuid.UUID
	var handlerCalled bool
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handlerCalled = true
		capturedActor, _ = GetActorID(r)
		w.WriteHeader(http.StatusOK)
	})

	testCases := []struct {
		name           string
		authHeader     string
		expectedStatus int
		expectCalled   bool
	}{
		{
			name:           "valid_token",
			authHeader:     "Bearer " + signToken(t, testSecret, actorID.String(), time.Hour),
			expectedStatus: http.StatusOK,
			expectCalled:   true,
		},
		{
			name:           "missing_header",
			authHeader:     "",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "malformed_header",
			authHeader:     "Token abc123",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "expired_token",
			authHeader:     "Bearer " + signToken(t, testSecret, actorID.String(), -time.Hour),
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "wrong_secret",
			authHeader:     "Bearer " + signToken(t, "some-other-secret-value", actorID.String(), time.Hour),
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "non_uuid_subject",
			authHeader:     "Bearer " + signToken(t, testSecret, "not-a-uuid", time.Hour),
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "empty_subject",
			authHeader:     "Bearer " + signToken(t, testSecret, "", time.Hour),
			expectedStatus: http.StatusUnauthorized,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			handlerCalled = false
			capturedActor = uuid.Nil

			r := httptest.NewRequest("POST", "/requests", nil)
			if tc.authHeader != "" {
				r.Header.Set("Authorization", tc.authHeader)
			}
			w := httptest.NewRecorder()

			m.Authenticate(next).ServeHTTP(w, r)

			assert.Equal(t, tc.expectedStatus, w.Code)
			assert.Equal(t, tc.expectCalled, handlerCalled)
			if tc.expectCalled {
				assert.Equal(t, actorID, capturedActor,
					"actor ID from the token subject should reach the handler")
			}
		})
	}
}

func TestGetActorID_MissingFromContext(t *testing.T) {
	t.Parallel()

	r := httptest.NewRequest("GET", "/requests", nil)
	id, ok := GetActorID(r)
	assert.False(t, ok)
	assert.Equal(t, uuid.Nil, id)
}
