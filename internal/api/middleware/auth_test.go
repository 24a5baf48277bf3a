package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tutor-api/internal/api/shared"
	"tutor-api/internal/service/auth"
)

// mockJWTService validates one known token.
type mockJWTService struct {
	validToken string
	userID     uuid.UUID
	err        error
}

func (m *mockJWTService) GenerateToken(ctx context.Context, userID uuid.UUID) (string, error) {
	return m.validToken, nil
}

func (m *mockJWTService) ValidateToken(ctx context.Context, tokenString string) (*auth.Claims, error) {
	if m.err != nil {
		return nil, m.err
	}
	if tokenString != m.validToken {
		return nil, auth.ErrInvalidToken
	}
	return &auth.Claims{UserID: m.userID, TokenType: "access"}, nil
}

func (m *mockJWTService) GenerateRefreshToken(ctx context.Context, userID uuid.UUID) (string, error) {
	return m.validToken, nil
}

func (m *mockJWTService) ValidateRefreshToken(ctx context.Context, tokenString string) (*auth.Claims, error) {
	return m.ValidateToken(ctx, tokenString)
}

var _ auth.JWTService = (*mockJWTService)(nil)

func TestAuthenticate(t *testing.T) {
	t.Parallel()

	userID := uuid.New()

	protected := func(jwt auth.JWTService) (http.Handler, *uuid.UUID) {
		var seenUserID uuid.UUID
		mw := NewAuthMiddleware(jwt)
		handler := mw.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, ok := GetUserID(r)
			require.True(t, ok)
			seenUserID = id
			w.WriteHeader(http.StatusOK)
		}))
		return handler, &seenUserID
	}

	t.Run("valid bearer token reaches the handler with the user ID", func(t *testing.T) {
		t.Parallel()

		handler, seenUserID := protected(&mockJWTService{validToken: "good-token", userID: userID})

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer good-token")
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, userID, *seenUserID)
	})

	t.Run("missing header responds 401", func(t *testing.T) {
		t.Parallel()

		handler, _ := protected(&mockJWTService{validToken: "good-token", userID: userID})

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("malformed header responds 401", func(t *testing.T) {
		t.Parallel()

		handler, _ := protected(&mockJWTService{validToken: "good-token", userID: userID})

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Token good-token")
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("expired token responds 401 with a distinct message", func(t *testing.T) {
		t.Parallel()

		handler, _ := protected(&mockJWTService{err: auth.ErrExpiredToken})

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer stale-token")
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "Token expired")
	})

	t.Run("unknown token responds 401", func(t *testing.T) {
		t.Parallel()

		handler, _ := protected(&mockJWTService{validToken: "good-token", userID: userID})

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer forged-token")
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestGetUserIDMissing(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	_, ok := GetUserID(req)
	assert.False(t, ok)

	// A value of the wrong type is not a user ID.
	ctx := context.WithValue(req.Context(), shared.UserIDContextKey, "not-a-uuid")
	_, ok = GetUserID(req.WithContext(ctx))
	assert.False(t, ok)
}
