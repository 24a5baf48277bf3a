package api

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"tutor-api/internal/domain"
	"tutor-api/internal/service/auth"
	"tutor-api/internal/store"
)

// memoryUserStore is an in-memory UserStore for handler tests. It hashes
// passwords with the minimum cost to keep tests fast.
type memoryUserStore struct {
	byEmail map[string]*domain.User
}

func newMemoryUserStore() *memoryUserStore {
	return &memoryUserStore{byEmail: make(map[string]*domain.User)}
}

func (s *memoryUserStore) Create(ctx context.Context, user *domain.User) error {
	if _, exists := s.byEmail[user.Email]; exists {
		return store.ErrEmailExists
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.MinCost)
	if err != nil {
		return err
	}
	user.HashedPassword = string(hash)
	user.Password = ""
	s.byEmail[user.Email] = user
	return nil
}

func (s *memoryUserStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	for _, u := range s.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, store.ErrUserNotFound
}

func (s *memoryUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	u, ok := s.byEmail[email]
	if !ok {
		return nil, store.ErrUserNotFound
	}
	return u, nil
}

func (s *memoryUserStore) Update(ctx context.Context, user *domain.User) error {
	s.byEmail[user.Email] = user
	return nil
}

func (s *memoryUserStore) Delete(ctx context.Context, id uuid.UUID) error {
	for email, u := range s.byEmail {
		if u.ID == id {
			delete(s.byEmail, email)
			return nil
		}
	}
	return store.ErrUserNotFound
}

func (s *memoryUserStore) WithTx(tx *sql.Tx) store.UserStore {
	return s
}

var _ store.UserStore = (*memoryUserStore)(nil)

// stubJWTService issues deterministic tokens keyed by user ID.
type stubJWTService struct{}

func (stubJWTService) GenerateToken(ctx context.Context, userID uuid.UUID) (string, error) {
	return "access-" + userID.String(), nil
}

func (stubJWTService) ValidateToken(ctx context.Context, tokenString string) (*auth.Claims, error) {
	id, ok := strings.CutPrefix(tokenString, "access-")
	if !ok {
		return nil, auth.ErrInvalidToken
	}
	userID, err := uuid.Parse(id)
	if err != nil {
		return nil, auth.ErrInvalidToken
	}
	return &auth.Claims{UserID: userID, TokenType: "access"}, nil
}

func (stubJWTService) GenerateRefreshToken(ctx context.Context, userID uuid.UUID) (string, error) {
	return "refresh-" + userID.String(), nil
}

func (stubJWTService) ValidateRefreshToken(ctx context.Context, tokenString string) (*auth.Claims, error) {
	id, ok := strings.CutPrefix(tokenString, "refresh-")
	if !ok {
		return nil, auth.ErrInvalidRefreshToken
	}
	userID, err := uuid.Parse(id)
	if err != nil {
		return nil, auth.ErrInvalidRefreshToken
	}
	return &auth.Claims{UserID: userID, TokenType: "refresh"}, nil
}

var _ auth.JWTService = stubJWTService{}

func newTestAuthHandler() (*AuthHandler, *memoryUserStore) {
	users := newMemoryUserStore()
	return NewAuthHandler(users, stubJWTService{}, auth.NewBcryptVerifier()), users
}

func TestAuthHandlerRegister(t *testing.T) {
	t.Parallel()

	t.Run("creates the user and returns a token pair", func(t *testing.T) {
		t.Parallel()

		handler, users := newTestAuthHandler()
		w := postJSON(t, handler.Register, RegisterRequest{
			Email:    "student@example.com",
			Password: "correct-horse-battery",
		})
		require.Equal(t, http.StatusCreated, w.Code)

		var resp AuthResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.NotEqual(t, uuid.Nil, resp.UserID)
		assert.NotEmpty(t, resp.AccessToken)
		assert.NotEmpty(t, resp.RefreshToken)

		stored, err := users.GetByEmail(context.Background(), "student@example.com")
		require.NoError(t, err)
		assert.Empty(t, stored.Password)
		assert.NotEmpty(t, stored.HashedPassword)
	})

	t.Run("duplicate email responds 409", func(t *testing.T) {
		t.Parallel()

		handler, _ := newTestAuthHandler()
		req := RegisterRequest{Email: "dup@example.com", Password: "correct-horse-battery"}
		require.Equal(t, http.StatusCreated, postJSON(t, handler.Register, req).Code)
		assert.Equal(t, http.StatusConflict, postJSON(t, handler.Register, req).Code)
	})

	t.Run("short password responds 400", func(t *testing.T) {
		t.Parallel()

		handler, _ := newTestAuthHandler()
		w := postJSON(t, handler.Register, RegisterRequest{
			Email:    "student@example.com",
			Password: "short",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("invalid email responds 400", func(t *testing.T) {
		t.Parallel()

		handler, _ := newTestAuthHandler()
		w := postJSON(t, handler.Register, RegisterRequest{
			Email:    "not-an-email",
			Password: "correct-horse-battery",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestAuthHandlerLogin(t *testing.T) {
	t.Parallel()

	register := func(t *testing.T, handler *AuthHandler) {
		t.Helper()
		w := postJSON(t, handler.Register, RegisterRequest{
			Email:    "student@example.com",
			Password: "correct-horse-battery",
		})
		require.Equal(t, http.StatusCreated, w.Code)
	}

	t.Run("valid credentials return a token pair", func(t *testing.T) {
		t.Parallel()

		handler, _ := newTestAuthHandler()
		register(t, handler)

		w := postJSON(t, handler.Login, LoginRequest{
			Email:    "student@example.com",
			Password: "correct-horse-battery",
		})
		require.Equal(t, http.StatusOK, w.Code)

		var resp AuthResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.NotEmpty(t, resp.AccessToken)
	})

	t.Run("wrong password responds 401", func(t *testing.T) {
		t.Parallel()

		handler, _ := newTestAuthHandler()
		register(t, handler)

		w := postJSON(t, handler.Login, LoginRequest{
			Email:    "student@example.com",
			Password: "wrong-password-entirely",
		})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("unknown email responds 401 with the same message", func(t *testing.T) {
		t.Parallel()

		handler, _ := newTestAuthHandler()
		w := postJSON(t, handler.Login, LoginRequest{
			Email:    "nobody@example.com",
			Password: "correct-horse-battery",
		})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "Invalid credentials")
	})
}

func TestAuthHandlerRefreshToken(t *testing.T) {
	t.Parallel()

	t.Run("valid refresh token returns a new pair", func(t *testing.T) {
		t.Parallel()

		handler, _ := newTestAuthHandler()
		userID := uuid.New()

		w := postJSON(t, handler.RefreshToken, RefreshTokenRequest{
			RefreshToken: "refresh-" + userID.String(),
		})
		require.Equal(t, http.StatusOK, w.Code)

		var resp RefreshTokenResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "access-"+userID.String(), resp.AccessToken)
		assert.Equal(t, "refresh-"+userID.String(), resp.RefreshToken)
	})

	t.Run("invalid refresh token responds 401", func(t *testing.T) {
		t.Parallel()

		handler, _ := newTestAuthHandler()
		w := postJSON(t, handler.RefreshToken, RefreshTokenRequest{RefreshToken: "garbage"})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
