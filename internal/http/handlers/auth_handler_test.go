package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rit1708/Digital-menu/internal/http/middleware"
	"github.com/rit1708/Digital-menu/internal/models"
	"github.com/rit1708/Digital-menu/internal/repository"
	"github.com/rit1708/Digital-menu/internal/service"
)

// Хэндлеры тестируются поверх настоящих сервисов со стабами хранилищ:
// токены и коды проходят тот же путь, что и в бою, без базы.

type stubUserStore struct {
	byEmail map[string]*models.User
	byID    map[uuid.UUID]*models.User
}

func newStubUserStore() *stubUserStore {
	return &stubUserStore{byEmail: map[string]*models.User{}, byID: map[uuid.UUID]*models.User{}}
}

func (s *stubUserStore) Upsert(ctx context.Context, user *models.User) error {
	if existing, ok := s.byEmail[user.Email]; ok {
		existing.Name = user.Name
		existing.Country = user.Country
		*user = *existing
		return nil
	}
	user.ID = uuid.New()
	s.byEmail[user.Email] = user
	s.byID[user.ID] = user
	return nil
}

func (s *stubUserStore) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if user, ok := s.byEmail[email]; ok {
		return user, nil
	}
	return nil, repository.ErrUserNotFound
}

func (s *stubUserStore) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	if user, ok := s.byID[id]; ok {
		return user, nil
	}
	return nil, repository.ErrUserNotFound
}

type stubSessionStore struct {
	sessions map[string]*models.Session
}

func newStubSessionStore() *stubSessionStore {
	return &stubSessionStore{sessions: map[string]*models.Session{}}
}

func (s *stubSessionStore) Create(ctx context.Context, session *models.Session) error {
	session.ID = uuid.New()
	s.sessions[session.Token] = session
	return nil
}

func (s *stubSessionStore) DeleteByToken(ctx context.Context, token string) error {
	delete(s.sessions, token)
	return nil
}

func (s *stubSessionStore) GetValidByToken(ctx context.Context, token string, now time.Time) (*models.Session, error) {
	if session, ok := s.sessions[token]; ok && now.Before(session.ExpiresAt) {
		return session, nil
	}
	return nil, repository.ErrSessionNotFound
}

type stubCodeStore struct {
	codes []*models.VerificationCode
}

func (s *stubCodeStore) Create(ctx context.Context, vc *models.VerificationCode) error {
	vc.ID = uuid.New()
	vc.CreatedAt = time.Now()
	s.codes = append(s.codes, vc)
	return nil
}

func (s *stubCodeStore) Consume(ctx context.Context, email, code string, now time.Time) (*models.VerificationCode, error) {
	for i := len(s.codes) - 1; i >= 0; i-- {
		vc := s.codes[i]
		if vc.Email == email && vc.Code == code && now.Before(vc.ExpiresAt) {
			s.codes = append(s.codes[:i], s.codes[i+1:]...)
			return vc, nil
		}
	}
	return nil, repository.ErrCodeNotFound
}

func setupAuthTest() (*gin.Engine, *stubSessionStore) {
	gin.SetMode(gin.TestMode)

	users := newStubUserStore()
	sessions := newStubSessionStore()
	codes := &stubCodeStore{}

	auth := service.NewAuthService(users, sessions, codes, nil, 10*time.Minute, 30*24*time.Hour, true)
	handler := NewAuthHandler(auth)

	r := gin.New()
	r.Use(middleware.Identity(sessions))
	r.POST("/auth/send-code", handler.SendCode)
	r.POST("/auth/register", handler.Register)
	r.POST("/auth/login", handler.Login)
	r.GET("/auth/me", middleware.RequireAuth(), handler.Me)
	r.POST("/auth/logout", middleware.RequireAuth(), handler.Logout)

	return r, sessions
}

func doJSON(r *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthHandler_RegisterFlow(t *testing.T) {
	r, _ := setupAuthTest()

	w := doJSON(r, http.MethodPost, "/auth/send-code", "", gin.H{"email": "admin@example.com"})
	require.Equal(t, http.StatusOK, w.Code)

	var sent struct {
		Code string `json:"code"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &sent))
	require.Len(t, sent.Code, 6)

	w = doJSON(r, http.MethodPost, "/auth/register", "", gin.H{
		"email":   "admin@example.com",
		"code":    sent.Code,
		"name":    "Admin User",
		"country": "India",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var reg struct {
		Token string      `json:"token"`
		User  models.User `json:"user"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &reg))
	assert.NotEmpty(t, reg.Token)
	assert.Equal(t, "admin@example.com", reg.User.Email)

	// Выданный токен работает в Me.
	w = doJSON(r, http.MethodGet, "/auth/me", reg.Token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "admin@example.com")

	// После выхода токен мёртв.
	w = doJSON(r, http.MethodPost, "/auth/logout", reg.Token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(r, http.MethodGet, "/auth/me", reg.Token, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthHandler_LoginWrongCode(t *testing.T) {
	r, _ := setupAuthTest()

	w := doJSON(r, http.MethodPost, "/auth/send-code", "", gin.H{"email": "user@example.com"})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(r, http.MethodPost, "/auth/login", "", gin.H{"email": "user@example.com", "code": "000000"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "UNAUTHENTICATED")
}

func TestAuthHandler_CodeSingleUse(t *testing.T) {
	r, _ := setupAuthTest()

	w := doJSON(r, http.MethodPost, "/auth/send-code", "", gin.H{"email": "user@example.com"})
	require.Equal(t, http.StatusOK, w.Code)
	var sent struct {
		Code string `json:"code"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &sent))

	w = doJSON(r, http.MethodPost, "/auth/login", "", gin.H{"email": "user@example.com", "code": sent.Code})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(r, http.MethodPost, "/auth/login", "", gin.H{"email": "user@example.com", "code": sent.Code})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthHandler_BadInput(t *testing.T) {
	r, _ := setupAuthTest()

	// Некорректный email.
	w := doJSON(r, http.MethodPost, "/auth/send-code", "", gin.H{"email": "not-an-email"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Пустое тело.
	w = doJSON(r, http.MethodPost, "/auth/register", "", gin.H{})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Код неверного формата отклоняется до обращения к сервису.
	w = doJSON(r, http.MethodPost, "/auth/login", "", gin.H{"email": "user@example.com", "code": "12345"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAuthHandler_MultiDeviceLogout(t *testing.T) {
	r, sessions := setupAuthTest()

	login := func() string {
		w := doJSON(r, http.MethodPost, "/auth/send-code", "", gin.H{"email": "multi@example.com"})
		require.Equal(t, http.StatusOK, w.Code)
		var sent struct {
			Code string `json:"code"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &sent))

		w = doJSON(r, http.MethodPost, "/auth/login", "", gin.H{"email": "multi@example.com", "code": sent.Code})
		require.Equal(t, http.StatusOK, w.Code)
		var res struct {
			Token string `json:"token"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
		return res.Token
	}

	first := login()
	second := login()
	require.NotEqual(t, first, second)
	require.Len(t, sessions.sessions, 2)

	// Выход с одного устройства не трогает сессию другого.
	w := doJSON(r, http.MethodPost, "/auth/logout", first, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(r, http.MethodGet, "/auth/me", first, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	w = doJSON(r, http.MethodGet, "/auth/me", second, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}
