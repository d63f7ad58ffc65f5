package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Domenick1991/staybooking/internal/domain"
	"github.com/Domenick1991/staybooking/internal/service/auth"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockAuthUseCase is a mock implementation of auth.AuthUseCase
type MockAuthUseCase struct {
	mock.Mock
}

func (m *MockAuthUseCase) Register(ctx context.Context, input auth.RegisterInput) (*domain.User, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockAuthUseCase) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, "", args.Error(2)
	}
	return args.Get(0).(*domain.User), args.String(1), args.Error(2)
}

func (m *MockAuthUseCase) VerifySession(token string) (domain.Session, error) {
	args := m.Called(token)
	return args.Get(0).(domain.Session), args.Error(1)
}

func (m *MockAuthUseCase) Profile(ctx context.Context, token string) (*domain.User, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func jsonRequest(t *testing.T, method, path string, v interface{}) *http.Request {
	t.Helper()
	body, err := json.Marshal(v)
	require.NoError(t, err)
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func decodeMessage(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var resp errorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Message
}

func TestAuthHandler_register(t *testing.T) {
	mockService := &MockAuthUseCase{}
	handler := NewAuthHandler(mockService, CookieConfig{})

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	input := auth.RegisterInput{Name: "Ann", Email: "ann@example.com", Password: "pw"}
	c.Request = jsonRequest(t, "POST", "/api/register", registerRequest(input))

	mockService.On("Register", c.Request.Context(), input).
		Return(&domain.User{ID: "u1", Name: "Ann", Email: "ann@example.com", PasswordHash: "h"}, nil)

	handler.register(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.JSONEq(t, `{"name":"Ann","email":"ann@example.com"}`, w.Body.String())
	mockService.AssertExpectations(t)
}

func TestAuthHandler_register_Errors(t *testing.T) {
	cases := []struct {
		name    string
		err     error
		message string
	}{
		{"missing fields", fmt.Errorf("%w: name is required", domain.ErrValidation), "All fields are required!"},
		{"duplicate email", domain.ErrEmailTaken, "This email is already in use!"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			mockService := &MockAuthUseCase{}
			handler := NewAuthHandler(mockService, CookieConfig{})

			gin.SetMode(gin.TestMode)
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = jsonRequest(t, "POST", "/api/register", registerRequest{Email: "ann@example.com"})

			mockService.On("Register", mock.Anything, mock.Anything).Return(nil, tc.err)

			handler.register(c)

			assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
			assert.Equal(t, tc.message, decodeMessage(t, w))
		})
	}
}

func TestAuthHandler_register_MalformedBody(t *testing.T) {
	mockService := &MockAuthUseCase{}
	handler := NewAuthHandler(mockService, CookieConfig{})

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("POST", "/api/register", strings.NewReader("{"))
	c.Request.Header.Set("Content-Type", "application/json")

	handler.register(c)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	mockService.AssertNotCalled(t, "Register", mock.Anything, mock.Anything)
}

func TestAuthHandler_login(t *testing.T) {
	mockService := &MockAuthUseCase{}
	handler := NewAuthHandler(mockService, CookieConfig{Name: "token", TTL: time.Hour})

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = jsonRequest(t, "POST", "/api/login", loginRequest{Email: "ann@example.com", Password: "pw"})

	user := &domain.User{ID: "u1", Name: "Ann", Email: "ann@example.com", PasswordHash: "secret-hash"}
	mockService.On("Login", c.Request.Context(), "ann@example.com", "pw").Return(user, "signed", nil)

	handler.login(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Ann", body["name"])
	assert.Equal(t, "ann@example.com", body["email"])
	assert.Equal(t, "u1", body["id"])
	assert.NotContains(t, w.Body.String(), "secret-hash")

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "token", cookies[0].Name)
	assert.Equal(t, "signed", cookies[0].Value)
	assert.True(t, cookies[0].HttpOnly)
	assert.Equal(t, 3600, cookies[0].MaxAge)
}

func TestAuthHandler_login_Errors(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
	}{
		{"wrong password", domain.ErrInvalidCredentials, http.StatusUnauthorized},
		{"unknown email", domain.ErrUserNotFound, http.StatusNotFound},
		{"store failure", fmt.Errorf("boom"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			mockService := &MockAuthUseCase{}
			handler := NewAuthHandler(mockService, CookieConfig{})

			gin.SetMode(gin.TestMode)
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = jsonRequest(t, "POST", "/api/login", loginRequest{Email: "a@b.c", Password: "x"})

			mockService.On("Login", mock.Anything, "a@b.c", "x").Return(nil, "", tc.err)

			handler.login(c)

			assert.Equal(t, tc.status, w.Code)
			assert.Empty(t, w.Result().Cookies())
		})
	}
}

func TestAuthHandler_profile(t *testing.T) {
	mockService := &MockAuthUseCase{}
	handler := NewAuthHandler(mockService, CookieConfig{Name: "token"})

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/api/profile", nil)
	c.Request.AddCookie(&http.Cookie{Name: "token", Value: "signed"})

	mockService.On("Profile", c.Request.Context(), "signed").
		Return(&domain.User{ID: "u1", Name: "Ann", Email: "ann@example.com"}, nil)

	handler.profile(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"name":"Ann","email":"ann@example.com","id":"u1"}`, w.Body.String())
}

func TestAuthHandler_profile_NoCookie(t *testing.T) {
	mockService := &MockAuthUseCase{}
	handler := NewAuthHandler(mockService, CookieConfig{Name: "token"})

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/api/profile", nil)

	mockService.On("Profile", c.Request.Context(), "").Return(nil, nil)

	handler.profile(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "null", w.Body.String())
}

func TestAuthHandler_profile_Errors(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
	}{
		{"bad token", domain.ErrUnauthorized, http.StatusUnauthorized},
		{"deleted user", domain.ErrUserNotFound, http.StatusNotFound},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			mockService := &MockAuthUseCase{}
			handler := NewAuthHandler(mockService, CookieConfig{Name: "token"})

			gin.SetMode(gin.TestMode)
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest("GET", "/api/profile", nil)
			c.Request.AddCookie(&http.Cookie{Name: "token", Value: "bad"})

			mockService.On("Profile", mock.Anything, "bad").Return(nil, tc.err)

			handler.profile(c)

			assert.Equal(t, tc.status, w.Code)
		})
	}
}

func TestAuthHandler_logout(t *testing.T) {
	handler := NewAuthHandler(&MockAuthUseCase{}, CookieConfig{Name: "token"})

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("POST", "/api/logout", nil)

	handler.logout(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "true", w.Body.String())

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "token", cookies[0].Name)
	assert.Empty(t, cookies[0].Value)
	assert.True(t, cookies[0].MaxAge < 0)
}
