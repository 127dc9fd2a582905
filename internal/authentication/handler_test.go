package authentication_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/expensaver/expensaver-api/internal/account"
	"github.com/expensaver/expensaver-api/internal/account/accountfake"
	"github.com/expensaver/expensaver-api/internal/authentication"
)

type testServer struct {
	repo   *accountfake.FakeAccountRepo
	router *gin.Engine
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	logger := zap.NewNop()
	repo := accountfake.NewFakeAccountRepo()
	service := authentication.NewAuthenticationService(repo, logger, authentication.TokenSettings{
		AccessSecret:  testAccessSecret,
		AccessTTL:     time.Hour,
		RefreshSecret: testRefreshSecret,
		RefreshTTL:    time.Hour,
		BcryptCost:    bcrypt.MinCost,
	})

	router := gin.New()
	api := router.Group("/api/v1")
	authGroup := api.Group("/")
	authGroup.Use(authentication.AuthMiddleware(service, logger))
	adminGroup := api.Group("/")
	adminGroup.Use(
		authentication.AuthMiddleware(service, logger),
		authentication.RoleMiddleware(account.Admin),
	)
	authentication.NewAuthHandler(api, authGroup, service, logger)
	account.NewAccountHandler(authGroup, adminGroup, account.NewAccountService(repo, logger), logger)

	return &testServer{repo: repo, router: router}
}

func (s *testServer) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v))
}

func (s *testServer) registerAlice(t *testing.T) authentication.RegisterResponse {
	t.Helper()
	w := s.do(t, http.MethodPost, "/api/v1/auth/register", "", gin.H{
		"email": testEmail, "display_name": testName, "password": testPassword,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var resp authentication.RegisterResponse
	decode(t, w, &resp)
	return resp
}

func (s *testServer) login(t *testing.T) authentication.TokenResponse {
	t.Helper()
	w := s.do(t, http.MethodPost, "/api/v1/auth/login", "", gin.H{
		"identifier": testEmail, "password": testPassword,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var resp authentication.TokenResponse
	decode(t, w, &resp)
	return resp
}

func TestHandler_Register(t *testing.T) {
	s := newTestServer(t)
	resp := s.registerAlice(t)
	assert.NotZero(t, resp.Account.ID)
	assert.Equal(t, testEmail, resp.Account.Identifier)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)

	w := s.do(t, http.MethodPost, "/api/v1/auth/register", "", gin.H{
		"email": testEmail, "display_name": "Again", "password": "x",
	})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestHandler_RegisterValidation(t *testing.T) {
	s := newTestServer(t)
	tests := []struct {
		name string
		body gin.H
	}{
		{"neither email nor phone", gin.H{"display_name": "A", "password": "p"}},
		{"both email and phone", gin.H{"email": testEmail, "phone": "+14155552671", "display_name": "A", "password": "p"}},
		{"bad email", gin.H{"email": "nope", "display_name": "A", "password": "p"}},
		{"bad phone", gin.H{"phone": "555", "display_name": "A", "password": "p"}},
		{"missing password", gin.H{"email": testEmail, "display_name": "A"}},
		{"missing display name", gin.H{"email": testEmail, "password": "p"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := s.do(t, http.MethodPost, "/api/v1/auth/register", "", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestHandler_LoginErrors(t *testing.T) {
	s := newTestServer(t)
	s.registerAlice(t)

	w := s.do(t, http.MethodPost, "/api/v1/auth/login", "", gin.H{"identifier": "nobody@x.com", "password": "p"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = s.do(t, http.MethodPost, "/api/v1/auth/login", "", gin.H{"identifier": testEmail, "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = s.do(t, http.MethodPost, "/api/v1/auth/login", "", gin.H{"identifier": testEmail})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandler_SingleSessionScenario(t *testing.T) {
	s := newTestServer(t)
	registered := s.registerAlice(t)

	pairA := s.login(t)
	w := s.do(t, http.MethodGet, "/api/v1/accounts/me", pairA.AccessToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var me account.Account
	decode(t, w, &me)
	assert.Equal(t, registered.Account.ID, me.ID)

	pairB := s.login(t)

	w = s.do(t, http.MethodGet, "/api/v1/accounts/me", pairA.AccessToken, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	var body map[string]string
	decode(t, w, &body)
	assert.Equal(t, "reauthenticate", body["code"])

	w = s.do(t, http.MethodGet, "/api/v1/accounts/me", pairB.AccessToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestHandler_Refresh(t *testing.T) {
	s := newTestServer(t)
	registered := s.registerAlice(t)

	w := s.do(t, http.MethodPost, "/api/v1/auth/refresh", "", gin.H{"refresh_token": registered.RefreshToken})
	require.Equal(t, http.StatusOK, w.Code)
	var next authentication.TokenResponse
	decode(t, w, &next)

	w = s.do(t, http.MethodPost, "/api/v1/auth/refresh", "", gin.H{"refresh_token": registered.RefreshToken})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	var body map[string]string
	decode(t, w, &body)
	assert.Equal(t, "reauthenticate", body["code"])

	w = s.do(t, http.MethodGet, "/api/v1/accounts/me", next.AccessToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestHandler_RefreshMissingToken(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodPost, "/api/v1/auth/refresh", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	var body map[string]string
	decode(t, w, &body)
	assert.Equal(t, "missing_token", body["code"])
}

func TestHandler_MiddlewareRejections(t *testing.T) {
	s := newTestServer(t)
	registered := s.registerAlice(t)

	tests := []struct {
		name   string
		header string
		code   string
	}{
		{"no header", "", "missing_token"},
		{"not bearer", "Basic abc", "malformed_token"},
		{"garbage", "Bearer abc", "malformed_token"},
		{"refresh token", "Bearer " + registered.RefreshToken, "invalid_signature"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/accounts/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			s.router.ServeHTTP(w, req)

			assert.Equal(t, http.StatusUnauthorized, w.Code)
			var body map[string]string
			decode(t, w, &body)
			assert.Equal(t, tt.code, body["code"])
		})
	}
}

func TestHandler_LogoutAndDelete(t *testing.T) {
	s := newTestServer(t)
	s.registerAlice(t)

	pair := s.login(t)
	w := s.do(t, http.MethodPost, "/api/v1/auth/logout", pair.AccessToken, nil)
	require.Equal(t, http.StatusNoContent, w.Code)
	w = s.do(t, http.MethodGet, "/api/v1/accounts/me", pair.AccessToken, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	pair = s.login(t)
	w = s.do(t, http.MethodDelete, "/api/v1/auth/account", pair.AccessToken, gin.H{"password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	w = s.do(t, http.MethodDelete, "/api/v1/auth/account", pair.AccessToken, gin.H{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w = s.do(t, http.MethodDelete, "/api/v1/auth/account", pair.AccessToken, gin.H{"password": testPassword})
	require.Equal(t, http.StatusNoContent, w.Code)

	w = s.do(t, http.MethodPost, "/api/v1/auth/refresh", "", gin.H{"refresh_token": pair.RefreshToken})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	var body map[string]string
	decode(t, w, &body)
	assert.Equal(t, "not_found", body["code"])
}

func TestHandler_AdminLookup(t *testing.T) {
	s := newTestServer(t)
	registered := s.registerAlice(t)
	path := "/api/v1/accounts/" + strconv.FormatUint(uint64(registered.Account.ID), 10)

	w := s.do(t, http.MethodGet, path, registered.AccessToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	s.repo.SetRole(registered.Account.ID, account.Admin)
	admin := s.login(t)

	w = s.do(t, http.MethodGet, path, admin.AccessToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var got account.Account
	decode(t, w, &got)
	assert.Equal(t, account.Admin, got.Role)

	w = s.do(t, http.MethodGet, "/api/v1/accounts?identifier=A@X.COM", admin.AccessToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w = s.do(t, http.MethodGet, "/api/v1/accounts/999", admin.AccessToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHandler_StoreUnavailable(t *testing.T) {
	s := newTestServer(t)
	registered := s.registerAlice(t)
	s.repo.Err = errors.New("connection reset by peer")

	w := s.do(t, http.MethodGet, "/api/v1/accounts/me", registered.AccessToken, nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, "1", w.Header().Get("Retry-After"))

	w = s.do(t, http.MethodPost, "/api/v1/auth/login", "", gin.H{"identifier": testEmail, "password": testPassword})
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
