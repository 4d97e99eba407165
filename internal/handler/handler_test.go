package handler_test

// Shared fixtures for the handler tests: an Echo instance wired exactly
// like main, backed by the in-memory stores so the full HTTP surface
// can be exercised without a database.

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/carnetapp/carnet-server/internal/config"
	"github.com/carnetapp/carnet-server/internal/handler"
	"github.com/carnetapp/carnet-server/internal/repository"
	"github.com/carnetapp/carnet-server/internal/router"
)

const testJWTSecret = "handler-test-secret"

func newTestServer(t *testing.T) *echo.Echo {
	t.Helper()
	cfg := config.Config{
		JWTSecret:    testJWTSecret,
		BcryptCost:   bcrypt.MinCost,
		AccessTTLMin: 60,
	}
	users := repository.NewMemoryUserStore()
	contacts := repository.NewMemoryContactStore()
	cacheCfg := config.CacheConfig{Enabled: false}

	e := echo.New()
	router.RegisterRoutes(e)
	router.RegisterAuth(e, handler.NewAuthHandler(cfg, users), cfg.JWTSecret)
	router.RegisterUsers(e, handler.NewUserHandler(users), cfg.JWTSecret)
	router.RegisterContacts(e, handler.NewContactHandler(contacts, cacheCfg, nil), cfg.JWTSecret, cacheCfg, nil)
	return e
}

// doJSON performs a request against the test server. A non-empty token
// is attached as a bearer credential.
func doJSON(t *testing.T, e *echo.Echo, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var rd *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(b)
	} else {
		rd = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, rd)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &m))
	return m
}

func decodeList(t *testing.T, rec *httptest.ResponseRecorder) []map[string]any {
	t.Helper()
	var l []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &l))
	return l
}

// registerUser creates an account and returns the user object from the
// 201 response.
func registerUser(t *testing.T, e *echo.Echo, email, password, phone string) map[string]any {
	t.Helper()
	rec := doJSON(t, e, http.MethodPost, "/auth/register", "", map[string]any{
		"email":    email,
		"password": password,
		"phone":    phone,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return decode(t, rec)["user"].(map[string]any)
}

// loginUser authenticates and returns the bearer token.
func loginUser(t *testing.T, e *echo.Echo, email, password string) string {
	t.Helper()
	rec := doJSON(t, e, http.MethodPost, "/auth/login", "", map[string]any{
		"email":    email,
		"password": password,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	token := decode(t, rec)["token"].(string)
	require.NotEmpty(t, token)
	return token
}
