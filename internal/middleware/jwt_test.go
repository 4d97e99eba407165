package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carnetapp/carnet-server/internal/utils"
)

const testSecret = "middleware-test-secret"

func runProtected(t *testing.T, authHeader string) (*httptest.ResponseRecorder, string, string) {
	t.Helper()
	e := echo.New()
	var gotID, gotEmail string
	h := JWTAuth(testSecret)(func(c echo.Context) error {
		id, err := UserID(c)
		require.NoError(t, err)
		gotID = id
		gotEmail = Email(c)
		return c.NoContent(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	require.NoError(t, h(e.NewContext(req, rec)))
	return rec, gotID, gotEmail
}

func TestJWTAuthValidToken(t *testing.T) {
	at, err := utils.NewAccessToken(testSecret, "user-42", "a@x.com", 60)
	require.NoError(t, err)

	rec, id, email := runProtected(t, "Bearer "+at.Token)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "user-42", id)
	assert.Equal(t, "a@x.com", email)
}

func TestJWTAuthMissingHeader(t *testing.T) {
	rec, _, _ := runProtected(t, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTAuthNotBearer(t *testing.T) {
	rec, _, _ := runProtected(t, "Basic dXNlcjpwYXNz")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTAuthGarbageToken(t *testing.T) {
	rec, _, _ := runProtected(t, "Bearer not-a-jwt")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTAuthTamperedToken(t *testing.T) {
	at, err := utils.NewAccessToken(testSecret, "user-42", "a@x.com", 60)
	require.NoError(t, err)

	tampered := at.Token[:len(at.Token)-2] + "xx"
	rec, _, _ := runProtected(t, "Bearer "+tampered)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTAuthWrongSecret(t *testing.T) {
	at, err := utils.NewAccessToken("another secret", "user-42", "a@x.com", 60)
	require.NoError(t, err)

	rec, _, _ := runProtected(t, "Bearer "+at.Token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestUserIDWithoutMiddleware(t *testing.T) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	_, err := UserID(c)
	assert.ErrorIs(t, err, ErrNoIdentity)
}
