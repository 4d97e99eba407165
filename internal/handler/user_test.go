package handler_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserGetOwnRecord(t *testing.T) {
	e := newTestServer(t)
	created := registerUser(t, e, "a@x.com", "Passw0rd!", "0123456789")
	token := loginUser(t, e, "a@x.com", "Passw0rd!")
	id := created["id"].(string)

	rec := doJSON(t, e, http.MethodGet, "/utilisateur/"+id, token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "a@x.com", decode(t, rec)["email"])
	assert.NotContains(t, rec.Body.String(), "password")
}

func TestUserRoutesRejectOtherIdentity(t *testing.T) {
	e := newTestServer(t)
	registerUser(t, e, "a@x.com", "Passw0rd!", "0123456789")
	other := registerUser(t, e, "b@x.com", "Passw0rd!", "0123456789")
	tokenA := loginUser(t, e, "a@x.com", "Passw0rd!")
	otherID := other["id"].(string)

	// Authenticated as A, addressing B's id: always 403.
	rec := doJSON(t, e, http.MethodGet, "/utilisateur/"+otherID, tokenA, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = doJSON(t, e, http.MethodPut, "/utilisateur/"+otherID, tokenA, map[string]any{
		"email": "evil@x.com", "phone": "0123456789",
	})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = doJSON(t, e, http.MethodDelete, "/utilisateur/"+otherID, tokenA, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// B is untouched and can still log in.
	loginUser(t, e, "b@x.com", "Passw0rd!")
}

func TestUserInvalidID(t *testing.T) {
	e := newTestServer(t)
	registerUser(t, e, "a@x.com", "Passw0rd!", "0123456789")
	token := loginUser(t, e, "a@x.com", "Passw0rd!")

	rec := doJSON(t, e, http.MethodGet, "/utilisateur/not-a-uuid", token, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUserRoutesRequireAuth(t *testing.T) {
	e := newTestServer(t)
	created := registerUser(t, e, "a@x.com", "Passw0rd!", "0123456789")
	id := created["id"].(string)

	rec := doJSON(t, e, http.MethodGet, "/utilisateur/"+id, "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestUserUpdate(t *testing.T) {
	e := newTestServer(t)
	created := registerUser(t, e, "a@x.com", "Passw0rd!", "0123456789")
	token := loginUser(t, e, "a@x.com", "Passw0rd!")
	id := created["id"].(string)

	rec := doJSON(t, e, http.MethodPut, "/utilisateur/"+id, token, map[string]any{
		"email":     "new@x.com",
		"phone":     "0600000000",
		"firstName": "Ada",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	body := decode(t, rec)
	assert.Equal(t, "new@x.com", body["email"])
	assert.Equal(t, "0600000000", body["phone"])
	assert.Equal(t, "Ada", body["firstName"])

	// Omitted names keep their current values.
	rec = doJSON(t, e, http.MethodPut, "/utilisateur/"+id, token, map[string]any{
		"email": "new@x.com", "phone": "0600000000",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Ada", decode(t, rec)["firstName"])
}

func TestUserUpdateValidation(t *testing.T) {
	e := newTestServer(t)
	created := registerUser(t, e, "a@x.com", "Passw0rd!", "0123456789")
	registerUser(t, e, "b@x.com", "Passw0rd!", "0123456789")
	token := loginUser(t, e, "a@x.com", "Passw0rd!")
	id := created["id"].(string)

	// Required fields.
	rec := doJSON(t, e, http.MethodPut, "/utilisateur/"+id, token, map[string]any{"phone": "0600000000"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// Phone rule.
	rec = doJSON(t, e, http.MethodPut, "/utilisateur/"+id, token, map[string]any{
		"email": "a@x.com", "phone": "123",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// Another user's email.
	rec = doJSON(t, e, http.MethodPut, "/utilisateur/"+id, token, map[string]any{
		"email": "b@x.com", "phone": "0600000000",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// Keeping one's own email is fine.
	rec = doJSON(t, e, http.MethodPut, "/utilisateur/"+id, token, map[string]any{
		"email": "a@x.com", "phone": "0600000000",
	})
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestUserDelete(t *testing.T) {
	e := newTestServer(t)
	created := registerUser(t, e, "a@x.com", "Passw0rd!", "0123456789")
	token := loginUser(t, e, "a@x.com", "Passw0rd!")
	id := created["id"].(string)

	rec := doJSON(t, e, http.MethodDelete, "/utilisateur/"+id, token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, decode(t, rec)["message"])

	// The token still verifies (stateless), but the record is gone.
	rec = doJSON(t, e, http.MethodGet, "/auth/profile", token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
