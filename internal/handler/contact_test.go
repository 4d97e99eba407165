package handler_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContactLifecycle(t *testing.T) {
	e := newTestServer(t)
	created := registerUser(t, e, "a@x.com", "Passw0rd!", "0123456789")
	token := loginUser(t, e, "a@x.com", "Passw0rd!")
	userID := created["id"].(string)

	// Create.
	rec := doJSON(t, e, http.MethodPost, "/contacts", token, map[string]any{
		"firstName": "M", "lastName": "D", "phone": "0712345678",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	contact := decode(t, rec)
	assert.Equal(t, userID, contact["ownerId"])
	contactID := contact["id"].(string)

	// List contains exactly the created contact.
	rec = doJSON(t, e, http.MethodGet, "/contacts", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	list := decodeList(t, rec)
	require.Len(t, list, 1)
	assert.Equal(t, contactID, list[0]["id"])

	// Get by id.
	rec = doJSON(t, e, http.MethodGet, "/contacts/"+contactID, token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "M", decode(t, rec)["firstName"])

	// Delete, then the list is empty again.
	rec = doJSON(t, e, http.MethodDelete, "/contacts/"+contactID, token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, decode(t, rec)["message"])

	rec = doJSON(t, e, http.MethodGet, "/contacts", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decodeList(t, rec))
}

func TestContactPatch(t *testing.T) {
	e := newTestServer(t)
	registerUser(t, e, "a@x.com", "Passw0rd!", "0123456789")
	token := loginUser(t, e, "a@x.com", "Passw0rd!")

	rec := doJSON(t, e, http.MethodPost, "/contacts", token, map[string]any{
		"firstName": "Marie", "lastName": "Dupont", "phone": "0712345678",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	id := decode(t, rec)["id"].(string)

	// Only the sent field changes.
	rec = doJSON(t, e, http.MethodPatch, "/contacts/"+id, token, map[string]any{"phone": "0600000000"})
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, "0600000000", body["phone"])
	assert.Equal(t, "Marie", body["firstName"])
	assert.Equal(t, "Dupont", body["lastName"])
}

func TestContactValidation(t *testing.T) {
	e := newTestServer(t)
	registerUser(t, e, "a@x.com", "Passw0rd!", "0123456789")
	token := loginUser(t, e, "a@x.com", "Passw0rd!")

	// Missing fields on create.
	rec := doJSON(t, e, http.MethodPost, "/contacts", token, map[string]any{"firstName": "M"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// Phone rule on create.
	rec = doJSON(t, e, http.MethodPost, "/contacts", token, map[string]any{
		"firstName": "M", "lastName": "D", "phone": "123",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// A real contact for the patch cases.
	rec = doJSON(t, e, http.MethodPost, "/contacts", token, map[string]any{
		"firstName": "M", "lastName": "D", "phone": "0712345678",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	id := decode(t, rec)["id"].(string)

	// Empty patch.
	rec = doJSON(t, e, http.MethodPatch, "/contacts/"+id, token, map[string]any{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// Phone rule on patch.
	rec = doJSON(t, e, http.MethodPatch, "/contacts/"+id, token, map[string]any{"phone": "abc"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// Malformed id.
	rec = doJSON(t, e, http.MethodGet, "/contacts/42", token, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestContactOwnershipIsolation(t *testing.T) {
	e := newTestServer(t)
	registerUser(t, e, "a@x.com", "Passw0rd!", "0123456789")
	registerUser(t, e, "b@x.com", "Passw0rd!", "0123456789")
	tokenA := loginUser(t, e, "a@x.com", "Passw0rd!")
	tokenB := loginUser(t, e, "b@x.com", "Passw0rd!")

	rec := doJSON(t, e, http.MethodPost, "/contacts", tokenA, map[string]any{
		"firstName": "Marie", "lastName": "Dupont", "phone": "0712345678",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	id := decode(t, rec)["id"].(string)

	// B cannot see, change or delete A's contact; the response is 404,
	// indistinguishable from a missing id.
	rec = doJSON(t, e, http.MethodGet, "/contacts/"+id, tokenB, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(t, e, http.MethodPatch, "/contacts/"+id, tokenB, map[string]any{"firstName": "Hacked"})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(t, e, http.MethodDelete, "/contacts/"+id, tokenB, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	// B's own list never includes it.
	rec = doJSON(t, e, http.MethodGet, "/contacts", tokenB, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decodeList(t, rec))

	// A's contact is unchanged.
	rec = doJSON(t, e, http.MethodGet, "/contacts/"+id, tokenA, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Marie", decode(t, rec)["firstName"])
}

func TestContactRoutesRequireAuth(t *testing.T) {
	e := newTestServer(t)
	for _, tc := range []struct {
		method, path string
	}{
		{http.MethodPost, "/contacts"},
		{http.MethodGet, "/contacts"},
		{http.MethodGet, "/contacts/00000000-0000-0000-0000-000000000000"},
		{http.MethodPatch, "/contacts/00000000-0000-0000-0000-000000000000"},
		{http.MethodDelete, "/contacts/00000000-0000-0000-0000-000000000000"},
	} {
		rec := doJSON(t, e, tc.method, tc.path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, "%s %s", tc.method, tc.path)
	}
}

func TestContactUnknownID(t *testing.T) {
	e := newTestServer(t)
	registerUser(t, e, "a@x.com", "Passw0rd!", "0123456789")
	token := loginUser(t, e, "a@x.com", "Passw0rd!")

	rec := doJSON(t, e, http.MethodGet, "/contacts/00000000-0000-0000-0000-000000000000", token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
