package handler_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"homechefs/backend/internal/api/handler"
	"homechefs/backend/internal/chathub"
	"homechefs/backend/internal/store"
	"homechefs/backend/internal/userdir"
)

func newTestServer() (*gin.Engine, *userdir.Directory) {
	gin.SetMode(gin.TestMode)

	dir := userdir.New(store.NewMemoryKV())
	hub := chathub.NewHub()
	go hub.Run()

	h := handler.NewHandler(dir, nil, hub, []byte("test-secret"))
	r := gin.New()
	h.Routes(r)
	return r, dir
}

func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
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
	r.ServeHTTP(w, req)
	return w
}

func registerUser(t *testing.T, r *gin.Engine, email, role string) (int64, string) {
	t.Helper()

	w := doJSON(t, r, http.MethodPost, "/api/register", "", gin.H{
		"email":    email,
		"password": "pw123456",
		"fullName": "Test " + email,
		"role":     role,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp struct {
		Token string `json:"token"`
		User  struct {
			ID int64 `json:"id"`
		} `json:"user"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.User.ID, resp.Token
}

func TestRegisterEndpoint(t *testing.T) {
	r, _ := newTestServer()

	w := doJSON(t, r, http.MethodPost, "/api/register", "", gin.H{
		"email":    "v@x.com",
		"password": "pw123456",
		"fullName": "Visitor One",
		"role":     "visitor",
	})

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"token"`)
	assert.NotContains(t, w.Body.String(), "passwordHash")
}

func TestRegisterEndpoint_DuplicateEmail(t *testing.T) {
	r, _ := newTestServer()
	registerUser(t, r, "dup@x.com", "visitor")

	w := doJSON(t, r, http.MethodPost, "/api/register", "", gin.H{
		"email":    "dup@x.com",
		"password": "pw123456",
		"fullName": "Dup",
		"role":     "visitor",
	})

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestRegisterEndpoint_ShortPassword(t *testing.T) {
	r, _ := newTestServer()

	w := doJSON(t, r, http.MethodPost, "/api/register", "", gin.H{
		"email":    "v@x.com",
		"password": "short",
		"fullName": "Visitor",
		"role":     "visitor",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLoginEndpoint_WrongPassword(t *testing.T) {
	r, _ := newTestServer()
	registerUser(t, r, "v@x.com", "visitor")

	w := doJSON(t, r, http.MethodPost, "/api/login", "", gin.H{
		"email":    "v@x.com",
		"password": "wrong-password",
		"role":     "visitor",
	})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLoginEndpoint_UnregisteredChefRedirect(t *testing.T) {
	r, dir := newTestServer()
	id, _ := registerUser(t, r, "chef@x.com", "chef")

	flag := false
	_, err := dir.UpdateUser(id, userdir.UserPatch{IsChefRegistered: &flag})
	require.NoError(t, err)

	w := doJSON(t, r, http.MethodPost, "/api/login", "", gin.H{
		"email":    "chef@x.com",
		"password": "pw123456",
		"role":     "chef",
	})

	require.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "/become-chef")
}

func TestMeEndpoint(t *testing.T) {
	r, _ := newTestServer()
	id, token := registerUser(t, r, "v@x.com", "visitor")

	// A token alone is not a session; log in first.
	w := doJSON(t, r, http.MethodPost, "/api/login", "", gin.H{
		"email":    "v@x.com",
		"password": "pw123456",
		"role":     "visitor",
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/me", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), fmt.Sprintf(`"id":%d`, id))

	w = doJSON(t, r, http.MethodPost, "/api/logout", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/me", token, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthRequired_MissingToken(t *testing.T) {
	r, _ := newTestServer()

	w := doJSON(t, r, http.MethodGet, "/api/conversations", "", nil)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAdminRoutes_RequireAdminRole(t *testing.T) {
	r, _ := newTestServer()
	_, token := registerUser(t, r, "v@x.com", "visitor")

	w := doJSON(t, r, http.MethodGet, "/api/admin/pending", token, nil)

	assert.Equal(t, http.StatusForbidden, w.Code)
}
