package auth

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dcastano/portfolio-auth/internal/config"
	"github.com/dcastano/portfolio-auth/internal/store"
)

func newTestHandler(t *testing.T) (*AuthHandler, *store.UserStore) {
	t.Helper()
	t.Setenv("APP_ENV", "test")
	t.Setenv("JWT_SECRET", "test-secret-key-123456")

	users := store.NewUserStore()
	return NewAuthHandler(users, NewAuthService(config.ResolveJWTSecret)), users
}

func postJSON(t *testing.T, handler http.HandlerFunc, target string, body any) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, target, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	handler(w, req)
	return w
}

func decodeAuthResponse(t *testing.T, w *httptest.ResponseRecorder) AuthResponse {
	t.Helper()
	var resp AuthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func decodeErrorResponse(t *testing.T, w *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func registerTestUser(t *testing.T, h *AuthHandler, name, email, password string) AuthResponse {
	t.Helper()
	w := postJSON(t, h.Register, "/auth/register", RegisterRequest{
		Name:     name,
		Email:    email,
		Password: password,
	})
	require.Equal(t, http.StatusCreated, w.Code)
	return decodeAuthResponse(t, w)
}

// --- register ---

func TestRegister_Success(t *testing.T) {
	h, _ := newTestHandler(t)

	w := postJSON(t, h.Register, "/auth/register", RegisterRequest{
		Name:     "Usuario Test",
		Email:    "test@example.com",
		Password: "passwordsegura",
	})

	require.Equal(t, http.StatusCreated, w.Code)

	resp := decodeAuthResponse(t, w)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "test@example.com", resp.User.Email)
	assert.Equal(t, "Usuario Test", resp.User.Name)
	assert.NotEmpty(t, resp.User.ID)
	assert.NotEmpty(t, resp.User.CreatedAt)

	// the password hash never reaches the client
	assert.NotContains(t, w.Body.String(), "passwordHash")
	assert.NotContains(t, w.Body.String(), "passwordsegura")
}

func TestRegister_NormalizesEmail(t *testing.T) {
	h, users := newTestHandler(t)

	resp := registerTestUser(t, h, "Usuario Test", "  Test@Example.COM  ", "passwordsegura")
	assert.Equal(t, "test@example.com", resp.User.Email)

	_, ok := users.FindByEmail("test@example.com")
	assert.True(t, ok)
}

func TestRegister_InvalidJSON(t *testing.T) {
	h, _ := newTestHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/auth/register", strings.NewReader("{not json"))
	w := httptest.NewRecorder()
	h.Register(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRegister_ValidationErrors(t *testing.T) {
	h, _ := newTestHandler(t)

	w := postJSON(t, h.Register, "/auth/register", RegisterRequest{
		Name:     "A",
		Email:    "not-an-email",
		Password: "corta",
	})

	require.Equal(t, http.StatusBadRequest, w.Code)

	resp := decodeErrorResponse(t, w)
	require.Len(t, resp.Errors, 3)
	assert.Equal(t, []string{"name", "email", "password"}, fieldPaths(resp.Errors))
}

func TestRegister_DuplicateEmail(t *testing.T) {
	h, _ := newTestHandler(t)

	registerTestUser(t, h, "Usuario Test", "duplicado@example.com", "passwordsegura")

	w := postJSON(t, h.Register, "/auth/register", RegisterRequest{
		Name:     "Usuario Test",
		Email:    "duplicado@example.com",
		Password: "passwordsegura",
	})

	require.Equal(t, http.StatusConflict, w.Code)
	resp := decodeErrorResponse(t, w)
	assert.Contains(t, strings.ToLower(resp.Message), "already registered")
}

func TestRegister_DuplicateEmailDifferentCase(t *testing.T) {
	h, _ := newTestHandler(t)

	registerTestUser(t, h, "Usuario Test", "caso@example.com", "passwordsegura")

	w := postJSON(t, h.Register, "/auth/register", RegisterRequest{
		Name:     "Usuario Test",
		Email:    "CASO@example.com",
		Password: "passwordsegura",
	})

	require.Equal(t, http.StatusConflict, w.Code)
}

func TestRegister_SecretMisconfiguredKeepsUser(t *testing.T) {
	h, users := newTestHandler(t)
	t.Setenv("APP_ENV", "production")
	t.Setenv("JWT_SECRET", "short")

	w := postJSON(t, h.Register, "/auth/register", RegisterRequest{
		Name:     "Usuario Test",
		Email:    "sinsecreto@example.com",
		Password: "passwordsegura",
	})

	require.Equal(t, http.StatusInternalServerError, w.Code)
	resp := decodeErrorResponse(t, w)
	assert.Contains(t, resp.Message, "JWT_SECRET")

	// registration is not rolled back on token failure
	_, ok := users.FindByEmail("sinsecreto@example.com")
	assert.True(t, ok)

	// once the secret is restored, a fresh registration succeeds
	t.Setenv("JWT_SECRET", "restored-secret-123456")
	registerTestUser(t, h, "Usuario Test", "consecreto@example.com", "passwordsegura")
}

// --- login ---

func TestLogin_Success(t *testing.T) {
	h, _ := newTestHandler(t)

	registerTestUser(t, h, "Login Test", "login@example.com", "passwordsegura")

	w := postJSON(t, h.Login, "/auth/login", LoginRequest{
		Email:    "login@example.com",
		Password: "passwordsegura",
	})

	require.Equal(t, http.StatusOK, w.Code)
	resp := decodeAuthResponse(t, w)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "Login Test", resp.User.Name)
}

func TestLogin_WrongPassword(t *testing.T) {
	h, _ := newTestHandler(t)

	registerTestUser(t, h, "Wrong Password", "wrongpass@example.com", "passwordsegura")

	w := postJSON(t, h.Login, "/auth/login", LoginRequest{
		Email:    "wrongpass@example.com",
		Password: "passwordincorrecta",
	})

	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLogin_UnknownEmailSameResponse(t *testing.T) {
	h, _ := newTestHandler(t)

	registerTestUser(t, h, "Usuario Test", "known@example.com", "passwordsegura")

	unknown := postJSON(t, h.Login, "/auth/login", LoginRequest{
		Email:    "unknown@example.com",
		Password: "passwordsegura",
	})
	badPass := postJSON(t, h.Login, "/auth/login", LoginRequest{
		Email:    "known@example.com",
		Password: "passwordincorrecta",
	})

	// no-such-user and wrong-password must be indistinguishable
	require.Equal(t, http.StatusUnauthorized, unknown.Code)
	require.Equal(t, http.StatusUnauthorized, badPass.Code)
	assert.Equal(t, unknown.Body.String(), badPass.Body.String())
}

func TestLogin_ValidationErrors(t *testing.T) {
	h, _ := newTestHandler(t)

	w := postJSON(t, h.Login, "/auth/login", LoginRequest{
		Email:    "broken@",
		Password: "corta",
	})

	require.Equal(t, http.StatusBadRequest, w.Code)
	resp := decodeErrorResponse(t, w)
	assert.Equal(t, []string{"email", "password"}, fieldPaths(resp.Errors))
}

// --- me ---

func meRequest(t *testing.T, h *AuthHandler, authorization string) *httptest.ResponseRecorder {
	t.Helper()
	protected := h.AuthMiddleware(http.HandlerFunc(h.Me))

	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	w := httptest.NewRecorder()
	protected.ServeHTTP(w, req)
	return w
}

func TestMe_Success(t *testing.T) {
	h, _ := newTestHandler(t)

	registered := registerTestUser(t, h, "Usuario Test", "me@example.com", "passwordsegura")

	w := meRequest(t, h, "Bearer "+registered.Token)
	require.Equal(t, http.StatusOK, w.Code)

	var resp MeResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, registered.User.ID, resp.User.ID)
	assert.Equal(t, "me@example.com", resp.User.Email)
}

func TestMe_MissingHeader(t *testing.T) {
	h, _ := newTestHandler(t)

	w := meRequest(t, h, "")
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestMe_MalformedHeader(t *testing.T) {
	h, _ := newTestHandler(t)

	for _, header := range []string{"Bearer", "Token abc", "Basic dXNlcjpwYXNz"} {
		w := meRequest(t, h, header)
		assert.Equal(t, http.StatusUnauthorized, w.Code, "header %q", header)
	}
}

func TestMe_TamperedToken(t *testing.T) {
	h, _ := newTestHandler(t)

	registered := registerTestUser(t, h, "Usuario Test", "tamper@example.com", "passwordsegura")
	tampered := registered.Token[:len(registered.Token)-2] + "xx"

	w := meRequest(t, h, "Bearer "+tampered)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestMe_UnknownSubject(t *testing.T) {
	h, users := newTestHandler(t)

	registered := registerTestUser(t, h, "Usuario Test", "cleared@example.com", "passwordsegura")
	users.Clear()

	// valid token, but the directory no longer knows the subject
	w := meRequest(t, h, "Bearer "+registered.Token)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}
