package api

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ryuseikaiz/Ichu-Database/internal/service"
)

func TestLogin_Success(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Post("/api/auth/login", map[string]string{
		"username": "Curator",
		"password": testPassword,
	})
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	env := decode[service.LoginResponse](t, resp.Body.Bytes())
	assert.True(t, env.Success)
	assert.NotEmpty(t, env.Data.Token)
	assert.Equal(t, testEditor, env.Data.Username)
	assert.WithinDuration(t, time.Now().Add(15*time.Minute), env.Data.ExpiresAt, time.Minute)

	claims, err := ts.tokens.Verify(env.Data.Token)
	require.NoError(t, err)
	assert.Equal(t, testEditor, claims.Username)
}

func TestLogin_WrongPassword(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Post("/api/auth/login", map[string]string{
		"username": testEditor,
		"password": "wrong",
	})
	require.Equal(t, http.StatusUnauthorized, resp.Code)

	env := decode[any](t, resp.Body.Bytes())
	assert.False(t, env.Success)
	assert.Equal(t, "INVALID_CREDENTIALS", env.Code)
}

func TestLogin_UnknownUserLooksLikeWrongPassword(t *testing.T) {
	ts := setupTestServer(t)

	unknown := decode[any](t, ts.api.Post("/api/auth/login", map[string]string{
		"username": "nobody",
		"password": testPassword,
	}).Body.Bytes())
	wrong := decode[any](t, ts.api.Post("/api/auth/login", map[string]string{
		"username": testEditor,
		"password": "nope",
	}).Body.Bytes())

	assert.Equal(t, wrong.Code, unknown.Code)
	assert.Equal(t, wrong.Message, unknown.Message)
}

func TestLogin_MissingFields(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Post("/api/auth/login", map[string]string{"username": testEditor})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)
}

func TestLogin_RateLimited(t *testing.T) {
	ts := setupTestServerWithOptions(t, Options{LoginPerMinute: 1, LoginBurst: 2})
	creds := map[string]string{"username": testEditor, "password": "wrong"}

	for range 2 {
		resp := ts.api.Post("/api/auth/login", "X-Real-IP: 203.0.113.9", creds)
		require.Equal(t, http.StatusUnauthorized, resp.Code)
	}

	resp := ts.api.Post("/api/auth/login", "X-Real-IP: 203.0.113.9", creds)
	require.Equal(t, http.StatusTooManyRequests, resp.Code)

	env := decode[map[string]any](t, resp.Body.Bytes())
	assert.Equal(t, "RATE_LIMITED", env.Code)
	details, ok := env.Details.(map[string]any)
	require.True(t, ok)
	assert.Greater(t, details["retry_after_seconds"], float64(0))

	// Another client is unaffected.
	other := ts.api.Post("/api/auth/login", "X-Real-IP: 198.51.100.1", map[string]string{
		"username": testEditor,
		"password": testPassword,
	})
	assert.Equal(t, http.StatusOK, other.Code)
}

func TestSession(t *testing.T) {
	ts := setupTestServer(t)
	authz := ts.login(t)

	resp := ts.api.Get("/api/auth/session", authz)
	require.Equal(t, http.StatusOK, resp.Code)

	env := decode[SessionResponse](t, resp.Body.Bytes())
	assert.Equal(t, testEditor, env.Data.Username)
	assert.True(t, env.Data.ExpiresAt.After(time.Now()))
}

func TestSession_MalformedHeader(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Get("/api/auth/session", "Authorization: Basic abc")
	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}

// Login, edit, then read back: the flow a curator follows.
func TestEditFlow(t *testing.T) {
	ts := setupTestServer(t)
	ts.seedCards(t, testCard("card-a", "Aoi", "1,000", "1,000", "1,000"))
	authz := ts.login(t)

	resp := ts.api.Put("/api/cards/card-a", authz, map[string]any{
		"name":  "Aoi",
		"stats": map[string]string{"wild": "2,000", "pop": "1,000", "cool": "1,000"},
	})
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	list := decode[CardListResponse](t, ts.api.Get("/api/cards").Body.Bytes())
	require.Len(t, list.Data.Cards, 1)
	assert.Equal(t, "2,000", list.Data.Cards[0].Stats.Wild)
}
