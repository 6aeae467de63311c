package http_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parthasastry/notes-app/internal/api"
	"github.com/parthasastry/notes-app/internal/auth"
	"github.com/parthasastry/notes-app/internal/config"
	httpx "github.com/parthasastry/notes-app/internal/http"
	"github.com/parthasastry/notes-app/internal/note"
	"github.com/parthasastry/notes-app/internal/profile"
	"github.com/parthasastry/notes-app/internal/storage/memstore"
)

type fixture struct {
	srv      *httptest.Server
	jwt      *auth.JWT
	profiles *memstore.Profiles
}

func newFixture(t *testing.T, cfg config.Config) *fixture {
	t.Helper()
	jwtSvc := auth.NewJWT("test-secret")
	profiles := memstore.NewProfiles()
	notes := api.NewRouter(&note.Service{Store: memstore.NewNotes()}, zerolog.Nop())

	srv := httptest.NewServer(httpx.NewRouter(cfg, notes, profiles, jwtSvc, zerolog.Nop()))
	t.Cleanup(srv.Close)
	return &fixture{srv: srv, jwt: jwtSvc, profiles: profiles}
}

func (f *fixture) do(t *testing.T, method, path, email, body string, header ...string) (*http.Response, map[string]any) {
	t.Helper()
	req, err := http.NewRequest(method, f.srv.URL+path, strings.NewReader(body))
	require.NoError(t, err)
	if email != "" {
		token, err := f.jwt.Sign(email)
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+token)
	}
	for i := 0; i+1 < len(header); i += 2 {
		req.Header.Set(header[i], header[i+1])
	}

	resp, err := f.srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var out map[string]any
	if len(raw) > 0 && resp.Header.Get("Content-Type") == "application/json" {
		require.NoError(t, json.Unmarshal(raw, &out), string(raw))
	}
	return resp, out
}

func TestHealth(t *testing.T) {
	f := newFixture(t, config.Config{})
	resp, _ := f.do(t, http.MethodGet, "/health", "", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestNotesOverHTTP(t *testing.T) {
	f := newFixture(t, config.Config{})
	const alice = "alice@example.com"

	resp, body := f.do(t, http.MethodPost, "/notes", alice, `{"title":"Groceries","content":"milk","tags":["home"]}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "GET,POST,PUT,DELETE,OPTIONS", resp.Header.Get("Access-Control-Allow-Methods"))
	id := body["note"].(map[string]any)["note_id"].(string)

	resp, body = f.do(t, http.MethodGet, "/notes/"+id, alice, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Groceries", body["note"].(map[string]any)["title"])

	resp, body = f.do(t, http.MethodPut, "/prod/notes/"+id, alice, `{"content":"oat milk"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "oat milk", body["note"].(map[string]any)["content"])

	resp, body = f.do(t, http.MethodGet, "/notes/", alice, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.EqualValues(t, 1, body["count"])

	resp, body = f.do(t, http.MethodGet, "/notes", "bob@example.com", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.EqualValues(t, 0, body["count"])

	resp, _ = f.do(t, http.MethodDelete, "/notes/"+id, alice, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body = f.do(t, http.MethodGet, "/notes/"+id, alice, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Note not found", body["error"])
}

func TestUnauthenticatedRequests(t *testing.T) {
	f := newFixture(t, config.Config{})

	resp, body := f.do(t, http.MethodGet, "/notes", "", "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Unauthorized", body["error"])
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))

	resp, _ = f.do(t, http.MethodGet, "/notes", "", "", "Authorization", "Bearer forged")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestPreflightWithoutCORSMiddleware(t *testing.T) {
	f := newFixture(t, config.Config{})

	resp, body := f.do(t, http.MethodOptions, "/notes/abc", "", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "OK", body["message"])
	assert.Equal(t, "Content-Type,Authorization", resp.Header.Get("Access-Control-Allow-Headers"))
}

func TestConfiguredCORSOriginWins(t *testing.T) {
	f := newFixture(t, config.Config{CORSAllowedOrigins: "https://app.example.com"})

	resp, _ := f.do(t, http.MethodGet, "/notes", "alice@example.com", "", "Origin", "https://app.example.com")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "https://app.example.com", resp.Header.Get("Access-Control-Allow-Origin"))

	resp, _ = f.do(t, http.MethodOptions, "/notes", "", "",
		"Origin", "https://app.example.com",
		"Access-Control-Request-Method", http.MethodPut,
	)
	assert.Less(t, resp.StatusCode, 300)
	assert.Equal(t, "https://app.example.com", resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestDisallowedOriginGetsNoWildcard(t *testing.T) {
	f := newFixture(t, config.Config{CORSAllowedOrigins: "https://app.example.com"})

	for _, tc := range []struct {
		method, path, email string
	}{
		{http.MethodGet, "/notes", "alice@example.com"},
		{http.MethodGet, "/notes", ""},
		{http.MethodGet, "/users/42", "alice@example.com"},
		{http.MethodGet, "/me", "alice@example.com"},
	} {
		resp, _ := f.do(t, tc.method, tc.path, tc.email, "", "Origin", "https://evil.example.net")
		assert.Empty(t, resp.Header.Get("Access-Control-Allow-Origin"), tc.path)
		assert.Equal(t, "application/json", resp.Header.Get("Content-Type"), tc.path)
	}
}

func TestUnknownRoute(t *testing.T) {
	f := newFixture(t, config.Config{})

	resp, body := f.do(t, http.MethodGet, "/users/42", "alice@example.com", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Not found", body["error"])
	assert.Equal(t, "/users/42", body["path"])

	resp, body = f.do(t, http.MethodPatch, "/notes", "alice@example.com", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "PATCH", body["method"])
}

func TestMe(t *testing.T) {
	f := newFixture(t, config.Config{})
	const alice = "alice@example.com"

	resp, body := f.do(t, http.MethodGet, "/me", alice, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, alice, body["email"])
	assert.Nil(t, body["profile"])

	now := time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC)
	require.NoError(t, f.profiles.Create(context.Background(), profile.Profile{
		Email:         alice,
		Name:          "Alice Liddell",
		AccountStatus: profile.StatusActive,
		CreatedAt:     now,
		UpdatedAt:     now,
		LastLogin:     now,
	}))

	resp, body = f.do(t, http.MethodGet, "/me", alice, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	p := body["profile"].(map[string]any)
	assert.Equal(t, "Alice Liddell", p["name"])
	assert.Equal(t, "active", p["account_status"])
	assert.Equal(t, "2025-03-14T09:26:53.000Z", p["created_at"])
	assert.Nil(t, p["last_note_date"])
}
