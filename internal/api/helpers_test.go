package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/tarefahub-io/tarefahub/internal/config"
	"github.com/tarefahub-io/tarefahub/internal/database"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	cfg := config.Config{APIPort: 8080}
	cfg.Database.Type = "sqlite"
	cfg.Database.Path = filepath.Join(t.TempDir(), "test.db")
	cfg.Auth.Secret = "test-secret"
	cfg.Auth.Issuer = "tarefahub"
	cfg.Auth.TokenTTL = time.Hour
	cfg.CORS.AllowedOrigins = []string{"http://localhost:*"}

	db, err := database.Open(&cfg)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	apiInstance, err := NewApi(cfg, db)
	require.NoError(t, err)

	server := httptest.NewServer(apiInstance.Router)
	t.Cleanup(server.Close)
	return server
}

// doJSON performs a request with an optional JSON body and bearer token
// and decodes the JSON response into out when it is non-nil.
func doJSON(t *testing.T, server *httptest.Server, method, path, token string, body interface{}, out interface{}) *http.Response {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, server.URL+path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp
}

// registerUser creates an account through the API and returns its token.
func registerUser(t *testing.T, server *httptest.Server, nome, email, password string) string {
	t.Helper()

	var result struct {
		Token string `json:"token"`
	}
	resp := doJSON(t, server, http.MethodPost, "/register", "", map[string]string{
		"nome":     nome,
		"email":    email,
		"password": password,
	}, &result)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	require.NotEmpty(t, result.Token)
	return result.Token
}
