package wire

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vedantadhau820-alt/IdentityOS/internal/config"
)

// TestServer_EndToEnd drives the fully wired server against a temp state dir.
func TestServer_EndToEnd(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Storage.StateDir = t.TempDir()
	Configure(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	t.Cleanup(func() { _ = Close() })

	h := Server().Handler()

	do := func(method, path, body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(method, path, strings.NewReader(body))
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec
	}

	rec := do(http.MethodGet, "/api/whoami", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var who map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &who))
	assert.Len(t, who["user_id"], 6)

	require.Equal(t, http.StatusOK, do(http.MethodPost, "/api/social/start", "").Code)
	require.Equal(t, http.StatusOK, do(http.MethodPost, "/api/social/reflect", "").Code)

	rec = do(http.MethodPost, "/api/social/submit", `{"difficulty":2,"intensity":8,"outcome":"asked for help"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var done struct {
		Activity string `json:"activity"`
		Status   string `json:"status"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &done))
	assert.Equal(t, "social", done.Activity)
	assert.Equal(t, "confirmed", done.Status)

	rec = do(http.MethodGet, "/api/today", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var today struct {
		UserID   string `json:"user_id"`
		Controls []struct {
			Activity string `json:"activity"`
			Locked   bool   `json:"locked"`
		} `json:"controls"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &today))
	assert.Equal(t, who["user_id"], today.UserID)
	for _, c := range today.Controls {
		assert.Equal(t, c.Activity == "social", c.Locked, c.Activity)
	}

	rec = do(http.MethodGet, "/", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "<html")

	assert.Equal(t, http.StatusOK, do(http.MethodGet, "/metrics", "").Code)
}
