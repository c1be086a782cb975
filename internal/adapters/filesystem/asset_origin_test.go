package filesystem

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vedantadhau820-alt/IdentityOS/internal/core/assets"
)

func TestAssetOriginAdapter_Fetch(t *testing.T) {
	origin := NewAssetOriginAdapter(fstest.MapFS{
		"index.html": {Data: []byte("<html>")},
		"app.js":     {Data: []byte("run()")},
	})

	tests := []struct {
		path     string
		wantBody string
		wantType string
		wantErr  bool
	}{
		{path: "/", wantBody: "<html>", wantType: "text/html; charset=utf-8"},
		{path: "./app.js", wantBody: "run()", wantType: assets.ContentType("/app.js")},
		{path: "/index.html", wantBody: "<html>", wantType: "text/html; charset=utf-8"},
		{path: "/style.css", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			body, contentType, err := origin.Fetch(context.Background(), tt.path)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantBody, string(body))
			assert.Equal(t, tt.wantType, contentType)
		})
	}
}

func TestAssetOriginAdapter_CancelledContext(t *testing.T) {
	origin := NewAssetOriginAdapter(fstest.MapFS{"index.html": {Data: []byte("<html>")}})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := origin.Fetch(ctx, "/")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewDirAssetOrigin(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), []byte("<p>"), 0644))

	origin, err := NewDirAssetOrigin(dir)
	require.NoError(t, err)
	body, _, err := origin.Fetch(context.Background(), "/")
	require.NoError(t, err)
	assert.Equal(t, "<p>", string(body))

	_, err = NewDirAssetOrigin(filepath.Join(dir, "index.html"))
	assert.Error(t, err)
	_, err = NewDirAssetOrigin(filepath.Join(dir, "missing"))
	assert.Error(t, err)
}
