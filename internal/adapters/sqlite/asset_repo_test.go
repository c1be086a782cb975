package sqlite_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vedantadhau820-alt/IdentityOS/internal/adapters/sqlite"
	"github.com/vedantadhau820-alt/IdentityOS/internal/ports/secondary"
)

func TestAssetCacheRepository_PutAndGet(t *testing.T) {
	repo := sqlite.NewAssetCacheRepository(setupTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.PutAll(ctx, []*secondary.AssetRecord{
		{Version: "project90-v1", Path: "/app.js", ContentType: "text/javascript", Body: []byte("run()")},
		{Version: "project90-v1", Path: "/style.css", ContentType: "text/css", Body: nil},
	}))

	got, err := repo.Get(ctx, "project90-v1", "/app.js")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "run()", string(got.Body))
	assert.Equal(t, "text/javascript", got.ContentType)
	assert.NotEmpty(t, got.CachedAt)

	empty, err := repo.Get(ctx, "project90-v1", "/style.css")
	require.NoError(t, err)
	assert.Empty(t, empty.Body)

	miss, err := repo.Get(ctx, "project90-v1", "/icon.jpg")
	require.NoError(t, err)
	assert.Nil(t, miss)
}

func TestAssetCacheRepository_PutAllReplaces(t *testing.T) {
	repo := sqlite.NewAssetCacheRepository(setupTestDB(t))
	ctx := context.Background()

	for _, body := range []string{"old", "new"} {
		require.NoError(t, repo.PutAll(ctx, []*secondary.AssetRecord{
			{Version: "project90-v1", Path: "/app.js", ContentType: "text/javascript", Body: []byte(body)},
		}))
	}

	got, err := repo.Get(ctx, "project90-v1", "/app.js")
	require.NoError(t, err)
	assert.Equal(t, "new", string(got.Body))

	n, err := repo.Count(ctx, "project90-v1")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestAssetCacheRepository_PutAllCancelled(t *testing.T) {
	repo := sqlite.NewAssetCacheRepository(setupTestDB(t))

	cancelled, cancel := context.WithCancel(context.Background())
	cancel()
	err := repo.PutAll(cancelled, []*secondary.AssetRecord{
		{Version: "project90-v2", Path: "/app.js", ContentType: "text/javascript", Body: []byte("x")},
	})
	assert.Error(t, err)

	n, err := repo.Count(context.Background(), "project90-v2")
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestAssetCacheRepository_VersionsAndDelete(t *testing.T) {
	repo := sqlite.NewAssetCacheRepository(setupTestDB(t))
	ctx := context.Background()

	for _, v := range []string{"project90-v1", "project90-v0"} {
		require.NoError(t, repo.PutAll(ctx, []*secondary.AssetRecord{
			{Version: v, Path: "/", ContentType: "text/html", Body: []byte("<html>")},
			{Version: v, Path: "/app.js", ContentType: "text/javascript", Body: []byte("x")},
		}))
	}

	versions, err := repo.Versions(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"project90-v0", "project90-v1"}, versions)

	removed, err := repo.DeleteVersion(ctx, "project90-v0")
	require.NoError(t, err)
	assert.Equal(t, 2, removed)

	versions, err = repo.Versions(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"project90-v1"}, versions)

	n, err := repo.Count(ctx, "project90-v1")
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}
