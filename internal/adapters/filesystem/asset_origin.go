package filesystem

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/vedantadhau820-alt/IdentityOS/internal/core/assets"
	"github.com/vedantadhau820-alt/IdentityOS/internal/ports/secondary"
)

// AssetOriginAdapter implements secondary.AssetOrigin over a file tree.
type AssetOriginAdapter struct {
	files fs.FS
}

// NewAssetOriginAdapter serves assets from an fs.FS (an embedded bundle or os.DirFS).
func NewAssetOriginAdapter(files fs.FS) *AssetOriginAdapter {
	return &AssetOriginAdapter{files: files}
}

// NewDirAssetOrigin serves assets from a directory on disk.
func NewDirAssetOrigin(dir string) (*AssetOriginAdapter, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("asset dir: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("asset dir %s is not a directory", dir)
	}
	return NewAssetOriginAdapter(os.DirFS(dir)), nil
}

// Fetch reads the file behind a request path. "/" serves index.html.
func (a *AssetOriginAdapter) Fetch(ctx context.Context, path string) ([]byte, string, error) {
	if err := ctx.Err(); err != nil {
		return nil, "", err
	}

	clean := assets.CleanPath(path)
	name := strings.TrimPrefix(clean, "/")
	if name == "" {
		name = "index.html"
	}

	body, err := fs.ReadFile(a.files, name)
	if err != nil {
		return nil, "", fmt.Errorf("failed to fetch %s: %w", clean, err)
	}
	return body, assets.ContentType(clean), nil
}

// Ensure AssetOriginAdapter implements the interface
var _ secondary.AssetOrigin = (*AssetOriginAdapter)(nil)
