package web

import (
	"io/fs"
	"strings"
	"testing"

	"github.com/vedantadhau820-alt/IdentityOS/internal/core/assets"
)

func TestFiles_HoldsManifest(t *testing.T) {
	files := Files()

	for _, p := range assets.DefaultFiles {
		name := strings.TrimPrefix(p, "/")
		if name == "" {
			name = "index.html"
		}
		if _, err := fs.Stat(files, name); err != nil {
			t.Errorf("embedded bundle is missing %s: %v", p, err)
		}
	}
}
