package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/vedantadhau820-alt/IdentityOS/internal/ports/primary"
)

// AssetAdapter is a thin adapter over the offline asset cache.
type AssetAdapter struct {
	service primary.AssetService
	out     io.Writer
}

// NewAssetAdapter creates a new AssetAdapter with the given service.
func NewAssetAdapter(service primary.AssetService, out io.Writer) *AssetAdapter {
	return &AssetAdapter{service: service, out: out}
}

// Install precaches the page shell.
func (a *AssetAdapter) Install(ctx context.Context) (*primary.InstallAssetsResponse, error) {
	resp, err := a.service.InstallAssets(ctx)
	if err != nil {
		return nil, err
	}
	fmt.Fprintf(a.out, "%s Cached %d files as %s\n", okMark(), len(resp.Files), resp.Version)
	return resp, nil
}

// Activate removes stale cache versions.
func (a *AssetAdapter) Activate(ctx context.Context) (*primary.ActivateAssetsResponse, error) {
	resp, err := a.service.ActivateAssets(ctx)
	if err != nil {
		return nil, err
	}
	if len(resp.Removed) == 0 {
		fmt.Fprintf(a.out, "%s %s active, nothing to remove\n", okMark(), resp.Version)
		return resp, nil
	}
	fmt.Fprintf(a.out, "%s %s active, removed %s\n", okMark(), resp.Version, strings.Join(resp.Removed, ", "))
	return resp, nil
}

// Status prints what the cache holds.
func (a *AssetAdapter) Status(ctx context.Context) (*primary.AssetStatus, error) {
	st, err := a.service.GetAssetStatus(ctx)
	if err != nil {
		return nil, err
	}
	fmt.Fprintf(a.out, "Version:  %s\n", st.Version)
	fmt.Fprintf(a.out, "Cached:   %d/%d\n", st.Cached, st.Expected)
	if len(st.Versions) > 0 {
		fmt.Fprintf(a.out, "Versions: %s\n", strings.Join(st.Versions, ", "))
	}
	return st, nil
}
