package primary

import "context"

// AssetService defines the primary port for the offline asset cache.
type AssetService interface {
	// InstallAssets precaches every manifest file for the current version.
	InstallAssets(ctx context.Context) (*InstallAssetsResponse, error)

	// ActivateAssets deletes every cached version other than the current one.
	ActivateAssets(ctx context.Context) (*ActivateAssetsResponse, error)

	// GetAssetStatus reports what the cache holds.
	GetAssetStatus(ctx context.Context) (*AssetStatus, error)

	// LookupAsset returns the cached response for a request path, or nil on a miss.
	LookupAsset(ctx context.Context, path string) (*CachedAsset, error)
}

// InstallAssetsResponse contains the result of an install.
type InstallAssetsResponse struct {
	Version string
	Files   []string
}

// ActivateAssetsResponse contains the result of an activation.
type ActivateAssetsResponse struct {
	Version string
	Removed []string
}

// AssetStatus describes the cache contents.
type AssetStatus struct {
	Version  string
	Expected int
	Cached   int
	Versions []string
}

// CachedAsset is a cached response.
type CachedAsset struct {
	Path        string
	ContentType string
	Body        []byte
}
