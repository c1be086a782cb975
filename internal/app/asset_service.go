package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/vedantadhau820-alt/IdentityOS/internal/core/assets"
	"github.com/vedantadhau820-alt/IdentityOS/internal/ports/primary"
	"github.com/vedantadhau820-alt/IdentityOS/internal/ports/secondary"
)

// AssetServiceImpl implements the AssetService interface.
type AssetServiceImpl struct {
	manifest  assets.Manifest
	cacheRepo secondary.AssetCacheRepository
	origin    secondary.AssetOrigin
	logger    *slog.Logger
}

// NewAssetService creates a new AssetService with injected dependencies.
func NewAssetService(manifest assets.Manifest, cacheRepo secondary.AssetCacheRepository, origin secondary.AssetOrigin, logger *slog.Logger) *AssetServiceImpl {
	return &AssetServiceImpl{
		manifest:  manifest,
		cacheRepo: cacheRepo,
		origin:    origin,
		logger:    logger,
	}
}

// InstallAssets precaches every manifest file for the current version.
// Nothing is stored unless every file could be fetched.
func (s *AssetServiceImpl) InstallAssets(ctx context.Context) (*primary.InstallAssetsResponse, error) {
	entries := make([]*secondary.AssetRecord, 0, len(s.manifest.Files))
	for _, p := range s.manifest.Files {
		body, contentType, err := s.origin.Fetch(ctx, p)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch %s: %w", p, err)
		}
		if contentType == "" {
			contentType = assets.ContentType(p)
		}
		entries = append(entries, &secondary.AssetRecord{
			Version:     s.manifest.Version,
			Path:        p,
			ContentType: contentType,
			Body:        body,
		})
	}

	if err := s.cacheRepo.PutAll(ctx, entries); err != nil {
		return nil, fmt.Errorf("failed to store %s: %w", s.manifest.Version, err)
	}

	s.logger.Info("assets installed", "version", s.manifest.Version, "files", len(entries))
	return &primary.InstallAssetsResponse{
		Version: s.manifest.Version,
		Files:   append([]string(nil), s.manifest.Files...),
	}, nil
}

// ActivateAssets deletes every cached version other than the current one.
func (s *AssetServiceImpl) ActivateAssets(ctx context.Context) (*primary.ActivateAssetsResponse, error) {
	versions, err := s.cacheRepo.Versions(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list cached versions: %w", err)
	}

	resp := &primary.ActivateAssetsResponse{Version: s.manifest.Version}
	for _, v := range s.manifest.StaleVersions(versions) {
		if _, err := s.cacheRepo.DeleteVersion(ctx, v); err != nil {
			return nil, fmt.Errorf("failed to delete %s: %w", v, err)
		}
		resp.Removed = append(resp.Removed, v)
	}

	s.logger.Info("assets activated", "version", s.manifest.Version, "removed", resp.Removed)
	return resp, nil
}

// GetAssetStatus reports what the cache holds.
func (s *AssetServiceImpl) GetAssetStatus(ctx context.Context) (*primary.AssetStatus, error) {
	versions, err := s.cacheRepo.Versions(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list cached versions: %w", err)
	}
	cached, err := s.cacheRepo.Count(ctx, s.manifest.Version)
	if err != nil {
		return nil, fmt.Errorf("failed to count cached assets: %w", err)
	}

	return &primary.AssetStatus{
		Version:  s.manifest.Version,
		Expected: len(s.manifest.Files),
		Cached:   cached,
		Versions: versions,
	}, nil
}

// LookupAsset returns the cached response for a request path, or nil on a miss.
// The cache is never refreshed on lookup.
func (s *AssetServiceImpl) LookupAsset(ctx context.Context, path string) (*primary.CachedAsset, error) {
	p := assets.CleanPath(path)
	if !s.manifest.Contains(p) {
		return nil, nil
	}

	rec, err := s.cacheRepo.Get(ctx, s.manifest.Version, p)
	if err != nil {
		return nil, fmt.Errorf("failed to read cached %s: %w", p, err)
	}
	if rec == nil {
		return nil, nil
	}

	return &primary.CachedAsset{
		Path:        rec.Path,
		ContentType: rec.ContentType,
		Body:        rec.Body,
	}, nil
}

// Ensure AssetServiceImpl implements the interface
var _ primary.AssetService = (*AssetServiceImpl)(nil)
