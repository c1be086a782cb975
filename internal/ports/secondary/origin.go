package secondary

import "context"

// AssetOrigin defines the secondary port for fetching static files from their source.
type AssetOrigin interface {
	// Fetch returns the body and media type served for a request path.
	Fetch(ctx context.Context, path string) (body []byte, contentType string, err error)
}
