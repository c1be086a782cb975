// Package assets describes the versioned set of static files kept for offline use.
// This is part of the Functional Core - no I/O, only pure functions.
package assets

import (
	"mime"
	"path"
	"strings"
)

// DefaultVersion is the cache version tag for the current page shell.
const DefaultVersion = "project90-v1"

// DefaultFiles is the list of request paths precached on install.
var DefaultFiles = []string{
	"/",
	"/index.html",
	"/style.css",
	"/app.js",
	"/manifest.json",
	"/icon.jpg",
}

// Manifest names a cache version and the files it holds.
type Manifest struct {
	Version string
	Files   []string
}

// NewManifest returns the manifest for version, falling back to DefaultVersion.
func NewManifest(version string) Manifest {
	if strings.TrimSpace(version) == "" {
		version = DefaultVersion
	}
	files := make([]string, len(DefaultFiles))
	copy(files, DefaultFiles)
	return Manifest{Version: version, Files: files}
}

// Contains reports whether a request path is precached.
func (m Manifest) Contains(requestPath string) bool {
	p := CleanPath(requestPath)
	for _, f := range m.Files {
		if f == p {
			return true
		}
	}
	return false
}

// StaleVersions returns every version in existing other than the manifest's own.
func (m Manifest) StaleVersions(existing []string) []string {
	var stale []string
	for _, v := range existing {
		if v != m.Version {
			stale = append(stale, v)
		}
	}
	return stale
}

// CleanPath normalizes a request path into cache-key form. "./x" and "x" become "/x".
func CleanPath(p string) string {
	p = strings.TrimPrefix(p, ".")
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return path.Clean(p)
}

// ContentType guesses the media type for a cached path.
// The root path is the page shell.
func ContentType(p string) string {
	if p == "/" {
		return "text/html; charset=utf-8"
	}
	if ct := mime.TypeByExtension(path.Ext(p)); ct != "" {
		return ct
	}
	return "application/octet-stream"
}
