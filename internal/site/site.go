/*
Copyright © 2025 Mirrorkit Authors <oss@mirrorkit.dev>
*/

// Package site implements detection and remediation for locally mirrored
// Framer static-site exports. It discovers site identifiers referenced in the
// export, computes which remote resources (ES modules, search indexes, media
// assets) are referenced but absent on disk, and re-fetches the missing ones
// from the Framer content origin.
package site

import "regexp"

// ContentOrigin is the Framer CDN every missing resource is fetched from.
const ContentOrigin = "https://framerusercontent.com"

// Fixed layout of a Framer export tree.
const (
	sitesDirName  = "sites"
	assetsDirName = "assets"
	imagesDirName = "images"
)

// Reference patterns. Character classes match Framer's generated output and
// must not be loosened.
var (
	// Site identifier inside a full CDN URL.
	siteIDURLPattern = regexp.MustCompile(`framerusercontent\.com/sites/([A-Za-z0-9_-]+)`)

	// Site identifier inside a local search-index reference.
	siteIDLocalPattern = regexp.MustCompile(`sites/([A-Za-z0-9_-]+)/searchIndex-[^"'>]+\.json`)

	// Relative module references inside .mjs files.
	dynImportPattern    = regexp.MustCompile(`import\(\s*["']\./([^"']+\.mjs)["']\s*\)`)
	staticImportPattern = regexp.MustCompile(`from\s+["']\./([^"']+\.mjs)["']`)

	// Fully qualified CDN asset URLs.
	assetURLPattern = regexp.MustCompile(`https://framerusercontent\.com/assets/([A-Za-z0-9_\-\.]+\.(?:png|jpe?g|webp|gif|mp4|svg|woff2?))`)
)

// Extension sets for the three scan categories.
var (
	identifierExts = extSet(".html", ".htm", ".js", ".mjs", ".json")
	indexRefExts   = extSet(".html", ".htm", ".js", ".mjs")
	assetRefExts   = extSet(".html", ".htm", ".js", ".mjs", ".css")
	moduleFileExts = extSet(".mjs", ".js", ".html", ".htm")
)

func extSet(exts ...string) map[string]struct{} {
	s := make(map[string]struct{}, len(exts))
	for _, e := range exts {
		s[e] = struct{}{}
	}
	return s
}

// SiteReport holds the missing items found for one site identifier.
type SiteReport struct {
	ID             string
	MissingModules []string
	MissingIndexes []string
}

// Report holds the results of a full detection pass over a mirror root.
type Report struct {
	Sites         []SiteReport
	MissingAssets []string
}

// TotalMissing returns the number of missing items across all categories.
func (r Report) TotalMissing() int {
	n := len(r.MissingAssets)
	for _, s := range r.Sites {
		n += len(s.MissingModules) + len(s.MissingIndexes)
	}
	return n
}
