/*
Copyright © 2025 Mirrorkit Authors <oss@mirrorkit.dev>
*/
package site

import (
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/mirrorkit/framerfix/pkg/config"
	"github.com/mirrorkit/framerfix/pkg/logger"
)

// Scanner performs the detection passes over one mirror root. Results are
// derived fresh on every call; the scanner holds no state beyond its
// configuration.
type Scanner struct {
	root        string
	exclude     []string
	maxFileSize int64
}

// NewScanner creates a scanner for root with the given scan settings.
func NewScanner(root string, cfg config.ScanConfig) *Scanner {
	return &Scanner{
		root:        root,
		exclude:     cfg.Exclude,
		maxFileSize: cfg.MaxFileSizeBytes,
	}
}

// excluded reports whether path (absolute, under root) matches a configured
// exclude glob. Patterns are matched against the slash-separated path
// relative to the root.
func (s *Scanner) excluded(path string) bool {
	rel, err := filepath.Rel(s.root, path)
	if err != nil {
		return false
	}
	rel = filepath.ToSlash(rel)
	for _, pat := range s.exclude {
		if ok, _ := doublestar.Match(pat, rel); ok {
			return true
		}
	}
	return false
}

// walkText visits the raw content of every file under root whose extension is
// in exts. Unreadable files are skipped, never fatal. Walk errors on
// directories prune the subtree.
func (s *Scanner) walkText(exts map[string]struct{}, visit func(content []byte)) {
	_ = filepath.WalkDir(s.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			if path != s.root && s.excluded(path) {
				return filepath.SkipDir
			}
			return nil
		}
		if _, ok := exts[strings.ToLower(filepath.Ext(path))]; !ok {
			return nil
		}
		if s.excluded(path) {
			return nil
		}
		if s.maxFileSize > 0 {
			info, err := d.Info()
			if err != nil || info.Size() > s.maxFileSize {
				return nil
			}
		}
		content, err := os.ReadFile(path)
		if err != nil {
			logger.Debug("skipping unreadable file", logger.String("path", path), logger.Err(err))
			return nil
		}
		visit(content)
		return nil
	})
}

// SiteIDs discovers every site identifier referenced anywhere under the root,
// either through a CDN URL or a local search-index reference.
func (s *Scanner) SiteIDs() []string {
	ids := make(map[string]struct{})
	s.walkText(identifierExts, func(content []byte) {
		for _, m := range siteIDURLPattern.FindAllSubmatch(content, -1) {
			ids[string(m[1])] = struct{}{}
		}
		for _, m := range siteIDLocalPattern.FindAllSubmatch(content, -1) {
			ids[string(m[1])] = struct{}{}
		}
	})
	return sortedKeys(ids)
}

// MissingModules returns the relative .mjs paths imported by files directly
// inside sites/<siteID>/ that do not exist there. Imports are collected from
// dynamic and static import forms, in modules as well as inline scripts in
// exported pages. A missing site directory yields a warning and an empty
// result.
func (s *Scanner) MissingModules(siteID string) []string {
	siteDir := filepath.Join(s.root, sitesDirName, siteID)
	info, err := os.Stat(siteDir)
	if err != nil || !info.IsDir() {
		logger.Warn("site directory not found locally", logger.String("site", siteID))
		return nil
	}

	entries, err := os.ReadDir(siteDir)
	if err != nil {
		logger.Warn("cannot read site directory", logger.String("site", siteID), logger.Err(err))
		return nil
	}

	missing := make(map[string]struct{})
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if _, ok := moduleFileExts[strings.ToLower(filepath.Ext(entry.Name()))]; !ok {
			continue
		}
		content, err := os.ReadFile(filepath.Join(siteDir, entry.Name()))
		if err != nil {
			continue
		}
		for _, pat := range []*regexp.Regexp{dynImportPattern, staticImportPattern} {
			for _, m := range pat.FindAllSubmatch(content, -1) {
				rel := string(m[1])
				if _, err := os.Stat(filepath.Join(siteDir, filepath.FromSlash(rel))); err != nil {
					missing[rel] = struct{}{}
				}
			}
		}
	}
	return sortedKeys(missing)
}

// MissingIndexes returns the searchIndex-*.json filenames referenced for
// siteID anywhere under the root but absent from sites/<siteID>/.
func (s *Scanner) MissingIndexes(siteID string) []string {
	pattern := regexp.MustCompile(
		`https://framerusercontent\.com/sites/` + regexp.QuoteMeta(siteID) + `/(searchIndex-[^"'>]+\.json)`,
	)

	referenced := make(map[string]struct{})
	s.walkText(indexRefExts, func(content []byte) {
		for _, m := range pattern.FindAllSubmatch(content, -1) {
			referenced[string(m[1])] = struct{}{}
		}
	})

	siteDir := filepath.Join(s.root, sitesDirName, siteID)
	missing := make(map[string]struct{})
	for name := range referenced {
		if _, err := os.Stat(filepath.Join(siteDir, name)); err != nil {
			missing[name] = struct{}{}
		}
	}
	return sortedKeys(missing)
}

// MissingAssets returns CDN asset filenames referenced under the root that
// exist in neither assets/ nor images/. Either directory satisfies a
// reference; downloads always land in assets/.
func (s *Scanner) MissingAssets() []string {
	referenced := make(map[string]struct{})
	s.walkText(assetRefExts, func(content []byte) {
		for _, m := range assetURLPattern.FindAllSubmatch(content, -1) {
			referenced[string(m[1])] = struct{}{}
		}
	})

	missing := make(map[string]struct{})
	for name := range referenced {
		_, errAssets := os.Stat(filepath.Join(s.root, assetsDirName, name))
		_, errImages := os.Stat(filepath.Join(s.root, imagesDirName, name))
		if errAssets != nil && errImages != nil {
			missing[name] = struct{}{}
		}
	}
	return sortedKeys(missing)
}

// Scan runs every detection pass and assembles the full report. Sites are
// analyzed in sorted identifier order.
func (s *Scanner) Scan() Report {
	var report Report
	for _, id := range s.SiteIDs() {
		report.Sites = append(report.Sites, SiteReport{
			ID:             id,
			MissingModules: s.MissingModules(id),
			MissingIndexes: s.MissingIndexes(id),
		})
	}
	report.MissingAssets = s.MissingAssets()
	return report
}

func sortedKeys(set map[string]struct{}) []string {
	if len(set) == 0 {
		return nil
	}
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
