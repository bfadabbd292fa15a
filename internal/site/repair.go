/*
Copyright © 2025 Mirrorkit Authors <oss@mirrorkit.dev>
*/
package site

import (
	"context"
	"errors"
	"io"
	"os"
	"path"

	"github.com/mirrorkit/framerfix/internal/fetch"
	"github.com/mirrorkit/framerfix/pkg/config"
	"github.com/mirrorkit/framerfix/pkg/logger"
	"github.com/mirrorkit/framerfix/pkg/safeio"
)

// Options configures a repair run.
type Options struct {
	Root   string
	DryRun bool
	Config config.Config

	// Origin overrides ContentOrigin. Tests point this at a local server.
	Origin string

	// Out receives the detection report. Defaults to stdout.
	Out io.Writer
}

// Runner executes the repair flow: per-site detection and remediation,
// sequentially, then the root-global asset pass.
type Runner struct {
	opts    Options
	origin  string
	out     io.Writer
	scanner *Scanner
	client  *fetch.Client
}

// NewRunner creates a runner for the given options.
func NewRunner(opts Options) *Runner {
	origin := opts.Origin
	if origin == "" {
		origin = ContentOrigin
	}
	out := opts.Out
	if out == nil {
		out = os.Stdout
	}
	return &Runner{
		opts:    opts,
		origin:  origin,
		out:     out,
		scanner: NewScanner(opts.Root, opts.Config.Scan),
		client:  fetch.NewClient(opts.Config.Timeout()),
	}
}

// Run analyzes and remediates one site identifier at a time, in sorted order,
// then handles assets. Download failures are logged and never abort the run.
func (r *Runner) Run(ctx context.Context) Report {
	var report Report

	ids := r.scanner.SiteIDs()
	if len(ids) == 0 {
		logger.Warn("no site identifiers found under root")
	} else {
		logger.Info("found site identifiers", logger.Int("count", len(ids)))
	}

	for _, id := range ids {
		sr := SiteReport{
			ID:             id,
			MissingModules: r.scanner.MissingModules(id),
			MissingIndexes: r.scanner.MissingIndexes(id),
		}
		report.Sites = append(report.Sites, sr)

		renderSiteHeader(r.out, id)
		renderSection(r.out, "modules", sr.MissingModules)
		renderSection(r.out, "search indexes", sr.MissingIndexes)

		if r.opts.DryRun {
			continue
		}
		for _, rel := range sr.MissingModules {
			r.downloadSiteFile(ctx, id, rel)
		}
		for _, name := range sr.MissingIndexes {
			r.downloadSiteFile(ctx, id, name)
		}
	}

	report.MissingAssets = r.scanner.MissingAssets()
	renderAssetHeader(r.out)
	renderSection(r.out, "assets", report.MissingAssets)

	if !r.opts.DryRun {
		for _, name := range report.MissingAssets {
			r.download(ctx, r.origin+"/"+assetsDirName+"/"+name, path.Join(assetsDirName, name))
		}
	}

	return report
}

// downloadSiteFile fetches one identifier-scoped file into sites/<id>/.
func (r *Runner) downloadSiteFile(ctx context.Context, siteID, rel string) {
	cleaned, err := safeio.CleanUserPath(rel)
	if err != nil {
		logger.Warn("skipping suspicious reference", logger.String("ref", rel), logger.Err(err))
		return
	}
	url := r.origin + "/" + sitesDirName + "/" + siteID + "/" + cleaned
	r.download(ctx, url, path.Join(sitesDirName, siteID, cleaned))
}

// download fetches url into relPath under the root, logging each of the three
// failure classes distinctly and continuing.
func (r *Runner) download(ctx context.Context, url, relPath string) {
	logger.Info("fetching", logger.String("url", url))
	err := r.client.Download(ctx, url, r.opts.Root, relPath)

	var statusErr *fetch.StatusError
	var connErr *fetch.ConnError
	switch {
	case err == nil:
		logger.Info("saved", logger.String("path", relPath))
	case errors.As(err, &statusErr):
		logger.Error("download failed", logger.String("url", url), logger.Int("status", statusErr.StatusCode))
	case errors.As(err, &connErr):
		logger.Error("connection failed", logger.String("url", url), logger.Err(connErr.Err))
	default:
		logger.Error("download error", logger.String("url", url), logger.Err(err))
	}
}
