/*
Copyright © 2025 Mirrorkit Authors <oss@mirrorkit.dev>
*/
package site

import (
	"fmt"
	"io"

	"github.com/mattn/go-runewidth"
)

var sectionLabels = []string{"modules", "search indexes", "assets"}

// labelWidth is the display width the section labels are padded to.
var labelWidth = func() int {
	w := 0
	for _, l := range sectionLabels {
		if lw := runewidth.StringWidth(l); lw > w {
			w = lw
		}
	}
	return w
}()

// Render writes the report as human-readable lines.
func (r Report) Render(w io.Writer) {
	for _, s := range r.Sites {
		renderSiteHeader(w, s.ID)
		renderSection(w, "modules", s.MissingModules)
		renderSection(w, "search indexes", s.MissingIndexes)
	}
	renderAssetHeader(w)
	renderSection(w, "assets", r.MissingAssets)
}

func renderSiteHeader(w io.Writer, id string) {
	fmt.Fprintf(w, "=== site %s ===\n", id)
}

func renderAssetHeader(w io.Writer) {
	fmt.Fprintln(w, "=== assets ===")
}

// renderSection prints one category with its missing items, one per line.
func renderSection(w io.Writer, label string, missing []string) {
	padded := runewidth.FillRight(label, labelWidth)
	if len(missing) == 0 {
		fmt.Fprintf(w, "%s  ok\n", padded)
		return
	}
	fmt.Fprintf(w, "%s  %d missing\n", padded, len(missing))
	for _, item := range missing {
		fmt.Fprintf(w, "  - %s\n", item)
	}
}
