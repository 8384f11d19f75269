package game

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"

	"github.com/Garsondee/Map-Viewer/internal/render"
	"github.com/Garsondee/Map-Viewer/internal/worldmap"
)

// tileSummary is the plain-text description copied for a tile: its
// coordinates and terrain, then each displayed fixture top first.
func tileSummary(m *worldmap.Map, chain *render.MatcherChain, p worldmap.Point) string {
	if !m.Contains(p) {
		return ""
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s", p, m.BaseTerrain(p))
	if m.Mountainous(p) {
		b.WriteString(", mountainous")
	}
	if m.Bookmarked(p) {
		b.WriteString(", bookmarked")
	}
	b.WriteByte('\n')
	for _, f := range chain.Drawable(m.Fixtures(p)) {
		fmt.Fprintf(&b, "%s: %s\n", f.Kind(), f.ShortDescription())
	}
	return b.String()
}

// setClipboardText copies text to the system clipboard.
func setClipboardText(text string) error {
	if err := clipboard.WriteAll(text); err != nil {
		return fmt.Errorf("copy to clipboard: %w", err)
	}
	return nil
}
