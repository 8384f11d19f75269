package main

import (
	"flag"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"sort"

	log "github.com/sirupsen/logrus"

	"github.com/Garsondee/Map-Viewer/internal/config"
	"github.com/Garsondee/Map-Viewer/internal/render"
	"github.com/Garsondee/Map-Viewer/internal/viewport"
	"github.com/Garsondee/Map-Viewer/internal/worldmap"
)

type options struct {
	configPath string
	recipePath string
	out        string
	row, col   int
	rows, cols int
	zoom       int
}

func parseFlags(args []string) (options, error) {
	var o options
	fs := flag.NewFlagSet("render-tiles", flag.ContinueOnError)
	fs.StringVar(&o.configPath, "config", "", "TOML configuration file")
	fs.StringVar(&o.recipePath, "recipe", "", "map recipe file (overrides the config)")
	fs.StringVar(&o.out, "out", "tiles.png", "output PNG file")
	fs.IntVar(&o.row, "row", -1, "row to select and keep in view (-1 for none)")
	fs.IntVar(&o.col, "col", -1, "column to select and keep in view (-1 for none)")
	fs.IntVar(&o.rows, "rows", 24, "visible rows")
	fs.IntVar(&o.cols, "cols", 32, "visible columns")
	fs.IntVar(&o.zoom, "zoom", viewport.DefaultZoom, "zoom level")
	if err := fs.Parse(args); err != nil {
		return o, err
	}
	if o.rows <= 0 || o.cols <= 0 {
		return o, fmt.Errorf("-rows and -cols must be > 0")
	}
	if o.out == "" {
		return o, fmt.Errorf("-out must not be empty")
	}
	return o, nil
}

func main() {
	o, err := parseFlags(os.Args[1:])
	if err != nil {
		fmt.Println("error:", err)
		os.Exit(2)
	}
	if err := run(o, os.Stdout); err != nil {
		log.Fatal(err)
	}
}

// run renders the requested window of the map to a PNG and prints a
// summary of what is on top of each tile.
func run(o options, stdout io.Writer) error {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return err
	}
	if o.recipePath != "" {
		cfg.Map.Recipe = o.recipePath
	}
	if err := cfg.ApplyLogging(); err != nil {
		return err
	}
	recipe, err := cfg.Recipe()
	if err != nil {
		return err
	}
	m, err := worldmap.Generate(recipe)
	if err != nil {
		return err
	}
	chain, err := cfg.MatcherChain()
	if err != nil {
		return err
	}
	comp := render.NewCompositor(render.NewImageCache(cfg.ImageProvider()), chain)

	model := viewport.NewModel(m)
	if err := model.SetZoom(o.zoom); err != nil {
		return err
	}
	model.Resize(o.rows, o.cols)
	if o.row >= 0 && o.col >= 0 {
		if !model.SetSelection(worldmap.Pt(o.row, o.col)) {
			return fmt.Errorf("tile (%d, %d) is outside the %dx%d map", o.row, o.col, m.Rows(), m.Cols())
		}
	}
	ts, err := model.TileSize()
	if err != nil {
		return err
	}
	dims := model.VisibleDimensions()

	img := image.NewRGBA(image.Rect(0, 0, dims.Width()*ts, dims.Height()*ts))
	tiles := viewport.TilesIn(img.Bounds(), dims, ts)
	comp.DrawRegion(img, m, tiles, func(p worldmap.Point) image.Point {
		return viewport.TileOrigin(p, dims, ts)
	}, ts)

	f, err := os.Create(o.out)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", o.out, err)
	}
	if err := f.Close(); err != nil {
		return err
	}

	fmt.Fprintf(stdout, "=== Tile Render ===\n")
	fmt.Fprintf(stdout, "recipe=%s map=%dx%d version=%d\n", recipe.Name, m.Rows(), m.Cols(), m.Version())
	fmt.Fprintf(stdout, "window=%s zoom=%d tile=%dpx image=%dx%d out=%s\n\n",
		dims, model.Zoom(), ts, img.Bounds().Dx(), img.Bounds().Dy(), o.out)
	printSummary(stdout, topFixtureCounts(comp, m, tiles), len(tiles))
	return nil
}

type kindCount struct {
	kind  string
	count int
}

// topFixtureCounts counts tiles by the kind of their top fixture. Tiles with
// nothing drawn over the terrain count as "bare".
func topFixtureCounts(comp *render.Compositor, src render.TileSource, tiles []worldmap.Point) []kindCount {
	counts := map[string]int{}
	for _, p := range tiles {
		kind := "bare"
		if f, ok := comp.TopFixture(src, p); ok {
			kind = f.Kind()
		}
		counts[kind]++
	}
	out := make([]kindCount, 0, len(counts))
	for k, n := range counts {
		out = append(out, kindCount{kind: k, count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].count != out[j].count {
			return out[i].count > out[j].count
		}
		return out[i].kind < out[j].kind
	})
	return out
}

func printSummary(w io.Writer, counts []kindCount, total int) {
	fmt.Fprintf(w, "top_fixtures (tiles=%d):\n", total)
	for _, c := range counts {
		pct := 0.0
		if total > 0 {
			pct = 100 * float64(c.count) / float64(total)
		}
		fmt.Fprintf(w, "  %-10s %5d  %5.1f%%\n", c.kind, c.count, pct)
	}
}
