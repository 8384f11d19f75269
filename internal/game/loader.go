package game

import (
	"fmt"
	"io/fs"
	"path"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	log "github.com/sirupsen/logrus"

	"github.com/Garsondee/Map-Viewer/internal/worldmap"
)

// loadResult is a map generated off the UI goroutine.
type loadResult struct {
	name string
	m    *worldmap.Map
	err  error
}

// droppedRecipe returns the name and contents of the first .toml file in
// fsys.
func droppedRecipe(fsys fs.FS) (string, []byte, error) {
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return "", nil, fmt.Errorf("reading dropped files: %w", err)
	}
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(path.Ext(e.Name()), ".toml") {
			continue
		}
		data, err := fs.ReadFile(fsys, e.Name())
		if err != nil {
			return "", nil, fmt.Errorf("reading %s: %w", e.Name(), err)
		}
		return e.Name(), data, nil
	}
	return "", nil, fs.ErrNotExist
}

// generate parses a recipe and builds its map.
func generate(name string, data []byte) loadResult {
	r, err := worldmap.ParseRecipe(data)
	if err != nil {
		return loadResult{name: name, err: err}
	}
	m, err := worldmap.Generate(r)
	return loadResult{name: name, m: m, err: err}
}

// checkDropped starts generating a map for a recipe dropped on the window.
// The dropped file system is only valid during this Update, so the file is
// read here and generation runs in the background.
func (g *Game) checkDropped() {
	fsys := ebiten.DroppedFiles()
	if fsys == nil {
		return
	}
	name, data, err := droppedRecipe(fsys)
	if err != nil {
		g.log.WithError(err).Warn("dropped files contain no recipe")
		return
	}
	if g.loading {
		g.log.WithField("recipe", name).Warn("a map is already loading, drop ignored")
		return
	}
	g.loading = true
	g.log.WithField("recipe", name).Info("generating map")
	go func() {
		g.loads <- generate(name, data)
	}()
}

// pollLoads swaps in a finished map, if any.
func (g *Game) pollLoads() {
	select {
	case res := <-g.loads:
		g.loading = false
		if res.err != nil {
			g.log.WithError(res.err).WithField("recipe", res.name).Error("cannot load map")
			return
		}
		if err := g.SetMap(res.m); err != nil {
			g.log.WithError(err).WithField("recipe", res.name).Error("cannot show map")
			return
		}
		g.log.WithFields(log.Fields{"recipe": res.name, "rows": res.m.Rows(), "cols": res.m.Cols()}).Info("map loaded")
	default:
	}
}
