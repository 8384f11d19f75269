package game

import (
	"github.com/Garsondee/Map-Viewer/internal/worldmap"
)

// dirtySet records which tiles of the frame buffer need repainting.
type dirtySet struct {
	all   bool
	tiles map[worldmap.Point]struct{}
}

func newDirtySet() *dirtySet {
	return &dirtySet{all: true, tiles: make(map[worldmap.Point]struct{})}
}

func (d *dirtySet) markAll() { d.all = true }

func (d *dirtySet) mark(p worldmap.Point) {
	if !p.Valid() || d.all {
		return
	}
	d.tiles[p] = struct{}{}
}

func (d *dirtySet) empty() bool { return !d.all && len(d.tiles) == 0 }

// take returns and clears the pending work. When all is true the tile list
// is nil.
func (d *dirtySet) take() (all bool, tiles []worldmap.Point) {
	all = d.all
	if !all {
		for p := range d.tiles {
			tiles = append(tiles, p)
		}
	}
	d.all = false
	clear(d.tiles)
	return all, tiles
}
