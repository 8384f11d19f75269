package worldmap

import "fmt"

// Synthetic fixtures stand in for per-tile properties (terrain type, rivers,
// mountains) so that tile listings can treat everything uniformly. They are
// built on demand and never stored in the map.

// TileTypeFixture represents a tile's base terrain.
type TileTypeFixture struct {
	Type TileType
}

func (t TileTypeFixture) ID() int        { return -1 }
func (t TileTypeFixture) Kind() string   { return "terrain" }
func (t TileTypeFixture) Image() string  { return t.Type.ImageName() }
func (t TileTypeFixture) Tag() RenderTag { return TagSynthetic }
func (t TileTypeFixture) ShortDescription() string {
	return fmt.Sprintf("Terrain: %s", t.Type)
}

// RiverFixture represents the rivers on a tile.
type RiverFixture struct {
	Rivers DirectionSet
}

func (r RiverFixture) ID() int        { return -1 }
func (r RiverFixture) Kind() string   { return "river" }
func (r RiverFixture) Image() string  { return "river.png" }
func (r RiverFixture) Tag() RenderTag { return TagSynthetic }
func (r RiverFixture) ShortDescription() string {
	return fmt.Sprintf("Rivers: %s", r.Rivers)
}

// MountainFixture represents a mountainous tile.
type MountainFixture struct{}

func (MountainFixture) ID() int                  { return -1 }
func (MountainFixture) Kind() string             { return "mountain" }
func (MountainFixture) Image() string            { return "mountain.png" }
func (MountainFixture) Tag() RenderTag           { return TagSynthetic }
func (MountainFixture) ShortDescription() string { return "Mountainous terrain" }

// TileContents lists everything on a tile: synthetic fixtures for terrain,
// rivers and mountains first, then the stored fixtures in map order.
func TileContents(m *Map, p Point) []Fixture {
	if !m.Contains(p) {
		return nil
	}
	var out []Fixture
	if t := m.BaseTerrain(p); t != TileNotVisible {
		out = append(out, TileTypeFixture{Type: t})
	}
	if r := m.Rivers(p); !r.Empty() {
		out = append(out, RiverFixture{Rivers: r})
	}
	if m.Mountainous(p) {
		out = append(out, MountainFixture{})
	}
	return append(out, m.Fixtures(p)...)
}
