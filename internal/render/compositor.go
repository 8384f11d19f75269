package render

import (
	"image"
	"image/color"
	"image/draw"

	xdraw "golang.org/x/image/draw"

	"github.com/Garsondee/Map-Viewer/internal/worldmap"
)

// TileSource is the read side of a map as the compositor needs it.
type TileSource interface {
	Version() int
	BaseTerrain(p worldmap.Point) worldmap.TileType
	Rivers(p worldmap.Point) worldmap.DirectionSet
	Roads(p worldmap.Point) worldmap.DirectionSet
	Mountainous(p worldmap.Point) bool
	Fixtures(p worldmap.Point) []worldmap.Fixture
	Bookmarked(p worldmap.Point) bool
}

// Compositor draws whole tiles: background, rivers, roads, the top
// fixture, the bookmark marker and a border.
type Compositor struct {
	cache  *ImageCache
	chain  *MatcherChain
	scaler xdraw.Scaler
}

// NewCompositor draws with icons from cache in the order given by chain.
func NewCompositor(cache *ImageCache, chain *MatcherChain) *Compositor {
	return &Compositor{
		cache:  cache,
		chain:  chain,
		scaler: xdraw.NearestNeighbor,
	}
}

func (c *Compositor) Cache() *ImageCache   { return c.cache }
func (c *Compositor) Chain() *MatcherChain { return c.chain }

// SetScaler changes how icons are resized, e.g. to xdraw.ApproxBiLinear for
// smooth output at large zoom.
func (c *Compositor) SetScaler(s xdraw.Scaler) { c.scaler = s }

// TopFixture returns the fixture drawn on top of the tile at p.
func (c *Compositor) TopFixture(src TileSource, p worldmap.Point) (worldmap.Fixture, bool) {
	drawable := c.chain.Drawable(src.Fixtures(p))
	if len(drawable) == 0 {
		return nil, false
	}
	return drawable[0], true
}

// TileColor returns the background colour of the tile at p.
func (c *Compositor) TileColor(src TileSource, p worldmap.Point) color.Color {
	return c.background(src, p, c.chain.Drawable(src.Fixtures(p)))
}

// background picks, in order: the tint of the first terrain-like fixture
// under the top one that is not the same kind, the mountain tint, the
// terrain colour.
func (c *Compositor) background(src TileSource, p worldmap.Point, drawable []worldmap.Fixture) color.Color {
	if len(drawable) > 1 {
		top := drawable[0]
		for _, f := range drawable[1:] {
			if f.Tag() != worldmap.TagTerrainLike || f.Kind() == top.Kind() {
				continue
			}
			if tint, ok := KindTint(f.Kind()); ok {
				return tint
			}
		}
	}
	if src.Mountainous(p) {
		return MountainTint
	}
	return TerrainColor(src.Version(), src.BaseTerrain(p))
}

// DrawTile composites the tile at p into dst as a size x size square with
// its top-left corner at origin.
func (c *Compositor) DrawTile(dst draw.Image, src TileSource, p worldmap.Point, origin image.Point, size int) {
	if size <= 0 {
		return
	}
	rect := image.Rectangle{Min: origin, Max: origin.Add(image.Pt(size, size))}
	drawable := c.chain.Drawable(src.Fixtures(p))

	bg := c.background(src, p, drawable)
	draw.Draw(dst, rect, image.NewUniform(bg), image.Point{}, draw.Src)

	for _, d := range src.Rivers(p).List() {
		c.icon(dst, rect, "river_"+d.String()+".png")
	}
	for _, d := range src.Roads(p).List() {
		c.icon(dst, rect, "road_"+d.String()+".png")
	}

	switch {
	case len(drawable) > 0:
		c.icon(dst, rect, drawable[0].Image())
	case src.Mountainous(p):
		c.icon(dst, rect, worldmap.MountainFixture{}.Image())
	}

	if src.Bookmarked(p) {
		c.icon(dst, rect, "bookmark.png")
	}
	drawBorder(dst, rect, BorderColor)
}

// DrawRegion draws every tile in tiles using origin to place each one.
func (c *Compositor) DrawRegion(dst draw.Image, src TileSource, tiles []worldmap.Point, origin func(worldmap.Point) image.Point, size int) {
	for _, p := range tiles {
		c.DrawTile(dst, src, p, origin(p), size)
	}
}

func (c *Compositor) icon(dst draw.Image, rect image.Rectangle, name string) {
	img := c.cache.Image(name)
	c.scaler.Scale(dst, rect, img, img.Bounds(), draw.Over, nil)
}

func drawBorder(dst draw.Image, r image.Rectangle, col color.Color) {
	u := image.NewUniform(col)
	edges := []image.Rectangle{
		image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+1),
		image.Rect(r.Min.X, r.Max.Y-1, r.Max.X, r.Max.Y),
		image.Rect(r.Min.X, r.Min.Y, r.Min.X+1, r.Max.Y),
		image.Rect(r.Max.X-1, r.Min.Y, r.Max.X, r.Max.Y),
	}
	for _, e := range edges {
		draw.Draw(dst, e, u, image.Point{}, draw.Src)
	}
}
