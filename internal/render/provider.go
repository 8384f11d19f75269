package render

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io/fs"
	"strings"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// ErrImageNotFound is returned by providers that have no image of the
// requested name.
var ErrImageNotFound = errors.New("image not found")

// ImageProvider resolves an icon filename to an image.
type ImageProvider interface {
	Image(name string) (image.Image, error)
}

// DirProvider decodes images from a file system. PNG, GIF, JPEG, BMP, WebP
// and TIFF are recognised.
type DirProvider struct {
	fsys fs.FS
}

// NewDirProvider reads icons from fsys, usually os.DirFS(imagesDir).
func NewDirProvider(fsys fs.FS) *DirProvider {
	return &DirProvider{fsys: fsys}
}

func (p *DirProvider) Image(name string) (image.Image, error) {
	f, err := p.fsys.Open(name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrImageNotFound, name)
		}
		return nil, fmt.Errorf("open %s: %w", name, err)
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", name, err)
	}
	return img, nil
}

// ProviderChain asks each provider in turn. The first image wins; a real
// failure from an earlier provider is reported only if nobody has the image.
type ProviderChain []ImageProvider

func (c ProviderChain) Image(name string) (image.Image, error) {
	var firstErr error
	for _, p := range c {
		img, err := p.Image(name)
		if err == nil {
			return img, nil
		}
		if firstErr == nil && !errors.Is(err, ErrImageNotFound) {
			firstErr = err
		}
	}
	if firstErr != nil {
		return nil, firstErr
	}
	return nil, fmt.Errorf("%w: %s", ErrImageNotFound, name)
}

// BuiltinProvider draws simple procedural icons so the viewer works without
// an image directory.
type BuiltinProvider struct {
	Size int
}

// builtinShapes maps icon filenames to a shape and colour key.
var builtinShapes = map[string]struct {
	shape string
	key   string
}{
	"unit.png":      {"disc", "unit"},
	"town.png":      {"square", "town"},
	"fortress.png":  {"square", "fortress"},
	"village.png":   {"square", "village"},
	"mine.png":      {"triangle", "mine"},
	"mineral.png":   {"diamond", "mineral"},
	"stone.png":     {"diamond", "stone"},
	"cache.png":     {"square", "cache"},
	"animal.png":    {"disc", "animal"},
	"mountain.png":  {"triangle", "mountain"},
	"river.png":     {"diamond", "river"},
	"bookmark.png":  {"corner", "bookmark"},
	"trees.png":     {"triangle", "forest"},
	"grove.png":     {"disc", "grove"},
	"meadow.png":    {"dots", "meadow"},
	"shrub.png":     {"dots", "shrub"},
	"hill.png":      {"triangle", "hill"},
	"oasis.png":     {"disc", "oasis"},
	"expground.png": {"dots", "ground"},
}

func (p BuiltinProvider) Image(name string) (image.Image, error) {
	size := p.Size
	if size <= 0 {
		size = 16
	}
	if d, ok := overlayDirection(name, "river_"); ok {
		return drawSpoke(size, d, iconColors["river"]), nil
	}
	if d, ok := overlayDirection(name, "road_"); ok {
		return drawSpoke(size, d, iconColors["road"]), nil
	}
	spec, ok := builtinShapes[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrImageNotFound, name)
	}
	c, ok := iconColors[spec.key]
	if !ok {
		c = darken(kindTints[spec.key])
	}
	return drawShape(size, spec.shape, c), nil
}

// overlayDirection parses names like "river_north.png".
func overlayDirection(name, prefix string) (string, bool) {
	if !strings.HasPrefix(name, prefix) || !strings.HasSuffix(name, ".png") {
		return "", false
	}
	d := strings.TrimSuffix(strings.TrimPrefix(name, prefix), ".png")
	switch d {
	case "north", "east", "south", "west", "lake":
		return d, true
	}
	return "", false
}

func darken(c color.RGBA) color.RGBA {
	return color.RGBA{R: c.R / 2, G: c.G / 2, B: c.B / 2, A: 0xff}
}

func drawShape(size int, shape string, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	mid := size / 2
	r := size * 3 / 8
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			dx, dy := x-mid, y-mid
			var in bool
			switch shape {
			case "disc":
				in = dx*dx+dy*dy <= r*r
			case "square":
				in = abs(dx) <= r && abs(dy) <= r
			case "diamond":
				in = abs(dx)+abs(dy) <= r
			case "triangle":
				// apex at the top, base at the bottom
				in = dy >= -r && dy <= r && abs(dx)*2 <= dy+r
			case "dots":
				in = x%4 == 1 && y%4 == 1
			case "corner":
				in = x >= size-r && y < r && x-(size-r) >= y
			}
			if in {
				img.SetRGBA(x, y, c)
			}
		}
	}
	return img
}

// drawSpoke draws a line from the tile centre to one edge, or a pool in the
// centre for "lake".
func drawSpoke(size int, dir string, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	mid := size / 2
	w := max(size/8, 1)
	var rect image.Rectangle
	switch dir {
	case "north":
		rect = image.Rect(mid-w, 0, mid+w, mid+w)
	case "south":
		rect = image.Rect(mid-w, mid-w, mid+w, size)
	case "west":
		rect = image.Rect(0, mid-w, mid+w, mid+w)
	case "east":
		rect = image.Rect(mid-w, mid-w, size, mid+w)
	case "lake":
		rect = image.Rect(mid-size/4, mid-size/4, mid+size/4, mid+size/4)
	}
	draw.Draw(img, rect, image.NewUniform(c), image.Point{}, draw.Src)
	return img
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
