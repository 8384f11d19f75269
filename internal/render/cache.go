package render

import (
	"errors"
	"image"
	"image/color"
	"image/draw"
	"sync"

	log "github.com/sirupsen/logrus"
	"golang.org/x/image/colornames"

	"github.com/Garsondee/Map-Viewer/internal/worldmap"
)

// ImageCache memoises icons by filename. Misses are memoised as well, and
// each failing filename is logged once. Lookups that fail return a shared
// fallback image so drawing never stops.
//
// Terrain icons ("tile_*.png") are generated once up front and never go
// through the provider.
type ImageCache struct {
	mu        sync.Mutex
	provider  ImageProvider
	images    map[string]image.Image // nil value: known miss
	reported  map[string]bool
	tileIcons map[string]image.Image
	fallback  image.Image
	log       *log.Entry
}

// NewImageCache creates a cache in front of p.
func NewImageCache(p ImageProvider) *ImageCache {
	c := &ImageCache{
		provider:  p,
		images:    make(map[string]image.Image),
		reported:  make(map[string]bool),
		tileIcons: make(map[string]image.Image),
		fallback:  fallbackImage(16),
		log:       log.WithField("component", "image-cache"),
	}
	for _, t := range worldmap.TileTypes() {
		c.tileIcons[t.ImageName()] = solidImage(16, iconColor(t))
	}
	return c
}

// SetLogger replaces the cache's log entry.
func (c *ImageCache) SetLogger(l *log.Entry) { c.log = l }

// Fallback returns the image used for every missing icon.
func (c *ImageCache) Fallback() image.Image { return c.fallback }

// IsFallback reports whether img is the shared fallback image.
func (c *ImageCache) IsFallback(img image.Image) bool { return img == c.fallback }

// Image returns the icon called name, loading it on first use.
func (c *ImageCache) Image(name string) image.Image {
	if img, ok := c.tileIcons[name]; ok {
		return img
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if img, ok := c.images[name]; ok {
		if img == nil {
			return c.fallback
		}
		return img
	}

	img, err := c.provider.Image(name)
	if err != nil {
		c.images[name] = nil
		c.report(name, err)
		return c.fallback
	}
	c.images[name] = img
	return img
}

func (c *ImageCache) report(name string, err error) {
	if c.reported[name] {
		return
	}
	c.reported[name] = true
	entry := c.log.WithField("image", name)
	if errors.Is(err, ErrImageNotFound) {
		entry.Warn("image not found, using fallback")
		return
	}
	entry.WithError(err).Error("cannot load image, using fallback")
}

// Invalidate forgets name so the next lookup goes back to the provider.
func (c *ImageCache) Invalidate(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.images, name)
	delete(c.reported, name)
}

// InvalidateAll empties the cache.
func (c *ImageCache) InvalidateAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	clear(c.images)
	clear(c.reported)
}

func solidImage(size int, c color.Color) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.Draw(img, img.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
	return img
}

// fallbackImage is a magenta and black checkerboard.
func fallbackImage(size int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	cell := max(size/4, 1)
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			c := colornames.Black
			if (x/cell+y/cell)%2 == 0 {
				c = colornames.Magenta
			}
			img.SetRGBA(x, y, c)
		}
	}
	return img
}
