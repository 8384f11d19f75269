// Package config loads the viewer's TOML configuration.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
	log "github.com/sirupsen/logrus"

	"github.com/Garsondee/Map-Viewer/internal/render"
	"github.com/Garsondee/Map-Viewer/internal/viewport"
	"github.com/Garsondee/Map-Viewer/internal/worldmap"
)

// ErrInvalid is returned for configuration values outside their range.
var ErrInvalid = errors.New("invalid configuration")

// Config is the whole configuration file. A minimal file looks like:
//
//	log_level = "debug"
//
//	[view]
//	images_dir = "./images"
//	watch_images = true
//
//	[[matchers]]
//	label = "My units"
//	expr  = 'Kind == "unit" && Current'
type Config struct {
	LogLevel string          `toml:"log_level"`
	Window   WindowConfig    `toml:"window"`
	View     ViewConfig      `toml:"view"`
	Map      MapConfig       `toml:"map"`
	Matchers []MatcherConfig `toml:"matchers"`
}

type WindowConfig struct {
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
	Title  string `toml:"title"`
}

type ViewConfig struct {
	DefaultZoom int    `toml:"default_zoom"`
	ImagesDir   string `toml:"images_dir"`
	WatchImages bool   `toml:"watch_images"`
	Smooth      bool   `toml:"smooth"` // bilinear icon scaling
}

type MapConfig struct {
	Recipe string `toml:"recipe"` // empty: worldmap.DefaultRecipe
}

// MatcherConfig is one entry of the fixture z-order. Entries are listed top
// first. Displayed defaults to true.
type MatcherConfig struct {
	Label     string `toml:"label"`
	Expr      string `toml:"expr"`
	Displayed *bool  `toml:"displayed"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		LogLevel: "info",
		Window: WindowConfig{
			Width:  1280,
			Height: 800,
			Title:  "Map Viewer",
		},
		View: ViewConfig{
			DefaultZoom: viewport.DefaultZoom,
		},
	}
}

// Parse decodes TOML over Default and validates the result.
func Parse(data []byte) (Config, error) {
	c := Default()
	if err := toml.Unmarshal(data, &c); err != nil {
		return Config{}, fmt.Errorf("parsing config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Load reads path. An empty path gives Default.
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config %s: %w", path, err)
	}
	c, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return c, nil
}

// Validate checks value ranges.
func (c Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("%w: window %dx%d", ErrInvalid, c.Window.Width, c.Window.Height)
	}
	if c.View.DefaultZoom < viewport.MinZoom || c.View.DefaultZoom > viewport.MaxZoom {
		return fmt.Errorf("%w: default_zoom %d outside [%d, %d]", ErrInvalid, c.View.DefaultZoom, viewport.MinZoom, viewport.MaxZoom)
	}
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	for i, m := range c.Matchers {
		if m.Expr == "" {
			return fmt.Errorf("%w: matcher %d (%q) has no expr", ErrInvalid, i, m.Label)
		}
	}
	return nil
}

// ApplyLogging sets the global logrus level.
func (c Config) ApplyLogging() error {
	lvl, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	log.SetLevel(lvl)
	return nil
}

// MatcherChain compiles the configured matchers, or returns the default
// chain when none are configured.
func (c Config) MatcherChain() (*render.MatcherChain, error) {
	if len(c.Matchers) == 0 {
		return render.DefaultMatcherChain(), nil
	}
	ms := make([]*render.Matcher, 0, len(c.Matchers))
	for _, mc := range c.Matchers {
		displayed := mc.Displayed == nil || *mc.Displayed
		label := mc.Label
		if label == "" {
			label = mc.Expr
		}
		m, err := render.CompileMatcher(label, mc.Expr, displayed)
		if err != nil {
			return nil, err
		}
		ms = append(ms, m)
	}
	return render.NewMatcherChain(ms...), nil
}

// Recipe returns the configured map recipe.
func (c Config) Recipe() (worldmap.Recipe, error) {
	if c.Map.Recipe == "" {
		return worldmap.DefaultRecipe(), nil
	}
	return worldmap.LoadRecipe(c.Map.Recipe)
}

// ImageProvider returns the icon source: the images directory if one is
// configured, backed by the built-in icons.
func (c Config) ImageProvider() render.ImageProvider {
	builtin := render.BuiltinProvider{Size: 32}
	if c.View.ImagesDir == "" {
		return builtin
	}
	return render.ProviderChain{render.NewDirProvider(os.DirFS(c.View.ImagesDir)), builtin}
}
