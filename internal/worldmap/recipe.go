package worldmap

import (
	"errors"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// ErrBadRecipe is returned for recipes that cannot produce a map.
var ErrBadRecipe = errors.New("invalid map recipe")

// Recipe describes how to generate a map. Recipes are small TOML files:
//
//	name    = "demo"
//	rows    = 120
//	cols    = 160
//	version = 2
//	seed    = 42
//	players = ["Alice", "Bob"]
type Recipe struct {
	Name    string   `toml:"name"`
	Rows    int      `toml:"rows"`
	Cols    int      `toml:"cols"`
	Version int      `toml:"version"`
	Seed    int64    `toml:"seed"`
	Players []string `toml:"players"`
	Roads   int      `toml:"roads"`
	Rivers  int      `toml:"rivers"`
}

// DefaultRecipe is used when no recipe file is configured.
func DefaultRecipe() Recipe {
	return Recipe{
		Name:    "default",
		Rows:    120,
		Cols:    160,
		Version: 2,
		Seed:    42,
		Players: []string{"Player", "Rival"},
		Roads:   4,
		Rivers:  6,
	}
}

// Validate checks that the recipe can be generated.
func (r Recipe) Validate() error {
	if r.Rows <= 0 || r.Cols <= 0 {
		return fmt.Errorf("%w: size %dx%d", ErrBadRecipe, r.Rows, r.Cols)
	}
	if !SupportedVersion(r.Version) {
		return fmt.Errorf("%w: unsupported format version %d", ErrBadRecipe, r.Version)
	}
	if r.Roads < 0 || r.Rivers < 0 {
		return fmt.Errorf("%w: negative road or river count", ErrBadRecipe)
	}
	return nil
}

// ParseRecipe decodes a TOML recipe. Missing fields take DefaultRecipe values.
func ParseRecipe(data []byte) (Recipe, error) {
	r := DefaultRecipe()
	if err := toml.Unmarshal(data, &r); err != nil {
		return Recipe{}, fmt.Errorf("parsing recipe: %w", err)
	}
	return r, r.Validate()
}

// LoadRecipe reads and parses a recipe file.
func LoadRecipe(path string) (Recipe, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Recipe{}, fmt.Errorf("reading recipe %s: %w", path, err)
	}
	r, err := ParseRecipe(data)
	if err != nil {
		return Recipe{}, fmt.Errorf("recipe %s: %w", path, err)
	}
	return r, nil
}

// LoadMap reads a recipe file and generates its map.
func LoadMap(path string) (*Map, error) {
	r, err := LoadRecipe(path)
	if err != nil {
		return nil, err
	}
	return Generate(r)
}
