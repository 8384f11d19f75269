// Package render turns map tiles into pixels: it orders and filters the
// fixtures on a tile, loads and caches their icons, and composites one image
// per tile.
package render

import (
	"image/color"

	"golang.org/x/image/colornames"

	"github.com/Garsondee/Map-Viewer/internal/worldmap"
)

// terrainPalettes holds the background colour of each tile type per map
// format version.
var terrainPalettes = map[int]map[worldmap.TileType]color.RGBA{
	1: {
		worldmap.TileNotVisible:      colornames.Black,
		worldmap.TileTundra:          colornames.Lightsteelblue,
		worldmap.TileDesert:          colornames.Sandybrown,
		worldmap.TileMountain:        colornames.Dimgray,
		worldmap.TileBorealForest:    colornames.Seagreen,
		worldmap.TileTemperateForest: colornames.Forestgreen,
		worldmap.TileOcean:           colornames.Royalblue,
		worldmap.TilePlains:          colornames.Yellowgreen,
		worldmap.TileJungle:          colornames.Darkgreen,
	},
	2: {
		worldmap.TileNotVisible: colornames.Black,
		worldmap.TileTundra:     colornames.Lightcyan,
		worldmap.TileDesert:     colornames.Khaki,
		worldmap.TileOcean:      colornames.Steelblue,
		worldmap.TilePlains:     colornames.Darkkhaki,
		worldmap.TileJungle:     colornames.Darkgreen,
		worldmap.TileSteppe:     colornames.Wheat,
		worldmap.TileSwamp:      colornames.Darkslategray,
	},
}

// kindTints is the background tint a terrain-like fixture gives its tile
// when something else is drawn on top of it.
var kindTints = map[string]color.RGBA{
	"forest": colornames.Forestgreen,
	"grove":  colornames.Olivedrab,
	"meadow": colornames.Yellowgreen,
	"shrub":  colornames.Darkolivegreen,
	"hill":   colornames.Peru,
	"oasis":  colornames.Mediumaquamarine,
	"ground": colornames.Tan,
}

// MountainTint is the background of a mountainous tile with no terrain-like
// fixture to take its colour from.
var MountainTint color.Color = colornames.Slategray

// BorderColor outlines every tile.
var BorderColor color.Color = colornames.Black

// iconColors gives the built-in icon provider a colour per fixture kind and
// overlay.
var iconColors = map[string]color.RGBA{
	"unit":     colornames.Crimson,
	"town":     colornames.Gold,
	"fortress": colornames.Goldenrod,
	"village":  colornames.Sienna,
	"mine":     colornames.Saddlebrown,
	"mineral":  colornames.Silver,
	"stone":    colornames.Gray,
	"cache":    colornames.Orange,
	"animal":   colornames.Maroon,
	"mountain": colornames.Snow,
	"river":    colornames.Deepskyblue,
	"road":     colornames.Burlywood,
	"bookmark": colornames.Magenta,
}

// TerrainColor returns the background colour of a tile type. Types a
// version does not define, and unknown versions, come out black.
func TerrainColor(version int, t worldmap.TileType) color.Color {
	if c, ok := terrainPalettes[version][t]; ok {
		return c
	}
	return colornames.Black
}

// KindTint returns the tint for a terrain-like fixture kind.
func KindTint(kind string) (color.Color, bool) {
	c, ok := kindTints[kind]
	return c, ok
}

// iconColor returns the colour for a tile type's synthetic icon, preferring
// the newer palette.
func iconColor(t worldmap.TileType) color.Color {
	for _, v := range []int{2, 1} {
		if c, ok := terrainPalettes[v][t]; ok {
			return c
		}
	}
	return colornames.Black
}
