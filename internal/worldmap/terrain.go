package worldmap

import "strings"

// TileType identifies the base terrain of a tile.
type TileType uint8

const (
	TileNotVisible      TileType = iota // Unexplored / unknown
	TileTundra                          // Frozen plain
	TileDesert                          // Sand or rock waste
	TileMountain                        // Mountain (format 1 only; format 2 uses a flag)
	TileBorealForest                    // Conifer forest (format 1 only)
	TileTemperateForest                 // Broadleaf forest (format 1 only)
	TileOcean                           // Open water
	TilePlains                          // Open grassland
	TileJungle                          // Tropical forest
	TileSteppe                          // Dry grassland (format 2 only)
	TileSwamp                           // Wetland (format 2 only)
	tileTypeCount                       // sentinel
)

var tileTypeNames = [tileTypeCount]string{
	TileNotVisible:      "not visible",
	TileTundra:          "tundra",
	TileDesert:          "desert",
	TileMountain:        "mountain",
	TileBorealForest:    "boreal forest",
	TileTemperateForest: "temperate forest",
	TileOcean:           "ocean",
	TilePlains:          "plains",
	TileJungle:          "jungle",
	TileSteppe:          "steppe",
	TileSwamp:           "swamp",
}

func (t TileType) String() string {
	if t >= tileTypeCount {
		return "unknown"
	}
	return tileTypeNames[t]
}

// ImageName returns the icon filename used when a tile type is listed as a
// synthetic fixture, e.g. "tile_boreal_forest.png".
func (t TileType) ImageName() string {
	return "tile_" + strings.ReplaceAll(t.String(), " ", "_") + ".png"
}

// TileTypes returns every tile type in declaration order.
func TileTypes() []TileType {
	out := make([]TileType, 0, tileTypeCount)
	for t := TileType(0); t < tileTypeCount; t++ {
		out = append(out, t)
	}
	return out
}

// SupportedBy reports whether the tile type exists in the given map format.
func (t TileType) SupportedBy(version int) bool {
	switch version {
	case 1:
		return t != TileSteppe && t != TileSwamp && t < tileTypeCount
	case 2:
		return t != TileMountain && t != TileBorealForest && t != TileTemperateForest && t < tileTypeCount
	default:
		return false
	}
}

// SupportedVersion reports whether a map format version is known.
func SupportedVersion(version int) bool {
	return version == 1 || version == 2
}

// Direction is a single river or road direction out of a tile.
type Direction uint8

const (
	North Direction = 1 << iota
	East
	South
	West
	Lake // rivers only: the tile holds a lake
)

// allDirections lists directions in drawing order.
var allDirections = []Direction{North, East, South, West, Lake}

func (d Direction) String() string {
	switch d {
	case North:
		return "north"
	case East:
		return "east"
	case South:
		return "south"
	case West:
		return "west"
	case Lake:
		return "lake"
	default:
		return "unknown"
	}
}

// DirectionSet is a bitset of directions.
type DirectionSet uint8

// Has reports whether d is in the set.
func (s DirectionSet) Has(d Direction) bool {
	return s&DirectionSet(d) != 0
}

// With returns the set with d added.
func (s DirectionSet) With(d Direction) DirectionSet {
	return s | DirectionSet(d)
}

// Without returns the set with d removed.
func (s DirectionSet) Without(d Direction) DirectionSet {
	return s &^ DirectionSet(d)
}

// Empty reports whether no direction is set.
func (s DirectionSet) Empty() bool {
	return s == 0
}

// List returns the set's directions in drawing order.
func (s DirectionSet) List() []Direction {
	var out []Direction
	for _, d := range allDirections {
		if s.Has(d) {
			out = append(out, d)
		}
	}
	return out
}

func (s DirectionSet) String() string {
	if s.Empty() {
		return "none"
	}
	parts := make([]string, 0, 5)
	for _, d := range s.List() {
		parts = append(parts, d.String())
	}
	return strings.Join(parts, "+")
}
