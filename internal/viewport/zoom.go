package viewport

import (
	"errors"
	"fmt"
)

const (
	MinZoom     = 1
	MaxZoom     = 32
	DefaultZoom = 8
)

// ErrUnsupportedVersion is returned when asked to scale tiles for a map
// format version with no known scale factor.
var ErrUnsupportedVersion = errors.New("unsupported map format version")

// versionScale maps a map format version to its tile scale factor.
var versionScale = map[int]int{
	1: 2,
	2: 3,
}

// TileSize returns the tile edge in pixels for a zoom level and map format.
// Unknown versions are an error; they never fall back to a default.
func TileSize(version, zoom int) (int, error) {
	scale, ok := versionScale[version]
	if !ok {
		return 0, fmt.Errorf("%w: %d", ErrUnsupportedVersion, version)
	}
	return zoom * scale, nil
}

// clampZoom limits z to [MinZoom, MaxZoom].
func clampZoom(z int) int {
	if z < MinZoom {
		return MinZoom
	}
	if z > MaxZoom {
		return MaxZoom
	}
	return z
}
