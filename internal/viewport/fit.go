package viewport

import "github.com/Garsondee/Map-Viewer/internal/worldmap"

// JumpInterval is the largest out-of-window distance that pans the window by
// exactly that distance. Anything further snaps to an edge or recentres.
const JumpInterval = 5

// FixVisibility returns a window that contains sel, changing each axis only
// when sel falls outside it. An invalid or off-map selection leaves the
// window as it is (apart from clamping it to the map).
func FixVisibility(sel worldmap.Point, dims VisibleDimensions, mapRows, mapCols int) VisibleDimensions {
	minRow, maxRow := dims.minRow, dims.maxRow
	minCol, maxCol := dims.minCol, dims.maxCol
	if sel.Row >= 0 && sel.Row < mapRows {
		minRow, maxRow = fixAxis(sel.Row, minRow, maxRow, mapRows)
	}
	if sel.Col >= 0 && sel.Col < mapCols {
		minCol, maxCol = fixAxis(sel.Col, minCol, maxCol, mapCols)
	}
	minRow, maxRow = clampAxis(minRow, maxRow, mapRows)
	minCol, maxCol = clampAxis(minCol, maxCol, mapCols)
	return NewVisibleDimensions(minRow, maxRow, minCol, maxCol)
}

// fixAxis applies the fitting rules to one axis.
func fixAxis(coord, lo, hi, mapDim int) (int, int) {
	extent := hi - lo + 1
	switch {
	case coord >= lo && coord <= hi:
		return lo, hi
	case coord < lo && lo-coord <= JumpInterval:
		off := coord - lo
		return lo + off, hi + off
	case coord > hi && coord-hi <= JumpInterval:
		off := coord - hi
		return lo + off, hi + off
	case coord < extent:
		return 0, extent - 1
	case coord >= mapDim-extent:
		return mapDim - extent, mapDim - 1
	default:
		// Truncating division: odd/even extents are not pixel-symmetric.
		start := coord - extent/2
		return start, start + extent - 1
	}
}

// clampAxis shifts [lo, hi] into [0, mapDim) keeping its extent, shrinking
// it to the map when it does not fit.
func clampAxis(lo, hi, mapDim int) (int, int) {
	if mapDim <= 0 {
		return 0, 0
	}
	extent := hi - lo + 1
	if extent >= mapDim {
		return 0, mapDim - 1
	}
	if lo < 0 {
		lo, hi = 0, extent-1
	}
	if hi >= mapDim {
		lo, hi = mapDim-extent, mapDim-1
	}
	return lo, hi
}
