package viewport

import (
	"image"

	"github.com/Garsondee/Map-Viewer/internal/worldmap"
)

// PointAt maps a pixel position on the canvas to the tile under it, given the
// visible window and tile size. Positions left of or above the canvas, or past
// the window, give InvalidPoint.
func PointAt(x, y int, dims VisibleDimensions, tileSize int) worldmap.Point {
	if x < 0 || y < 0 || tileSize <= 0 {
		return worldmap.InvalidPoint
	}
	p := worldmap.Pt(dims.minRow+y/tileSize, dims.minCol+x/tileSize)
	if !dims.Contains(p) {
		return worldmap.InvalidPoint
	}
	return p
}

// TileOrigin returns the canvas pixel of the top-left corner of p.
func TileOrigin(p worldmap.Point, dims VisibleDimensions, tileSize int) image.Point {
	return image.Pt((p.Col-dims.minCol)*tileSize, (p.Row-dims.minRow)*tileSize)
}

// TilesIn lists, in row-major order, the visible tiles that overlap region.
func TilesIn(region image.Rectangle, dims VisibleDimensions, tileSize int) []worldmap.Point {
	if tileSize <= 0 || region.Empty() || region.Max.X <= 0 || region.Max.Y <= 0 {
		return nil
	}
	minRow := dims.minRow + max(region.Min.Y, 0)/tileSize
	minCol := dims.minCol + max(region.Min.X, 0)/tileSize
	maxRow := min(dims.maxRow, dims.minRow+(region.Max.Y-1)/tileSize)
	maxCol := min(dims.maxCol, dims.minCol+(region.Max.X-1)/tileSize)
	var out []worldmap.Point
	for row := minRow; row <= maxRow; row++ {
		for col := minCol; col <= maxCol; col++ {
			out = append(out, worldmap.Pt(row, col))
		}
	}
	return out
}
