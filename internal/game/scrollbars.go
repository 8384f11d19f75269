package game

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/Garsondee/Map-Viewer/internal/viewport"
)

const (
	scrollbarThickness = 14
	minThumb           = 10
)

// scrollbar is the on-screen track of one range widget.
type scrollbar struct {
	axis  viewport.Axis
	track image.Rectangle
}

func (sb scrollbar) length() int {
	if sb.axis == viewport.AxisRows {
		return sb.track.Dy()
	}
	return sb.track.Dx()
}

// thumb returns the thumb rectangle for a widget state. The thumb covers
// Extent out of the Min..Max span and its position follows Value.
func (sb scrollbar) thumb(st viewport.RangeState) image.Rectangle {
	span := st.Max - st.Min
	length := sb.length()
	if span <= 0 || length <= 0 {
		return sb.track
	}
	size := max(minThumb, length*min(st.Extent, span)/span)
	size = min(size, length)
	pos := 0
	if span > 1 {
		pos = (length - size) * clampInt(st.Value-st.Min, 0, span-1) / (span - 1)
	}
	if sb.axis == viewport.AxisRows {
		return image.Rect(sb.track.Min.X, sb.track.Min.Y+pos, sb.track.Max.X, sb.track.Min.Y+pos+size)
	}
	return image.Rect(sb.track.Min.X+pos, sb.track.Min.Y, sb.track.Min.X+pos+size, sb.track.Max.Y)
}

// valueAt is the widget value whose thumb would be centred on (x, y).
func (sb scrollbar) valueAt(st viewport.RangeState, x, y int) int {
	span := st.Max - st.Min
	if span <= 1 {
		return st.Min
	}
	size := sb.thumb(st).Size()
	along, thumbLen := x-sb.track.Min.X, size.X
	if sb.axis == viewport.AxisRows {
		along, thumbLen = y-sb.track.Min.Y, size.Y
	}
	free := sb.length() - thumbLen
	if free <= 0 {
		return st.Min
	}
	off := along - thumbLen/2
	v := st.Min + (off*(span-1)+free/2)/free
	return clampInt(v, st.Min, st.Max-1)
}

func (sb scrollbar) contains(x, y int) bool {
	return image.Pt(x, y).In(sb.track)
}

func (sb scrollbar) draw(screen *ebiten.Image, st viewport.RangeState, active bool) {
	r := sb.track
	vector.FillRect(screen, float32(r.Min.X), float32(r.Min.Y), float32(r.Dx()), float32(r.Dy()), color.RGBA{R: 20, G: 24, B: 28, A: 255}, false)
	th := sb.thumb(st)
	c := color.RGBA{R: 90, G: 110, B: 120, A: 255}
	if active || st.Adjusting {
		c = color.RGBA{R: 140, G: 170, B: 180, A: 255}
	}
	vector.FillRect(screen, float32(th.Min.X+2), float32(th.Min.Y+2), float32(th.Dx()-4), float32(th.Dy()-4), c, false)
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
