package viewport

import (
	"image"
	"testing"

	"github.com/Garsondee/Map-Viewer/internal/worldmap"
)

func TestPointAt(t *testing.T) {
	dims := NewVisibleDimensions(10, 19, 20, 29)
	cases := []struct {
		x, y int
		want worldmap.Point
	}{
		{0, 0, worldmap.Pt(10, 20)},
		{23, 0, worldmap.Pt(10, 20)},
		{24, 0, worldmap.Pt(10, 21)},
		{50, 49, worldmap.Pt(12, 22)},
		{-1, 5, worldmap.InvalidPoint},
		{24 * 10, 0, worldmap.InvalidPoint},
	}
	for _, tc := range cases {
		if got := PointAt(tc.x, tc.y, dims, 24); got != tc.want {
			t.Fatalf("PointAt(%d, %d)=%v, want %v", tc.x, tc.y, got, tc.want)
		}
	}
}

func TestTileOrigin_RoundTrip(t *testing.T) {
	dims := NewVisibleDimensions(3, 12, 7, 16)
	for row := dims.MinRow(); row <= dims.MaxRow(); row++ {
		for col := dims.MinCol(); col <= dims.MaxCol(); col++ {
			p := worldmap.Pt(row, col)
			o := TileOrigin(p, dims, 16)
			if got := PointAt(o.X, o.Y, dims, 16); got != p {
				t.Fatalf("origin %v of %v maps back to %v", o, p, got)
			}
		}
	}
}

func TestTilesIn(t *testing.T) {
	dims := NewVisibleDimensions(0, 9, 0, 9)
	got := TilesIn(image.Rect(10, 10, 30, 20), dims, 10)
	want := []worldmap.Point{worldmap.Pt(1, 1), worldmap.Pt(1, 2)}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
	if n := len(TilesIn(image.Rect(0, 0, 1000, 1000), dims, 10)); n != 100 {
		t.Fatalf("oversized region gave %d tiles, want 100", n)
	}
	if TilesIn(image.Rectangle{}, dims, 10) != nil {
		t.Fatal("empty region should give no tiles")
	}
}
