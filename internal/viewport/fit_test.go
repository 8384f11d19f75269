package viewport

import (
	"testing"

	"github.com/Garsondee/Map-Viewer/internal/worldmap"
)

func TestFixVisibility_Scenarios(t *testing.T) {
	cases := []struct {
		name           string
		sel            int
		lo, hi         int
		mapDim         int
		wantLo, wantHi int
	}{
		{"inside", 15, 10, 19, 60, 10, 19},
		{"slide forward", 22, 10, 19, 60, 13, 22},
		{"slide back", 6, 10, 19, 60, 6, 15},
		{"slide at jump limit", 24, 10, 19, 60, 15, 24},
		{"snap to start", 3, 10, 19, 60, 0, 9},
		{"snap to end", 55, 10, 19, 60, 50, 59},
		{"centre", 25, 10, 19, 60, 20, 29},
		{"centre odd extent", 30, 0, 8, 60, 26, 34},
		{"extent exceeds map", 3, 0, 99, 60, 0, 59},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			dims := NewVisibleDimensions(tc.lo, tc.hi, 0, 9)
			got := FixVisibility(worldmap.Pt(tc.sel, 0), dims, tc.mapDim, 60)
			if got.MinRow() != tc.wantLo || got.MaxRow() != tc.wantHi {
				t.Fatalf("rows=[%d..%d], want [%d..%d]", got.MinRow(), got.MaxRow(), tc.wantLo, tc.wantHi)
			}
			if got.MinCol() != 0 || got.MaxCol() != 9 {
				t.Fatalf("columns changed: %s", got)
			}
		})
	}
}

func TestFixVisibility_InvalidSelectionLeavesWindow(t *testing.T) {
	dims := NewVisibleDimensions(10, 19, 20, 29)
	got := FixVisibility(worldmap.InvalidPoint, dims, 60, 60)
	if got != dims {
		t.Fatalf("got %s, want %s", got, dims)
	}
}

func TestFixVisibility_AxesIndependent(t *testing.T) {
	dims := NewVisibleDimensions(10, 19, 10, 19)
	got := FixVisibility(worldmap.Pt(15, 40), dims, 60, 60)
	if got.MinRow() != 10 || got.MaxRow() != 19 {
		t.Fatalf("row axis moved: %s", got)
	}
	if got.MinCol() != 35 || got.MaxCol() != 44 {
		t.Fatalf("cols=[%d..%d], want [35..44]", got.MinCol(), got.MaxCol())
	}
}

func TestFixVisibility_AlwaysContainsSelection(t *testing.T) {
	const mapDim = 37
	for _, extent := range []int{1, 4, 9, 10, 36, 37} {
		for start := 0; start+extent <= mapDim; start++ {
			for sel := 0; sel < mapDim; sel++ {
				dims := NewVisibleDimensions(start, start+extent-1, 0, 0)
				got := FixVisibility(worldmap.Pt(sel, 0), dims, mapDim, 1)
				if !got.ContainsRow(sel) {
					t.Fatalf("extent %d start %d sel %d: %s misses selection", extent, start, sel, got)
				}
				if got.MinRow() < 0 || got.MaxRow() >= mapDim {
					t.Fatalf("extent %d start %d sel %d: %s leaves the map", extent, start, sel, got)
				}
				if got.Height() != extent {
					t.Fatalf("extent %d start %d sel %d: height %d", extent, start, sel, got.Height())
				}
			}
		}
	}
}

func TestFixVisibility_EmptyMap(t *testing.T) {
	got := FixVisibility(worldmap.Pt(0, 0), NewVisibleDimensions(0, 9, 0, 9), 0, 0)
	if got.MinRow() != 0 || got.MaxRow() != 0 || got.MinCol() != 0 || got.MaxCol() != 0 {
		t.Fatalf("got %s on empty map", got)
	}
}

func TestNewVisibleDimensions_Normalises(t *testing.T) {
	d := NewVisibleDimensions(5, 2, 7, 1)
	if d.MaxRow() != 5 || d.MaxCol() != 7 {
		t.Fatalf("got %s, want max raised to min", d)
	}
	if d.Height() != 1 || d.Width() != 1 {
		t.Fatalf("size %dx%d, want 1x1", d.Height(), d.Width())
	}
	full := FullMap(20, 30)
	if full.Height() != 20 || full.Width() != 30 || !full.Contains(worldmap.Pt(19, 29)) {
		t.Fatalf("full map window %s", full)
	}
}
