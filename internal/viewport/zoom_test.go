package viewport

import (
	"errors"
	"testing"
)

func TestTileSize(t *testing.T) {
	cases := []struct {
		version, zoom, want int
	}{
		{1, 8, 16},
		{2, 8, 24},
		{1, 1, 2},
		{2, 32, 96},
	}
	for _, tc := range cases {
		got, err := TileSize(tc.version, tc.zoom)
		if err != nil {
			t.Fatalf("TileSize(%d, %d): %v", tc.version, tc.zoom, err)
		}
		if got != tc.want {
			t.Fatalf("TileSize(%d, %d)=%d, want %d", tc.version, tc.zoom, got, tc.want)
		}
	}
}

func TestTileSize_UnsupportedVersion(t *testing.T) {
	for _, v := range []int{0, 3, -1} {
		if _, err := TileSize(v, DefaultZoom); !errors.Is(err, ErrUnsupportedVersion) {
			t.Fatalf("version %d: err=%v, want ErrUnsupportedVersion", v, err)
		}
	}
}

func TestClampZoom(t *testing.T) {
	if clampZoom(0) != MinZoom || clampZoom(33) != MaxZoom || clampZoom(12) != 12 {
		t.Fatal("clampZoom does not bound to [MinZoom, MaxZoom]")
	}
}
