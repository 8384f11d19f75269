package worldmap

import "testing"

func TestNewMap_DefaultNotVisible(t *testing.T) {
	m := New(8, 10, 2)
	if m.Rows() != 8 || m.Cols() != 10 {
		t.Fatalf("expected 8x10, got %dx%d", m.Rows(), m.Cols())
	}
	for row := 0; row < m.Rows(); row++ {
		for col := 0; col < m.Cols(); col++ {
			p := Pt(row, col)
			if tt := m.BaseTerrain(p); tt != TileNotVisible {
				t.Fatalf("tile %v terrain=%s, want not visible", p, tt)
			}
			if len(m.Fixtures(p)) != 0 {
				t.Fatalf("tile %v should have no fixtures", p)
			}
		}
	}
}

func TestMap_RiversAndRoads(t *testing.T) {
	m := New(5, 5, 2)
	p := Pt(2, 2)
	m.AddRiver(p, North)
	m.AddRiver(p, Lake)
	m.AddRoad(p, East)
	m.AddRoad(p, Lake) // ignored

	if !m.Rivers(p).Has(North) || !m.Rivers(p).Has(Lake) {
		t.Fatalf("rivers=%s, want north+lake", m.Rivers(p))
	}
	if m.Roads(p).Has(Lake) {
		t.Fatal("lake is not a road direction")
	}
	if got := m.Roads(p).List(); len(got) != 1 || got[0] != East {
		t.Fatalf("roads=%v, want [east]", got)
	}
	m.RemoveRiver(p, North)
	if m.Rivers(p).Has(North) {
		t.Fatal("north river should be removed")
	}
}

func TestMap_FixtureOrderPreserved(t *testing.T) {
	m := New(3, 3, 2)
	p := Pt(1, 1)
	a := NewForest(m.NextID(), "pine", false)
	b := NewHill(m.NextID())
	c := NewAnimal(m.NextID(), "deer", false)
	m.AddFixture(p, a)
	m.AddFixture(p, b)
	m.AddFixture(p, c)

	got := m.Fixtures(p)
	if len(got) != 3 || got[0] != Fixture(a) || got[1] != Fixture(b) || got[2] != Fixture(c) {
		t.Fatalf("fixtures out of insertion order: %v", got)
	}
	if !m.RemoveFixture(p, b.ID()) {
		t.Fatal("expected hill to be removed")
	}
	got = m.Fixtures(p)
	if len(got) != 2 || got[1] != Fixture(c) {
		t.Fatalf("after removal got %v", got)
	}
	if m.RemoveFixture(p, 999) {
		t.Fatal("removing unknown id should report false")
	}
}

func TestMap_MountainousFormatOneTile(t *testing.T) {
	m := New(2, 2, 1)
	m.SetBaseTerrain(Pt(0, 0), TileMountain)
	if !m.Mountainous(Pt(0, 0)) {
		t.Fatal("format-1 mountain tile should count as mountainous")
	}
	m.SetMountainous(Pt(1, 1), true)
	if !m.Mountainous(Pt(1, 1)) {
		t.Fatal("mountain flag should be set")
	}
}

func TestMap_Bookmarks(t *testing.T) {
	m := New(4, 4, 2)
	m.SetBookmark(Pt(1, 2), true)
	if !m.Bookmarked(Pt(1, 2)) || m.BookmarkCount() != 1 {
		t.Fatal("bookmark should be set")
	}
	m.SetBookmark(Pt(9, 9), true) // out of bounds, ignored
	if m.BookmarkCount() != 1 {
		t.Fatal("out-of-bounds bookmark should be ignored")
	}
	m.SetBookmark(Pt(1, 2), false)
	if m.Bookmarked(Pt(1, 2)) {
		t.Fatal("bookmark should be cleared")
	}
}

func TestMap_OutOfBounds(t *testing.T) {
	m := New(3, 3, 2)
	if m.At(Pt(-1, 0)) != nil {
		t.Fatal("out of bounds At should return nil")
	}
	if m.Contains(Pt(3, 0)) {
		t.Fatal("row 3 is outside a 3-row map")
	}
	// Should not panic.
	m.SetBaseTerrain(Pt(99, 99), TilePlains)
	m.AddFixture(Pt(-1, -1), NewHill(1))
	m.AddRiver(Pt(5, 5), North)
	if m.Fixtures(Pt(-1, -1)) != nil {
		t.Fatal("out of bounds fixtures should be nil")
	}
}

func TestTileContents_SyntheticFirst(t *testing.T) {
	m := New(3, 3, 2)
	p := Pt(0, 1)
	m.SetBaseTerrain(p, TilePlains)
	m.AddRiver(p, West)
	m.SetMountainous(p, true)
	f := NewForest(m.NextID(), "oak", false)
	m.AddFixture(p, f)

	got := TileContents(m, p)
	if len(got) != 4 {
		t.Fatalf("expected 4 entries, got %d", len(got))
	}
	if got[0].Kind() != "terrain" || got[1].Kind() != "river" || got[2].Kind() != "mountain" {
		t.Fatalf("synthetic fixtures out of order: %s %s %s", got[0].Kind(), got[1].Kind(), got[2].Kind())
	}
	for _, s := range got[:3] {
		if s.Tag() != TagSynthetic {
			t.Fatalf("%s should be tagged synthetic", s.Kind())
		}
	}
	if got[3] != Fixture(f) {
		t.Fatal("stored fixture should follow synthetic ones")
	}
	if len(m.Fixtures(p)) != 1 {
		t.Fatal("synthetic fixtures must not be stored")
	}
}

func TestTileType_SupportedBy(t *testing.T) {
	tests := []struct {
		tt      TileType
		version int
		want    bool
	}{
		{TileMountain, 1, true},
		{TileMountain, 2, false},
		{TileSteppe, 1, false},
		{TileSteppe, 2, true},
		{TilePlains, 1, true},
		{TilePlains, 2, true},
		{TilePlains, 3, false},
	}
	for _, tc := range tests {
		if got := tc.tt.SupportedBy(tc.version); got != tc.want {
			t.Errorf("%s.SupportedBy(%d) = %v, want %v", tc.tt, tc.version, got, tc.want)
		}
	}
}

func TestTileType_ImageName(t *testing.T) {
	if got := TileBorealForest.ImageName(); got != "tile_boreal_forest.png" {
		t.Fatalf("ImageName = %q", got)
	}
}
