package worldmap

import (
	"errors"
	"math/rand"
	"testing"
)

func TestGenerate_Deterministic(t *testing.T) {
	r := DefaultRecipe()
	r.Rows, r.Cols = 40, 50
	a, err := Generate(r)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	b, err := Generate(r)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	for row := 0; row < r.Rows; row++ {
		for col := 0; col < r.Cols; col++ {
			p := Pt(row, col)
			if a.BaseTerrain(p) != b.BaseTerrain(p) || a.Rivers(p) != b.Rivers(p) || a.Roads(p) != b.Roads(p) {
				t.Fatalf("tile %v differs between runs", p)
			}
			if len(a.Fixtures(p)) != len(b.Fixtures(p)) {
				t.Fatalf("tile %v fixture count differs", p)
			}
		}
	}
}

func TestGenerate_TileTypesMatchVersion(t *testing.T) {
	for _, version := range []int{1, 2} {
		r := DefaultRecipe()
		r.Rows, r.Cols, r.Version = 30, 30, version
		m, err := Generate(r)
		if err != nil {
			t.Fatalf("Generate v%d: %v", version, err)
		}
		for row := 0; row < r.Rows; row++ {
			for col := 0; col < r.Cols; col++ {
				if tt := m.BaseTerrain(Pt(row, col)); !tt.SupportedBy(version) {
					t.Fatalf("v%d map has unsupported tile %s at (%d,%d)", version, tt, row, col)
				}
			}
		}
	}
}

func TestGenerate_RoadsAreSymmetric(t *testing.T) {
	r := DefaultRecipe()
	r.Rows, r.Cols = 40, 40
	m, err := Generate(r)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	for row := 0; row < r.Rows; row++ {
		for col := 0; col < r.Cols; col++ {
			p := Pt(row, col)
			if m.Roads(p).Has(East) && !m.Roads(Pt(row, col+1)).Has(West) {
				t.Fatalf("road east from %v has no matching west link", p)
			}
			if m.Roads(p).Has(South) && !m.Roads(Pt(row+1, col)).Has(North) {
				t.Fatalf("road south from %v has no matching north link", p)
			}
		}
	}
}

func TestGenerate_PlayersAndFortresses(t *testing.T) {
	r := DefaultRecipe()
	r.Rows, r.Cols = 30, 30
	m, err := Generate(r)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(m.Players()) != len(r.Players) {
		t.Fatalf("expected %d players, got %d", len(r.Players), len(m.Players()))
	}
	if m.CurrentPlayer().Name != r.Players[0] {
		t.Fatalf("current player = %q, want %q", m.CurrentPlayer().Name, r.Players[0])
	}
	forts := 0
	for row := 0; row < r.Rows; row++ {
		for col := 0; col < r.Cols; col++ {
			for _, f := range m.Fixtures(Pt(row, col)) {
				if f.Kind() == "fortress" {
					forts++
				}
			}
		}
	}
	if forts != len(r.Players) {
		t.Fatalf("expected %d fortresses, got %d", len(r.Players), forts)
	}
}

func TestRecipe_Validate(t *testing.T) {
	bad := []Recipe{
		{Rows: 0, Cols: 10, Version: 2},
		{Rows: 10, Cols: 10, Version: 3},
		{Rows: 10, Cols: 10, Version: 1, Roads: -1},
	}
	for i, r := range bad {
		if err := r.Validate(); !errors.Is(err, ErrBadRecipe) {
			t.Errorf("recipe %d: expected ErrBadRecipe, got %v", i, err)
		}
	}
}

func TestParseRecipe(t *testing.T) {
	data := []byte(`
name = "island"
rows = 20
cols = 30
version = 1
seed = 7
players = ["Ann"]
`)
	r, err := ParseRecipe(data)
	if err != nil {
		t.Fatalf("ParseRecipe: %v", err)
	}
	if r.Name != "island" || r.Rows != 20 || r.Cols != 30 || r.Version != 1 || r.Seed != 7 {
		t.Fatalf("unexpected recipe %+v", r)
	}
	if len(r.Players) != 1 || r.Players[0] != "Ann" {
		t.Fatalf("players = %v", r.Players)
	}
	if r.Roads != DefaultRecipe().Roads {
		t.Fatalf("roads should default to %d, got %d", DefaultRecipe().Roads, r.Roads)
	}

	if _, err := ParseRecipe([]byte(`rows = 10
cols = 10
version = 9`)); !errors.Is(err, ErrBadRecipe) {
		t.Fatalf("expected ErrBadRecipe for version 9, got %v", err)
	}
}

func TestSpreadSlots_OnePerBand(t *testing.T) {
	cases := []struct{ span, n, want int }{
		{span: 120, n: 4, want: 4},
		{span: 30, n: 5, want: 5},
		{span: 3, n: 8, want: 3},
		{span: 0, n: 2, want: 0},
	}
	for _, tc := range cases {
		rng := rand.New(rand.NewSource(7))
		got := spreadSlots(tc.span, tc.n, rng)
		if len(got) != tc.want {
			t.Fatalf("span=%d n=%d: %d slots, want %d", tc.span, tc.n, len(got), tc.want)
		}
		for i, s := range got {
			if s < 0 || s >= tc.span {
				t.Fatalf("span=%d: slot %d outside map", tc.span, s)
			}
			if i > 0 && s <= got[i-1] {
				t.Fatalf("span=%d: slots %v not strictly increasing", tc.span, got)
			}
		}
	}
}
