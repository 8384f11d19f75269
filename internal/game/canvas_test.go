package game

import (
	"image"
	"strings"
	"testing"
	"testing/fstest"

	log "github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"

	"github.com/Garsondee/Map-Viewer/internal/render"
	"github.com/Garsondee/Map-Viewer/internal/viewport"
	"github.com/Garsondee/Map-Viewer/internal/worldmap"
)

// testTile builds a 3x3 map with a town over a forest at (1, 1).
func testTile() (*worldmap.Map, worldmap.Point) {
	m := worldmap.New(3, 3, 2)
	p := worldmap.Pt(1, 1)
	m.SetBaseTerrain(p, worldmap.TilePlains)
	m.AddRoad(p, worldmap.East)
	m.AddFixture(p, worldmap.NewForest(1, "oak", false))
	m.AddFixture(p, worldmap.NewTown(2, "Riverton", "medium", worldmap.Player{ID: 1, Name: "Alice"}))
	return m, p
}

// quietChain is the default chain with its logging discarded.
func quietChain() *render.MatcherChain {
	c := render.DefaultMatcherChain()
	logger, _ := test.NewNullLogger()
	c.SetLogger(log.NewEntry(logger))
	return c
}

func indexOf(c *render.MatcherChain, label string) int {
	for i, m := range c.Matchers() {
		if m.Label == label {
			return i
		}
	}
	return -1
}

// --- Inspector ---

func TestInspectorLines_ZOrderAndHidden(t *testing.T) {
	m, p := testTile()
	chain := quietChain()
	if err := chain.SetDisplayed(indexOf(chain, "forest"), false); err != nil {
		t.Fatalf("SetDisplayed: %v", err)
	}

	lines := inspectorLines(m, chain, p, false)
	var texts []string
	for _, l := range lines {
		texts = append(texts, l.Text)
	}
	want := []string{
		"terrain: plains",
		"roads: east",
		"* town: medium town Riverton (Alice)",
		"- forest: A oak forest",
	}
	if strings.Join(texts, "|") != strings.Join(want, "|") {
		t.Fatalf("lines:\n got %q\nwant %q", texts, want)
	}
	if lines[2].Dim || !lines[3].Dim {
		t.Fatalf("only the hidden forest should be dim: %+v", lines)
	}
}

func TestInspectorLines_IconsResolveThroughCache(t *testing.T) {
	m, p := testTile()
	lines := inspectorLines(m, quietChain(), p, false)
	if lines[0].Icon != worldmap.TilePlains.ImageName() {
		t.Fatalf("terrain icon %q", lines[0].Icon)
	}
	if lines[1].Icon != "" {
		t.Fatalf("roads line has icon %q", lines[1].Icon)
	}

	cache := render.NewImageCache(render.NewDirProvider(fstest.MapFS{}))
	logger, _ := test.NewNullLogger()
	cache.SetLogger(log.NewEntry(logger))
	if cache.IsFallback(cache.Image(lines[0].Icon)) {
		t.Fatal("terrain line should use the generated terrain icon")
	}
	last := lines[len(lines)-1]
	if last.Icon != "trees.png" {
		t.Fatalf("fixture icon %q", last.Icon)
	}
	if !cache.IsFallback(cache.Image(last.Icon)) {
		t.Fatal("fixture icon missing from an empty directory should fall back")
	}
}

func TestInspectorLines_TopMarkSkipsHidden(t *testing.T) {
	m, p := testTile()
	chain := quietChain()
	if err := chain.SetDisplayed(indexOf(chain, "town"), false); err != nil {
		t.Fatalf("SetDisplayed: %v", err)
	}
	lines := inspectorLines(m, chain, p, false)
	last := lines[len(lines)-1].Text
	if !strings.HasPrefix(last, "* forest") {
		t.Fatalf("forest should be marked as top once the town is hidden, got %q", last)
	}
}

func TestInspectorLines_Raw(t *testing.T) {
	m, p := testTile()
	lines := inspectorLines(m, quietChain(), p, true)
	// terrain synthetic fixture plus the two stored fixtures
	if len(lines) != 3 {
		t.Fatalf("expected 3 raw lines, got %d: %+v", len(lines), lines)
	}
	if !strings.Contains(lines[1].Text, "#1 forest trees.png") {
		t.Fatalf("raw line should list id, kind and image, got %q", lines[1].Text)
	}
}

func TestInspectorLines_NoSelection(t *testing.T) {
	m, _ := testTile()
	lines := inspectorLines(m, quietChain(), worldmap.InvalidPoint, false)
	if len(lines) != 1 || !lines[0].Dim {
		t.Fatalf("expected a single placeholder line, got %+v", lines)
	}
}

// --- Clipboard summary ---

func TestTileSummary(t *testing.T) {
	m, p := testTile()
	m.SetBookmark(p, true)
	got := tileSummary(m, quietChain(), p)
	want := "(1, 1) plains, bookmarked\ntown: medium town Riverton\nforest: A oak forest\n"
	if got != want {
		t.Fatalf("summary:\n got %q\nwant %q", got, want)
	}
	if s := tileSummary(m, quietChain(), worldmap.Pt(5, 5)); s != "" {
		t.Fatalf("off-map summary should be empty, got %q", s)
	}
}

// --- HUD ---

func TestHudLines(t *testing.T) {
	m, p := testTile()
	model := viewport.NewModel(m)
	logger, _ := test.NewNullLogger()
	model.SetLogger(log.NewEntry(logger))
	model.SetSelection(p)
	model.SetModified(true)

	chain := quietChain()
	lines := hudLines(model, chain)
	if lines[0] != "MAP: 3x3 *" {
		t.Fatalf("header: got %q", lines[0])
	}
	if lines[2] != "zoom: 8 (24px)  +/- 0=reset" {
		t.Fatalf("zoom line: got %q", lines[2])
	}
	if lines[3] != "selected: (1, 1)" {
		t.Fatalf("selection line: got %q", lines[3])
	}
	joined := strings.Join(lines, "\n")
	if !strings.Contains(joined, "[1]* unit") || strings.Contains(joined, "[10]") {
		t.Fatalf("legend should list the first nine matchers only:\n%s", joined)
	}
}

// --- Scrollbars ---

func TestScrollbar_Thumb(t *testing.T) {
	sb := scrollbar{axis: viewport.AxisCols, track: image.Rect(0, 100, 200, 114)}
	st := viewport.RangeState{Value: 0, Extent: 10, Min: 0, Max: 40}

	th := sb.thumb(st)
	if th.Min.X != 0 || th.Dx() != 50 || th.Dy() != 14 {
		t.Fatalf("thumb at start: got %v", th)
	}
	st.Value = 39
	if th := sb.thumb(st); th.Max.X != 200 {
		t.Fatalf("thumb at last value should touch the end, got %v", th)
	}
	st.Extent = 100
	if th := sb.thumb(st); th != sb.track {
		t.Fatalf("extent beyond range should fill the track, got %v", th)
	}
}

func TestScrollbar_ThumbMinimumSize(t *testing.T) {
	sb := scrollbar{axis: viewport.AxisRows, track: image.Rect(500, 0, 514, 100)}
	th := sb.thumb(viewport.RangeState{Value: 0, Extent: 1, Min: 0, Max: 1000})
	if th.Dy() != minThumb {
		t.Fatalf("thumb should not shrink below %d, got %d", minThumb, th.Dy())
	}
}

func TestScrollbar_ValueAtInvertsThumb(t *testing.T) {
	sb := scrollbar{axis: viewport.AxisRows, track: image.Rect(500, 0, 514, 300)}
	st := viewport.RangeState{Extent: 10, Min: 0, Max: 60}
	for v := 0; v < 60; v++ {
		st.Value = v
		c := sb.thumb(st)
		mid := c.Min.Add(c.Size().Div(2))
		if got := sb.valueAt(st, mid.X, mid.Y); got != v {
			t.Fatalf("value %d: thumb centre %v maps back to %d", v, mid, got)
		}
	}
	if got := sb.valueAt(st, 505, -40); got != 0 {
		t.Fatalf("above the track should give the minimum, got %d", got)
	}
	if got := sb.valueAt(st, 505, 900); got != 59 {
		t.Fatalf("below the track should give the last value, got %d", got)
	}
}

// --- Dirty tracking ---

func TestDirtySet(t *testing.T) {
	d := newDirtySet()
	if all, _ := d.take(); !all {
		t.Fatal("a new set should repaint everything")
	}
	if !d.empty() {
		t.Fatal("set should be empty after take")
	}
	d.mark(worldmap.Pt(1, 2))
	d.mark(worldmap.Pt(1, 2))
	d.mark(worldmap.InvalidPoint)
	all, tiles := d.take()
	if all || len(tiles) != 1 || tiles[0] != worldmap.Pt(1, 2) {
		t.Fatalf("expected one tile, got all=%v tiles=%v", all, tiles)
	}
	d.mark(worldmap.Pt(0, 0))
	d.markAll()
	if all, tiles := d.take(); !all || tiles != nil {
		t.Fatalf("markAll should supersede single tiles, got all=%v tiles=%v", all, tiles)
	}
}

// --- Dropped recipes ---

func TestDroppedRecipe(t *testing.T) {
	fsys := fstest.MapFS{
		"notes.txt":  {Data: []byte("hello")},
		"small.TOML": {Data: []byte("rows = 6\ncols = 9\nversion = 1\nseed = 3\nroads = 0\nrivers = 0\n")},
	}
	name, data, err := droppedRecipe(fsys)
	if err != nil {
		t.Fatalf("droppedRecipe: %v", err)
	}
	if name != "small.TOML" {
		t.Fatalf("picked %q", name)
	}
	res := generate(name, data)
	if res.err != nil {
		t.Fatalf("generate: %v", res.err)
	}
	if rows, cols := res.m.Dimensions(); rows != 6 || cols != 9 || res.m.Version() != 1 {
		t.Fatalf("generated %dx%d v%d", rows, cols, res.m.Version())
	}
}

func TestDroppedRecipe_None(t *testing.T) {
	if _, _, err := droppedRecipe(fstest.MapFS{"a.png": {Data: []byte{1}}}); err == nil {
		t.Fatal("expected an error when no recipe was dropped")
	}
	res := generate("bad.toml", []byte("rows = -1\n"))
	if res.err == nil || res.m != nil {
		t.Fatalf("bad recipe should fail, got %+v", res)
	}
}
