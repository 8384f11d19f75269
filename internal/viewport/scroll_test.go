package viewport

import (
	"strings"
	"testing"

	log "github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"

	"github.com/Garsondee/Map-Viewer/internal/worldmap"
)

func newTestSync(t *testing.T) (*Model, *ScrollSync, *test.Hook) {
	t.Helper()
	m, _ := newTestModel(t, 60, 60)
	m.Resize(10, 10)
	s := NewScrollSync(m, NewRangeModel(0, 0, 0, 0), NewRangeModel(0, 0, 0, 0))
	logger, hook := test.NewNullLogger()
	s.SetLogger(log.NewEntry(logger))
	return m, s, hook
}

func TestScrollSync_InitialState(t *testing.T) {
	_, s, _ := newTestSync(t)
	for _, a := range []Axis{AxisRows, AxisCols} {
		st := s.Widget(a).State()
		want := RangeState{Value: 0, Extent: 10, Min: 0, Max: 60}
		if st != want {
			t.Fatalf("%s widget %+v, want %+v", a, st, want)
		}
	}
}

func TestScrollSync_UserScrollSlidesWindow(t *testing.T) {
	m, s, _ := newTestSync(t)
	m.SetSelection(worldmap.Pt(5, 5))
	cols := s.Widget(AxisCols)
	if cols.Value() != 5 {
		t.Fatalf("cols value=%d, want cursor column 5", cols.Value())
	}

	if !cols.SetValue(8) {
		t.Fatal("in-range scroll rejected")
	}
	d := m.VisibleDimensions()
	if d.MinCol() != 3 || d.MaxCol() != 12 {
		t.Fatalf("cols=[%d..%d], want [3..12]", d.MinCol(), d.MaxCol())
	}
	if d.MinRow() != 0 || d.MaxRow() != 9 {
		t.Fatalf("rows moved: %s", d)
	}
	if m.Cursor() != worldmap.Pt(5, 8) {
		t.Fatalf("cursor=%v, want (5,8)", m.Cursor())
	}
	if m.Selection() != worldmap.Pt(5, 5) {
		t.Fatalf("selection=%v changed by scrolling", m.Selection())
	}
	if s.handled != 1 {
		t.Fatalf("handled=%d, want exactly one widget-to-model pass", s.handled)
	}
	if cols.Value() != 8 {
		t.Fatalf("widget value=%d after round trip", cols.Value())
	}
}

func TestScrollSync_SnapWhenValueLeavesWindow(t *testing.T) {
	m, s, _ := newTestSync(t)
	m.SetCursor(worldmap.Pt(5, 0))
	m.SetVisibleDimensions(NewVisibleDimensions(30, 39, 0, 9))

	// offset +2 from the cached value would give rows[32..41], which misses 7
	s.Widget(AxisRows).SetValue(7)
	d := m.VisibleDimensions()
	if d.MinRow() != 7 || d.MaxRow() != 16 {
		t.Fatalf("rows=[%d..%d], want [7..16]", d.MinRow(), d.MaxRow())
	}
	if m.Cursor().Row != 7 {
		t.Fatalf("cursor=%v", m.Cursor())
	}
}

func TestScrollSync_RejectsOutOfRange(t *testing.T) {
	m, s, _ := newTestSync(t)
	before := m.VisibleDimensions()
	cols := s.Widget(AxisCols)
	if cols.SetValue(70) {
		t.Fatal("value past map+extent accepted")
	}
	if cols.SetValue(-1) {
		t.Fatal("negative value accepted")
	}
	if m.VisibleDimensions() != before || s.handled != 0 {
		t.Fatalf("model changed by rejected scroll: %s handled=%d", m.VisibleDimensions(), s.handled)
	}
}

func TestScrollSync_ValueInExtentTailClampsCursor(t *testing.T) {
	m, s, _ := newTestSync(t)
	s.Widget(AxisRows).SetValue(65)
	d := m.VisibleDimensions()
	if d.MinRow() != 50 || d.MaxRow() != 59 {
		t.Fatalf("rows=[%d..%d], want [50..59]", d.MinRow(), d.MaxRow())
	}
	if m.Cursor().Row != 59 {
		t.Fatalf("cursor row=%d, want 59", m.Cursor().Row)
	}
}

func TestScrollSync_ModelChangesDoNotLoopBack(t *testing.T) {
	m, s, _ := newTestSync(t)
	m.SetSelection(worldmap.Pt(40, 40))
	m.SetVisibleDimensions(NewVisibleDimensions(5, 14, 5, 14))
	m.SetCursor(worldmap.Pt(7, 7))
	if s.handled != 0 {
		t.Fatalf("handled=%d; model-driven updates re-entered the model", s.handled)
	}
	if s.Widget(AxisRows).Value() != 7 || s.Widget(AxisCols).Value() != 7 {
		t.Fatal("widgets did not follow the cursor")
	}
}

func TestScrollSync_BatchesWhenMostPropertiesDiffer(t *testing.T) {
	m, _ := newTestModel(t, 60, 60)
	m.Resize(10, 10)
	rows := NewRangeModel(7, 1, 5, 6)
	var events []RangeState
	rows.Changed.Subscribe(func(st RangeState) { events = append(events, st) })

	s := NewScrollSync(m, rows, NewRangeModel(0, 0, 0, 0))
	defer s.Close()
	if len(events) != 1 {
		t.Fatalf("%d events, want one batched update", len(events))
	}
	if events[0] != (RangeState{Value: 0, Extent: 10, Min: 0, Max: 60}) {
		t.Fatalf("batched state %+v", events[0])
	}

	events = nil
	m.SetCursor(worldmap.Pt(3, 0))
	if len(events) != 3 {
		t.Fatalf("%d events, want adjusting/value/adjusting", len(events))
	}
	if !events[0].Adjusting || events[1].Value != 3 || events[2].Adjusting {
		t.Fatalf("unbatched events %+v", events)
	}
}

func TestScrollSync_ReentrantModelToWidgetSkipped(t *testing.T) {
	m, s, hook := newTestSync(t)
	fired := false
	s.Widget(AxisRows).Changed.Subscribe(func(RangeState) {
		if fired {
			return
		}
		fired = true
		m.SetCursor(worldmap.Pt(1, 1))
	})
	m.SetCursor(worldmap.Pt(3, 3))

	found := false
	for _, e := range hook.AllEntries() {
		if strings.Contains(e.Message, "re-entrant") {
			found = true
		}
	}
	if !found {
		t.Fatal("re-entrant model-to-widget update was not logged")
	}
	if s.handled != 0 {
		t.Fatalf("handled=%d", s.handled)
	}
}

func TestScrollSync_FollowsNewMap(t *testing.T) {
	m, s, _ := newTestSync(t)
	m.SetMap(worldmap.New(20, 30, 1))
	if got := s.Widget(AxisCols).Maximum(); got != 30 {
		t.Fatalf("cols max=%d, want 30", got)
	}
	if got := s.Widget(AxisRows).Extent(); got != 20 {
		t.Fatalf("rows extent=%d, want 20", got)
	}
}

func TestScrollSync_NewMapLogsNoRejectedValues(t *testing.T) {
	m, s, hook := newTestSync(t)
	for _, a := range []Axis{AxisRows, AxisCols} {
		s.Widget(a).SetLogger(s.log)
	}
	m.SetSelection(worldmap.Pt(50, 50))
	hook.Reset()

	m.SetMap(worldmap.New(20, 20, 2))
	if entries := hook.AllEntries(); len(entries) != 0 {
		t.Fatalf("switching maps logged %d entries, first %q", len(entries), entries[0].Message)
	}
	if s.Widget(AxisRows).Value() != 0 || s.Widget(AxisCols).Value() != 0 {
		t.Fatal("widgets do not follow the reset cursor")
	}
}

func TestScrollSync_ModelUpdateKeepsDragFlag(t *testing.T) {
	m, s, _ := newTestSync(t)
	rows := s.Widget(AxisRows)
	rows.SetValueIsAdjusting(true)

	m.SetCursor(worldmap.Pt(4, 0))
	if rows.Value() != 4 {
		t.Fatalf("rows value=%d, want 4", rows.Value())
	}
	if !rows.Adjusting() {
		t.Fatal("model update cleared the widget's drag flag")
	}
}

func TestScrollSync_CloseDetaches(t *testing.T) {
	m, s, _ := newTestSync(t)
	s.Close()
	s.Widget(AxisCols).SetValue(30)
	if s.handled != 0 || m.VisibleDimensions().MinCol() != 0 {
		t.Fatal("closed synchroniser still applies widget events")
	}
	m.SetCursor(worldmap.Pt(9, 9))
	if s.Widget(AxisRows).Value() == 9 {
		t.Fatal("closed synchroniser still follows the model")
	}
}

func TestRangeModel_Validator(t *testing.T) {
	r := NewRangeModel(0, 5, 0, 10)
	r.SetValidator(func(v int) bool { return v <= 10 })
	n := 0
	r.Changed.Subscribe(func(RangeState) { n++ })
	if r.SetValue(11) || n != 0 {
		t.Fatal("validator did not stop the value before subscribers")
	}
	if !r.SetValue(4) || n != 1 || r.Value() != 4 {
		t.Fatalf("value=%d events=%d", r.Value(), n)
	}
	r.SetValue(4)
	if n != 1 {
		t.Fatal("unchanged value published")
	}
	r.ScrollBy(2)
	if r.Value() != 6 {
		t.Fatalf("ScrollBy gave %d", r.Value())
	}
}
