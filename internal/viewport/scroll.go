package viewport

import (
	log "github.com/sirupsen/logrus"

	"github.com/Garsondee/Map-Viewer/internal/worldmap"
)

// Axis selects the rows or the columns of the map.
type Axis int

const (
	AxisRows Axis = iota
	AxisCols
)

func (a Axis) String() string {
	if a == AxisRows {
		return "rows"
	}
	return "cols"
}

type syncState int

const (
	stateIdle syncState = iota
	stateModelToWidget
	stateWidgetToModel
)

func (s syncState) String() string {
	switch s {
	case stateIdle:
		return "idle"
	case stateModelToWidget:
		return "model-to-widget"
	case stateWidgetToModel:
		return "widget-to-model"
	}
	return "unknown"
}

// ScrollSync keeps a pair of range widgets and a Model in agreement in both
// directions. Updates made on behalf of one side never bounce back from the
// other.
type ScrollSync struct {
	model   *Model
	widgets [2]*RangeModel
	state   syncState

	prev    [2]int
	hasPrev [2]bool

	handled int // widget events applied to the model
	ignored int // widget events dropped by the guard or range check

	cancels []func()
	log     *log.Entry
}

// NewScrollSync ties rows (vertical) and cols (horizontal) to m and pushes the
// model's current state into both widgets.
func NewScrollSync(m *Model, rows, cols *RangeModel) *ScrollSync {
	s := &ScrollSync{
		model:   m,
		widgets: [2]*RangeModel{rows, cols},
		log:     log.WithField("component", "scroll-sync"),
	}
	for _, a := range []Axis{AxisRows, AxisCols} {
		axis := a
		w := s.widgets[axis]
		w.SetValidator(func(v int) bool {
			return v >= 0 && v < s.mapDim(axis)+w.Extent()
		})
		s.cancels = append(s.cancels, w.Changed.Subscribe(func(st RangeState) {
			s.widgetChanged(axis, st)
		}))
	}
	s.cancels = append(s.cancels,
		m.ViewportChanged.Subscribe(func(Change[VisibleDimensions]) { s.modelChanged() }),
		m.CursorChanged.Subscribe(func(Change[worldmap.Point]) { s.modelChanged() }),
		m.MapChanged.Subscribe(func(Grid) {
			s.hasPrev = [2]bool{}
			s.modelChanged()
		}),
	)
	s.modelChanged()
	return s
}

// SetLogger replaces the synchroniser's log entry.
func (s *ScrollSync) SetLogger(l *log.Entry) { s.log = l }

// Widget returns the range widget for an axis.
func (s *ScrollSync) Widget(a Axis) *RangeModel { return s.widgets[a] }

// Close unsubscribes from the model and both widgets.
func (s *ScrollSync) Close() {
	for _, c := range s.cancels {
		c()
	}
	s.cancels = nil
	for _, w := range s.widgets {
		w.SetValidator(nil)
	}
}

func (s *ScrollSync) mapDim(a Axis) int {
	rows, cols := s.model.MapDimensions()
	if a == AxisRows {
		return rows
	}
	return cols
}

// modelChanged pushes the model state into both widgets. It may run nested
// inside widgetChanged but never inside itself.
func (s *ScrollSync) modelChanged() {
	if s.state == stateModelToWidget {
		s.log.Warn("re-entrant model-to-widget update skipped")
		return
	}
	saved := s.state
	s.state = stateModelToWidget
	defer func() { s.state = saved }()

	rows, cols := s.model.MapDimensions()
	d := s.model.VisibleDimensions()
	c := s.model.Cursor()
	s.apply(AxisRows, max(c.Row, 0), min(d.Height(), rows), 0, rows)
	s.apply(AxisCols, max(c.Col, 0), min(d.Width(), cols), 0, cols)
}

// apply moves one widget to the target properties, batching when most of
// them differ. A drag in progress keeps its adjusting flag.
func (s *ScrollSync) apply(a Axis, value, extent, lo, hi int) {
	w := s.widgets[a]
	st := w.State()
	diff := 0
	for _, changed := range []bool{st.Value != value, st.Extent != extent, st.Min != lo, st.Max != hi} {
		if changed {
			diff++
		}
	}
	switch {
	case diff == 0:
	case diff >= 3:
		w.SetRangeProperties(value, extent, lo, hi, st.Adjusting)
	default:
		w.SetValueIsAdjusting(true)
		w.SetMinimum(lo)
		w.SetMaximum(hi)
		w.SetExtent(extent)
		w.SetValue(value)
		w.SetValueIsAdjusting(st.Adjusting)
	}
	s.prev[a] = w.Value()
	s.hasPrev[a] = true
}

// widgetChanged applies a user scroll on one axis to the model.
func (s *ScrollSync) widgetChanged(a Axis, st RangeState) {
	if s.state != stateIdle {
		s.ignored++
		return
	}
	mapDim := s.mapDim(a)
	v := st.Value
	if v < 0 || v >= mapDim+st.Extent {
		s.log.WithFields(log.Fields{"axis": a, "value": v}).Warn("scroll value outside map ignored")
		s.ignored++
		return
	}

	d := s.model.VisibleDimensions()
	lo, hi := d.minRow, d.maxRow
	if a == AxisCols {
		lo, hi = d.minCol, d.maxCol
	}
	var offset int
	switch {
	case s.hasPrev[a]:
		offset = v - s.prev[a]
	case v < lo:
		offset = v - lo
	case v > hi:
		offset = v - hi
	}
	span := hi - lo
	nlo, nhi := lo+offset, hi+offset
	if v < nlo {
		nlo, nhi = v, v+span
	} else if v > nhi {
		nlo, nhi = v-span, v
	}
	nlo, nhi = clampAxis(nlo, nhi, mapDim)

	s.state = stateWidgetToModel
	if a == AxisRows {
		s.model.SetVisibleDimensions(d.WithRows(nlo, nhi))
	} else {
		s.model.SetVisibleDimensions(d.WithCols(nlo, nhi))
	}
	if mapDim > 0 {
		c := s.model.Cursor()
		if a == AxisRows {
			c.Row = clamp(v, 0, mapDim-1)
		} else {
			c.Col = clamp(v, 0, mapDim-1)
		}
		c.Row, c.Col = max(c.Row, 0), max(c.Col, 0)
		s.model.SetCursor(c)
	}
	s.state = stateIdle
	s.handled++
}
