package viewport

import (
	log "github.com/sirupsen/logrus"
)

// RangeState is a snapshot of a RangeModel, delivered on every change.
type RangeState struct {
	Value     int
	Extent    int
	Min       int
	Max       int
	Adjusting bool
}

// RangeModel is the state behind a scrollbar-like widget: a value inside
// [Min, Max] showing Extent units at a time. Values are stored as given; an
// optional validator decides which values SetValue accepts.
type RangeModel struct {
	st        RangeState
	validator func(int) bool
	log       *log.Entry

	Changed Topic[RangeState]
}

// NewRangeModel creates a widget model with the given range.
func NewRangeModel(value, extent, min, max int) *RangeModel {
	return &RangeModel{
		st:  RangeState{Value: value, Extent: extent, Min: min, Max: max},
		log: log.WithField("component", "range"),
	}
}

// SetLogger replaces the widget's log entry.
func (r *RangeModel) SetLogger(l *log.Entry) { r.log = l }

func (r *RangeModel) Value() int        { return r.st.Value }
func (r *RangeModel) Extent() int       { return r.st.Extent }
func (r *RangeModel) Minimum() int      { return r.st.Min }
func (r *RangeModel) Maximum() int      { return r.st.Max }
func (r *RangeModel) Adjusting() bool   { return r.st.Adjusting }
func (r *RangeModel) State() RangeState { return r.st }

// SetValidator installs fn to vet raw values passed to SetValue. A nil fn
// accepts everything.
func (r *RangeModel) SetValidator(fn func(int) bool) { r.validator = fn }

// SetValue changes the value. Values the validator rejects are logged and
// dropped before any subscriber sees them.
func (r *RangeModel) SetValue(v int) bool {
	if r.validator != nil && !r.validator(v) {
		r.log.WithField("value", v).Warn("rejected out-of-range scroll value")
		return false
	}
	if v == r.st.Value {
		return true
	}
	r.st.Value = v
	r.Changed.Publish(r.st)
	return true
}

// ScrollBy adds delta to the value through SetValue.
func (r *RangeModel) ScrollBy(delta int) bool {
	return r.SetValue(r.st.Value + delta)
}

func (r *RangeModel) SetExtent(v int) {
	if v == r.st.Extent {
		return
	}
	r.st.Extent = v
	r.Changed.Publish(r.st)
}

func (r *RangeModel) SetMinimum(v int) {
	if v == r.st.Min {
		return
	}
	r.st.Min = v
	r.Changed.Publish(r.st)
}

func (r *RangeModel) SetMaximum(v int) {
	if v == r.st.Max {
		return
	}
	r.st.Max = v
	r.Changed.Publish(r.st)
}

// SetValueIsAdjusting marks the start or end of a burst of changes.
func (r *RangeModel) SetValueIsAdjusting(b bool) {
	if b == r.st.Adjusting {
		return
	}
	r.st.Adjusting = b
	r.Changed.Publish(r.st)
}

// SetRangeProperties replaces every property at once with a single event.
// The validator is not consulted.
func (r *RangeModel) SetRangeProperties(value, extent, min, max int, adjusting bool) {
	next := RangeState{Value: value, Extent: extent, Min: min, Max: max, Adjusting: adjusting}
	if next == r.st {
		return
	}
	r.st = next
	r.Changed.Publish(r.st)
}
