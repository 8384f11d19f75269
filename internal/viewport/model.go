package viewport

import (
	log "github.com/sirupsen/logrus"

	"github.com/Garsondee/Map-Viewer/internal/worldmap"
)

// Grid is the part of a map the viewport needs.
type Grid interface {
	Dimensions() (rows, cols int)
	Version() int
}

// bookmarker is implemented by grids that support bookmarks.
type bookmarker interface {
	Bookmarked(p worldmap.Point) bool
	SetBookmark(p worldmap.Point, on bool)
}

// Model owns the selection, cursor, interaction point, visible window and
// zoom level for one open map. It is not safe for concurrent use; all calls
// happen on the UI goroutine.
type Model struct {
	grid        Grid
	selection   worldmap.Point
	cursor      worldmap.Point
	interaction worldmap.Point
	dims        VisibleDimensions
	zoom        int
	modified    bool
	dimsSent    bool // a viewport change has been published at least once

	log *log.Entry

	ViewportChanged    Topic[Change[VisibleDimensions]]
	ZoomChanged        Topic[Change[int]] // tile size in pixels
	SelectionChanged   Topic[Change[worldmap.Point]]
	CursorChanged      Topic[Change[worldmap.Point]]
	InteractionChanged Topic[Change[worldmap.Point]]
	MapChanged         Topic[Grid]
}

// NewModel creates a model showing the whole of g at the default zoom.
func NewModel(g Grid) *Model {
	rows, cols := g.Dimensions()
	return &Model{
		grid:        g,
		selection:   worldmap.InvalidPoint,
		cursor:      worldmap.Pt(0, 0),
		interaction: worldmap.InvalidPoint,
		dims:        FullMap(rows, cols),
		zoom:        DefaultZoom,
		log:         log.WithField("component", "viewport"),
	}
}

// SetLogger replaces the model's log entry.
func (m *Model) SetLogger(l *log.Entry) { m.log = l }

// Grid returns the current map.
func (m *Model) Grid() Grid { return m.grid }

// MapDimensions returns the current map's (rows, cols).
func (m *Model) MapDimensions() (rows, cols int) { return m.grid.Dimensions() }

func (m *Model) Selection() worldmap.Point            { return m.selection }
func (m *Model) Cursor() worldmap.Point               { return m.cursor }
func (m *Model) Interaction() worldmap.Point          { return m.interaction }
func (m *Model) VisibleDimensions() VisibleDimensions { return m.dims }
func (m *Model) Zoom() int                            { return m.zoom }

// Modified reports whether the map changed since it was loaded or last marked clean.
func (m *Model) Modified() bool { return m.modified }

// SetModified sets or clears the modified flag.
func (m *Model) SetModified(v bool) { m.modified = v }

// TileSize returns the current tile edge in pixels.
func (m *Model) TileSize() (int, error) {
	return TileSize(m.grid.Version(), m.zoom)
}

// inMap reports whether p lies on the current map.
func (m *Model) inMap(p worldmap.Point) bool {
	rows, cols := m.grid.Dimensions()
	return p.Row >= 0 && p.Row < rows && p.Col >= 0 && p.Col < cols
}

// SetMap replaces the map wholesale: selection and interaction are cleared,
// the window is reset to the map's origin and extent, and zoom is reset.
// ZoomChanged fires whenever the tile size differs from the old map's, even
// at an unchanged zoom level. MapChanged fires last, after the reset.
func (m *Model) SetMap(g Grid) {
	oldPx, oldErr := TileSize(m.grid.Version(), m.zoom)
	m.grid = g
	m.modified = false
	m.zoom = DefaultZoom

	m.setSelection(worldmap.InvalidPoint)
	m.setCursor(worldmap.Pt(0, 0))
	m.setInteraction(worldmap.InvalidPoint)
	rows, cols := g.Dimensions()
	m.setDims(FullMap(rows, cols))

	newPx, err := TileSize(g.Version(), m.zoom)
	switch {
	case err != nil:
		m.log.WithError(err).Error("no tile size for new map")
	case oldErr != nil:
		m.ZoomChanged.Publish(Change[int]{New: newPx})
	case oldPx != newPx:
		m.ZoomChanged.Publish(Change[int]{Old: oldPx, New: newPx, HasOld: true})
	}
	m.MapChanged.Publish(g)
}

// SetSelection selects p (or clears the selection for an invalid p), moves the
// cursor to it and refits the window. Off-map points are logged and ignored.
func (m *Model) SetSelection(p worldmap.Point) bool {
	if p.Valid() && !m.inMap(p) {
		m.log.WithField("point", p).Warn("selection outside map ignored")
		return false
	}
	m.setSelection(p)
	m.setCursor(worldmap.Pt(max(p.Row, 0), max(p.Col, 0)))
	m.fit()
	return true
}

// SetCursor moves the scroll focus without touching the selection.
func (m *Model) SetCursor(p worldmap.Point) bool {
	if !m.inMap(p) {
		m.log.WithField("point", p).Warn("cursor outside map ignored")
		return false
	}
	m.setCursor(p)
	return true
}

// SetInteraction records the context-menu target. An invalid point clears it.
func (m *Model) SetInteraction(p worldmap.Point) bool {
	if p.Valid() && !m.inMap(p) {
		m.log.WithField("point", p).Warn("interaction point outside map ignored")
		return false
	}
	m.setInteraction(p)
	return true
}

// ClearInteraction forgets the context-menu target.
func (m *Model) ClearInteraction() {
	m.setInteraction(worldmap.InvalidPoint)
}

// Move shifts the selection by (dRow, dCol), clamped to the map. With no
// selection it starts from the cursor.
func (m *Model) Move(dRow, dCol int) bool {
	rows, cols := m.grid.Dimensions()
	if rows == 0 || cols == 0 {
		return false
	}
	from := m.selection
	if !from.Valid() {
		from = m.cursor
	}
	to := worldmap.Pt(clamp(from.Row+dRow, 0, rows-1), clamp(from.Col+dCol, 0, cols-1))
	return m.SetSelection(to)
}

// JumpToEdge moves the selection to the first or last row or column,
// keeping the other coordinate.
func (m *Model) JumpToEdge(d worldmap.Direction) bool {
	rows, cols := m.grid.Dimensions()
	if rows == 0 || cols == 0 {
		return false
	}
	to := m.selection
	if !to.Valid() {
		to = m.cursor
	}
	switch d {
	case worldmap.North:
		to.Row = 0
	case worldmap.South:
		to.Row = rows - 1
	case worldmap.West:
		to.Col = 0
	case worldmap.East:
		to.Col = cols - 1
	default:
		return false
	}
	return m.SetSelection(to)
}

// Resize sets the number of visible rows and columns (from the canvas size
// and tile size), keeping the window's origin where possible, then refits.
func (m *Model) Resize(visibleRows, visibleCols int) {
	rows, cols := m.grid.Dimensions()
	visibleRows = clamp(visibleRows, 1, max(rows, 1))
	visibleCols = clamp(visibleCols, 1, max(cols, 1))

	minRow := m.dims.minRow
	if minRow+visibleRows > rows {
		minRow = rows - visibleRows
	}
	minCol := m.dims.minCol
	if minCol+visibleCols > cols {
		minCol = cols - visibleCols
	}
	nd := NewVisibleDimensions(max(minRow, 0), max(minRow, 0)+visibleRows-1, max(minCol, 0), max(minCol, 0)+visibleCols-1)
	m.setDims(FixVisibility(m.selection, nd, rows, cols))
}

// SetVisibleDimensions replaces the window, clamped to the map.
func (m *Model) SetVisibleDimensions(d VisibleDimensions) {
	rows, cols := m.grid.Dimensions()
	minRow, maxRow := clampAxis(d.minRow, d.maxRow, rows)
	minCol, maxCol := clampAxis(d.minCol, d.maxCol, cols)
	m.setDims(NewVisibleDimensions(minRow, maxRow, minCol, maxCol))
}

// ZoomIn increases the zoom level by one; no-op at MaxZoom.
func (m *Model) ZoomIn() error { return m.setZoom(m.zoom + 1) }

// ZoomOut decreases the zoom level by one; no-op at MinZoom.
func (m *Model) ZoomOut() error { return m.setZoom(m.zoom - 1) }

// SetZoom jumps to zoom level z, clamped to [MinZoom, MaxZoom].
func (m *Model) SetZoom(z int) error { return m.setZoom(z) }

// ResetZoom restores DefaultZoom and refits the window.
func (m *Model) ResetZoom() error {
	if err := m.setZoom(DefaultZoom); err != nil {
		return err
	}
	m.fit()
	return nil
}

// ToggleBookmarkAtInteraction flips the bookmark at the interaction point,
// marks the map modified and clears the interaction point.
func (m *Model) ToggleBookmarkAtInteraction() bool {
	p := m.interaction
	b, ok := m.grid.(bookmarker)
	if !ok || !p.Valid() {
		return false
	}
	b.SetBookmark(p, !b.Bookmarked(p))
	m.modified = true
	m.ClearInteraction()
	return true
}

func (m *Model) fit() {
	rows, cols := m.grid.Dimensions()
	m.setDims(FixVisibility(m.selection, m.dims, rows, cols))
}

func (m *Model) setZoom(z int) error {
	z = clampZoom(z)
	if z == m.zoom {
		return nil
	}
	oldPx, err := TileSize(m.grid.Version(), m.zoom)
	if err != nil {
		return err
	}
	newPx, err := TileSize(m.grid.Version(), z)
	if err != nil {
		return err
	}
	m.zoom = z
	m.ZoomChanged.Publish(Change[int]{Old: oldPx, New: newPx, HasOld: true})
	return nil
}

func (m *Model) setDims(d VisibleDimensions) {
	if m.dimsSent && d == m.dims {
		return
	}
	old := m.dims
	hadOld := m.dimsSent
	m.dims = d
	m.dimsSent = true
	m.ViewportChanged.Publish(Change[VisibleDimensions]{Old: old, New: d, HasOld: hadOld})
}

func (m *Model) setSelection(p worldmap.Point) {
	old := m.selection
	m.selection = p
	m.SelectionChanged.Publish(Change[worldmap.Point]{Old: old, New: p, HasOld: old.Valid()})
}

func (m *Model) setCursor(p worldmap.Point) {
	old := m.cursor
	m.cursor = p
	m.CursorChanged.Publish(Change[worldmap.Point]{Old: old, New: p, HasOld: old.Valid()})
}

func (m *Model) setInteraction(p worldmap.Point) {
	old := m.interaction
	m.interaction = p
	m.InteractionChanged.Publish(Change[worldmap.Point]{Old: old, New: p, HasOld: old.Valid()})
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
