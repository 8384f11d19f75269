package game

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	log "github.com/sirupsen/logrus"

	"github.com/Garsondee/Map-Viewer/internal/viewport"
	"github.com/Garsondee/Map-Viewer/internal/worldmap"
)

// Key repeat timing in ticks.
const (
	repeatDelay    = 18
	repeatInterval = 3
)

var matcherKeys = []ebiten.Key{
	ebiten.Key1, ebiten.Key2, ebiten.Key3, ebiten.Key4, ebiten.Key5,
	ebiten.Key6, ebiten.Key7, ebiten.Key8, ebiten.Key9,
}

// repeating reports a key press on the first tick and then at a steady rate
// while it is held.
func repeating(k ebiten.Key) bool {
	d := inpututil.KeyPressDuration(k)
	return d == 1 || (d >= repeatDelay && (d-repeatDelay)%repeatInterval == 0)
}

func (g *Game) handleInput() error {
	currentKeys := map[ebiten.Key]bool{}
	pressed := func(k ebiten.Key) bool {
		currentKeys[k] = ebiten.IsKeyPressed(k)
		return currentKeys[k] && !g.prevKeys[k]
	}
	defer func() { g.prevKeys = currentKeys }()

	ctrl := ebiten.IsKeyPressed(ebiten.KeyControl) || ebiten.IsKeyPressed(ebiten.KeyMeta)
	shift := ebiten.IsKeyPressed(ebiten.KeyShift)

	// Selection movement.
	step := 1
	if shift {
		step = viewport.JumpInterval
	}
	if repeating(ebiten.KeyArrowUp) {
		g.model.Move(-step, 0)
	}
	if repeating(ebiten.KeyArrowDown) {
		g.model.Move(step, 0)
	}
	if repeating(ebiten.KeyArrowLeft) {
		g.model.Move(0, -step)
	}
	if repeating(ebiten.KeyArrowRight) {
		g.model.Move(0, step)
	}
	if pressed(ebiten.KeyHome) {
		if ctrl {
			g.model.JumpToEdge(worldmap.North)
		} else {
			g.model.JumpToEdge(worldmap.West)
		}
	}
	if pressed(ebiten.KeyEnd) {
		if ctrl {
			g.model.JumpToEdge(worldmap.South)
		} else {
			g.model.JumpToEdge(worldmap.East)
		}
	}

	// Paging goes through the scrollbars like a drag would.
	pageAxis := viewport.AxisRows
	if shift {
		pageAxis = viewport.AxisCols
	}
	if repeating(ebiten.KeyPageUp) {
		g.scrollBy(pageAxis, -g.sync.Widget(pageAxis).Extent())
	}
	if repeating(ebiten.KeyPageDown) {
		g.scrollBy(pageAxis, g.sync.Widget(pageAxis).Extent())
	}

	// Zoom.
	zoomIn := pressed(ebiten.KeyEqual)
	zoomIn = pressed(ebiten.KeyNumpadAdd) || zoomIn
	zoomOut := pressed(ebiten.KeyMinus)
	zoomOut = pressed(ebiten.KeyNumpadSubtract) || zoomOut
	if zoomIn {
		if err := g.model.ZoomIn(); err != nil {
			return err
		}
	}
	if zoomOut {
		if err := g.model.ZoomOut(); err != nil {
			return err
		}
	}
	if pressed(ebiten.Key0) {
		if err := g.model.ResetZoom(); err != nil {
			return err
		}
	}

	// Matcher chain: 1-9 toggles a matcher, Shift moves it to the top.
	for i, k := range matcherKeys {
		if !pressed(k) {
			continue
		}
		g.toggleMatcher(i, shift)
	}

	if pressed(ebiten.KeyB) {
		g.toggleBookmark()
	}
	if pressed(ebiten.KeyEscape) {
		g.model.ClearInteraction()
	}
	if pressed(ebiten.KeyC) && ctrl {
		g.copySelection()
	}
	if pressed(ebiten.KeyI) {
		g.inspector.visible = !g.inspector.visible
	}
	if pressed(ebiten.KeyV) {
		g.inspector.rawView = !g.inspector.rawView
	}
	if pressed(ebiten.KeyH) {
		g.showHUD = !g.showHUD
	}

	if err := g.handleWheel(ctrl, shift); err != nil {
		return err
	}
	g.handleMouse()
	return nil
}

// scrollBy moves a scrollbar by delta, stopping at the map edges.
func (g *Game) scrollBy(a viewport.Axis, delta int) {
	w := g.sync.Widget(a)
	rows, cols := g.model.MapDimensions()
	last := rows - 1
	if a == viewport.AxisCols {
		last = cols - 1
	}
	if last < 0 {
		return
	}
	if v := clampInt(w.Value()+delta, 0, last); v != w.Value() {
		w.SetValue(v)
	}
}

func (g *Game) handleWheel(ctrl, shift bool) error {
	wx, wy := ebiten.Wheel()
	if wy == 0 && wx == 0 {
		return nil
	}
	if ctrl {
		switch {
		case wy > 0:
			return g.model.ZoomIn()
		case wy < 0:
			return g.model.ZoomOut()
		}
		return nil
	}
	if shift && wx == 0 {
		wx, wy = wy, 0
	}
	if wy != 0 {
		g.scrollBy(viewport.AxisRows, -sign(wy))
	}
	if wx != 0 {
		g.scrollBy(viewport.AxisCols, -sign(wx))
	}
	return nil
}

func (g *Game) handleMouse() {
	mx, my := ebiten.CursorPosition()
	left := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	right := ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight)
	defer func() {
		g.prevMouseLeft = left
		g.prevMouseRight = right
	}()

	if left && !g.prevMouseLeft {
		for a, sb := range g.bars {
			if !sb.contains(mx, my) {
				continue
			}
			g.dragAxis = a + 1
			g.sync.Widget(viewport.Axis(a)).SetValueIsAdjusting(true)
		}
		if g.dragAxis == 0 && image.Pt(mx, my).In(g.mapArea) {
			p := viewport.PointAt(mx-g.mapArea.Min.X, my-g.mapArea.Min.Y, g.model.VisibleDimensions(), g.tileSize)
			if p.Valid() {
				g.model.ClearInteraction()
				g.model.SetSelection(p)
			}
		}
	}
	if g.dragAxis > 0 {
		a := viewport.Axis(g.dragAxis - 1)
		w := g.sync.Widget(a)
		if left {
			w.SetValue(g.bars[a].valueAt(w.State(), mx, my))
		} else {
			w.SetValueIsAdjusting(false)
			g.dragAxis = 0
		}
	}

	if right && !g.prevMouseRight && image.Pt(mx, my).In(g.mapArea) {
		p := viewport.PointAt(mx-g.mapArea.Min.X, my-g.mapArea.Min.Y, g.model.VisibleDimensions(), g.tileSize)
		if p.Valid() {
			g.model.SetInteraction(p)
		}
	}
}

// toggleBookmark flips the bookmark at the interaction point, or at the
// selection when no context menu is open.
func (g *Game) toggleBookmark() {
	p := g.model.Interaction()
	if !p.Valid() {
		p = g.model.Selection()
		if !p.Valid() || !g.model.SetInteraction(p) {
			return
		}
	}
	if g.model.ToggleBookmarkAtInteraction() {
		g.dirty.mark(p)
		g.log.WithFields(log.Fields{"point": p, "on": g.world.Bookmarked(p)}).Info("bookmark toggled")
	}
}

func (g *Game) toggleMatcher(i int, toTop bool) {
	chain := g.comp.Chain()
	if i >= chain.Len() {
		return
	}
	m := chain.At(i)
	var err error
	if toTop {
		err = chain.Move(i, 0)
	} else {
		err = chain.SetDisplayed(i, !m.Displayed)
	}
	if err != nil {
		g.log.WithError(err).Warn("matcher not changed")
		return
	}
	g.log.WithFields(log.Fields{"matcher": m.Label, "displayed": m.Displayed}).Info("fixture order changed")
}

func (g *Game) copySelection() {
	p := g.model.Selection()
	text := tileSummary(g.world, g.comp.Chain(), p)
	if text == "" {
		return
	}
	if err := setClipboardText(text); err != nil {
		g.log.WithError(err).Warn("tile not copied")
		return
	}
	g.log.WithField("point", p).Info("tile copied")
}

func sign(v float64) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}
