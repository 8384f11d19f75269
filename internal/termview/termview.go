// Package termview shows a map in a terminal, one cell per tile, driving the
// same viewport model and scroll synchroniser as the graphical canvas.
package termview

import (
	"fmt"
	"image/color"
	"unicode"
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"
	log "github.com/sirupsen/logrus"

	"github.com/Garsondee/Map-Viewer/internal/render"
	"github.com/Garsondee/Map-Viewer/internal/viewport"
	"github.com/Garsondee/Map-Viewer/internal/worldmap"
)

// statusLines is the number of rows reserved below the map.
const statusLines = 1

// View draws a map onto a tcell screen.
type View struct {
	screen tcell.Screen
	world  *worldmap.Map
	model  *viewport.Model
	sync   *viewport.ScrollSync
	comp   *render.Compositor

	cancels []func()
	log     *log.Entry
}

// New creates a view of m on screen. The screen must already be initialised.
func New(screen tcell.Screen, m *worldmap.Map, comp *render.Compositor) *View {
	v := &View{
		screen: screen,
		world:  m,
		model:  viewport.NewModel(m),
		comp:   comp,
		log:    log.WithField("component", "termview"),
	}
	v.sync = viewport.NewScrollSync(v.model, viewport.NewRangeModel(0, 1, 0, 1), viewport.NewRangeModel(0, 1, 0, 1))
	v.Resize(screen.Size())
	return v
}

// Model returns the viewport state behind the view.
func (v *View) Model() *viewport.Model { return v.model }

// Scroll returns the synchroniser whose widgets PgUp/PgDn drive.
func (v *View) Scroll() *viewport.ScrollSync { return v.sync }

// Close detaches the scroll synchroniser.
func (v *View) Close() {
	v.sync.Close()
}

// Resize fits the visible window to a screen of w by h cells.
func (v *View) Resize(w, h int) {
	v.model.Resize(max(h-statusLines, 1), max(w, 1))
}

// Run draws and handles events until the user quits or the screen closes.
func (v *View) Run() error {
	for {
		v.Draw()
		v.screen.Show()
		ev := v.screen.PollEvent()
		if ev == nil {
			return nil
		}
		if v.HandleEvent(ev) {
			return nil
		}
	}
}

// HandleEvent applies one terminal event and reports whether the user asked
// to quit.
func (v *View) HandleEvent(ev tcell.Event) bool {
	switch e := ev.(type) {
	case *tcell.EventResize:
		v.Resize(e.Size())
		v.screen.Sync()
	case *tcell.EventKey:
		return v.handleKey(e)
	case *tcell.EventMouse:
		if e.Buttons()&tcell.Button1 != 0 {
			x, y := e.Position()
			if p := viewport.PointAt(x, y, v.model.VisibleDimensions(), 1); p.Valid() {
				v.model.SetSelection(p)
			}
		}
	}
	return false
}

func (v *View) handleKey(e *tcell.EventKey) bool {
	ctrl := e.Modifiers()&tcell.ModCtrl != 0
	step := 1
	if e.Modifiers()&tcell.ModShift != 0 {
		step = viewport.JumpInterval
	}
	switch e.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyUp:
		v.model.Move(-step, 0)
	case tcell.KeyDown:
		v.model.Move(step, 0)
	case tcell.KeyLeft:
		v.model.Move(0, -step)
	case tcell.KeyRight:
		v.model.Move(0, step)
	case tcell.KeyHome:
		if ctrl {
			v.model.JumpToEdge(worldmap.North)
		} else {
			v.model.JumpToEdge(worldmap.West)
		}
	case tcell.KeyEnd:
		if ctrl {
			v.model.JumpToEdge(worldmap.South)
		} else {
			v.model.JumpToEdge(worldmap.East)
		}
	case tcell.KeyPgUp:
		v.page(-1)
	case tcell.KeyPgDn:
		v.page(1)
	case tcell.KeyRune:
		switch e.Rune() {
		case 'q':
			return true
		case 'b':
			v.toggleBookmark()
		}
	}
	return false
}

// page scrolls the rows widget by one window height.
func (v *View) page(dir int) {
	w := v.sync.Widget(viewport.AxisRows)
	rows, _ := v.model.MapDimensions()
	if rows == 0 {
		return
	}
	target := min(max(w.Value()+dir*w.Extent(), 0), rows-1)
	if target != w.Value() {
		w.SetValue(target)
	}
}

func (v *View) toggleBookmark() {
	p := v.model.Selection()
	if !p.Valid() || !v.model.SetInteraction(p) {
		return
	}
	if v.model.ToggleBookmarkAtInteraction() {
		v.log.WithFields(log.Fields{"point": p, "on": v.world.Bookmarked(p)}).Info("bookmark toggled")
	}
}

// Draw paints the visible window and the status line.
func (v *View) Draw() {
	v.screen.Clear()
	dims := v.model.VisibleDimensions()
	rows, cols := v.model.MapDimensions()
	sel := v.model.Selection()
	for row := dims.MinRow(); row <= dims.MaxRow() && row < rows; row++ {
		for col := dims.MinCol(); col <= dims.MaxCol() && col < cols; col++ {
			p := worldmap.Pt(row, col)
			style := cellStyle(v.comp.TileColor(v.world, p))
			if p == sel {
				style = style.Reverse(true)
			}
			v.screen.SetContent(col-dims.MinCol(), row-dims.MinRow(), v.glyph(p), nil, style)
		}
	}
	_, h := v.screen.Size()
	v.drawText(0, h-1, v.status())
}

// glyph picks the character for a tile: the initial of its top fixture, else
// a bookmark, river or road marker.
func (v *View) glyph(p worldmap.Point) rune {
	if f, ok := v.comp.TopFixture(v.world, p); ok {
		r, _ := utf8.DecodeRuneInString(f.Kind())
		if f.Tag() == worldmap.TagTerrainLike {
			return r
		}
		return unicode.ToUpper(r)
	}
	switch {
	case v.world.Bookmarked(p):
		return '*'
	case !v.world.Rivers(p).Empty():
		return '~'
	case !v.world.Roads(p).Empty():
		return '+'
	}
	return ' '
}

func (v *View) status() string {
	sel := v.model.Selection()
	if !sel.Valid() {
		d := v.model.VisibleDimensions()
		return fmt.Sprintf("rows %d-%d cols %d-%d  arrows=move PgUp/PgDn=page b=bookmark q=quit",
			d.MinRow(), d.MaxRow(), d.MinCol(), d.MaxCol())
	}
	text := fmt.Sprintf("%s %s", sel, v.world.BaseTerrain(sel))
	if f, ok := v.comp.TopFixture(v.world, sel); ok {
		text += ": " + f.ShortDescription()
	}
	if v.world.Bookmarked(sel) {
		text += " [bookmarked]"
	}
	return text
}

func (v *View) drawText(x, y int, text string) {
	w, _ := v.screen.Size()
	style := tcell.StyleDefault.Reverse(true)
	for _, r := range text {
		if x >= w {
			return
		}
		v.screen.SetContent(x, y, r, nil, style)
		x++
	}
	for ; x < w; x++ {
		v.screen.SetContent(x, y, ' ', nil, style)
	}
}

// cellStyle paints a tile colour as the cell background with a readable
// foreground.
func cellStyle(c color.Color) tcell.Style {
	r, g, b, _ := c.RGBA()
	bg := tcell.NewRGBColor(int32(r>>8), int32(g>>8), int32(b>>8))
	fg := tcell.ColorWhite
	// Rec. 601 luma on 16-bit channels.
	if 299*r+587*g+114*b > 1000*0x8000 {
		fg = tcell.ColorBlack
	}
	return tcell.StyleDefault.Background(bg).Foreground(fg)
}
