package game

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/Garsondee/Map-Viewer/internal/render"
	"github.com/Garsondee/Map-Viewer/internal/viewport"
)

// hudLines is the key legend and view state shown in the corner.
func hudLines(m *viewport.Model, chain *render.MatcherChain) []string {
	rows, cols := m.MapDimensions()
	d := m.VisibleDimensions()
	ts, err := m.TileSize()
	size := fmt.Sprintf("%dpx", ts)
	if err != nil {
		size = "?"
	}
	modified := ""
	if m.Modified() {
		modified = " *"
	}
	lines := []string{
		fmt.Sprintf("MAP: %dx%d%s", rows, cols, modified),
		fmt.Sprintf("view rows %d-%d cols %d-%d", d.MinRow(), d.MaxRow(), d.MinCol(), d.MaxCol()),
		fmt.Sprintf("zoom: %d (%s)  +/- 0=reset", m.Zoom(), size),
	}
	if sel := m.Selection(); sel.Valid() {
		lines = append(lines, fmt.Sprintf("selected: %s", sel))
	} else {
		lines = append(lines, "selected: none")
	}
	lines = append(lines, "Fixtures (1-9 toggle, Shift=top):")
	for i := 0; i < chain.Len() && i < len(matcherKeys); i++ {
		mt := chain.At(i)
		on := " "
		if mt.Displayed {
			on = "*"
		}
		lines = append(lines, fmt.Sprintf("  [%d]%s %s", i+1, on, mt.Label))
	}
	lines = append(lines,
		"arrows=move  Home/End=edge",
		"PgUp/PgDn=page  wheel=scroll",
		"click=select  right=menu",
		"Ctrl+C=copy  I=inspector  H=HUD",
	)
	return lines
}

// drawHUD renders the legend into hudBuf at 1x then blits it at hudScale.
func (g *Game) drawHUD(screen *ebiten.Image) {
	lines := hudLines(g.model, g.comp.Chain())

	const lineH = 12 // debug font line height at 1x
	const charW = 6  // debug font char width at 1x
	const padX = 5
	const padY = 4

	maxLen := 0
	for _, l := range lines {
		if len(l) > maxLen {
			maxLen = len(l)
		}
	}
	boxW := float32(maxLen*charW + padX*2)
	boxH := float32(len(lines)*lineH + padY*2)
	bx := float32(4)
	by := float32(4)

	g.hudBuf.Clear()
	vector.FillRect(g.hudBuf, bx, by, boxW, boxH,
		color.RGBA{R: 6, G: 10, B: 6, A: 210}, false)
	vector.StrokeRect(g.hudBuf, bx, by, boxW, boxH,
		1.0, color.RGBA{R: 60, G: 100, B: 60, A: 180}, false)
	vector.StrokeLine(g.hudBuf, bx+1, by+1, bx+boxW-1, by+1,
		1.0, color.RGBA{R: 80, G: 140, B: 80, A: 80}, false)

	for i, line := range lines {
		ebitenutil.DebugPrintAt(g.hudBuf, line, int(bx)+padX, int(by)+padY+i*lineH)
	}

	opts := &ebiten.DrawImageOptions{}
	opts.GeoM.Scale(float64(hudScale), float64(hudScale))
	screen.DrawImage(g.hudBuf, opts)
}

// drawContextMenu shows the actions available at the interaction point.
func (g *Game) drawContextMenu(screen *ebiten.Image, x, y int) {
	label := "B=bookmark  Esc=close"
	if g.world.Bookmarked(g.model.Interaction()) {
		label = "B=remove bookmark  Esc=close"
	}
	w := float32(len(label)*6 + 10)
	x = min(x, g.mapArea.Max.X-int(w))
	vector.FillRect(screen, float32(x), float32(y), w, 18, color.RGBA{R: 14, G: 16, B: 20, A: 235}, false)
	vector.StrokeRect(screen, float32(x), float32(y), w, 18, 1.0, color.RGBA{R: 80, G: 200, B: 255, A: 200}, false)
	ebitenutil.DebugPrintAt(screen, label, x+5, y+1)
}
