package game

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/Garsondee/Map-Viewer/internal/render"
	"github.com/Garsondee/Map-Viewer/internal/worldmap"
)

// Inspector panel: rendered into an offscreen buffer at 1x then blitted at inspScale.
const (
	inspScale = 2   // scale factor for inspector text rendering
	inspBufW  = 220 // buffer width in pixels (~36 chars at debug font)
	inspBufH  = 200 // buffer height in pixels
	inspPad   = 4   // padding in buffer-space pixels
	inspLineH = 13  // line height in buffer-space pixels
	inspIcon  = 10  // icon edge in buffer-space pixels
)

// Inspector holds the panel's toggle state. It always shows the selected tile.
type Inspector struct {
	visible bool
	rawView bool // false = fixtures in draw order, true = raw tile contents
	icons   map[string]*ebiten.Image
}

// inspectorLine is one row of the panel. Dim rows are fixtures the matcher
// chain hides. Icon names an image from the compositor's cache.
type inspectorLine struct {
	Text string
	Icon string
	Dim  bool
}

// icon returns the GPU copy of the cached icon called name.
func (in *Inspector) icon(cache *render.ImageCache, name string) *ebiten.Image {
	if img, ok := in.icons[name]; ok {
		return img
	}
	if in.icons == nil {
		in.icons = make(map[string]*ebiten.Image)
	}
	img := ebiten.NewImageFromImage(cache.Image(name))
	in.icons[name] = img
	return img
}

// forgetIcons drops the GPU copies after icons change on disk.
func (in *Inspector) forgetIcons() {
	for _, img := range in.icons {
		img.Deallocate()
	}
	clear(in.icons)
}

// inspectorLines describes the tile at p. The curated view lists terrain
// then every fixture in z-order, top first; the raw view lists TileContents
// as stored.
func inspectorLines(m *worldmap.Map, chain *render.MatcherChain, p worldmap.Point, raw bool) []inspectorLine {
	if !m.Contains(p) {
		return []inspectorLine{{Text: "no tile selected", Dim: true}}
	}
	var out []inspectorLine
	add := func(icon string, dim bool, format string, args ...any) {
		out = append(out, inspectorLine{Text: fmt.Sprintf(format, args...), Icon: icon, Dim: dim})
	}

	if raw {
		for _, f := range worldmap.TileContents(m, p) {
			add(f.Image(), false, "#%d %s %s [%s]", f.ID(), f.Kind(), f.Image(), f.Tag())
		}
		if len(out) == 0 {
			add("", true, "(empty)")
		}
		return out
	}

	terrain := m.BaseTerrain(p)
	add(terrain.ImageName(), false, "terrain: %s", terrain)
	if m.Mountainous(p) {
		add("", false, "mountainous")
	}
	if r := m.Rivers(p); !r.Empty() {
		add("", false, "rivers: %s", r)
	}
	if r := m.Roads(p); !r.Empty() {
		add("", false, "roads: %s", r)
	}
	if m.Bookmarked(p) {
		add("", false, "bookmarked")
	}
	top := true
	for _, f := range chain.Sorted(m.Fixtures(p)) {
		shown := chain.ShouldDisplay(f)
		mark := " "
		switch {
		case !shown:
			mark = "-"
		case top:
			mark = "*"
			top = false
		}
		desc := f.ShortDescription()
		if o, ok := f.(worldmap.Owned); ok {
			desc = fmt.Sprintf("%s (%s)", desc, o.Owner().Name)
		}
		add(f.Image(), !shown, "%s %s: %s", mark, f.Kind(), desc)
	}
	return out
}

// drawInspector renders the selected tile into inspBuf and blits it at the
// bottom-right of the map area.
func (g *Game) drawInspector(screen *ebiten.Image) {
	if !g.inspector.visible {
		return
	}
	g.inspBuf.Clear()
	buf := g.inspBuf
	bw := float32(inspBufW)
	bh := float32(inspBufH)

	panelBg := color.RGBA{R: 14, G: 16, B: 14, A: 230}
	panelBorder := color.RGBA{R: 55, G: 80, B: 55, A: 255}
	vector.FillRect(buf, 0, 0, bw, bh, panelBg, false)
	vector.StrokeRect(buf, 0, 0, bw, bh, 1.0, panelBorder, false)
	vector.StrokeLine(buf, 1, 1, bw-1, 1, 1.0, color.RGBA{R: 70, G: 110, B: 70, A: 60}, false)

	lx, ly := inspPad, inspPad
	sel := g.model.Selection()
	ebitenutil.DebugPrintAt(buf, fmt.Sprintf("[ tile %s ]", sel), lx, ly)
	ly += inspLineH + 2

	viewName := "Z-ORDER"
	if g.inspector.rawView {
		viewName = "RAW"
	}
	ebitenutil.DebugPrintAt(buf, fmt.Sprintf("view: %s  [V] toggle", viewName), lx, ly)
	ly += inspLineH + 4
	vector.StrokeLine(buf, float32(lx), float32(ly), bw-float32(inspPad), float32(ly), 1.0, panelBorder, false)
	ly += 4

	dim := color.RGBA{R: 90, G: 90, B: 90, A: 255}
	tx := lx + inspIcon + 3
	for _, l := range inspectorLines(g.world, g.comp.Chain(), sel, g.inspector.rawView) {
		if ly > inspBufH-inspLineH {
			break
		}
		if l.Icon != "" {
			icon := g.inspector.icon(g.comp.Cache(), l.Icon)
			b := icon.Bounds()
			op := &ebiten.DrawImageOptions{}
			op.GeoM.Scale(float64(inspIcon)/float64(max(b.Dx(), 1)), float64(inspIcon)/float64(max(b.Dy(), 1)))
			op.GeoM.Translate(float64(lx), float64(ly+1))
			if l.Dim {
				op.ColorScale.ScaleAlpha(0.35)
			}
			buf.DrawImage(icon, op)
		} else if l.Dim {
			vector.FillRect(buf, float32(lx), float32(ly+6), 3, 1, dim, false)
		}
		text := clip(l.Text, (inspBufW-2*inspPad-inspIcon-3)/6)
		ebitenutil.DebugPrintAt(buf, text, tx, ly)
		ly += inspLineH
	}

	px := g.mapArea.Max.X - inspBufW*inspScale - 8
	py := g.mapArea.Max.Y - inspBufH*inspScale - 8
	opts := &ebiten.DrawImageOptions{}
	opts.GeoM.Scale(float64(inspScale), float64(inspScale))
	opts.GeoM.Translate(float64(px), float64(py))
	screen.DrawImage(buf, opts)
}
