package game

import (
	"errors"
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	log "github.com/sirupsen/logrus"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
	xdraw "golang.org/x/image/draw"

	"github.com/Garsondee/Map-Viewer/internal/config"
	"github.com/Garsondee/Map-Viewer/internal/render"
	"github.com/Garsondee/Map-Viewer/internal/viewport"
	"github.com/Garsondee/Map-Viewer/internal/worldmap"
)

// hudScale is the integer upscale factor applied to HUD text.
const hudScale = 2

// frameDT is the fixed update step; ebiten runs Update at 60 TPS.
const frameDT = float32(1.0 / 60)

// Game is the map canvas: an ebiten.Game that paints the visible window of
// a map tile by tile and drives a viewport.Model from keyboard, mouse and
// scrollbars.
type Game struct {
	cfg     config.Config
	world   *worldmap.Map
	model   *viewport.Model
	sync    *viewport.ScrollSync
	bars    [2]scrollbar
	comp    *render.Compositor
	watcher *render.Watcher

	width, height int
	mapArea       image.Rectangle
	tileSize      int

	// Tiles are composited on the CPU into frame, then uploaded to frameImg.
	frame    *image.RGBA
	frameImg *ebiten.Image
	dirty    *dirtySet

	status    *StatusLog
	inspector Inspector
	inspBuf   *ebiten.Image
	hudBuf    *ebiten.Image
	showHUD   bool

	pulse      *gween.Tween // selection outline alpha
	pulseAlpha float32

	loads   chan loadResult
	loading bool

	prevKeys       map[ebiten.Key]bool
	prevMouseLeft  bool
	prevMouseRight bool
	dragAxis       int // 1 + axis of the scrollbar being dragged, 0 if none

	cancels []func()
	log     *log.Entry
}

// New creates a canvas for m. It fails if m's format version has no tile
// scale, since nothing could be drawn.
func New(cfg config.Config, m *worldmap.Map) (*Game, error) {
	if _, err := viewport.TileSize(m.Version(), viewport.DefaultZoom); err != nil {
		return nil, err
	}
	chain, err := cfg.MatcherChain()
	if err != nil {
		return nil, err
	}
	comp := render.NewCompositor(render.NewImageCache(cfg.ImageProvider()), chain)
	if cfg.View.Smooth {
		comp.SetScaler(xdraw.ApproxBiLinear)
	}

	g := &Game{
		cfg:       cfg,
		world:     m,
		model:     viewport.NewModel(m),
		comp:      comp,
		width:     cfg.Window.Width,
		height:    cfg.Window.Height,
		dirty:     newDirtySet(),
		status:    NewStatusLog(),
		inspector: Inspector{visible: true},
		showHUD:   true,
		loads:     make(chan loadResult, 1),
		prevKeys:  make(map[ebiten.Key]bool),
		log:       log.WithField("component", "canvas"),
	}
	log.StandardLogger().AddHook(g.status)

	g.sync = viewport.NewScrollSync(g.model, viewport.NewRangeModel(0, 1, 0, 1), viewport.NewRangeModel(0, 1, 0, 1))
	g.cancels = append(g.cancels,
		g.model.ViewportChanged.Subscribe(func(viewport.Change[viewport.VisibleDimensions]) { g.dirty.markAll() }),
		g.model.ZoomChanged.Subscribe(func(c viewport.Change[int]) {
			g.tileSize = c.New
			g.relayout()
		}),
		g.model.MapChanged.Subscribe(func(viewport.Grid) { g.dirty.markAll() }),
		chain.Changed.Subscribe(func(*render.MatcherChain) { g.dirty.markAll() }),
	)

	if cfg.View.WatchImages && cfg.View.ImagesDir != "" {
		w, err := render.WatchImages(cfg.View.ImagesDir, 64)
		if err != nil {
			g.log.WithError(err).Warn("image directory not watched")
		} else {
			g.watcher = w
		}
	}

	g.pulse = gween.New(90, 255, 0.6, ease.InOutSine)
	g.inspBuf = ebiten.NewImage(inspBufW, inspBufH)
	g.applyZoomSetting()
	g.relayout()
	return g, nil
}

// SetMap replaces the displayed map.
func (g *Game) SetMap(m *worldmap.Map) error {
	if _, err := viewport.TileSize(m.Version(), viewport.DefaultZoom); err != nil {
		return err
	}
	g.world = m
	g.model.SetMap(m)
	g.applyZoomSetting()
	g.relayout()
	return nil
}

// Close stops background work and detaches the status panel from logging.
func (g *Game) Close() error {
	for _, c := range g.cancels {
		c()
	}
	g.cancels = nil
	g.sync.Close()
	removeHook(log.StandardLogger(), g.status)
	if g.watcher != nil {
		return g.watcher.Close()
	}
	return nil
}

func (g *Game) applyZoomSetting() {
	if err := g.model.SetZoom(g.cfg.View.DefaultZoom); err != nil {
		g.log.WithError(err).Error("cannot apply configured zoom")
	}
	ts, err := g.model.TileSize()
	if err != nil {
		g.log.WithError(err).Error("no tile size for map")
		return
	}
	g.tileSize = ts
}

// relayout recomputes the map area and scrollbars from the window size and
// resizes the model's window to the tiles that fit.
func (g *Game) relayout() {
	mapW := max(g.width-logPanelWidth-scrollbarThickness, 1)
	mapH := max(g.height-scrollbarThickness, 1)
	g.mapArea = image.Rect(0, 0, mapW, mapH)
	g.bars[viewport.AxisRows] = scrollbar{
		axis:  viewport.AxisRows,
		track: image.Rect(mapW, 0, mapW+scrollbarThickness, mapH),
	}
	g.bars[viewport.AxisCols] = scrollbar{
		axis:  viewport.AxisCols,
		track: image.Rect(0, mapH, mapW, mapH+scrollbarThickness),
	}
	if g.hudBuf == nil || g.hudBuf.Bounds().Dx() != g.width/hudScale || g.hudBuf.Bounds().Dy() != g.height/hudScale {
		if g.hudBuf != nil {
			g.hudBuf.Deallocate()
		}
		g.hudBuf = ebiten.NewImage(max(g.width/hudScale, 1), max(g.height/hudScale, 1))
	}
	if g.tileSize > 0 {
		g.model.Resize(mapH/g.tileSize, mapW/g.tileSize)
	}
	g.dirty.markAll()
}

// Update handles input and background results once per tick.
func (g *Game) Update() error {
	g.pollLoads()
	g.checkDropped()
	if g.watcher != nil {
		if n := g.watcher.Drain(g.comp.Cache()); n > 0 {
			g.log.WithField("images", n).Debug("icons changed on disk")
			g.inspector.forgetIcons()
			g.dirty.markAll()
		}
	}
	if err := g.handleInput(); err != nil {
		if errors.Is(err, viewport.ErrUnsupportedVersion) {
			return err
		}
		g.log.WithError(err).Warn("input not applied")
	}

	a, done := g.pulse.Update(frameDT)
	g.pulseAlpha = a
	if done {
		// Swap direction for the next half cycle.
		if a > 128 {
			g.pulse = gween.New(255, 90, 0.6, ease.InOutSine)
		} else {
			g.pulse = gween.New(90, 255, 0.6, ease.InOutSine)
		}
	}
	g.status.Update(frameDT)
	return nil
}

// paint brings the frame buffer up to date with the model.
func (g *Game) paint() {
	if g.dirty.empty() {
		return
	}
	dims := g.model.VisibleDimensions()
	ts := g.tileSize
	if ts <= 0 {
		return
	}
	w, h := dims.Width()*ts, dims.Height()*ts
	all, tiles := g.dirty.take()
	if g.frame == nil || g.frame.Bounds().Dx() != w || g.frame.Bounds().Dy() != h {
		g.frame = image.NewRGBA(image.Rect(0, 0, max(w, 1), max(h, 1)))
		if g.frameImg != nil {
			g.frameImg.Deallocate()
		}
		g.frameImg = ebiten.NewImage(max(w, 1), max(h, 1))
		all = true
	}
	if all {
		tiles = viewport.TilesIn(g.frame.Bounds(), dims, ts)
	}
	origin := func(p worldmap.Point) image.Point { return viewport.TileOrigin(p, dims, ts) }
	g.comp.DrawRegion(g.frame, g.world, tiles, origin, ts)
	g.frameImg.WritePixels(g.frame.Pix)
}

// Draw renders the map, overlays and panels.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{R: 12, G: 14, B: 12, A: 255})
	g.paint()
	if g.frameImg != nil {
		screen.DrawImage(g.frameImg, nil)
	}
	g.drawMarkers(screen)

	for a, sb := range g.bars {
		sb.draw(screen, g.sync.Widget(viewport.Axis(a)).State(), g.dragAxis == a+1)
	}
	g.status.Draw(screen, g.width-logPanelWidth, g.height)
	g.status.DrawToast(screen, g.mapArea.Min.X, g.mapArea.Max.Y-20, g.mapArea.Dx())
	if g.showHUD {
		g.drawHUD(screen)
	}
	g.drawInspector(screen)
}

// drawMarkers outlines the selection and the interaction point.
func (g *Game) drawMarkers(screen *ebiten.Image) {
	dims := g.model.VisibleDimensions()
	ts := float32(g.tileSize)
	if sel := g.model.Selection(); sel.Valid() && dims.Contains(sel) {
		o := viewport.TileOrigin(sel, dims, g.tileSize)
		c := color.RGBA{R: 255, G: 230, B: 80, A: uint8(max(0, min(255, g.pulseAlpha)))}
		vector.StrokeRect(screen, float32(o.X)+1, float32(o.Y)+1, ts-2, ts-2, 2.0, c, false)
	}
	if ip := g.model.Interaction(); ip.Valid() && dims.Contains(ip) {
		o := viewport.TileOrigin(ip, dims, g.tileSize)
		c := color.RGBA{R: 80, G: 200, B: 255, A: 255}
		vector.StrokeRect(screen, float32(o.X), float32(o.Y), ts, ts, 1.0, c, false)
		g.drawContextMenu(screen, o.X+g.tileSize, o.Y)
	}
}

// Layout follows the window size so the canvas can be resized.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != g.width || outsideHeight != g.height {
		g.width, g.height = outsideWidth, outsideHeight
		g.relayout()
	}
	return g.width, g.height
}
