package game

import (
	"fmt"
	"image/color"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	log "github.com/sirupsen/logrus"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

const (
	logPanelWidth = 320
	logMaxEntries = 60
	logLineHeight = 14
	toastSeconds  = 3
)

// StatusEntry is a single line in the status log.
type StatusEntry struct {
	Time    time.Time
	Level   log.Level
	Message string
}

// StatusLog is a ring buffer of recent messages shown in the side panel.
// It is also a logrus hook, so anything logged at Info or above appears on
// screen. Add may be called from any goroutine.
type StatusLog struct {
	mu      sync.Mutex
	entries []StatusEntry
	head    int
	count   int
	seq     int // bumped on every Add

	// toast state, UI goroutine only
	shownSeq int
	toast    *gween.Tween
	alpha    float32
}

// NewStatusLog creates a status log with a fixed capacity.
func NewStatusLog() *StatusLog {
	return &StatusLog{
		entries: make([]StatusEntry, logMaxEntries),
	}
}

// Add appends an entry to the log.
func (sl *StatusLog) Add(level log.Level, msg string) {
	sl.mu.Lock()
	defer sl.mu.Unlock()
	sl.entries[sl.head] = StatusEntry{Time: time.Now(), Level: level, Message: msg}
	sl.head = (sl.head + 1) % logMaxEntries
	if sl.count < logMaxEntries {
		sl.count++
	}
	sl.seq++
}

// Recent returns entries in chronological order (oldest first).
func (sl *StatusLog) Recent() []StatusEntry {
	sl.mu.Lock()
	defer sl.mu.Unlock()
	result := make([]StatusEntry, sl.count)
	for i := 0; i < sl.count; i++ {
		idx := (sl.head - sl.count + i + logMaxEntries) % logMaxEntries
		result[i] = sl.entries[idx]
	}
	return result
}

// removeHook unregisters h from every level of l.
func removeHook(l *log.Logger, h log.Hook) {
	kept := make(log.LevelHooks)
	for lvl, hooks := range l.Hooks {
		for _, other := range hooks {
			if other != h {
				kept[lvl] = append(kept[lvl], other)
			}
		}
	}
	l.ReplaceHooks(kept)
}

// Levels implements log.Hook.
func (sl *StatusLog) Levels() []log.Level {
	return []log.Level{log.PanicLevel, log.FatalLevel, log.ErrorLevel, log.WarnLevel, log.InfoLevel}
}

// Fire implements log.Hook.
func (sl *StatusLog) Fire(e *log.Entry) error {
	sl.Add(e.Level, entryText(e.Message, e.Data))
	return nil
}

// entryText renders a log entry on one line: the message, its fields in
// key order, then the error.
func entryText(msg string, data log.Fields) string {
	var b strings.Builder
	b.WriteString(msg)
	keys := make([]string, 0, len(data))
	for k := range data {
		if k != "component" && k != log.ErrorKey {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&b, " %s=%v", k, data[k])
	}
	if err, ok := data[log.ErrorKey].(error); ok {
		fmt.Fprintf(&b, ": %v", err)
	}
	return b.String()
}

// Update advances the toast fade by dt seconds, restarting it when a new
// entry has arrived.
func (sl *StatusLog) Update(dt float32) {
	sl.mu.Lock()
	seq := sl.seq
	sl.mu.Unlock()
	if seq != sl.shownSeq {
		sl.shownSeq = seq
		sl.toast = gween.New(255, 0, toastSeconds, ease.InQuad)
	}
	if sl.toast == nil {
		sl.alpha = 0
		return
	}
	a, done := sl.toast.Update(dt)
	sl.alpha = a
	if done {
		sl.toast = nil
		sl.alpha = 0
	}
}

// ToastAlpha is the current opacity of the newest-message toast.
func (sl *StatusLog) ToastAlpha() uint8 {
	return uint8(max(0, min(255, sl.alpha)))
}

func levelColor(l log.Level) color.RGBA {
	switch {
	case l <= log.ErrorLevel:
		return color.RGBA{R: 220, G: 70, B: 70, A: 255}
	case l == log.WarnLevel:
		return color.RGBA{R: 230, G: 180, B: 60, A: 255}
	default:
		return color.RGBA{R: 90, G: 170, B: 90, A: 255}
	}
}

// Draw renders the status panel on the right side of the screen.
func (sl *StatusLog) Draw(screen *ebiten.Image, panelX, panelH int) {
	vector.FillRect(screen, float32(panelX), 0, float32(logPanelWidth), float32(panelH), color.RGBA{R: 10, G: 12, B: 14, A: 248}, false)
	vector.StrokeLine(screen, float32(panelX), 0, float32(panelX), float32(panelH), 1.0, color.RGBA{R: 50, G: 60, B: 70, A: 255}, false)

	vector.FillRect(screen, float32(panelX), 0, float32(logPanelWidth), 16, color.RGBA{R: 20, G: 26, B: 32, A: 255}, false)
	ebitenutil.DebugPrintAt(screen, "STATUS", panelX+8, 0)
	vector.StrokeLine(screen, float32(panelX), 16, float32(panelX+logPanelWidth), 16, 1.0, color.RGBA{R: 50, G: 70, B: 80, A: 200}, false)

	entries := sl.Recent()
	maxVisible := (panelH - 24) / logLineHeight
	start := 0
	if len(entries) > maxVisible {
		start = len(entries) - maxVisible
	}
	y := 20
	for _, e := range entries[start:] {
		vector.FillRect(screen, float32(panelX+5), float32(y+4), 3, 6, levelColor(e.Level), false)
		line := fmt.Sprintf("%s %s", e.Time.Format("15:04:05"), e.Message)
		ebitenutil.DebugPrintAt(screen, clip(line, (logPanelWidth-16)/6), panelX+12, y)
		y += logLineHeight
	}
}

// DrawToast shows the newest message over the bottom of the map area while
// it fades.
func (sl *StatusLog) DrawToast(screen *ebiten.Image, x, y, w int) {
	a := sl.ToastAlpha()
	if a == 0 {
		return
	}
	entries := sl.Recent()
	if len(entries) == 0 {
		return
	}
	e := entries[len(entries)-1]
	vector.FillRect(screen, float32(x), float32(y), float32(w), 18, color.RGBA{R: 0, G: 0, B: 0, A: a / 4 * 3}, false)
	c := levelColor(e.Level)
	c.A = a
	vector.FillRect(screen, float32(x+4), float32(y+6), 4, 6, c, false)
	ebitenutil.DebugPrintAt(screen, clip(e.Message, (w-16)/6), x+12, y+1)
}

// clip shortens s to at most n runes.
func clip(s string, n int) string {
	r := []rune(s)
	if n <= 0 {
		return ""
	}
	if len(r) <= n {
		return s
	}
	if n == 1 {
		return "~"
	}
	return string(r[:n-1]) + "~"
}
