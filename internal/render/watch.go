package render

import (
	"fmt"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	log "github.com/sirupsen/logrus"
)

// Watcher reports icon files that changed in an image directory. Names
// arrive on Changed; the UI goroutine drains it and invalidates the cache.
type Watcher struct {
	fsw     *fsnotify.Watcher
	dir     string
	changed chan string
	done    chan struct{}
	wg      sync.WaitGroup
	once    sync.Once
	log     *log.Entry
}

// WatchImages starts watching dir. buf sizes the Changed channel; events
// that do not fit are dropped and logged.
func WatchImages(dir string, buf int) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := fsw.Add(dir); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("watch %s: %w", dir, err)
	}
	if buf <= 0 {
		buf = 64
	}
	w := &Watcher{
		fsw:     fsw,
		dir:     dir,
		changed: make(chan string, buf),
		done:    make(chan struct{}),
		log:     log.WithFields(log.Fields{"component": "image-watcher", "dir": dir}),
	}
	w.wg.Add(1)
	go w.loop()
	return w, nil
}

// Changed delivers base filenames of created, written, removed or renamed
// files.
func (w *Watcher) Changed() <-chan string { return w.changed }

// Drain empties Changed without blocking and invalidates each name in c.
// It returns how many names were handled.
func (w *Watcher) Drain(c *ImageCache) int {
	n := 0
	for {
		select {
		case name, ok := <-w.changed:
			if !ok {
				return n
			}
			c.Invalidate(name)
			n++
		default:
			return n
		}
	}
}

// Close stops the watcher and closes Changed.
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.done)
		err = w.fsw.Close()
		w.wg.Wait()
		close(w.changed)
	})
	return err
}

func (w *Watcher) loop() {
	defer w.wg.Done()
	for {
		select {
		case <-w.done:
			return
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if !relevant(ev.Op) {
				continue
			}
			name := filepath.Base(ev.Name)
			select {
			case w.changed <- name:
			default:
				w.log.WithField("image", name).Warn("change queue full, event dropped")
			}
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.log.WithError(err).Error("watch error")
		}
	}
}

func relevant(op fsnotify.Op) bool {
	return op.Has(fsnotify.Create) || op.Has(fsnotify.Write) ||
		op.Has(fsnotify.Remove) || op.Has(fsnotify.Rename)
}
