package tag

import (
	"errors"
	"fmt"
	"log"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/Paintersrp/kf/internal/pathutil"
)

const defaultDebounce = 250 * time.Millisecond

// Watcher reloads the store when tag files change on disk, so external edits
// to the human-editable index show up without a restart. Events are debounced
// because a single save produces several filesystem notifications.
type Watcher struct {
	store    *Store
	fsw      *fsnotify.Watcher
	done     chan struct{}
	once     sync.Once
	debounce time.Duration

	mu       sync.Mutex
	onReload func(error)
}

// NewWatcher watches the store's tags directory. Call Start to begin
// delivering reloads.
func NewWatcher(store *Store) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating tag watcher: %w", err)
	}

	if err := fsw.Add(store.Dir()); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("watching %s: %w", store.Dir(), err)
	}

	return &Watcher{
		store:    store,
		fsw:      fsw,
		done:     make(chan struct{}),
		debounce: defaultDebounce,
	}, nil
}

// OnReload registers a callback invoked after each reload attempt with its
// result. Without one, failures are logged.
func (w *Watcher) OnReload(fn func(error)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onReload = fn
}

// Start begins watching in a background goroutine.
func (w *Watcher) Start() {
	go w.run()
}

func (w *Watcher) run() {
	var timer *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case <-w.done:
			if timer != nil {
				timer.Stop()
			}
			return

		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if !relevantEvent(ev) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
				fire = timer.C
				continue
			}
			if !timer.Stop() {
				select {
				case <-timer.C:
				default:
				}
			}
			timer.Reset(w.debounce)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			log.Printf("tag watcher: %v", err)

		case <-fire:
			timer = nil
			fire = nil
			w.reload()
		}
	}
}

func (w *Watcher) reload() {
	err := w.store.Reload()
	if errors.Is(err, ErrClosed) {
		return
	}

	w.mu.Lock()
	fn := w.onReload
	w.mu.Unlock()

	if fn != nil {
		fn(err)
		return
	}
	if err != nil {
		log.Printf("reloading tags: %v", err)
	}
}

func relevantEvent(ev fsnotify.Event) bool {
	base := filepath.Base(ev.Name)
	if !strings.HasSuffix(base, ".yaml") || pathutil.IsHiddenName(base) {
		return false
	}

	return ev.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) != 0
}

// Close stops the watcher. Safe to call more than once.
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.done)
		err = w.fsw.Close()
	})

	return err
}
