package watch

import (
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// debounce is how long the watcher waits after the last filesystem
// event before reporting a change, so editor save bursts and bulk
// copies trigger one regeneration instead of many.
const debounce = 250 * time.Millisecond

// Watcher watches a snippets tree recursively and reports batches of
// changed paths. Directories created while watching are picked up
// automatically.
type Watcher struct {
	root    string
	accept  func(name string) bool
	fsw     *fsnotify.Watcher
	changes chan []string
	errs    chan error
	done    chan struct{}
}

// New creates a Watcher for the tree rooted at root. accept filters
// file events by base name; directory events are always handled so
// new subdirectories get watched. Call Start to begin watching.
func New(root string, accept func(name string) bool) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		root:    root,
		accept:  accept,
		fsw:     fsw,
		changes: make(chan []string, 1),
		errs:    make(chan error, 1),
		done:    make(chan struct{}),
	}

	if err := w.addRecursive(root); err != nil {
		fsw.Close()
		return nil, err
	}
	return w, nil
}

// Changes delivers batches of changed paths, one batch per quiet
// period.
func (w *Watcher) Changes() <-chan []string {
	return w.changes
}

// Errors delivers watcher errors.
func (w *Watcher) Errors() <-chan error {
	return w.errs
}

// Start runs the event loop in a new goroutine.
func (w *Watcher) Start() {
	go w.loop()
}

// Close stops the watcher and releases its OS resources.
func (w *Watcher) Close() error {
	close(w.done)
	return w.fsw.Close()
}

func (w *Watcher) addRecursive(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return w.fsw.Add(path)
		}
		return nil
	})
}

func (w *Watcher) loop() {
	var (
		pending []string
		timer   *time.Timer
		fire    <-chan time.Time
	)

	for {
		select {
		case <-w.done:
			return

		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if ev.Op.Has(fsnotify.Create) {
				if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
					// Watch errors on a vanished directory are not fatal.
					if err := w.addRecursive(ev.Name); err == nil {
						pending = append(pending, ev.Name)
					}
					break
				}
			}
			if !w.accept(filepath.Base(ev.Name)) {
				break
			}
			pending = append(pending, ev.Name)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			select {
			case w.errs <- err:
			default:
			}

		case <-fire:
			if len(pending) > 0 {
				batch := dedupe(pending)
				pending = nil
				select {
				case w.changes <- batch:
				case <-w.done:
					return
				}
			}
			fire = nil
			continue
		}

		if len(pending) > 0 {
			if timer == nil {
				timer = time.NewTimer(debounce)
			} else {
				timer.Reset(debounce)
			}
			fire = timer.C
		}
	}
}

func dedupe(paths []string) []string {
	seen := make(map[string]bool, len(paths))
	var out []string
	for _, p := range paths {
		if !seen[p] {
			seen[p] = true
			out = append(out, p)
		}
	}
	return out
}
