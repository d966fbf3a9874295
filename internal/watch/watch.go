// Package watch reruns stub generation whenever ugen sources change.
package watch

import (
	"context"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// debouncePeriod coalesces editor save bursts into a single rerun.
const debouncePeriod = 500 * time.Millisecond

// Runner is invoked once per debounced burst of source changes.
type Runner func() error

// Watcher triggers a Runner when .py files under a directory change.
type Watcher struct {
	dir      string
	log      *zap.SugaredLogger
	run      Runner
	debounce time.Duration
}

// New creates a watcher over dir.
func New(dir string, log *zap.SugaredLogger, run Runner) *Watcher {
	return &Watcher{dir: dir, log: log, run: run, debounce: debouncePeriod}
}

// Watch blocks until ctx is canceled, invoking the Runner after each
// debounced burst of source changes. The caller is expected to have
// completed one successful run before entering the loop; rerun failures
// are logged rather than returned, so a transient syntax error does not
// kill the session.
func (w *Watcher) Watch(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, "creating watcher")
	}
	defer fw.Close()

	if err := fw.Add(w.dir); err != nil {
		return errors.Wrapf(err, "watching %s", w.dir)
	}
	w.log.Infow("watching for source changes", "dir", w.dir)

	runs := make(chan struct{}, 1)
	var debounce *time.Timer
	defer func() {
		if debounce != nil {
			debounce.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if !w.relevant(event) {
				continue
			}
			w.log.Debugw("source changed", "file", event.Name, "op", event.Op.String())
			if debounce != nil {
				debounce.Stop()
			}
			debounce = time.AfterFunc(w.debounce, func() {
				select {
				case runs <- struct{}{}:
				default:
				}
			})

		case <-runs:
			if err := w.run(); err != nil {
				w.log.Errorw("regeneration failed", "error", err)
			}

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.log.Warnw("watcher error", "error", err)
		}
	}
}

// relevant reports whether an event should trigger regeneration. The .py
// suffix test also screens out the .pyi stubs this tool writes itself,
// which would otherwise retrigger the watcher forever.
func (w *Watcher) relevant(event fsnotify.Event) bool {
	if !strings.HasSuffix(event.Name, ".py") {
		return false
	}
	return event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) != 0
}
