package luabind

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/louisbranch/arithbind/internal/platform/timeouts"
)

// Watch calls run each time the file at path changes, until ctx ends.
// Bursts of events within the debounce window trigger a single run. Errors
// from run are reported through logf and do not stop the watch.
func Watch(ctx context.Context, path string, run func() error, logf func(string, ...any)) error {
	return watch(ctx, path, timeouts.WatchDebounce, run, logf)
}

func watch(ctx context.Context, path string, debounce time.Duration, run func() error, logf func(string, ...any)) error {
	if run == nil {
		return fmt.Errorf("run function is required")
	}
	if logf == nil {
		logf = func(string, ...any) {}
	}
	target, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolve %s: %w", path, err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	// Editors often replace files instead of writing them, so watch the
	// directory and filter by name.
	if err := watcher.Add(filepath.Dir(target)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(target), err)
	}

	trigger := make(chan struct{}, 1)
	var timer *time.Timer
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(debounce, func() {
				select {
				case trigger <- struct{}{}:
				default:
				}
			})
		case <-trigger:
			logf("%s changed, running", path)
			if err := run(); err != nil {
				logf("run %s: %v", path, err)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logf("watch %s: %v", path, err)
		}
	}
}
