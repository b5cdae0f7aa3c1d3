package cli

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/matzehuels/otelviz/pkg/io"
)

// watchDebounce coalesces the burst of events an editor save produces.
const watchDebounce = 150 * time.Millisecond

// watchRender renders once, then again whenever a watched description
// changes, until ctx is cancelled. Render errors are reported and the watch
// continues.
func (c *CLI) watchRender(ctx context.Context, inputs []string, opts *renderOpts) error {
	logger := loggerFromContext(ctx)

	render := func() {
		if _, err := c.runRender(ctx, inputs, opts); err != nil {
			printError("%v", err)
		}
	}
	render()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	match, err := addWatches(watcher, inputs)
	if err != nil {
		return err
	}

	printInfo("Watching %d input(s) for changes (ctrl+c to stop)", len(inputs))
	return watchLoop(ctx, watcher, match, watchDebounce, func(name string) {
		logger.Debugf("Change detected: %s", name)
		render()
	})
}

// addWatches registers the directories holding inputs. Files are watched
// through their parent directory, since editors often replace a file on
// save rather than write it in place. The returned func reports whether an
// event path belongs to an input.
func addWatches(w *fsnotify.Watcher, inputs []string) (func(string) bool, error) {
	files := make(map[string]bool)
	dirs := make(map[string]bool)

	for _, in := range inputs {
		abs, err := filepath.Abs(in)
		if err != nil {
			return nil, err
		}
		info, err := os.Stat(abs)
		if err != nil {
			return nil, err
		}
		dir := abs
		if info.IsDir() {
			dirs[abs] = true
		} else {
			files[abs] = true
			dir = filepath.Dir(abs)
		}
		if err := w.Add(dir); err != nil {
			return nil, err
		}
	}

	return func(name string) bool {
		abs, err := filepath.Abs(name)
		if err != nil {
			return false
		}
		return files[abs] || (dirs[filepath.Dir(abs)] && io.IsDescriptionFile(abs))
	}, nil
}

// watchLoop calls onChange once per burst of relevant events, after the
// burst has been quiet for debounce.
func watchLoop(ctx context.Context, w *fsnotify.Watcher, match func(string) bool, debounce time.Duration, onChange func(name string)) error {
	logger := loggerFromContext(ctx)

	timer := time.NewTimer(debounce)
	timer.Stop()
	defer timer.Stop()

	var last string
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			if !match(ev.Name) {
				continue
			}
			last = ev.Name
			timer.Reset(debounce)
		case <-timer.C:
			onChange(last)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch error", "error", err)
		}
	}
}
