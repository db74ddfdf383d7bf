package lint

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/piwi3910/azrid/pkg/policy"
)

// Watch lints path, then blocks re-linting it on every change until ctx
// is cancelled. Policy paths are watched too, so edited policies apply
// to the next run. Each report is passed to onReport.
func (l *Linter) Watch(ctx context.Context, path string, onReport func(*Report)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	// Watch the directory: editors replace files on save, which drops
	// a watch on the file itself.
	dir := filepath.Dir(path)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	if len(l.opts.PolicyPaths) > 0 {
		err := l.loader.Watch(ctx, l.opts.PolicyPaths, func(policies []policy.Policy) error {
			return l.ReloadPolicies(ctx, policies)
		})
		if err != nil {
			return fmt.Errorf("failed to watch policy paths: %w", err)
		}
	}

	l.tel.Metrics.WatchStarted()
	defer l.tel.Metrics.WatchStopped()

	l.logger.WithField("path", path).Info("Watching for changes")

	lint := func() {
		report, err := l.LintFile(ctx, path)
		if err != nil {
			l.logger.WithError(err).Error("Lint run failed")
			return
		}
		onReport(report)
	}

	lint()

	target := filepath.Clean(path)
	var relintTimer *time.Timer
	relintDelay := 500 * time.Millisecond

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Base(event.Name) != filepath.Base(target) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}

			l.logger.WithField("file", event.Name).Debug("Input file changed")

			if relintTimer != nil {
				relintTimer.Stop()
			}
			relintTimer = time.AfterFunc(relintDelay, lint)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			l.logger.WithError(err).Error("Watcher error")
		}
	}
}
