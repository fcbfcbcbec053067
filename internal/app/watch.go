package app

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"

	"github.com/five82/slotboard/internal/command"
	"github.com/five82/slotboard/internal/config"
)

const watchDebounce = 250 * time.Millisecond

// addressSetter is the part of the controller the watcher drives.
type addressSetter interface {
	SetAddress(typed string)
	Execute(ctx context.Context, req command.Request) command.Outcome
}

// StartWatcher watches the config file and, when its api_url changes, drops
// the resolved base and re-resolves against the new address. It returns
// immediately.
func StartWatcher(ctx context.Context, path string, target addressSetter, logger zerolog.Logger) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	// Editors replace files on save, so watch the directory.
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		_ = watcher.Close()
		return fmt.Errorf("watch %s: %w", filepath.Dir(path), err)
	}

	last, _ := currentAPIURL(path)
	go func() {
		defer watcher.Close()

		var pending <-chan time.Time
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(ev.Name) != filepath.Clean(path) {
					continue
				}
				if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
					continue
				}
				pending = time.After(watchDebounce)
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.Warn().Err(err).Msg("config watch error")
			case <-pending:
				pending = nil
				next, ok := currentAPIURL(path)
				if !ok || next == last {
					continue
				}
				logger.Info().Str("from", last).Str("to", next).Msg("api_url changed")
				last = next
				target.SetAddress(next)
				target.Execute(ctx, command.Request{Action: command.ActionTest})
			}
		}
	}()
	return nil
}

// currentAPIURL reports false while the file does not parse, which is common
// mid-save.
func currentAPIURL(path string) (string, bool) {
	cfg, err := config.Load(path)
	if err != nil {
		return "", false
	}
	return cfg.APIURL, true
}
