package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
)

// watchDebounce coalesces the burst of events editors produce per save.
const watchDebounce = 150 * time.Millisecond

func newWatchCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "watch <sqlFile> [namespace] [outputDir]",
		Short: "Regenerate entities whenever the SQL file changes",
		Args:  cobra.RangeArgs(1, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveGeneratorConfig(*configPath, args[1:])
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return watchAndGenerate(ctx, args[0], cfg, newReporter(cmd.OutOrStdout(), cmd.ErrOrStderr()), nil)
		},
	}
}

// watchAndGenerate generates once and then again after every change to
// sqlFile until ctx is done. Generation failures after the first run are
// reported and do not stop the loop. ready, if non-nil, is called once the
// watcher is installed.
func watchAndGenerate(ctx context.Context, sqlFile string, cfg *GeneratorConfig, r *reporter, ready func()) error {
	if _, err := runGenerate(sqlFile, cfg, r); err != nil {
		return err
	}

	absFile, err := filepath.Abs(sqlFile)
	if err != nil {
		return fmt.Errorf("resolve SQL file: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create file watcher: %w", err)
	}
	defer watcher.Close()

	// Watch the directory: editors often replace the file on save.
	if err := watcher.Add(filepath.Dir(absFile)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(absFile), err)
	}
	r.infof("Watching %s (Ctrl+C to stop)", sqlFile)
	if ready != nil {
		ready()
	}

	var debounce <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != absFile {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 {
				debounce = time.After(watchDebounce)
			}
		case <-debounce:
			debounce = nil
			r.infof("Change detected in %s, regenerating...", sqlFile)
			if _, err := runGenerate(sqlFile, cfg, r); err != nil {
				r.errorf("%v", err)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			if !errors.Is(err, fsnotify.ErrEventOverflow) {
				r.errorf("file watcher: %v", err)
			}
		}
	}
}
