package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
)

const debounceDelay = 200 * time.Millisecond

func newWatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch [path]",
		Short: "Re-check an fpl document every time it changes",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := defaultPath
			if len(args) > 0 {
				path = args[0]
			}
			return runWatch(cmd.OutOrStdout(), path)
		},
	}
}

// runWatch re-runs runCheck every time path's containing directory
// reports a write to path, debouncing rapid successive writes (editors
// commonly emit more than one per save) and exiting cleanly on SIGINT.
func runWatch(w io.Writer, path string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	dir := filepath.Dir(path)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	_ = runCheck(w, path)
	fmt.Fprintf(w, "\nwatching %s for changes... (press Ctrl+C to exit)\n", path)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	var debounce *time.Timer
	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Has(fsnotify.Write) && filepath.Base(event.Name) == filepath.Base(path) {
				if verbose {
					log.Printf("write event for %s, debouncing %s", event.Name, debounceDelay)
				}
				if debounce != nil {
					debounce.Stop()
				}
				debounce = time.AfterFunc(debounceDelay, func() {
					_ = runCheck(w, path)
					fmt.Fprintf(w, "\nwatching %s for changes... (press Ctrl+C to exit)\n", path)
				})
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintf(w, "watch error: %v\n", err)
		case <-sigChan:
			return nil
		}
	}
}
