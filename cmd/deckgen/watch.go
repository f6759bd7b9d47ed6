package main

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/VantageDataChat/GoDeck/internal/engine"
)

const watchDebounce = 300 * time.Millisecond

func (a *app) watchCmd() *cobra.Command {
	var input string
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Rebuild the deck whenever the deck file changes",
		Long: `Builds the deck once, then again after every change to --input until
interrupted. Each build prints one JSON result line.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := a.engineOptions()
			build := func() {
				in, err := openInput(cmd, input)
				if err != nil {
					a.logger.Error("cannot open spec", zap.Error(err))
					return
				}
				defer in.Close()
				engine.Run(cmd.Context(), in, cmd.OutOrStdout(), opts)
			}
			return watch(cmd.Context(), input, watchDebounce, build, a.logger)
		},
	}
	cmd.Flags().StringVarP(&input, "input", "i", "", "Spec file to watch")
	_ = cmd.MarkFlagRequired("input")
	return cmd
}

// watch calls build once, then again each time path settles after a change,
// until ctx is done. The parent directory is watched so that editors which
// replace the file on save are followed.
func watch(ctx context.Context, path string, debounce time.Duration, build func(), logger *zap.Logger) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("failed to resolve %s: %w", path, err)
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer w.Close()
	if err := w.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", filepath.Dir(abs), err)
	}

	build()
	logger.Info("watching spec", zap.String("path", abs))

	timer := time.NewTimer(debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != abs {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			logger.Debug("spec changed", zap.String("op", event.Op.String()))
			timer.Reset(debounce)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watcher error", zap.Error(err))
		case <-timer.C:
			build()
		}
	}
}
