// Command deckgen builds institutional presentation decks from JSON specs.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/VantageDataChat/GoDeck/internal/config"
	"github.com/VantageDataChat/GoDeck/internal/engine"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

// exitCode ends the process with a code after the command printed its own
// result.
type exitCode int

func (e exitCode) Error() string { return fmt.Sprintf("exit status %d", int(e)) }

// app is the state shared by every command.
type app struct {
	verbose    bool
	configPath string

	cfg    *config.Config
	logger *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "deckgen",
		Short: "Institutional presentation engine",
		Long: `deckgen turns a JSON deck spec into a 16:9 PowerPoint file.

Charts are rendered as PNG images and placed on branded slides; the result is
printed to stdout as a single JSON line. Logs go to stderr.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Enable debug logging")
	root.PersistentFlags().StringVar(&a.configPath, "config", "", "Path to a YAML config file")

	root.AddCommand(
		a.generateCmd(),
		a.assembleCmd(),
		a.previewCmd(),
		a.watchCmd(),
		a.perfCmd(),
		a.palettesCmd(),
		a.chartsCmd(),
		a.versionCmd(),
	)
	return root
}

func (a *app) init() error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	logger, err := cfg.Logging.Logger(a.verbose)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	a.cfg, a.logger = cfg, logger
	return nil
}

func (a *app) engineOptions() engine.Options {
	opts := engine.Options{
		Workers:      a.cfg.Workers,
		Logger:       a.logger,
		PreviewWidth: a.cfg.Preview.Width,
		FontDirs:     a.cfg.Fonts.Dirs,
		OutputDir:    a.cfg.OutputDir,
		ChartDir:     a.cfg.ChartDir,
		Palette:      a.cfg.DefaultPalette,
	}
	if a.cfg.Preview.Enabled {
		opts.PreviewDir = filepath.Join(a.cfg.OutputDir, "previews")
	}
	return opts
}

// openInput opens path, or stdin when path is empty or "-".
func openInput(cmd *cobra.Command, path string) (io.ReadCloser, error) {
	if path == "" || path == "-" {
		return io.NopCloser(cmd.InOrStdin()), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input: %w", err)
	}
	return f, nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()

	var code exitCode
	switch {
	case err == nil:
	case errors.As(err, &code):
		os.Exit(int(code))
	default:
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
