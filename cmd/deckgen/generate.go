package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/VantageDataChat/GoDeck/internal/assemble"
	"github.com/VantageDataChat/GoDeck/internal/deckspec"
	"github.com/VantageDataChat/GoDeck/internal/engine"
	"github.com/VantageDataChat/GoDeck/internal/perf"
)

func (a *app) generateCmd() *cobra.Command {
	var input string
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Build a deck from a JSON spec",
		Long: `Reads a deck spec from --input (stdin by default), renders every chart,
builds the slides and writes the .pptx. Prints one JSON result line.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := openInput(cmd, input)
			if err != nil {
				return err
			}
			defer in.Close()
			if code := engine.Run(cmd.Context(), in, cmd.OutOrStdout(), a.engineOptions()); code != 0 {
				return exitCode(code)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&input, "input", "i", "", "Spec file (default stdin)")
	return cmd
}

func (a *app) assembleCmd() *cobra.Command {
	var input string
	cmd := &cobra.Command{
		Use:   "assemble",
		Short: "Turn slide screenshots into a full-bleed deck",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := openInput(cmd, input)
			if err != nil {
				return err
			}
			defer in.Close()
			if code := assemble.Run(cmd.Context(), in, cmd.OutOrStdout(), a.logger); code != 0 {
				return exitCode(code)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&input, "input", "i", "", "Request file (default stdin)")
	return cmd
}

func (a *app) previewCmd() *cobra.Command {
	var input, out string
	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Build a deck and render every slide to PNG",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := openInput(cmd, input)
			if err != nil {
				return err
			}
			defer in.Close()
			spec, err := deckspec.Decode(in)
			if err != nil {
				return err
			}
			spec.PreviewDir = out
			res, err := engine.Generate(cmd.Context(), spec, a.engineOptions())
			if err != nil {
				a.logger.Error("preview failed", zap.Error(err))
				_ = json.NewEncoder(cmd.OutOrStdout()).Encode(deckspec.Failure(err))
				return exitCode(1)
			}
			return json.NewEncoder(cmd.OutOrStdout()).Encode(res)
		},
	}
	cmd.Flags().StringVarP(&input, "input", "i", "", "Spec file (default stdin)")
	cmd.Flags().StringVarP(&out, "out", "o", "", "Directory for slide images")
	_ = cmd.MarkFlagRequired("out")
	return cmd
}

func (a *app) perfCmd() *cobra.Command {
	var (
		input string
		table string
	)
	cmd := &cobra.Command{
		Use:   "perf",
		Short: "Compute asset performance from price histories",
		Long: `Reads {"assets":[{"name","closes","dates"}],"as_of"} and prints the
performance of every asset keyed by name. With --table, prints a
sparkline_table chart spec with that title instead.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			enc := json.NewEncoder(cmd.OutOrStdout())
			fail := func(err error) error {
				a.logger.Error("performance failed", zap.Error(err))
				_ = enc.Encode(map[string]string{"error": err.Error()})
				return exitCode(1)
			}

			in, err := openInput(cmd, input)
			if err != nil {
				return err
			}
			defer in.Close()
			req, err := perf.Decode(in)
			if err != nil {
				return fail(err)
			}
			res, err := perf.Compute(*req, a.logger)
			if err != nil {
				return fail(err)
			}
			if table == "" {
				return enc.Encode(res)
			}
			spec, err := res.Chart(table, req.Names()...)
			if err != nil {
				return fail(fmt.Errorf("failed to build table: %w", err))
			}
			return enc.Encode(spec)
		},
	}
	cmd.Flags().StringVarP(&input, "input", "i", "", "Price history file (default stdin)")
	cmd.Flags().StringVar(&table, "table", "", "Print a sparkline_table chart spec with this title")
	return cmd
}
