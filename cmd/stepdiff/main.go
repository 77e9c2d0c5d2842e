package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/coolbeans/stepdiff/pkg/align"
	"github.com/coolbeans/stepdiff/pkg/config"
	"github.com/coolbeans/stepdiff/pkg/report"
	"github.com/coolbeans/stepdiff/pkg/summary"
	"github.com/coolbeans/stepdiff/pkg/table"
)

var version = "0.1.0"

func main() {
	logger := newLogger()
	defer func() { _ = logger.Sync() }()
	zap.ReplaceGlobals(logger)

	rootCmd := &cobra.Command{
		Use:   "stepdiff",
		Short: "Compare two versions of a test-case specification table",
		Long: `stepdiff compares two versions of a structured test-case specification
exported as HTML tables and reports every step as added, deleted, modified
or unchanged, with word-level diffs inside modified cells.

A qualifying document contains a table whose header row carries the columns
"Step Order", "Procedure" and "Expected Outcome".`,
		Version: version,
	}

	rootCmd.AddCommand(compareCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newLogger() *zap.Logger {
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	logger, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}

func compareCmd() *cobra.Command {
	var (
		configPath string
		mode       string
		format     string
		output     string
		summarize  bool
		noColor    bool
	)

	cmd := &cobra.Command{
		Use:   "compare <original.html> <revised.html>",
		Short: "Compare two exported specification documents",
		Long: `Compare locates the test-step table in each document, rebuilds the
logical steps (merging continuation rows and tagging section headings) and
aligns the two versions.

Matching modes:
  identifier  match steps by their "Step Order" field (default)
  signature   match steps by the leading lines of their procedure text,
              for documents that were renumbered between versions

Example:
  stepdiff compare plan-v1.html plan-v2.html
  stepdiff compare plan-v1.html plan-v2.html --mode signature --format json
  stepdiff compare plan-v1.html plan-v2.html --format html --output report.html`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("mode") {
				mode = cfg.Mode
			}
			if !cmd.Flags().Changed("format") {
				format = cfg.Format
			}
			colored := cfg.Color && !noColor && output == ""

			matchMode, err := align.ParseMode(mode)
			if err != nil {
				return err
			}

			result, err := compareFiles(args[0], args[1], matchMode)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if output != "" {
				f, err := os.Create(output)
				if err != nil {
					return fmt.Errorf("creating %s: %w", output, err)
				}
				defer f.Close()
				out = f
			}

			title := fmt.Sprintf("%s vs %s", filepath.Base(args[0]), filepath.Base(args[1]))
			if err := renderResult(out, result, format, colored, title); err != nil {
				return err
			}

			if summarize || cfg.Summary.Enabled {
				text := summaryText(cmd, cfg, result)
				if _, err := fmt.Fprintf(cmd.OutOrStdout(), "\nSummary:\n%s\n", text); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "path to a config file (default .stepdiff.yaml)")
	cmd.Flags().StringVar(&mode, "mode", "identifier", "row matching mode: identifier or signature")
	cmd.Flags().StringVar(&format, "format", "text", "output format: text, json or html")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write the report to a file instead of stdout")
	cmd.Flags().BoolVar(&summarize, "summarize", false, "generate a natural-language summary of the changes")
	cmd.Flags().BoolVar(&noColor, "no-color", false, "disable colored output")

	return cmd
}

// compareFiles loads both documents and aligns their record sequences.
func compareFiles(originalPath, revisedPath string, mode align.Mode) (*align.Result, error) {
	original, err := loadSequence(originalPath)
	if err != nil {
		return nil, err
	}
	revised, err := loadSequence(revisedPath)
	if err != nil {
		return nil, err
	}
	return align.Align(original, revised, mode)
}

// loadSequence extracts the qualifying table from one document and rebuilds
// its logical records.
func loadSequence(path string) (*table.RecordSequence, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	document := filepath.Base(path)
	grid, err := table.ExtractGrid(f, document)
	if err != nil {
		return nil, err
	}
	return table.Reconstruct(grid, document)
}

func renderResult(out io.Writer, result *align.Result, format string, colored bool, title string) error {
	switch format {
	case "text":
		return report.NewTextRenderer(out, colored).Render(result)
	case "json":
		return report.WriteJSON(out, result)
	case "html":
		return report.WriteHTML(out, result, title)
	}
	return fmt.Errorf("unknown output format %q (want text, json or html)", format)
}

// summaryText runs the downstream summary step. It never fails the
// comparison: any error degrades to the labeled fallback message.
func summaryText(cmd *cobra.Command, cfg *config.Config, result *align.Result) string {
	gen, err := summary.NewGenerator(cmd.Context(), cfg.Summary.APIKey, cfg.Summary.Model)
	if err != nil {
		zap.S().Warnw("summary generator unavailable", "error", err)
		return summary.Fallback
	}
	return gen.Summarize(cmd.Context(), result)
}
