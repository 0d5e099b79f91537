package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"pyrint/internal/diagfmt"
	"pyrint/internal/driver"
	"pyrint/internal/observ"
	"pyrint/internal/version"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] <file|directory>...",
	Short: "Analyze Python files and report issues",
	Long:  `Analyze files and directories, printing one report for all of them. Exits 1 when any issue or read failure is found.`,
	Args:  cobra.MinimumNArgs(1),
	RunE:  runCheck,
}

func init() {
	addCheckFlags(checkCmd)
}

func addCheckFlags(cmd *cobra.Command) {
	addConfigFlags(cmd)
	cmd.Flags().String("format", "text", "output format ("+formatList()+")")
	cmd.Flags().Bool("fullpath", false, "emit absolute file paths in output")
	cmd.Flags().Bool("with-notes", false, "include diagnostic notes in output")
	cmd.Flags().String("ui", "auto", "progress view for directories (auto|on|off)")
	cmd.Flags().Bool("timings", false, "print per-file phase timings to stderr")
	cmd.Flags().Bool("metrics", false, "print Prometheus metrics to stderr after the run")
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, args[0])
	if err != nil {
		return err
	}
	format, err := reportFormat(cmd, cfg)
	if err != nil {
		return err
	}

	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return fmt.Errorf("failed to get quiet flag: %w", err)
	}
	fullPath, err := cmd.Flags().GetBool("fullpath")
	if err != nil {
		return fmt.Errorf("failed to get fullpath flag: %w", err)
	}
	withNotes, err := cmd.Flags().GetBool("with-notes")
	if err != nil {
		return fmt.Errorf("failed to get with-notes flag: %w", err)
	}
	uiValue, err := cmd.Flags().GetString("ui")
	if err != nil {
		return fmt.Errorf("failed to get ui flag: %w", err)
	}
	mode, err := readMode("ui", uiValue)
	if err != nil {
		return err
	}
	showTimings, err := cmd.Flags().GetBool("timings")
	if err != nil {
		return fmt.Errorf("failed to get timings flag: %w", err)
	}
	showMetrics, err := cmd.Flags().GetBool("metrics")
	if err != nil {
		return fmt.Errorf("failed to get metrics flag: %w", err)
	}
	color, err := useColor(cmd, os.Stdout)
	if err != nil {
		return err
	}

	opts, err := driver.FromConfig(cfg)
	if err != nil {
		return err
	}
	opts.Logger = slog.Default()
	var metrics *observ.Metrics
	if showMetrics {
		metrics = observ.NewMetrics()
		opts.Metrics = metrics
	}

	d := driver.New(opts)
	targets := d.ExpandPaths(args)
	slog.Debug("analyzing", "files", len(targets), "jobs", opts.Jobs)

	ctx := cmd.Context()
	var results []driver.FileResult
	if !quiet && len(targets) > 1 && enabledFor(mode, os.Stderr) {
		results, err = runWithUI(ctx, opts, "pyrint check", targets)
		if err != nil {
			return fmt.Errorf("progress view failed: %w", err)
		}
	} else {
		results = d.AnalyzeTargets(ctx, targets)
	}

	out := cmd.OutOrStdout()
	renderOpts := diagfmt.Options{
		Color:       color,
		FullPath:    fullPath,
		Notes:       withNotes,
		Summary:     !quiet,
		ToolName:    "pyrint",
		ToolVersion: version.Version,
	}
	if err := diagfmt.Write(out, format, results, renderOpts); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	if showTimings {
		printTimings(cmd.ErrOrStderr(), driver.Timings(results))
	}
	if metrics != nil {
		if err := metrics.WriteText(cmd.ErrOrStderr()); err != nil {
			return fmt.Errorf("failed to write metrics: %w", err)
		}
	}

	if !driver.Summarize(results).OK() {
		return errIssuesFound
	}
	return nil
}

func formatList() string {
	return strings.Join(diagfmt.Formats(), "|")
}

func printTimings(w io.Writer, timings []driver.Timing) {
	for _, t := range timings {
		label := t.Path
		if label == "" {
			label = "total"
		}
		fmt.Fprintf(w, "%s %.2f ms\n", label, t.TotalMS)
		for _, p := range t.Phases {
			fmt.Fprintf(w, "  %-8s %.2f ms", p.Name, p.DurationMS)
			if p.Note != "" {
				fmt.Fprintf(w, " (%s)", p.Note)
			}
			fmt.Fprintln(w)
		}
	}
}
