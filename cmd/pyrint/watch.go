package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"pyrint/internal/diagfmt"
	"pyrint/internal/driver"
	"pyrint/internal/observ"
)

var watchCmd = &cobra.Command{
	Use:   "watch [flags] <directory>",
	Short: "Re-analyze files as they change",
	Long:  `Watch a directory tree and print a fresh report for every batch of changed files`,
	Args:  cobra.ExactArgs(1),
	RunE:  runWatch,
}

func init() {
	addConfigFlags(watchCmd)
	watchCmd.Flags().String("format", "text", "output format ("+formatList()+")")
	watchCmd.Flags().Duration("debounce", 200*time.Millisecond, "quiet period before a re-run")
	watchCmd.Flags().Bool("initial", true, "analyze the whole tree before waiting for changes")
	watchCmd.Flags().String("metrics-addr", "", "serve Prometheus metrics on this address (e.g. :9100)")
}

func runWatch(cmd *cobra.Command, args []string) error {
	root := args[0]
	info, err := os.Stat(root)
	if err != nil {
		return fmt.Errorf("failed to stat %s: %w", root, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("watch needs a directory, got %s", root)
	}

	cfg, err := loadConfig(cmd, root)
	if err != nil {
		return err
	}
	format, err := reportFormat(cmd, cfg)
	if err != nil {
		return err
	}
	debounce, err := cmd.Flags().GetDuration("debounce")
	if err != nil {
		return fmt.Errorf("failed to get debounce flag: %w", err)
	}
	initial, err := cmd.Flags().GetBool("initial")
	if err != nil {
		return fmt.Errorf("failed to get initial flag: %w", err)
	}
	metricsAddr, err := cmd.Flags().GetString("metrics-addr")
	if err != nil {
		return fmt.Errorf("failed to get metrics-addr flag: %w", err)
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
	metrics := observ.NewMetrics()
	opts.Metrics = metrics

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	if metricsAddr != "" {
		srv := &http.Server{Addr: metricsAddr, Handler: metricsMux(metrics), ReadHeaderTimeout: 5 * time.Second}
		go func() {
			slog.Info("serving metrics", "addr", metricsAddr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				slog.Error("metrics server failed", "error", err)
				cancel()
			}
		}()
		defer func() {
			shutdownCtx, done := context.WithTimeout(context.Background(), 2*time.Second)
			defer done()
			_ = srv.Shutdown(shutdownCtx)
		}()
	}

	out := cmd.OutOrStdout()
	renderOpts := diagfmt.Options{Color: color, Summary: true}
	w, err := driver.New(opts).NewWatcher(root, driver.WatchOptions{Debounce: debounce, Initial: initial}, func(results []driver.FileResult) {
		if err := diagfmt.Write(out, format, results, renderOpts); err != nil {
			slog.Error("failed to write report", "error", err)
		}
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "watching %s (ctrl+c to stop)\n", root)
	if err := w.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func metricsMux(metrics *observ.Metrics) *http.ServeMux {
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler())
	return mux
}
