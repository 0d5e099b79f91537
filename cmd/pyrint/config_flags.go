package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"pyrint/internal/config"
	"pyrint/internal/diagfmt"
)

// loadConfig reads --config or discovers pyrint.toml from target upwards,
// then applies the command-line overrides.
func loadConfig(cmd *cobra.Command, target string) (config.Config, error) {
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return config.Config{}, fmt.Errorf("failed to get config flag: %w", err)
	}

	var cfg config.Config
	if path != "" {
		cfg, err = config.Load(path)
		if err != nil {
			return config.Config{}, err
		}
	} else {
		var found bool
		cfg, found, err = config.Discover(target)
		if err != nil {
			return config.Config{}, err
		}
		if !found {
			slog.Debug("no configuration file found", "target", target)
		}
	}
	if cfg.Path != "" {
		slog.Debug("loaded configuration", "path", cfg.Path)
	}
	for _, key := range cfg.Unknown {
		slog.Debug("ignoring unknown configuration key", "path", cfg.Path, "key", key)
	}

	if err := applyOverrides(cmd, &cfg); err != nil {
		return config.Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// applyOverrides copies explicitly set flags over the file values. Excludes
// are appended; rule lists replace the file's lists.
func applyOverrides(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()
	if flags.Changed("jobs") {
		jobs, err := flags.GetInt("jobs")
		if err != nil {
			return fmt.Errorf("failed to get jobs flag: %w", err)
		}
		cfg.Jobs = jobs
	}
	if flags.Changed("enable") {
		enable, err := flags.GetStringSlice("enable")
		if err != nil {
			return fmt.Errorf("failed to get enable flag: %w", err)
		}
		cfg.Rules.Enable = enable
	}
	if flags.Changed("disable") {
		disable, err := flags.GetStringSlice("disable")
		if err != nil {
			return fmt.Errorf("failed to get disable flag: %w", err)
		}
		cfg.Rules.Disable = disable
	}
	if flags.Changed("exclude") {
		exclude, err := flags.GetStringArray("exclude")
		if err != nil {
			return fmt.Errorf("failed to get exclude flag: %w", err)
		}
		cfg.Files.Exclude = append(cfg.Files.Exclude, exclude...)
	}
	if cmd.Root().PersistentFlags().Changed("max-diagnostics") {
		limit, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
		if err != nil {
			return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
		}
		cfg.Output.MaxDiagnostics = limit
	}
	return nil
}

func addConfigFlags(cmd *cobra.Command) {
	cmd.Flags().String("config", "", "path to pyrint.toml (default: discovered from the target upwards)")
	cmd.Flags().Int("jobs", 1, "max parallel workers (0=GOMAXPROCS)")
	cmd.Flags().StringSlice("enable", nil, "only run these rules (codes or symbols, comma-separated)")
	cmd.Flags().StringSlice("disable", nil, "skip these rules (codes or symbols, comma-separated)")
	cmd.Flags().StringArray("exclude", nil, "glob of paths to skip, relative to the target (repeatable)")
}

// reportFormat prefers an explicit --format over output.format.
func reportFormat(cmd *cobra.Command, cfg config.Config) (diagfmt.Format, error) {
	name := cfg.Output.Format
	if cmd.Flags().Changed("format") {
		value, err := cmd.Flags().GetString("format")
		if err != nil {
			return "", fmt.Errorf("failed to get format flag: %w", err)
		}
		name = value
	}
	return diagfmt.ParseFormat(name)
}
