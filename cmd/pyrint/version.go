package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"pyrint/internal/version"
)

type versionOptions struct {
	format      string
	showHash    bool
	showMessage bool
	showDate    bool
}

type versionPayload struct {
	Tool       string `json:"tool"`
	Version    string `json:"version"`
	GitCommit  string `json:"git_commit,omitempty"`
	GitMessage string `json:"git_message,omitempty"`
	BuildDate  string `json:"build_date,omitempty"`
}

func init() {
	versionCmd.Flags().String("format", "pretty", "output format (pretty|json)")
	versionCmd.Flags().Bool("hash", false, "include git commit hash")
	versionCmd.Flags().Bool("message", false, "include git commit message")
	versionCmd.Flags().Bool("date", false, "include build timestamp")
	versionCmd.Flags().Bool("full", false, "show all recorded build metadata")
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show pyrint build information",
	Args:  cobra.NoArgs,
	RunE:  runVersion,
}

func runVersion(cmd *cobra.Command, _ []string) error {
	opts, err := readVersionOptions(cmd)
	if err != nil {
		return err
	}
	if opts.format == "json" {
		return renderVersionJSON(cmd.OutOrStdout(), opts)
	}
	colored, err := useColor(cmd, os.Stdout)
	if err != nil {
		return err
	}
	renderVersionPretty(cmd.OutOrStdout(), opts, colored)
	return nil
}

func readVersionOptions(cmd *cobra.Command) (versionOptions, error) {
	flags := cmd.Flags()
	format, err := flags.GetString("format")
	if err != nil {
		return versionOptions{}, fmt.Errorf("failed to get format flag: %w", err)
	}
	format = strings.ToLower(format)
	if format != "pretty" && format != "json" {
		return versionOptions{}, fmt.Errorf("unsupported format %q (must be pretty or json)", format)
	}
	opts := versionOptions{format: format}
	full, err := flags.GetBool("full")
	if err != nil {
		return versionOptions{}, fmt.Errorf("failed to get full flag: %w", err)
	}
	for name, dst := range map[string]*bool{"hash": &opts.showHash, "message": &opts.showMessage, "date": &opts.showDate} {
		v, err := flags.GetBool(name)
		if err != nil {
			return versionOptions{}, fmt.Errorf("failed to get %s flag: %w", name, err)
		}
		*dst = v || full
	}
	return opts, nil
}

func renderVersionPretty(out io.Writer, opts versionOptions, colored bool) {
	fmt.Fprintf(out, "pyrint %s\n", version.Banner(colored))
	if opts.showHash {
		fmt.Fprintf(out, "commit:  %s\n", valueOrUnknown(version.GitCommit))
	}
	if opts.showMessage {
		fmt.Fprintf(out, "message: %s\n", valueOrUnknown(version.GitMessage))
	}
	if opts.showDate {
		fmt.Fprintf(out, "built:   %s\n", valueOrUnknown(version.BuildDate))
	}
}

func renderVersionJSON(out io.Writer, opts versionOptions) error {
	payload := versionPayload{Tool: "pyrint", Version: version.Version}
	if opts.showHash {
		payload.GitCommit = valueOrUnknown(version.GitCommit)
	}
	if opts.showMessage {
		payload.GitMessage = valueOrUnknown(version.GitMessage)
	}
	if opts.showDate {
		payload.BuildDate = valueOrUnknown(version.BuildDate)
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(payload)
}

func valueOrUnknown(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "unknown"
	}
	return s
}
