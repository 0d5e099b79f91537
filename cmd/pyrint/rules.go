package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"pyrint/internal/diag"
)

var rulesCmd = &cobra.Command{
	Use:   "rules [flags] [path]",
	Short: "List the known rules and whether they are enabled",
	Long:  `List every rule with its code, symbol and title. The enabled state comes from the pyrint.toml found for path (default ".") and the --enable/--disable flags.`,
	Args:  cobra.MaximumNArgs(1),
	RunE:  runRules,
}

func init() {
	addConfigFlags(rulesCmd)
	rulesCmd.Flags().String("format", "pretty", "output format (pretty|json)")
}

type ruleInfo struct {
	Code    string `json:"code"`
	Symbol  string `json:"symbol"`
	Title   string `json:"title"`
	Enabled bool   `json:"enabled"`
}

func runRules(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	format = strings.ToLower(format)
	if format != "pretty" && format != "json" {
		return fmt.Errorf("unsupported format %q (must be pretty or json)", format)
	}

	target := "."
	if len(args) == 1 {
		target = args[0]
	}
	cfg, err := loadConfig(cmd, target)
	if err != nil {
		return err
	}
	rules, err := cfg.RuleSet()
	if err != nil {
		return err
	}

	infos := make([]ruleInfo, 0, len(diag.AllCodes()))
	for _, c := range diag.AllCodes() {
		infos = append(infos, ruleInfo{Code: c.ID(), Symbol: c.Symbol(), Title: c.Title(), Enabled: rules.Enabled(c)})
	}

	if format == "json" {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(infos)
	}
	useCol, err := useColor(cmd, os.Stdout)
	if err != nil {
		return err
	}
	renderRules(cmd.OutOrStdout(), infos, useCol)
	return nil
}

func renderRules(w io.Writer, infos []ruleInfo, useCol bool) {
	on := color.New(color.FgGreen)
	off := color.New(color.FgHiBlack)
	code := color.New(color.Bold)
	for _, c := range []*color.Color{on, off, code} {
		if useCol {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}

	width := 0
	for _, r := range infos {
		width = max(width, len(r.Symbol))
	}
	for _, r := range infos {
		state := on.Sprint("on ")
		if !r.Enabled {
			state = off.Sprint("off")
		}
		fmt.Fprintf(w, "%s %s %-*s %s\n", code.Sprint(r.Code), state, width, r.Symbol, r.Title)
	}
}
