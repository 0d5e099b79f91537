package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

// uiMode is the value of a tri-state terminal flag such as --ui or --color.
type uiMode string

const (
	uiModeAuto uiMode = "auto"
	uiModeOn   uiMode = "on"
	uiModeOff  uiMode = "off"
)

var uiModes = map[string]uiMode{
	"":     uiModeAuto,
	"auto": uiModeAuto,
	"on":   uiModeOn,
	"off":  uiModeOff,
}

func readMode(flag, value string) (uiMode, error) {
	mode, ok := uiModes[strings.ToLower(strings.TrimSpace(value))]
	if !ok {
		return "", fmt.Errorf("invalid --%s value %q (expected auto|on|off)", flag, value)
	}
	return mode, nil
}

// enabledFor resolves auto by asking whether f is a terminal.
func enabledFor(mode uiMode, f *os.File) bool {
	if mode == uiModeAuto {
		return isTerminal(f)
	}
	return mode == uiModeOn
}

func useColor(cmd *cobra.Command, f *os.File) (bool, error) {
	value, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return false, fmt.Errorf("failed to get color flag: %w", err)
	}
	mode, err := readMode("color", value)
	if err != nil {
		return false, err
	}
	return enabledFor(mode, f), nil
}
