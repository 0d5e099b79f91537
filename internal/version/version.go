// Package version holds build metadata for the pyrint CLI. The variables
// can be overridden at build time via -ldflags.
package version

import (
	"strings"

	"github.com/fatih/color"
)

var (
	// Version is the semantic version of the CLI.
	Version = "0.1.0-dev"

	// GitCommit is an optional git commit hash.
	GitCommit = ""

	// GitMessage is an optional git commit message.
	GitMessage = ""

	// BuildDate is an optional build date in ISO-8601.
	BuildDate = ""
)

var partColors = []*color.Color{
	color.New(color.FgYellow, color.Bold),
	color.New(color.FgGreen, color.Bold),
	color.New(color.FgBlue, color.Bold),
}

// Banner renders Version with each numeric part in its own color. A
// pre-release suffix is left plain.
func Banner(useColor bool) string {
	core, suffix, hasSuffix := strings.Cut(Version, "-")
	if !useColor {
		return Version
	}
	parts := strings.Split(core, ".")
	for i, part := range parts {
		c := *partColors[i%len(partColors)]
		c.EnableColor()
		parts[i] = c.Sprint(part)
	}
	out := strings.Join(parts, ".")
	if hasSuffix {
		out += "-" + suffix
	}
	return out
}
