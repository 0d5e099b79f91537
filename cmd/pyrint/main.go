package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"pyrint/internal/prof"
	"pyrint/internal/version"
)

// errIssuesFound makes the process exit 1 without printing anything further;
// the report itself already explains why.
var errIssuesFound = errors.New("issues found")

var profiling *prof.Session

var rootCmd = &cobra.Command{
	Use:               "pyrint",
	Short:             "Static checks for Python sources",
	Long:              `pyrint finds syntax errors, illegal control flow and scoping mistakes in Python files without running them`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setupRoot,
}

func main() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(rulesCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(tokenizeCmd)
	rootCmd.AddCommand(parseCmd)

	addRootFlags(rootCmd)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if stopErr := profiling.Stop(); stopErr != nil {
		fmt.Fprintf(os.Stderr, "pyrint: %v\n", stopErr)
	}
	if err != nil {
		if !errors.Is(err, errIssuesFound) {
			fmt.Fprintf(os.Stderr, "pyrint: %v\n", err)
		}
		os.Exit(1)
	}
}

func addRootFlags(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()
	flags.String("color", "auto", "colorize output (auto|on|off)")
	flags.Bool("quiet", false, "suppress non-essential output")
	flags.String("log-level", "warn", "log level (debug|info|warn|error)")
	flags.Int("max-diagnostics", 0, "maximum number of diagnostics per file (0=unlimited)")
	flags.String("cpuprofile", "", "write a CPU profile to file")
	flags.String("memprofile", "", "write a heap profile to file on exit")
	flags.String("trace", "", "write a runtime execution trace to file")
}

// setupRoot installs the default logger and starts any requested profiles
// before a subcommand runs.
func setupRoot(cmd *cobra.Command, _ []string) error {
	flags := cmd.Root().PersistentFlags()

	level, err := flags.GetString("log-level")
	if err != nil {
		return fmt.Errorf("failed to get log-level flag: %w", err)
	}
	if err := setupLogging(os.Stderr, level); err != nil {
		return err
	}

	cpu, err := flags.GetString("cpuprofile")
	if err != nil {
		return fmt.Errorf("failed to get cpuprofile flag: %w", err)
	}
	mem, err := flags.GetString("memprofile")
	if err != nil {
		return fmt.Errorf("failed to get memprofile flag: %w", err)
	}
	tracePath, err := flags.GetString("trace")
	if err != nil {
		return fmt.Errorf("failed to get trace flag: %w", err)
	}
	profiling, err = prof.Start(prof.Options{CPU: cpu, Mem: mem, Trace: tracePath})
	return err
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
