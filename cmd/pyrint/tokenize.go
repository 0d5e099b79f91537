package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"pyrint/internal/diagfmt"
	"pyrint/internal/driver"
)

var tokenizeCmd = &cobra.Command{
	Use:    "tokenize [flags] <file>",
	Short:  "Print the token stream of a file",
	Args:   cobra.ExactArgs(1),
	Hidden: true,
	RunE:   runTokenize,
}

var parseCmd = &cobra.Command{
	Use:    "parse <file>",
	Short:  "Print the syntax tree of a file",
	Args:   cobra.ExactArgs(1),
	Hidden: true,
	RunE:   runParse,
}

func init() {
	tokenizeCmd.Flags().String("format", "pretty", "output format (pretty|json)")
}

func runTokenize(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	result, err := driver.Tokenize(args[0])
	if err != nil {
		return fmt.Errorf("tokenization failed: %w", err)
	}

	out := cmd.OutOrStdout()
	switch format {
	case "pretty":
		err = diagfmt.FormatTokensPretty(out, result.Tokens, result.Files)
	case "json":
		err = diagfmt.FormatTokensJSON(out, result.Tokens, result.Files)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
	if err != nil {
		return err
	}
	if result.Err != nil {
		start, _ := result.Files.Resolve(result.Err.Span)
		return fmt.Errorf("%s:%d:%d: %s", args[0], start.Line, start.Col, result.Err.Msg)
	}
	return nil
}

func runParse(cmd *cobra.Command, args []string) error {
	result, err := driver.Parse(args[0])
	if err != nil {
		return fmt.Errorf("parse failed: %w", err)
	}
	if result.Builder == nil {
		for _, d := range result.Bag.Items() {
			start, _ := result.Files.Resolve(d.Primary)
			fmt.Fprintf(cmd.ErrOrStderr(), "%s:%d:%d: %s: %s\n", args[0], start.Line, start.Col, d.Code.ID(), d.Message)
		}
		return errIssuesFound
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), result.Dump())
	return err
}
