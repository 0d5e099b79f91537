package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"pyrint/internal/driver"
	"pyrint/internal/pipeline"
	"pyrint/internal/ui"
)

// runWithUI analyzes targets while a progress view renders the pipeline events.
func runWithUI(ctx context.Context, opts driver.Options, title string, targets []driver.Target) ([]driver.FileResult, error) {
	events := make(chan pipeline.Event, 256)
	outcome := make(chan []driver.FileResult, 1)

	go func() {
		uiOpts := opts
		uiOpts.Progress = pipeline.ChannelSink{Ch: events}
		outcome <- driver.New(uiOpts).AnalyzeTargets(ctx, targets)
		close(events)
	}()

	model := ui.NewProgressModel(title, driver.Paths(targets), events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stderr))
	_, uiErr := program.Run()
	// The view may quit early on ctrl+c; keep the workers from blocking.
	go func() {
		for range events {
		}
	}()
	results := <-outcome
	return results, uiErr
}
