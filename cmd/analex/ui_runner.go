package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"analex/internal/driver"
	"analex/internal/source"
	"analex/internal/ui"
)

type dirOutcome struct {
	fs      *source.FileSet
	results []driver.FileResult
	err     error
}

// runDirWithUI runs AnalyzeDir while a progress view consumes its events.
func runDirWithUI(ctx context.Context, title, dir string, files []string, opts driver.DirOptions) (*source.FileSet, []driver.FileResult, error) {
	events := make(chan driver.Event, 256)
	outcomeCh := make(chan dirOutcome, 1)

	go func() {
		optsCopy := opts
		optsCopy.Progress = driver.ChannelSink{Ch: events}
		fs, results, err := driver.AnalyzeDir(ctx, dir, optsCopy)
		outcomeCh <- dirOutcome{fs: fs, results: results, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	_, uiErr := program.Run()
	// после ctrl+c анализ ещё пишет события
	go func() {
		for range events {
		}
	}()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.fs, outcome.results, uiErr
	}
	return outcome.fs, outcome.results, outcome.err
}
