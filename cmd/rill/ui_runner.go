package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"rill/internal/driver"
	"rill/internal/ui"
)

type checkOutcome struct {
	result *driver.DirResult
	err    error
}

func runCheckDirWithUI(ctx context.Context, dir string, jobs int, opts driver.Options) (*driver.DirResult, error) {
	files, err := driver.ListFiles(dir)
	if err != nil {
		return nil, err
	}

	events := make(chan driver.FileEvent, 256)
	outcomeCh := make(chan checkOutcome, 1)

	go func() {
		res, err := driver.CheckDir(ctx, dir, jobs, opts, func(ev driver.FileEvent) {
			events <- ev
		})
		outcomeCh <- checkOutcome{result: res, err: err}
		close(events)
	}()

	model := ui.NewProgressModel("checking "+dir, files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	_, uiErr := program.Run()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.result, uiErr
	}
	return outcome.result, outcome.err
}
