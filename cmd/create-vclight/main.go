package main

import (
	"errors"
	"os"

	"github.com/jakoblorz/create-vclight/internal/cli"
	"github.com/jakoblorz/create-vclight/internal/scaffold"
	"github.com/jakoblorz/create-vclight/internal/tui"
)

func main() {
	err := cli.Execute()
	if err == nil {
		return
	}

	printer := tui.NewPrinter(os.Stderr)
	printer.Error("%v", errors.Unwrap(err))

	var renderErr *scaffold.RenderFailures
	if errors.As(err, &renderErr) {
		for _, failure := range renderErr.Errors {
			printer.Warn("%s: %v", failure.Path, failure.Err)
		}
	}

	os.Exit(scaffold.ExitCode(err))
}
