package scaffold

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jakoblorz/create-vclight/internal/manifest"
	"github.com/jakoblorz/create-vclight/internal/render"
)

// Exit codes reported by the CLI for each failure class.
const (
	ExitOK = iota
	ExitFailure
	ExitInvalidName
	ExitTargetExists
	ExitFilesystem
	ExitRender
	ExitResolution
)

// InvalidNameError reports a project name that cannot be used as a folder.
type InvalidNameError struct {
	Name   string
	Reason string
}

func (e *InvalidNameError) Error() string {
	return fmt.Sprintf("%q can't be the name of a project: %s", e.Name, e.Reason)
}

// TargetExistsError reports that the project folder could not be created.
type TargetExistsError struct {
	Path string
	Err  error
}

func (e *TargetExistsError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("can't create project folder %s: it already exists", e.Path)
	}
	return fmt.Sprintf("can't create project folder %s: %v", e.Path, e.Err)
}

func (e *TargetExistsError) Unwrap() error {
	return e.Err
}

// FilesystemError reports a read, write, or mkdir failure.
type FilesystemError struct {
	Op   string
	Path string
	Err  error
}

func (e *FilesystemError) Error() string {
	return fmt.Sprintf("failed to %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *FilesystemError) Unwrap() error {
	return e.Err
}

// RenderFailures collects the templates that failed to render. The other
// files of the run are still written.
type RenderFailures struct {
	Errors []*render.Error
}

func (e *RenderFailures) Error() string {
	parts := make([]string, 0, len(e.Errors))
	for _, err := range e.Errors {
		parts = append(parts, err.Error())
	}
	return fmt.Sprintf("%d template(s) failed to render: %s", len(e.Errors), strings.Join(parts, "; "))
}

func (e *RenderFailures) Unwrap() []error {
	errs := make([]error, 0, len(e.Errors))
	for _, err := range e.Errors {
		errs = append(errs, err)
	}
	return errs
}

// ExitCode maps err to the process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}

	var (
		invalidName  *InvalidNameError
		targetExists *TargetExistsError
		resolution   *manifest.ResolutionError
		fsErr        *FilesystemError
		renderErr    *RenderFailures
	)
	switch {
	case errors.As(err, &invalidName):
		return ExitInvalidName
	case errors.As(err, &targetExists):
		return ExitTargetExists
	case errors.As(err, &resolution):
		return ExitResolution
	case errors.As(err, &fsErr):
		return ExitFilesystem
	case errors.As(err, &renderErr):
		return ExitRender
	default:
		return ExitFailure
	}
}
