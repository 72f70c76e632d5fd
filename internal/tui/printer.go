package tui

import (
	"fmt"
	"io"
	"sync"

	"github.com/jakoblorz/create-vclight/internal/scaffold"
)

// Printer writes styled status lines. It is safe for concurrent use.
type Printer struct {
	mu sync.Mutex
	w  io.Writer
}

// NewPrinter creates a Printer writing to w.
func NewPrinter(w io.Writer) *Printer {
	return &Printer{w: w}
}

func (p *Printer) println(s string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	_, _ = fmt.Fprintln(p.w, s)
}

// Info prints a neutral status line.
func (p *Printer) Info(format string, args ...any) {
	p.println(InfoStyle.Render("•") + " " + fmt.Sprintf(format, args...))
}

// Success prints a success line.
func (p *Printer) Success(format string, args ...any) {
	p.println(SuccessStyle.Render("✓ " + fmt.Sprintf(format, args...)))
}

// Warn prints a warning line.
func (p *Printer) Warn(format string, args ...any) {
	p.println(WarnStyle.Render("! " + fmt.Sprintf(format, args...)))
}

// Error prints an error line.
func (p *Printer) Error(format string, args ...any) {
	p.println(ErrorStyle.Render("✗ " + fmt.Sprintf(format, args...)))
}

// Stage reports the progress of a generation run. It can be passed as a
// scaffold.Reporter.
func (p *Printer) Stage(stage scaffold.Stage) {
	switch stage {
	case scaffold.StageCreatingRoot:
		p.Info("Creating project folder")
	case scaffold.StageCopyingTree:
		p.Info("Copying template files")
	case scaffold.StageResolvingManifest:
		p.Info("Resolving dependency versions")
	}
}
