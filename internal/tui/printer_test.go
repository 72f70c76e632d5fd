package tui

import (
	"bytes"
	"strings"
	"sync"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/jakoblorz/create-vclight/internal/scaffold"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/require"
)

func TestPrinter(t *testing.T) {
	lipgloss.SetColorProfile(termenv.Ascii)

	var buf bytes.Buffer
	p := NewPrinter(&buf)
	p.Info("Creating %s", "demo")
	p.Success("Done")
	p.Warn("Slow registry")
	p.Error("failed: %v", "boom")

	require.Equal(t, "• Creating demo\n✓ Done\n! Slow registry\n✗ failed: boom\n", buf.String())
}

func TestPrinter_Stage(t *testing.T) {
	lipgloss.SetColorProfile(termenv.Ascii)

	var buf bytes.Buffer
	p := NewPrinter(&buf)

	var wg sync.WaitGroup
	for _, stage := range []scaffold.Stage{scaffold.StageCopyingTree, scaffold.StageResolvingManifest} {
		stage := stage
		wg.Add(1)
		go func() {
			defer wg.Done()
			p.Stage(stage)
		}()
	}
	wg.Wait()
	p.Stage(scaffold.StageDone)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.ElementsMatch(t, []string{
		"• Copying template files",
		"• Resolving dependency versions",
	}, lines)
}
