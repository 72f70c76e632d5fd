package create

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/gkampitakis/go-snaps/snaps"
	"github.com/jakoblorz/create-vclight/internal/scaffold"
	"github.com/jakoblorz/create-vclight/internal/tui"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/require"
)

func TestRenderSuccess(t *testing.T) {
	lipgloss.SetColorProfile(termenv.Ascii)

	out := RenderSuccess(&scaffold.Result{
		Name:        "demo",
		PackageName: "demo",
		Dir:         "/workspace/demo",
		Files:       []string{"README.md", "src/main.ts", "vercel.json"},
	})

	snaps.MatchSnapshot(t, out)
}

func TestRenderSuccess_Styled(t *testing.T) {
	lipgloss.SetColorProfile(termenv.TrueColor)
	t.Cleanup(func() { lipgloss.SetColorProfile(termenv.Ascii) })

	result := &scaffold.Result{
		Name:        "my app",
		PackageName: "my-app",
		Dir:         "/workspace/my app",
		Files:       []string{"package.json"},
	}
	out := RenderSuccess(result)

	require.Contains(t, out, tui.SuccessStyle.Render("✓ Project Created"))
	require.Contains(t, out, tui.SubtleStyle.Render("Created my-app in /workspace/my app with 2 file(s)."))
	require.Contains(t, out, tui.DescStyle.Render("Next steps:"))
	require.Contains(t, out, tui.CommandStyle.Render("cd 'my app'"))
	require.NotEqual(t, "Next steps:", tui.DescStyle.Render("Next steps:"))
}

func TestQuoteArg(t *testing.T) {
	require.Equal(t, "demo", quoteArg("demo"))
	require.Equal(t, "'My App'", quoteArg("My App"))
	require.Equal(t, `'it'\''s'`, quoteArg("it's"))
}
