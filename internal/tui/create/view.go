package create

import (
	"fmt"
	"strings"

	"github.com/jakoblorz/create-vclight/internal/scaffold"
	"github.com/jakoblorz/create-vclight/internal/tui"
)

// RenderSuccess renders the summary printed after a project was generated.
func RenderSuccess(result *scaffold.Result) string {
	var b strings.Builder

	b.WriteString(tui.SuccessStyle.Render("✓ Project Created"))
	b.WriteString("\n\n")
	b.WriteString(tui.SubtleStyle.Render(summary(result)))
	b.WriteString("\n\n")
	b.WriteString(tui.DescStyle.Render("Next steps:"))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("  %s\n", tui.CommandStyle.Render("cd "+quoteArg(result.Name))))
	b.WriteString(fmt.Sprintf("  %s\n", tui.CommandStyle.Render("npm install")))
	b.WriteString(fmt.Sprintf("  %s\n", tui.CommandStyle.Render("npm run serve")))

	return b.String()
}

func summary(result *scaffold.Result) string {
	return fmt.Sprintf("Created %s in %s with %d file(s).", result.PackageName, result.Dir, len(result.Files)+1)
}

func quoteArg(s string) string {
	if strings.ContainsAny(s, " \t'") {
		return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
	}
	return s
}
