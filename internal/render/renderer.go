package render

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig/v3"
	"github.com/adrg/frontmatter"
	"github.com/jakoblorz/create-vclight/internal/models"
	"gopkg.in/yaml.v3"
)

// Output is the result of rendering one file node.
type Output struct {
	// Content is the bytes to write
	Content []byte

	// Name is the destination path relative to the project root
	Name string

	// Skip is set when a directive's condition excludes the file
	Skip bool
}

// Error reports a directive template that could not be rendered.
type Error struct {
	Path string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("failed to render %s: %v", e.Path, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// directiveMatter is the optional front matter of a directive template.
//
//	---
//	when: prettier
//	---
//
// A "!" prefix negates the condition.
type directiveMatter struct {
	When string `yaml:"when"`
}

// yamlMatter is the only front matter format recognized. The library's
// other defaults include a bare JSON block, which would swallow the body
// of JSON templates.
var yamlMatter = frontmatter.NewFormat("---", "---", yaml.Unmarshal)

// Renderer turns template tree file nodes into output files.
type Renderer struct {
	funcs template.FuncMap
}

// NewRenderer creates a Renderer. Directive templates get the repeatable
// subset of the sprig functions so output only depends on the inputs.
func NewRenderer() *Renderer {
	return &Renderer{
		funcs: sprig.HermeticTxtFuncMap(),
	}
}

// Render produces the output for a file node. Literal files are copied
// unchanged; directive templates are evaluated against ctx and lose their
// directive extension.
func (r *Renderer) Render(node *models.TreeNode, ctx models.RenderContext) (*Output, error) {
	switch node.Kind {
	case models.NodeLiteral:
		content := make([]byte, len(node.Content))
		copy(content, node.Content)
		return &Output{Content: content, Name: node.OutputPath()}, nil
	case models.NodeDirective:
		return r.renderDirective(node, ctx)
	default:
		return nil, fmt.Errorf("cannot render %s node %s", node.Kind, node.RelPath())
	}
}

func (r *Renderer) renderDirective(node *models.TreeNode, ctx models.RenderContext) (*Output, error) {
	name := node.OutputPath()

	var matter directiveMatter
	body, err := frontmatter.Parse(bytes.NewReader(node.Content), &matter, yamlMatter)
	if err != nil {
		return nil, &Error{Path: node.RelPath(), Err: fmt.Errorf("failed to parse front matter: %w", err)}
	}

	include, err := evaluateCondition(matter.When, ctx)
	if err != nil {
		return nil, &Error{Path: node.RelPath(), Err: err}
	}
	if !include {
		return &Output{Name: name, Skip: true}, nil
	}

	tmpl, err := template.New(node.RelPath()).
		Funcs(r.funcs).
		Option("missingkey=error").
		Parse(string(body))
	if err != nil {
		return nil, &Error{Path: node.RelPath(), Err: err}
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, map[string]any(ctx)); err != nil {
		return nil, &Error{Path: node.RelPath(), Err: err}
	}

	return &Output{Content: buf.Bytes(), Name: name}, nil
}

func evaluateCondition(when string, ctx models.RenderContext) (bool, error) {
	when = strings.TrimSpace(when)
	if when == "" {
		return true, nil
	}

	negate := strings.HasPrefix(when, "!")
	key := strings.TrimSpace(strings.TrimPrefix(when, "!"))
	if _, ok := ctx[key]; !ok {
		return false, fmt.Errorf("condition references undefined binding %q", key)
	}

	return ctx.Truthy(key) != negate, nil
}
