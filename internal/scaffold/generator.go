package scaffold

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/jakoblorz/create-vclight/internal/filesystem"
	"github.com/jakoblorz/create-vclight/internal/manifest"
	"github.com/jakoblorz/create-vclight/internal/models"
	"github.com/jakoblorz/create-vclight/internal/render"
	"github.com/jakoblorz/create-vclight/internal/templates"
	"github.com/jakoblorz/create-vclight/internal/tree"
	"github.com/jakoblorz/create-vclight/internal/writer"
	"github.com/sourcegraph/conc/pool"
)

// DefaultConcurrency bounds the number of files written at once.
const DefaultConcurrency = 8

const rootDirPerm = 0755

// Stage is a step of a generation run.
type Stage int

const (
	StageValidating Stage = iota
	StagePrompting
	StageCreatingRoot
	StageCopyingTree
	StageResolvingManifest
	StageDone
	StageFailed
)

func (s Stage) String() string {
	switch s {
	case StageValidating:
		return "validating name"
	case StagePrompting:
		return "prompting options"
	case StageCreatingRoot:
		return "creating root directory"
	case StageCopyingTree:
		return "copying template tree"
	case StageResolvingManifest:
		return "resolving manifest"
	case StageDone:
		return "done"
	case StageFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Reporter is told about stage transitions. The copy and manifest stages
// run in parallel, so it may be called from several goroutines.
type Reporter func(stage Stage)

// Config wires a Generator.
type Config struct {
	// FS is where projects are generated; names resolve against its
	// working directory
	FS filesystem.FileSystem

	// Templates holds the template layers below TemplateRoot. Defaults to
	// the embedded templates.
	Templates    filesystem.ReadOnly
	TemplateRoot string

	Resolver manifest.Resolver

	// Timeout bounds the registry lookups; zero means no deadline
	Timeout time.Duration

	// Concurrency bounds parallel file writes; defaults to DefaultConcurrency
	Concurrency int

	// Pinned maps package names to exact versions written as-is
	Pinned map[string]string

	Reporter Reporter
}

// Result describes a generated project.
type Result struct {
	Name        string
	PackageName string
	Dir         string

	// Files lists the written files relative to Dir, in traversal order
	Files []string

	Manifest *models.Manifest
}

// Generator runs the scaffolding of one project at a time.
type Generator struct {
	fs           filesystem.FileSystem
	reader       *tree.Reader
	templateRoot string
	renderer     *render.Renderer
	writer       *writer.Writer
	assembler    *manifest.Assembler
	concurrency  int
	pinned       map[string]string
	reporter     Reporter
}

// NewGenerator creates a Generator from cfg.
func NewGenerator(cfg Config) *Generator {
	source := cfg.Templates
	root := cfg.TemplateRoot
	if source == nil {
		source = filesystem.NewFSReader(templates.FS)
		root = "."
	}
	if root == "" {
		root = "."
	}

	concurrency := cfg.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	return &Generator{
		fs:           cfg.FS,
		reader:       tree.NewReader(source),
		templateRoot: root,
		renderer:     render.NewRenderer(),
		writer:       writer.New(cfg.FS),
		assembler:    manifest.NewAssembler(cfg.Resolver, cfg.Timeout),
		concurrency:  concurrency,
		pinned:       cfg.Pinned,
		reporter:     cfg.Reporter,
	}
}

// Report forwards stage to the configured Reporter.
func (g *Generator) Report(stage Stage) {
	if g.reporter != nil {
		g.reporter(stage)
	}
}

// Target validates name and returns the directory the project would be
// generated in. It never touches the filesystem beyond reading.
func (g *Generator) Target(name string) (string, error) {
	g.Report(StageValidating)

	if err := ValidateName(name); err != nil {
		return "", err
	}

	cwd, err := g.fs.Getwd()
	if err != nil {
		return "", &FilesystemError{Op: "get working directory", Path: ".", Err: err}
	}

	dir := filepath.Join(cwd, name)
	if g.fs.Exists(dir) {
		return "", &TargetExistsError{Path: dir}
	}
	return dir, nil
}

// Generate creates the project folder for name, then copies the template
// tree and writes the manifest in parallel. Both must succeed. Partial
// output is left in place on failure.
func (g *Generator) Generate(ctx context.Context, name string, opts models.Options) (result *Result, err error) {
	defer func() {
		if err != nil {
			g.Report(StageFailed)
		}
	}()

	dir, err := g.Target(name)
	if err != nil {
		return nil, err
	}
	if !opts.Template.IsValid() {
		return nil, fmt.Errorf("invalid template: %s", opts.Template)
	}

	g.Report(StageCreatingRoot)
	if err := g.fs.Mkdir(dir, rootDirPerm); err != nil {
		return nil, &TargetExistsError{Path: dir, Err: err}
	}

	packageName := PackageName(name)
	renderCtx := opts.Context(name, packageName)
	result = &Result{Name: name, PackageName: packageName, Dir: dir}

	p := pool.New().WithContext(ctx)
	p.Go(func(ctx context.Context) error {
		g.Report(StageCopyingTree)
		files, err := g.copyTree(dir, opts, renderCtx)
		result.Files = files
		return err
	})
	p.Go(func(ctx context.Context) error {
		g.Report(StageResolvingManifest)
		m, err := g.writeManifest(ctx, dir, packageName, opts)
		result.Manifest = m
		return err
	})
	if err := p.Wait(); err != nil {
		return nil, err
	}

	g.Report(StageDone)
	return result, nil
}

// copyTree renders every layer of the template in order and writes the
// outputs. Files from later layers replace files with the same name from
// earlier ones. Render failures do not stop the other files.
func (g *Generator) copyTree(dir string, opts models.Options, renderCtx models.RenderContext) ([]string, error) {
	var (
		order     []string
		outputs   = make(map[string][]byte)
		emptyDirs []string
		failures  []*render.Error
	)

	for _, layer := range opts.Template.Layers() {
		source := filepath.Join(g.templateRoot, layer)
		root, err := g.reader.Read(source)
		if err != nil {
			return nil, &FilesystemError{Op: "read template", Path: source, Err: err}
		}

		_ = tree.Walk(root, func(node *models.TreeNode) error {
			if node != root && node.IsDir() && len(node.Children) == 0 {
				emptyDirs = append(emptyDirs, node.RelPath())
			}
			return nil
		})

		for _, node := range tree.Files(root) {
			out, err := g.renderer.Render(node, renderCtx)
			if err != nil {
				var renderErr *render.Error
				if errors.As(err, &renderErr) {
					failures = append(failures, renderErr)
					continue
				}
				return nil, err
			}
			if out.Skip {
				continue
			}

			if _, seen := outputs[out.Name]; !seen {
				order = append(order, out.Name)
			}
			outputs[out.Name] = out.Content
		}
	}

	p := pool.New().WithErrors().WithMaxGoroutines(g.concurrency)
	for _, rel := range emptyDirs {
		dest := filepath.Join(dir, rel)
		p.Go(func() error {
			if err := g.writer.EnsureDir(dest); err != nil {
				return &FilesystemError{Op: "create directory", Path: dest, Err: err}
			}
			return nil
		})
	}
	for _, name := range order {
		dest := filepath.Join(dir, name)
		content := outputs[name]
		p.Go(func() error {
			if err := g.writer.Write(dest, content); err != nil {
				return &FilesystemError{Op: "write", Path: dest, Err: err}
			}
			return nil
		})
	}
	if err := p.Wait(); err != nil {
		return nil, err
	}

	if len(failures) > 0 {
		return order, &RenderFailures{Errors: failures}
	}
	return order, nil
}

func (g *Generator) writeManifest(ctx context.Context, dir, packageName string, opts models.Options) (*models.Manifest, error) {
	m, err := g.assembler.Assemble(ctx, manifest.Request{
		Name:            packageName,
		Scripts:         opts.Scripts(),
		Dependencies:    opts.Dependencies(),
		DevDependencies: opts.DevDependencies(),
		Pinned:          g.pinned,
	})
	if err != nil {
		return nil, err
	}

	path := filepath.Join(dir, manifest.FileName)
	if err := manifest.Write(g.writer, dir, m); err != nil {
		return nil, &FilesystemError{Op: "write", Path: path, Err: err}
	}
	return m, nil
}
