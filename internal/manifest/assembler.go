package manifest

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/jakoblorz/create-vclight/internal/models"
	"github.com/sourcegraph/conc/pool"
)

// FileName is the name of the generated manifest.
const FileName = "package.json"

// Resolver looks up the latest published version of a package.
type Resolver interface {
	ResolveLatestVersion(ctx context.Context, name string) (string, error)
}

// ResolverFunc adapts a function to Resolver.
type ResolverFunc func(ctx context.Context, name string) (string, error)

func (f ResolverFunc) ResolveLatestVersion(ctx context.Context, name string) (string, error) {
	return f(ctx, name)
}

// Request describes the manifest to assemble.
type Request struct {
	Name            string
	Scripts         map[string]string
	Dependencies    []string
	DevDependencies []string

	// Pinned maps package names to exact versions that replace resolved ones
	Pinned map[string]string
}

// PackageFailure is one failed lookup.
type PackageFailure struct {
	Name string
	Err  error
}

// ResolutionError lists every package whose version could not be resolved.
type ResolutionError struct {
	Failures []PackageFailure
}

func (e *ResolutionError) Error() string {
	parts := make([]string, 0, len(e.Failures))
	for _, f := range e.Failures {
		parts = append(parts, fmt.Sprintf("%s (%v)", f.Name, f.Err))
	}
	return fmt.Sprintf("failed to resolve %d package(s): %s", len(e.Failures), strings.Join(parts, ", "))
}

func (e *ResolutionError) Unwrap() []error {
	errs := make([]error, 0, len(e.Failures))
	for _, f := range e.Failures {
		errs = append(errs, f.Err)
	}
	return errs
}

// Packages returns the names of the failed packages.
func (e *ResolutionError) Packages() []string {
	names := make([]string, 0, len(e.Failures))
	for _, f := range e.Failures {
		names = append(names, f.Name)
	}
	return names
}

// Assembler builds manifests from concurrently resolved versions.
type Assembler struct {
	resolver Resolver
	timeout  time.Duration
}

// NewAssembler creates an Assembler. A zero timeout disables the deadline.
func NewAssembler(resolver Resolver, timeout time.Duration) *Assembler {
	return &Assembler{resolver: resolver, timeout: timeout}
}

type lookup struct {
	name    string
	dev     bool
	version string
	err     error
}

// Assemble resolves every requested package in parallel, waits for all of
// them, and builds the manifest. Resolved versions become caret ranges;
// pinned versions are applied afterwards and win. If any lookup fails no
// manifest is returned and the error is a *ResolutionError.
func (a *Assembler) Assemble(ctx context.Context, req Request) (*models.Manifest, error) {
	if a.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.timeout)
		defer cancel()
	}

	p := pool.NewWithResults[lookup]()
	for _, name := range req.Dependencies {
		p.Go(a.resolve(ctx, name, false))
	}
	for _, name := range req.DevDependencies {
		p.Go(a.resolve(ctx, name, true))
	}
	results := p.Wait()

	m := models.NewManifest(req.Name, req.Scripts)
	var failures []PackageFailure
	for _, res := range results {
		if res.err != nil {
			failures = append(failures, PackageFailure{Name: res.name, Err: res.err})
			continue
		}
		target := m.Dependencies
		if res.dev {
			target = m.DevDependencies
		}
		target[res.name] = "^" + res.version
	}

	if len(failures) > 0 {
		sort.Slice(failures, func(i, j int) bool {
			return failures[i].Name < failures[j].Name
		})
		return nil, &ResolutionError{Failures: failures}
	}

	applyPinned(m, req)

	return m, nil
}

func (a *Assembler) resolve(ctx context.Context, name string, dev bool) func() lookup {
	return func() lookup {
		version, err := a.resolver.ResolveLatestVersion(ctx, name)
		return lookup{name: name, dev: dev, version: version, err: err}
	}
}

func applyPinned(m *models.Manifest, req Request) {
	dev := make(map[string]struct{}, len(req.DevDependencies))
	for _, name := range req.DevDependencies {
		dev[name] = struct{}{}
	}

	for name, version := range req.Pinned {
		if _, ok := dev[name]; ok {
			m.DevDependencies[name] = version
			continue
		}
		m.Dependencies[name] = version
	}
}

// Marshal serializes m the way npm writes package.json: two-space indent
// and a trailing newline.
func Marshal(m *models.Manifest) ([]byte, error) {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal manifest: %w", err)
	}
	return append(data, '\n'), nil
}

// Writer is the subset of the file writer the manifest needs.
type Writer interface {
	Write(path string, content []byte) error
}

// Write serializes m to dir/package.json.
func Write(w Writer, dir string, m *models.Manifest) error {
	data, err := Marshal(m)
	if err != nil {
		return err
	}
	return w.Write(filepath.Join(dir, FileName), data)
}
