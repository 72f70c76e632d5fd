package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/jakoblorz/create-vclight/internal/filesystem"
	"github.com/jakoblorz/create-vclight/internal/manifest"
	"github.com/jakoblorz/create-vclight/internal/models"
	"github.com/jakoblorz/create-vclight/internal/registry"
	"github.com/jakoblorz/create-vclight/internal/scaffold"
	"github.com/stretchr/testify/require"
)

const testWorkspaceRoot = "/workspace"

func newTestResolver() *registry.MockResolver {
	return registry.NewMockResolver().
		SetVersion("vercel", "39.1.0").
		SetVersion("vclight", "2.0.1").
		SetVersion("vclight-router", "1.4.0").
		SetVersion("@vercel/node", "3.2.24").
		SetVersion("prettier", "3.3.3")
}

type runResult struct {
	fs     *filesystem.MockFileSystem
	output string
	err    error
}

func runCreate(t *testing.T, fs *filesystem.MockFileSystem, resolver manifest.Resolver, prompter Prompter, args ...string) runResult {
	t.Helper()
	t.Setenv("HOME", t.TempDir())

	if fs == nil {
		fs = filesystem.NewMockFileSystem()
		fs.AddDir(testWorkspaceRoot)
	}

	var buf bytes.Buffer
	cmd := NewRootCommand(fs, resolver, prompter)
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return runResult{fs: fs, output: buf.String(), err: err}
}

func failingPrompter(t *testing.T) Prompter {
	return PrompterFunc(func(name string) (*models.Options, error) {
		t.Fatalf("prompter must not be called for %s", name)
		return nil, nil
	})
}

func TestCreate_WithFlags(t *testing.T) {
	res := runCreate(t, nil, newTestResolver(), failingPrompter(t),
		"demo", "--template", "router", "--plugin", "prettier")
	require.NoError(t, res.err)

	require.Contains(t, res.output, "Creating project demo in /workspace/demo")
	require.Contains(t, res.output, "Project Created")
	require.Contains(t, res.output, "cd demo")
	require.Contains(t, res.output, "npm install")

	require.True(t, res.fs.Exists("/workspace/demo/src/app/router.ts"))
	require.True(t, res.fs.Exists("/workspace/demo/.prettierrc.json"))

	m := readManifest(t, res.fs, "/workspace/demo/package.json")
	require.Equal(t, "^1.4.0", m.Dependencies["vclight-router"])
	require.Equal(t, "^3.3.3", m.DevDependencies["prettier"])
}

func TestCreate_Prompted(t *testing.T) {
	var prompted []string
	prompter := PrompterFunc(func(name string) (*models.Options, error) {
		prompted = append(prompted, name)
		return &models.Options{Template: models.TemplateBlank}, nil
	})

	res := runCreate(t, nil, newTestResolver(), prompter, "demo")
	require.NoError(t, res.err)
	require.Equal(t, []string{"demo"}, prompted)

	require.True(t, res.fs.Exists("/workspace/demo/src/main.ts"))
	require.False(t, res.fs.Exists("/workspace/demo/src/app"))
}

func TestCreate_PromptAborted(t *testing.T) {
	resolver := newTestResolver()
	prompter := PrompterFunc(func(string) (*models.Options, error) {
		return nil, nil
	})

	res := runCreate(t, nil, resolver, prompter, "demo")
	require.NoError(t, res.err)
	require.Contains(t, res.output, "Aborted")
	require.False(t, res.fs.Exists("/workspace/demo"))
	require.Empty(t, resolver.Calls())
}

func TestCreate_PromptError(t *testing.T) {
	prompter := PrompterFunc(func(string) (*models.Options, error) {
		return nil, errors.New("no tty")
	})

	res := runCreate(t, nil, newTestResolver(), prompter, "demo")
	require.Error(t, res.err)
	require.Contains(t, res.err.Error(), "failed to run TUI")
	require.False(t, res.fs.Exists("/workspace/demo"))
}

func TestCreate_InvalidNameSkipsPrompt(t *testing.T) {
	res := runCreate(t, nil, newTestResolver(), failingPrompter(t), "bad/name")
	require.Error(t, res.err)
	require.Equal(t, scaffold.ExitInvalidName, scaffold.ExitCode(res.err))
	require.Equal(t, []string{"/workspace"}, res.fs.Paths("/workspace"))
}

func TestCreate_TargetExistsSkipsPrompt(t *testing.T) {
	fs := filesystem.NewMockFileSystem()
	fs.AddDir("/workspace/demo")

	res := runCreate(t, fs, newTestResolver(), failingPrompter(t), "demo")
	require.Equal(t, scaffold.ExitTargetExists, scaffold.ExitCode(res.err))
}

func TestCreate_Pins(t *testing.T) {
	res := runCreate(t, nil, newTestResolver(), nil,
		"demo", "--template", "blank",
		"--pin", "vclight@2.0.0",
		"--pin", "@vercel/node@3.0.0")
	require.NoError(t, res.err)

	m := readManifest(t, res.fs, "/workspace/demo/package.json")
	require.Equal(t, "2.0.0", m.Dependencies["vclight"])
	require.Equal(t, "3.0.0", m.DevDependencies["@vercel/node"])
}

func TestCreate_InvalidFlags(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{name: "unknown template", args: []string{"demo", "--template", "fancy"}, want: "invalid template"},
		{name: "unknown plugin", args: []string{"demo", "--template", "blank", "--plugin", "eslint"}, want: "invalid plugin"},
		{name: "malformed pin", args: []string{"demo", "--template", "blank", "--pin", "vclight"}, want: "invalid pin"},
		{name: "negative concurrency", args: []string{"demo", "--template", "blank", "--concurrency=-1"}, want: "concurrency"},
		{name: "missing name", args: []string{}, want: "accepts 1 arg(s)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := runCreate(t, nil, newTestResolver(), failingPrompter(t), tt.args...)
			require.Error(t, res.err)
			require.Contains(t, res.err.Error(), tt.want)
			require.False(t, res.fs.Exists("/workspace/demo"))
		})
	}
}

func TestCreate_TemplateDir(t *testing.T) {
	fs := filesystem.NewMockFileSystem()
	fs.AddDir(testWorkspaceRoot)
	fs.AddFile("/templates/base/hello.txt.tmpl", []byte("hello {{ .packageName }}\n"))

	res := runCreate(t, fs, newTestResolver(), nil,
		"My App", "--template", "blank", "--template-dir", "/templates")
	require.NoError(t, res.err)

	content, err := fs.ReadFile("/workspace/My App/hello.txt")
	require.NoError(t, err)
	require.Equal(t, "hello my-app\n", string(content))
	require.False(t, fs.Exists("/workspace/My App/src/main.ts"))
}

func TestCreate_ResolutionFailure(t *testing.T) {
	resolver := newTestResolver().SetError("vercel", fmt.Errorf("vercel: %w", registry.ErrPackageNotFound))

	res := runCreate(t, nil, resolver, nil, "demo", "--template", "blank")
	require.Error(t, res.err)
	require.Equal(t, scaffold.ExitResolution, scaffold.ExitCode(res.err))
	require.ErrorIs(t, res.err, registry.ErrPackageNotFound)
}

func TestCreate_RegistryFromConfigFile(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"name":"x","version":"1.2.3"}`))
	}))
	defer server.Close()

	configFile := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(configFile, []byte(fmt.Sprintf("registry:\n  url: %s\n  timeout: 5s\n", server.URL)), 0644))

	res := runCreate(t, nil, nil, nil, "demo", "--template", "blank", "--config", configFile)
	require.NoError(t, res.err)

	m := readManifest(t, res.fs, "/workspace/demo/package.json")
	require.Equal(t, map[string]string{"vercel": "^1.2.3", "vclight": "^1.2.3"}, m.Dependencies)
	require.Equal(t, map[string]string{"@vercel/node": "^1.2.3"}, m.DevDependencies)
}

func TestCreate_RegistryFlagOverridesConfig(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"version":"4.5.6"}`))
	}))
	defer server.Close()

	configFile := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(configFile, []byte("registry:\n  url: http://127.0.0.1:1\n"), 0644))

	res := runCreate(t, nil, nil, nil,
		"demo", "--template", "blank", "--config", configFile, "--registry", server.URL)
	require.NoError(t, res.err)

	m := readManifest(t, res.fs, "/workspace/demo/package.json")
	require.Equal(t, "^4.5.6", m.Dependencies["vclight"])
}

func readManifest(t *testing.T, fs filesystem.ReadOnly, path string) *models.Manifest {
	t.Helper()

	data, err := fs.ReadFile(path)
	require.NoError(t, err)

	var m models.Manifest
	require.NoError(t, json.Unmarshal(data, &m))
	return &m
}
