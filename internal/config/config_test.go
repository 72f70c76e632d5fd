package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jakoblorz/create-vclight/internal/registry"
	"github.com/stretchr/testify/require"
)

func TestResolve_Defaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	v := New()
	require.NoError(t, ReadFile(v, ""))

	cfg, err := Resolve(v)
	require.NoError(t, err)
	require.Equal(t, registry.DefaultURL, cfg.RegistryURL)
	require.Equal(t, DefaultTimeout, cfg.Timeout)
	require.Equal(t, DefaultConcurrency, cfg.Concurrency)
	require.Empty(t, cfg.Pinned)
}

func TestResolve_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(file, []byte(`registry:
  url: https://npm.example.com/
  timeout: 5s
concurrency: 2
pinned:
  vclight: 2.0.0
  prettier: ^3.0.0
`), 0644))

	v := New()
	require.NoError(t, ReadFile(v, file))

	cfg, err := Resolve(v)
	require.NoError(t, err)
	require.Equal(t, "https://npm.example.com", cfg.RegistryURL)
	require.Equal(t, 5*time.Second, cfg.Timeout)
	require.Equal(t, 2, cfg.Concurrency)
	require.Equal(t, map[string]string{"vclight": "2.0.0", "prettier": "^3.0.0"}, cfg.Pinned)
}

func TestResolve_HomeConfigFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	require.NoError(t, os.WriteFile(filepath.Join(home, ".create-vclight.yaml"), []byte("concurrency: 3\n"), 0644))

	v := New()
	require.NoError(t, ReadFile(v, ""))

	cfg, err := Resolve(v)
	require.NoError(t, err)
	require.Equal(t, 3, cfg.Concurrency)
}

func TestResolve_Environment(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("CREATE_VCLIGHT_REGISTRY_URL", "http://localhost:4873")
	t.Setenv("CREATE_VCLIGHT_REGISTRY_TIMEOUT", "750ms")
	t.Setenv("CREATE_VCLIGHT_CONCURRENCY", "16")

	v := New()
	require.NoError(t, ReadFile(v, ""))

	cfg, err := Resolve(v)
	require.NoError(t, err)
	require.Equal(t, "http://localhost:4873", cfg.RegistryURL)
	require.Equal(t, 750*time.Millisecond, cfg.Timeout)
	require.Equal(t, 16, cfg.Concurrency)
}

func TestReadFile_MissingExplicitFile(t *testing.T) {
	v := New()
	err := ReadFile(v, filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to read config file")
}

func TestResolve_Invalid(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  any
	}{
		{name: "empty registry", key: KeyRegistryURL, val: ""},
		{name: "negative timeout", key: KeyRegistryTimeout, val: -time.Second},
		{name: "zero concurrency", key: KeyConcurrency, val: 0},
		{name: "bad pinned version", key: KeyPinned, val: map[string]string{"vclight": "not-a-version"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := New()
			v.Set(tt.key, tt.val)

			_, err := Resolve(v)
			require.Error(t, err)
		})
	}
}

func TestParsePin(t *testing.T) {
	tests := []struct {
		input       string
		wantName    string
		wantVersion string
		wantErr     bool
	}{
		{input: "vclight@2.0.0", wantName: "vclight", wantVersion: "2.0.0"},
		{input: "@vercel/node@3.0.0", wantName: "@vercel/node", wantVersion: "3.0.0"},
		{input: "prettier@^3.1.0", wantName: "prettier", wantVersion: "^3.1.0"},
		{input: "vclight", wantErr: true},
		{input: "@vercel/node", wantErr: true},
		{input: "vclight@", wantErr: true},
		{input: "vclight@banana", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			name, version, err := ParsePin(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.wantName, name)
			require.Equal(t, tt.wantVersion, version)
		})
	}
}
