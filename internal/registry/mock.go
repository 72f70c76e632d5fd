package registry

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// MockResolver is an in-memory resolver for tests.
type MockResolver struct {
	mu       sync.Mutex
	versions map[string]string
	errors   map[string]error
	delay    time.Duration
	calls    []string
}

// NewMockResolver creates a new MockResolver
func NewMockResolver() *MockResolver {
	return &MockResolver{
		versions: make(map[string]string),
		errors:   make(map[string]error),
	}
}

// SetVersion makes name resolve to version
func (m *MockResolver) SetVersion(name, version string) *MockResolver {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.versions[name] = version
	return m
}

// SetError makes lookups of name fail with err
func (m *MockResolver) SetError(name string, err error) *MockResolver {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errors[name] = err
	return m
}

// SetDelay delays every lookup by d, or until the context is done
func (m *MockResolver) SetDelay(d time.Duration) *MockResolver {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.delay = d
	return m
}

// Calls returns the package names looked up so far, in call order
func (m *MockResolver) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.calls...)
}

func (m *MockResolver) ResolveLatestVersion(ctx context.Context, name string) (string, error) {
	m.mu.Lock()
	m.calls = append(m.calls, name)
	delay := m.delay
	version, hasVersion := m.versions[name]
	err := m.errors[name]
	m.mu.Unlock()

	if delay > 0 {
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}

	if err != nil {
		return "", err
	}
	if !hasVersion {
		return "", fmt.Errorf("%s: %w", name, ErrPackageNotFound)
	}
	return version, nil
}
