package registry

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"golang.org/x/mod/semver"
)

// DefaultURL is the public npm registry.
const DefaultURL = "https://registry.npmjs.org"

// ErrPackageNotFound is returned when the registry has no such package.
var ErrPackageNotFound = errors.New("package not found")

// NPMResolver looks up the latest published version of npm packages.
type NPMResolver struct {
	baseURL    string
	httpClient *http.Client
	userAgent  string
}

// Option configures an NPMResolver.
type Option func(*NPMResolver)

// WithHTTPClient sets a custom HTTP client (useful for testing).
func WithHTTPClient(c *http.Client) Option {
	return func(r *NPMResolver) {
		r.httpClient = c
	}
}

// WithUserAgent sets the User-Agent header sent to the registry.
func WithUserAgent(ua string) Option {
	return func(r *NPMResolver) {
		r.userAgent = ua
	}
}

// NewNPMResolver creates a resolver against the registry at baseURL.
func NewNPMResolver(baseURL string, opts ...Option) *NPMResolver {
	if baseURL == "" {
		baseURL = DefaultURL
	}
	r := &NPMResolver{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: http.DefaultClient,
		userAgent:  "create-vclight",
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

type latestDocument struct {
	Version string `json:"version"`
}

// ResolveLatestVersion returns the version behind the "latest" dist-tag of name.
func (r *NPMResolver) ResolveLatestVersion(ctx context.Context, name string) (string, error) {
	endpoint := fmt.Sprintf("%s/%s/latest", r.baseURL, url.PathEscape(name))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", r.userAgent)

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetching %s: %w", name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return "", fmt.Errorf("%s: %w", name, ErrPackageNotFound)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("registry returned status %d for %s", resp.StatusCode, name)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading response body: %w", err)
	}

	var doc latestDocument
	if err := json.Unmarshal(body, &doc); err != nil {
		return "", fmt.Errorf("parsing registry response for %s: %w", name, err)
	}

	if !semver.IsValid("v" + doc.Version) {
		return "", fmt.Errorf("registry returned invalid version %q for %s", doc.Version, name)
	}

	return doc.Version, nil
}
