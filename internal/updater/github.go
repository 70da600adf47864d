package updater

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/klauspost/compress/gzip"
)

const (
	defaultReleaseURL = "https://api.github.com/repos/Queuete/ExileApi/releases/latest"
	defaultUserAgent  = "ExileApi"

	// maxJSONResponseBytes caps the decoded release document (10 MB).
	maxJSONResponseBytes = 10 << 20
)

// ErrReleaseUnavailable wraps every failure to obtain the latest release.
var ErrReleaseUnavailable = errors.New("latest release unavailable")

type (
	// GitHubClient fetches the latest release descriptor.
	GitHubClient struct {
		httpClient *http.Client
		url        string
		userAgent  string
	}

	// ClientOption configures a GitHubClient.
	ClientOption func(*GitHubClient)
)

// WithHTTPClient sets the HTTP client used for requests.
func WithHTTPClient(c *http.Client) ClientOption {
	return func(g *GitHubClient) {
		g.httpClient = c
	}
}

// WithReleaseURL overrides the release-listing endpoint.
func WithReleaseURL(u string) ClientOption {
	return func(g *GitHubClient) {
		g.url = u
	}
}

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(ua string) ClientOption {
	return func(g *GitHubClient) {
		g.userAgent = ua
	}
}

// NewGitHubClient creates a client for the default ExileApi release endpoint.
func NewGitHubClient(opts ...ClientOption) *GitHubClient {
	c := &GitHubClient{
		httpClient: http.DefaultClient,
		url:        defaultReleaseURL,
		userAgent:  defaultUserAgent,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FetchLatest queries the release endpoint and decodes the latest release.
// The tag is not validated here; parsing it is the checker's job.
func (c *GitHubClient) FetchLatest(ctx context.Context) (*Release, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("%w: creating request: %v", ErrReleaseUnavailable, err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("User-Agent", c.userAgent)
	// Setting this ourselves disables the transport's transparent
	// decompression, so gzip bodies are decoded below.
	req.Header.Set("Accept-Encoding", "gzip")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrReleaseUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: GitHub API error: HTTP %d", ErrReleaseUnavailable, resp.StatusCode)
	}

	body, err := decodedBody(resp)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrReleaseUnavailable, err)
	}
	defer body.Close()

	var release Release
	if err := json.NewDecoder(io.LimitReader(body, maxJSONResponseBytes)).Decode(&release); err != nil {
		return nil, fmt.Errorf("%w: failed to parse release data: %v", ErrReleaseUnavailable, err)
	}
	return &release, nil
}

func decodedBody(resp *http.Response) (io.ReadCloser, error) {
	if !strings.EqualFold(resp.Header.Get("Content-Encoding"), "gzip") {
		return io.NopCloser(resp.Body), nil
	}
	zr, err := gzip.NewReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to open gzip body: %w", err)
	}
	return zr, nil
}
