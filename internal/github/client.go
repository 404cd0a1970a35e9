// Package github is a minimal read-only client for the GitHub REST API,
// covering exactly the lookups artifact resolution needs: branch tips and
// tagged releases.
package github

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/corvank/sdkfetch/internal/debug"
)

// DefaultBaseURL is the public GitHub API endpoint.
const DefaultBaseURL = "https://api.github.com"

// Branch is the subset of the branch payload used for commit resolution.
type Branch struct {
	Name   string `json:"name"`
	Commit Commit `json:"commit"`
}

// Commit identifies a single commit.
type Commit struct {
	SHA string `json:"sha"`
}

// Release is the subset of the release payload used for asset lookup.
type Release struct {
	TagName string          `json:"tag_name"`
	Assets  []*ReleaseAsset `json:"assets"`
}

// ReleaseAsset is a downloadable file attached to a release.
type ReleaseAsset struct {
	Name               string `json:"name"`
	UpdatedAt          string `json:"updated_at"`
	BrowserDownloadURL string `json:"browser_download_url"`
}

// Client queries the GitHub REST API.
type Client struct {
	// HTTPClient performs the requests.
	HTTPClient *http.Client
	// BaseURL is the API endpoint, overridable for tests and for GitHub
	// Enterprise installations.
	BaseURL string
	// Token is the optional access token for private repositories and
	// higher rate limits.
	Token string
}

// NewClient creates a client against the public GitHub API.
func NewClient(token string) *Client {
	return &Client{
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		BaseURL: DefaultBaseURL,
		Token:   token,
	}
}

// GetBranch fetches branch metadata, including the tip commit SHA.
func (c *Client) GetBranch(ctx context.Context, owner, repo, branch string) (*Branch, error) {
	url := fmt.Sprintf("%s/repos/%s/%s/branches/%s", c.BaseURL, owner, repo, branch)
	debug.DebugValue("branch lookup", url)

	var b Branch
	if err := c.getJSON(ctx, url, &b); err != nil {
		return nil, fmt.Errorf("failed to get branch %s of %s/%s: %w", branch, owner, repo, err)
	}
	if b.Commit.SHA == "" {
		return nil, fmt.Errorf("branch %s of %s/%s has no commit", branch, owner, repo)
	}
	return &b, nil
}

// GetReleaseByTag fetches the release with the given tag name.
func (c *Client) GetReleaseByTag(ctx context.Context, owner, repo, tag string) (*Release, int, error) {
	url := fmt.Sprintf("%s/repos/%s/%s/releases/tags/%s", c.BaseURL, owner, repo, tag)
	debug.DebugValue("release lookup", url)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, 0, fmt.Errorf("error creating request: %w", err)
	}
	c.setHeaders(req)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("error sending request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, resp.StatusCode, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var release Release
	if err := json.NewDecoder(resp.Body).Decode(&release); err != nil {
		return nil, resp.StatusCode, fmt.Errorf("error decoding response: %w", err)
	}
	return &release, resp.StatusCode, nil
}

func (c *Client) getJSON(ctx context.Context, url string, v interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return fmt.Errorf("error creating request: %w", err)
	}
	c.setHeaders(req)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("error sending request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("error decoding response: %w", err)
	}
	return nil
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Accept", "application/vnd.github.v3+json")
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}
}
