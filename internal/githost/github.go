// Package githost fetches repository trees and file contents from the
// GitHub REST API for remote scans.
package githost

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/huangsam/maintscore/internal/contract"
	"github.com/huangsam/maintscore/schema"
)

const defaultBaseURL = "https://api.github.com"

// GitHubHost implements SourceHost against the GitHub REST API.
type GitHubHost struct {
	client  *http.Client
	baseURL string
	token   string
}

var _ contract.SourceHost = &GitHubHost{} // Compile-time check

// Option customizes a GitHubHost.
type Option func(*GitHubHost)

// WithBaseURL overrides the API endpoint, for GitHub Enterprise or tests.
func WithBaseURL(url string) Option {
	return func(h *GitHubHost) {
		h.baseURL = strings.TrimSuffix(url, "/")
	}
}

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(h *GitHubHost) {
		h.client = client
	}
}

// NewGitHubHost creates a host. An empty token works for public repos within
// rate limits.
func NewGitHubHost(token string, opts ...Option) *GitHubHost {
	h := &GitHubHost{
		client:  &http.Client{Timeout: 30 * time.Second},
		baseURL: defaultBaseURL,
		token:   token,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

type treeResponse struct {
	Tree []struct {
		Path string `json:"path"`
		Type string `json:"type"`
	} `json:"tree"`
	Truncated bool `json:"truncated"`
}

type contentResponse struct {
	Content  string `json:"content"`
	Encoding string `json:"encoding"`
}

// ListFiles implements the SourceHost interface. Only blobs whose extension
// is on the allow-list are returned.
func (h *GitHubHost) ListFiles(ctx context.Context, owner, repo, branch string) ([]string, error) {
	if branch == "" {
		branch = "main"
	}
	url := fmt.Sprintf("%s/repos/%s/%s/git/trees/%s?recursive=1", h.baseURL, owner, repo, branch)

	body, err := h.get(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("fetch tree for %s/%s@%s: %w", owner, repo, branch, err)
	}

	var tree treeResponse
	if err := json.Unmarshal(body, &tree); err != nil {
		return nil, fmt.Errorf("decode tree for %s/%s: %w", owner, repo, err)
	}
	if tree.Truncated {
		contract.LogWarn(fmt.Sprintf("Tree listing for %s/%s is truncated, some files will be missed", owner, repo), nil)
	}

	var paths []string
	for _, entry := range tree.Tree {
		if entry.Type != "blob" {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Path))
		if _, ok := schema.AllowedExtensions[ext]; !ok {
			continue
		}
		paths = append(paths, entry.Path)
	}
	return paths, nil
}

// GetFileContent implements the SourceHost interface.
func (h *GitHubHost) GetFileContent(ctx context.Context, owner, repo, path string) (string, error) {
	url := fmt.Sprintf("%s/repos/%s/%s/contents/%s", h.baseURL, owner, repo, path)

	body, err := h.get(ctx, url)
	if err != nil {
		return "", fmt.Errorf("fetch content for %s/%s/%s: %w", owner, repo, path, err)
	}

	var content contentResponse
	if err := json.Unmarshal(body, &content); err != nil {
		return "", fmt.Errorf("decode content for %s: %w", path, err)
	}
	if content.Encoding != "base64" {
		return "", fmt.Errorf("unexpected encoding %q for %s", content.Encoding, path)
	}

	// GitHub wraps base64 payloads with newlines
	raw := strings.ReplaceAll(content.Content, "\n", "")
	decoded, err := base64.StdEncoding.DecodeString(raw)
	if err != nil {
		return "", fmt.Errorf("decode base64 for %s: %w", path, err)
	}
	return string(decoded), nil
}

// get performs one authenticated API request.
func (h *GitHubHost) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	if h.token != "" {
		req.Header.Set("Authorization", "Bearer "+h.token)
	}

	resp, err := h.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	return body, nil
}
