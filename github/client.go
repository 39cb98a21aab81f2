package github

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"commitscope/logger"

	"go.uber.org/zap"
)

// Client errors
var (
	ErrRateLimited = errors.New("github API rate limit exceeded")
	ErrNotFound    = errors.New("github resource not found")
)

// commitPageSize is the hard cap on commits fetched per repository: only
// the first page is requested, so repositories with more history are
// truncated to their 100 most recent commits.
const commitPageSize = 100

// RateLimit represents GitHub's rate limit information
type RateLimit struct {
	Limit     int
	Remaining int
	Reset     time.Time
}

// Client represents a GitHub API client
type Client struct {
	token      string
	httpClient *http.Client
	baseURL    *url.URL
}

// RepoResponse is the subset of the repository listing payload the
// application cares about.
type RepoResponse struct {
	Name  string `json:"name"`
	Fork  bool   `json:"fork"`
	Owner struct {
		Login string `json:"login"`
	} `json:"owner"`
}

type CommitResponse struct {
	SHA    string `json:"sha"`
	Commit struct {
		Message string `json:"message"`
		Author  struct {
			Name  string    `json:"name"`
			Email string    `json:"email"`
			Date  time.Time `json:"date"`
		} `json:"author"`
	} `json:"commit"`
}

// NewClient creates a GitHub API client. An empty token means
// unauthenticated requests. An empty rawBaseURL falls back to the public
// API endpoint.
func NewClient(token, rawBaseURL string, timeout time.Duration) *Client {
	if rawBaseURL == "" {
		rawBaseURL = "https://api.github.com"
	}
	baseURL, _ := url.Parse(rawBaseURL)
	logger.Info("Initializing GitHub client", zap.String("base_url", baseURL.String()))
	return &Client{
		token: token,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL: baseURL,
	}
}

func (c *Client) newRequest(ctx context.Context, reqURL string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if c.token != "" {
		req.Header.Set("Authorization", fmt.Sprintf("token %s", c.token))
	}
	req.Header.Set("Accept", "application/vnd.github.v3+json")
	return req, nil
}

// ListRepositories returns the names of the repositories owned by the
// given user, excluding forks and repositories owned by someone else.
func (c *Client) ListRepositories(ctx context.Context, username string) ([]string, error) {
	path := fmt.Sprintf("/users/%s/repos", username)
	reqURL := c.baseURL.ResolveReference(&url.URL{Path: path})

	logger.Info("Fetching repositories",
		zap.String("username", username),
		zap.String("url", reqURL.String()))

	req, err := c.newRequest(ctx, reqURL.String())
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.Error("Failed to fetch repositories",
			zap.Error(err),
			zap.String("username", username))
		return nil, fmt.Errorf("failed to fetch repositories: %w", err)
	}
	defer resp.Body.Close()

	if err := checkResponse(resp); err != nil {
		logger.Error("Failed to fetch repositories",
			zap.Int("status_code", resp.StatusCode),
			zap.String("username", username))
		return nil, err
	}

	var repos []RepoResponse
	if err := json.NewDecoder(resp.Body).Decode(&repos); err != nil {
		logger.Error("Failed to decode repositories response",
			zap.Error(err),
			zap.String("username", username))
		return nil, fmt.Errorf("failed to decode repositories response: %w", err)
	}

	var names []string
	for _, repo := range repos {
		if repo.Fork || repo.Owner.Login != username {
			continue
		}
		names = append(names, repo.Name)
	}

	logger.Info("Successfully fetched repositories",
		zap.String("username", username),
		zap.Int("total_count", len(repos)),
		zap.Int("own_count", len(names)))

	return names, nil
}

// ListCommits fetches the most recent commits of a repository. Only the
// first page is requested (see commitPageSize).
func (c *Client) ListCommits(ctx context.Context, username, repo string) ([]CommitResponse, error) {
	path := fmt.Sprintf("/repos/%s/%s/commits", username, repo)
	reqURL := c.baseURL.ResolveReference(&url.URL{Path: path})

	q := reqURL.Query()
	q.Set("per_page", strconv.Itoa(commitPageSize))
	reqURL.RawQuery = q.Encode()

	logger.Info("Fetching commits",
		zap.String("username", username),
		zap.String("repo", repo),
		zap.String("url", reqURL.String()))

	req, err := c.newRequest(ctx, reqURL.String())
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.Error("Failed to fetch commits",
			zap.Error(err),
			zap.String("username", username),
			zap.String("repo", repo))
		return nil, fmt.Errorf("failed to fetch commits: %w", err)
	}
	defer resp.Body.Close()

	if err := checkResponse(resp); err != nil {
		logger.Error("Failed to fetch commits",
			zap.Int("status_code", resp.StatusCode),
			zap.String("username", username),
			zap.String("repo", repo))
		return nil, err
	}

	var commits []CommitResponse
	if err := json.NewDecoder(resp.Body).Decode(&commits); err != nil {
		logger.Error("Failed to decode commits response",
			zap.Error(err),
			zap.String("username", username),
			zap.String("repo", repo))
		return nil, fmt.Errorf("failed to decode commits response: %w", err)
	}

	logger.Info("Successfully fetched commits",
		zap.String("username", username),
		zap.String("repo", repo),
		zap.Int("count", len(commits)))

	return commits, nil
}

// checkResponse maps non-2xx responses to errors, detecting exhausted
// rate limits from the X-RateLimit-* headers.
func checkResponse(resp *http.Response) error {
	if resp.StatusCode == http.StatusOK {
		return nil
	}
	if resp.StatusCode == http.StatusForbidden && resp.Header.Get("X-RateLimit-Remaining") == "0" {
		rl := parseRateLimit(resp)
		return fmt.Errorf("%w: limit %d, resets at %s", ErrRateLimited, rl.Limit, rl.Reset.Format(time.RFC3339))
	}
	if resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("%w: %s", ErrNotFound, resp.Request.URL.Path)
	}
	return fmt.Errorf("unexpected status code %d", resp.StatusCode)
}

// parseRateLimit parses rate limit information from response headers
func parseRateLimit(resp *http.Response) RateLimit {
	limit, _ := strconv.Atoi(resp.Header.Get("X-RateLimit-Limit"))
	remaining, _ := strconv.Atoi(resp.Header.Get("X-RateLimit-Remaining"))
	reset, _ := strconv.ParseInt(resp.Header.Get("X-RateLimit-Reset"), 10, 64)

	return RateLimit{
		Limit:     limit,
		Remaining: remaining,
		Reset:     time.Unix(reset, 0).UTC(),
	}
}
