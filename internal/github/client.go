package github

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"
)

const (
	apiURL        = "https://api.github.com"
	acceptHeader  = "application/vnd.github.v3+json"
	userAgent     = "hiring-framework-adk"
	reposPerPage  = "30"
	reposSortName = "pushed"
)

// ErrUserNotFound indicates the GitHub username does not exist.
var ErrUserNotFound = errors.New("github user not found")

// ErrRateLimited indicates the GitHub API rejected the request due to rate
// limiting. Callers may treat this as a soft failure.
var ErrRateLimited = errors.New("github api rate limit exceeded")

// Client is a minimal GitHub REST API client used to verify candidate
// profiles and sample their repositories.
type Client struct {
	token      string
	logger     *zap.Logger
	HTTPClient *http.Client
	UserAgent  string
	APIURL     string
}

// User is a GitHub user profile.
type User struct {
	Login       string `json:"login"`
	Name        string `json:"name"`
	Bio         string `json:"bio"`
	HTMLURL     string `json:"html_url"`
	PublicRepos int    `json:"public_repos"`
	Followers   int    `json:"followers"`
}

// Repo is a GitHub repository summary.
type Repo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Language    string `json:"language"`
	Stars       int    `json:"stargazers_count"`
	Fork        bool   `json:"fork"`
	PushedAt    string `json:"pushed_at"`
}

// New creates a Client. The token is optional; unauthenticated requests are
// subject to much lower rate limits.
func New(logger *zap.Logger, token string) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Client{
		token:  token,
		logger: logger,
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		UserAgent: userAgent,
		APIURL:    apiURL,
	}
}

// GetUser fetches the user profile, reporting ErrUserNotFound for unknown
// usernames and ErrRateLimited when throttled.
func (c *Client) GetUser(ctx context.Context, login string) (*User, error) {
	var user User
	if err := c.getJSON(ctx, fmt.Sprintf("%s/users/%s", c.APIURL, url.PathEscape(login)), nil, &user); err != nil {
		return nil, err
	}

	return &user, nil
}

// ListRepos fetches the user's most recently pushed repositories.
func (c *Client) ListRepos(ctx context.Context, login string) ([]Repo, error) {
	q := url.Values{}
	q.Set("sort", reposSortName)
	q.Set("per_page", reposPerPage)

	var repos []Repo
	if err := c.getJSON(ctx, fmt.Sprintf("%s/users/%s/repos", c.APIURL, url.PathEscape(login)), q, &repos); err != nil {
		return nil, err
	}

	return repos, nil
}

func (c *Client) getJSON(ctx context.Context, endpoint string, q url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}

	c.setHeaders(req)
	if q != nil {
		req.URL.RawQuery = q.Encode()
	}

	c.logger.Debug("github api request", zap.String("url", req.URL.String()))

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return ErrUserNotFound
	case http.StatusForbidden, http.StatusTooManyRequests:
		return ErrRateLimited
	default:
		return fmt.Errorf("bad status: %s", resp.Status)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode github response: %w", err)
	}

	return nil
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Accept", acceptHeader)
	req.Header.Set("User-Agent", c.UserAgent)
	if c.token != "" {
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.token))
	}
}
