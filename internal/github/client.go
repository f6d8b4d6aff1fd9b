package github

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/oauth2"

	"github.com/dev-logger/dev-logger/internal/models"
)

const defaultBaseURL = "https://api.github.com"

// RateLimitInfo holds information about GitHub API rate limits
type RateLimitInfo struct {
	Limit     int
	Remaining int
	ResetTime time.Time
}

// Client is a GitHub REST client bound to one delegated access token.
// Clients are cheap; report handlers build one per request from the
// authenticated user's stored token and share it across the concurrent
// per-repository fetches, so the rate-limit state is mutex-guarded.
type Client struct {
	client  *http.Client
	baseURL string
	logger  *logrus.Logger

	rateLimitMu    sync.Mutex
	rateLimitInfo  RateLimitInfo
	maxRetries     int
	initialBackoff time.Duration
	maxBackoff     time.Duration
}

// ClientOption allows configuring the GitHub client
type ClientOption func(*Client)

// WithRetryConfig configures retry behavior
func WithRetryConfig(maxRetries int, initialBackoff, maxBackoff time.Duration) ClientOption {
	return func(c *Client) {
		c.maxRetries = maxRetries
		c.initialBackoff = initialBackoff
		c.maxBackoff = maxBackoff
	}
}

// WithBaseURL overrides the API base URL, used by tests.
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// NewClient creates a GitHub client with the given token and options.
func NewClient(token string, logger *logrus.Logger, opts ...ClientOption) *Client {
	ts := oauth2.StaticTokenSource(
		&oauth2.Token{AccessToken: token},
	)
	httpClient := oauth2.NewClient(context.Background(), ts)
	httpClient.Timeout = 60 * time.Second

	client := &Client{
		client:         httpClient,
		baseURL:        defaultBaseURL,
		logger:         logger,
		maxRetries:     3,
		initialBackoff: time.Second,
		maxBackoff:     time.Minute,
	}

	for _, opt := range opts {
		opt(client)
	}

	return client
}

// updateRateLimitInfo records the rate-limit headers and returns a snapshot
// of the state after the update.
func (c *Client) updateRateLimitInfo(resp *http.Response) RateLimitInfo {
	c.rateLimitMu.Lock()
	defer c.rateLimitMu.Unlock()

	if limit := resp.Header.Get("X-RateLimit-Limit"); limit != "" {
		c.rateLimitInfo.Limit, _ = strconv.Atoi(limit)
	}
	if remaining := resp.Header.Get("X-RateLimit-Remaining"); remaining != "" {
		c.rateLimitInfo.Remaining, _ = strconv.Atoi(remaining)
	}
	if reset := resp.Header.Get("X-RateLimit-Reset"); reset != "" {
		if resetTime, err := strconv.ParseInt(reset, 10, 64); err == nil {
			c.rateLimitInfo.ResetTime = time.Unix(resetTime, 0)
		}
	}
	return c.rateLimitInfo
}

// doRequestWithBackoff performs an HTTP request, retrying transport errors
// and 5xx responses with exponential backoff. Rate-limit responses return a
// RateLimitError immediately: report requests treat a limited repository as
// a failed fetch rather than blocking until the window resets.
func (c *Client) doRequestWithBackoff(req *http.Request, result interface{}) error {
	var lastErr error
	backoff := c.initialBackoff

	for attempt := 0; attempt < c.maxRetries; attempt++ {
		resp, err := c.client.Do(req)
		if err != nil {
			lastErr = NewAPIError(0, "request failed", err)
			c.logger.Warnf("Request attempt %d failed: %v", attempt+1, err)
			time.Sleep(backoff)
			backoff = time.Duration(math.Min(float64(backoff*2), float64(c.maxBackoff)))
			continue
		}

		rateLimit := c.updateRateLimitInfo(resp)

		if resp.StatusCode == http.StatusTooManyRequests ||
			(resp.StatusCode == http.StatusForbidden && rateLimit.Remaining == 0) {
			resp.Body.Close()
			return &RateLimitError{
				ResetTime: rateLimit.ResetTime,
				Limit:     rateLimit.Limit,
				Remaining: rateLimit.Remaining,
			}
		}

		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			lastErr = NewAPIError(resp.StatusCode, "failed to read response body", err)
			continue
		}

		if resp.StatusCode != http.StatusOK {
			lastErr = NewAPIError(resp.StatusCode, string(body), nil)
			if resp.StatusCode >= 500 {
				time.Sleep(backoff)
				backoff = time.Duration(math.Min(float64(backoff*2), float64(c.maxBackoff)))
				continue
			}
			return lastErr
		}

		if result != nil {
			if err := json.Unmarshal(body, result); err != nil {
				return NewAPIError(resp.StatusCode, "failed to decode response", err)
			}
		}

		return nil
	}

	return fmt.Errorf("max retries exceeded: %w", lastErr)
}

// commitDTO mirrors the GitHub commit list payload. The author date is
// decoded as a string so a single malformed record can be skipped instead
// of failing the whole page.
type commitDTO struct {
	SHA    string `json:"sha"`
	Commit struct {
		Message string `json:"message"`
		Author  struct {
			Name  string `json:"name"`
			Email string `json:"email"`
			Date  string `json:"date"`
		} `json:"author"`
	} `json:"commit"`
	HTMLURL string `json:"html_url"`
}

// ListCommits fetches all commits of owner/name inside the given window,
// newest first as GitHub returns them. Records with unparsable author dates
// are logged and dropped at this boundary so nothing untyped propagates
// inward.
func (c *Client) ListCommits(ctx context.Context, owner, name string, since, until time.Time) ([]models.Commit, error) {
	if owner == "" {
		return nil, NewValidationError("owner", "cannot be empty")
	}
	if name == "" {
		return nil, NewValidationError("name", "cannot be empty")
	}

	logger := c.logger.WithFields(logrus.Fields{
		"owner": owner,
		"repo":  name,
		"since": since,
		"until": until,
	})

	baseURL := fmt.Sprintf("%s/repos/%s/%s/commits", c.baseURL, owner, name)
	repository := fmt.Sprintf("%s/%s", owner, name)

	var commits []models.Commit
	for page := 1; ; page++ {
		query := url.Values{}
		if !since.IsZero() {
			query.Set("since", since.Format(time.RFC3339))
		}
		if !until.IsZero() {
			query.Set("until", until.Format(time.RFC3339))
		}
		query.Set("page", strconv.Itoa(page))
		query.Set("per_page", "100")

		req, err := http.NewRequestWithContext(ctx, "GET", baseURL+"?"+query.Encode(), nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}

		var dtos []commitDTO
		if err := c.doRequestWithBackoff(req, &dtos); err != nil {
			var apiErr *APIError
			if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound {
				return nil, &RepositoryNotFoundError{Owner: owner, Name: name}
			}
			logger.WithError(err).Error("Failed to fetch commits from GitHub API")
			return nil, err
		}

		if len(dtos) == 0 {
			break
		}

		for _, dto := range dtos {
			authorDate, err := time.Parse(time.RFC3339, dto.Commit.Author.Date)
			if err != nil {
				logger.WithFields(logrus.Fields{
					"sha":  dto.SHA,
					"date": dto.Commit.Author.Date,
				}).Warn("Skipping commit with unparsable author date")
				continue
			}
			commits = append(commits, models.Commit{
				SHA:         dto.SHA,
				Message:     dto.Commit.Message,
				AuthorName:  dto.Commit.Author.Name,
				AuthorEmail: dto.Commit.Author.Email,
				AuthorDate:  authorDate,
				Repository:  repository,
				URL:         dto.HTMLURL,
			})
		}

		if len(dtos) < 100 {
			break
		}
	}

	logger.WithField("total_commits", len(commits)).Debug("Fetched commits from GitHub API")
	return commits, nil
}
