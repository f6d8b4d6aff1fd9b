// Package summarize calls an external text-summarization API to rewrite
// commit messages into timesheet-friendly observations. The feature is
// optional and strictly best-effort: any failure leaves the original
// message untouched.
package summarize

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/dev-logger/dev-logger/internal/models"
)

type Client struct {
	client  *http.Client
	baseURL string
	apiKey  string
	logger  *logrus.Logger
}

func NewClient(baseURL, apiKey string, logger *logrus.Logger) *Client {
	return &Client{
		client:  &http.Client{Timeout: 30 * time.Second},
		baseURL: baseURL,
		apiKey:  apiKey,
		logger:  logger,
	}
}

// Enabled reports whether a summarizer endpoint is configured.
func (c *Client) Enabled() bool {
	return c.baseURL != ""
}

type summarizeRequest struct {
	Text string `json:"text"`
}

type summarizeResponse struct {
	Summary string `json:"summary"`
}

// Improve rewrites a single commit message.
func (c *Client) Improve(ctx context.Context, message string) (string, error) {
	payload, err := json.Marshal(summarizeRequest{Text: message})
	if err != nil {
		return "", fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("summarizer request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("summarizer returned status %d", resp.StatusCode)
	}

	var out summarizeResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("failed to decode summarizer response: %w", err)
	}
	if out.Summary == "" {
		return "", fmt.Errorf("summarizer returned an empty summary")
	}

	return out.Summary, nil
}

// ImproveAll rewrites every commit message in place, keeping the original
// on any per-commit failure.
func (c *Client) ImproveAll(ctx context.Context, commits []models.Commit) []models.Commit {
	out := make([]models.Commit, len(commits))
	copy(out, commits)

	for i := range out {
		improved, err := c.Improve(ctx, out[i].Message)
		if err != nil {
			c.logger.WithFields(logrus.Fields{
				"sha":        out[i].SHA,
				"repository": out[i].Repository,
			}).WithError(err).Warn("Failed to improve commit message, keeping original")
			continue
		}
		out[i].Message = improved
	}

	return out
}
