// Package mailbox fetches SMS-over-email messages from the mailbox HTTP API.
package mailbox

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// DefaultBaseURL is the mailbox API used by the signup test environment.
const DefaultBaseURL = "http://mail.bamboo.stuffio.com/api/v2"

// DefaultLimit is the number of messages fetched per request.
const DefaultLimit = 50

// Client handles HTTP communication with the mailbox API.
// It reuses a single underlying connection and never mutates mailbox
// state; fetch failures are returned immediately, retry policy lives
// one layer up in the retriever.
type Client struct {
	baseURL string
	client  *http.Client
}

// NewClient creates a mailbox client for the given base URL.
// An empty baseURL falls back to DefaultBaseURL.
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// BaseURL returns the configured API base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Messages fetches up to limit messages, most-recent-first as delivered
// by the service (no local re-sorting). If subjectFilter is non-empty,
// only messages with a subject header containing it are returned.
func (c *Client) Messages(ctx context.Context, limit int, subjectFilter string) ([]Message, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}

	url := fmt.Sprintf("%s/messages?limit=%d", c.baseURL, limit)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json, text/plain, */*")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	req.Header.Set("User-Agent", "otpkit/1.0")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch messages: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("mailbox API returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var list listResponse
	if err := json.Unmarshal(body, &list); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	messages := list.Items
	if subjectFilter != "" {
		messages = filterBySubject(messages, subjectFilter)
	}

	return messages, nil
}

// filterBySubject retains messages where any subject header contains the filter.
func filterBySubject(messages []Message, filter string) []Message {
	var filtered []Message
	for _, m := range messages {
		for _, subject := range m.Content.Headers.Subject {
			if strings.Contains(subject, filter) {
				filtered = append(filtered, m)
				break
			}
		}
	}
	return filtered
}
