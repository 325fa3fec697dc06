package notion

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

const (
	defaultBaseURL  = "https://api.notion.com"
	defaultPageSize = 100
)

// Client talks to the Notion REST API. Transport details (token, API
// version, timeouts) live here; callers only see pages.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client

	token     string
	version   string
	userAgent string
}

func NewClient(token, version, userAgent string, timeout time.Duration) *Client {
	return &Client{
		BaseURL: defaultBaseURL,
		HTTPClient: &http.Client{
			Timeout: timeout,
		},
		token:     token,
		version:   version,
		userAgent: userAgent,
	}
}

// FetchAll queries a database page by page until the API reports no more
// data, returning the full record set in API order. Any page failure
// aborts the whole fetch; retry policy, if wanted, belongs to the caller.
func (c *Client) FetchAll(ctx context.Context, databaseID string, filter *Expr, pageSize int) ([]Page, error) {
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}

	var pages []Page
	cursor := ""

	for {
		resp, err := c.queryDatabase(ctx, databaseID, queryRequest{
			Filter:      filter,
			StartCursor: cursor,
			PageSize:    pageSize,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to query database %s: %w", databaseID, err)
		}

		pages = append(pages, resp.Results...)

		if !resp.HasMore || resp.NextCursor == nil || *resp.NextCursor == "" {
			break
		}
		cursor = *resp.NextCursor
	}

	slog.Debug("Database query completed", "database", databaseID, "pages", len(pages))

	return pages, nil
}

func (c *Client) queryDatabase(ctx context.Context, databaseID string, query queryRequest) (*queryResponse, error) {
	body, err := json.Marshal(query)
	if err != nil {
		return nil, fmt.Errorf("failed to encode query: %w", err)
	}

	url := fmt.Sprintf("%s/v1/databases/%s/query", c.BaseURL, databaseID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Notion-Version", c.version)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var ae apiError
		if json.Unmarshal(data, &ae) == nil && ae.Message != "" {
			return nil, fmt.Errorf("HTTP %d: %s (%s)", resp.StatusCode, ae.Message, ae.Code)
		}
		return nil, fmt.Errorf("HTTP error: %s", resp.Status)
	}

	var result queryResponse
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return &result, nil
}
