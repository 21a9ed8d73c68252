package uba

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/Orange-Invent-House-Ltd/orm-web-sub000/internal/statement"
	"github.com/Orange-Invent-House-Ltd/orm-web-sub000/pkg/logger"
)

const (
	defaultBaseURL = "https://openbanking.ubagroup.example/v1"
	requestTimeout = 30 * time.Second
	maxRetries     = 3
)

// Client is an HTTP client for the UBA open banking statement API
type Client struct {
	apiToken   string
	httpClient *http.Client
	baseURL    string
	logger     *logger.Logger
}

// NewClient creates a new UBA API client
func NewClient(apiToken string, log *logger.Logger) *Client {
	return &Client{
		apiToken: apiToken,
		httpClient: &http.Client{
			Timeout: requestTimeout,
		},
		baseURL: defaultBaseURL,
		logger:  log.WithField("component", "uba"),
	}
}

// SetBaseURL overrides the default base URL (useful for testing)
func (c *Client) SetBaseURL(url string) {
	c.baseURL = url
}

// doRequest performs an authenticated HTTP request with rate-limit retry.
func (c *Client) doRequest(ctx context.Context, method, reqURL string, params url.Values) ([]byte, error) {
	if len(params) > 0 {
		parsed, err := url.Parse(reqURL)
		if err != nil {
			return nil, fmt.Errorf("failed to parse URL: %w", err)
		}
		existing := parsed.Query()
		for k, vals := range params {
			for _, v := range vals {
				existing.Add(k, v)
			}
		}
		parsed.RawQuery = existing.Encode()
		reqURL = parsed.String()
	}

	backoff := time.Second
	for attempt := 0; attempt <= maxRetries; attempt++ {
		c.logger.Debug("API request", "method", method, "url", reqURL, "attempt", attempt)
		attemptStart := time.Now()

		req, err := http.NewRequestWithContext(ctx, method, reqURL, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}

		req.Header.Set("Authorization", "Bearer "+c.apiToken)
		req.Header.Set("Accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, fmt.Errorf("failed to execute request: %w", err)
		}

		body, readErr := io.ReadAll(resp.Body)
		resp.Body.Close()
		if readErr != nil {
			return nil, fmt.Errorf("failed to read response body: %w", readErr)
		}

		if resp.StatusCode == http.StatusOK {
			c.logger.Debug("API response", "status_code", resp.StatusCode, "duration_ms", time.Since(attemptStart).Milliseconds())
			return body, nil
		}

		if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
			c.logger.Warn("API token rejected", "status_code", resp.StatusCode)
			return nil, fmt.Errorf("UBA API: %w", statement.ErrUnauthorized)
		}

		if resp.StatusCode == http.StatusTooManyRequests {
			if attempt == maxRetries {
				c.logger.Error("rate limit exhausted", "attempts", maxRetries+1)
				return nil, &RateLimitError{
					RetryAfter: backoff,
					Message:    "UBA API rate limit exceeded after retries",
				}
			}
			c.logger.Warn("rate limited, retrying", "attempt", attempt, "backoff_ms", backoff.Milliseconds())
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(backoff):
				backoff *= 2
				continue
			}
		}

		c.logger.Error("API error", "status_code", resp.StatusCode)
		return nil, fmt.Errorf("UBA API error: status %d, body: %s", resp.StatusCode, string(body))
	}

	return nil, fmt.Errorf("UBA API: exhausted retries")
}

// GetTransactions fetches one statement page for the given query.
func (c *Client) GetTransactions(ctx context.Context, q statement.Query) (*TransactionsResponse, error) {
	fetchStart := time.Now()
	reqURL := fmt.Sprintf("%s/accounts/transactions", c.baseURL)

	params := url.Values{}
	params.Set("page", strconv.Itoa(q.Page))
	params.Set("per_page", strconv.Itoa(q.Size))
	if q.Search != "" {
		params.Set("q", q.Search)
	}
	if q.Start != "" {
		params.Set("from", q.Start)
	}
	if q.End != "" {
		params.Set("to", q.End)
	}
	if q.AccountNumber != "" {
		params.Set("account", q.AccountNumber)
	}
	if q.Ordering != "" {
		params.Set("sort", q.Ordering)
	}

	body, err := c.doRequest(ctx, http.MethodGet, reqURL, params)
	if err != nil {
		return nil, fmt.Errorf("GetTransactions failed: %w", err)
	}

	var resp TransactionsResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to decode UBA response: %w", err)
	}

	c.logger.Info("transactions fetched", "count", len(resp.Transactions), "duration_ms", time.Since(fetchStart).Milliseconds())
	return &resp, nil
}

// RateLimitError represents a rate limit error from the UBA API
type RateLimitError struct {
	RetryAfter time.Duration
	Message    string
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("%s (retry after %s)", e.Message, e.RetryAfter)
}

// IsRateLimitError checks if an error is (or wraps) a UBA rate limit error
func IsRateLimitError(err error) bool {
	var rle *RateLimitError
	return errors.As(err, &rle)
}
