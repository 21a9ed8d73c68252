package zenith

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
	defaultBaseURL = "https://statements.zenithbank.example/api/v2"
	requestTimeout = 30 * time.Second
	maxRetries     = 3
)

// Client is an HTTP client for the Zenith statement API
type Client struct {
	apiToken   string
	httpClient *http.Client
	baseURL    string
	logger     *logger.Logger
}

// NewClient creates a new Zenith API client
func NewClient(apiToken string, log *logger.Logger) *Client {
	return &Client{
		apiToken: apiToken,
		httpClient: &http.Client{
			Timeout: requestTimeout,
		},
		baseURL: defaultBaseURL,
		logger:  log.WithField("component", "zenith"),
	}
}

// SetBaseURL overrides the default base URL (useful for testing)
func (c *Client) SetBaseURL(url string) {
	c.baseURL = url
}

// doRequest performs an authenticated HTTP request with rate-limit retry.
// It retries up to maxRetries times with exponential backoff (1s, 2s, 4s) on 429 responses.
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
			return nil, fmt.Errorf("Zenith API: %w", statement.ErrUnauthorized)
		}

		if resp.StatusCode == http.StatusTooManyRequests {
			if attempt == maxRetries {
				c.logger.Error("rate limit exhausted", "attempts", maxRetries+1)
				return nil, &RateLimitError{
					RetryAfter: backoff,
					Message:    "Zenith API rate limit exceeded after retries",
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
		return nil, fmt.Errorf("Zenith API error: status %d, body: %s", resp.StatusCode, string(body))
	}

	return nil, fmt.Errorf("Zenith API: exhausted retries")
}

// GetStatement fetches one statement page for the given query.
func (c *Client) GetStatement(ctx context.Context, q statement.Query) (*StatementResponse, error) {
	fetchStart := time.Now()
	reqURL := fmt.Sprintf("%s/statements", c.baseURL)

	params := url.Values{}
	params.Set("page", strconv.Itoa(q.Page))
	params.Set("page_size", strconv.Itoa(q.Size))
	if q.Search != "" {
		params.Set("search", q.Search)
	}
	if q.Start != "" {
		params.Set("start_date", q.Start)
	}
	if q.End != "" {
		params.Set("end_date", q.End)
	}
	if q.AccountNumber != "" {
		params.Set("account_number", q.AccountNumber)
	}
	if q.Ordering != "" {
		params.Set("ordering", q.Ordering)
	}

	body, err := c.doRequest(ctx, http.MethodGet, reqURL, params)
	if err != nil {
		return nil, fmt.Errorf("GetStatement failed: %w", err)
	}

	var resp StatementResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to decode Zenith response: %w", err)
	}

	if resp.Status != "" && resp.Status != "success" {
		return nil, fmt.Errorf("Zenith API rejected request: %s", resp.Message)
	}

	c.logger.Info("statement fetched", "count", len(resp.Data), "duration_ms", time.Since(fetchStart).Milliseconds())
	return &resp, nil
}

// RateLimitError represents a rate limit error from the Zenith API
type RateLimitError struct {
	RetryAfter time.Duration
	Message    string
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("%s (retry after %s)", e.Message, e.RetryAfter)
}

// IsRateLimitError checks if an error is (or wraps) a Zenith rate limit error
func IsRateLimitError(err error) bool {
	var rle *RateLimitError
	return errors.As(err, &rle)
}
