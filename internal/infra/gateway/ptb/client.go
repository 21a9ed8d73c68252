package ptb

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
	defaultBaseURL = "https://corporate.premiumtrust.example/api/v1"
	requestTimeout = 30 * time.Second
	maxRetries     = 3
)

// Client is an HTTP client for the PremiumTrust corporate statement API
type Client struct {
	apiToken   string
	httpClient *http.Client
	baseURL    string
	logger     *logger.Logger
}

// NewClient creates a new PremiumTrust API client
func NewClient(apiToken string, log *logger.Logger) *Client {
	return &Client{
		apiToken: apiToken,
		httpClient: &http.Client{
			Timeout: requestTimeout,
		},
		baseURL: defaultBaseURL,
		logger:  log.WithField("component", "ptb"),
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
			return nil, fmt.Errorf("PremiumTrust API: %w", statement.ErrUnauthorized)
		}

		if resp.StatusCode == http.StatusTooManyRequests {
			if attempt == maxRetries {
				c.logger.Error("rate limit exhausted", "attempts", maxRetries+1)
				return nil, &RateLimitError{
					RetryAfter: backoff,
					Message:    "PremiumTrust API rate limit exceeded after retries",
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
		return nil, fmt.Errorf("PremiumTrust API error: status %d, body: %s", resp.StatusCode, string(body))
	}

	return nil, fmt.Errorf("PremiumTrust API: exhausted retries")
}

// GetRecords fetches one statement page for the given query.
func (c *Client) GetRecords(ctx context.Context, q statement.Query) (*RecordsResponse, error) {
	fetchStart := time.Now()
	reqURL := fmt.Sprintf("%s/statement/records", c.baseURL)

	params := url.Values{}
	params.Set("page", strconv.Itoa(q.Page))
	params.Set("limit", strconv.Itoa(q.Size))
	if q.Search != "" {
		params.Set("filter", q.Search)
	}
	if q.Start != "" {
		params.Set("date_from", q.Start)
	}
	if q.End != "" {
		params.Set("date_to", q.End)
	}
	if q.AccountNumber != "" {
		params.Set("account_no", q.AccountNumber)
	}
	if q.Ordering != "" {
		params.Set("order_by", q.Ordering)
	}

	body, err := c.doRequest(ctx, http.MethodGet, reqURL, params)
	if err != nil {
		return nil, fmt.Errorf("GetRecords failed: %w", err)
	}

	var resp RecordsResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to decode PremiumTrust response: %w", err)
	}

	c.logger.Info("records fetched", "count", len(resp.Data.Records), "duration_ms", time.Since(fetchStart).Milliseconds())
	return &resp, nil
}

// RateLimitError represents a rate limit error from the PremiumTrust API
type RateLimitError struct {
	RetryAfter time.Duration
	Message    string
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("%s (retry after %s)", e.Message, e.RetryAfter)
}

// IsRateLimitError checks if an error is (or wraps) a PremiumTrust rate limit error
func IsRateLimitError(err error) bool {
	var rle *RateLimitError
	return errors.As(err, &rle)
}
