package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/ctrl-sourav/Nexus-cart/internal/pkg/apperror"

	"go.uber.org/zap"
)

// ErrUpstreamFetch covers every way the product source can fail: transport
// errors, non-2xx statuses and undecodable payloads. The stores and pipeline
// are never invoked with partial data.
var ErrUpstreamFetch = apperror.New(apperror.CodeUpstream, "product source request failed")

// Client fetches the product and category lists from the public demo API.
// It does not retry, cache or paginate; that is the caller's job.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

func NewClient(baseURL string, timeout time.Duration, logger *zap.Logger) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

func (c *Client) Products(ctx context.Context) ([]Product, error) {
	var products []Product
	if err := c.getJSON(ctx, c.baseURL+"/products", &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (c *Client) Categories(ctx context.Context) ([]string, error) {
	var categories []string
	if err := c.getJSON(ctx, c.baseURL+"/products/categories", &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

func (c *Client) getJSON(ctx context.Context, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUpstreamFetch, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("product source unreachable", zap.String("url", url), zap.Error(err))
		return fmt.Errorf("%w: %v", ErrUpstreamFetch, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		c.logger.Warn("product source returned non-2xx",
			zap.String("url", url),
			zap.Int("status", resp.StatusCode),
		)
		return fmt.Errorf("%w: unexpected status %d", ErrUpstreamFetch, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decode response: %v", ErrUpstreamFetch, err)
	}
	return nil
}
