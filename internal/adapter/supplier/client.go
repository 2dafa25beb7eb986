package supplier

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"path"
	"strconv"
	"time"

	"github.com/hypnotizedent/printshop-os-sub005/internal/domain/model"
)

// ErrNotInCatalog indicates the supplier doesn't carry the style.
var ErrNotInCatalog = errors.New("style not in supplier catalog")

// TooManyRequestsError represents a rate limiting signal from the
// supplier API.
type TooManyRequestsError struct {
	RetryAfter time.Duration
}

func (e TooManyRequestsError) Error() string {
	return fmt.Sprintf("too many requests, retry after %s", e.RetryAfter)
}

// Client exposes operations to query the supplier catalog.
type Client interface {
	Product(ctx context.Context, sku string) (*model.Product, error)
	HealthCheck(ctx context.Context) error
}

// HTTPClient implements Client against an S&S Activewear style REST API.
type HTTPClient struct {
	baseURL    *url.URL
	apiKey     string
	httpClient *http.Client
	logger     *slog.Logger
}

// productResponse mirrors the supplier's JSON payload.
type productResponse struct {
	SKU       string  `json:"sku"`
	Brand     string  `json:"brand"`
	Name      string  `json:"styleName"`
	Category  string  `json:"category"`
	UnitPrice float64 `json:"customerPrice"`
	Inventory int     `json:"qty"`
}

// NewHTTPClient creates the supplier client with a default timeout.
func NewHTTPClient(baseURL, apiKey string, logger *slog.Logger) (*HTTPClient, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse supplier url: %w", err)
	}
	if !parsed.IsAbs() {
		return nil, fmt.Errorf("supplier url must be absolute")
	}
	return &HTTPClient{
		baseURL: parsed,
		apiKey:  apiKey,
		logger:  logger,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}, nil
}

// Product queries the supplier for a single style with current price and
// inventory.
func (c *HTTPClient) Product(ctx context.Context, sku string) (*model.Product, error) {
	endpoint := *c.baseURL
	endpoint.Path = path.Join(endpoint.Path, "/v2/products/", sku)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, err
		}
		var data productResponse
		if err := json.Unmarshal(body, &data); err != nil {
			return nil, err
		}
		return &model.Product{
			SKU:       data.SKU,
			Supplier:  data.Brand,
			Name:      data.Name,
			Category:  data.Category,
			UnitPrice: data.UnitPrice,
			Inventory: data.Inventory,
		}, nil
	case http.StatusNotFound, http.StatusNoContent:
		return nil, ErrNotInCatalog
	case http.StatusTooManyRequests:
		retryAfter := parseRetryAfter(resp.Header.Get("Retry-After"))
		return nil, TooManyRequestsError{RetryAfter: retryAfter}
	default:
		body, _ := io.ReadAll(resp.Body)
		c.logger.Error("supplier request failed", slog.Int("status", resp.StatusCode), slog.String("body", string(body)))
		return nil, fmt.Errorf("supplier error: %s", resp.Status)
	}
}

// HealthCheck verifies the supplier API is reachable.
func (c *HTTPClient) HealthCheck(ctx context.Context) error {
	endpoint := *c.baseURL
	endpoint.Path = path.Join(endpoint.Path, "/v2/status")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= http.StatusInternalServerError {
		return fmt.Errorf("supplier unhealthy: %s", resp.Status)
	}
	return nil
}

func parseRetryAfter(header string) time.Duration {
	if header == "" {
		return 5 * time.Second
	}
	if seconds, err := strconv.Atoi(header); err == nil {
		return time.Duration(seconds) * time.Second
	}
	if t, err := http.ParseTime(header); err == nil {
		return time.Until(t)
	}
	return 5 * time.Second
}
