// Package catalog talks to the content API that serves the product listing
// and product search, and keeps the session-wide product cache.
package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"shopfront/internal/domain"
)

// RequestIDHeader carries the per-request correlation id
const RequestIDHeader = "X-Request-ID"

// ErrUnsuccessful is returned when the API answers with success=false
var ErrUnsuccessful = errors.New("api reported failure")

// StatusError is returned for non-2xx responses
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("unexpected status %d", e.Code)
	}
	return fmt.Sprintf("unexpected status %d: %s", e.Code, e.Body)
}

// Searcher finds products matching a free-text query
type Searcher interface {
	SearchProducts(ctx context.Context, query string) ([]domain.Product, error)
}

// Lister returns the full product listing
type Lister interface {
	ListProducts(ctx context.Context) ([]domain.Product, error)
}

// Client is the HTTP client for the content API
type Client struct {
	baseURL *url.URL
	http    *http.Client
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithTimeout sets the overall per-request timeout
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

// NewClient creates a client rooted at baseURL, e.g. "https://example.com/api"
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid base url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid base url %q: scheme must be http or https", baseURL)
	}
	c := &Client{
		baseURL: u,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// ListProducts fetches every product
func (c *Client) ListProducts(ctx context.Context) ([]domain.Product, error) {
	return c.getProducts(ctx, nil)
}

// SearchProducts fetches products matching query
func (c *Client) SearchProducts(ctx context.Context, query string) ([]domain.Product, error) {
	return c.getProducts(ctx, url.Values{"search": {query}})
}

func (c *Client) getProducts(ctx context.Context, params url.Values) ([]domain.Product, error) {
	u := *c.baseURL
	u.Path += "/content/products"
	if params != nil {
		u.RawQuery = params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	reqID := uuid.NewString()
	req.Header.Set(RequestIDHeader, reqID)
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		log.Printf("catalog: GET %s [%s] failed: %v", u.String(), reqID, err)
		return nil, fmt.Errorf("failed to fetch products: %w", err)
	}
	defer resp.Body.Close()

	log.Printf("catalog: GET %s [%s] %d in %s", u.String(), reqID, resp.StatusCode, time.Since(start).Round(time.Millisecond))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, &StatusError{Code: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	var list domain.ProductList
	if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
		return nil, fmt.Errorf("failed to decode products: %w", err)
	}
	if !list.Success {
		return nil, ErrUnsuccessful
	}

	products := make([]domain.Product, 0, len(list.Data))
	for _, p := range list.Data {
		products = append(products, Sanitize(p))
	}
	return products, nil
}
