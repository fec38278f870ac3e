// Package client talks to the remote catalog API. Every request is
// independent: no retry and no deduplication happen here.
package client

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/aaravmahajanofficial/storefront-catalog/internal/errors"
	"github.com/aaravmahajanofficial/storefront-catalog/internal/filters"
	"github.com/aaravmahajanofficial/storefront-catalog/internal/metrics"
	"github.com/aaravmahajanofficial/storefront-catalog/internal/models"
	"github.com/aaravmahajanofficial/storefront-catalog/internal/schema"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const (
	productsPath = "/products"

	// bodies larger than this are not a catalog page
	maxBodyBytes = 8 << 20
)

type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// New validates baseURL once. All requests resolve against it.
func New(baseURL string, opts ...Option) (*Client, error) {

	u, err := ParseBaseURL(baseURL)
	if err != nil {
		return nil, err
	}

	c := &Client{
		baseURL:    u,
		httpClient: NewHTTPClient(nil, 0),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

func ParseBaseURL(baseURL string) (*url.URL, error) {

	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid base URL %q: %w", baseURL, err)
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid base URL %q: scheme must be http or https", baseURL)
	}

	if u.Host == "" {
		return nil, fmt.Errorf("invalid base URL %q: missing host", baseURL)
	}

	return u, nil
}

// NewHTTPClient returns a client whose transport traces, logs and counts
// every request on top of base (http.DefaultTransport when nil).
func NewHTTPClient(base http.RoundTripper, timeout time.Duration) *http.Client {

	if base == nil {
		base = http.DefaultTransport
	}

	rt := &metrics.Transport{Base: base, Endpoint: endpointLabel}

	return &http.Client{
		Transport: otelhttp.NewTransport(newLoggingTransport(rt)),
		Timeout:   timeout,
	}
}

func endpointLabel(r *http.Request) string {
	path := r.URL.Path

	switch {
	case strings.Contains(path, productsPath+"/"):
		return "product"
	case strings.HasSuffix(path, productsPath):
		return "products"
	case strings.Contains(path, "/auth/"):
		return "auth"
	default:
		return "other"
	}
}

func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

func (c *Client) HTTPClient() *http.Client {
	return c.httpClient
}

func (c *Client) ProductsURL(f filters.Filters) string {
	target := c.baseURL.String() + productsPath
	if q := f.Encode(); q != "" {
		target += "?" + q
	}

	return target
}

// ProductURL escapes id as a single path segment, so "a/b" stays one id.
func (c *Client) ProductURL(id string) string {
	return c.baseURL.String() + productsPath + "/" + url.PathEscape(id)
}

// ListProducts fetches one page of the collection for f. A 304 is not a
// failure; its body goes to the schema layer like any other.
func (c *Client) ListProducts(ctx context.Context, f filters.Filters) (*models.ProductPage, error) {

	body, err := c.get(ctx, c.ProductsURL(f), "Failed to fetch products", http.StatusNotModified)
	if err != nil {
		return nil, err
	}

	return schema.ParseProductsResponse(body)
}

func (c *Client) GetProduct(ctx context.Context, id string) (*models.ProductDetail, error) {

	if strings.TrimSpace(id) == "" {
		return nil, errors.ValidationError("Product id is required")
	}

	body, err := c.get(ctx, c.ProductURL(id), "Failed to fetch product", 0)
	if err != nil {
		return nil, err
	}

	return schema.ParseProduct(body)
}

func (c *Client) get(ctx context.Context, target, failure string, benign int) ([]byte, error) {

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, errors.InternalError("Failed to build request").WithError(err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.NetworkError(failure, 0).WithDetail(transportReason(ctx, err)).WithError(err)
	}
	defer resp.Body.Close()

	ok := resp.StatusCode >= 200 && resp.StatusCode < 300
	if !ok && (benign == 0 || resp.StatusCode != benign) {
		// drain so the connection can be reused
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
		return nil, errors.NetworkError(failure, resp.StatusCode).WithDetail(statusText(resp))
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, errors.NetworkError(failure, resp.StatusCode).WithDetail("failed to read response body").WithError(err)
	}

	return body, nil
}

func statusText(resp *http.Response) string {
	if text := http.StatusText(resp.StatusCode); text != "" {
		return text
	}

	return resp.Status
}

func transportReason(ctx context.Context, err error) string {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr.Error()
	}

	return err.Error()
}
