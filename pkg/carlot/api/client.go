// Package api wraps the remote catalog service. Each method issues exactly one
// request: no retries, no caching and no client-side timeout.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/charmbracelet/log"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/nekruzvatanshoev/carlot/pkg/carlot/dal"
)

const (
	carsPath   = "/cars"
	uploadPath = "/cars/upload"
)

// Client handles catalog API requests
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *log.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default instrumented HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithLogger sets the logger used for request tracing.
func WithLogger(l *log.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// NewHTTPClient returns an HTTP client with an OpenTelemetry transport and no
// timeout. A hung call hangs until its context is cancelled.
func NewHTTPClient() *http.Client {
	return &http.Client{Transport: otelhttp.NewTransport(http.DefaultTransport)}
}

// NewClient creates a catalog API client rooted at baseURL
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: NewHTTPClient(),
		logger:     log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = log.New(io.Discard)
	}
	return c
}

// BaseURL returns the endpoint every request is issued against.
func (c *Client) BaseURL() string { return c.baseURL }

// HTTPClient returns the underlying HTTP client.
func (c *Client) HTTPClient() *http.Client { return c.httpClient }

// ListCars fetches every car record
func (c *Client) ListCars(ctx context.Context) ([]dal.Car, error) {
	var cars []dal.Car
	if err := c.do(ctx, http.MethodGet, carsPath, nil, &cars); err != nil {
		return nil, err
	}
	return cars, nil
}

// GetCar fetches a single car by id
func (c *Client) GetCar(ctx context.Context, carID string) (*dal.Car, error) {
	var car dal.Car
	if err := c.do(ctx, http.MethodGet, carPath(carID), nil, &car); err != nil {
		return nil, err
	}
	return &car, nil
}

// CreateCar creates a car and returns the record with its assigned id
func (c *Client) CreateCar(ctx context.Context, payload dal.CarPayload) (*dal.Car, error) {
	var car dal.Car
	if err := c.do(ctx, http.MethodPost, carsPath, payload, &car); err != nil {
		return nil, err
	}
	return &car, nil
}

// UpdateCar replaces the fields of an existing car
func (c *Client) UpdateCar(ctx context.Context, carID string, payload dal.CarPayload) (*dal.Car, error) {
	var car dal.Car
	if err := c.do(ctx, http.MethodPut, carPath(carID), payload, &car); err != nil {
		return nil, err
	}
	return &car, nil
}

// DeleteCar removes a car
func (c *Client) DeleteCar(ctx context.Context, carID string) error {
	return c.do(ctx, http.MethodDelete, carPath(carID), nil, nil)
}

// RequestUpload asks the API for a presigned write URL for filename
func (c *Client) RequestUpload(ctx context.Context, req dal.UploadRequest) (*dal.UploadTicket, error) {
	var ticket dal.UploadTicket
	if err := c.do(ctx, http.MethodPost, uploadPath, req, &ticket); err != nil {
		return nil, err
	}
	return &ticket, nil
}

func carPath(carID string) string {
	return carsPath + "/" + url.PathEscape(carID)
}

// do issues one request and decodes the body into out. A 204 leaves out
// untouched. When out is nil the body is still required to be valid JSON.
func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	c.logger.Debug("api request", "method", method, "path", path)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s %s: %v", ErrTransport, method, path, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: read %s %s: %v", ErrTransport, method, path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Warn("api request failed", "method", method, "path", path, "status", resp.StatusCode)
		return newStatusError(resp.StatusCode, respBody)
	}

	if resp.StatusCode == http.StatusNoContent {
		return nil
	}

	if out == nil {
		var discard json.RawMessage
		out = &discard
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("%w: %s %s: %v", ErrDecode, method, path, err)
	}
	return nil
}
