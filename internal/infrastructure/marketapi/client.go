package marketapi

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"

	jsoniter "github.com/json-iterator/go"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"agromarket/internal/config"
	"agromarket/pkg/contextx"
	"agromarket/pkg/httpx"
	"agromarket/pkg/logx"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals // skip

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

//nolint:gochecknoglobals
var backendRequests = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "agromarket_backend_requests_total",
		Help: "Outbound requests to the marketplace backend.",
	},
	[]string{"method", "endpoint", "result"},
)

// Client is the single outbound HTTP client shared by all resource services.
// It carries the backend base address, timeout and JSON content type, logs
// every failure once for diagnostics and re-signals it unchanged; the
// user-facing wording is owned by the resource services.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(cfg config.Backend, opts ...httpx.Option) *Client {
	var transport http.RoundTripper = httpx.NewLoggingRoundTripper(
		http.DefaultTransport,
		opts...,
	)

	if cfg.BearerToken != "" {
		transport = httpx.NewAuthBearerRoundTripper(
			transport,
			staticAuthenticator{token: cfg.BearerToken},
		)
	}

	return &Client{
		baseURL: cfg.BaseAddress,
		httpClient: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: transport,
		},
	}
}

// StatusError is the untranslated form of a backend error response. Message
// holds the backend-supplied message when the response body carried one.
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("backend responded %d: %s", e.StatusCode, e.Message)
	}

	return fmt.Sprintf("backend responded %d", e.StatusCode)
}

func (c *Client) Get(ctx context.Context, endpoint string, query url.Values, dest any) error {
	return c.do(ctx, http.MethodGet, endpoint, query, nil, dest)
}

func (c *Client) Post(ctx context.Context, endpoint string, query url.Values, body, dest any) error {
	return c.do(ctx, http.MethodPost, endpoint, query, body, dest)
}

func (c *Client) Put(ctx context.Context, endpoint string, query url.Values, body, dest any) error {
	return c.do(ctx, http.MethodPut, endpoint, query, body, dest)
}

func (c *Client) do(
	ctx context.Context,
	method string,
	endpoint string,
	query url.Values,
	body any,
	dest any,
) error {
	var payload io.Reader = http.NoBody

	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("json.Marshal: %w", err)
		}

		payload = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, payload)
	if err != nil {
		return fmt.Errorf("http.NewRequestWithContext: %w", err)
	}

	if len(query) > 0 {
		req.URL.RawQuery = query.Encode()
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		backendRequests.WithLabelValues(method, endpoint, "transport-error").Inc()
		c.logFailure(ctx, method, endpoint, 0, err)

		return fmt.Errorf("httpClient.Do: %w", err)
	}

	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		statusErr := &StatusError{StatusCode: resp.StatusCode}

		var envelope errorEnvelope
		if decodeErr := json.NewDecoder(resp.Body).Decode(&envelope); decodeErr == nil {
			statusErr.Message = envelope.Message
		}

		backendRequests.WithLabelValues(method, endpoint, "http-error").Inc()
		c.logFailure(ctx, method, endpoint, resp.StatusCode, statusErr)

		return statusErr
	}

	backendRequests.WithLabelValues(method, endpoint, "ok").Inc()

	if dest != nil {
		if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
			return fmt.Errorf("json.Decode: %w", err)
		}
	}

	return nil
}

func (c *Client) logFailure(ctx context.Context, method, endpoint string, statusCode int, err error) {
	logger(ctx).Error(
		"backend call failed",
		slog.String(logx.FieldHTTPMethod, method),
		slog.String(logx.FieldURL, c.baseURL+endpoint),
		slog.Int(logx.FieldResponseStatus, statusCode),
		slog.String(logx.FieldFailureKind, classifyFailure(statusCode, err)),
		logx.Error(err),
	)
}

// errorEnvelope is the backend's error response body.
type errorEnvelope struct {
	Message string `json:"message"`
}

type staticAuthenticator struct {
	token string
}

func (a staticAuthenticator) Authenticate(context.Context) error {
	return nil
}

func (a staticAuthenticator) BearerToken() string {
	return a.token
}
