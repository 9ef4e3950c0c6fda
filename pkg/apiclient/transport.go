// Package apiclient talks to the inventory service: product CRUD and search,
// image fetch and upload, and login/register.
//
// Every authenticated operation reads the current credential first. When no
// credential is stored the operation fails with ErrUnauthenticated and no
// request leaves the process. Other failures are returned as *TransportError.
// All failures are logged before being returned; nothing is retried.
package apiclient

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"
	"go.uber.org/zap"

	"github.com/suteetoe/stockmobile/pkg/credential"
	"github.com/suteetoe/stockmobile/pkg/logger"
	"github.com/suteetoe/stockmobile/prometheus"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Options configures the API clients
type Options struct {
	// BaseURL is the origin of the inventory service, e.g. http://localhost:8080
	BaseURL     string
	HTTPClient  *http.Client
	Credentials credential.Provider
	Logger      *zap.Logger
	Metrics     *prometheus.ClientMetrics
}

type transport struct {
	baseURL     string
	httpClient  *http.Client
	credentials credential.Provider
	logger      *zap.Logger
	metrics     *prometheus.ClientMetrics
}

func newTransport(opts Options) *transport {
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	return &transport{
		baseURL:     strings.TrimRight(opts.BaseURL, "/"),
		httpClient:  httpClient,
		credentials: opts.Credentials,
		logger:      logger.OrNop(opts.Logger),
		metrics:     opts.Metrics,
	}
}

type request struct {
	op            string
	method        string
	path          string
	query         url.Values
	body          io.Reader
	contentType   string
	authenticated bool
}

type response struct {
	status int
	body   []byte
	url    string
	method string
	op     string
	log    *zap.Logger
}

// send issues r and returns the body of a 2xx response
func (t *transport) send(ctx context.Context, r request) (*response, error) {
	log := t.log(ctx).With(zap.String("operation", r.op))

	var token string
	if r.authenticated {
		if t.credentials == nil {
			log.Error("No credential provider configured")
			t.metrics.RecordUnauthenticated(r.op)
			return nil, fmt.Errorf("%s: %w", r.op, ErrUnauthenticated)
		}

		current, ok, err := t.credentials.Current(ctx)
		if err != nil {
			log.Error("Failed to read stored credential", zap.Error(err))
			return nil, fmt.Errorf("%s: read credential: %w", r.op, err)
		}
		if !ok {
			log.Error("Authentication token not found")
			t.metrics.RecordUnauthenticated(r.op)
			return nil, fmt.Errorf("%s: %w", r.op, ErrUnauthenticated)
		}
		token = current
	}

	target := t.baseURL + r.path
	if len(r.query) > 0 {
		target += "?" + r.query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, r.method, target, r.body)
	if err != nil {
		log.Error("Failed to create request", zap.Error(err))
		return nil, &TransportError{Op: r.op, Method: r.method, URL: target, Err: err}
	}

	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if r.contentType != "" {
		req.Header.Set("Content-Type", r.contentType)
	}
	req.Header.Set("X-Request-ID", uuid.New().String())

	log.Debug("Making API call",
		zap.String("method", r.method),
		zap.String("url", target))

	start := time.Now()
	resp, err := t.httpClient.Do(req)
	if err != nil {
		t.metrics.ObserveRequest(r.op, r.method, 0, start)
		log.Error("API request failed",
			zap.String("method", r.method),
			zap.String("url", target),
			zap.Error(err))
		return nil, &TransportError{Op: r.op, Method: r.method, URL: target, Err: err}
	}
	defer resp.Body.Close()

	t.metrics.ObserveRequest(r.op, r.method, resp.StatusCode, start)

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Error("Failed to read response body", zap.Error(err))
		return nil, &TransportError{Op: r.op, Method: r.method, URL: target, StatusCode: resp.StatusCode, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		log.Error("API request returned error status",
			zap.String("method", r.method),
			zap.String("url", target),
			zap.Int("status", resp.StatusCode),
			zap.String("response", string(body)))
		return nil, &TransportError{Op: r.op, Method: r.method, URL: target, StatusCode: resp.StatusCode, Body: body}
	}

	log.Debug("API call successful", zap.Int("status", resp.StatusCode))
	return &response{status: resp.StatusCode, body: body, url: target, method: r.method, op: r.op, log: log}, nil
}

// log returns the logger scoped to ctx, or the client's own logger
func (t *transport) log(ctx context.Context) *zap.Logger {
	return logger.FromContext(ctx, t.logger)
}

// decode parses a JSON response body into v
func (t *transport) decode(resp *response, v interface{}) error {
	if err := json.Unmarshal(resp.body, v); err != nil {
		resp.log.Error("Failed to parse response",
			zap.Int("status", resp.status),
			zap.Error(err))
		return &TransportError{
			Op:         resp.op,
			Method:     resp.method,
			URL:        resp.url,
			StatusCode: resp.status,
			Body:       resp.body,
			Err:        fmt.Errorf("malformed response: %w", err),
		}
	}
	return nil
}

// jsonBody encodes v for a request body
func jsonBody(v interface{}) (io.Reader, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return bytes.NewReader(data), nil
}
