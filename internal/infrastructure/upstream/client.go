// Package upstream holds the RapidAPI-backed provider clients.
package upstream

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/sirupsen/logrus"

	"github.com/avatarctic/profile-lookup/internal/core/ports"
)

const (
	defaultTimeout = 10 * time.Second
	maxBodyBytes   = 4 << 20
)

// Config describes one provider endpoint.
type Config struct {
	BaseURL string
	Host    string
	APIKey  string
	Timeout time.Duration
}

// httpClient wraps retryablehttp with retries switched off: a failed provider
// call surfaces immediately and retrying is left to the caller.
type httpClient struct {
	cfg    Config
	inner  *retryablehttp.Client
	logger *logrus.Logger
}

func newHTTPClient(cfg Config, logger *logrus.Logger) *httpClient {
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")

	r := retryablehttp.NewClient()
	r.RetryMax = 0
	r.CheckRetry = neverRetry
	r.ErrorHandler = retryablehttp.PassthroughErrorHandler
	r.HTTPClient.Timeout = cfg.Timeout
	if logger != nil {
		r.Logger = newLeveledLogger(logger)
	} else {
		r.Logger = nil
	}
	return &httpClient{cfg: cfg, inner: r, logger: logger}
}

func neverRetry(ctx context.Context, _ *http.Response, _ error) (bool, error) {
	return false, ctx.Err()
}

// do performs one provider call. Any HTTP status is returned as a response; only
// failures to obtain one become a transport LookupError.
func (c *httpClient) do(ctx context.Context, method, url string, body any) (*ports.UpstreamResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	req, err := retryablehttp.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, fmt.Errorf("failed to build upstream request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-rapidapi-key", c.cfg.APIKey)
	req.Header.Set("x-rapidapi-host", c.cfg.Host)

	start := time.Now()
	resp, err := c.inner.Do(req)
	if err != nil {
		return nil, ports.NewLookupError(ports.LookupCodeTransport, "upstream request failed", err)
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, ports.NewLookupError(ports.LookupCodeTransport, "failed to read upstream response", err)
	}
	if c.logger != nil {
		c.logger.WithFields(logrus.Fields{
			"host":        c.cfg.Host,
			"status":      resp.StatusCode,
			"bytes":       len(b),
			"duration_ms": time.Since(start).Milliseconds(),
		}).Debug("upstream call completed")
	}
	return &ports.UpstreamResponse{StatusCode: resp.StatusCode, Body: b}, nil
}
