package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"faregateway/internal/domain"

	"github.com/sirupsen/logrus"
)

const (
	// DefaultReadTimeout bounds each endpoint attempt; a slow endpoint just
	// delays the fall-through to the next one.
	DefaultReadTimeout = 10 * time.Second
	defaultAPIVersion  = "1.0.52"
)

// Client talks to the legacy PHP backend. Endpoint attempts are strictly
// sequential; a success short-circuits the rest of the list.
type Client struct {
	BaseURL     string
	HTTP        *http.Client
	ReadTimeout time.Duration
	APIVersion  string

	// Now feeds the cache-busting query param; injectable for tests.
	Now func() time.Time
}

func New(baseURL string, readTimeout time.Duration) *Client {
	if readTimeout <= 0 {
		readTimeout = DefaultReadTimeout
	}
	return &Client{
		BaseURL:     strings.TrimRight(baseURL, "/"),
		HTTP:        &http.Client{},
		ReadTimeout: readTimeout,
		APIVersion:  defaultAPIVersion,
		Now:         time.Now,
	}
}

// url appends the cache-busting _t param; the legacy backend sits behind
// caches that ignore request headers.
func (c *Client) url(path string) string {
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return c.BaseURL + path + sep + "_t=" + strconv.FormatInt(c.Now().UnixMilli(), 10)
}

func setNoCacheHeaders(req *http.Request) {
	req.Header.Set("Cache-Control", "no-cache, no-store, must-revalidate")
	req.Header.Set("Pragma", "no-cache")
	req.Header.Set("Expires", "0")
}

// FetchBody GETs a single path within the given timeout and returns the raw
// body of a 2xx response.
func (c *Client) FetchBody(ctx context.Context, path string, timeout time.Duration) ([]byte, error) {
	if timeout <= 0 {
		timeout = c.ReadTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url(path), nil)
	if err != nil {
		return nil, domain.UpstreamError{Endpoint: path, Err: err}
	}
	setNoCacheHeaders(req)

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, domain.UpstreamError{Endpoint: path, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, domain.UpstreamError{Endpoint: path, Msg: fmt.Sprintf("HTTP %d", resp.StatusCode)}
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, domain.UpstreamError{Endpoint: path, Err: err}
	}
	return body, nil
}

// FetchArray walks the endpoint list in order and returns the first body that
// extracts to a non-empty array, along with the winning path. A 200 with an
// unusable shape counts as a failure for that endpoint.
func (c *Client) FetchArray(ctx context.Context, paths []string) (json.RawMessage, string, error) {
	var lastErr error
	for _, path := range paths {
		body, err := c.FetchBody(ctx, path, c.ReadTimeout)
		if err != nil {
			logrus.WithFields(logrus.Fields{"endpoint": path, "error": err}).Warn("upstream fetch failed")
			lastErr = err
			continue
		}
		arr, ok := ExtractArray(body)
		if !ok {
			logrus.WithField("endpoint", path).Warn("upstream returned unusable shape")
			lastErr = domain.UpstreamError{Endpoint: path, Msg: "unusable response shape"}
			continue
		}
		logrus.WithField("endpoint", path).Debug("upstream fetch succeeded")
		return arr, path, nil
	}
	if lastErr == nil {
		lastErr = domain.UpstreamError{Msg: "no endpoints configured"}
	}
	return nil, "", lastErr
}

// PostFirst POSTs the payload to each path in order and stops at the first
// 2xx, returning the winning path.
func (c *Client) PostFirst(ctx context.Context, paths []string, payload any) (string, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return "", domain.InternalError{Msg: "marshal write payload", Err: err}
	}

	var lastErr error
	for _, path := range paths {
		attemptCtx, cancel := context.WithTimeout(ctx, c.ReadTimeout)
		req, err := http.NewRequestWithContext(attemptCtx, http.MethodPost, c.url(path), bytes.NewReader(body))
		if err != nil {
			cancel()
			lastErr = domain.UpstreamError{Endpoint: path, Err: err}
			continue
		}
		req.Header.Set("Content-Type", "application/json")
		setNoCacheHeaders(req)
		req.Header.Set("X-Force-Refresh", "true")
		req.Header.Set("X-API-Version", c.APIVersion)

		resp, err := c.HTTP.Do(req)
		if err != nil {
			cancel()
			logrus.WithFields(logrus.Fields{"endpoint": path, "error": err}).Warn("upstream write failed")
			lastErr = domain.UpstreamError{Endpoint: path, Err: err}
			continue
		}
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
		cancel()

		if resp.StatusCode >= 200 && resp.StatusCode <= 299 {
			logrus.WithFields(logrus.Fields{"endpoint": path, "status": resp.StatusCode}).Info("upstream write accepted")
			return path, nil
		}
		logrus.WithFields(logrus.Fields{"endpoint": path, "status": resp.StatusCode}).Warn("upstream write rejected")
		lastErr = domain.UpstreamError{Endpoint: path, Msg: fmt.Sprintf("HTTP %d", resp.StatusCode)}
	}
	if lastErr == nil {
		lastErr = domain.UpstreamError{Msg: "no endpoints configured"}
	}
	return "", lastErr
}
