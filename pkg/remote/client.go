// Package remote publishes diagrams to an erdcanvas sharing service.
//
// Publishing uploads the diagram document and returns a shareable URL.
// Transient failures (network errors, 5xx, rate limits) are retried with
// exponential backoff; authentication and validation failures are not.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/erdcanvas/erdcanvas/pkg/errors"
	"github.com/erdcanvas/erdcanvas/pkg/httputil"
	"github.com/erdcanvas/erdcanvas/pkg/model"
	"github.com/erdcanvas/erdcanvas/pkg/observability"
)

// Client publishes diagrams to the sharing API.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

// NewClient creates a publishing client for the given endpoint.
// The token authenticates requests; pass the stored session token.
func NewClient(endpoint, token string, timeout time.Duration) (*Client, error) {
	if err := errors.ValidateURL(endpoint); err != nil {
		return nil, err
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL: endpoint,
		token:   token,
		http:    &http.Client{Timeout: timeout},
	}, nil
}

// PublishResult describes a successfully published diagram.
type PublishResult struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// Publish uploads the diagram and returns its shareable location.
func (c *Client) Publish(ctx context.Context, d model.Diagram) (*PublishResult, error) {
	if err := errors.ValidateDiagramName(d.Name); err != nil {
		return nil, err
	}

	body, err := model.MarshalDiagram(d)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidDiagram, err, "encode diagram")
	}

	var result PublishResult
	err = httputil.RetryWithBackoff(ctx, func() error {
		return c.post(ctx, c.baseURL+"/v1/diagrams", body, &result)
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) post(ctx context.Context, url string, body []byte, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "build request")
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	start := time.Now()
	observability.HTTP().OnRequest(ctx, http.MethodPost, req.URL.Host, req.URL.Path)
	resp, err := c.http.Do(req)
	if err != nil {
		observability.HTTP().OnError(ctx, http.MethodPost, req.URL.Host, req.URL.Path, err)
		return &httputil.RetryableError{
			Err: errors.Wrap(errors.ErrCodeNetwork, err, "publish to %s", url),
		}
	}
	defer resp.Body.Close()
	observability.HTTP().OnResponse(ctx, http.MethodPost, req.URL.Host, req.URL.Path, resp.StatusCode, time.Since(start))

	switch {
	case resp.StatusCode == http.StatusOK, resp.StatusCode == http.StatusCreated:
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return errors.Wrap(errors.ErrCodeInternal, err, "decode response")
		}
		return nil

	case resp.StatusCode == http.StatusUnauthorized:
		return errors.New(errors.ErrCodeUnauthorized, "token rejected, run `erdcanvas token set`")

	case resp.StatusCode == http.StatusTooManyRequests:
		retryAfter, _ := strconv.Atoi(resp.Header.Get("Retry-After"))
		return &httputil.RetryableError{
			Err: &errors.RateLimitedError{RetryAfter: retryAfter},
		}

	case httputil.StatusRetryable(resp.StatusCode):
		return &httputil.RetryableError{
			Err: errors.New(errors.ErrCodeNetwork, "server error: %s", resp.Status),
		}
	}

	msg, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
	return errors.New(errors.ErrCodeInternal, "publish failed: %s: %s",
		resp.Status, bytes.TrimSpace(msg))
}

// String returns the endpoint for display.
func (c *Client) String() string {
	return fmt.Sprintf("remote(%s)", c.baseURL)
}
