package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mkuznetsov/finsight/internal/core/domain"
	"github.com/mkuznetsov/finsight/internal/infrastructure/resilience"
)

const requestIDHeader = "X-Request-Id"

type request struct {
	operation   string
	method      string
	path        string
	query       url.Values
	jsonBody    any
	body        []byte
	contentType string
	out         any
	// badRequest is the error kind a 400 maps to for this operation:
	// the backend reuses 400 both for input validation and for
	// state-conflict rejections.
	badRequest error
}

func (c *Client) do(ctx context.Context, req request) error {
	_, err := c.roundTrip(ctx, req, false)
	return err
}

// doRaw additionally returns the raw response body, for callers that
// must keep the backend's JSON verbatim.
func (c *Client) doRaw(ctx context.Context, req request) ([]byte, error) {
	return c.roundTrip(ctx, req, true)
}

func (c *Client) roundTrip(ctx context.Context, req request, keepRaw bool) ([]byte, error) {
	var raw []byte
	start := time.Now()
	err := c.guard.Execute(ctx, req.operation, func(ctx context.Context) error {
		var innerErr error
		raw, innerErr = c.send(ctx, req, keepRaw)
		return innerErr
	}, classify)

	if resilience.IsCircuitOpen(err) {
		err = domain.WrapError(domain.ErrTransport, req.operation, err)
	}
	if c.metrics != nil {
		c.metrics.ObserveRequest(req.operation, time.Since(start), err)
	}
	return raw, err
}

func (c *Client) send(ctx context.Context, req request, keepRaw bool) ([]byte, error) {
	target := c.baseURL + req.path
	if len(req.query) > 0 {
		target += "?" + req.query.Encode()
	}

	body := req.body
	contentType := req.contentType
	if req.jsonBody != nil {
		encoded, err := json.Marshal(req.jsonBody)
		if err != nil {
			return nil, domain.WrapError(domain.ErrTransport, req.operation, err)
		}
		body = encoded
		contentType = "application/json"
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.method, target, bytes.NewReader(body))
	if err != nil {
		return nil, domain.WrapError(domain.ErrTransport, req.operation, err)
	}
	if contentType != "" {
		httpReq.Header.Set("Content-Type", contentType)
	}
	httpReq.Header.Set(requestIDHeader, uuid.NewString())
	if c.token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, domain.WrapError(domain.ErrTransport, req.operation, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return nil, c.statusError(req, resp)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, domain.WrapError(domain.ErrTransport, req.operation, err)
	}
	if req.out != nil {
		if err := json.Unmarshal(raw, req.out); err != nil {
			return nil, domain.WrapError(domain.ErrTransport, req.operation, fmt.Errorf("decode response: %w", err))
		}
	}
	if keepRaw {
		return raw, nil
	}
	return nil, nil
}

func (c *Client) statusError(req request, resp *http.Response) error {
	kind := domain.ErrTransport
	switch {
	case resp.StatusCode == http.StatusNotFound:
		kind = domain.ErrNotFound
	case resp.StatusCode == http.StatusBadRequest && req.badRequest != nil:
		kind = req.badRequest
	case resp.StatusCode == http.StatusRequestEntityTooLarge,
		resp.StatusCode == http.StatusUnprocessableEntity:
		kind = domain.ErrValidation
	}
	return domain.WrapError(kind, req.operation,
		fmt.Errorf("status %s: %s", resp.Status, readErrorDetail(resp.Body)))
}

// readErrorDetail pulls the backend's error body, which carries either
// {"detail": ...} or {"error": ..., "detail": ...}.
func readErrorDetail(body io.Reader) string {
	raw, _ := io.ReadAll(io.LimitReader(body, 2048))

	var parsed struct {
		Error  string `json:"error"`
		Detail any    `json:"detail"`
	}
	if err := json.Unmarshal(raw, &parsed); err == nil {
		if detail, ok := parsed.Detail.(string); ok && detail != "" {
			return detail
		}
		if parsed.Error != "" {
			return parsed.Error
		}
	}

	msg := strings.TrimSpace(string(raw))
	if msg == "" {
		return "no error detail"
	}
	return msg
}
