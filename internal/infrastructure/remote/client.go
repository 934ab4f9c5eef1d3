// Package remote implements the DocumentService boundary against the
// financial-document analysis backend's REST API.
package remote

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/mkuznetsov/finsight/internal/core/domain"
	"github.com/mkuznetsov/finsight/internal/infrastructure/resilience"
	"github.com/mkuznetsov/finsight/internal/observability/metrics"
)

type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	guard      *resilience.Executor
	metrics    *metrics.SyncMetrics
}

type Option func(*Client)

func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpClient.Timeout = d }
}

func WithGuard(guard *resilience.Executor) Option {
	return func(c *Client) { c.guard = guard }
}

func WithMetrics(m *metrics.SyncMetrics) Option {
	return func(c *Client) { c.metrics = m }
}

func New(baseURL, token string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.guard == nil {
		c.guard = resilience.NewExecutor(resilience.DefaultConfig())
	}
	return c
}

func (c *Client) CreateDocument(ctx context.Context, upload domain.Upload) (*domain.Document, error) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("file", upload.Filename)
	if err != nil {
		return nil, domain.WrapError(domain.ErrTransport, "upload", err)
	}
	if _, err := part.Write(upload.Data); err != nil {
		return nil, domain.WrapError(domain.ErrTransport, "upload", err)
	}
	if err := writer.Close(); err != nil {
		return nil, domain.WrapError(domain.ErrTransport, "upload", err)
	}

	var doc domain.Document
	err = c.do(ctx, request{
		operation:   "upload_document",
		method:      http.MethodPost,
		path:        "/documents/upload",
		body:        body.Bytes(),
		contentType: writer.FormDataContentType(),
		out:         &doc,
		badRequest:  domain.ErrValidation,
	})
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

func (c *Client) GetDocument(ctx context.Context, id string) (*domain.DocumentDetail, error) {
	var detail domain.DocumentDetail
	err := c.do(ctx, request{
		operation: "get_document",
		method:    http.MethodGet,
		path:      "/documents/" + url.PathEscape(id),
		out:       &detail,
	})
	if err != nil {
		return nil, err
	}
	return &detail, nil
}

func (c *Client) ListDocuments(ctx context.Context, q domain.DocumentQuery) (*domain.DocumentList, error) {
	query := url.Values{}
	query.Set("page", strconv.Itoa(q.Page))
	query.Set("page_size", strconv.Itoa(q.PageSize))
	if q.Filter.Status != "" {
		query.Set("status", string(q.Filter.Status))
	}
	if q.Filter.Type != "" {
		query.Set("document_type", string(q.Filter.Type))
	}

	var list domain.DocumentList
	err := c.do(ctx, request{
		operation: "list_documents",
		method:    http.MethodGet,
		path:      "/documents",
		query:     query,
		out:       &list,
	})
	if err != nil {
		return nil, err
	}
	return &list, nil
}

func (c *Client) RetryDocument(ctx context.Context, id string) error {
	return c.do(ctx, request{
		operation:  "retry_document",
		method:     http.MethodPost,
		path:       "/documents/" + url.PathEscape(id) + "/retry",
		badRequest: domain.ErrConflict,
	})
}

func (c *Client) DeleteDocument(ctx context.Context, id string) error {
	return c.do(ctx, request{
		operation: "delete_document",
		method:    http.MethodDelete,
		path:      "/documents/" + url.PathEscape(id),
	})
}

func (c *Client) ResolveAlert(ctx context.Context, id, notes string) error {
	query := url.Values{}
	query.Set("resolution_notes", notes)
	return c.do(ctx, request{
		operation:  "resolve_alert",
		method:     http.MethodPatch,
		path:       "/alerts/" + url.PathEscape(id) + "/resolve",
		query:      query,
		badRequest: domain.ErrConflict,
	})
}

func (c *Client) GetReport(ctx context.Context, id string) (*domain.Report, error) {
	var report domain.Report
	raw, err := c.doRaw(ctx, request{
		operation: "get_report",
		method:    http.MethodGet,
		path:      "/reports/" + url.PathEscape(id),
		out:       &report,
	})
	if err != nil {
		return nil, err
	}
	report.Raw = raw
	return &report, nil
}

func (c *Client) Search(ctx context.Context, q domain.SearchQuery) (*domain.SearchResultSet, error) {
	payload := map[string]any{
		"query": q.Query,
		"top_k": q.TopK,
	}
	var set domain.SearchResultSet
	err := c.do(ctx, request{
		operation:  "search",
		method:     http.MethodPost,
		path:       "/search",
		jsonBody:   payload,
		out:        &set,
		badRequest: domain.ErrValidation,
	})
	if err != nil {
		return nil, err
	}
	return &set, nil
}

func (c *Client) ListAlerts(ctx context.Context, q domain.AlertQuery) (*domain.AlertList, error) {
	query := url.Values{}
	query.Set("page", strconv.Itoa(q.Page))
	query.Set("page_size", strconv.Itoa(q.PageSize))
	if q.Filter.Level != "" {
		query.Set("risk_level", string(q.Filter.Level))
	}
	if !q.Filter.IncludeResolved {
		query.Set("is_resolved", "false")
	}

	var list domain.AlertList
	err := c.do(ctx, request{
		operation: "list_alerts",
		method:    http.MethodGet,
		path:      "/alerts",
		query:     query,
		out:       &list,
	})
	if err != nil {
		return nil, err
	}
	return &list, nil
}

func (c *Client) ListAuditLogs(ctx context.Context, page, pageSize int) (*domain.AuditLogList, error) {
	query := url.Values{}
	query.Set("page", strconv.Itoa(page))
	query.Set("page_size", strconv.Itoa(pageSize))

	var list domain.AuditLogList
	err := c.do(ctx, request{
		operation: "list_audit_logs",
		method:    http.MethodGet,
		path:      "/audit",
		query:     query,
		out:       &list,
	})
	if err != nil {
		return nil, err
	}
	return &list, nil
}

// classify keeps semantic rejections out of the circuit breaker's
// failure counts: only transport-level failures indicate backend
// health problems.
func classify(err error) resilience.ErrorClassification {
	return resilience.ErrorClassification{
		RecordFailure: domain.IsKind(err, domain.ErrTransport),
	}
}
