// Package tagsapi is the HTTP client of the tags REST endpoint.
package tagsapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"tagboard/internal/config"
	"tagboard/internal/core/domain"
	"time"

	"golang.org/x/time/rate"
)

// HTTPError is returned when the API answers with a non 2xx status
type HTTPError struct {
	StatusCode int
	Message    string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Message)
}

// Client talks to the tags API. It implements port.TagsAPI.
type Client struct {
	baseURL     string
	httpClient  *http.Client
	rateLimiter *rate.Limiter
	minDelay    time.Duration
	logger      *slog.Logger
}

// NewClient creates a new tags API client
func NewClient(cfg config.TagsAPIConfig, logger *slog.Logger) *Client {
	limit := rate.Inf
	if cfg.RPS > 0 {
		limit = rate.Limit(cfg.RPS)
	}
	burst := cfg.Burst
	if burst <= 0 {
		burst = 1
	}

	return &Client{
		baseURL: strings.TrimRight(cfg.URL, "/"),
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		rateLimiter: rate.NewLimiter(limit, burst),
		minDelay:    cfg.MinDelay,
		logger:      logger,
	}
}

// ListURL builds the list request URL. title is always sent, empty when unfiltered.
func (c *Client) ListURL(page int, title string) string {
	return c.baseURL + "/tags?_page=" + strconv.Itoa(page) +
		"&_per_page=" + strconv.Itoa(domain.DefaultPerPage) +
		"&title=" + url.QueryEscape(title)
}

// ListTags fetches one page of tags
func (c *Client) ListTags(ctx context.Context, page int, title string) (domain.TagPage, error) {
	if page < 1 {
		return domain.TagPage{}, domain.ErrInvalidPage
	}

	var tagPage domain.TagPage
	if err := c.do(ctx, http.MethodGet, c.ListURL(page, title), nil, &tagPage); err != nil {
		return domain.TagPage{}, err
	}
	if tagPage.Page == 0 {
		tagPage.Page = page
	}
	if tagPage.Data == nil {
		tagPage.Data = []domain.Tag{}
	}

	c.logger.Debug("tags page fetched", "page", page, "title", title, "items", tagPage.Items)
	if err := c.wait(ctx); err != nil {
		return domain.TagPage{}, err
	}
	return tagPage, nil
}

type createTagRequest struct {
	Title string `json:"title"`
}

// CreateTag creates a tag with the given title
func (c *Client) CreateTag(ctx context.Context, title string) (*domain.Tag, error) {
	body, err := json.Marshal(createTagRequest{Title: title})
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	var tag domain.Tag
	if err := c.do(ctx, http.MethodPost, c.baseURL+"/tags", body, &tag); err != nil {
		return nil, err
	}
	return &tag, nil
}

// ExportTags asks the API for a CSV export of every tag matching title
func (c *Client) ExportTags(ctx context.Context, title string) (*domain.Export, error) {
	var export domain.Export
	if err := c.do(ctx, http.MethodGet, c.baseURL+"/tags/export?title="+url.QueryEscape(title), nil, &export); err != nil {
		return nil, err
	}
	return &export, nil
}

func (c *Client) do(ctx context.Context, method, target string, body []byte, out any) error {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return err
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	response, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrTransport, err)
	}
	defer response.Body.Close()

	if response.StatusCode < 200 || response.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(response.Body, 512))
		return &HTTPError{
			StatusCode: response.StatusCode,
			Message:    strings.TrimSpace(string(msg)),
		}
	}

	if err := json.NewDecoder(response.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrMalformedResponse, err)
	}
	return nil
}

// wait holds a successful response for the configured minimum delay
func (c *Client) wait(ctx context.Context) error {
	if c.minDelay <= 0 {
		return nil
	}
	timer := time.NewTimer(c.minDelay)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
