package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"cleanup-be/models"
)

// API is the cleanup request surface of the REST service
type API interface {
	CreateRequest(ctx context.Context, in models.CreateRequestInput) (*models.CleanupRequest, error)
	GetRequest(ctx context.Context, id string) (*models.CleanupRequest, error)
	SearchRequests(ctx context.Context, params models.SearchParams, page, limit int) (*SearchResult, error)
	Stats(ctx context.Context) (*models.RequestStats, error)
	UpdateStatus(ctx context.Context, id, status string, notes *string) (*models.CleanupRequest, error)
	AssignRequest(ctx context.Context, id, assignee, estimatedCompletion string) (*models.CleanupRequest, error)
}

// SearchResult is one page of a request search
type SearchResult struct {
	Requests      []models.CleanupRequest `json:"requests"`
	TotalRequests int64                   `json:"totalRequests"`
	TotalPages    int                     `json:"totalPages"`
	CurrentPage   int                     `json:"currentPage"`
}

// APIError is a non-2xx response from the service
type APIError struct {
	StatusCode int                 `json:"-"`
	Code       int64               `json:"code"`
	Message    string              `json:"error"`
	Detail     string              `json:"detail,omitempty"`
	Fields     []models.FieldError `json:"fields,omitempty"`
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("api returned status %d: %s (%s)", e.StatusCode, e.Message, e.Detail)
	}
	return fmt.Sprintf("api returned status %d: %s", e.StatusCode, e.Message)
}

// Client talks to the REST service over HTTP
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

var _ API = (*Client)(nil)

// New creates a client. token may be empty for anonymous calls.
func New(baseURL, token string) *Client {
	return &Client{
		baseURL: baseURL,
		token:   token,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func (c *Client) CreateRequest(ctx context.Context, in models.CreateRequestInput) (*models.CleanupRequest, error) {
	var out models.CleanupRequest
	if err := c.do(ctx, http.MethodPost, "/api/requests", nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetRequest(ctx context.Context, id string) (*models.CleanupRequest, error) {
	var out models.CleanupRequest
	if err := c.do(ctx, http.MethodGet, "/api/requests/"+url.PathEscape(id), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) SearchRequests(ctx context.Context, params models.SearchParams, page, limit int) (*SearchResult, error) {
	var out SearchResult
	if err := c.do(ctx, http.MethodGet, "/api/requests", searchValues(params, page, limit), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Stats(ctx context.Context) (*models.RequestStats, error) {
	var out models.RequestStats
	if err := c.do(ctx, http.MethodGet, "/api/requests/stats", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateStatus(ctx context.Context, id, status string, notes *string) (*models.CleanupRequest, error) {
	body := struct {
		Status string  `json:"status"`
		Notes  *string `json:"notes,omitempty"`
	}{status, notes}

	var out models.CleanupRequest
	if err := c.do(ctx, http.MethodPatch, "/api/requests/"+url.PathEscape(id)+"/status", nil, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) AssignRequest(ctx context.Context, id, assignee, estimatedCompletion string) (*models.CleanupRequest, error) {
	body := struct {
		AssignedTo          string `json:"assignedTo"`
		EstimatedCompletion string `json:"estimatedCompletion,omitempty"`
	}{assignee, estimatedCompletion}

	var out models.CleanupRequest
	if err := c.do(ctx, http.MethodPatch, "/api/requests/"+url.PathEscape(id)+"/assign", nil, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func searchValues(p models.SearchParams, page, limit int) url.Values {
	v := url.Values{}
	set := func(key, value string) {
		if value != "" {
			v.Set(key, value)
		}
	}
	set("q", p.Query)
	set("status", p.Status)
	set("severity", p.Severity)
	set("problemType", p.ProblemType)
	set("dateFrom", p.DateFrom)
	set("dateTo", p.DateTo)
	if page > 0 {
		v.Set("page", strconv.Itoa(page))
	}
	if limit > 0 {
		v.Set("limit", strconv.Itoa(limit))
	}
	return v
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out interface{}) error {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		raw, _ := io.ReadAll(resp.Body)
		if err := json.Unmarshal(raw, apiErr); err != nil || apiErr.Message == "" {
			apiErr.Message = string(raw)
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
