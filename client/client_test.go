package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cleanup-be/models"
)

func TestClientGetRequest(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/requests/abc123", r.URL.Path)
		assert.Equal(t, "Bearer secret-token", r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(models.CleanupRequest{
			ProblemLabel: "Litter & Trash",
			Status:       models.Pending,
		})
	}))
	defer server.Close()

	c := New(server.URL, "secret-token")
	r, err := c.GetRequest(context.Background(), "abc123")
	require.NoError(t, err)
	assert.Equal(t, "Litter & Trash", r.ProblemLabel)
	assert.Equal(t, models.Pending, r.Status)
}

func TestClientAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"code":1200,"error":"cleanup request not found"}`))
	}))
	defer server.Close()

	_, err := New(server.URL, "").GetRequest(context.Background(), "missing")

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.EqualValues(t, 1200, apiErr.Code)
	assert.Equal(t, "cleanup request not found", apiErr.Message)
}

func TestClientPlainTextError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad gateway", http.StatusBadGateway)
	}))
	defer server.Close()

	_, err := New(server.URL, "").Stats(context.Background())

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
	assert.Contains(t, apiErr.Message, "bad gateway")
}

func TestClientSearchAndStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.Method {
		case http.MethodGet:
			q := r.URL.Query()
			assert.Equal(t, "Main St", q.Get("q"))
			assert.Equal(t, "completed", q.Get("status"))
			assert.Equal(t, "2", q.Get("page"))
			assert.Empty(t, q.Get("severity"))
			_, _ = w.Write([]byte(`{"requests":[],"totalRequests":11,"totalPages":3,"currentPage":2}`))
		case http.MethodPatch:
			assert.Equal(t, "/api/requests/abc/status", r.URL.Path)
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
			var body map[string]string
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, map[string]string{"status": "completed", "notes": "done"}, body)
			_, _ = w.Write([]byte(`{"status":"completed"}`))
		}
	}))
	defer server.Close()

	c := New(server.URL, "")
	res, err := c.SearchRequests(context.Background(), models.SearchParams{Query: "Main St", Status: "completed"}, 2, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 11, res.TotalRequests)
	assert.Equal(t, 3, res.TotalPages)

	notes := "done"
	r, err := c.UpdateStatus(context.Background(), "abc", "completed", &notes)
	require.NoError(t, err)
	assert.Equal(t, models.Completed, r.Status)
}

func TestSearchValues(t *testing.T) {
	v := searchValues(models.SearchParams{Severity: "high", DateTo: "2026-10-07"}, 0, 50)
	assert.Equal(t, "dateTo=2026-10-07&limit=50&severity=high", v.Encode())
}
