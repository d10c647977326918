package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchParamsParseEmpty(t *testing.T) {
	q, err := SearchParams{}.Parse()
	require.NoError(t, err)
	assert.Equal(t, SearchQuery{}, q)
}

func TestSearchParamsParseFilters(t *testing.T) {
	q, err := SearchParams{
		Query:       "  Main St ",
		Status:      "completed",
		Severity:    "high",
		ProblemType: "graffiti",
		DateFrom:    "2026-10-01",
		DateTo:      "2026-10-07",
	}.Parse()
	require.NoError(t, err)

	assert.Equal(t, "Main St", q.Query)
	assert.Equal(t, Completed, q.Status)
	assert.Equal(t, High, q.Severity)
	assert.Equal(t, Graffiti, q.ProblemType)

	require.NotNil(t, q.DateFrom)
	require.NotNil(t, q.DateTo)
	assert.Equal(t, time.Date(2026, 10, 1, 0, 0, 0, 0, time.Local), *q.DateFrom)
	assert.Equal(t, time.Date(2026, 10, 7, 23, 59, 59, int(999*time.Millisecond), time.Local), *q.DateTo)
}

func TestSearchParamsAllMeansNoFilter(t *testing.T) {
	q, err := SearchParams{Status: "all", Severity: "all", ProblemType: "all"}.Parse()
	require.NoError(t, err)
	assert.Empty(t, q.Status)
	assert.Empty(t, q.Severity)
	assert.Empty(t, q.ProblemType)
}

func TestSearchParamsRejectsBadValues(t *testing.T) {
	_, err := SearchParams{
		Status:      "done",
		Severity:    "urgent",
		ProblemType: "flood",
		DateFrom:    "yesterday",
		DateTo:      "10/07/2026",
	}.Parse()

	assert.ElementsMatch(t,
		[]string{"status", "severity", "problemType", "dateFrom", "dateTo"},
		fieldNames(t, err))
}

func TestParseDate(t *testing.T) {
	ts, err := ParseDate("2026-10-18T08:15:00Z", true)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 10, 18, 8, 15, 0, 0, time.UTC), ts.UTC())

	_, err = ParseDate("18.10.2026", false)
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestStartOfDay(t *testing.T) {
	in := time.Date(2026, 10, 18, 15, 30, 12, 5, time.UTC)
	assert.Equal(t, time.Date(2026, 10, 18, 0, 0, 0, 0, time.UTC), StartOfDay(in))
}

func TestNewStatsHaveEveryKey(t *testing.T) {
	rs := NewRequestStats()
	assert.Len(t, rs.ByStatus, len(Statuses))
	assert.Len(t, rs.BySeverity, len(Levels))

	us := NewUserStats()
	assert.Len(t, us.ByStatus, len(UserStatuses))
}
