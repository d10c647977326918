package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"

	"cleanup-be/models"
)

func TestBuildSearchFilterEmpty(t *testing.T) {
	assert.Equal(t, bson.M{}, BuildSearchFilter(models.SearchQuery{}))
}

func TestBuildSearchFilterTextAndStatus(t *testing.T) {
	filter := BuildSearchFilter(models.SearchQuery{Query: "Main St", Status: models.Completed})

	assert.Equal(t, models.Completed, filter["status"])

	or, ok := filter["$or"].([]bson.M)
	require.True(t, ok)
	require.Len(t, or, len(searchFields))
	for i, field := range searchFields {
		assert.Equal(t, bson.M{field: bson.M{"$regex": "Main St", "$options": "i"}}, or[i])
	}
}

func TestBuildSearchFilterEscapesPattern(t *testing.T) {
	filter := BuildSearchFilter(models.SearchQuery{Query: "St. (east)"})
	or := filter["$or"].([]bson.M)
	assert.Equal(t, `St\. \(east\)`, or[0]["location"].(bson.M)["$regex"])
}

func TestBuildSearchFilterStructured(t *testing.T) {
	from := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 10, 7, 23, 59, 59, 0, time.UTC)

	filter := BuildSearchFilter(models.SearchQuery{
		Severity:    models.High,
		ProblemType: models.Spill,
		DateFrom:    &from,
		DateTo:      &to,
	})

	assert.Equal(t, bson.M{
		"severity":    models.High,
		"problemType": models.Spill,
		"createdAt":   bson.M{"$gte": from, "$lte": to},
	}, filter)
}

func TestBuildSearchFilterOpenRange(t *testing.T) {
	from := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
	filter := BuildSearchFilter(models.SearchQuery{DateFrom: &from})
	assert.Equal(t, bson.M{"$gte": from}, filter["createdAt"])
}

func TestSearchOptions(t *testing.T) {
	opts := searchOptions(Page{Skip: 40, Limit: 20})
	assert.Equal(t, newestFirst, opts.Sort)
	require.NotNil(t, opts.Skip)
	require.NotNil(t, opts.Limit)
	assert.EqualValues(t, 40, *opts.Skip)
	assert.EqualValues(t, 20, *opts.Limit)

	opts = searchOptions(Page{})
	assert.Nil(t, opts.Skip)
	assert.Nil(t, opts.Limit)
}
