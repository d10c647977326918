package store

import (
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"cleanup-be/models"
)

// searchFields are matched case-insensitively by the free-text query
var searchFields = []string{
	"location",
	"description",
	"contactInfo.name",
	"otherDetails.customProblemType",
	"problemLabel",
}

// BuildSearchFilter translates a search query into a mongo filter. The text
// query is an OR across searchFields; every structured filter is ANDed.
func BuildSearchFilter(q models.SearchQuery) bson.M {
	filter := bson.M{}

	if q.Query != "" {
		pattern := regexp.QuoteMeta(q.Query)
		or := make([]bson.M, 0, len(searchFields))
		for _, field := range searchFields {
			or = append(or, bson.M{field: bson.M{"$regex": pattern, "$options": "i"}})
		}
		filter["$or"] = or
	}

	if q.Status != "" {
		filter["status"] = q.Status
	}
	if q.Severity != "" {
		filter["severity"] = q.Severity
	}
	if q.ProblemType != "" {
		filter["problemType"] = q.ProblemType
	}

	if q.DateFrom != nil || q.DateTo != nil {
		created := bson.M{}
		if q.DateFrom != nil {
			created["$gte"] = *q.DateFrom
		}
		if q.DateTo != nil {
			created["$lte"] = *q.DateTo
		}
		filter["createdAt"] = created
	}

	return filter
}

// newestFirst sorts by creation time, newest first
var newestFirst = bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}}

func searchOptions(page Page) *options.FindOptions {
	opts := options.Find().SetSort(newestFirst)
	if page.Skip > 0 {
		opts.SetSkip(page.Skip)
	}
	if page.Limit > 0 {
		opts.SetLimit(page.Limit)
	}
	return opts
}
