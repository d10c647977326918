package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"cleanup-be/models"
)

// CreateRequest inserts a new request and fills in its generated id
func (m *mongoDB) CreateRequest(ctx context.Context, r *models.CleanupRequest) error {
	if r.ID.IsZero() {
		r.ID = primitive.NewObjectID()
	}
	if r.Photos == nil {
		r.Photos = []string{}
	}
	if _, err := m.collection(RequestCollection).InsertOne(ctx, r); err != nil {
		return fmt.Errorf("insert cleanup request: %w", err)
	}
	return nil
}

// GetRequest returns ErrRequestNotFound when id does not resolve
func (m *mongoDB) GetRequest(ctx context.Context, id primitive.ObjectID) (*models.CleanupRequest, error) {
	var r models.CleanupRequest
	err := m.collection(RequestCollection).FindOne(ctx, bson.M{"_id": id}).Decode(&r)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrRequestNotFound
		}
		return nil, fmt.Errorf("find cleanup request: %w", err)
	}
	return &r, nil
}

// SearchRequests returns one page of matching requests, newest first, and the
// total number of matches
func (m *mongoDB) SearchRequests(ctx context.Context, q models.SearchQuery, page Page) ([]models.CleanupRequest, int64, error) {
	filter := BuildSearchFilter(q)
	c := m.collection(RequestCollection)

	total, err := c.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("count cleanup requests: %w", err)
	}

	requests, err := m.findRequests(ctx, filter, searchOptions(page))
	if err != nil {
		return nil, 0, err
	}
	return requests, total, nil
}

// ListRequestsBySubmitter returns every request submitted by a user, newest first
func (m *mongoDB) ListRequestsBySubmitter(ctx context.Context, userID primitive.ObjectID) ([]models.CleanupRequest, error) {
	return m.findRequests(ctx, bson.M{"submittedBy": userID}, searchOptions(Page{}))
}

func (m *mongoDB) findRequests(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]models.CleanupRequest, error) {
	cursor, err := m.collection(RequestCollection).Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("find cleanup requests: %w", err)
	}
	defer cursor.Close(ctx)

	requests := make([]models.CleanupRequest, 0)
	if err := cursor.All(ctx, &requests); err != nil {
		return nil, fmt.Errorf("decode cleanup requests: %w", err)
	}
	return requests, nil
}

// SaveRequest replaces the stored document. Concurrent writers resolve last-write-wins.
func (m *mongoDB) SaveRequest(ctx context.Context, r *models.CleanupRequest) error {
	res, err := m.collection(RequestCollection).ReplaceOne(ctx, bson.M{"_id": r.ID}, r)
	if err != nil {
		return fmt.Errorf("replace cleanup request: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrRequestNotFound
	}
	return nil
}

// DeleteRequest removes a request permanently
func (m *mongoDB) DeleteRequest(ctx context.Context, id primitive.ObjectID) error {
	res, err := m.collection(RequestCollection).DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete cleanup request: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrRequestNotFound
	}
	return nil
}

// RequestStats aggregates request counters, optionally restricted to one submitter.
// Any failure fails the whole call.
func (m *mongoDB) RequestStats(ctx context.Context, submittedBy *primitive.ObjectID, now time.Time) (*models.RequestStats, error) {
	var match bson.M
	if submittedBy != nil {
		match = bson.M{"submittedBy": *submittedBy}
	}

	cursor, err := m.collection(RequestCollection).Aggregate(ctx, RequestStatsPipeline(match, now))
	if err != nil {
		return nil, fmt.Errorf("aggregate request stats: %w", err)
	}
	defer cursor.Close(ctx)

	var facets []requestFacets
	if err := cursor.All(ctx, &facets); err != nil {
		return nil, fmt.Errorf("decode request stats: %w", err)
	}
	if len(facets) == 0 {
		return models.NewRequestStats(), nil
	}
	return facets[0].toStats(), nil
}
