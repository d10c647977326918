package client

import (
	"context"
	"fmt"
	"sync/atomic"

	"golang.org/x/sync/singleflight"

	"cleanup-be/models"
)

// Coalescing merges concurrent identical reads into a single call on the
// wrapped API. Every waiting caller receives the same result. Writes are
// passed through untouched.
type Coalescing struct {
	next  API
	group singleflight.Group

	shared atomic.Int64
}

var _ API = (*Coalescing)(nil)

// NewCoalescing wraps next
func NewCoalescing(next API) *Coalescing {
	return &Coalescing{next: next}
}

// Shared reports how many callers received a result that was shared with at
// least one other caller
func (c *Coalescing) Shared() int64 {
	return c.shared.Load()
}

// do runs fn once per key among concurrent callers. The call runs detached
// from any single caller's cancellation so one caller giving up does not fail
// the others.
func (c *Coalescing) do(ctx context.Context, key string, fn func(context.Context) (interface{}, error)) (interface{}, error) {
	ch := c.group.DoChan(key, func() (interface{}, error) {
		return fn(context.WithoutCancel(ctx))
	})

	select {
	case res := <-ch:
		if res.Shared {
			c.shared.Add(1)
		}
		return res.Val, res.Err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (c *Coalescing) GetRequest(ctx context.Context, id string) (*models.CleanupRequest, error) {
	v, err := c.do(ctx, "get:"+id, func(ctx context.Context) (interface{}, error) {
		return c.next.GetRequest(ctx, id)
	})
	if err != nil {
		return nil, err
	}
	return v.(*models.CleanupRequest), nil
}

func (c *Coalescing) SearchRequests(ctx context.Context, params models.SearchParams, page, limit int) (*SearchResult, error) {
	key := fmt.Sprintf("search:%s:%d:%d", searchValues(params, 0, 0).Encode(), page, limit)
	v, err := c.do(ctx, key, func(ctx context.Context) (interface{}, error) {
		return c.next.SearchRequests(ctx, params, page, limit)
	})
	if err != nil {
		return nil, err
	}
	return v.(*SearchResult), nil
}

func (c *Coalescing) Stats(ctx context.Context) (*models.RequestStats, error) {
	v, err := c.do(ctx, "stats", func(ctx context.Context) (interface{}, error) {
		return c.next.Stats(ctx)
	})
	if err != nil {
		return nil, err
	}
	return v.(*models.RequestStats), nil
}

func (c *Coalescing) CreateRequest(ctx context.Context, in models.CreateRequestInput) (*models.CleanupRequest, error) {
	return c.next.CreateRequest(ctx, in)
}

func (c *Coalescing) UpdateStatus(ctx context.Context, id, status string, notes *string) (*models.CleanupRequest, error) {
	return c.next.UpdateStatus(ctx, id, status, notes)
}

func (c *Coalescing) AssignRequest(ctx context.Context, id, assignee, estimatedCompletion string) (*models.CleanupRequest, error) {
	return c.next.AssignRequest(ctx, id, assignee, estimatedCompletion)
}
