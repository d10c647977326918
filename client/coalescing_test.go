package client

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cleanup-be/models"
)

// blockingAPI holds every GetRequest until release is closed
type blockingAPI struct {
	API

	calls   atomic.Int64
	writes  atomic.Int64
	entered chan struct{}
	once    sync.Once
	release chan struct{}
}

func newBlockingAPI() *blockingAPI {
	return &blockingAPI{
		entered: make(chan struct{}),
		release: make(chan struct{}),
	}
}

func (b *blockingAPI) GetRequest(ctx context.Context, id string) (*models.CleanupRequest, error) {
	b.calls.Add(1)
	b.once.Do(func() { close(b.entered) })
	<-b.release
	return &models.CleanupRequest{Location: id}, ctx.Err()
}

func (b *blockingAPI) UpdateStatus(_ context.Context, id, status string, _ *string) (*models.CleanupRequest, error) {
	b.writes.Add(1)
	return &models.CleanupRequest{Location: id, Status: models.Status(status)}, nil
}

func TestCoalescingMergesConcurrentReads(t *testing.T) {
	const callers = 8

	next := newBlockingAPI()
	c := NewCoalescing(next)

	var ready, done sync.WaitGroup
	ready.Add(callers)
	done.Add(callers)

	results := make([]*models.CleanupRequest, callers)
	errs := make([]error, callers)
	for i := 0; i < callers; i++ {
		go func(i int) {
			defer done.Done()
			ready.Done()
			results[i], errs[i] = c.GetRequest(context.Background(), "abc")
		}(i)
	}

	ready.Wait()
	<-next.entered
	time.Sleep(50 * time.Millisecond)
	close(next.release)
	done.Wait()

	assert.EqualValues(t, 1, next.calls.Load())
	assert.EqualValues(t, callers, c.Shared())
	for i := 0; i < callers; i++ {
		require.NoError(t, errs[i])
		assert.Same(t, results[0], results[i])
	}
}

func TestCoalescingCallerCancellation(t *testing.T) {
	next := newBlockingAPI()
	c := NewCoalescing(next)

	ctx, cancel := context.WithCancel(context.Background())
	first := make(chan error, 1)
	go func() {
		_, err := c.GetRequest(ctx, "abc")
		first <- err
	}()
	<-next.entered

	second := make(chan *models.CleanupRequest, 1)
	go func() {
		r, _ := c.GetRequest(context.Background(), "abc")
		second <- r
	}()

	cancel()
	assert.ErrorIs(t, <-first, context.Canceled)

	close(next.release)
	r := <-second
	require.NotNil(t, r)
	assert.Equal(t, "abc", r.Location)
}

func TestCoalescingPassesWritesThrough(t *testing.T) {
	next := newBlockingAPI()
	c := NewCoalescing(next)

	for i := 0; i < 3; i++ {
		r, err := c.UpdateStatus(context.Background(), "abc", "completed", nil)
		require.NoError(t, err)
		assert.Equal(t, models.Completed, r.Status)
	}
	assert.EqualValues(t, 3, next.writes.Load())
	assert.Zero(t, c.Shared())
}
