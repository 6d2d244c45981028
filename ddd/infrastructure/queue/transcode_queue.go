package queue

import (
	"context"
	"fmt"
	"sync"

	"video-hosting-service/pkg/errno"
)

// TranscodeQueue is the in-process buffer between the durable job transport
// and the worker pool. Capacity bounds memory under consumer backlog.
type TranscodeQueue interface {
	// Enqueue blocks until the queue has room or ctx is done. The durable
	// consumer relies on this: a job must never be dropped after its offset
	// is committed.
	Enqueue(ctx context.Context, videoID int64) error
	// TryEnqueue never blocks; a full queue is errno.ErrQueueFull. For
	// callers inside a request path that must not stall.
	TryEnqueue(videoID int64) error
	Dequeue(ctx context.Context) (int64, error)
	Size() int
	Close() error
	IsClosed() bool
}

type memoryTranscodeQueue struct {
	queue  chan int64
	closed bool
	mu     sync.RWMutex
}

func NewMemoryTranscodeQueue(capacity int) TranscodeQueue {
	if capacity <= 0 {
		capacity = 100
	}
	return &memoryTranscodeQueue{queue: make(chan int64, capacity)}
}

func (q *memoryTranscodeQueue) Enqueue(ctx context.Context, videoID int64) error {
	q.mu.RLock()
	defer q.mu.RUnlock()
	if q.closed {
		return fmt.Errorf("queue is closed")
	}
	select {
	case q.queue <- videoID:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (q *memoryTranscodeQueue) TryEnqueue(videoID int64) error {
	q.mu.RLock()
	defer q.mu.RUnlock()
	if q.closed {
		return fmt.Errorf("queue is closed")
	}
	select {
	case q.queue <- videoID:
		return nil
	default:
		return errno.NewBizError(errno.ErrQueueFull, nil)
	}
}

func (q *memoryTranscodeQueue) Dequeue(ctx context.Context) (int64, error) {
	select {
	case videoID, ok := <-q.queue:
		if !ok {
			return 0, fmt.Errorf("queue is closed")
		}
		return videoID, nil
	case <-ctx.Done():
		return 0, ctx.Err()
	}
}

func (q *memoryTranscodeQueue) Size() int {
	q.mu.RLock()
	defer q.mu.RUnlock()
	if q.closed {
		return 0
	}
	return len(q.queue)
}

func (q *memoryTranscodeQueue) Close() error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return nil
	}
	q.closed = true
	close(q.queue)
	return nil
}

func (q *memoryTranscodeQueue) IsClosed() bool {
	q.mu.RLock()
	defer q.mu.RUnlock()
	return q.closed
}
