package queue

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// ErrClosed is returned by Publish after Close.
var ErrClosed = errors.New("publisher closed")

// MemoryPublisher buffers messages in per-subject channels. It is used in
// tests and single-process development setups.
type MemoryPublisher struct {
	capacity int
	channels map[string]chan []byte
	closed   bool
	mu       sync.Mutex
}

// NewMemoryPublisher creates a publisher whose subjects each buffer up to
// capacity messages
func NewMemoryPublisher(capacity int) *MemoryPublisher {
	if capacity <= 0 {
		capacity = 1
	}
	return &MemoryPublisher{capacity: capacity, channels: make(map[string]chan []byte)}
}

func (q *MemoryPublisher) channel(subject string) chan []byte {
	if ch, ok := q.channels[subject]; ok {
		return ch
	}
	ch := make(chan []byte, q.capacity)
	q.channels[subject] = ch
	return ch
}

// Publish copies data into the subject buffer without blocking
func (q *MemoryPublisher) Publish(ctx context.Context, subject string, data []byte) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return ErrClosed
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	dataCopy := make([]byte, len(data))
	copy(dataCopy, data)

	select {
	case q.channel(subject) <- dataCopy:
		return nil
	default:
		return fmt.Errorf("channel full for subject: %s", subject)
	}
}

// Messages returns the receive side of a subject buffer
func (q *MemoryPublisher) Messages(subject string) <-chan []byte {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.channel(subject)
}

// Pending returns the number of buffered messages for subject
func (q *MemoryPublisher) Pending(subject string) int {
	q.mu.Lock()
	defer q.mu.Unlock()
	if ch, ok := q.channels[subject]; ok {
		return len(ch)
	}
	return 0
}

// Close closes every subject channel
func (q *MemoryPublisher) Close() error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return nil
	}
	q.closed = true
	for _, ch := range q.channels {
		close(ch)
	}
	return nil
}
