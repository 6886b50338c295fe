package queue

import "errors"

// ErrQueueFull is returned when an item cannot be enqueued.
var ErrQueueFull = errors.New("queue is full")

// Queue represents a basic FIFO queue.
type Queue interface {
	Enqueue(item interface{}) error
	ReadAllMessages() []interface{}
	Size() int
	ClearQueue()
}
