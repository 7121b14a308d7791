// Package aftercommit holds side effects that must only happen once the
// request's database transaction has been committed.
package aftercommit

import (
	"context"
	"sync"
)

// Hook is a deferred side effect.
type Hook func(ctx context.Context)

// Queue collects hooks registered while a transaction is open.
type Queue struct {
	mu    sync.Mutex
	hooks []Hook
}

type queueKey struct{}

// WithQueue returns a context carrying a fresh, empty queue.
func WithQueue(ctx context.Context) (context.Context, *Queue) {
	q := &Queue{}
	return context.WithValue(ctx, queueKey{}, q), q
}

// FromContext returns the queue stored in ctx, or nil.
func FromContext(ctx context.Context) *Queue {
	q, _ := ctx.Value(queueKey{}).(*Queue)
	return q
}

// Do queues hook when ctx carries a queue and runs it right away otherwise.
func Do(ctx context.Context, hook Hook) {
	if q := FromContext(ctx); q != nil {
		q.add(hook)
		return
	}
	hook(ctx)
}

func (q *Queue) add(hook Hook) {
	q.mu.Lock()
	q.hooks = append(q.hooks, hook)
	q.mu.Unlock()
}

// Len reports the number of pending hooks.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.hooks)
}

// Run drains the queue, calling hooks in registration order.
func (q *Queue) Run(ctx context.Context) {
	for _, hook := range q.take() {
		hook(ctx)
	}
}

// Discard drops every pending hook.
func (q *Queue) Discard() {
	q.take()
}

func (q *Queue) take() []Hook {
	q.mu.Lock()
	defer q.mu.Unlock()
	hooks := q.hooks
	q.hooks = nil
	return hooks
}
