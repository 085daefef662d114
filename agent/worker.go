package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
)

type queryJob struct {
	data    []byte
	respond func(data []byte) error
}

type QueryHandler func(ctx context.Context, data []byte) ([]byte, error)

// QueryQueue feeds queued query messages to a fixed set of workers.
type QueryQueue struct {
	jobs    chan queryJob
	wg      sync.WaitGroup
	ctx     context.Context
	cancel  context.CancelFunc
	handler QueryHandler
}

func NewQueryQueue(ctx context.Context, maxWorkers, queueSize int, handler QueryHandler) *QueryQueue {
	if maxWorkers < 1 {
		maxWorkers = 1
	}
	if queueSize < 1 {
		queueSize = 100
	}

	queueCtx, cancel := context.WithCancel(ctx)

	queue := &QueryQueue{
		jobs:    make(chan queryJob, queueSize),
		ctx:     queueCtx,
		cancel:  cancel,
		handler: handler,
	}

	for i := 0; i < maxWorkers; i++ {
		queue.wg.Add(1)
		go queue.worker()
	}

	return queue
}

func (q *QueryQueue) worker() {
	defer q.wg.Done()

	for {
		select {
		case <-q.ctx.Done():
			return
		case job := <-q.jobs:
			q.process(job)
		}
	}
}

func (q *QueryQueue) process(job queryJob) {
	data, err := q.handler(q.ctx, job.data)
	if err != nil {
		slog.Error("failed to handle query message", "err", err)
		data, _ = json.Marshal(map[string]string{"error": err.Error()})
	}

	if err := job.respond(data); err != nil {
		slog.Error("failed to respond to query message", "err", err)
	}
}

// Submit queues a message. Blocks if the queue is full (backpressure).
// Returns false if either context is cancelled.
func (q *QueryQueue) Submit(ctx context.Context, data []byte, respond func(data []byte) error) bool {
	if q.ctx.Err() != nil {
		return false
	}

	select {
	case q.jobs <- queryJob{data: data, respond: respond}:
		return true
	case <-ctx.Done():
		return false
	case <-q.ctx.Done():
		return false
	}
}

func (q *QueryQueue) Stop() {
	q.cancel()
}

func (q *QueryQueue) Wait() {
	q.wg.Wait()
}

// AssistantQueryHandler accepts either a JSON QueryRequest or the bare query text.
func AssistantQueryHandler(a *Assistant) QueryHandler {
	return func(ctx context.Context, data []byte) ([]byte, error) {
		var req QueryRequest
		if err := json.Unmarshal(data, &req); err != nil {
			req.Query = string(data)
		}
		if err := req.Validate(); err != nil {
			return nil, err
		}

		return json.Marshal(a.Ask(ctx, req.Query))
	}
}
