package stitch

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/ironsheep/long-screenshot-mcp/internal/shapes"
)

// Worker aligns pairs on its own goroutine. Requests are handed over on a
// channel and at most one is outstanding at a time; concurrent callers wait
// their turn.
//
// The worker shares nothing mutable with its callers. It receives images and
// known shapes and returns shapes for the caller to cache.
type Worker struct {
	extractor shapes.Extractor
	resolver  Resolver

	mu        sync.Mutex
	jobs      chan workerJob
	done      chan struct{}
	closeOnce sync.Once
	wg        sync.WaitGroup
}

type workerJob struct {
	req   PairRequest
	reply chan workerReply
}

type workerReply struct {
	res PairResult
	err error
}

// errWorkerClosed is wrapped in ErrPipelineStalled when the worker is gone.
var errWorkerClosed = errors.New("worker closed")

// NewWorker starts a worker goroutine. Call Close to stop it.
func NewWorker(e shapes.Extractor, r Resolver) *Worker {
	w := &Worker{
		extractor: e,
		resolver:  r,
		jobs:      make(chan workerJob),
		done:      make(chan struct{}),
	}

	w.wg.Add(1)
	go w.loop()

	return w
}

func (w *Worker) loop() {
	defer w.wg.Done()
	for {
		select {
		case job := <-w.jobs:
			// reply is buffered, so an abandoned request does not block the loop.
			job.reply <- w.run(job.req)
		case <-w.done:
			return
		}
	}
}

func (w *Worker) run(req PairRequest) (reply workerReply) {
	defer func() {
		if r := recover(); r != nil {
			reply = workerReply{err: fmt.Errorf("%w: worker panic: %v", ErrPipelineStalled, r)}
		}
	}()
	return workerReply{res: alignPair(w.extractor, w.resolver, req)}
}

// AlignPair sends req to the worker and waits for the answer. If ctx ends
// first, or the worker is closed, the error wraps ErrPipelineStalled.
func (w *Worker) AlignPair(ctx context.Context, req PairRequest) (PairResult, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	job := workerJob{req: req, reply: make(chan workerReply, 1)}

	select {
	case w.jobs <- job:
	case <-w.done:
		return PairResult{}, fmt.Errorf("%w: %w", ErrPipelineStalled, errWorkerClosed)
	case <-ctx.Done():
		return PairResult{}, fmt.Errorf("%w: %w", ErrPipelineStalled, ctx.Err())
	}

	select {
	case reply := <-job.reply:
		return reply.res, reply.err
	case <-w.done:
		return PairResult{}, fmt.Errorf("%w: %w", ErrPipelineStalled, errWorkerClosed)
	case <-ctx.Done():
		return PairResult{}, fmt.Errorf("%w: %w", ErrPipelineStalled, ctx.Err())
	}
}

// Close stops the worker and waits for the current pair to finish. It is
// safe to call more than once.
func (w *Worker) Close() error {
	w.closeOnce.Do(func() {
		close(w.done)
	})
	w.wg.Wait()
	return nil
}
