package backtest

import (
	"context"
	"runtime"
	"sync"
	"time"

	"github.com/quantbt/trend-follow-bot/internal/frame"
	"github.com/quantbt/trend-follow-bot/internal/strategy"
	"github.com/quantbt/trend-follow-bot/pkg/types"
)

// Job is one independent simulation: a symbol and its raw daily bars.
// Simulations never share state, so a batch parallelizes across symbols —
// never within one symbol's bar sequence.
type Job struct {
	Symbol string
	Bars   []types.Bar
}

// JobResult is the outcome of one job.
type JobResult struct {
	Symbol   string
	Result   *Result
	Summary  Summary
	Duration time.Duration
	Err      error
}

// StrategyFactory builds a fresh strategy instance per job.
type StrategyFactory func() (strategy.Strategy, error)

// WorkerPool runs simulations for many symbols in parallel, one worker per
// simulation.
type WorkerPool struct {
	workerCount int
	factory     StrategyFactory
	opts        Options

	jobQueue    chan Job
	resultQueue chan JobResult
	wg          sync.WaitGroup
	ctx         context.Context
	cancel      context.CancelFunc
}

// NewWorkerPool creates a pool with workerCount workers (NumCPU when
// non-positive) building strategies through factory.
func NewWorkerPool(workerCount, jobBufferSize int, factory StrategyFactory, opts Options) *WorkerPool {
	if workerCount <= 0 {
		workerCount = runtime.NumCPU()
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &WorkerPool{
		workerCount: workerCount,
		factory:     factory,
		opts:        opts,
		jobQueue:    make(chan Job, jobBufferSize),
		resultQueue: make(chan JobResult, jobBufferSize),
		ctx:         ctx,
		cancel:      cancel,
	}
}

// Start launches the workers.
func (wp *WorkerPool) Start() {
	for i := 0; i < wp.workerCount; i++ {
		wp.wg.Add(1)
		go wp.worker()
	}
}

// Stop drains the queue, waits for the workers and closes the result
// channel.
func (wp *WorkerPool) Stop() {
	close(wp.jobQueue)
	wp.wg.Wait()
	close(wp.resultQueue)
	wp.cancel()
}

// Submit queues a job; it fails only when the pool is shutting down.
func (wp *WorkerPool) Submit(job Job) error {
	select {
	case wp.jobQueue <- job:
		return nil
	case <-wp.ctx.Done():
		return wp.ctx.Err()
	}
}

// Results returns the channel completed jobs arrive on.
func (wp *WorkerPool) Results() <-chan JobResult {
	return wp.resultQueue
}

func (wp *WorkerPool) worker() {
	defer wp.wg.Done()
	for {
		select {
		case job, ok := <-wp.jobQueue:
			if !ok {
				return
			}
			result := wp.process(job)
			select {
			case wp.resultQueue <- result:
			case <-wp.ctx.Done():
				return
			}
		case <-wp.ctx.Done():
			return
		}
	}
}

// process runs one full simulation: build the indicator frame, walk it,
// summarize the ledger.
func (wp *WorkerPool) process(job Job) JobResult {
	start := time.Now()
	out := JobResult{Symbol: job.Symbol}

	defer func() {
		out.Duration = time.Since(start)
	}()

	strat, err := wp.factory()
	if err != nil {
		out.Err = err
		return out
	}

	f, err := frame.Build(job.Bars, strat.Columns())
	if err != nil {
		out.Err = err
		return out
	}

	engine, err := NewEngine(strat, wp.opts)
	if err != nil {
		out.Err = err
		return out
	}

	res, err := engine.Run(f)
	if err != nil {
		out.Err = err
		return out
	}

	out.Result = res
	out.Summary = Summarize(res)
	return out
}

// RunBatch is the convenience path for a fixed job list: submit everything,
// collect everything, in job order-independent completion order.
func RunBatch(jobs []Job, workerCount int, factory StrategyFactory, opts Options) []JobResult {
	pool := NewWorkerPool(workerCount, len(jobs), factory, opts)
	pool.Start()

	go func() {
		for _, job := range jobs {
			if err := pool.Submit(job); err != nil {
				return
			}
		}
	}()

	results := make([]JobResult, 0, len(jobs))
	for i := 0; i < len(jobs); i++ {
		results = append(results, <-pool.Results())
	}
	pool.Stop()
	return results
}
