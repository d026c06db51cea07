package pipeline

import (
	"context"
	"fmt"
	"sort"

	"github.com/mkravets/compscan/internal/model"
	"github.com/mkravets/compscan/internal/worker"
)

// FileJob analyzes one record file inside a batch pass.
type FileJob struct {
	Path     string
	Pipeline *Pipeline
}

// FileResult is the batch outcome for one file.
type FileResult struct {
	Path   string
	Report *model.CMAReport
	Err    error
}

// GetError implements worker.Result.
func (r FileResult) GetError() error { return r.Err }

// Execute implements worker.Job.
func (j FileJob) Execute(ctx context.Context) worker.Result {
	report, err := j.Pipeline.AnalyzeFile(ctx, j.Path)
	if err != nil {
		return FileResult{Path: j.Path, Err: fmt.Errorf("%s: %w", j.Path, err)}
	}
	return FileResult{Path: j.Path, Report: report}
}

// RunBatch analyzes every file across the configured workers. Only one
// batch pass may run at a time per batcher; a second call while one is
// in flight returns worker.ErrAlreadyRunning. Results come back sorted
// by path so output order does not depend on scheduling.
type Batcher struct {
	pipeline *Pipeline
	guard    *worker.Guard
	workers  int
}

// NewBatcher wraps a pipeline for concurrent multi-file analysis.
func NewBatcher(p *Pipeline, workers int) *Batcher {
	return &Batcher{
		pipeline: p,
		guard:    worker.NewGuard(),
		workers:  workers,
	}
}

// Run processes the files and returns per-file results.
func (b *Batcher) Run(ctx context.Context, paths []string) ([]FileResult, error) {
	release, err := b.guard.TryStart()
	if err != nil {
		return nil, err
	}
	defer release()

	pool := worker.NewPool(b.workers)
	pool.Start()

	// Propagate caller cancellation into the pool; the watcher exits
	// when Run returns.
	watchCtx, stopWatch := context.WithCancel(ctx)
	defer stopWatch()
	go func() {
		<-watchCtx.Done()
		if ctx.Err() != nil {
			pool.Shutdown()
		}
	}()

	jobs := make([]worker.Job, len(paths))
	for i, path := range paths {
		jobs[i] = FileJob{Path: path, Pipeline: b.pipeline}
	}
	raw := pool.Process(jobs)

	results := make([]FileResult, 0, len(raw))
	for _, r := range raw {
		if fr, ok := r.(FileResult); ok {
			results = append(results, fr)
		}
	}
	sort.Slice(results, func(i, j int) bool { return results[i].Path < results[j].Path })

	if ctx.Err() != nil {
		return results, ctx.Err()
	}
	return results, nil
}
