// Package batch cleans many URLs concurrently.
package batch

import (
	"context"
	"io"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/schollz/progressbar/v3"

	"github.com/law-makers/purify/pkg/models"
)

// maxConcurrency caps the number of workers.
const maxConcurrency = 64

// Cleaner purifies a single URL.
type Cleaner interface {
	Purify(raw string) (*models.Result, error)
}

// WorkerPool cleans lines using a fixed set of workers
type WorkerPool struct {
	cleaner     Cleaner
	concurrency int
}

type job struct {
	index int
	line  string
}

// OptimalConcurrency returns the worker count used when none is configured.
// Cleaning is CPU bound, so this is the CPU count.
func OptimalConcurrency() int {
	n := runtime.NumCPU()
	if n > maxConcurrency {
		n = maxConcurrency
	}
	return n
}

// NewWorkerPool creates a new worker pool. If concurrency <= 0 it is chosen from the CPU count.
func NewWorkerPool(cleaner Cleaner, concurrency int) *WorkerPool {
	if concurrency <= 0 {
		concurrency = OptimalConcurrency()
	}
	if concurrency > maxConcurrency {
		concurrency = maxConcurrency
	}
	return &WorkerPool{
		cleaner:     cleaner,
		concurrency: concurrency,
	}
}

// Concurrency returns the number of workers.
func (wp *WorkerPool) Concurrency() int {
	return wp.concurrency
}

// Run cleans every line and returns one result per line, in input order.
//
// Blank lines produce blank output. Lines that fail to clean are passed through
// unchanged with Error set. onDone, when non-nil, is called once per finished line
// from the worker goroutines.
func (wp *WorkerPool) Run(ctx context.Context, lines []string, onDone func(models.BatchResult)) ([]models.BatchResult, error) {
	results := make([]models.BatchResult, len(lines))
	if len(lines) == 0 {
		return results, nil
	}

	jobs := make(chan job)

	var wg sync.WaitGroup
	for w := 1; w <= wp.concurrency; w++ {
		wg.Add(1)
		go wp.worker(ctx, w, jobs, results, onDone, &wg)
	}

	// Send jobs to workers
	go func() {
		defer close(jobs)
		for i, line := range lines {
			select {
			case jobs <- job{index: i, line: line}:
			case <-ctx.Done():
				return
			}
		}
	}()

	wg.Wait()

	if err := ctx.Err(); err != nil {
		return results, err
	}
	return results, nil
}

// worker processes jobs and writes each result into its own slot
func (wp *WorkerPool) worker(ctx context.Context, id int, jobs <-chan job, results []models.BatchResult, onDone func(models.BatchResult), wg *sync.WaitGroup) {
	defer wg.Done()

	for j := range jobs {
		select {
		case <-ctx.Done():
			log.Debug().Int("worker_id", id).Msg("Worker cancelled")
			return
		default:
		}

		res := wp.clean(j)
		results[j.index] = res
		if onDone != nil {
			onDone(res)
		}
	}
}

func (wp *WorkerPool) clean(j job) models.BatchResult {
	res := models.BatchResult{Line: j.index + 1, Input: j.line}
	if strings.TrimSpace(j.line) == "" {
		return res
	}

	r, err := wp.cleaner.Purify(j.line)
	if err != nil {
		log.Warn().Err(err).Int("line", res.Line).Msg("Leaving line unchanged")
		res.Output = j.line
		res.Error = err
		res.Message = err.Error()
		return res
	}
	res.Output = r.Output
	res.Result = r
	return res
}

// NewProgressBar creates a progress bar for total lines that renders to w.
func NewProgressBar(total int, w io.Writer) *progressbar.ProgressBar {
	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetDescription("Cleaning"),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(30),
		progressbar.OptionThrottle(65*time.Millisecond),
		progressbar.OptionClearOnFinish(),
	)
}

// Failed counts the results that carry an error.
func Failed(results []models.BatchResult) int {
	n := 0
	for _, r := range results {
		if r.Error != nil {
			n++
		}
	}
	return n
}
