package execution

import (
	"context"
	"sync"
	"time"

	"tsplit/internal/config"
	"tsplit/internal/domain"
	"tsplit/internal/parser"
	"tsplit/internal/ui"
)

// WorkerPool manages a pool of workers for parallel test execution
type WorkerPool struct {
	config   *config.Config
	runner   *Runner
	progress *ui.ProgressBar
	parser   *parser.PHPUnitParser
}

// NewWorkerPool creates a new WorkerPool
func NewWorkerPool(cfg *config.Config, runner *Runner, phpUnitParser *parser.PHPUnitParser) *WorkerPool {
	return &WorkerPool{
		config: cfg,
		runner: runner,
		parser: phpUnitParser,
	}
}

// SetProgress sets the progress bar for the worker pool
func (wp *WorkerPool) SetProgress(progress *ui.ProgressBar) {
	wp.progress = progress
}

// Execute executes tests in parallel using worker pool (no fail-fast).
func (wp *WorkerPool) Execute(items []domain.Item) ([]domain.TestResult, time.Duration, error) {
	return wp.ExecuteWithOptions(items, false)
}

// ExecuteWithOptions executes tests with optional fail-fast (stop on first failure).
func (wp *WorkerPool) ExecuteWithOptions(items []domain.Item, failFast bool) ([]domain.TestResult, time.Duration, error) {
	if len(items) == 0 {
		return nil, 0, nil
	}
	if !failFast {
		return wp.executeAll(items)
	}
	return wp.executeFailFast(items)
}

// executeAll runs every queued test file.
func (wp *WorkerPool) executeAll(items []domain.Item) ([]domain.TestResult, time.Duration, error) {
	queue := make(chan domain.Item, len(items))
	results := make(chan domain.TestResult, len(items))
	for _, item := range items {
		queue <- item
	}
	close(queue)

	var mu sync.Mutex
	var completedFiles int
	var passedCases, failedCases int
	startTime := time.Now()
	workerCount := wp.config.Processors
	if workerCount <= 0 {
		workerCount = 1
	}

	var wg sync.WaitGroup
	for i := 1; i <= workerCount; i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			for item := range queue {
				result := wp.runner.Run(item, workerID)
				results <- result
				mu.Lock()
				completedFiles++
				if wp.parser != nil {
					p, f := wp.parser.ParseTestCounts(result)
					passedCases += p
					failedCases += f
				} else {
					if result.Success {
						passedCases++
					} else {
						failedCases++
					}
				}
				if wp.progress != nil {
					wp.progress.Update(completedFiles, passedCases, failedCases)
				}
				mu.Unlock()
			}
		}(i)
	}
	go func() {
		wg.Wait()
		close(results)
	}()

	var allResults []domain.TestResult
	for result := range results {
		allResults = append(allResults, result)
	}
	if wp.progress != nil {
		wp.progress.Finish()
	}
	return allResults, time.Since(startTime), nil
}

// executeFailFast runs tests and stops after the first failure.
func (wp *WorkerPool) executeFailFast(items []domain.Item) ([]domain.TestResult, time.Duration, error) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	queue := make(chan domain.Item, 1)
	results := make(chan domain.TestResult, len(items))

	go func() {
		defer close(queue)
		for _, item := range items {
			select {
			case <-ctx.Done():
				return
			case queue <- item:
			}
		}
	}()

	var mu sync.Mutex
	var completedFiles int
	var passedCases, failedCases int
	var seenFailure bool
	startTime := time.Now()
	workerCount := wp.config.Processors
	if workerCount <= 0 {
		workerCount = 1
	}

	var wg sync.WaitGroup
	for i := 1; i <= workerCount; i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			for item := range queue {
				result := wp.runner.Run(item, workerID)
				mu.Lock()
				done := seenFailure
				mu.Unlock()
				if done {
					continue
				}
				results <- result
				mu.Lock()
				completedFiles++
				if wp.parser != nil {
					p, f := wp.parser.ParseTestCounts(result)
					passedCases += p
					failedCases += f
				} else {
					if result.Success {
						passedCases++
					} else {
						failedCases++
					}
				}
				if wp.progress != nil {
					wp.progress.Update(completedFiles, passedCases, failedCases)
				}
				if !result.Success {
					seenFailure = true
					cancel()
				}
				mu.Unlock()
			}
		}(i)
	}
	go func() {
		wg.Wait()
		close(results)
	}()

	var allResults []domain.TestResult
	for result := range results {
		allResults = append(allResults, result)
	}
	if wp.progress != nil {
		wp.progress.Finish()
	}
	return allResults, time.Since(startTime), nil
}
