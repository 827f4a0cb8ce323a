// Package pool provides a bounded-concurrency executor with order-preserving
// result collection.
//
// Both the dependency resolver (per-package registry lookups) and the header
// engine (per-file verify/rewrite) run their work through this pool. Results
// are index-aligned with the submitted tasks, so downstream aggregation is
// reproducible regardless of worker scheduling: running with 1 worker or 32
// workers yields the same result slice.
package pool

import (
	"context"
	"fmt"
	"sync"
)

// Worker count bounds. Counts outside this range are clamped, never rejected.
const (
	MinWorkers = 1
	MaxWorkers = 32
)

// Task is a unit of work executed by the pool.
type Task[T any] func(ctx context.Context) (T, error)

// Result holds a single task's outcome. Exactly one result is produced per
// submitted task, at the same index.
type Result[T any] struct {
	Value T
	Err   error
}

// Clamp bounds a requested worker count to [MinWorkers, MaxWorkers].
func Clamp(workers int) int {
	if workers < MinWorkers {
		return MinWorkers
	}
	if workers > MaxWorkers {
		return MaxWorkers
	}
	return workers
}

// Run executes tasks with at most workers running concurrently and returns
// one result per task, in submission order.
//
// A panicking task is converted into that task's error result; it never
// crashes the pool or abandons the remaining tasks. Tasks do not outlive the
// call: Run returns only after every worker has exited.
//
// The context is consulted between tasks. Once it is cancelled, tasks that
// have not started yet complete immediately with the context error; tasks
// already running finish normally.
func Run[T any](ctx context.Context, tasks []Task[T], workers int) []Result[T] {
	results := make([]Result[T], len(tasks))
	if len(tasks) == 0 {
		return results
	}

	workers = Clamp(workers)
	if workers > len(tasks) {
		workers = len(tasks)
	}

	jobs := make(chan int)

	var wg sync.WaitGroup
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				// Each worker writes a distinct index, so the results
				// slice needs no locking.
				if err := ctx.Err(); err != nil {
					results[i] = Result[T]{Err: err}
					continue
				}
				results[i] = runOne(ctx, tasks[i])
			}
		}()
	}

	for i := range tasks {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	return results
}

// runOne executes a single task, converting a panic into an error result.
func runOne[T any](ctx context.Context, task Task[T]) (res Result[T]) {
	defer func() {
		if r := recover(); r != nil {
			res = Result[T]{Err: fmt.Errorf("task panic: %v", r)}
		}
	}()

	v, err := task(ctx)
	return Result[T]{Value: v, Err: err}
}
