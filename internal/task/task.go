// Package task provides the small future abstraction used for background work.
//
// Work is started eagerly when a Future is created. Whether the caller waits
// for it is the caller's decision: the plugin copier hands its tasks back
// unawaited, while the version checker awaits its release fetch immediately.
package task

import (
	"fmt"

	"golang.org/x/sync/errgroup"
)

// Future is the pending result of a function running on its own goroutine.
type Future[T any] struct {
	done chan struct{}
	val  T
	err  error
}

// Go starts fn on a new goroutine and returns its future.
func Go[T any](fn func() (T, error)) *Future[T] {
	f := &Future[T]{done: make(chan struct{})}
	go func() {
		defer close(f.done)
		defer func() {
			if r := recover(); r != nil {
				f.err = fmt.Errorf("task panicked: %v", r)
			}
		}()
		f.val, f.err = fn()
	}()
	return f
}

// Await blocks until the function has returned.
func (f *Future[T]) Await() (T, error) {
	<-f.done
	return f.val, f.err
}

// Done is closed once the function has returned.
func (f *Future[T]) Done() <-chan struct{} {
	return f.done
}

// Task is a future without a value.
type Task struct {
	f *Future[struct{}]
}

// Run starts fn in the background.
func Run(fn func() error) *Task {
	return &Task{f: Go(func() (struct{}, error) {
		return struct{}{}, fn()
	})}
}

// Wait blocks until the task finished and returns its error.
func (t *Task) Wait() error {
	_, err := t.f.Await()
	return err
}

// Done is closed once the task finished.
func (t *Task) Done() <-chan struct{} {
	return t.f.Done()
}

// WaitAll waits for every task and returns the first error encountered.
// Nil tasks are skipped.
func WaitAll(tasks ...*Task) error {
	var g errgroup.Group
	for _, t := range tasks {
		if t == nil {
			continue
		}
		g.Go(t.Wait)
	}
	return g.Wait()
}
