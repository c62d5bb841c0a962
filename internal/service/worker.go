package service

import (
	"context"
	"errors"
	"sync"
)

// TaskError accumulates the errors of a batch of independent tasks.
type TaskError struct {
	Errors []error
}

func (e *TaskError) Error() string {
	if len(e.Errors) == 0 {
		return "no errors"
	}
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	msg := "multiple errors:"
	for _, err := range e.Errors {
		msg += " " + err.Error() + ";"
	}
	return msg
}

// Unwrap exposes every task error to errors.Is and errors.As.
func (e *TaskError) Unwrap() []error { return e.Errors }

func (e *TaskError) append(err error) {
	if err == nil {
		return
	}
	e.Errors = append(e.Errors, err)
}

func (e *TaskError) asError() error {
	if len(e.Errors) == 0 {
		return nil
	}
	return e
}

// runTasks calls taskFn for every index in [0, total) on up to workers
// goroutines. Task errors are collected in index order into a *TaskError; a
// cancelled context wins over task errors.
func runTasks(ctx context.Context, workers, total int, taskFn func(idx int) error) error {
	if total == 0 {
		return nil
	}
	if workers <= 0 {
		workers = 4
	}
	if workers > total {
		workers = total
	}

	indexCh := make(chan int)
	errs := make([]error, total)
	var wg sync.WaitGroup

	worker := func() {
		defer wg.Done()
		for idx := range indexCh {
			errs[idx] = taskFn(idx)
		}
	}

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go worker()
	}

Loop:
	for i := 0; i < total; i++ {
		select {
		case indexCh <- i:
		case <-ctx.Done():
			break Loop
		}
	}
	close(indexCh)
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return err
	}

	var taskErr TaskError
	for _, err := range errs {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return err
		}
		taskErr.append(err)
	}
	return taskErr.asError()
}
