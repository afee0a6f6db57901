package worker

import (
	"context"
	"errors"
	"sync"
)

// Job is a unit of work to execute in the pool.
type Job func(context.Context) error

// Run executes jobs with bounded concurrency and returns a joined error.
func Run(ctx context.Context, workers int, jobs []Job) error {
	if workers < 1 {
		workers = 1
	}
	if len(jobs) == 0 {
		return nil
	}
	if workers > len(jobs) {
		workers = len(jobs)
	}

	jobCh := make(chan Job)
	errCh := make(chan error, len(jobs))

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for job := range jobCh {
				if err := job(ctx); err != nil {
					errCh <- err
				}
			}
		}()
	}

enqueueLoop:
	for _, job := range jobs {
		select {
		case <-ctx.Done():
			break enqueueLoop
		case jobCh <- job:
		}
	}
	close(jobCh)

	wg.Wait()
	close(errCh)

	var errs []error
	for err := range errCh {
		errs = append(errs, err)
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		errs = append(errs, ctxErr)
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// Gather applies fn to every input with bounded concurrency. Successful
// outputs are returned in input order; failed items are dropped and their
// errors joined into the second return value.
func Gather[In, Out any](ctx context.Context, workers int, inputs []In, fn func(context.Context, In) (Out, error)) ([]Out, error) {
	outs := make([]Out, len(inputs))
	ok := make([]bool, len(inputs))

	jobs := make([]Job, 0, len(inputs))
	for i, in := range inputs {
		jobs = append(jobs, func(ctx context.Context) error {
			out, err := fn(ctx, in)
			if err != nil {
				return err
			}
			outs[i] = out
			ok[i] = true
			return nil
		})
	}

	err := Run(ctx, workers, jobs)

	kept := make([]Out, 0, len(inputs))
	for i := range outs {
		if ok[i] {
			kept = append(kept, outs[i])
		}
	}
	return kept, err
}
