package processor

import (
	"context"
	"errors"
	"fmt"
	"slices"
)

// Event describes one finished task.
type Event struct {
	Task      Task
	FollowUps int
	Err       error
}

// Reporter receives an Event after every task.
type Reporter func(Event)

// Dispatcher runs tasks until none remain.
type Dispatcher struct {
	Registry *Registry
	Env      Env
	// MaxTasks limits how many tasks one Run may execute. Zero means no limit.
	MaxTasks int
	Reporter Reporter
}

// Run executes tasks last-in first-out, queueing the follow-up tasks each
// processor returns. A failing task does not stop the others; all failures
// are returned joined. Cancellation and ErrTaskLimit stop the run.
func (d *Dispatcher) Run(ctx context.Context, tasks []Task) error {
	queue := slices.Clone(tasks)
	executed := 0

	var errs []error

	for len(queue) > 0 {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}

		if d.MaxTasks > 0 && executed >= d.MaxTasks {
			errs = append(errs, fmt.Errorf("%w: %d tasks run, %d still queued", ErrTaskLimit, executed, len(queue)))
			break
		}

		task := queue[len(queue)-1]
		queue = queue[:len(queue)-1]
		executed++

		followUps, err := d.run(ctx, task)
		if err != nil {
			errs = append(errs, err)
		}

		if d.Reporter != nil {
			d.Reporter(Event{Task: task, FollowUps: len(followUps), Err: err})
		}

		queue = append(queue, followUps...)
	}

	return errors.Join(errs...)
}

func (d *Dispatcher) run(ctx context.Context, task Task) ([]Task, error) {
	p, ok := d.Registry.Lookup(task.Processor)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownProcessor, task.Processor)
	}

	followUps, err := p.Run(ctx, task.File, d.Env.withTask(task))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", task, err)
	}

	return followUps, nil
}
