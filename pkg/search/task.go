package search

import (
	"context"
	"errors"
	"strconv"

	"github.com/cenkalti/backoff/v4"
	"golang.org/x/sync/errgroup"

	"github.com/dmitrymomot/searchkit/pkg/logger"
)

var errTaskPending = errors.New("task not yet published")

// IndexTask identifies a task on an index.
type IndexTask struct {
	Index  string
	TaskID int64
}

func (c *Client) waitTask(ctx context.Context, index string, taskID int64) error {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = c.opts.taskInitialWait
	b.MaxInterval = c.opts.taskMaxWait
	b.Multiplier = 2
	b.RandomizationFactor = 0
	b.MaxElapsedTime = 0

	idx := c.InitIndex(index)
	polls := 0
	op := func() error {
		polls++
		st, err := idx.TaskStatus(ctx, taskID)
		if err != nil {
			return backoff.Permanent(err)
		}
		if !st.Published() {
			return errTaskPending
		}
		return nil
	}

	if err := backoff.Retry(op, backoff.WithContext(b, ctx)); err != nil {
		return err
	}
	c.logger.DebugContext(ctx, "task published",
		logger.Index(index),
		logger.TaskID(taskID),
		logger.Attempt(polls),
	)
	return nil
}

// WaitTask blocks until taskID is published on index or ctx is done.
// Status polls start at the configured initial wait and double up to the
// maximum wait.
func (c *Client) WaitTask(ctx context.Context, index string, taskID int64) error {
	if index == "" {
		return ErrEmptyIndexName
	}
	return c.waitTask(ctx, index, taskID)
}

// WaitTasks waits for every task concurrently and returns the first error.
func (c *Client) WaitTasks(ctx context.Context, tasks []IndexTask) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(c.opts.taskConcurrency)
	for _, t := range tasks {
		g.Go(func() error {
			if err := c.WaitTask(ctx, t.Index, t.TaskID); err != nil {
				return &TaskError{Index: t.Index, TaskID: t.TaskID, Err: err}
			}
			return nil
		})
	}
	return g.Wait()
}

// TaskError reports which task failed to publish.
type TaskError struct {
	Index  string
	TaskID int64
	Err    error
}

func (e *TaskError) Error() string {
	return "task " + strconv.FormatInt(e.TaskID, 10) + " on " + e.Index + ": " + e.Err.Error()
}

func (e *TaskError) Unwrap() error { return e.Err }
