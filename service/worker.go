package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/beka-birhanu/vinom-pathfinder/service/i"
)

const (
	defaultPollInterval = 10 * time.Second
)

// WorkerConfig holds the dependencies of a Worker.
type WorkerConfig struct {
	Queue        i.MazeQueue
	Solver       i.Solver
	Repo         i.SolutionRepo
	Logger       i.Logger
	PollInterval time.Duration // Back-off when the queue is empty
}

// Worker drains the maze queue one maze at a time.
type Worker struct {
	queue        i.MazeQueue
	solver       i.Solver
	repo         i.SolutionRepo
	logger       i.Logger
	pollInterval time.Duration
}

// NewWorker creates a Worker.
func NewWorker(c *WorkerConfig) (*Worker, error) {
	if c.Queue == nil || c.Solver == nil || c.Repo == nil || c.Logger == nil {
		return nil, errors.New("worker requires a queue, solver, repository and logger")
	}

	pollInterval := c.PollInterval
	if pollInterval <= 0 {
		pollInterval = defaultPollInterval
	}

	return &Worker{
		queue:        c.Queue,
		solver:       c.Solver,
		repo:         c.Repo,
		logger:       c.Logger,
		pollInterval: pollInterval,
	}, nil
}

// Run processes mazes until ctx is done. An empty queue is polled again after the poll interval.
func (w *Worker) Run(ctx context.Context) {
	w.logger.Info(fmt.Sprintf("Worker started, polling every %s", w.pollInterval))
	for {
		if ctx.Err() != nil {
			w.logger.Info("Worker stopped")
			return
		}

		if w.ProcessNext(ctx) {
			continue
		}

		select {
		case <-ctx.Done():
			w.logger.Info("Worker stopped")
			return
		case <-time.After(w.pollInterval):
		}
	}
}

// ProcessNext pops one maze, solves it and stores the solution. It reports whether a maze was
// taken from the queue. Failures are logged and the maze is dropped.
func (w *Worker) ProcessNext(ctx context.Context) bool {
	pending, err := w.queue.Pop(ctx)
	if errors.Is(err, ErrUndecodableMaze) {
		mazesProcessed.WithLabelValues(outcomeDecodeError).Inc()
		w.logger.Error(fmt.Sprintf("Dropping queued maze: %s", err))
		return true
	}
	if err != nil {
		w.logger.Error(fmt.Sprintf("Popping maze: %s", err))
		return false
	}
	if pending == nil {
		return false
	}

	w.logger.Info(fmt.Sprintf("Solving maze: ID=%s Name=%s", pending.ID, pending.Name))
	started := time.Now()
	solution, err := w.solver.Solve(pending)
	if err != nil {
		mazesProcessed.WithLabelValues(outcomeSolveError).Inc()
		w.logger.Error(fmt.Sprintf("Skipping maze %s: %s", pending.Name, err))
		return true
	}
	solveDuration.WithLabelValues(solution.Status).Observe(time.Since(started).Seconds())

	if err := w.repo.Save(solution); err != nil {
		mazesProcessed.WithLabelValues(outcomeSaveError).Inc()
		w.logger.Error(fmt.Sprintf("Saving solution for maze %s: %s", pending.Name, err))
		return true
	}
	mazesProcessed.WithLabelValues(solution.Status).Inc()

	w.logger.Info(fmt.Sprintf("Stored solution: ID=%s Status=%s", solution.ID, solution.Status))
	return true
}
