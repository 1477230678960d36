package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	dmn "github.com/beka-birhanu/vinom-pathfinder/domain"
	"github.com/beka-birhanu/vinom-pathfinder/service/i"
)

const (
	defaultQueueKey = "mazes:pending"
)

// ErrUndecodableMaze reports a queue member that was removed but could not be decoded.
var ErrUndecodableMaze = errors.New("undecodable queued maze")

// QueueOptions configures a MazeQueue.
type QueueOptions struct {
	Key string // Sorted queue key holding the pending mazes
}

// MazeQueue keeps pending mazes in a sorted queue scored by enqueue time, so the oldest maze is
// popped first.
type MazeQueue struct {
	sortedQueue i.SortedQueue
	logger      i.Logger
	opts        *QueueOptions
	lastScore   float64
	scoreMu     sync.Mutex
}

// NewMazeQueue creates a MazeQueue on top of sortedQueue.
func NewMazeQueue(sortedQueue i.SortedQueue, logger i.Logger, opts *QueueOptions) (*MazeQueue, error) {
	if opts == nil {
		opts = &QueueOptions{Key: defaultQueueKey}
	}

	if opts.Key == "" {
		opts.Key = defaultQueueKey
	}

	return &MazeQueue{
		sortedQueue: sortedQueue,
		logger:      logger,
		opts:        opts,
	}, nil
}

// Push appends a maze to the queue.
func (q *MazeQueue) Push(ctx context.Context, maze *dmn.PendingMaze) error {
	payload, err := json.Marshal(maze)
	if err != nil {
		return fmt.Errorf("encoding maze %s: %w", maze.Name, err)
	}

	score := q.nextScore()
	if err := q.sortedQueue.Enqueue(ctx, q.opts.Key, score, string(payload)); err != nil {
		q.logger.Error(fmt.Sprintf("Failed to enqueue maze: %s", err))
		return err
	}

	q.logger.Info(fmt.Sprintf("Maze enqueued successfully: ID=%s Name=%s", maze.ID, maze.Name))
	return nil
}

// Pop removes and returns the oldest maze, or nil when the queue is empty.
func (q *MazeQueue) Pop(ctx context.Context) (*dmn.PendingMaze, error) {
	raw, err := q.sortedQueue.DequeTops(ctx, q.opts.Key, 1)
	if err != nil {
		return nil, fmt.Errorf("dequeuing maze: %w", err)
	}
	if len(raw) == 0 {
		return nil, nil
	}

	var maze dmn.PendingMaze
	if err := json.Unmarshal([]byte(raw[0]), &maze); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrUndecodableMaze, err)
	}
	return &maze, nil
}

// nextScore returns the enqueue time in microseconds, bumped past the previous score so pushes
// from this queue stay strictly ordered. Microsecond values are exact in a float64.
func (q *MazeQueue) nextScore() float64 {
	q.scoreMu.Lock()
	defer q.scoreMu.Unlock()

	score := float64(time.Now().UnixMicro())
	if score <= q.lastScore {
		score = q.lastScore + 1
	}
	q.lastScore = score
	return score
}

// Len returns the number of waiting mazes.
func (q *MazeQueue) Len(ctx context.Context) int64 {
	return q.sortedQueue.Count(ctx, q.opts.Key)
}
