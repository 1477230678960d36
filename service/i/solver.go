package i

import (
	"context"

	dmn "github.com/beka-birhanu/vinom-pathfinder/domain"
)

// Solver computes both routes for a pending maze.
type Solver interface {
	Solve(maze *dmn.PendingMaze) (*dmn.Solution, error)
}

// MazeQueue holds mazes waiting to be solved, oldest first.
type MazeQueue interface {
	// Push appends a maze to the queue.
	Push(ctx context.Context, maze *dmn.PendingMaze) error

	// Pop removes and returns the oldest maze, or nil when the queue is empty.
	Pop(ctx context.Context) (*dmn.PendingMaze, error)

	// Len returns the number of waiting mazes.
	Len(ctx context.Context) int64
}
