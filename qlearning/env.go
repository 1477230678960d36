package qlearning

import (
	"errors"
	"fmt"

	"github.com/beka-birhanu/vinom-pathfinder/maze"
)

var (
	ErrInvalidRewardModel = errors.New("invalid reward model")
)

// Point is the agent's (x, y) coordinate. X indexes grid rows and Y grid columns; convert with
// Position and PointAt rather than reusing a maze.Position directly.
type Point struct {
	X int `json:"x" bson:"x"`
	Y int `json:"y" bson:"y"`
}

// Position converts the agent coordinate to the grid's (row, col) convention.
func (p Point) Position() maze.Position {
	return maze.Position{Row: p.X, Col: p.Y}
}

// PointAt converts a grid position to the agent coordinate convention.
func PointAt(pos maze.Position) Point {
	return Point{X: pos.Row, Y: pos.Col}
}

// Action is one of the four agent moves.
type Action int

const (
	Down  Action = iota // Down moves x by +1.
	Up                  // Up moves x by -1.
	Right               // Right moves y by +1.
	Left                // Left moves y by -1.

	actionCount = 4
)

var actionDeltas = [actionCount]Point{
	Down:  {X: 1, Y: 0},
	Up:    {X: -1, Y: 0},
	Right: {X: 0, Y: 1},
	Left:  {X: 0, Y: -1},
}

// RewardModel defines the rewards of the environment. Penalties are given as positive numbers
// and subtracted.
type RewardModel struct {
	WallPenalty  int // Penalty for leaving the board or hitting a wall
	FinishReward int // Reward for reaching the finish
	MovePenalty  int // Penalty for every other move
}

// DefaultRewardModel is the reward shaping used unless overridden.
var DefaultRewardModel = RewardModel{
	WallPenalty:  300,
	FinishReward: 25,
	MovePenalty:  1,
}

func (r RewardModel) validate() error {
	if min(r.WallPenalty, r.FinishReward, r.MovePenalty) < 0 {
		return fmt.Errorf("%w: values must not be negative", ErrInvalidRewardModel)
	}
	if r.FinishReward == -r.MovePenalty || r.FinishReward == -r.WallPenalty {
		return fmt.Errorf("%w: finish reward must differ from penalties", ErrInvalidRewardModel)
	}
	return nil
}

// Environment scores agent moves on a maze. The board is treated as size x size with
// size = max(rows, cols); cells on that board outside the real grid behave as walls.
type Environment struct {
	maze    *maze.Grid
	size    int
	rewards RewardModel
}

// NewEnvironment creates an Environment for m.
func NewEnvironment(m *maze.Grid, rewards RewardModel) (*Environment, error) {
	if err := rewards.validate(); err != nil {
		return nil, err
	}
	return &Environment{
		maze:    m,
		size:    max(m.Rows(), m.Cols()),
		rewards: rewards,
	}, nil
}

// Size returns the side length of the board.
func (e *Environment) Size() int {
	return e.size
}

// Start returns the agent's starting point.
func (e *Environment) Start() Point {
	return PointAt(e.maze.Start())
}

// Step applies action a at p and returns the resulting point and the reward. Illegal moves leave
// the agent at p.
func (e *Environment) Step(p Point, a Action) (Point, int) {
	delta := actionDeltas[a]
	next := Point{X: p.X + delta.X, Y: p.Y + delta.Y}

	if next.X < 0 || next.Y < 0 || next.X >= e.size || next.Y >= e.size {
		return p, -e.rewards.WallPenalty
	}

	code, ok := e.maze.Code(next.X, next.Y)
	switch {
	case !ok || code == maze.Wall:
		return p, -e.rewards.WallPenalty
	case code == maze.Finish:
		return next, e.rewards.FinishReward
	default:
		return next, -e.rewards.MovePenalty
	}
}
