// Package domain holds the records exchanged between the maze queue, the solver and storage.
package domain

import (
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/beka-birhanu/vinom-pathfinder/maze"
	"github.com/beka-birhanu/vinom-pathfinder/qlearning"
	"github.com/google/uuid"
)

const (
	namePattern   = `^[a-zA-Z0-9_]+$` // Alphanumeric with underscores
	maxNameLength = 64

	defaultLearningRate = 0.1
	defaultDiscount     = 0.95
	defaultAlgo         = "User"
)

// Solution statuses.
const (
	StatusSolved     = "solved"      // Both algorithms produced a route.
	StatusNoPath     = "no_path"     // A* found no route; training was skipped.
	StatusNotLearned = "not_learned" // A* found a route but training ran out of episodes.
)

var (
	ErrInvalidName = errors.New("invalid maze name")

	nameRegex = regexp.MustCompile(namePattern)
)

// PendingMaze is a maze waiting in the queue to be solved.
type PendingMaze struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Algo         string    `json:"algo"`
	Grid         [][]int   `json:"grid"`
	LearningRate float64   `json:"learning_rate"`
	Discount     float64   `json:"discount"`
	CreatedAt    time.Time `json:"created_at"`
}

// PendingMazeConfig holds the caller supplied fields of a PendingMaze.
type PendingMazeConfig struct {
	Name         string
	Algo         string
	Grid         [][]int
	LearningRate float64
	Discount     float64
}

// NewPendingMaze validates the configuration and fills in defaults. The grid itself is validated
// when the maze is solved.
func NewPendingMaze(config PendingMazeConfig) (*PendingMaze, error) {
	if err := validateName(config.Name); err != nil {
		return nil, err
	}

	p := &PendingMaze{
		ID:           uuid.New(),
		Name:         config.Name,
		Algo:         config.Algo,
		Grid:         config.Grid,
		LearningRate: config.LearningRate,
		Discount:     config.Discount,
		CreatedAt:    time.Now().UTC(),
	}
	if p.Algo == "" {
		p.Algo = defaultAlgo
	}
	if p.LearningRate <= 0 {
		p.LearningRate = defaultLearningRate
	}
	if p.Discount <= 0 {
		p.Discount = defaultDiscount
	}
	return p, nil
}

func validateName(name string) error {
	if name == "" || len(name) > maxNameLength {
		return fmt.Errorf("%w: length must be 1..%d", ErrInvalidName, maxNameLength)
	}
	if !nameRegex.MatchString(name) {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return nil
}

// Solution is the stored result of solving one maze.
type Solution struct {
	ID           uuid.UUID       `json:"id" bson:"_id"`
	Name         string          `json:"name" bson:"name"`
	Algo         string          `json:"algo" bson:"algo"`
	SizeStr      string          `json:"size_str" bson:"size_str"`
	Rows         int             `json:"rows" bson:"rows"`
	Cols         int             `json:"cols" bson:"cols"`
	Grid         [][]int         `json:"grid" bson:"grid"`
	Start        maze.Position   `json:"start" bson:"start"`
	Finish       maze.Position   `json:"finish" bson:"finish"`
	LearningRate float64         `json:"learning_rate" bson:"learning_rate"`
	Discount     float64         `json:"discount" bson:"discount"`
	Status       string          `json:"status" bson:"status"`
	Route        []maze.Position `json:"route,omitempty" bson:"route,omitempty"`
	RouteLen     int             `json:"route_len" bson:"route_len"`
	LearnedRoute []maze.Position `json:"learned_route,omitempty" bson:"learned_route,omitempty"`

	LearnedRouteLen      int     `json:"learned_route_len" bson:"learned_route_len"`
	EpisodesToSolve      int     `json:"episodes_to_solve" bson:"episodes_to_solve"`
	BestReward           int     `json:"best_reward" bson:"best_reward"`
	DeviationFromOptimal int     `json:"deviation_from_optimal" bson:"deviation_from_optimal"`
	FinalMeanReward      float64 `json:"final_mean_reward" bson:"final_mean_reward"` // Last point of the reward moving average

	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}

// NewSolution starts a record for p solved against m. Route fields are filled by the solver.
func NewSolution(p *PendingMaze, m *maze.Grid) *Solution {
	return &Solution{
		ID:           p.ID,
		Name:         p.Name,
		Algo:         p.Algo,
		SizeStr:      fmt.Sprintf("%dx%d", m.Rows(), m.Cols()),
		Rows:         m.Rows(),
		Cols:         m.Cols(),
		Grid:         m.Cells(),
		Start:        m.Start(),
		Finish:       m.Finish(),
		LearningRate: p.LearningRate,
		Discount:     p.Discount,
		CreatedAt:    time.Now().UTC(),
	}
}

// Maze rebuilds the grid the solution was computed on.
func (s *Solution) Maze() (*maze.Grid, error) {
	return maze.New(s.Grid)
}

// Matches reports whether any filter equals the algo, status or size of the solution. An empty
// filter list matches everything.
func (s *Solution) Matches(filters []string) bool {
	if len(filters) == 0 {
		return true
	}
	for _, f := range filters {
		if f == s.Algo || f == s.Status || f == s.SizeStr {
			return true
		}
	}
	return false
}

// Deviation counts the cells that lie on exactly one of the two routes.
func Deviation(optimal []maze.Position, learned []qlearning.Point) int {
	a := make(map[maze.Position]struct{}, len(optimal))
	for _, pos := range optimal {
		a[pos] = struct{}{}
	}
	b := make(map[maze.Position]struct{}, len(learned))
	for _, p := range learned {
		b[p.Position()] = struct{}{}
	}

	diff := 0
	for pos := range a {
		if _, ok := b[pos]; !ok {
			diff++
		}
	}
	for pos := range b {
		if _, ok := a[pos]; !ok {
			diff++
		}
	}
	return diff
}

// Positions converts agent points to grid positions.
func Positions(points []qlearning.Point) []maze.Position {
	if points == nil {
		return nil
	}
	out := make([]maze.Position, len(points))
	for i, p := range points {
		out[i] = p.Position()
	}
	return out
}
