package service

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/beka-birhanu/vinom-pathfinder/astar"
	dmn "github.com/beka-birhanu/vinom-pathfinder/domain"
	"github.com/beka-birhanu/vinom-pathfinder/maze"
	"github.com/beka-birhanu/vinom-pathfinder/qlearning"
	"github.com/beka-birhanu/vinom-pathfinder/service/i"
)

// SolverConfig holds the settings shared by every solve.
type SolverConfig struct {
	Episodes  int           // Trainer solve budget; the trainer default when zero
	Seed      int64         // Seed for the trainer random source; the clock when zero
	ShowEvery int           // Trainer progress interval
	Logger    i.Logger      // Logger for solver and trainer progress
	Finder    *astar.Finder // Route finder; astar.New() when nil
}

// Solver runs A* and, when A* finds a route, the Q-learning trainer. It is meant for a single
// consumer and is not safe for concurrent use.
type Solver struct {
	finder    *astar.Finder
	episodes  int
	showEvery int
	rng       *rand.Rand
	logger    i.Logger
}

// NewSolver creates a Solver.
func NewSolver(c SolverConfig) (*Solver, error) {
	if c.Logger == nil {
		return nil, errors.New("solver logger is required")
	}

	finder := c.Finder
	if finder == nil {
		finder = astar.New()
	}

	seed := c.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	return &Solver{
		finder:    finder,
		episodes:  c.Episodes,
		showEvery: c.ShowEvery,
		rng:       rand.New(rand.NewSource(seed)),
		logger:    c.Logger,
	}, nil
}

// Solve builds the maze and computes both routes. Invalid grids return maze.ErrInvalidMaze; an
// unreachable finish or an exhausted training budget are recorded in the solution status.
func (s *Solver) Solve(p *dmn.PendingMaze) (*dmn.Solution, error) {
	m, err := maze.New(p.Grid)
	if err != nil {
		return nil, fmt.Errorf("maze %s: %w", p.Name, err)
	}

	solution := dmn.NewSolution(p, m)

	route, found := s.finder.Search(m)
	if !found {
		solution.Status = dmn.StatusNoPath
		s.logger.Warning(fmt.Sprintf("maze %s: no route from %v to %v, skipping training", p.Name, m.Start(), m.Finish()))
		return solution, nil
	}
	solution.Route = route
	solution.RouteLen = len(route)

	trainer, err := qlearning.NewTrainer(m, qlearning.Options{
		LearningRate: p.LearningRate,
		Discount:     p.Discount,
		Episodes:     s.episodes,
		ShowEvery:    s.showEvery,
		Rand:         rand.New(rand.NewSource(s.rng.Int63())),
		Logger:       s.logger,
	})
	if err != nil {
		return nil, fmt.Errorf("maze %s: %w", p.Name, err)
	}

	result, err := trainer.Train()
	if errors.Is(err, qlearning.ErrTrainingBudgetExhausted) {
		solution.Status = dmn.StatusNotLearned
		solution.FinalMeanReward = finalMeanReward(result.Rewards, s.showEvery)
		s.logger.Warning(fmt.Sprintf("maze %s: %s", p.Name, err))
		return solution, nil
	}
	if err != nil {
		return nil, fmt.Errorf("maze %s: %w", p.Name, err)
	}

	solution.Status = dmn.StatusSolved
	solution.EpisodesToSolve = result.FirstSuccessEpisode
	solution.BestReward = result.BestReward
	solution.LearnedRoute = dmn.Positions(result.BestRoute)
	solution.LearnedRouteLen = len(solution.LearnedRoute)
	solution.DeviationFromOptimal = dmn.Deviation(route, result.BestRoute)
	solution.FinalMeanReward = finalMeanReward(result.Rewards, s.showEvery)

	s.logger.Info(fmt.Sprintf("maze %s: solved at episode %d, best reward %d, deviation %d, mean reward %.2f",
		p.Name, solution.EpisodesToSolve, solution.BestReward, solution.DeviationFromOptimal, solution.FinalMeanReward))
	return solution, nil
}

// finalMeanReward is the last point of the reward moving average. The window shrinks to the
// number of episodes played when fewer were run.
func finalMeanReward(rewards []int, window int) float64 {
	if len(rewards) == 0 {
		return 0
	}
	if window <= 0 || window > len(rewards) {
		window = len(rewards)
	}

	curve := qlearning.MovingAverage(rewards, window)
	return curve[len(curve)-1]
}
