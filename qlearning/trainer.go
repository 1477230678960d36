// Package qlearning trains a tabular Q-learning agent to walk from the start to the finish of a
// maze.Grid.
//
// Training runs in two phases. The solve phase plays episodes until one reaches the finish or the
// episode budget runs out. The optimization phase then plays further tracked episodes and keeps
// the one with the highest total reward as the learned route.
package qlearning

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/beka-birhanu/vinom-pathfinder/maze"
	"gonum.org/v1/gonum/stat"
)

const (
	defaultLearningRate      = 0.1
	defaultDiscount          = 0.95
	defaultEpsilon           = 1.0
	defaultEpsDecay          = 0.9998
	defaultEpisodes          = 10000
	defaultOptimizationCoeff = 7
	defaultShowEvery         = 500
)

var (
	ErrTrainingBudgetExhausted = errors.New("training budget exhausted")
)

// Logger receives training progress.
type Logger interface {
	Info(string)
}

// Options configures a Trainer. Zero or negative numbers select the defaults, so a fully greedy
// policy (epsilon 0) or a myopic one (discount 0) is not expressible; use a small positive value
// such as 1e-9 instead.
type Options struct {
	LearningRate      float64     // Alpha, in (0, 1]
	Discount          float64     // Gamma, in (0, 1]
	Epsilon           float64     // Initial exploration rate, in (0, 1]
	EpsDecay          float64     // Multiplier applied to epsilon after every episode
	Episodes          int         // Solve phase budget
	OptimizationCoeff int         // Optimization runs (coeff-1) x first success episode further episodes
	ShowEvery         int         // Progress log interval in episodes
	Rewards           RewardModel // Reward shaping; DefaultRewardModel when zero
	Rand              *rand.Rand  // Random source for the table and the policy
	Logger            Logger      // Optional progress logger
}

// Episode is the outcome of one episode.
type Episode struct {
	TotalReward   int
	Visited       []Point // Points after every step, in order; only filled for tracked episodes
	ReachedFinish bool
}

// Result is the outcome of a completed training run.
type Result struct {
	FirstSuccessEpisode int     // Episode that first reached the finish
	BestReward          int     // Total reward of the best tracked episode
	BestRoute           []Point // Points visited in the best tracked episode
	Episodes            int     // Episodes played in both phases
	Epsilon             float64 // Exploration rate after the last episode
	Rewards             []int   // Total reward of every episode
}

// Trainer owns the table and the exploration state of one training run. It is not safe for
// concurrent use.
type Trainer struct {
	env     *Environment
	table   *Table
	rng     *rand.Rand
	opts    Options
	epsilon float64
	rewards []int
}

// NewTrainer prepares a Trainer for m.
func NewTrainer(m *maze.Grid, opts Options) (*Trainer, error) {
	if opts.LearningRate <= 0 {
		opts.LearningRate = defaultLearningRate
	}
	if opts.Discount <= 0 {
		opts.Discount = defaultDiscount
	}
	if opts.Epsilon <= 0 {
		opts.Epsilon = defaultEpsilon
	}
	if opts.EpsDecay <= 0 {
		opts.EpsDecay = defaultEpsDecay
	}
	if opts.Episodes <= 0 {
		opts.Episodes = defaultEpisodes
	}
	if opts.OptimizationCoeff <= 1 {
		opts.OptimizationCoeff = defaultOptimizationCoeff
	}
	if opts.ShowEvery <= 0 {
		opts.ShowEvery = defaultShowEvery
	}
	if opts.Rewards == (RewardModel{}) {
		opts.Rewards = DefaultRewardModel
	}
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	env, err := NewEnvironment(m, opts.Rewards)
	if err != nil {
		return nil, err
	}

	return &Trainer{
		env:     env,
		table:   NewTable(env.Size(), opts.Rand),
		rng:     opts.Rand,
		opts:    opts,
		epsilon: opts.Epsilon,
	}, nil
}

// Epsilon returns the current exploration rate.
func (t *Trainer) Epsilon() float64 {
	return t.epsilon
}

// Table exposes the action values learned so far.
func (t *Trainer) Table() *Table {
	return t.table
}

// Train runs the solve phase and, once an episode reaches the finish, the optimization phase.
// When the solve budget runs out it returns ErrTrainingBudgetExhausted together with the partial
// result.
func (t *Trainer) Train() (*Result, error) {
	episode := 0
	solved := false
	for !solved && episode < t.opts.Episodes {
		episode++
		solved = t.RunEpisode(false).ReachedFinish
		t.logProgress(episode)
	}

	result := &Result{}
	if !solved {
		t.fill(result, episode)
		return result, fmt.Errorf("%w: no success in %d episodes", ErrTrainingBudgetExhausted, episode)
	}

	result.FirstSuccessEpisode = episode
	var best *Episode
	extra := (t.opts.OptimizationCoeff - 1) * episode
	for i := 0; i < extra; i++ {
		episode++
		ep := t.RunEpisode(true)
		if best == nil || ep.TotalReward > best.TotalReward {
			best = &ep
		}
		t.logProgress(episode)
	}

	result.BestReward = best.TotalReward
	result.BestRoute = best.Visited
	t.fill(result, episode)
	return result, nil
}

func (t *Trainer) fill(result *Result, episodes int) {
	result.Episodes = episodes
	result.Epsilon = t.epsilon
	result.Rewards = append([]int(nil), t.rewards...)
}

// RunEpisode plays one episode from the start, updating the table after every step, and decays
// epsilon once at the end. With track set the visited points are recorded.
func (t *Trainer) RunEpisode(track bool) Episode {
	var ep Episode
	obs := t.env.Start()
	steps := t.env.Size() * t.env.Size()

	for i := 0; i < steps; i++ {
		action := t.chooseAction(obs)
		next, reward := t.env.Step(obs, action)
		if track {
			ep.Visited = append(ep.Visited, next)
		}

		t.update(obs, action, reward, next)
		ep.TotalReward += reward
		obs = next

		if reward == t.opts.Rewards.FinishReward {
			ep.ReachedFinish = true
			break
		}
	}

	t.epsilon *= t.opts.EpsDecay
	t.rewards = append(t.rewards, ep.TotalReward)
	return ep
}

// chooseAction is epsilon-greedy: exploit when a uniform draw exceeds epsilon.
func (t *Trainer) chooseAction(obs Point) Action {
	if t.rng.Float64() > t.epsilon {
		return t.table.Best(obs)
	}
	return Action(t.rng.Intn(actionCount))
}

// update writes the new value of Q(obs, action). Reaching the finish sets the value to the
// finish reward outright.
func (t *Trainer) update(obs Point, action Action, reward int, next Point) {
	if reward == t.opts.Rewards.FinishReward {
		t.table.Set(obs, action, float64(t.opts.Rewards.FinishReward))
		return
	}

	alpha, gamma := t.opts.LearningRate, t.opts.Discount
	current := t.table.Get(obs, action)
	target := float64(reward) + gamma*t.table.Max(next)
	t.table.Set(obs, action, (1-alpha)*current+alpha*target)
}

func (t *Trainer) logProgress(episode int) {
	if t.opts.Logger == nil || episode%t.opts.ShowEvery != 0 {
		return
	}

	window := t.rewards[max(0, len(t.rewards)-t.opts.ShowEvery):]
	t.opts.Logger.Info(fmt.Sprintf("episode #%d: epsilon=%.4f, %d episodes mean reward=%.2f",
		episode, t.epsilon, len(window), stat.Mean(toFloats(window), nil)))
}
