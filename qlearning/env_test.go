package qlearning

import (
	"math/rand"
	"testing"

	"github.com/beka-birhanu/vinom-pathfinder/maze"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustGrid(t *testing.T, cells [][]int) *maze.Grid {
	t.Helper()
	m, err := maze.New(cells)
	require.NoError(t, err)
	return m
}

func TestStep(t *testing.T) {
	m := mustGrid(t, [][]int{
		{2, 0, 1},
		{0, 1, 0},
		{0, 0, 3},
	})
	env, err := NewEnvironment(m, DefaultRewardModel)
	require.NoError(t, err)

	cases := []struct {
		name   string
		from   Point
		action Action
		want   Point
		reward int
	}{
		{name: "Plain move down", from: Point{X: 0, Y: 0}, action: Down, want: Point{X: 1, Y: 0}, reward: -1},
		{name: "Plain move right", from: Point{X: 0, Y: 0}, action: Right, want: Point{X: 0, Y: 1}, reward: -1},
		{name: "Off the board rolls back", from: Point{X: 0, Y: 0}, action: Up, want: Point{X: 0, Y: 0}, reward: -300},
		{name: "Off the left edge rolls back", from: Point{X: 0, Y: 0}, action: Left, want: Point{X: 0, Y: 0}, reward: -300},
		{name: "Wall rolls back", from: Point{X: 0, Y: 1}, action: Right, want: Point{X: 0, Y: 1}, reward: -300},
		{name: "Finish", from: Point{X: 2, Y: 1}, action: Right, want: Point{X: 2, Y: 2}, reward: 25},
		{name: "Finish from above", from: Point{X: 1, Y: 2}, action: Down, want: Point{X: 2, Y: 2}, reward: 25},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, reward := env.Step(tc.from, tc.action)
			assert.Equal(t, tc.want, got)
			assert.Equal(t, tc.reward, reward)
		})
	}
}

func TestStepNonSquareBoard(t *testing.T) {
	// 2 x 4 grid: the board is 4 x 4, rows 2 and 3 exist only nominally
	m := mustGrid(t, [][]int{
		{2, 0, 0, 0},
		{0, 0, 0, 3},
	})
	env, err := NewEnvironment(m, DefaultRewardModel)
	require.NoError(t, err)
	assert.Equal(t, 4, env.Size())

	got, reward := env.Step(Point{X: 1, Y: 0}, Down)
	assert.Equal(t, Point{X: 1, Y: 0}, got)
	assert.Equal(t, -300, reward)
}

func TestRewardModelValidation(t *testing.T) {
	m := mustGrid(t, [][]int{{2, 3}})

	_, err := NewEnvironment(m, RewardModel{WallPenalty: -1, FinishReward: 25, MovePenalty: 1})
	assert.ErrorIs(t, err, ErrInvalidRewardModel)

	_, err = NewEnvironment(m, RewardModel{WallPenalty: 10, FinishReward: 0, MovePenalty: 0})
	assert.ErrorIs(t, err, ErrInvalidRewardModel)

	_, err = NewEnvironment(m, RewardModel{WallPenalty: 10, FinishReward: 5, MovePenalty: 2})
	assert.NoError(t, err)
}

func TestPointConversion(t *testing.T) {
	pos := maze.Position{Row: 3, Col: 7}
	p := PointAt(pos)
	assert.Equal(t, Point{X: 3, Y: 7}, p)
	assert.Equal(t, pos, p.Position())
}

func TestTable(t *testing.T) {
	table := NewTable(3, rand.New(rand.NewSource(1)))

	for x := 0; x < 3; x++ {
		for y := 0; y < 3; y++ {
			for a := Action(0); a < actionCount; a++ {
				v := table.Get(Point{X: x, Y: y}, a)
				assert.GreaterOrEqual(t, v, 0.0)
				assert.Less(t, v, 1.0)
			}
		}
	}

	p := Point{X: 1, Y: 1}
	for a := Action(0); a < actionCount; a++ {
		table.Set(p, a, 0.5)
	}
	assert.Equal(t, Down, table.Best(p), "ties go to the first action")

	table.Set(p, Right, 2)
	assert.Equal(t, Right, table.Best(p))
	assert.Equal(t, 2.0, table.Max(p))
}
