package maze

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Run("Valid grid derives endpoints", func(t *testing.T) {
		m, err := New([][]int{
			{2, 0, 1},
			{1, 0, 3},
		})
		require.NoError(t, err)

		assert.Equal(t, Position{Row: 0, Col: 0}, m.Start())
		assert.Equal(t, Position{Row: 1, Col: 2}, m.Finish())
		assert.Equal(t, 2, m.Rows())
		assert.Equal(t, 3, m.Cols())
	})

	invalid := map[string][][]int{
		"no start":         {{0, 3}, {0, 0}},
		"no finish":        {{2, 0}, {0, 0}},
		"duplicate start":  {{2, 2}, {0, 3}},
		"duplicate finish": {{2, 3}, {3, 0}},
		"no markers":       {{0, 0}, {0, 0}},
		"empty":            {},
		"ragged":           {{2, 0}, {3}},
	}
	for name, cells := range invalid {
		t.Run("Reject "+name, func(t *testing.T) {
			_, err := New(cells)
			assert.ErrorIs(t, err, ErrInvalidMaze)
		})
	}

	t.Run("Input is copied", func(t *testing.T) {
		cells := [][]int{{2, 0}, {0, 3}}
		m, err := New(cells)
		require.NoError(t, err)

		cells[0][1] = Wall
		assert.True(t, m.IsTraversable(0, 1))
	})
}

func TestIsTraversable(t *testing.T) {
	m, err := New([][]int{
		{2, 1},
		{0, 3},
	})
	require.NoError(t, err)

	assert.True(t, m.IsTraversable(0, 0))
	assert.False(t, m.IsTraversable(0, 1))
	assert.True(t, m.IsTraversable(1, 1))
	assert.False(t, m.IsTraversable(-1, 0))
	assert.False(t, m.IsTraversable(0, 2))
	assert.False(t, m.IsTraversable(2, 0))
}

func TestString(t *testing.T) {
	m, err := New([][]int{{2, 1}, {0, 3}})
	require.NoError(t, err)
	assert.Equal(t, "S#\n.F\n", m.String())
}

func TestGenerate(t *testing.T) {
	t.Run("Layout and endpoints", func(t *testing.T) {
		m, err := Generate(6, 4, rand.New(rand.NewSource(1)))
		require.NoError(t, err)

		assert.Equal(t, 7, m.Rows())
		assert.Equal(t, 11, m.Cols())
		assert.Equal(t, Position{Row: 0, Col: 0}, m.Start())
		assert.Equal(t, Position{Row: 6, Col: 10}, m.Finish())

		// odd/odd cells are pillars and always walls
		for r := 1; r < m.Rows(); r += 2 {
			for c := 1; c < m.Cols(); c += 2 {
				assert.False(t, m.IsTraversable(r, c))
			}
		}
	})

	t.Run("Perfect maze has rooms-1 passages", func(t *testing.T) {
		const width, height = 8, 5
		m, err := Generate(width, height, rand.New(rand.NewSource(7)))
		require.NoError(t, err)

		open := 0
		for r := 0; r < m.Rows(); r++ {
			for c := 0; c < m.Cols(); c++ {
				if m.IsTraversable(r, c) {
					open++
				}
			}
		}
		rooms := width * height
		assert.Equal(t, rooms+rooms-1, open)
	})

	t.Run("Same seed same maze", func(t *testing.T) {
		a, err := Generate(5, 5, rand.New(rand.NewSource(42)))
		require.NoError(t, err)
		b, err := Generate(5, 5, rand.New(rand.NewSource(42)))
		require.NoError(t, err)
		assert.Equal(t, a.Cells(), b.Cells())
	})

	t.Run("Reject bad dimensions", func(t *testing.T) {
		_, err := Generate(1, 5, rand.New(rand.NewSource(1)))
		assert.ErrorIs(t, err, ErrInvalidMaze)
		_, err = Generate(5, maxMazeDimenssion+1, rand.New(rand.NewSource(1)))
		assert.ErrorIs(t, err, ErrInvalidMaze)
	})
}
