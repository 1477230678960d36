package qlearning

import "math/rand"

// Table holds one value per action for every point of a size x size board.
type Table struct {
	size   int
	values [][][actionCount]float64
}

// NewTable creates a table with every value drawn uniformly from [0, 1).
func NewTable(size int, rng *rand.Rand) *Table {
	values := make([][][actionCount]float64, size)
	for x := range values {
		values[x] = make([][actionCount]float64, size)
		for y := range values[x] {
			for a := range values[x][y] {
				values[x][y][a] = rng.Float64()
			}
		}
	}
	return &Table{size: size, values: values}
}

// Get returns Q(p, a).
func (t *Table) Get(p Point, a Action) float64 {
	return t.values[p.X][p.Y][a]
}

// Set overwrites Q(p, a).
func (t *Table) Set(p Point, a Action, v float64) {
	t.values[p.X][p.Y][a] = v
}

// Best returns the action with the highest value at p. Ties go to the lowest action index.
func (t *Table) Best(p Point) Action {
	row := t.values[p.X][p.Y]
	best := Action(0)
	for a := Action(1); a < actionCount; a++ {
		if row[a] > row[best] {
			best = a
		}
	}
	return best
}

// Max returns the highest action value at p.
func (t *Table) Max(p Point) float64 {
	return t.Get(p, t.Best(p))
}
