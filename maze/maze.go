/*
Package maze provides the grid model shared by the search and learning algorithms.

A Grid is built once from a raw matrix of cell codes (0 open, 1 wall, 2 start, 3 finish) and is
read-only afterwards. The start and finish positions are derived during construction, which fails
with ErrInvalidMaze unless exactly one of each marker is present.

The package also generates perfect mazes with Wilson's algorithm (see Generate).
*/
package maze

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidMaze = errors.New("invalid maze")
)

// Grid is an immutable rectangular maze.
type Grid struct {
	cells  [][]int
	rows   int
	cols   int
	start  Position
	finish Position
}

// New validates the cells and builds a Grid. The input slice is copied.
func New(cells [][]int) (*Grid, error) {
	if len(cells) == 0 || len(cells[0]) == 0 {
		return nil, fmt.Errorf("%w: empty grid", ErrInvalidMaze)
	}

	rows, cols := len(cells), len(cells[0])
	grid := make([][]int, rows)
	for r, row := range cells {
		if len(row) != cols {
			return nil, fmt.Errorf("%w: row %d has %d cells, want %d", ErrInvalidMaze, r, len(row), cols)
		}
		grid[r] = append([]int(nil), row...)
	}

	m := &Grid{cells: grid, rows: rows, cols: cols}
	if err := m.searchEndpoints(); err != nil {
		return nil, err
	}
	return m, nil
}

// searchEndpoints scans the grid once for the start and finish markers.
func (m *Grid) searchEndpoints() error {
	starts, finishes := 0, 0
	for r := 0; r < m.rows; r++ {
		for c := 0; c < m.cols; c++ {
			switch m.cells[r][c] {
			case Start:
				m.start = Position{Row: r, Col: c}
				starts++
			case Finish:
				m.finish = Position{Row: r, Col: c}
				finishes++
			}
		}
	}

	if starts != 1 || finishes != 1 {
		return fmt.Errorf("%w: missing or duplicate endpoints", ErrInvalidMaze)
	}
	return nil
}

// Rows returns the number of rows.
func (m *Grid) Rows() int { return m.rows }

// Cols returns the number of columns.
func (m *Grid) Cols() int { return m.cols }

// Start returns the start position.
func (m *Grid) Start() Position { return m.start }

// Finish returns the finish position.
func (m *Grid) Finish() Position { return m.finish }

// InBound reports whether (row, col) lies inside the grid.
func (m *Grid) InBound(row, col int) bool {
	return row >= 0 && row < m.rows && col >= 0 && col < m.cols
}

// Code returns the cell code at (row, col); ok is false outside the grid.
func (m *Grid) Code(row, col int) (code int, ok bool) {
	if !m.InBound(row, col) {
		return 0, false
	}
	return m.cells[row][col], true
}

// IsTraversable reports whether (row, col) is inside the grid and not a wall.
func (m *Grid) IsTraversable(row, col int) bool {
	code, ok := m.Code(row, col)
	return ok && code != Wall
}

// Cells returns a copy of the raw cell codes.
func (m *Grid) Cells() [][]int {
	out := make([][]int, m.rows)
	for r := range m.cells {
		out[r] = append([]int(nil), m.cells[r]...)
	}
	return out
}

// String renders the grid with '#' for walls, 'S' and 'F' for the endpoints.
func (m *Grid) String() string {
	var b strings.Builder
	for _, row := range m.cells {
		for _, code := range row {
			switch code {
			case Wall:
				b.WriteByte('#')
			case Start:
				b.WriteByte('S')
			case Finish:
				b.WriteByte('F')
			default:
				b.WriteByte('.')
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}
