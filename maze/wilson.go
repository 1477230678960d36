package maze

import (
	"fmt"
	"math/rand"
)

const (
	maxMazeDimenssion = 50
)

// room is one cell of the carved maze before it is laid out as a Grid.
type room struct {
	southWall bool
	eastWall  bool
}

// Directions lists the four orthogonal steps: north, south, east, west. The slice order keeps
// generation deterministic for a given random source.
var Directions = []Position{
	{Row: -1, Col: 0},
	{Row: 1, Col: 0},
	{Row: 0, Col: 1},
	{Row: 0, Col: -1},
}

// wilson carves a perfect maze of width x height rooms.
type wilson struct {
	width  int
	height int
	rooms  [][]room
	rng    *rand.Rand
}

// Generate builds a perfect maze of width x height rooms with Wilson's algorithm and lays it out
// as a (2*height-1) x (2*width-1) Grid: rooms sit on even coordinates, passages between them on
// odd ones. The start is the top-left room and the finish the bottom-right room.
func Generate(width, height int, rng *rand.Rand) (*Grid, error) {
	if min(width, height) <= 1 || max(width, height) > maxMazeDimenssion {
		return nil, fmt.Errorf("%w: dimensions %dx%d out of range", ErrInvalidMaze, width, height)
	}

	rooms := make([][]room, height)
	for i := range rooms {
		rooms[i] = make([]room, width)
		for j := range rooms[i] {
			rooms[i][j] = room{southWall: true, eastWall: true}
		}
	}

	w := &wilson{width: width, height: height, rooms: rooms, rng: rng}
	w.generate()
	return New(w.cells())
}

func (w *wilson) inBound(p Position) bool {
	return p.Row >= 0 && p.Row < w.height && p.Col >= 0 && p.Col < w.width
}

// randomUnvisited selects a random room that is not part of the maze yet.
func (w *wilson) randomUnvisited(visited map[Position]struct{}) Position {
	for {
		pos := Position{Row: w.rng.Intn(w.height), Col: w.rng.Intn(w.width)}
		if _, included := visited[pos]; !included {
			return pos
		}
	}
}

// neighbors lists the in-bound rooms around pos.
func (w *wilson) neighbors(pos Position) []Position {
	result := make([]Position, 0, len(Directions))
	for _, delta := range Directions {
		if next := pos.Add(delta); w.inBound(next) {
			result = append(result, next)
		}
	}
	return result
}

// openWall removes the wall between two adjacent rooms.
func (w *wilson) openWall(from, to Position) {
	switch {
	case to.Row == from.Row+1:
		w.rooms[from.Row][from.Col].southWall = false
	case to.Row == from.Row-1:
		w.rooms[to.Row][to.Col].southWall = false
	case to.Col == from.Col+1:
		w.rooms[from.Row][from.Col].eastWall = false
	case to.Col == from.Col-1:
		w.rooms[to.Row][to.Col].eastWall = false
	}
}

// randomWalk walks from an unvisited room until it hits the maze. Only the last exit of every
// room is kept, which erases loops.
func (w *wilson) randomWalk(visited map[Position]struct{}) (Position, map[Position]Position) {
	start := w.randomUnvisited(visited)
	exits := make(map[Position]Position)
	cell := start

	for {
		neighbors := w.neighbors(cell)
		next := neighbors[w.rng.Intn(len(neighbors))]
		exits[cell] = next
		if _, included := visited[next]; included {
			break
		}
		cell = next
	}

	return start, exits
}

func (w *wilson) generate() {
	visited := make(map[Position]struct{})
	visited[Position{Row: w.rng.Intn(w.height), Col: w.rng.Intn(w.width)}] = struct{}{}

	for len(visited) < w.width*w.height {
		cell, exits := w.randomWalk(visited)
		for {
			if _, included := visited[cell]; included {
				break
			}
			next := exits[cell]
			w.openWall(cell, next)
			visited[cell] = struct{}{}
			cell = next
		}
	}
}

// cells lays the rooms out as grid codes.
func (w *wilson) cells() [][]int {
	rows, cols := 2*w.height-1, 2*w.width-1
	cells := make([][]int, rows)
	for r := range cells {
		cells[r] = make([]int, cols)
		for c := range cells[r] {
			cells[r][c] = Wall
		}
	}

	for r := 0; r < w.height; r++ {
		for c := 0; c < w.width; c++ {
			cells[2*r][2*c] = Open
			if !w.rooms[r][c].eastWall && c+1 < w.width {
				cells[2*r][2*c+1] = Open
			}
			if !w.rooms[r][c].southWall && r+1 < w.height {
				cells[2*r+1][2*c] = Open
			}
		}
	}

	cells[0][0] = Start
	cells[rows-1][cols-1] = Finish
	return cells
}
