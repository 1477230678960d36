// Package astar finds a route between the start and finish of a maze.Grid.
//
// The default heuristic measures the Manhattan distance from a candidate cell back to the start
// rather than forward to the finish. Routes are always valid, but the search behaves more like a
// uniform-cost expansion than textbook A*. Use WithHeuristic(DistanceToFinish) for the
// conventional goal-directed form.
package astar

import "github.com/beka-birhanu/vinom-pathfinder/maze"

// moves are the four allowed steps, in expansion order.
var moves = []maze.Position{
	{Row: 0, Col: -1},
	{Row: 0, Col: 1},
	{Row: -1, Col: 0},
	{Row: 1, Col: 0},
}

// Heuristic estimates a cost for pos given the search endpoints.
type Heuristic func(pos, start, finish maze.Position) int

// DistanceFromStart is the Manhattan distance from pos to the start.
func DistanceFromStart(pos, start, _ maze.Position) int {
	return pos.Manhattan(start)
}

// DistanceToFinish is the Manhattan distance from pos to the finish.
func DistanceToFinish(pos, _, finish maze.Position) int {
	return pos.Manhattan(finish)
}

// Option configures a Finder.
type Option func(*Finder)

// WithHeuristic replaces the default heuristic.
func WithHeuristic(h Heuristic) Option {
	return func(f *Finder) {
		f.heuristic = h
	}
}

// Finder runs the search. A Finder holds no per-search state and can be reused.
type Finder struct {
	heuristic Heuristic
}

// New creates a Finder using DistanceFromStart unless overridden.
func New(opts ...Option) *Finder {
	f := &Finder{heuristic: DistanceFromStart}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Search returns the route from m.Start() to m.Finish(). found is false when the finish is
// unreachable; that is a normal outcome, not an error.
func (f *Finder) Search(m *maze.Grid) (route []maze.Position, found bool) {
	return f.Path(m, m.Start(), m.Finish())
}

// Path returns a route between two arbitrary positions of m.
func (f *Finder) Path(m *maze.Grid, from, to maze.Position) ([]maze.Position, bool) {
	if !m.IsTraversable(from.Row, from.Col) || !m.IsTraversable(to.Row, to.Col) {
		return nil, false
	}

	nodes := &arena{}
	root := nodes.add(node{pos: from, parent: noParent})
	if from == to {
		return nodes.path(root), true
	}

	open := []int{root}
	closed := make(map[maze.Position]struct{})

	for len(open) > 0 {
		// stable minimum: the earliest inserted node wins ties
		best := 0
		for i := 1; i < len(open); i++ {
			if nodes.get(open[i]).f < nodes.get(open[best]).f {
				best = i
			}
		}
		currentID := open[best]
		open = append(open[:best], open[best+1:]...)
		current := *nodes.get(currentID)
		closed[current.pos] = struct{}{}

		for _, delta := range moves {
			pos := current.pos.Add(delta)
			if !m.IsTraversable(pos.Row, pos.Col) {
				continue
			}
			if pos == to {
				return nodes.path(nodes.add(node{pos: pos, parent: currentID})), true
			}
			if _, seen := closed[pos]; seen {
				continue
			}

			child := node{pos: pos, g: current.g + 1, parent: currentID}
			child.h = f.heuristic(pos, from, to)
			child.f = child.g + child.h

			if dominated(nodes, open, child) {
				continue
			}
			open = append(open, nodes.add(child))
		}
	}

	return nil, false
}

// dominated reports whether open already holds a node at child's position whose f is not
// greater than child's.
func dominated(nodes *arena, open []int, child node) bool {
	for _, id := range open {
		n := nodes.get(id)
		if n.pos == child.pos && n.f <= child.f {
			return true
		}
	}
	return false
}
