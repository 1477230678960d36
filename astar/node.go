package astar

import "github.com/beka-birhanu/vinom-pathfinder/maze"

const noParent = -1

// node is a search node. Nodes live in an arena and refer to their parent by index, so the
// parent links form a tree rooted at the start node.
type node struct {
	pos    maze.Position
	g      int
	h      int
	f      int
	parent int
}

// arena owns every node generated during one search.
type arena struct {
	nodes []node
}

func (a *arena) add(n node) int {
	a.nodes = append(a.nodes, n)
	return len(a.nodes) - 1
}

func (a *arena) get(id int) *node {
	return &a.nodes[id]
}

// path walks parent links back from id to the root and returns the positions root-first.
func (a *arena) path(id int) []maze.Position {
	var reversed []maze.Position
	for id != noParent {
		n := a.get(id)
		reversed = append(reversed, n.pos)
		id = n.parent
	}

	path := make([]maze.Position, len(reversed))
	for i, pos := range reversed {
		path[len(reversed)-1-i] = pos
	}
	return path
}
