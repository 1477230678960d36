package maze

// Cell codes used by the grid encoding.
const (
	Open   = 0 // Open marks a free cell.
	Wall   = 1 // Wall marks a blocked cell.
	Start  = 2 // Start marks the single start cell.
	Finish = 3 // Finish marks the single finish cell.
)

// Position is a (row, col) coordinate in a Grid.
type Position struct {
	Row int `json:"row" bson:"row"` // Row index of the cell
	Col int `json:"col" bson:"col"` // Column index of the cell
}

// Add returns the position shifted by delta.
func (p Position) Add(delta Position) Position {
	return Position{Row: p.Row + delta.Row, Col: p.Col + delta.Col}
}

// Manhattan returns the Manhattan distance between two positions.
func (p Position) Manhattan(o Position) int {
	return abs(p.Row-o.Row) + abs(p.Col-o.Col)
}

// Adjacent reports whether o is one of the four orthogonal neighbors of p.
func (p Position) Adjacent(o Position) bool {
	return p.Manhattan(o) == 1
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
