package game

// Cell addresses one position on a ticket grid.
type Cell struct {
	Col int `json:"col"`
	Row int `json:"row"`
}

// MarkedCells projects the drawn-number ledger onto a ticket. A cell is marked
// iff it is the free cell or its value has been drawn. Pure function of its
// inputs; the authoritative model never stores marks.
func MarkedCells(t *Ticket, drawn []int) map[Cell]bool {
	drawnSet := make(map[int]bool, len(drawn))
	for _, n := range drawn {
		drawnSet[n] = true
	}
	marked := make(map[Cell]bool)
	for row := 0; row < GridSize; row++ {
		for col := 0; col < GridSize; col++ {
			if (row == freeRow && col == freeCol) || drawnSet[t.Grid[row][col]] {
				marked[Cell{Col: col, Row: row}] = true
			}
		}
	}
	return marked
}

// MarkedList returns the marked cells as a slice ordered row-major, the shape
// handlers send to clients.
func MarkedList(t *Ticket, drawn []int) []Cell {
	marked := MarkedCells(t, drawn)
	cells := make([]Cell, 0, len(marked))
	for row := 0; row < GridSize; row++ {
		for col := 0; col < GridSize; col++ {
			if marked[Cell{Col: col, Row: row}] {
				cells = append(cells, Cell{Col: col, Row: row})
			}
		}
	}
	return cells
}
