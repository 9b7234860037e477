package game

import (
	"fmt"
	"math/rand"
	"strconv"
)

const (
	// GridSize is the number of rows and columns on a card.
	GridSize = 5

	// FreeNumber is the sentinel value of the free cell.
	FreeNumber = 0

	// MaxNumber is the highest drawable number.
	MaxNumber = 75

	freeRow = 2
	freeCol = 2
)

// Columns are the traditional B-I-N-G-O column letters, indexed by column.
var Columns = [GridSize]string{"B", "I", "N", "G", "O"}

// Ticket is an immutable 5x5 bingo card. Grid is indexed [row][col]; the
// center cell holds FreeNumber. Marked state is never stored on the ticket,
// it is derived from the session ledger (see MarkedCells).
type Ticket struct {
	ID   string                  `json:"id"`
	Grid [GridSize][GridSize]int `json:"grid"`
}

// ColumnBand returns the inclusive number range allowed in a column
// (B: 1-15, I: 16-30, N: 31-45, G: 46-60, O: 61-75).
func ColumnBand(col int) (lo, hi int) {
	return col*15 + 1, col*15 + 15
}

// NewTicket validates the grid invariants and returns the ticket: exactly one
// free cell at the center, all other values unique and inside their column band.
func NewTicket(id string, grid [GridSize][GridSize]int) (*Ticket, error) {
	seen := make(map[int]bool, GridSize*GridSize)
	for row := 0; row < GridSize; row++ {
		for col := 0; col < GridSize; col++ {
			v := grid[row][col]
			if row == freeRow && col == freeCol {
				if v != FreeNumber {
					return nil, fmt.Errorf("%w: center cell must be free", ErrInvalidGrid)
				}
				continue
			}
			lo, hi := ColumnBand(col)
			if v < lo || v > hi {
				return nil, fmt.Errorf("%w: %d out of band %d-%d for column %s", ErrInvalidGrid, v, lo, hi, Columns[col])
			}
			if seen[v] {
				return nil, fmt.Errorf("%w: duplicate value %d", ErrInvalidGrid, v)
			}
			seen[v] = true
		}
	}
	return &Ticket{ID: id, Grid: grid}, nil
}

// GenerateTicket builds a random valid ticket: five picks per column band,
// center cell free.
func GenerateTicket(id string, rng *rand.Rand) *Ticket {
	var grid [GridSize][GridSize]int
	for col := 0; col < GridSize; col++ {
		lo, hi := ColumnBand(col)
		band := make([]int, 0, hi-lo+1)
		for n := lo; n <= hi; n++ {
			band = append(band, n)
		}
		rng.Shuffle(len(band), func(i, j int) { band[i], band[j] = band[j], band[i] })
		for row := 0; row < GridSize; row++ {
			grid[row][col] = band[row]
		}
	}
	grid[freeRow][freeCol] = FreeNumber
	return &Ticket{ID: id, Grid: grid}
}

// GenerateDeck produces count tickets with IDs "1".."count".
func GenerateDeck(count int, rng *rand.Rand) []*Ticket {
	deck := make([]*Ticket, 0, count)
	for i := 1; i <= count; i++ {
		deck = append(deck, GenerateTicket(strconv.Itoa(i), rng))
	}
	return deck
}

// Numbers returns the 24 non-free values in row-major order.
func (t *Ticket) Numbers() []int {
	nums := make([]int, 0, GridSize*GridSize-1)
	for row := 0; row < GridSize; row++ {
		for col := 0; col < GridSize; col++ {
			if row == freeRow && col == freeCol {
				continue
			}
			nums = append(nums, t.Grid[row][col])
		}
	}
	return nums
}

// Contains reports whether n appears on the ticket.
func (t *Ticket) Contains(n int) bool {
	for row := 0; row < GridSize; row++ {
		for col := 0; col < GridSize; col++ {
			if t.Grid[row][col] == n {
				return row != freeRow || col != freeCol
			}
		}
	}
	return false
}
