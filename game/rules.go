package game

import "fmt"

// WinRule selects the predicate a ticket must satisfy to win. The rule is
// session configuration, not a hard-coded behavior.
type WinRule string

const (
	// RuleFullCard wins when every non-free cell is marked.
	RuleFullCard WinRule = "FULL_CARD"
	// RuleAnyLine wins on any complete row, column or diagonal.
	RuleAnyLine WinRule = "ANY_LINE"
)

// ParseWinRule maps a configuration string onto a WinRule.
func ParseWinRule(s string) (WinRule, error) {
	switch WinRule(s) {
	case RuleFullCard, RuleAnyLine:
		return WinRule(s), nil
	}
	return "", fmt.Errorf("unknown win rule %q", s)
}

// IsWinner evaluates the ticket against the current ledger under the given
// rule. The free cell always counts as marked and never blocks a win.
func IsWinner(t *Ticket, drawn []int, rule WinRule) bool {
	marked := MarkedCells(t, drawn)

	line := func(cells []Cell) bool {
		for _, c := range cells {
			if !marked[c] {
				return false
			}
		}
		return true
	}

	switch rule {
	case RuleAnyLine:
		for row := 0; row < GridSize; row++ {
			cells := make([]Cell, 0, GridSize)
			for col := 0; col < GridSize; col++ {
				cells = append(cells, Cell{Col: col, Row: row})
			}
			if line(cells) {
				return true
			}
		}
		for col := 0; col < GridSize; col++ {
			cells := make([]Cell, 0, GridSize)
			for row := 0; row < GridSize; row++ {
				cells = append(cells, Cell{Col: col, Row: row})
			}
			if line(cells) {
				return true
			}
		}
		diag1 := make([]Cell, 0, GridSize)
		diag2 := make([]Cell, 0, GridSize)
		for i := 0; i < GridSize; i++ {
			diag1 = append(diag1, Cell{Col: i, Row: i})
			diag2 = append(diag2, Cell{Col: GridSize - 1 - i, Row: i})
		}
		return line(diag1) || line(diag2)
	default: // RuleFullCard
		return len(marked) == GridSize*GridSize
	}
}
