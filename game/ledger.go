package game

import "sort"

// Ledger is the append-only, strictly ordered sequence of drawn numbers for
// one session. It is the single source of truth; ticket marks are derived
// from it. Not safe for concurrent use on its own, the engine serializes
// access.
type Ledger struct {
	numbers []int
	drawn   [MaxNumber + 1]bool
}

func NewLedger() *Ledger {
	return &Ledger{}
}

// Append records n. It fails with ErrInvalidNumber outside 1..75 and
// ErrAlreadyDrawn on a duplicate; the ledger is unchanged on failure.
func (l *Ledger) Append(n int) error {
	if n < 1 || n > MaxNumber {
		return ErrInvalidNumber
	}
	if l.drawn[n] {
		return ErrAlreadyDrawn
	}
	l.numbers = append(l.numbers, n)
	l.drawn[n] = true
	return nil
}

// Contains reports whether n has been drawn.
func (l *Ledger) Contains(n int) bool {
	return n >= 1 && n <= MaxNumber && l.drawn[n]
}

// Numbers returns a copy of the drawn sequence in draw order.
func (l *Ledger) Numbers() []int {
	out := make([]int, len(l.numbers))
	copy(out, l.numbers)
	return out
}

// Last returns the most recently drawn number, ok false when empty.
func (l *Ledger) Last() (int, bool) {
	if len(l.numbers) == 0 {
		return 0, false
	}
	return l.numbers[len(l.numbers)-1], true
}

// LastFive returns up to the five most recent numbers, newest first.
func (l *Ledger) LastFive() []int {
	n := len(l.numbers)
	count := 5
	if n < count {
		count = n
	}
	out := make([]int, 0, count)
	for i := n - 1; i >= n-count; i-- {
		out = append(out, l.numbers[i])
	}
	return out
}

func (l *Ledger) Len() int {
	return len(l.numbers)
}

// Remaining returns the undrawn pool in ascending order.
func (l *Ledger) Remaining() []int {
	out := make([]int, 0, MaxNumber-len(l.numbers))
	for n := 1; n <= MaxNumber; n++ {
		if !l.drawn[n] {
			out = append(out, n)
		}
	}
	return out
}

// Organized buckets the drawn numbers per column letter, ascending, the way
// display boards group them.
func (l *Ledger) Organized() map[string][]int {
	out := make(map[string][]int, GridSize)
	for col, letter := range Columns {
		lo, hi := ColumnBand(col)
		bucket := []int{}
		for _, n := range l.numbers {
			if n >= lo && n <= hi {
				bucket = append(bucket, n)
			}
		}
		sort.Ints(bucket)
		out[letter] = bucket
	}
	return out
}

// Reset clears the ledger.
func (l *Ledger) Reset() {
	l.numbers = nil
	l.drawn = [MaxNumber + 1]bool{}
}
