package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarkedCellsFreeCellOnly(t *testing.T) {
	tk, err := NewTicket("t1", validGrid())
	require.NoError(t, err)

	marked := MarkedCells(tk, nil)
	assert.Len(t, marked, 1)
	assert.True(t, marked[Cell{Col: 2, Row: 2}], "free cell is always marked")
}

func TestMarkedCellsProjection(t *testing.T) {
	tk, err := NewTicket("t1", validGrid())
	require.NoError(t, err)

	marked := MarkedCells(tk, []int{1, 62, 40})
	assert.True(t, marked[Cell{Col: 0, Row: 0}])
	assert.True(t, marked[Cell{Col: 4, Row: 1}])
	assert.True(t, marked[Cell{Col: 2, Row: 2}])
	assert.Len(t, marked, 3, "40 is not on the ticket")
}

func TestMarkedCellsIsPure(t *testing.T) {
	tk, err := NewTicket("t1", validGrid())
	require.NoError(t, err)

	drawn := []int{5, 20, 35, 50}
	first := MarkedCells(tk, drawn)
	second := MarkedCells(tk, drawn)
	assert.Equal(t, first, second)

	// Re-deriving against an empty ledger, as after a reset, yields only the
	// free cell again.
	after := MarkedCells(tk, nil)
	assert.Len(t, after, 1)
}

func TestMarkedListOrder(t *testing.T) {
	tk, err := NewTicket("t1", validGrid())
	require.NoError(t, err)

	cells := MarkedList(tk, []int{1, 61})
	assert.Equal(t, []Cell{{Col: 0, Row: 0}, {Col: 4, Row: 0}, {Col: 2, Row: 2}}, cells)
}
