package game

import (
	"math/rand"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticResolver map[string]Owner

func (r staticResolver) ResolveOwner(ticketID string) (Owner, bool) {
	o, ok := r[ticketID]
	return o, ok
}

func newTestEngine(t *testing.T, cfg Config) *Engine {
	t.Helper()
	if cfg.Rand == nil {
		cfg.Rand = rand.New(rand.NewSource(1))
	}
	return NewEngine("test", cfg, nil, nil, nil)
}

func TestDrawRandomExhaustsPool(t *testing.T) {
	eng := newTestEngine(t, Config{})

	seen := make(map[int]bool)
	for i := 0; i < MaxNumber; i++ {
		n, evt, err := eng.DrawRandom()
		require.NoError(t, err)
		require.False(t, seen[n], "number %d drawn twice", n)
		seen[n] = true
		assert.Len(t, evt.Session.DrawnNumbers, i+1, "ledger grows by exactly one per draw")
		require.NotNil(t, evt.Session.LastNumber)
		assert.Equal(t, n, *evt.Session.LastNumber)
	}

	_, _, err := eng.DrawRandom()
	assert.ErrorIs(t, err, ErrExhausted)
}

func TestMarkNumberValidation(t *testing.T) {
	eng := newTestEngine(t, Config{})

	_, err := eng.MarkNumber(0)
	assert.ErrorIs(t, err, ErrInvalidNumber)
	_, err = eng.MarkNumber(76)
	assert.ErrorIs(t, err, ErrInvalidNumber)

	_, err = eng.MarkNumber(33)
	require.NoError(t, err)
	_, err = eng.MarkNumber(33)
	assert.ErrorIs(t, err, ErrAlreadyDrawn)

	snap := eng.Snapshot()
	assert.Equal(t, []int{33}, snap.DrawnNumbers, "failed calls leave no partial mutation")
}

func TestConcurrentMarkSameNumber(t *testing.T) {
	eng := newTestEngine(t, Config{})

	const callers = 16
	var wg sync.WaitGroup
	errs := make(chan error, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := eng.MarkNumber(42)
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	var ok, dup int
	for err := range errs {
		switch {
		case err == nil:
			ok++
		default:
			require.ErrorIs(t, err, ErrAlreadyDrawn)
			dup++
		}
	}
	assert.Equal(t, 1, ok, "exactly one caller wins the race")
	assert.Equal(t, callers-1, dup)
	assert.Equal(t, []int{42}, eng.Snapshot().DrawnNumbers)
}

func TestConcurrentDrawsStayUnique(t *testing.T) {
	eng := newTestEngine(t, Config{})

	const callers = 15
	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 5; j++ {
				_, _, err := eng.DrawRandom()
				assert.NoError(t, err)
			}
		}()
	}
	wg.Wait()

	drawn := eng.Snapshot().DrawnNumbers
	require.Len(t, drawn, callers*5)
	seen := make(map[int]bool)
	for _, n := range drawn {
		require.False(t, seen[n])
		seen[n] = true
	}
}

func TestWinnerRegistrationFullCard(t *testing.T) {
	tk, err := NewTicket("t1", validGrid())
	require.NoError(t, err)

	resolver := staticResolver{"t1": {Name: "Ana", Contact: "5511999990000"}}
	eng := NewEngine("test", Config{Rule: RuleFullCard, Rand: rand.New(rand.NewSource(1))}, resolver, nil, nil)
	require.NoError(t, eng.AddTicket(tk))
	eng.SetPrize("TV 50\"")

	nums := tk.Numbers()
	for i, n := range nums {
		evt, err := eng.MarkNumber(n)
		require.NoError(t, err)
		if i < len(nums)-1 {
			assert.Empty(t, evt.NewWinners)
		} else {
			require.Len(t, evt.NewWinners, 1)
			rec := evt.NewWinners[0]
			assert.Equal(t, "t1", rec.TicketID)
			assert.Equal(t, "Ana", rec.OwnerName)
			assert.Equal(t, "5511999990000", rec.OwnerContact)
			assert.Equal(t, "TV 50\"", rec.Prize)
			assert.True(t, rec.Current)
		}
	}

	// Prize changes after the win do not rewrite the record.
	eng.SetPrize("Bicycle")
	winners := eng.Winners()
	require.Len(t, winners, 1)
	assert.Equal(t, "TV 50\"", winners[0].Prize)
}

func TestWinnerRegistrationIsIdempotent(t *testing.T) {
	tk, err := NewTicket("t1", validGrid())
	require.NoError(t, err)

	eng := newTestEngine(t, Config{Rule: RuleFullCard})
	require.NoError(t, eng.AddTicket(tk))

	for _, n := range tk.Numbers() {
		_, err := eng.MarkNumber(n)
		require.NoError(t, err)
	}
	require.Len(t, eng.Winners(), 1)

	// Further draws leave the won ticket's record untouched.
	for _, n := range []int{6, 7, 8} {
		evt, err := eng.MarkNumber(n)
		require.NoError(t, err)
		assert.Empty(t, evt.NewWinners)
	}
	assert.Len(t, eng.Winners(), 1)
}

func TestSinglePrizeMode(t *testing.T) {
	// Two tickets share all numbers except their top-left cell, so drawing
	// both cells last completes them on the same draw.
	gridA := validGrid()
	gridB := validGrid()
	gridB[0][0] = 6
	ta, err := NewTicket("a", gridA)
	require.NoError(t, err)
	tb, err := NewTicket("b", gridB)
	require.NoError(t, err)

	eng := newTestEngine(t, Config{Rule: RuleFullCard, SinglePrize: true})
	require.NoError(t, eng.AddTicket(ta))
	require.NoError(t, eng.AddTicket(tb))

	shared := ta.Numbers()[1:] // everything but gridA[0][0] = 1
	for _, n := range shared {
		_, err := eng.MarkNumber(n)
		require.NoError(t, err)
	}
	_, err = eng.MarkNumber(6) // completes b only
	require.NoError(t, err)
	evt, err := eng.MarkNumber(1) // completes a; b already won
	require.NoError(t, err)

	assert.Empty(t, evt.NewWinners, "single-prize mode suppresses the second winner")
	winners := eng.Winners()
	require.Len(t, winners, 1)
	assert.Equal(t, "b", winners[0].TicketID)

	// The suppressed win is still detectable by the pure predicate.
	assert.True(t, IsWinner(ta, eng.Snapshot().DrawnNumbers, RuleFullCard))
}

func TestMultiWinnerSameDraw(t *testing.T) {
	gridA := validGrid()
	gridB := validGrid()
	gridB[0][0] = 6
	ta, _ := NewTicket("a", gridA)
	tb, _ := NewTicket("b", gridB)

	eng := newTestEngine(t, Config{Rule: RuleAnyLine})
	require.NoError(t, eng.AddTicket(ta))
	require.NoError(t, eng.AddTicket(tb))

	// Complete the shared middle row on both tickets at once.
	for _, n := range []int{3, 18, 48} {
		_, err := eng.MarkNumber(n)
		require.NoError(t, err)
	}
	evt, err := eng.MarkNumber(63)
	require.NoError(t, err)
	assert.Len(t, evt.NewWinners, 2, "multi-winner mode registers every qualifying ticket")
}

func TestResetKeepsOrClearsWinners(t *testing.T) {
	tk, _ := NewTicket("t1", validGrid())

	t.Run("keep as history", func(t *testing.T) {
		eng := newTestEngine(t, Config{Rule: RuleAnyLine})
		require.NoError(t, eng.AddTicket(tk))
		_, err := eng.MarkNumber(3)
		require.NoError(t, err)
		for _, n := range []int{18, 48, 63} {
			_, err := eng.MarkNumber(n)
			require.NoError(t, err)
		}
		require.Len(t, eng.Winners(), 1)

		evt := eng.Reset(false)
		assert.Empty(t, evt.Session.DrawnNumbers)
		assert.Nil(t, evt.Session.LastNumber)
		assert.Equal(t, StatusReset, evt.Session.Status)
		winners := eng.Winners()
		require.Len(t, winners, 1, "winner records survive as history")
		assert.False(t, winners[0].Current)
	})

	t.Run("clear", func(t *testing.T) {
		eng := newTestEngine(t, Config{Rule: RuleAnyLine})
		require.NoError(t, eng.AddTicket(tk))
		for _, n := range []int{3, 18, 48, 63} {
			_, err := eng.MarkNumber(n)
			require.NoError(t, err)
		}
		require.Len(t, eng.Winners(), 1)

		eng.Reset(true)
		assert.Empty(t, eng.Winners())
	})
}

// Replaying the same manual sequence after a reset reproduces the identical
// winner set.
func TestReplayRoundTrip(t *testing.T) {
	tk, _ := NewTicket("t1", validGrid())
	sequence := append([]int{40, 55}, tk.Numbers()...)

	run := func(eng *Engine) []string {
		var winners []string
		for _, n := range sequence {
			evt, err := eng.MarkNumber(n)
			require.NoError(t, err)
			for _, rec := range evt.NewWinners {
				winners = append(winners, rec.TicketID)
			}
		}
		return winners
	}

	eng := newTestEngine(t, Config{Rule: RuleFullCard})
	require.NoError(t, eng.AddTicket(tk))

	first := run(eng)
	eng.Reset(true)
	second := run(eng)
	assert.Equal(t, first, second)
}

func TestEventOrderMatchesSerialization(t *testing.T) {
	var mu sync.Mutex
	var lengths []int
	sink := func(evt SessionUpdated) {
		mu.Lock()
		lengths = append(lengths, len(evt.Session.DrawnNumbers))
		mu.Unlock()
	}

	eng := NewEngine("test", Config{Rand: rand.New(rand.NewSource(1))}, nil, sink, nil)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _, err := eng.DrawRandom()
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	require.Len(t, lengths, 10, "one event per successful mutation")
	for i, n := range lengths {
		assert.Equal(t, i+1, n, "events observe the ledger in serialization order")
	}
}

func TestTicketView(t *testing.T) {
	tk, _ := NewTicket("t1", validGrid())
	eng := newTestEngine(t, Config{Rule: RuleAnyLine})
	require.NoError(t, eng.AddTicket(tk))

	_, err := eng.MarkNumber(2)
	require.NoError(t, err)

	view, err := eng.TicketView("t1")
	require.NoError(t, err)
	assert.Equal(t, tk, view.Ticket)
	assert.Contains(t, view.Marked, Cell{Col: 0, Row: 1})
	assert.False(t, view.Winner)

	_, err = eng.TicketView("nope")
	assert.ErrorIs(t, err, ErrTicketNotFound)
}

func TestRestore(t *testing.T) {
	tk, _ := NewTicket("t1", validGrid())
	eng := newTestEngine(t, Config{Rule: RuleAnyLine})
	require.NoError(t, eng.AddTicket(tk))

	records := []WinnerRecord{{ID: "w1", SessionID: "test", TicketID: "t1", Current: true}}
	require.NoError(t, eng.Restore([]int{3, 18, 48, 63}, records, "Cake", "", StatusOpen))

	snap := eng.Snapshot()
	assert.Equal(t, []int{3, 18, 48, 63}, snap.DrawnNumbers)
	assert.Equal(t, "Cake", snap.CurrentPrize)
	require.Len(t, snap.Winners, 1)

	// The restored winner keeps its record; the next draw does not duplicate it.
	evt, err := eng.MarkNumber(10)
	require.NoError(t, err)
	assert.Empty(t, evt.NewWinners)
}
