package game

// Snapshot is an immutable view of a session's state, safe to share across
// goroutines once built.
type Snapshot struct {
	SessionID    string           `json:"session_id"`
	Status       Status           `json:"status"`
	DrawnNumbers []int            `json:"drawn_numbers"`
	LastNumber   *int             `json:"last_number"`
	LastFive     []int            `json:"last_five"`
	Organized    map[string][]int `json:"organized"`
	CurrentPrize string           `json:"current_prize"`
	StartMessage string           `json:"start_message"`
	Winners      []WinnerRecord   `json:"winners"`
}

// SessionUpdated is emitted once per successful mutating operation, in the
// order the operations were serialized.
type SessionUpdated struct {
	Session    Snapshot       `json:"session"`
	NewWinners []WinnerRecord `json:"new_winners"`
}

// EventSink receives SessionUpdated events. Implementations must not block;
// fan-out to slow consumers is the broadcaster's problem, not the engine's.
type EventSink func(SessionUpdated)
