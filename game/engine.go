package game

import (
	"math/rand"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Status of a session's ledger lifecycle.
type Status string

const (
	StatusOpen  Status = "OPEN"
	StatusReset Status = "RESET"
)

// Config is per-session policy, fixed at engine construction.
type Config struct {
	Rule         WinRule
	SinglePrize  bool
	StartMessage string
	// Rand drives auto-draws; nil gets a time-seeded source. Tests inject a
	// fixed seed for reproducible draws.
	Rand *rand.Rand
}

// TicketView is a ticket plus its derived marks, the read model handed to
// clients.
type TicketView struct {
	Ticket *Ticket `json:"ticket"`
	Marked []Cell  `json:"marked"`
	Winner bool    `json:"winner"`
}

// Engine owns one session's mutable state: the draw ledger and the winner
// registry. Every mutating operation funnels through its mutex and runs to
// completion (append, project, evaluate, register, emit) before the next one
// begins, so two concurrent operator calls behave as if one fully preceded
// the other. Events are emitted under the lock, so viewers observe draws in
// serialization order. Reads return copies and never expose internal state.
type Engine struct {
	id       string
	rule     WinRule
	resolver OwnerResolver
	sink     EventSink
	log      *zap.SugaredLogger

	mu           sync.Mutex
	ledger       *Ledger
	tickets      map[string]*Ticket
	order        []string
	reg          *registry
	prize        string
	startMessage string
	status       Status
	rng          *rand.Rand
}

// NewEngine builds an engine for one session. resolver may be nil when no
// assignment subsystem is attached; sink may be nil when nobody listens.
func NewEngine(id string, cfg Config, resolver OwnerResolver, sink EventSink, log *zap.SugaredLogger) *Engine {
	if cfg.Rule == "" {
		cfg.Rule = RuleFullCard
	}
	if cfg.Rand == nil {
		cfg.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Engine{
		id:           id,
		rule:         cfg.Rule,
		resolver:     resolver,
		sink:         sink,
		log:          log,
		ledger:       NewLedger(),
		tickets:      make(map[string]*Ticket),
		reg:          newRegistry(id, cfg.SinglePrize),
		startMessage: cfg.StartMessage,
		status:       StatusOpen,
		rng:          cfg.Rand,
	}
}

func (e *Engine) ID() string { return e.id }

// Rule returns the configured win rule.
func (e *Engine) Rule() WinRule { return e.rule }

// AddTicket registers a ticket with the session. Grids are immutable after
// this point.
func (e *Engine) AddTicket(t *Ticket) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if _, ok := e.tickets[t.ID]; ok {
		return ErrTicketExists
	}
	e.tickets[t.ID] = t
	e.order = append(e.order, t.ID)
	return nil
}

// AddTickets registers a whole deck, skipping duplicates.
func (e *Engine) AddTickets(deck []*Ticket) {
	for _, t := range deck {
		if err := e.AddTicket(t); err != nil {
			e.log.Warnf("[Session %s] duplicate ticket %s skipped", e.id, t.ID)
		}
	}
}

// HasTicket reports whether a ticket is registered with the session.
func (e *Engine) HasTicket(id string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	_, ok := e.tickets[id]
	return ok
}

// RemoveTicketWinner drops any winner records for a ticket, used when the
// assignment subsystem detaches the ticket from its player.
func (e *Engine) RemoveTicketWinner(ticketID string) SessionUpdated {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.reg.removeTicket(ticketID)
	evt := e.buildEvent(nil)
	e.emit(evt)
	return evt
}

// DrawRandom draws uniformly from the undrawn pool, appends it to the ledger
// and runs win detection, all as one serialized step. Fails with ErrExhausted
// once all 75 numbers are out.
func (e *Engine) DrawRandom() (int, SessionUpdated, error) {
	e.mu.Lock()
	pool := e.ledger.Remaining()
	if len(pool) == 0 {
		e.mu.Unlock()
		return 0, SessionUpdated{}, ErrExhausted
	}
	n := pool[e.rng.Intn(len(pool))]
	evt := e.apply(n)
	e.log.Infof("[Session %s] drew %d (%d/%d)", e.id, n, len(evt.Session.DrawnNumbers), MaxNumber)
	e.emit(evt)
	e.mu.Unlock()
	return n, evt, nil
}

// MarkNumber records an operator-chosen number. Validation and the apply step
// happen under the same lock, so two concurrent calls with the same number
// resolve to exactly one append and one ErrAlreadyDrawn.
func (e *Engine) MarkNumber(n int) (SessionUpdated, error) {
	e.mu.Lock()
	if n < 1 || n > MaxNumber {
		e.mu.Unlock()
		return SessionUpdated{}, ErrInvalidNumber
	}
	if e.ledger.Contains(n) {
		e.mu.Unlock()
		return SessionUpdated{}, ErrAlreadyDrawn
	}
	evt := e.apply(n)
	e.log.Infof("[Session %s] marked %d manually", e.id, n)
	e.emit(evt)
	e.mu.Unlock()
	return evt, nil
}

// apply is the single convergence point of both draw paths. Caller holds the
// lock and has validated n.
func (e *Engine) apply(n int) SessionUpdated {
	e.status = StatusOpen
	if err := e.ledger.Append(n); err != nil {
		// Unreachable after caller validation; keep the ledger authoritative.
		e.log.Errorf("[Session %s] append %d rejected: %v", e.id, n, err)
		return e.buildEvent(nil)
	}

	drawn := e.ledger.Numbers()
	var newWinners []WinnerRecord
	for _, id := range e.order {
		t := e.tickets[id]
		// Only tickets whose mark set changed can transition to WON.
		if !t.Contains(n) {
			continue
		}
		if !IsWinner(t, drawn, e.rule) {
			continue
		}
		rec := e.registerLocked(t)
		if rec != nil {
			newWinners = append(newWinners, *rec)
		}
	}
	return e.buildEvent(newWinners)
}

// registerLocked stamps owner and prize at registration time. Caller holds
// the lock.
func (e *Engine) registerLocked(t *Ticket) *WinnerRecord {
	var owner Owner
	if e.resolver != nil {
		owner, _ = e.resolver.ResolveOwner(t.ID)
	}
	rec, err := e.reg.register(t.ID, owner, e.prize, time.Now())
	if err != nil {
		// Informational: the ticket qualifies but single-prize mode already
		// has its winner.
		e.log.Infof("[Session %s] ticket %s qualified but %v", e.id, t.ID, err)
		return nil
	}
	if rec != nil {
		e.log.Infof("[Session %s] ticket %s WON, prize %q", e.id, t.ID, rec.Prize)
	}
	return rec
}

// SetPrize updates the prize string future winner records will snapshot.
func (e *Engine) SetPrize(prize string) SessionUpdated {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.prize = prize
	evt := e.buildEvent(nil)
	e.emit(evt)
	return evt
}

// SetStartMessage updates the banner shown to viewers before the game starts.
func (e *Engine) SetStartMessage(msg string) SessionUpdated {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.startMessage = msg
	evt := e.buildEvent(nil)
	e.emit(evt)
	return evt
}

// Reset clears the ledger and, depending on clearWinners, either deletes the
// winner records or keeps them as history. Tickets and their assignments
// survive.
func (e *Engine) Reset(clearWinners bool) SessionUpdated {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.ledger.Reset()
	e.reg.reset(clearWinners)
	e.status = StatusReset
	evt := e.buildEvent(nil)
	e.log.Infof("[Session %s] reset (clearWinners=%v)", e.id, clearWinners)
	e.emit(evt)
	return evt
}

// Snapshot returns a consistent copy of the session state.
func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snapshotLocked()
}

// Winners lists every record, current and historical, registration order.
func (e *Engine) Winners() []WinnerRecord {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.reg.all()
}

// TicketView returns a ticket's grid with its derived marks against the
// current ledger.
func (e *Engine) TicketView(ticketID string) (TicketView, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	t, ok := e.tickets[ticketID]
	if !ok {
		return TicketView{}, ErrTicketNotFound
	}
	drawn := e.ledger.Numbers()
	return TicketView{
		Ticket: t,
		Marked: MarkedList(t, drawn),
		Winner: IsWinner(t, drawn, e.rule),
	}, nil
}

// TicketIDs lists registered tickets in registration order.
func (e *Engine) TicketIDs() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]string, len(e.order))
	copy(out, e.order)
	return out
}

// Restore seeds ledger and registry from persisted state without emitting
// events, used at boot.
func (e *Engine) Restore(drawn []int, winners []WinnerRecord, prize, startMessage string, status Status) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.ledger.Reset()
	for _, n := range drawn {
		if err := e.ledger.Append(n); err != nil {
			return err
		}
	}
	e.reg.restore(winners)
	e.prize = prize
	if startMessage != "" {
		e.startMessage = startMessage
	}
	if status != "" {
		e.status = status
	}
	return nil
}

// buildEvent assembles the outbound event. Caller holds the lock.
func (e *Engine) buildEvent(newWinners []WinnerRecord) SessionUpdated {
	if newWinners == nil {
		newWinners = []WinnerRecord{}
	}
	return SessionUpdated{Session: e.snapshotLocked(), NewWinners: newWinners}
}

func (e *Engine) snapshotLocked() Snapshot {
	snap := Snapshot{
		SessionID:    e.id,
		Status:       e.status,
		DrawnNumbers: e.ledger.Numbers(),
		LastFive:     e.ledger.LastFive(),
		Organized:    e.ledger.Organized(),
		CurrentPrize: e.prize,
		StartMessage: e.startMessage,
		Winners:      e.reg.all(),
	}
	if last, ok := e.ledger.Last(); ok {
		snap.LastNumber = &last
	}
	return snap
}

func (e *Engine) emit(evt SessionUpdated) {
	if e.sink != nil {
		e.sink(evt)
	}
}
