package services

import (
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/bingolive/bingo-live/game"
	"github.com/bingolive/bingo-live/repository"
	"go.uber.org/zap"
)

// ErrPlayerNotFound is returned by assignment operations on an unknown phone.
var ErrPlayerNotFound = errors.New("player not registered")

// Options configure the sessions a Manager boots with.
type Options struct {
	SessionID    string
	Rule         game.WinRule
	SinglePrize  bool
	StartMessage string
	TicketCount  int
	// Rand seeds deck generation and draws; nil gets a time-seeded source.
	Rand *rand.Rand
}

// Manager owns the session engines and the ticket-ownership cache. It is the
// glue between HTTP handlers, the core engine, the broadcast hub and the
// store. Ownership lives in memory so the engine can resolve owners inside
// its serialized apply step without touching the database; every change is
// written through to the store.
type Manager struct {
	store   repository.Store
	hub     *Hub
	persist *Persister
	log     *zap.SugaredLogger

	mu      sync.RWMutex
	engines map[string]*game.Engine
	owners  map[string]game.Owner // ticketID -> owner snapshot
	primary string                // session receiving assignment-change broadcasts
}

// NewManager loads the deck and player assignments, builds the configured
// session engine and resumes any persisted state.
func NewManager(store repository.Store, hub *Hub, persist *Persister, opts Options, log *zap.SugaredLogger) (*Manager, error) {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if opts.SessionID == "" {
		opts.SessionID = "main"
	}

	m := &Manager{
		store:   store,
		hub:     hub,
		persist: persist,
		log:     log,
		engines: make(map[string]*game.Engine),
		owners:  make(map[string]game.Owner),
		primary: opts.SessionID,
	}

	deck, err := EnsureDeck(store, opts.TicketCount, opts.Rand, log)
	if err != nil {
		return nil, fmt.Errorf("ensure deck: %w", err)
	}

	players, err := store.ListPlayers()
	if err != nil {
		return nil, fmt.Errorf("load players: %w", err)
	}
	for _, p := range players {
		for _, id := range p.TicketIDs {
			m.owners[id] = game.Owner{Name: p.Name, Contact: p.Phone}
		}
	}

	eng := game.NewEngine(opts.SessionID, game.Config{
		Rule:         opts.Rule,
		SinglePrize:  opts.SinglePrize,
		StartMessage: opts.StartMessage,
		Rand:         opts.Rand,
	}, m, m.sink, log)
	eng.AddTickets(deck)

	state, err := store.LoadSession(opts.SessionID)
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	if state != nil {
		if err := eng.Restore(state.DrawnNumbers, state.Winners, state.CurrentPrize, state.StartMessage, state.Status); err != nil {
			return nil, fmt.Errorf("restore session %s: %w", opts.SessionID, err)
		}
		log.Infof("[Sessions] resumed %s with %d drawn numbers, %d winners",
			opts.SessionID, len(state.DrawnNumbers), len(state.Winners))
	}

	m.engines[opts.SessionID] = eng

	if hub != nil {
		hub.SetSnapshotSource(func() (interface{}, bool) {
			e, err := m.Engine(m.primary)
			if err != nil {
				return nil, false
			}
			return PublicEvent(game.SessionUpdated{Session: e.Snapshot(), NewWinners: []game.WinnerRecord{}}), true
		})
	}
	return m, nil
}

// sink receives every engine event in serialization order: broadcast a masked
// copy and hand the raw event to the persister. Both paths are non-blocking.
func (m *Manager) sink(evt game.SessionUpdated) {
	if m.hub != nil {
		m.hub.Broadcast(PublicEvent(evt))
	}
	if m.persist != nil {
		m.persist.Enqueue(evt)
	}
}

// Engine returns the engine for a session or ErrSessionNotFound.
func (m *Manager) Engine(sessionID string) (*game.Engine, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	eng, ok := m.engines[sessionID]
	if !ok {
		return nil, game.ErrSessionNotFound
	}
	return eng, nil
}

// ResolveOwner implements game.OwnerResolver against the in-memory
// assignment cache.
func (m *Manager) ResolveOwner(ticketID string) (game.Owner, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	owner, ok := m.owners[ticketID]
	return owner, ok
}

// AssignTicket registers (or updates) a player and attaches a ticket to them.
func (m *Manager) AssignTicket(name, phone, ticketID string) error {
	eng, err := m.Engine(m.primary)
	if err != nil {
		return err
	}
	if !eng.HasTicket(ticketID) {
		return game.ErrTicketNotFound
	}

	p, err := m.store.GetPlayer(phone)
	if err != nil {
		return err
	}
	if p == nil {
		p = &repository.Player{Name: name, Phone: phone}
	}
	if name != "" {
		p.Name = name
	}
	if !containsID(p.TicketIDs, ticketID) {
		p.TicketIDs = append(p.TicketIDs, ticketID)
	}
	if err := m.store.SavePlayer(*p); err != nil {
		return err
	}

	m.mu.Lock()
	m.owners[ticketID] = game.Owner{Name: p.Name, Contact: p.Phone}
	m.mu.Unlock()

	m.log.Infof("[Sessions] ticket %s assigned to %s", ticketID, p.Name)
	m.broadcastAssignmentChange()
	return nil
}

// AddTicket attaches another ticket to an existing player.
func (m *Manager) AddTicket(phone, ticketID string) error {
	p, err := m.store.GetPlayer(phone)
	if err != nil {
		return err
	}
	if p == nil {
		return ErrPlayerNotFound
	}
	return m.AssignTicket(p.Name, phone, ticketID)
}

// RemoveTicket detaches a ticket from a player and drops any winner record it
// earned, matching the operator's expectation that an unassigned ticket holds
// no prize.
func (m *Manager) RemoveTicket(phone, ticketID string) error {
	p, err := m.store.GetPlayer(phone)
	if err != nil {
		return err
	}
	if p == nil {
		return ErrPlayerNotFound
	}
	kept := p.TicketIDs[:0]
	for _, id := range p.TicketIDs {
		if id != ticketID {
			kept = append(kept, id)
		}
	}
	p.TicketIDs = kept
	if err := m.store.SavePlayer(*p); err != nil {
		return err
	}

	m.mu.Lock()
	delete(m.owners, ticketID)
	m.mu.Unlock()

	if eng, err := m.Engine(m.primary); err == nil {
		eng.RemoveTicketWinner(ticketID)
	}
	return nil
}

// DeletePlayer removes a player, their assignments and their winner records.
func (m *Manager) DeletePlayer(phone string) error {
	p, err := m.store.GetPlayer(phone)
	if err != nil {
		return err
	}
	if p == nil {
		return ErrPlayerNotFound
	}
	if err := m.store.DeletePlayer(phone); err != nil {
		return err
	}

	m.mu.Lock()
	for _, id := range p.TicketIDs {
		delete(m.owners, id)
	}
	m.mu.Unlock()

	if eng, err := m.Engine(m.primary); err == nil {
		for _, id := range p.TicketIDs {
			eng.RemoveTicketWinner(id)
		}
	}
	return nil
}

// DeleteAllPlayers clears the whole assignment table and every winner record.
func (m *Manager) DeleteAllPlayers() error {
	players, err := m.store.ListPlayers()
	if err != nil {
		return err
	}
	if err := m.store.DeleteAllPlayers(); err != nil {
		return err
	}

	m.mu.Lock()
	m.owners = make(map[string]game.Owner)
	m.mu.Unlock()

	if eng, err := m.Engine(m.primary); err == nil {
		for _, p := range players {
			for _, id := range p.TicketIDs {
				eng.RemoveTicketWinner(id)
			}
		}
	}
	return nil
}

// Players lists registered players with masked phones for the admin view.
func (m *Manager) Players() ([]repository.Player, error) {
	players, err := m.store.ListPlayers()
	if err != nil {
		return nil, err
	}
	for i := range players {
		players[i].Phone = maskPhone(players[i].Phone)
	}
	return players, nil
}

// PlayerTickets returns a player's ticket views against the primary session
// ledger.
func (m *Manager) PlayerTickets(phone string) (string, []game.TicketView, error) {
	p, err := m.store.GetPlayer(phone)
	if err != nil {
		return "", nil, err
	}
	if p == nil {
		return "", nil, ErrPlayerNotFound
	}
	eng, err := m.Engine(m.primary)
	if err != nil {
		return "", nil, err
	}
	views := make([]game.TicketView, 0, len(p.TicketIDs))
	for _, id := range p.TicketIDs {
		view, err := eng.TicketView(id)
		if err != nil {
			continue
		}
		views = append(views, view)
	}
	return p.Name, views, nil
}

func (m *Manager) broadcastAssignmentChange() {
	if m.hub == nil {
		return
	}
	eng, err := m.Engine(m.primary)
	if err != nil {
		return
	}
	m.hub.Broadcast(PublicEvent(game.SessionUpdated{
		Session:    eng.Snapshot(),
		NewWinners: []game.WinnerRecord{},
	}))
}

// PublicEvent masks owner contacts before a payload leaves the process.
func PublicEvent(evt game.SessionUpdated) game.SessionUpdated {
	evt.Session.Winners = MaskWinners(evt.Session.Winners)
	evt.NewWinners = MaskWinners(evt.NewWinners)
	return evt
}

// MaskWinners returns record copies with masked contacts.
func MaskWinners(records []game.WinnerRecord) []game.WinnerRecord {
	out := make([]game.WinnerRecord, len(records))
	for i, rec := range records {
		rec.OwnerContact = maskPhone(rec.OwnerContact)
		out[i] = rec
	}
	return out
}

func containsID(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
