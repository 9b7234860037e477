package repository

import (
	"sync"

	"github.com/bingolive/bingo-live/game"
)

// MemoryStore keeps everything in process memory. It backs deployments
// without a DATABASE_URL and every test.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]SessionState
	tickets  []*game.Ticket
	players  map[string]Player // key = phone
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]SessionState),
		players:  make(map[string]Player),
	}
}

func (s *MemoryStore) LoadSession(id string) (*SessionState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	state, ok := s.sessions[id]
	if !ok {
		return nil, nil
	}
	cp := state
	cp.DrawnNumbers = append([]int(nil), state.DrawnNumbers...)
	cp.Winners = append([]game.WinnerRecord(nil), state.Winners...)
	return &cp, nil
}

func (s *MemoryStore) SaveSession(state SessionState) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	state.DrawnNumbers = append([]int(nil), state.DrawnNumbers...)
	state.Winners = append([]game.WinnerRecord(nil), state.Winners...)
	s.sessions[state.ID] = state
	return nil
}

func (s *MemoryStore) LoadTickets() ([]*game.Ticket, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]*game.Ticket(nil), s.tickets...), nil
}

func (s *MemoryStore) SaveTickets(tickets []*game.Ticket) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tickets = append([]*game.Ticket(nil), tickets...)
	return nil
}

func (s *MemoryStore) ListPlayers() ([]Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Player, 0, len(s.players))
	for _, p := range s.players {
		out = append(out, p)
	}
	return out, nil
}

func (s *MemoryStore) GetPlayer(phone string) (*Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.players[phone]
	if !ok {
		return nil, nil
	}
	cp := p
	cp.TicketIDs = append([]string(nil), p.TicketIDs...)
	return &cp, nil
}

func (s *MemoryStore) SavePlayer(p Player) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p.TicketIDs = append([]string(nil), p.TicketIDs...)
	s.players[p.Phone] = p
	return nil
}

func (s *MemoryStore) DeletePlayer(phone string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.players, phone)
	return nil
}

func (s *MemoryStore) DeleteAllPlayers() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.players = make(map[string]Player)
	return nil
}
