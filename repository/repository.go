package repository

import "github.com/bingolive/bingo-live/game"

// SessionState is everything a session needs to resume after a restart.
type SessionState struct {
	ID           string
	Status       game.Status
	CurrentPrize string
	StartMessage string
	DrawnNumbers []int
	Winners      []game.WinnerRecord
}

// Player is a ticket holder as the assignment subsystem stores it.
type Player struct {
	Name      string   `json:"name"`
	Phone     string   `json:"phone"`
	TicketIDs []string `json:"ticket_ids"`
}

// Store abstracts persistence for sessions, the ticket deck and player
// assignments. The engine never calls a Store from inside its critical
// section; snapshots are written by the persister reacting to events.
type Store interface {
	LoadSession(id string) (*SessionState, error) // nil when absent
	SaveSession(state SessionState) error

	LoadTickets() ([]*game.Ticket, error)
	SaveTickets(tickets []*game.Ticket) error

	ListPlayers() ([]Player, error)
	GetPlayer(phone string) (*Player, error) // nil when absent
	SavePlayer(p Player) error
	DeletePlayer(phone string) error
	DeleteAllPlayers() error
}
