package services

import (
	"math/rand"

	"github.com/bingolive/bingo-live/game"
	"github.com/bingolive/bingo-live/repository"
	"go.uber.org/zap"
)

// EnsureDeck loads the fixed ticket deck from the store, generating and
// persisting one when the store is empty. The deck is created once and reused
// across every session and reset.
func EnsureDeck(store repository.Store, count int, rng *rand.Rand, log *zap.SugaredLogger) ([]*game.Ticket, error) {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	tickets, err := store.LoadTickets()
	if err != nil {
		return nil, err
	}
	if len(tickets) > 0 {
		log.Infof("[Deck] loaded %d tickets", len(tickets))
		return tickets, nil
	}

	tickets = game.GenerateDeck(count, rng)
	if err := store.SaveTickets(tickets); err != nil {
		return nil, err
	}
	log.Infof("[Deck] generated %d tickets", len(tickets))
	return tickets, nil
}
