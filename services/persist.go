package services

import (
	"sync"

	"github.com/bingolive/bingo-live/game"
	"github.com/bingolive/bingo-live/repository"
	"go.uber.org/zap"
)

// Persister writes session snapshots to the store in the background. The
// engine never performs I/O inside its critical section; it enqueues events
// here instead. Every event carries the full session state, so a dropped
// intermediate event is superseded by the next one.
type Persister struct {
	store repository.Store
	log   *zap.SugaredLogger
	ch    chan game.SessionUpdated
	wg    sync.WaitGroup
}

func NewPersister(store repository.Store, log *zap.SugaredLogger) *Persister {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	p := &Persister{
		store: store,
		log:   log,
		ch:    make(chan game.SessionUpdated, 64),
	}
	p.wg.Add(1)
	go p.run()
	return p
}

// Enqueue never blocks. When the buffer is full the oldest event is discarded
// in favor of the newer, more complete snapshot.
func (p *Persister) Enqueue(evt game.SessionUpdated) {
	select {
	case p.ch <- evt:
		return
	default:
	}
	select {
	case <-p.ch:
	default:
	}
	select {
	case p.ch <- evt:
	default:
		p.log.Warnf("[Persist] dropping snapshot for session %s", evt.Session.SessionID)
	}
}

// Close drains pending snapshots and stops the worker.
func (p *Persister) Close() {
	close(p.ch)
	p.wg.Wait()
}

func (p *Persister) run() {
	defer p.wg.Done()
	for evt := range p.ch {
		state := repository.SessionState{
			ID:           evt.Session.SessionID,
			Status:       evt.Session.Status,
			CurrentPrize: evt.Session.CurrentPrize,
			StartMessage: evt.Session.StartMessage,
			DrawnNumbers: evt.Session.DrawnNumbers,
			Winners:      evt.Session.Winners,
		}
		if err := p.store.SaveSession(state); err != nil {
			p.log.Errorf("[Persist] save session %s: %v", state.ID, err)
		}
	}
}
