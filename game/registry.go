package game

import (
	"time"

	"github.com/google/uuid"
)

// Owner is the resolved holder of a ticket, snapshotted onto winner records.
type Owner struct {
	Name    string `json:"name"`
	Contact string `json:"contact"`
}

// OwnerResolver looks up the player a ticket is assigned to. The assignment
// subsystem owns that data; the engine only reads it when stamping a record.
type OwnerResolver interface {
	ResolveOwner(ticketID string) (Owner, bool)
}

// WinnerRecord is the persisted fact that a ticket satisfied the win rule.
// Prize and owner are snapshots taken at registration time. Current is false
// for records kept as history across a reset.
type WinnerRecord struct {
	ID           string    `json:"id"`
	SessionID    string    `json:"session_id"`
	TicketID     string    `json:"ticket_id"`
	OwnerName    string    `json:"owner_name"`
	OwnerContact string    `json:"owner_contact"`
	Prize        string    `json:"prize"`
	Current      bool      `json:"current"`
	CreatedAt    time.Time `json:"created_at"`
}

// registry holds a session's winner records. At most one current record per
// ticket; in single-prize mode at most one current record overall. Owned by
// the engine, which serializes all access.
type registry struct {
	sessionID   string
	singlePrize bool
	records     []*WinnerRecord
}

func newRegistry(sessionID string, singlePrize bool) *registry {
	return &registry{sessionID: sessionID, singlePrize: singlePrize}
}

func (r *registry) currentFor(ticketID string) *WinnerRecord {
	for _, rec := range r.records {
		if rec.Current && rec.TicketID == ticketID {
			return rec
		}
	}
	return nil
}

func (r *registry) hasCurrent() bool {
	for _, rec := range r.records {
		if rec.Current {
			return true
		}
	}
	return false
}

// register creates a record for the ticket unless one exists (idempotent) or
// single-prize mode already has a current winner (ErrPolicyViolation,
// informational).
func (r *registry) register(ticketID string, owner Owner, prize string, now time.Time) (*WinnerRecord, error) {
	if r.currentFor(ticketID) != nil {
		return nil, nil
	}
	if r.singlePrize && r.hasCurrent() {
		return nil, ErrPolicyViolation
	}
	rec := &WinnerRecord{
		ID:           uuid.NewString(),
		SessionID:    r.sessionID,
		TicketID:     ticketID,
		OwnerName:    owner.Name,
		OwnerContact: owner.Contact,
		Prize:        prize,
		Current:      true,
		CreatedAt:    now,
	}
	r.records = append(r.records, rec)
	return rec, nil
}

// removeTicket drops every record for a ticket, used when an operator detaches
// the ticket from its owner.
func (r *registry) removeTicket(ticketID string) {
	kept := r.records[:0]
	for _, rec := range r.records {
		if rec.TicketID != ticketID {
			kept = append(kept, rec)
		}
	}
	r.records = kept
}

// reset either deletes all records or demotes them to history.
func (r *registry) reset(clear bool) {
	if clear {
		r.records = nil
		return
	}
	for _, rec := range r.records {
		rec.Current = false
	}
}

// all returns value copies of every record, registration order.
func (r *registry) all() []WinnerRecord {
	out := make([]WinnerRecord, 0, len(r.records))
	for _, rec := range r.records {
		out = append(out, *rec)
	}
	return out
}

// restore seeds the registry from persisted records.
func (r *registry) restore(records []WinnerRecord) {
	r.records = make([]*WinnerRecord, 0, len(records))
	for i := range records {
		rec := records[i]
		r.records = append(r.records, &rec)
	}
}
