package models

import "time"

// WinnerRecord persists the fact that a ticket satisfied the win rule. Owner
// and prize are snapshots from registration time; Current is false for
// records kept as history across a session reset.
type WinnerRecord struct {
	ID           string    `gorm:"primaryKey" json:"id"`
	SessionID    string    `gorm:"index" json:"session_id"`
	TicketID     string    `gorm:"index" json:"ticket_id"`
	OwnerName    string    `json:"owner_name"`
	OwnerContact string    `json:"owner_contact"`
	Prize        string    `json:"prize"`
	Current      bool      `json:"current"`
	CreatedAt    time.Time `json:"created_at"`
}
