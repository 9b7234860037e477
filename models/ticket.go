package models

import (
	"time"

	"gorm.io/datatypes"
)

// Ticket is a persisted bingo card. The 5x5 grid is stored as a JSON matrix
// and never changes after creation; marks are derived from the session ledger
// and deliberately have no column here.
type Ticket struct {
	ID        string         `gorm:"primaryKey" json:"id"`
	GridJSON  datatypes.JSON `json:"grid_json"` // [[row0],[row1],...], free cell = 0
	CreatedAt time.Time      `json:"created_at"`
}
