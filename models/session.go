package models

import (
	"time"

	"gorm.io/datatypes"
)

// GameSession is the persisted snapshot of a session: the drawn-number ledger
// as a JSON array plus its display configuration. The in-memory engine is
// authoritative while the process runs; this row lets a restart resume the
// game.
type GameSession struct {
	ID           string         `gorm:"primaryKey" json:"id"`
	Status       string         `json:"status"` // OPEN | RESET
	CurrentPrize string         `json:"current_prize"`
	StartMessage string         `json:"start_message"`
	NumbersJSON  datatypes.JSON `json:"numbers_json"` // drawn numbers, draw order
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
}
