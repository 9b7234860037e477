package models

import (
	"time"

	"gorm.io/datatypes"
)

// Player is a ticket holder registered by the operator. The draw engine only
// reads this table to stamp winner records; all mutation happens through the
// assignment endpoints.
type Player struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	Name          string         `json:"name"`
	Phone         string         `gorm:"uniqueIndex" json:"phone"`
	TicketIDsJSON datatypes.JSON `json:"ticket_ids_json"` // ["1","42",...]
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}
