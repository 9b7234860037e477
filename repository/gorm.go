package repository

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/bingolive/bingo-live/game"
	"github.com/bingolive/bingo-live/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// GormStore persists to Postgres through gorm.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) LoadSession(id string) (*SessionState, error) {
	var row models.GameSession
	if err := s.db.First(&row, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("load session %s: %w", id, err)
	}

	var drawn []int
	if len(row.NumbersJSON) > 0 {
		if err := json.Unmarshal(row.NumbersJSON, &drawn); err != nil {
			return nil, fmt.Errorf("session %s ledger: %w", id, err)
		}
	}

	var winnerRows []models.WinnerRecord
	if err := s.db.Where("session_id = ?", id).Order("created_at").Find(&winnerRows).Error; err != nil {
		return nil, fmt.Errorf("load winners for %s: %w", id, err)
	}
	winners := make([]game.WinnerRecord, 0, len(winnerRows))
	for _, w := range winnerRows {
		winners = append(winners, game.WinnerRecord{
			ID:           w.ID,
			SessionID:    w.SessionID,
			TicketID:     w.TicketID,
			OwnerName:    w.OwnerName,
			OwnerContact: w.OwnerContact,
			Prize:        w.Prize,
			Current:      w.Current,
			CreatedAt:    w.CreatedAt,
		})
	}

	return &SessionState{
		ID:           row.ID,
		Status:       game.Status(row.Status),
		CurrentPrize: row.CurrentPrize,
		StartMessage: row.StartMessage,
		DrawnNumbers: drawn,
		Winners:      winners,
	}, nil
}

func (s *GormStore) SaveSession(state SessionState) error {
	numbers, err := json.Marshal(state.DrawnNumbers)
	if err != nil {
		return err
	}
	row := models.GameSession{
		ID:           state.ID,
		Status:       string(state.Status),
		CurrentPrize: state.CurrentPrize,
		StartMessage: state.StartMessage,
		NumbersJSON:  datatypes.JSON(numbers),
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&row).Error; err != nil {
			return err
		}
		// Winner rows are a snapshot; replace the session's set wholesale.
		if err := tx.Where("session_id = ?", state.ID).Delete(&models.WinnerRecord{}).Error; err != nil {
			return err
		}
		for _, w := range state.Winners {
			rec := models.WinnerRecord{
				ID:           w.ID,
				SessionID:    w.SessionID,
				TicketID:     w.TicketID,
				OwnerName:    w.OwnerName,
				OwnerContact: w.OwnerContact,
				Prize:        w.Prize,
				Current:      w.Current,
				CreatedAt:    w.CreatedAt,
			}
			if err := tx.Create(&rec).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *GormStore) LoadTickets() ([]*game.Ticket, error) {
	var rows []models.Ticket
	if err := s.db.Order("created_at").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("load tickets: %w", err)
	}
	tickets := make([]*game.Ticket, 0, len(rows))
	for _, row := range rows {
		var grid [game.GridSize][game.GridSize]int
		if err := json.Unmarshal(row.GridJSON, &grid); err != nil {
			return nil, fmt.Errorf("ticket %s grid: %w", row.ID, err)
		}
		t, err := game.NewTicket(row.ID, grid)
		if err != nil {
			return nil, fmt.Errorf("ticket %s: %w", row.ID, err)
		}
		tickets = append(tickets, t)
	}
	return tickets, nil
}

func (s *GormStore) SaveTickets(tickets []*game.Ticket) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		for _, t := range tickets {
			grid, err := json.Marshal(t.Grid)
			if err != nil {
				return err
			}
			row := models.Ticket{ID: t.ID, GridJSON: datatypes.JSON(grid)}
			if err := tx.Save(&row).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *GormStore) ListPlayers() ([]Player, error) {
	var rows []models.Player
	if err := s.db.Order("created_at").Find(&rows).Error; err != nil {
		return nil, err
	}
	players := make([]Player, 0, len(rows))
	for _, row := range rows {
		p, err := playerFromRow(row)
		if err != nil {
			return nil, err
		}
		players = append(players, p)
	}
	return players, nil
}

func (s *GormStore) GetPlayer(phone string) (*Player, error) {
	var row models.Player
	if err := s.db.First(&row, "phone = ?", phone).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	p, err := playerFromRow(row)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *GormStore) SavePlayer(p Player) error {
	ids, err := json.Marshal(p.TicketIDs)
	if err != nil {
		return err
	}
	var row models.Player
	err = s.db.First(&row, "phone = ?", p.Phone).Error
	switch {
	case err == nil:
		row.Name = p.Name
		row.TicketIDsJSON = datatypes.JSON(ids)
		return s.db.Save(&row).Error
	case errors.Is(err, gorm.ErrRecordNotFound):
		row = models.Player{Name: p.Name, Phone: p.Phone, TicketIDsJSON: datatypes.JSON(ids)}
		return s.db.Create(&row).Error
	default:
		return err
	}
}

func (s *GormStore) DeletePlayer(phone string) error {
	return s.db.Where("phone = ?", phone).Delete(&models.Player{}).Error
}

func (s *GormStore) DeleteAllPlayers() error {
	return s.db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.Player{}).Error
}

func playerFromRow(row models.Player) (Player, error) {
	var ids []string
	if len(row.TicketIDsJSON) > 0 {
		if err := json.Unmarshal(row.TicketIDsJSON, &ids); err != nil {
			return Player{}, fmt.Errorf("player %s tickets: %w", row.Phone, err)
		}
	}
	return Player{Name: row.Name, Phone: row.Phone, TicketIDs: ids}, nil
}
