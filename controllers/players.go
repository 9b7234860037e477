package controllers

import (
	"net/http"

	"github.com/bingolive/bingo-live/services"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// PlayerController is the ticket-assignment glue around the core: operators
// attach tickets to players, the engine only ever reads the result.
type PlayerController struct {
	manager *services.Manager
	log     *zap.SugaredLogger
}

func NewPlayerController(manager *services.Manager, log *zap.SugaredLogger) *PlayerController {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &PlayerController{manager: manager, log: log}
}

// AssignTicket registers a player if needed and attaches a ticket to them.
func (pc *PlayerController) AssignTicket(c *gin.Context) {
	var req struct {
		Name     string `json:"name" binding:"required"`
		Phone    string `json:"phone" binding:"required"`
		TicketID string `json:"ticket_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := pc.manager.AssignTicket(req.Name, req.Phone, req.TicketID); err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// AddTicket attaches another ticket to an already registered player.
func (pc *PlayerController) AddTicket(c *gin.Context) {
	var req struct {
		Phone    string `json:"phone" binding:"required"`
		TicketID string `json:"ticket_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := pc.manager.AddTicket(req.Phone, req.TicketID); err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// RemoveTicket detaches a ticket, dropping any winner record it earned.
func (pc *PlayerController) RemoveTicket(c *gin.Context) {
	var req struct {
		Phone    string `json:"phone" binding:"required"`
		TicketID string `json:"ticket_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := pc.manager.RemoveTicket(req.Phone, req.TicketID); err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// DeletePlayer removes a player, their assignments and winner records.
func (pc *PlayerController) DeletePlayer(c *gin.Context) {
	var req struct {
		Phone string `json:"phone" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := pc.manager.DeletePlayer(req.Phone); err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// DeleteAllPlayers clears the assignment table and all winner records.
func (pc *PlayerController) DeleteAllPlayers(c *gin.Context) {
	if err := pc.manager.DeleteAllPlayers(); err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// ListPlayers returns registered players with masked phones.
func (pc *PlayerController) ListPlayers(c *gin.Context) {
	players, err := pc.manager.Players()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"players": players})
}

// PlayerTickets returns a player's cards with derived marks.
func (pc *PlayerController) PlayerTickets(c *gin.Context) {
	phone := c.Query("phone")
	if phone == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "phone is required"})
		return
	}
	name, views, err := pc.manager.PlayerTickets(phone)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"name": name, "tickets": views})
}
