package controllers

import (
	"errors"
	"net/http"

	"github.com/bingolive/bingo-live/game"
	"github.com/bingolive/bingo-live/metrics"
	"github.com/bingolive/bingo-live/services"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SessionController exposes the draw engine's operations over HTTP. Every
// handler resolves the session, delegates to the engine and maps the engine's
// sentinel errors onto statuses; no game state lives here.
type SessionController struct {
	manager *services.Manager
	log     *zap.SugaredLogger
}

func NewSessionController(manager *services.Manager, log *zap.SugaredLogger) *SessionController {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &SessionController{manager: manager, log: log}
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, game.ErrSessionNotFound), errors.Is(err, game.ErrTicketNotFound),
		errors.Is(err, services.ErrPlayerNotFound):
		return http.StatusNotFound
	case errors.Is(err, game.ErrAlreadyDrawn):
		return http.StatusConflict
	case errors.Is(err, game.ErrInvalidNumber), errors.Is(err, game.ErrExhausted):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// DrawRandom draws the next number from the undrawn pool.
func (sc *SessionController) DrawRandom(c *gin.Context) {
	eng, err := sc.manager.Engine(c.Param("id"))
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	number, evt, err := eng.DrawRandom()
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	metrics.DrawsTotal.WithLabelValues(eng.ID()).Inc()
	metrics.WinnersTotal.WithLabelValues(eng.ID()).Add(float64(len(evt.NewWinners)))

	evt = services.PublicEvent(evt)
	c.JSON(http.StatusOK, gin.H{
		"number":      number,
		"new_winners": evt.NewWinners,
		"session":     evt.Session,
	})
}

// MarkNumber records an operator-chosen number.
func (sc *SessionController) MarkNumber(c *gin.Context) {
	eng, err := sc.manager.Engine(c.Param("id"))
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	var req struct {
		Number int `json:"number" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	evt, err := eng.MarkNumber(req.Number)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	metrics.DrawsTotal.WithLabelValues(eng.ID()).Inc()
	metrics.WinnersTotal.WithLabelValues(eng.ID()).Add(float64(len(evt.NewWinners)))

	evt = services.PublicEvent(evt)
	c.JSON(http.StatusOK, gin.H{
		"number":      req.Number,
		"new_winners": evt.NewWinners,
		"session":     evt.Session,
	})
}

// SetPrize updates the prize future winners will be stamped with.
func (sc *SessionController) SetPrize(c *gin.Context) {
	eng, err := sc.manager.Engine(c.Param("id"))
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	var req struct {
		Prize string `json:"prize"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	evt := services.PublicEvent(eng.SetPrize(req.Prize))
	c.JSON(http.StatusOK, gin.H{"session": evt.Session})
}

// SetStartMessage updates the pre-game banner.
func (sc *SessionController) SetStartMessage(c *gin.Context) {
	eng, err := sc.manager.Engine(c.Param("id"))
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	var req struct {
		Message string `json:"message"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	evt := services.PublicEvent(eng.SetStartMessage(req.Message))
	c.JSON(http.StatusOK, gin.H{"session": evt.Session})
}

// Reset restarts the ledger. clear_winners chooses between deleting winner
// records and keeping them as history.
func (sc *SessionController) Reset(c *gin.Context) {
	eng, err := sc.manager.Engine(c.Param("id"))
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	var req struct {
		ClearWinners bool `json:"clear_winners"`
	}
	// An absent body means the default: winners become history.
	_ = c.ShouldBindJSON(&req)

	evt := services.PublicEvent(eng.Reset(req.ClearWinners))
	metrics.ResetsTotal.WithLabelValues(eng.ID()).Inc()
	c.JSON(http.StatusOK, gin.H{"session": evt.Session})
}

// GetSession returns the current snapshot.
func (sc *SessionController) GetSession(c *gin.Context) {
	eng, err := sc.manager.Engine(c.Param("id"))
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	evt := services.PublicEvent(game.SessionUpdated{Session: eng.Snapshot()})
	c.JSON(http.StatusOK, evt.Session)
}

// ListWinners returns every winner record, current and historical.
func (sc *SessionController) ListWinners(c *gin.Context) {
	eng, err := sc.manager.Engine(c.Param("id"))
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"winners": services.MaskWinners(eng.Winners())})
}

// GetTicketView returns a ticket's grid plus its derived marks.
func (sc *SessionController) GetTicketView(c *gin.Context) {
	eng, err := sc.manager.Engine(c.Param("id"))
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	view, err := eng.TicketView(c.Param("ticket_id"))
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, view)
}
