package routes

import (
	"github.com/bingolive/bingo-live/controllers"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// SetupRoutes wires the REST surface. Viewer queries are public; everything
// that mutates game state sits behind the admin cookie.
func SetupRoutes(r *gin.Engine, sessions *controllers.SessionController, players *controllers.PlayerController, auth *controllers.AuthController) {
	r.POST("/login", auth.Login)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")

	// ----------------------
	// Viewer routes
	// ----------------------
	api.GET("/sessions/:id", sessions.GetSession)
	api.GET("/sessions/:id/winners", sessions.ListWinners)
	api.GET("/sessions/:id/tickets/:ticket_id", sessions.GetTicketView)
	api.GET("/player-tickets", players.PlayerTickets)

	// ----------------------
	// Operator routes
	// ----------------------
	admin := api.Group("", auth.RequireAdmin())
	admin.POST("/sessions/:id/draw", sessions.DrawRandom)
	admin.POST("/sessions/:id/mark", sessions.MarkNumber)
	admin.POST("/sessions/:id/prize", sessions.SetPrize)
	admin.POST("/sessions/:id/start-message", sessions.SetStartMessage)
	admin.POST("/sessions/:id/reset", sessions.Reset)

	admin.POST("/players/assign", players.AssignTicket)
	admin.POST("/players/add-ticket", players.AddTicket)
	admin.POST("/players/remove-ticket", players.RemoveTicket)
	admin.POST("/players/delete", players.DeletePlayer)
	admin.POST("/players/delete-all", players.DeleteAllPlayers)
	admin.GET("/players", players.ListPlayers)
}
