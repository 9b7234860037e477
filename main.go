package main

import (
	"net/http"
	"strings"
	"time"

	"github.com/bingolive/bingo-live/config"
	"github.com/bingolive/bingo-live/controllers"
	"github.com/bingolive/bingo-live/repository"
	"github.com/bingolive/bingo-live/routes"
	"github.com/bingolive/bingo-live/services"
	"github.com/bingolive/bingo-live/utils/logger"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("config: %v", err)
	}

	// Store: Postgres when DATABASE_URL is set, in-memory otherwise.
	var store repository.Store
	if cfg.DatabaseURL != "" {
		db, err := config.SetupDatabase(cfg.DatabaseURL)
		if err != nil {
			logger.Fatalf("database: %v", err)
		}
		store = repository.NewGormStore(db)
		logger.Info("connected to Postgres")
	} else {
		store = repository.NewMemoryStore()
		logger.Info("no DATABASE_URL, running on the in-memory store")
	}

	hub := services.NewHub(logger.Log)
	persist := services.NewPersister(store, logger.Log)
	defer persist.Close()

	manager, err := services.NewManager(store, hub, persist, services.Options{
		SessionID:    cfg.SessionID,
		Rule:         cfg.Rule(),
		SinglePrize:  cfg.SinglePrize,
		StartMessage: cfg.StartMessage,
		TicketCount:  cfg.TicketCount,
	}, logger.Log)
	if err != nil {
		logger.Fatalf("sessions: %v", err)
	}

	r := gin.Default()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Split(cfg.CORSOrigins, ","),
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	routes.SetupRoutes(r,
		controllers.NewSessionController(manager, logger.Log),
		controllers.NewPlayerController(manager, logger.Log),
		controllers.NewAuthController(cfg.AdminPassword),
	)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "timestamp": time.Now()})
	})
	r.GET("/ws", services.HandleWebSocket(hub, logger.Log))

	logger.Infof("bingo backend listening on port %s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Fatalf("server: %v", err)
	}
}
