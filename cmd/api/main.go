package main

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/BruksfildServices01/barber-queue/internal/config"
	dbpkg "github.com/BruksfildServices01/barber-queue/internal/db"
	"github.com/BruksfildServices01/barber-queue/internal/history"
	infraRepo "github.com/BruksfildServices01/barber-queue/internal/infra/repository"
	"github.com/BruksfildServices01/barber-queue/internal/middleware"
	"github.com/BruksfildServices01/barber-queue/internal/realtime"
	"github.com/BruksfildServices01/barber-queue/internal/routes"
)

func main() {

	cfg := config.Load()
	db := dbpkg.NewDB(cfg)

	ctx := context.Background()

	// ------------------------------
	// Live updates
	// ------------------------------
	hub := realtime.NewHub()

	var relay *realtime.Relay
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			log.Fatalf("invalid REDIS_URL: %v", err)
		}
		relay = realtime.NewRelay(redis.NewClient(opts), hub)
		go relay.Run(ctx)
	}

	publisher := realtime.NewPublisher(hub, relay)

	// ------------------------------
	// History outbox
	// ------------------------------
	outboxStore := infraRepo.NewOutboxGormStore(db)
	recorder := history.NewGormRecorder(db)
	outboxWorker := history.NewWorker(outboxStore, recorder, cfg.OutboxInterval)
	go outboxWorker.Run(ctx)

	// ------------------------------
	// HTTP
	// ------------------------------
	r := gin.Default()

	r.Use(middleware.CORSMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, db, cfg, hub, publisher)

	log.Printf("Server running on %s", cfg.Addr())
	if err := r.Run(cfg.Addr()); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
