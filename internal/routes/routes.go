package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-queue/internal/audit"
	"github.com/BruksfildServices01/barber-queue/internal/config"
	"github.com/BruksfildServices01/barber-queue/internal/handlers"
	infraRepo "github.com/BruksfildServices01/barber-queue/internal/infra/repository"
	"github.com/BruksfildServices01/barber-queue/internal/middleware"
	"github.com/BruksfildServices01/barber-queue/internal/notify"
	"github.com/BruksfildServices01/barber-queue/internal/realtime"
	ucQueue "github.com/BruksfildServices01/barber-queue/internal/usecase/queue"
)

func RegisterRoutes(
	r *gin.Engine,
	db *gorm.DB,
	cfg *config.Config,
	hub *realtime.Hub,
	publisher *realtime.Publisher,
) {

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	queueRepo := infraRepo.NewQueueGormRepository(db)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger)

	messages := notify.NewDispatcher(notify.LogSender{})

	// ======================================================
	// USE CASES — QUEUE
	// ======================================================
	createEntryUC := ucQueue.NewCreateEntry(
		queueRepo,
		auditDispatcher,
		publisher,
		messages,
	)

	cancelEntryUC := ucQueue.NewCancelEntry(
		queueRepo,
		auditDispatcher,
		publisher,
	)

	startEntryUC := ucQueue.NewStartEntry(
		queueRepo,
		auditDispatcher,
		publisher,
		messages,
	)

	completeEntryUC := ucQueue.NewCompleteEntry(
		queueRepo,
		auditDispatcher,
		publisher,
	)

	skipEntryUC := ucQueue.NewSkipEntry(
		queueRepo,
		auditDispatcher,
		publisher,
	)

	listActiveQueueUC := ucQueue.NewListActiveQueue(queueRepo)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)
	meHandler := handlers.NewMeHandler(db)

	queueHandler := handlers.NewQueueHandler(
		createEntryUC,
		cancelEntryUC,
		startEntryUC,
		completeEntryUC,
		skipEntryUC,
		listActiveQueueUC,
	)

	liveHandler := handlers.NewLiveHandler(hub, cfg)

	barberHandler := handlers.NewBarberHandler(db, auditDispatcher, publisher)
	serviceHandler := handlers.NewServiceHandler(db)
	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	// ======================================================
	// OBSERVABILIDADE
	// ======================================================
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// LIVE UPDATES (token via query)
		// ------------------------------
		api.GET("/queue/live", liveHandler.Stream)

		// ------------------------------
		// API PRIVADA
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("/me", meHandler.GetMe)

			// ------------------------------
			// QUEUE
			// ------------------------------
			secured.GET("/queue", queueHandler.List)
			secured.POST("/queue", queueHandler.Create)
			secured.PATCH("/queue/:id/cancel", queueHandler.Cancel)
			secured.PATCH("/queue/:id/start", queueHandler.Start)
			secured.PATCH("/queue/:id/complete", queueHandler.Complete)
			secured.PATCH("/queue/:id/skip", queueHandler.Skip)

			secured.GET("/barbers", barberHandler.List)
			secured.POST("/barbers", barberHandler.Create)
			secured.PATCH("/barbers/:id", barberHandler.Update)

			secured.GET("/services", serviceHandler.List)
			secured.POST("/services", serviceHandler.Create)
			secured.PATCH("/services/:id", serviceHandler.Update)

			secured.GET("/audit-logs", auditLogsHandler.List)
		}
	}
}
