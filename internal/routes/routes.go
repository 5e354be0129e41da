package routes

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-bot/internal/audit"
	"github.com/BruksfildServices01/barber-bot/internal/config"
	"github.com/BruksfildServices01/barber-bot/internal/handlers"
	"github.com/BruksfildServices01/barber-bot/internal/identity"
	infraRepo "github.com/BruksfildServices01/barber-bot/internal/infra/repository"
	"github.com/BruksfildServices01/barber-bot/internal/middleware"
	"github.com/BruksfildServices01/barber-bot/internal/nlu"
	"github.com/BruksfildServices01/barber-bot/internal/session"
	ucbooking "github.com/BruksfildServices01/barber-bot/internal/usecase/booking"
	"github.com/BruksfildServices01/barber-bot/internal/workflow"
)

func RegisterRoutes(
	r *gin.Engine,
	db *gorm.DB,
	cfg *config.Config,
	sessions session.Store,
	log *zap.Logger,
) {

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	bookingRepo := infraRepo.NewBookingGormRepository(db)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger, log)

	clients := identity.NewGormService(db)
	detector := nlu.NewKeywordDetector()

	// ======================================================
	// USE CASES — BOOKING
	// ======================================================
	availabilityUC := ucbooking.NewGetAvailability(bookingRepo)
	catalogUC := ucbooking.NewCatalog(bookingRepo)
	scheduleUC := ucbooking.NewSchedule(bookingRepo, auditDispatcher)
	cancelUC := ucbooking.NewCancel(bookingRepo, auditDispatcher)
	rescheduleUC := ucbooking.NewReschedule(bookingRepo, auditDispatcher)
	listActiveUC := ucbooking.NewListActive(bookingRepo)

	// ======================================================
	// WORKFLOW ENGINE
	// ======================================================
	engine := workflow.New(
		detector,
		clients,
		sessions,
		availabilityUC,
		catalogUC,
		scheduleUC,
		cancelUC,
		rescheduleUC,
		listActiveUC,
		log,
		workflow.Options{ShownDays: cfg.ShownDays},
	)

	// ======================================================
	// HANDLERS
	// ======================================================
	webhookHandler := handlers.NewWebhookHandler(engine, log)
	authHandler := handlers.NewAuthHandler(db, cfg)
	slotHandler := handlers.NewSlotHandler(db)
	serviceHandler := handlers.NewServiceHandler(catalogUC)
	appointmentHandler := handlers.NewAppointmentHandler(db)
	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	// ======================================================
	// BOT
	// ======================================================
	r.POST("/webhook", webhookHandler.Handle)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		admin := api.Group("/admin")
		admin.Use(middleware.AuthMiddleware(cfg))
		{
			admin.POST("/slots", slotHandler.Create)
			admin.GET("/slots", slotHandler.List)

			admin.GET("/services", serviceHandler.List)

			admin.GET("/appointments", appointmentHandler.ListByDate)

			admin.GET("/audit-logs", auditLogsHandler.List)
		}
	}
}
