package routes

import (
	"log"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/glowdesk/salon-scheduler/internal/audit"
	"github.com/glowdesk/salon-scheduler/internal/cache"
	"github.com/glowdesk/salon-scheduler/internal/config"
	"github.com/glowdesk/salon-scheduler/internal/handlers"
	infraRepo "github.com/glowdesk/salon-scheduler/internal/infra/repository"
	"github.com/glowdesk/salon-scheduler/internal/middleware"
	"github.com/glowdesk/salon-scheduler/internal/payments"
	"github.com/glowdesk/salon-scheduler/internal/storage"
	ucAppointment "github.com/glowdesk/salon-scheduler/internal/usecase/appointment"
	ucPayment "github.com/glowdesk/salon-scheduler/internal/usecase/payment"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config) {

	// ======================================================
	// MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.CORSMiddleware())

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	appointmentRepo := infraRepo.NewAppointmentGormRepository(db)
	paymentRepo := infraRepo.NewPaymentGormRepository(db)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger)

	availabilityCache := cache.New(cfg)

	uploader := storage.NewImageUploader(cfg)

	var cardGateway payments.CardGateway
	if cfg.MercadoPagoToken != "" {
		gw, err := payments.NewMercadoPagoGateway(cfg.MercadoPagoToken)
		if err != nil {
			log.Printf("mercadopago disabled: %v", err)
		} else {
			cardGateway = gw
		}
	}

	var terminalGateway payments.TerminalGateway
	if cfg.TerminalAPIURL != "" {
		terminalGateway = payments.NewTerminalClient(cfg.TerminalAPIURL, cfg.TerminalAPIToken)
	}

	// ======================================================
	// USE CASES — APPOINTMENTS
	// ======================================================
	availabilityUC := ucAppointment.NewGetAvailability(
		appointmentRepo,
		availabilityCache,
	)

	createAppointmentUC := ucAppointment.NewCreateAppointment(
		appointmentRepo,
		auditDispatcher,
		availabilityCache,
	)

	rescheduleAppointmentUC := ucAppointment.NewRescheduleAppointment(
		appointmentRepo,
		auditDispatcher,
		availabilityCache,
	)

	cancelAppointmentUC := ucAppointment.NewCancelAppointment(
		appointmentRepo,
		auditDispatcher,
		availabilityCache,
	)

	completeAppointmentUC := ucAppointment.NewCompleteAppointment(
		appointmentRepo,
		auditDispatcher,
	)

	deleteAppointmentUC := ucAppointment.NewDeleteAppointment(
		appointmentRepo,
		auditDispatcher,
		availabilityCache,
	)

	listAppointmentsByDateUC := ucAppointment.NewListAppointmentsByDate(
		appointmentRepo,
	)

	listAppointmentsByMonthUC := ucAppointment.NewListAppointmentsByMonth(
		appointmentRepo,
	)

	// ======================================================
	// USE CASES — PAYMENTS
	// ======================================================
	checkoutUC := ucPayment.NewCheckout(
		paymentRepo,
		cardGateway,
		terminalGateway,
		auditDispatcher,
	)

	resolveTerminalUC := ucPayment.NewResolveTerminalPayment(
		paymentRepo,
		auditDispatcher,
	)

	issueGiftCardUC := ucPayment.NewIssueGiftCard(
		paymentRepo,
		auditDispatcher,
	)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)
	meHandler := handlers.NewMeHandler(db)
	salonHandler := handlers.NewSalonHandler(db, uploader)

	serviceHandler := handlers.NewServiceHandler(db, uploader)
	inventoryHandler := handlers.NewInventoryHandler(db)
	clientHandler := handlers.NewClientHandler(db)
	workingWindowsHandler := handlers.NewWorkingWindowsHandler(db, availabilityCache)

	appointmentHandler := handlers.NewAppointmentHandler(
		db,
		availabilityUC,
		createAppointmentUC,
		rescheduleAppointmentUC,
		cancelAppointmentUC,
		completeAppointmentUC,
		deleteAppointmentUC,
		listAppointmentsByDateUC,
		listAppointmentsByMonthUC,
	)

	paymentHandler := handlers.NewPaymentHandler(
		paymentRepo,
		checkoutUC,
		resolveTerminalUC,
		issueGiftCardUC,
		cfg.TerminalWebhookSecret,
	)

	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	publicHandler := handlers.NewPublicHandler(db, availabilityUC, createAppointmentUC)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// API PÚBLICA (vitrine por slug)
		// ------------------------------
		publicAPI := api.Group("/public")
		{
			publicAPI.GET("/:slug", publicHandler.GetSalon)
			publicAPI.GET("/:slug/services", publicHandler.ListServices)
			publicAPI.GET("/:slug/staff", publicHandler.ListStaff)
			publicAPI.GET("/:slug/availability", publicHandler.GetAvailability)
			publicAPI.POST("/:slug/appointments", publicHandler.CreateAppointment)
		}

		// webhook do provedor da maquininha; autentica por assinatura HMAC
		api.POST("/webhooks/terminal", paymentHandler.TerminalWebhook)

		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// API PRIVADA
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("/me", meHandler.GetMe)

			secured.GET("/me/salon", salonHandler.GetSettings)
			secured.PATCH("/me/salon", salonHandler.UpdateSettings)
			secured.POST("/me/salon/logo", salonHandler.UploadLogo)

			secured.GET("/me/services", serviceHandler.List)
			secured.POST("/me/services", serviceHandler.Create)
			secured.PATCH("/me/services/:id", serviceHandler.Update)
			secured.DELETE("/me/services/:id", serviceHandler.Delete)
			secured.POST("/me/services/:id/image", serviceHandler.UploadImage)

			secured.GET("/me/inventory", inventoryHandler.List)
			secured.POST("/me/inventory", inventoryHandler.Create)
			secured.PATCH("/me/inventory/:id", inventoryHandler.Update)
			secured.PATCH("/me/inventory/:id/stock", inventoryHandler.AdjustStock)
			secured.DELETE("/me/inventory/:id", inventoryHandler.Delete)

			secured.GET("/me/clients", clientHandler.List)
			secured.POST("/me/clients", clientHandler.Create)
			secured.PATCH("/me/clients/:id", clientHandler.Update)
			secured.GET("/me/clients/:id/history", clientHandler.GetHistory)

			secured.GET("/me/working-windows", workingWindowsHandler.List)
			secured.PUT("/me/working-windows", workingWindowsHandler.Replace)

			// ------------------------------
			// APPOINTMENTS
			// ------------------------------
			secured.GET("/me/availability", appointmentHandler.GetAvailability)
			secured.POST("/me/appointments", appointmentHandler.Create)
			secured.GET("/me/appointments", appointmentHandler.ListByDate)
			secured.GET("/me/appointments/month", appointmentHandler.ListByMonth)
			secured.PATCH("/me/appointments/:id", appointmentHandler.Reschedule)
			secured.PATCH("/me/appointments/:id/cancel", appointmentHandler.Cancel)
			secured.PATCH("/me/appointments/:id/complete", appointmentHandler.Complete)
			secured.DELETE("/me/appointments/:id", appointmentHandler.Delete)

			// ------------------------------
			// PAYMENTS
			// ------------------------------
			secured.POST("/me/checkout", paymentHandler.Checkout)
			secured.GET("/me/payments", paymentHandler.ListPayments)
			secured.GET("/me/payments/:id", paymentHandler.GetPayment)

			secured.POST("/me/gift-cards", paymentHandler.IssueGiftCard)
			secured.GET("/me/gift-cards/:code", paymentHandler.GetGiftCard)

			secured.GET("/me/audit-logs", auditLogsHandler.List)
		}
	}
}
