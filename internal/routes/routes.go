package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barbershop-bot/internal/config"
	domain "github.com/BruksfildServices01/barbershop-bot/internal/domain/appointment"
	"github.com/BruksfildServices01/barbershop-bot/internal/handlers"
	"github.com/BruksfildServices01/barbershop-bot/internal/middleware"
	ucAppointment "github.com/BruksfildServices01/barbershop-bot/internal/usecase/appointment"
)

type Deps struct {
	Config    *config.Config
	Directory domain.DirectoryStore
	Slots     domain.AvailabilityStore

	// AuditDB é nil quando o armazenamento é em memória.
	AuditDB *gorm.DB

	// Webhook é nil em modo long polling.
	Webhook *handlers.WebhookHandler

	HealthChecks map[string]handlers.Check
}

func RegisterRoutes(r *gin.Engine, d Deps) {

	// ======================================================
	// 🌍 MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.CORSMiddleware())

	// ======================================================
	// 🧠 USE CASES
	// ======================================================
	availabilityUC := ucAppointment.NewGetAvailability(d.Slots, d.Directory)
	listAppointmentsByDateUC := ucAppointment.NewListAppointmentsByDate(d.Slots, d.Directory)

	// ======================================================
	// 🧩 HANDLERS
	// ======================================================
	healthHandler := handlers.NewHealthHandler(d.HealthChecks)
	directoryHandler := handlers.NewDirectoryHandler(d.Directory)
	appointmentHandler := handlers.NewAppointmentHandler(
		availabilityUC,
		listAppointmentsByDateUC,
	)

	r.GET("/health", healthHandler.Get)

	if d.Webhook != nil {
		r.POST("/telegram/webhook/:secret", d.Webhook.Receive)
	}

	// ======================================================
	// 🔐 API DA EQUIPE (JSON)
	// ======================================================
	api := r.Group("/api")
	api.Use(middleware.AuthMiddleware(d.Config))
	{
		api.GET("/locations", directoryHandler.ListLocations)
		api.GET("/locations/:id/barbers", directoryHandler.ListBarbers)

		api.GET("/barbers/:id/availability", appointmentHandler.Availability)
		api.GET("/barbers/:id/appointments", appointmentHandler.ListByDate)

		if d.AuditDB != nil {
			auditLogsHandler := handlers.NewAuditLogsHandler(d.AuditDB)
			api.GET("/audit-logs", auditLogsHandler.List)
		}
	}
}
