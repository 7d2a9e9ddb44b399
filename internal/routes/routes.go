package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-admin/internal/audit"
	"github.com/BruksfildServices01/barber-admin/internal/config"
	"github.com/BruksfildServices01/barber-admin/internal/handlers"
	"github.com/BruksfildServices01/barber-admin/internal/middleware"
	"github.com/BruksfildServices01/barber-admin/internal/realtime"
	"github.com/BruksfildServices01/barber-admin/internal/storage"
	"github.com/BruksfildServices01/barber-admin/internal/usecase/report"
)

// Deps reúne o que o main já montou e que as rotas compartilham com os
// processos de fundo (espelho da agenda, dispatchers).
type Deps struct {
	DB       *gorm.DB
	Config   *config.Config
	Audit    *audit.Dispatcher
	Photos   *storage.PhotoStore
	Limiter  *middleware.IPRateLimiter
	Realtime http.Handler

	Appointments handlers.AppointmentUseCases
	Dashboard    *report.Dashboard
}

func RegisterRoutes(r *gin.Engine, d Deps) {

	// ======================================================
	// 🌍 MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.CORSMiddleware(d.Config.CORSOrigins))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// ======================================================
	// 🧩 HANDLERS
	// ======================================================
	appointmentHandler := handlers.NewAppointmentHandler(d.Appointments)
	publicHandler := handlers.NewPublicHandler(
		d.DB,
		d.Photos,
		d.Appointments.Availability,
		d.Appointments.Create,
	)

	barbershopHandler := handlers.NewBarbershopHandler(d.DB)
	professionalHandler := handlers.NewProfessionalHandler(d.DB, d.Photos, d.Audit)
	serviceHandler := handlers.NewServiceHandler(d.DB)
	businessHoursHandler := handlers.NewBusinessHoursHandler(d.DB)
	clientHandler := handlers.NewClientHandler(d.DB)
	settingHandler := handlers.NewSettingHandler(d.DB, d.Audit)
	dashboardHandler := handlers.NewDashboardHandler(d.Dashboard)
	auditLogsHandler := handlers.NewAuditLogsHandler(d.DB)

	// ======================================================
	// 📡 REALTIME (SockJS)
	// ======================================================
	if d.Realtime != nil {
		r.Any(realtime.Prefix+"/*path", gin.WrapH(d.Realtime))
	}

	// ======================================================
	// 🌐 API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// 🌐 API PÚBLICA
		// ------------------------------
		publicAPI := api.Group("/public")
		if d.Limiter != nil {
			publicAPI.Use(middleware.RateLimitMiddleware(d.Limiter))
		}
		{
			publicAPI.GET("/:slug", publicHandler.Catalog)
			publicAPI.GET("/:slug/availability", publicHandler.Availability)
			publicAPI.POST("/:slug/appointments", publicHandler.CreateAppointment)
		}

		// ------------------------------
		// 🔐 API PRIVADA
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(d.Config))
		{
			secured.GET("/me/barbershop", barbershopHandler.GetMeBarbershop)
			secured.PATCH("/me/barbershop", barbershopHandler.UpdateMeBarbershop)

			secured.GET("/me/dashboard", dashboardHandler.Summary)

			secured.GET("/me/clients", clientHandler.List)

			secured.GET("/me/professionals", professionalHandler.List)
			secured.POST("/me/professionals", professionalHandler.Create)
			secured.PATCH("/me/professionals/:id", professionalHandler.Update)
			secured.DELETE("/me/professionals/:id", professionalHandler.Delete)

			secured.GET("/me/services", serviceHandler.List)
			secured.GET("/me/services/combo-defaults", serviceHandler.ComboDefaults)
			secured.POST("/me/services", serviceHandler.Create)
			secured.PATCH("/me/services/:id", serviceHandler.Update)
			secured.DELETE("/me/services/:id", serviceHandler.Delete)

			secured.GET("/me/business-hours", businessHoursHandler.Get)
			secured.PUT("/me/business-hours", businessHoursHandler.Update)

			secured.GET("/me/settings", settingHandler.List)
			secured.GET("/me/settings/:key", settingHandler.Get)
			secured.PUT("/me/settings/:key", settingHandler.Put)

			// ------------------------------
			// APPOINTMENTS
			// ------------------------------
			secured.GET("/me/availability", appointmentHandler.Availability)
			secured.POST("/me/appointments", appointmentHandler.Create)
			secured.GET("/me/appointments/active", appointmentHandler.ListActive)
			secured.GET("/me/appointments", appointmentHandler.ListByDate)
			secured.GET("/me/appointments/month", appointmentHandler.ListByMonth)
			secured.PUT("/me/appointments/:id", appointmentHandler.Reschedule)
			secured.PATCH("/me/appointments/:id/attendance", appointmentHandler.Attendance)
			secured.PATCH("/me/appointments/:id/confirm", appointmentHandler.Confirm)
			secured.PATCH("/me/appointments/:id/cancel", appointmentHandler.Cancel)

			secured.GET("/me/audit-logs", auditLogsHandler.List)
		}
	}
}
