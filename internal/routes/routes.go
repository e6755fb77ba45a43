package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	"github.com/BruksfildServices01/salon-scheduler/internal/config"
	"github.com/BruksfildServices01/salon-scheduler/internal/handlers"
	"github.com/BruksfildServices01/salon-scheduler/internal/middleware"
	"github.com/BruksfildServices01/salon-scheduler/internal/notify"
	"github.com/BruksfildServices01/salon-scheduler/internal/ratelimit"
	"github.com/BruksfildServices01/salon-scheduler/internal/verification"
)

func RegisterRoutes(
	r *gin.Engine,
	db *gorm.DB,
	cfg *config.Config,
	rdb *redis.Client,
	log zerolog.Logger,
) {

	// ======================================================
	// 🔧 INFRA (SINGLETONS)
	// ======================================================
	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger, log)

	mailer := notify.NewMailSender(cfg)
	notifyDispatcher := notify.NewDispatcher(mailer, log)

	verifier := verification.NewService(rdb, mailer)

	publicLimiter := ratelimit.NewLimiter(rdb, 30, time.Minute)

	// ======================================================
	// 🧩 HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)
	meHandler := handlers.NewMeHandler(db)
	shopHandler := handlers.NewShopHandler(db)

	serviceHandler := handlers.NewServiceHandler(db)
	modifierHandler := handlers.NewModifierHandler(db)
	customerHandler := handlers.NewCustomerHandler(db)
	scheduleHandler := handlers.NewScheduleHandler(db)
	exceptionHandler := handlers.NewExceptionHandler(db)
	linkHandler := handlers.NewLinkHandler(db)

	bookingHandler := handlers.NewBookingHandler(db, auditDispatcher, notifyDispatcher)
	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	publicHandler := handlers.NewPublicHandler(db, auditDispatcher, notifyDispatcher, verifier)

	// ======================================================
	// 🌐 API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// 🌐 API PÚBLICA (VIA LINK)
		// ------------------------------
		publicAPI := api.Group("/public/booking/:token")
		publicAPI.Use(middleware.RateLimit(publicLimiter))
		{
			publicAPI.GET("", publicHandler.GetLinkInfo)
			publicAPI.GET("/availability", publicHandler.Availability)
			publicAPI.GET("/services/:serviceId/modifiers", publicHandler.ServiceModifiers)
			publicAPI.POST("/verification", publicHandler.RequestVerification)
			publicAPI.POST("/verification/confirm", publicHandler.ConfirmVerification)
			publicAPI.POST("/bookings", publicHandler.CreateBooking)
		}

		// ------------------------------
		// 🔐 AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// 🔐 API PRIVADA
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("/me", meHandler.GetMe)

			secured.GET("/me/shop", shopHandler.GetMeShop)
			secured.PATCH("/me/shop", shopHandler.UpdateMeShop)

			secured.GET("/me/customers", customerHandler.List)
			secured.POST("/me/customers/:id/tags", customerHandler.AddTag)
			secured.DELETE("/me/customers/:id/tags/:tag", customerHandler.RemoveTag)

			secured.GET("/me/services", serviceHandler.List)
			secured.POST("/me/services", serviceHandler.Create)
			secured.PATCH("/me/services/:serviceId", serviceHandler.Update)

			secured.GET("/me/services/:serviceId/modifiers", modifierHandler.List)
			secured.POST("/me/services/:serviceId/modifiers", modifierHandler.Create)
			secured.PATCH("/me/services/:serviceId/modifiers/:id", modifierHandler.Update)

			secured.GET("/me/schedule", scheduleHandler.Get)
			secured.PUT("/me/schedule", scheduleHandler.Update)

			secured.GET("/me/schedule/exceptions", exceptionHandler.List)
			secured.PUT("/me/schedule/exceptions", exceptionHandler.Upsert)
			secured.DELETE("/me/schedule/exceptions/:date", exceptionHandler.Delete)

			secured.GET("/me/links", linkHandler.List)
			secured.POST("/me/links", linkHandler.Create)
			secured.PATCH("/me/links/:id/revoke", linkHandler.Revoke)

			// ------------------------------
			// BOOKINGS
			// ------------------------------
			secured.GET("/me/availability", bookingHandler.Availability)
			secured.POST("/me/bookings", bookingHandler.Create)
			secured.GET("/me/bookings", bookingHandler.ListByDate)
			secured.GET("/me/bookings/month", bookingHandler.ListByMonth)
			secured.PATCH("/me/bookings/:id/confirm", bookingHandler.Confirm)
			secured.PATCH("/me/bookings/:id/cancel", bookingHandler.Cancel)

			secured.GET("/me/audit-logs", auditLogsHandler.List)
		}
	}
}
