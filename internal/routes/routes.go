package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/appointment-booking/internal/audit"
	"github.com/BruksfildServices01/appointment-booking/internal/cache"
	"github.com/BruksfildServices01/appointment-booking/internal/config"
	domain "github.com/BruksfildServices01/appointment-booking/internal/domain/booking"
	"github.com/BruksfildServices01/appointment-booking/internal/handlers"
	infraRepo "github.com/BruksfildServices01/appointment-booking/internal/infra/repository"
	"github.com/BruksfildServices01/appointment-booking/internal/middleware"
	"github.com/BruksfildServices01/appointment-booking/internal/models"
	"github.com/BruksfildServices01/appointment-booking/internal/storage"
	ucBooking "github.com/BruksfildServices01/appointment-booking/internal/usecase/booking"
)

// Deps are the process-wide singletons the routes are built from. Redis and
// Images may be nil.
type Deps struct {
	DB     *gorm.DB
	Config *config.Config
	Log    *zap.Logger
	Redis  *redis.Client
	Images *storage.Images
	Audit  *audit.Dispatcher
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	cfg := d.Config

	// ======================================================
	// INFRA
	// ======================================================
	bookingRepo := infraRepo.NewBookingGormRepository(d.DB)
	businessCache := cache.NewBusinessCache(d.Redis, cfg.BusinessCacheTTL, d.Log)
	bookingLimiter := middleware.NewRateLimiter(
		d.Redis,
		cfg.BookingRateLimit,
		cfg.BookingRateWindow,
		"rl:booking",
		d.Log,
	)

	settings := ucBooking.Settings{
		Occupancy:       domain.OccupancyAllStatuses,
		DefaultInterval: cfg.DefaultIntervalMinutes,
	}
	if cfg.IgnoreCancelledOccupancy {
		settings.Occupancy = domain.OccupancyActiveOnly
	}

	// ======================================================
	// USE CASES
	// ======================================================
	getAvailabilityUC := ucBooking.NewGetAvailability(bookingRepo, settings)
	confirmBookingUC := ucBooking.NewConfirmBooking(bookingRepo, d.Audit, d.Log, settings)
	listCustomerUC := ucBooking.NewListCustomerAppointments(bookingRepo, settings)
	favoritesUC := ucBooking.NewListFavoriteBusinesses(bookingRepo)
	cancelUC := ucBooking.NewCancelAppointment(bookingRepo, d.Audit, settings)
	leaveReviewUC := ucBooking.NewLeaveReview(bookingRepo, d.Audit)
	listByDateUC := ucBooking.NewListAppointmentsByDate(bookingRepo, settings)
	updateStatusUC := ucBooking.NewUpdateAppointmentStatus(bookingRepo, d.Audit, settings)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(d.DB, cfg, d.Log)
	businessHandler := handlers.NewBusinessHandler(d.DB, cfg, businessCache, d.Images, d.Audit)
	serviceHandler := handlers.NewServiceHandler(d.DB, d.Images, d.Audit)
	employeeHandler := handlers.NewEmployeeHandler(d.DB, d.Images, d.Audit)
	absenceHandler := handlers.NewAbsenceHandler(d.DB, d.Audit)
	auditLogsHandler := handlers.NewAuditLogsHandler(d.DB)
	publicHandler := handlers.NewPublicHandler(d.DB, businessCache, getAvailabilityUC)
	appointmentHandler := handlers.NewAppointmentHandler(
		d.DB,
		confirmBookingUC,
		listCustomerUC,
		favoritesUC,
		cancelUC,
		leaveReviewUC,
		listByDateUC,
		updateStatusUC,
	)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")

	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)

	// ------------------------------
	// Public
	// ------------------------------
	public := api.Group("/businesses")
	{
		public.GET("", publicHandler.Search)
		public.GET("/:id", publicHandler.Get)
		public.GET("/:id/services", publicHandler.Services)
		public.GET("/:id/employees", publicHandler.Employees)
		public.GET("/:id/reviews", publicHandler.Reviews)
		public.GET("/:id/availability", publicHandler.Availability)
	}

	auth := middleware.AuthMiddleware(cfg)
	customerOnly := middleware.RequireRole("not_customer", models.RoleCustomer)
	ownerOnly := middleware.RequireRole("not_business_owner", models.RoleBusiness)

	api.POST(
		"/businesses/:id/appointments",
		auth,
		customerOnly,
		bookingLimiter.Middleware(),
		appointmentHandler.Create,
	)

	me := api.Group("/me", auth)
	me.GET("", authHandler.Me)
	me.PATCH("", authHandler.UpdateMe)
	me.DELETE("", authHandler.DeleteMe)

	// ------------------------------
	// Customer
	// ------------------------------
	customer := me.Group("", customerOnly)
	{
		customer.GET("/appointments", appointmentHandler.ListMine)
		customer.GET("/favorites", appointmentHandler.Favorites)
		customer.PATCH("/appointments/:id/cancel", appointmentHandler.CancelMine)
		customer.POST("/appointments/:id/review", appointmentHandler.Review)
	}

	// ------------------------------
	// Business owner
	// ------------------------------
	owner := me.Group("", ownerOnly)
	{
		owner.POST("/business", businessHandler.Create)
		owner.GET("/business", businessHandler.Get)
		owner.PATCH("/business", businessHandler.Update)
		owner.DELETE("/business", businessHandler.Delete)
		owner.PUT("/business/opening-hours", businessHandler.UpdateOpeningHours)
		owner.POST("/business/logo", businessHandler.UploadLogo)

		owner.GET("/business/appointments", appointmentHandler.ListBusiness)
		owner.PATCH("/business/appointments/:id/confirm", appointmentHandler.Confirm)
		owner.PATCH("/business/appointments/:id/cancel", appointmentHandler.Cancel)
		owner.PATCH("/business/appointments/:id/complete", appointmentHandler.Complete)

		owner.GET("/services", serviceHandler.List)
		owner.POST("/services", serviceHandler.Create)
		owner.PATCH("/services/:id", serviceHandler.Update)
		owner.DELETE("/services/:id", serviceHandler.Delete)
		owner.POST("/services/:id/image", serviceHandler.UploadImage)

		owner.GET("/employees", employeeHandler.List)
		owner.POST("/employees", employeeHandler.Create)
		owner.PATCH("/employees/:id", employeeHandler.Update)
		owner.DELETE("/employees/:id", employeeHandler.Delete)
		owner.POST("/employees/:id/image", employeeHandler.UploadImage)

		owner.GET("/absences", absenceHandler.List)
		owner.POST("/absences", absenceHandler.Create)
		owner.PATCH("/absences/:id", absenceHandler.Update)
		owner.PATCH("/absences/:id/approve", absenceHandler.Approve)
		owner.PATCH("/absences/:id/reject", absenceHandler.Reject)
		owner.DELETE("/absences/:id", absenceHandler.Delete)

		owner.GET("/audit-logs", auditLogsHandler.List)
	}
}
