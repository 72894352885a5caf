package routes

import (
	"net/http"
	"time"

	"bms-backend/internal/adapters/http/handlers"
	"bms-backend/internal/adapters/http/middleware"
	"bms-backend/internal/adapters/persistence/repositories"
	"bms-backend/internal/config"
	"bms-backend/internal/core/services"
	"bms-backend/internal/pkg/metrics"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/swagger"
	"gorm.io/gorm"
)

// catalogCacheAge is how long shared caches may keep public listings
const catalogCacheAge = 60 * time.Second

// Dependencies holds everything the routes need
type Dependencies struct {
	Config       *config.Config
	Tokens       *services.TokenService
	Access       *services.AccessService
	Users        *services.UserService
	Applications *services.ApplicationService
	Payments     *services.PaymentService
	Catalog      *services.CatalogService
	Dashboard    *services.DashboardService
	PingDB       func() error
	Metrics      http.Handler
}

// NewDependencies wires repositories and services over db
func NewDependencies(
	db *gorm.DB,
	cfg *config.Config,
	recorder metrics.Recorder,
	processor services.PaymentProcessor,
	metricsHandler http.Handler,
) *Dependencies {
	// Initialize repositories
	userRepo := repositories.NewUserRepository(db)
	appRepo := repositories.NewApplicationRepository(db)
	txRunner := repositories.NewTxRunner(db)
	apartmentRepo := repositories.NewApartmentRepository(db)
	announcementRepo := repositories.NewAnnouncementRepository(db)
	paymentRepo := repositories.NewPaymentRepository(db)
	dashboardRepo := repositories.NewDashboardRepository(db)
	couponRepo := repositories.NewCouponRepository(db)

	// Initialize services
	tokens := services.NewTokenService(cfg.JWT.Secret, cfg.JWT.AccessTokenTTL())

	return &Dependencies{
		Config:       cfg,
		Tokens:       tokens,
		Access:       services.NewAccessService(tokens, userRepo),
		Users:        services.NewUserService(userRepo),
		Applications: services.NewApplicationService(appRepo, apartmentRepo, txRunner, recorder),
		Payments: services.NewPaymentService(
			processor,
			paymentRepo,
			couponRepo,
			cfg.Payment.Currency,
			cfg.Payment.MethodTypes,
		),
		Catalog:   services.NewCatalogService(apartmentRepo, announcementRepo, couponRepo),
		Dashboard: services.NewDashboardService(dashboardRepo, appRepo, paymentRepo),
		PingDB: func() error {
			return config.HealthCheck(db)
		},
		Metrics: metricsHandler,
	}
}

// Setup configures all routes for the application
func Setup(app *fiber.App, deps *Dependencies) {
	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(deps.Config.AppMode, deps.PingDB)
	authHandler := handlers.NewAuthHandler(deps.Tokens, deps.Config.Cookie)
	userHandler := handlers.NewUserHandler(deps.Users)
	applicationHandler := handlers.NewApplicationHandler(deps.Applications)
	paymentHandler := handlers.NewPaymentHandler(deps.Payments)
	catalogHandler := handlers.NewCatalogHandler(deps.Catalog)
	dashboardHandler := handlers.NewDashboardHandler(deps.Dashboard)

	// Health check & root routes
	app.Get("/", healthHandler.Root)
	app.Get("/health", healthHandler.HealthCheck)
	if deps.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(deps.Metrics))
	}

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	auth := middleware.RequireAuth(deps.Access)
	adminOnly := middleware.AdminOnly(deps.Access)
	memberOnly := middleware.MemberOnly(deps.Access)

	// API v1 group
	api := app.Group("/api/v1")
	api.Get("/", healthHandler.APIInfo)

	// Session tokens
	api.Post("/jwt", middleware.NoCacheHeaders(), middleware.AuthRateLimiter(), authHandler.IssueToken)
	api.Post("/logout", middleware.NoCacheHeaders(), authHandler.Logout)

	// User directory
	users := api.Group("/users")
	users.Post("/", userHandler.Register)
	users.Get("/", auth, adminOnly, userHandler.ListUsers)
	users.Get("/role/:role", auth, adminOnly, userHandler.ListByRole)
	users.Get("/admin/:email", auth, userHandler.CheckAdmin)
	users.Patch("/admin/:id", auth, adminOnly, userHandler.PromoteToAdmin)
	users.Post("/roles/reset", auth, adminOnly, userHandler.ResetRoles)
	users.Delete("/:id", auth, adminOnly, userHandler.DeleteUser)

	// Applications; static paths before /:id
	apply := api.Group("/apply")
	apply.Post("/", applicationHandler.Submit)
	apply.Get("/", applicationHandler.ListPending)
	apply.Get("/all", auth, adminOnly, applicationHandler.ListAll)
	apply.Get("/mine", auth, middleware.PrivateCacheHeaders(0), applicationHandler.ListMine)
	apply.Get("/:id", auth, adminOnly, applicationHandler.Get)
	apply.Patch("/:id/accept", auth, adminOnly, applicationHandler.Accept)
	apply.Patch("/:id/reject", auth, adminOnly, applicationHandler.Reject)

	// Payments
	api.Post("/create-payment-intent", auth, memberOnly, paymentHandler.CreateIntent)
	api.Post("/payments", paymentHandler.RecordPayment)
	api.Get("/payments", auth, memberOnly, middleware.PrivateCacheHeaders(0), paymentHandler.ListPayments)

	// Apartments
	api.Get("/apartments", middleware.PublicCache(catalogCacheAge), catalogHandler.ListApartments)
	api.Get("/apartments/:id", middleware.PublicCache(catalogCacheAge), catalogHandler.GetApartment)
	api.Post("/apartments", auth, adminOnly, catalogHandler.CreateApartment)

	// Announcements
	api.Get("/announcements", middleware.PublicCache(catalogCacheAge), catalogHandler.ListAnnouncements)
	api.Post("/announcement", auth, adminOnly, catalogHandler.CreateAnnouncement)

	// Coupons
	coupons := api.Group("/coupons")
	coupons.Get("/", catalogHandler.ListCoupons)
	coupons.Get("/all", auth, adminOnly, catalogHandler.ListAllCoupons)
	coupons.Post("/", auth, adminOnly, catalogHandler.CreateCoupon)
	coupons.Patch("/:id/availability", auth, adminOnly, catalogHandler.SetCouponAvailability)
	coupons.Delete("/:id", auth, adminOnly, catalogHandler.DeleteCoupon)

	// Dashboards
	dashboard := api.Group("/dashboard", auth, middleware.PrivateCacheHeaders(0))
	dashboard.Get("/admin", adminOnly, dashboardHandler.GetAdminDashboard)
	dashboard.Get("/member", memberOnly, dashboardHandler.GetMemberDashboard)
}
