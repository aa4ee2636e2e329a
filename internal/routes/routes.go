// Package routes wires repositories, services and handlers into the fiber
// route tree.
package routes

import (
	"investplus/internal/config"
	"investplus/internal/handlers"
	"investplus/internal/middleware"
	"investplus/internal/repositories"
	"investplus/internal/repositories/cache"
	"investplus/internal/services/auth"
	"investplus/internal/services/demo"
	"investplus/internal/services/investment"
	"investplus/internal/services/ledger"
	"investplus/internal/services/referral"
	"investplus/internal/services/request"
	"investplus/internal/services/user"
	"investplus/internal/utils"

	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"
)

// SetupRoutes builds the full dependency graph and registers every route.
func SetupRoutes(app *fiber.App, db *gorm.DB, cacheSvc *cache.CacheService) {
	// Repositories
	userRepo := repositories.NewUserRepository(db, cacheSvc)
	ledgerRepo := repositories.NewLedgerRepository(db)
	investmentRepo := repositories.NewInvestmentRepository(db)
	planRepo := repositories.NewPlanRepository(db, cacheSvc)
	requestRepo := repositories.NewRequestRepository(db)

	// Metrics
	registry := prometheus.NewRegistry()
	ledgerMetrics := ledger.NewPrometheusCollector(registry)

	// Services
	ledgerSvc := ledger.NewService(ledgerRepo, cacheSvc, ledger.Config{}, ledgerMetrics)
	referralSvc := referral.NewService(userRepo, ledgerSvc, referral.Config{
		CommissionPercent: config.GetFloatEnv("REFERRAL_COMMISSION_PERCENT", referral.DefaultCommissionPercent),
		BaseURL:           config.GetEnv("PUBLIC_BASE_URL", "http://localhost:3000"),
	})
	investmentSvc := investment.NewService(investmentRepo, planRepo, userRepo, ledgerSvc, referralSvc, cacheSvc, 0)
	requestSvc := request.NewService(requestRepo, ledgerSvc, cacheSvc, request.Config{
		MinWithdrawal: config.GetFloatEnv("MIN_WITHDRAWAL", request.DefaultMinWithdrawal),
		GstPercent:    config.GetFloatEnv("GST_PERCENT", request.DefaultGstPercent),
	})
	authSvc := auth.NewService(userRepo, ledgerRepo, ledgerSvc, auth.Config{
		SignupBonus: config.GetFloatEnv("SIGNUP_BONUS", auth.DefaultSignupBonus),
	}, auth.TokenFuncs{
		Generate: utils.GenerateTokens,
		Parse:    utils.ParseClaims,
	})
	userSvc := user.NewService(userRepo, ledgerRepo, ledgerSvc)
	demoSvc := demo.NewService()

	// Handlers
	authHandler := handlers.NewAuthHandler(authSvc)
	userHandler := handlers.NewUserHandler(userSvc, ledgerSvc, referralSvc)
	productHandler := handlers.NewProductHandler(planRepo, demoSvc)
	investmentHandler := handlers.NewInvestmentHandler(investmentSvc)
	requestHandler := handlers.NewRequestHandler(requestSvc)
	adminHandler := handlers.NewAdminHandler(userSvc, requestSvc, planRepo, ledgerSvc)
	healthHandler := handlers.NewHealthHandler(db, cacheSvc)

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Welcome to the InvestPlus API",
			"docs":    "/api",
		})
	})
	app.Get("/health", healthHandler.Check)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(registry, promhttp.HandlerOpts{
		ErrorHandling: promhttp.ContinueOnError,
	})))

	api := app.Group("/api")

	// Public endpoints
	api.Post("/register", authHandler.Register)
	api.Post("/login", authHandler.Login)
	api.Post("/refresh", authHandler.RefreshToken)
	api.Get("/products", productHandler.ListPlans)
	api.Get("/products/:id", productHandler.GetPlan)
	api.Get("/stats/withdrawals", productHandler.WithdrawalFeed)

	// Authenticated endpoints
	authMiddleware := middleware.NewAuthMiddleware(userRepo)
	protected := api.Use(authMiddleware.Handler)

	protected.Post("/logout", authHandler.Logout)
	protected.Post("/change-password", authHandler.ChangePassword)

	protected.Get("/me", userHandler.Me)
	protected.Get("/financial-summary", userHandler.FinancialSummary)
	protected.Get("/referral-link", userHandler.ReferralLink)
	protected.Get("/transactions", userHandler.Transactions)

	protected.Post("/investments", investmentHandler.Purchase)
	protected.Get("/investments", investmentHandler.List)
	protected.Post("/investments/:id/claim", investmentHandler.Claim)

	protected.Post("/withdrawals", requestHandler.SubmitWithdrawal)
	protected.Get("/withdrawals", requestHandler.MyWithdrawals)
	protected.Post("/recharges", requestHandler.SubmitRecharge)
	protected.Get("/recharges", requestHandler.MyRecharges)

	// Admin endpoints
	admin := app.Group("/api/admin", authMiddleware.Handler, middleware.AdminAuthMiddleware)

	admin.Get("/users", adminHandler.ListUsers)
	admin.Get("/users/:id", adminHandler.GetUser)
	admin.Post("/users/:id/adjust", adminHandler.AdjustBalance)
	admin.Get("/users/:id/reconcile", adminHandler.Reconcile)

	admin.Get("/withdrawals/pending", adminHandler.PendingWithdrawals)
	admin.Post("/withdrawals/:id/approve", adminHandler.ApproveWithdrawal)
	admin.Post("/withdrawals/:id/reject", adminHandler.RejectWithdrawal)
	admin.Get("/recharges/pending", adminHandler.PendingRecharges)
	admin.Post("/recharges/:id/approve", adminHandler.ApproveRecharge)
	admin.Post("/recharges/:id/reject", adminHandler.RejectRecharge)

	admin.Get("/products", adminHandler.ListAllPlans)
	admin.Post("/products", adminHandler.CreatePlan)
	admin.Put("/products/:id", adminHandler.UpdatePlan)
}
