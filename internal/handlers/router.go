package handlers

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/splitkaro/backend/internal/auth"
	"github.com/splitkaro/backend/internal/middleware"
	"github.com/splitkaro/backend/internal/notify"
	"github.com/splitkaro/backend/internal/service"
	"github.com/splitkaro/backend/internal/storage"
)

// AppConfig carries everything needed to assemble the HTTP application.
type AppConfig struct {
	Store       storage.Store
	Notifier    notify.Notifier
	JWTManager  *auth.JWTManager
	Logger      *slog.Logger
	FrontendURL string
	InviteLink  string
}

// NewApp builds the fiber application with all routes and middleware wired.
func NewApp(cfg AppConfig) *fiber.App {
	authenticator := auth.NewPasswordAuthenticator(cfg.Store)
	groupSvc := service.NewGroupService(cfg.Store, cfg.Notifier, cfg.Logger, cfg.InviteLink)
	txnSvc := service.NewTransactionService(cfg.Store, cfg.Logger)
	overviewSvc := service.NewOverviewService(cfg.Store, cfg.Logger)

	authHandler := NewAuthHandler(authenticator, cfg.JWTManager, cfg.Store)
	groupsHandler := NewGroupsHandler(groupSvc)
	txnsHandler := NewTransactionsHandler(txnSvc)
	overviewHandler := NewOverviewHandler(overviewSvc)

	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})
	app.Use(recover.New(recover.Config{EnableStackTrace: true}))
	app.Use(middleware.CORS(cfg.FrontendURL))
	app.Use(middleware.RequestLogger(cfg.Logger))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api")
	requireAuth := middleware.RequireAuth(cfg.JWTManager)

	authRoutes := api.Group("/auth")
	authRoutes.Post("/register", authHandler.Register)
	authRoutes.Post("/login", authHandler.Login)
	authRoutes.Get("/me", requireAuth, authHandler.Me)
	authRoutes.Put("/me", requireAuth, authHandler.UpdateMe)

	groupRoutes := api.Group("/groups", requireAuth)
	groupRoutes.Post("/", groupsHandler.Create)
	groupRoutes.Get("/", groupsHandler.List)
	groupRoutes.Get("/:id", groupsHandler.Get)
	groupRoutes.Put("/:id", groupsHandler.Update)
	groupRoutes.Delete("/:id", groupsHandler.Delete)
	groupRoutes.Post("/:id/members", groupsHandler.AddMembers)
	groupRoutes.Post("/:id/invite", groupsHandler.Invite)
	groupRoutes.Post("/:id/transactions", txnsHandler.Create)
	groupRoutes.Get("/:id/transactions", txnsHandler.List)
	groupRoutes.Get("/:id/overview", overviewHandler.Get)

	txnRoutes := api.Group("/transactions", requireAuth)
	txnRoutes.Put("/:id", txnsHandler.Update)
	txnRoutes.Delete("/:id", txnsHandler.Delete)

	return app
}
