package routes

import (
	"context"

	websocket "github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/NitishV2006/OneOrbit/internal/config"
	"github.com/NitishV2006/OneOrbit/internal/handlers"
	"github.com/NitishV2006/OneOrbit/internal/middleware"
	"github.com/NitishV2006/OneOrbit/internal/repository"
	"github.com/NitishV2006/OneOrbit/internal/services"
	feedws "github.com/NitishV2006/OneOrbit/internal/websocket"
)

// RegisterRoutes wires storage, services and handlers onto the app. With no
// database pool everything runs against an in-memory store, which is how the
// dev server and tests operate.
func RegisterRoutes(app *fiber.App, cfg *config.Config, db *pgxpool.Pool, logger *zap.Logger) error {
	var (
		userDataService *services.UserDataService
		authService     *services.AuthService
	)
	if db != nil {
		userDataService = services.NewUserDataService(repository.NewUserDataRepository(db), logger)
		authService = services.NewAuthService(repository.NewAccountRepository(db), userDataService, logger)
	} else {
		memory := repository.NewMemoryStore()
		userDataService = services.NewUserDataService(memory, logger)
		authService = services.NewAuthService(memory, userDataService, logger)
		logger.Warn("no DB_URL configured, using in-memory storage")
	}

	var analyzer services.TextAnalyzer
	if cfg.GeminiAPIKey != "" {
		analyzer = services.NewGeminiAnalysisService(cfg.GeminiBaseURL, cfg.GeminiAPIKey, cfg.GeminiModel, logger)
	} else {
		logger.Warn("no GEMINI_API_KEY configured, text analysis disabled")
	}

	feedHub := feedws.NewHub()
	go feedHub.Run()
	trioService := services.NewTrioService(userDataService, feedHub, logger)

	if err := authService.SeedDemoAccounts(context.Background()); err != nil {
		return err
	}

	authHandler := handlers.NewAuthHandler(authService, cfg.JWTSecret)
	taskHandler := handlers.NewTaskHandler(userDataService, analyzer)
	learningHandler := handlers.NewLearningHandler(userDataService)
	financeHandler := handlers.NewFinanceHandler(userDataService)
	healthHandler := handlers.NewHealthHandler(userDataService)
	reflectionHandler := handlers.NewReflectionHandler(userDataService, analyzer)
	connectHandler := handlers.NewConnectHandler(trioService, authService, userDataService, feedHub, cfg.JWTSecret)
	profileHandler := handlers.NewProfileHandler(authService, userDataService)
	dashboardHandler := handlers.NewDashboardHandler(userDataService)

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/login", authHandler.Login)
	auth.Post("/signup", authHandler.Signup)
	auth.Get("/me", middleware.AuthRequired(cfg.JWTSecret), authHandler.Me)

	v1 := api.Group("/v1", middleware.AuthRequired(cfg.JWTSecret))

	tasks := v1.Group("/tasks")
	tasks.Get("", taskHandler.ListTasks)
	tasks.Post("", taskHandler.CreateTask)
	tasks.Post("/analyze", taskHandler.AnalyzeTask)
	tasks.Put("/:id/complete", taskHandler.CompleteTask)

	learning := v1.Group("/learning")
	learning.Get("", learningHandler.ListItems)
	learning.Post("", learningHandler.CreateItem)
	learning.Post("/:id/sessions", learningHandler.RecordSession)

	finance := v1.Group("/finance")
	finance.Get("", financeHandler.Summary)
	finance.Post("/expenses", financeHandler.AddExpense)
	finance.Delete("/expenses/:id", financeHandler.DeleteExpense)
	finance.Put("/budget", financeHandler.SetBudget)

	health := v1.Group("/health-logs")
	health.Get("", healthHandler.Today)
	health.Post("", healthHandler.LogToday)

	reflections := v1.Group("/reflections")
	reflections.Get("", reflectionHandler.ListReflections)
	reflections.Post("", reflectionHandler.CreateReflection)
	reflections.Post("/extract-goals", reflectionHandler.ExtractGoals)

	connect := v1.Group("/connect")
	connect.Get("", connectHandler.GetFeed)
	connect.Post("/trio", connectHandler.CreateTrio)
	connect.Post("/check-ins", connectHandler.PostCheckIn)
	connect.Get("/activity", connectHandler.WeeklyActivity)

	profile := v1.Group("/profile")
	profile.Get("", profileHandler.GetProfile)
	profile.Put("", profileHandler.UpdateProfile)
	profile.Put("/avatar", profileHandler.UpdateAvatar)

	v1.Get("/dashboard", dashboardHandler.GetDashboard)

	api.Use("/v1/ws", connectHandler.WebSocketAuth)
	api.Get("/v1/ws", websocket.New(connectHandler.HandleWebSocket))

	return nil
}
