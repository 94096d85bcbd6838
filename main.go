package main

import (
	"log"

	"kisanmandi_backend/config"
	"kisanmandi_backend/handlers"
	"kisanmandi_backend/internal/advisor"
	"kisanmandi_backend/internal/ws"
	"kisanmandi_backend/middleware"
	"kisanmandi_backend/models"
	"kisanmandi_backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func main() {
	cfg := config.LoadConfig()
	utils.SetJWTSecret(cfg.JWTSecret)

	db, err := gorm.Open(sqlite.Open(cfg.DatabasePath), &gorm.Config{})
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	if cfg.ResetDB {
		// RESET_DB=true rebuilds the schema and seeds the demo accounts
		if err := config.ResetAndMigrate(db); err != nil {
			log.Fatal("Failed to reset database:", err)
		}
	} else if err := config.Migrate(db); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	hub := ws.NewHub()
	go hub.Run()

	engine := advisor.NewEngine(cfg.OpenAIAPIKey)

	app := fiber.New(fiber.Config{
		AppName:      "Kisan Mandi Backend",
		ServerHeader: "Kisan Mandi Server/1.0",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			// Default 500 statuscode
			code := fiber.StatusInternalServerError
			msg := "Internal Server Error"

			// Retrieve the custom statuscode if it's a *fiber.Error
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
				msg = e.Message
			}

			return c.Status(code).JSON(fiber.Map{
				"error":   true,
				"message": msg,
			})
		},
	})

	middleware.SetupMiddleware(app)

	// Health Check Endpoint
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(models.SuccessResponse("API is healthy", nil))
	})

	authHandler := handlers.NewAuthHandler(db)
	cropHandler := handlers.NewCropHandler(db, hub)
	priceHandler := handlers.NewPriceHandler(db, hub)
	categoryHandler := handlers.NewCategoryHandler(db)
	transactionHandler := handlers.NewTransactionHandler(db, cfg.RazorpayKeyID)
	chatHandler := handlers.NewChatHandler(db, engine)
	uploadHandler := handlers.NewUploadHandler("./uploads/crops")
	feedHandler := handlers.NewFeedHandler(hub)

	api := app.Group("/api")

	// Authentication
	api.Post("/signup", authHandler.Signup)
	api.Post("/login", authHandler.Login)
	api.Post("/logout", utils.AuthMiddleware, authHandler.Logout)
	api.Get("/user", utils.AuthMiddleware, authHandler.GetUser)

	// Marketplace
	api.Get("/crops", cropHandler.GetCrops)
	api.Get("/crops/:id", cropHandler.GetCrop)
	api.Post("/crops", utils.AuthMiddleware, cropHandler.CreateCrop)
	api.Put("/crops/:id", utils.AuthMiddleware, cropHandler.UpdateCrop)
	api.Delete("/crops/:id", utils.AuthMiddleware, cropHandler.DeleteCrop)
	api.Get("/my-crops", utils.AuthMiddleware, cropHandler.GetMyCrops)
	api.Get("/categories", categoryHandler.GetCategories)

	// Prices
	api.Get("/prices", priceHandler.GetPrices)
	api.Post("/prices", utils.AuthMiddleware, priceHandler.CreatePrice)

	// Transactions & payment
	api.Post("/transactions", utils.AuthMiddleware, transactionHandler.CreateTransaction)
	api.Get("/transactions/:id", utils.AuthMiddleware, transactionHandler.GetTransaction)
	api.Post("/transactions/:id/payment", utils.AuthMiddleware, transactionHandler.UpdatePayment)

	// Advisor chat
	api.Post("/chat", utils.AuthMiddleware, chatHandler.Chat)
	api.Get("/chat/history", utils.AuthMiddleware, chatHandler.GetHistory)

	// Uploads
	api.Post("/upload", utils.AuthMiddleware, uploadHandler.UploadImage)

	// Market event feed
	app.Use("/ws/market", feedHandler.UpgradeMiddleware)
	app.Get("/ws/market", feedHandler.Handler())

	// Static pages. Dashboard and marketplace require a valid session;
	// the advisor, chatbot, prices and payment pages are public.
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendFile("./frontend/login.html")
	})
	app.Get("/dashboard.html", utils.AuthMiddleware, func(c *fiber.Ctx) error {
		return c.SendFile("./frontend/dashboard.html")
	})
	app.Get("/marketplace.html", utils.AuthMiddleware, func(c *fiber.Ctx) error {
		return c.SendFile("./frontend/marketplace.html")
	})
	app.Static("/uploads", "./uploads")
	app.Static("/", "./frontend")

	// Unmatched paths answer 404 JSON
	middleware.SetupErrorHandler(app)

	log.Printf("Server starting on host %s in port %s mode", cfg.Host, cfg.AppPort)

	if err := app.Listen(cfg.Host + ":" + cfg.AppPort); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
