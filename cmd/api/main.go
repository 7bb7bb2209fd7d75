package main

import (
	"log"
	"math/rand"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"go-shop-inventory/internal/handler"
	"go-shop-inventory/internal/model"
	"go-shop-inventory/internal/repository"
	"go-shop-inventory/internal/seed"
	"go-shop-inventory/internal/service"
	"go-shop-inventory/internal/ws"
	"go-shop-inventory/pkg/database"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
)

func main() {
	// 1. Load Env
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	// 2. Setup Database (single local file, closed on every exit path)
	db, closeDB, err := database.Connect(os.Getenv("DB_PATH"))
	if err != nil {
		log.Fatal("Failed to open database. \n", err)
	}
	defer closeDB()

	if err := db.AutoMigrate(&model.Product{}, &model.Sale{}); err != nil {
		closeDB()
		log.Fatal("Failed to migrate schema. \n", err)
	}

	// 3. Optional demo seeding
	if v := strings.ToLower(os.Getenv("DB_SEED")); v == "1" || v == "true" || v == "yes" {
		rng := rand.New(rand.NewSource(time.Now().UnixNano()))
		if err := seed.Load(db, rng); err != nil {
			log.Printf("Warning: Failed to load sample data: %v", err)
		} else {
			log.Println("Sample data loaded")
		}
	}

	// 4. Setup WebSocket Hub
	wsHub := ws.NewHub()
	go wsHub.Run()

	// 5. Dependency Injection (Wiring Layers)
	productRepo := repository.NewProductRepo(db)
	saleRepo := repository.NewSaleRepo(db)

	invService := service.NewInventoryService(productRepo, saleRepo, db, wsHub)
	dashService := service.NewDashboardService(productRepo, saleRepo)

	invHandler := handler.NewInventoryHandler(invService)
	dashHandler := handler.NewDashboardHandler(dashService)

	// 6. Setup Fiber
	app := fiber.New(fiber.Config{
		AppName: "Electric Shop Inventory v1.0",
	})

	app.Use(logger.New())  // Logging request
	app.Use(recover.New()) // Panic recovery
	app.Use(cors.New())    // CORS

	// 7. Routes
	handler.RegisterRoutes(app, invHandler, dashHandler)

	// WebSocket Route (live stock updates for the dashboard)
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return c.SendStatus(fiber.StatusUpgradeRequired)
	})
	app.Get("/ws", websocket.New(func(c *websocket.Conn) {
		wsHub.Register <- c
		defer func() { wsHub.Unregister <- c }()

		for {
			// Keep alive loop
			if _, _, err := c.ReadMessage(); err != nil {
				break
			}
		}
	}))

	// 8. Graceful Shutdown
	go func() {
		port := os.Getenv("PORT")
		if port == "" {
			port = "3000"
		}
		if err := app.Listen(":" + port); err != nil {
			log.Panic(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Println("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}
