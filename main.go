package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"

	"github.com/Hluengo/colegios-sub000/internals/configs"
	database "github.com/Hluengo/colegios-sub000/internals/databases"
	"github.com/Hluengo/colegios-sub000/internals/middlewares"
	"github.com/Hluengo/colegios-sub000/internals/route"
)

func main() {
	configs.LoadEnv()

	database.ConnectDB()
	database.TunePool()
	database.WarmUpQueries()

	app := fiber.New(fiber.Config{
		AppName:      "colegios-convivencia",
		JSONEncoder:  sonic.Marshal,
		JSONDecoder:  sonic.Unmarshal,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	})

	middlewares.SetupMiddlewares(app, database.DB)

	inicio := time.Now()
	app.Get("/healthz", func(c *fiber.Ctx) error {
		uptime := time.Since(inicio).Round(time.Second).String()
		if err := database.Ping(); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"status": "degraded",
				"db":     err.Error(),
				"uptime": uptime,
			})
		}
		return c.JSON(fiber.Map{"status": "ok", "uptime": uptime})
	})

	route.SetupRoutes(app, database.DB)

	// Shutdown ordenado: deja drenar requests en vuelo antes de cortar.
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		log.Println("⏳ Apagando servidor...")
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			log.Printf("shutdown err: %v", err)
		}
	}()

	port := configs.GetEnv("PORT", "8080")
	log.Printf("🚀 colegios-convivencia escuchando en :%s", port)
	if err := app.Listen(":" + port); err != nil {
		log.Fatalf("❌ server: %v", err)
	}
	log.Println("✅ Servidor detenido.")
}
