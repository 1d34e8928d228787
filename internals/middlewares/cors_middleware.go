package middlewares

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"

	"github.com/Hluengo/colegios-sub000/internals/configs"
)

// CorsMiddleware arma el middleware CORS; orígenes extra vía CORS_ORIGINS.
func CorsMiddleware() fiber.Handler {
	origins := []string{
		"http://localhost:5173",
		"http://127.0.0.1:5500",
	}
	if extra := strings.TrimSpace(configs.CORSOrigins); extra != "" {
		origins = append(origins, strings.Split(extra, ",")...)
	}
	return cors.New(cors.Config{
		AllowOrigins:     strings.Join(origins, ", "),
		AllowMethods:     "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, X-Colegio-ID",
		AllowCredentials: true,
	})
}
