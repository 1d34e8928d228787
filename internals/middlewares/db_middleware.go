package middlewares

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// DBMiddleware agrega la conexión db al context de la request
func DBMiddleware(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals("db", db)
		return c.Next()
	}
}
