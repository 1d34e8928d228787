package middlewares

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/etag"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"gorm.io/gorm"

	loggerMw "github.com/Hluengo/colegios-sub000/internals/middlewares/logger"
)

func SetupMiddlewares(app *fiber.App, db *gorm.DB) {
	app.Use(RecoveryMiddleware())
	app.Use(requestid.New())
	app.Use(CorsMiddleware())
	app.Use(compress.New())
	app.Use(etag.New())
	app.Use(loggerMw.LoggerMiddleware())
	app.Use(GlobalRateLimiter())
	app.Use(DBMiddleware(db))
}
