// file: internals/features/convivencia/estadisticas/route/estadisticas_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	statsCtl "github.com/Hluengo/colegios-sub000/internals/features/convivencia/estadisticas/controller"
)

func EstadisticasRoutes(api fiber.Router, db *gorm.DB) {
	ctl := statsCtl.NewEstadisticasController(db)

	api.Get("/estadisticas/resumen", ctl.Resumen)
}
