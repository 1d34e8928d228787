// file: internals/route/index.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	casosRoute "github.com/Hluengo/colegios-sub000/internals/features/convivencia/casos/route"
	statsRoute "github.com/Hluengo/colegios-sub000/internals/features/convivencia/estadisticas/route"
	slaRoute "github.com/Hluengo/colegios-sub000/internals/features/convivencia/sla/route"
)

// SetupRoutes monta todo bajo /api/c/:colegio_id. El tenant viaja en el path
// (o en X-Colegio-ID como fallback); sin tenant no hay consulta.
func SetupRoutes(app *fiber.App, db *gorm.DB) {
	api := app.Group("/api/c/:colegio_id")

	casosRoute.CasosRoutes(api, db)
	slaRoute.PlazosEtapaAdminRoutes(api, db)
	statsRoute.EstadisticasRoutes(api, db)
}
