// file: internals/features/convivencia/casos/route/convivencia_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	casoCtl "github.com/Hluengo/colegios-sub000/internals/features/convivencia/casos/controller"
)

func CasosRoutes(api fiber.Router, db *gorm.DB) {
	ctl := casoCtl.NewCasoController(db, nil)

	api.Post("/casos", ctl.Create)
	api.Get("/casos", ctl.List)
	api.Get("/casos/:id", ctl.GetByID)
	api.Patch("/casos/:id/cerrar", ctl.Close)
	api.Delete("/casos/:id", ctl.Delete)
	api.Post("/casos/:id/restaurar", ctl.Restore)

	api.Post("/casos/:id/seguimiento/iniciar", ctl.Iniciar)
	api.Get("/casos/:id/seguimientos", ctl.ListarSeguimientos)
	api.Patch("/seguimientos/:id/resolver", ctl.Resolver)
	api.Post("/casos/resumen-plazos", ctl.ResumenPlazos)
}
