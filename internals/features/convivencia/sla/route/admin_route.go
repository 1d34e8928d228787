// file: internals/features/convivencia/sla/route/admin_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	slaCtl "github.com/Hluengo/colegios-sub000/internals/features/convivencia/sla/controller"
)

func PlazosEtapaAdminRoutes(api fiber.Router, db *gorm.DB) {
	ctl := slaCtl.NewPlazoEtapaController(db, nil)

	api.Get("/plazos-etapa", ctl.List)
	api.Put("/plazos-etapa", ctl.Upsert)
	api.Delete("/plazos-etapa/:etapa", ctl.Delete)
	api.Post("/plazos-etapa/seed", ctl.Seed)
}
