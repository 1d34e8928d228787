// file: internals/features/convivencia/estadisticas/controller/estadisticas_controller.go
package controller

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/Hluengo/colegios-sub000/internals/features/convivencia/estadisticas/service"
	helper "github.com/Hluengo/colegios-sub000/internals/helpers"
)

type EstadisticasController struct {
	Svc *service.EstadisticasService
}

func NewEstadisticasController(db *gorm.DB) *EstadisticasController {
	return &EstadisticasController{Svc: service.NewEstadisticasService(db)}
}

// GET /estadisticas/resumen
func (ctl *EstadisticasController) Resumen(c *fiber.Ctx) error {
	colegioID, err := helper.GetActiveColegioID(c)
	if err != nil {
		return err
	}
	out, err := ctl.Svc.Resumen(c.UserContext(), colegioID)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonOK(c, "OK", out)
}
