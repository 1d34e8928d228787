// file: internals/features/convivencia/casos/controller/seguimiento_controller.go
package controller

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/Hluengo/colegios-sub000/internals/features/convivencia/casos/dto"
	helper "github.com/Hluengo/colegios-sub000/internals/helpers"
)

/* ============================================
   POST /casos/:id/seguimiento/iniciar
============================================ */

// Iniciar abre el debido proceso. Responde started=false (200, no error)
// cuando el caso no existe: el inicio es best-effort para el caller.
func (ctl *CasoController) Iniciar(c *fiber.Ctx) error {
	started, err := ctl.Svc.IniciarSeguimiento(c.UserContext(), c.Params("id"))
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonOK(c, "OK", fiber.Map{"started": started})
}

/* ============================================
   GET /casos/:id/seguimientos
============================================ */

func (ctl *CasoController) ListarSeguimientos(c *fiber.Ctx) error {
	colegioID, err := helper.GetActiveColegioID(c)
	if err != nil {
		return err
	}
	casoID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Id de caso no válido")
	}

	rows, err := ctl.Svc.ListarSeguimientos(c.UserContext(), colegioID, casoID)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonOK(c, "OK", dto.SeguimientosFromModels(rows))
}

/* ============================================
   PATCH /seguimientos/:id/resolver
============================================ */

func (ctl *CasoController) Resolver(c *fiber.Ctx) error {
	colegioID, err := helper.GetActiveColegioID(c)
	if err != nil {
		return err
	}
	segID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Id de seguimiento no válido")
	}

	var p dto.SeguimientoResolverDTO
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&p); err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Payload no válido")
		}
		if err := ctl.Validator.Struct(&p); err != nil {
			return helper.JsonError(c, fiber.StatusUnprocessableEntity, err.Error())
		}
	}

	ent, err := ctl.Svc.ResolverSeguimiento(c.UserContext(), colegioID, segID,
		p.SeguimientoObservaciones, p.SeguimientoDetalle, p.SeguimientoEvidencias)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonUpdated(c, "Seguimiento resuelto", dto.SeguimientoFromModel(ent))
}

/* ============================================
   POST /casos/resumen-plazos  (lote)
============================================ */

type resumenPlazosRequest struct {
	CasoIDs []uuid.UUID `json:"caso_ids"`
}

func (ctl *CasoController) ResumenPlazos(c *fiber.Ctx) error {
	colegioID, err := helper.GetActiveColegioID(c)
	if err != nil {
		return err
	}

	var p resumenPlazosRequest
	if err := c.BodyParser(&p); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload no válido")
	}

	resumen, err := ctl.Svc.ResumenPlazosMuchos(c.UserContext(), colegioID, p.CasoIDs)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonOK(c, "OK", resumen)
}
