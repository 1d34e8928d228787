// file: internals/features/convivencia/sla/controller/plazo_etapa_controller.go
package controller

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/Hluengo/colegios-sub000/internals/configs"
	"github.com/Hluengo/colegios-sub000/internals/features/convivencia/sla/dto"
	"github.com/Hluengo/colegios-sub000/internals/features/convivencia/sla/service"
	helper "github.com/Hluengo/colegios-sub000/internals/helpers"
)

/* ============================================
   Controller
============================================ */

type PlazoEtapaController struct {
	Svc       *service.RegistryService
	Validator *validator.Validate
}

func NewPlazoEtapaController(db *gorm.DB, v *validator.Validate) *PlazoEtapaController {
	if v == nil {
		v = validator.New()
	}
	return &PlazoEtapaController{
		Svc:       service.NewRegistryService(db, configs.SLACacheTTL),
		Validator: v,
	}
}

/* ============================================
   GET /plazos-etapa
============================================ */

func (ctl *PlazoEtapaController) List(c *fiber.Ctx) error {
	colegioID, err := helper.GetActiveColegioID(c)
	if err != nil {
		return err
	}

	rows, err := ctl.Svc.Listar(c.UserContext(), colegioID)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonOK(c, "OK", dto.FromModels(rows))
}

/* ============================================
   PUT /plazos-etapa  (upsert por etapa)
============================================ */

func (ctl *PlazoEtapaController) Upsert(c *fiber.Ctx) error {
	colegioID, err := helper.GetActiveColegioID(c)
	if err != nil {
		return err
	}

	var p dto.PlazoEtapaUpsertDTO
	if err := c.BodyParser(&p); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload no válido")
	}
	p.Normalize()
	if err := ctl.Validator.Struct(&p); err != nil {
		return helper.JsonError(c, fiber.StatusUnprocessableEntity, err.Error())
	}

	ent, err := ctl.Svc.UpsertEtapa(c.UserContext(), p.ToModel(colegioID))
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonUpdated(c, "SLA de etapa guardado", dto.FromModel(ent))
}

/* ============================================
   DELETE /plazos-etapa/:etapa
============================================ */

func (ctl *PlazoEtapaController) Delete(c *fiber.Ctx) error {
	colegioID, err := helper.GetActiveColegioID(c)
	if err != nil {
		return err
	}

	etapa := c.Params("etapa")
	if err := ctl.Svc.EliminarEtapa(c.UserContext(), colegioID, etapa); err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonDeleted(c, "SLA de etapa eliminado", fiber.Map{"plazo_etapa_etapa": etapa})
}

/* ============================================
   POST /plazos-etapa/seed  (alta de colegio)
============================================ */

func (ctl *PlazoEtapaController) Seed(c *fiber.Ctx) error {
	colegioID, err := helper.GetActiveColegioID(c)
	if err != nil {
		return err
	}
	if err := ctl.Svc.SeedDefaults(c.UserContext(), colegioID); err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonCreated(c, "SLA por defecto sembrados", nil)
}
