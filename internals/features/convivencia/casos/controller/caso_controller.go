// file: internals/features/convivencia/casos/controller/caso_controller.go
package controller

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Hluengo/colegios-sub000/internals/configs"
	"github.com/Hluengo/colegios-sub000/internals/features/convivencia/casos/dto"
	"github.com/Hluengo/colegios-sub000/internals/features/convivencia/casos/service"
	slaService "github.com/Hluengo/colegios-sub000/internals/features/convivencia/sla/service"
	helper "github.com/Hluengo/colegios-sub000/internals/helpers"
)

/* ============================================
   Controller
============================================ */

type CasoController struct {
	Svc       *service.WorkflowService
	Validator *validator.Validate
}

func NewCasoController(db *gorm.DB, v *validator.Validate) *CasoController {
	if v == nil {
		v = validator.New()
	}
	return &CasoController{
		Svc:       service.NewWorkflowService(db, slaService.NewRegistryService(db, configs.SLACacheTTL)),
		Validator: v,
	}
}

/* ============================================
   POST /casos
============================================ */

func (ctl *CasoController) Create(c *fiber.Ctx) error {
	colegioID, err := helper.GetActiveColegioID(c)
	if err != nil {
		return err
	}

	var p dto.CasoCreateDTO
	if err := c.BodyParser(&p); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload no válido")
	}
	p.Normalize()
	if err := ctl.Validator.Struct(&p); err != nil {
		return helper.JsonError(c, fiber.StatusUnprocessableEntity, err.Error())
	}

	ent, err := ctl.Svc.CrearCaso(c.UserContext(), p.ToModel(colegioID))
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonCreated(c, "Caso creado", dto.FromModel(ent))
}

/* ============================================
   GET /casos/:id
============================================ */

func (ctl *CasoController) GetByID(c *fiber.Ctx) error {
	colegioID, err := helper.GetActiveColegioID(c)
	if err != nil {
		return err
	}

	ent, err := ctl.Svc.ObtenerCaso(c.UserContext(), colegioID, c.Params("id"))
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonOK(c, "OK", dto.FromModel(ent))
}

/* ============================================
   GET /casos  (paginado, con badge de urgencia)
============================================ */

func (ctl *CasoController) List(c *fiber.Ctx) error {
	colegioID, err := helper.GetActiveColegioID(c)
	if err != nil {
		return err
	}

	var q dto.CasoFilterDTO
	if err := c.QueryParser(&q); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Filtros no válidos")
	}
	q.Normalize()
	if err := ctl.Validator.Struct(&q); err != nil {
		return helper.JsonError(c, fiber.StatusUnprocessableEntity, err.Error())
	}

	paging := helper.ResolvePaging(c, 20, 100)
	rows, total, err := ctl.Svc.ListarCasos(c.UserContext(), service.ListarCasosParams{
		ColegioID:     colegioID,
		Estado:        q.Estado,
		ExcluirEstado: q.ExcluirEstado,
		Buscar:        q.Buscar,
		Page:          paging.Page,
		PerPage:       paging.PerPage,
	})
	if err != nil {
		return helper.JsonAppError(c, err)
	}

	items := dto.FromModels(rows)
	if len(rows) > 0 {
		ids := make([]uuid.UUID, 0, len(rows))
		for _, r := range rows {
			ids = append(ids, r.CasoID)
		}
		resumen, err := ctl.Svc.ResumenPlazosMuchos(c.UserContext(), colegioID, ids)
		if err != nil {
			return helper.JsonAppError(c, err)
		}
		return helper.JsonList(c, "OK", fiber.Map{
			"casos":   items,
			"resumen": resumen,
		}, helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage, len(rows)))
	}

	return helper.JsonList(c, "OK", fiber.Map{
		"casos":   items,
		"resumen": fiber.Map{},
	}, helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage, len(rows)))
}

/* ============================================
   PATCH /casos/:id/cerrar
============================================ */

func (ctl *CasoController) Close(c *fiber.Ctx) error {
	colegioID, err := helper.GetActiveColegioID(c)
	if err != nil {
		return err
	}

	var p dto.CasoCierreDTO
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&p); err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Payload no válido")
		}
	}

	ent, err := ctl.Svc.CerrarCaso(c.UserContext(), colegioID, c.Params("id"), p.CasoCierre)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonUpdated(c, "Caso cerrado", dto.FromModel(ent))
}

/* ============================================
   DELETE /casos/:id  (archivar)
============================================ */

func (ctl *CasoController) Delete(c *fiber.Ctx) error {
	colegioID, err := helper.GetActiveColegioID(c)
	if err != nil {
		return err
	}
	if err := ctl.Svc.EliminarCaso(c.UserContext(), colegioID, c.Params("id")); err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonDeleted(c, "Caso archivado", fiber.Map{"caso_id": c.Params("id")})
}

/* ============================================
   POST /casos/:id/restaurar
============================================ */

func (ctl *CasoController) Restore(c *fiber.Ctx) error {
	colegioID, err := helper.GetActiveColegioID(c)
	if err != nil {
		return err
	}
	ent, err := ctl.Svc.RestaurarCaso(c.UserContext(), colegioID, c.Params("id"))
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonUpdated(c, "Caso restaurado", dto.FromModel(ent))
}
