// file: internals/features/convivencia/casos/service/listar_service.go
package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/Hluengo/colegios-sub000/internals/apperr"
	database "github.com/Hluengo/colegios-sub000/internals/databases"
	"github.com/Hluengo/colegios-sub000/internals/features/convivencia/casos/model"
)

// ListarCasosParams: filtros del listado. ColegioID es obligatorio; una
// consulta sin tenant no degrada a "todos los colegios", es error duro.
type ListarCasosParams struct {
	ColegioID     uuid.UUID
	Estado        *string
	ExcluirEstado *string
	Buscar        *string
	Page          int // 1-indexado
	PerPage       int
}

type listarResultado struct {
	Rows  []model.CasoModel
	Total int64
}

// ListarCasos devuelve la página pedida más el total sin paginar, orden
// estable por fecha de creación descendente.
func (s *WorkflowService) ListarCasos(ctx context.Context, p ListarCasosParams) ([]model.CasoModel, int64, error) {
	if p.ColegioID == uuid.Nil {
		return nil, 0, apperr.Validacion("Se requiere scope de colegio para listar casos")
	}
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PerPage < 1 {
		p.PerPage = 20
	}

	res, err := database.WithRetry(ctx, "casos.listar", func() (listarResultado, error) {
		tx := s.DB.WithContext(ctx).Model(&model.CasoModel{}).
			Where("caso_colegio_id = ?", p.ColegioID)

		if p.Estado != nil && strings.TrimSpace(*p.Estado) != "" {
			tx = tx.Where("caso_estado = ?", strings.TrimSpace(*p.Estado))
		}
		if p.ExcluirEstado != nil && strings.TrimSpace(*p.ExcluirEstado) != "" {
			tx = tx.Where("caso_estado <> ?", strings.TrimSpace(*p.ExcluirEstado))
		}
		if p.Buscar != nil {
			if q := strings.TrimSpace(*p.Buscar); q != "" {
				like := "%" + q + "%"
				tx = tx.Where(
					"(caso_estudiante_nombre ILIKE ? OR caso_curso ILIKE ? OR caso_conducta ILIKE ?)",
					like, like, like,
				)
			}
		}

		var out listarResultado
		if err := tx.Count(&out.Total).Error; err != nil {
			return listarResultado{}, err
		}
		err := tx.
			Order("caso_created_at DESC").
			Offset((p.Page - 1) * p.PerPage).
			Limit(p.PerPage).
			Find(&out.Rows).Error
		return out, err
	})
	if err != nil {
		if apperr.EsTransitorio(err) {
			return nil, 0, err
		}
		return nil, 0, apperr.Almacen(err)
	}
	return res.Rows, res.Total, nil
}
