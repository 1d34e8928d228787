// file: internals/features/convivencia/casos/service/plazos_service.go
package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/Hluengo/colegios-sub000/internals/apperr"
	"github.com/Hluengo/colegios-sub000/internals/constants"
	database "github.com/Hluengo/colegios-sub000/internals/databases"
	"github.com/Hluengo/colegios-sub000/internals/features/convivencia/casos/dto"
	"github.com/Hluengo/colegios-sub000/internals/features/convivencia/casos/model"
	"github.com/Hluengo/colegios-sub000/internals/features/convivencia/urgencia"
	"github.com/Hluengo/colegios-sub000/internals/helpers/fechas"
)

// UmbralProximoDias: a cuántos días hábiles del vencimiento un plazo pasa de
// "al día" a "próximo".
const UmbralProximoDias = 3

// ResumenPlazosMuchos calcula el badge de urgencia de un lote de casos en dos
// consultas (seguimientos abiertos + casos), no una por caso. El vencimiento
// vigente es el del seguimiento abierto; si el caso no tiene ninguno, la
// ventana de indagación del caso; si tampoco, queda sin plazo.
func (s *WorkflowService) ResumenPlazosMuchos(ctx context.Context, colegioID uuid.UUID, casoIDs []uuid.UUID) (map[uuid.UUID]dto.ResumenPlazoDTO, error) {
	if colegioID == uuid.Nil {
		return nil, apperr.Validacion("Se requiere scope de colegio")
	}
	out := make(map[uuid.UUID]dto.ResumenPlazoDTO, len(casoIDs))
	if len(casoIDs) == 0 {
		return out, nil
	}

	abiertos, err := database.WithRetry(ctx, "plazos.resumen.seguimientos", func() ([]model.SeguimientoModel, error) {
		var rows []model.SeguimientoModel
		err := s.DB.WithContext(ctx).
			Select("seguimiento_caso_id", "seguimiento_vence").
			Where("seguimiento_colegio_id = ? AND seguimiento_caso_id IN ? AND seguimiento_estado = ?",
				colegioID, casoIDs, constants.SeguimientoPendiente).
			Find(&rows).Error
		return rows, err
	})
	if err != nil {
		return nil, err
	}

	casos, err := database.WithRetry(ctx, "plazos.resumen.casos", func() ([]model.CasoModel, error) {
		var rows []model.CasoModel
		err := s.DB.WithContext(ctx).
			Select("caso_id", "caso_estado", "caso_indagacion_vence").
			Where("caso_colegio_id = ? AND caso_id IN ?", colegioID, casoIDs).
			Find(&rows).Error
		return rows, err
	})
	if err != nil {
		return nil, err
	}

	vencePorCaso := make(map[uuid.UUID]*model.SeguimientoModel, len(abiertos))
	for i := range abiertos {
		vencePorCaso[abiertos[i].SeguimientoCasoID] = &abiertos[i]
	}

	hoy := fechas.NormalizarDia(s.Now())
	for _, c := range casos {
		var vence *time.Time
		if seg, ok := vencePorCaso[c.CasoID]; ok && seg.SeguimientoVence != nil {
			vence = seg.SeguimientoVence
		} else if c.CasoEstado != constants.CasoCerrado && c.CasoIndagacionVence != nil {
			vence = c.CasoIndagacionVence
		}

		dias := fechas.DiasRestantes(hoy, vence)
		clasif := urgencia.Clasificar(textoUrgencia(dias), dias)
		out[c.CasoID] = dto.ResumenPlazoDTO{
			AlertaUrgencia: clasif.Etiqueta,
			Severidad:      clasif.Severidad,
			Estado:         clasif.Estado,
			DiasRestantes:  dias,
		}
	}
	return out, nil
}

// textoUrgencia sintetiza la etiqueta cruda que el clasificador normaliza.
// Se genera una sola vez acá, en el borde, no en cada consumidor.
func textoUrgencia(dias *int) string {
	switch {
	case dias == nil:
		return ""
	case *dias < 0:
		return "VENCIDO"
	case *dias == 0:
		return "VENCE HOY"
	case *dias <= UmbralProximoDias:
		return "PRÓXIMO"
	default:
		return "EN PLAZO"
	}
}
