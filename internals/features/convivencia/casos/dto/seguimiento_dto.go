// file: internals/features/convivencia/casos/dto/seguimiento_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/Hluengo/colegios-sub000/internals/features/convivencia/casos/model"
	"github.com/Hluengo/colegios-sub000/internals/features/convivencia/urgencia"
)

type SeguimientoResolverDTO struct {
	SeguimientoObservaciones *string  `json:"seguimiento_observaciones,omitempty"`
	SeguimientoDetalle       *string  `json:"seguimiento_detalle,omitempty"`
	SeguimientoEvidencias    []string `json:"seguimiento_evidencias,omitempty" validate:"omitempty,dive,min=1"`
}

type SeguimientoResponseDTO struct {
	SeguimientoID            uuid.UUID      `json:"seguimiento_id"`
	SeguimientoColegioID     uuid.UUID      `json:"seguimiento_colegio_id"`
	SeguimientoCasoID        uuid.UUID      `json:"seguimiento_caso_id"`
	SeguimientoEtapa         string         `json:"seguimiento_etapa"`
	SeguimientoTipoAccion    string         `json:"seguimiento_tipo_accion"`
	SeguimientoResponsable   string         `json:"seguimiento_responsable"`
	SeguimientoFechaAccion   time.Time      `json:"seguimiento_fecha_accion"`
	SeguimientoVence         *time.Time     `json:"seguimiento_vence,omitempty"`
	SeguimientoEstado        string         `json:"seguimiento_estado"`
	SeguimientoObservaciones string         `json:"seguimiento_observaciones"`
	SeguimientoDetalle       string         `json:"seguimiento_detalle"`
	SeguimientoEvidencias    pq.StringArray `json:"seguimiento_evidencias,omitempty"`
	SeguimientoCreatedAt     time.Time      `json:"seguimiento_created_at"`
	SeguimientoUpdatedAt     time.Time      `json:"seguimiento_updated_at"`
}

func SeguimientoFromModel(ent model.SeguimientoModel) SeguimientoResponseDTO {
	return SeguimientoResponseDTO{
		SeguimientoID:            ent.SeguimientoID,
		SeguimientoColegioID:     ent.SeguimientoColegioID,
		SeguimientoCasoID:        ent.SeguimientoCasoID,
		SeguimientoEtapa:         ent.SeguimientoEtapa,
		SeguimientoTipoAccion:    ent.SeguimientoTipoAccion,
		SeguimientoResponsable:   ent.SeguimientoResponsable,
		SeguimientoFechaAccion:   ent.SeguimientoFechaAccion,
		SeguimientoVence:         ent.SeguimientoVence,
		SeguimientoEstado:        ent.SeguimientoEstado,
		SeguimientoObservaciones: ent.SeguimientoObservaciones,
		SeguimientoDetalle:       ent.SeguimientoDetalle,
		SeguimientoEvidencias:    ent.SeguimientoEvidencias,
		SeguimientoCreatedAt:     ent.SeguimientoCreatedAt,
		SeguimientoUpdatedAt:     ent.SeguimientoUpdatedAt,
	}
}

func SeguimientosFromModels(list []model.SeguimientoModel) []SeguimientoResponseDTO {
	out := make([]SeguimientoResponseDTO, 0, len(list))
	for _, it := range list {
		out = append(out, SeguimientoFromModel(it))
	}
	return out
}

// ResumenPlazoDTO: resultado derivado (no persistido) para el badge de
// urgencia de cada caso en el listado.
type ResumenPlazoDTO struct {
	AlertaUrgencia string               `json:"alerta_urgencia"`
	Severidad      urgencia.Severidad   `json:"severidad"`
	Estado         urgencia.EstadoPlazo `json:"estado"`
	DiasRestantes  *int                 `json:"dias_restantes"`
}
