// file: internals/features/convivencia/sla/dto/plazo_etapa_dto.go
package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Hluengo/colegios-sub000/internals/features/convivencia/sla/model"
)

// =======================
// Request DTO
// =======================

type PlazoEtapaUpsertDTO struct {
	PlazoEtapaEtapa       string `json:"plazo_etapa_etapa"        validate:"required,min=3,max=50"`
	PlazoEtapaDiasHabiles int    `json:"plazo_etapa_dias_habiles" validate:"min=0,max=365"`
}

func (p *PlazoEtapaUpsertDTO) Normalize() {
	p.PlazoEtapaEtapa = strings.ToLower(strings.TrimSpace(p.PlazoEtapaEtapa))
}

func (p *PlazoEtapaUpsertDTO) ToModel(colegioID uuid.UUID) model.PlazoEtapaModel {
	return model.PlazoEtapaModel{
		PlazoEtapaColegioID:   colegioID,
		PlazoEtapaEtapa:       p.PlazoEtapaEtapa,
		PlazoEtapaDiasHabiles: p.PlazoEtapaDiasHabiles,
	}
}

// =======================
// Response DTO
// =======================

type PlazoEtapaResponseDTO struct {
	PlazoEtapaID          uuid.UUID `json:"plazo_etapa_id"`
	PlazoEtapaColegioID   uuid.UUID `json:"plazo_etapa_colegio_id"`
	PlazoEtapaEtapa       string    `json:"plazo_etapa_etapa"`
	PlazoEtapaDiasHabiles int       `json:"plazo_etapa_dias_habiles"`
	PlazoEtapaCreatedAt   time.Time `json:"plazo_etapa_created_at"`
	PlazoEtapaUpdatedAt   time.Time `json:"plazo_etapa_updated_at"`
}

func FromModel(ent model.PlazoEtapaModel) PlazoEtapaResponseDTO {
	return PlazoEtapaResponseDTO{
		PlazoEtapaID:          ent.PlazoEtapaID,
		PlazoEtapaColegioID:   ent.PlazoEtapaColegioID,
		PlazoEtapaEtapa:       ent.PlazoEtapaEtapa,
		PlazoEtapaDiasHabiles: ent.PlazoEtapaDiasHabiles,
		PlazoEtapaCreatedAt:   ent.PlazoEtapaCreatedAt,
		PlazoEtapaUpdatedAt:   ent.PlazoEtapaUpdatedAt,
	}
}

func FromModels(list []model.PlazoEtapaModel) []PlazoEtapaResponseDTO {
	out := make([]PlazoEtapaResponseDTO, 0, len(list))
	for _, it := range list {
		out = append(out, FromModel(it))
	}
	return out
}
