// file: internals/features/convivencia/casos/dto/caso_dto.go
package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/Hluengo/colegios-sub000/internals/constants"
	"github.com/Hluengo/colegios-sub000/internals/features/convivencia/casos/model"
)

// =======================
// Request DTO
// =======================

type CasoCreateDTO struct {
	CasoEstudianteID     uuid.UUID `json:"caso_estudiante_id"     validate:"required"`
	CasoEstudianteNombre string    `json:"caso_estudiante_nombre" validate:"required,min=2"`
	CasoFechaIncidente   time.Time `json:"caso_fecha_incidente"   validate:"required"`
	CasoHoraIncidente    *string   `json:"caso_hora_incidente,omitempty"`
	CasoCurso            string    `json:"caso_curso"`
	CasoConducta         string    `json:"caso_conducta"`
	CasoDescripcion      string    `json:"caso_descripcion"`
	// pointer: distinguir "no enviado" del default Reportado
	CasoEstado *string `json:"caso_estado,omitempty" validate:"omitempty,oneof=Reportado 'En Seguimiento'"`
}

func (p *CasoCreateDTO) Normalize() {
	p.CasoEstudianteNombre = strings.TrimSpace(p.CasoEstudianteNombre)
	p.CasoCurso = strings.TrimSpace(p.CasoCurso)
	p.CasoConducta = strings.TrimSpace(p.CasoConducta)
}

func (p *CasoCreateDTO) ToModel(colegioID uuid.UUID) model.CasoModel {
	estado := constants.CasoReportado
	if p.CasoEstado != nil && strings.TrimSpace(*p.CasoEstado) != "" {
		estado = *p.CasoEstado
	}
	return model.CasoModel{
		CasoColegioID:        colegioID,
		CasoEstudianteID:     p.CasoEstudianteID,
		CasoEstudianteNombre: p.CasoEstudianteNombre,
		CasoFechaIncidente:   p.CasoFechaIncidente,
		CasoHoraIncidente:    p.CasoHoraIncidente,
		CasoCurso:            p.CasoCurso,
		CasoConducta:         p.CasoConducta,
		CasoDescripcion:      p.CasoDescripcion,
		CasoEstado:           estado,
	}
}

type CasoCierreDTO struct {
	CasoCierre datatypes.JSON `json:"caso_cierre,omitempty"`
}

// Filtros de listado. El scope de colegio NO viaja acá: lo resuelve el
// controller y el service lo exige aparte.
type CasoFilterDTO struct {
	Estado        *string `query:"estado"         validate:"omitempty,oneof=Reportado 'En Seguimiento' Cerrado"`
	ExcluirEstado *string `query:"excluir_estado" validate:"omitempty,oneof=Reportado 'En Seguimiento' Cerrado"`
	Buscar        *string `query:"buscar"         validate:"omitempty,max=120"`
}

func (q *CasoFilterDTO) Normalize() {
	if q.Buscar != nil {
		s := strings.TrimSpace(*q.Buscar)
		q.Buscar = &s
	}
}

// =======================
// Response DTO
// =======================

type CasoResponseDTO struct {
	CasoID               uuid.UUID      `json:"caso_id"`
	CasoColegioID        uuid.UUID      `json:"caso_colegio_id"`
	CasoEstudianteID     uuid.UUID      `json:"caso_estudiante_id"`
	CasoEstudianteNombre string         `json:"caso_estudiante_nombre"`
	CasoFechaIncidente   time.Time      `json:"caso_fecha_incidente"`
	CasoHoraIncidente    *string        `json:"caso_hora_incidente,omitempty"`
	CasoCurso            string         `json:"caso_curso"`
	CasoConducta         string         `json:"caso_conducta"`
	CasoDescripcion      string         `json:"caso_descripcion"`
	CasoEstado           string         `json:"caso_estado"`
	CasoIndagacionInicio *time.Time     `json:"caso_indagacion_inicio,omitempty"`
	CasoIndagacionVence  *time.Time     `json:"caso_indagacion_vence,omitempty"`
	CasoCerradoEn        *time.Time     `json:"caso_cerrado_en,omitempty"`
	CasoCierre           datatypes.JSON `json:"caso_cierre,omitempty"`
	CasoCreatedAt        time.Time      `json:"caso_created_at"`
	CasoUpdatedAt        time.Time      `json:"caso_updated_at"`
}

func FromModel(ent model.CasoModel) CasoResponseDTO {
	return CasoResponseDTO{
		CasoID:               ent.CasoID,
		CasoColegioID:        ent.CasoColegioID,
		CasoEstudianteID:     ent.CasoEstudianteID,
		CasoEstudianteNombre: ent.CasoEstudianteNombre,
		CasoFechaIncidente:   ent.CasoFechaIncidente,
		CasoHoraIncidente:    ent.CasoHoraIncidente,
		CasoCurso:            ent.CasoCurso,
		CasoConducta:         ent.CasoConducta,
		CasoDescripcion:      ent.CasoDescripcion,
		CasoEstado:           ent.CasoEstado,
		CasoIndagacionInicio: ent.CasoIndagacionInicio,
		CasoIndagacionVence:  ent.CasoIndagacionVence,
		CasoCerradoEn:        ent.CasoCerradoEn,
		CasoCierre:           ent.CasoCierre,
		CasoCreatedAt:        ent.CasoCreatedAt,
		CasoUpdatedAt:        ent.CasoUpdatedAt,
	}
}

func FromModels(list []model.CasoModel) []CasoResponseDTO {
	out := make([]CasoResponseDTO, 0, len(list))
	for _, it := range list {
		out = append(out, FromModel(it))
	}
	return out
}
