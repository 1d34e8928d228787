// file: internals/features/convivencia/casos/model/caso_model.go
package model

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/Hluengo/colegios-sub000/internals/constants"
)

// CasoModel: caso disciplinario de un estudiante. Pertenece a un solo colegio;
// el flujo solo avanza (Reportado → En Seguimiento → Cerrado) y nunca se
// borra físicamente: cerrar es archivar.
type CasoModel struct {
	// ============ PK & Tenant ============
	CasoID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:caso_id" json:"caso_id"`
	CasoColegioID uuid.UUID `gorm:"type:uuid;not null;index:idx_caso_colegio_estado;column:caso_colegio_id" json:"caso_colegio_id"`

	// ============ Estudiante e incidente ============
	CasoEstudianteID     uuid.UUID `gorm:"type:uuid;not null;index;column:caso_estudiante_id" json:"caso_estudiante_id"`
	CasoEstudianteNombre string    `gorm:"type:text;not null;column:caso_estudiante_nombre" json:"caso_estudiante_nombre"`
	CasoFechaIncidente   time.Time `gorm:"type:date;not null;column:caso_fecha_incidente" json:"caso_fecha_incidente"`
	CasoHoraIncidente    *string   `gorm:"type:varchar(8);column:caso_hora_incidente" json:"caso_hora_incidente,omitempty"`
	CasoCurso            string    `gorm:"type:varchar(50);column:caso_curso" json:"caso_curso"`
	CasoConducta         string    `gorm:"type:varchar(100);column:caso_conducta" json:"caso_conducta"`
	CasoDescripcion      string    `gorm:"type:text;column:caso_descripcion" json:"caso_descripcion"`

	// ============ Estado del flujo ============
	CasoEstado string `gorm:"type:varchar(20);not null;default:Reportado;index:idx_caso_colegio_estado;column:caso_estado" json:"caso_estado"`

	// Ventana de indagación: derivada, no autoritativa. Se recalcula al abrir
	// la etapa, nunca retroactivamente cuando cambia el SLA.
	CasoIndagacionInicio *time.Time `gorm:"type:date;column:caso_indagacion_inicio" json:"caso_indagacion_inicio,omitempty"`
	CasoIndagacionVence  *time.Time `gorm:"type:date;column:caso_indagacion_vence" json:"caso_indagacion_vence,omitempty"`

	// Invariante: no nulo si y solo si estado = Cerrado.
	CasoCerradoEn *time.Time `gorm:"type:timestamptz;column:caso_cerrado_en" json:"caso_cerrado_en,omitempty"`

	// Campos de resolución al cierre (medida, acuerdos, etc.), forma libre.
	CasoCierre datatypes.JSON `gorm:"type:jsonb;column:caso_cierre" json:"caso_cierre,omitempty"`

	// ============ Audit / Soft delete ============
	CasoCreatedAt time.Time      `gorm:"type:timestamptz;not null;autoCreateTime;column:caso_created_at" json:"caso_created_at"`
	CasoUpdatedAt time.Time      `gorm:"type:timestamptz;not null;autoUpdateTime;column:caso_updated_at" json:"caso_updated_at"`
	CasoDeletedAt gorm.DeletedAt `gorm:"column:caso_deleted_at;index" json:"caso_deleted_at,omitempty"`
}

func (CasoModel) TableName() string { return "convivencia_casos" }

func (m *CasoModel) BeforeCreate(tx *gorm.DB) error {
	if m.CasoID == uuid.Nil {
		m.CasoID = uuid.New()
	}
	return nil
}

func (m *CasoModel) BeforeSave(tx *gorm.DB) error {
	m.CasoEstudianteNombre = strings.TrimSpace(m.CasoEstudianteNombre)
	m.CasoCurso = strings.TrimSpace(m.CasoCurso)
	m.CasoConducta = strings.TrimSpace(m.CasoConducta)

	switch m.CasoEstado {
	case constants.CasoReportado, constants.CasoEnSeguimiento, constants.CasoCerrado:
	default:
		return errors.New("caso_estado no válido")
	}

	// Espejo del CHECK: cerrado_en ⇔ estado Cerrado
	if (m.CasoEstado == constants.CasoCerrado) != (m.CasoCerradoEn != nil) {
		return errors.New("caso_cerrado_en debe estar presente si y solo si el caso está Cerrado")
	}
	return nil
}
