// file: internals/features/convivencia/sla/model/plazo_etapa_model.go
package model

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PlazoEtapaModel: días hábiles permitidos por etapa del debido proceso,
// por colegio. Unique (colegio, etapa): el upsert resuelve el conflicto,
// no hay chequeo de existencia aparte.
type PlazoEtapaModel struct {
	// ============ PK & Tenant ============
	PlazoEtapaID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:plazo_etapa_id" json:"plazo_etapa_id"`
	PlazoEtapaColegioID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_plazo_etapa_colegio_etapa;column:plazo_etapa_colegio_id" json:"plazo_etapa_colegio_id"`

	// Clave de etapa: "indagacion", "descargos", etc.
	PlazoEtapaEtapa string `gorm:"type:varchar(50);not null;uniqueIndex:uq_plazo_etapa_colegio_etapa;column:plazo_etapa_etapa" json:"plazo_etapa_etapa"`

	// Días hábiles permitidos (>= 0). Cambiarlo nunca recalcula vencimientos
	// de seguimientos ya abiertos, solo aplica a los que se abran después.
	PlazoEtapaDiasHabiles int `gorm:"type:integer;not null;check:plazo_etapa_dias_habiles >= 0;column:plazo_etapa_dias_habiles" json:"plazo_etapa_dias_habiles"`

	// ============ Audit / Soft delete ============
	PlazoEtapaCreatedAt time.Time      `gorm:"type:timestamptz;not null;autoCreateTime;column:plazo_etapa_created_at" json:"plazo_etapa_created_at"`
	PlazoEtapaUpdatedAt time.Time      `gorm:"type:timestamptz;not null;autoUpdateTime;column:plazo_etapa_updated_at" json:"plazo_etapa_updated_at"`
	PlazoEtapaDeletedAt gorm.DeletedAt `gorm:"column:plazo_etapa_deleted_at;index" json:"plazo_etapa_deleted_at,omitempty"`
}

func (PlazoEtapaModel) TableName() string { return "convivencia_plazos_etapa" }

func (m *PlazoEtapaModel) BeforeCreate(tx *gorm.DB) error {
	if m.PlazoEtapaID == uuid.Nil {
		m.PlazoEtapaID = uuid.New()
	}
	return nil
}

func (m *PlazoEtapaModel) BeforeSave(tx *gorm.DB) error {
	m.PlazoEtapaEtapa = strings.ToLower(strings.TrimSpace(m.PlazoEtapaEtapa))
	if m.PlazoEtapaEtapa == "" {
		return errors.New("plazo_etapa_etapa no puede estar vacía")
	}
	if m.PlazoEtapaDiasHabiles < 0 {
		return errors.New("plazo_etapa_dias_habiles debe ser >= 0")
	}
	return nil
}
