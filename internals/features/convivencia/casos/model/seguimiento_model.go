// file: internals/features/convivencia/casos/model/seguimiento_model.go
package model

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/Hluengo/colegios-sub000/internals/constants"
)

// SeguimientoModel: una etapa del debido proceso dentro de un caso. El caso es
// dueño de sus seguimientos pero cerrarlo no los borra: son registro
// histórico. A lo sumo un seguimiento abierto por caso: además del chequeo en
// el service, lo garantiza el índice único parcial (colegio, caso) sobre las
// filas pendientes, así dos llamadas concurrentes no insertan dos abiertos.
type SeguimientoModel struct {
	// ============ PK & Tenant ============
	SeguimientoID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:seguimiento_id" json:"seguimiento_id"`
	SeguimientoColegioID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_seguimiento_abierto,where:seguimiento_estado = 'pending';column:seguimiento_colegio_id" json:"seguimiento_colegio_id"`
	SeguimientoCasoID    uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:uq_seguimiento_abierto,where:seguimiento_estado = 'pending';column:seguimiento_caso_id" json:"seguimiento_caso_id"`

	// ============ Etapa ============
	SeguimientoEtapa       string    `gorm:"type:varchar(50);not null;column:seguimiento_etapa" json:"seguimiento_etapa"`
	SeguimientoTipoAccion  string    `gorm:"type:varchar(100);column:seguimiento_tipo_accion" json:"seguimiento_tipo_accion"`
	SeguimientoResponsable string    `gorm:"type:text;column:seguimiento_responsable" json:"seguimiento_responsable"`
	SeguimientoFechaAccion time.Time `gorm:"type:date;not null;column:seguimiento_fecha_accion" json:"seguimiento_fecha_accion"`

	// Vencimiento = fecha_accion + SLA de la etapa al momento de abrir.
	// Un cambio posterior del SLA no lo reescribe.
	SeguimientoVence *time.Time `gorm:"type:date;column:seguimiento_vence" json:"seguimiento_vence,omitempty"`

	SeguimientoEstado        string `gorm:"type:varchar(30);not null;default:pending;column:seguimiento_estado" json:"seguimiento_estado"`
	SeguimientoObservaciones string `gorm:"type:text;column:seguimiento_observaciones" json:"seguimiento_observaciones"`
	SeguimientoDetalle       string `gorm:"type:text;column:seguimiento_detalle" json:"seguimiento_detalle"`

	// Referencias a evidencias (el almacenamiento vive en otro subsistema).
	SeguimientoEvidencias pq.StringArray `gorm:"type:text[];column:seguimiento_evidencias" json:"seguimiento_evidencias,omitempty"`

	// ============ Audit / Soft delete ============
	SeguimientoCreatedAt time.Time      `gorm:"type:timestamptz;not null;autoCreateTime;column:seguimiento_created_at" json:"seguimiento_created_at"`
	SeguimientoUpdatedAt time.Time      `gorm:"type:timestamptz;not null;autoUpdateTime;column:seguimiento_updated_at" json:"seguimiento_updated_at"`
	SeguimientoDeletedAt gorm.DeletedAt `gorm:"column:seguimiento_deleted_at;index" json:"seguimiento_deleted_at,omitempty"`
}

func (SeguimientoModel) TableName() string { return "convivencia_seguimientos" }

func (m *SeguimientoModel) BeforeCreate(tx *gorm.DB) error {
	if m.SeguimientoID == uuid.Nil {
		m.SeguimientoID = uuid.New()
	}
	return nil
}

func (m *SeguimientoModel) BeforeSave(tx *gorm.DB) error {
	m.SeguimientoEtapa = strings.ToLower(strings.TrimSpace(m.SeguimientoEtapa))
	if m.SeguimientoEtapa == "" {
		return errors.New("seguimiento_etapa no puede estar vacía")
	}
	switch m.SeguimientoEstado {
	case constants.SeguimientoPendiente, constants.SeguimientoRealizado, constants.SeguimientoVencidoAsumido:
	default:
		return errors.New("seguimiento_estado no válido")
	}
	return nil
}
