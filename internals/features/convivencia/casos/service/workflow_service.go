// file: internals/features/convivencia/casos/service/workflow_service.go
package service

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/Hluengo/colegios-sub000/internals/apperr"
	"github.com/Hluengo/colegios-sub000/internals/constants"
	database "github.com/Hluengo/colegios-sub000/internals/databases"
	"github.com/Hluengo/colegios-sub000/internals/features/convivencia/casos/model"
	slaService "github.com/Hluengo/colegios-sub000/internals/features/convivencia/sla/service"
	"github.com/Hluengo/colegios-sub000/internals/helpers/fechas"
)

// WorkflowService gobierna el ciclo de vida de un caso y sus seguimientos.
// Las validaciones fallan sincrónicas y sin reintento; las fallas del store
// pasan por WithRetry antes de propagarse.
type WorkflowService struct {
	DB  *gorm.DB
	Sla *slaService.RegistryService

	// reemplazable en tests
	Now func() time.Time
}

func NewWorkflowService(db *gorm.DB, sla *slaService.RegistryService) *WorkflowService {
	return &WorkflowService{DB: db, Sla: sla, Now: time.Now}
}

/* ============================================
   Crear / Obtener / Cerrar
============================================ */

// CrearCaso valida lo estructural antes de tocar el store y deja el caso en
// Reportado cuando no viene estado.
func (s *WorkflowService) CrearCaso(ctx context.Context, ent model.CasoModel) (model.CasoModel, error) {
	if ent.CasoColegioID == uuid.Nil || ent.CasoEstudianteID == uuid.Nil || ent.CasoFechaIncidente.IsZero() {
		return model.CasoModel{}, apperr.Validacion("Datos inválidos para crear caso")
	}
	if strings.TrimSpace(ent.CasoEstado) == "" {
		ent.CasoEstado = constants.CasoReportado
	}

	out, err := database.WithRetry(ctx, "casos.crear", func() (model.CasoModel, error) {
		err := s.DB.WithContext(ctx).Create(&ent).Error
		return ent, err
	})
	if err != nil {
		if apperr.EsTransitorio(err) {
			return model.CasoModel{}, err
		}
		return model.CasoModel{}, apperr.Almacen(err)
	}
	return out, nil
}

// ObtenerCaso exige id no vacío y scope de colegio.
func (s *WorkflowService) ObtenerCaso(ctx context.Context, colegioID uuid.UUID, casoID string) (model.CasoModel, error) {
	casoID = strings.TrimSpace(casoID)
	if casoID == "" {
		return model.CasoModel{}, apperr.Validacion("Se requiere id de caso")
	}
	id, err := uuid.Parse(casoID)
	if err != nil {
		return model.CasoModel{}, apperr.Validacion("Id de caso no válido")
	}
	if colegioID == uuid.Nil {
		return model.CasoModel{}, apperr.Validacion("Se requiere scope de colegio")
	}

	out, err := database.WithRetry(ctx, "casos.obtener", func() (model.CasoModel, error) {
		var ent model.CasoModel
		err := s.DB.WithContext(ctx).
			Where("caso_colegio_id = ? AND caso_id = ?", colegioID, id).
			First(&ent).Error
		return ent, err
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return model.CasoModel{}, apperr.NoEncontrado("Caso no encontrado")
		}
		if apperr.EsTransitorio(err) {
			return model.CasoModel{}, err
		}
		return model.CasoModel{}, apperr.Almacen(err)
	}
	return out, nil
}

// CerrarCaso pasa el caso a Cerrado y estampa cerrado_en. Un caso cerrado no
// se reabre; sus seguimientos quedan como histórico.
func (s *WorkflowService) CerrarCaso(ctx context.Context, colegioID uuid.UUID, casoID string, cierre datatypes.JSON) (model.CasoModel, error) {
	ent, err := s.ObtenerCaso(ctx, colegioID, casoID)
	if err != nil {
		return model.CasoModel{}, err
	}
	if ent.CasoEstado == constants.CasoCerrado {
		return ent, nil // idempotente: ya estaba cerrado
	}

	ahora := s.Now()
	ent.CasoEstado = constants.CasoCerrado
	ent.CasoCerradoEn = &ahora
	if len(cierre) > 0 {
		ent.CasoCierre = cierre
	}

	out, err := database.WithRetry(ctx, "casos.cerrar", func() (model.CasoModel, error) {
		err := s.DB.WithContext(ctx).Save(&ent).Error
		return ent, err
	})
	if err != nil {
		if apperr.EsTransitorio(err) {
			return model.CasoModel{}, err
		}
		return model.CasoModel{}, apperr.Almacen(err)
	}
	return out, nil
}

// EliminarCaso archiva (soft delete). El registro y sus seguimientos quedan
// recuperables con RestaurarCaso.
func (s *WorkflowService) EliminarCaso(ctx context.Context, colegioID uuid.UUID, casoID string) error {
	ent, err := s.ObtenerCaso(ctx, colegioID, casoID)
	if err != nil {
		return err
	}
	_, err = database.WithRetry(ctx, "casos.eliminar", func() (int64, error) {
		res := s.DB.WithContext(ctx).Delete(&ent)
		return res.RowsAffected, res.Error
	})
	if err != nil {
		if apperr.EsTransitorio(err) {
			return err
		}
		return apperr.Almacen(err)
	}
	return nil
}

// RestaurarCaso revierte un soft delete.
func (s *WorkflowService) RestaurarCaso(ctx context.Context, colegioID uuid.UUID, casoID string) (model.CasoModel, error) {
	trimmed := strings.TrimSpace(casoID)
	if trimmed == "" {
		return model.CasoModel{}, apperr.Validacion("Se requiere id de caso")
	}
	id, err := uuid.Parse(trimmed)
	if err != nil {
		return model.CasoModel{}, apperr.Validacion("Id de caso no válido")
	}
	if colegioID == uuid.Nil {
		return model.CasoModel{}, apperr.Validacion("Se requiere scope de colegio")
	}

	out, err := database.WithRetry(ctx, "casos.restaurar", func() (model.CasoModel, error) {
		var ent model.CasoModel
		if err := s.DB.WithContext(ctx).Unscoped().
			Where("caso_colegio_id = ? AND caso_id = ?", colegioID, id).
			First(&ent).Error; err != nil {
			return model.CasoModel{}, err
		}
		if err := s.DB.WithContext(ctx).Unscoped().Model(&ent).
			Update("caso_deleted_at", nil).Error; err != nil {
			return model.CasoModel{}, err
		}
		ent.CasoDeletedAt = gorm.DeletedAt{}
		return ent, nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return model.CasoModel{}, apperr.NoEncontrado("Caso no encontrado")
		}
		if apperr.EsTransitorio(err) {
			return model.CasoModel{}, err
		}
		return model.CasoModel{}, apperr.Almacen(err)
	}
	return out, nil
}

/* ============================================
   Iniciar seguimiento (debido proceso)
============================================ */

// inferirColegio resuelve el tenant y el estado de un caso best-effort: si el
// caso no aparece (o el store falla en esta consulta secundaria) se loggea y
// se devuelve ok=false, nunca un error. Este paso no puede abortar el flujo
// principal del caller.
func (s *WorkflowService) inferirColegio(ctx context.Context, casoID uuid.UUID) (uuid.UUID, string, bool) {
	var ent model.CasoModel
	err := s.DB.WithContext(ctx).
		Select("caso_id", "caso_colegio_id", "caso_estado").
		Where("caso_id = ?", casoID).
		First(&ent).Error
	if err != nil {
		log.Printf("[WARN] inferirColegio caso=%s: %v", casoID, err)
		return uuid.Nil, "", false
	}
	return ent.CasoColegioID, ent.CasoEstado, true
}

// IniciarSeguimiento abre el debido proceso de un caso: recalcula la ventana
// de indagación con el SLA vigente, pasa el caso a En Seguimiento y, solo si
// no hay un seguimiento abierto, inserta el inicial con fecha de hoy.
// Idempotente respecto del seguimiento (chequeo de existencia + índice único
// parcial: un 23505 acá significa "ya iniciado", no error).
func (s *WorkflowService) IniciarSeguimiento(ctx context.Context, casoID string) (bool, error) {
	casoID = strings.TrimSpace(casoID)
	if casoID == "" {
		return false, apperr.Validacion("Se requiere id de caso")
	}
	id, err := uuid.Parse(casoID)
	if err != nil {
		return false, apperr.Validacion("Id de caso no válido")
	}

	colegioID, estado, ok := s.inferirColegio(ctx, id)
	if !ok {
		return false, nil // no fatal: el caller sigue su flujo
	}
	if estado == constants.CasoCerrado {
		// Cerrado es terminal: nunca se abre trabajo nuevo sobre el caso.
		return false, nil
	}

	hoy := fechas.NormalizarDia(s.Now())

	// (a) inicialización del debido proceso: ventana de indagación con el SLA
	// vigente (fallback al default cuando el colegio no lo configuró).
	dias := constants.DiasIndagacionDefault
	if d, err := s.Sla.DiasParaEtapa(ctx, colegioID, constants.EtapaIndagacion); err == nil {
		dias = d
	} else if !apperr.EsConfigFaltante(err) {
		return false, err
	}
	vence := fechas.ProyectarVencimiento(hoy, dias)

	_, err = database.WithRetry(ctx, "casos.iniciar_seguimiento.caso", func() (int64, error) {
		res := s.DB.WithContext(ctx).Model(&model.CasoModel{}).
			Where("caso_colegio_id = ? AND caso_id = ? AND caso_estado <> ?", colegioID, id, constants.CasoCerrado).
			Updates(map[string]any{
				"caso_estado":            constants.CasoEnSeguimiento,
				"caso_indagacion_inicio": hoy,
				"caso_indagacion_vence":  vence,
			})
		return res.RowsAffected, res.Error
	})
	if err != nil {
		return false, err
	}

	// (b) seguimiento inicial, solo si no hay uno abierto.
	abiertos, err := database.WithRetry(ctx, "casos.iniciar_seguimiento.check", func() (int64, error) {
		var n int64
		err := s.DB.WithContext(ctx).Model(&model.SeguimientoModel{}).
			Where("seguimiento_colegio_id = ? AND seguimiento_caso_id = ? AND seguimiento_estado = ?",
				colegioID, id, constants.SeguimientoPendiente).
			Count(&n).Error
		return n, err
	})
	if err != nil {
		return false, err
	}
	if abiertos > 0 {
		return true, nil
	}

	seg := model.SeguimientoModel{
		SeguimientoColegioID:   colegioID,
		SeguimientoCasoID:      id,
		SeguimientoEtapa:       constants.EtapaIndagacion,
		SeguimientoFechaAccion: hoy,
		SeguimientoVence:       &vence,
		SeguimientoEstado:      constants.SeguimientoPendiente,
	}
	_, err = database.WithRetry(ctx, "casos.iniciar_seguimiento.insert", func() (uuid.UUID, error) {
		err := s.DB.WithContext(ctx).Create(&seg).Error
		return seg.SeguimientoID, err
	})
	if err != nil {
		if database.EsDuplicado(err) {
			// Carrera con otro caller: el índice parcial rechazó el segundo
			// abierto. Ya iniciado, no es error.
			return true, nil
		}
		if apperr.EsTransitorio(err) {
			return false, err
		}
		return false, apperr.Almacen(err)
	}
	return true, nil
}

/* ============================================
   Seguimientos: listar y resolver
============================================ */

func (s *WorkflowService) ListarSeguimientos(ctx context.Context, colegioID, casoID uuid.UUID) ([]model.SeguimientoModel, error) {
	if colegioID == uuid.Nil || casoID == uuid.Nil {
		return nil, apperr.Validacion("Se requiere colegio y caso")
	}
	return database.WithRetry(ctx, "seguimientos.listar", func() ([]model.SeguimientoModel, error) {
		var rows []model.SeguimientoModel
		err := s.DB.WithContext(ctx).
			Where("seguimiento_colegio_id = ? AND seguimiento_caso_id = ?", colegioID, casoID).
			Order("seguimiento_created_at ASC").
			Find(&rows).Error
		return rows, err
	})
}

// ResolverSeguimiento marca la etapa como realizada; recién ahí puede abrirse
// la siguiente (a lo sumo un abierto por caso).
func (s *WorkflowService) ResolverSeguimiento(ctx context.Context, colegioID, seguimientoID uuid.UUID, observaciones, detalle *string, evidencias []string) (model.SeguimientoModel, error) {
	if colegioID == uuid.Nil || seguimientoID == uuid.Nil {
		return model.SeguimientoModel{}, apperr.Validacion("Se requiere colegio y seguimiento")
	}

	out, err := database.WithRetry(ctx, "seguimientos.resolver", func() (model.SeguimientoModel, error) {
		var ent model.SeguimientoModel
		if err := s.DB.WithContext(ctx).
			Where("seguimiento_colegio_id = ? AND seguimiento_id = ?", colegioID, seguimientoID).
			First(&ent).Error; err != nil {
			return model.SeguimientoModel{}, err
		}
		ent.SeguimientoEstado = constants.SeguimientoRealizado
		if observaciones != nil {
			ent.SeguimientoObservaciones = strings.TrimSpace(*observaciones)
		}
		if detalle != nil {
			ent.SeguimientoDetalle = strings.TrimSpace(*detalle)
		}
		if len(evidencias) > 0 {
			ent.SeguimientoEvidencias = append(ent.SeguimientoEvidencias, evidencias...)
		}
		err := s.DB.WithContext(ctx).Save(&ent).Error
		return ent, err
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return model.SeguimientoModel{}, apperr.NoEncontrado("Seguimiento no encontrado")
		}
		if apperr.EsTransitorio(err) {
			return model.SeguimientoModel{}, err
		}
		return model.SeguimientoModel{}, apperr.Almacen(err)
	}
	return out, nil
}
