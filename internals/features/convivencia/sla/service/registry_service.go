// file: internals/features/convivencia/sla/service/registry_service.go
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Hluengo/colegios-sub000/internals/apperr"
	"github.com/Hluengo/colegios-sub000/internals/constants"
	database "github.com/Hluengo/colegios-sub000/internals/databases"
	"github.com/Hluengo/colegios-sub000/internals/features/convivencia/sla/model"
	"github.com/Hluengo/colegios-sub000/internals/helpers/cachex"
)

// RegistryService es la fuente de verdad de los SLA por etapa. Las lecturas
// pasan por un cache TTL (las ediciones son raras y un valor viejo solo
// afecta la *próxima* etapa que se abra, nunca plazos ya corriendo).
type RegistryService struct {
	DB       *gorm.DB
	Cache    *cachex.Cache
	CacheTTL time.Duration
}

func NewRegistryService(db *gorm.DB, ttl time.Duration) *RegistryService {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &RegistryService{DB: db, Cache: cachex.New(), CacheTTL: ttl}
}

func cacheKey(colegioID uuid.UUID, etapa string) string {
	return "sla:" + colegioID.String() + ":" + etapa
}

// DiasParaEtapa devuelve los días hábiles configurados para (colegio, etapa).
// Si no existe la fila falla con ConfigFaltante: acá nunca se asume 0, la
// política de fallback es del caller.
func (s *RegistryService) DiasParaEtapa(ctx context.Context, colegioID uuid.UUID, etapa string) (int, error) {
	etapa = strings.ToLower(strings.TrimSpace(etapa))
	if colegioID == uuid.Nil {
		return 0, apperr.Validacion("Se requiere colegio para consultar el SLA")
	}
	if etapa == "" {
		return 0, apperr.Validacion("Se requiere etapa para consultar el SLA")
	}

	v, err := s.Cache.GetOrLoad(cacheKey(colegioID, etapa), s.CacheTTL, func() (any, error) {
		return database.WithRetry(ctx, "sla.dias_para_etapa", func() (int, error) {
			var ent model.PlazoEtapaModel
			err := s.DB.WithContext(ctx).
				Where("plazo_etapa_colegio_id = ? AND plazo_etapa_etapa = ?", colegioID, etapa).
				First(&ent).Error
			if err != nil {
				return 0, err
			}
			return ent.PlazoEtapaDiasHabiles, nil
		})
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, apperr.ConfigFaltante(
				fmt.Sprintf("No hay SLA configurado para la etapa %q en este colegio", etapa))
		}
		return 0, err
	}
	return v.(int), nil
}

// Listar devuelve todas las etapas configuradas del colegio.
func (s *RegistryService) Listar(ctx context.Context, colegioID uuid.UUID) ([]model.PlazoEtapaModel, error) {
	if colegioID == uuid.Nil {
		return nil, apperr.Validacion("Se requiere colegio para listar los SLA")
	}
	return database.WithRetry(ctx, "sla.listar", func() ([]model.PlazoEtapaModel, error) {
		var rows []model.PlazoEtapaModel
		err := s.DB.WithContext(ctx).
			Where("plazo_etapa_colegio_id = ?", colegioID).
			Order("plazo_etapa_etapa ASC").
			Find(&rows).Error
		return rows, err
	})
}

// UpsertEtapa inserta o actualiza vía ON CONFLICT sobre (colegio, etapa).
// El índice único cubre también filas con soft delete, así que el upsert
// además limpia deleted_at: re-agregar una etapa eliminada la revive en vez
// de quedar como no-op. No recalcula vencimientos existentes; solo los
// seguimientos que se abran después usan el valor nuevo.
func (s *RegistryService) UpsertEtapa(ctx context.Context, ent model.PlazoEtapaModel) (model.PlazoEtapaModel, error) {
	if ent.PlazoEtapaColegioID == uuid.Nil {
		return model.PlazoEtapaModel{}, apperr.Validacion("Se requiere colegio para configurar el SLA")
	}
	out, err := database.WithRetry(ctx, "sla.upsert", func() (model.PlazoEtapaModel, error) {
		err := s.DB.WithContext(ctx).Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "plazo_etapa_colegio_id"},
				{Name: "plazo_etapa_etapa"},
			},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"plazo_etapa_dias_habiles": ent.PlazoEtapaDiasHabiles,
				"plazo_etapa_updated_at":   time.Now(),
				"plazo_etapa_deleted_at":   nil,
			}),
		}).Create(&ent).Error
		return ent, err
	})
	if err != nil {
		if apperr.EsTransitorio(err) {
			return model.PlazoEtapaModel{}, err
		}
		// Respuesta definitiva del store: se propaga con su mensaje intacto.
		return model.PlazoEtapaModel{}, apperr.Almacen(err)
	}
	s.Cache.Invalidate(cacheKey(out.PlazoEtapaColegioID, out.PlazoEtapaEtapa))
	return out, nil
}

// EliminarEtapa hace soft delete de la configuración (histórico, no borrado).
func (s *RegistryService) EliminarEtapa(ctx context.Context, colegioID uuid.UUID, etapa string) error {
	etapa = strings.ToLower(strings.TrimSpace(etapa))
	if colegioID == uuid.Nil || etapa == "" {
		return apperr.Validacion("Se requiere colegio y etapa")
	}
	_, err := database.WithRetry(ctx, "sla.eliminar", func() (int64, error) {
		res := s.DB.WithContext(ctx).
			Where("plazo_etapa_colegio_id = ? AND plazo_etapa_etapa = ?", colegioID, etapa).
			Delete(&model.PlazoEtapaModel{})
		return res.RowsAffected, res.Error
	})
	if err != nil {
		return err
	}
	s.Cache.Invalidate(cacheKey(colegioID, etapa))
	return nil
}

// SeedDefaults siembra los SLA por defecto al dar de alta un colegio.
// Idempotente: DoNothing sobre las etapas que ya existen.
func (s *RegistryService) SeedDefaults(ctx context.Context, colegioID uuid.UUID) error {
	if colegioID == uuid.Nil {
		return apperr.Validacion("Se requiere colegio para sembrar SLA")
	}
	ents := make([]model.PlazoEtapaModel, 0, len(constants.PlazosEtapaDefault))
	for etapa, dias := range constants.PlazosEtapaDefault {
		ents = append(ents, model.PlazoEtapaModel{
			PlazoEtapaColegioID:   colegioID,
			PlazoEtapaEtapa:       etapa,
			PlazoEtapaDiasHabiles: dias,
		})
	}
	_, err := database.WithRetry(ctx, "sla.seed", func() (int, error) {
		err := s.DB.WithContext(ctx).
			Clauses(clause.OnConflict{DoNothing: true}).
			Create(&ents).Error
		return len(ents), err
	})
	return err
}
