// file: internals/features/convivencia/sla/service/registry_service_test.go
package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"github.com/Hluengo/colegios-sub000/internals/apperr"
	"github.com/Hluengo/colegios-sub000/internals/features/convivencia/sla/model"
)

// abrirStoreSLA levanta un sqlite en memoria con el mismo esquema que migra
// Postgres. El índice único cubre también filas con soft delete, igual que en
// producción: eso es justamente lo que ejercitan estos tests.
func abrirStoreSLA(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1) // :memory: es por conexión

	require.NoError(t, db.Exec(`
		CREATE TABLE convivencia_plazos_etapa (
			plazo_etapa_id           text PRIMARY KEY,
			plazo_etapa_colegio_id   text NOT NULL,
			plazo_etapa_etapa        varchar(50) NOT NULL,
			plazo_etapa_dias_habiles integer NOT NULL,
			plazo_etapa_created_at   datetime NOT NULL,
			plazo_etapa_updated_at   datetime NOT NULL,
			plazo_etapa_deleted_at   datetime
		)`).Error)
	require.NoError(t, db.Exec(`
		CREATE UNIQUE INDEX uq_plazo_etapa_colegio_etapa
		ON convivencia_plazos_etapa (plazo_etapa_colegio_id, plazo_etapa_etapa)`).Error)

	return db
}

func TestUpsertEtapa_RevivePostEliminar(t *testing.T) {
	db := abrirStoreSLA(t)
	svc := NewRegistryService(db, time.Minute)
	ctx := context.Background()
	colegioID := uuid.New()

	_, err := svc.UpsertEtapa(ctx, model.PlazoEtapaModel{
		PlazoEtapaColegioID:   colegioID,
		PlazoEtapaEtapa:       "indagacion",
		PlazoEtapaDiasHabiles: 5,
	})
	require.NoError(t, err)

	dias, err := svc.DiasParaEtapa(ctx, colegioID, "indagacion")
	require.NoError(t, err)
	assert.Equal(t, 5, dias)

	require.NoError(t, svc.EliminarEtapa(ctx, colegioID, "indagacion"))

	_, err = svc.DiasParaEtapa(ctx, colegioID, "indagacion")
	require.Error(t, err)
	assert.True(t, apperr.EsConfigFaltante(err))

	// Re-agregar la etapa tras eliminarla debe revivir la fila, no quedar
	// como no-op silencioso contra la fila con soft delete.
	_, err = svc.UpsertEtapa(ctx, model.PlazoEtapaModel{
		PlazoEtapaColegioID:   colegioID,
		PlazoEtapaEtapa:       "indagacion",
		PlazoEtapaDiasHabiles: 7,
	})
	require.NoError(t, err)

	dias, err = svc.DiasParaEtapa(ctx, colegioID, "indagacion")
	require.NoError(t, err)
	assert.Equal(t, 7, dias)

	var ent model.PlazoEtapaModel
	require.NoError(t, db.Unscoped().
		Where("plazo_etapa_colegio_id = ? AND plazo_etapa_etapa = ?", colegioID, "indagacion").
		First(&ent).Error)
	assert.False(t, ent.PlazoEtapaDeletedAt.Valid, "deleted_at debe quedar en NULL tras el upsert")
	assert.Equal(t, 7, ent.PlazoEtapaDiasHabiles)
}

func TestUpsertEtapa_ActualizaSinDuplicar(t *testing.T) {
	db := abrirStoreSLA(t)
	svc := NewRegistryService(db, time.Minute)
	ctx := context.Background()
	colegioID := uuid.New()

	for _, dias := range []int{5, 8} {
		_, err := svc.UpsertEtapa(ctx, model.PlazoEtapaModel{
			PlazoEtapaColegioID:   colegioID,
			PlazoEtapaEtapa:       "descargos",
			PlazoEtapaDiasHabiles: dias,
		})
		require.NoError(t, err)
	}

	var n int64
	require.NoError(t, db.Model(&model.PlazoEtapaModel{}).
		Where("plazo_etapa_colegio_id = ?", colegioID).
		Count(&n).Error)
	assert.EqualValues(t, 1, n)

	dias, err := svc.DiasParaEtapa(ctx, colegioID, "descargos")
	require.NoError(t, err)
	assert.Equal(t, 8, dias)
}

func TestDiasParaEtapa_SinConfiguracion(t *testing.T) {
	db := abrirStoreSLA(t)
	svc := NewRegistryService(db, time.Minute)

	_, err := svc.DiasParaEtapa(context.Background(), uuid.New(), "apelacion")
	require.Error(t, err)
	assert.True(t, apperr.EsConfigFaltante(err))
	assert.Contains(t, err.Error(), "No hay SLA configurado")
}
