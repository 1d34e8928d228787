// file: internals/features/convivencia/casos/service/workflow_store_test.go
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

	"github.com/Hluengo/colegios-sub000/internals/constants"
	"github.com/Hluengo/colegios-sub000/internals/features/convivencia/casos/model"
	slaService "github.com/Hluengo/colegios-sub000/internals/features/convivencia/sla/service"
)

// abrirStore levanta un sqlite en memoria con el mismo esquema que migra
// Postgres, incluido el índice único parcial sobre seguimientos abiertos.
func abrirStore(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1) // :memory: es por conexión

	for _, ddl := range []string{
		`CREATE TABLE convivencia_casos (
			caso_id                text PRIMARY KEY,
			caso_colegio_id        text NOT NULL,
			caso_estudiante_id     text NOT NULL,
			caso_estudiante_nombre text NOT NULL,
			caso_fecha_incidente   date NOT NULL,
			caso_hora_incidente    varchar(8),
			caso_curso             varchar(50),
			caso_conducta          varchar(100),
			caso_descripcion       text,
			caso_estado            varchar(20) NOT NULL DEFAULT 'Reportado',
			caso_indagacion_inicio date,
			caso_indagacion_vence  date,
			caso_cerrado_en        datetime,
			caso_cierre            text,
			caso_created_at        datetime NOT NULL,
			caso_updated_at        datetime NOT NULL,
			caso_deleted_at        datetime
		)`,
		`CREATE TABLE convivencia_seguimientos (
			seguimiento_id            text PRIMARY KEY,
			seguimiento_colegio_id    text NOT NULL,
			seguimiento_caso_id       text NOT NULL,
			seguimiento_etapa         varchar(50) NOT NULL,
			seguimiento_tipo_accion   varchar(100),
			seguimiento_responsable   text,
			seguimiento_fecha_accion  date NOT NULL,
			seguimiento_vence         date,
			seguimiento_estado        varchar(30) NOT NULL DEFAULT 'pending',
			seguimiento_observaciones text,
			seguimiento_detalle       text,
			seguimiento_evidencias    text,
			seguimiento_created_at    datetime NOT NULL,
			seguimiento_updated_at    datetime NOT NULL,
			seguimiento_deleted_at    datetime
		)`,
		`CREATE UNIQUE INDEX uq_seguimiento_abierto
			ON convivencia_seguimientos (seguimiento_colegio_id, seguimiento_caso_id)
			WHERE seguimiento_estado = 'pending'`,
		`CREATE TABLE convivencia_plazos_etapa (
			plazo_etapa_id           text PRIMARY KEY,
			plazo_etapa_colegio_id   text NOT NULL,
			plazo_etapa_etapa        varchar(50) NOT NULL,
			plazo_etapa_dias_habiles integer NOT NULL,
			plazo_etapa_created_at   datetime NOT NULL,
			plazo_etapa_updated_at   datetime NOT NULL,
			plazo_etapa_deleted_at   datetime
		)`,
		`CREATE UNIQUE INDEX uq_plazo_etapa_colegio_etapa
			ON convivencia_plazos_etapa (plazo_etapa_colegio_id, plazo_etapa_etapa)`,
	} {
		require.NoError(t, db.Exec(ddl).Error)
	}
	return db
}

func nuevoServiceConStore(t *testing.T) *WorkflowService {
	t.Helper()
	db := abrirStore(t)
	svc := NewWorkflowService(db, slaService.NewRegistryService(db, time.Minute))
	// lunes fijo para que la ventana de indagación sea determinística
	svc.Now = func() time.Time { return time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC) }
	return svc
}

func sembrarCaso(t *testing.T, svc *WorkflowService, colegioID uuid.UUID, estado string) model.CasoModel {
	t.Helper()
	ent := model.CasoModel{
		CasoColegioID:        colegioID,
		CasoEstudianteID:     uuid.New(),
		CasoEstudianteNombre: "Ana Rojas",
		CasoFechaIncidente:   time.Date(2026, 2, 27, 0, 0, 0, 0, time.UTC),
		CasoEstado:           estado,
	}
	if estado == constants.CasoCerrado {
		cerrado := time.Date(2026, 3, 1, 18, 0, 0, 0, time.UTC)
		ent.CasoCerradoEn = &cerrado
	}
	require.NoError(t, svc.DB.Create(&ent).Error)
	return ent
}

func TestIniciarSeguimiento_Idempotente(t *testing.T) {
	svc := nuevoServiceConStore(t)
	ctx := context.Background()
	colegioID := uuid.New()
	caso := sembrarCaso(t, svc, colegioID, constants.CasoReportado)

	// Dos llamadas seguidas: ambas reportan iniciado, pero queda un solo
	// seguimiento abierto.
	for i := 0; i < 2; i++ {
		ok, err := svc.IniciarSeguimiento(ctx, caso.CasoID.String())
		require.NoError(t, err)
		assert.True(t, ok)
	}

	var abiertos int64
	require.NoError(t, svc.DB.Model(&model.SeguimientoModel{}).
		Where("seguimiento_caso_id = ? AND seguimiento_estado = ?", caso.CasoID, constants.SeguimientoPendiente).
		Count(&abiertos).Error)
	assert.EqualValues(t, 1, abiertos)

	actual, err := svc.ObtenerCaso(ctx, colegioID, caso.CasoID.String())
	require.NoError(t, err)
	assert.Equal(t, constants.CasoEnSeguimiento, actual.CasoEstado)
	require.NotNil(t, actual.CasoIndagacionVence)
	// lunes 2 de marzo + 5 días hábiles por defecto = lunes 9 de marzo
	assert.Equal(t, time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC), actual.CasoIndagacionVence.UTC())
}

func TestIniciarSeguimiento_CasoCerradoNoAbreTrabajo(t *testing.T) {
	svc := nuevoServiceConStore(t)
	ctx := context.Background()
	colegioID := uuid.New()
	caso := sembrarCaso(t, svc, colegioID, constants.CasoCerrado)

	ok, err := svc.IniciarSeguimiento(ctx, caso.CasoID.String())
	require.NoError(t, err)
	assert.False(t, ok)

	// El caso sigue Cerrado y sin seguimientos: Cerrado es terminal.
	var n int64
	require.NoError(t, svc.DB.Model(&model.SeguimientoModel{}).
		Where("seguimiento_caso_id = ?", caso.CasoID).
		Count(&n).Error)
	assert.EqualValues(t, 0, n)

	actual, err := svc.ObtenerCaso(ctx, colegioID, caso.CasoID.String())
	require.NoError(t, err)
	assert.Equal(t, constants.CasoCerrado, actual.CasoEstado)
}

func TestIniciarSeguimiento_CasoInexistente(t *testing.T) {
	svc := nuevoServiceConStore(t)

	ok, err := svc.IniciarSeguimiento(context.Background(), uuid.NewString())
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestListarCasos_Paginacion(t *testing.T) {
	svc := nuevoServiceConStore(t)
	ctx := context.Background()
	colegioID := uuid.New()

	for i := 0; i < 15; i++ {
		sembrarCaso(t, svc, colegioID, constants.CasoCerrado)
	}
	for i := 0; i < 3; i++ {
		sembrarCaso(t, svc, colegioID, constants.CasoReportado)
	}

	estado := constants.CasoCerrado

	rows, total, err := svc.ListarCasos(ctx, ListarCasosParams{
		ColegioID: colegioID,
		Estado:    &estado,
		Page:      1,
		PerPage:   10,
	})
	require.NoError(t, err)
	assert.EqualValues(t, 15, total)
	assert.LessOrEqual(t, len(rows), 10)
	assert.Len(t, rows, 10)

	// página 2: los 5 restantes, el total no cambia
	rows, total, err = svc.ListarCasos(ctx, ListarCasosParams{
		ColegioID: colegioID,
		Estado:    &estado,
		Page:      2,
		PerPage:   10,
	})
	require.NoError(t, err)
	assert.EqualValues(t, 15, total)
	assert.Len(t, rows, 5)

	excluir := constants.CasoCerrado
	rows, total, err = svc.ListarCasos(ctx, ListarCasosParams{
		ColegioID:     colegioID,
		ExcluirEstado: &excluir,
		Page:          1,
		PerPage:       10,
	})
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	assert.Len(t, rows, 3)
}

func TestListarCasos_NoMezclaColegios(t *testing.T) {
	svc := nuevoServiceConStore(t)
	ctx := context.Background()
	colegioA := uuid.New()
	colegioB := uuid.New()

	sembrarCaso(t, svc, colegioA, constants.CasoReportado)
	sembrarCaso(t, svc, colegioA, constants.CasoReportado)
	sembrarCaso(t, svc, colegioB, constants.CasoReportado)

	rows, total, err := svc.ListarCasos(ctx, ListarCasosParams{
		ColegioID: colegioA,
		Page:      1,
		PerPage:   10,
	})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	for _, r := range rows {
		assert.Equal(t, colegioA, r.CasoColegioID)
	}
}
