// file: internals/features/convivencia/estadisticas/service/estadisticas_service.go
package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Hluengo/colegios-sub000/internals/apperr"
	"github.com/Hluengo/colegios-sub000/internals/constants"
	database "github.com/Hluengo/colegios-sub000/internals/databases"
	"github.com/Hluengo/colegios-sub000/internals/features/convivencia/casos/model"
	"github.com/Hluengo/colegios-sub000/internals/helpers/fechas"
)

type EstadisticasService struct {
	DB  *gorm.DB
	Now func() time.Time
}

func NewEstadisticasService(db *gorm.DB) *EstadisticasService {
	return &EstadisticasService{DB: db, Now: time.Now}
}

type ResumenConvivencia struct {
	PorEstado            map[string]int64 `json:"por_estado"`
	SeguimientosVencidos int64            `json:"seguimientos_vencidos"`
	TotalCasos           int64            `json:"total_casos"`
	CasosEnSeguimiento   int64            `json:"casos_en_seguimiento"`
}

// Resumen: conteos por estado más seguimientos abiertos ya vencidos, para el
// tablero del encargado de convivencia.
func (s *EstadisticasService) Resumen(ctx context.Context, colegioID uuid.UUID) (ResumenConvivencia, error) {
	if colegioID == uuid.Nil {
		return ResumenConvivencia{}, apperr.Validacion("Se requiere scope de colegio")
	}

	type fila struct {
		Estado string `gorm:"column:caso_estado"`
		Total  int64  `gorm:"column:total"`
	}

	filas, err := database.WithRetry(ctx, "estadisticas.por_estado", func() ([]fila, error) {
		var rows []fila
		err := s.DB.WithContext(ctx).Model(&model.CasoModel{}).
			Select("caso_estado, COUNT(*) AS total").
			Where("caso_colegio_id = ?", colegioID).
			Group("caso_estado").
			Find(&rows).Error
		return rows, err
	})
	if err != nil {
		return ResumenConvivencia{}, err
	}

	hoy := fechas.NormalizarDia(s.Now())
	vencidos, err := database.WithRetry(ctx, "estadisticas.vencidos", func() (int64, error) {
		var n int64
		err := s.DB.WithContext(ctx).Model(&model.SeguimientoModel{}).
			Where("seguimiento_colegio_id = ? AND seguimiento_estado = ? AND seguimiento_vence < ?",
				colegioID, constants.SeguimientoPendiente, hoy).
			Count(&n).Error
		return n, err
	})
	if err != nil {
		return ResumenConvivencia{}, err
	}

	out := ResumenConvivencia{
		PorEstado:            make(map[string]int64, len(filas)),
		SeguimientosVencidos: vencidos,
	}
	for _, f := range filas {
		out.PorEstado[f.Estado] = f.Total
		out.TotalCasos += f.Total
		if f.Estado == constants.CasoEnSeguimiento {
			out.CasosEnSeguimiento = f.Total
		}
	}
	return out, nil
}
