// file: internals/apperr/apperr_test.go
package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestAlmacen_PreservaMensajeDelStore(t *testing.T) {
	causa := errors.New("ERROR: deadlock detected (SQLSTATE 40P01)")
	err := Almacen(causa)

	// El mensaje definitivo del store se propaga tal cual, sin parafrasear.
	assert.Contains(t, err.Error(), "deadlock detected")
	assert.True(t, EsAlmacen(err))
	assert.ErrorIs(t, err, causa)
}

func TestPredicados_DistinguenKinds(t *testing.T) {
	casos := []struct {
		err  error
		pred func(error) bool
	}{
		{Validacion("Se requiere id de caso"), EsValidacion},
		{NoEncontrado("Caso no encontrado"), EsNoEncontrado},
		{ConfigFaltante("No hay SLA configurado"), EsConfigFaltante},
		{Transitorio("timeout", errors.New("i/o timeout")), EsTransitorio},
		{Almacen(errors.New("boom")), EsAlmacen},
	}
	for _, tc := range casos {
		assert.True(t, tc.pred(tc.err), "%v", tc.err)
	}

	// Un kind nunca matchea el predicado de otro.
	assert.False(t, EsTransitorio(Validacion("x")))
	assert.False(t, EsValidacion(Almacen(errors.New("y"))))
}

func TestPredicados_AtraviesanWrapping(t *testing.T) {
	base := ConfigFaltante("No hay SLA configurado para la etapa \"descargos\"")
	wrapped := fmt.Errorf("sla: %w", base)

	assert.True(t, EsConfigFaltante(wrapped))
	assert.False(t, EsConfigFaltante(errors.New("otra cosa")))
}

func TestHTTPStatus(t *testing.T) {
	casos := []struct {
		nombre string
		err    error
		want   int
	}{
		{"validacion", Validacion("x"), 400},
		{"no encontrado", NoEncontrado("x"), 404},
		{"config faltante", ConfigFaltante("x"), 422},
		{"transitorio", Transitorio("x", nil), 503},
		{"gorm not found", gorm.ErrRecordNotFound, 404},
		{"desconocido", errors.New("x"), 500},
	}
	for _, tc := range casos {
		t.Run(tc.nombre, func(t *testing.T) {
			require.Equal(t, tc.want, HTTPStatus(tc.err))
		})
	}
}
