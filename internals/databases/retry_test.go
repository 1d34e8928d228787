package database

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Hluengo/colegios-sub000/internals/apperr"
)

type pgErrFake struct{ estado string }

func (e pgErrFake) SQLState() string { return e.estado }
func (e pgErrFake) Error() string    { return "pg error SQLSTATE " + e.estado }

func optsRapidas() RetryOpts {
	return RetryOpts{MaxReintentos: 3, BackoffInicial: time.Millisecond}
}

func TestWithRetry_ReintentaTransitorioYResuelve(t *testing.T) {
	llamadas := 0
	out, err := WithRetryOpts(context.Background(), "test", optsRapidas(), func() (string, error) {
		llamadas++
		if llamadas < 3 {
			return "", errors.New("dial tcp: connection refused")
		}
		return "ok", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "ok", out)
	assert.Equal(t, 3, llamadas)
}

func TestWithRetry_NoReintentaNotFound(t *testing.T) {
	llamadas := 0
	_, err := WithRetryOpts(context.Background(), "test", optsRapidas(), func() (int, error) {
		llamadas++
		return 0, gorm.ErrRecordNotFound
	})
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	assert.Equal(t, 1, llamadas)
}

func TestWithRetry_NoReintentaErrorDefinitivoDelStore(t *testing.T) {
	llamadas := 0
	_, err := WithRetryOpts(context.Background(), "test", optsRapidas(), func() (int, error) {
		llamadas++
		return 0, fmt.Errorf("insert: %w", pgErrFake{estado: "23505"})
	})
	require.Error(t, err)
	assert.Equal(t, 1, llamadas, "un error definitivo del store no es falla de transporte")
	assert.True(t, EsDuplicado(err))
}

func TestWithRetry_AgotaYMarcaTransitorio(t *testing.T) {
	llamadas := 0
	_, err := WithRetryOpts(context.Background(), "test", optsRapidas(), func() (int, error) {
		llamadas++
		return 0, context.DeadlineExceeded
	})
	require.Error(t, err)
	assert.Equal(t, 4, llamadas) // 1 intento + 3 reintentos, nunca un loop abierto
	assert.True(t, apperr.EsTransitorio(err))
}

func TestEsTransitorio(t *testing.T) {
	casos := []struct {
		nombre string
		err    error
		want   bool
	}{
		{"nil", nil, false},
		{"not found", gorm.ErrRecordNotFound, false},
		{"timeout ctx", context.DeadlineExceeded, true},
		{"conexión rechazada", errors.New("dial tcp 10.0.0.1:5432: connection refused"), true},
		{"reset", errors.New("read: connection reset by peer"), true},
		{"clase 08", pgErrFake{estado: "08006"}, true},
		{"unique violation", pgErrFake{estado: "23505"}, false},
		{"check violation", pgErrFake{estado: "23514"}, false},
		{"error cualquiera", errors.New("columna inexistente"), false},
	}
	for _, c := range casos {
		t.Run(c.nombre, func(t *testing.T) {
			assert.Equal(t, c.want, EsTransitorio(c.err))
		})
	}
}

func TestEsDuplicado_PorMensaje(t *testing.T) {
	assert.True(t, EsDuplicado(errors.New(`duplicate key value violates unique constraint "uq_seguimiento_abierto"`)))
	assert.False(t, EsDuplicado(errors.New("otra cosa")))
	assert.False(t, EsDuplicado(nil))
}
