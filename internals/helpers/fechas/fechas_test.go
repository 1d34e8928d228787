package fechas

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fecha(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

func TestDiasHabilesEntre_MismaFecha(t *testing.T) {
	d := fecha(2026, time.March, 4) // miércoles
	got := DiasHabilesEntre(&d, &d)
	require.NotNil(t, got)
	assert.Equal(t, 0, *got)
}

func TestDiasHabilesEntre_NilEsDesconocido(t *testing.T) {
	d := fecha(2026, time.March, 4)
	assert.Nil(t, DiasHabilesEntre(nil, &d))
	assert.Nil(t, DiasHabilesEntre(&d, nil))
	assert.Nil(t, DiasHabilesEntre(nil, nil))
}

func TestDiasHabilesEntre_SoloFinDeSemana(t *testing.T) {
	sab := fecha(2026, time.March, 7)
	dom := fecha(2026, time.March, 8)
	got := DiasHabilesEntre(&sab, &dom)
	require.NotNil(t, got)
	assert.Equal(t, 0, *got)
}

func TestDiasHabilesEntre_SaltaFinDeSemana(t *testing.T) {
	vie := fecha(2026, time.March, 6)
	lun := fecha(2026, time.March, 9)
	got := DiasHabilesEntre(&vie, &lun)
	require.NotNil(t, got)
	assert.Equal(t, 1, *got)
}

func TestDiasHabilesEntre_Antisimetrica(t *testing.T) {
	casos := []struct {
		a, b time.Time
	}{
		{fecha(2026, time.March, 2), fecha(2026, time.March, 13)},
		{fecha(2026, time.March, 6), fecha(2026, time.March, 9)},
		{fecha(2026, time.February, 27), fecha(2026, time.March, 2)},
		{fecha(2026, time.March, 7), fecha(2026, time.March, 8)},
	}
	for _, c := range casos {
		ida := DiasHabilesEntre(&c.a, &c.b)
		vuelta := DiasHabilesEntre(&c.b, &c.a)
		require.NotNil(t, ida)
		require.NotNil(t, vuelta)
		assert.Equal(t, *ida, -*vuelta, "entre %s y %s", c.a, c.b)
	}
}

func TestDiasHabilesEntre_IgnoraHora(t *testing.T) {
	a := time.Date(2026, time.March, 4, 23, 59, 0, 0, time.Local)
	b := time.Date(2026, time.March, 5, 0, 1, 0, 0, time.Local)
	got := DiasHabilesEntre(&a, &b)
	require.NotNil(t, got)
	assert.Equal(t, 1, *got)
}

func TestProyectarVencimiento_CincoDiasDesdeLunes(t *testing.T) {
	lunes := fecha(2026, time.March, 2)
	// 5 días hábiles desde un lunes → el lunes siguiente, saltando el fin de semana.
	assert.Equal(t, fecha(2026, time.March, 9), ProyectarVencimiento(lunes, 5))
}

func TestProyectarVencimiento_CeroDias(t *testing.T) {
	sab := time.Date(2026, time.March, 7, 10, 30, 0, 0, time.Local)
	assert.Equal(t, fecha(2026, time.March, 7), ProyectarVencimiento(sab, 0))
}

func TestProyectarVencimiento_DesdeViernes(t *testing.T) {
	viernes := fecha(2026, time.March, 6)
	assert.Equal(t, fecha(2026, time.March, 9), ProyectarVencimiento(viernes, 1))
}

func TestDiasRestantes_Vencido(t *testing.T) {
	hoy := fecha(2026, time.March, 11)
	venc := fecha(2026, time.March, 9)
	got := DiasRestantes(hoy, &venc)
	require.NotNil(t, got)
	assert.Equal(t, -2, *got)
}

func TestDiasRestantes_SinVencimiento(t *testing.T) {
	assert.Nil(t, DiasRestantes(fecha(2026, time.March, 11), nil))
}
