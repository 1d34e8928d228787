package urgencia

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func ptr(n int) *int { return &n }

func TestClasificar_Escalera(t *testing.T) {
	casos := []struct {
		nombre   string
		texto    string
		dias     *int
		etiqueta string
		sev      Severidad
		estado   EstadoPlazo
	}{
		{"vencido ignora el numérico", "VENCIDO", ptr(-2), "VENCIDO", SeveridadCritica, EstadoVencido},
		{"vencido en frase", "plazo vencido hace 3 días", nil, "VENCIDO", SeveridadCritica, EstadoVencido},
		{"vence hoy", "VENCE HOY", ptr(0), "VENCE HOY", SeveridadCritica, EstadoVenceHoy},
		{"próximo con días", "PRÓXIMO A VENCER", ptr(2), "2 DÍAS", SeveridadAlerta, EstadoProximo},
		{"proximo sin tilde", "proximo", ptr(3), "3 DÍAS", SeveridadAlerta, EstadoProximo},
		{"próximo sin numérico", "PRÓXIMO", nil, "PRÓXIMO", SeveridadAlerta, EstadoProximo},
		{"en plazo", "EN PLAZO", ptr(8), "AL DÍA", SeveridadOK, EstadoAlDia},
		{"al día con tilde", "al día", nil, "AL DÍA", SeveridadOK, EstadoAlDia},
		{"al dia sin tilde", "AL DIA", nil, "AL DÍA", SeveridadOK, EstadoAlDia},
		{"sin texto ni fecha", "", nil, "SIN PLAZO", SeveridadNeutra, EstadoSinPlazo},
		{"sin texto con días calculados", "", ptr(4), "4 DÍAS", SeveridadNeutra, EstadoDesconocido},
		{"texto desconocido pasa tal cual", "revisar con rectoría", nil, "REVISAR CON RECTORÍA", SeveridadNeutra, EstadoDesconocido},
	}

	for _, c := range casos {
		t.Run(c.nombre, func(t *testing.T) {
			got := Clasificar(c.texto, c.dias)
			assert.Equal(t, c.etiqueta, got.Etiqueta)
			assert.Equal(t, c.sev, got.Severidad)
			assert.Equal(t, c.estado, got.Estado)
		})
	}
}

func TestClasificar_Deterministica(t *testing.T) {
	a := Clasificar("PRÓXIMO", ptr(2))
	b := Clasificar("PRÓXIMO", ptr(2))
	assert.Equal(t, a, b)
}
