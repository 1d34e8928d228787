// Package urgencia convierte el texto de urgencia que produce el agregador de
// plazos (texto libre, no un enum limpio) en una variante etiquetada. El match
// por substring ocurre una sola vez acá; el resto del sistema consume solo
// EstadoPlazo.
package urgencia

import (
	"fmt"
	"strings"
)

type EstadoPlazo string

const (
	EstadoVencido     EstadoPlazo = "vencido"
	EstadoVenceHoy    EstadoPlazo = "vence_hoy"
	EstadoProximo     EstadoPlazo = "proximo"
	EstadoAlDia       EstadoPlazo = "al_dia"
	EstadoSinPlazo    EstadoPlazo = "sin_plazo"
	EstadoDesconocido EstadoPlazo = "desconocido"
)

type Severidad string

const (
	SeveridadCritica Severidad = "critica"
	SeveridadAlerta  Severidad = "alerta"
	SeveridadOK      Severidad = "ok"
	SeveridadNeutra  Severidad = "neutra"
)

type Clasificacion struct {
	Etiqueta  string      `json:"alerta_urgencia"`
	Severidad Severidad   `json:"severidad"`
	Estado    EstadoPlazo `json:"estado"`
}

// Clasificar aplica la escalera de reglas en orden fijo (gana el primer match)
// sobre el texto en mayúsculas más los días restantes cuando existen. Es
// determinística: mismo par de entradas, misma salida.
func Clasificar(textoUrgencia string, diasRestantes *int) Clasificacion {
	texto := strings.ToUpper(strings.TrimSpace(textoUrgencia))

	// 1) Sin texto autoritativo: si al menos hay días restantes calculados a
	// partir de la fecha de vencimiento, se muestran; si no, SIN PLAZO.
	if texto == "" {
		if diasRestantes != nil {
			return Clasificacion{
				Etiqueta:  fmt.Sprintf("%d DÍAS", *diasRestantes),
				Severidad: SeveridadNeutra,
				Estado:    EstadoDesconocido,
			}
		}
		return Clasificacion{Etiqueta: "SIN PLAZO", Severidad: SeveridadNeutra, Estado: EstadoSinPlazo}
	}

	// 2) Vencido domina sobre cualquier valor numérico.
	if strings.Contains(texto, "VENCIDO") {
		return Clasificacion{Etiqueta: "VENCIDO", Severidad: SeveridadCritica, Estado: EstadoVencido}
	}

	// 3)
	if strings.Contains(texto, "VENCE HOY") {
		return Clasificacion{Etiqueta: "VENCE HOY", Severidad: SeveridadCritica, Estado: EstadoVenceHoy}
	}

	// 4) Variantes con y sin tilde.
	if strings.Contains(texto, "PRÓXIMO") || strings.Contains(texto, "PROXIMO") {
		if diasRestantes != nil {
			return Clasificacion{
				Etiqueta:  fmt.Sprintf("%d DÍAS", *diasRestantes),
				Severidad: SeveridadAlerta,
				Estado:    EstadoProximo,
			}
		}
		return Clasificacion{Etiqueta: "PRÓXIMO", Severidad: SeveridadAlerta, Estado: EstadoProximo}
	}

	// 5)
	if strings.Contains(texto, "EN PLAZO") || strings.Contains(texto, "AL DÍA") || strings.Contains(texto, "AL DIA") {
		return Clasificacion{Etiqueta: "AL DÍA", Severidad: SeveridadOK, Estado: EstadoAlDia}
	}

	// 6) Passthrough: texto desconocido se muestra tal cual, en mayúsculas.
	return Clasificacion{Etiqueta: texto, Severidad: SeveridadNeutra, Estado: EstadoDesconocido}
}
