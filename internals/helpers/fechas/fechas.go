// Package fechas concentra la aritmética de días hábiles (lunes-viernes) que
// usan los plazos de convivencia. Semántica de fecha, no de timestamp: todo se
// normaliza a medianoche local antes de comparar.
package fechas

import "time"

// NormalizarDia trunca la hora a medianoche local.
func NormalizarDia(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func esFinDeSemana(t time.Time) bool {
	wd := t.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// DiasHabilesEntre cuenta los días hábiles (con signo) estrictamente entre dos
// fechas, caminando día a día en la dirección de hasta-desde y saltando
// sábados y domingos. Devuelve nil si falta alguna fecha: nil significa
// "desconocido", nunca "cero días".
func DiasHabilesEntre(desde, hasta *time.Time) *int {
	if desde == nil || hasta == nil {
		return nil
	}
	d := NormalizarDia(*desde)
	h := NormalizarDia(*hasta)

	n := 0
	switch {
	case d.Before(h):
		for cur := d.AddDate(0, 0, 1); !cur.After(h); cur = cur.AddDate(0, 0, 1) {
			if !esFinDeSemana(cur) {
				n++
			}
		}
	case h.Before(d):
		for cur := d.AddDate(0, 0, -1); !cur.Before(h); cur = cur.AddDate(0, 0, -1) {
			if !esFinDeSemana(cur) {
				n--
			}
		}
	}
	return &n
}

// ProyectarVencimiento suma N días hábiles a una fecha de inicio. N=0 devuelve
// el inicio normalizado (aunque caiga en fin de semana: el plazo no corrió).
func ProyectarVencimiento(inicio time.Time, diasHabiles int) time.Time {
	cur := NormalizarDia(inicio)
	for restantes := diasHabiles; restantes > 0; {
		cur = cur.AddDate(0, 0, 1)
		if !esFinDeSemana(cur) {
			restantes--
		}
	}
	return cur
}

// DiasRestantes devuelve los días hábiles entre hoy y el vencimiento (negativo
// si ya venció), o nil cuando no hay vencimiento conocido.
func DiasRestantes(hoy time.Time, vencimiento *time.Time) *int {
	return DiasHabilesEntre(&hoy, vencimiento)
}
