package constants

// Estados de un caso de convivencia. El flujo solo avanza:
// Reportado → En Seguimiento → Cerrado (terminal, nunca se reabre).
const (
	CasoReportado     = "Reportado"
	CasoEnSeguimiento = "En Seguimiento"
	CasoCerrado       = "Cerrado"
)

// Estados de un seguimiento (etapa del debido proceso).
const (
	SeguimientoPendiente      = "pending"
	SeguimientoRealizado      = "done"
	SeguimientoVencidoAsumido = "overdue-acknowledged"
)

// Etapas del debido proceso (claves del registro SLA).
const (
	EtapaIndagacion   = "indagacion"
	EtapaNotificacion = "notificacion"
	EtapaDescargos    = "descargos"
	EtapaResolucion   = "resolucion"
	EtapaApelacion    = "apelacion"
)

// SLA por defecto (días hábiles) sembrado al dar de alta un colegio. Un
// administrador puede editarlo después; los cambios solo afectan plazos
// futuros.
var PlazosEtapaDefault = map[string]int{
	EtapaIndagacion:   5,
	EtapaNotificacion: 2,
	EtapaDescargos:    5,
	EtapaResolucion:   10,
	EtapaApelacion:    5,
}

// Ventana SLA por defecto para la etapa inicial cuando el caso pasa a
// seguimiento sin configuración explícita.
const DiasIndagacionDefault = 5
