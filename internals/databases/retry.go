package database

import (
	"context"
	"errors"
	"log"
	"net"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/Hluengo/colegios-sub000/internals/apperr"
)

// Política de reintentos para lecturas idempotentes (y escrituras que no
// duplican) contra Postgres. Solo reintenta fallas de transporte; un error
// definitivo del store (constraint, not found, validación) corta de inmediato.
const (
	MaxReintentos  = 3
	BackoffInicial = time.Second
)

type RetryOpts struct {
	MaxReintentos  int
	BackoffInicial time.Duration
}

func DefaultRetryOpts() RetryOpts {
	return RetryOpts{MaxReintentos: MaxReintentos, BackoffInicial: BackoffInicial}
}

// sqlStater lo implementan los errores de pgx/lib/pq envueltos por GORM.
// Se usa la interfaz para no acoplar al driver (mismo truco en controllers).
type sqlStater interface {
	SQLState() string
	Error() string
}

// EsDuplicado detecta unique_violation (SQLSTATE 23505).
func EsDuplicado(err error) bool {
	var pgErr sqlStater
	if errors.As(err, &pgErr) && pgErr.SQLState() == "23505" {
		return true
	}
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "sqlstate 23505") ||
		strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "unique constraint")
}

// EsTransitorio clasifica fallas de red/timeout elegibles para reintento.
// Un payload de error definitivo del store nunca es transitorio.
func EsTransitorio(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false
	}
	var pgErr sqlStater
	if errors.As(err, &pgErr) {
		// Clase 08 = connection exception; todo lo demás es respuesta definitiva.
		return strings.HasPrefix(pgErr.SQLState(), "08")
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "connection refused") ||
		strings.Contains(msg, "connection reset") ||
		strings.Contains(msg, "broken pipe") ||
		strings.Contains(msg, "i/o timeout") ||
		strings.Contains(msg, "bad connection")
}

// WithRetry ejecuta op con reintentos acotados y backoff exponencial
// (1s, 2s, 4s). Los reintentos corren hasta completarse aunque el caller
// abandone: son lecturas baratas o escrituras idempotentes.
func WithRetry[T any](ctx context.Context, nombre string, op func() (T, error)) (T, error) {
	return WithRetryOpts(ctx, nombre, DefaultRetryOpts(), op)
}

func WithRetryOpts[T any](ctx context.Context, nombre string, opts RetryOpts, op func() (T, error)) (T, error) {
	var zero T
	var lastErr error

	for intento := 0; intento <= opts.MaxReintentos; intento++ {
		if intento > 0 {
			backoff := opts.BackoffInicial * time.Duration(1<<uint(intento-1))
			log.Printf("[RETRY] op=%s intento=%d backoff=%s err=%v", nombre, intento, backoff, lastErr)
			select {
			case <-ctx.Done():
				return zero, apperr.Transitorio("operación cancelada en espera de reintento", ctx.Err())
			case <-time.After(backoff):
			}
		}

		out, err := op()
		if err == nil {
			return out, nil
		}
		if !EsTransitorio(err) {
			return zero, err
		}
		lastErr = err
	}
	return zero, apperr.Transitorio("reintentos agotados en "+nombre, lastErr)
}
