// Package apperr define los errores tipados que comparten los servicios de
// convivencia: validación, configuración faltante, fallas transitorias del
// store y errores definitivos del store. Los controllers los traducen a HTTP.
package apperr

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type Kind int

const (
	KindValidacion Kind = iota + 1
	KindNoEncontrado
	KindConfigFaltante
	KindTransitorio
	KindAlmacen
)

func (k Kind) String() string {
	switch k {
	case KindValidacion:
		return "VALIDACION"
	case KindNoEncontrado:
		return "NO_ENCONTRADO"
	case KindConfigFaltante:
		return "CONFIG_FALTANTE"
	case KindTransitorio:
		return "TRANSITORIO"
	case KindAlmacen:
		return "ALMACEN"
	}
	return "DESCONOCIDO"
}

type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Cause }

// Is permite errors.Is contra otro *Error del mismo Kind.
func (e *Error) Is(target error) bool {
	var t *Error
	if errors.As(target, &t) {
		return t.Kind == e.Kind
	}
	return false
}

func Validacion(msg string) *Error {
	return &Error{Kind: KindValidacion, Message: msg}
}

func NoEncontrado(msg string) *Error {
	return &Error{Kind: KindNoEncontrado, Message: msg}
}

func ConfigFaltante(msg string) *Error {
	return &Error{Kind: KindConfigFaltante, Message: msg}
}

func Transitorio(msg string, cause error) *Error {
	return &Error{Kind: KindTransitorio, Message: msg, Cause: cause}
}

// Almacen preserva el mensaje del store tal cual (constraint violations, etc.)
// para que el caller pueda mostrarlo.
func Almacen(cause error) *Error {
	msg := "error del almacén de datos"
	if cause != nil {
		msg = cause.Error()
	}
	return &Error{Kind: KindAlmacen, Message: msg, Cause: cause}
}

func kindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

func EsValidacion(err error) bool     { return kindOf(err) == KindValidacion }
func EsNoEncontrado(err error) bool   { return kindOf(err) == KindNoEncontrado }
func EsConfigFaltante(err error) bool { return kindOf(err) == KindConfigFaltante }
func EsTransitorio(err error) bool    { return kindOf(err) == KindTransitorio }
func EsAlmacen(err error) bool        { return kindOf(err) == KindAlmacen }

// HTTPStatus mapea el error al código HTTP que usan los controllers.
func HTTPStatus(err error) int {
	switch kindOf(err) {
	case KindValidacion:
		return fiber.StatusBadRequest
	case KindNoEncontrado:
		return fiber.StatusNotFound
	case KindConfigFaltante:
		return fiber.StatusUnprocessableEntity
	case KindTransitorio:
		return fiber.StatusServiceUnavailable
	case KindAlmacen:
		return fiber.StatusConflict
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fiber.StatusNotFound
	}
	return fiber.StatusInternalServerError
}
