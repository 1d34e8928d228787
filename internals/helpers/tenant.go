package helper

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// El scope de colegio (tenant) llega resuelto por la capa de entrada: un
// middleware upstream lo deja en Locals, o viene en el header X-Colegio-ID /
// el path /:colegio_id. Sin scope no hay acceso: nunca se listan filas de
// otros colegios por omisión del filtro.

var ErrColegioScopeFaltante = fiber.NewError(fiber.StatusUnauthorized, "Scope de colegio no encontrado")

func GetActiveColegioID(c *fiber.Ctx) (uuid.UUID, error) {
	if v, ok := c.Locals("colegio_id").(uuid.UUID); ok && v != uuid.Nil {
		return v, nil
	}
	if v, ok := c.Locals("colegio_id").(string); ok {
		if id, err := uuid.Parse(strings.TrimSpace(v)); err == nil && id != uuid.Nil {
			return id, nil
		}
	}
	if raw := strings.TrimSpace(c.Params("colegio_id")); raw != "" {
		if id, err := uuid.Parse(raw); err == nil && id != uuid.Nil {
			return id, nil
		}
	}
	if raw := strings.TrimSpace(c.Get("X-Colegio-ID")); raw != "" {
		if id, err := uuid.Parse(raw); err == nil && id != uuid.Nil {
			return id, nil
		}
	}
	return uuid.Nil, ErrColegioScopeFaltante
}
