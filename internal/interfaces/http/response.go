package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"github.com/tu-usuario/facturacion-api/internal/application/dto"
)

// exposeErrorDetail controla si las respuestas 500 incluyen el detalle del
// error. Se desactiva en producción (ver Router).
var exposeErrorDetail bool

// respondError responde 500 con el mensaje dado; el detalle del error interno
// solo se expone fuera de producción.
func respondError(c *fiber.Ctx, err error, message string) error {
	log.Error().Err(err).Str("path", c.Path()).Str("method", c.Method()).Msg(message)
	if exposeErrorDetail {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.FailDetail(message, err.Error()))
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.Fail(message))
}
