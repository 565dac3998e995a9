package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/facturacion-api/internal/application/billing"
	"github.com/tu-usuario/facturacion-api/internal/application/dto"
	"github.com/tu-usuario/facturacion-api/internal/domain"
)

// ClienteHandler maneja las peticiones HTTP de clientes.
type ClienteHandler struct {
	uc *billing.ClienteUseCase
}

// NewClienteHandler construye el handler.
func NewClienteHandler(uc *billing.ClienteUseCase) *ClienteHandler {
	return &ClienteHandler{uc: uc}
}

// List devuelve los clientes activos.
// GET /api/clientes
func (h *ClienteHandler) List(c *fiber.Ctx) error {
	clientes, err := h.uc.List()
	if err != nil {
		return respondError(c, err, "Error al obtener clientes")
	}
	return c.JSON(dto.OKList(clientes, len(clientes)))
}

// GetByID devuelve un cliente por su ID.
// GET /api/clientes/:id
func (h *ClienteHandler) GetByID(c *fiber.Ctx) error {
	cliente, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.Fail("Cliente no encontrado"))
		}
		return respondError(c, err, "Error al obtener el cliente")
	}
	return c.JSON(dto.OK(cliente))
}

// Create registra un cliente nuevo.
// POST /api/clientes
func (h *ClienteHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateClienteRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("Cuerpo de la petición inválido"))
	}
	cliente, err := h.uc.Create(in)
	if err != nil {
		var verr *domain.ValidationError
		if errors.As(err, &verr) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.FailValidation(verr.Fields))
		}
		if errors.Is(err, domain.ErrDuplicate) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("El email o RFC/CUIT ya existe"))
		}
		return respondError(c, err, "Error al crear el cliente")
	}
	return c.Status(fiber.StatusCreated).JSON(dto.OK(cliente))
}

// Update modifica un cliente existente.
// PUT /api/clientes/:id
func (h *ClienteHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateClienteRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("Cuerpo de la petición inválido"))
	}
	cliente, err := h.uc.Update(c.Params("id"), in)
	if err != nil {
		var verr *domain.ValidationError
		if errors.As(err, &verr) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.FailValidation(verr.Fields))
		}
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.Fail("Cliente no encontrado"))
		}
		if errors.Is(err, domain.ErrDuplicate) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("El email o RFC/CUIT ya existe"))
		}
		return respondError(c, err, "Error al actualizar el cliente")
	}
	return c.JSON(dto.OK(cliente))
}

// Desactivar hace baja lógica del cliente (activo = false).
// DELETE /api/clientes/:id
func (h *ClienteHandler) Desactivar(c *fiber.Ctx) error {
	if err := h.uc.Desactivar(c.Params("id")); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.Fail("Cliente no encontrado"))
		}
		return respondError(c, err, "Error al desactivar el cliente")
	}
	return c.JSON(dto.OKMessage("Cliente desactivado correctamente", nil))
}
