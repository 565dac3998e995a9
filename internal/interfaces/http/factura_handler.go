package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/facturacion-api/internal/application/billing"
	"github.com/tu-usuario/facturacion-api/internal/application/dto"
	"github.com/tu-usuario/facturacion-api/internal/domain"
)

// FacturaHandler maneja las peticiones HTTP de facturas.
type FacturaHandler struct {
	facturaUC *billing.FacturaUseCase
	createUC  *billing.CreateFacturaUseCase
	pdfUC     *billing.PDFUseCase
}

// NewFacturaHandler construye el handler.
func NewFacturaHandler(
	facturaUC *billing.FacturaUseCase,
	createUC *billing.CreateFacturaUseCase,
	pdfUC *billing.PDFUseCase,
) *FacturaHandler {
	return &FacturaHandler{facturaUC: facturaUC, createUC: createUC, pdfUC: pdfUC}
}

// List devuelve las facturas, con filtros opcionales por estado y cliente.
// GET /api/facturas?estado=pendiente&clienteId=<uuid>
func (h *FacturaHandler) List(c *fiber.Ctx) error {
	facturas, err := h.facturaUC.List(c.Query("estado"), c.Query("clienteId"))
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("Estado inválido. Use: pendiente, pagada o cancelada"))
		}
		return respondError(c, err, "Error al obtener facturas")
	}
	return c.JSON(dto.OKList(facturas, len(facturas)))
}

// GetByID devuelve una factura con su cliente y sus items.
// GET /api/facturas/:id
func (h *FacturaHandler) GetByID(c *fiber.Ctx) error {
	factura, err := h.facturaUC.GetByID(c.Params("id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.Fail("Factura no encontrada"))
		}
		return respondError(c, err, "Error al obtener la factura")
	}
	return c.JSON(dto.OK(factura))
}

// Create emite una factura: numera, calcula totales y solicita el timbrado.
// POST /api/facturas
func (h *FacturaHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateFacturaRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("Cuerpo de la petición inválido"))
	}
	factura, err := h.createUC.Create(c.Context(), in)
	if err != nil {
		var verr *domain.ValidationError
		if errors.As(err, &verr) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.FailValidation(verr.Fields))
		}
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.Fail("Cliente no encontrado"))
		}
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("Datos de la factura inválidos"))
		}
		return respondError(c, err, "Error al crear la factura")
	}
	return c.Status(fiber.StatusCreated).JSON(dto.OK(factura))
}

// UpdateEstado cambia el estado de una factura.
// PATCH /api/facturas/:id/estado
func (h *FacturaHandler) UpdateEstado(c *fiber.Ctx) error {
	var in dto.UpdateEstadoRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("Cuerpo de la petición inválido"))
	}
	factura, err := h.facturaUC.UpdateEstado(c.Params("id"), in.Estado)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("Estado inválido. Use: pendiente, pagada o cancelada"))
		}
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.Fail("Factura no encontrada"))
		}
		return respondError(c, err, "Error al actualizar el estado")
	}
	return c.JSON(dto.OKMessage("Estado actualizado correctamente", factura))
}

// DownloadPDF devuelve el PDF de la factura para descarga.
// GET /api/facturas/:id/pdf
func (h *FacturaHandler) DownloadPDF(c *fiber.Ctx) error {
	pdfBytes, filename, err := h.pdfUC.DownloadFacturaPDF(c.Context(), c.Params("id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.Fail("Factura no encontrada"))
		}
		return respondError(c, err, "Error al generar el PDF")
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(pdfBytes)
}
