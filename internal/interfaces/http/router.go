package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/facturacion-api/internal/application/billing"
	"github.com/tu-usuario/facturacion-api/internal/application/dto"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ClienteUC     *billing.ClienteUseCase
	FacturaUC     *billing.FacturaUseCase
	CreateFactura *billing.CreateFacturaUseCase
	FacturaPDF    *billing.PDFUseCase

	AppName string
	AppEnv  string

	// AuthEnabled protege /api con Bearer Token JWT. Por defecto la API es
	// abierta, como un backend interno detrás de un gateway.
	AuthEnabled bool
	JWTSecret   string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	exposeErrorDetail = deps.AppEnv != "production"

	// Índice: descripción del servicio y sus endpoints.
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"mensaje":  "API de Facturación",
			"servicio": deps.AppName,
			"endpoints": fiber.Map{
				"clientes": "/api/clientes",
				"facturas": "/api/facturas",
			},
		})
	})

	api := app.Group("/api")
	if deps.AuthEnabled {
		api.Use(AuthMiddleware(deps.JWTSecret))
	}

	// Clientes
	clientes := api.Group("/clientes")
	clienteHandler := NewClienteHandler(deps.ClienteUC)
	clientes.Get("/", clienteHandler.List)
	clientes.Get("/:id", clienteHandler.GetByID)
	clientes.Post("/", clienteHandler.Create)
	clientes.Put("/:id", clienteHandler.Update)
	clientes.Delete("/:id", clienteHandler.Desactivar)

	// Facturas
	facturas := api.Group("/facturas")
	facturaHandler := NewFacturaHandler(deps.FacturaUC, deps.CreateFactura, deps.FacturaPDF)
	facturas.Get("/", facturaHandler.List)
	facturas.Get("/:id", facturaHandler.GetByID)
	facturas.Post("/", facturaHandler.Create)
	facturas.Patch("/:id/estado", facturaHandler.UpdateEstado)
	facturas.Get("/:id/pdf", facturaHandler.DownloadPDF)

	// Catch-all: ruta no encontrada con el mismo sobre JSON.
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(dto.Fail("Ruta no encontrada"))
	})
}
