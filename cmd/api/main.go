package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/shopspring/decimal"

	appbilling "github.com/tu-usuario/facturacion-api/internal/application/billing"
	domainbilling "github.com/tu-usuario/facturacion-api/internal/domain/billing"
	"github.com/tu-usuario/facturacion-api/internal/infrastructure/fiscal"
	infrapdf "github.com/tu-usuario/facturacion-api/internal/infrastructure/pdf"
	"github.com/tu-usuario/facturacion-api/internal/infrastructure/postgres"
	httpRouter "github.com/tu-usuario/facturacion-api/internal/interfaces/http"
	"github.com/tu-usuario/facturacion-api/pkg/config"
	"github.com/tu-usuario/facturacion-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	clienteRepo := postgres.NewClienteRepository(pool)
	facturaRepo := postgres.NewFacturaRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Timbrado fiscal: sin FISCAL_API_URL las facturas se emiten sin folio.
	var stamper appbilling.FiscalStamper
	if cfg.Fiscal.APIURL != "" {
		stamper = fiscal.NewClient(
			cfg.Fiscal.APIURL,
			cfg.Fiscal.APIKey,
			time.Duration(cfg.Fiscal.TimeoutSeconds)*time.Second,
		)
	} else {
		log.Warn().Msg("FISCAL_API_URL no configurado, las facturas se emitirán sin folio fiscal")
	}

	taxRate := decimal.NewFromFloat(cfg.Billing.TaxRatePercent).Div(decimal.NewFromInt(100))
	calc := domainbilling.NewTotalsCalculator(taxRate)

	clienteUC := appbilling.NewClienteUseCase(clienteRepo)
	facturaUC := appbilling.NewFacturaUseCase(facturaRepo)
	createFacturaUC := appbilling.NewCreateFacturaUseCase(
		txRunner, clienteRepo, facturaRepo,
		calc, stamper, cfg.Billing.NumeroPrefix, log,
	)
	pdfGenerator := infrapdf.NewMarotoPDFGenerator()
	facturaPDFUC := appbilling.NewPDFUseCase(facturaRepo, clienteRepo, pdfGenerator)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log.Zerolog()))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "API de Facturación",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		ClienteUC:     clienteUC,
		FacturaUC:     facturaUC,
		CreateFactura: createFacturaUC,
		FacturaPDF:    facturaPDFUC,
		AppName:       cfg.App.Name,
		AppEnv:        cfg.App.Env,
		AuthEnabled:   cfg.JWT.Enabled,
		JWTSecret:     cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
