package billing

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/tu-usuario/facturacion-api/internal/application/dto"
	"github.com/tu-usuario/facturacion-api/internal/domain"
	domainbilling "github.com/tu-usuario/facturacion-api/internal/domain/billing"
	"github.com/tu-usuario/facturacion-api/internal/domain/entity"
	"github.com/tu-usuario/facturacion-api/internal/domain/repository"
	"github.com/tu-usuario/facturacion-api/pkg/logger"
)

// CreateFacturaUseCase crea una factura: valida el cliente, calcula totales,
// asigna el consecutivo y persiste cabecera + líneas en una transacción, y
// después del commit intenta el timbrado fiscal (best-effort).
type CreateFacturaUseCase struct {
	txRunner    BillingTxRunner
	clienteRepo repository.ClienteRepository
	facturaRepo repository.FacturaRepository
	calc        *domainbilling.TotalsCalculator
	stamper     FiscalStamper // nil = timbrado no configurado
	prefix      string
	log         *logger.Logger
}

// NewCreateFacturaUseCase construye el caso de uso. stamper puede ser nil si
// no hay servicio fiscal configurado; en ese caso las facturas quedan sin folio.
func NewCreateFacturaUseCase(
	txRunner BillingTxRunner,
	clienteRepo repository.ClienteRepository,
	facturaRepo repository.FacturaRepository,
	calc *domainbilling.TotalsCalculator,
	stamper FiscalStamper,
	prefix string,
	log *logger.Logger,
) *CreateFacturaUseCase {
	return &CreateFacturaUseCase{
		txRunner:    txRunner,
		clienteRepo: clienteRepo,
		facturaRepo: facturaRepo,
		calc:        calc,
		stamper:     stamper,
		prefix:      prefix,
		log:         log,
	}
}

// Create crea la factura. El timbrado corre después del commit: si la autoridad
// fiscal falla (timeout, red, non-2xx) la factura ya quedó persistida y se
// retorna igual, sin folio_fiscal.
func (uc *CreateFacturaUseCase) Create(ctx context.Context, in dto.CreateFacturaRequest) (*dto.FacturaResponse, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	// Validar que el cliente existe (la referencia es inmutable después de crear)
	cliente, err := uc.clienteRepo.GetByID(in.ClienteID)
	if err != nil {
		return nil, err
	}
	if cliente == nil {
		return nil, domain.ErrNotFound
	}

	// Totales siempre derivados de las líneas, nunca del caller
	lineas := make([]domainbilling.LineaItem, 0, len(in.Items))
	for _, item := range in.Items {
		lineas = append(lineas, domainbilling.LineaItem{
			Descripcion:    item.Descripcion,
			Cantidad:       item.Cantidad,
			PrecioUnitario: item.PrecioUnitario,
		})
	}
	items, totales, err := uc.calc.Calcular(lineas)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	factura := &entity.Factura{
		ID:        uuid.New().String(),
		ClienteID: cliente.ID,
		Fecha:     now,
		Subtotal:  totales.Subtotal,
		Impuestos: totales.Impuestos,
		Total:     totales.Total,
		Estado:    entity.EstadoPendiente,
		Notas:     in.Notas,
		CreatedAt: now,
		UpdatedAt: now,
	}

	// Consecutivo + persistencia en una sola transacción. UltimoNumero serializa
	// la asignación (advisory lock por prefijo) para que dos creaciones
	// concurrentes no lean el mismo último número; el constraint único sobre
	// numero es el respaldo final.
	err = uc.txRunner.RunBilling(ctx, func(
		_ repository.ClienteRepository,
		facturaRepo repository.FacturaRepository,
	) error {
		ultimo, err := facturaRepo.UltimoNumero(uc.prefix)
		if err != nil {
			return err
		}
		numero, err := domainbilling.NextNumero(uc.prefix, ultimo)
		if err != nil {
			return err
		}
		factura.Numero = numero

		if err := facturaRepo.Create(factura); err != nil {
			return err
		}
		for _, item := range items {
			item.ID = uuid.New().String()
			item.FacturaID = factura.ID
			if err := facturaRepo.CreateItem(item); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Timbrado fiscal best-effort: nunca revierte ni bloquea la creación.
	uc.timbrar(ctx, factura, cliente)

	factura.Cliente = cliente
	return toFacturaResponse(factura, items), nil
}

// timbrar llama a la autoridad fiscal y, si obtiene folio, lo adjunta a la
// factura ya persistida. Cualquier fallo se registra y se descarta.
func (uc *CreateFacturaUseCase) timbrar(ctx context.Context, factura *entity.Factura, cliente *entity.Cliente) {
	if uc.stamper == nil {
		return
	}
	folio, err := uc.stamper.Timbrar(ctx, TimbradoRequest{
		Numero:  factura.Numero,
		RFCCuit: cliente.RFCCuit,
		Total:   factura.Total,
	})
	if err != nil {
		uc.log.Warn().Err(err).
			Str("factura", factura.Numero).
			Msg("timbrado fiscal falló, la factura queda sin folio")
		return
	}
	if err := uc.facturaRepo.SetFolioFiscal(factura.ID, folio); err != nil {
		uc.log.Error().Err(err).
			Str("factura", factura.Numero).
			Str("folio", folio).
			Msg("no se pudo guardar el folio fiscal")
		return
	}
	factura.FolioFiscal = folio
}
