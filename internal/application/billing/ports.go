package billing

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/facturacion-api/internal/domain/entity"
	"github.com/tu-usuario/facturacion-api/internal/domain/repository"
)

// BillingTxRunner ejecuta una función dentro de una transacción con los repos
// de facturación atados a la tx. La asignación del consecutivo y la persistencia
// de cabecera + líneas ocurren dentro de este callback (todo o nada).
type BillingTxRunner interface {
	RunBilling(ctx context.Context, fn func(
		clienteRepo repository.ClienteRepository,
		facturaRepo repository.FacturaRepository,
	) error) error
}

// TimbradoRequest payload mínimo que se envía a la autoridad fiscal.
type TimbradoRequest struct {
	Numero  string
	RFCCuit string
	Total   decimal.Decimal
}

// FiscalStamper define el puerto de salida hacia la autoridad fiscal externa.
// La implementación concreta usa HTTP con timeout acotado; para tests se
// inyecta un fake. El caller trata cualquier error como no fatal: la factura
// ya está persistida y se retorna sin folio.
type FiscalStamper interface {
	Timbrar(ctx context.Context, req TimbradoRequest) (string, error)
}

// InvoicePDFGenerator define el puerto de generación del PDF de una factura.
type InvoicePDFGenerator interface {
	GenerateFacturaPDF(ctx context.Context, factura *entity.Factura, cliente *entity.Cliente, items []*entity.FacturaItem) ([]byte, error)
}
