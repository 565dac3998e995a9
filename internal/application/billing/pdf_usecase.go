package billing

import (
	"context"
	"fmt"

	"github.com/tu-usuario/facturacion-api/internal/domain"
	"github.com/tu-usuario/facturacion-api/internal/domain/repository"
)

// PDFUseCase genera la representación en PDF de una factura persistida.
type PDFUseCase struct {
	facturaRepo repository.FacturaRepository
	clienteRepo repository.ClienteRepository
	generator   InvoicePDFGenerator
}

// NewPDFUseCase construye el caso de uso inyectando sus dependencias.
func NewPDFUseCase(
	facturaRepo repository.FacturaRepository,
	clienteRepo repository.ClienteRepository,
	generator InvoicePDFGenerator,
) *PDFUseCase {
	return &PDFUseCase{
		facturaRepo: facturaRepo,
		clienteRepo: clienteRepo,
		generator:   generator,
	}
}

// DownloadFacturaPDF recupera factura, cliente y líneas, y genera el PDF.
//
// Retorna:
//   - (pdfBytes, filename, nil) si todo sale bien.
//   - domain.ErrNotFound        si la factura no existe.
func (uc *PDFUseCase) DownloadFacturaPDF(ctx context.Context, facturaID string) (pdfBytes []byte, filename string, err error) {
	factura, err := uc.facturaRepo.GetByID(facturaID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener factura: %w", err)
	}
	if factura == nil {
		return nil, "", domain.ErrNotFound
	}

	cliente := factura.Cliente
	if cliente == nil {
		cliente, err = uc.clienteRepo.GetByID(factura.ClienteID)
		if err != nil || cliente == nil {
			return nil, "", fmt.Errorf("pdf: obtener cliente de la factura: %w", err)
		}
	}

	items, err := uc.facturaRepo.GetItemsByFacturaID(facturaID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener líneas: %w", err)
	}

	pdfBytes, err = uc.generator.GenerateFacturaPDF(ctx, factura, cliente, items)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: generación fallida: %w", err)
	}

	filename = fmt.Sprintf("factura-%s.pdf", factura.Numero)
	return pdfBytes, filename, nil
}
