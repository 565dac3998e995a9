// Package billing contiene la lógica pura de facturación: cálculo de totales
// y generación del consecutivo de factura. No tiene dependencias de
// infraestructura para poder testearse de forma aislada.
package billing

import (
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/facturacion-api/internal/domain"
	"github.com/tu-usuario/facturacion-api/internal/domain/entity"
)

// LineaItem entrada del cálculo de totales (cantidad y precio unitario).
type LineaItem struct {
	Descripcion    string
	Cantidad       decimal.Decimal
	PrecioUnitario decimal.Decimal
}

// Totales resultado agregado del cálculo. Los montos se mantienen sin redondear;
// el redondeo a 2 decimales ocurre solo en la capa de presentación (JSON/PDF).
type Totales struct {
	Subtotal  decimal.Decimal
	Impuestos decimal.Decimal
	Total     decimal.Decimal
}

// TotalsCalculator calcula subtotales por línea y totales agregados con una
// tasa de impuesto fija (configurable por jurisdicción).
type TotalsCalculator struct {
	taxRate decimal.Decimal // fracción, no porcentaje (0.16 = 16%)
}

// NewTotalsCalculator construye el calculador. rate es la fracción de impuesto (0.16 = 16%).
func NewTotalsCalculator(rate decimal.Decimal) *TotalsCalculator {
	return &TotalsCalculator{taxRate: rate}
}

// TaxRate devuelve la tasa configurada.
func (c *TotalsCalculator) TaxRate() decimal.Decimal { return c.taxRate }

// Calcular valida las líneas, calcula el subtotal de cada una y los totales agregados.
// Cantidad <= 0 o precio < 0 retornan ErrInvalidInput: la validación de formato ya ocurrió
// en el request, esta es la última barrera antes de persistir.
func (c *TotalsCalculator) Calcular(items []LineaItem) ([]*entity.FacturaItem, Totales, error) {
	if len(items) == 0 {
		return nil, Totales{}, domain.ErrInvalidInput
	}

	out := make([]*entity.FacturaItem, 0, len(items))
	subtotal := decimal.Zero
	for _, item := range items {
		if !item.Cantidad.IsPositive() || item.PrecioUnitario.IsNegative() {
			return nil, Totales{}, domain.ErrInvalidInput
		}
		lineSubtotal := item.Cantidad.Mul(item.PrecioUnitario)
		out = append(out, &entity.FacturaItem{
			Descripcion:    item.Descripcion,
			Cantidad:       item.Cantidad,
			PrecioUnitario: item.PrecioUnitario,
			Subtotal:       lineSubtotal,
		})
		subtotal = subtotal.Add(lineSubtotal)
	}

	impuestos := subtotal.Mul(c.taxRate)
	return out, Totales{
		Subtotal:  subtotal,
		Impuestos: impuestos,
		Total:     subtotal.Add(impuestos),
	}, nil
}
