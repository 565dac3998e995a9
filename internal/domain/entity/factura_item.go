package entity

import "github.com/shopspring/decimal"

// FacturaItem representa una línea de una factura.
// Subtotal = Cantidad × PrecioUnitario, calculado siempre en el servidor.
type FacturaItem struct {
	ID             string
	FacturaID      string
	Descripcion    string
	Cantidad       decimal.Decimal // > 0
	PrecioUnitario decimal.Decimal // >= 0
	Subtotal       decimal.Decimal
}
