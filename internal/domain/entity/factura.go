package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados del ciclo de vida de una factura. El estado inicial es pendiente;
// el endpoint de estado permite fijar cualquiera de los tres sin restricción
// de transición (decisión documentada en DESIGN.md).
const (
	EstadoPendiente = "pendiente"
	EstadoPagada    = "pagada"
	EstadoCancelada = "cancelada"
)

// EstadoValido indica si s es uno de los estados reconocidos.
func EstadoValido(s string) bool {
	return s == EstadoPendiente || s == EstadoPagada || s == EstadoCancelada
}

// Factura representa la cabecera de una factura. Las facturas nunca se eliminan.
// Subtotal, Impuestos y Total siempre se derivan de las líneas, nunca del caller.
type Factura struct {
	ID          string
	Numero      string // consecutivo único PREFIJO-NNNN (FAC-0001)
	ClienteID   string // inmutable después de la creación
	Fecha       time.Time
	Subtotal    decimal.Decimal
	Impuestos   decimal.Decimal
	Total       decimal.Decimal
	Estado      string
	FolioFiscal string // folio emitido por la autoridad fiscal; único, se escribe a lo sumo una vez
	Notas       string
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// Cliente se puebla en listados y lecturas (JOIN clientes); no se persiste aquí.
	Cliente *Cliente
}
