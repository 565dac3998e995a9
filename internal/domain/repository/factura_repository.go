package repository

import "github.com/tu-usuario/facturacion-api/internal/domain/entity"

// FacturaFilter filtros del listado de facturas; campos vacíos no filtran.
type FacturaFilter struct {
	Estado    string
	ClienteID string
}

// FacturaRepository define el puerto de persistencia para Factura y sus líneas.
// Las facturas nunca se eliminan.
type FacturaRepository interface {
	Create(factura *entity.Factura) error
	CreateItem(item *entity.FacturaItem) error
	// GetByID retorna la cabecera con el cliente embebido; (nil, nil) si no existe.
	GetByID(id string) (*entity.Factura, error)
	GetItemsByFacturaID(facturaID string) ([]*entity.FacturaItem, error)
	// List retorna cabeceras con resumen de cliente embebido, created_at DESC.
	List(filter FacturaFilter) ([]*entity.Factura, error)
	// UltimoNumero retorna el número más alto existente con ese prefijo ("" si no hay).
	// Dentro de una transacción la implementación serializa la asignación de
	// consecutivos, de modo que dos creaciones concurrentes no lean el mismo último número.
	UltimoNumero(prefix string) (string, error)
	UpdateEstado(id, estado string) error
	// SetFolioFiscal escribe el folio solo si aún es NULL (se fija a lo sumo una vez).
	SetFolioFiscal(id, folio string) error
}
