package repository

import "github.com/tu-usuario/facturacion-api/internal/domain/entity"

// ClienteRepository define el puerto de persistencia para Cliente.
// La capa de storage garantiza la unicidad de email y rfc_cuit
// (constraints únicos) y retorna domain.ErrDuplicate al violarlas.
type ClienteRepository interface {
	Create(cliente *entity.Cliente) error
	// GetByID retorna (nil, nil) si el cliente no existe.
	GetByID(id string) (*entity.Cliente, error)
	// ListActivos lista clientes con activo=true ordenados por created_at DESC.
	ListActivos() ([]*entity.Cliente, error)
	Update(cliente *entity.Cliente) error
	// Desactivar marca activo=false (borrado lógico); nunca elimina la fila.
	Desactivar(id string) error
}
