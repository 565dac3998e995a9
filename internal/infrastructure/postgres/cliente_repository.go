package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/tu-usuario/facturacion-api/internal/domain"
	"github.com/tu-usuario/facturacion-api/internal/domain/entity"
	"github.com/tu-usuario/facturacion-api/internal/domain/repository"
)

var _ repository.ClienteRepository = (*ClienteRepo)(nil)

// ClienteRepo implementación de ClienteRepository (usable con pool o tx).
type ClienteRepo struct {
	q Querier
}

// NewClienteRepository construye el adaptador. Pasar pool o tx (Querier).
func NewClienteRepository(q Querier) *ClienteRepo {
	return &ClienteRepo{q: q}
}

// Create persiste un nuevo cliente. Los índices únicos sobre email y rfc_cuit
// son quienes garantizan la unicidad; 23505 se traduce a ErrDuplicate.
func (r *ClienteRepo) Create(cliente *entity.Cliente) error {
	query := `
		INSERT INTO clientes (id, nombre, email, telefono, rfc_cuit, direccion, activo, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		cliente.ID, cliente.Nombre, cliente.Email, nullIfEmpty(cliente.Telefono),
		cliente.RFCCuit, nullIfEmpty(cliente.Direccion), cliente.Activo,
		cliente.CreatedAt, cliente.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert cliente: %w", err)
	}
	return nil
}

// GetByID obtiene un cliente por ID (también los inactivos: las facturas viejas
// necesitan seguir resolviendo su cliente).
func (r *ClienteRepo) GetByID(id string) (*entity.Cliente, error) {
	query := `
		SELECT id, nombre, email, telefono, rfc_cuit, direccion, activo, created_at, updated_at
		FROM clientes WHERE id = $1`
	cliente, err := scanCliente(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get cliente: %w", err)
	}
	return cliente, nil
}

// ListActivos lista los clientes con activo=true, más recientes primero.
func (r *ClienteRepo) ListActivos() ([]*entity.Cliente, error) {
	query := `
		SELECT id, nombre, email, telefono, rfc_cuit, direccion, activo, created_at, updated_at
		FROM clientes WHERE activo = TRUE ORDER BY created_at DESC`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list clientes: %w", err)
	}
	defer rows.Close()
	var list []*entity.Cliente
	for rows.Next() {
		cliente, err := scanCliente(rows)
		if err != nil {
			return nil, fmt.Errorf("scan cliente: %w", err)
		}
		list = append(list, cliente)
	}
	return list, rows.Err()
}

// Update actualiza todos los campos editables del cliente.
func (r *ClienteRepo) Update(cliente *entity.Cliente) error {
	query := `
		UPDATE clientes
		SET nombre = $2, email = $3, telefono = $4, rfc_cuit = $5, direccion = $6, updated_at = $7
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		cliente.ID, cliente.Nombre, cliente.Email, nullIfEmpty(cliente.Telefono),
		cliente.RFCCuit, nullIfEmpty(cliente.Direccion), cliente.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update cliente: %w", err)
	}
	return nil
}

// Desactivar marca el cliente como inactivo (borrado lógico). La fila se
// conserva para las facturas que lo referencian.
func (r *ClienteRepo) Desactivar(id string) error {
	query := `UPDATE clientes SET activo = FALSE, updated_at = NOW() WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, id)
	if err != nil {
		return fmt.Errorf("desactivar cliente: %w", err)
	}
	return nil
}

func scanCliente(row pgx.Row) (*entity.Cliente, error) {
	var c entity.Cliente
	var telefono, direccion *string
	err := row.Scan(
		&c.ID, &c.Nombre, &c.Email, &telefono, &c.RFCCuit, &direccion,
		&c.Activo, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	c.Telefono = derefStr(telefono)
	c.Direccion = derefStr(direccion)
	return &c, nil
}
