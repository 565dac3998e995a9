package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/tu-usuario/facturacion-api/internal/domain"
	"github.com/tu-usuario/facturacion-api/internal/domain/entity"
	"github.com/tu-usuario/facturacion-api/internal/domain/repository"
)

var _ repository.FacturaRepository = (*FacturaRepo)(nil)

// FacturaRepo implementación de FacturaRepository (usable con pool o tx).
type FacturaRepo struct {
	q Querier
}

// NewFacturaRepository construye el adaptador. Pasar pool o tx (Querier).
func NewFacturaRepository(q Querier) *FacturaRepo {
	return &FacturaRepo{q: q}
}

// UltimoNumero serializa la asignación de consecutivos con un advisory lock
// transaccional por prefijo y retorna el número más alto existente ("" si no hay).
// Debe llamarse dentro de la transacción de creación: el lock se libera en el
// Commit/Rollback, de modo que una segunda creación concurrente espera aquí en
// lugar de leer el mismo último número. El orden por longitud y luego
// lexicográfico da el máximo numérico para sufijos con ceros a la izquierda.
func (r *FacturaRepo) UltimoNumero(prefix string) (string, error) {
	ctx := context.Background()
	if _, err := r.q.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext('facturas:' || $1))`, prefix); err != nil {
		return "", fmt.Errorf("lock consecutivo: %w", err)
	}
	query := `
		SELECT numero FROM facturas
		WHERE numero LIKE $1 || '-%'
		ORDER BY length(numero) DESC, numero DESC
		LIMIT 1`
	var numero string
	err := r.q.QueryRow(ctx, query, prefix).Scan(&numero)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", nil
		}
		return "", fmt.Errorf("último número: %w", err)
	}
	return numero, nil
}

// Create persiste la cabecera de la factura. El índice único sobre numero es
// el respaldo final contra consecutivos duplicados.
func (r *FacturaRepo) Create(factura *entity.Factura) error {
	if factura.ID == "" {
		factura.ID = uuid.New().String()
	}
	query := `
		INSERT INTO facturas (id, numero, cliente_id, fecha, subtotal, impuestos, total, estado, folio_fiscal, notas, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(context.Background(), query,
		factura.ID, factura.Numero, factura.ClienteID, factura.Fecha,
		factura.Subtotal, factura.Impuestos, factura.Total, factura.Estado,
		nullIfEmpty(factura.FolioFiscal), nullIfEmpty(factura.Notas),
		factura.CreatedAt, factura.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert factura: %w", err)
	}
	return nil
}

// CreateItem persiste una línea de la factura. seq conserva el orden de las líneas.
func (r *FacturaRepo) CreateItem(item *entity.FacturaItem) error {
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	query := `
		INSERT INTO factura_items (id, factura_id, descripcion, cantidad, precio_unitario, subtotal, seq)
		VALUES ($1, $2, $3, $4, $5, $6,
			COALESCE((SELECT MAX(seq) + 1 FROM factura_items WHERE factura_id = $2), 1))`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.FacturaID, item.Descripcion, item.Cantidad, item.PrecioUnitario, item.Subtotal,
	)
	if err != nil {
		return fmt.Errorf("insert factura item: %w", err)
	}
	return nil
}

// GetByID obtiene la factura con el cliente completo embebido.
func (r *FacturaRepo) GetByID(id string) (*entity.Factura, error) {
	query := `
		SELECT f.id, f.numero, f.cliente_id, f.fecha, f.subtotal, f.impuestos, f.total,
		       f.estado, f.folio_fiscal, f.notas, f.created_at, f.updated_at,
		       c.id, c.nombre, c.email, c.telefono, c.rfc_cuit, c.direccion, c.activo, c.created_at, c.updated_at
		FROM facturas f
		JOIN clientes c ON c.id = f.cliente_id
		WHERE f.id = $1`
	factura, err := scanFacturaConCliente(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get factura: %w", err)
	}
	return factura, nil
}

// List retorna cabeceras con el cliente embebido, más recientes primero.
// Campos vacíos del filtro no filtran.
func (r *FacturaRepo) List(filter repository.FacturaFilter) ([]*entity.Factura, error) {
	query := `
		SELECT f.id, f.numero, f.cliente_id, f.fecha, f.subtotal, f.impuestos, f.total,
		       f.estado, f.folio_fiscal, f.notas, f.created_at, f.updated_at,
		       c.id, c.nombre, c.email, c.telefono, c.rfc_cuit, c.direccion, c.activo, c.created_at, c.updated_at
		FROM facturas f
		JOIN clientes c ON c.id = f.cliente_id
		WHERE ($1 = '' OR f.estado = $1)
		  AND ($2 = '' OR f.cliente_id::text = $2)
		ORDER BY f.created_at DESC`
	rows, err := r.q.Query(context.Background(), query, filter.Estado, filter.ClienteID)
	if err != nil {
		return nil, fmt.Errorf("list facturas: %w", err)
	}
	defer rows.Close()
	var list []*entity.Factura
	for rows.Next() {
		factura, err := scanFacturaConCliente(rows)
		if err != nil {
			return nil, fmt.Errorf("scan factura: %w", err)
		}
		list = append(list, factura)
	}
	return list, rows.Err()
}

// GetItemsByFacturaID obtiene las líneas de la factura en su orden original.
func (r *FacturaRepo) GetItemsByFacturaID(facturaID string) ([]*entity.FacturaItem, error) {
	query := `
		SELECT id, factura_id, descripcion, cantidad, precio_unitario, subtotal
		FROM factura_items WHERE factura_id = $1 ORDER BY seq`
	rows, err := r.q.Query(context.Background(), query, facturaID)
	if err != nil {
		return nil, fmt.Errorf("list factura items: %w", err)
	}
	defer rows.Close()
	var list []*entity.FacturaItem
	for rows.Next() {
		var item entity.FacturaItem
		if err := rows.Scan(&item.ID, &item.FacturaID, &item.Descripcion,
			&item.Cantidad, &item.PrecioUnitario, &item.Subtotal); err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		list = append(list, &item)
	}
	return list, rows.Err()
}

// UpdateEstado fija el estado sin restricción de transición.
func (r *FacturaRepo) UpdateEstado(id, estado string) error {
	query := `UPDATE facturas SET estado = $2, updated_at = NOW() WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, id, estado)
	if err != nil {
		return fmt.Errorf("update estado: %w", err)
	}
	return nil
}

// SetFolioFiscal escribe el folio solo si la columna sigue en NULL: una vez
// fijado, el folio nunca se sobreescribe.
func (r *FacturaRepo) SetFolioFiscal(id, folio string) error {
	query := `
		UPDATE facturas SET folio_fiscal = $2, updated_at = NOW()
		WHERE id = $1 AND folio_fiscal IS NULL`
	_, err := r.q.Exec(context.Background(), query, id, folio)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("set folio fiscal: %w", err)
	}
	return nil
}

func scanFacturaConCliente(row pgx.Row) (*entity.Factura, error) {
	var f entity.Factura
	var c entity.Cliente
	var folio, notas, telefono, direccion *string
	err := row.Scan(
		&f.ID, &f.Numero, &f.ClienteID, &f.Fecha, &f.Subtotal, &f.Impuestos, &f.Total,
		&f.Estado, &folio, &notas, &f.CreatedAt, &f.UpdatedAt,
		&c.ID, &c.Nombre, &c.Email, &telefono, &c.RFCCuit, &direccion, &c.Activo, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	f.FolioFiscal = derefStr(folio)
	f.Notas = derefStr(notas)
	c.Telefono = derefStr(telefono)
	c.Direccion = derefStr(direccion)
	f.Cliente = &c
	return &f, nil
}
