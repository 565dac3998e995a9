package billing

import (
	"github.com/tu-usuario/facturacion-api/internal/application/dto"
	"github.com/tu-usuario/facturacion-api/internal/domain"
	"github.com/tu-usuario/facturacion-api/internal/domain/entity"
	"github.com/tu-usuario/facturacion-api/internal/domain/repository"
)

// FacturaUseCase consultas y cambios de estado de facturas.
type FacturaUseCase struct {
	repo repository.FacturaRepository
}

// NewFacturaUseCase construye el caso de uso.
func NewFacturaUseCase(repo repository.FacturaRepository) *FacturaUseCase {
	return &FacturaUseCase{repo: repo}
}

// List lista facturas filtradas por estado y/o cliente, con resumen del cliente embebido.
func (uc *FacturaUseCase) List(estado, clienteID string) ([]*dto.FacturaListItem, error) {
	if estado != "" && !entity.EstadoValido(estado) {
		return nil, domain.NewValidationError([]domain.FieldError{
			{Field: "estado", Message: "Estado inválido (pendiente, pagada o cancelada)"},
		})
	}
	list, err := uc.repo.List(repository.FacturaFilter{Estado: estado, ClienteID: clienteID})
	if err != nil {
		return nil, err
	}
	out := make([]*dto.FacturaListItem, 0, len(list))
	for _, f := range list {
		out = append(out, toFacturaListItem(f))
	}
	return out, nil
}

// GetByID retorna la factura completa con líneas y cliente embebido.
func (uc *FacturaUseCase) GetByID(id string) (*dto.FacturaResponse, error) {
	factura, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if factura == nil {
		return nil, domain.ErrNotFound
	}
	items, err := uc.repo.GetItemsByFacturaID(id)
	if err != nil {
		return nil, err
	}
	return toFacturaResponse(factura, items), nil
}

// UpdateEstado fija el estado de la factura. No hay tabla de transiciones:
// cualquier estado válido es alcanzable desde cualquier otro (ver DESIGN.md).
func (uc *FacturaUseCase) UpdateEstado(id, estado string) (*dto.FacturaResponse, error) {
	if !entity.EstadoValido(estado) {
		return nil, domain.NewValidationError([]domain.FieldError{
			{Field: "estado", Message: "Estado inválido (pendiente, pagada o cancelada)"},
		})
	}
	factura, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if factura == nil {
		return nil, domain.ErrNotFound
	}
	if err := uc.repo.UpdateEstado(id, estado); err != nil {
		return nil, err
	}
	return uc.GetByID(id)
}

// ── Mapeo entidad -> DTO ──────────────────────────────────────────────────────

func toFacturaResponse(f *entity.Factura, items []*entity.FacturaItem) *dto.FacturaResponse {
	out := &dto.FacturaResponse{
		ID:          f.ID,
		Numero:      f.Numero,
		ClienteID:   f.ClienteID,
		Fecha:       f.Fecha,
		Items:       make([]dto.FacturaItemResponse, 0, len(items)),
		Subtotal:    f.Subtotal.StringFixed(2),
		Impuestos:   f.Impuestos.StringFixed(2),
		Total:       f.Total.StringFixed(2),
		Estado:      f.Estado,
		FolioFiscal: f.FolioFiscal,
		Notas:       f.Notas,
		Cliente:     toClienteResponse(f.Cliente),
		CreatedAt:   f.CreatedAt,
		UpdatedAt:   f.UpdatedAt,
	}
	for _, item := range items {
		out.Items = append(out.Items, dto.FacturaItemResponse{
			Descripcion:    item.Descripcion,
			Cantidad:       item.Cantidad.String(),
			PrecioUnitario: item.PrecioUnitario.StringFixed(2),
			Subtotal:       item.Subtotal.StringFixed(2),
		})
	}
	return out
}

func toFacturaListItem(f *entity.Factura) *dto.FacturaListItem {
	out := &dto.FacturaListItem{
		ID:          f.ID,
		Numero:      f.Numero,
		ClienteID:   f.ClienteID,
		Fecha:       f.Fecha,
		Subtotal:    f.Subtotal.StringFixed(2),
		Impuestos:   f.Impuestos.StringFixed(2),
		Total:       f.Total.StringFixed(2),
		Estado:      f.Estado,
		FolioFiscal: f.FolioFiscal,
		CreatedAt:   f.CreatedAt,
	}
	if f.Cliente != nil {
		out.Cliente = &dto.ClienteResumen{
			ID:      f.Cliente.ID,
			Nombre:  f.Cliente.Nombre,
			Email:   f.Cliente.Email,
			RFCCuit: f.Cliente.RFCCuit,
		}
	}
	return out
}
