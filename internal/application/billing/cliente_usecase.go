package billing

import (
	"time"

	"github.com/google/uuid"

	"github.com/tu-usuario/facturacion-api/internal/application/dto"
	"github.com/tu-usuario/facturacion-api/internal/domain"
	"github.com/tu-usuario/facturacion-api/internal/domain/entity"
	"github.com/tu-usuario/facturacion-api/internal/domain/repository"
)

// ClienteUseCase casos de uso de clientes: CRUD con borrado lógico.
type ClienteUseCase struct {
	repo repository.ClienteRepository
}

// NewClienteUseCase construye el caso de uso.
func NewClienteUseCase(repo repository.ClienteRepository) *ClienteUseCase {
	return &ClienteUseCase{repo: repo}
}

// Create crea un nuevo cliente. La unicidad de email y rfc_cuit la garantiza
// el constraint de la base de datos (el repo traduce 23505 a ErrDuplicate).
func (uc *ClienteUseCase) Create(in dto.CreateClienteRequest) (*dto.ClienteResponse, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	now := time.Now()
	cliente := &entity.Cliente{
		ID:        uuid.New().String(),
		Nombre:    in.Nombre,
		Email:     in.Email,
		Telefono:  in.Telefono,
		RFCCuit:   in.RFCCuit,
		Direccion: in.Direccion,
		Activo:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(cliente); err != nil {
		return nil, err
	}
	return toClienteResponse(cliente), nil
}

// GetByID obtiene un cliente por ID; ErrNotFound si no existe.
func (uc *ClienteUseCase) GetByID(id string) (*dto.ClienteResponse, error) {
	cliente, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if cliente == nil {
		return nil, domain.ErrNotFound
	}
	return toClienteResponse(cliente), nil
}

// List lista los clientes activos ordenados por creación descendente.
func (uc *ClienteUseCase) List() ([]*dto.ClienteResponse, error) {
	list, err := uc.repo.ListActivos()
	if err != nil {
		return nil, err
	}
	out := make([]*dto.ClienteResponse, 0, len(list))
	for _, c := range list {
		out = append(out, toClienteResponse(c))
	}
	return out, nil
}

// Update aplica un merge parcial: solo los campos presentes en el body
// reemplazan a los existentes.
func (uc *ClienteUseCase) Update(id string, in dto.UpdateClienteRequest) (*dto.ClienteResponse, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	cliente, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if cliente == nil {
		return nil, domain.ErrNotFound
	}
	if in.Nombre != nil {
		cliente.Nombre = *in.Nombre
	}
	if in.Email != nil {
		cliente.Email = *in.Email
	}
	if in.Telefono != nil {
		cliente.Telefono = *in.Telefono
	}
	if in.RFCCuit != nil {
		cliente.RFCCuit = *in.RFCCuit
	}
	if in.Direccion != nil {
		cliente.Direccion = *in.Direccion
	}
	cliente.UpdatedAt = time.Now()
	if err := uc.repo.Update(cliente); err != nil {
		return nil, err
	}
	return toClienteResponse(cliente), nil
}

// Desactivar marca el cliente como inactivo (borrado lógico). Las facturas que
// lo referencian no se tocan y siguen siendo consultables.
func (uc *ClienteUseCase) Desactivar(id string) error {
	cliente, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if cliente == nil {
		return domain.ErrNotFound
	}
	return uc.repo.Desactivar(id)
}

func toClienteResponse(c *entity.Cliente) *dto.ClienteResponse {
	if c == nil {
		return nil
	}
	return &dto.ClienteResponse{
		ID:        c.ID,
		Nombre:    c.Nombre,
		Email:     c.Email,
		Telefono:  c.Telefono,
		RFCCuit:   c.RFCCuit,
		Direccion: c.Direccion,
		Activo:    c.Activo,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}
