package dto

import (
	"net/mail"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/facturacion-api/internal/domain"
)

// ── Clientes ──────────────────────────────────────────────────────────────────

// CreateClienteRequest body para POST /api/clientes.
type CreateClienteRequest struct {
	Nombre    string `json:"nombre"`
	Email     string `json:"email"`
	Telefono  string `json:"telefono,omitempty"`
	RFCCuit   string `json:"rfc_cuit"`
	Direccion string `json:"direccion,omitempty"`
}

// Validate retorna los errores de validación campo a campo (nil si no hay).
func (r *CreateClienteRequest) Validate() error {
	var fields []domain.FieldError
	if strings.TrimSpace(r.Nombre) == "" {
		fields = append(fields, domain.FieldError{Field: "nombre", Message: "El nombre es requerido"})
	}
	if !emailValido(r.Email) {
		fields = append(fields, domain.FieldError{Field: "email", Message: "Email inválido"})
	}
	if strings.TrimSpace(r.RFCCuit) == "" {
		fields = append(fields, domain.FieldError{Field: "rfc_cuit", Message: "RFC/CUIT es requerido"})
	}
	return domain.NewValidationError(fields)
}

// UpdateClienteRequest body para PUT /api/clientes/:id. Punteros: solo los
// campos presentes en el body se aplican (merge parcial).
type UpdateClienteRequest struct {
	Nombre    *string `json:"nombre"`
	Email     *string `json:"email"`
	Telefono  *string `json:"telefono"`
	RFCCuit   *string `json:"rfc_cuit"`
	Direccion *string `json:"direccion"`
}

// Validate aplica sobre los campos presentes las mismas reglas del create.
func (r *UpdateClienteRequest) Validate() error {
	var fields []domain.FieldError
	if r.Nombre != nil && strings.TrimSpace(*r.Nombre) == "" {
		fields = append(fields, domain.FieldError{Field: "nombre", Message: "El nombre es requerido"})
	}
	if r.Email != nil && !emailValido(*r.Email) {
		fields = append(fields, domain.FieldError{Field: "email", Message: "Email inválido"})
	}
	if r.RFCCuit != nil && strings.TrimSpace(*r.RFCCuit) == "" {
		fields = append(fields, domain.FieldError{Field: "rfc_cuit", Message: "RFC/CUIT es requerido"})
	}
	return domain.NewValidationError(fields)
}

// ClienteResponse cliente en respuestas.
type ClienteResponse struct {
	ID        string    `json:"id"`
	Nombre    string    `json:"nombre"`
	Email     string    `json:"email"`
	Telefono  string    `json:"telefono,omitempty"`
	RFCCuit   string    `json:"rfc_cuit"`
	Direccion string    `json:"direccion,omitempty"`
	Activo    bool      `json:"activo"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ClienteResumen resumen de cliente embebido en listados de facturas.
type ClienteResumen struct {
	ID      string `json:"id"`
	Nombre  string `json:"nombre"`
	Email   string `json:"email"`
	RFCCuit string `json:"rfc_cuit"`
}

// ── Facturas ──────────────────────────────────────────────────────────────────

// CreateFacturaRequest body para POST /api/facturas.
type CreateFacturaRequest struct {
	ClienteID string               `json:"clienteId"`
	Items     []FacturaItemRequest `json:"items"`
	Notas     string               `json:"notas,omitempty"`
}

// FacturaItemRequest línea de factura en el request.
type FacturaItemRequest struct {
	Descripcion    string          `json:"descripcion"`
	Cantidad       decimal.Decimal `json:"cantidad"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario"`
}

// Validate retorna los errores de validación campo a campo (nil si no hay).
func (r *CreateFacturaRequest) Validate() error {
	var fields []domain.FieldError
	if strings.TrimSpace(r.ClienteID) == "" {
		fields = append(fields, domain.FieldError{Field: "clienteId", Message: "Cliente ID inválido"})
	}
	if len(r.Items) == 0 {
		fields = append(fields, domain.FieldError{Field: "items", Message: "Debe incluir al menos un item"})
	}
	for _, item := range r.Items {
		if strings.TrimSpace(item.Descripcion) == "" {
			fields = append(fields, domain.FieldError{Field: "items.descripcion", Message: "Descripción requerida"})
		}
		if !item.Cantidad.IsPositive() {
			fields = append(fields, domain.FieldError{Field: "items.cantidad", Message: "Cantidad debe ser mayor a 0"})
		}
		if item.PrecioUnitario.IsNegative() {
			fields = append(fields, domain.FieldError{Field: "items.precio_unitario", Message: "Precio inválido"})
		}
	}
	return domain.NewValidationError(fields)
}

// UpdateEstadoRequest body para PATCH /api/facturas/:id/estado.
type UpdateEstadoRequest struct {
	Estado string `json:"estado"`
}

// FacturaItemResponse línea de factura en la respuesta. Montos con 2 decimales
// (el redondeo ocurre aquí, en presentación, no en el cálculo).
type FacturaItemResponse struct {
	Descripcion    string `json:"descripcion"`
	Cantidad       string `json:"cantidad"`
	PrecioUnitario string `json:"precio_unitario"`
	Subtotal       string `json:"subtotal"`
}

// FacturaResponse factura completa (GET /api/facturas/:id y creación).
type FacturaResponse struct {
	ID          string                `json:"id"`
	Numero      string                `json:"numero"`
	ClienteID   string                `json:"clienteId"`
	Fecha       time.Time             `json:"fecha"`
	Items       []FacturaItemResponse `json:"items"`
	Subtotal    string                `json:"subtotal"`
	Impuestos   string                `json:"impuestos"`
	Total       string                `json:"total"`
	Estado      string                `json:"estado"`
	FolioFiscal string                `json:"folio_fiscal,omitempty"`
	Notas       string                `json:"notas,omitempty"`
	Cliente     *ClienteResponse      `json:"cliente,omitempty"`
	CreatedAt   time.Time             `json:"createdAt"`
	UpdatedAt   time.Time             `json:"updatedAt"`
}

// FacturaListItem entrada del listado: cabecera + resumen del cliente, sin líneas.
type FacturaListItem struct {
	ID          string          `json:"id"`
	Numero      string          `json:"numero"`
	ClienteID   string          `json:"clienteId"`
	Fecha       time.Time       `json:"fecha"`
	Subtotal    string          `json:"subtotal"`
	Impuestos   string          `json:"impuestos"`
	Total       string          `json:"total"`
	Estado      string          `json:"estado"`
	FolioFiscal string          `json:"folio_fiscal,omitempty"`
	Cliente     *ClienteResumen `json:"cliente,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
}

func emailValido(s string) bool {
	if strings.TrimSpace(s) == "" {
		return false
	}
	addr, err := mail.ParseAddress(s)
	return err == nil && addr.Address == s
}
