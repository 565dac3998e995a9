package billing_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appbilling "github.com/tu-usuario/facturacion-api/internal/application/billing"
	"github.com/tu-usuario/facturacion-api/internal/domain"
	"github.com/tu-usuario/facturacion-api/internal/domain/entity"
)

// seedFactura inserta una factura pagable en el fake.
func seedFactura(repo *fakeFacturaRepo, id, numero, estado string) *entity.Factura {
	f := &entity.Factura{
		ID:        id,
		Numero:    numero,
		ClienteID: clienteID,
		Fecha:     time.Now(),
		Subtotal:  decimal.RequireFromString("25.00"),
		Impuestos: decimal.RequireFromString("4.00"),
		Total:     decimal.RequireFromString("29.00"),
		Estado:    estado,
		Cliente:   testCliente(),
	}
	repo.facturas[id] = f
	return f
}

func TestFacturaList_FiltraPorEstado(t *testing.T) {
	repo := newFakeFacturaRepo()
	seedFactura(repo, "f1", "FAC-0001", entity.EstadoPendiente)
	seedFactura(repo, "f2", "FAC-0002", entity.EstadoPagada)
	uc := appbilling.NewFacturaUseCase(repo)

	list, err := uc.List(entity.EstadoPagada, "")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "FAC-0002", list[0].Numero)
	require.NotNil(t, list[0].Cliente, "el listado embebe el resumen del cliente")
	assert.Equal(t, "Acme S.A. de C.V.", list[0].Cliente.Nombre)
}

func TestFacturaList_EstadoInvalido(t *testing.T) {
	uc := appbilling.NewFacturaUseCase(newFakeFacturaRepo())
	_, err := uc.List("facturada", "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestFacturaGetByID_NoExiste(t *testing.T) {
	uc := appbilling.NewFacturaUseCase(newFakeFacturaRepo())
	_, err := uc.GetByID("no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestFacturaGetByID_IncluyeItems(t *testing.T) {
	repo := newFakeFacturaRepo()
	seedFactura(repo, "f1", "FAC-0001", entity.EstadoPendiente)
	repo.items = append(repo.items, &entity.FacturaItem{
		ID:             "i1",
		FacturaID:      "f1",
		Descripcion:    "Desarrollo web",
		Cantidad:       decimal.NewFromInt(2),
		PrecioUnitario: decimal.RequireFromString("10.00"),
		Subtotal:       decimal.RequireFromString("20.00"),
	})
	uc := appbilling.NewFacturaUseCase(repo)

	resp, err := uc.GetByID("f1")
	require.NoError(t, err)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, "2", resp.Items[0].Cantidad)
	assert.Equal(t, "10.00", resp.Items[0].PrecioUnitario)
	assert.Equal(t, "20.00", resp.Items[0].Subtotal)
	assert.Equal(t, "29.00", resp.Total)
}

func TestFacturaUpdateEstado(t *testing.T) {
	repo := newFakeFacturaRepo()
	seedFactura(repo, "f1", "FAC-0001", entity.EstadoPendiente)
	uc := appbilling.NewFacturaUseCase(repo)

	resp, err := uc.UpdateEstado("f1", entity.EstadoPagada)
	require.NoError(t, err)
	assert.Equal(t, entity.EstadoPagada, resp.Estado)
}

// No hay tabla de transiciones: una factura cancelada puede volver a pendiente.
func TestFacturaUpdateEstado_SinRestricciones(t *testing.T) {
	repo := newFakeFacturaRepo()
	seedFactura(repo, "f1", "FAC-0001", entity.EstadoCancelada)
	uc := appbilling.NewFacturaUseCase(repo)

	resp, err := uc.UpdateEstado("f1", entity.EstadoPendiente)
	require.NoError(t, err)
	assert.Equal(t, entity.EstadoPendiente, resp.Estado)
}

func TestFacturaUpdateEstado_Invalido(t *testing.T) {
	repo := newFakeFacturaRepo()
	seedFactura(repo, "f1", "FAC-0001", entity.EstadoPendiente)
	uc := appbilling.NewFacturaUseCase(repo)

	_, err := uc.UpdateEstado("f1", "facturada")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestFacturaUpdateEstado_NoExiste(t *testing.T) {
	uc := appbilling.NewFacturaUseCase(newFakeFacturaRepo())
	_, err := uc.UpdateEstado("no-existe", entity.EstadoPagada)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
