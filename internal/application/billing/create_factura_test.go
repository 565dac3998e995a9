package billing_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appbilling "github.com/tu-usuario/facturacion-api/internal/application/billing"
	"github.com/tu-usuario/facturacion-api/internal/application/dto"
	"github.com/tu-usuario/facturacion-api/internal/domain"
	domainbilling "github.com/tu-usuario/facturacion-api/internal/domain/billing"
	"github.com/tu-usuario/facturacion-api/internal/domain/entity"
	"github.com/tu-usuario/facturacion-api/internal/domain/repository"
	"github.com/tu-usuario/facturacion-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeClienteRepo struct {
	clientes  map[string]*entity.Cliente
	createErr error
	updateErr error
}

func newFakeClienteRepo(clientes ...*entity.Cliente) *fakeClienteRepo {
	r := &fakeClienteRepo{clientes: map[string]*entity.Cliente{}}
	for _, c := range clientes {
		r.clientes[c.ID] = c
	}
	return r
}

func (r *fakeClienteRepo) Create(c *entity.Cliente) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.clientes[c.ID] = c
	return nil
}
func (r *fakeClienteRepo) GetByID(id string) (*entity.Cliente, error) {
	return r.clientes[id], nil
}
func (r *fakeClienteRepo) ListActivos() ([]*entity.Cliente, error) {
	var out []*entity.Cliente
	for _, c := range r.clientes {
		if c.Activo {
			out = append(out, c)
		}
	}
	return out, nil
}
func (r *fakeClienteRepo) Update(c *entity.Cliente) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	r.clientes[c.ID] = c
	return nil
}
func (r *fakeClienteRepo) Desactivar(id string) error {
	if c, ok := r.clientes[id]; ok {
		c.Activo = false
	}
	return nil
}

type fakeFacturaRepo struct {
	facturas    map[string]*entity.Factura
	items       []*entity.FacturaItem
	ultimo      string // último número existente para UltimoNumero
	folios      map[string]string
	folioCalls  int
	createErr   error
	setFolioErr error
}

func newFakeFacturaRepo() *fakeFacturaRepo {
	return &fakeFacturaRepo{
		facturas: map[string]*entity.Factura{},
		folios:   map[string]string{},
	}
}

func (r *fakeFacturaRepo) Create(f *entity.Factura) error {
	if r.createErr != nil {
		return r.createErr
	}
	cp := *f
	r.facturas[f.ID] = &cp
	return nil
}
func (r *fakeFacturaRepo) CreateItem(item *entity.FacturaItem) error {
	r.items = append(r.items, item)
	return nil
}
func (r *fakeFacturaRepo) GetByID(id string) (*entity.Factura, error) {
	return r.facturas[id], nil
}
func (r *fakeFacturaRepo) GetItemsByFacturaID(facturaID string) ([]*entity.FacturaItem, error) {
	var out []*entity.FacturaItem
	for _, it := range r.items {
		if it.FacturaID == facturaID {
			out = append(out, it)
		}
	}
	return out, nil
}
func (r *fakeFacturaRepo) List(filter repository.FacturaFilter) ([]*entity.Factura, error) {
	var out []*entity.Factura
	for _, f := range r.facturas {
		if filter.Estado != "" && f.Estado != filter.Estado {
			continue
		}
		if filter.ClienteID != "" && f.ClienteID != filter.ClienteID {
			continue
		}
		out = append(out, f)
	}
	return out, nil
}
func (r *fakeFacturaRepo) UltimoNumero(prefix string) (string, error) { return r.ultimo, nil }
func (r *fakeFacturaRepo) UpdateEstado(id, estado string) error {
	if f, ok := r.facturas[id]; ok {
		f.Estado = estado
	}
	return nil
}
func (r *fakeFacturaRepo) SetFolioFiscal(id, folio string) error {
	r.folioCalls++
	if r.setFolioErr != nil {
		return r.setFolioErr
	}
	if _, ya := r.folios[id]; ya {
		return nil // se fija a lo sumo una vez
	}
	r.folios[id] = folio
	return nil
}

// fakeTxRunner ejecuta el callback directamente sobre los mismos fakes.
type fakeTxRunner struct {
	clienteRepo repository.ClienteRepository
	facturaRepo repository.FacturaRepository
	runErr      error
}

func (t *fakeTxRunner) RunBilling(_ context.Context, fn func(
	clienteRepo repository.ClienteRepository,
	facturaRepo repository.FacturaRepository,
) error) error {
	if t.runErr != nil {
		return t.runErr
	}
	return fn(t.clienteRepo, t.facturaRepo)
}

type fakeStamper struct {
	folio string
	err   error
	calls int
}

func (s *fakeStamper) Timbrar(_ context.Context, _ appbilling.TimbradoRequest) (string, error) {
	s.calls++
	if s.err != nil {
		return "", s.err
	}
	return s.folio, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

const clienteID = "00000000-0000-0000-0000-0000000000aa"

func testCliente() *entity.Cliente {
	return &entity.Cliente{
		ID:      clienteID,
		Nombre:  "Acme S.A. de C.V.",
		Email:   "facturas@acme.test",
		RFCCuit: "ACM010101AB1",
		Activo:  true,
	}
}

func testRequest() dto.CreateFacturaRequest {
	return dto.CreateFacturaRequest{
		ClienteID: clienteID,
		Items: []dto.FacturaItemRequest{
			{Descripcion: "Desarrollo web", Cantidad: decimal.NewFromInt(2), PrecioUnitario: decimal.RequireFromString("10.00")},
			{Descripcion: "Hosting anual", Cantidad: decimal.NewFromInt(1), PrecioUnitario: decimal.RequireFromString("5.00")},
		},
		Notas: "Pago a 30 días",
	}
}

func buildUseCase(clienteRepo *fakeClienteRepo, facturaRepo *fakeFacturaRepo, stamper appbilling.FiscalStamper) *appbilling.CreateFacturaUseCase {
	tx := &fakeTxRunner{clienteRepo: clienteRepo, facturaRepo: facturaRepo}
	calc := domainbilling.NewTotalsCalculator(decimal.RequireFromString("0.16"))
	log := logger.New(logger.Config{Env: "development", Level: "error"})
	return appbilling.NewCreateFacturaUseCase(tx, clienteRepo, facturaRepo, calc, stamper, "FAC", log)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

// Creación exitosa sin servicio fiscal configurado: primera factura FAC-0001,
// totales derivados de las líneas, estado pendiente y sin folio.
func TestCreateFactura_SinStamper(t *testing.T) {
	clienteRepo := newFakeClienteRepo(testCliente())
	facturaRepo := newFakeFacturaRepo()
	uc := buildUseCase(clienteRepo, facturaRepo, nil)

	resp, err := uc.Create(context.Background(), testRequest())
	require.NoError(t, err)

	assert.Equal(t, "FAC-0001", resp.Numero)
	assert.Equal(t, entity.EstadoPendiente, resp.Estado)
	assert.Equal(t, "25.00", resp.Subtotal)
	assert.Equal(t, "4.00", resp.Impuestos)
	assert.Equal(t, "29.00", resp.Total)
	assert.Empty(t, resp.FolioFiscal, "sin stamper la factura queda sin folio")
	assert.Len(t, resp.Items, 2)
	require.NotNil(t, resp.Cliente)
	assert.Equal(t, "Acme S.A. de C.V.", resp.Cliente.Nombre)

	assert.Len(t, facturaRepo.facturas, 1, "la cabecera debe quedar persistida")
	assert.Len(t, facturaRepo.items, 2, "las líneas deben quedar persistidas")
}

// El consecutivo continúa a partir del último número existente.
func TestCreateFactura_ConsecutivoContinua(t *testing.T) {
	clienteRepo := newFakeClienteRepo(testCliente())
	facturaRepo := newFakeFacturaRepo()
	facturaRepo.ultimo = "FAC-0007"
	uc := buildUseCase(clienteRepo, facturaRepo, nil)

	resp, err := uc.Create(context.Background(), testRequest())
	require.NoError(t, err)
	assert.Equal(t, "FAC-0008", resp.Numero)
}

// Cliente inexistente: ErrNotFound y nada persistido.
func TestCreateFactura_ClienteInexistente(t *testing.T) {
	clienteRepo := newFakeClienteRepo() // vacío
	facturaRepo := newFakeFacturaRepo()
	uc := buildUseCase(clienteRepo, facturaRepo, nil)

	_, err := uc.Create(context.Background(), testRequest())
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Empty(t, facturaRepo.facturas, "no debe persistirse nada")
	assert.Empty(t, facturaRepo.items)
}

// Request sin items: error de validación campo a campo, nada persistido.
func TestCreateFactura_SinItems(t *testing.T) {
	clienteRepo := newFakeClienteRepo(testCliente())
	facturaRepo := newFakeFacturaRepo()
	uc := buildUseCase(clienteRepo, facturaRepo, nil)

	in := testRequest()
	in.Items = nil
	_, err := uc.Create(context.Background(), in)

	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Empty(t, facturaRepo.facturas)
}

// Fallo del timbrado: la factura queda persistida y se retorna sin folio, sin error.
func TestCreateFactura_TimbradoFalla(t *testing.T) {
	clienteRepo := newFakeClienteRepo(testCliente())
	facturaRepo := newFakeFacturaRepo()
	stamper := &fakeStamper{err: errors.New("autoridad fiscal no disponible")}
	uc := buildUseCase(clienteRepo, facturaRepo, stamper)

	resp, err := uc.Create(context.Background(), testRequest())
	require.NoError(t, err, "el fallo del timbrado no debe revertir la creación")

	assert.Equal(t, 1, stamper.calls)
	assert.Empty(t, resp.FolioFiscal)
	assert.Len(t, facturaRepo.facturas, 1, "la factura queda persistida aunque el timbrado falle")
	assert.Equal(t, 0, facturaRepo.folioCalls, "no debe intentarse guardar folio")
}

// Timbrado exitoso: el folio se persiste una sola vez y viaja en la respuesta.
func TestCreateFactura_TimbradoExitoso(t *testing.T) {
	clienteRepo := newFakeClienteRepo(testCliente())
	facturaRepo := newFakeFacturaRepo()
	stamper := &fakeStamper{folio: "UUID-FISCAL-123"}
	uc := buildUseCase(clienteRepo, facturaRepo, stamper)

	resp, err := uc.Create(context.Background(), testRequest())
	require.NoError(t, err)

	assert.Equal(t, "UUID-FISCAL-123", resp.FolioFiscal)
	assert.Equal(t, 1, facturaRepo.folioCalls)
	require.Len(t, facturaRepo.folios, 1)
	for _, folio := range facturaRepo.folios {
		assert.Equal(t, "UUID-FISCAL-123", folio)
	}
}

// Error al guardar el folio: la creación igualmente retorna la factura, sin folio.
func TestCreateFactura_ErrorAlGuardarFolio(t *testing.T) {
	clienteRepo := newFakeClienteRepo(testCliente())
	facturaRepo := newFakeFacturaRepo()
	facturaRepo.setFolioErr = errors.New("conexión perdida")
	stamper := &fakeStamper{folio: "UUID-FISCAL-123"}
	uc := buildUseCase(clienteRepo, facturaRepo, stamper)

	resp, err := uc.Create(context.Background(), testRequest())
	require.NoError(t, err)
	assert.Empty(t, resp.FolioFiscal, "si no se pudo guardar, la respuesta no debe traer folio")
}

// Error de la transacción: se propaga y el timbrado nunca se invoca.
func TestCreateFactura_ErrorDeTransaccion(t *testing.T) {
	clienteRepo := newFakeClienteRepo(testCliente())
	facturaRepo := newFakeFacturaRepo()
	stamper := &fakeStamper{folio: "UUID-FISCAL-123"}

	tx := &fakeTxRunner{clienteRepo: clienteRepo, facturaRepo: facturaRepo, runErr: errors.New("deadlock")}
	calc := domainbilling.NewTotalsCalculator(decimal.RequireFromString("0.16"))
	log := logger.New(logger.Config{Env: "development", Level: "error"})
	uc := appbilling.NewCreateFacturaUseCase(tx, clienteRepo, facturaRepo, calc, stamper, "FAC", log)

	_, err := uc.Create(context.Background(), testRequest())
	assert.Error(t, err)
	assert.Equal(t, 0, stamper.calls, "sin commit no hay timbrado")
}
