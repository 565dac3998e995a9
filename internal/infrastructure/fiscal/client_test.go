package fiscal_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/facturacion-api/internal/application/billing"
	"github.com/tu-usuario/facturacion-api/internal/infrastructure/fiscal"
)

func testReq() billing.TimbradoRequest {
	return billing.TimbradoRequest{
		Numero:  "FAC-0001",
		RFCCuit: "ACM010101AB1",
		Total:   decimal.RequireFromString("29.00"),
	}
}

func TestTimbrar_Exitoso(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/timbrar", r.URL.Path)
		assert.Equal(t, "Bearer clave-secreta", r.Header.Get("Authorization"))

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "FAC-0001", body["numero"])
		assert.Equal(t, "ACM010101AB1", body["cliente"])
		assert.Equal(t, "29.00", body["total"])

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{"folio_fiscal": "UUID-FISCAL-123"})
	}))
	defer srv.Close()

	client := fiscal.NewClient(srv.URL, "clave-secreta", 5*time.Second)
	folio, err := client.Timbrar(context.Background(), testReq())
	require.NoError(t, err)
	assert.Equal(t, "UUID-FISCAL-123", folio)
}

func TestTimbrar_ErrorHTTP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "certificado vencido", http.StatusBadGateway)
	}))
	defer srv.Close()

	client := fiscal.NewClient(srv.URL, "clave-secreta", 5*time.Second)
	_, err := client.Timbrar(context.Background(), testReq())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}

func TestTimbrar_RespuestaSinFolio(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	client := fiscal.NewClient(srv.URL, "clave-secreta", 5*time.Second)
	_, err := client.Timbrar(context.Background(), testReq())
	assert.Error(t, err)
}

func TestTimbrar_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	client := fiscal.NewClient(srv.URL, "clave-secreta", 50*time.Millisecond)
	_, err := client.Timbrar(context.Background(), testReq())
	assert.Error(t, err, "el timeout del cliente debe cortar la llamada")
}

func TestTimbrar_ContextoCancelado(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	client := fiscal.NewClient(srv.URL, "clave-secreta", 5*time.Second)
	_, err := client.Timbrar(ctx, testReq())
	assert.Error(t, err)
}
