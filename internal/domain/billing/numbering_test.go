package billing_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/facturacion-api/internal/domain/billing"
)

// TestNextNumero_PrimeraFactura: sin facturas previas el consecutivo arranca en FAC-0001.
func TestNextNumero_PrimeraFactura(t *testing.T) {
	numero, err := billing.NextNumero("FAC", "")
	require.NoError(t, err)
	assert.Equal(t, "FAC-0001", numero)
}

// TestNextNumero_Incrementa: el último número FAC-0042 produce FAC-0043.
func TestNextNumero_Incrementa(t *testing.T) {
	numero, err := billing.NextNumero("FAC", "FAC-0042")
	require.NoError(t, err)
	assert.Equal(t, "FAC-0043", numero)
}

// TestNextNumero_CreceMasAllaDelPadding: después de FAC-9999 el sufijo crece a
// 5 dígitos; el padding de 4 es un mínimo, no un tope.
func TestNextNumero_CreceMasAllaDelPadding(t *testing.T) {
	numero, err := billing.NextNumero("FAC", "FAC-9999")
	require.NoError(t, err)
	assert.Equal(t, "FAC-10000", numero)

	numero, err = billing.NextNumero("FAC", "FAC-10000")
	require.NoError(t, err)
	assert.Equal(t, "FAC-10001", numero)
}

// TestNextNumero_SufijoMalformado: un número almacenado corrupto debe abortar
// la operación, nunca emitir un consecutivo duplicado.
func TestNextNumero_SufijoMalformado(t *testing.T) {
	cases := []string{"FAC-00AB", "FAC-", "FACTURA-0001", "0001", "FAC--12"}
	for _, ultimo := range cases {
		_, err := billing.NextNumero("FAC", ultimo)
		assert.Error(t, err, "último número %q debe fallar", ultimo)
	}
}

// TestNextNumero_PrefijoConfigurable: el prefijo viene de configuración.
func TestNextNumero_PrefijoConfigurable(t *testing.T) {
	numero, err := billing.NextNumero("NC", "NC-0007")
	require.NoError(t, err)
	assert.Equal(t, "NC-0008", numero)
}

func TestParseNumero(t *testing.T) {
	n, err := billing.ParseNumero("FAC", "FAC-0042")
	require.NoError(t, err)
	assert.Equal(t, 42, n)

	_, err = billing.ParseNumero("FAC", "FAC-12x")
	assert.Error(t, err)
}
