package billing

import (
	"fmt"
	"strconv"
	"strings"
)

// numeroPadding ancho mínimo del sufijo numérico (FAC-0001). Más allá de 9999
// el número crece a 5+ dígitos sin truncarse.
const numeroPadding = 4

// NextNumero calcula el siguiente consecutivo de factura para el prefijo dado.
// ultimo es el número más alto existente ("" si no hay facturas -> PREFIJO-0001).
// Un sufijo no numérico retorna error: preferimos abortar la creación antes que
// emitir un consecutivo duplicado.
func NextNumero(prefix, ultimo string) (string, error) {
	if ultimo == "" {
		return FormatNumero(prefix, 1), nil
	}
	n, err := ParseNumero(prefix, ultimo)
	if err != nil {
		return "", err
	}
	return FormatNumero(prefix, n+1), nil
}

// FormatNumero arma el número PREFIJO-NNNN con ceros a la izquierda.
func FormatNumero(prefix string, n int) string {
	return fmt.Sprintf("%s-%0*d", prefix, numeroPadding, n)
}

// ParseNumero extrae el sufijo numérico de un número de factura ya almacenado.
func ParseNumero(prefix, numero string) (int, error) {
	suffix, ok := strings.CutPrefix(numero, prefix+"-")
	if !ok {
		return 0, fmt.Errorf("número de factura %q no tiene el prefijo %q", numero, prefix)
	}
	n, err := strconv.Atoi(suffix)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("número de factura %q tiene sufijo no numérico", numero)
	}
	return n, nil
}
