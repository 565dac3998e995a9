// Package fiscal implementa el cliente HTTP hacia la autoridad de timbrado.
// El contrato es POST {baseURL}/timbrar con bearer token; la respuesta trae
// {folio_fiscal}. El caller trata cualquier error como no fatal.
package fiscal

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/tu-usuario/facturacion-api/internal/application/billing"
)

var _ billing.FiscalStamper = (*Client)(nil)

// Client implementa billing.FiscalStamper sobre el API REST de la autoridad fiscal.
// Usa net/http de la stdlib con timeout acotado; no requiere librerías de terceros.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient construye el cliente. timeout acota toda la llamada de timbrado:
// la creación de la factura nunca espera más que esto por el servicio externo.
func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// timbradoPayload cuerpo del request de timbrado (nombres que espera la autoridad).
type timbradoPayload struct {
	Numero  string `json:"numero"`
	Cliente string `json:"cliente"` // RFC/CUIT del receptor
	Total   string `json:"total"`
}

// timbradoResponse cuerpo esperado de la respuesta.
type timbradoResponse struct {
	FolioFiscal string `json:"folio_fiscal"`
}

// Timbrar envía la factura a timbrar y retorna el folio fiscal emitido.
// Timeout, non-2xx o una respuesta sin folio se reportan como error.
func (c *Client) Timbrar(ctx context.Context, req billing.TimbradoRequest) (string, error) {
	payload, err := json.Marshal(timbradoPayload{
		Numero:  req.Numero,
		Cliente: req.RFCCuit,
		Total:   req.Total.StringFixed(2),
	})
	if err != nil {
		return "", fmt.Errorf("timbrar: armar payload: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/timbrar", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("timbrar: armar request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("timbrar: llamada al servicio fiscal: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("timbrar: leer respuesta: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("timbrar: servicio fiscal respondió HTTP %d: %s", resp.StatusCode, truncate(body, 200))
	}

	var out timbradoResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return "", fmt.Errorf("timbrar: respuesta no es JSON válido: %w", err)
	}
	if out.FolioFiscal == "" {
		return "", fmt.Errorf("timbrar: respuesta sin folio_fiscal")
	}
	return out.FolioFiscal, nil
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
