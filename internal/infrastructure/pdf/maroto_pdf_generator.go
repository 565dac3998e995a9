// Package pdf implementa la representación en PDF de una factura.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: FACTURA  │  Número + Fecha + Folio Fiscal           │
//	│  ─────────────────────────────────────────────────────────  │
//	│  CLIENTE: Nombre / RFC-CUIT / Email / Dirección              │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: # | Descripción | Cant. | Precio | Total             │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Subtotal / Impuestos / TOTAL                       │
//	│  NOTAS (opcional) + Footer                                   │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strconv"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	appbilling "github.com/tu-usuario/facturacion-api/internal/application/billing"
	"github.com/tu-usuario/facturacion-api/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

var _ appbilling.InvoicePDFGenerator = (*MarotoPDFGenerator)(nil)

// MarotoPDFGenerator implementa billing.InvoicePDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct{}

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator() *MarotoPDFGenerator { return &MarotoPDFGenerator{} }

// GenerateFacturaPDF genera el PDF y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateFacturaPDF(
	_ context.Context,
	factura *entity.Factura,
	cliente *entity.Cliente,
	items []*entity.FacturaItem,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Factura "+factura.Numero, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(factura))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(clienteRow(cliente))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	// Tabla de líneas
	m.AddRows(tableHeaderRow())
	for _, r := range tableItemRows(items) {
		m.AddRows(r)
	}

	// Totales
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(factura))

	if factura.Notas != "" {
		m.AddRows(notasRows(factura.Notas)...)
	}

	m.AddRows(line.NewRow(3))
	m.AddRows(footerRow())

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: título FACTURA (izq) y número + fecha + folio (der).
func headerRow(factura *entity.Factura) core.Row {
	fecha := factura.Fecha.Format("02/01/2006")
	derecha := []core.Component{
		text.New("Número: "+factura.Numero, props.Text{
			Style: fontstyle.Bold, Size: 11, Align: align.Right, Top: 1,
		}),
		text.New("Fecha: "+fecha, props.Text{
			Size: 9, Align: align.Right, Top: 8, Color: colorGray,
		}),
	}
	if factura.FolioFiscal != "" {
		derecha = append(derecha, text.New("Folio Fiscal: "+factura.FolioFiscal, props.Text{
			Size: 8, Align: align.Right, Top: 14, Color: colorGray,
		}))
	}
	return row.New(20).Add(
		col.New(6).Add(
			text.New("FACTURA", props.Text{
				Style: fontstyle.Bold, Size: 18, Color: colorPrimary, Top: 2,
			}),
		),
		col.New(6).Add(derecha...),
	)
}

// clienteRow: datos del receptor.
func clienteRow(cliente *entity.Cliente) core.Row {
	return row.New(16).Add(
		col.New(12).Add(
			text.New("CLIENTE", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(cliente.Nombre, props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 6,
			}),
			text.New(fmt.Sprintf("RFC/CUIT: %s   |   Email: %s   |   Dirección: %s",
				cliente.RFCCuit,
				nonEmpty(cliente.Email, "—"),
				nonEmpty(cliente.Direccion, "—"),
			), props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla de líneas.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("#", 1, align.Center),
		h("Descripción", 5, align.Left),
		h("Cant.", 2, align.Right),
		h("Precio", 2, align.Right),
		h("Total", 2, align.Right),
	)
}

// tableItemRows: una fila por línea de la factura.
func tableItemRows(items []*entity.FacturaItem) []core.Row {
	result := make([]core.Row, 0, len(items))
	for i, item := range items {
		result = append(result, row.New(7).Add(
			col.New(1).Add(text.New(
				strconv.Itoa(i+1),
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(5).Add(text.New(
				item.Descripcion,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(2).Add(text.New(
				item.Cantidad.String(),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(2).Add(text.New(
				"$"+item.PrecioUnitario.StringFixed(2),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(2).Add(text.New(
				"$"+item.Subtotal.StringFixed(2),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
		))
	}
	return result
}

// totalsRow: bloque de totales alineado a la derecha.
func totalsRow(factura *entity.Factura) core.Row {
	label := func(s string, top float64) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2, Top: top,
		})
	}
	value := func(s string, top float64) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1, Top: top})
	}
	grandLabel := func(s string, top float64) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 11, Align: align.Right,
			Color: colorPrimary, Right: 2, Top: top,
		})
	}
	grandValue := func(s string, top float64) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 11, Align: align.Right,
			Color: colorPrimary, Right: 1, Top: top,
		})
	}

	return row.New(26).Add(
		col.New(4),
		col.New(4).Add(
			label("Subtotal:", 2),
			label("Impuestos:", 8),
			grandLabel("TOTAL:", 16),
		),
		col.New(4).Add(
			value("$"+factura.Subtotal.StringFixed(2), 2),
			value("$"+factura.Impuestos.StringFixed(2), 8),
			grandValue("$"+factura.Total.StringFixed(2), 16),
		),
	)
}

// notasRows: sección de notas libres al pie de la factura.
func notasRows(notas string) []core.Row {
	return []core.Row{
		row.New(6).Add(col.New(12).Add(
			text.New("Notas:", props.Text{Style: fontstyle.Bold, Size: 8, Top: 2}),
		)),
		row.New(10).Add(col.New(12).Add(
			text.New(notas, props.Text{Size: 8, Color: colorGray, Top: 1}),
		)),
	}
}

// footerRow: leyenda de cierre.
func footerRow() core.Row {
	return row.New(8).Add(col.New(12).Add(
		text.New("Gracias por su preferencia", props.Text{
			Size: 8, Align: align.Center, Color: colorGray, Top: 2,
		}),
	))
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
