// Package pdf genera el comprobante imprimible de una orden.
//
// Layout de la página A4:
//
//	┌──────────────────────────────────────────────┐
//	│  Tienda + N° de orden + fecha + estado       │
//	│  CLIENTE: nombre / teléfono / dirección      │
//	│  TABLA: Cant | Producto | P.Unit | Subtotal  │
//	│  TOTAL                                       │
//	│  Notas + QR de referencia                    │
//	└──────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
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
	"github.com/shopspring/decimal"

	"github.com/jhoicas/consola-admin/internal/application/ports"
	"github.com/jhoicas/consola-admin/internal/domain/entity"
)

var _ ports.ComprobanteGenerator = (*ComprobanteOrden)(nil)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ComprobanteOrden genera el PDF de una orden con Maroto v2.
type ComprobanteOrden struct {
	tienda string
}

// NewComprobanteOrden construye el generador; tienda aparece en la cabecera.
func NewComprobanteOrden(tienda string) *ComprobanteOrden {
	if strings.TrimSpace(tienda) == "" {
		tienda = "Consola Admin"
	}
	return &ComprobanteOrden{tienda: tienda}
}

// GenerarComprobante genera el PDF y devuelve sus bytes. Usa los totales del backend tal cual.
func (g *ComprobanteOrden) GenerarComprobante(_ context.Context, o *entity.Orden) ([]byte, error) {
	if o == nil {
		return nil, fmt.Errorf("pdf: orden vacía")
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(fmt.Sprintf("Orden #%d", o.ID), true).
		WithAuthor(g.tienda, true).
		Build()

	m := maroto.New(cfg)
	m.AddRows(g.cabecera(o))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(clienteRow(o))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(tablaCabecera())
	m.AddRows(tablaDetalles(o.Detalles)...)
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalRow(o.Total))
	m.AddRows(line.NewRow(3))
	m.AddRows(pieRow(o))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

func (g *ComprobanteOrden) cabecera(o *entity.Orden) core.Row {
	fecha := "—"
	if !o.Fecha.IsZero() {
		fecha = o.Fecha.Format("02/01/2006 15:04")
	}
	return row.New(18).Add(
		col.New(7).Add(
			text.New(g.tienda, props.Text{Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1}),
			text.New("Comprobante de orden", props.Text{Size: 9, Top: 9, Color: colorGray}),
		),
		col.New(5).Add(
			text.New(fmt.Sprintf("ORDEN #%d", o.ID), props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 1,
			}),
			text.New("Fecha: "+fecha, props.Text{Size: 8, Align: align.Right, Top: 8, Color: colorGray}),
			text.New("Estado: "+o.Estado.Nombre(), props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Top: 13, Color: colorPrimary,
			}),
		),
	)
}

func clienteRow(o *entity.Orden) core.Row {
	return row.New(16).Add(
		col.New(12).Add(
			text.New("CLIENTE", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
			text.New(o.Cliente, props.Text{Style: fontstyle.Bold, Size: 10, Top: 6}),
			text.New(fmt.Sprintf("Tel: %s   |   Dirección: %s",
				nonEmpty(o.Telefono, "—"), nonEmpty(o.Direccion, "—"),
			), props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
	)
}

func tablaCabecera() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Cant.", 1, align.Center),
		h("Producto", 6, align.Left),
		h("Precio Unit.", 2, align.Right),
		h("Subtotal", 3, align.Right),
	)
}

func tablaDetalles(detalles []entity.DetalleOrden) []core.Row {
	if len(detalles) == 0 {
		return []core.Row{row.New(7).Add(col.New(12).Add(
			text.New("Sin detalles", props.Text{Size: 8, Align: align.Center, Top: 1, Color: colorGray}),
		))}
	}
	out := make([]core.Row, 0, len(detalles))
	for _, d := range detalles {
		nombre := d.ProductoNombre
		if nombre == "" {
			nombre = fmt.Sprintf("Producto #%d", d.ProductoID)
		}
		out = append(out, row.New(7).Add(
			col.New(1).Add(text.New(fmt.Sprint(d.Cantidad), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(6).Add(text.New(nombre, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(2).Add(text.New(Moneda(d.PrecioUnitario), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(3).Add(text.New(Moneda(d.Subtotal), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		))
	}
	return out
}

func totalRow(total decimal.Decimal) core.Row {
	return row.New(10).Add(
		col.New(6),
		col.New(3).Add(text.New("TOTAL:", props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 2, Top: 2,
		})),
		col.New(3).Add(text.New(Moneda(total), props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 1, Top: 2,
		})),
	)
}

// pieRow notas a la izquierda, QR con la referencia de la orden a la derecha.
func pieRow(o *entity.Orden) core.Row {
	return row.New(35).Add(
		col.New(8).Add(
			text.New("Notas", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
			text.New(nonEmpty(o.Notas, "—"), props.Text{Size: 8, Top: 6, Color: colorGray}),
		),
		col.New(4).Add(code.NewQr(fmt.Sprintf("ORDEN-%d", o.ID), props.Rect{Percent: 80, Center: true})),
	)
}

func nonEmpty(s, fallback string) string {
	if strings.TrimSpace(s) != "" {
		return s
	}
	return fallback
}

// Moneda formatea con puntos de miles y sin decimales: 25000 -> "$25.000".
func Moneda(v decimal.Decimal) string {
	s := v.Round(0).StringFixed(0)
	signo := ""
	if strings.HasPrefix(s, "-") {
		signo, s = "-", s[1:]
	}
	n := len(s)
	if n <= 3 {
		return signo + "$" + s
	}
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(s) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	return signo + "$" + string(buf)
}
