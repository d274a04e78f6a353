// Package pdf genera el documento de una orden de compra para el proveedor.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: ORDEN DE COMPRA + N°   │  Fecha / Entrega / Estado  │
//	│  PROVEEDOR: Nombre + contacto                                │
//	│  TABLA: SKU | Cant. | Recibido | Costo Unit. | Subtotal      │
//	│  TOTALES: Subtotal / Impuestos / Envío / TOTAL               │
//	│  FOOTER: QR con el número de orden + notas                   │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"

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
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/malikaashish/Inventory-Management-System/internal/application/purchasing"
	"github.com/malikaashish/Inventory-Management-System/internal/domain/entity"
)

var _ purchasing.DocumentRenderer = (*MarotoRenderer)(nil)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// MarotoRenderer implementa purchasing.DocumentRenderer con Maroto v2.
type MarotoRenderer struct {
	printer *message.Printer
}

// NewMarotoRenderer construye el generador. Los importes se formatean en español (1.234,56).
func NewMarotoRenderer() *MarotoRenderer {
	return &MarotoRenderer{printer: message.NewPrinter(language.Spanish)}
}

// PurchaseOrder genera el PDF y devuelve sus bytes.
func (g *MarotoRenderer) PurchaseOrder(po *entity.PurchaseOrder, supplier *entity.Supplier) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Orden de compra "+po.OrderNumber, true).
		Build()

	m := maroto.New(cfg)
	m.AddRows(headerRow(po))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(supplierRow(supplier))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	m.AddRows(g.itemRows(po.Items)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(g.totalsRow(po))
	m.AddRows(line.NewRow(3))
	m.AddRows(footerRow(po))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

func headerRow(po *entity.PurchaseOrder) core.Row {
	expected := "—"
	if po.ExpectedDate != nil {
		expected = po.ExpectedDate.Format("02/01/2006")
	}
	return row.New(18).Add(
		col.New(7).Add(
			text.New("ORDEN DE COMPRA", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(po.OrderNumber, props.Text{Style: fontstyle.Bold, Size: 11, Top: 9}),
		),
		col.New(5).Add(
			text.New("Fecha: "+po.OrderDate.Format("02/01/2006"), props.Text{
				Size: 8, Align: align.Right, Top: 1, Color: colorGray,
			}),
			text.New("Entrega esperada: "+expected, props.Text{
				Size: 8, Align: align.Right, Top: 6, Color: colorGray,
			}),
			text.New("Estado: "+po.Status, props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Top: 11,
			}),
		),
	)
}

func supplierRow(s *entity.Supplier) core.Row {
	return row.New(16).Add(
		col.New(12).Add(
			text.New("PROVEEDOR", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
			text.New(s.Name, props.Text{Style: fontstyle.Bold, Size: 10, Top: 6}),
			text.New(fmt.Sprintf("Contacto: %s   |   Email: %s   |   Tel: %s",
				nonEmpty(s.ContactPerson, "—"),
				nonEmpty(s.Email, "—"),
				nonEmpty(s.Phone, "—"),
			), props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("SKU", 3, align.Left),
		h("Cant.", 2, align.Center),
		h("Recibido", 2, align.Center),
		h("Costo Unit.", 2, align.Right),
		h("Subtotal", 3, align.Right),
	)
}

func (g *MarotoRenderer) itemRows(items []*entity.PurchaseOrderItem) []core.Row {
	rows := make([]core.Row, 0, len(items))
	for _, it := range items {
		rows = append(rows, row.New(7).Add(
			col.New(3).Add(text.New(it.ProductSKU, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(2).Add(text.New(fmt.Sprint(it.QuantityOrdered), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(2).Add(text.New(fmt.Sprint(it.QuantityReceived), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(2).Add(text.New(g.money(it.UnitCost), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(3).Add(text.New(g.money(it.LineTotal), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		))
	}
	return rows
}

func (g *MarotoRenderer) totalsRow(po *entity.PurchaseOrder) core.Row {
	label := func(s string, style fontstyle.Type) core.Component {
		return text.New(s, props.Text{Style: style, Size: 9, Align: align.Right, Right: 2})
	}
	value := func(s string, style fontstyle.Type) core.Component {
		return text.New(s, props.Text{Style: style, Size: 9, Align: align.Right, Right: 1})
	}
	return row.New(24).Add(
		col.New(6),
		col.New(3).Add(
			label("Subtotal:", fontstyle.Bold),
			label("Impuestos:", fontstyle.Bold),
			label("Envío:", fontstyle.Bold),
			label("TOTAL:", fontstyle.Bold),
		),
		col.New(3).Add(
			value(g.money(po.Subtotal), fontstyle.Normal),
			value(g.money(po.TaxAmount), fontstyle.Normal),
			value(g.money(po.ShippingCost), fontstyle.Normal),
			value(g.money(po.TotalAmount), fontstyle.Bold),
		),
	)
}

func footerRow(po *entity.PurchaseOrder) core.Row {
	return row.New(40).Add(
		col.New(4).Add(code.NewQr(po.OrderNumber, props.Rect{Percent: 90, Center: true})),
		col.New(8).Add(
			text.New("Notas", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 2, Left: 3}),
			text.New(nonEmpty(po.Notes, "—"), props.Text{Size: 8, Top: 8, Left: 3, Color: colorGray}),
		),
	)
}

// money "$ 1.234,56".
func (g *MarotoRenderer) money(d decimal.Decimal) string {
	return g.printer.Sprintf("$ %.2f", d.InexactFloat64())
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
