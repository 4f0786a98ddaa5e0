// Package pdf genera la remisión de despacho (nota de entrega) en PDF.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Remisión de despacho  │  N° Despacho + Fecha       │
//	│  ─────────────────────────────────────────────────────────  │
//	│  ORDEN: id, cliente, estado                                  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Cant | Producto | SKU | Estado                       │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESUMEN: comprometido / despachado / pendiente              │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"

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

	"github.com/tu-usuario/despacho-pro/internal/domain/entity"
)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// DeliveryNoteGenerator genera la remisión de un despacho usando Maroto v2.
type DeliveryNoteGenerator struct{}

// NewDeliveryNoteGenerator construye el generador.
func NewDeliveryNoteGenerator() *DeliveryNoteGenerator { return &DeliveryNoteGenerator{} }

// GenerateDeliveryNote genera el PDF de la remisión y devuelve sus bytes.
func (g *DeliveryNoteGenerator) GenerateDeliveryNote(
	event *entity.DispatchEvent,
	order *entity.SalesOrder,
	product *entity.Product,
	totalDispatched int64,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Remisión de despacho", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(event))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(orderRow(order))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	m.AddRows(detailRow(event, product))

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(summaryRow(order, totalDispatched))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar remisión: %w", err)
	}
	return doc.GetBytes(), nil
}

// headerRow: título (izq) y número de despacho + fecha (der).
func headerRow(event *entity.DispatchEvent) core.Row {
	fecha := event.DispatchDate.Format("02/01/2006")
	return row.New(18).Add(
		col.New(7).Add(
			text.New("REMISIÓN DE DESPACHO", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(nonEmpty(event.MerchantName, "—"), props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("N° "+event.ID, props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Right, Top: 4,
			}),
			text.New("Fecha: "+fecha, props.Text{
				Size: 8, Align: align.Right, Top: 11, Color: colorGray,
			}),
		),
	)
}

// orderRow: datos de la orden de venta asociada.
func orderRow(order *entity.SalesOrder) core.Row {
	return row.New(14).Add(
		col.New(12).Add(
			text.New("ORDEN DE VENTA", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(order.ID, props.Text{Style: fontstyle.Bold, Size: 10, Top: 6}),
			text.New(fmt.Sprintf("Cliente: %s   |   Estado: %s",
				nonEmpty(order.PartyName, "—"), string(order.Status),
			), props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla de detalle.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Cant.", 2, align.Center),
		h("Producto", 6, align.Left),
		h("SKU", 2, align.Center),
		h("Estado", 2, align.Center),
	)
}

// detailRow: la línea del despacho.
func detailRow(event *entity.DispatchEvent, product *entity.Product) core.Row {
	return row.New(7).Add(
		col.New(2).Add(text.New(
			fmt.Sprintf("%d", event.DispatchQty),
			props.Text{Size: 8, Align: align.Center, Top: 1},
		)),
		col.New(6).Add(text.New(
			product.Name,
			props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
		)),
		col.New(2).Add(text.New(
			nonEmpty(product.SKU, "—"),
			props.Text{Size: 8, Align: align.Center, Top: 1},
		)),
		col.New(2).Add(text.New(
			event.Status,
			props.Text{Size: 8, Align: align.Center, Top: 1},
		)),
	)
}

// summaryRow: comprometido / despachado / pendiente de la orden.
func summaryRow(order *entity.SalesOrder, totalDispatched int64) core.Row {
	label := func(s string, top float64) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2, Top: top,
		})
	}
	value := func(s string, top float64) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1, Top: top})
	}
	return row.New(20).Add(
		col.New(4),
		col.New(4).Add(
			label("Comprometido:", 2),
			label("Despachado:", 8),
			label("Pendiente:", 14),
		),
		col.New(4).Add(
			value(fmt.Sprintf("%d", order.CommittedQty), 2),
			value(fmt.Sprintf("%d", totalDispatched), 8),
			value(fmt.Sprintf("%d", order.CommittedQty-totalDispatched), 14),
		),
	)
}

func nonEmpty(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
