// Package pdf implementa la generación del comprobante de movimiento de
// inventario (representación imprimible del kardex).
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Tipo de movimiento  │  N° Movimiento + Fecha       │
//	│  ─────────────────────────────────────────────────────────  │
//	│  BODEGA: nombre + dirección | Documento de referencia        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Cant | Variante | Lote | Precio | Total              │
//	│  ─────────────────────────────────────────────────────────  │
//	│  ESTADO: autorizado por/el · cancelado por/el + motivo       │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
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

	appkardex "github.com/jcastaneda/kardex-api/internal/application/kardex"
	"github.com/jcastaneda/kardex-api/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorRed     = &props.Color{Red: 170, Green: 30, Blue: 30}
)

// ── Generator ─────────────────────────────────────────────────────────────────

var _ appkardex.MovementPDFGenerator = (*MarotoVoucherGenerator)(nil)

// MarotoVoucherGenerator implementa kardex.MovementPDFGenerator usando Maroto v2.
type MarotoVoucherGenerator struct{}

// NewMarotoVoucherGenerator construye el generador.
func NewMarotoVoucherGenerator() *MarotoVoucherGenerator { return &MarotoVoucherGenerator{} }

// GenerateMovementPDF genera el comprobante y devuelve sus bytes.
func (g *MarotoVoucherGenerator) GenerateMovementPDF(
	_ context.Context,
	movement *entity.Movement,
	warehouse *entity.Warehouse,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Comprobante de Movimiento de Inventario", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(movement))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(bodegaRow(movement, warehouse))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	for _, r := range tableDetailRows(movement.Details) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	for _, r := range estadoRows(movement) {
		m.AddRows(r)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar comprobante: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: tipo de movimiento (izq) y N° + fecha (der).
func headerRow(movement *entity.Movement) core.Row {
	fecha := movement.CreatedAt.Format("02/01/2006 15:04")

	return row.New(18).Add(
		col.New(7).Add(
			text.New("COMPROBANTE DE MOVIMIENTO", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(movement.Type, props.Text{
				Style: fontstyle.Bold, Size: 13, Top: 7,
			}),
		),
		col.New(5).Add(
			text.New("N° "+movement.ID, props.Text{
				Size: 8, Align: align.Right, Top: 2, Color: colorGray,
			}),
			text.New("Fecha: "+fecha, props.Text{
				Size: 8, Align: align.Right, Top: 8, Color: colorGray,
			}),
		),
	)
}

// bodegaRow: bodega destino y documento de referencia.
func bodegaRow(movement *entity.Movement, warehouse *entity.Warehouse) core.Row {
	nombre := movement.WarehouseID
	direccion := "—"
	if warehouse != nil {
		nombre = warehouse.Name
		direccion = nonEmpty(warehouse.Address, "—")
	}
	return row.New(12).Add(
		col.New(12).Add(
			text.New("BODEGA", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("%s   |   Dirección: %s   |   Ref: %s",
				nombre, direccion, nonEmpty(movement.ReferenceDocument, "—"),
			), props.Text{Size: 8, Top: 7, Color: colorGray}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla de detalles.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Cant.", 2, align.Center),
		h("Variante", 4, align.Left),
		h("Lote", 2, align.Center),
		h("Precio", 2, align.Right),
		h("Total", 2, align.Right),
	)
}

// tableDetailRows: una fila por línea de detalle; salidas con cantidad en rojo.
func tableDetailRows(details []entity.MovementDetail) []core.Row {
	result := make([]core.Row, 0, len(details))
	for _, d := range details {
		qtyColor := colorPrimary
		qty := "+" + d.Quantity.String()
		if d.Direction == entity.DirectionDecrease {
			qtyColor = colorRed
			qty = "-" + d.Quantity.String()
		}
		result = append(result, row.New(7).Add(
			col.New(2).Add(text.New(qty, props.Text{
				Size: 8, Align: align.Center, Top: 1, Color: qtyColor,
			})),
			col.New(4).Add(text.New(d.ProductVariantID, props.Text{
				Size: 8, Align: align.Left, Top: 1, Left: 1,
			})),
			col.New(2).Add(text.New(nonEmpty(d.Lote, "—"), props.Text{
				Size: 8, Align: align.Center, Top: 1,
			})),
			col.New(2).Add(text.New("$"+d.Price.StringFixed(2), props.Text{
				Size: 8, Align: align.Right, Top: 1, Right: 1,
			})),
			col.New(2).Add(text.New("$"+d.Total.StringFixed(2), props.Text{
				Size: 8, Align: align.Right, Top: 1, Right: 1,
			})),
		))
	}
	return result
}

// estadoRows: estado de autorización y, si aplica, de cancelación.
func estadoRows(movement *entity.Movement) []core.Row {
	var rows []core.Row

	estado := "PENDIENTE DE AUTORIZACIÓN"
	estadoColor := colorGray
	if movement.Authorized {
		fecha := ""
		if movement.AuthorizedAt != nil {
			fecha = movement.AuthorizedAt.Format("02/01/2006 15:04")
		}
		estado = fmt.Sprintf("AUTORIZADO por %s el %s", movement.AuthorizedBy, fecha)
		estadoColor = colorPrimary
	}
	rows = append(rows, row.New(8).Add(
		col.New(12).Add(text.New(estado, props.Text{
			Style: fontstyle.Bold, Size: 9, Top: 2, Color: estadoColor,
		})),
	))

	if movement.Cancelled {
		fecha := ""
		if movement.CancelledAt != nil {
			fecha = movement.CancelledAt.Format("02/01/2006 15:04")
		}
		rows = append(rows, row.New(8).Add(
			col.New(12).Add(text.New(
				fmt.Sprintf("CANCELADO por %s el %s — Motivo: %s",
					movement.CancelledBy, fecha, movement.CancellationReason),
				props.Text{Style: fontstyle.Bold, Size: 9, Top: 2, Color: colorRed},
			)),
		))
	}
	if movement.Reversal {
		rows = append(rows, row.New(6).Add(
			col.New(12).Add(text.New(
				"Movimiento reverso de "+movement.OriginalMovementID,
				props.Text{Size: 8, Top: 1, Color: colorGray},
			)),
		))
	}
	return rows
}

func nonEmpty(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
