// Package pdf genera el reporte imprimible de una foto de inventario.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Nombre de la foto + alcance │ Fecha + QR del ID     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESUMEN: ítems / cantidad total / valor total               │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Ingrediente | SKU | Unidad | Cantidad | Costo | Valor│
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: creado por + estado                                 │
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

	"github.com/jhoicas/inventario-cocina/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 38, Green: 84, Blue: 60}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// SnapshotPDFGenerator implementa snapshot.PDFGenerator usando Maroto v2.
type SnapshotPDFGenerator struct {
	title string
}

// NewSnapshotPDFGenerator construye el generador. title encabeza cada reporte (nombre del restaurante).
func NewSnapshotPDFGenerator(title string) *SnapshotPDFGenerator {
	return &SnapshotPDFGenerator{title: title}
}

// SnapshotPDF genera el PDF de la foto y devuelve sus bytes.
func (g *SnapshotPDFGenerator) SnapshotPDF(s *entity.Snapshot) ([]byte, error) {
	if s == nil {
		return nil, fmt.Errorf("pdf: foto nula")
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(s.Name, true).
		WithAuthor(g.title, true).
		Build()

	m := maroto.New(cfg)
	p := message.NewPrinter(language.Spanish)

	m.AddRows(headerRow(g.title, s))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(summaryRow(p, s.Summary))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	m.AddRows(itemRows(p, s.Items)...)

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRow(s))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(title string, s *entity.Snapshot) core.Row {
	return row.New(24).Add(
		col.New(8).Add(
			text.New(title, props.Text{Size: 8, Color: colorGray, Top: 1}),
			text.New(s.Name, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 6,
			}),
			text.New("Alcance: "+scopeLabel(s.Scope), props.Text{Size: 9, Top: 14, Color: colorGray}),
			text.New(s.Description, props.Text{Size: 8, Top: 19, Color: colorGray}),
		),
		col.New(2).Add(
			text.New(s.CreatedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 2, Color: colorGray,
			}),
		),
		col.New(2).Add(code.NewQr(s.ID, props.Rect{Percent: 90, Center: true})),
	)
}

func summaryRow(p *message.Printer, sum entity.SnapshotSummary) core.Row {
	cell := func(label, value string) core.Col {
		return col.New(4).Add(
			text.New(label, props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1, Align: align.Center}),
			text.New(value, props.Text{Style: fontstyle.Bold, Size: 11, Top: 6, Align: align.Center}),
		)
	}
	return row.New(14).Add(
		cell("INGREDIENTES", p.Sprintf("%d", sum.TotalItems)),
		cell("CANTIDAD TOTAL", formatNumber(p, sum.TotalQuantity)),
		cell("VALOR TOTAL", "$"+formatNumber(p, sum.TotalValue)),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).WithStyle(&props.Cell{BackgroundColor: colorPrimary}).Add(
		h("Ingrediente", 4, align.Left),
		h("SKU", 2, align.Left),
		h("Unidad", 1, align.Center),
		h("Cantidad", 2, align.Right),
		h("Costo unit.", 1, align.Right),
		h("Valor", 2, align.Right),
	)
}

func itemRows(p *message.Printer, items []entity.SnapshotItem) []core.Row {
	if len(items) == 0 {
		return []core.Row{row.New(8).Add(col.New(12).Add(
			text.New("Sin existencias al momento de la captura.", props.Text{
				Size: 8, Align: align.Center, Top: 2, Color: colorGray,
			}),
		))}
	}
	rows := make([]core.Row, 0, len(items))
	for _, it := range items {
		rows = append(rows, row.New(6).Add(
			col.New(4).Add(text.New(it.Name, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(2).Add(text.New(it.SKU, props.Text{Size: 8, Top: 1, Left: 1, Color: colorGray})),
			col.New(1).Add(text.New(string(it.Unit), props.Text{Size: 8, Top: 1, Align: align.Center})),
			col.New(2).Add(text.New(formatNumber(p, it.Quantity), props.Text{Size: 8, Top: 1, Align: align.Right, Right: 1})),
			col.New(1).Add(text.New(formatNumber(p, it.UnitCost), props.Text{Size: 8, Top: 1, Align: align.Right, Right: 1})),
			col.New(2).Add(text.New("$"+formatNumber(p, it.TotalValue), props.Text{Size: 8, Top: 1, Align: align.Right, Right: 1})),
		))
	}
	return rows
}

func footerRow(s *entity.Snapshot) core.Row {
	return row.New(8).Add(col.New(12).Add(
		text.New(fmt.Sprintf("Foto %s   |   Creada por: %s   |   Estado: %s",
			s.ID, nonEmpty(s.CreatedBy, "-"), s.Status,
		), props.Text{Size: 6.5, Color: colorGray, Top: 2}),
	))
}

// ── helpers ───────────────────────────────────────────────────────────────────

func scopeLabel(scope entity.SnapshotScope) string {
	if scope == entity.ScopeAll {
		return "todas las áreas"
	}
	return string(scope)
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// formatNumber separadores de miles según el locale; dos decimales.
func formatNumber(p *message.Printer, d decimal.Decimal) string {
	return p.Sprintf("%.2f", d.Round(2).InexactFloat64())
}
