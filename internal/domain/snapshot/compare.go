package snapshot

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-cocina/internal/domain/entity"
)

var hundred = decimal.NewFromInt(100)

// ComparisonRow variación de un ingrediente entre la foto A y la foto B.
type ComparisonRow struct {
	IngredientID  string
	Name          string
	SKU           string
	Unit          entity.Unit
	QuantityA     decimal.Decimal
	QuantityB     decimal.Decimal
	Difference    decimal.Decimal  // QuantityB - QuantityA
	PercentChange *decimal.Decimal // nil cuando QuantityA == 0
}

// SummaryDelta diferencia B - A de los resúmenes.
type SummaryDelta struct {
	Items    int
	Quantity decimal.Decimal
	Value    decimal.Decimal
}

// Comparison resultado efímero (no se persiste).
type Comparison struct {
	Rows  []ComparisonRow
	Delta SummaryDelta
}

// Compare calcula el consumo/variación entre dos fotos.
//
// Recorre la unión de ingredientes (orden de A y luego los que solo están en B), usa 0 para
// el lado ausente, omite diferencias exactamente cero y ordena por |diferencia| descendente.
func Compare(a, b *entity.Snapshot) Comparison {
	inA := indexItems(a.Items)
	inB := indexItems(b.Items)

	order := make([]string, 0, len(a.Items)+len(b.Items))
	seen := make(map[string]struct{}, len(a.Items)+len(b.Items))
	for _, items := range [][]entity.SnapshotItem{a.Items, b.Items} {
		for _, it := range items {
			if _, ok := seen[it.IngredientID]; ok {
				continue
			}
			seen[it.IngredientID] = struct{}{}
			order = append(order, it.IngredientID)
		}
	}

	rows := make([]ComparisonRow, 0, len(order))
	for _, id := range order {
		itA, okA := inA[id]
		itB, okB := inB[id]

		qtyA, qtyB := decimal.Zero, decimal.Zero
		if okA {
			qtyA = itA.Quantity
		}
		if okB {
			qtyB = itB.Quantity
		}
		diff := qtyB.Sub(qtyA)
		if diff.IsZero() {
			continue
		}

		// Los datos descriptivos salen de la foto más reciente que tenga el ingrediente.
		ref := itB
		if !okB {
			ref = itA
		}
		row := ComparisonRow{
			IngredientID: id,
			Name:         ref.Name,
			SKU:          ref.SKU,
			Unit:         ref.Unit,
			QuantityA:    qtyA,
			QuantityB:    qtyB,
			Difference:   diff,
		}
		if qtyA.GreaterThan(decimal.Zero) {
			pct := diff.Div(qtyA).Mul(hundred).Round(2)
			row.PercentChange = &pct
		}
		rows = append(rows, row)
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Difference.Abs().GreaterThan(rows[j].Difference.Abs())
	})

	return Comparison{
		Rows: rows,
		Delta: SummaryDelta{
			Items:    b.Summary.TotalItems - a.Summary.TotalItems,
			Quantity: b.Summary.TotalQuantity.Sub(a.Summary.TotalQuantity),
			Value:    b.Summary.TotalValue.Sub(a.Summary.TotalValue),
		},
	}
}

func indexItems(items []entity.SnapshotItem) map[string]entity.SnapshotItem {
	m := make(map[string]entity.SnapshotItem, len(items))
	for _, it := range items {
		m[it.IngredientID] = it
	}
	return m
}
