// Package snapshot agrupa la lógica pura del motor de fotos de inventario:
// construcción de ítems desde el ledger y comparación entre dos fotos.
package snapshot

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-cocina/internal/domain/entity"
)

// BuildItems agrupa las filas del ledger por ingrediente.
//
// Por grupo: suma las cantidades de todas sus áreas y congela el costo unitario del
// primer registro encontrado. El orden de salida es el de primera aparición.
func BuildItems(entries []entity.LedgerEntry) []entity.SnapshotItem {
	index := make(map[string]int, len(entries))
	items := make([]entity.SnapshotItem, 0)
	for _, e := range entries {
		i, ok := index[e.IngredientID]
		if !ok {
			index[e.IngredientID] = len(items)
			items = append(items, entity.SnapshotItem{
				IngredientID: e.IngredientID,
				Name:         e.Name,
				SKU:          e.SKU,
				Unit:         e.Unit,
				Quantity:     e.Quantity,
				UnitCost:     e.UnitCost,
			})
			continue
		}
		items[i].Quantity = items[i].Quantity.Add(e.Quantity)
	}
	for i := range items {
		items[i].TotalValue = items[i].Quantity.Mul(items[i].UnitCost)
	}
	return items
}

// Summarize pliega los ítems: cantidad de ítems, Σ cantidad, Σ valor.
func Summarize(items []entity.SnapshotItem) entity.SnapshotSummary {
	sum := entity.SnapshotSummary{
		TotalItems:    len(items),
		TotalQuantity: decimal.Zero,
		TotalValue:    decimal.Zero,
	}
	for _, it := range items {
		sum.TotalQuantity = sum.TotalQuantity.Add(it.Quantity)
		sum.TotalValue = sum.TotalValue.Add(it.TotalValue)
	}
	return sum
}

// Build arma ítems y resumen a partir de las filas del ledger.
func Build(entries []entity.LedgerEntry) ([]entity.SnapshotItem, entity.SnapshotSummary) {
	items := BuildItems(entries)
	return items, Summarize(items)
}
