// Package ledger contiene los cálculos puros sobre el stock vivo (servicios de dominio).
package ledger

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-cocina/internal/domain/entity"
)

// DashboardTotals resumen de valorización del inventario vivo.
type DashboardTotals struct {
	TotalValue       decimal.Decimal
	TotalIngredients int
	InStockCount     int // ingredientes con cantidad total > 0
	ValueByArea      map[entity.Area]decimal.Decimal
}

// ComputeTotals suma, por ingrediente, las cuatro áreas × costo unitario.
// TotalValue = Σ ingredientes (Σ áreas) × UnitCost, y también = Σ ValueByArea.
func ComputeTotals(ingredients []*entity.Ingredient) DashboardTotals {
	out := DashboardTotals{
		TotalValue:       decimal.Zero,
		TotalIngredients: len(ingredients),
		ValueByArea:      make(map[entity.Area]decimal.Decimal, len(entity.Areas)),
	}
	for _, a := range entity.Areas {
		out.ValueByArea[a] = decimal.Zero
	}
	for _, ing := range ingredients {
		qty := ing.TotalQuantity()
		out.TotalValue = out.TotalValue.Add(qty.Mul(ing.UnitCost))
		if qty.GreaterThan(decimal.Zero) {
			out.InStockCount++
		}
		for _, a := range entity.Areas {
			out.ValueByArea[a] = out.ValueByArea[a].Add(ing.Stocks.Get(a).Mul(ing.UnitCost))
		}
	}
	return out
}
