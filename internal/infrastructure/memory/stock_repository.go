package memory

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-cocina/internal/domain"
	"github.com/jhoicas/inventario-cocina/internal/domain/entity"
	"github.com/jhoicas/inventario-cocina/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepository)(nil)

// StockRepository ledger por ingrediente+área en memoria.
type StockRepository struct {
	b *backend
}

func (r *StockRepository) SetQuantity(_ context.Context, ingredientID string, area entity.Area, quantity decimal.Decimal) error {
	return r.b.write(func(st *state) error {
		ing, ok := st.ingredients[ingredientID]
		if !ok {
			return domain.ErrNotFound
		}
		ing.Stocks.Set(area, quantity)
		st.ingredients[ingredientID] = ing
		return nil
	})
}

func (r *StockRepository) ListEntries(_ context.Context, area *entity.Area) ([]entity.LedgerEntry, error) {
	var active []*entity.Ingredient
	r.b.read(func(st *state) {
		for _, ing := range st.ingredients {
			if ing.IsActive {
				c := ing
				active = append(active, &c)
			}
		}
	})
	sortByName(active)

	entries := make([]entity.LedgerEntry, 0, len(active))
	for _, ing := range active {
		for _, a := range entity.Areas {
			if area != nil && *area != a {
				continue
			}
			qty := ing.Stocks.Get(a)
			if !qty.GreaterThan(decimal.Zero) {
				continue
			}
			entries = append(entries, entity.LedgerEntry{
				IngredientID: ing.ID,
				Name:         ing.Name,
				SKU:          ing.SKU,
				Unit:         ing.Unit,
				UnitCost:     ing.UnitCost,
				Area:         a,
				Quantity:     qty,
			})
		}
	}
	return entries, nil
}

// ResetAll solo toca ingredientes activos, los mismos que ListEntries devuelve.
func (r *StockRepository) ResetAll(_ context.Context) (int64, error) {
	var n int64
	err := r.b.write(func(st *state) error {
		for id, ing := range st.ingredients {
			if !ing.IsActive {
				continue
			}
			for _, a := range entity.Areas {
				if !ing.Stocks.Get(a).IsZero() {
					ing.Stocks.Set(a, decimal.Zero)
					n++
				}
			}
			st.ingredients[id] = ing
		}
		return nil
	})
	return n, err
}
