package postgres

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-cocina/internal/domain"
	"github.com/jhoicas/inventario-cocina/internal/domain/entity"
	"github.com/jhoicas/inventario-cocina/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo ledger por ingrediente+área sobre ingredient_stocks (usable con pool o tx).
type StockRepo struct {
	q Querier
}

// NewStockRepository construye el adaptador de stock. Pasar pool o tx (Querier).
func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{q: q}
}

// SetQuantity inserta o reemplaza la cantidad (un solo upsert, atómico por fila).
func (r *StockRepo) SetQuantity(ctx context.Context, ingredientID string, area entity.Area, quantity decimal.Decimal) error {
	query := `
		INSERT INTO ingredient_stocks (ingredient_id, area, quantity, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (ingredient_id, area)
		DO UPDATE SET quantity = EXCLUDED.quantity, updated_at = now()`
	_, err := r.q.Exec(ctx, query, ingredientID, area.String(), quantity)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: ingrediente %s", domain.ErrNotFound, ingredientID)
		}
		return depErr("upsert stock", err)
	}
	return nil
}

// ListEntries filas con cantidad > 0 de ingredientes activos, ordenadas por nombre, id y área.
// El orden alfabético de las áreas coincide con el del enum.
func (r *StockRepo) ListEntries(ctx context.Context, area *entity.Area) ([]entity.LedgerEntry, error) {
	var areaArg *string
	if area != nil {
		s := area.String()
		areaArg = &s
	}
	query := `
		SELECT i.id, i.name, i.sku, i.unit, i.unit_cost, s.area, s.quantity
		FROM ingredient_stocks s
		JOIN ingredients i ON i.id = s.ingredient_id
		WHERE i.is_active AND s.quantity > 0 AND ($1::text IS NULL OR s.area = $1)
		ORDER BY i.name, i.id, s.area`
	rows, err := r.q.Query(ctx, query, areaArg)
	if err != nil {
		return nil, depErr("list ledger entries", err)
	}
	defer rows.Close()

	entries := make([]entity.LedgerEntry, 0)
	for rows.Next() {
		var (
			e              entity.LedgerEntry
			unit, areaName string
		)
		if err := rows.Scan(&e.IngredientID, &e.Name, &e.SKU, &unit, &e.UnitCost, &areaName, &e.Quantity); err != nil {
			return nil, depErr("scan ledger entry", err)
		}
		a, err := entity.ParseArea(areaName)
		if err != nil {
			return nil, fmt.Errorf("ledger de %s: %w", e.IngredientID, err)
		}
		e.Unit = entity.Unit(unit)
		e.Area = a
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, depErr("list ledger entries", err)
	}
	return entries, nil
}

// ResetAll pone en cero las filas con cantidad distinta de cero de ingredientes activos.
// El stock de un ingrediente inactivo no entra en las fotos, así que tampoco se borra.
func (r *StockRepo) ResetAll(ctx context.Context) (int64, error) {
	cmd, err := r.q.Exec(ctx, `
		UPDATE ingredient_stocks s SET quantity = 0, updated_at = now()
		FROM ingredients i
		WHERE i.id = s.ingredient_id AND i.is_active AND s.quantity <> 0`)
	if err != nil {
		return 0, depErr("reset stocks", err)
	}
	return cmd.RowsAffected(), nil
}
