package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-cocina/internal/domain/entity"
)

// StockRepository define el puerto del ledger de stock por ingrediente+área.
// Cada escritura afecta una sola fila y es atómica por sí misma; no hay transacción entre ingredientes.
type StockRepository interface {
	// SetQuantity reemplaza (upsert) la cantidad del área. No acumula.
	SetQuantity(ctx context.Context, ingredientID string, area entity.Area, quantity decimal.Decimal) error
	// ListEntries devuelve las filas con cantidad > 0 de ingredientes activos.
	// area nil = las cuatro áreas. Orden estable: nombre de ingrediente, id, área.
	ListEntries(ctx context.Context, area *entity.Area) ([]entity.LedgerEntry, error)
	// ResetAll deja en cero las cuatro áreas de los ingredientes activos; devuelve filas afectadas.
	ResetAll(ctx context.Context) (int64, error)
}
