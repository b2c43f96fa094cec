package inventory

import (
	"context"

	"github.com/jhoicas/inventario-cocina/internal/domain/ledger"
)

// AuditRecorder sumidero de la bitácora; nunca devuelve error al llamador.
type AuditRecorder interface {
	Record(ctx context.Context, actorID, action, description string, details map[string]any)
}

// LowStockNotifier recibe alertas de stock bajo y devuelve cuántas notificaciones creó.
type LowStockNotifier interface {
	NotifyLowStock(ctx context.Context, alerts []ledger.LowStockAlert) int
}
