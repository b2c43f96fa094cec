package entity

import "time"

// Acciones registradas en la bitácora.
const (
	ActionStockUpdate     = "stock.update"
	ActionStockBulkUpdate = "stock.bulk_update"
	ActionSnapshotCreate  = "snapshot.create"
	ActionSnapshotDelete  = "snapshot.delete"
	ActionClosePeriod     = "snapshot.close_period"
	ActionIngredientSave  = "ingredient.save"
)

// AuditEntry registro de actividad: quién hizo qué y con qué datos.
type AuditEntry struct {
	ID          string
	ActorID     string
	Action      string
	Description string
	Details     map[string]any
	CreatedAt   time.Time
}
