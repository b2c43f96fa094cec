package entity

import "time"

// Tipos de notificación.
const (
	NotificationLowStock = "low_stock"
)

// Notification aviso para el personal (difusión, sin destinatario individual).
type Notification struct {
	ID           string
	Kind         string
	Title        string
	Message      string
	IngredientID string // vacío si no aplica
	Severity     string
	Read         bool
	CreatedAt    time.Time
	ReadAt       *time.Time
}
