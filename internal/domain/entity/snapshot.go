package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// SnapshotStatus estado de una foto de inventario.
type SnapshotStatus string

// Estados. Ninguna operación produce draft hoy; se conserva por compatibilidad del esquema.
const (
	SnapshotDraft SnapshotStatus = "draft"
	SnapshotFinal SnapshotStatus = "final"
)

// SnapshotScope alcance de la captura: "all" o el nombre de un área.
type SnapshotScope string

// ScopeAll captura las cuatro áreas.
const ScopeAll SnapshotScope = "all"

// ParseScope valida el alcance. Vacío equivale a "all".
func ParseScope(s string) (SnapshotScope, error) {
	if s == "" || foldName(s) == string(ScopeAll) {
		return ScopeAll, nil
	}
	a, err := ParseArea(s)
	if err != nil {
		return "", err
	}
	return SnapshotScope(a.String()), nil
}

// Area devuelve el área del alcance; ok=false cuando el alcance es "all".
func (s SnapshotScope) Area() (Area, bool) {
	if s == ScopeAll {
		return 0, false
	}
	a, err := ParseArea(string(s))
	if err != nil {
		return 0, false
	}
	return a, true
}

// Snapshot foto inmutable del ledger. Items y Summary no cambian después de crearse.
type Snapshot struct {
	ID          string
	Name        string
	Description string
	Scope       SnapshotScope
	Items       []SnapshotItem
	Summary     SnapshotSummary
	CreatedBy   string
	CreatedAt   time.Time
	Status      SnapshotStatus
}

// SnapshotItem una fila por ingrediente. Nombre, SKU, unidad y costo se copian al capturar,
// así una edición posterior del catálogo no altera la historia.
type SnapshotItem struct {
	IngredientID string          `json:"ingredient_id"`
	Name         string          `json:"name"`
	SKU          string          `json:"sku"`
	Unit         Unit            `json:"unit"`
	Quantity     decimal.Decimal `json:"quantity"`
	UnitCost     decimal.Decimal `json:"unit_cost"`
	TotalValue   decimal.Decimal `json:"total_value"`
}

// SnapshotSummary totales precalculados; siempre igual al fold sobre Items.
type SnapshotSummary struct {
	TotalItems    int
	TotalQuantity decimal.Decimal
	TotalValue    decimal.Decimal
}
