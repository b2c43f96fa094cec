package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateSnapshotRequest body para POST /api/snapshots.
type CreateSnapshotRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
	Scope       string `json:"scope"` // "all" (por defecto) o nombre de área
}

// SnapshotItemResponse fila congelada de una foto.
type SnapshotItemResponse struct {
	IngredientID string          `json:"ingredient_id"`
	Name         string          `json:"name"`
	SKU          string          `json:"sku"`
	Unit         string          `json:"unit"`
	Quantity     decimal.Decimal `json:"quantity"`
	UnitCost     decimal.Decimal `json:"unit_cost"`
	TotalValue   decimal.Decimal `json:"total_value"`
}

// SnapshotSummaryResponse totales de una foto.
type SnapshotSummaryResponse struct {
	TotalItems    int             `json:"total_items"`
	TotalQuantity decimal.Decimal `json:"total_quantity"`
	TotalValue    decimal.Decimal `json:"total_value"`
}

// SnapshotResponse salida de una foto. Items se omite en listados.
type SnapshotResponse struct {
	ID          string                  `json:"id"`
	Name        string                  `json:"name"`
	Description string                  `json:"description"`
	Scope       string                  `json:"scope"`
	Status      string                  `json:"status"`
	CreatedBy   string                  `json:"created_by"`
	CreatedAt   time.Time               `json:"created_at"`
	Summary     SnapshotSummaryResponse `json:"summary"`
	Items       []SnapshotItemResponse  `json:"items,omitempty"`
}

// SnapshotListResponse lista paginada de fotos.
type SnapshotListResponse struct {
	Items []SnapshotResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

// ClosePeriodResponse foto de cierre y cantidad de filas del ledger puestas en cero.
type ClosePeriodResponse struct {
	Snapshot  SnapshotResponse `json:"snapshot"`
	ResetRows int64            `json:"reset_rows"`
}

// SnapshotRef referencia corta a una foto comparada.
type SnapshotRef struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// ComparisonRowResponse variación de un ingrediente. PercentChange es null cuando la cantidad base es 0.
type ComparisonRowResponse struct {
	IngredientID  string           `json:"ingredient_id"`
	Name          string           `json:"name"`
	SKU           string           `json:"sku"`
	Unit          string           `json:"unit"`
	QuantityA     decimal.Decimal  `json:"quantity_a"`
	QuantityB     decimal.Decimal  `json:"quantity_b"`
	Difference    decimal.Decimal  `json:"difference"`
	PercentChange *decimal.Decimal `json:"percent_change"`
}

// ComparisonDelta diferencia B - A de los resúmenes.
type ComparisonDelta struct {
	Items    int             `json:"items"`
	Quantity decimal.Decimal `json:"quantity"`
	Value    decimal.Decimal `json:"value"`
}

// ComparisonResponse resultado de GET /api/snapshots/compare.
type ComparisonResponse struct {
	From  SnapshotRef             `json:"from"`
	To    SnapshotRef             `json:"to"`
	Rows  []ComparisonRowResponse `json:"rows"`
	Delta ComparisonDelta         `json:"delta"`
}
