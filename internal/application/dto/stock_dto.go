package dto

import "github.com/shopspring/decimal"

// SetStockRequest body para PUT /api/stock/:ingredientId/:area.
// quantity acepta número JSON o string numérico.
type SetStockRequest struct {
	Quantity *decimal.Decimal `json:"quantity"`
}

// BulkStockItem una operación dentro de POST /api/stock/bulk.
type BulkStockItem struct {
	IngredientID string           `json:"ingredient_id"`
	Area         string           `json:"area"`
	Quantity     *decimal.Decimal `json:"quantity"`
}

// BulkStockRequest lote ordenado de actualizaciones.
type BulkStockRequest struct {
	Updates []BulkStockItem `json:"updates"`
}

// DashboardResponse totales del inventario.
type DashboardResponse struct {
	TotalValue       decimal.Decimal            `json:"total_value"`
	TotalIngredients int                        `json:"total_ingredients"`
	InStockCount     int                        `json:"in_stock_count"`
	ValueByArea      map[string]decimal.Decimal `json:"value_by_area"`
}

// LowStockItem una fila (ingrediente, área) por debajo del umbral.
type LowStockItem struct {
	IngredientID string          `json:"ingredient_id"`
	Name         string          `json:"name"`
	SKU          string          `json:"sku"`
	Unit         string          `json:"unit"`
	Area         string          `json:"area"`
	Quantity     decimal.Decimal `json:"quantity"`
	Threshold    decimal.Decimal `json:"threshold"`
	Severity     string          `json:"severity"` // critical | high | medium
}

// LowStockResponse listado plano de stock bajo.
type LowStockResponse struct {
	Items []LowStockItem `json:"items"`
	Count int            `json:"count"`
}

// LowStockCheckResponse resultado de POST /api/stock/low-stock/check.
type LowStockCheckResponse struct {
	Alerts               []LowStockItem `json:"alerts"`
	NotificationsCreated int            `json:"notifications_created"`
}
