package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateIngredientRequest entrada para crear un ingrediente. El stock inicia en cero en las cuatro áreas.
type CreateIngredientRequest struct {
	SKU          string          `json:"sku" validate:"required,min=1,max=100"`
	Name         string          `json:"name" validate:"required,min=1,max=200"`
	Unit         string          `json:"unit" validate:"required"`
	UnitCost     decimal.Decimal `json:"unit_cost"`
	MinimumStock decimal.Decimal `json:"minimum_stock"`
}

// UpdateIngredientRequest entrada para actualizar datos de catálogo (sin stock).
type UpdateIngredientRequest struct {
	SKU          *string          `json:"sku"`
	Name         *string          `json:"name" validate:"omitempty,min=1,max=200"`
	Unit         *string          `json:"unit"`
	UnitCost     *decimal.Decimal `json:"unit_cost"`
	MinimumStock *decimal.Decimal `json:"minimum_stock"`
}

// IngredientResponse salida de un ingrediente con su stock por área.
type IngredientResponse struct {
	ID            string                     `json:"id"`
	SKU           string                     `json:"sku"`
	Name          string                     `json:"name"`
	Unit          string                     `json:"unit"`
	UnitCost      decimal.Decimal            `json:"unit_cost"`
	MinimumStock  decimal.Decimal            `json:"minimum_stock"`
	Stocks        map[string]decimal.Decimal `json:"stocks"`
	TotalQuantity decimal.Decimal            `json:"total_quantity"`
	TotalValue    decimal.Decimal            `json:"total_value"`
	IsActive      bool                       `json:"is_active"`
	CreatedAt     time.Time                  `json:"created_at"`
	UpdatedAt     time.Time                  `json:"updated_at"`
}

// IngredientListResponse lista paginada de ingredientes.
type IngredientListResponse struct {
	Items []IngredientResponse `json:"items"`
	Page  PageResponse         `json:"page"`
}
