package repository

import (
	"context"

	"github.com/jhoicas/inventario-cocina/internal/domain/entity"
)

// IngredientFilter criterios de listado del catálogo.
type IngredientFilter struct {
	ActiveOnly bool
	Search     string // coincidencia parcial por nombre o SKU, sin distinguir mayúsculas
}

// IngredientRepository define el puerto de persistencia para Ingredient (DIP).
// GetByID y GetBySKU devuelven (nil, nil) si no existe. Los ingredientes se cargan con sus Stocks.
type IngredientRepository interface {
	Create(ctx context.Context, ing *entity.Ingredient) error
	GetByID(ctx context.Context, id string) (*entity.Ingredient, error)
	GetBySKU(ctx context.Context, sku string) (*entity.Ingredient, error)
	Update(ctx context.Context, ing *entity.Ingredient) error
	SetActive(ctx context.Context, id string, active bool) error
	List(ctx context.Context, filter IngredientFilter, limit, offset int) ([]*entity.Ingredient, int, error)
	// ListActive devuelve todos los ingredientes activos con su stock (dashboard y stock bajo).
	ListActive(ctx context.Context) ([]*entity.Ingredient, error)
}
