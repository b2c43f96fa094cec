package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-cocina/internal/application/dto"
	"github.com/jhoicas/inventario-cocina/internal/domain"
	"github.com/jhoicas/inventario-cocina/internal/domain/entity"
	"github.com/jhoicas/inventario-cocina/internal/domain/repository"
)

// AuditRecorder sumidero de la bitácora; nunca devuelve error al llamador.
type AuditRecorder interface {
	Record(ctx context.Context, actorID, action, description string, details map[string]any)
}

// IngredientUseCase casos de uso CRUD del catálogo. El stock por área se maneja vía el ledger.
type IngredientUseCase struct {
	repo  repository.IngredientRepository
	audit AuditRecorder
}

// NewIngredientUseCase construye el caso de uso.
func NewIngredientUseCase(repo repository.IngredientRepository, audit AuditRecorder) *IngredientUseCase {
	return &IngredientUseCase{repo: repo, audit: audit}
}

// Create crea un ingrediente activo con stock en cero. SKU único.
func (uc *IngredientUseCase) Create(ctx context.Context, actorID string, in dto.CreateIngredientRequest) (*dto.IngredientResponse, error) {
	sku := strings.TrimSpace(in.SKU)
	name := strings.TrimSpace(in.Name)
	if sku == "" || name == "" {
		return nil, fmt.Errorf("%w: sku y name requeridos", domain.ErrInvalidInput)
	}
	unit, err := entity.ParseUnit(in.Unit)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	if in.UnitCost.IsNegative() || in.MinimumStock.IsNegative() {
		return nil, fmt.Errorf("%w: unit_cost y minimum_stock no pueden ser negativos", domain.ErrInvalidInput)
	}

	existing, err := uc.repo.GetBySKU(ctx, sku)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}

	now := time.Now()
	ing := &entity.Ingredient{
		ID:           uuid.New().String(),
		SKU:          sku,
		Name:         name,
		Unit:         unit,
		UnitCost:     in.UnitCost,
		MinimumStock: in.MinimumStock,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	for _, a := range entity.Areas {
		ing.Stocks.Set(a, decimal.Zero)
	}
	if err := uc.repo.Create(ctx, ing); err != nil {
		return nil, err
	}
	uc.audit.Record(ctx, actorID, entity.ActionIngredientSave, "Ingrediente creado: "+ing.Name,
		map[string]any{"ingredient_id": ing.ID, "sku": ing.SKU})
	out := dto.FromIngredient(ing)
	return &out, nil
}

// GetByID obtiene un ingrediente con su stock por área.
func (uc *IngredientUseCase) GetByID(ctx context.Context, id string) (*dto.IngredientResponse, error) {
	ing, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if ing == nil {
		return nil, domain.ErrNotFound
	}
	out := dto.FromIngredient(ing)
	return &out, nil
}

// Update actualiza datos de catálogo. Un cambio de costo no altera fotos ya tomadas.
func (uc *IngredientUseCase) Update(ctx context.Context, actorID, id string, in dto.UpdateIngredientRequest) (*dto.IngredientResponse, error) {
	ing, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if ing == nil {
		return nil, domain.ErrNotFound
	}
	if in.SKU != nil {
		sku := strings.TrimSpace(*in.SKU)
		if sku == "" {
			return nil, fmt.Errorf("%w: sku vacío", domain.ErrInvalidInput)
		}
		if sku != ing.SKU {
			other, err := uc.repo.GetBySKU(ctx, sku)
			if err != nil {
				return nil, err
			}
			if other != nil {
				return nil, domain.ErrDuplicate
			}
		}
		ing.SKU = sku
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: name vacío", domain.ErrInvalidInput)
		}
		ing.Name = name
	}
	if in.Unit != nil {
		unit, err := entity.ParseUnit(*in.Unit)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
		}
		ing.Unit = unit
	}
	if in.UnitCost != nil {
		if in.UnitCost.IsNegative() {
			return nil, fmt.Errorf("%w: unit_cost negativo", domain.ErrInvalidInput)
		}
		ing.UnitCost = *in.UnitCost
	}
	if in.MinimumStock != nil {
		if in.MinimumStock.IsNegative() {
			return nil, fmt.Errorf("%w: minimum_stock negativo", domain.ErrInvalidInput)
		}
		ing.MinimumStock = *in.MinimumStock
	}
	ing.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, ing); err != nil {
		return nil, err
	}
	uc.audit.Record(ctx, actorID, entity.ActionIngredientSave, "Ingrediente actualizado: "+ing.Name,
		map[string]any{"ingredient_id": ing.ID, "sku": ing.SKU})
	out := dto.FromIngredient(ing)
	return &out, nil
}

// List lista ingredientes con paginación, filtro de activos y búsqueda por nombre o SKU.
func (uc *IngredientUseCase) List(ctx context.Context, filter repository.IngredientFilter, limit, offset int) (*dto.IngredientListResponse, error) {
	list, total, err := uc.repo.List(ctx, filter, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.IngredientResponse, 0, len(list))
	for _, ing := range list {
		items = append(items, dto.FromIngredient(ing))
	}
	return &dto.IngredientListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset, Total: total},
	}, nil
}

// Deactivate baja lógica: el ingrediente sale del ledger, del dashboard y de futuras fotos.
func (uc *IngredientUseCase) Deactivate(ctx context.Context, actorID, id string) error {
	ing, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if ing == nil {
		return domain.ErrNotFound
	}
	if err := uc.repo.SetActive(ctx, id, false); err != nil {
		return err
	}
	uc.audit.Record(ctx, actorID, entity.ActionIngredientSave, "Ingrediente desactivado: "+ing.Name,
		map[string]any{"ingredient_id": ing.ID, "active": false})
	return nil
}
