package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/jhoicas/inventario-cocina/internal/domain"
	"github.com/jhoicas/inventario-cocina/internal/domain/entity"
	"github.com/jhoicas/inventario-cocina/internal/domain/repository"
)

var _ repository.IngredientRepository = (*IngredientRepository)(nil)

// IngredientRepository catálogo de ingredientes en memoria.
type IngredientRepository struct {
	b *backend
}

func (r *IngredientRepository) Create(_ context.Context, ing *entity.Ingredient) error {
	return r.b.write(func(st *state) error {
		if _, ok := st.ingredients[ing.ID]; ok {
			return domain.ErrDuplicate
		}
		if skuTaken(st, ing.SKU, "") {
			return domain.ErrDuplicate
		}
		st.ingredients[ing.ID] = *ing
		return nil
	})
}

func (r *IngredientRepository) GetByID(_ context.Context, id string) (*entity.Ingredient, error) {
	var out *entity.Ingredient
	r.b.read(func(st *state) {
		if ing, ok := st.ingredients[id]; ok {
			out = &ing
		}
	})
	return out, nil
}

func (r *IngredientRepository) GetBySKU(_ context.Context, sku string) (*entity.Ingredient, error) {
	var out *entity.Ingredient
	r.b.read(func(st *state) {
		for _, ing := range st.ingredients {
			if ing.SKU == sku {
				c := ing
				out = &c
				return
			}
		}
	})
	return out, nil
}

// Update reemplaza los datos de catálogo. El stock por área no se toca: solo cambia vía StockRepository.
func (r *IngredientRepository) Update(_ context.Context, ing *entity.Ingredient) error {
	return r.b.write(func(st *state) error {
		cur, ok := st.ingredients[ing.ID]
		if !ok {
			return domain.ErrNotFound
		}
		if skuTaken(st, ing.SKU, ing.ID) {
			return domain.ErrDuplicate
		}
		cur.SKU = ing.SKU
		cur.Name = ing.Name
		cur.Unit = ing.Unit
		cur.UnitCost = ing.UnitCost
		cur.MinimumStock = ing.MinimumStock
		cur.IsActive = ing.IsActive
		cur.UpdatedAt = ing.UpdatedAt
		st.ingredients[ing.ID] = cur
		return nil
	})
}

func (r *IngredientRepository) SetActive(_ context.Context, id string, active bool) error {
	return r.b.write(func(st *state) error {
		cur, ok := st.ingredients[id]
		if !ok {
			return domain.ErrNotFound
		}
		cur.IsActive = active
		st.ingredients[id] = cur
		return nil
	})
}

func (r *IngredientRepository) List(_ context.Context, filter repository.IngredientFilter, limit, offset int) ([]*entity.Ingredient, int, error) {
	var all []*entity.Ingredient
	q := strings.ToLower(strings.TrimSpace(filter.Search))
	r.b.read(func(st *state) {
		for _, ing := range st.ingredients {
			if filter.ActiveOnly && !ing.IsActive {
				continue
			}
			if q != "" && !strings.Contains(strings.ToLower(ing.Name), q) && !strings.Contains(strings.ToLower(ing.SKU), q) {
				continue
			}
			c := ing
			all = append(all, &c)
		}
	})
	sortByName(all)
	return paginate(all, limit, offset), len(all), nil
}

func (r *IngredientRepository) ListActive(ctx context.Context) ([]*entity.Ingredient, error) {
	list, _, err := r.List(ctx, repository.IngredientFilter{ActiveOnly: true}, 0, 0)
	return list, err
}

func skuTaken(st *state, sku, exceptID string) bool {
	for id, ing := range st.ingredients {
		if id != exceptID && ing.SKU == sku {
			return true
		}
	}
	return false
}

func sortByName(list []*entity.Ingredient) {
	sort.Slice(list, func(i, j int) bool {
		if list[i].Name != list[j].Name {
			return list[i].Name < list[j].Name
		}
		return list[i].ID < list[j].ID
	})
}

// paginate limit <= 0 devuelve todo desde offset.
func paginate[T any](list []T, limit, offset int) []T {
	if offset >= len(list) {
		return []T{}
	}
	if offset > 0 {
		list = list[offset:]
	}
	if limit > 0 && limit < len(list) {
		list = list[:limit]
	}
	return list
}
