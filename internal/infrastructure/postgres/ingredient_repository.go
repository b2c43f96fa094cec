package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-cocina/internal/domain"
	"github.com/jhoicas/inventario-cocina/internal/domain/entity"
	"github.com/jhoicas/inventario-cocina/internal/domain/repository"
)

var _ repository.IngredientRepository = (*IngredientRepo)(nil)

// IngredientRepo implementación del puerto IngredientRepository sobre PostgreSQL (usable con pool o tx).
// Los ingredientes se devuelven con su stock por área cargado desde ingredient_stocks.
type IngredientRepo struct {
	q Querier
}

// NewIngredientRepository construye el adaptador. Pasar pool o tx (Querier).
func NewIngredientRepository(q Querier) *IngredientRepo {
	return &IngredientRepo{q: q}
}

const ingredientColumns = `id, sku, name, unit, unit_cost, minimum_stock, is_active, created_at, updated_at`

// Create persiste un nuevo ingrediente. Sin filas de stock: un área ausente vale 0.
func (r *IngredientRepo) Create(ctx context.Context, ing *entity.Ingredient) error {
	query := `
		INSERT INTO ingredients (` + ingredientColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		ing.ID, ing.SKU, ing.Name, string(ing.Unit), ing.UnitCost, ing.MinimumStock,
		ing.IsActive, ing.CreatedAt, ing.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return depErr("insert ingredient", err)
	}
	return nil
}

// GetByID obtiene un ingrediente por ID; (nil, nil) si no existe.
func (r *IngredientRepo) GetByID(ctx context.Context, id string) (*entity.Ingredient, error) {
	return r.getOne(ctx, `SELECT `+ingredientColumns+` FROM ingredients WHERE id = $1`, id)
}

// GetBySKU obtiene un ingrediente por SKU; (nil, nil) si no existe.
func (r *IngredientRepo) GetBySKU(ctx context.Context, sku string) (*entity.Ingredient, error) {
	return r.getOne(ctx, `SELECT `+ingredientColumns+` FROM ingredients WHERE sku = $1`, sku)
}

// Update actualiza datos de catálogo. El stock no se toca aquí.
func (r *IngredientRepo) Update(ctx context.Context, ing *entity.Ingredient) error {
	query := `
		UPDATE ingredients
		SET sku = $2, name = $3, unit = $4, unit_cost = $5, minimum_stock = $6, is_active = $7, updated_at = $8
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query,
		ing.ID, ing.SKU, ing.Name, string(ing.Unit), ing.UnitCost, ing.MinimumStock, ing.IsActive, ing.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return depErr("update ingredient", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// SetActive baja o alta lógica.
func (r *IngredientRepo) SetActive(ctx context.Context, id string, active bool) error {
	cmd, err := r.q.Exec(ctx, `UPDATE ingredients SET is_active = $2, updated_at = now() WHERE id = $1`, id, active)
	if err != nil {
		return depErr("set ingredient active", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista con filtros y paginación; devuelve también el total sin paginar.
// La búsqueda es literal: % y _ del texto no actúan como comodines.
func (r *IngredientRepo) List(ctx context.Context, filter repository.IngredientFilter, limit, offset int) ([]*entity.Ingredient, int, error) {
	where := ` WHERE ($1 = FALSE OR is_active) AND ($2 = '' OR name ILIKE $3 OR sku ILIKE $3)`
	search := strings.TrimSpace(filter.Search)
	pattern := containsPattern(search)

	var total int
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM ingredients`+where, filter.ActiveOnly, search, pattern).Scan(&total); err != nil {
		return nil, 0, depErr("count ingredients", err)
	}

	query := `SELECT ` + ingredientColumns + ` FROM ingredients` + where + ` ORDER BY name, id LIMIT $4 OFFSET $5`
	list, err := r.query(ctx, query, filter.ActiveOnly, search, pattern, limitArg(limit), offset)
	if err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern arma el patrón ILIKE de "contiene" escapando los comodines (escape por defecto: \).
func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}

// ListActive todos los ingredientes activos con su stock.
func (r *IngredientRepo) ListActive(ctx context.Context) ([]*entity.Ingredient, error) {
	return r.query(ctx, `SELECT `+ingredientColumns+` FROM ingredients WHERE is_active ORDER BY name, id`)
}

func (r *IngredientRepo) getOne(ctx context.Context, query string, arg any) (*entity.Ingredient, error) {
	ing, err := scanIngredient(r.q.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, depErr("get ingredient", err)
	}
	if err := r.loadStocks(ctx, []*entity.Ingredient{ing}); err != nil {
		return nil, err
	}
	return ing, nil
}

func (r *IngredientRepo) query(ctx context.Context, query string, args ...any) ([]*entity.Ingredient, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, depErr("list ingredients", err)
	}
	defer rows.Close()
	list := make([]*entity.Ingredient, 0)
	for rows.Next() {
		ing, err := scanIngredient(rows)
		if err != nil {
			return nil, depErr("scan ingredient", err)
		}
		list = append(list, ing)
	}
	if err := rows.Err(); err != nil {
		return nil, depErr("list ingredients", err)
	}
	if err := r.loadStocks(ctx, list); err != nil {
		return nil, err
	}
	return list, nil
}

// loadStocks completa Stocks de cada ingrediente con una sola consulta.
func (r *IngredientRepo) loadStocks(ctx context.Context, list []*entity.Ingredient) error {
	if len(list) == 0 {
		return nil
	}
	byID := make(map[string]*entity.Ingredient, len(list))
	ids := make([]string, 0, len(list))
	for _, ing := range list {
		byID[ing.ID] = ing
		ids = append(ids, ing.ID)
	}

	rows, err := r.q.Query(ctx,
		`SELECT ingredient_id, area, quantity FROM ingredient_stocks WHERE ingredient_id = ANY($1)`, ids)
	if err != nil {
		return depErr("load stocks", err)
	}
	defer rows.Close()
	for rows.Next() {
		var (
			id, areaName string
			qty          decimal.Decimal
		)
		if err := rows.Scan(&id, &areaName, &qty); err != nil {
			return depErr("scan stock", err)
		}
		area, err := entity.ParseArea(areaName)
		if err != nil {
			return fmt.Errorf("stock de %s: %w", id, err)
		}
		if ing, ok := byID[id]; ok {
			ing.Stocks.Set(area, qty)
		}
	}
	if err := rows.Err(); err != nil {
		return depErr("load stocks", err)
	}
	return nil
}

func scanIngredient(row pgx.Row) (*entity.Ingredient, error) {
	var (
		ing  entity.Ingredient
		unit string
	)
	if err := row.Scan(&ing.ID, &ing.SKU, &ing.Name, &unit, &ing.UnitCost, &ing.MinimumStock,
		&ing.IsActive, &ing.CreatedAt, &ing.UpdatedAt); err != nil {
		return nil, err
	}
	ing.Unit = entity.Unit(unit)
	return &ing, nil
}
