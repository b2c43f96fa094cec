package inventory

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-cocina/internal/application/dto"
	"github.com/jhoicas/inventario-cocina/internal/domain"
	"github.com/jhoicas/inventario-cocina/internal/domain/entity"
	"github.com/jhoicas/inventario-cocina/internal/domain/ledger"
	"github.com/jhoicas/inventario-cocina/internal/domain/repository"
	"github.com/jhoicas/inventario-cocina/pkg/logger"
)

// Estados de cada operación de un lote.
const (
	OutcomeApplied = "applied"
	OutcomeFailed  = "failed"
)

// ItemOutcome resultado de una operación del lote, en el mismo orden de entrada.
type ItemOutcome struct {
	Index        int    `json:"index"`
	IngredientID string `json:"ingredient_id"`
	Area         string `json:"area"`
	Status       string `json:"status"`
	Code         string `json:"code,omitempty"` // NOT_FOUND | DEPENDENCY | INTERNAL
	Error        string `json:"error,omitempty"`
}

// BatchResult resultado agregado de un lote de escrituras independientes.
type BatchResult struct {
	Total    int           `json:"total"`
	Applied  int           `json:"applied"`
	Failed   int           `json:"failed"`
	Outcomes []ItemOutcome `json:"outcomes"`
}

// LedgerUseCase operaciones sobre el stock vivo por ingrediente y área.
// Cada escritura reemplaza la cantidad de una sola fila (ingrediente, área); no acumula.
type LedgerUseCase struct {
	ingredientRepo repository.IngredientRepository
	stockRepo      repository.StockRepository
	audit          AuditRecorder
	notifier       LowStockNotifier // nil = sin notificaciones
	defaultMinimum decimal.Decimal
	log            *logger.Logger
}

// NewLedgerUseCase construye el caso de uso. defaultMinimum es el umbral de stock bajo
// para ingredientes sin stock mínimo propio.
func NewLedgerUseCase(
	ingredientRepo repository.IngredientRepository,
	stockRepo repository.StockRepository,
	audit AuditRecorder,
	notifier LowStockNotifier,
	defaultMinimum decimal.Decimal,
	log *logger.Logger,
) *LedgerUseCase {
	return &LedgerUseCase{
		ingredientRepo: ingredientRepo,
		stockRepo:      stockRepo,
		audit:          audit,
		notifier:       notifier,
		defaultMinimum: defaultMinimum,
		log:            log.Named("ledger"),
	}
}

// SetAreaStock reemplaza la cantidad de un área y devuelve el ingrediente recargado.
// Validación e ingrediente inexistente se detectan antes de escribir.
func (uc *LedgerUseCase) SetAreaStock(ctx context.Context, actorID, ingredientID, areaName string, quantity *decimal.Decimal) (*dto.IngredientResponse, error) {
	upd, err := parseUpdate(ingredientID, areaName, quantity)
	if err != nil {
		return nil, err
	}
	if _, err := uc.activeIngredient(ctx, upd.IngredientID); err != nil {
		return nil, err
	}
	if err := uc.stockRepo.SetQuantity(ctx, upd.IngredientID, upd.Area, upd.Quantity); err != nil {
		return nil, err
	}

	ing, err := uc.ingredientRepo.GetByID(ctx, upd.IngredientID)
	if err != nil {
		return nil, err
	}
	if ing == nil {
		return nil, domain.ErrNotFound
	}

	uc.audit.Record(ctx, actorID, entity.ActionStockUpdate,
		fmt.Sprintf("Stock de %s en %s = %s %s", ing.Name, upd.Area, upd.Quantity.String(), ing.Unit),
		map[string]any{
			"ingredient_id": ing.ID,
			"area":          upd.Area.String(),
			"quantity":      upd.Quantity.String(),
		})
	uc.notify(ctx, ledger.FindLowStock([]*entity.Ingredient{ing}, uc.defaultMinimum))

	out := dto.FromIngredient(ing)
	return &out, nil
}

// BulkSetAreaStock aplica un lote ordenado de reemplazos.
//
// Todo el lote se valida primero: un item mal formado rechaza el lote completo sin escribir nada.
// Después cada item es una escritura independiente; si alguno falla se devuelve el resultado
// junto con domain.ErrPartialFailure para que el llamador reintente solo los fallidos.
func (uc *LedgerUseCase) BulkSetAreaStock(ctx context.Context, actorID string, items []dto.BulkStockItem) (*BatchResult, error) {
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: el lote está vacío", domain.ErrInvalidInput)
	}
	updates := make([]entity.StockUpdate, 0, len(items))
	for i, it := range items {
		upd, err := parseUpdate(it.IngredientID, it.Area, it.Quantity)
		if err != nil {
			return nil, fmt.Errorf("updates[%d]: %w", i, err)
		}
		updates = append(updates, upd)
	}

	res := &BatchResult{Total: len(updates), Outcomes: make([]ItemOutcome, 0, len(updates))}
	touched := make(map[string]struct{})
	for i, upd := range updates {
		out := ItemOutcome{Index: i, IngredientID: upd.IngredientID, Area: upd.Area.String(), Status: OutcomeApplied}
		err := uc.applyOne(ctx, upd)
		if err != nil {
			out.Status = OutcomeFailed
			out.Code = outcomeCode(err)
			out.Error = err.Error()
			res.Failed++
		} else {
			res.Applied++
			touched[upd.IngredientID] = struct{}{}
		}
		res.Outcomes = append(res.Outcomes, out)
	}

	if res.Applied > 0 {
		// El área registrada es la del primer item aunque el lote abarque varias.
		uc.audit.Record(ctx, actorID, entity.ActionStockBulkUpdate,
			fmt.Sprintf("Actualización masiva de stock en %s (%d items)", updates[0].Area, res.Applied),
			map[string]any{
				"area":   updates[0].Area.String(),
				"count":  res.Applied,
				"total":  res.Total,
				"failed": res.Failed,
			})
		uc.notifyTouched(ctx, touched)
	}

	if res.Failed > 0 {
		return res, domain.ErrPartialFailure
	}
	return res, nil
}

// DashboardTotals valoriza el inventario de los ingredientes activos. El stock que conserve un
// ingrediente desactivado no suma en ningún total (ni en el valor por área) hasta que se reactive.
func (uc *LedgerUseCase) DashboardTotals(ctx context.Context) (*dto.DashboardResponse, error) {
	ings, err := uc.ingredientRepo.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	totals := ledger.ComputeTotals(ings)
	byArea := make(map[string]decimal.Decimal, len(totals.ValueByArea))
	for a, v := range totals.ValueByArea {
		byArea[a.String()] = v
	}
	return &dto.DashboardResponse{
		TotalValue:       totals.TotalValue,
		TotalIngredients: totals.TotalIngredients,
		InStockCount:     totals.InStockCount,
		ValueByArea:      byArea,
	}, nil
}

// LowStock lista plana de pares (ingrediente, área) por debajo del umbral.
func (uc *LedgerUseCase) LowStock(ctx context.Context) (*dto.LowStockResponse, error) {
	alerts, err := uc.lowStockAlerts(ctx)
	if err != nil {
		return nil, err
	}
	items := toLowStockItems(alerts)
	return &dto.LowStockResponse{Items: items, Count: len(items)}, nil
}

// CheckLowStock calcula el stock bajo y lo entrega al notificador.
func (uc *LedgerUseCase) CheckLowStock(ctx context.Context) (*dto.LowStockCheckResponse, error) {
	alerts, err := uc.lowStockAlerts(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.LowStockCheckResponse{
		Alerts:               toLowStockItems(alerts),
		NotificationsCreated: uc.notify(ctx, alerts),
	}, nil
}

func (uc *LedgerUseCase) lowStockAlerts(ctx context.Context) ([]ledger.LowStockAlert, error) {
	ings, err := uc.ingredientRepo.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	return ledger.FindLowStock(ings, uc.defaultMinimum), nil
}

func (uc *LedgerUseCase) applyOne(ctx context.Context, upd entity.StockUpdate) error {
	if _, err := uc.activeIngredient(ctx, upd.IngredientID); err != nil {
		return err
	}
	return uc.stockRepo.SetQuantity(ctx, upd.IngredientID, upd.Area, upd.Quantity)
}

func (uc *LedgerUseCase) activeIngredient(ctx context.Context, id string) (*entity.Ingredient, error) {
	ing, err := uc.ingredientRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if ing == nil {
		return nil, fmt.Errorf("%w: ingrediente %s", domain.ErrNotFound, id)
	}
	if !ing.IsActive {
		return nil, fmt.Errorf("%w: ingrediente %s inactivo", domain.ErrNotFound, id)
	}
	return ing, nil
}

func (uc *LedgerUseCase) notify(ctx context.Context, alerts []ledger.LowStockAlert) int {
	if uc.notifier == nil || len(alerts) == 0 {
		return 0
	}
	return uc.notifier.NotifyLowStock(ctx, alerts)
}

func (uc *LedgerUseCase) notifyTouched(ctx context.Context, touched map[string]struct{}) {
	if uc.notifier == nil {
		return
	}
	ings, err := uc.ingredientRepo.ListActive(ctx)
	if err != nil {
		uc.log.Warn().Err(err).Msg("no se pudo revisar stock bajo tras el lote")
		return
	}
	subset := make([]*entity.Ingredient, 0, len(touched))
	for _, ing := range ings {
		if _, ok := touched[ing.ID]; ok {
			subset = append(subset, ing)
		}
	}
	uc.notify(ctx, ledger.FindLowStock(subset, uc.defaultMinimum))
}

func parseUpdate(ingredientID, areaName string, quantity *decimal.Decimal) (entity.StockUpdate, error) {
	id := strings.TrimSpace(ingredientID)
	if id == "" {
		return entity.StockUpdate{}, fmt.Errorf("%w: ingredient_id requerido", domain.ErrInvalidInput)
	}
	area, err := entity.ParseArea(areaName)
	if err != nil {
		return entity.StockUpdate{}, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	if quantity == nil {
		return entity.StockUpdate{}, fmt.Errorf("%w: quantity requerido", domain.ErrInvalidInput)
	}
	if quantity.IsNegative() {
		return entity.StockUpdate{}, fmt.Errorf("%w: quantity no puede ser negativo", domain.ErrInvalidInput)
	}
	return entity.StockUpdate{IngredientID: id, Area: area, Quantity: *quantity}, nil
}

func outcomeCode(err error) string {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return "NOT_FOUND"
	case errors.Is(err, domain.ErrDependency):
		return "DEPENDENCY"
	default:
		return "INTERNAL"
	}
}

func toLowStockItems(alerts []ledger.LowStockAlert) []dto.LowStockItem {
	items := make([]dto.LowStockItem, 0, len(alerts))
	for _, a := range alerts {
		items = append(items, dto.LowStockItem{
			IngredientID: a.IngredientID,
			Name:         a.Name,
			SKU:          a.SKU,
			Unit:         string(a.Unit),
			Area:         a.Area.String(),
			Quantity:     a.Quantity,
			Threshold:    a.Threshold,
			Severity:     string(a.Severity),
		})
	}
	return items
}
