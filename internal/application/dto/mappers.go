package dto

import (
	"github.com/jhoicas/inventario-cocina/internal/domain/entity"
)

// FromIngredient convierte la entidad a su salida HTTP.
func FromIngredient(ing *entity.Ingredient) IngredientResponse {
	return IngredientResponse{
		ID:            ing.ID,
		SKU:           ing.SKU,
		Name:          ing.Name,
		Unit:          string(ing.Unit),
		UnitCost:      ing.UnitCost,
		MinimumStock:  ing.MinimumStock,
		Stocks:        ing.Stocks.ByName(),
		TotalQuantity: ing.TotalQuantity(),
		TotalValue:    ing.TotalValue(),
		IsActive:      ing.IsActive,
		CreatedAt:     ing.CreatedAt,
		UpdatedAt:     ing.UpdatedAt,
	}
}

// FromSnapshot convierte una foto. withItems=false para listados.
func FromSnapshot(s *entity.Snapshot, withItems bool) SnapshotResponse {
	out := SnapshotResponse{
		ID:          s.ID,
		Name:        s.Name,
		Description: s.Description,
		Scope:       string(s.Scope),
		Status:      string(s.Status),
		CreatedBy:   s.CreatedBy,
		CreatedAt:   s.CreatedAt,
		Summary: SnapshotSummaryResponse{
			TotalItems:    s.Summary.TotalItems,
			TotalQuantity: s.Summary.TotalQuantity,
			TotalValue:    s.Summary.TotalValue,
		},
	}
	if withItems {
		out.Items = make([]SnapshotItemResponse, 0, len(s.Items))
		for _, it := range s.Items {
			out.Items = append(out.Items, SnapshotItemResponse{
				IngredientID: it.IngredientID,
				Name:         it.Name,
				SKU:          it.SKU,
				Unit:         string(it.Unit),
				Quantity:     it.Quantity,
				UnitCost:     it.UnitCost,
				TotalValue:   it.TotalValue,
			})
		}
	}
	return out
}

// FromNotification convierte una notificación.
func FromNotification(n *entity.Notification) NotificationResponse {
	return NotificationResponse{
		ID:           n.ID,
		Kind:         n.Kind,
		Title:        n.Title,
		Message:      n.Message,
		IngredientID: n.IngredientID,
		Severity:     n.Severity,
		Read:         n.Read,
		CreatedAt:    n.CreatedAt,
		ReadAt:       n.ReadAt,
	}
}
