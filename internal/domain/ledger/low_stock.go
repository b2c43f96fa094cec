package ledger

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-cocina/internal/domain/entity"
)

// Severity nivel de urgencia de una alerta de stock bajo.
type Severity string

const (
	SeverityCritical Severity = "critical" // cantidad exactamente 0
	SeverityHigh     Severity = "high"     // por debajo de la mitad del umbral
	SeverityMedium   Severity = "medium"   // por debajo del umbral
)

var severityRank = map[Severity]int{SeverityMedium: 1, SeverityHigh: 2, SeverityCritical: 3}

// Worse devuelve la severidad más grave de las dos.
func Worse(a, b Severity) Severity {
	if severityRank[b] > severityRank[a] {
		return b
	}
	return a
}

// LowStockAlert una fila por par (ingrediente, área) bajo el umbral.
type LowStockAlert struct {
	IngredientID string
	Name         string
	SKU          string
	Unit         entity.Unit
	Area         entity.Area
	Quantity     decimal.Decimal
	Threshold    decimal.Decimal
	Severity     Severity
}

// Threshold umbral efectivo: MinimumStock del ingrediente o el valor por defecto si no lo define.
func Threshold(ing *entity.Ingredient, fallback decimal.Decimal) decimal.Decimal {
	if ing.MinimumStock.GreaterThan(decimal.Zero) {
		return ing.MinimumStock
	}
	return fallback
}

// ClassifySeverity asume quantity < threshold.
func ClassifySeverity(quantity, threshold decimal.Decimal) Severity {
	switch {
	case quantity.IsZero():
		return SeverityCritical
	case quantity.LessThan(threshold.Div(decimal.NewFromInt(2))):
		return SeverityHigh
	default:
		return SeverityMedium
	}
}

// FindLowStock recorre cada ingrediente activo y cada área; reporta los pares con
// cantidad < umbral. Nunca reporta una cantidad >= umbral. Lista plana, no agrupada.
func FindLowStock(ingredients []*entity.Ingredient, fallback decimal.Decimal) []LowStockAlert {
	alerts := make([]LowStockAlert, 0)
	for _, ing := range ingredients {
		if !ing.IsActive {
			continue
		}
		threshold := Threshold(ing, fallback)
		for _, a := range entity.Areas {
			qty := ing.Stocks.Get(a)
			if !qty.LessThan(threshold) {
				continue
			}
			alerts = append(alerts, LowStockAlert{
				IngredientID: ing.ID,
				Name:         ing.Name,
				SKU:          ing.SKU,
				Unit:         ing.Unit,
				Area:         a,
				Quantity:     qty,
				Threshold:    threshold,
				Severity:     ClassifySeverity(qty, threshold),
			})
		}
	}
	return alerts
}
