package entity

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Unit unidad de medida de un ingrediente.
type Unit string

// Unidades válidas.
const (
	UnitPieza     Unit = "pieza"
	UnitPaquete   Unit = "paquete"
	UnitMililitro Unit = "ml"
	UnitLitro     Unit = "l"
	UnitGramo     Unit = "g"
	UnitKilogramo Unit = "kg"
)

// ParseUnit valida una unidad de medida.
func ParseUnit(s string) (Unit, error) {
	switch u := Unit(s); u {
	case UnitPieza, UnitPaquete, UnitMililitro, UnitLitro, UnitGramo, UnitKilogramo:
		return u, nil
	}
	return "", fmt.Errorf("unidad desconocida %q", s)
}

// Ingredient representa un insumo del catálogo con su stock actual por área.
// El catálogo nunca lo borra físicamente: se desactiva con IsActive=false.
type Ingredient struct {
	ID           string
	SKU          string
	Name         string
	Unit         Unit
	UnitCost     decimal.Decimal
	MinimumStock decimal.Decimal // 0 = usar el umbral por defecto
	Stocks       Stocks
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TotalQuantity suma el stock de las cuatro áreas.
func (i *Ingredient) TotalQuantity() decimal.Decimal { return i.Stocks.Total() }

// TotalValue valor del stock total al costo unitario vigente.
func (i *Ingredient) TotalValue() decimal.Decimal { return i.Stocks.Total().Mul(i.UnitCost) }

// StockUpdate operación del ledger: reemplaza la cantidad de un área para un ingrediente.
type StockUpdate struct {
	IngredientID string
	Area         Area
	Quantity     decimal.Decimal
}

// LedgerEntry fila de lectura del ledger: una cantidad de un ingrediente en un área,
// con los datos de catálogo vigentes al momento de la lectura.
type LedgerEntry struct {
	IngredientID string
	Name         string
	SKU          string
	Unit         Unit
	UnitCost     decimal.Decimal
	Area         Area
	Quantity     decimal.Decimal
}
