package ledger_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-cocina/internal/domain/entity"
	"github.com/jhoicas/inventario-cocina/internal/domain/ledger"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func ingredient(id, cost, min string, almacen, cocina, ensalada, isla string) *entity.Ingredient {
	ing := &entity.Ingredient{ID: id, Name: "ing-" + id, UnitCost: d(cost), MinimumStock: d(min), IsActive: true}
	ing.Stocks.Set(entity.AreaAlmacen, d(almacen))
	ing.Stocks.Set(entity.AreaCocina, d(cocina))
	ing.Stocks.Set(entity.AreaEnsalada, d(ensalada))
	ing.Stocks.Set(entity.AreaIsla, d(isla))
	return ing
}

func TestComputeTotals(t *testing.T) {
	ings := []*entity.Ingredient{
		ingredient("a", "10", "0", "5", "0", "0", "0"),
		ingredient("b", "2.5", "0", "1", "2", "3", "4"),
		ingredient("c", "100", "0", "0", "0", "0", "0"),
	}
	totals := ledger.ComputeTotals(ings)

	// a: 5×10=50; b: 10×2.5=25; c: 0
	assert.True(t, totals.TotalValue.Equal(d("75")), totals.TotalValue.String())
	assert.Equal(t, 3, totals.TotalIngredients)
	assert.Equal(t, 2, totals.InStockCount)
	assert.True(t, totals.ValueByArea[entity.AreaAlmacen].Equal(d("52.5")))
	assert.True(t, totals.ValueByArea[entity.AreaIsla].Equal(d("10")))

	sum := decimal.Zero
	for _, v := range totals.ValueByArea {
		sum = sum.Add(v)
	}
	assert.True(t, sum.Equal(totals.TotalValue), "la suma por área cuadra con el total")
}

func TestComputeTotals_Vacio(t *testing.T) {
	totals := ledger.ComputeTotals(nil)
	assert.True(t, totals.TotalValue.IsZero())
	assert.Len(t, totals.ValueByArea, 4)
}

func TestFindLowStock_SeveridadYListaPlana(t *testing.T) {
	ings := []*entity.Ingredient{
		// umbral 10: almacen 0 → critical, cocina 4 → high, ensalada 7 → medium, isla 10 → no
		ingredient("a", "1", "10", "0", "4", "7", "10"),
	}
	alerts := ledger.FindLowStock(ings, d("3"))
	require.Len(t, alerts, 3, "una fila por (ingrediente, área)")

	bySev := map[entity.Area]ledger.Severity{}
	for _, a := range alerts {
		bySev[a.Area] = a.Severity
		assert.Equal(t, "a", a.IngredientID)
		assert.True(t, a.Threshold.Equal(d("10")))
	}
	assert.Equal(t, ledger.SeverityCritical, bySev[entity.AreaAlmacen])
	assert.Equal(t, ledger.SeverityHigh, bySev[entity.AreaCocina])
	assert.Equal(t, ledger.SeverityMedium, bySev[entity.AreaEnsalada])
	_, flagged := bySev[entity.AreaIsla]
	assert.False(t, flagged)
}

func TestFindLowStock_UmbralPorDefectoEInactivos(t *testing.T) {
	sinMinimo := ingredient("a", "1", "0", "2", "5", "5", "5")
	inactivo := ingredient("b", "1", "10", "0", "0", "0", "0")
	inactivo.IsActive = false

	alerts := ledger.FindLowStock([]*entity.Ingredient{sinMinimo, inactivo}, d("5"))
	require.Len(t, alerts, 1)
	assert.Equal(t, entity.AreaAlmacen, alerts[0].Area)
	assert.Equal(t, ledger.SeverityHigh, alerts[0].Severity) // 2 < 5/2
}

func TestFindLowStock_NuncaReportaCantidadSobreUmbral(t *testing.T) {
	var ings []*entity.Ingredient
	for i, q := range []string{"0", "0.5", "4.99", "5", "5.01", "50"} {
		ings = append(ings, ingredient(string(rune('a'+i)), "1", "5", q, q, q, q))
	}
	for _, a := range ledger.FindLowStock(ings, d("1")) {
		assert.True(t, a.Quantity.LessThan(a.Threshold), "%s/%s=%s", a.IngredientID, a.Area, a.Quantity)
	}
}

func TestWorse(t *testing.T) {
	assert.Equal(t, ledger.SeverityCritical, ledger.Worse(ledger.SeverityMedium, ledger.SeverityCritical))
	assert.Equal(t, ledger.SeverityHigh, ledger.Worse(ledger.SeverityHigh, ledger.SeverityMedium))
}
