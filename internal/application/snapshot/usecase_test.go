package snapshot_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-cocina/internal/application/audit"
	"github.com/jhoicas/inventario-cocina/internal/application/dto"
	"github.com/jhoicas/inventario-cocina/internal/application/snapshot"
	"github.com/jhoicas/inventario-cocina/internal/domain"
	"github.com/jhoicas/inventario-cocina/internal/domain/entity"
	"github.com/jhoicas/inventario-cocina/internal/domain/repository"
	"github.com/jhoicas/inventario-cocina/internal/infrastructure/memory"
	"github.com/jhoicas/inventario-cocina/pkg/logger"
)

type fakePDF struct{}

func (fakePDF) SnapshotPDF(s *entity.Snapshot) ([]byte, error) {
	return []byte("%PDF-" + s.Name), nil
}

var fixedNow = time.Date(2026, 3, 31, 22, 15, 0, 0, time.UTC)

func newUseCase(store *memory.Store, tx snapshot.TxRunner) *snapshot.UseCase {
	rec := audit.NewRecorder(store.Audit(), logger.Nop())
	return snapshot.NewUseCase(store.Stocks(), store.Snapshots(), tx, rec, fakePDF{}).
		WithClock(func() time.Time { return fixedNow })
}

func seed(t *testing.T, store *memory.Store, id, cost string, stocks map[entity.Area]string) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, store.Ingredients().Create(ctx, &entity.Ingredient{
		ID:       id,
		SKU:      "SKU-" + id,
		Name:     id,
		Unit:     entity.UnitKilogramo,
		UnitCost: decimal.RequireFromString(cost),
		IsActive: true,
	}))
	for a, q := range stocks {
		require.NoError(t, store.Stocks().SetQuantity(ctx, id, a, decimal.RequireFromString(q)))
	}
}

func ledgerState(t *testing.T, store *memory.Store) map[string]entity.Stocks {
	t.Helper()
	list, _, err := store.Ingredients().List(context.Background(), repository.IngredientFilter{}, 0, 0)
	require.NoError(t, err)
	out := make(map[string]entity.Stocks, len(list))
	for _, ing := range list {
		out[ing.ID] = ing.Stocks
	}
	return out
}

// ──────────────────────────────────────────────────────────────────────────────
// Create
// ──────────────────────────────────────────────────────────────────────────────

func TestCreate_NoModificaElLedger(t *testing.T) {
	store := memory.NewStore()
	seed(t, store, "arroz", "3", map[entity.Area]string{entity.AreaAlmacen: "10", entity.AreaCocina: "2"})
	seed(t, store, "aceite", "8", map[entity.Area]string{entity.AreaIsla: "1.5"})
	uc := newUseCase(store, store.TxRunner())
	before := ledgerState(t, store)

	out, err := uc.Create(context.Background(), "u1", dto.CreateSnapshotRequest{Name: "  Inventario semanal "})
	require.NoError(t, err)

	assert.Equal(t, "Inventario semanal", out.Name)
	assert.Equal(t, "all", out.Scope)
	assert.Equal(t, "final", out.Status)
	assert.Equal(t, "u1", out.CreatedBy)
	require.Len(t, out.Items, 2)
	assert.Equal(t, 2, out.Summary.TotalItems)
	assert.True(t, out.Summary.TotalQuantity.Equal(decimal.RequireFromString("13.5")))
	assert.True(t, out.Summary.TotalValue.Equal(decimal.NewFromInt(48)))

	after := ledgerState(t, store)
	for id, s := range before {
		for _, a := range entity.Areas {
			assert.True(t, s.Get(a).Equal(after[id].Get(a)), "%s/%s", id, a)
		}
	}
}

func TestCreate_PorArea(t *testing.T) {
	store := memory.NewStore()
	seed(t, store, "arroz", "3", map[entity.Area]string{entity.AreaAlmacen: "10", entity.AreaCocina: "2"})
	seed(t, store, "aceite", "8", map[entity.Area]string{entity.AreaIsla: "1.5"})
	uc := newUseCase(store, store.TxRunner())

	out, err := uc.Create(context.Background(), "u1", dto.CreateSnapshotRequest{Name: "Cocina", Scope: "COCINA"})
	require.NoError(t, err)
	assert.Equal(t, "cocina", out.Scope)
	require.Len(t, out.Items, 1)
	assert.Equal(t, "arroz", out.Items[0].IngredientID)
	assert.True(t, out.Items[0].Quantity.Equal(decimal.NewFromInt(2)))
}

func TestCreate_Validacion(t *testing.T) {
	store := memory.NewStore()
	uc := newUseCase(store, store.TxRunner())
	ctx := context.Background()

	_, err := uc.Create(ctx, "u1", dto.CreateSnapshotRequest{Name: "   "})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Create(ctx, "u1", dto.CreateSnapshotRequest{Name: "x", Scope: "patio"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, total, err := store.Snapshots().List(ctx, 0, 0)
	require.NoError(t, err)
	assert.Zero(t, total)
}

func TestCreate_FotoNoCambiaConElCatalogo(t *testing.T) {
	store := memory.NewStore()
	seed(t, store, "queso", "10", map[entity.Area]string{entity.AreaCocina: "2"})
	uc := newUseCase(store, store.TxRunner())
	ctx := context.Background()

	out, err := uc.Create(ctx, "u1", dto.CreateSnapshotRequest{Name: "antes"})
	require.NoError(t, err)

	ing, _ := store.Ingredients().GetByID(ctx, "queso")
	ing.UnitCost = decimal.NewFromInt(99)
	ing.Name = "queso fresco"
	require.NoError(t, store.Ingredients().Update(ctx, ing))

	got, err := uc.Get(ctx, out.ID)
	require.NoError(t, err)
	assert.Equal(t, "queso", got.Items[0].Name)
	assert.True(t, got.Items[0].UnitCost.Equal(decimal.NewFromInt(10)))
}

// ──────────────────────────────────────────────────────────────────────────────
// ClosePeriod
// ──────────────────────────────────────────────────────────────────────────────

func TestClosePeriod_CapturaYPoneEnCero(t *testing.T) {
	store := memory.NewStore()
	seed(t, store, "X", "10", map[entity.Area]string{entity.AreaAlmacen: "5"})
	seed(t, store, "Y", "2", map[entity.Area]string{entity.AreaCocina: "3", entity.AreaEnsalada: "1", entity.AreaIsla: "7"})
	uc := newUseCase(store, store.TxRunner())
	ctx := context.Background()

	out, err := uc.ClosePeriod(ctx, "admin")
	require.NoError(t, err)

	assert.Equal(t, "Cierre 2026-03-31 22:15", out.Snapshot.Name)
	assert.Equal(t, "all", out.Snapshot.Scope)
	assert.Equal(t, int64(4), out.ResetRows)
	require.Len(t, out.Snapshot.Items, 2)
	x := out.Snapshot.Items[0]
	assert.Equal(t, "X", x.IngredientID)
	assert.True(t, x.Quantity.Equal(decimal.NewFromInt(5)))
	assert.True(t, x.TotalValue.Equal(decimal.NewFromInt(50)))

	for id, s := range ledgerState(t, store) {
		for _, a := range entity.Areas {
			assert.True(t, s.Get(a).IsZero(), "%s/%s", id, a)
		}
	}

	persisted, err := uc.Get(ctx, out.Snapshot.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, persisted.Summary.TotalItems)

	logs, _, err := store.Audit().List(ctx, 0, 0)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, entity.ActionClosePeriod, logs[0].Action)
	assert.Equal(t, 2, logs[0].Details["total_items"])
}

func TestClosePeriod_IngredienteInactivoConservaStock(t *testing.T) {
	store := memory.NewStore()
	seed(t, store, "x", "10", map[entity.Area]string{entity.AreaAlmacen: "5"})
	seed(t, store, "y", "2", map[entity.Area]string{entity.AreaCocina: "7"})
	ctx := context.Background()
	require.NoError(t, store.Ingredients().SetActive(ctx, "y", false))
	uc := newUseCase(store, store.TxRunner())

	out, err := uc.ClosePeriod(ctx, "admin")
	require.NoError(t, err)

	require.Len(t, out.Snapshot.Items, 1)
	assert.Equal(t, "x", out.Snapshot.Items[0].IngredientID)
	assert.Equal(t, int64(1), out.ResetRows)

	state := ledgerState(t, store)
	assert.True(t, state["x"].Get(entity.AreaAlmacen).IsZero())
	assert.True(t, state["y"].Get(entity.AreaCocina).Equal(decimal.NewFromInt(7)), "el stock no fotografiado no se borra")
}

// failingReset envuelve el ledger y falla al poner en cero.
type failingReset struct {
	repository.StockRepository
}

func (failingReset) ResetAll(context.Context) (int64, error) {
	return 0, errors.New("conexión perdida")
}

type failingTx struct {
	inner *memory.TxRunner
}

func (f failingTx) Run(ctx context.Context, fn func(repository.StockRepository, repository.SnapshotRepository) error) error {
	return f.inner.Run(ctx, func(stockRepo repository.StockRepository, snapshotRepo repository.SnapshotRepository) error {
		return fn(failingReset{stockRepo}, snapshotRepo)
	})
}

func TestClosePeriod_FalloEnElResetNoDejaFoto(t *testing.T) {
	store := memory.NewStore()
	seed(t, store, "X", "10", map[entity.Area]string{entity.AreaAlmacen: "5"})
	uc := newUseCase(store, failingTx{inner: store.TxRunner()})
	ctx := context.Background()

	_, err := uc.ClosePeriod(ctx, "admin")
	require.Error(t, err)

	_, total, err := store.Snapshots().List(ctx, 0, 0)
	require.NoError(t, err)
	assert.Zero(t, total, "la foto se revierte junto con el reset")

	x, _ := store.Ingredients().GetByID(ctx, "X")
	assert.True(t, x.Stocks.Get(entity.AreaAlmacen).Equal(decimal.NewFromInt(5)))
}

// ──────────────────────────────────────────────────────────────────────────────
// Compare / Get / Delete / ExportPDF
// ──────────────────────────────────────────────────────────────────────────────

func TestCompare(t *testing.T) {
	store := memory.NewStore()
	seed(t, store, "Y", "1", map[entity.Area]string{entity.AreaCocina: "10"})
	seed(t, store, "Z", "1", map[entity.Area]string{entity.AreaCocina: "4"})
	uc := newUseCase(store, store.TxRunner())
	ctx := context.Background()

	a, err := uc.Create(ctx, "u1", dto.CreateSnapshotRequest{Name: "A"})
	require.NoError(t, err)
	require.NoError(t, store.Stocks().SetQuantity(ctx, "Y", entity.AreaCocina, decimal.Zero))
	b, err := uc.Create(ctx, "u1", dto.CreateSnapshotRequest{Name: "B"})
	require.NoError(t, err)

	cmp, err := uc.Compare(ctx, a.ID, b.ID)
	require.NoError(t, err)
	require.Len(t, cmp.Rows, 1, "Z sin cambio se omite")
	row := cmp.Rows[0]
	assert.Equal(t, "Y", row.IngredientID)
	assert.True(t, row.Difference.Equal(decimal.NewFromInt(-10)))
	require.NotNil(t, row.PercentChange)
	assert.True(t, row.PercentChange.Equal(decimal.NewFromInt(-100)))
	assert.Equal(t, -1, cmp.Delta.Items)
	assert.Equal(t, "A", cmp.From.Name)

	_, err = uc.Compare(ctx, a.ID, "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = uc.Compare(ctx, "", b.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestDelete(t *testing.T) {
	store := memory.NewStore()
	uc := newUseCase(store, store.TxRunner())
	ctx := context.Background()

	s, err := uc.Create(ctx, "u1", dto.CreateSnapshotRequest{Name: "vacía"})
	require.NoError(t, err)
	assert.Empty(t, s.Items)

	require.NoError(t, uc.Delete(ctx, "admin", s.ID))
	_, err = uc.Get(ctx, s.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, uc.Delete(ctx, "admin", s.ID), domain.ErrNotFound)
}

func TestList_MasRecientesPrimeroSinItems(t *testing.T) {
	store := memory.NewStore()
	seed(t, store, "X", "1", map[entity.Area]string{entity.AreaIsla: "1"})
	rec := audit.NewRecorder(store.Audit(), logger.Nop())
	uc := snapshot.NewUseCase(store.Stocks(), store.Snapshots(), store.TxRunner(), rec, fakePDF{})
	ctx := context.Background()

	clock := fixedNow
	uc.WithClock(func() time.Time { clock = clock.Add(time.Minute); return clock })
	for _, n := range []string{"uno", "dos", "tres"} {
		_, err := uc.Create(ctx, "u1", dto.CreateSnapshotRequest{Name: n})
		require.NoError(t, err)
	}

	out, err := uc.List(ctx, 2, 0)
	require.NoError(t, err)
	require.Len(t, out.Items, 2)
	assert.Equal(t, 3, out.Page.Total)
	assert.Equal(t, "tres", out.Items[0].Name)
	assert.Nil(t, out.Items[0].Items)
}

func TestExportPDF(t *testing.T) {
	store := memory.NewStore()
	uc := newUseCase(store, store.TxRunner())
	ctx := context.Background()

	s, err := uc.Create(ctx, "u1", dto.CreateSnapshotRequest{Name: "mensual"})
	require.NoError(t, err)

	b, name, err := uc.ExportPDF(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-mensual", string(b))
	assert.Contains(t, name, "foto-20260331-2215-")

	_, _, err = uc.ExportPDF(ctx, "nada")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
