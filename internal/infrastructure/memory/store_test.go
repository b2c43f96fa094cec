package memory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-cocina/internal/domain"
	"github.com/jhoicas/inventario-cocina/internal/domain/entity"
	"github.com/jhoicas/inventario-cocina/internal/domain/repository"
	"github.com/jhoicas/inventario-cocina/internal/infrastructure/memory"
)

func seedIngredient(t *testing.T, s *memory.Store, id, name string, active bool) {
	t.Helper()
	require.NoError(t, s.Ingredients().Create(context.Background(), &entity.Ingredient{
		ID: id, SKU: "SKU-" + id, Name: name, Unit: entity.UnitGramo, UnitCost: decimal.NewFromInt(1), IsActive: active,
	}))
}

func TestIngredientRepository_SKUUnico(t *testing.T) {
	s := memory.NewStore()
	seedIngredient(t, s, "a", "Ajo", true)

	err := s.Ingredients().Create(context.Background(), &entity.Ingredient{ID: "b", SKU: "SKU-a", Name: "Otro"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	missing, err := s.Ingredients().GetByID(context.Background(), "zz")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestIngredientRepository_UpdateNoTocaStock(t *testing.T) {
	s := memory.NewStore()
	seedIngredient(t, s, "a", "Ajo", true)
	ctx := context.Background()
	require.NoError(t, s.Stocks().SetQuantity(ctx, "a", entity.AreaCocina, decimal.NewFromInt(4)))

	ing, _ := s.Ingredients().GetByID(ctx, "a")
	ing.Stocks = entity.Stocks{}
	ing.Name = "Ajo morado"
	require.NoError(t, s.Ingredients().Update(ctx, ing))

	got, _ := s.Ingredients().GetByID(ctx, "a")
	assert.Equal(t, "Ajo morado", got.Name)
	assert.True(t, got.Stocks.Get(entity.AreaCocina).Equal(decimal.NewFromInt(4)))
}

func TestStockRepository_ListEntries(t *testing.T) {
	s := memory.NewStore()
	seedIngredient(t, s, "b", "Berro", true)
	seedIngredient(t, s, "a", "Apio", true)
	seedIngredient(t, s, "x", "Xoconostle", false)
	ctx := context.Background()
	stocks := s.Stocks()
	require.NoError(t, stocks.SetQuantity(ctx, "b", entity.AreaIsla, decimal.NewFromInt(1)))
	require.NoError(t, stocks.SetQuantity(ctx, "b", entity.AreaAlmacen, decimal.NewFromInt(2)))
	require.NoError(t, stocks.SetQuantity(ctx, "a", entity.AreaCocina, decimal.NewFromInt(3)))
	require.NoError(t, stocks.SetQuantity(ctx, "x", entity.AreaCocina, decimal.NewFromInt(9)))
	assert.ErrorIs(t, stocks.SetQuantity(ctx, "zz", entity.AreaCocina, decimal.NewFromInt(1)), domain.ErrNotFound)

	all, err := stocks.ListEntries(ctx, nil)
	require.NoError(t, err)
	require.Len(t, all, 3, "sin inactivos ni ceros")
	assert.Equal(t, "a", all[0].IngredientID)
	assert.Equal(t, entity.AreaAlmacen, all[1].Area)
	assert.Equal(t, entity.AreaIsla, all[2].Area)

	cocina := entity.AreaCocina
	only, err := stocks.ListEntries(ctx, &cocina)
	require.NoError(t, err)
	require.Len(t, only, 1)
	assert.Equal(t, "a", only[0].IngredientID)
}

func TestTxRunner_CommitYRollback(t *testing.T) {
	s := memory.NewStore()
	seedIngredient(t, s, "a", "Apio", true)
	ctx := context.Background()
	require.NoError(t, s.Stocks().SetQuantity(ctx, "a", entity.AreaIsla, decimal.NewFromInt(5)))

	boom := errors.New("boom")
	err := s.TxRunner().Run(ctx, func(stockRepo repository.StockRepository, snapshotRepo repository.SnapshotRepository) error {
		require.NoError(t, snapshotRepo.Create(ctx, &entity.Snapshot{ID: "s1"}))
		n, err := stockRepo.ResetAll(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(1), n)
		return boom
	})
	require.ErrorIs(t, err, boom)

	got, _ := s.Snapshots().GetByID(ctx, "s1")
	assert.Nil(t, got, "rollback")
	ing, _ := s.Ingredients().GetByID(ctx, "a")
	assert.True(t, ing.Stocks.Get(entity.AreaIsla).Equal(decimal.NewFromInt(5)))

	err = s.TxRunner().Run(ctx, func(stockRepo repository.StockRepository, snapshotRepo repository.SnapshotRepository) error {
		if err := snapshotRepo.Create(ctx, &entity.Snapshot{ID: "s2"}); err != nil {
			return err
		}
		_, err := stockRepo.ResetAll(ctx)
		return err
	})
	require.NoError(t, err)

	got, _ = s.Snapshots().GetByID(ctx, "s2")
	assert.NotNil(t, got, "commit")
	ing, _ = s.Ingredients().GetByID(ctx, "a")
	assert.True(t, ing.Stocks.Get(entity.AreaIsla).IsZero())
}

func TestStockRepository_ResetAllIgnoraInactivos(t *testing.T) {
	s := memory.NewStore()
	seedIngredient(t, s, "a", "Apio", true)
	seedIngredient(t, s, "b", "Berro", false)
	ctx := context.Background()
	require.NoError(t, s.Stocks().SetQuantity(ctx, "a", entity.AreaCocina, decimal.NewFromInt(3)))
	require.NoError(t, s.Stocks().SetQuantity(ctx, "b", entity.AreaCocina, decimal.NewFromInt(4)))

	n, err := s.Stocks().ResetAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	b, _ := s.Ingredients().GetByID(ctx, "b")
	assert.True(t, b.Stocks.Get(entity.AreaCocina).Equal(decimal.NewFromInt(4)))
}

func TestTxRunner_EscrituraConcurrenteEsperaAlCierre(t *testing.T) {
	s := memory.NewStore()
	seedIngredient(t, s, "a", "Apio", true)
	ctx := context.Background()
	require.NoError(t, s.Stocks().SetQuantity(ctx, "a", entity.AreaAlmacen, decimal.NewFromInt(5)))

	done := make(chan error, 1)
	err := s.TxRunner().Run(ctx, func(stockRepo repository.StockRepository, _ repository.SnapshotRepository) error {
		entries, err := stockRepo.ListEntries(ctx, nil)
		require.NoError(t, err)
		require.Len(t, entries, 1)

		go func() { done <- s.Stocks().SetQuantity(ctx, "a", entity.AreaAlmacen, decimal.NewFromInt(9)) }()
		select {
		case <-done:
			t.Fatal("la escritura no debe completarse durante el cierre")
		case <-time.After(50 * time.Millisecond):
		}
		_, err = stockRepo.ResetAll(ctx)
		return err
	})
	require.NoError(t, err)
	require.NoError(t, <-done)

	ing, _ := s.Ingredients().GetByID(ctx, "a")
	assert.True(t, ing.Stocks.Get(entity.AreaAlmacen).Equal(decimal.NewFromInt(9)), "la escritura posterior al cierre se conserva")
}
