package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-cocina/internal/application/audit"
	"github.com/jhoicas/inventario-cocina/internal/application/inventory"
	"github.com/jhoicas/inventario-cocina/internal/application/notification"
	"github.com/jhoicas/inventario-cocina/internal/application/snapshot"
	"github.com/jhoicas/inventario-cocina/internal/application/usecase"
	"github.com/jhoicas/inventario-cocina/internal/domain/entity"
	"github.com/jhoicas/inventario-cocina/internal/infrastructure/memory"
	"github.com/jhoicas/inventario-cocina/internal/infrastructure/pdf"
	apphttp "github.com/jhoicas/inventario-cocina/internal/interfaces/http"
	"github.com/jhoicas/inventario-cocina/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

// buildAPI arma la API completa sobre el almacén en memoria.
func buildAPI(t *testing.T) (*fiber.App, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	log := logger.Nop()
	rec := audit.NewRecorder(store.Audit(), log)
	notifier := notification.NewUseCase(store.Notifications(), nil, 0, log)

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		ServiceName:    "inventario-cocina-test",
		IngredientUC:   usecase.NewIngredientUseCase(store.Ingredients(), rec),
		LedgerUC:       inventory.NewLedgerUseCase(store.Ingredients(), store.Stocks(), rec, notifier, decimal.NewFromInt(10), log),
		SnapshotUC:     snapshot.NewUseCase(store.Stocks(), store.Snapshots(), store.TxRunner(), rec, pdf.NewSnapshotPDFGenerator("Cocina")),
		NotificationUC: notifier,
		AuditRecorder:  rec,
		JWTSecret:      testJWTSecret,
	})
	return app, store
}

func call(t *testing.T, app *fiber.App, method, path, role string, body any) (*http.Response, []byte) {
	t.Helper()
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if role != "" {
		req.Header.Set("Authorization", tokenForRole(t, role))
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	out, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, out
}

func seedIngredient(t *testing.T, store *memory.Store, id, cost string) {
	t.Helper()
	require.NoError(t, store.Ingredients().Create(context.Background(), &entity.Ingredient{
		ID: id, SKU: "SKU-" + id, Name: id, Unit: entity.UnitKilogramo,
		UnitCost: decimal.RequireFromString(cost), IsActive: true,
	}))
}

// ──────────────────────────────────────────────────────────────────────────────
// Salud y autenticación
// ──────────────────────────────────────────────────────────────────────────────

func TestRouter_Health_Publico(t *testing.T) {
	app, _ := buildAPI(t)
	resp, body := call(t, app, http.MethodGet, "/health", "", nil)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `"status":"ok"`)
}

func TestRouter_APISinToken_Retorna401(t *testing.T) {
	app, _ := buildAPI(t)
	resp, _ := call(t, app, http.MethodGet, "/api/stock/dashboard", "", nil)

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Catálogo
// ──────────────────────────────────────────────────────────────────────────────

func TestRouter_Ingredientes_CrearYDuplicado(t *testing.T) {
	app, _ := buildAPI(t)
	in := map[string]any{"sku": "TOM-01", "name": "Tomate", "unit": "kg", "unit_cost": 2.5}

	resp, body := call(t, app, http.MethodPost, "/api/ingredients", "encargado", in)
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))

	resp, body = call(t, app, http.MethodPost, "/api/ingredients", "encargado", in)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Contains(t, string(body), "DUPLICATE")
}

func TestRouter_Ingredientes_CocineroNoPuedeCrear(t *testing.T) {
	app, _ := buildAPI(t)
	resp, _ := call(t, app, http.MethodPost, "/api/ingredients", "cocinero",
		map[string]any{"sku": "X", "name": "X", "unit": "kg"})

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestRouter_Ingredientes_Inexistente404(t *testing.T) {
	app, _ := buildAPI(t)
	resp, body := call(t, app, http.MethodGet, "/api/ingredients/nope", "cocinero", nil)

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Contains(t, string(body), "NOT_FOUND")
}

// ──────────────────────────────────────────────────────────────────────────────
// Ledger de stock
// ──────────────────────────────────────────────────────────────────────────────

func TestRouter_Stock_FijarCantidad(t *testing.T) {
	app, store := buildAPI(t)
	seedIngredient(t, store, "tomate", "2")

	resp, body := call(t, app, http.MethodPut, "/api/stock/tomate/ALMACEN", "cocinero", map[string]any{"quantity": 12})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))

	ing, err := store.Ingredients().GetByID(context.Background(), "tomate")
	require.NoError(t, err)
	assert.True(t, ing.Stocks.Get(entity.AreaAlmacen).Equal(decimal.NewFromInt(12)))
}

func TestRouter_Stock_AreaInvalida400(t *testing.T) {
	app, store := buildAPI(t)
	seedIngredient(t, store, "tomate", "2")

	resp, body := call(t, app, http.MethodPut, "/api/stock/tomate/bodega", "cocinero", map[string]any{"quantity": 1})

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, string(body), "VALIDATION")
}

func TestRouter_Stock_BulkParcial207(t *testing.T) {
	app, store := buildAPI(t)
	seedIngredient(t, store, "tomate", "2")

	resp, body := call(t, app, http.MethodPost, "/api/stock/bulk", "cocinero", map[string]any{
		"updates": []map[string]any{
			{"ingredient_id": "tomate", "area": "cocina", "quantity": 3},
			{"ingredient_id": "fantasma", "area": "isla", "quantity": 1},
		},
	})
	require.Equal(t, http.StatusMultiStatus, resp.StatusCode, string(body))

	var out inventory.BatchResult
	require.NoError(t, json.Unmarshal(body, &out))
	assert.Equal(t, 2, out.Total)
	assert.Equal(t, 1, out.Applied)
	assert.Equal(t, 1, out.Failed)
	assert.Equal(t, "NOT_FOUND", out.Outcomes[1].Code)
}

func TestRouter_Stock_Dashboard(t *testing.T) {
	app, store := buildAPI(t)
	seedIngredient(t, store, "tomate", "2")
	require.NoError(t, store.Stocks().SetQuantity(context.Background(), "tomate", entity.AreaCocina, decimal.NewFromInt(5)))

	resp, body := call(t, app, http.MethodGet, "/api/stock/dashboard", "cocinero", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out map[string]any
	require.NoError(t, json.Unmarshal(body, &out))
	assert.Equal(t, "10", out["total_value"])
}

// ──────────────────────────────────────────────────────────────────────────────
// Fotos y cierre de periodo
// ──────────────────────────────────────────────────────────────────────────────

func TestRouter_Snapshots_CierreSoloAdmin(t *testing.T) {
	app, store := buildAPI(t)
	seedIngredient(t, store, "tomate", "2")
	require.NoError(t, store.Stocks().SetQuantity(context.Background(), "tomate", entity.AreaIsla, decimal.NewFromInt(4)))

	resp, _ := call(t, app, http.MethodPost, "/api/snapshots/close-period", "encargado", nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, body := call(t, app, http.MethodPost, "/api/snapshots/close-period", "admin", nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))

	var out struct {
		Snapshot  struct{ ID string } `json:"snapshot"`
		ResetRows int64               `json:"reset_rows"`
	}
	require.NoError(t, json.Unmarshal(body, &out))
	assert.NotEmpty(t, out.Snapshot.ID)
	assert.Equal(t, int64(1), out.ResetRows)

	ing, err := store.Ingredients().GetByID(context.Background(), "tomate")
	require.NoError(t, err)
	assert.True(t, ing.Stocks.Total().IsZero())
}

func TestRouter_Snapshots_CrearObtenerComparar(t *testing.T) {
	app, store := buildAPI(t)
	ctx := context.Background()
	seedIngredient(t, store, "tomate", "2")
	require.NoError(t, store.Stocks().SetQuantity(ctx, "tomate", entity.AreaCocina, decimal.NewFromInt(10)))

	resp, body := call(t, app, http.MethodPost, "/api/snapshots", "encargado", map[string]any{"name": "A"})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
	var a struct{ ID string }
	require.NoError(t, json.Unmarshal(body, &a))

	require.NoError(t, store.Stocks().SetQuantity(ctx, "tomate", entity.AreaCocina, decimal.NewFromInt(15)))
	resp, body = call(t, app, http.MethodPost, "/api/snapshots", "admin", map[string]any{"name": "B", "scope": "cocina"})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
	var b struct{ ID string }
	require.NoError(t, json.Unmarshal(body, &b))

	resp, body = call(t, app, http.MethodGet, "/api/snapshots/"+a.ID, "cocinero", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `"items"`)

	resp, body = call(t, app, http.MethodGet, "/api/snapshots/compare?from="+a.ID+"&to="+b.ID, "cocinero", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	var cmp struct {
		Rows []struct {
			Difference    string `json:"difference"`
			PercentChange string `json:"percent_change"`
		} `json:"rows"`
	}
	require.NoError(t, json.Unmarshal(body, &cmp))
	require.Len(t, cmp.Rows, 1)
	assert.Equal(t, "5", cmp.Rows[0].Difference)
	assert.Equal(t, "50", cmp.Rows[0].PercentChange)
}

func TestRouter_Snapshots_PDFyBorrado(t *testing.T) {
	app, _ := buildAPI(t)

	resp, body := call(t, app, http.MethodPost, "/api/snapshots", "admin", map[string]any{"name": "vacía"})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
	var s struct{ ID string }
	require.NoError(t, json.Unmarshal(body, &s))

	resp, body = call(t, app, http.MethodGet, "/api/snapshots/"+s.ID+"/pdf", "cocinero", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(body, []byte("%PDF")))

	resp, _ = call(t, app, http.MethodDelete, "/api/snapshots/"+s.ID, "encargado", nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, _ = call(t, app, http.MethodDelete, "/api/snapshots/"+s.ID, "admin", nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, _ = call(t, app, http.MethodGet, "/api/snapshots/"+s.ID, "admin", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Notificaciones y bitácora
// ──────────────────────────────────────────────────────────────────────────────

func TestRouter_StockBajo_NotificaYMarcaLeida(t *testing.T) {
	app, store := buildAPI(t)
	seedIngredient(t, store, "tomate", "2")

	resp, body := call(t, app, http.MethodPost, "/api/stock/low-stock/check", "encargado", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	var check struct {
		NotificationsCreated int `json:"notifications_created"`
	}
	require.NoError(t, json.Unmarshal(body, &check))
	assert.Equal(t, 1, check.NotificationsCreated)

	resp, body = call(t, app, http.MethodGet, "/api/notifications?unread=true", "cocinero", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var list struct {
		Items []struct{ ID string } `json:"items"`
	}
	require.NoError(t, json.Unmarshal(body, &list))
	require.Len(t, list.Items, 1)

	resp, _ = call(t, app, http.MethodPatch, "/api/notifications/"+list.Items[0].ID+"/read", "cocinero", nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
}

func TestRouter_Bitacora_SoloAdmin(t *testing.T) {
	app, store := buildAPI(t)
	seedIngredient(t, store, "tomate", "2")
	resp, _ := call(t, app, http.MethodPut, "/api/stock/tomate/isla", "cocinero", map[string]any{"quantity": 2})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = call(t, app, http.MethodGet, "/api/audit-logs", "cocinero", nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, body := call(t, app, http.MethodGet, "/api/audit-logs", "admin", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "stock.update")
}
