package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-cocina/internal/application/dto"
	"github.com/jhoicas/inventario-cocina/internal/application/inventory"
	"github.com/jhoicas/inventario-cocina/internal/domain"
)

// StockHandler ledger de stock por área.
type StockHandler struct {
	uc *inventory.LedgerUseCase
}

// NewStockHandler construye el handler.
func NewStockHandler(uc *inventory.LedgerUseCase) *StockHandler {
	return &StockHandler{uc: uc}
}

// SetAreaStock godoc
// @Summary      Fijar la cantidad de un área
// @Description  Reemplaza la cantidad (no suma). Áreas: almacen, cocina, ensalada, isla.
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        ingredientId  path  string               true  "ID del ingrediente"
// @Param        area          path  string               true  "Área"
// @Param        body          body  dto.SetStockRequest  true  "Cantidad"
// @Success      200  {object}  dto.IngredientResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stock/{ingredientId}/{area} [put]
func (h *StockHandler) SetAreaStock(c *fiber.Ctx) error {
	var in dto.SetStockRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.SetAreaStock(c.UserContext(), GetUserID(c), c.Params("ingredientId"), c.Params("area"), in.Quantity)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// BulkSetAreaStock godoc
// @Summary      Fijar cantidades en lote
// @Description  Cada operación es independiente. 207 si alguna falló; el cuerpo trae el resultado por ítem.
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.BulkStockRequest  true  "Operaciones"
// @Success      200  {object}  inventory.BatchResult
// @Success      207  {object}  inventory.BatchResult
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/stock/bulk [post]
func (h *StockHandler) BulkSetAreaStock(c *fiber.Ctx) error {
	var in dto.BulkStockRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.BulkSetAreaStock(c.UserContext(), GetUserID(c), in.Updates)
	if err != nil {
		if errors.Is(err, domain.ErrPartialFailure) && out != nil {
			return c.Status(fiber.StatusMultiStatus).JSON(out)
		}
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Dashboard godoc
// @Summary      Totales del inventario
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.DashboardResponse
// @Router       /api/stock/dashboard [get]
func (h *StockHandler) Dashboard(c *fiber.Ctx) error {
	out, err := h.uc.DashboardTotals(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// LowStock godoc
// @Summary      Ingredientes con stock bajo
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.LowStockResponse
// @Router       /api/stock/low-stock [get]
func (h *StockHandler) LowStock(c *fiber.Ctx) error {
	out, err := h.uc.LowStock(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// CheckLowStock godoc
// @Summary      Revisar stock bajo y notificar
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.LowStockCheckResponse
// @Router       /api/stock/low-stock/check [post]
func (h *StockHandler) CheckLowStock(c *fiber.Ctx) error {
	out, err := h.uc.CheckLowStock(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
