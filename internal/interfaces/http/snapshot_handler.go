package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-cocina/internal/application/dto"
	"github.com/jhoicas/inventario-cocina/internal/application/snapshot"
)

// SnapshotHandler fotos de inventario, cierre de periodo y comparación.
type SnapshotHandler struct {
	uc *snapshot.UseCase
}

// NewSnapshotHandler construye el handler.
func NewSnapshotHandler(uc *snapshot.UseCase) *SnapshotHandler {
	return &SnapshotHandler{uc: uc}
}

// Create godoc
// @Summary      Tomar una foto del inventario
// @Tags         snapshots
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateSnapshotRequest  true  "Nombre, descripción y alcance"
// @Success      201   {object}  dto.SnapshotResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/snapshots [post]
func (h *SnapshotHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateSnapshotRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ClosePeriod godoc
// @Summary      Cerrar periodo
// @Description  Toma una foto de todas las áreas y deja el stock en cero, de forma atómica.
// @Tags         snapshots
// @Security     Bearer
// @Produce      json
// @Success      201  {object}  dto.ClosePeriodResponse
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/snapshots/close-period [post]
func (h *SnapshotHandler) ClosePeriod(c *fiber.Ctx) error {
	out, err := h.uc.ClosePeriod(c.UserContext(), GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar fotos (más recientes primero)
// @Tags         snapshots
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite (default 20)"
// @Param        offset  query  int  false  "Offset"
// @Success      200  {object}  dto.SnapshotListResponse
// @Router       /api/snapshots [get]
func (h *SnapshotHandler) List(c *fiber.Ctx) error {
	p := page(c)
	out, err := h.uc.List(c.UserContext(), p.Limit, p.Offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Get godoc
// @Summary      Obtener foto con sus ítems
// @Tags         snapshots
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la foto"
// @Success      200  {object}  dto.SnapshotResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/snapshots/{id} [get]
func (h *SnapshotHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Compare godoc
// @Summary      Comparar dos fotos
// @Tags         snapshots
// @Security     Bearer
// @Produce      json
// @Param        from  query  string  true  "Foto A"
// @Param        to    query  string  true  "Foto B"
// @Success      200  {object}  dto.ComparisonResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/snapshots/compare [get]
func (h *SnapshotHandler) Compare(c *fiber.Ctx) error {
	out, err := h.uc.Compare(c.UserContext(), c.Query("from"), c.Query("to"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar foto
// @Tags         snapshots
// @Security     Bearer
// @Param        id   path  string  true  "ID de la foto"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/snapshots/{id} [delete]
func (h *SnapshotHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), GetUserID(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ExportPDF godoc
// @Summary      Descargar la foto en PDF
// @Tags         snapshots
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "ID de la foto"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/snapshots/{id}/pdf [get]
func (h *SnapshotHandler) ExportPDF(c *fiber.Ctx) error {
	data, filename, err := h.uc.ExportPDF(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(data)
}
