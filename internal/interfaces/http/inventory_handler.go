package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/uips-online/edutrack-api/internal/application/dto"
	"github.com/uips-online/edutrack-api/internal/application/inventory"
	"github.com/uips-online/edutrack-api/internal/domain"
	"github.com/uips-online/edutrack-api/internal/domain/repository"
)

// InventoryHandler maneja el catálogo: listado, alta, edición, borrado
// e importación masiva.
type InventoryHandler struct {
	uc *inventory.UseCase
}

// NewInventoryHandler construye el handler del catálogo.
func NewInventoryHandler(uc *inventory.UseCase) *InventoryHandler {
	return &InventoryHandler{uc: uc}
}

// List godoc
// @Summary      Listar catálogo
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        search    query  string  false  "busca en id, nombre, tipo, barcode, talla/fuente"
// @Param        itemType  query  string  false  "filtrar por tipo"
// @Param        page      query  int     false  "página (1)"
// @Param        limit     query  int     false  "tamaño de página; 0 = todo"
// @Param        all       query  bool    false  "true = sin paginar"
// @Success      200  {object}  dto.ItemListResponse
// @Router       /api/inventory [get]
func (h *InventoryHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return badBody(c)
	}
	page.Normalize()

	filter := repository.ItemFilter{
		Search:   c.Query("search"),
		ItemType: c.Query("itemType"),
	}
	if !page.Unpaged() {
		filter.Limit = page.Limit
		filter.Offset = (page.Page - 1) * page.Limit
	}

	items, total, err := h.uc.List(c.Context(), filter)
	if err != nil {
		return writeError(c, err)
	}

	data := make([]dto.ItemResponse, len(items))
	for i, it := range items {
		data[i] = dto.NewItemResponse(it)
	}
	pg := dto.Pagination{Total: total, Page: page.Page, Limit: page.Limit}
	if page.Unpaged() {
		pg = dto.Pagination{Total: total, Page: 1, Pages: 1, Limit: total}
	} else {
		pg.Pages = (total + page.Limit - 1) / page.Limit
		if pg.Pages == 0 {
			pg.Pages = 1
		}
	}
	return c.JSON(dto.ItemListResponse{Data: data, Pagination: pg})
}

// GetByBarcode godoc
// @Summary      Buscar ítem por barcode
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        barcode  path  string  true  "código de barras"
// @Success      200  {object}  dto.ItemResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/barcode/{barcode} [get]
func (h *InventoryHandler) GetByBarcode(c *fiber.Ctx) error {
	item, err := h.uc.GetByBarcode(c.Context(), c.Params("barcode"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.NewItemResponse(item))
}

// Create godoc
// @Summary      Crear ítem de catálogo
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateItemRequest  true  "itemType, itemName, barcode, addedBy"
// @Success      201   {object}  dto.ItemResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory [post]
func (h *InventoryHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateItemRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if in.AddedBy == "" {
		in.AddedBy = GetUserName(c)
	}
	item, err := h.uc.AddItem(c.Context(), inventory.AddItemInput{
		ItemType:     in.ItemType,
		ItemName:     in.ItemName,
		SizeOrSource: in.SizeOrSource,
		GradeLevel:   in.GradeLevel,
		Barcode:      in.Barcode,
		AddedBy:      in.AddedBy,
	})
	if err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "BARCODE_EXISTS", Message: "an item with this barcode already exists"})
		}
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewItemResponse(item))
}

// BulkInsert godoc
// @Summary      Importación masiva de catálogo
// @Description  Inserta un lote de ítems nuevos; las filas inválidas o
// duplicadas se devuelven en failedRows. Opcionalmente crea una entrega
// sintética que documenta el stock inicial del lote.
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.BulkInsertRequest  true  "items + createInitialDelivery"
// @Success      201   {object}  inventory.BulkAddResult
// @Failure      400   {object}  inventory.BulkAddResult
// @Router       /api/inventory/bulk [post]
func (h *InventoryHandler) BulkInsert(c *fiber.Ctx) error {
	var in dto.BulkInsertRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	items := make([]inventory.BulkItemInput, len(in.Items))
	for i, row := range in.Items {
		items[i] = inventory.BulkItemInput{
			ItemType:     row.ItemType,
			ItemName:     row.ItemName,
			SizeOrSource: row.SizeOrSource,
			GradeLevel:   row.GradeLevel,
			Barcode:      row.Barcode,
			Quantity:     row.Quantity,
			AddedBy:      row.AddedBy,
		}
	}
	result, err := h.uc.BulkAddItems(c.Context(), inventory.BulkAddInput{
		Items:                 items,
		CreateInitialDelivery: in.CreateInitialDelivery,
		DeliveryNumber:        in.DeliveryNumber,
	})
	if err != nil {
		if errors.Is(err, domain.ErrValidation) && result != nil {
			// Todas las filas fallaron: 400 con el detalle por fila.
			return c.Status(fiber.StatusBadRequest).JSON(result)
		}
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(result)
}

// Update godoc
// @Summary      Editar ítem (atributos administrativos)
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        itemId  path  string  true  "ITEM-000001"
// @Param        body    body  dto.UpdateItemRequest  true  "campos a editar; quantity no es editable"
// @Success      200     {object}  dto.ItemResponse
// @Failure      404     {object}  dto.ErrorResponse
// @Router       /api/inventory/{itemId} [put]
func (h *InventoryHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateItemRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	item, err := h.uc.UpdateItem(c.Context(), c.Params("itemId"), inventory.UpdateItemInput{
		ItemType:     in.ItemType,
		ItemName:     in.ItemName,
		SizeOrSource: in.SizeOrSource,
		GradeLevel:   in.GradeLevel,
		Barcode:      in.Barcode,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.NewItemResponse(item))
}

// Delete godoc
// @Summary      Eliminar ítem del catálogo
// @Tags         inventory
// @Security     Bearer
// @Param        itemId  path  string  true  "ITEM-000001"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/{itemId} [delete]
func (h *InventoryHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.DeleteItem(c.Context(), c.Params("itemId")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
