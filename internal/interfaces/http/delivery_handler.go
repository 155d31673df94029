package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/uips-online/edutrack-api/internal/application/dto"
	"github.com/uips-online/edutrack-api/internal/application/ledger"
)

// DeliveryHandler maneja las entregas entrantes (stock-in).
type DeliveryHandler struct {
	uc *ledger.UseCase
}

// NewDeliveryHandler construye el handler de entregas.
func NewDeliveryHandler(uc *ledger.UseCase) *DeliveryHandler {
	return &DeliveryHandler{uc: uc}
}

// Create godoc
// @Summary      Registrar entrega
// @Description  Suma stock por cada línea y persiste el registro con snapshot
// de atributos; la operación es todo-o-nada.
// @Tags         deliveries
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateDeliveryRequest  true  "deliveryNumber, receivedBy, items"
// @Success      201   {object}  dto.DeliveryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/deliveries [post]
func (h *DeliveryHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateDeliveryRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if in.ReceivedBy == "" {
		in.ReceivedBy = GetUserName(c)
	}
	items := make([]ledger.LineInput, len(in.Items))
	for i, it := range in.Items {
		items[i] = ledger.LineInput{
			ItemID:       it.ItemID,
			ItemName:     it.ItemName,
			ItemType:     it.ItemType,
			SizeOrSource: it.SizeOrSource,
			GradeLevel:   it.GradeLevel,
			Barcode:      it.Barcode,
			Quantity:     it.Quantity,
		}
	}
	delivery, err := h.uc.AddDelivery(c.Context(), ledger.DeliveryInput{
		DeliveryNumber: in.DeliveryNumber,
		Supplier:       in.Supplier,
		ReceivedBy:     in.ReceivedBy,
		Items:          items,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewDeliveryResponse(delivery))
}

// List godoc
// @Summary      Listar entregas
// @Tags         deliveries
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.DeliveryResponse
// @Router       /api/deliveries [get]
func (h *DeliveryHandler) List(c *fiber.Ctx) error {
	deliveries, err := h.uc.ListDeliveries()
	if err != nil {
		return writeError(c, err)
	}
	out := make([]dto.DeliveryResponse, len(deliveries))
	for i, d := range deliveries {
		out[i] = dto.NewDeliveryResponse(d)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Detalle de entrega
// @Tags         deliveries
// @Security     Bearer
// @Produce      json
// @Param        deliveryId  path  string  true  "DEL-000001"
// @Success      200  {object}  dto.DeliveryResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/deliveries/{deliveryId} [get]
func (h *DeliveryHandler) GetByID(c *fiber.Ctx) error {
	delivery, err := h.uc.GetDelivery(c.Params("deliveryId"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.NewDeliveryResponse(delivery))
}
