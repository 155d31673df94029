package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/uips-online/edutrack-api/internal/application/dto"
	"github.com/uips-online/edutrack-api/internal/application/ledger"
)

// ReturnHandler maneja las devoluciones contra recibos de salida.
type ReturnHandler struct {
	uc *ledger.UseCase
}

// NewReturnHandler construye el handler de devoluciones.
func NewReturnHandler(uc *ledger.UseCase) *ReturnHandler {
	return &ReturnHandler{uc: uc}
}

// Create godoc
// @Summary      Registrar devolución
// @Description  Reincorpora stock contra un recibo de salida. La cantidad
// acumulada devuelta por ítem nunca puede superar la cantidad entregada en
// ese recibo; si alguna línea la supera la operación completa aborta.
// @Tags         returns
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateReturnRequest  true  "receiptRef, returnedBy, items"
// @Success      201   {object}  dto.ReturnResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/returns [post]
func (h *ReturnHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateReturnRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if in.ReturnedBy == "" {
		in.ReturnedBy = GetUserName(c)
	}
	items := make([]ledger.ReturnLineInput, len(in.Items))
	for i, it := range in.Items {
		items[i] = ledger.ReturnLineInput{
			ItemID:    it.ItemID,
			ItemName:  it.ItemName,
			Quantity:  it.Quantity,
			Condition: it.Condition,
			Remarks:   it.Remarks,
		}
	}
	ret, err := h.uc.AddReturn(c.Context(), ledger.ReturnInput{
		ReceiptRef: in.ReceiptRef,
		ReturnedBy: in.ReturnedBy,
		Reason:     in.Reason,
		Items:      items,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewReturnResponse(ret))
}

// List godoc
// @Summary      Listar devoluciones
// @Tags         returns
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.ReturnResponse
// @Router       /api/returns [get]
func (h *ReturnHandler) List(c *fiber.Ctx) error {
	returns, err := h.uc.ListReturns()
	if err != nil {
		return writeError(c, err)
	}
	out := make([]dto.ReturnResponse, len(returns))
	for i, r := range returns {
		out[i] = dto.NewReturnResponse(r)
	}
	return c.JSON(out)
}

// GetByNumber godoc
// @Summary      Detalle de devolución
// @Tags         returns
// @Security     Bearer
// @Produce      json
// @Param        returnNumber  path  string  true  "R-20260830-000001"
// @Success      200  {object}  dto.ReturnResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/returns/{returnNumber} [get]
func (h *ReturnHandler) GetByNumber(c *fiber.Ctx) error {
	ret, err := h.uc.GetReturn(c.Params("returnNumber"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.NewReturnResponse(ret))
}
