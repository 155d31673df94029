package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/uips-online/edutrack-api/internal/application/dto"
	"github.com/uips-online/edutrack-api/internal/application/ledger"
)

// CheckoutHandler maneja las salidas de stock.
type CheckoutHandler struct {
	uc *ledger.UseCase
}

// NewCheckoutHandler construye el handler de salidas.
func NewCheckoutHandler(uc *ledger.UseCase) *CheckoutHandler {
	return &CheckoutHandler{uc: uc}
}

// Create godoc
// @Summary      Registrar salida
// @Description  Descuenta stock por cada línea con verificación de
// disponibilidad; cualquier línea sin stock suficiente aborta la operación
// completa sin aplicar ningún descuento.
// @Tags         checkouts
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateCheckoutRequest  true  "receiptNo, issuedBy, items"
// @Success      201   {object}  dto.CheckoutResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/checkouts [post]
func (h *CheckoutHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateCheckoutRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if in.IssuedBy == "" {
		in.IssuedBy = GetUserName(c)
	}
	items := make([]ledger.LineInput, len(in.Items))
	for i, it := range in.Items {
		items[i] = ledger.LineInput{ItemID: it.ItemID, Quantity: it.Quantity}
	}
	checkout, err := h.uc.AddCheckout(c.Context(), ledger.CheckoutInput{
		ReceiptNo: in.ReceiptNo,
		IssuedBy:  in.IssuedBy,
		Items:     items,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewCheckoutResponse(checkout))
}

// List godoc
// @Summary      Listar salidas
// @Tags         checkouts
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.CheckoutResponse
// @Router       /api/checkouts [get]
func (h *CheckoutHandler) List(c *fiber.Ctx) error {
	checkouts, err := h.uc.ListCheckouts()
	if err != nil {
		return writeError(c, err)
	}
	out := make([]dto.CheckoutResponse, len(checkouts))
	for i, co := range checkouts {
		out[i] = dto.NewCheckoutResponse(co)
	}
	return c.JSON(out)
}

// GetByRef godoc
// @Summary      Detalle de salida
// @Description  Busca por receiptNo, checkoutId o transactionNo.
// @Tags         checkouts
// @Security     Bearer
// @Produce      json
// @Param        ref  path  string  true  "receiptNo, CH-000001 o TXN-..."
// @Success      200  {object}  dto.CheckoutResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/checkouts/{ref} [get]
func (h *CheckoutHandler) GetByRef(c *fiber.Ctx) error {
	checkout, err := h.uc.GetCheckout(c.Params("ref"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.NewCheckoutResponse(checkout))
}
