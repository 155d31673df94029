package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/uips-online/edutrack-api/internal/application/dashboard"
)

// DashboardHandler expone el resumen operativo.
type DashboardHandler struct {
	uc *dashboard.UseCase
}

// NewDashboardHandler construye el handler del dashboard.
func NewDashboardHandler(uc *dashboard.UseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// Summary godoc
// @Summary      Dashboard
// @Description  Conteos globales, stock bajo, distribución por tipo, ítems
// más entregados y actividad reciente.
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.DashboardResponse
// @Router       /api/dashboard [get]
func (h *DashboardHandler) Summary(c *fiber.Ctx) error {
	out, err := h.uc.Summary(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
