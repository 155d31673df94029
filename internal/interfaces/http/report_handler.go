package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/uips-online/edutrack-api/internal/application/dto"
	"github.com/uips-online/edutrack-api/internal/application/report"
)

// ReportHandler maneja los reportes de movimientos.
type ReportHandler struct {
	uc *report.UseCase
}

// NewReportHandler construye el handler de reportes.
func NewReportHandler(uc *report.UseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

func parsePage(c *fiber.Ctx) (dto.PageRequest, error) {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return page, err
	}
	page.Normalize()
	return page, nil
}

// Deliveries godoc
// @Summary      Reporte de entregas
// @Description  Una fila por línea de entrega dentro del rango [from, to].
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        from   query  string  false  "YYYY-MM-DD"
// @Param        to     query  string  false  "YYYY-MM-DD (inclusivo)"
// @Param        page   query  int     false  "página"
// @Param        limit  query  int     false  "tamaño de página; 0 = todo"
// @Param        all    query  bool    false  "true = sin paginar"
// @Success      200  {object}  dto.ReportResponse[dto.DeliveryReportRow]
// @Router       /api/reports/deliveries [get]
func (h *ReportHandler) Deliveries(c *fiber.Ctx) error {
	page, err := parsePage(c)
	if err != nil {
		return badBody(c)
	}
	out, err := h.uc.DeliveryReport(c.Context(), c.Query("from"), c.Query("to"), page)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Checkouts godoc
// @Summary      Reporte de salidas
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        from   query  string  false  "YYYY-MM-DD"
// @Param        to     query  string  false  "YYYY-MM-DD (inclusivo)"
// @Param        page   query  int     false  "página"
// @Param        limit  query  int     false  "tamaño de página; 0 = todo"
// @Param        all    query  bool    false  "true = sin paginar"
// @Success      200  {object}  dto.ReportResponse[dto.CheckoutReportRow]
// @Router       /api/reports/checkouts [get]
func (h *ReportHandler) Checkouts(c *fiber.Ctx) error {
	page, err := parsePage(c)
	if err != nil {
		return badBody(c)
	}
	out, err := h.uc.CheckoutReport(c.Context(), c.Query("from"), c.Query("to"), page)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Returns godoc
// @Summary      Reporte de devoluciones
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        from   query  string  false  "YYYY-MM-DD"
// @Param        to     query  string  false  "YYYY-MM-DD (inclusivo)"
// @Param        page   query  int     false  "página"
// @Param        limit  query  int     false  "tamaño de página; 0 = todo"
// @Param        all    query  bool    false  "true = sin paginar"
// @Success      200  {object}  dto.ReportResponse[dto.ReturnReportRow]
// @Router       /api/reports/returns [get]
func (h *ReportHandler) Returns(c *fiber.Ctx) error {
	page, err := parsePage(c)
	if err != nil {
		return badBody(c)
	}
	out, err := h.uc.ReturnReport(c.Context(), c.Query("from"), c.Query("to"), page)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Inventory godoc
// @Summary      Snapshot del catálogo
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        page   query  int   false  "página"
// @Param        limit  query  int   false  "tamaño de página; 0 = todo"
// @Param        all    query  bool  false  "true = sin paginar"
// @Success      200  {object}  dto.ReportResponse[dto.ItemResponse]
// @Router       /api/reports/inventory [get]
func (h *ReportHandler) Inventory(c *fiber.Ctx) error {
	page, err := parsePage(c)
	if err != nil {
		return badBody(c)
	}
	out, err := h.uc.InventoryReport(c.Context(), page)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Summary godoc
// @Summary      Resumen de movimiento neto
// @Description  Por ítem: delivered + returned - checkedOut dentro del rango,
// junto al stock vigente.
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        from   query  string  false  "YYYY-MM-DD"
// @Param        to     query  string  false  "YYYY-MM-DD (inclusivo)"
// @Param        page   query  int     false  "página"
// @Param        limit  query  int     false  "tamaño de página; 0 = todo"
// @Param        all    query  bool    false  "true = sin paginar"
// @Success      200  {object}  dto.ReportResponse[dto.SummaryReportRow]
// @Router       /api/reports/summary [get]
func (h *ReportHandler) Summary(c *fiber.Ctx) error {
	page, err := parsePage(c)
	if err != nil {
		return badBody(c)
	}
	out, err := h.uc.SummaryReport(c.Context(), c.Query("from"), c.Query("to"), page)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
