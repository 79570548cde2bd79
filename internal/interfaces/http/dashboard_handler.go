package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/despensa-api/internal/application/analytics"
)

// DashboardHandler vista agregada del tablero.
type DashboardHandler struct {
	uc *analytics.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *analytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// Summary godoc
// @Summary      Agregados del tablero
// @Description  "Vence esta semana" usa el corte de 7 días de visualización,
//               no el de 3 días del motor de alertas.
// @Tags         dashboard
// @Produce      json
// @Success      200  {object}  analytics.Summary
// @Router       /api/dashboard [get]
func (h *DashboardHandler) Summary(c *fiber.Ctx) error {
	return c.JSON(h.uc.Summary())
}
