package http

import (
	"github.com/gofiber/fiber/v2"

	appalerts "github.com/jhoicas/despensa-api/internal/application/alerts"
)

// AlertHandler maneja las alertas derivadas.
type AlertHandler struct {
	uc *appalerts.UseCase
}

// NewAlertHandler construye el handler.
func NewAlertHandler(uc *appalerts.UseCase) *AlertHandler {
	return &AlertHandler{uc: uc}
}

// List godoc
// @Summary      Listar alertas activas
// @Tags         alerts
// @Produce      json
// @Success      200  {array}  entity.Alert
// @Router       /api/alerts [get]
func (h *AlertHandler) List(c *fiber.Ctx) error {
	return c.JSON(h.uc.List())
}

// Acknowledge godoc
// @Summary      Reconocer una alerta
// @Description  El reconocimiento se pierde si la condición se re-dispara.
// @Tags         alerts
// @Param        id  path  string  true  "ID de la alerta"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/alerts/{id}/acknowledge [post]
func (h *AlertHandler) Acknowledge(c *fiber.Ctx) error {
	if err := h.uc.Acknowledge(c.Context(), c.Params("id")); err != nil {
		return mapDomainError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
