package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/despensa-api/internal/application/dto"
	"github.com/jhoicas/despensa-api/internal/application/inventory"
	"github.com/jhoicas/despensa-api/internal/application/scan"
)

// ScannerHandler expone el pipeline de escaneo con debounce.
type ScannerHandler struct {
	svc *scan.Service
}

// NewScannerHandler construye el handler.
func NewScannerHandler(svc *scan.Service) *ScannerHandler {
	return &ScannerHandler{svc: svc}
}

// Scan godoc
// @Summary      Procesar una lectura de código de barras
// @Description  Lecturas duplicadas o con el pipeline ocupado se descartan en
//               silencio (outcome "suppressed"), nunca como error.
// @Tags         scanner
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ScanRequest  true  "código decodificado"
// @Success      200   {object}  dto.ScanResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/scanner/scan [post]
func (h *ScannerHandler) Scan(c *fiber.Ctx) error {
	var in dto.ScanRequest
	if err := c.BodyParser(&in); err != nil || in.Code == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}

	res := h.svc.Scan(c.Context(), in.Code)
	out := dto.ScanResponse{Outcome: string(res.Outcome), State: string(res.State)}
	if res.Product != nil {
		out.Product = res.Product
	}
	return c.JSON(out)
}

// Confirm godoc
// @Summary      Confirmar el alta del producto escaneado
// @Tags         scanner
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ConfirmScanRequest  true  "producto nuevo"
// @Success      201   {object}  entity.Product
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/scanner/confirm [post]
func (h *ScannerHandler) Confirm(c *fiber.Ctx) error {
	var in dto.ConfirmScanRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	p, err := h.svc.Confirm(c.Context(), inventory.ProductInput{
		Name:         in.Name,
		Category:     in.Category,
		Unit:         in.Unit,
		CurrentStock: in.CurrentStock,
		MinStock:     in.MinStock,
		ExpiryDate:   in.ExpiryDate,
		Location:     in.Location,
		Supplier:     in.Supplier,
	})
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(p)
}

// Cancel godoc
// @Summary      Cerrar el diálogo de alta sin crear
// @Tags         scanner
// @Success      204
// @Router       /api/scanner/cancel [post]
func (h *ScannerHandler) Cancel(c *fiber.Ctx) error {
	h.svc.Cancel()
	return c.SendStatus(fiber.StatusNoContent)
}

// State godoc
// @Summary      Estado actual de la máquina de escaneo
// @Tags         scanner
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /api/scanner/state [get]
func (h *ScannerHandler) State(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"state": string(h.svc.State())})
}
