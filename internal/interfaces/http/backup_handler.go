package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/despensa-api/internal/application/backup"
)

// BackupHandler exportación e importación del libro completo.
type BackupHandler struct {
	uc *backup.UseCase
}

// NewBackupHandler construye el handler.
func NewBackupHandler(uc *backup.UseCase) *BackupHandler {
	return &BackupHandler{uc: uc}
}

// Export godoc
// @Summary      Exportar el libro como documento JSON
// @Tags         backup
// @Produce      json
// @Success      200  {object}  backup.Document
// @Router       /api/export [get]
func (h *BackupHandler) Export(c *fiber.Ctx) error {
	doc, err := h.uc.Export(c.Context())
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(doc)
}

// Import godoc
// @Summary      Importar un documento de exportación
// @Description  Valida la estructura y mezcla por id; no reemplaza en bloque.
// @Tags         backup
// @Accept       json
// @Success      204
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/import [post]
func (h *BackupHandler) Import(c *fiber.Ctx) error {
	if err := h.uc.Import(c.Context(), c.Body()); err != nil {
		return mapDomainError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
