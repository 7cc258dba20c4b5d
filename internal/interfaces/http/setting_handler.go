package http

import (
	"context"
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Docuport-api/internal/application/dto"
	"github.com/jhoicas/Docuport-api/internal/application/usecase"
)

// ReloadNotifier avisa a los procesos planificadores que la configuración
// cambió y deben re-registrar sus jobs.
type ReloadNotifier interface {
	PublishReload(ctx context.Context) error
}

// SettingHandler maneja la configuración operativa del sistema.
type SettingHandler struct {
	settings *usecase.SettingUseCase
	notifier ReloadNotifier
}

func NewSettingHandler(settings *usecase.SettingUseCase, notifier ReloadNotifier) *SettingHandler {
	return &SettingHandler{settings: settings, notifier: notifier}
}

// List godoc
// @Summary      Listar la configuración del sistema
// @Tags         settings
// @Produce      json
// @Success      200  {array}  dto.SettingResponse
// @Security     BearerAuth
// @Router       /api/settings [get]
func (h *SettingHandler) List(c *fiber.Ctx) error {
	out, err := h.settings.List()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar la configuración del sistema
// @Description  Aplica los valores recibidos y avisa al planificador para que
// @Description  re-registre sus jobs con las nuevas frecuencias.
// @Tags         settings
// @Accept       json
// @Produce      json
// @Param        body  body  dto.UpdateSettingsRequest  true  "Valores a actualizar"
// @Success      204   "Sin contenido"
// @Failure      400   {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/settings [put]
func (h *SettingHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateSettingsRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if len(in.Values) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "values no puede estar vacío"})
	}
	if err := h.settings.Update(in); err != nil {
		return respondError(c, err)
	}
	if h.notifier != nil {
		if err := h.notifier.PublishReload(c.Context()); err != nil {
			// El cambio quedó persistido; el planificador lo tomará en su
			// próximo reinicio aunque el aviso no llegue.
			log.Printf("[SETTINGS] no se pudo avisar al planificador: %v", err)
		}
	}
	return c.SendStatus(fiber.StatusNoContent)
}
