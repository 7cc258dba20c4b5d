package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Docuport-api/internal/application/dto"
	"github.com/jhoicas/Docuport-api/internal/application/notify"
)

// EmailHandler maneja las plantillas de correo y el historial de envíos.
type EmailHandler struct {
	emails *notify.EmailUseCase
}

func NewEmailHandler(emails *notify.EmailUseCase) *EmailHandler {
	return &EmailHandler{emails: emails}
}

// Templates godoc
// @Summary      Listar las plantillas de correo
// @Tags         email
// @Produce      json
// @Success      200  {array}  dto.EmailTemplateResponse
// @Security     BearerAuth
// @Router       /api/email/templates [get]
func (h *EmailHandler) Templates(c *fiber.Ctx) error {
	out, err := h.emails.Templates()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// UpdateTemplate godoc
// @Summary      Actualizar una plantilla de correo por código
// @Description  Valida que asunto y cuerpo rendericen antes de guardar.
// @Tags         email
// @Accept       json
// @Produce      json
// @Param        code  path  string                         true  "Código de la plantilla"
// @Param        body  body  dto.UpdateEmailTemplateRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.EmailTemplateResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/email/templates/{code} [put]
func (h *EmailHandler) UpdateTemplate(c *fiber.Ctx) error {
	var in dto.UpdateEmailTemplateRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.emails.UpdateTemplate(c.Params("code"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Logs godoc
// @Summary      Listar el historial de correos de la empresa del token
// @Tags         email
// @Produce      json
// @Success      200  {object}  dto.EmailLogListResponse
// @Security     BearerAuth
// @Router       /api/email/logs [get]
func (h *EmailHandler) Logs(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	out, err := h.emails.Logs(GetCompanyID(c), limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
