package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Docuport-api/internal/application/dto"
	"github.com/jhoicas/Docuport-api/internal/application/usecase"
)

// TemplateHandler maneja las plantillas de extracción de campos.
type TemplateHandler struct {
	uc *usecase.TemplateUseCase
}

// NewTemplateHandler construye el handler inyectando el caso de uso.
func NewTemplateHandler(uc *usecase.TemplateUseCase) *TemplateHandler {
	return &TemplateHandler{uc: uc}
}

// Create godoc
// @Summary      Crear plantilla de extracción
// @Tags         templates
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateTemplateRequest  true  "Definición de la plantilla"
// @Success      201   {object}  dto.TemplateResponse
// @Security     BearerAuth
// @Router       /api/templates [post]
func (h *TemplateHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateTemplateRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.CompanyID == "" || in.Name == "" || in.DocType == "" || in.FileKind == "" || len(in.Fields) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "company_id, name, doc_type, file_kind y fields son requeridos"})
	}
	out, err := h.uc.Create(in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener plantilla por ID
// @Tags         templates
// @Produce      json
// @Param        id  path  string  true  "ID de la plantilla"
// @Success      200  {object}  dto.TemplateResponse
// @Security     BearerAuth
// @Router       /api/templates/{id} [get]
func (h *TemplateHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "plantilla no encontrada"})
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar plantilla
// @Tags         templates
// @Accept       json
// @Produce      json
// @Param        id    path  string                      true  "ID de la plantilla"
// @Param        body  body  dto.UpdateTemplateRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.TemplateResponse
// @Security     BearerAuth
// @Router       /api/templates/{id} [put]
func (h *TemplateHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateTemplateRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Update(c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar plantillas de la empresa del token
// @Tags         templates
// @Produce      json
// @Param        limit   query  int  false  "Límite"   default(20)
// @Param        offset  query  int  false  "Offset"   default(0)
// @Success      200     {object}  dto.TemplateListResponse
// @Security     BearerAuth
// @Router       /api/templates [get]
func (h *TemplateHandler) List(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	out, err := h.uc.List(GetCompanyID(c), limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar plantilla
// @Tags         templates
// @Param        id  path  string  true  "ID de la plantilla"
// @Security     BearerAuth
// @Router       /api/templates/{id} [delete]
func (h *TemplateHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
