package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Docuport-api/internal/application/docs"
	"github.com/jhoicas/Docuport-api/internal/application/dto"
)

// DocumentHandler maneja facturas, notas crédito y estados de cuenta.
type DocumentHandler struct {
	invoices   *docs.InvoiceUseCase
	notes      *docs.CreditNoteUseCase
	statements *docs.StatementUseCase
}

// NewDocumentHandler construye el handler inyectando los casos de uso.
func NewDocumentHandler(
	invoices *docs.InvoiceUseCase,
	notes *docs.CreditNoteUseCase,
	statements *docs.StatementUseCase,
) *DocumentHandler {
	return &DocumentHandler{invoices: invoices, notes: notes, statements: statements}
}

func documentQuery(c *fiber.Ctx) dto.DocumentListQuery {
	q := dto.DocumentListQuery{
		SupplierID: c.Query("supplier_id"),
		Status:     c.Query("status"),
	}
	q.Limit, q.Offset = pageParams(c)
	return q
}

// ── Facturas ──────────────────────────────────────────────────────────────────

// ListInvoices godoc
// @Summary      Listar facturas de la empresa del token
// @Tags         invoices
// @Produce      json
// @Param        supplier_id  query  string  false  "Filtrar por proveedor"
// @Param        status       query  string  false  "Filtrar por estado"
// @Success      200  {object}  dto.InvoiceListResponse
// @Security     BearerAuth
// @Router       /api/invoices [get]
func (h *DocumentHandler) ListInvoices(c *fiber.Ctx) error {
	out, err := h.invoices.List(GetCompanyID(c), documentQuery(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetInvoice godoc
// @Summary      Obtener factura por ID
// @Tags         invoices
// @Produce      json
// @Param        id  path  string  true  "ID de la factura"
// @Success      200  {object}  dto.InvoiceResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/invoices/{id} [get]
func (h *DocumentHandler) GetInvoice(c *fiber.Ctx) error {
	out, err := h.invoices.GetByID(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// AssignInvoiceSupplier godoc
// @Summary      Asignar proveedor a una factura en revisión
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Param        id    path  string                     true  "ID de la factura"
// @Param        body  body  dto.AssignSupplierRequest  true  "Proveedor a asignar"
// @Success      200   {object}  dto.InvoiceResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/invoices/{id}/supplier [put]
func (h *DocumentHandler) AssignInvoiceSupplier(c *fiber.Ctx) error {
	var in dto.AssignSupplierRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.SupplierID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "supplier_id es requerido"})
	}
	out, err := h.invoices.AssignSupplier(c.Context(), c.Params("id"), in.SupplierID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ── Notas crédito ─────────────────────────────────────────────────────────────

// ListCreditNotes godoc
// @Summary      Listar notas crédito de la empresa del token
// @Tags         credit-notes
// @Produce      json
// @Success      200  {object}  dto.CreditNoteListResponse
// @Security     BearerAuth
// @Router       /api/credit-notes [get]
func (h *DocumentHandler) ListCreditNotes(c *fiber.Ctx) error {
	out, err := h.notes.List(GetCompanyID(c), documentQuery(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetCreditNote godoc
// @Summary      Obtener nota crédito por ID
// @Tags         credit-notes
// @Produce      json
// @Param        id  path  string  true  "ID de la nota"
// @Success      200  {object}  dto.CreditNoteResponse
// @Security     BearerAuth
// @Router       /api/credit-notes/{id} [get]
func (h *DocumentHandler) GetCreditNote(c *fiber.Ctx) error {
	out, err := h.notes.GetByID(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// AssignCreditNoteSupplier godoc
// @Summary      Asignar proveedor a una nota crédito en revisión
// @Tags         credit-notes
// @Accept       json
// @Produce      json
// @Param        id    path  string                     true  "ID de la nota"
// @Param        body  body  dto.AssignSupplierRequest  true  "Proveedor a asignar"
// @Success      200   {object}  dto.CreditNoteResponse
// @Security     BearerAuth
// @Router       /api/credit-notes/{id}/supplier [put]
func (h *DocumentHandler) AssignCreditNoteSupplier(c *fiber.Ctx) error {
	var in dto.AssignSupplierRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.SupplierID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "supplier_id es requerido"})
	}
	out, err := h.notes.AssignSupplier(c.Context(), c.Params("id"), in.SupplierID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ── Estados de cuenta ─────────────────────────────────────────────────────────

// ListStatements godoc
// @Summary      Listar estados de cuenta de la empresa del token
// @Tags         statements
// @Produce      json
// @Success      200  {object}  dto.StatementListResponse
// @Security     BearerAuth
// @Router       /api/statements [get]
func (h *DocumentHandler) ListStatements(c *fiber.Ctx) error {
	out, err := h.statements.List(GetCompanyID(c), documentQuery(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetStatement godoc
// @Summary      Obtener estado de cuenta por ID
// @Tags         statements
// @Produce      json
// @Param        id  path  string  true  "ID del estado"
// @Success      200  {object}  dto.StatementResponse
// @Security     BearerAuth
// @Router       /api/statements/{id} [get]
func (h *DocumentHandler) GetStatement(c *fiber.Ctx) error {
	out, err := h.statements.GetByID(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// AssignStatementSupplier godoc
// @Summary      Asignar proveedor a un estado de cuenta en revisión
// @Tags         statements
// @Accept       json
// @Produce      json
// @Param        id    path  string                     true  "ID del estado"
// @Param        body  body  dto.AssignSupplierRequest  true  "Proveedor a asignar"
// @Success      200   {object}  dto.StatementResponse
// @Security     BearerAuth
// @Router       /api/statements/{id}/supplier [put]
func (h *DocumentHandler) AssignStatementSupplier(c *fiber.Ctx) error {
	var in dto.AssignSupplierRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.SupplierID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "supplier_id es requerido"})
	}
	out, err := h.statements.AssignSupplier(c.Context(), c.Params("id"), in.SupplierID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// StatementPDF godoc
// @Summary      Descargar el resumen PDF de un estado de cuenta
// @Tags         statements
// @Produce      application/pdf
// @Param        id  path  string  true  "ID del estado"
// @Success      200  {file}  binary
// @Security     BearerAuth
// @Router       /api/statements/{id}/summary.pdf [get]
func (h *DocumentHandler) StatementPDF(c *fiber.Ctx) error {
	content, filename, err := h.statements.SummaryPDF(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(content)
}
