package docs

import (
	"context"
	"time"

	"github.com/jhoicas/Docuport-api/internal/application/dto"
	"github.com/jhoicas/Docuport-api/internal/domain"
	"github.com/jhoicas/Docuport-api/internal/domain/entity"
	"github.com/jhoicas/Docuport-api/internal/domain/repository"
)

// CreditNoteUseCase aplica reglas de negocio para notas crédito.
type CreditNoteUseCase struct {
	notes     repository.CreditNoteRepository
	invoices  repository.InvoiceRepository
	suppliers repository.SupplierRepository
	companies repository.CompanyRepository
	notifier  Notifier
}

// NewCreditNoteUseCase construye el caso de uso con sus puertos.
func NewCreditNoteUseCase(
	notes repository.CreditNoteRepository,
	invoices repository.InvoiceRepository,
	suppliers repository.SupplierRepository,
	companies repository.CompanyRepository,
	notifier Notifier,
) *CreditNoteUseCase {
	return &CreditNoteUseCase{notes: notes, invoices: invoices, suppliers: suppliers, companies: companies, notifier: notifier}
}

// List lista notas crédito de una empresa con filtros y paginación.
func (uc *CreditNoteUseCase) List(companyID string, q dto.DocumentListQuery) (*dto.CreditNoteListResponse, error) {
	q.DefaultPage()
	list, err := uc.notes.List(repository.DocumentFilter{
		CompanyID:  companyID,
		SupplierID: q.SupplierID,
		Status:     q.Status,
		Limit:      q.Limit,
		Offset:     q.Offset,
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.CreditNoteResponse, 0, len(list))
	for _, n := range list {
		items = append(items, *creditNoteToResponse(n))
	}
	return &dto.CreditNoteListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: q.Limit, Offset: q.Offset},
	}, nil
}

// GetByID obtiene una nota crédito por ID. Devuelve domain.ErrNotFound si no existe.
func (uc *CreditNoteUseCase) GetByID(id string) (*dto.CreditNoteResponse, error) {
	note, err := uc.notes.GetByID(id)
	if err != nil {
		return nil, err
	}
	if note == nil {
		return nil, domain.ErrNotFound
	}
	return creditNoteToResponse(note), nil
}

// AssignSupplier asigna manualmente el proveedor a una nota crédito en revisión.
// Si la nota referencia una factura de otro proveedor, la asignación se rechaza
// con domain.ErrInvalidInput.
func (uc *CreditNoteUseCase) AssignSupplier(ctx context.Context, id, supplierID string) (*dto.CreditNoteResponse, error) {
	note, err := uc.notes.GetByID(id)
	if err != nil {
		return nil, err
	}
	if note == nil {
		return nil, domain.ErrNotFound
	}
	if note.Status != entity.DocStatusNeedsReview {
		return nil, domain.ErrConflict
	}

	supplier, err := uc.suppliers.GetByID(supplierID)
	if err != nil {
		return nil, err
	}
	if supplier == nil || supplier.CompanyID != note.CompanyID {
		return nil, domain.ErrInvalidInput
	}

	dup, err := uc.notes.GetByNumber(note.CompanyID, supplierID, note.Number)
	if err != nil {
		return nil, err
	}
	if dup != nil && dup.ID != note.ID {
		return nil, domain.ErrDuplicate
	}

	// Coherencia con la factura referenciada: debe ser del mismo proveedor.
	if note.InvoiceNumber != "" {
		ref, err := uc.invoices.GetByNumber(note.CompanyID, supplierID, note.InvoiceNumber)
		if err != nil {
			return nil, err
		}
		if ref == nil {
			return nil, domain.ErrInvalidInput
		}
	}

	note.SupplierID = supplierID
	note.Status = entity.DocStatusRegistered
	note.UpdatedAt = time.Now()
	if err := uc.notes.Update(note); err != nil {
		return nil, err
	}

	uc.notifyRegistered(ctx, note, supplier)
	return creditNoteToResponse(note), nil
}

func (uc *CreditNoteUseCase) notifyRegistered(ctx context.Context, note *entity.CreditNote, supplier *entity.Supplier) {
	company, err := uc.companies.GetByID(note.CompanyID)
	if err != nil || company == nil || company.Email == "" {
		return
	}
	_, _ = uc.notifier.Queue(ctx, note.CompanyID, entity.EmailTplDocumentRegistered, company.Email, map[string]string{
		"Number":       note.Number,
		"SupplierName": supplier.Name,
		"Total":        note.Total.StringFixed(2),
	})
}

func creditNoteToResponse(n *entity.CreditNote) *dto.CreditNoteResponse {
	if n == nil {
		return nil
	}
	return &dto.CreditNoteResponse{
		ID:            n.ID,
		CompanyID:     n.CompanyID,
		SupplierID:    n.SupplierID,
		FileID:        n.FileID,
		Number:        n.Number,
		IssueDate:     n.IssueDate,
		Total:         n.Total.StringFixed(2),
		Currency:      n.Currency,
		InvoiceNumber: n.InvoiceNumber,
		Status:        n.Status,
		CreatedAt:     n.CreatedAt,
	}
}
