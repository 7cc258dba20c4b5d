package docs

import (
	"context"
	"time"

	"github.com/jhoicas/Docuport-api/internal/application/dto"
	"github.com/jhoicas/Docuport-api/internal/domain"
	"github.com/jhoicas/Docuport-api/internal/domain/entity"
	"github.com/jhoicas/Docuport-api/internal/domain/repository"
)

// InvoiceUseCase aplica reglas de negocio para facturas registradas.
type InvoiceUseCase struct {
	invoices  repository.InvoiceRepository
	suppliers repository.SupplierRepository
	companies repository.CompanyRepository
	notifier  Notifier
}

// NewInvoiceUseCase construye el caso de uso con sus puertos.
func NewInvoiceUseCase(
	invoices repository.InvoiceRepository,
	suppliers repository.SupplierRepository,
	companies repository.CompanyRepository,
	notifier Notifier,
) *InvoiceUseCase {
	return &InvoiceUseCase{invoices: invoices, suppliers: suppliers, companies: companies, notifier: notifier}
}

// List lista facturas de una empresa con filtros y paginación.
func (uc *InvoiceUseCase) List(companyID string, q dto.DocumentListQuery) (*dto.InvoiceListResponse, error) {
	q.DefaultPage()
	list, err := uc.invoices.List(repository.DocumentFilter{
		CompanyID:  companyID,
		SupplierID: q.SupplierID,
		Status:     q.Status,
		Limit:      q.Limit,
		Offset:     q.Offset,
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.InvoiceResponse, 0, len(list))
	for _, inv := range list {
		items = append(items, *invoiceToResponse(inv))
	}
	return &dto.InvoiceListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: q.Limit, Offset: q.Offset},
	}, nil
}

// GetByID obtiene una factura por ID. Devuelve domain.ErrNotFound si no existe.
func (uc *InvoiceUseCase) GetByID(id string) (*dto.InvoiceResponse, error) {
	inv, err := uc.invoices.GetByID(id)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}
	return invoiceToResponse(inv), nil
}

// AssignSupplier asigna manualmente el proveedor a una factura en revisión y la
// pasa a registered. Devuelve domain.ErrConflict si la factura no está en
// revisión y domain.ErrDuplicate si ya existe una factura con el mismo número
// para ese proveedor.
func (uc *InvoiceUseCase) AssignSupplier(ctx context.Context, id, supplierID string) (*dto.InvoiceResponse, error) {
	inv, err := uc.invoices.GetByID(id)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}
	if inv.Status != entity.DocStatusNeedsReview {
		return nil, domain.ErrConflict
	}

	supplier, err := uc.suppliers.GetByID(supplierID)
	if err != nil {
		return nil, err
	}
	if supplier == nil || supplier.CompanyID != inv.CompanyID {
		return nil, domain.ErrInvalidInput
	}

	dup, err := uc.invoices.GetByNumber(inv.CompanyID, supplierID, inv.Number)
	if err != nil {
		return nil, err
	}
	if dup != nil && dup.ID != inv.ID {
		return nil, domain.ErrDuplicate
	}

	inv.SupplierID = supplierID
	inv.Status = entity.DocStatusRegistered
	inv.UpdatedAt = time.Now()
	if err := uc.invoices.Update(inv); err != nil {
		return nil, err
	}

	uc.notifyRegistered(ctx, inv, supplier)
	return invoiceToResponse(inv), nil
}

// notifyRegistered encola el correo de registro al correo de la empresa. La
// asignación ya quedó persistida; un fallo aquí se diagnostica en el log de correos.
func (uc *InvoiceUseCase) notifyRegistered(ctx context.Context, inv *entity.Invoice, supplier *entity.Supplier) {
	company, err := uc.companies.GetByID(inv.CompanyID)
	if err != nil || company == nil || company.Email == "" {
		return
	}
	_, _ = uc.notifier.Queue(ctx, inv.CompanyID, entity.EmailTplDocumentRegistered, company.Email, map[string]string{
		"Number":       inv.Number,
		"SupplierName": supplier.Name,
		"Total":        inv.GrandTotal.StringFixed(2),
	})
}

func invoiceToResponse(inv *entity.Invoice) *dto.InvoiceResponse {
	if inv == nil {
		return nil
	}
	return &dto.InvoiceResponse{
		ID:         inv.ID,
		CompanyID:  inv.CompanyID,
		SupplierID: inv.SupplierID,
		FileID:     inv.FileID,
		Number:     inv.Number,
		IssueDate:  inv.IssueDate,
		DueDate:    inv.DueDate,
		NetTotal:   inv.NetTotal.StringFixed(2),
		TaxTotal:   inv.TaxTotal.StringFixed(2),
		GrandTotal: inv.GrandTotal.StringFixed(2),
		Currency:   inv.Currency,
		Status:     inv.Status,
		CreatedAt:  inv.CreatedAt,
	}
}
