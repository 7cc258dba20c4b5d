package docs

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/Docuport-api/internal/application/dto"
	"github.com/jhoicas/Docuport-api/internal/domain"
	"github.com/jhoicas/Docuport-api/internal/domain/entity"
	"github.com/jhoicas/Docuport-api/internal/domain/repository"
)

// StatementUseCase aplica reglas de negocio para estados de cuenta.
type StatementUseCase struct {
	statements repository.StatementRepository
	suppliers  repository.SupplierRepository
	companies  repository.CompanyRepository
	notifier   Notifier
	renderer   StatementRenderer
}

// NewStatementUseCase construye el caso de uso con sus puertos.
func NewStatementUseCase(
	statements repository.StatementRepository,
	suppliers repository.SupplierRepository,
	companies repository.CompanyRepository,
	notifier Notifier,
	renderer StatementRenderer,
) *StatementUseCase {
	return &StatementUseCase{
		statements: statements,
		suppliers:  suppliers,
		companies:  companies,
		notifier:   notifier,
		renderer:   renderer,
	}
}

// List lista estados de cuenta de una empresa con filtros y paginación.
func (uc *StatementUseCase) List(companyID string, q dto.DocumentListQuery) (*dto.StatementListResponse, error) {
	q.DefaultPage()
	list, err := uc.statements.List(repository.DocumentFilter{
		CompanyID:  companyID,
		SupplierID: q.SupplierID,
		Status:     q.Status,
		Limit:      q.Limit,
		Offset:     q.Offset,
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.StatementResponse, 0, len(list))
	for _, st := range list {
		items = append(items, *statementToResponse(st))
	}
	return &dto.StatementListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: q.Limit, Offset: q.Offset},
	}, nil
}

// GetByID obtiene un estado de cuenta por ID. Devuelve domain.ErrNotFound si no existe.
func (uc *StatementUseCase) GetByID(id string) (*dto.StatementResponse, error) {
	st, err := uc.statements.GetByID(id)
	if err != nil {
		return nil, err
	}
	if st == nil {
		return nil, domain.ErrNotFound
	}
	return statementToResponse(st), nil
}

// AssignSupplier asigna manualmente el proveedor a un estado de cuenta en revisión.
func (uc *StatementUseCase) AssignSupplier(ctx context.Context, id, supplierID string) (*dto.StatementResponse, error) {
	st, err := uc.statements.GetByID(id)
	if err != nil {
		return nil, err
	}
	if st == nil {
		return nil, domain.ErrNotFound
	}
	if st.Status != entity.DocStatusNeedsReview {
		return nil, domain.ErrConflict
	}

	supplier, err := uc.suppliers.GetByID(supplierID)
	if err != nil {
		return nil, err
	}
	if supplier == nil || supplier.CompanyID != st.CompanyID {
		return nil, domain.ErrInvalidInput
	}

	dup, err := uc.statements.GetByNumber(st.CompanyID, supplierID, st.Number)
	if err != nil {
		return nil, err
	}
	if dup != nil && dup.ID != st.ID {
		return nil, domain.ErrDuplicate
	}

	st.SupplierID = supplierID
	st.Status = entity.DocStatusRegistered
	st.UpdatedAt = time.Now()
	if err := uc.statements.Update(st); err != nil {
		return nil, err
	}

	uc.notifyRegistered(ctx, st, supplier)
	return statementToResponse(st), nil
}

// SummaryPDF genera el PDF resumen del estado de cuenta. Devuelve los bytes del
// documento y un nombre de archivo sugerido.
func (uc *StatementUseCase) SummaryPDF(id string) ([]byte, string, error) {
	st, err := uc.statements.GetByID(id)
	if err != nil {
		return nil, "", err
	}
	if st == nil {
		return nil, "", domain.ErrNotFound
	}

	companyName := ""
	if company, err := uc.companies.GetByID(st.CompanyID); err == nil && company != nil {
		companyName = company.Name
	}
	supplierName := ""
	if st.SupplierID != "" {
		if supplier, err := uc.suppliers.GetByID(st.SupplierID); err == nil && supplier != nil {
			supplierName = supplier.Name
		}
	}

	pdf, err := uc.renderer.RenderSummary(st, companyName, supplierName)
	if err != nil {
		return nil, "", fmt.Errorf("generar PDF del estado de cuenta %s: %w", st.Number, err)
	}
	name := fmt.Sprintf("estado-cuenta-%s-%s.pdf", st.Number, st.PeriodEnd.Format("2006-01"))
	return pdf, name, nil
}

func (uc *StatementUseCase) notifyRegistered(ctx context.Context, st *entity.Statement, supplier *entity.Supplier) {
	company, err := uc.companies.GetByID(st.CompanyID)
	if err != nil || company == nil || company.Email == "" {
		return
	}
	_, _ = uc.notifier.Queue(ctx, st.CompanyID, entity.EmailTplDocumentRegistered, company.Email, map[string]string{
		"Number":       st.Number,
		"SupplierName": supplier.Name,
		"Total":        st.ClosingBalance.StringFixed(2),
	})
}

func statementToResponse(st *entity.Statement) *dto.StatementResponse {
	if st == nil {
		return nil
	}
	return &dto.StatementResponse{
		ID:             st.ID,
		CompanyID:      st.CompanyID,
		SupplierID:     st.SupplierID,
		FileID:         st.FileID,
		Number:         st.Number,
		PeriodStart:    st.PeriodStart,
		PeriodEnd:      st.PeriodEnd,
		OpeningBalance: st.OpeningBalance.StringFixed(2),
		ClosingBalance: st.ClosingBalance.StringFixed(2),
		Currency:       st.Currency,
		Status:         st.Status,
		CreatedAt:      st.CreatedAt,
	}
}
