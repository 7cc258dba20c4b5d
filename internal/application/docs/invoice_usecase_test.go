package docs_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Docuport-api/internal/application/docs"
	"github.com/jhoicas/Docuport-api/internal/application/dto"
	"github.com/jhoicas/Docuport-api/internal/domain"
	"github.com/jhoicas/Docuport-api/internal/domain/entity"
	"github.com/jhoicas/Docuport-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes
// ──────────────────────────────────────────────────────────────────────────────

type fakeInvoiceRepo struct {
	byID map[string]*entity.Invoice
}

func newFakeInvoiceRepo(list ...*entity.Invoice) *fakeInvoiceRepo {
	f := &fakeInvoiceRepo{byID: map[string]*entity.Invoice{}}
	for _, inv := range list {
		f.byID[inv.ID] = inv
	}
	return f
}

func (f *fakeInvoiceRepo) Create(inv *entity.Invoice) error { f.byID[inv.ID] = inv; return nil }
func (f *fakeInvoiceRepo) GetByID(id string) (*entity.Invoice, error) {
	return f.byID[id], nil
}
func (f *fakeInvoiceRepo) GetByNumber(companyID, supplierID, number string) (*entity.Invoice, error) {
	for _, inv := range f.byID {
		if inv.CompanyID == companyID && inv.SupplierID == supplierID && inv.Number == number {
			return inv, nil
		}
	}
	return nil, nil
}
func (f *fakeInvoiceRepo) Update(inv *entity.Invoice) error { f.byID[inv.ID] = inv; return nil }
func (f *fakeInvoiceRepo) List(filter repository.DocumentFilter) ([]*entity.Invoice, error) {
	var out []*entity.Invoice
	for _, inv := range f.byID {
		if inv.CompanyID == filter.CompanyID &&
			(filter.Status == "" || inv.Status == filter.Status) &&
			(filter.SupplierID == "" || inv.SupplierID == filter.SupplierID) {
			out = append(out, inv)
		}
	}
	return out, nil
}
func (f *fakeInvoiceRepo) ListExpired(companyID string, before time.Time) ([]*entity.Invoice, error) {
	var out []*entity.Invoice
	for _, inv := range f.byID {
		if inv.CompanyID == companyID && inv.DeletedAt == nil && inv.IssueDate.Before(before) {
			out = append(out, inv)
		}
	}
	return out, nil
}
func (f *fakeInvoiceRepo) SoftDelete(id string, at time.Time) error {
	if inv := f.byID[id]; inv != nil {
		inv.Status = entity.DocStatusPurged
		inv.DeletedAt = &at
	}
	return nil
}

type fakeSupplierRepo struct {
	byID map[string]*entity.Supplier
}

func (f *fakeSupplierRepo) Create(s *entity.Supplier) error { f.byID[s.ID] = s; return nil }
func (f *fakeSupplierRepo) GetByID(id string) (*entity.Supplier, error) {
	return f.byID[id], nil
}
func (f *fakeSupplierRepo) GetByCode(companyID, code string) (*entity.Supplier, error) {
	for _, s := range f.byID {
		if s.CompanyID == companyID && s.Code == code {
			return s, nil
		}
	}
	return nil, nil
}
func (f *fakeSupplierRepo) Update(s *entity.Supplier) error { f.byID[s.ID] = s; return nil }
func (f *fakeSupplierRepo) ListByCompany(string, int, int) ([]*entity.Supplier, error) {
	return nil, nil
}
func (f *fakeSupplierRepo) ListActiveByCompany(companyID string) ([]*entity.Supplier, error) {
	var out []*entity.Supplier
	for _, s := range f.byID {
		if s.CompanyID == companyID && s.Status == "active" {
			out = append(out, s)
		}
	}
	return out, nil
}
func (f *fakeSupplierRepo) Delete(id string) error { delete(f.byID, id); return nil }

type fakeCompanyRepo struct {
	byID map[string]*entity.Company
}

func (f *fakeCompanyRepo) Create(c *entity.Company) error            { f.byID[c.ID] = c; return nil }
func (f *fakeCompanyRepo) GetByID(id string) (*entity.Company, error) { return f.byID[id], nil }
func (f *fakeCompanyRepo) GetByNIT(string) (*entity.Company, error)   { return nil, nil }
func (f *fakeCompanyRepo) Update(c *entity.Company) error             { f.byID[c.ID] = c; return nil }
func (f *fakeCompanyRepo) List(int, int) ([]*entity.Company, error)   { return nil, nil }
func (f *fakeCompanyRepo) ListAll() ([]*entity.Company, error) {
	var out []*entity.Company
	for _, c := range f.byID {
		out = append(out, c)
	}
	return out, nil
}
func (f *fakeCompanyRepo) ListChildren(string) ([]*entity.Company, error) { return nil, nil }
func (f *fakeCompanyRepo) Delete(id string) error                         { delete(f.byID, id); return nil }

type notifierCall struct {
	companyID    string
	templateCode string
	recipient    string
	data         any
}

type fakeNotifier struct {
	calls []notifierCall
}

func (f *fakeNotifier) Queue(_ context.Context, companyID, templateCode, recipient string, data any) (string, error) {
	f.calls = append(f.calls, notifierCall{companyID, templateCode, recipient, data})
	return "log-1", nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Escenario base
// ──────────────────────────────────────────────────────────────────────────────

func pendingInvoice() *entity.Invoice {
	return &entity.Invoice{
		ID:         "inv-1",
		CompanyID:  "c1",
		FileID:     "f1",
		Number:     "FV-1042",
		IssueDate:  time.Date(2026, 5, 10, 0, 0, 0, 0, time.UTC),
		NetTotal:   decimal.NewFromInt(1000000),
		TaxTotal:   decimal.NewFromInt(190000),
		GrandTotal: decimal.NewFromInt(1190000),
		Currency:   "COP",
		Status:     entity.DocStatusNeedsReview,
	}
}

func baseScenario() (*fakeInvoiceRepo, *fakeSupplierRepo, *fakeCompanyRepo, *fakeNotifier) {
	invoices := newFakeInvoiceRepo(pendingInvoice())
	suppliers := &fakeSupplierRepo{byID: map[string]*entity.Supplier{
		"s1": {ID: "s1", CompanyID: "c1", Code: "PRV-014", Name: "Ferretería La 14", Status: "active"},
	}}
	companies := &fakeCompanyRepo{byID: map[string]*entity.Company{
		"c1": {ID: "c1", Name: "Comercial Andina", Email: "pagos@andina.co", Status: "active"},
	}}
	return invoices, suppliers, companies, &fakeNotifier{}
}

// ──────────────────────────────────────────────────────────────────────────────
// AssignSupplier
// ──────────────────────────────────────────────────────────────────────────────

func TestAssignSupplier_RegistraYNotifica(t *testing.T) {
	invoices, suppliers, companies, notifier := baseScenario()
	uc := docs.NewInvoiceUseCase(invoices, suppliers, companies, notifier)

	resp, err := uc.AssignSupplier(context.Background(), "inv-1", "s1")
	require.NoError(t, err)
	assert.Equal(t, entity.DocStatusRegistered, resp.Status)
	assert.Equal(t, "s1", resp.SupplierID)
	assert.Equal(t, "1190000.00", resp.GrandTotal)

	require.Len(t, notifier.calls, 1)
	call := notifier.calls[0]
	assert.Equal(t, entity.EmailTplDocumentRegistered, call.templateCode)
	assert.Equal(t, "pagos@andina.co", call.recipient)
	data := call.data.(map[string]string)
	assert.Equal(t, "FV-1042", data["Number"])
	assert.Equal(t, "Ferretería La 14", data["SupplierName"])
}

func TestAssignSupplier_DocumentoYaRegistrado(t *testing.T) {
	invoices, suppliers, companies, notifier := baseScenario()
	invoices.byID["inv-1"].Status = entity.DocStatusRegistered
	uc := docs.NewInvoiceUseCase(invoices, suppliers, companies, notifier)

	_, err := uc.AssignSupplier(context.Background(), "inv-1", "s1")
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Empty(t, notifier.calls)
}

func TestAssignSupplier_ProveedorDeOtraEmpresa(t *testing.T) {
	invoices, suppliers, companies, notifier := baseScenario()
	suppliers.byID["s2"] = &entity.Supplier{ID: "s2", CompanyID: "c2", Name: "Otro", Status: "active"}
	uc := docs.NewInvoiceUseCase(invoices, suppliers, companies, notifier)

	_, err := uc.AssignSupplier(context.Background(), "inv-1", "s2")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestAssignSupplier_NumeroDuplicadoParaElProveedor(t *testing.T) {
	invoices, suppliers, companies, notifier := baseScenario()
	invoices.byID["inv-0"] = &entity.Invoice{
		ID: "inv-0", CompanyID: "c1", SupplierID: "s1", Number: "FV-1042",
		Status: entity.DocStatusRegistered,
	}
	uc := docs.NewInvoiceUseCase(invoices, suppliers, companies, notifier)

	_, err := uc.AssignSupplier(context.Background(), "inv-1", "s1")
	assert.ErrorIs(t, err, domain.ErrDuplicate)
	assert.Equal(t, entity.DocStatusNeedsReview, invoices.byID["inv-1"].Status)
}

func TestAssignSupplier_FacturaInexistente(t *testing.T) {
	invoices, suppliers, companies, notifier := baseScenario()
	uc := docs.NewInvoiceUseCase(invoices, suppliers, companies, notifier)

	_, err := uc.AssignSupplier(context.Background(), "no-existe", "s1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// List / GetByID
// ──────────────────────────────────────────────────────────────────────────────

func TestListInvoices_FiltraPorEstado(t *testing.T) {
	invoices, suppliers, companies, notifier := baseScenario()
	invoices.byID["inv-2"] = &entity.Invoice{
		ID: "inv-2", CompanyID: "c1", SupplierID: "s1", Number: "FV-2000",
		Status: entity.DocStatusRegistered,
	}
	uc := docs.NewInvoiceUseCase(invoices, suppliers, companies, notifier)

	resp, err := uc.List("c1", dto.DocumentListQuery{Status: entity.DocStatusNeedsReview})
	require.NoError(t, err)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, "inv-1", resp.Items[0].ID)
	assert.Equal(t, 20, resp.Page.Limit, "el límite por defecto debe aplicarse")
}

func TestGetInvoice_NoExiste(t *testing.T) {
	invoices, suppliers, companies, notifier := baseScenario()
	uc := docs.NewInvoiceUseCase(invoices, suppliers, companies, notifier)

	_, err := uc.GetByID("ghost")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
