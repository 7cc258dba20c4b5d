package docs_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Docuport-api/internal/application/docs"
	"github.com/jhoicas/Docuport-api/internal/domain/entity"
	"github.com/jhoicas/Docuport-api/internal/domain/repository"
)

type fakeCreditNoteRepo struct {
	byID map[string]*entity.CreditNote
}

func (f *fakeCreditNoteRepo) Create(n *entity.CreditNote) error { f.byID[n.ID] = n; return nil }
func (f *fakeCreditNoteRepo) GetByID(id string) (*entity.CreditNote, error) {
	return f.byID[id], nil
}
func (f *fakeCreditNoteRepo) GetByNumber(companyID, supplierID, number string) (*entity.CreditNote, error) {
	for _, n := range f.byID {
		if n.CompanyID == companyID && n.SupplierID == supplierID && n.Number == number {
			return n, nil
		}
	}
	return nil, nil
}
func (f *fakeCreditNoteRepo) Update(n *entity.CreditNote) error { f.byID[n.ID] = n; return nil }
func (f *fakeCreditNoteRepo) List(repository.DocumentFilter) ([]*entity.CreditNote, error) {
	return nil, nil
}
func (f *fakeCreditNoteRepo) ListExpired(companyID string, before time.Time) ([]*entity.CreditNote, error) {
	var out []*entity.CreditNote
	for _, n := range f.byID {
		if n.CompanyID == companyID && n.DeletedAt == nil && n.IssueDate.Before(before) {
			out = append(out, n)
		}
	}
	return out, nil
}
func (f *fakeCreditNoteRepo) SoftDelete(id string, at time.Time) error {
	if n := f.byID[id]; n != nil {
		n.Status = entity.DocStatusPurged
		n.DeletedAt = &at
	}
	return nil
}

type fakeRetentionStatementRepo struct {
	byID map[string]*entity.Statement
}

func (f *fakeRetentionStatementRepo) Create(s *entity.Statement) error { f.byID[s.ID] = s; return nil }
func (f *fakeRetentionStatementRepo) GetByID(id string) (*entity.Statement, error) {
	return f.byID[id], nil
}
func (f *fakeRetentionStatementRepo) GetByNumber(companyID, supplierID, number string) (*entity.Statement, error) {
	for _, s := range f.byID {
		if s.CompanyID == companyID && s.SupplierID == supplierID && s.Number == number {
			return s, nil
		}
	}
	return nil, nil
}
func (f *fakeRetentionStatementRepo) Update(s *entity.Statement) error { f.byID[s.ID] = s; return nil }
func (f *fakeRetentionStatementRepo) List(repository.DocumentFilter) ([]*entity.Statement, error) {
	return nil, nil
}
func (f *fakeRetentionStatementRepo) ListExpired(companyID string, before time.Time) ([]*entity.Statement, error) {
	var out []*entity.Statement
	for _, s := range f.byID {
		if s.CompanyID == companyID && s.DeletedAt == nil && s.PeriodEnd.Before(before) {
			out = append(out, s)
		}
	}
	return out, nil
}
func (f *fakeRetentionStatementRepo) SoftDelete(id string, at time.Time) error {
	if s := f.byID[id]; s != nil {
		s.Status = entity.DocStatusPurged
		s.DeletedAt = &at
	}
	return nil
}

type fakeFileRepo struct {
	byID    map[string]*entity.DocumentFile
	deleted []string
}

func (f *fakeFileRepo) Create(file *entity.DocumentFile) error { f.byID[file.ID] = file; return nil }
func (f *fakeFileRepo) GetByID(id string) (*entity.DocumentFile, error) {
	return f.byID[id], nil
}
func (f *fakeFileRepo) GetBySHA256(hash string) (*entity.DocumentFile, error) {
	for _, file := range f.byID {
		if file.SHA256 == hash {
			return file, nil
		}
	}
	return nil, nil
}
func (f *fakeFileRepo) Update(file *entity.DocumentFile) error { f.byID[file.ID] = file; return nil }
func (f *fakeFileRepo) ListByCompany(string, int, int) ([]*entity.DocumentFile, error) {
	return nil, nil
}
func (f *fakeFileRepo) ListByStatus(string, int, int) ([]*entity.DocumentFile, error) {
	return nil, nil
}
func (f *fakeFileRepo) Delete(id string) error {
	delete(f.byID, id)
	f.deleted = append(f.deleted, id)
	return nil
}

type fakeRemover struct {
	removed []string
}

func (f *fakeRemover) Remove(path string) error { f.removed = append(f.removed, path); return nil }

type fixedPolicy int

func (p fixedPolicy) RetentionDays() int { return int(p) }

// ──────────────────────────────────────────────────────────────────────────────
// Purge
// ──────────────────────────────────────────────────────────────────────────────

func TestPurge_RespetaRetencionPorEmpresa(t *testing.T) {
	// c1 define 30 días propios; c2 usa la política global de 365.
	companies := &fakeCompanyRepo{byID: map[string]*entity.Company{
		"c1": {ID: "c1", Name: "Andina", RetentionDays: 30},
		"c2": {ID: "c2", Name: "Pacífico"},
	}}

	old := time.Now().AddDate(0, 0, -60)   // vencida para c1, vigente para c2
	ancient := time.Now().AddDate(-2, 0, 0) // vencida para ambas

	invoices := newFakeInvoiceRepo(
		&entity.Invoice{ID: "i1", CompanyID: "c1", FileID: "f1", Number: "FV-1",
			IssueDate: old, GrandTotal: decimal.NewFromInt(100), Status: entity.DocStatusRegistered},
		&entity.Invoice{ID: "i2", CompanyID: "c2", FileID: "f2", Number: "FV-2",
			IssueDate: old, GrandTotal: decimal.NewFromInt(200), Status: entity.DocStatusRegistered},
		&entity.Invoice{ID: "i3", CompanyID: "c2", FileID: "f3", Number: "FV-3",
			IssueDate: ancient, GrandTotal: decimal.NewFromInt(300), Status: entity.DocStatusRegistered},
	)
	notes := &fakeCreditNoteRepo{byID: map[string]*entity.CreditNote{}}
	statements := &fakeRetentionStatementRepo{byID: map[string]*entity.Statement{}}
	files := &fakeFileRepo{byID: map[string]*entity.DocumentFile{
		"f1": {ID: "f1", StoragePath: "ab/f1.pdf"},
		"f3": {ID: "f3", StoragePath: "cd/f3.pdf"},
	}}
	remover := &fakeRemover{}

	uc := docs.NewRetentionUseCase(companies, invoices, notes, statements, files, remover, fixedPolicy(365))
	report, err := uc.Purge()
	require.NoError(t, err)

	assert.Equal(t, 2, report.Invoices)
	assert.Equal(t, 2, report.Files)
	assert.Equal(t, entity.DocStatusPurged, invoices.byID["i1"].Status)
	assert.NotNil(t, invoices.byID["i1"].DeletedAt)
	assert.Equal(t, entity.DocStatusRegistered, invoices.byID["i2"].Status,
		"una factura dentro de la retención global no debe purgarse")
	assert.ElementsMatch(t, []string{"ab/f1.pdf", "cd/f3.pdf"}, remover.removed)
	assert.ElementsMatch(t, []string{"f1", "f3"}, files.deleted)
}

func TestPurge_ArchivoAusenteNoDetiene(t *testing.T) {
	companies := &fakeCompanyRepo{byID: map[string]*entity.Company{
		"c1": {ID: "c1", RetentionDays: 30},
	}}
	old := time.Now().AddDate(0, 0, -90)
	invoices := newFakeInvoiceRepo(
		&entity.Invoice{ID: "i1", CompanyID: "c1", FileID: "huerfano", Number: "FV-1",
			IssueDate: old, Status: entity.DocStatusRegistered},
	)
	files := &fakeFileRepo{byID: map[string]*entity.DocumentFile{}}

	uc := docs.NewRetentionUseCase(companies, invoices,
		&fakeCreditNoteRepo{byID: map[string]*entity.CreditNote{}},
		&fakeRetentionStatementRepo{byID: map[string]*entity.Statement{}},
		files, &fakeRemover{}, fixedPolicy(365))
	report, err := uc.Purge()
	require.NoError(t, err)

	assert.Equal(t, 1, report.Invoices)
	assert.Equal(t, 0, report.Files)
}
