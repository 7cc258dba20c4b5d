package docs_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Docuport-api/internal/application/docs"
	"github.com/jhoicas/Docuport-api/internal/domain"
	"github.com/jhoicas/Docuport-api/internal/domain/entity"
	"github.com/jhoicas/Docuport-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes
// ──────────────────────────────────────────────────────────────────────────────

type fakeStatementRepo struct {
	byID map[string]*entity.Statement
}

func (f *fakeStatementRepo) Create(st *entity.Statement) error { f.byID[st.ID] = st; return nil }
func (f *fakeStatementRepo) GetByID(id string) (*entity.Statement, error) {
	return f.byID[id], nil
}
func (f *fakeStatementRepo) GetByNumber(companyID, supplierID, number string) (*entity.Statement, error) {
	for _, st := range f.byID {
		if st.CompanyID == companyID && st.SupplierID == supplierID && st.Number == number {
			return st, nil
		}
	}
	return nil, nil
}
func (f *fakeStatementRepo) Update(st *entity.Statement) error { f.byID[st.ID] = st; return nil }
func (f *fakeStatementRepo) List(repository.DocumentFilter) ([]*entity.Statement, error) {
	return nil, nil
}
func (f *fakeStatementRepo) ListExpired(string, time.Time) ([]*entity.Statement, error) {
	return nil, nil
}
func (f *fakeStatementRepo) SoftDelete(id string, at time.Time) error {
	if st := f.byID[id]; st != nil {
		st.DeletedAt = &at
	}
	return nil
}

type fakeRenderer struct {
	lastCompany  string
	lastSupplier string
	err          error
}

func (f *fakeRenderer) RenderSummary(st *entity.Statement, companyName, supplierName string) ([]byte, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.lastCompany = companyName
	f.lastSupplier = supplierName
	return []byte("%PDF-1.4 " + st.Number), nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Escenario base
// ──────────────────────────────────────────────────────────────────────────────

func pendingStatement() *entity.Statement {
	return &entity.Statement{
		ID:             "st-1",
		CompanyID:      "c1",
		FileID:         "f1",
		Number:         "EC-2026-05",
		PeriodStart:    time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC),
		PeriodEnd:      time.Date(2026, 5, 31, 0, 0, 0, 0, time.UTC),
		OpeningBalance: decimal.NewFromInt(250000),
		ClosingBalance: decimal.NewFromInt(980000),
		Currency:       "COP",
		Status:         entity.DocStatusNeedsReview,
	}
}

func statementScenario() (*fakeStatementRepo, *fakeSupplierRepo, *fakeCompanyRepo, *fakeNotifier, *fakeRenderer) {
	statements := &fakeStatementRepo{byID: map[string]*entity.Statement{"st-1": pendingStatement()}}
	suppliers := &fakeSupplierRepo{byID: map[string]*entity.Supplier{
		"s1": {ID: "s1", CompanyID: "c1", Code: "PRV-014", Name: "Ferretería La 14", Status: "active"},
	}}
	companies := &fakeCompanyRepo{byID: map[string]*entity.Company{
		"c1": {ID: "c1", Name: "Comercial Andina", Email: "pagos@andina.co", Status: "active"},
	}}
	return statements, suppliers, companies, &fakeNotifier{}, &fakeRenderer{}
}

// ──────────────────────────────────────────────────────────────────────────────
// AssignSupplier
// ──────────────────────────────────────────────────────────────────────────────

func TestAssignStatementSupplier_RegistraYNotifica(t *testing.T) {
	statements, suppliers, companies, notifier, renderer := statementScenario()
	uc := docs.NewStatementUseCase(statements, suppliers, companies, notifier, renderer)

	resp, err := uc.AssignSupplier(context.Background(), "st-1", "s1")
	require.NoError(t, err)
	assert.Equal(t, entity.DocStatusRegistered, resp.Status)
	assert.Equal(t, "980000.00", resp.ClosingBalance)

	require.Len(t, notifier.calls, 1)
	data := notifier.calls[0].data.(map[string]string)
	assert.Equal(t, "EC-2026-05", data["Number"])
	assert.Equal(t, "980000.00", data["Total"], "el total notificado debe ser el saldo de cierre")
}

func TestAssignStatementSupplier_YaRegistrado(t *testing.T) {
	statements, suppliers, companies, notifier, renderer := statementScenario()
	statements.byID["st-1"].Status = entity.DocStatusRegistered
	uc := docs.NewStatementUseCase(statements, suppliers, companies, notifier, renderer)

	_, err := uc.AssignSupplier(context.Background(), "st-1", "s1")
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Empty(t, notifier.calls)
}

// ──────────────────────────────────────────────────────────────────────────────
// SummaryPDF
// ──────────────────────────────────────────────────────────────────────────────

func TestSummaryPDF_GeneraConNombreDePeriodo(t *testing.T) {
	statements, suppliers, companies, notifier, renderer := statementScenario()
	statements.byID["st-1"].SupplierID = "s1"
	uc := docs.NewStatementUseCase(statements, suppliers, companies, notifier, renderer)

	content, name, err := uc.SummaryPDF("st-1")
	require.NoError(t, err)
	assert.NotEmpty(t, content)
	assert.Equal(t, "estado-cuenta-EC-2026-05-2026-05.pdf", name)
	assert.Equal(t, "Comercial Andina", renderer.lastCompany)
	assert.Equal(t, "Ferretería La 14", renderer.lastSupplier)
}

func TestSummaryPDF_SinProveedorAsignado(t *testing.T) {
	statements, suppliers, companies, notifier, renderer := statementScenario()
	uc := docs.NewStatementUseCase(statements, suppliers, companies, notifier, renderer)

	_, _, err := uc.SummaryPDF("st-1")
	require.NoError(t, err)
	assert.Empty(t, renderer.lastSupplier, "sin proveedor asignado el nombre va vacío")
}

func TestSummaryPDF_EstadoInexistente(t *testing.T) {
	statements, suppliers, companies, notifier, renderer := statementScenario()
	uc := docs.NewStatementUseCase(statements, suppliers, companies, notifier, renderer)

	_, _, err := uc.SummaryPDF("ghost")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSummaryPDF_ErrorDelRenderer(t *testing.T) {
	statements, suppliers, companies, notifier, renderer := statementScenario()
	renderer.err = errors.New("fuente no disponible")
	uc := docs.NewStatementUseCase(statements, suppliers, companies, notifier, renderer)

	_, _, err := uc.SummaryPDF("st-1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "EC-2026-05")
}
