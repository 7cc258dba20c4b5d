package ingest

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Docuport-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// parseMoney
// ──────────────────────────────────────────────────────────────────────────────

func TestParseMoney(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"1.234.567,89", "1234567.89"}, // formato colombiano completo
		{"1.234.567", "1234567"},       // miles con punto, sin decimales
		{"$ 1.190.000", "1190000"},
		{"1234567.89", "1234567.89"}, // punto decimal
		{"1.25", "1.25"},             // un solo punto con dos decimales: decimal
		{"950,50", "950.5"},
		{"0", "0"},
	}
	for _, c := range cases {
		got, err := parseMoney(c.in)
		require.NoError(t, err, "entrada %q", c.in)
		assert.Equal(t, c.want, got.String(), "entrada %q", c.in)
	}
}

func TestParseMoney_Invalido(t *testing.T) {
	for _, in := range []string{"", "   ", "N/A", "12a34"} {
		_, err := parseMoney(in)
		assert.Error(t, err, "entrada %q", in)
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// parseDate
// ──────────────────────────────────────────────────────────────────────────────

func TestParseDate(t *testing.T) {
	want := time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC)
	for _, in := range []string{"2026-03-05", "05/03/2026", "5/3/2026", "05-03-2026", "2026/03/05"} {
		got, err := parseDate(in)
		require.NoError(t, err, "entrada %q", in)
		assert.True(t, got.Equal(want), "entrada %q: %v", in, got)
	}

	_, err := parseDate("marzo 5 de 2026")
	assert.Error(t, err)
}

// ──────────────────────────────────────────────────────────────────────────────
// buildInvoice
// ──────────────────────────────────────────────────────────────────────────────

func TestBuildInvoice_Completa(t *testing.T) {
	inv, err := buildInvoice(extracted{
		entity.FieldNumber:     " FV-1042 ",
		entity.FieldIssueDate:  "10/05/2026",
		entity.FieldDueDate:    "09/06/2026",
		entity.FieldNetTotal:   "1.000.000",
		entity.FieldTaxTotal:   "190.000",
		entity.FieldGrandTotal: "1.190.000",
	})
	require.NoError(t, err)
	assert.Equal(t, "FV-1042", inv.Number)
	assert.Equal(t, "1190000", inv.GrandTotal.String())
	require.NotNil(t, inv.DueDate)
	assert.Equal(t, "COP", inv.Currency)
}

func TestBuildInvoice_TotalCalculado(t *testing.T) {
	inv, err := buildInvoice(extracted{
		entity.FieldNumber:    "FV-7",
		entity.FieldIssueDate: "2026-01-15",
		entity.FieldNetTotal:  "100.000",
		entity.FieldTaxTotal:  "19.000",
	})
	require.NoError(t, err)
	assert.Equal(t, "119000", inv.GrandTotal.String())
}

func TestBuildInvoice_CamposObligatorios(t *testing.T) {
	_, err := buildInvoice(extracted{entity.FieldIssueDate: "2026-01-15", entity.FieldGrandTotal: "100"})
	assert.Error(t, err, "sin número debe fallar")

	_, err = buildInvoice(extracted{entity.FieldNumber: "FV-1", entity.FieldGrandTotal: "100"})
	assert.Error(t, err, "sin fecha debe fallar")

	_, err = buildInvoice(extracted{entity.FieldNumber: "FV-1", entity.FieldIssueDate: "2026-01-15"})
	assert.Error(t, err, "sin ningún total debe fallar")
}

// ──────────────────────────────────────────────────────────────────────────────
// buildCreditNote / buildStatement
// ──────────────────────────────────────────────────────────────────────────────

func TestBuildCreditNote(t *testing.T) {
	note, err := buildCreditNote(extracted{
		entity.FieldNumber:        "NC-33",
		entity.FieldIssueDate:     "01/06/2026",
		entity.FieldGrandTotal:    "250.000",
		entity.FieldInvoiceNumber: "FV-1042",
	})
	require.NoError(t, err)
	assert.Equal(t, "250000", note.Total.String())
	assert.Equal(t, "FV-1042", note.InvoiceNumber)
}

func TestBuildStatement(t *testing.T) {
	st, err := buildStatement(extracted{
		entity.FieldNumber:         "EC-2026-05",
		entity.FieldPeriodStart:    "01/05/2026",
		entity.FieldPeriodEnd:      "31/05/2026",
		entity.FieldOpeningBalance: "500.000",
		entity.FieldClosingBalance: "1.200.000,50",
	})
	require.NoError(t, err)
	assert.Equal(t, "500000", st.OpeningBalance.String())
	assert.Equal(t, "1200000.5", st.ClosingBalance.String())
}

func TestBuildStatement_PeriodoInvertido(t *testing.T) {
	_, err := buildStatement(extracted{
		entity.FieldNumber:         "EC-1",
		entity.FieldPeriodStart:    "31/05/2026",
		entity.FieldPeriodEnd:      "01/05/2026",
		entity.FieldClosingBalance: "100",
	})
	assert.Error(t, err)
}

// ──────────────────────────────────────────────────────────────────────────────
// fileKindFromName
// ──────────────────────────────────────────────────────────────────────────────

func TestFileKindFromName(t *testing.T) {
	assert.Equal(t, entity.TemplateKindPDF, fileKindFromName("Factura FV-1042.PDF"))
	assert.Equal(t, entity.TemplateKindExcel, fileKindFromName("estado.xlsx"))
	assert.Equal(t, "", fileKindFromName("notas.txt"))
}

func TestFileKindFromName_RechazaXlsBinario(t *testing.T) {
	// El extractor de Excel no abre el formato binario antiguo: aceptarlo
	// dejaría el archivo condenado a failed en cada reintento.
	assert.Equal(t, "", fileKindFromName("viejo.xls"))
	assert.Equal(t, "", fileKindFromName("ESTADO_2024.XLS"))
}
