package ingest

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Docuport-api/internal/domain/entity"
)

// dateLayouts formatos de fecha aceptados, en orden de preferencia. El formato
// día/mes es el habitual en documentos colombianos.
var dateLayouts = []string{
	"2006-01-02",
	"02/01/2006",
	"2/1/2006",
	"02-01-2006",
	"2006/01/02",
}

func parseDate(raw string) (time.Time, error) {
	s := strings.TrimSpace(raw)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("fecha no reconocida: %q", raw)
}

// groupedThousands reconoce montos con puntos de miles sin decimales: 1.234.567
var groupedThousands = regexp.MustCompile(`^\d{1,3}(\.\d{3})+$`)

// parseMoney interpreta un monto en formato colombiano (1.234.567,89) o en
// formato con punto decimal (1234567.89).
func parseMoney(raw string) (decimal.Decimal, error) {
	s := strings.TrimSpace(raw)
	s = strings.TrimPrefix(s, "$")
	s = strings.ReplaceAll(s, " ", "")
	if s == "" {
		return decimal.Zero, fmt.Errorf("monto vacío")
	}
	if strings.Contains(s, ",") {
		s = strings.ReplaceAll(s, ".", "")
		s = strings.Replace(s, ",", ".", 1)
	} else if groupedThousands.MatchString(s) {
		s = strings.ReplaceAll(s, ".", "")
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("monto no reconocido: %q", raw)
	}
	return d, nil
}

// extracted son los campos crudos que devolvió el extractor para una plantilla.
type extracted map[string]string

func (e extracted) has(name string) bool { return strings.TrimSpace(e[name]) != "" }

// buildInvoice arma una factura a partir de los campos extraídos. Devuelve
// error si falta alguno de los campos obligatorios (número, fecha, total).
func buildInvoice(fields extracted) (*entity.Invoice, error) {
	if !fields.has(entity.FieldNumber) {
		return nil, fmt.Errorf("falta el número de factura")
	}
	issue, err := parseDate(fields[entity.FieldIssueDate])
	if err != nil {
		return nil, fmt.Errorf("fecha de emisión: %w", err)
	}
	inv := &entity.Invoice{
		Number:    strings.TrimSpace(fields[entity.FieldNumber]),
		IssueDate: issue,
		Currency:  "COP",
	}
	if fields.has(entity.FieldDueDate) {
		due, err := parseDate(fields[entity.FieldDueDate])
		if err != nil {
			return nil, fmt.Errorf("fecha de vencimiento: %w", err)
		}
		inv.DueDate = &due
	}
	if fields.has(entity.FieldNetTotal) {
		if inv.NetTotal, err = parseMoney(fields[entity.FieldNetTotal]); err != nil {
			return nil, err
		}
	}
	if fields.has(entity.FieldTaxTotal) {
		if inv.TaxTotal, err = parseMoney(fields[entity.FieldTaxTotal]); err != nil {
			return nil, err
		}
	}
	switch {
	case fields.has(entity.FieldGrandTotal):
		if inv.GrandTotal, err = parseMoney(fields[entity.FieldGrandTotal]); err != nil {
			return nil, err
		}
	case fields.has(entity.FieldNetTotal):
		// Sin total impreso: se calcula de neto + impuestos.
		inv.GrandTotal = inv.NetTotal.Add(inv.TaxTotal)
	default:
		return nil, fmt.Errorf("falta el total de la factura")
	}
	return inv, nil
}

// buildCreditNote arma una nota crédito. El total de la nota llega en el campo
// grand_total de la plantilla.
func buildCreditNote(fields extracted) (*entity.CreditNote, error) {
	if !fields.has(entity.FieldNumber) {
		return nil, fmt.Errorf("falta el número de la nota crédito")
	}
	issue, err := parseDate(fields[entity.FieldIssueDate])
	if err != nil {
		return nil, fmt.Errorf("fecha de emisión: %w", err)
	}
	if !fields.has(entity.FieldGrandTotal) {
		return nil, fmt.Errorf("falta el total de la nota crédito")
	}
	total, err := parseMoney(fields[entity.FieldGrandTotal])
	if err != nil {
		return nil, err
	}
	return &entity.CreditNote{
		Number:        strings.TrimSpace(fields[entity.FieldNumber]),
		IssueDate:     issue,
		Total:         total,
		Currency:      "COP",
		InvoiceNumber: strings.TrimSpace(fields[entity.FieldInvoiceNumber]),
	}, nil
}

// buildStatement arma un estado de cuenta.
func buildStatement(fields extracted) (*entity.Statement, error) {
	if !fields.has(entity.FieldNumber) {
		return nil, fmt.Errorf("falta el número del estado de cuenta")
	}
	start, err := parseDate(fields[entity.FieldPeriodStart])
	if err != nil {
		return nil, fmt.Errorf("inicio del período: %w", err)
	}
	end, err := parseDate(fields[entity.FieldPeriodEnd])
	if err != nil {
		return nil, fmt.Errorf("fin del período: %w", err)
	}
	if end.Before(start) {
		return nil, fmt.Errorf("el período termina antes de empezar")
	}
	if !fields.has(entity.FieldClosingBalance) {
		return nil, fmt.Errorf("falta el saldo final")
	}
	closing, err := parseMoney(fields[entity.FieldClosingBalance])
	if err != nil {
		return nil, err
	}
	st := &entity.Statement{
		Number:         strings.TrimSpace(fields[entity.FieldNumber]),
		PeriodStart:    start,
		PeriodEnd:      end,
		ClosingBalance: closing,
		Currency:       "COP",
	}
	if fields.has(entity.FieldOpeningBalance) {
		if st.OpeningBalance, err = parseMoney(fields[entity.FieldOpeningBalance]); err != nil {
			return nil, err
		}
	}
	return st, nil
}

// fileKindFromName deduce el tipo de archivo por la extensión. Devuelve vacío
// si la extensión no está soportada.
func fileKindFromName(name string) string {
	lower := strings.ToLower(name)
	switch {
	case strings.HasSuffix(lower, ".pdf"):
		return entity.TemplateKindPDF
	case strings.HasSuffix(lower, ".xlsx"):
		// El .xls binario antiguo queda fuera: el extractor de Excel no lo
		// puede abrir, así que se rechaza en la puerta en vez de aceptarlo
		// y dejarlo morir en failed.
		return entity.TemplateKindExcel
	default:
		return ""
	}
}
