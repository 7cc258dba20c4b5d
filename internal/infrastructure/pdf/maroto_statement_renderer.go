// Package pdf genera el resumen imprimible de un estado de cuenta de
// proveedor.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Empresa  │  N° Estado + Período                     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  PROVEEDOR: Nombre                                           │
//	│  ─────────────────────────────────────────────────────────  │
//	│  SALDOS: Saldo inicial / Movimiento / Saldo final            │
//	│  ─────────────────────────────────────────────────────────  │
//	│  Nota al pie                                                 │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/Docuport-api/internal/application/docs"
	"github.com/jhoicas/Docuport-api/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Renderer ──────────────────────────────────────────────────────────────────

// MarotoStatementRenderer implementa docs.StatementRenderer usando Maroto v2.
type MarotoStatementRenderer struct{}

var _ docs.StatementRenderer = (*MarotoStatementRenderer)(nil)

// NewMarotoStatementRenderer construye el renderizador.
func NewMarotoStatementRenderer() *MarotoStatementRenderer {
	return &MarotoStatementRenderer{}
}

// RenderSummary genera el PDF resumen y devuelve sus bytes.
func (r *MarotoStatementRenderer) RenderSummary(
	statement *entity.Statement,
	companyName, supplierName string,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Estado de Cuenta", true).
		WithAuthor(companyName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(statement, companyName))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(supplierRow(supplierName))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(balancesRow(statement))
	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRow(statement))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar resumen: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: empresa (izq) y número + período del estado (der).
func headerRow(statement *entity.Statement, companyName string) core.Row {
	periodo := fmt.Sprintf("%s — %s",
		statement.PeriodStart.Format("02/01/2006"),
		statement.PeriodEnd.Format("02/01/2006"),
	)

	return row.New(18).Add(
		col.New(7).Add(
			text.New(companyName, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
		),
		col.New(5).Add(
			text.New("ESTADO DE CUENTA DE PROVEEDOR", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(statement.Number, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New("Período: "+periodo, props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

// supplierRow: proveedor del estado de cuenta.
func supplierRow(supplierName string) core.Row {
	if supplierName == "" {
		supplierName = "(sin asignar)"
	}
	return row.New(12).Add(
		col.New(12).Add(
			text.New("PROVEEDOR", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(supplierName, props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 7,
			}),
		),
	)
}

// balancesRow: saldo inicial, movimiento del período y saldo final.
func balancesRow(statement *entity.Statement) core.Row {
	movement := statement.ClosingBalance.Sub(statement.OpeningBalance)

	label := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2,
		})
	}
	value := func(s string) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1})
	}
	grandLabel := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 2,
		})
	}
	grandValue := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 1,
		})
	}

	currency := statement.Currency
	if currency == "" {
		currency = "COP"
	}

	return row.New(26).Add(
		col.New(3),
		col.New(4).Add(
			label(fmt.Sprintf("Saldo inicial (%s):", currency)),
			label("Movimiento del período:"),
			grandLabel("SALDO FINAL:"),
		),
		col.New(3).Add(
			value("$"+formatMoney(statement.OpeningBalance.StringFixed(0))),
			value("$"+formatMoney(movement.StringFixed(0))),
			grandValue("$"+formatMoney(statement.ClosingBalance.StringFixed(0))),
		),
		col.New(2),
	)
}

// footerRow: nota de origen del resumen.
func footerRow(statement *entity.Statement) core.Row {
	return row.New(8).Add(col.New(12).Add(
		text.New(
			fmt.Sprintf(
				"Resumen generado a partir del estado de cuenta %s reportado por el proveedor. "+
					"El documento original permanece disponible en el portal.",
				statement.Number,
			),
			props.Text{Size: 6.5, Color: colorGray, Top: 2},
		),
	))
}

// ── helpers ───────────────────────────────────────────────────────────────────

// formatMoney inserta puntos de miles en un string numérico sin decimales.
// Maneja el signo para movimientos negativos: "-25000" → "-25.000".
func formatMoney(s string) string {
	neg := false
	if len(s) > 0 && s[0] == '-' {
		neg = true
		s = s[1:]
	}
	n := len(s)
	if n > 3 {
		buf := make([]byte, 0, n+n/3)
		for i, c := range []byte(s) {
			if i > 0 && (n-i)%3 == 0 {
				buf = append(buf, '.')
			}
			buf = append(buf, c)
		}
		s = string(buf)
	}
	if neg {
		return "-" + s
	}
	return s
}
