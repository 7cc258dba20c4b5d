package parser

import (
	"testing"

	"github.com/ledongthuc/pdf"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Docuport-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// textInRect — selección de texto posicionado dentro del rectángulo de un campo
// ──────────────────────────────────────────────────────────────────────────────

func frag(x, y, w float64, s string) pdf.Text {
	return pdf.Text{X: x, Y: y, W: w, S: s}
}

func TestTextInRect_FragmentosContiguos(t *testing.T) {
	texts := []pdf.Text{
		frag(100, 700, 20, "FV-"),
		frag(120.5, 700, 30, "1042"),
	}
	field := entity.TemplateField{X: 90, Y: 690, Width: 100, Height: 20}
	assert.Equal(t, "FV-1042", textInRect(texts, field))
}

func TestTextInRect_SeparaConEspacioSiHayHueco(t *testing.T) {
	texts := []pdf.Text{
		frag(100, 700, 40, "Ferretería"),
		frag(150, 700, 20, "La"),
		frag(175, 700, 15, "14"),
	}
	field := entity.TemplateField{X: 90, Y: 690, Width: 150, Height: 20}
	assert.Equal(t, "Ferretería La 14", textInRect(texts, field))
}

func TestTextInRect_IgnoraTextoFueraDelRectangulo(t *testing.T) {
	texts := []pdf.Text{
		frag(100, 700, 30, "950,50"),
		frag(100, 600, 30, "otro valor"), // debajo del rectángulo
		frag(400, 700, 30, "a la derecha"),
	}
	field := entity.TemplateField{X: 90, Y: 690, Width: 100, Height: 20}
	assert.Equal(t, "950,50", textInRect(texts, field))
}

func TestTextInRect_OrdenaLineasDeArribaHaciaAbajo(t *testing.T) {
	// Los fragmentos llegan en orden de flujo del PDF, no visual.
	texts := []pdf.Text{
		frag(100, 680, 30, "segunda"),
		frag(100, 700, 30, "primera"),
	}
	field := entity.TemplateField{X: 90, Y: 670, Width: 100, Height: 40}
	assert.Equal(t, "primera segunda", textInRect(texts, field))
}

func TestTextInRect_ToleranciaVerticalEnLaMismaLinea(t *testing.T) {
	// Superíndices o desajustes de baseline dentro de la tolerancia
	// no deben partir la línea.
	texts := []pdf.Text{
		frag(100, 700, 20, "NIT"),
		frag(125, 701.5, 60, "900123456"),
	}
	field := entity.TemplateField{X: 90, Y: 690, Width: 120, Height: 20}
	assert.Equal(t, "NIT 900123456", textInRect(texts, field))
}

func TestTextInRect_BaselinesEncadenadosQuedanEnUnaLinea(t *testing.T) {
	// Tres fragmentos con Y limítrofes en cadena: cada par vecino cae dentro
	// de la tolerancia aunque los extremos (703 y 700) la excedan. Deben
	// agruparse en una sola línea y ordenarse por X, sin importar el orden
	// de llegada.
	texts := []pdf.Text{
		frag(160, 700, 30, "S.A.S."),
		frag(100, 703, 40, "Ferretería"),
		frag(145, 701.5, 12, "14"),
	}
	field := entity.TemplateField{X: 90, Y: 690, Width: 150, Height: 20}
	assert.Equal(t, "Ferretería 14 S.A.S.", textInRect(texts, field))
}

func TestTextInRect_SinCoincidencias(t *testing.T) {
	texts := []pdf.Text{frag(10, 10, 5, "x")}
	field := entity.TemplateField{X: 500, Y: 500, Width: 50, Height: 20}
	assert.Equal(t, "", textInRect(texts, field))
}
