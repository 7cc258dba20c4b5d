package match_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Docuport-api/internal/domain/match"
)

// ──────────────────────────────────────────────────────────────────────────────
// Normalize — canonicalización de razones sociales
// ──────────────────────────────────────────────────────────────────────────────

func TestNormalize_MinusculasSinTildes(t *testing.T) {
	assert.Equal(t, "distribuciones el cafe", match.Normalize("Distribuciones El Café"))
}

func TestNormalize_RecortaSufijoSocietario(t *testing.T) {
	cases := map[string]string{
		"Almacenes Éxito S.A.":        "almacenes exito",
		"Ferretería La 14 S.A.S":      "ferreteria la 14",
		"Transportes Díaz LTDA":       "transportes diaz",
		"Suministros Andinos y Cía.":  "suministros andinos",
		"Lácteos del Valle S.A.S.":    "lacteos del valle",
	}
	for in, want := range cases {
		assert.Equal(t, want, match.Normalize(in), "entrada: %s", in)
	}
}

func TestNormalize_PuntuacionYEspacios(t *testing.T) {
	assert.Equal(t, "j perez hnos", match.Normalize("  J. Pérez & Hnos.  "))
}

func TestNormalize_SoloSufijo_NoQuedaVacio(t *testing.T) {
	// Una "razón social" que es solo el sufijo no debe normalizar a cadena vacía.
	assert.Equal(t, "s a s", match.Normalize("S.A.S"))
}

// ──────────────────────────────────────────────────────────────────────────────
// Similarity
// ──────────────────────────────────────────────────────────────────────────────

func TestSimilarity_Identicos(t *testing.T) {
	assert.Equal(t, 1.0, match.Similarity("acme", "acme"))
}

func TestSimilarity_Vacios(t *testing.T) {
	assert.Equal(t, 0.0, match.Similarity("", "acme"))
	assert.Equal(t, 0.0, match.Similarity("acme", ""))
}

func TestSimilarity_UnCaracterDeDiferencia(t *testing.T) {
	// "ferreteria la 14" (16 runas) vs una errata de OCR: distancia 1 → 1 - 1/16
	sim := match.Similarity("ferreteria la 14", "ferreterla la 14")
	assert.InDelta(t, 1.0-1.0/16.0, sim, 1e-9)
}

// ──────────────────────────────────────────────────────────────────────────────
// Best — reglas de aceptación (umbral + margen)
// ──────────────────────────────────────────────────────────────────────────────

func proveedores() []match.Candidate {
	return []match.Candidate{
		{ID: "s1", Name: "Ferretería La 14 S.A.S"},
		{ID: "s2", Name: "Transportes Díaz LTDA"},
		{ID: "s3", Name: "Lácteos del Valle S.A.S."},
	}
}

func TestBest_NombreExacto(t *testing.T) {
	m := match.NewMatcher()
	got := m.Best("FERRETERIA LA 14 SAS", proveedores())
	require.NotNil(t, got, "nombre exacto (salvo mayúsculas y sufijo) debe emparejar")
	assert.Equal(t, "s1", got.ID)
	assert.Equal(t, 1.0, got.Similarity)
}

func TestBest_ErrataDeOCR(t *testing.T) {
	m := match.NewMatcher()
	got := m.Best("Transportes Dlaz", proveedores())
	require.NotNil(t, got, "una errata de un carácter debe superar el umbral")
	assert.Equal(t, "s2", got.ID)
}

func TestBest_NombreMuyDistinto_Rechazado(t *testing.T) {
	m := match.NewMatcher()
	got := m.Best("Panadería El Trigal", proveedores())
	assert.Nil(t, got, "un nombre sin parecido no debe emparejar")
}

func TestBest_EmpateAmbiguo_Rechazado(t *testing.T) {
	m := match.NewMatcher()
	ambiguos := []match.Candidate{
		{ID: "a", Name: "Distribuidora Norte SAS"},
		{ID: "b", Name: "Distribuidora Norte SA"}, // normaliza igual que "a"
	}
	got := m.Best("Distribuidora Norte", ambiguos)
	assert.Nil(t, got, "dos candidatos con el mismo nombre normalizado es ambiguo")
}

func TestBest_ExactoGanaAunConSegundoCercano(t *testing.T) {
	m := match.NewMatcher()
	cands := []match.Candidate{
		{ID: "a", Name: "Comercial Andina SAS"},
		{ID: "b", Name: "Comercial Andinas SAS"},
	}
	got := m.Best("Comercial Andina", cands)
	require.NotNil(t, got, "el emparejamiento exacto gana aunque el margen sea corto")
	assert.Equal(t, "a", got.ID)
}

func TestBest_SinCandidatos(t *testing.T) {
	m := match.NewMatcher()
	assert.Nil(t, m.Best("Cualquiera", nil))
	assert.Nil(t, m.Best("", proveedores()))
}
