// Package match implementa el emparejamiento difuso de proveedores por nombre.
//
// Cuando un documento no trae código de proveedor (o el código no existe), se
// compara el nombre extraído contra los proveedores activos de la empresa
// usando similitud de Levenshtein normalizada sobre nombres canonicalizados
// (minúsculas, sin tildes, sin sufijos societarios como "S.A.S" o "LTDA").
//
// El emparejamiento solo se acepta si supera el umbral Y le saca margen
// suficiente al segundo mejor candidato; de lo contrario el documento queda
// en revisión manual en vez de adivinarse.
package match

import (
	"strings"
	"unicode"

	"github.com/agnivade/levenshtein"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Umbrales por defecto, calibrados con nombres de proveedores reales:
// 0.82 acepta errores de OCR de 1-3 caracteres en nombres medianos sin
// confundir razones sociales distintas del mismo sector.
const (
	DefaultThreshold = 0.82
	DefaultMargin    = 0.05
)

// Candidate un proveedor candidato para el emparejamiento.
type Candidate struct {
	ID   string
	Name string
}

// Match resultado de un emparejamiento aceptado.
type Match struct {
	ID         string
	Name       string
	Similarity float64
}

// Matcher empareja nombres de proveedor con umbral y margen configurables.
type Matcher struct {
	Threshold float64 // similitud mínima aceptada [0,1]
	Margin    float64 // ventaja mínima sobre el segundo candidato
}

// NewMatcher construye un matcher con los umbrales por defecto.
func NewMatcher() *Matcher {
	return &Matcher{Threshold: DefaultThreshold, Margin: DefaultMargin}
}

// sufijos societarios que no aportan al emparejamiento
var legalSuffixes = []string{
	"s a s", "sas", "s a", "sa", "ltda", "s en c", "e u", "eu", "y cia", "cia",
}

var stripAccents = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Normalize canonicaliza un nombre: minúsculas, sin tildes, solo letras/dígitos
// separados por un espacio, y sin sufijo societario final.
func Normalize(name string) string {
	s, _, err := transform.String(stripAccents, strings.ToLower(name))
	if err != nil {
		s = strings.ToLower(name)
	}
	var b strings.Builder
	lastSpace := true
	for _, r := range s {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			lastSpace = false
		default:
			if !lastSpace {
				b.WriteRune(' ')
				lastSpace = true
			}
		}
	}
	out := strings.TrimSpace(b.String())
	for _, suf := range legalSuffixes {
		if out == suf {
			break // el nombre completo es el sufijo; no queda nada que recortar
		}
		if strings.HasSuffix(out, " "+suf) {
			out = strings.TrimSpace(strings.TrimSuffix(out, " "+suf))
			break
		}
	}
	return out
}

// Similarity devuelve la similitud normalizada [0,1] entre dos nombres ya
// canonicalizados: 1 - distancia/len(mayor).
func Similarity(a, b string) float64 {
	if a == "" || b == "" {
		return 0
	}
	if a == b {
		return 1
	}
	dist := levenshtein.ComputeDistance(a, b)
	maxLen := len([]rune(a))
	if l := len([]rune(b)); l > maxLen {
		maxLen = l
	}
	return 1 - float64(dist)/float64(maxLen)
}

// Best empareja el nombre extraído contra los candidatos. Devuelve nil si
// ningún candidato supera el umbral o si el mejor no le saca el margen al
// segundo (empate ambiguo → revisión manual).
func (m *Matcher) Best(extracted string, candidates []Candidate) *Match {
	target := Normalize(extracted)
	if target == "" || len(candidates) == 0 {
		return nil
	}

	var best, second float64
	var bestCand *Candidate
	for i := range candidates {
		sim := Similarity(target, Normalize(candidates[i].Name))
		if sim > best {
			second = best
			best = sim
			bestCand = &candidates[i]
		} else if sim > second {
			second = sim
		}
	}

	if bestCand == nil || best < m.Threshold {
		return nil
	}
	// Empate ambiguo: sin margen sobre el segundo, salvo que el mejor sea
	// exacto y el segundo no.
	if best-second < m.Margin && !(best == 1 && second < 1) {
		return nil
	}
	return &Match{ID: bestCand.ID, Name: bestCand.Name, Similarity: best}
}
