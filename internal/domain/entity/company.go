package entity

import "time"

// Company representa una empresa del portal. Las empresas forman una jerarquía
// (holding → filiales → sedes) vía ParentID; los documentos se asocian a la hoja.
type Company struct {
	ID            string
	ParentID      string // vacío = raíz de la jerarquía
	Name          string
	NIT           string // NIT colombiano (con o sin dígito de verificación)
	Address       string
	Phone         string
	Email         string
	Status        string // active, suspended, inactive
	RetentionDays int    // 0 = usar el valor global de settings
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
