// seed_templates genera el script SQL que siembra las plantillas de correo
// del portal y los settings operativos con sus valores por defecto.
//
// Uso: go run ./cmd/seed_templates
// Escribe: internal/infrastructure/postgres/migrations/002_seed_templates.sql
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

type emailSeed struct {
	code    string
	subject string
	body    string
}

// Plantillas text/template; los placeholders deben existir en los datos que
// envía cada flujo (missingkey=error al renderizar).
var emailSeeds = []emailSeed{
	{
		code:    "document_registered",
		subject: "Documento {{.Number}} registrado",
		body: `<p>Se registró el documento <strong>{{.Number}}</strong> del proveedor {{.SupplierName}}.</p>
<p>Valor total: <strong>${{.Total}}</strong>.</p>
<p>Puede consultarlo en el portal de documentos.</p>`,
	},
	{
		code:    "document_needs_review",
		subject: "Documento {{.Number}} requiere revisión",
		body: `<p>El documento <strong>{{.Number}}</strong> quedó en revisión: no fue posible resolver el proveedor automáticamente.</p>
<p>Proveedor detectado: {{.SupplierName}}. Valor total: ${{.Total}}.</p>
<p>Asigne el proveedor desde el portal para completar el registro.</p>`,
	},
	{
		code:    "two_factor_code",
		subject: "Su código de verificación",
		body: `<p>Hola {{.Name}},</p>
<p>Su código de verificación es: <strong>{{.Code}}</strong></p>
<p>El código expira en pocos minutos. Si no intentó iniciar sesión, ignore este correo.</p>`,
	},
}

// Settings operativos con los mismos valores por defecto del código.
var settingSeeds = [][2]string{
	{"cleanup_frequency_minutes", "60"},
	{"purge_frequency_minutes", "1440"},
	{"scan_frequency_minutes", "15"},
	{"retention_days", "365"},
}

func main() {
	moduleRoot := findModuleRoot()
	outPath := filepath.Join(moduleRoot, "internal", "infrastructure", "postgres", "migrations", "002_seed_templates.sql")
	out, err := os.Create(outPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Crear archivo: %v\n", err)
		os.Exit(1)
	}
	defer out.Close()

	out.WriteString("-- Plantillas de correo y settings operativos por defecto\n")
	out.WriteString("-- Generado por cmd/seed_templates\n\n")

	out.WriteString("-- 1. Plantillas de correo\n")
	for _, s := range emailSeeds {
		fmt.Fprintf(out, "INSERT INTO email_templates (id, code, subject, body, active, created_at, updated_at)\n")
		fmt.Fprintf(out, "VALUES (gen_random_uuid(), '%s', '%s', '%s', TRUE, now(), now())\n",
			s.code, escapeSQL(s.subject), escapeSQL(s.body))
		out.WriteString("ON CONFLICT (code) DO UPDATE SET subject = EXCLUDED.subject, body = EXCLUDED.body, updated_at = now();\n\n")
	}

	out.WriteString("-- 2. Settings operativos\n")
	out.WriteString("INSERT INTO settings (key, value, updated_at) VALUES\n")
	for i, s := range settingSeeds {
		sep := ","
		if i == len(settingSeeds)-1 {
			sep = ""
		}
		fmt.Fprintf(out, "  ('%s', '%s', now())%s\n", s[0], s[1], sep)
	}
	out.WriteString("ON CONFLICT (key) DO NOTHING;\n")

	fmt.Printf("Generado %s: %d plantillas, %d settings\n", outPath, len(emailSeeds), len(settingSeeds))
}

func escapeSQL(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}

func findModuleRoot() string {
	dir, _ := os.Getwd()
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return dir
		}
		dir = parent
	}
}
