package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin  = "admin"  // administra empresas, usuarios, plantillas y ajustes
	RoleGestor = "gestor" // carga y revisa documentos de sus empresas
	RoleLector = "lector" // solo lectura
)

// Métodos de segundo factor.
const (
	TwoFactorNone  = ""      // deshabilitado
	TwoFactorTOTP  = "totp"  // app autenticadora (RFC 6238)
	TwoFactorEmail = "email" // código de un solo uso por correo
)

// User representa un usuario del portal (pertenece a una Company).
type User struct {
	ID              string
	CompanyID       string
	Email           string
	PasswordHash    string // bcrypt hash, nunca plano en dominio después de persistir
	Name            string
	Role            string // admin, gestor, lector
	Status          string // active, inactive, suspended
	TwoFactorMethod string // ver constantes TwoFactor*
	TOTPSecret      string // secreto base32; vacío si el método no es totp
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
