package dto

// LoginRequest entrada para login (primer factor).
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse salida del primer factor. Si el usuario tiene 2FA activo,
// Token va vacío, TwoFactorRequired es true y el cliente debe llamar a
// /auth/verify-2fa con el ChallengeID.
type LoginResponse struct {
	Token             string       `json:"token,omitempty"`
	TwoFactorRequired bool         `json:"two_factor_required,omitempty"`
	TwoFactorMethod   string       `json:"two_factor_method,omitempty"`
	ChallengeID       string       `json:"challenge_id,omitempty"`
	User              UserResponse `json:"user"`
}

// Verify2FARequest entrada para el segundo factor (TOTP o código por correo).
type Verify2FARequest struct {
	ChallengeID string `json:"challenge_id" validate:"required"`
	Code        string `json:"code" validate:"required,min=6,max=8"`
}

// EnableTOTPResponse salida al habilitar TOTP: secreto y URL otpauth:// para el QR.
type EnableTOTPResponse struct {
	Secret     string `json:"secret"`
	OTPAuthURL string `json:"otpauth_url"`
}
