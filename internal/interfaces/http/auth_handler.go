package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Docuport-api/internal/application/auth"
	"github.com/jhoicas/Docuport-api/internal/application/dto"
)

// AuthHandler maneja login en dos pasos y gestión del segundo factor.
type AuthHandler struct {
	uc *auth.AuthUseCase
}

// NewAuthHandler construye el handler inyectando el caso de uso.
func NewAuthHandler(uc *auth.AuthUseCase) *AuthHandler {
	return &AuthHandler{uc: uc}
}

// Login godoc
// @Summary      Login (primer factor)
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "Credenciales"
// @Success      200   {object}  dto.LoginResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Email == "" || in.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "email y password son requeridos"})
	}
	out, err := h.uc.Login(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Verify2FA godoc
// @Summary      Verificación del segundo factor
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.Verify2FARequest  true  "Reto y código"
// @Success      200   {object}  dto.LoginResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/auth/verify-2fa [post]
func (h *AuthHandler) Verify2FA(c *fiber.Ctx) error {
	var in dto.Verify2FARequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.ChallengeID == "" || in.Code == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "challenge_id y code son requeridos"})
	}
	out, err := h.uc.Verify2FA(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// EnableTOTP godoc
// @Summary      Habilitar TOTP para el usuario autenticado
// @Tags         auth
// @Produce      json
// @Success      200  {object}  dto.EnableTOTPResponse
// @Security     BearerAuth
// @Router       /api/auth/2fa/totp [post]
func (h *AuthHandler) EnableTOTP(c *fiber.Ctx) error {
	out, err := h.uc.EnableTOTP(GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// EnableEmail2FA godoc
// @Summary      Habilitar segundo factor por correo
// @Tags         auth
// @Security     BearerAuth
// @Router       /api/auth/2fa/email [post]
func (h *AuthHandler) EnableEmail2FA(c *fiber.Ctx) error {
	if err := h.uc.EnableEmailTwoFactor(GetUserID(c)); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Disable2FA godoc
// @Summary      Deshabilitar el segundo factor
// @Tags         auth
// @Security     BearerAuth
// @Router       /api/auth/2fa [delete]
func (h *AuthHandler) Disable2FA(c *fiber.Ctx) error {
	if err := h.uc.DisableTwoFactor(GetUserID(c)); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
