package auth

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/google/uuid"
	"github.com/pquerna/otp/totp"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/Docuport-api/internal/application/dto"
	"github.com/jhoicas/Docuport-api/internal/domain"
	"github.com/jhoicas/Docuport-api/internal/domain/entity"
	"github.com/jhoicas/Docuport-api/internal/domain/repository"
	"github.com/jhoicas/Docuport-api/pkg/jwt"
)

// Tiempo de vida de un reto 2FA pendiente.
const challengeTTL = 10 * time.Minute

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// Challenge reto 2FA pendiente entre el primer y el segundo factor.
type Challenge struct {
	UserID string
	Method string // totp | email
	Code   string // solo para método email
}

// ChallengeStore puerto de almacenamiento efímero de retos 2FA (Redis con TTL).
type ChallengeStore interface {
	Save(ctx context.Context, id string, ch Challenge, ttl time.Duration) error
	Get(ctx context.Context, id string) (*Challenge, error) // nil si expiró o no existe
	Delete(ctx context.Context, id string) error
}

// CodeSender puerto para despachar el código de un solo uso por correo.
type CodeSender interface {
	SendTwoFactorCode(ctx context.Context, user *entity.User, code string) error
}

// AuthUseCase casos de uso de autenticación: login en dos pasos y gestión de 2FA.
type AuthUseCase struct {
	userRepo   repository.UserRepository
	challenges ChallengeStore
	codeSender CodeSender
	jwtCfg     JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, challenges ChallengeStore, codeSender CodeSender, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, challenges: challenges, codeSender: codeSender, jwtCfg: jwtCfg}
}

// Login verifica email/password. Sin 2FA devuelve el token directo; con 2FA
// crea un reto y (para método email) despacha el código.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.userRepo.GetByEmail(in.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if user.Status != "active" {
		return nil, domain.ErrForbidden
	}

	if user.TwoFactorMethod == entity.TwoFactorNone {
		token, err := uc.issueToken(user)
		if err != nil {
			return nil, err
		}
		return &dto.LoginResponse{Token: token, User: *toUserResponse(user)}, nil
	}

	ch := Challenge{UserID: user.ID, Method: user.TwoFactorMethod}
	if user.TwoFactorMethod == entity.TwoFactorEmail {
		code, err := randomCode(6)
		if err != nil {
			return nil, err
		}
		ch.Code = code
		if err := uc.codeSender.SendTwoFactorCode(ctx, user, code); err != nil {
			return nil, fmt.Errorf("enviar código 2FA: %w", err)
		}
	}
	id := uuid.New().String()
	if err := uc.challenges.Save(ctx, id, ch, challengeTTL); err != nil {
		return nil, fmt.Errorf("guardar reto 2FA: %w", err)
	}
	return &dto.LoginResponse{
		TwoFactorRequired: true,
		TwoFactorMethod:   user.TwoFactorMethod,
		ChallengeID:       id,
		User:              *toUserResponse(user),
	}, nil
}

// Verify2FA valida el segundo factor y emite el token. El reto se consume
// aunque el código sea correcto una sola vez.
func (uc *AuthUseCase) Verify2FA(ctx context.Context, in dto.Verify2FARequest) (*dto.LoginResponse, error) {
	ch, err := uc.challenges.Get(ctx, in.ChallengeID)
	if err != nil {
		return nil, err
	}
	if ch == nil {
		return nil, domain.ErrUnauthorized // reto expirado o inexistente
	}
	user, err := uc.userRepo.GetByID(ch.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}

	switch ch.Method {
	case entity.TwoFactorTOTP:
		if !totp.Validate(in.Code, user.TOTPSecret) {
			return nil, domain.ErrInvalidCode
		}
	case entity.TwoFactorEmail:
		if in.Code != ch.Code {
			return nil, domain.ErrInvalidCode
		}
	default:
		return nil, domain.ErrConflict
	}

	_ = uc.challenges.Delete(ctx, in.ChallengeID)

	token, err := uc.issueToken(user)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{Token: token, User: *toUserResponse(user)}, nil
}

// EnableTOTP genera el secreto TOTP del usuario y lo activa como segundo factor.
// Devuelve el secreto y la URL otpauth:// para mostrar el QR.
func (uc *AuthUseCase) EnableTOTP(userID string) (*dto.EnableTOTPResponse, error) {
	user, err := uc.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      uc.jwtCfg.Issuer,
		AccountName: user.Email,
	})
	if err != nil {
		return nil, fmt.Errorf("generar secreto TOTP: %w", err)
	}
	user.TOTPSecret = key.Secret()
	user.TwoFactorMethod = entity.TwoFactorTOTP
	user.UpdatedAt = time.Now()
	if err := uc.userRepo.Update(user); err != nil {
		return nil, err
	}
	return &dto.EnableTOTPResponse{Secret: key.Secret(), OTPAuthURL: key.URL()}, nil
}

// EnableEmailTwoFactor activa el código por correo como segundo factor.
func (uc *AuthUseCase) EnableEmailTwoFactor(userID string) error {
	return uc.setTwoFactor(userID, entity.TwoFactorEmail, "")
}

// DisableTwoFactor desactiva el segundo factor y borra el secreto TOTP.
func (uc *AuthUseCase) DisableTwoFactor(userID string) error {
	return uc.setTwoFactor(userID, entity.TwoFactorNone, "")
}

func (uc *AuthUseCase) setTwoFactor(userID, method, secret string) error {
	user, err := uc.userRepo.GetByID(userID)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrUserNotFound
	}
	user.TwoFactorMethod = method
	user.TOTPSecret = secret
	user.UpdatedAt = time.Now()
	return uc.userRepo.Update(user)
}

func (uc *AuthUseCase) issueToken(user *entity.User) (string, error) {
	return jwt.Generate(uc.jwtCfg.Secret, user.ID, user.CompanyID, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
}

// randomCode genera un código numérico de n dígitos con crypto/rand.
func randomCode(n int) (string, error) {
	digits := make([]byte, n)
	for i := range digits {
		v, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", err
		}
		digits[i] = byte('0' + v.Int64())
	}
	return string(digits), nil
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:              u.ID,
		CompanyID:       u.CompanyID,
		Email:           u.Email,
		Name:            u.Name,
		Role:            u.Role,
		Status:          u.Status,
		TwoFactorMethod: u.TwoFactorMethod,
		CreatedAt:       u.CreatedAt,
		UpdatedAt:       u.UpdatedAt,
	}
}
