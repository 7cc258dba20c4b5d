package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/Docuport-api/internal/application/auth"
	"github.com/jhoicas/Docuport-api/internal/application/dto"
	"github.com/jhoicas/Docuport-api/internal/domain"
	"github.com/jhoicas/Docuport-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeUserRepo struct {
	users map[string]*entity.User // por ID
}

func (f *fakeUserRepo) Create(u *entity.User) error { f.users[u.ID] = u; return nil }
func (f *fakeUserRepo) GetByID(id string) (*entity.User, error) {
	return f.users[id], nil
}
func (f *fakeUserRepo) GetByEmail(email string) (*entity.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}
func (f *fakeUserRepo) GetByEmailAndCompany(email, companyID string) (*entity.User, error) {
	for _, u := range f.users {
		if u.Email == email && u.CompanyID == companyID {
			return u, nil
		}
	}
	return nil, nil
}
func (f *fakeUserRepo) Update(u *entity.User) error { f.users[u.ID] = u; return nil }
func (f *fakeUserRepo) ListByCompany(string, int, int) ([]*entity.User, error) {
	return nil, nil
}
func (f *fakeUserRepo) Delete(id string) error { delete(f.users, id); return nil }

type fakeChallengeStore struct {
	saved map[string]auth.Challenge
}

func (f *fakeChallengeStore) Save(_ context.Context, id string, ch auth.Challenge, _ time.Duration) error {
	f.saved[id] = ch
	return nil
}
func (f *fakeChallengeStore) Get(_ context.Context, id string) (*auth.Challenge, error) {
	ch, ok := f.saved[id]
	if !ok {
		return nil, nil
	}
	return &ch, nil
}
func (f *fakeChallengeStore) Delete(_ context.Context, id string) error {
	delete(f.saved, id)
	return nil
}

type fakeCodeSender struct {
	sentTo   string
	sentCode string
}

func (f *fakeCodeSender) SendTwoFactorCode(_ context.Context, u *entity.User, code string) error {
	f.sentTo = u.Email
	f.sentCode = code
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

const testPassword = "contraseña-segura-1"

func newTestUC(t *testing.T, users ...*entity.User) (*auth.AuthUseCase, *fakeChallengeStore, *fakeCodeSender) {
	t.Helper()
	repo := &fakeUserRepo{users: map[string]*entity.User{}}
	for _, u := range users {
		repo.users[u.ID] = u
	}
	store := &fakeChallengeStore{saved: map[string]auth.Challenge{}}
	sender := &fakeCodeSender{}
	uc := auth.NewAuthUseCase(repo, store, sender, auth.JWTConfig{
		Secret:     "test-secret",
		ExpMinutes: 60,
		Issuer:     "docuport-test",
	})
	return uc, store, sender
}

func testUser(t *testing.T, twoFactor string) *entity.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.MinCost)
	require.NoError(t, err)
	return &entity.User{
		ID:              "00000000-0000-0000-0000-000000000001",
		CompanyID:       "00000000-0000-0000-0000-000000000002",
		Email:           "ana@empresa.co",
		PasswordHash:    string(hash),
		Name:            "Ana",
		Role:            entity.RoleGestor,
		Status:          "active",
		TwoFactorMethod: twoFactor,
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Login sin 2FA
// ──────────────────────────────────────────────────────────────────────────────

func TestLogin_Sin2FA_DevuelveToken(t *testing.T) {
	uc, _, _ := newTestUC(t, testUser(t, entity.TwoFactorNone))

	out, err := uc.Login(context.Background(), dto.LoginRequest{Email: "ana@empresa.co", Password: testPassword})
	require.NoError(t, err)
	assert.NotEmpty(t, out.Token, "sin 2FA el login debe devolver token directo")
	assert.False(t, out.TwoFactorRequired)
	assert.Equal(t, "ana@empresa.co", out.User.Email)
}

func TestLogin_PasswordIncorrecta(t *testing.T) {
	uc, _, _ := newTestUC(t, testUser(t, entity.TwoFactorNone))

	_, err := uc.Login(context.Background(), dto.LoginRequest{Email: "ana@empresa.co", Password: "otra"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogin_UsuarioInexistente(t *testing.T) {
	uc, _, _ := newTestUC(t)

	_, err := uc.Login(context.Background(), dto.LoginRequest{Email: "nadie@empresa.co", Password: testPassword})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestLogin_CuentaSuspendida(t *testing.T) {
	u := testUser(t, entity.TwoFactorNone)
	u.Status = "suspended"
	uc, _, _ := newTestUC(t, u)

	_, err := uc.Login(context.Background(), dto.LoginRequest{Email: "ana@empresa.co", Password: testPassword})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

// ──────────────────────────────────────────────────────────────────────────────
// Login con 2FA por correo
// ──────────────────────────────────────────────────────────────────────────────

func TestLogin_Con2FAEmail_CreaRetoYEnviaCodigo(t *testing.T) {
	uc, store, sender := newTestUC(t, testUser(t, entity.TwoFactorEmail))

	out, err := uc.Login(context.Background(), dto.LoginRequest{Email: "ana@empresa.co", Password: testPassword})
	require.NoError(t, err)

	assert.Empty(t, out.Token, "con 2FA pendiente no debe emitirse token")
	assert.True(t, out.TwoFactorRequired)
	assert.Equal(t, entity.TwoFactorEmail, out.TwoFactorMethod)
	require.NotEmpty(t, out.ChallengeID)

	assert.Equal(t, "ana@empresa.co", sender.sentTo)
	assert.Len(t, sender.sentCode, 6, "el código por correo es de 6 dígitos")

	ch := store.saved[out.ChallengeID]
	assert.Equal(t, sender.sentCode, ch.Code, "el reto guarda el mismo código enviado")
}

func TestVerify2FA_CodigoCorrecto_EmiteTokenYConsumeReto(t *testing.T) {
	uc, store, sender := newTestUC(t, testUser(t, entity.TwoFactorEmail))

	login, err := uc.Login(context.Background(), dto.LoginRequest{Email: "ana@empresa.co", Password: testPassword})
	require.NoError(t, err)

	out, err := uc.Verify2FA(context.Background(), dto.Verify2FARequest{
		ChallengeID: login.ChallengeID,
		Code:        sender.sentCode,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, out.Token)

	_, exists := store.saved[login.ChallengeID]
	assert.False(t, exists, "el reto debe consumirse tras verificar")
}

func TestVerify2FA_CodigoIncorrecto(t *testing.T) {
	uc, _, _ := newTestUC(t, testUser(t, entity.TwoFactorEmail))

	login, err := uc.Login(context.Background(), dto.LoginRequest{Email: "ana@empresa.co", Password: testPassword})
	require.NoError(t, err)

	_, err = uc.Verify2FA(context.Background(), dto.Verify2FARequest{
		ChallengeID: login.ChallengeID,
		Code:        "000000",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidCode)
}

func TestVerify2FA_RetoInexistente(t *testing.T) {
	uc, _, _ := newTestUC(t, testUser(t, entity.TwoFactorEmail))

	_, err := uc.Verify2FA(context.Background(), dto.Verify2FARequest{
		ChallengeID: "no-existe",
		Code:        "123456",
	})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

// ──────────────────────────────────────────────────────────────────────────────
// Gestión de TOTP
// ──────────────────────────────────────────────────────────────────────────────

func TestEnableTOTP_GuardaSecretoYMetodo(t *testing.T) {
	u := testUser(t, entity.TwoFactorNone)
	uc, _, _ := newTestUC(t, u)

	out, err := uc.EnableTOTP(u.ID)
	require.NoError(t, err)
	assert.NotEmpty(t, out.Secret)
	assert.Contains(t, out.OTPAuthURL, "otpauth://totp/")

	assert.Equal(t, entity.TwoFactorTOTP, u.TwoFactorMethod)
	assert.Equal(t, out.Secret, u.TOTPSecret)
}

func TestDisableTwoFactor_LimpiaSecreto(t *testing.T) {
	u := testUser(t, entity.TwoFactorTOTP)
	u.TOTPSecret = "SECRETO"
	uc, _, _ := newTestUC(t, u)

	require.NoError(t, uc.DisableTwoFactor(u.ID))
	assert.Equal(t, entity.TwoFactorNone, u.TwoFactorMethod)
	assert.Empty(t, u.TOTPSecret)
}
